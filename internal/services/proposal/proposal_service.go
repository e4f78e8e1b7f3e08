package proposal

import (
	"context"
	"errors"
	"log"
	"strconv"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"github.com/jane-devs/barter-platform/internal/config"
	"github.com/jane-devs/barter-platform/internal/db"
	"github.com/jane-devs/barter-platform/internal/middleware"
	"github.com/jane-devs/barter-platform/internal/models"
	"github.com/jane-devs/barter-platform/internal/storage"
	"github.com/jane-devs/barter-platform/internal/utils"
)

// Предложений на страницу в списках отправленных/полученных
const proposalsPerPage = 5

// ProposalService представляет сервис для работы с предложениями обмена
type ProposalService struct {
	cfg        *config.Config
	store      storage.Storage
	engine     *Engine
	jwtService *utils.JWTService
}

// NewProposalService создает новый экземпляр ProposalService
func NewProposalService(cfg *config.Config, store storage.Storage) *ProposalService {
	return &ProposalService{
		cfg:        cfg,
		store:      store,
		engine:     NewEngine(store),
		jwtService: utils.NewJWTService(cfg.JWTSecret),
	}
}

// CreateProposal обрабатывает создание нового предложения обмена
func (s *ProposalService) CreateProposal(c fiber.Ctx) error {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Пользователь не авторизован"})
	}

	var requestData struct {
		AdReceiverID string `json:"ad_receiver_id"`
		AdSenderID   string `json:"ad_sender_id"`
		Comment      string `json:"comment"`
	}
	if err := c.Bind().Body(&requestData); err != nil {
		log.Printf("Ошибка декодирования тела запроса: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Неверный формат данных"})
	}

	if requestData.AdReceiverID == "" || requestData.AdSenderID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Необходимо указать ID объявлений для обмена"})
	}

	adReceiverID, err := uuid.Parse(requestData.AdReceiverID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Неверный формат ID получаемого объявления"})
	}
	adSenderID, err := uuid.Parse(requestData.AdSenderID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Неверный формат ID предлагаемого объявления"})
	}

	ctx, cancel := db.GetContext()
	defer cancel()

	created, err := s.engine.Create(ctx, userID, CreateInput{
		AdReceiverID: adReceiverID,
		AdSenderID:   adSenderID,
		Comment:      requestData.Comment,
	})
	if err != nil {
		if utils.HTTPStatus(err) == fiber.StatusInternalServerError {
			log.Printf("Ошибка создания предложения обмена: %v", err)
		}
		return utils.ErrorJSON(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success":  true,
		"proposal": created,
		"message":  "Предложение обмена отправлено.",
	})
}

// GetMyProposals возвращает предложения, отправленные и полученные
// текущим пользователем
func (s *ProposalService) GetMyProposals(c fiber.Ctx) error {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Пользователь не авторизован"})
	}

	proposalType := c.Query("type", "all") // all, sent, received
	status := models.ProposalStatus(c.Query("status", ""))
	if status != "" && !status.IsValid() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Недопустимый статус предложения обмена"})
	}

	page, _ := strconv.Atoi(c.Query("page", "1"))
	if page < 1 {
		page = 1
	}

	filter := storage.ProposalFilter{
		Status: status,
		Limit:  proposalsPerPage,
		Offset: (page - 1) * proposalsPerPage,
	}
	switch proposalType {
	case "sent":
		filter.SenderUserID = userID
	case "received":
		filter.ReceiverUserID = userID
	default:
		filter.SenderUserID = userID
		filter.ReceiverUserID = userID
	}

	ctx, cancel := db.GetContext()
	defer cancel()

	proposals, total, err := s.store.ListProposals(ctx, filter)
	if err != nil {
		log.Printf("Ошибка запроса предложений обмена: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Ошибка получения предложений обмена"})
	}

	for i := range proposals {
		s.attachAds(ctx, &proposals[i])
	}

	return c.JSON(fiber.Map{
		"proposals": proposals,
		"count":     len(proposals),
		"total":     total,
		"page":      page,
		"per_page":  proposalsPerPage,
	})
}

// GetProposal возвращает одно предложение обмена. Доступно только
// владельцам связанных объявлений.
func (s *ProposalService) GetProposal(c fiber.Ctx) error {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Пользователь не авторизован"})
	}

	proposalID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Неверный формат ID предложения обмена"})
	}

	ctx, cancel := db.GetContext()
	defer cancel()

	p, err := s.store.GetProposal(ctx, proposalID)
	if err != nil {
		return utils.ErrorJSON(c, err)
	}

	s.attachAds(ctx, &p)
	isParticipant := (p.AdSender != nil && p.AdSender.UserID == userID) ||
		(p.AdReceiver != nil && p.AdReceiver.UserID == userID)
	if !isParticipant {
		return utils.ErrorJSON(c, models.ErrNoPermission)
	}

	return c.JSON(fiber.Map{"proposal": p})
}

// HandleAction обрабатывает принятие или отклонение предложения обмена
func (s *ProposalService) HandleAction(c fiber.Ctx) error {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Пользователь не авторизован"})
	}

	proposalID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Неверный формат ID предложения обмена"})
	}

	action := Action(c.Params("action"))

	ctx, cancel := db.GetContext()
	defer cancel()

	handled, err := s.engine.HandleAction(ctx, proposalID, action, userID)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrAlreadyHandled),
			errors.Is(err, models.ErrNoPermission),
			errors.Is(err, models.ErrInvalidAction):
			return c.Status(utils.HTTPStatus(err)).JSON(fiber.Map{"error": ActionMessage(err, action)})
		case utils.HTTPStatus(err) == fiber.StatusInternalServerError:
			log.Printf("Ошибка обработки предложения %s: %v", proposalID, err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Ошибка обработки предложения обмена"})
		default:
			return utils.ErrorJSON(c, err)
		}
	}

	return c.JSON(fiber.Map{
		"success":     true,
		"message":     ActionMessage(nil, action),
		"proposal_id": handled.ID,
		"status":      handled.Status,
	})
}

// attachAds подгружает связанные объявления для ответа API
func (s *ProposalService) attachAds(ctx context.Context, p *models.ExchangeProposal) {
	if sender, err := s.store.GetAd(ctx, p.AdSenderID); err == nil {
		p.AdSender = &sender
	} else {
		log.Printf("Ошибка получения объявления %s: %v", p.AdSenderID, err)
	}
	if receiver, err := s.store.GetAd(ctx, p.AdReceiverID); err == nil {
		p.AdReceiver = &receiver
	} else {
		log.Printf("Ошибка получения объявления %s: %v", p.AdReceiverID, err)
	}
}
