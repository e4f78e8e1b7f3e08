package ad

import (
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

// Объявлений на страницу в общем списке
const adsPerPage = 10

// AdService представляет сервис для работы с объявлениями
type AdService struct {
	cfg        *config.Config
	store      storage.Storage
	jwtService *utils.JWTService
}

// NewAdService создает новый экземпляр AdService
func NewAdService(cfg *config.Config, store storage.Storage) *AdService {
	return &AdService{
		cfg:        cfg,
		store:      store,
		jwtService: utils.NewJWTService(cfg.JWTSecret),
	}
}

// isOwner проверяет, принадлежит ли объявление пользователю
func isOwner(ad models.Ad, userID uuid.UUID) bool {
	return ad.UserID == userID
}

type adRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url"`
	Category    string `json:"category"`
	Condition   string `json:"condition"`
}

// validate проверяет обязательные поля и допустимость перечислений
func (r adRequest) validate() (string, bool) {
	if r.Title == "" {
		return "Заголовок обязателен", false
	}
	if !models.Category(r.Category).IsValid() {
		return "Недопустимая категория", false
	}
	if !models.Condition(r.Condition).IsValid() {
		return "Недопустимое состояние товара", false
	}
	return "", true
}

// CreateAd обрабатывает создание нового объявления
func (s *AdService) CreateAd(c fiber.Ctx) error {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Пользователь не авторизован"})
	}

	var requestData adRequest
	if err := c.Bind().Body(&requestData); err != nil {
		log.Printf("Ошибка декодирования тела запроса: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Неверный формат данных"})
	}
	if msg, ok := requestData.validate(); !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": msg})
	}

	ad := models.Ad{
		ID:          uuid.New(),
		UserID:      userID,
		Title:       requestData.Title,
		Description: requestData.Description,
		ImageURL:    requestData.ImageURL,
		Category:    models.Category(requestData.Category),
		Condition:   models.Condition(requestData.Condition),
	}

	ctx, cancel := db.GetContext()
	defer cancel()

	if err := s.store.CreateAd(ctx, ad); err != nil {
		log.Printf("Ошибка сохранения объявления: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Ошибка сохранения объявления"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"ad_id":   ad.ID,
		"message": "Объявление успешно создано",
	})
}

// GetAd возвращает одно объявление по ID
func (s *AdService) GetAd(c fiber.Ctx) error {
	adID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Неверный формат ID объявления"})
	}

	ctx, cancel := db.GetContext()
	defer cancel()

	ad, err := s.store.GetAd(ctx, adID)
	if err != nil {
		return utils.ErrorJSON(c, err)
	}

	if user, err := s.store.GetUserByID(ctx, ad.UserID); err == nil {
		ad.User = &user
	}

	return c.JSON(fiber.Map{"ad": ad})
}

// ListAds возвращает страницу объявлений с поиском и фильтрами
func (s *AdService) ListAds(c fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	if page < 1 {
		page = 1
	}

	filter := storage.AdFilter{
		Search:    c.Query("search"),
		Category:  c.Query("category"),
		Condition: c.Query("condition"),
		OrderBy:   c.Query("order_by"),
		Limit:     adsPerPage,
		Offset:    (page - 1) * adsPerPage,
	}

	ctx, cancel := db.GetContext()
	defer cancel()

	ads, total, err := s.store.ListAds(ctx, filter)
	if err != nil {
		log.Printf("Ошибка запроса объявлений: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Ошибка получения объявлений"})
	}

	return c.JSON(fiber.Map{
		"ads":      ads,
		"count":    len(ads),
		"total":    total,
		"page":     page,
		"per_page": adsPerPage,
	})
}

// GetMyAds возвращает объявления текущего пользователя
func (s *AdService) GetMyAds(c fiber.Ctx) error {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Пользователь не авторизован"})
	}

	page, _ := strconv.Atoi(c.Query("page", "1"))
	if page < 1 {
		page = 1
	}

	ctx, cancel := db.GetContext()
	defer cancel()

	ads, total, err := s.store.ListAds(ctx, storage.AdFilter{
		UserID: userID,
		Limit:  adsPerPage,
		Offset: (page - 1) * adsPerPage,
	})
	if err != nil {
		log.Printf("Ошибка запроса объявлений пользователя: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Ошибка получения объявлений"})
	}

	return c.JSON(fiber.Map{
		"ads":      ads,
		"count":    len(ads),
		"total":    total,
		"page":     page,
		"per_page": adsPerPage,
	})
}

// UpdateAd обновляет объявление. Доступно только владельцу.
func (s *AdService) UpdateAd(c fiber.Ctx) error {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Пользователь не авторизован"})
	}

	adID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Неверный формат ID объявления"})
	}

	var requestData adRequest
	if err := c.Bind().Body(&requestData); err != nil {
		log.Printf("Ошибка декодирования тела запроса: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Неверный формат данных"})
	}
	if msg, ok := requestData.validate(); !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": msg})
	}

	ctx, cancel := db.GetContext()
	defer cancel()

	ad, err := s.store.GetAd(ctx, adID)
	if err != nil {
		return utils.ErrorJSON(c, err)
	}
	if !isOwner(ad, userID) {
		return utils.ErrorJSON(c, models.ErrNoPermission)
	}

	ad.Title = requestData.Title
	ad.Description = requestData.Description
	ad.ImageURL = requestData.ImageURL
	ad.Category = models.Category(requestData.Category)
	ad.Condition = models.Condition(requestData.Condition)

	if err := s.store.UpdateAd(ctx, ad); err != nil {
		log.Printf("Ошибка обновления объявления %s: %v", adID, err)
		return utils.ErrorJSON(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"ad_id":   ad.ID,
		"message": "Объявление обновлено",
	})
}

// DeleteAd удаляет объявление. Доступно только владельцу.
func (s *AdService) DeleteAd(c fiber.Ctx) error {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Пользователь не авторизован"})
	}

	adID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Неверный формат ID объявления"})
	}

	ctx, cancel := db.GetContext()
	defer cancel()

	ad, err := s.store.GetAd(ctx, adID)
	if err != nil {
		return utils.ErrorJSON(c, err)
	}
	if !isOwner(ad, userID) {
		return utils.ErrorJSON(c, models.ErrNoPermission)
	}

	if err := s.store.DeleteAd(ctx, adID); err != nil {
		log.Printf("Ошибка удаления объявления %s: %v", adID, err)
		return utils.ErrorJSON(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Объявление удалено",
	})
}
