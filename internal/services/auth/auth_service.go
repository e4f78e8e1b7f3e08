package auth

import (
	"fmt"
	"log"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
	initdata "github.com/telegram-mini-apps/init-data-golang"
	"golang.org/x/crypto/bcrypt"

	"github.com/jane-devs/barter-platform/internal/config"
	"github.com/jane-devs/barter-platform/internal/db"
	"github.com/jane-devs/barter-platform/internal/middleware"
	"github.com/jane-devs/barter-platform/internal/models"
	"github.com/jane-devs/barter-platform/internal/storage"
	"github.com/jane-devs/barter-platform/internal/utils"
)

// AuthService – структура для обработки авторизации
type AuthService struct {
	cfg        *config.Config
	store      storage.Storage
	jwtService *utils.JWTService
}

// NewAuthService – конструктор AuthService
func NewAuthService(cfg *config.Config, store storage.Storage) *AuthService {
	return &AuthService{
		cfg:        cfg,
		store:      store,
		jwtService: utils.NewJWTService(cfg.JWTSecret),
	}
}

// GetJWTService возвращает сервис JWT для middleware
func (s *AuthService) GetJWTService() *utils.JWTService {
	return s.jwtService
}

type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// RegisterHandler регистрирует нового пользователя и сразу выдает JWT
func (s *AuthService) RegisterHandler(c fiber.Ctx) error {
	var payload credentials
	if err := c.Bind().Body(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Неверный формат данных"})
	}
	if payload.Username == "" || payload.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Необходимы юзернейм и пароль."})
	}

	ctx, cancel := db.GetContext()
	defer cancel()

	if _, err := s.store.GetUserByUsername(ctx, payload.Username); err == nil {
		return utils.ErrorJSON(c, models.ErrUsernameTaken)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(payload.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("Ошибка хеширования пароля: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Ошибка регистрации"})
	}

	user := models.User{
		ID:           uuid.New(),
		Username:     payload.Username,
		PasswordHash: string(hash),
	}
	if err := s.store.CreateUser(ctx, user); err != nil {
		log.Printf("Ошибка создания пользователя: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Ошибка регистрации"})
	}

	token, err := s.jwtService.GenerateToken(user.ID.String())
	if err != nil {
		log.Printf("Ошибка генерации JWT: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Ошибка генерации токена"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Успешная регистрация.",
		"token":   token,
		"user":    user,
	})
}

// LoginHandler проверяет юзернейм и пароль и выдает JWT
func (s *AuthService) LoginHandler(c fiber.Ctx) error {
	var payload credentials
	if err := c.Bind().Body(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Неверный формат данных"})
	}

	ctx, cancel := db.GetContext()
	defer cancel()

	user, err := s.store.GetUserByUsername(ctx, payload.Username)
	if err != nil {
		return utils.ErrorJSON(c, models.ErrInvalidCredentials)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(payload.Password)); err != nil {
		return utils.ErrorJSON(c, models.ErrInvalidCredentials)
	}

	token, err := s.jwtService.GenerateToken(user.ID.String())
	if err != nil {
		log.Printf("Ошибка генерации JWT: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Ошибка генерации токена"})
	}

	return c.JSON(fiber.Map{
		"token": token,
		"user":  user,
	})
}

// TelegramAuthHandler проверяет initData Telegram Mini App,
// создает или обновляет пользователя и возвращает JWT
func (s *AuthService) TelegramAuthHandler(c fiber.Ctx) error {
	var payload struct {
		InitData string `json:"init_data"`
	}
	if err := c.Bind().Body(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Неверный формат данных"})
	}

	expiration := 24 * time.Hour
	if err := initdata.Validate(payload.InitData, s.cfg.TelegramBotToken, expiration); err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Невалидные данные Telegram"})
	}

	data, err := initdata.Parse(payload.InitData)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Ошибка разбора initData"})
	}

	ctx, cancel := db.GetContext()
	defer cancel()

	username := data.User.Username
	if username == "" {
		username = fmt.Sprintf("tg_%d", data.User.ID)
	}

	user, err := s.store.UpsertTelegramUser(ctx, models.User{
		Username:   username,
		FirstName:  data.User.FirstName,
		LastName:   data.User.LastName,
		AvatarURL:  data.User.PhotoURL,
		TelegramID: data.User.ID,
	})
	if err != nil {
		log.Printf("Ошибка сохранения пользователя Telegram: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Ошибка авторизации"})
	}

	token, err := s.jwtService.GenerateToken(user.ID.String())
	if err != nil {
		log.Printf("Ошибка генерации JWT: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Ошибка генерации токена"})
	}

	return c.JSON(fiber.Map{
		"token": token,
		"user":  user,
	})
}

// MeHandler возвращает текущего авторизованного пользователя
func (s *AuthService) MeHandler(c fiber.Ctx) error {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Пользователь не авторизован"})
	}

	ctx, cancel := db.GetContext()
	defer cancel()

	user, err := s.store.GetUserByID(ctx, userID)
	if err != nil {
		return utils.ErrorJSON(c, err)
	}

	return c.JSON(fiber.Map{"user": user})
}
