package main

import (
	"log"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"github.com/gofiber/fiber/v3/middleware/logger"
	"github.com/gofiber/fiber/v3/middleware/recover"

	"github.com/jane-devs/barter-platform/internal/config"
	"github.com/jane-devs/barter-platform/internal/db"
	"github.com/jane-devs/barter-platform/internal/middleware"
	"github.com/jane-devs/barter-platform/internal/services/ad"
	"github.com/jane-devs/barter-platform/internal/services/auth"
	"github.com/jane-devs/barter-platform/internal/services/cloudinary"
	"github.com/jane-devs/barter-platform/internal/services/proposal"
	"github.com/jane-devs/barter-platform/internal/storage/postgres"
)

func main() {
	// Загружаем конфигурацию
	cfg := config.LoadConfig()

	// Инициализируем базу данных
	if err := db.InitDB(cfg); err != nil {
		log.Fatalf("❌ Ошибка при инициализации базы данных: %v", err)
	}
	defer db.CloseDB()

	store := postgres.New(db.Pool)

	// Создаём экземпляр Fiber
	app := fiber.New(fiber.Config{
		AppName:      "Barter Platform API",
		ErrorHandler: errorHandler,
	})

	// Добавляем middleware
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowCredentials: false,
	}))

	// Создаём сервисы
	authService := auth.NewAuthService(cfg, store)
	adService := ad.NewAdService(cfg, store)
	proposalService := proposal.NewProposalService(cfg, store)
	cloudinaryService := cloudinary.NewCloudinaryService(cfg)

	authMiddleware := middleware.AuthMiddleware(authService.GetJWTService())

	// Регистрируем маршруты
	authService.SetupRoutes(app)
	adService.SetupRoutes(app)
	proposalService.SetupRoutes(app)
	cloudinary.SetupRoutes(app, authMiddleware, cloudinaryService)

	// Запускаем сервер
	log.Printf("✅ Barter Platform API запущен на порту %s", cfg.Port)
	log.Fatal(app.Listen(":" + cfg.Port))
}

// errorHandler обрабатывает ошибки Fiber
func errorHandler(c fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
	})
}
