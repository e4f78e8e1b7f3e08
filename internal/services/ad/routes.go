package ad

import (
	"github.com/gofiber/fiber/v3"

	"github.com/jane-devs/barter-platform/internal/middleware"
)

// SetupRoutes настраивает маршруты для API объявлений
func (s *AdService) SetupRoutes(app *fiber.App) {
	// Публичные маршруты
	app.Get("/api/ads", s.ListAds)

	api := app.Group("/api/ads")
	api.Use(middleware.AuthMiddleware(s.jwtService))

	// Создание объявления
	api.Post("/", s.CreateAd)

	// Объявления текущего пользователя
	api.Get("/my", s.GetMyAds)

	// Одно объявление по ID (доступно после авторизации)
	api.Get("/:id", s.GetAd)

	// Обновление объявления
	api.Put("/:id", s.UpdateAd)

	// Удаление объявления
	api.Delete("/:id", s.DeleteAd)
}
