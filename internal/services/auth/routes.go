package auth

import (
	"github.com/gofiber/fiber/v3"

	"github.com/jane-devs/barter-platform/internal/middleware"
)

// SetupRoutes регистрирует маршруты авторизации
func (s *AuthService) SetupRoutes(app *fiber.App) {
	app.Post("/api/auth/register", s.RegisterHandler)
	app.Post("/api/auth/login", s.LoginHandler)
	app.Post("/api/auth/telegram", s.TelegramAuthHandler)

	// Защищенные маршруты
	protected := app.Group("/api/users")
	protected.Use(middleware.AuthMiddleware(s.jwtService))
	protected.Get("/me", s.MeHandler)
}
