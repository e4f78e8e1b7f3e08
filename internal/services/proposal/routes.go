package proposal

import (
	"github.com/gofiber/fiber/v3"

	"github.com/jane-devs/barter-platform/internal/middleware"
)

// SetupRoutes настраивает маршруты для API предложений обмена
func (s *ProposalService) SetupRoutes(app *fiber.App) {
	api := app.Group("/api/proposals")

	// Все маршруты предложений требуют авторизации
	api.Use(middleware.AuthMiddleware(s.jwtService))

	// Создание предложения обмена
	api.Post("/", s.CreateProposal)

	// Список отправленных и полученных предложений
	api.Get("/", s.GetMyProposals)

	// Одно предложение обмена
	api.Get("/:id", s.GetProposal)

	// Принятие или отклонение предложения
	api.Post("/:id/:action", s.HandleAction)
}
