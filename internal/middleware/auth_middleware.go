package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"github.com/jane-devs/barter-platform/internal/utils"
)

// AuthMiddleware создаёт middleware для проверки JWT.
// ID пользователя кладется в locals под ключом "userID".
func AuthMiddleware(jwtService *utils.JWTService) fiber.Handler {
	return func(c fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Отсутствует заголовок авторизации",
			})
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Неверный формат заголовка авторизации",
			})
		}

		userID, err := jwtService.ExtractUserID(parts[1])
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Невалидный или истекший токен",
			})
		}

		if _, err := uuid.Parse(userID); err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Неверный формат ID пользователя",
			})
		}

		c.Locals("userID", userID)

		return c.Next()
	}
}

// CurrentUserID возвращает UUID пользователя из locals запроса.
// Предполагает, что AuthMiddleware уже отработал.
func CurrentUserID(c fiber.Ctx) (uuid.UUID, bool) {
	userID, ok := c.Locals("userID").(string)
	if !ok || userID == "" {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(userID)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}
