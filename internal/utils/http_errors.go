package utils

import (
	"errors"

	"github.com/gofiber/fiber/v3"

	"github.com/jane-devs/barter-platform/internal/models"
)

// HTTPStatus переводит доменную ошибку в HTTP-статус
func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, models.ErrAdNotFound),
		errors.Is(err, models.ErrProposalNotFound),
		errors.Is(err, models.ErrUserNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, models.ErrNoPermission),
		errors.Is(err, models.ErrNotAdOwner):
		return fiber.StatusForbidden
	case errors.Is(err, models.ErrSelfProposal),
		errors.Is(err, models.ErrAlreadyHandled),
		errors.Is(err, models.ErrInvalidAction),
		errors.Is(err, models.ErrAdAlreadyExchanged):
		return fiber.StatusBadRequest
	case errors.Is(err, models.ErrDuplicateProposal),
		errors.Is(err, models.ErrUsernameTaken):
		return fiber.StatusConflict
	case errors.Is(err, models.ErrInvalidCredentials):
		return fiber.StatusUnauthorized
	default:
		return fiber.StatusInternalServerError
	}
}

// ErrorText переводит доменную ошибку в сообщение для пользователя
func ErrorText(err error) string {
	switch {
	case errors.Is(err, models.ErrAdNotFound):
		return "Объявление не найдено"
	case errors.Is(err, models.ErrProposalNotFound):
		return "Предложение обмена не найдено"
	case errors.Is(err, models.ErrUserNotFound):
		return "Пользователь не найден"
	case errors.Is(err, models.ErrAdAlreadyExchanged):
		return "Объявление уже обменено"
	case errors.Is(err, models.ErrSelfProposal):
		return "Вы не можете предлагать обмен самому себе."
	case errors.Is(err, models.ErrNotAdOwner):
		return "Вы можете предлагать только свои объявления на обмен."
	case errors.Is(err, models.ErrAlreadyHandled):
		return "Предложение уже обработано."
	case errors.Is(err, models.ErrNoPermission):
		return "Нет прав."
	case errors.Is(err, models.ErrInvalidAction):
		return "Некорректное действие."
	case errors.Is(err, models.ErrDuplicateProposal):
		return "Такое предложение обмена уже существует"
	case errors.Is(err, models.ErrUsernameTaken):
		return "Юзернейм уже занят!"
	case errors.Is(err, models.ErrInvalidCredentials):
		return "Неверный юзернейм или пароль"
	default:
		return "Внутренняя ошибка сервера"
	}
}

// ErrorJSON отправляет доменную ошибку клиенту в JSON
func ErrorJSON(c fiber.Ctx, err error) error {
	return c.Status(HTTPStatus(err)).JSON(fiber.Map{"error": ErrorText(err)})
}
