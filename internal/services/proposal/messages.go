package proposal

import (
	"errors"
	"fmt"

	"github.com/jane-devs/barter-platform/internal/models"
)

// ActionMessage возвращает текст результата обработки предложения.
// Чистое отображение исхода в сообщение, без побочных эффектов.
func ActionMessage(err error, action Action) string {
	switch {
	case err == nil:
		return fmt.Sprintf("Вы успешно %s предложение.", actionLabel(action))
	case errors.Is(err, models.ErrAlreadyHandled):
		return "Предложение уже обработано."
	case errors.Is(err, models.ErrNoPermission):
		return "Вы не можете обработать это предложение."
	case errors.Is(err, models.ErrInvalidAction):
		return "Недопустимое действие."
	default:
		return "Неизвестный результат."
	}
}

func actionLabel(action Action) string {
	switch action {
	case ActionAccept:
		return "приняли"
	case ActionReject:
		return "отклонили"
	default:
		return "обработали"
	}
}
