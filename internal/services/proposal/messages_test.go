package proposal

import (
	"errors"
	"testing"

	"github.com/jane-devs/barter-platform/internal/models"
)

func TestActionMessage(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		action Action
		want   string
	}{
		{"AcceptSuccess", nil, ActionAccept, "Вы успешно приняли предложение."},
		{"RejectSuccess", nil, ActionReject, "Вы успешно отклонили предложение."},
		{"UnknownActionSuccess", nil, Action("handle"), "Вы успешно обработали предложение."},
		{"AlreadyHandled", models.ErrAlreadyHandled, ActionAccept, "Предложение уже обработано."},
		{"Forbidden", models.ErrNoPermission, ActionReject, "Вы не можете обработать это предложение."},
		{"InvalidAction", models.ErrInvalidAction, Action("cancel"), "Недопустимое действие."},
		{"UnknownError", errors.New("boom"), ActionAccept, "Неизвестный результат."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ActionMessage(tt.err, tt.action); got != tt.want {
				t.Errorf("ActionMessage() = %q, want %q", got, tt.want)
			}
		})
	}
}
