package proposal

import (
	"context"

	"github.com/google/uuid"

	"github.com/jane-devs/barter-platform/internal/models"
	"github.com/jane-devs/barter-platform/internal/storage"
)

// Action – действие над предложением обмена. Закрытый набор значений,
// все остальное отклоняется с models.ErrInvalidAction.
type Action string

const (
	ActionAccept Action = "accept"
	ActionReject Action = "reject"
)

// CreateInput – данные для создания предложения обмена
type CreateInput struct {
	AdReceiverID uuid.UUID `json:"ad_receiver_id"`
	AdSenderID   uuid.UUID `json:"ad_sender_id"`
	Comment      string    `json:"comment"`
}

// Engine реализует жизненный цикл предложения обмена: создание и
// однократный перевод из pending в accepted или rejected. Все проверки
// и записи выполняются в одной транзакции с блокировкой строк, чтобы из
// двух конкурирующих вызовов успешным был ровно один.
type Engine struct {
	store storage.Storage
}

// NewEngine создает новый экземпляр Engine
func NewEngine(store storage.Storage) *Engine {
	return &Engine{store: store}
}

// Create проверяет и сохраняет новое предложение обмена со статусом pending.
//
// Ограничения:
//   - получаемое объявление существует и еще не обменено;
//   - получаемое объявление принадлежит другому пользователю;
//   - предлагаемое объявление принадлежит инициатору и еще не обменено;
//   - для этой пары объявлений нет другого необработанного предложения.
//
// При любой ошибке ничего не сохраняется.
func (e *Engine) Create(ctx context.Context, userID uuid.UUID, in CreateInput) (models.ExchangeProposal, error) {
	var created models.ExchangeProposal

	err := e.store.WithinTx(ctx, func(tx storage.Store) error {
		receiver, err := tx.GetAdForUpdate(ctx, in.AdReceiverID)
		if err != nil {
			return err
		}
		if receiver.IsExchanged {
			return models.ErrAdAlreadyExchanged
		}
		if receiver.UserID == userID {
			return models.ErrSelfProposal
		}

		sender, err := tx.GetAdForUpdate(ctx, in.AdSenderID)
		if err != nil {
			return err
		}
		if sender.UserID != userID {
			return models.ErrNotAdOwner
		}
		if sender.IsExchanged {
			return models.ErrAdAlreadyExchanged
		}

		exists, err := tx.HasPendingProposal(ctx, in.AdSenderID, in.AdReceiverID)
		if err != nil {
			return err
		}
		if exists {
			return models.ErrDuplicateProposal
		}

		created = models.ExchangeProposal{
			ID:           uuid.New(),
			AdSenderID:   in.AdSenderID,
			AdReceiverID: in.AdReceiverID,
			Comment:      in.Comment,
			Status:       models.StatusPending,
		}
		return tx.CreateProposal(ctx, created)
	})
	if err != nil {
		return models.ExchangeProposal{}, err
	}
	return created, nil
}

// HandleAction обрабатывает ответ на предложение обмена.
//
// Решение принимает только владелец получаемого объявления, и только
// пока предложение в статусе pending. Принятие помечает оба объявления
// обмененными вместе со сменой статуса; отказ меняет только статус.
// Порядок проверок: права, затем статус, затем действие – чужой вызов
// всегда получает ErrNoPermission, а повторный вызов владельца
// ErrAlreadyHandled независимо от действия.
func (e *Engine) HandleAction(ctx context.Context, proposalID uuid.UUID, action Action, userID uuid.UUID) (models.ExchangeProposal, error) {
	var handled models.ExchangeProposal

	err := e.store.WithinTx(ctx, func(tx storage.Store) error {
		p, err := tx.GetProposalForUpdate(ctx, proposalID)
		if err != nil {
			return err
		}

		receiver, err := tx.GetAdForUpdate(ctx, p.AdReceiverID)
		if err != nil {
			return err
		}
		if receiver.UserID != userID {
			return models.ErrNoPermission
		}
		if p.Status != models.StatusPending {
			return models.ErrAlreadyHandled
		}

		switch action {
		case ActionAccept:
			if _, err := tx.GetAdForUpdate(ctx, p.AdSenderID); err != nil {
				return err
			}
			if err := tx.SetAdExchanged(ctx, p.AdSenderID, true); err != nil {
				return err
			}
			if err := tx.SetAdExchanged(ctx, p.AdReceiverID, true); err != nil {
				return err
			}
			if err := tx.UpdateProposalStatus(ctx, p.ID, models.StatusAccepted); err != nil {
				return err
			}
			p.Status = models.StatusAccepted
		case ActionReject:
			if err := tx.UpdateProposalStatus(ctx, p.ID, models.StatusRejected); err != nil {
				return err
			}
			p.Status = models.StatusRejected
		default:
			return models.ErrInvalidAction
		}

		handled = p
		return nil
	})
	if err != nil {
		return models.ExchangeProposal{}, err
	}
	return handled, nil
}
