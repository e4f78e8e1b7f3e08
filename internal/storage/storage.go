package storage

import (
	"context"

	"github.com/google/uuid"

	"github.com/jane-devs/barter-platform/internal/models"
)

// AdFilter описывает параметры выборки объявлений
type AdFilter struct {
	Search    string
	Category  string
	Condition string
	UserID    uuid.UUID
	OrderBy   string
	Limit     int
	Offset    int
}

// ProposalFilter описывает параметры выборки предложений обмена.
// SenderUserID/ReceiverUserID фильтруют по владельцу соответствующего
// объявления, а не по самому объявлению.
type ProposalFilter struct {
	SenderUserID   uuid.UUID
	ReceiverUserID uuid.UUID
	Status         models.ProposalStatus
	Limit          int
	Offset         int
}

// Store – операции над данными. Реализация работает одинаково
// через пул соединений и внутри транзакции.
type Store interface {
	// Объявления
	GetAd(ctx context.Context, id uuid.UUID) (models.Ad, error)
	GetAdForUpdate(ctx context.Context, id uuid.UUID) (models.Ad, error)
	CreateAd(ctx context.Context, ad models.Ad) error
	UpdateAd(ctx context.Context, ad models.Ad) error
	DeleteAd(ctx context.Context, id uuid.UUID) error
	SetAdExchanged(ctx context.Context, id uuid.UUID, exchanged bool) error
	ListAds(ctx context.Context, f AdFilter) ([]models.Ad, int, error)

	// Предложения обмена
	GetProposal(ctx context.Context, id uuid.UUID) (models.ExchangeProposal, error)
	GetProposalForUpdate(ctx context.Context, id uuid.UUID) (models.ExchangeProposal, error)
	CreateProposal(ctx context.Context, p models.ExchangeProposal) error
	UpdateProposalStatus(ctx context.Context, id uuid.UUID, status models.ProposalStatus) error
	ListProposals(ctx context.Context, f ProposalFilter) ([]models.ExchangeProposal, int, error)
	HasPendingProposal(ctx context.Context, adSenderID, adReceiverID uuid.UUID) (bool, error)

	// Пользователи
	CreateUser(ctx context.Context, user models.User) error
	GetUserByID(ctx context.Context, id uuid.UUID) (models.User, error)
	GetUserByUsername(ctx context.Context, username string) (models.User, error)
	UpsertTelegramUser(ctx context.Context, user models.User) (models.User, error)
}

// Storage расширяет Store транзакционной границей. Колбэк WithinTx
// получает Store, привязанный к транзакции: при ошибке все изменения
// откатываются целиком.
type Storage interface {
	Store
	WithinTx(ctx context.Context, fn func(Store) error) error
}
