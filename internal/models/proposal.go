package models

import (
	"time"

	"github.com/google/uuid"
)

// ProposalStatus – статус предложения обмена
type ProposalStatus string

const (
	StatusPending  ProposalStatus = "pending"
	StatusAccepted ProposalStatus = "accepted"
	StatusRejected ProposalStatus = "rejected"
)

// IsTerminal сообщает, является ли статус конечным.
// Из конечного статуса переходы запрещены.
func (s ProposalStatus) IsTerminal() bool {
	return s == StatusAccepted || s == StatusRejected
}

// IsValid проверяет, что статус входит в список допустимых
func (s ProposalStatus) IsValid() bool {
	return s == StatusPending || s.IsTerminal()
}

// ExchangeProposal представляет предложение обмена между двумя объявлениями
type ExchangeProposal struct {
	ID           uuid.UUID      `json:"id"`
	AdSenderID   uuid.UUID      `json:"ad_sender_id"`
	AdReceiverID uuid.UUID      `json:"ad_receiver_id"`
	Comment      string         `json:"comment,omitempty"`
	Status       ProposalStatus `json:"status"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    *time.Time     `json:"updated_at,omitempty"`

	// Дополнительные поля для API
	AdSender   *Ad `json:"ad_sender,omitempty"`
	AdReceiver *Ad `json:"ad_receiver,omitempty"`
}
