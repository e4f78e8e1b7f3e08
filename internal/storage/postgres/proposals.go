package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jane-devs/barter-platform/internal/models"
	"github.com/jane-devs/barter-platform/internal/storage"
)

const proposalColumns = `id, ad_sender_id, ad_receiver_id, comment, status, created_at, updated_at`

func scanProposal(row pgx.Row) (models.ExchangeProposal, error) {
	var p models.ExchangeProposal
	err := row.Scan(
		&p.ID,
		&p.AdSenderID,
		&p.AdReceiverID,
		&p.Comment,
		&p.Status,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.ExchangeProposal{}, models.ErrProposalNotFound
		}
		return models.ExchangeProposal{}, err
	}
	return p, nil
}

// GetProposal возвращает предложение обмена по ID
func (s *Storage) GetProposal(ctx context.Context, id uuid.UUID) (models.ExchangeProposal, error) {
	return scanProposal(s.q.QueryRow(ctx, `
        SELECT `+proposalColumns+` FROM exchange_proposals WHERE id = $1
    `, id))
}

// GetProposalForUpdate возвращает предложение по ID с блокировкой строки.
// Вызывается только внутри транзакции.
func (s *Storage) GetProposalForUpdate(ctx context.Context, id uuid.UUID) (models.ExchangeProposal, error) {
	return scanProposal(s.q.QueryRow(ctx, `
        SELECT `+proposalColumns+` FROM exchange_proposals WHERE id = $1 FOR UPDATE
    `, id))
}

// CreateProposal сохраняет новое предложение обмена
func (s *Storage) CreateProposal(ctx context.Context, p models.ExchangeProposal) error {
	_, err := s.q.Exec(ctx, `
        INSERT INTO exchange_proposals (id, ad_sender_id, ad_receiver_id, comment, status)
        VALUES ($1, $2, $3, $4, $5)
    `, p.ID, p.AdSenderID, p.AdReceiverID, p.Comment, p.Status)
	return err
}

// UpdateProposalStatus обновляет статус предложения обмена
func (s *Storage) UpdateProposalStatus(ctx context.Context, id uuid.UUID, status models.ProposalStatus) error {
	tag, err := s.q.Exec(ctx, `
        UPDATE exchange_proposals SET status = $1, updated_at = NOW() WHERE id = $2
    `, status, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return models.ErrProposalNotFound
	}
	return nil
}

// HasPendingProposal проверяет, существует ли необработанное предложение
// для той же пары объявлений
func (s *Storage) HasPendingProposal(ctx context.Context, adSenderID, adReceiverID uuid.UUID) (bool, error) {
	var count int
	err := s.q.QueryRow(ctx, `
        SELECT COUNT(*) FROM exchange_proposals
        WHERE ad_sender_id = $1 AND ad_receiver_id = $2 AND status = 'pending'
    `, adSenderID, adReceiverID).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// ListProposals возвращает страницу предложений по фильтру и общее количество.
// Фильтры по пользователям идут через владельцев связанных объявлений.
func (s *Storage) ListProposals(ctx context.Context, f storage.ProposalFilter) ([]models.ExchangeProposal, int, error) {
	where, args := buildProposalFilter(f)

	var total int
	err := s.q.QueryRow(ctx, `
        SELECT COUNT(*) FROM exchange_proposals p
        JOIN ads sa ON sa.id = p.ad_sender_id
        JOIN ads ra ON ra.id = p.ad_receiver_id`+where, args...).Scan(&total)
	if err != nil {
		return nil, 0, err
	}

	query := `
        SELECT p.id, p.ad_sender_id, p.ad_receiver_id, p.comment, p.status, p.created_at, p.updated_at
        FROM exchange_proposals p
        JOIN ads sa ON sa.id = p.ad_sender_id
        JOIN ads ra ON ra.id = p.ad_receiver_id` + where +
		` ORDER BY p.created_at DESC` +
		fmt.Sprintf(` LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)
	args = append(args, f.Limit, f.Offset)

	rows, err := s.q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var proposals []models.ExchangeProposal
	for rows.Next() {
		p, err := scanProposal(rows)
		if err != nil {
			return nil, 0, err
		}
		proposals = append(proposals, p)
	}
	return proposals, total, rows.Err()
}

// buildProposalFilter собирает WHERE-часть запроса списка предложений
func buildProposalFilter(f storage.ProposalFilter) (string, []any) {
	var conds []string
	var args []any

	if f.SenderUserID != uuid.Nil && f.ReceiverUserID != uuid.Nil {
		args = append(args, f.SenderUserID, f.ReceiverUserID)
		conds = append(conds, fmt.Sprintf("(sa.user_id = $%d OR ra.user_id = $%d)", len(args)-1, len(args)))
	} else if f.SenderUserID != uuid.Nil {
		args = append(args, f.SenderUserID)
		conds = append(conds, fmt.Sprintf("sa.user_id = $%d", len(args)))
	} else if f.ReceiverUserID != uuid.Nil {
		args = append(args, f.ReceiverUserID)
		conds = append(conds, fmt.Sprintf("ra.user_id = $%d", len(args)))
	}
	if f.Status != "" {
		args = append(args, f.Status)
		conds = append(conds, fmt.Sprintf("p.status = $%d", len(args)))
	}

	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}
