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

const adColumns = `id, user_id, title, description, image_url, category, condition, is_exchanged, created_at, updated_at`

func scanAd(row pgx.Row) (models.Ad, error) {
	var ad models.Ad
	err := row.Scan(
		&ad.ID,
		&ad.UserID,
		&ad.Title,
		&ad.Description,
		&ad.ImageURL,
		&ad.Category,
		&ad.Condition,
		&ad.IsExchanged,
		&ad.CreatedAt,
		&ad.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Ad{}, models.ErrAdNotFound
		}
		return models.Ad{}, err
	}
	return ad, nil
}

// GetAd возвращает объявление по ID
func (s *Storage) GetAd(ctx context.Context, id uuid.UUID) (models.Ad, error) {
	return scanAd(s.q.QueryRow(ctx, `
        SELECT `+adColumns+` FROM ads WHERE id = $1
    `, id))
}

// GetAdForUpdate возвращает объявление по ID с блокировкой строки.
// Вызывается только внутри транзакции.
func (s *Storage) GetAdForUpdate(ctx context.Context, id uuid.UUID) (models.Ad, error) {
	return scanAd(s.q.QueryRow(ctx, `
        SELECT `+adColumns+` FROM ads WHERE id = $1 FOR UPDATE
    `, id))
}

// CreateAd сохраняет новое объявление
func (s *Storage) CreateAd(ctx context.Context, ad models.Ad) error {
	_, err := s.q.Exec(ctx, `
        INSERT INTO ads (id, user_id, title, description, image_url, category, condition, is_exchanged)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
    `, ad.ID, ad.UserID, ad.Title, ad.Description, ad.ImageURL, ad.Category, ad.Condition, ad.IsExchanged)
	return err
}

// UpdateAd обновляет поля объявления
func (s *Storage) UpdateAd(ctx context.Context, ad models.Ad) error {
	tag, err := s.q.Exec(ctx, `
        UPDATE ads
        SET title = $1, description = $2, image_url = $3, category = $4, condition = $5, updated_at = NOW()
        WHERE id = $6
    `, ad.Title, ad.Description, ad.ImageURL, ad.Category, ad.Condition, ad.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return models.ErrAdNotFound
	}
	return nil
}

// DeleteAd удаляет объявление
func (s *Storage) DeleteAd(ctx context.Context, id uuid.UUID) error {
	tag, err := s.q.Exec(ctx, `
        DELETE FROM ads WHERE id = $1
    `, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return models.ErrAdNotFound
	}
	return nil
}

// SetAdExchanged выставляет флаг завершенного обмена
func (s *Storage) SetAdExchanged(ctx context.Context, id uuid.UUID, exchanged bool) error {
	tag, err := s.q.Exec(ctx, `
        UPDATE ads SET is_exchanged = $1, updated_at = NOW() WHERE id = $2
    `, exchanged, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return models.ErrAdNotFound
	}
	return nil
}

// ListAds возвращает страницу объявлений по фильтру и общее количество
func (s *Storage) ListAds(ctx context.Context, f storage.AdFilter) ([]models.Ad, int, error) {
	where, args := buildAdFilter(f)

	var total int
	err := s.q.QueryRow(ctx, `SELECT COUNT(*) FROM ads`+where, args...).Scan(&total)
	if err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + adColumns + ` FROM ads` + where +
		` ORDER BY ` + adOrderClause(f.OrderBy) +
		fmt.Sprintf(` LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)
	args = append(args, f.Limit, f.Offset)

	rows, err := s.q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var ads []models.Ad
	for rows.Next() {
		ad, err := scanAd(rows)
		if err != nil {
			return nil, 0, err
		}
		ads = append(ads, ad)
	}
	return ads, total, rows.Err()
}

// buildAdFilter собирает WHERE-часть запроса списка объявлений.
// Поиск – нечеткое вхождение в заголовок или описание, категория и
// состояние сравниваются без учета регистра.
func buildAdFilter(f storage.AdFilter) (string, []any) {
	var conds []string
	var args []any

	if f.Search != "" {
		args = append(args, "%"+f.Search+"%")
		n := len(args)
		conds = append(conds, fmt.Sprintf("(title ILIKE $%d OR description ILIKE $%d)", n, n))
	}
	if f.Category != "" {
		args = append(args, f.Category)
		conds = append(conds, fmt.Sprintf("LOWER(category) = LOWER($%d)", len(args)))
	}
	if f.Condition != "" {
		args = append(args, f.Condition)
		conds = append(conds, fmt.Sprintf("LOWER(condition) = LOWER($%d)", len(args)))
	}
	if f.UserID != uuid.Nil {
		args = append(args, f.UserID)
		conds = append(conds, fmt.Sprintf("user_id = $%d", len(args)))
	}

	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// adOrderClause сводит параметр сортировки к белому списку
func adOrderClause(orderBy string) string {
	switch orderBy {
	case "title":
		return "title ASC"
	case "-title":
		return "title DESC"
	case "created_at":
		return "created_at ASC"
	default:
		return "created_at DESC"
	}
}
