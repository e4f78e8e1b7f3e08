package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jane-devs/barter-platform/internal/models"
)

const userColumns = `id, username, password_hash, first_name, last_name, avatar_url, telegram_id, created_at`

func scanUser(row pgx.Row) (models.User, error) {
	var user models.User
	err := row.Scan(
		&user.ID,
		&user.Username,
		&user.PasswordHash,
		&user.FirstName,
		&user.LastName,
		&user.AvatarURL,
		&user.TelegramID,
		&user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.User{}, models.ErrUserNotFound
		}
		return models.User{}, err
	}
	return user, nil
}

// CreateUser сохраняет нового пользователя
func (s *Storage) CreateUser(ctx context.Context, user models.User) error {
	_, err := s.q.Exec(ctx, `
        INSERT INTO users (id, username, password_hash, first_name, last_name, avatar_url, telegram_id)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
    `, user.ID, user.Username, user.PasswordHash, user.FirstName, user.LastName, user.AvatarURL, user.TelegramID)
	return err
}

// GetUserByID возвращает пользователя по ID
func (s *Storage) GetUserByID(ctx context.Context, id uuid.UUID) (models.User, error) {
	return scanUser(s.q.QueryRow(ctx, `
        SELECT `+userColumns+` FROM users WHERE id = $1
    `, id))
}

// GetUserByUsername возвращает пользователя по юзернейму
func (s *Storage) GetUserByUsername(ctx context.Context, username string) (models.User, error) {
	return scanUser(s.q.QueryRow(ctx, `
        SELECT `+userColumns+` FROM users WHERE username = $1
    `, username))
}

// UpsertTelegramUser создает пользователя по данным Telegram или
// обновляет профиль существующего
func (s *Storage) UpsertTelegramUser(ctx context.Context, user models.User) (models.User, error) {
	existing, err := scanUser(s.q.QueryRow(ctx, `
        SELECT `+userColumns+` FROM users WHERE telegram_id = $1
    `, user.TelegramID))

	if err == nil {
		_, err = s.q.Exec(ctx, `
            UPDATE users SET first_name = $1, last_name = $2, avatar_url = $3 WHERE id = $4
        `, user.FirstName, user.LastName, user.AvatarURL, existing.ID)
		if err != nil {
			return models.User{}, err
		}
		existing.FirstName = user.FirstName
		existing.LastName = user.LastName
		existing.AvatarURL = user.AvatarURL
		return existing, nil
	}
	if !errors.Is(err, models.ErrUserNotFound) {
		return models.User{}, err
	}

	user.ID = uuid.New()
	if err := s.CreateUser(ctx, user); err != nil {
		return models.User{}, err
	}
	return s.GetUserByID(ctx, user.ID)
}
