package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/ignatzorin/specialist-hub/internal/models"
	"github.com/ignatzorin/specialist-hub/internal/pkg/apperror"
	"github.com/ignatzorin/specialist-hub/internal/repository/common"
)

// UserRepository отвечает за пользователей и их сессии.
type UserRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create создаёт пользователя и сразу неактивную анкету специалиста
// в одной транзакции: каждый аккаунт гибридный.
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	return common.WithTransaction(ctx, r.db, func(tx *sqlx.Tx) error {
		query := `
			INSERT INTO users (id, email, handle, full_name, password_hash)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING created_at, updated_at`

		err := tx.QueryRowxContext(ctx, query,
			user.ID, user.Email, user.Handle, user.FullName, user.PasswordHash,
		).Scan(&user.CreatedAt, &user.UpdatedAt)
		if err != nil {
			if isUniqueViolation(err) {
				return apperror.New(apperror.ErrCodeConflict, "пользователь с таким email или юзернеймом уже существует")
			}
			return fmt.Errorf("user repository: create user %w", err)
		}

		_, err = tx.ExecContext(ctx, `
			INSERT INTO specialist_profiles (user_id, is_active)
			VALUES ($1, FALSE)`, user.ID)
		if err != nil {
			return fmt.Errorf("user repository: create profile %w", err)
		}

		return nil
	})
}

// GetByID возвращает пользователя по идентификатору.
func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return common.GetByField[models.User](ctx, r.db, "users", "id", id, apperror.ErrUserNotFound)
}

// GetByEmail возвращает пользователя по email.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return common.GetByField[models.User](ctx, r.db, "users", "email", email, apperror.ErrUserNotFound)
}

// UpdateFullName меняет отображаемое имя пользователя.
func (r *UserRepository) UpdateFullName(ctx context.Context, id uuid.UUID, fullName string) error {
	result, err := r.db.ExecContext(ctx, `
		UPDATE users SET full_name = $1, updated_at = NOW() WHERE id = $2`,
		fullName, id)
	if err != nil {
		return fmt.Errorf("user repository: update full name %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("user repository: update full name rows %w", err)
	}
	if rows == 0 {
		return apperror.ErrUserNotFound
	}

	return nil
}

// GetClientCard возвращает карточку заказчика с агрегированным рейтингом.
func (r *UserRepository) GetClientCard(ctx context.Context, id uuid.UUID) (*models.ClientCard, error) {
	var row struct {
		UserID      uuid.UUID `db:"user_id"`
		FullName    string    `db:"full_name"`
		Handle      string    `db:"handle"`
		AvgRating   float64   `db:"avg_rating"`
		RatingCount int       `db:"rating_count"`
	}

	query := `
		SELECT u.id AS user_id, u.full_name, u.handle,
		       COALESCE(ROUND(AVG(r.score)::numeric, 1), 0.0) AS avg_rating,
		       COUNT(r.id) AS rating_count
		FROM users u
		LEFT JOIN ratings r ON r.target_id = u.id AND r.target_role = 'client'
		WHERE u.id = $1
		GROUP BY u.id, u.full_name, u.handle`

	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.ErrUserNotFound
		}
		return nil, fmt.Errorf("user repository: get client card %w", err)
	}

	return &models.ClientCard{
		UserID:      row.UserID,
		FullName:    row.FullName,
		Handle:      row.Handle,
		AvgRating:   row.AvgRating,
		RatingCount: row.RatingCount,
	}, nil
}

// CreateSession сохраняет refresh сессию.
func (r *UserRepository) CreateSession(ctx context.Context, session *models.Session) error {
	query := `
		INSERT INTO sessions (id, user_id, refresh_token, user_agent, ip_address, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at`

	err := r.db.QueryRowxContext(ctx, query,
		session.ID, session.UserID, session.RefreshToken,
		session.UserAgent, session.IPAddress, session.ExpiresAt,
	).Scan(&session.CreatedAt)
	if err != nil {
		return fmt.Errorf("user repository: create session %w", err)
	}

	return nil
}

// GetSessionByToken возвращает живую сессию по refresh токену.
func (r *UserRepository) GetSessionByToken(ctx context.Context, token string) (*models.Session, error) {
	var session models.Session
	query := `SELECT * FROM sessions WHERE refresh_token = $1 AND expires_at > NOW()`

	if err := r.db.GetContext(ctx, &session, query, token); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.ErrUnauthorized
		}
		return nil, fmt.Errorf("user repository: get session %w", err)
	}

	return &session, nil
}

// DeleteSession удаляет сессию по refresh токену.
func (r *UserRepository) DeleteSession(ctx context.Context, token string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM sessions WHERE refresh_token = $1`, token); err != nil {
		return fmt.Errorf("user repository: delete session %w", err)
	}
	return nil
}

// DeleteExpiredSessions чистит просроченные сессии, возвращает число удалённых.
func (r *UserRepository) DeleteExpiredSessions(ctx context.Context) (int64, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM sessions WHERE expires_at <= NOW()`)
	if err != nil {
		return 0, fmt.Errorf("user repository: delete expired sessions %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("user repository: delete expired sessions rows %w", err)
	}

	return rows, nil
}
