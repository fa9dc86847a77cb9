package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/ignatzorin/specialist-hub/internal/domain/valueobject"
	"github.com/ignatzorin/specialist-hub/internal/models"
	"github.com/ignatzorin/specialist-hub/internal/pkg/apperror"
	"github.com/ignatzorin/specialist-hub/internal/repository/common"
)

// EngagementRepository отвечает за хранение заказов и атомарные
// переходы их статусов.
type EngagementRepository struct {
	db *sqlx.DB
}

func NewEngagementRepository(db *sqlx.DB) *EngagementRepository {
	return &EngagementRepository{db: db}
}

// CreateIfFree создаёт заказ, только если обе стороны свободны.
// Порядок внутри транзакции: advisory lock на обоих участниках
// (в детерминированном порядке, чтобы исключить deadlock), затем
// проверка занятости, затем вставка. Частичные уникальные индексы
// в схеме страхуют от гонок в обход этого пути.
func (r *EngagementRepository) CreateIfFree(ctx context.Context, engagement *models.Engagement) error {
	return common.WithTransaction(ctx, r.db, func(tx *sqlx.Tx) error {
		first, second := orderedLockKeys(engagement.ClientID, engagement.SpecialistID)

		if _, err := tx.ExecContext(ctx,
			`SELECT pg_advisory_xact_lock(hashtextextended($1, 0))`, first); err != nil {
			return fmt.Errorf("engagement repository: lock first party %w", err)
		}
		if _, err := tx.ExecContext(ctx,
			`SELECT pg_advisory_xact_lock(hashtextextended($1, 0))`, second); err != nil {
			return fmt.Errorf("engagement repository: lock second party %w", err)
		}

		var busy bool
		err := tx.GetContext(ctx, &busy, `
			SELECT EXISTS (
				SELECT 1 FROM engagements
				WHERE status IN ('pending', 'active', 'finish_request')
				  AND (client_id IN ($1, $2) OR specialist_id IN ($1, $2))
			)`, engagement.ClientID, engagement.SpecialistID)
		if err != nil {
			return fmt.Errorf("engagement repository: check busy %w", err)
		}
		if busy {
			return apperror.ErrUserBusy
		}

		query := `
			INSERT INTO engagements (id, client_id, specialist_id, status)
			VALUES ($1, $2, $3, $4)
			RETURNING created_at, updated_at`

		err = tx.QueryRowxContext(ctx, query,
			engagement.ID, engagement.ClientID, engagement.SpecialistID, engagement.Status,
		).Scan(&engagement.CreatedAt, &engagement.UpdatedAt)
		if err != nil {
			if isUniqueViolation(err) {
				return apperror.ErrUserBusy
			}
			return fmt.Errorf("engagement repository: create %w", err)
		}

		return nil
	})
}

// orderedLockKeys возвращает ключи блокировки в стабильном порядке.
func orderedLockKeys(a, b uuid.UUID) (string, string) {
	first, second := a.String(), b.String()
	if first > second {
		first, second = second, first
	}
	return first, second
}

// GetByID возвращает заказ по идентификатору.
func (r *EngagementRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Engagement, error) {
	return common.GetByField[models.Engagement](ctx, r.db, "engagements", "id", id, apperror.ErrEngagementNotFound)
}

// GetOpenForUser возвращает открытый заказ пользователя в любой роли,
// либо ErrEngagementNotFound.
func (r *EngagementRepository) GetOpenForUser(ctx context.Context, userID uuid.UUID) (*models.Engagement, error) {
	var engagement models.Engagement
	query := `
		SELECT * FROM engagements
		WHERE status IN ('pending', 'active', 'finish_request')
		  AND (client_id = $1 OR specialist_id = $1)
		LIMIT 1`

	if err := r.db.GetContext(ctx, &engagement, query, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.ErrEngagementNotFound
		}
		return nil, fmt.Errorf("engagement repository: get open for user %w", err)
	}

	return &engagement, nil
}

// ListForUser возвращает все заказы пользователя, свежие первыми.
func (r *EngagementRepository) ListForUser(ctx context.Context, userID uuid.UUID) ([]models.Engagement, error) {
	engagements := []models.Engagement{}
	query := `
		SELECT * FROM engagements
		WHERE client_id = $1 OR specialist_id = $1
		ORDER BY created_at DESC`

	if err := r.db.SelectContext(ctx, &engagements, query, userID); err != nil {
		return nil, fmt.Errorf("engagement repository: list for user %w", err)
	}

	return engagements, nil
}

// UpdateStatus выполняет compare-and-swap перехода статуса: строка
// обновляется только если текущий статус совпадает с ожидаемым.
// finishRequestedBy передаётся при переходе в finish_request и
// обнуляется при возврате в терминальные/начальные статусы.
func (r *EngagementRepository) UpdateStatus(
	ctx context.Context,
	id uuid.UUID,
	from, to valueobject.EngagementStatus,
	finishRequestedBy *uuid.UUID,
) (*models.Engagement, error) {
	var engagement models.Engagement
	query := `
		UPDATE engagements
		SET status = $1, finish_requested_by = $2, updated_at = NOW()
		WHERE id = $3 AND status = $4
		RETURNING *`

	err := r.db.GetContext(ctx, &engagement, query, to, finishRequestedBy, id, from)
	if err == nil {
		return &engagement, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("engagement repository: update status %w", err)
	}

	// CAS не сработал: либо заказа нет, либо статус уже изменился.
	if _, getErr := r.GetByID(ctx, id); getErr != nil {
		return nil, getErr
	}

	return nil, apperror.New(apperror.ErrCodeInvalidState, "действие недоступно в текущем статусе заказа")
}

// LastCompletedBetween возвращает последний завершённый заказ между
// двумя пользователями в любых ролях.
func (r *EngagementRepository) LastCompletedBetween(ctx context.Context, userA, userB uuid.UUID) (*models.Engagement, error) {
	var engagement models.Engagement
	query := `
		SELECT * FROM engagements
		WHERE status = 'completed'
		  AND ((client_id = $1 AND specialist_id = $2)
		    OR (client_id = $2 AND specialist_id = $1))
		ORDER BY updated_at DESC
		LIMIT 1`

	if err := r.db.GetContext(ctx, &engagement, query, userA, userB); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.ErrEngagementNotFound
		}
		return nil, fmt.Errorf("engagement repository: last completed between %w", err)
	}

	return &engagement, nil
}
