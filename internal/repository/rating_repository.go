package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/ignatzorin/specialist-hub/internal/models"
	"github.com/ignatzorin/specialist-hub/internal/pkg/apperror"
	"github.com/ignatzorin/specialist-hub/internal/repository/common"
)

// RatingRepository отвечает за журнал оценок и агрегаты рейтинга.
type RatingRepository struct {
	db *sqlx.DB
}

func NewRatingRepository(db *sqlx.DB) *RatingRepository {
	return &RatingRepository{db: db}
}

// SubmitForEngagement атомарно отмечает, что сторона заказа поставила
// оценку, и записывает саму оценку. Флаг взводится условным UPDATE:
// если он уже стоит, строк не затронуто и повторная оценка по этому
// заказу отклоняется. Повторная оценка той же пары по другому
// завершённому заказу перезаписывает строку журнала через upsert.
func (r *RatingRepository) SubmitForEngagement(
	ctx context.Context,
	engagementID uuid.UUID,
	rating *models.Rating,
) error {
	ratedColumn, ok := ratedFlagColumn(rating.TargetRole)
	if !ok {
		return apperror.New(apperror.ErrCodeValidation, "неизвестная роль для оценки")
	}

	return common.WithTransaction(ctx, r.db, func(tx *sqlx.Tx) error {
		markQuery := fmt.Sprintf(`
			UPDATE engagements
			SET %s = TRUE, updated_at = NOW()
			WHERE id = $1 AND status = 'completed' AND %s = FALSE`,
			ratedColumn, ratedColumn)

		result, err := tx.ExecContext(ctx, markQuery, engagementID)
		if err != nil {
			return fmt.Errorf("rating repository: mark rated %w", err)
		}

		rows, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("rating repository: mark rated rows %w", err)
		}
		if rows == 0 {
			return apperror.ErrAlreadyRated
		}

		upsert := `
			INSERT INTO ratings (id, target_id, rater_id, score, target_role)
			VALUES ($1, $2, $3, $4, $5)
			ON CONFLICT (target_id, rater_id, target_role)
			DO UPDATE SET score = EXCLUDED.score, updated_at = NOW()
			RETURNING id, created_at, updated_at`

		err = tx.QueryRowxContext(ctx, upsert,
			rating.ID, rating.TargetID, rating.RaterID, rating.Score, rating.TargetRole,
		).Scan(&rating.ID, &rating.CreatedAt, &rating.UpdatedAt)
		if err != nil {
			return fmt.Errorf("rating repository: upsert rating %w", err)
		}

		return nil
	})
}

// ratedFlagColumn возвращает колонку флага "оценка поставлена" по роли
// оцениваемого: специалиста оценивает заказчик и наоборот.
func ratedFlagColumn(targetRole string) (string, bool) {
	switch targetRole {
	case models.RoleSpecialist:
		return "client_rated", true
	case models.RoleClient:
		return "specialist_rated", true
	default:
		return "", false
	}
}

// GetAggregate возвращает средний рейтинг (округлён до одного знака)
// и число оценок пользователя в заданной роли. Без оценок — (0.0, 0).
func (r *RatingRepository) GetAggregate(ctx context.Context, targetID uuid.UUID, targetRole string) (float64, int, error) {
	var row struct {
		AvgRating   float64 `db:"avg_rating"`
		RatingCount int     `db:"rating_count"`
	}

	query := `
		SELECT COALESCE(ROUND(AVG(score)::numeric, 1), 0.0) AS avg_rating,
		       COUNT(id) AS rating_count
		FROM ratings
		WHERE target_id = $1 AND target_role = $2`

	if err := r.db.GetContext(ctx, &row, query, targetID, targetRole); err != nil {
		return 0, 0, fmt.Errorf("rating repository: get aggregate %w", err)
	}

	return row.AvgRating, row.RatingCount, nil
}

// ListForTarget возвращает оценки пользователя в роли, свежие первыми.
func (r *RatingRepository) ListForTarget(ctx context.Context, targetID uuid.UUID, targetRole string) ([]models.Rating, error) {
	ratings := []models.Rating{}
	query := `
		SELECT * FROM ratings
		WHERE target_id = $1 AND target_role = $2
		ORDER BY updated_at DESC`

	if err := r.db.SelectContext(ctx, &ratings, query, targetID, targetRole); err != nil {
		return nil, fmt.Errorf("rating repository: list for target %w", err)
	}

	return ratings, nil
}
