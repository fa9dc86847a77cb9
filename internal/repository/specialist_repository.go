package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/ignatzorin/specialist-hub/internal/models"
	"github.com/ignatzorin/specialist-hub/internal/pkg/apperror"
)

// SpecialistRepository отвечает за анкеты специалистов и поиск по ним.
type SpecialistRepository struct {
	db *sqlx.DB
}

func NewSpecialistRepository(db *sqlx.DB) *SpecialistRepository {
	return &SpecialistRepository{db: db}
}

// specialistProfileRow — строка анкеты с массивом навыков в формате pq.
type specialistProfileRow struct {
	UserID         uuid.UUID      `db:"user_id"`
	Specialization sql.NullString `db:"specialization"`
	Skills         pq.StringArray `db:"skills"`
	Experience     sql.NullString `db:"experience"`
	PortfolioURL   sql.NullString `db:"portfolio_url"`
	Contact        sql.NullString `db:"contact"`
	IsActive       bool           `db:"is_active"`
	UpdatedAt      sql.NullTime   `db:"updated_at"`
}

func (row *specialistProfileRow) toModel() *models.SpecialistProfile {
	profile := &models.SpecialistProfile{
		UserID:         row.UserID,
		Specialization: row.Specialization.String,
		Skills:         []string(row.Skills),
		Experience:     row.Experience.String,
		PortfolioURL:   row.PortfolioURL.String,
		Contact:        row.Contact.String,
		IsActive:       row.IsActive,
	}
	if row.UpdatedAt.Valid {
		profile.UpdatedAt = row.UpdatedAt.Time
	}
	return profile
}

// GetByUserID возвращает анкету специалиста.
func (r *SpecialistRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*models.SpecialistProfile, error) {
	var row specialistProfileRow
	query := `
		SELECT user_id, specialization, skills, experience, portfolio_url, contact, is_active, updated_at
		FROM specialist_profiles
		WHERE user_id = $1`

	if err := r.db.GetContext(ctx, &row, query, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.ErrProfileNotFound
		}
		return nil, fmt.Errorf("specialist repository: get profile %w", err)
	}

	return row.toModel(), nil
}

// Update перезаписывает анкету. Активность управляется вызывающей стороной:
// анкета становится видимой в поиске только по явному флагу.
func (r *SpecialistRepository) Update(ctx context.Context, profile *models.SpecialistProfile) error {
	query := `
		UPDATE specialist_profiles
		SET specialization = $1, skills = $2, experience = $3,
		    portfolio_url = $4, contact = $5, is_active = $6, updated_at = NOW()
		WHERE user_id = $7`

	result, err := r.db.ExecContext(ctx, query,
		profile.Specialization, pq.StringArray(profile.Skills), profile.Experience,
		profile.PortfolioURL, profile.Contact, profile.IsActive, profile.UserID)
	if err != nil {
		return fmt.Errorf("specialist repository: update profile %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("specialist repository: update profile rows %w", err)
	}
	if rows == 0 {
		return apperror.ErrProfileNotFound
	}

	return nil
}

// GetCard возвращает карточку активного специалиста с рейтингом исполнителя.
func (r *SpecialistRepository) GetCard(ctx context.Context, userID uuid.UUID) (*models.SpecialistCard, error) {
	var row struct {
		specialistProfileRow
		FullName    string  `db:"full_name"`
		Handle      string  `db:"handle"`
		AvgRating   float64 `db:"avg_rating"`
		RatingCount int     `db:"rating_count"`
	}

	query := `
		SELECT p.user_id, p.specialization, p.skills, p.experience,
		       p.portfolio_url, p.contact, p.is_active, p.updated_at,
		       u.full_name, u.handle,
		       COALESCE(ROUND(AVG(r.score)::numeric, 1), 0.0) AS avg_rating,
		       COUNT(r.id) AS rating_count
		FROM specialist_profiles p
		JOIN users u ON u.id = p.user_id
		LEFT JOIN ratings r ON r.target_id = p.user_id AND r.target_role = 'specialist'
		WHERE p.user_id = $1
		GROUP BY p.user_id, p.specialization, p.skills, p.experience,
		         p.portfolio_url, p.contact, p.is_active, p.updated_at,
		         u.full_name, u.handle`

	if err := r.db.GetContext(ctx, &row, query, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.ErrProfileNotFound
		}
		return nil, fmt.Errorf("specialist repository: get card %w", err)
	}

	return &models.SpecialistCard{
		Profile:     *row.toModel(),
		FullName:    row.FullName,
		Handle:      row.Handle,
		AvgRating:   row.AvgRating,
		RatingCount: row.RatingCount,
	}, nil
}

// searchRow — строка выдачи поиска.
type searchRow struct {
	UserID         uuid.UUID      `db:"user_id"`
	FullName       string         `db:"full_name"`
	Specialization sql.NullString `db:"specialization"`
	Skills         pq.StringArray `db:"skills"`
	AvgRating      float64        `db:"avg_rating"`
	RatingCount    int            `db:"rating_count"`
}

func toSearchResults(rows []searchRow) []models.SpecialistSearchResult {
	results := make([]models.SpecialistSearchResult, 0, len(rows))
	for _, row := range rows {
		results = append(results, models.SpecialistSearchResult{
			UserID:         row.UserID,
			FullName:       row.FullName,
			Specialization: row.Specialization.String,
			Skills:         []string(row.Skills),
			AvgRating:      row.AvgRating,
			RatingCount:    row.RatingCount,
		})
	}
	return results
}

const searchSelect = `
	SELECT p.user_id, u.full_name, p.specialization, p.skills,
	       COALESCE(ROUND(AVG(r.score)::numeric, 1), 0.0) AS avg_rating,
	       COUNT(r.id) AS rating_count
	FROM specialist_profiles p
	JOIN users u ON u.id = p.user_id
	LEFT JOIN ratings r ON r.target_id = p.user_id AND r.target_role = 'specialist'
	WHERE p.is_active = TRUE`

const searchGroupOrder = `
	GROUP BY p.user_id, u.full_name, p.specialization, p.skills
	ORDER BY avg_rating DESC, rating_count DESC, u.full_name`

// SearchBySkill ищет активных специалистов, у которых хотя бы один навык
// содержит запрос как подстроку (без учёта регистра).
func (r *SpecialistRepository) SearchBySkill(ctx context.Context, skill string) ([]models.SpecialistSearchResult, error) {
	var rows []searchRow
	query := searchSelect + `
	  AND EXISTS (
	      SELECT 1 FROM unnest(p.skills) AS s
	      WHERE s ILIKE '%' || $1 || '%'
	  )` + searchGroupOrder

	if err := r.db.SelectContext(ctx, &rows, query, skill); err != nil {
		return nil, fmt.Errorf("specialist repository: search by skill %w", err)
	}

	return toSearchResults(rows), nil
}

// SearchBySkillsAny ищет активных специалистов, владеющих хотя бы одним
// из перечисленных навыков (точное совпадение по каноническому имени).
func (r *SpecialistRepository) SearchBySkillsAny(ctx context.Context, skillNames []string) ([]models.SpecialistSearchResult, error) {
	if len(skillNames) == 0 {
		return []models.SpecialistSearchResult{}, nil
	}

	var rows []searchRow
	query := searchSelect + `
	  AND p.skills && $1` + searchGroupOrder

	if err := r.db.SelectContext(ctx, &rows, query, pq.StringArray(skillNames)); err != nil {
		return nil, fmt.Errorf("specialist repository: search by skills %w", err)
	}

	return toSearchResults(rows), nil
}

// SearchBySpecialization ищет активных специалистов по точному совпадению
// специализации.
func (r *SpecialistRepository) SearchBySpecialization(ctx context.Context, specialization string) ([]models.SpecialistSearchResult, error) {
	var rows []searchRow
	query := searchSelect + `
	  AND p.specialization = $1` + searchGroupOrder

	if err := r.db.SelectContext(ctx, &rows, query, specialization); err != nil {
		return nil, fmt.Errorf("specialist repository: search by specialization %w", err)
	}

	return toSearchResults(rows), nil
}
