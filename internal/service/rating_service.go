package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/ignatzorin/specialist-hub/internal/domain/valueobject"
	"github.com/ignatzorin/specialist-hub/internal/events"
	"github.com/ignatzorin/specialist-hub/internal/goroutine"
	"github.com/ignatzorin/specialist-hub/internal/models"
	"github.com/ignatzorin/specialist-hub/internal/pkg/apperror"
	"github.com/ignatzorin/specialist-hub/internal/validation"
)

// RatingRepository — журнал оценок.
type RatingRepository interface {
	SubmitForEngagement(ctx context.Context, engagementID uuid.UUID, rating *models.Rating) error
	GetAggregate(ctx context.Context, targetID uuid.UUID, targetRole string) (float64, int, error)
	ListForTarget(ctx context.Context, targetID uuid.UUID, targetRole string) ([]models.Rating, error)
}

// RatingEngagementRepository — доступ к заказам для проверки права оценки.
type RatingEngagementRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Engagement, error)
}

// RatingAggregate — агрегированный рейтинг пользователя в роли.
type RatingAggregate struct {
	AvgRating   float64 `json:"avg_rating"`
	RatingCount int     `json:"rating_count"`
}

// RatingService — выставление и чтение оценок по завершённым заказам.
type RatingService struct {
	ratings     RatingRepository
	engagements RatingEngagementRepository
	notifier    Notifier
}

func NewRatingService(ratings RatingRepository, engagements RatingEngagementRepository, notifier Notifier) *RatingService {
	return &RatingService{ratings: ratings, engagements: engagements, notifier: notifier}
}

// Submit записывает оценку контрагента по завершённому заказу. Роль
// оцениваемого выводится из заказа: заказчик оценивает специалиста и
// наоборот. Каждая сторона заказа голосует один раз; новая оценка той
// же пары по более позднему заказу перезаписывает старую.
func (s *RatingService) Submit(ctx context.Context, raterID, engagementID uuid.UUID, score int) (*models.Rating, error) {
	if err := validation.ValidateScore(score); err != nil {
		return nil, apperror.New(apperror.ErrCodeValidation, err.Error())
	}

	engagement, err := s.engagements.GetByID(ctx, engagementID)
	if err != nil {
		return nil, err
	}
	if !engagement.IsParty(raterID) {
		return nil, apperror.ErrEngagementNotFound
	}
	if engagement.Status != valueobject.EngagementStatusCompleted {
		return nil, apperror.New(apperror.ErrCodeInvalidState,
			"оценка доступна только по завершённому заказу")
	}

	targetID := engagement.Counterpart(raterID)
	targetRole := models.RoleSpecialist
	if targetID == engagement.ClientID {
		targetRole = models.RoleClient
	}

	rating := &models.Rating{
		ID:         uuid.New(),
		TargetID:   targetID,
		RaterID:    raterID,
		Score:      score,
		TargetRole: targetRole,
	}

	if err := s.ratings.SubmitForEngagement(ctx, engagementID, rating); err != nil {
		return nil, err
	}

	s.notifyAsync(targetID, events.NewRatingRecorded(engagementID, raterID, targetID, targetRole, score))

	return rating, nil
}

// GetAggregate возвращает средний рейтинг и число оценок пользователя
// в роли. Без оценок — (0.0, 0).
func (s *RatingService) GetAggregate(ctx context.Context, targetID uuid.UUID, targetRole string) (*RatingAggregate, error) {
	if targetRole != models.RoleClient && targetRole != models.RoleSpecialist {
		return nil, apperror.New(apperror.ErrCodeValidation, "роль должна быть client или specialist")
	}

	avg, count, err := s.ratings.GetAggregate(ctx, targetID, targetRole)
	if err != nil {
		return nil, err
	}

	return &RatingAggregate{AvgRating: avg, RatingCount: count}, nil
}

// ListForTarget возвращает оценки пользователя в роли.
func (s *RatingService) ListForTarget(ctx context.Context, targetID uuid.UUID, targetRole string) ([]models.Rating, error) {
	if targetRole != models.RoleClient && targetRole != models.RoleSpecialist {
		return nil, apperror.New(apperror.ErrCodeValidation, "роль должна быть client или specialist")
	}
	return s.ratings.ListForTarget(ctx, targetID, targetRole)
}

func (s *RatingService) notifyAsync(userID uuid.UUID, event events.Event) {
	if s.notifier == nil {
		return
	}
	goroutine.SafeGo(func() {
		s.notifier.Notify(context.Background(), userID, event)
	})
}
