package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ignatzorin/specialist-hub/internal/domain/valueobject"
	"github.com/ignatzorin/specialist-hub/internal/events"
	"github.com/ignatzorin/specialist-hub/internal/models"
	"github.com/ignatzorin/specialist-hub/internal/pkg/apperror"
)

func newRatingFixture() (*RatingService, *mockRatingRepo, *mockEngagementRepo, *recordingNotifier) {
	ratings := new(mockRatingRepo)
	engagements := new(mockEngagementRepo)
	notifier := &recordingNotifier{}
	svc := NewRatingService(ratings, engagements, notifier)
	return svc, ratings, engagements, notifier
}

func completedEngagement(clientID, specialistID uuid.UUID) *models.Engagement {
	return &models.Engagement{
		ID:           uuid.New(),
		ClientID:     clientID,
		SpecialistID: specialistID,
		Status:       valueobject.EngagementStatusCompleted,
	}
}

func TestRatingService_Submit_ClientRatesSpecialist(t *testing.T) {
	svc, ratings, engagements, notifier := newRatingFixture()
	clientID := uuid.New()
	specialistID := uuid.New()
	engagement := completedEngagement(clientID, specialistID)

	engagements.On("GetByID", mock.Anything, engagement.ID).Return(engagement, nil)
	ratings.On("SubmitForEngagement", mock.Anything, engagement.ID,
		mock.MatchedBy(func(r *models.Rating) bool {
			return r.TargetID == specialistID &&
				r.RaterID == clientID &&
				r.TargetRole == models.RoleSpecialist &&
				r.Score == 5
		})).Return(nil)

	rating, err := svc.Submit(context.Background(), clientID, engagement.ID, 5)

	require.NoError(t, err)
	assert.Equal(t, models.RoleSpecialist, rating.TargetRole)
	assert.Equal(t, specialistID, rating.TargetID)

	sent := waitForEvents(t, notifier, 1)
	assert.Equal(t, specialistID, sent[0].UserID)
	assert.Equal(t, events.RatingRecorded, sent[0].Event.Type)
	assert.Equal(t, 5, sent[0].Event.Score)
}

func TestRatingService_Submit_SpecialistRatesClient(t *testing.T) {
	svc, ratings, engagements, _ := newRatingFixture()
	clientID := uuid.New()
	specialistID := uuid.New()
	engagement := completedEngagement(clientID, specialistID)

	engagements.On("GetByID", mock.Anything, engagement.ID).Return(engagement, nil)
	ratings.On("SubmitForEngagement", mock.Anything, engagement.ID,
		mock.MatchedBy(func(r *models.Rating) bool {
			return r.TargetID == clientID && r.TargetRole == models.RoleClient
		})).Return(nil)

	rating, err := svc.Submit(context.Background(), specialistID, engagement.ID, 3)

	require.NoError(t, err)
	assert.Equal(t, models.RoleClient, rating.TargetRole)
}

func TestRatingService_Submit_ScoreOutOfRange(t *testing.T) {
	svc, _, _, _ := newRatingFixture()

	for _, score := range []int{0, 6, -1, 100} {
		_, err := svc.Submit(context.Background(), uuid.New(), uuid.New(), score)
		assert.True(t, apperror.IsValidation(err), "оценка %d должна отклоняться", score)
	}
}

func TestRatingService_Submit_OnlyCompletedEngagement(t *testing.T) {
	svc, _, engagements, _ := newRatingFixture()
	clientID := uuid.New()
	engagement := &models.Engagement{
		ID:           uuid.New(),
		ClientID:     clientID,
		SpecialistID: uuid.New(),
		Status:       valueobject.EngagementStatusActive,
	}

	engagements.On("GetByID", mock.Anything, engagement.ID).Return(engagement, nil)

	_, err := svc.Submit(context.Background(), clientID, engagement.ID, 4)

	assert.True(t, apperror.IsInvalidState(err))
}

func TestRatingService_Submit_OutsiderCannotRate(t *testing.T) {
	svc, _, engagements, _ := newRatingFixture()
	engagement := completedEngagement(uuid.New(), uuid.New())

	engagements.On("GetByID", mock.Anything, engagement.ID).Return(engagement, nil)

	_, err := svc.Submit(context.Background(), uuid.New(), engagement.ID, 4)

	assert.True(t, apperror.IsNotFound(err))
}

func TestRatingService_Submit_SecondVotePerEngagementRejected(t *testing.T) {
	svc, ratings, engagements, notifier := newRatingFixture()
	clientID := uuid.New()
	engagement := completedEngagement(clientID, uuid.New())

	engagements.On("GetByID", mock.Anything, engagement.ID).Return(engagement, nil)
	ratings.On("SubmitForEngagement", mock.Anything, engagement.ID, mock.Anything).
		Return(apperror.ErrAlreadyRated)

	_, err := svc.Submit(context.Background(), clientID, engagement.ID, 4)

	assert.True(t, apperror.IsAlreadyRated(err))
	assert.Empty(t, notifier.Events())
}

// Повторная оценка той же пары по другому завершённому заказу проходит:
// журнал хранит одну строку на (target, rater, role), новый заказ её
// перезаписывает.
func TestRatingService_Submit_RepeatPairOverwritesScore(t *testing.T) {
	svc, ratings, engagements, _ := newRatingFixture()
	clientID := uuid.New()
	specialistID := uuid.New()

	first := completedEngagement(clientID, specialistID)
	second := completedEngagement(clientID, specialistID)

	engagements.On("GetByID", mock.Anything, first.ID).Return(first, nil)
	engagements.On("GetByID", mock.Anything, second.ID).Return(second, nil)
	ratings.On("SubmitForEngagement", mock.Anything, first.ID,
		mock.MatchedBy(func(r *models.Rating) bool { return r.Score == 5 })).Return(nil)
	ratings.On("SubmitForEngagement", mock.Anything, second.ID,
		mock.MatchedBy(func(r *models.Rating) bool { return r.Score == 2 })).Return(nil)

	_, err := svc.Submit(context.Background(), clientID, first.ID, 5)
	require.NoError(t, err)

	rating, err := svc.Submit(context.Background(), clientID, second.ID, 2)
	require.NoError(t, err)

	assert.Equal(t, 2, rating.Score)
	assert.Equal(t, specialistID, rating.TargetID)
	assert.Equal(t, models.RoleSpecialist, rating.TargetRole)
	ratings.AssertExpectations(t)
}

func TestRatingService_GetAggregate_EmptyIsZero(t *testing.T) {
	svc, ratings, _, _ := newRatingFixture()
	targetID := uuid.New()

	ratings.On("GetAggregate", mock.Anything, targetID, models.RoleSpecialist).
		Return(0.0, 0, nil)

	aggregate, err := svc.GetAggregate(context.Background(), targetID, models.RoleSpecialist)

	require.NoError(t, err)
	assert.Equal(t, 0.0, aggregate.AvgRating)
	assert.Equal(t, 0, aggregate.RatingCount)
}

func TestRatingService_GetAggregate_RolesAreSeparate(t *testing.T) {
	svc, ratings, _, _ := newRatingFixture()
	targetID := uuid.New()

	ratings.On("GetAggregate", mock.Anything, targetID, models.RoleSpecialist).
		Return(4.7, 12, nil)
	ratings.On("GetAggregate", mock.Anything, targetID, models.RoleClient).
		Return(3.0, 2, nil)

	asSpecialist, err := svc.GetAggregate(context.Background(), targetID, models.RoleSpecialist)
	require.NoError(t, err)
	asClient, err := svc.GetAggregate(context.Background(), targetID, models.RoleClient)
	require.NoError(t, err)

	assert.Equal(t, 4.7, asSpecialist.AvgRating)
	assert.Equal(t, 12, asSpecialist.RatingCount)
	assert.Equal(t, 3.0, asClient.AvgRating)
	assert.Equal(t, 2, asClient.RatingCount)
}

func TestRatingService_GetAggregate_UnknownRole(t *testing.T) {
	svc, _, _, _ := newRatingFixture()

	_, err := svc.GetAggregate(context.Background(), uuid.New(), "admin")

	assert.True(t, apperror.IsValidation(err))
}
