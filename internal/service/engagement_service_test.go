package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ignatzorin/specialist-hub/internal/domain/valueobject"
	"github.com/ignatzorin/specialist-hub/internal/events"
	"github.com/ignatzorin/specialist-hub/internal/models"
	"github.com/ignatzorin/specialist-hub/internal/pkg/apperror"
)

func newEngagementFixture() (*EngagementService, *mockEngagementRepo, *mockSpecialistRepo, *recordingNotifier) {
	engagements := new(mockEngagementRepo)
	specialists := new(mockSpecialistRepo)
	notifier := &recordingNotifier{}
	svc := NewEngagementService(engagements, specialists, notifier)
	return svc, engagements, specialists, notifier
}

// waitForEvents дожидается асинхронной доставки нужного числа событий.
func waitForEvents(t *testing.T, notifier *recordingNotifier, count int) []sentEvent {
	t.Helper()
	require.Eventually(t, func() bool {
		return len(notifier.Events()) >= count
	}, time.Second, 5*time.Millisecond)
	return notifier.Events()
}

func TestEngagementService_Request_CreatesPendingAndNotifiesSpecialist(t *testing.T) {
	svc, engagements, specialists, notifier := newEngagementFixture()
	clientID := uuid.New()
	specialistID := uuid.New()

	specialists.On("GetByUserID", mock.Anything, specialistID).
		Return(&models.SpecialistProfile{UserID: specialistID, IsActive: true}, nil)
	engagements.On("CreateIfFree", mock.Anything, mock.MatchedBy(func(e *models.Engagement) bool {
		return e.ClientID == clientID &&
			e.SpecialistID == specialistID &&
			e.Status == valueobject.EngagementStatusPending
	})).Return(nil)

	engagement, err := svc.Request(context.Background(), clientID, specialistID)

	require.NoError(t, err)
	assert.Equal(t, valueobject.EngagementStatusPending, engagement.Status)

	sent := waitForEvents(t, notifier, 1)
	assert.Equal(t, specialistID, sent[0].UserID)
	assert.Equal(t, events.EngagementCreated, sent[0].Event.Type)
	engagements.AssertExpectations(t)
}

func TestEngagementService_Request_RejectsSelf(t *testing.T) {
	svc, _, _, _ := newEngagementFixture()
	userID := uuid.New()

	_, err := svc.Request(context.Background(), userID, userID)

	assert.True(t, apperror.IsValidation(err))
}

func TestEngagementService_Request_RejectsInactiveSpecialist(t *testing.T) {
	svc, _, specialists, _ := newEngagementFixture()
	specialistID := uuid.New()

	specialists.On("GetByUserID", mock.Anything, specialistID).
		Return(&models.SpecialistProfile{UserID: specialistID, IsActive: false}, nil)

	_, err := svc.Request(context.Background(), uuid.New(), specialistID)

	assert.True(t, apperror.IsNotFound(err))
}

func TestEngagementService_Request_BusyPartyConflict(t *testing.T) {
	svc, engagements, specialists, notifier := newEngagementFixture()
	specialistID := uuid.New()

	specialists.On("GetByUserID", mock.Anything, specialistID).
		Return(&models.SpecialistProfile{UserID: specialistID, IsActive: true}, nil)
	engagements.On("CreateIfFree", mock.Anything, mock.Anything).
		Return(apperror.ErrUserBusy)

	_, err := svc.Request(context.Background(), uuid.New(), specialistID)

	assert.True(t, apperror.IsConflict(err))
	assert.Empty(t, notifier.Events())
}

func TestEngagementService_Accept_OnlySpecialist(t *testing.T) {
	svc, engagements, _, _ := newEngagementFixture()
	clientID := uuid.New()
	specialistID := uuid.New()
	engagement := &models.Engagement{
		ID:           uuid.New(),
		ClientID:     clientID,
		SpecialistID: specialistID,
		Status:       valueobject.EngagementStatusPending,
	}

	engagements.On("GetByID", mock.Anything, engagement.ID).Return(engagement, nil)

	_, err := svc.Accept(context.Background(), clientID, engagement.ID)

	assert.True(t, apperror.IsForbidden(err))
}

func TestEngagementService_Accept_TransitionsToActive(t *testing.T) {
	svc, engagements, _, notifier := newEngagementFixture()
	clientID := uuid.New()
	specialistID := uuid.New()
	engagement := &models.Engagement{
		ID:           uuid.New(),
		ClientID:     clientID,
		SpecialistID: specialistID,
		Status:       valueobject.EngagementStatusPending,
	}
	activated := *engagement
	activated.Status = valueobject.EngagementStatusActive

	engagements.On("GetByID", mock.Anything, engagement.ID).Return(engagement, nil)
	engagements.On("UpdateStatus", mock.Anything, engagement.ID,
		valueobject.EngagementStatusPending, valueobject.EngagementStatusActive,
		(*uuid.UUID)(nil)).Return(&activated, nil)

	updated, err := svc.Accept(context.Background(), specialistID, engagement.ID)

	require.NoError(t, err)
	assert.Equal(t, valueobject.EngagementStatusActive, updated.Status)

	sent := waitForEvents(t, notifier, 1)
	assert.Equal(t, clientID, sent[0].UserID)
	assert.Equal(t, events.EngagementAccepted, sent[0].Event.Type)
}

func TestEngagementService_Accept_RejectsNonPending(t *testing.T) {
	svc, engagements, _, _ := newEngagementFixture()
	specialistID := uuid.New()
	engagement := &models.Engagement{
		ID:           uuid.New(),
		ClientID:     uuid.New(),
		SpecialistID: specialistID,
		Status:       valueobject.EngagementStatusActive,
	}

	engagements.On("GetByID", mock.Anything, engagement.ID).Return(engagement, nil)

	_, err := svc.Accept(context.Background(), specialistID, engagement.ID)

	assert.True(t, apperror.IsInvalidState(err))
}

func TestEngagementService_Decline_CancelsAndNotifiesClient(t *testing.T) {
	svc, engagements, _, notifier := newEngagementFixture()
	clientID := uuid.New()
	specialistID := uuid.New()
	engagement := &models.Engagement{
		ID:           uuid.New(),
		ClientID:     clientID,
		SpecialistID: specialistID,
		Status:       valueobject.EngagementStatusPending,
	}
	cancelled := *engagement
	cancelled.Status = valueobject.EngagementStatusCancelled

	engagements.On("GetByID", mock.Anything, engagement.ID).Return(engagement, nil)
	engagements.On("UpdateStatus", mock.Anything, engagement.ID,
		valueobject.EngagementStatusPending, valueobject.EngagementStatusCancelled,
		(*uuid.UUID)(nil)).Return(&cancelled, nil)

	updated, err := svc.Decline(context.Background(), specialistID, engagement.ID)

	require.NoError(t, err)
	assert.Equal(t, valueobject.EngagementStatusCancelled, updated.Status)

	sent := waitForEvents(t, notifier, 1)
	assert.Equal(t, events.EngagementDeclined, sent[0].Event.Type)
}

func TestEngagementService_RequestFinish_EitherPartyStoresRequester(t *testing.T) {
	svc, engagements, _, notifier := newEngagementFixture()
	clientID := uuid.New()
	specialistID := uuid.New()
	engagement := &models.Engagement{
		ID:           uuid.New(),
		ClientID:     clientID,
		SpecialistID: specialistID,
		Status:       valueobject.EngagementStatusActive,
	}
	requested := *engagement
	requested.Status = valueobject.EngagementStatusFinishRequested
	requested.FinishRequestedBy = &clientID

	engagements.On("GetByID", mock.Anything, engagement.ID).Return(engagement, nil)
	engagements.On("UpdateStatus", mock.Anything, engagement.ID,
		valueobject.EngagementStatusActive, valueobject.EngagementStatusFinishRequested,
		mock.MatchedBy(func(requestedBy *uuid.UUID) bool {
			return requestedBy != nil && *requestedBy == clientID
		})).Return(&requested, nil)

	updated, err := svc.RequestFinish(context.Background(), clientID, engagement.ID)

	require.NoError(t, err)
	require.NotNil(t, updated.FinishRequestedBy)
	assert.Equal(t, clientID, *updated.FinishRequestedBy)

	sent := waitForEvents(t, notifier, 1)
	assert.Equal(t, specialistID, sent[0].UserID)
	assert.Equal(t, events.FinishRequested, sent[0].Event.Type)
}

func TestEngagementService_ConfirmFinish_RequesterCannotConfirm(t *testing.T) {
	svc, engagements, _, _ := newEngagementFixture()
	clientID := uuid.New()
	engagement := &models.Engagement{
		ID:                uuid.New(),
		ClientID:          clientID,
		SpecialistID:      uuid.New(),
		Status:            valueobject.EngagementStatusFinishRequested,
		FinishRequestedBy: &clientID,
	}

	engagements.On("GetByID", mock.Anything, engagement.ID).Return(engagement, nil)

	_, err := svc.ConfirmFinish(context.Background(), clientID, engagement.ID)

	assert.True(t, apperror.IsForbidden(err))
}

func TestEngagementService_ConfirmFinish_CompletesAndPromptsBothSides(t *testing.T) {
	svc, engagements, _, notifier := newEngagementFixture()
	clientID := uuid.New()
	specialistID := uuid.New()
	engagement := &models.Engagement{
		ID:                uuid.New(),
		ClientID:          clientID,
		SpecialistID:      specialistID,
		Status:            valueobject.EngagementStatusFinishRequested,
		FinishRequestedBy: &clientID,
	}
	completed := *engagement
	completed.Status = valueobject.EngagementStatusCompleted

	engagements.On("GetByID", mock.Anything, engagement.ID).Return(engagement, nil)
	engagements.On("UpdateStatus", mock.Anything, engagement.ID,
		valueobject.EngagementStatusFinishRequested, valueobject.EngagementStatusCompleted,
		&clientID).Return(&completed, nil)

	updated, err := svc.ConfirmFinish(context.Background(), specialistID, engagement.ID)

	require.NoError(t, err)
	assert.Equal(t, valueobject.EngagementStatusCompleted, updated.Status)

	// Обе стороны, включая подтвердившего, получают событие о
	// завершении и приглашение оценить контрагента.
	sent := waitForEvents(t, notifier, 4)

	var completedToClient, completedToSpecialist, promptsToClient, promptsToSpecialist int
	for _, s := range sent {
		switch s.Event.Type {
		case events.EngagementCompleted:
			switch s.UserID {
			case clientID:
				completedToClient++
			case specialistID:
				completedToSpecialist++
			}
		case events.RatingPrompt:
			switch s.UserID {
			case clientID:
				promptsToClient++
				require.NotNil(t, s.Event.TargetID)
				assert.Equal(t, specialistID, *s.Event.TargetID)
				assert.Equal(t, models.RoleSpecialist, s.Event.TargetRole)
			case specialistID:
				promptsToSpecialist++
				require.NotNil(t, s.Event.TargetID)
				assert.Equal(t, clientID, *s.Event.TargetID)
				assert.Equal(t, models.RoleClient, s.Event.TargetRole)
			}
		}
	}

	assert.Equal(t, 1, completedToClient)
	assert.Equal(t, 1, completedToSpecialist)
	assert.Equal(t, 1, promptsToClient)
	assert.Equal(t, 1, promptsToSpecialist)
}

func TestEngagementService_GetByID_HidesForeignEngagement(t *testing.T) {
	svc, engagements, _, _ := newEngagementFixture()
	engagement := &models.Engagement{
		ID:           uuid.New(),
		ClientID:     uuid.New(),
		SpecialistID: uuid.New(),
		Status:       valueobject.EngagementStatusActive,
	}

	engagements.On("GetByID", mock.Anything, engagement.ID).Return(engagement, nil)

	_, err := svc.GetByID(context.Background(), uuid.New(), engagement.ID)

	assert.True(t, apperror.IsNotFound(err))
}
