package service

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/ignatzorin/specialist-hub/internal/domain/valueobject"
	"github.com/ignatzorin/specialist-hub/internal/events"
	"github.com/ignatzorin/specialist-hub/internal/models"
)

type mockEngagementRepo struct {
	mock.Mock
}

func (m *mockEngagementRepo) CreateIfFree(ctx context.Context, engagement *models.Engagement) error {
	args := m.Called(ctx, engagement)
	return args.Error(0)
}

func (m *mockEngagementRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Engagement, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Engagement), args.Error(1)
}

func (m *mockEngagementRepo) GetOpenForUser(ctx context.Context, userID uuid.UUID) (*models.Engagement, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Engagement), args.Error(1)
}

func (m *mockEngagementRepo) ListForUser(ctx context.Context, userID uuid.UUID) ([]models.Engagement, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Engagement), args.Error(1)
}

func (m *mockEngagementRepo) UpdateStatus(ctx context.Context, id uuid.UUID, from, to valueobject.EngagementStatus, finishRequestedBy *uuid.UUID) (*models.Engagement, error) {
	args := m.Called(ctx, id, from, to, finishRequestedBy)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Engagement), args.Error(1)
}

func (m *mockEngagementRepo) LastCompletedBetween(ctx context.Context, userA, userB uuid.UUID) (*models.Engagement, error) {
	args := m.Called(ctx, userA, userB)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Engagement), args.Error(1)
}

type mockSpecialistRepo struct {
	mock.Mock
}

func (m *mockSpecialistRepo) GetByUserID(ctx context.Context, userID uuid.UUID) (*models.SpecialistProfile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.SpecialistProfile), args.Error(1)
}

func (m *mockSpecialistRepo) Update(ctx context.Context, profile *models.SpecialistProfile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}

func (m *mockSpecialistRepo) GetCard(ctx context.Context, userID uuid.UUID) (*models.SpecialistCard, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.SpecialistCard), args.Error(1)
}

type mockRatingRepo struct {
	mock.Mock
}

func (m *mockRatingRepo) SubmitForEngagement(ctx context.Context, engagementID uuid.UUID, rating *models.Rating) error {
	args := m.Called(ctx, engagementID, rating)
	return args.Error(0)
}

func (m *mockRatingRepo) GetAggregate(ctx context.Context, targetID uuid.UUID, targetRole string) (float64, int, error) {
	args := m.Called(ctx, targetID, targetRole)
	return args.Get(0).(float64), args.Int(1), args.Error(2)
}

func (m *mockRatingRepo) ListForTarget(ctx context.Context, targetID uuid.UUID, targetRole string) ([]models.Rating, error) {
	args := m.Called(ctx, targetID, targetRole)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Rating), args.Error(1)
}

type mockUserRepo struct {
	mock.Mock
}

func (m *mockUserRepo) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *mockUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *mockUserRepo) UpdateFullName(ctx context.Context, id uuid.UUID, fullName string) error {
	args := m.Called(ctx, id, fullName)
	return args.Error(0)
}

func (m *mockUserRepo) GetClientCard(ctx context.Context, id uuid.UUID) (*models.ClientCard, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ClientCard), args.Error(1)
}

func (m *mockUserRepo) CreateSession(ctx context.Context, session *models.Session) error {
	args := m.Called(ctx, session)
	return args.Error(0)
}

func (m *mockUserRepo) GetSessionByToken(ctx context.Context, token string) (*models.Session, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Session), args.Error(1)
}

func (m *mockUserRepo) DeleteSession(ctx context.Context, token string) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

// sentEvent — доставленное событие вместе с получателем.
type sentEvent struct {
	UserID uuid.UUID
	Event  events.Event
}

// recordingNotifier потокобезопасно копит отправленные события: доставка
// идёт из фоновых горутин, тесты дожидаются её через Events().
type recordingNotifier struct {
	mu   sync.Mutex
	sent []sentEvent
}

func (n *recordingNotifier) Notify(_ context.Context, userID uuid.UUID, event events.Event) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, sentEvent{UserID: userID, Event: event})
}

func (n *recordingNotifier) Events() []sentEvent {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]sentEvent, len(n.sent))
	copy(out, n.sent)
	return out
}
