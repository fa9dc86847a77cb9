package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/ignatzorin/specialist-hub/internal/domain/valueobject"
	"github.com/ignatzorin/specialist-hub/internal/events"
	"github.com/ignatzorin/specialist-hub/internal/goroutine"
	"github.com/ignatzorin/specialist-hub/internal/models"
	"github.com/ignatzorin/specialist-hub/internal/pkg/apperror"
)

// EngagementRepository — хранилище заказов.
type EngagementRepository interface {
	CreateIfFree(ctx context.Context, engagement *models.Engagement) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Engagement, error)
	GetOpenForUser(ctx context.Context, userID uuid.UUID) (*models.Engagement, error)
	ListForUser(ctx context.Context, userID uuid.UUID) ([]models.Engagement, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, from, to valueobject.EngagementStatus, finishRequestedBy *uuid.UUID) (*models.Engagement, error)
	LastCompletedBetween(ctx context.Context, userA, userB uuid.UUID) (*models.Engagement, error)
}

// EngagementSpecialistRepository — доступ к анкетам для проверки адресата.
type EngagementSpecialistRepository interface {
	GetByUserID(ctx context.Context, userID uuid.UUID) (*models.SpecialistProfile, error)
}

// Notifier доставляет событие конкретному пользователю. Доставка
// не влияет на результат операции: переходы статусов фиксируются
// независимо от того, дошло ли уведомление.
type Notifier interface {
	Notify(ctx context.Context, userID uuid.UUID, event events.Event)
}

// EngagementService — жизненный цикл заказа: от приглашения до
// двухстороннего завершения.
type EngagementService struct {
	engagements EngagementRepository
	specialists EngagementSpecialistRepository
	notifier    Notifier
}

func NewEngagementService(
	engagements EngagementRepository,
	specialists EngagementSpecialistRepository,
	notifier Notifier,
) *EngagementService {
	return &EngagementService{
		engagements: engagements,
		specialists: specialists,
		notifier:    notifier,
	}
}

// Request создаёт заказ: заказчик приглашает специалиста. Заказ
// создаётся только если обе стороны свободны и анкета специалиста
// активна. Самому себе заказ создать нельзя.
func (s *EngagementService) Request(ctx context.Context, clientID, specialistID uuid.UUID) (*models.Engagement, error) {
	if clientID == specialistID {
		return nil, apperror.New(apperror.ErrCodeValidation, "нельзя создать заказ самому себе")
	}

	profile, err := s.specialists.GetByUserID(ctx, specialistID)
	if err != nil {
		return nil, err
	}
	if !profile.IsActive {
		return nil, apperror.ErrProfileNotFound
	}

	engagement := &models.Engagement{
		ID:           uuid.New(),
		ClientID:     clientID,
		SpecialistID: specialistID,
		Status:       valueobject.EngagementStatusPending,
	}

	if err := s.engagements.CreateIfFree(ctx, engagement); err != nil {
		return nil, err
	}

	s.notifyAsync(specialistID, events.NewEngagementEvent(events.EngagementCreated, engagement.ID, clientID))

	return engagement, nil
}

// Accept — специалист принимает приглашение, заказ становится активным.
func (s *EngagementService) Accept(ctx context.Context, userID, engagementID uuid.UUID) (*models.Engagement, error) {
	engagement, err := s.loadForParty(ctx, engagementID, userID)
	if err != nil {
		return nil, err
	}
	if userID != engagement.SpecialistID {
		return nil, apperror.ErrForbidden
	}

	updated, err := s.applyTransition(ctx, engagement, valueobject.EventAccept, nil)
	if err != nil {
		return nil, err
	}

	s.notifyAsync(updated.ClientID, events.NewEngagementEvent(events.EngagementAccepted, updated.ID, userID))

	return updated, nil
}

// Decline — специалист отклоняет приглашение, заказ отменяется.
func (s *EngagementService) Decline(ctx context.Context, userID, engagementID uuid.UUID) (*models.Engagement, error) {
	engagement, err := s.loadForParty(ctx, engagementID, userID)
	if err != nil {
		return nil, err
	}
	if userID != engagement.SpecialistID {
		return nil, apperror.ErrForbidden
	}

	updated, err := s.applyTransition(ctx, engagement, valueobject.EventDecline, nil)
	if err != nil {
		return nil, err
	}

	s.notifyAsync(updated.ClientID, events.NewEngagementEvent(events.EngagementDeclined, updated.ID, userID))

	return updated, nil
}

// RequestFinish — любая сторона активного заказа запрашивает завершение.
// Заказ переходит в ожидание подтверждения второй стороной.
func (s *EngagementService) RequestFinish(ctx context.Context, userID, engagementID uuid.UUID) (*models.Engagement, error) {
	engagement, err := s.loadForParty(ctx, engagementID, userID)
	if err != nil {
		return nil, err
	}

	requestedBy := userID
	updated, err := s.applyTransition(ctx, engagement, valueobject.EventRequestFinish, &requestedBy)
	if err != nil {
		return nil, err
	}

	s.notifyAsync(updated.Counterpart(userID),
		events.NewEngagementEvent(events.FinishRequested, updated.ID, userID))

	return updated, nil
}

// ConfirmFinish — вторая сторона подтверждает завершение. Подтвердить
// может только не тот, кто запрашивал. После завершения обе стороны
// получают событие о завершении и приглашение оценить контрагента.
func (s *EngagementService) ConfirmFinish(ctx context.Context, userID, engagementID uuid.UUID) (*models.Engagement, error) {
	engagement, err := s.loadForParty(ctx, engagementID, userID)
	if err != nil {
		return nil, err
	}

	if engagement.FinishRequestedBy != nil && *engagement.FinishRequestedBy == userID {
		return nil, apperror.New(apperror.ErrCodeForbidden,
			"подтвердить завершение должна другая сторона")
	}

	updated, err := s.applyTransition(ctx, engagement, valueobject.EventConfirmFinish, engagement.FinishRequestedBy)
	if err != nil {
		return nil, err
	}

	s.notifyAsync(updated.ClientID,
		events.NewEngagementEvent(events.EngagementCompleted, updated.ID, userID))
	s.notifyAsync(updated.SpecialistID,
		events.NewEngagementEvent(events.EngagementCompleted, updated.ID, userID))

	// Обе стороны получают приглашение оценить: заказчик оценивает
	// специалиста, специалист — заказчика.
	s.notifyAsync(updated.ClientID,
		events.NewRatingPrompt(updated.ID, userID, updated.SpecialistID, models.RoleSpecialist))
	s.notifyAsync(updated.SpecialistID,
		events.NewRatingPrompt(updated.ID, userID, updated.ClientID, models.RoleClient))

	return updated, nil
}

// GetOpenForUser возвращает текущий открытый заказ пользователя.
func (s *EngagementService) GetOpenForUser(ctx context.Context, userID uuid.UUID) (*models.Engagement, error) {
	return s.engagements.GetOpenForUser(ctx, userID)
}

// GetByID возвращает заказ его участнику.
func (s *EngagementService) GetByID(ctx context.Context, userID, engagementID uuid.UUID) (*models.Engagement, error) {
	return s.loadForParty(ctx, engagementID, userID)
}

// LastCompletedWith возвращает последний завершённый заказ пользователя
// с другим участником в любых ролях. Нужен клиентам для повторного
// найма и проверки права на оценку.
func (s *EngagementService) LastCompletedWith(ctx context.Context, userID, otherID uuid.UUID) (*models.Engagement, error) {
	return s.engagements.LastCompletedBetween(ctx, userID, otherID)
}

// ListForUser возвращает историю заказов пользователя.
func (s *EngagementService) ListForUser(ctx context.Context, userID uuid.UUID) ([]models.Engagement, error) {
	return s.engagements.ListForUser(ctx, userID)
}

// loadForParty возвращает заказ, если пользователь — его сторона.
// Чужой заказ неотличим от несуществующего.
func (s *EngagementService) loadForParty(ctx context.Context, engagementID, userID uuid.UUID) (*models.Engagement, error) {
	engagement, err := s.engagements.GetByID(ctx, engagementID)
	if err != nil {
		return nil, err
	}
	if !engagement.IsParty(userID) {
		return nil, apperror.ErrEngagementNotFound
	}
	return engagement, nil
}

// applyTransition валидирует переход по таблице состояний и выполняет
// его через compare-and-swap в хранилище.
func (s *EngagementService) applyTransition(
	ctx context.Context,
	engagement *models.Engagement,
	event valueobject.EngagementEvent,
	finishRequestedBy *uuid.UUID,
) (*models.Engagement, error) {
	next, err := engagement.Status.Apply(event)
	if err != nil {
		return nil, err
	}

	return s.engagements.UpdateStatus(ctx, engagement.ID, engagement.Status, next, finishRequestedBy)
}

// notifyAsync отправляет событие в фоне: доставка не задерживает
// и не откатывает операцию.
func (s *EngagementService) notifyAsync(userID uuid.UUID, event events.Event) {
	if s.notifier == nil {
		return
	}
	goroutine.SafeGo(func() {
		s.notifier.Notify(context.Background(), userID, event)
	})
}
