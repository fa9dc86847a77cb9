package valueobject

import "github.com/ignatzorin/specialist-hub/internal/pkg/apperror"

// EngagementStatus — состояние заказа.
type EngagementStatus string

const (
	EngagementStatusPending         EngagementStatus = "pending"
	EngagementStatusActive          EngagementStatus = "active"
	EngagementStatusFinishRequested EngagementStatus = "finish_request"
	EngagementStatusCompleted       EngagementStatus = "completed"
	EngagementStatusCancelled       EngagementStatus = "cancelled"
)

// EngagementEvent — событие, переводящее заказ из одного состояния в другое.
type EngagementEvent string

const (
	EventAccept        EngagementEvent = "accept"
	EventDecline       EngagementEvent = "decline"
	EventRequestFinish EngagementEvent = "request_finish"
	EventConfirmFinish EngagementEvent = "confirm_finish"
)

// transitions — единственное место, где описана машина состояний.
// Любая пара (состояние, событие) вне таблицы отклоняется.
var transitions = map[EngagementStatus]map[EngagementEvent]EngagementStatus{
	EngagementStatusPending: {
		EventAccept:  EngagementStatusActive,
		EventDecline: EngagementStatusCancelled,
	},
	EngagementStatusActive: {
		EventRequestFinish: EngagementStatusFinishRequested,
	},
	EngagementStatusFinishRequested: {
		EventConfirmFinish: EngagementStatusCompleted,
	},
	EngagementStatusCompleted: {},
	EngagementStatusCancelled: {},
}

func (s EngagementStatus) IsValid() bool {
	switch s {
	case EngagementStatusPending, EngagementStatusActive, EngagementStatusFinishRequested,
		EngagementStatusCompleted, EngagementStatusCancelled:
		return true
	}
	return false
}

// IsOpen сообщает, занимает ли заказ в этом состоянии обе стороны.
func (s EngagementStatus) IsOpen() bool {
	switch s {
	case EngagementStatusPending, EngagementStatusActive, EngagementStatusFinishRequested:
		return true
	}
	return false
}

// IsTerminal сообщает, что заказ закрыт и переходов из него нет.
func (s EngagementStatus) IsTerminal() bool {
	return s == EngagementStatusCompleted || s == EngagementStatusCancelled
}

// OpenStatuses возвращает список открытых состояний для SQL запросов.
func OpenStatuses() []string {
	return []string{
		string(EngagementStatusPending),
		string(EngagementStatusActive),
		string(EngagementStatusFinishRequested),
	}
}

// Apply валидирует событие против таблицы переходов и возвращает
// следующее состояние. Непредусмотренная пара — ошибка INVALID_STATE.
func (s EngagementStatus) Apply(event EngagementEvent) (EngagementStatus, error) {
	next, ok := transitions[s][event]
	if !ok {
		return "", apperror.New(apperror.ErrCodeInvalidState,
			"действие недоступно в текущем статусе заказа")
	}
	return next, nil
}

// CanApply проверяет допустимость события без выполнения перехода.
func (s EngagementStatus) CanApply(event EngagementEvent) bool {
	_, ok := transitions[s][event]
	return ok
}

// NewEngagementStatus парсит строку из хранилища.
func NewEngagementStatus(status string) (EngagementStatus, error) {
	s := EngagementStatus(status)
	if !s.IsValid() {
		return "", apperror.New(apperror.ErrCodeValidation, "некорректный статус заказа")
	}
	return s, nil
}
