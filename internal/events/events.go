// Package events описывает типизированные события ядра для нотификатора.
// Событие — это (тип, id заказа, участники), сериализуемое в JSON;
// транспорт и отрисовка остаются за потребителем.
package events

import (
	"github.com/google/uuid"
)

// Type — вид события.
type Type string

const (
	EngagementCreated   Type = "engagement.created"
	EngagementAccepted  Type = "engagement.accepted"
	EngagementDeclined  Type = "engagement.declined"
	FinishRequested     Type = "engagement.finish_requested"
	EngagementCompleted Type = "engagement.completed"
	RatingPrompt        Type = "rating.prompt"
	RatingRecorded      Type = "rating.recorded"
)

// Event — событие для конкретного получателя.
// TargetID и TargetRole заполняются только для рейтинговых событий.
type Event struct {
	Type         Type       `json:"type"`
	EngagementID uuid.UUID  `json:"engagement_id"`
	ActorID      uuid.UUID  `json:"actor_id"`
	TargetID     *uuid.UUID `json:"target_id,omitempty"`
	TargetRole   string     `json:"target_role,omitempty"`
	Score        int        `json:"score,omitempty"`
}

// NewEngagementEvent собирает событие жизненного цикла заказа.
func NewEngagementEvent(t Type, engagementID, actorID uuid.UUID) Event {
	return Event{Type: t, EngagementID: engagementID, ActorID: actorID}
}

// NewRatingPrompt собирает приглашение оценить контрагента: получатель
// должен оценить targetID в роли targetRole.
func NewRatingPrompt(engagementID, actorID, targetID uuid.UUID, targetRole string) Event {
	return Event{
		Type:         RatingPrompt,
		EngagementID: engagementID,
		ActorID:      actorID,
		TargetID:     &targetID,
		TargetRole:   targetRole,
	}
}

// NewRatingRecorded собирает событие о зафиксированной оценке.
func NewRatingRecorded(engagementID, raterID, targetID uuid.UUID, targetRole string, score int) Event {
	return Event{
		Type:         RatingRecorded,
		EngagementID: engagementID,
		ActorID:      raterID,
		TargetID:     &targetID,
		TargetRole:   targetRole,
		Score:        score,
	}
}
