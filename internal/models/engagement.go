package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/ignatzorin/specialist-hub/internal/domain/valueobject"
)

// Engagement — договорённость о работе между одним заказчиком и одним
// специалистом. У пользователя может быть не более одного открытого
// (pending/active/finish_requested) заказа в любой роли.
type Engagement struct {
	ID                uuid.UUID                    `db:"id" json:"id"`
	ClientID          uuid.UUID                    `db:"client_id" json:"client_id"`
	SpecialistID      uuid.UUID                    `db:"specialist_id" json:"specialist_id"`
	Status            valueobject.EngagementStatus `db:"status" json:"status"`
	FinishRequestedBy *uuid.UUID                   `db:"finish_requested_by" json:"finish_requested_by,omitempty"`
	ClientRated       bool                         `db:"client_rated" json:"client_rated"`
	SpecialistRated   bool                         `db:"specialist_rated" json:"specialist_rated"`
	CreatedAt         time.Time                    `db:"created_at" json:"created_at"`
	UpdatedAt         time.Time                    `db:"updated_at" json:"updated_at"`
}

// IsParty сообщает, является ли пользователь стороной заказа.
func (e *Engagement) IsParty(userID uuid.UUID) bool {
	return userID == e.ClientID || userID == e.SpecialistID
}

// Counterpart возвращает вторую сторону заказа.
func (e *Engagement) Counterpart(userID uuid.UUID) uuid.UUID {
	if userID == e.ClientID {
		return e.SpecialistID
	}
	return e.ClientID
}

// Rating — оценка одной стороны другой по итогам завершённого заказа.
// Ключ уникальности (target_id, rater_id, target_role): повторная оценка
// той же пары в той же роли перезаписывает предыдущую.
type Rating struct {
	ID         uuid.UUID `db:"id" json:"id"`
	TargetID   uuid.UUID `db:"target_id" json:"target_id"`
	RaterID    uuid.UUID `db:"rater_id" json:"rater_id"`
	Score      int       `db:"score" json:"score"`
	TargetRole string    `db:"target_role" json:"target_role"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time `db:"updated_at" json:"updated_at"`
}

// Роли, в которых пользователь накапливает рейтинг.
const (
	RoleClient     = "client"
	RoleSpecialist = "specialist"
)
