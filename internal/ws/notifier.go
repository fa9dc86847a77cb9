package ws

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"

	"github.com/ignatzorin/specialist-hub/internal/events"
	"github.com/ignatzorin/specialist-hub/internal/logger"
	"github.com/ignatzorin/specialist-hub/internal/models"
)

// NotificationRecorder сохраняет событие в ленту пользователя.
type NotificationRecorder interface {
	Record(ctx context.Context, userID uuid.UUID, event events.Event) (*models.Notification, error)
}

// Notifier сохраняет событие и проталкивает его в открытые websocket
// подключения получателя. Ошибки записи и офлайн получателя только
// логируются: доставка не гарантируется.
type Notifier struct {
	hub      *Hub
	recorder NotificationRecorder
}

func NewNotifier(hub *Hub, recorder NotificationRecorder) *Notifier {
	return &Notifier{hub: hub, recorder: recorder}
}

// Notify реализует service.Notifier.
func (n *Notifier) Notify(ctx context.Context, userID uuid.UUID, event events.Event) {
	log := logger.WithComponent("notifier").
		WithField("user_id", userID).
		WithField("event_type", event.Type)

	notification, err := n.recorder.Record(ctx, userID, event)
	if err != nil {
		log.WithError(err).Error("не удалось сохранить уведомление")
		return
	}

	payload, err := json.Marshal(notification)
	if err != nil {
		log.WithError(err).Error("не удалось сериализовать уведомление")
		return
	}

	n.hub.SendToUser(userID, payload)
}
