package models

// NotificationType - имя события в push-канале
type NotificationType string

const (
	NotificationEventCreated NotificationType = "EventCreated"
	NotificationEventUpdated NotificationType = "EventUpdated"
)

// Notification - сообщение push-канала
type Notification struct {
	Type  NotificationType `json:"type"`
	Event HazardEvent      `json:"event"`
}

// NotificationFor возвращает уведомление, соответствующее действию агрегации
func NotificationFor(result *AggregationResult) Notification {
	t := NotificationEventUpdated
	if result.Action == ActionCreated {
		t = NotificationEventCreated
	}
	return Notification{Type: t, Event: result.Event}
}
