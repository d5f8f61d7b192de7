package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// EventType - тип дорожного события
type EventType string

const (
	EventTypePothole  EventType = "POTHOLE"
	EventTypeAccident EventType = "ACCIDENT"
	EventTypePolice   EventType = "POLICE"
	EventTypeTraffic  EventType = "TRAFFIC"
	EventTypePark     EventType = "PARK"
	EventTypeLift     EventType = "LIFT"
	EventTypeGeneral  EventType = "GENERAL"
	EventTypeUnknown  EventType = "UNKNOWN"
)

// ParseEventType приводит строку к EventType, неизвестные значения становятся UNKNOWN
func ParseEventType(s string) EventType {
	switch t := EventType(strings.ToUpper(strings.TrimSpace(s))); t {
	case EventTypePothole, EventTypeAccident, EventTypePolice, EventTypeTraffic,
		EventTypePark, EventTypeLift, EventTypeGeneral:
		return t
	}
	return EventTypeUnknown
}

// EventStatus - статус события
type EventStatus string

const (
	EventStatusActive   EventStatus = "ACTIVE"
	EventStatusExpired  EventStatus = "EXPIRED"
	EventStatusInactive EventStatus = "INACTIVE"
)

// HazardEvent - агрегированное сервером событие на карте
type HazardEvent struct {
	ID                 uuid.UUID   `json:"id"`
	EventType          EventType   `json:"eventType"`
	Latitude           float64     `json:"latitude"`
	Longitude          float64     `json:"longitude"`
	Status             EventStatus `json:"status"`
	ConfirmationsCount int         `json:"confirmationsCount"`
	UpdatedAt          time.Time   `json:"updatedAt"`
	Address            string      `json:"address,omitempty"`
	ValidUntil         *time.Time  `json:"validUntil,omitempty"`
}

// IsActive сообщает, участвует ли событие в оповещениях
func (e *HazardEvent) IsActive() bool {
	return e.Status == "" || e.Status == EventStatusActive
}
