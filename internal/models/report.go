package models

import (
	"time"

	"github.com/google/uuid"
)

// Report - одиночное наблюдение пользователя до агрегации
type Report struct {
	ID        uuid.UUID `json:"-"`
	RawText   string    `json:"rawText"`
	EventType EventType `json:"-"`
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	Heading   *float64  `json:"heading,omitempty"`
	Speed     *float64  `json:"speed,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// Position - точка из потока геолокации клиента
type Position struct {
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	Heading   *float64  `json:"heading,omitempty"`
	Speed     *float64  `json:"speed,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// AggregationAction - результат агрегации отчета
type AggregationAction string

const (
	ActionCreated AggregationAction = "CREATED"
	ActionUpdated AggregationAction = "UPDATED"
)

// AggregationResult - ответ сервиса агрегации
type AggregationResult struct {
	Action AggregationAction `json:"action"`
	Event  HazardEvent       `json:"event"`
}

// Reconfirmation представляет запись о подтверждении события находящимся рядом пользователем
type Reconfirmation struct {
	ID             int64     `json:"id"`
	EventID        uuid.UUID `json:"event_id"`
	DistanceMeters *float64  `json:"distance_meters,omitempty"`
	ReceivedAt     time.Time `json:"received_at"`
}

// Stats - сводка по событиям за окно времени
type Stats struct {
	ActiveEvents    int `json:"activeEvents"`
	Reconfirmations int `json:"reconfirmations"`
}
