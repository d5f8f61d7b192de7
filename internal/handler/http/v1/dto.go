package v1

import (
	"time"

	"github.com/google/uuid"
)

// SubmitReportRequest DTO для отправки отчета о дорожной опасности
// @Description DTO для отправки отчета о дорожной опасности
type SubmitReportRequest struct {
	RawText   string    `json:"rawText" validate:"max=1000"`
	Latitude  *float64  `json:"latitude" validate:"required,latitude"`
	Longitude *float64  `json:"longitude" validate:"required,longitude"`
	Heading   *float64  `json:"heading,omitempty" validate:"omitempty,gte=0,lt=360"`
	Speed     *float64  `json:"speed,omitempty" validate:"omitempty,gte=0"`
	Timestamp time.Time `json:"timestamp"`
}

// SubmitReportResponse DTO подтверждения приема отчета
// @Description DTO подтверждения приема отчета
type SubmitReportResponse struct {
	Message  string    `json:"message"`
	ReportID uuid.UUID `json:"reportId"`
}

// ReconfirmRequest DTO повторного подтверждения события (тело необязательно)
// @Description DTO повторного подтверждения события
type ReconfirmRequest struct {
	DistanceMeters *float64 `json:"distanceMeters,omitempty" validate:"omitempty,gte=0"`
}

// EventResponse DTO для ответа с информацией о событии
// @Description DTO для ответа с информацией о событии
type EventResponse struct {
	ID                 uuid.UUID  `json:"id"`
	EventType          string     `json:"eventType"`
	Latitude           float64    `json:"latitude"`
	Longitude          float64    `json:"longitude"`
	Status             string     `json:"status"`
	ConfirmationsCount int        `json:"confirmationsCount"`
	UpdatedAt          time.Time  `json:"updatedAt"`
	Address            string     `json:"address,omitempty"`
	ValidUntil         *time.Time `json:"validUntil,omitempty"`
}

// StatsResponse DTO для ответа со статистикой
// @Description DTO для ответа со статистикой
type StatsResponse struct {
	ActiveEvents      int `json:"activeEvents"`
	Reconfirmations   int `json:"reconfirmations"`
	TimeWindowMinutes int `json:"timeWindowMinutes"`
}
