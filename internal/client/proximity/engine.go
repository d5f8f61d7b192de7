// Package proximity решает по позиции пользователя, что озвучить, что заглушить
// и какие события подтвердить серверу.
package proximity

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shenikar/road_hazard_system/internal/models"
	"github.com/shenikar/road_hazard_system/pkg/geo"
	"github.com/sirupsen/logrus"
)

//go:generate mockgen -source=engine.go -destination=mocks/mock_engine.go -package=mocks

const (
	SpeakRadiusMeters     = 500.0
	ReconfirmRadiusMeters = 300.0
	NewEventRadiusMeters  = 2000.0
	ReconfirmInterval     = 10 * time.Minute

	reconfirmTimeout = 10 * time.Second
)

// Speaker - синтез речи
type Speaker interface {
	Speak(ctx context.Context, text string) error
}

// Reconfirmer отправляет серверу подтверждение события
type Reconfirmer interface {
	Reconfirm(ctx context.Context, id uuid.UUID, distanceMeters float64) error
}

// Alert - озвученное предупреждение
type Alert struct {
	EventID        uuid.UUID
	DistanceMeters float64
	Text           string
}

type Engine struct {
	cache       *EventCache
	memory      *AlertMemory
	mute        MuteSettings
	speaker     Speaker
	reconfirmer Reconfirmer
	logger      *logrus.Logger
	now         func() time.Time

	posMu    sync.RWMutex
	position *models.Position

	inflight sync.WaitGroup
}

func NewEngine(speaker Speaker, reconfirmer Reconfirmer, mute MuteSettings, logger *logrus.Logger) *Engine {
	return &Engine{
		cache:       NewEventCache(),
		memory:      NewAlertMemory(),
		mute:        mute,
		speaker:     speaker,
		reconfirmer: reconfirmer,
		logger:      logger,
		now:         time.Now,
	}
}

// Cache - только для чтения снаружи пакета
func (e *Engine) Cache() *EventCache {
	return e.cache
}

// Position возвращает последнюю известную позицию пользователя
func (e *Engine) Position() (models.Position, bool) {
	e.posMu.RLock()
	defer e.posMu.RUnlock()
	if e.position == nil {
		return models.Position{}, false
	}
	return *e.position, true
}

func (e *Engine) setPosition(pos models.Position) {
	e.posMu.Lock()
	e.position = &pos
	e.posMu.Unlock()
}

// CheckPosition проверяет все активные события относительно новой позиции
func (e *Engine) CheckPosition(ctx context.Context, pos models.Position) []Alert {
	e.setPosition(pos)

	var alerts []Alert
	for _, event := range e.cache.Snapshot() {
		distance := geo.Haversine(pos.Latitude, pos.Longitude, event.Latitude, event.Longitude)
		if distance >= SpeakRadiusMeters || e.mute.IsMuted(event, distance) {
			continue
		}

		if alert, ok := e.speak(ctx, event, distance); ok {
			alerts = append(alerts, alert)
		}

		if distance < ReconfirmRadiusMeters && e.memory.TryReconfirm(event.ID, e.now(), ReconfirmInterval) {
			e.reconfirm(ctx, event.ID, distance)
		}
	}
	return alerts
}

// Apply применяет уведомление push-канала к кэшу. Новое событие, а также
// обновление неизвестного id, сразу проверяется в расширенном радиусе
func (e *Engine) Apply(ctx context.Context, notification models.Notification) *Alert {
	event := notification.Event
	known := e.cache.Upsert(event)

	if notification.Type == models.NotificationEventUpdated && known {
		return nil
	}
	if !event.IsActive() {
		return nil
	}

	pos, ok := e.Position()
	if !ok {
		return nil
	}

	distance := geo.Haversine(pos.Latitude, pos.Longitude, event.Latitude, event.Longitude)
	if distance >= NewEventRadiusMeters || e.mute.IsMuted(event, distance) {
		return nil
	}

	alert, ok := e.speak(ctx, event, distance)
	if !ok {
		return nil
	}
	return &alert
}

// Refresh заменяет кэш списком активных событий сервера, загрузка которого началась в since
func (e *Engine) Refresh(events []*models.HazardEvent, since time.Time) {
	e.cache.Replace(events, since)
	e.logger.WithField("count", e.cache.Len()).Debug("Event cache refreshed")
}

// Wait дожидается отправленных подтверждений
func (e *Engine) Wait() {
	e.inflight.Wait()
}

func (e *Engine) speak(ctx context.Context, event models.HazardEvent, distance float64) (Alert, bool) {
	if !e.memory.MarkSpoken(event.ID) {
		return Alert{}, false
	}

	alert := Alert{EventID: event.ID, DistanceMeters: distance, Text: Announcement(event, distance)}
	if err := e.speaker.Speak(ctx, alert.Text); err != nil {
		e.logger.WithError(err).WithField("event_id", event.ID).Warn("Failed to speak alert")
	}
	return alert, true
}

// reconfirm - fire-and-forget, ошибки только логируются
func (e *Engine) reconfirm(ctx context.Context, id uuid.UUID, distance float64) {
	e.inflight.Add(1)
	go func() {
		defer e.inflight.Done()

		rctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), reconfirmTimeout)
		defer cancel()

		if err := e.reconfirmer.Reconfirm(rctx, id, distance); err != nil {
			e.logger.WithError(err).WithField("event_id", id).Debug("Reconfirm failed")
		}
	}()
}
