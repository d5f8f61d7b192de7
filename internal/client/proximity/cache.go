package proximity

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shenikar/road_hazard_system/internal/models"
)

// EventCache - локальная копия событий сервера, не больше одного события на id.
// Обновление заменяет событие целиком
type EventCache struct {
	mu     sync.RWMutex
	events map[uuid.UUID]models.HazardEvent
	// touched - время последнего push-обновления по id, включая удаления
	touched map[uuid.UUID]time.Time
	now     func() time.Time
}

func NewEventCache() *EventCache {
	return &EventCache{
		events:  make(map[uuid.UUID]models.HazardEvent),
		touched: make(map[uuid.UUID]time.Time),
		now:     time.Now,
	}
}

// Upsert заменяет событие; неактивные события удаляются из кэша.
// Возвращает true, если id уже был известен
func (c *EventCache) Upsert(event models.HazardEvent) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	_, known := c.events[event.ID]
	c.touched[event.ID] = c.now()
	if event.IsActive() {
		c.events[event.ID] = event
	} else {
		delete(c.events, event.ID)
	}
	return known
}

// Replace - полное обновление после загрузки списка с сервера.
// since - момент начала загрузки: push-обновления, пришедшие позже,
// новее списка и сохраняются поверх него
func (c *EventCache) Replace(events []*models.HazardEvent, since time.Time) {
	fresh := make(map[uuid.UUID]models.HazardEvent, len(events))
	for _, event := range events {
		if event != nil && event.IsActive() {
			fresh[event.ID] = *event
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	for id, at := range c.touched {
		if at.Before(since) {
			delete(c.touched, id)
			continue
		}
		if event, ok := c.events[id]; ok {
			fresh[id] = event
		} else {
			delete(fresh, id)
		}
	}
	c.events = fresh
}

func (c *EventCache) Get(id uuid.UUID) (models.HazardEvent, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	event, ok := c.events[id]
	return event, ok
}

func (c *EventCache) Snapshot() []models.HazardEvent {
	c.mu.RLock()
	defer c.mu.RUnlock()

	events := make([]models.HazardEvent, 0, len(c.events))
	for _, event := range c.events {
		events = append(events, event)
	}
	return events
}

func (c *EventCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.events)
}
