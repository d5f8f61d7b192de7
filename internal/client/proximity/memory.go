package proximity

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// AlertMemory помнит озвученные события и время последнего подтверждения на время сессии
type AlertMemory struct {
	mu          sync.Mutex
	spoken      map[uuid.UUID]struct{}
	reconfirmed map[uuid.UUID]time.Time
}

func NewAlertMemory() *AlertMemory {
	return &AlertMemory{
		spoken:      make(map[uuid.UUID]struct{}),
		reconfirmed: make(map[uuid.UUID]time.Time),
	}
}

// MarkSpoken добавляет id в множество озвученных; false, если он там уже был
func (m *AlertMemory) MarkSpoken(id uuid.UUID) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.spoken[id]; ok {
		return false
	}
	m.spoken[id] = struct{}{}
	return true
}

func (m *AlertMemory) WasSpoken(id uuid.UUID) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.spoken[id]
	return ok
}

// TryReconfirm фиксирует now, если предыдущее подтверждение было больше interval назад
// или его не было. Время подтверждения только растет
func (m *AlertMemory) TryReconfirm(id uuid.UUID, now time.Time, interval time.Duration) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if last, ok := m.reconfirmed[id]; ok && now.Sub(last) <= interval {
		return false
	}
	m.reconfirmed[id] = now
	return true
}
