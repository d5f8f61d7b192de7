// Package agent связывает клиентские компоненты: push-канал, поток позиций,
// полное обновление кэша и сброс офлайн-очереди.
package agent

import (
	"context"
	"time"

	"github.com/shenikar/road_hazard_system/internal/client/offline"
	"github.com/shenikar/road_hazard_system/internal/client/proximity"
	"github.com/shenikar/road_hazard_system/internal/client/stream"
	"github.com/shenikar/road_hazard_system/internal/models"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

//go:generate mockgen -source=agent.go -destination=mocks/mock_agent.go -package=mocks

const defaultFlushInterval = 30 * time.Second

// Engine - правила оповещения. Все мутации выполняются из одной горутины агента
type Engine interface {
	CheckPosition(ctx context.Context, pos models.Position) []proximity.Alert
	Apply(ctx context.Context, notification models.Notification) *proximity.Alert
	Refresh(events []*models.HazardEvent, since time.Time)
	Wait()
}

// PushStream - подписка на push-канал
type PushStream interface {
	Run(ctx context.Context, sink stream.Sink) error
}

// EventLister загружает полный список активных событий
type EventLister interface {
	ListEvents(ctx context.Context) ([]*models.HazardEvent, error)
}

// Flusher - офлайн-очередь
type Flusher interface {
	Flush(ctx context.Context, send offline.SendFunc) (sent, remaining int, err error)
}

type messageKind int

const (
	messageNotification messageKind = iota
	messagePosition
	messageRefresh
)

type message struct {
	kind         messageKind
	notification models.Notification
	position     models.Position
	events       []*models.HazardEvent
	fetchedAt    time.Time
}

type Agent struct {
	engine        Engine
	stream        PushStream
	lister        EventLister
	queue         Flusher
	resend        offline.SendFunc
	flushInterval time.Duration
	logger        *logrus.Logger

	inbox     chan message
	refreshCh chan struct{}
	flushCh   chan struct{}
}

func New(engine Engine, push PushStream, lister EventLister, queue Flusher, resend offline.SendFunc, flushInterval time.Duration, logger *logrus.Logger) *Agent {
	if flushInterval <= 0 {
		flushInterval = defaultFlushInterval
	}

	return &Agent{
		engine:        engine,
		stream:        push,
		lister:        lister,
		queue:         queue,
		resend:        resend,
		flushInterval: flushInterval,
		logger:        logger,
		inbox:         make(chan message, 64),
		refreshCh:     make(chan struct{}, 1),
		flushCh:       make(chan struct{}, 1),
	}
}

// Run блокируется до отмены ctx. Закрытие positions не останавливает агента
func (a *Agent) Run(ctx context.Context, positions <-chan models.Position) error {
	defer a.engine.Wait()

	g, ctx := errgroup.WithContext(ctx)
	sink := &streamSink{ctx: ctx, agent: a}

	a.requestRefresh()

	g.Go(func() error { return a.consume(ctx) })
	g.Go(func() error { return a.stream.Run(ctx, sink) })
	g.Go(func() error { return a.forwardPositions(ctx, positions) })
	g.Go(func() error { return a.refreshLoop(ctx) })
	g.Go(func() error { return a.flushLoop(ctx) })

	return g.Wait()
}

// consume - единственная горутина, меняющая состояние движка
func (a *Agent) consume(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg := <-a.inbox:
			switch msg.kind {
			case messageNotification:
				if alert := a.engine.Apply(ctx, msg.notification); alert != nil {
					a.logger.WithField("event_id", alert.EventID).Info(alert.Text)
				}
			case messagePosition:
				for _, alert := range a.engine.CheckPosition(ctx, msg.position) {
					a.logger.WithField("event_id", alert.EventID).Info(alert.Text)
				}
			case messageRefresh:
				a.engine.Refresh(msg.events, msg.fetchedAt)
			}
		}
	}
}

func (a *Agent) post(ctx context.Context, msg message) {
	select {
	case a.inbox <- msg:
	case <-ctx.Done():
	}
}

func (a *Agent) forwardPositions(ctx context.Context, positions <-chan models.Position) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case pos, ok := <-positions:
			if !ok {
				a.logger.Debug("Position stream ended")
				return nil
			}
			a.post(ctx, message{kind: messagePosition, position: pos})
		}
	}
}

func (a *Agent) requestRefresh() {
	select {
	case a.refreshCh <- struct{}{}:
	default:
	}
}

func (a *Agent) requestFlush() {
	select {
	case a.flushCh <- struct{}{}:
	default:
	}
}

func (a *Agent) refreshLoop(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-a.refreshCh:
			started := time.Now()
			events, err := a.lister.ListEvents(ctx)
			if err != nil {
				if ctx.Err() == nil {
					a.logger.WithError(err).Warn("Failed to refresh events")
				}
				continue
			}
			a.post(ctx, message{kind: messageRefresh, events: events, fetchedAt: started})
		}
	}
}

func (a *Agent) flushLoop(ctx context.Context) error {
	ticker := time.NewTicker(a.flushInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		case <-a.flushCh:
		}

		if _, _, err := a.queue.Flush(ctx, a.resend); err != nil {
			a.logger.WithError(err).Error("Failed to flush offline queue")
		}
	}
}

// streamSink переводит колбэки push-канала в сообщения агента
type streamSink struct {
	ctx   context.Context
	agent *Agent
}

func (s *streamSink) OnNotification(notification models.Notification) {
	s.agent.post(s.ctx, message{kind: messageNotification, notification: notification})
}

// OnConnected: после (пере)подключения пропущенные уведомления восстанавливаются
// полным обновлением, а очередь сбрасывается
func (s *streamSink) OnConnected() {
	s.agent.requestRefresh()
	s.agent.requestFlush()
}
