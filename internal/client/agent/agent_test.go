package agent

import (
	"bytes"
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shenikar/road_hazard_system/internal/client/agent/mocks"
	"github.com/shenikar/road_hazard_system/internal/client/offline"
	"github.com/shenikar/road_hazard_system/internal/client/proximity"
	"github.com/shenikar/road_hazard_system/internal/client/stream"
	"github.com/shenikar/road_hazard_system/internal/models"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// fakeStream подключается один раз, отдает уведомления и ждет отмены
type fakeStream struct {
	notifications []models.Notification
}

func (f *fakeStream) Run(ctx context.Context, sink stream.Sink) error {
	sink.OnConnected()
	for _, n := range f.notifications {
		sink.OnNotification(n)
	}
	<-ctx.Done()
	return nil
}

type agentDeps struct {
	engine *mocks.MockEngine
	lister *mocks.MockEventLister
	queue  *mocks.MockFlusher
}

func newTestAgent(t *testing.T, push PushStream, flushInterval time.Duration) (*Agent, agentDeps) {
	ctrl := gomock.NewController(t)
	deps := agentDeps{
		engine: mocks.NewMockEngine(ctrl),
		lister: mocks.NewMockEventLister(ctrl),
		queue:  mocks.NewMockFlusher(ctrl),
	}

	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{})

	resend := func(context.Context, models.Report) error { return nil }
	return New(deps.engine, push, deps.lister, deps.queue, resend, flushInterval, logger), deps
}

func signal(ch chan struct{}) {
	select {
	case ch <- struct{}{}:
	default:
	}
}

func waitFor(t *testing.T, ch chan struct{}, what string) {
	t.Helper()
	select {
	case <-ch:
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for %s", what)
	}
}

func TestRun_FeedsEngine(t *testing.T) {
	event := models.HazardEvent{ID: uuid.New(), EventType: models.EventTypePothole, Status: models.EventStatusActive}
	notification := models.Notification{Type: models.NotificationEventCreated, Event: event}
	agent, deps := newTestAgent(t, &fakeStream{notifications: []models.Notification{notification}}, time.Hour)

	events := []*models.HazardEvent{&event}
	pos := models.Position{Latitude: 35.9, Longitude: 14.4}

	refreshed := make(chan struct{}, 1)
	applied := make(chan struct{}, 1)
	checked := make(chan struct{}, 1)
	flushed := make(chan struct{}, 1)

	var listedAt atomic.Int64
	deps.lister.EXPECT().ListEvents(gomock.Any()).DoAndReturn(func(context.Context) ([]*models.HazardEvent, error) {
		listedAt.Store(time.Now().UnixNano())
		return events, nil
	}).MinTimes(1)
	deps.engine.EXPECT().Refresh(events, gomock.Any()).Do(func(_ []*models.HazardEvent, since time.Time) {
		// момент начала загрузки фиксируется до запроса списка
		assert.LessOrEqual(t, since.UnixNano(), listedAt.Load())
		signal(refreshed)
	}).MinTimes(1)
	deps.engine.EXPECT().Apply(gomock.Any(), notification).DoAndReturn(func(context.Context, models.Notification) *proximity.Alert {
		signal(applied)
		return &proximity.Alert{EventID: event.ID, Text: "Caution. Potholes ahead in 1.2 kilometers."}
	})
	deps.engine.EXPECT().CheckPosition(gomock.Any(), pos).DoAndReturn(func(context.Context, models.Position) []proximity.Alert {
		signal(checked)
		return nil
	})
	deps.queue.EXPECT().Flush(gomock.Any(), gomock.Any()).DoAndReturn(func(context.Context, offline.SendFunc) (int, int, error) {
		signal(flushed)
		return 0, 0, nil
	}).MinTimes(1)
	deps.engine.EXPECT().Wait()

	ctx, cancel := context.WithCancel(context.Background())
	positions := make(chan models.Position, 1)
	positions <- pos
	close(positions)

	done := make(chan error, 1)
	go func() { done <- agent.Run(ctx, positions) }()

	waitFor(t, refreshed, "refresh")
	waitFor(t, applied, "notification")
	waitFor(t, checked, "position")
	waitFor(t, flushed, "flush on connect")

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("agent did not stop")
	}
}

func TestRun_PeriodicFlush(t *testing.T) {
	agent, deps := newTestAgent(t, &fakeStream{}, 10*time.Millisecond)

	flushed := make(chan struct{}, 8)
	deps.lister.EXPECT().ListEvents(gomock.Any()).Return(nil, nil).AnyTimes()
	deps.engine.EXPECT().Refresh(gomock.Any(), gomock.Any()).AnyTimes()
	deps.queue.EXPECT().Flush(gomock.Any(), gomock.Any()).DoAndReturn(func(context.Context, offline.SendFunc) (int, int, error) {
		signal(flushed)
		return 1, 0, nil
	}).MinTimes(3)
	deps.engine.EXPECT().Wait()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- agent.Run(ctx, nil) }()

	for i := 0; i < 3; i++ {
		waitFor(t, flushed, "flush")
	}
	cancel()
	require.NoError(t, <-done)
}

func TestRun_RefreshAndFlushErrorsAreNotFatal(t *testing.T) {
	agent, deps := newTestAgent(t, &fakeStream{}, time.Hour)

	failed := make(chan struct{}, 2)
	deps.lister.EXPECT().ListEvents(gomock.Any()).DoAndReturn(func(context.Context) ([]*models.HazardEvent, error) {
		signal(failed)
		return nil, errors.New("server unavailable")
	}).MinTimes(1)
	flushed := make(chan struct{}, 1)
	deps.queue.EXPECT().Flush(gomock.Any(), gomock.Any()).DoAndReturn(func(context.Context, offline.SendFunc) (int, int, error) {
		signal(flushed)
		return 0, 0, errors.New("badger closed")
	}).MinTimes(1)
	deps.engine.EXPECT().Wait()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- agent.Run(ctx, nil) }()

	waitFor(t, failed, "refresh attempt")
	waitFor(t, flushed, "flush attempt")

	cancel()
	require.NoError(t, <-done)
}
