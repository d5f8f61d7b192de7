package offline

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/shenikar/road_hazard_system/internal/models"
	"github.com/shenikar/road_hazard_system/pkg/badgerdb"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestQueue(t *testing.T) (*Queue, *badger.DB) {
	db, err := badgerdb.Open(badgerdb.InMemoryConfig())
	require.NoError(t, err)

	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{})

	queue, err := NewQueue(db, logger)
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = queue.Close()
		_ = db.Close()
	})
	return queue, db
}

func report(text string) models.Report {
	return models.Report{
		RawText:   text,
		Latitude:  55.75,
		Longitude: 37.61,
		Timestamp: time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
	}
}

func enqueueAll(t *testing.T, q *Queue, texts ...string) {
	for _, text := range texts {
		require.NoError(t, q.Enqueue(report(text)))
	}
}

func TestFlush_AllSent(t *testing.T) {
	queue, _ := newTestQueue(t)
	enqueueAll(t, queue, "first", "second", "third")

	var delivered []string
	sent, remaining, err := queue.Flush(context.Background(), func(_ context.Context, r models.Report) error {
		delivered = append(delivered, r.RawText)
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 3, sent)
	assert.Equal(t, 0, remaining)
	assert.Equal(t, []string{"first", "second", "third"}, delivered)

	count, err := queue.Len()
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestFlush_SecondFailsAndStaysQueued(t *testing.T) {
	queue, _ := newTestQueue(t)
	enqueueAll(t, queue, "first", "second", "third")

	attempts := map[string]int{}
	sent, remaining, err := queue.Flush(context.Background(), func(_ context.Context, r models.Report) error {
		attempts[r.RawText]++
		if r.RawText == "second" {
			return errors.New("server unavailable")
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 2, sent)
	assert.Equal(t, 1, remaining)
	// каждый отчет - ровно одна попытка за вызов
	assert.Equal(t, map[string]int{"first": 1, "second": 1, "third": 1}, attempts)

	reports, err := queue.List()
	require.NoError(t, err)
	require.Len(t, reports, 1)
	assert.Equal(t, "second", reports[0].RawText)
}

func TestFlush_FailuresKeepRelativeOrder(t *testing.T) {
	queue, _ := newTestQueue(t)
	enqueueAll(t, queue, "a", "b", "c", "d")

	_, remaining, err := queue.Flush(context.Background(), func(_ context.Context, r models.Report) error {
		if r.RawText == "b" || r.RawText == "d" {
			return errors.New("timeout")
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 2, remaining)

	// новый отчет встает после оставшихся
	enqueueAll(t, queue, "e")

	reports, err := queue.List()
	require.NoError(t, err)
	texts := make([]string, 0, len(reports))
	for _, r := range reports {
		texts = append(texts, r.RawText)
	}
	assert.Equal(t, []string{"b", "d", "e"}, texts)
}

func TestFlush_EmptyQueue(t *testing.T) {
	queue, _ := newTestQueue(t)

	sent, remaining, err := queue.Flush(context.Background(), func(context.Context, models.Report) error {
		t.Fatal("send must not be called for an empty queue")
		return nil
	})

	require.NoError(t, err)
	assert.Zero(t, sent)
	assert.Zero(t, remaining)
}

func TestFlush_CancelledContextKeepsEverything(t *testing.T) {
	queue, _ := newTestQueue(t)
	enqueueAll(t, queue, "first", "second")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	sent, remaining, err := queue.Flush(ctx, func(context.Context, models.Report) error { return nil })

	require.NoError(t, err)
	assert.Zero(t, sent)
	assert.Equal(t, 2, remaining)
}

func TestEnqueue_PreservesPayload(t *testing.T) {
	queue, _ := newTestQueue(t)
	heading := 45.0
	speed := 12.5
	original := report("bump")
	original.Heading = &heading
	original.Speed = &speed

	require.NoError(t, queue.Enqueue(original))

	reports, err := queue.List()
	require.NoError(t, err)
	require.Len(t, reports, 1)
	assert.Equal(t, "bump", reports[0].RawText)
	assert.Equal(t, 45.0, *reports[0].Heading)
	assert.Equal(t, 12.5, *reports[0].Speed)
	assert.True(t, original.Timestamp.Equal(reports[0].Timestamp))
}

func TestQueue_SurvivesReopen(t *testing.T) {
	dir := t.TempDir()
	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{})

	db, err := badgerdb.Open(badgerdb.Config{Path: dir})
	require.NoError(t, err)
	queue, err := NewQueue(db, logger)
	require.NoError(t, err)
	require.NoError(t, queue.Enqueue(report("before restart")))
	require.NoError(t, queue.Close())
	require.NoError(t, db.Close())

	db, err = badgerdb.Open(badgerdb.Config{Path: dir})
	require.NoError(t, err)
	defer db.Close()
	queue, err = NewQueue(db, logger)
	require.NoError(t, err)
	defer queue.Close()
	require.NoError(t, queue.Enqueue(report("after restart")))

	reports, err := queue.List()
	require.NoError(t, err)
	require.Len(t, reports, 2)
	assert.Equal(t, "before restart", reports[0].RawText)
	assert.Equal(t, "after restart", reports[1].RawText)
}
