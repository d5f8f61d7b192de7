package submit

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shenikar/road_hazard_system/internal/client/offline"
	"github.com/shenikar/road_hazard_system/internal/client/submit/mocks"
	"github.com/shenikar/road_hazard_system/internal/models"
	"github.com/shenikar/road_hazard_system/pkg/badgerdb"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var fixedNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func silentLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{})
	return logger
}

func testPosition() models.Position {
	heading, speed := 90.0, 13.5
	return models.Position{Latitude: 35.91, Longitude: 14.42, Heading: &heading, Speed: &speed}
}

func TestSubmit_Sent(t *testing.T) {
	ctrl := gomock.NewController(t)
	submitter := mocks.NewMockSubmitter(ctrl)
	queue := mocks.NewMockQueue(ctrl)

	pipeline := NewPipeline(submitter, queue, time.Second, silentLogger())
	pipeline.now = func() time.Time { return fixedNow }

	reportID := uuid.New()
	pos := testPosition()
	submitter.EXPECT().
		SubmitReport(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, report models.Report) (uuid.UUID, error) {
			_, hasDeadline := ctx.Deadline()
			assert.True(t, hasDeadline)
			assert.Equal(t, "accident ahead", report.RawText)
			assert.Equal(t, pos.Latitude, report.Latitude)
			assert.Equal(t, pos.Longitude, report.Longitude)
			assert.Equal(t, pos.Heading, report.Heading)
			assert.Equal(t, pos.Speed, report.Speed)
			assert.Equal(t, fixedNow, report.Timestamp)
			return reportID, nil
		})

	result, err := pipeline.Submit(context.Background(), "accident ahead", pos)
	require.NoError(t, err)
	assert.Equal(t, Result{Outcome: OutcomeSent, ReportID: reportID}, result)
}

func TestSubmit_FailureIsQueued(t *testing.T) {
	ctrl := gomock.NewController(t)
	submitter := mocks.NewMockSubmitter(ctrl)
	queue := mocks.NewMockQueue(ctrl)

	pipeline := NewPipeline(submitter, queue, time.Second, silentLogger())
	pipeline.now = func() time.Time { return fixedNow }

	submitter.EXPECT().SubmitReport(gomock.Any(), gomock.Any()).Return(uuid.Nil, errors.New("connection refused"))
	queue.EXPECT().Enqueue(gomock.Any()).DoAndReturn(func(report models.Report) error {
		assert.Equal(t, "pothole", report.RawText)
		assert.Equal(t, fixedNow, report.Timestamp)
		return nil
	})

	result, err := pipeline.Submit(context.Background(), "pothole", testPosition())
	require.NoError(t, err)
	assert.Equal(t, OutcomeQueued, result.Outcome)
	assert.Equal(t, uuid.Nil, result.ReportID)
}

func TestSubmit_QueueFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	submitter := mocks.NewMockSubmitter(ctrl)
	queue := mocks.NewMockQueue(ctrl)

	pipeline := NewPipeline(submitter, queue, time.Second, silentLogger())
	storageErr := errors.New("disk full")

	submitter.EXPECT().SubmitReport(gomock.Any(), gomock.Any()).Return(uuid.Nil, errors.New("timeout"))
	queue.EXPECT().Enqueue(gomock.Any()).Return(storageErr)

	_, err := pipeline.Submit(context.Background(), "traffic jam", testPosition())
	require.Error(t, err)
	assert.ErrorIs(t, err, storageErr)
}

func TestSubmit_OfflineThenFlush(t *testing.T) {
	db, err := badgerdb.Open(badgerdb.InMemoryConfig())
	require.NoError(t, err)
	queue, err := offline.NewQueue(db, silentLogger())
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = queue.Close()
		_ = db.Close()
	})

	ctrl := gomock.NewController(t)
	submitter := mocks.NewMockSubmitter(ctrl)
	pipeline := NewPipeline(submitter, queue, time.Second, silentLogger())
	ctx := context.Background()

	submitter.EXPECT().SubmitReport(gomock.Any(), gomock.Any()).Return(uuid.Nil, errors.New("offline")).Times(3)
	for _, text := range []string{"crash", "pothole", "police"} {
		result, err := pipeline.Submit(ctx, text, testPosition())
		require.NoError(t, err)
		assert.Equal(t, OutcomeQueued, result.Outcome)
	}

	var resent []string
	submitter.EXPECT().
		SubmitReport(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, report models.Report) (uuid.UUID, error) {
			resent = append(resent, report.RawText)
			return uuid.New(), nil
		}).
		Times(3)

	sent, remaining, err := queue.Flush(ctx, pipeline.Resend)
	require.NoError(t, err)
	assert.Equal(t, 3, sent)
	assert.Equal(t, 0, remaining)
	assert.Equal(t, []string{"crash", "pothole", "police"}, resent)
}
