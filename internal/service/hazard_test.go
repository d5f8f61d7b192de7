package service

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shenikar/road_hazard_system/internal/config"
	"github.com/shenikar/road_hazard_system/internal/metrics"
	"github.com/shenikar/road_hazard_system/internal/models"
	push_mocks "github.com/shenikar/road_hazard_system/internal/push/mocks"
	"github.com/shenikar/road_hazard_system/internal/service/mocks"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var fixedNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

type testDeps struct {
	repo      *mocks.MockHazardRepository
	geocoder  *mocks.MockGeocoder
	publisher *push_mocks.MockPublisher
	metrics   *metrics.Metrics
}

// newTestHazardService - вспомогательная функция для создания инстанса сервиса с моками.
func newTestHazardService(t *testing.T) (*hazardService, testDeps) {
	ctrl := gomock.NewController(t)
	deps := testDeps{
		repo:      mocks.NewMockHazardRepository(ctrl),
		geocoder:  mocks.NewMockGeocoder(ctrl),
		publisher: push_mocks.NewMockPublisher(ctrl),
		metrics:   metrics.New(),
	}

	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{}) // Отключаем вывод логов в тестах

	cfg := &config.Config{
		EventTTL:               time.Hour,
		ClusterRadiusMeters:    50,
		StatsTimeWindowMinutes: 60,
	}

	svc := NewHazardService(deps.repo, logger, cfg, deps.publisher, deps.geocoder, deps.metrics).(*hazardService)
	svc.now = func() time.Time { return fixedNow }
	return svc, deps
}

func TestClassifyReport(t *testing.T) {
	testCases := []struct {
		text     string
		expected models.EventType
	}{
		{"Big POTHOLE on the left lane", models.EventTypePothole},
		{"speed bump", models.EventTypePothole},
		{"car crash near exit", models.EventTypeAccident},
		{"cop with radar", models.EventTypePolice},
		{"stuck for ten minutes", models.EventTypeTraffic},
		{"free parking here", models.EventTypePark},
		{"need a ride", models.EventTypeLift},
		{"something strange", models.EventTypeGeneral},
		{"   ", models.EventTypeUnknown},
		{"", models.EventTypeUnknown},
	}

	for _, tc := range testCases {
		t.Run(tc.text, func(t *testing.T) {
			assert.Equal(t, tc.expected, ClassifyReport(tc.text))
		})
	}
}

func TestSubmitReport_NewEvent(t *testing.T) {
	// Подготовка
	svc, deps := newTestHazardService(t)
	ctx := context.Background()
	reportID := uuid.New()
	eventID := uuid.New()
	report := &models.Report{RawText: "pothole", Latitude: 55.75, Longitude: 37.61}

	// Ожидания
	deps.repo.EXPECT().
		CreateReport(ctx, report).
		DoAndReturn(func(_ context.Context, r *models.Report) error {
			assert.Equal(t, models.EventTypePothole, r.EventType)
			assert.Equal(t, fixedNow, r.Timestamp)
			r.ID = reportID
			return nil
		}).
		Times(1)

	deps.repo.EXPECT().
		AggregateReport(ctx, report, 50, time.Hour).
		Return(&models.AggregationResult{
			Action: models.ActionCreated,
			Event: models.HazardEvent{
				ID: eventID, EventType: models.EventTypePothole,
				Latitude: 55.75, Longitude: 37.61, Status: models.EventStatusActive,
			},
		}, nil).
		Times(1)

	gomock.InOrder(
		deps.publisher.EXPECT().
			Publish(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, n models.Notification) error {
				assert.Equal(t, models.NotificationEventCreated, n.Type)
				assert.Equal(t, eventID, n.Event.ID)
				assert.Empty(t, n.Event.Address)
				return nil
			}),
		deps.geocoder.EXPECT().
			ReverseGeocode(gomock.Any(), 55.75, 37.61).
			Return("Tverskaya Street, Moscow", nil),
		deps.repo.EXPECT().
			SetEventAddress(gomock.Any(), eventID, "Tverskaya Street, Moscow").
			Return(nil),
		deps.repo.EXPECT().InvalidateEventCache(gomock.Any(), eventID).Return(nil),
		deps.publisher.EXPECT().
			Publish(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, n models.Notification) error {
				assert.Equal(t, models.NotificationEventUpdated, n.Type)
				assert.Equal(t, "Tverskaya Street, Moscow", n.Event.Address)
				return nil
			}),
	)

	// Действие
	id, err := svc.SubmitReport(ctx, report)
	svc.geocoding.Wait()

	// Проверки
	require.NoError(t, err)
	assert.Equal(t, reportID, id)
	assert.Equal(t, 1.0, testutil.ToFloat64(deps.metrics.ReportsReceived.WithLabelValues("CREATED")))
}

func TestSubmitReport_UpdatedEventKeepsAddress(t *testing.T) {
	// Подготовка
	svc, deps := newTestHazardService(t)
	ctx := context.Background()
	eventID := uuid.New()
	report := &models.Report{RawText: "accident", Timestamp: fixedNow.Add(-time.Minute)}

	// Ожидания
	deps.repo.EXPECT().CreateReport(ctx, report).Return(nil).Times(1)
	deps.repo.EXPECT().
		AggregateReport(ctx, report, 50, time.Hour).
		Return(&models.AggregationResult{
			Action: models.ActionUpdated,
			Event:  models.HazardEvent{ID: eventID, Address: "Main St", ConfirmationsCount: 2},
		}, nil).
		Times(1)
	deps.repo.EXPECT().InvalidateEventCache(ctx, eventID).Return(nil).Times(1)
	deps.publisher.EXPECT().
		Publish(ctx, models.Notification{
			Type:  models.NotificationEventUpdated,
			Event: models.HazardEvent{ID: eventID, Address: "Main St", ConfirmationsCount: 2},
		}).
		Return(nil).
		Times(1)

	// Действие
	_, err := svc.SubmitReport(ctx, report)

	// Проверки
	require.NoError(t, err)
	assert.Equal(t, fixedNow.Add(-time.Minute), report.Timestamp)
}

func TestSubmitReport_GeocodeAndPublishFailuresAreNotFatal(t *testing.T) {
	// Подготовка
	svc, deps := newTestHazardService(t)
	ctx := context.Background()
	report := &models.Report{RawText: "traffic jam"}

	// Ожидания
	deps.repo.EXPECT().CreateReport(ctx, report).Return(nil).Times(1)
	deps.repo.EXPECT().
		AggregateReport(ctx, report, 50, time.Hour).
		Return(&models.AggregationResult{Action: models.ActionCreated, Event: models.HazardEvent{ID: uuid.New()}}, nil).
		Times(1)
	deps.geocoder.EXPECT().ReverseGeocode(gomock.Any(), gomock.Any(), gomock.Any()).Return("", errors.New("timeout")).Times(1)
	deps.publisher.EXPECT().Publish(ctx, gomock.Any()).Return(errors.New("redis down")).Times(1)

	// Действие
	_, err := svc.SubmitReport(ctx, report)
	svc.geocoding.Wait()

	// Проверки
	require.NoError(t, err)
	assert.Equal(t, 1.0, testutil.ToFloat64(deps.metrics.GeocodingFailures))
}

func TestSubmitReport_SlowGeocoderDoesNotDelayResponse(t *testing.T) {
	// Подготовка
	svc, deps := newTestHazardService(t)
	ctx, cancel := context.WithCancel(context.Background())
	report := &models.Report{RawText: "pothole"}
	release := make(chan struct{})

	// Ожидания
	deps.repo.EXPECT().CreateReport(ctx, report).Return(nil).Times(1)
	deps.repo.EXPECT().
		AggregateReport(ctx, report, 50, time.Hour).
		Return(&models.AggregationResult{Action: models.ActionCreated, Event: models.HazardEvent{ID: uuid.New()}}, nil).
		Times(1)
	deps.publisher.EXPECT().Publish(ctx, gomock.Any()).Return(nil).Times(1)
	deps.geocoder.EXPECT().
		ReverseGeocode(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(gctx context.Context, _, _ float64) (string, error) {
			<-release
			// отмена запроса не должна прерывать фоновое геокодирование
			assert.NoError(t, gctx.Err())
			return "", nil
		}).
		Times(1)

	// Действие
	done := make(chan error, 1)
	go func() {
		_, err := svc.SubmitReport(ctx, report)
		done <- err
	}()

	// Проверки
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("SubmitReport blocked on geocoder")
	}
	cancel()
	close(release)
	svc.geocoding.Wait()
}

func TestSubmitReport_RepositoryError(t *testing.T) {
	// Подготовка
	svc, deps := newTestHazardService(t)
	ctx := context.Background()
	report := &models.Report{RawText: "pothole"}
	expectedErr := errors.New("database error")

	// Ожидания
	deps.repo.EXPECT().CreateReport(ctx, report).Return(expectedErr).Times(1)

	// Действие
	id, err := svc.SubmitReport(ctx, report)

	// Проверки
	require.Error(t, err)
	assert.ErrorIs(t, err, expectedErr)
	assert.Equal(t, uuid.Nil, id)
}

func TestSubmitReport_AggregationError(t *testing.T) {
	// Подготовка
	svc, deps := newTestHazardService(t)
	ctx := context.Background()
	report := &models.Report{RawText: "pothole"}
	expectedErr := errors.New("aggregation failed")

	// Ожидания
	deps.repo.EXPECT().CreateReport(ctx, report).Return(nil).Times(1)
	deps.repo.EXPECT().AggregateReport(ctx, report, 50, time.Hour).Return(nil, expectedErr).Times(1)

	// Действие
	_, err := svc.SubmitReport(ctx, report)

	// Проверки
	assert.ErrorIs(t, err, expectedErr)
}

func TestGetEvent_FromCache(t *testing.T) {
	// Подготовка
	svc, deps := newTestHazardService(t)
	ctx := context.Background()
	eventID := uuid.New()
	expected := &models.HazardEvent{ID: eventID, EventType: models.EventTypePolice}

	// Ожидания
	deps.repo.EXPECT().GetEventFromCache(ctx, eventID).Return(expected, nil).Times(1)

	// Действие
	event, err := svc.GetEvent(ctx, eventID)

	// Проверки
	require.NoError(t, err)
	assert.Equal(t, expected, event)
}

func TestGetEvent_FromDB(t *testing.T) {
	// Подготовка
	svc, deps := newTestHazardService(t)
	ctx := context.Background()
	eventID := uuid.New()
	expected := &models.HazardEvent{ID: eventID}

	// Ожидания
	// 1. Промах кеша
	deps.repo.EXPECT().GetEventFromCache(ctx, eventID).Return(nil, nil).Times(1)
	// 2. Попадание в БД
	deps.repo.EXPECT().GetEventByID(ctx, eventID).Return(expected, nil).Times(1)
	// 3. Запись в кеш
	deps.repo.EXPECT().SetEventCache(ctx, expected).Return(nil).Times(1)

	// Действие
	event, err := svc.GetEvent(ctx, eventID)

	// Проверки
	require.NoError(t, err)
	assert.Equal(t, expected, event)
}

func TestGetEvent_NotFound(t *testing.T) {
	// Подготовка
	svc, deps := newTestHazardService(t)
	ctx := context.Background()
	eventID := uuid.New()

	// Ожидания
	deps.repo.EXPECT().GetEventFromCache(ctx, eventID).Return(nil, nil).Times(1)
	deps.repo.EXPECT().GetEventByID(ctx, eventID).Return(nil, ErrEventNotFound).Times(1)

	// Действие
	event, err := svc.GetEvent(ctx, eventID)

	// Проверки
	assert.Nil(t, event)
	assert.ErrorIs(t, err, ErrEventNotFound)
}

func TestListActiveEvents(t *testing.T) {
	// Подготовка
	svc, deps := newTestHazardService(t)
	ctx := context.Background()
	expected := []*models.HazardEvent{{ID: uuid.New()}, {ID: uuid.New()}}

	// Ожидания
	deps.repo.EXPECT().ListActiveEvents(ctx).Return(expected, nil).Times(1)

	// Действие
	events, err := svc.ListActiveEvents(ctx)

	// Проверки
	require.NoError(t, err)
	assert.Len(t, events, 2)
}

func TestReconfirmEvent_Success(t *testing.T) {
	// Подготовка
	svc, deps := newTestHazardService(t)
	ctx := context.Background()
	eventID := uuid.New()
	distance := 120.5
	extended := &models.HazardEvent{ID: eventID, Status: models.EventStatusActive}

	// Ожидания
	deps.repo.EXPECT().ExtendEvent(ctx, eventID, fixedNow.Add(time.Hour)).Return(extended, nil).Times(1)
	deps.repo.EXPECT().
		SaveReconfirmation(ctx, &models.Reconfirmation{EventID: eventID, DistanceMeters: &distance, ReceivedAt: fixedNow}).
		Return(nil).
		Times(1)
	deps.repo.EXPECT().InvalidateEventCache(ctx, eventID).Return(nil).Times(1)
	deps.publisher.EXPECT().
		Publish(ctx, models.Notification{Type: models.NotificationEventUpdated, Event: *extended}).
		Return(nil).
		Times(1)

	// Действие
	err := svc.ReconfirmEvent(ctx, eventID, &distance)

	// Проверки
	require.NoError(t, err)
	assert.Equal(t, 1.0, testutil.ToFloat64(deps.metrics.Reconfirmations))
}

func TestReconfirmEvent_NotFound(t *testing.T) {
	// Подготовка
	svc, deps := newTestHazardService(t)
	ctx := context.Background()
	eventID := uuid.New()

	// Ожидания
	deps.repo.EXPECT().ExtendEvent(ctx, eventID, gomock.Any()).Return(nil, ErrEventNotFound).Times(1)

	// Действие
	err := svc.ReconfirmEvent(ctx, eventID, nil)

	// Проверки
	assert.ErrorIs(t, err, ErrEventNotFound)
}

func TestExpireEvents(t *testing.T) {
	// Подготовка
	svc, deps := newTestHazardService(t)
	ctx := context.Background()
	expired := []*models.HazardEvent{
		{ID: uuid.New(), Status: models.EventStatusExpired},
		{ID: uuid.New(), Status: models.EventStatusExpired},
	}

	// Ожидания
	deps.repo.EXPECT().ExpireEvents(ctx, fixedNow).Return(expired, nil).Times(1)
	deps.repo.EXPECT().InvalidateEventCache(ctx, gomock.Any()).Return(nil).Times(2)
	deps.publisher.EXPECT().
		Publish(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, n models.Notification) error {
			assert.Equal(t, models.NotificationEventUpdated, n.Type)
			assert.Equal(t, models.EventStatusExpired, n.Event.Status)
			return nil
		}).
		Times(2)

	// Действие
	count, err := svc.ExpireEvents(ctx)

	// Проверки
	require.NoError(t, err)
	assert.Equal(t, 2, count)
	assert.Equal(t, 2.0, testutil.ToFloat64(deps.metrics.EventsExpired))
}

func TestGetStats(t *testing.T) {
	// Подготовка
	svc, deps := newTestHazardService(t)
	ctx := context.Background()
	expected := &models.Stats{ActiveEvents: 3, Reconfirmations: 7}

	// Ожидания
	deps.repo.EXPECT().GetStats(ctx, 60).Return(expected, nil).Times(1)

	// Действие
	stats, err := svc.GetStats(ctx)

	// Проверки
	require.NoError(t, err)
	assert.Equal(t, expected, stats)
}
