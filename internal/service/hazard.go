package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shenikar/road_hazard_system/internal/config"
	"github.com/shenikar/road_hazard_system/internal/metrics"
	"github.com/shenikar/road_hazard_system/internal/models"
	"github.com/shenikar/road_hazard_system/internal/push"
	"github.com/sirupsen/logrus"
)

//go:generate mockgen -source=hazard.go -destination=mocks/mock_hazard.go -package=mocks

const defaultGeocodeTimeout = 5 * time.Second

// ErrEventNotFound - активное событие с таким id не найдено
var ErrEventNotFound = errors.New("event not found")

// HazardRepository определяет контракт для работы с бд отчетов и событий
type HazardRepository interface {
	CreateReport(ctx context.Context, report *models.Report) error
	// AggregateReport - сервис агрегации: решает, новое это событие или подтверждение существующего
	AggregateReport(ctx context.Context, report *models.Report, clusterRadiusMeters int, ttl time.Duration) (*models.AggregationResult, error)
	SetEventAddress(ctx context.Context, id uuid.UUID, address string) error
	GetEventByID(ctx context.Context, id uuid.UUID) (*models.HazardEvent, error)
	ListActiveEvents(ctx context.Context) ([]*models.HazardEvent, error)
	ExtendEvent(ctx context.Context, id uuid.UUID, validUntil time.Time) (*models.HazardEvent, error)
	SaveReconfirmation(ctx context.Context, reconfirmation *models.Reconfirmation) error
	ExpireEvents(ctx context.Context, now time.Time) ([]*models.HazardEvent, error)
	GetStats(ctx context.Context, minutes int) (*models.Stats, error)
	GetEventFromCache(ctx context.Context, id uuid.UUID) (*models.HazardEvent, error)
	SetEventCache(ctx context.Context, event *models.HazardEvent) error
	InvalidateEventCache(ctx context.Context, id uuid.UUID) error
}

// Geocoder - обратное геокодирование (best-effort)
type Geocoder interface {
	ReverseGeocode(ctx context.Context, lat, lon float64) (string, error)
}

// HazardService определяет контракт бизнес-логики приема отчетов и событий
type HazardService interface {
	SubmitReport(ctx context.Context, report *models.Report) (uuid.UUID, error)
	ListActiveEvents(ctx context.Context) ([]*models.HazardEvent, error)
	GetEvent(ctx context.Context, id uuid.UUID) (*models.HazardEvent, error)
	ReconfirmEvent(ctx context.Context, id uuid.UUID, distanceMeters *float64) error
	ExpireEvents(ctx context.Context) (int, error)
	GetStats(ctx context.Context) (*models.Stats, error)
}

type hazardService struct {
	repo      HazardRepository
	logger    *logrus.Logger
	cfg       *config.Config
	publisher push.Publisher
	geocoder  Geocoder
	metrics   *metrics.Metrics
	now       func() time.Time
	// geocoding - фоновые задачи обогащения адресом
	geocoding sync.WaitGroup
}

func NewHazardService(
	repo HazardRepository,
	logger *logrus.Logger,
	cfg *config.Config,
	publisher push.Publisher,
	geocoder Geocoder,
	m *metrics.Metrics,
) HazardService {
	return &hazardService{
		repo:      repo,
		logger:    logger,
		cfg:       cfg,
		publisher: publisher,
		geocoder:  geocoder,
		metrics:   m,
		now:       time.Now,
	}
}

// SubmitReport сохраняет отчет, передает его в агрегацию и рассылает результат подписчикам
func (s *hazardService) SubmitReport(ctx context.Context, report *models.Report) (uuid.UUID, error) {
	report.EventType = ClassifyReport(report.RawText)
	if report.Timestamp.IsZero() {
		report.Timestamp = s.now()
	}

	log := s.logger.WithFields(logrus.Fields{
		"service":    "hazard",
		"method":     "SubmitReport",
		"event_type": report.EventType,
	})
	log.Info("Processing report")

	if err := s.repo.CreateReport(ctx, report); err != nil {
		log.WithError(err).Error("Failed to save report in repository")
		return uuid.Nil, fmt.Errorf("service: could not save report: %w", err)
	}
	log = log.WithField("report_id", report.ID)

	result, err := s.repo.AggregateReport(ctx, report, s.cfg.ClusterRadiusMeters, s.cfg.EventTTL)
	if err != nil {
		log.WithError(err).Error("Failed to aggregate report")
		return uuid.Nil, fmt.Errorf("service: could not aggregate report: %w", err)
	}
	s.metrics.ReportsReceived.WithLabelValues(string(result.Action)).Inc()
	log = log.WithFields(logrus.Fields{"action": result.Action, "event_id": result.Event.ID})

	if result.Action == models.ActionUpdated {
		if err := s.repo.InvalidateEventCache(ctx, result.Event.ID); err != nil {
			log.WithError(err).Warn("Failed to invalidate event cache")
		}
	}

	s.publish(ctx, models.NotificationFor(result), log)

	if result.Event.Address == "" {
		s.enrichAddressAsync(ctx, result.Event, log)
	}

	log.Info("Report processed successfully")
	return report.ID, nil
}

// enrichAddressAsync геокодирует событие в фоне, не задерживая ответ клиенту.
// Контекст отвязан от запроса и ограничен таймаутом геокодера
func (s *hazardService) enrichAddressAsync(ctx context.Context, event models.HazardEvent, log *logrus.Entry) {
	timeout := s.cfg.GeocoderTimeout
	if timeout <= 0 {
		timeout = defaultGeocodeTimeout
	}
	bgCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), timeout)

	s.geocoding.Add(1)
	go func() {
		defer s.geocoding.Done()
		defer cancel()
		s.enrichAddress(bgCtx, event, log)
	}()
}

// enrichAddress - обратное геокодирование; ошибка оставляет адрес пустым.
// Найденный адрес сохраняется и рассылается подписчикам как EventUpdated
func (s *hazardService) enrichAddress(ctx context.Context, event models.HazardEvent, log *logrus.Entry) {
	address, err := s.geocoder.ReverseGeocode(ctx, event.Latitude, event.Longitude)
	if err != nil {
		s.metrics.GeocodingFailures.Inc()
		log.WithError(err).Warn("Failed to geocode event")
		return
	}
	if address == "" {
		return
	}

	if err := s.repo.SetEventAddress(ctx, event.ID, address); err != nil {
		log.WithError(err).Warn("Failed to save event address")
		return
	}
	if err := s.repo.InvalidateEventCache(ctx, event.ID); err != nil {
		log.WithError(err).Warn("Failed to invalidate event cache")
	}

	event.Address = address
	s.publish(ctx, models.Notification{Type: models.NotificationEventUpdated, Event: event}, log)
	log.Debug("Event address resolved")
}

func (s *hazardService) publish(ctx context.Context, notification models.Notification, log *logrus.Entry) {
	if err := s.publisher.Publish(ctx, notification); err != nil {
		log.WithError(err).Warn("Failed to publish notification")
	}
}

// ListActiveEvents возвращает все активные события для полного обновления на клиенте
func (s *hazardService) ListActiveEvents(ctx context.Context) ([]*models.HazardEvent, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service": "hazard",
		"method":  "ListActiveEvents",
	})

	events, err := s.repo.ListActiveEvents(ctx)
	if err != nil {
		log.WithError(err).Error("Failed to list active events from repository")
		return nil, fmt.Errorf("service: could not list events: %w", err)
	}

	log.WithField("count", len(events)).Debug("Active events listed")
	return events, nil
}

// GetEvent получает событие по ID, сначала из кэша
func (s *hazardService) GetEvent(ctx context.Context, id uuid.UUID) (*models.HazardEvent, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":  "hazard",
		"method":   "GetEvent",
		"event_id": id,
	})

	cached, err := s.repo.GetEventFromCache(ctx, id)
	if err != nil {
		log.WithError(err).Warn("Failed to read event cache")
	}
	if cached != nil {
		return cached, nil
	}

	event, err := s.repo.GetEventByID(ctx, id)
	if err != nil {
		log.WithError(err).Warn("Failed to get event from repository")
		return nil, fmt.Errorf("service: could not get event: %w", err)
	}

	if err := s.repo.SetEventCache(ctx, event); err != nil {
		log.WithError(err).Warn("Failed to cache event")
	}
	return event, nil
}

// ReconfirmEvent продлевает время жизни события по сигналу находящегося рядом пользователя
func (s *hazardService) ReconfirmEvent(ctx context.Context, id uuid.UUID, distanceMeters *float64) error {
	log := s.logger.WithFields(logrus.Fields{
		"service":  "hazard",
		"method":   "ReconfirmEvent",
		"event_id": id,
	})

	now := s.now()
	event, err := s.repo.ExtendEvent(ctx, id, now.Add(s.cfg.EventTTL))
	if err != nil {
		log.WithError(err).Warn("Failed to extend event")
		return fmt.Errorf("service: could not reconfirm event: %w", err)
	}

	if err := s.repo.SaveReconfirmation(ctx, &models.Reconfirmation{
		EventID:        id,
		DistanceMeters: distanceMeters,
		ReceivedAt:     now,
	}); err != nil {
		log.WithError(err).Warn("Failed to save reconfirmation")
	}
	if err := s.repo.InvalidateEventCache(ctx, id); err != nil {
		log.WithError(err).Warn("Failed to invalidate event cache")
	}

	s.metrics.Reconfirmations.Inc()
	s.publish(ctx, models.Notification{Type: models.NotificationEventUpdated, Event: *event}, log)
	log.Info("Event reconfirmed")
	return nil
}

// ExpireEvents переводит просроченные события в EXPIRED и сообщает об этом подписчикам
func (s *hazardService) ExpireEvents(ctx context.Context) (int, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service": "hazard",
		"method":  "ExpireEvents",
	})

	expired, err := s.repo.ExpireEvents(ctx, s.now())
	if err != nil {
		log.WithError(err).Error("Failed to expire events in repository")
		return 0, fmt.Errorf("service: could not expire events: %w", err)
	}

	for _, event := range expired {
		entry := log.WithField("event_id", event.ID)
		if err := s.repo.InvalidateEventCache(ctx, event.ID); err != nil {
			entry.WithError(err).Warn("Failed to invalidate event cache")
		}
		s.publish(ctx, models.Notification{Type: models.NotificationEventUpdated, Event: *event}, entry)
	}

	if len(expired) > 0 {
		s.metrics.EventsExpired.Add(float64(len(expired)))
		log.WithField("count", len(expired)).Info("Expired events")
	}
	return len(expired), nil
}

// GetStats возвращает статистику за настроенное окно времени
func (s *hazardService) GetStats(ctx context.Context) (*models.Stats, error) {
	stats, err := s.repo.GetStats(ctx, s.cfg.StatsTimeWindowMinutes)
	if err != nil {
		s.logger.WithError(err).WithField("method", "GetStats").Error("Failed to get stats from repository")
		return nil, fmt.Errorf("service: could not get stats: %w", err)
	}
	return stats, nil
}
