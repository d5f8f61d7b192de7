package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/shenikar/road_hazard_system/internal/models"
	"github.com/shenikar/road_hazard_system/internal/service"
)

const (
	eventCacheTTL = 5 * time.Minute

	eventColumns = `
		id,
		event_type,
		ST_Y(location::geometry) AS latitude,
		ST_X(location::geometry) AS longitude,
		status,
		confirmations_count,
		COALESCE(address, '') AS address,
		valid_until,
		updated_at`
)

type HazardRepository struct {
	db          *pgxpool.Pool
	redisClient *redis.Client
}

func NewHazardRepository(db *pgxpool.Pool, redisClient *redis.Client) service.HazardRepository {
	return &HazardRepository{
		db:          db,
		redisClient: redisClient,
	}
}

func scanEvent(row pgx.Row) (*models.HazardEvent, error) {
	event := &models.HazardEvent{}
	err := row.Scan(
		&event.ID,
		&event.EventType,
		&event.Latitude,
		&event.Longitude,
		&event.Status,
		&event.ConfirmationsCount,
		&event.Address,
		&event.ValidUntil,
		&event.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return event, nil
}

func collectEvents(rows pgx.Rows) ([]*models.HazardEvent, error) {
	defer rows.Close()

	events := make([]*models.HazardEvent, 0)
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan event row: %w", err)
		}
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error list iteration: %w", err)
	}
	return events, nil
}

// CreateReport сохраняет исходный отчет пользователя
func (r *HazardRepository) CreateReport(ctx context.Context, report *models.Report) error {
	query := `
		INSERT INTO reports (raw_text, event_type, location, heading, speed, reported_at)
		VALUES ($1, $2, ST_SetSRID(ST_MakePoint($3, $4), 4326), $5, $6, $7) RETURNING id;
	`
	err := r.db.QueryRow(ctx, query,
		report.RawText,
		report.EventType,
		report.Longitude,
		report.Latitude,
		report.Heading,
		report.Speed,
		report.Timestamp,
	).Scan(&report.ID)
	if err != nil {
		return fmt.Errorf("failed to create report: %w", err)
	}
	return nil
}

// AggregateReport присоединяет отчет к ближайшему активному событию того же типа
// в радиусе кластеризации или создает новое событие
func (r *HazardRepository) AggregateReport(ctx context.Context, report *models.Report, clusterRadiusMeters int, ttl time.Duration) (*models.AggregationResult, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin aggregation: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	findQuery := `
		SELECT id
		FROM events
		WHERE
			status = 'ACTIVE'
			AND event_type = $1
			AND ST_DWithin(location, ST_SetSRID(ST_MakePoint($2, $3), 4326)::geography, $4)
		ORDER BY ST_Distance(location, ST_SetSRID(ST_MakePoint($2, $3), 4326)::geography)
		LIMIT 1
		FOR UPDATE;
	`
	var existingID uuid.UUID
	err = tx.QueryRow(ctx, findQuery, report.EventType, report.Longitude, report.Latitude, float64(clusterRadiusMeters)).Scan(&existingID)

	result := &models.AggregationResult{}
	var event *models.HazardEvent
	switch {
	case err == nil:
		updateQuery := `
			UPDATE events SET
				confirmations_count = confirmations_count + 1,
				valid_until = NOW() + make_interval(secs => $2),
				updated_at = NOW()
			WHERE id = $1
			RETURNING` + eventColumns + `;`
		event, err = scanEvent(tx.QueryRow(ctx, updateQuery, existingID, ttl.Seconds()))
		if err != nil {
			return nil, fmt.Errorf("failed to confirm event: %w", err)
		}
		result.Action = models.ActionUpdated
	case errors.Is(err, pgx.ErrNoRows):
		insertQuery := `
			INSERT INTO events (event_type, location, valid_until)
			VALUES ($1, ST_SetSRID(ST_MakePoint($2, $3), 4326), NOW() + make_interval(secs => $4))
			RETURNING` + eventColumns + `;`
		event, err = scanEvent(tx.QueryRow(ctx, insertQuery, report.EventType, report.Longitude, report.Latitude, ttl.Seconds()))
		if err != nil {
			return nil, fmt.Errorf("failed to create event: %w", err)
		}
		result.Action = models.ActionCreated
	default:
		return nil, fmt.Errorf("failed to find nearby event: %w", err)
	}

	if _, err := tx.Exec(ctx, `UPDATE reports SET event_id = $1 WHERE id = $2;`, event.ID, report.ID); err != nil {
		return nil, fmt.Errorf("failed to link report to event: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit aggregation: %w", err)
	}

	result.Event = *event
	return result, nil
}

// SetEventAddress сохраняет адрес, полученный геокодером
func (r *HazardRepository) SetEventAddress(ctx context.Context, id uuid.UUID, address string) error {
	cmdTag, err := r.db.Exec(ctx, `UPDATE events SET address = $1 WHERE id = $2;`, address, id)
	if err != nil {
		return fmt.Errorf("failed to set event address: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("event with id %s: %w", id, service.ErrEventNotFound)
	}
	return nil
}

// GetEventByID возвращает событие по его UUID в любом статусе
func (r *HazardRepository) GetEventByID(ctx context.Context, id uuid.UUID) (*models.HazardEvent, error) {
	query := `SELECT` + eventColumns + ` FROM events WHERE id = $1;`
	event, err := scanEvent(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("event with id %s: %w", id, service.ErrEventNotFound)
		}
		return nil, fmt.Errorf("failed to get event by id: %w", err)
	}
	return event, nil
}

// ListActiveEvents возвращает все активные события, новые первыми
func (r *HazardRepository) ListActiveEvents(ctx context.Context) ([]*models.HazardEvent, error) {
	query := `SELECT` + eventColumns + ` FROM events WHERE status = 'ACTIVE' ORDER BY updated_at DESC;`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list active events: %w", err)
	}
	return collectEvents(rows)
}

// ExtendEvent продлевает срок жизни активного события
func (r *HazardRepository) ExtendEvent(ctx context.Context, id uuid.UUID, validUntil time.Time) (*models.HazardEvent, error) {
	query := `
		UPDATE events SET
			valid_until = GREATEST(COALESCE(valid_until, $2), $2),
			updated_at = NOW()
		WHERE id = $1 AND status = 'ACTIVE'
		RETURNING` + eventColumns + `;`
	event, err := scanEvent(r.db.QueryRow(ctx, query, id, validUntil))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("active event with id %s: %w", id, service.ErrEventNotFound)
		}
		return nil, fmt.Errorf("failed to extend event: %w", err)
	}
	return event, nil
}

// SaveReconfirmation сохраняет запись о повторном подтверждении события
func (r *HazardRepository) SaveReconfirmation(ctx context.Context, reconfirmation *models.Reconfirmation) error {
	query := `
		INSERT INTO reconfirmations (event_id, distance_meters, received_at)
		VALUES ($1, $2, $3) RETURNING id;
	`
	err := r.db.QueryRow(ctx, query,
		reconfirmation.EventID,
		reconfirmation.DistanceMeters,
		reconfirmation.ReceivedAt,
	).Scan(&reconfirmation.ID)
	if err != nil {
		return fmt.Errorf("failed to save reconfirmation: %w", err)
	}
	return nil
}

// ExpireEvents переводит в EXPIRED активные события с истекшим valid_until
func (r *HazardRepository) ExpireEvents(ctx context.Context, now time.Time) ([]*models.HazardEvent, error) {
	query := `
		UPDATE events SET
			status = 'EXPIRED',
			updated_at = NOW()
		WHERE status = 'ACTIVE' AND valid_until IS NOT NULL AND valid_until < $1
		RETURNING` + eventColumns + `;`
	rows, err := r.db.Query(ctx, query, now)
	if err != nil {
		return nil, fmt.Errorf("failed to expire events: %w", err)
	}
	return collectEvents(rows)
}

// GetStats возвращает число активных событий и подтверждений за последние minutes минут
func (r *HazardRepository) GetStats(ctx context.Context, minutes int) (*models.Stats, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM events WHERE status = 'ACTIVE'),
			(SELECT COUNT(*) FROM reconfirmations WHERE received_at >= NOW() - ($1 * INTERVAL '1 minute'));
	`
	stats := &models.Stats{}
	if err := r.db.QueryRow(ctx, query, minutes).Scan(&stats.ActiveEvents, &stats.Reconfirmations); err != nil {
		return nil, fmt.Errorf("failed to get stats: %w", err)
	}
	return stats, nil
}

func eventCacheKey(id uuid.UUID) string {
	return fmt.Sprintf("event:%s", id.String())
}

// GetEventFromCache пытается получить событие из Redis
func (r *HazardRepository) GetEventFromCache(ctx context.Context, id uuid.UUID) (*models.HazardEvent, error) {
	val, err := r.redisClient.Get(ctx, eventCacheKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get event from cache: %w", err)
	}

	event := &models.HazardEvent{}
	if err := json.Unmarshal(val, event); err != nil {
		return nil, fmt.Errorf("failed to unmarshal event from cache: %w", err)
	}
	return event, nil
}

// SetEventCache сохраняет событие в Redis
func (r *HazardRepository) SetEventCache(ctx context.Context, event *models.HazardEvent) error {
	val, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event for cache: %w", err)
	}
	if err := r.redisClient.Set(ctx, eventCacheKey(event.ID), val, eventCacheTTL).Err(); err != nil {
		return fmt.Errorf("failed to set event in cache: %w", err)
	}
	return nil
}

// InvalidateEventCache удаляет событие из Redis кэша
func (r *HazardRepository) InvalidateEventCache(ctx context.Context, id uuid.UUID) error {
	if err := r.redisClient.Del(ctx, eventCacheKey(id)).Err(); err != nil {
		return fmt.Errorf("failed to invalidate event cache: %w", err)
	}
	return nil
}
