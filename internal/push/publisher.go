package push

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/shenikar/road_hazard_system/internal/models"
)

const (
	notificationsChannel = "hazard_events"
)

//go:generate mockgen -source=publisher.go -destination=mocks/mock_publisher.go -package=mocks

// Publisher - интерфейс для публикации уведомлений push-канала
type Publisher interface {
	Publish(ctx context.Context, notification models.Notification) error
}

// RedisPublisher - реализация Publisher через Redis pub/sub, чтобы уведомление
// получили подписчики всех экземпляров сервера
type RedisPublisher struct {
	redisClient *redis.Client
}

// NewRedisPublisher создает новый RedisPublisher
func NewRedisPublisher(client *redis.Client) *RedisPublisher {
	return &RedisPublisher{
		redisClient: client,
	}
}

// Publish публикует уведомление в канал Redis
func (p *RedisPublisher) Publish(ctx context.Context, notification models.Notification) error {
	payload, err := json.Marshal(notification)
	if err != nil {
		return fmt.Errorf("failed to marshal notification: %w", err)
	}

	if err := p.redisClient.Publish(ctx, notificationsChannel, payload).Err(); err != nil {
		return fmt.Errorf("failed to publish notification to Redis: %w", err)
	}
	return nil
}

// LocalPublisher рассылает уведомления напрямую в локальный хаб (один экземпляр сервера)
type LocalPublisher struct {
	hub Broadcaster
}

// NewLocalPublisher создает LocalPublisher
func NewLocalPublisher(hub Broadcaster) *LocalPublisher {
	return &LocalPublisher{hub: hub}
}

// Publish рассылает уведомление подключенным клиентам
func (p *LocalPublisher) Publish(_ context.Context, notification models.Notification) error {
	return p.hub.Broadcast(notification)
}
