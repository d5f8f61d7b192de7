package push

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"
	"github.com/shenikar/road_hazard_system/internal/models"
	"github.com/sirupsen/logrus"
)

// Broadcaster рассылает уведомление локально подключенным подписчикам
type Broadcaster interface {
	Broadcast(notification models.Notification) error
}

// Relay - воркер, который читает уведомления из Redis и передает их в хаб
type Relay struct {
	redisClient *redis.Client
	hub         Broadcaster
	logger      *logrus.Logger
}

// NewRelay создает новый Relay
func NewRelay(redisClient *redis.Client, hub Broadcaster, logger *logrus.Logger) *Relay {
	return &Relay{
		redisClient: redisClient,
		hub:         hub,
		logger:      logger,
	}
}

// Start запускает горутину ретрансляции; остановка по отмене контекста
func (r *Relay) Start(ctx context.Context) {
	r.logger.Info("Starting push relay...")
	sub := r.redisClient.Subscribe(ctx, notificationsChannel)

	go func() {
		defer func() {
			if err := sub.Close(); err != nil {
				r.logger.WithError(err).Warn("Failed to close Redis subscription")
			}
		}()

		// Channel() сам переподключается при обрыве соединения с Redis
		messages := sub.Channel()
		for {
			select {
			case <-ctx.Done():
				r.logger.Info("Stopping push relay.")
				return
			case msg, ok := <-messages:
				if !ok {
					r.logger.Warn("Redis subscription channel closed")
					return
				}
				r.relay(msg.Payload)
			}
		}
	}()
}

func (r *Relay) relay(payload string) {
	var notification models.Notification
	if err := json.Unmarshal([]byte(payload), &notification); err != nil {
		r.logger.WithError(err).Error("Failed to unmarshal notification from Redis")
		return
	}

	log := r.logger.WithFields(logrus.Fields{
		"type":     notification.Type,
		"event_id": notification.Event.ID,
	})
	log.Debug("Relaying notification...")

	if err := r.hub.Broadcast(notification); err != nil {
		log.WithError(err).Warn("Failed to broadcast notification")
	}
}
