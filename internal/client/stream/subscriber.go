package stream

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	"github.com/shenikar/road_hazard_system/internal/models"
	"github.com/sirupsen/logrus"
)

const handshakeTimeout = 10 * time.Second

// State - состояние подключения к push-каналу
type State int32

const (
	StateDisconnected State = iota
	StateConnecting
	StateConnected
	StateReconnecting
)

func (s State) String() string {
	switch s {
	case StateDisconnected:
		return "DISCONNECTED"
	case StateConnecting:
		return "CONNECTING"
	case StateConnected:
		return "CONNECTED"
	case StateReconnecting:
		return "RECONNECTING"
	}
	return fmt.Sprintf("State(%d)", int32(s))
}

// Sink получает уведомления; вызовы идут из одной горутины Run
type Sink interface {
	OnNotification(notification models.Notification)
	OnConnected()
}

// Subscriber держит websocket-подписку на push-канал и переподключается при обрыве
type Subscriber struct {
	url     string
	header  http.Header
	dialer  *websocket.Dialer
	backoff time.Duration
	logger  *logrus.Logger
	state   atomic.Int32

	// OnStateChange, если задан, вызывается при каждой смене состояния
	OnStateChange func(State)
}

func NewSubscriber(url, apiKey string, backoff time.Duration, logger *logrus.Logger) *Subscriber {
	header := http.Header{}
	if apiKey != "" {
		header.Set("X-API-Key", apiKey)
	}
	if backoff <= 0 {
		backoff = 5 * time.Second
	}

	return &Subscriber{
		url:     url,
		header:  header,
		dialer:  &websocket.Dialer{HandshakeTimeout: handshakeTimeout, Proxy: http.ProxyFromEnvironment},
		backoff: backoff,
		logger:  logger,
	}
}

// State возвращает текущее состояние подключения
func (s *Subscriber) State() State {
	return State(s.state.Load())
}

func (s *Subscriber) setState(state State) {
	if State(s.state.Swap(int32(state))) == state {
		return
	}
	s.logger.WithField("state", state).Debug("Push channel state changed")
	if s.OnStateChange != nil {
		s.OnStateChange(state)
	}
}

// Run блокируется до отмены контекста. И неудачное подключение, и обрыв
// установленного соединения повторяются через фиксированную паузу backoff
func (s *Subscriber) Run(ctx context.Context, sink Sink) error {
	log := s.logger.WithFields(logrus.Fields{"component": "stream", "url": s.url})
	defer s.setState(StateDisconnected)

	s.setState(StateConnecting)
	for {
		conn, err := s.dial(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			log.WithError(err).Warnf("Push channel connect failed, retrying in %s", s.backoff)
			if s.State() != StateReconnecting {
				s.setState(StateDisconnected)
			}

			if !s.sleep(ctx) {
				return nil
			}

			if s.State() != StateReconnecting {
				s.setState(StateConnecting)
			}
			continue
		}

		s.setState(StateConnected)
		log.Info("Push channel connected")
		sink.OnConnected()

		err = s.readLoop(ctx, conn, sink, log)
		if ctx.Err() != nil {
			return nil
		}
		log.WithError(err).Warnf("Push channel dropped, reconnecting in %s", s.backoff)
		s.setState(StateReconnecting)
		if !s.sleep(ctx) {
			return nil
		}
	}
}

// sleep ждет backoff; false, если контекст отменен раньше
func (s *Subscriber) sleep(ctx context.Context) bool {
	timer := time.NewTimer(s.backoff)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}

func (s *Subscriber) dial(ctx context.Context) (*websocket.Conn, error) {
	conn, resp, err := s.dialer.DialContext(ctx, s.url, s.header)
	if resp != nil && resp.Body != nil {
		_ = resp.Body.Close()
	}
	if err != nil {
		if resp != nil {
			return nil, fmt.Errorf("stream: handshake failed with status %d: %w", resp.StatusCode, err)
		}
		return nil, fmt.Errorf("stream: dial failed: %w", err)
	}
	return conn, nil
}

func (s *Subscriber) readLoop(ctx context.Context, conn *websocket.Conn, sink Sink, log *logrus.Entry) error {
	done := make(chan struct{})
	defer close(done)
	defer conn.Close()

	// ReadMessage не принимает контекст: закрываем соединение при отмене
	go func() {
		select {
		case <-ctx.Done():
			_ = conn.Close()
		case <-done:
		}
	}()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return err
		}

		var notification models.Notification
		if err := json.Unmarshal(data, &notification); err != nil {
			log.WithError(err).Warn("Failed to decode push notification")
			continue
		}

		switch notification.Type {
		case models.NotificationEventCreated, models.NotificationEventUpdated:
			sink.OnNotification(notification)
		default:
			log.WithField("type", notification.Type).Debug("Ignoring unknown push notification")
		}
	}
}
