package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/shenikar/road_hazard_system/internal/cipher"
	"github.com/shenikar/road_hazard_system/internal/config"
	"github.com/shenikar/road_hazard_system/internal/models"
	"github.com/sirupsen/logrus"
)

const alertsHubPath = "/hubs/alerts"

// StatusError - ответ сервера не из диапазона 2xx
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("api: unexpected status %d: %s", e.StatusCode, e.Body)
}

// Client - REST-клиент сервера событий
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *logrus.Logger
}

type submitReportResponse struct {
	Message  string    `json:"message"`
	ReportID uuid.UUID `json:"reportId"`
}

type reconfirmRequest struct {
	DistanceMeters *float64 `json:"distanceMeters,omitempty"`
}

// NewClient создает клиент; при включенном шифровании тела проходят через cipher.Transport
func NewClient(cfg *config.ClientConfig, logger *logrus.Logger) *Client {
	var transport http.RoundTripper = http.DefaultTransport
	if cfg.EnableEncryption {
		transport = cipher.NewTransport(http.DefaultTransport, cipher.New(cfg.EncryptionKey), logger)
	}

	return &Client{
		baseURL: strings.TrimRight(cfg.ServerURL, "/"),
		apiKey:  cfg.APIKey,
		httpClient: &http.Client{
			Timeout:   cfg.RequestTimeout,
			Transport: transport,
		},
		logger: logger,
	}
}

// PushURL возвращает websocket-адрес push-канала
func (c *Client) PushURL() string {
	switch {
	case strings.HasPrefix(c.baseURL, "https://"):
		return "wss://" + strings.TrimPrefix(c.baseURL, "https://") + alertsHubPath
	case strings.HasPrefix(c.baseURL, "http://"):
		return "ws://" + strings.TrimPrefix(c.baseURL, "http://") + alertsHubPath
	}
	return c.baseURL + alertsHubPath
}

// APIKey нужен push-подписчику для заголовка рукопожатия
func (c *Client) APIKey() string {
	return c.apiKey
}

// SubmitReport отправляет отчет и возвращает id подтверждения.
// Результат агрегации приходит по push-каналу
func (c *Client) SubmitReport(ctx context.Context, report models.Report) (uuid.UUID, error) {
	var resp submitReportResponse
	if err := c.do(ctx, http.MethodPost, "/api/v1/reports", report, &resp); err != nil {
		return uuid.Nil, fmt.Errorf("api: could not submit report: %w", err)
	}
	return resp.ReportID, nil
}

// ListEvents загружает все активные события для полного обновления кэша
func (c *Client) ListEvents(ctx context.Context) ([]*models.HazardEvent, error) {
	var events []*models.HazardEvent
	if err := c.do(ctx, http.MethodGet, "/api/v1/events", nil, &events); err != nil {
		return nil, fmt.Errorf("api: could not list events: %w", err)
	}
	return events, nil
}

// Reconfirm сообщает серверу, что событие все еще актуально
func (c *Client) Reconfirm(ctx context.Context, id uuid.UUID, distanceMeters float64) error {
	body := reconfirmRequest{DistanceMeters: &distanceMeters}
	if err := c.do(ctx, http.MethodPost, "/api/v1/events/"+id.String()+"/reconfirm", body, nil); err != nil {
		return fmt.Errorf("api: could not reconfirm event %s: %w", id, err)
	}
	return nil
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("X-API-Key", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &StatusError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(msg))}
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
