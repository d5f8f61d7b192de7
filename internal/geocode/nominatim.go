package geocode

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

const userAgent = "RoadHazardSystem/1.0"

// ErrRateLimited - лимит запросов исчерпан, адрес не запрашивался
var ErrRateLimited = errors.New("geocode: rate limit exceeded")

// NominatimClient - обратный геокодер OpenStreetMap Nominatim.
// Публичный Nominatim допускает не более 1 запроса в секунду
type NominatimClient struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *logrus.Logger
}

type nominatimResponse struct {
	DisplayName string `json:"display_name"`
	Error       string `json:"error"`
}

func NewNominatimClient(baseURL string, timeout time.Duration, rps float64, logger *logrus.Logger) *NominatimClient {
	if rps <= 0 {
		rps = 1
	}
	return &NominatimClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		limiter:    rate.NewLimiter(rate.Limit(rps), 1),
		logger:     logger,
	}
}

// ReverseGeocode возвращает адрес точки; пустая строка, если адрес неизвестен.
// Сверх лимита запрос не ждет токен, а сразу возвращает ErrRateLimited
func (c *NominatimClient) ReverseGeocode(ctx context.Context, lat, lon float64) (string, error) {
	if !c.limiter.Allow() {
		return "", ErrRateLimited
	}

	query := url.Values{}
	query.Set("format", "json")
	query.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	query.Set("lon", strconv.FormatFloat(lon, 'f', -1, 64))
	query.Set("zoom", "18")
	query.Set("addressdetails", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/reverse?"+query.Encode(), nil)
	if err != nil {
		return "", fmt.Errorf("geocode: failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("geocode: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("geocode: unexpected status code %d", resp.StatusCode)
	}

	var body nominatimResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("geocode: failed to decode response: %w", err)
	}
	if body.Error != "" {
		c.logger.WithFields(logrus.Fields{"lat": lat, "lon": lon}).Debugf("Nominatim returned no address: %s", body.Error)
		return "", nil
	}

	return body.DisplayName, nil
}
