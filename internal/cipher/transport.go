package cipher

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/sirupsen/logrus"
)

// Transport - клиентский перехватчик: шифрует тела изменяющих запросов
// и расшифровывает успешные ответы
type Transport struct {
	Base   http.RoundTripper
	Cipher *Cipher
	Logger *logrus.Logger
}

// NewTransport оборачивает base (или http.DefaultTransport)
func NewTransport(base http.RoundTripper, c *Cipher, log *logrus.Logger) *Transport {
	if base == nil {
		base = http.DefaultTransport
	}
	return &Transport{Base: base, Cipher: c, Logger: log}
}

// RoundTrip реализует http.RoundTripper
func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	if IsExemptPath(req.URL.Path) {
		return t.Base.RoundTrip(req)
	}

	if IsStateChanging(req.Method) && req.Body != nil && req.Body != http.NoBody {
		plain, err := io.ReadAll(req.Body)
		_ = req.Body.Close()
		if err != nil {
			return nil, fmt.Errorf("cipher: could not read request body: %w", err)
		}
		encrypted, err := t.Cipher.Encrypt(plain)
		if err != nil {
			return nil, err
		}

		req = req.Clone(req.Context())
		req.Body = io.NopCloser(bytes.NewReader(encrypted))
		req.GetBody = func() (io.ReadCloser, error) {
			return io.NopCloser(bytes.NewReader(encrypted)), nil
		}
		req.ContentLength = int64(len(encrypted))
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := t.Base.RoundTrip(req)
	if err != nil || !isSuccess(resp.StatusCode) || resp.Body == nil {
		return resp, err
	}

	encrypted, err := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if err != nil {
		return nil, fmt.Errorf("cipher: could not read response body: %w", err)
	}

	body, err := t.Cipher.Decrypt(encrypted)
	if err != nil {
		t.logger().WithError(err).WithField("path", req.URL.Path).Warn("Failed to decrypt response body, passing it through")
	}
	resp.Body = io.NopCloser(bytes.NewReader(body))
	resp.ContentLength = int64(len(body))
	resp.Header.Set("Content-Length", strconv.Itoa(len(body)))
	return resp, nil
}

func (t *Transport) logger() *logrus.Logger {
	if t.Logger == nil {
		return logrus.StandardLogger()
	}
	return t.Logger
}
