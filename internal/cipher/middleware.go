package cipher

import (
	"bytes"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// bodyCaptureWriter буферизует тело ответа, чтобы зашифровать его после обработчика
type bodyCaptureWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w *bodyCaptureWriter) Write(b []byte) (int, error) {
	return w.body.Write(b)
}

func (w *bodyCaptureWriter) WriteString(s string) (int, error) {
	return w.body.WriteString(s)
}

// Middleware расшифровывает тела запросов и шифрует успешные ответы.
// Исключенные пути, OPTIONS и выключенное шифрование пропускаются как есть.
func Middleware(c *Cipher, enabled bool, log *logrus.Logger) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if !enabled || ctx.Request.Method == http.MethodOptions || IsExemptPath(ctx.Request.URL.Path) {
			ctx.Next()
			return
		}

		entry := log.WithFields(logrus.Fields{
			"middleware": "cipher",
			"path":       ctx.Request.URL.Path,
			"method":     ctx.Request.Method,
		})

		if IsStateChanging(ctx.Request.Method) && ctx.Request.Body != nil {
			encrypted, err := io.ReadAll(ctx.Request.Body)
			_ = ctx.Request.Body.Close()
			if err != nil {
				entry.WithError(err).Warn("Failed to read request body")
				ctx.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
				return
			}

			body := encrypted
			if len(bytes.TrimSpace(encrypted)) > 0 {
				body, err = c.Decrypt(encrypted)
				if err != nil {
					entry.WithError(err).Warn("Failed to decrypt request body, passing it through")
				}
			}
			ctx.Request.Body = io.NopCloser(bytes.NewReader(body))
			ctx.Request.ContentLength = int64(len(body))
			ctx.Request.Header.Set("Content-Length", strconv.Itoa(len(body)))
		}

		original := ctx.Writer
		capture := &bodyCaptureWriter{ResponseWriter: original, body: &bytes.Buffer{}}
		ctx.Writer = capture
		ctx.Next()
		ctx.Writer = original

		if capture.body.Len() == 0 {
			return
		}

		payload := capture.body.Bytes()
		if isSuccess(original.Status()) {
			encrypted, err := c.Encrypt(payload)
			if err != nil {
				entry.WithError(err).Error("Failed to encrypt response body")
				original.Header().Del("Content-Length")
				original.WriteHeader(http.StatusInternalServerError)
				_, _ = original.Write([]byte(`{"error":"internal server error"}`))
				return
			}
			payload = encrypted
			original.Header().Set("Content-Type", "application/json; charset=utf-8")
		}
		original.Header().Set("Content-Length", strconv.Itoa(len(payload)))
		if _, err := original.Write(payload); err != nil {
			entry.WithError(err).Warn("Failed to write response body")
		}
	}
}
