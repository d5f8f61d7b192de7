package cipher

import (
	"net/http"
	"strings"
)

// IsExemptPath сообщает, что путь не шифруется: push-канал, health, диагностика и корень
func IsExemptPath(path string) bool {
	p := strings.ToLower(path)
	return p == "/" || p == "" ||
		strings.Contains(p, "/hubs") ||
		strings.Contains(p, "/health") ||
		strings.Contains(p, "/swagger") ||
		strings.Contains(p, "/metrics")
}

// IsStateChanging сообщает, шифруется ли тело запроса с этим методом
func IsStateChanging(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch:
		return true
	}
	return false
}

func isSuccess(status int) bool {
	return status >= 200 && status < 300
}
