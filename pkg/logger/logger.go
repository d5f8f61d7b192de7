package logger

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// New - JSON-логгер сервера в stdout
func New(logLevel string) *logrus.Logger {
	return build(logLevel, &logrus.JSONFormatter{}, os.Stdout)
}

// NewConsole - текстовый логгер клиентского агента. Консоль занята диалогом
// с водителем, поэтому логи обычно уходят в stderr
func NewConsole(logLevel string, out io.Writer) *logrus.Logger {
	return build(logLevel, &logrus.TextFormatter{FullTimestamp: true, DisableColors: true}, out)
}

// ParseLevel разбирает уровень без учета регистра и пробелов; неизвестный уровень - info
func ParseLevel(logLevel string) logrus.Level {
	level, err := logrus.ParseLevel(strings.TrimSpace(logLevel))
	if err != nil {
		return logrus.InfoLevel
	}
	return level
}

func build(logLevel string, formatter logrus.Formatter, out io.Writer) *logrus.Logger {
	log := logrus.New()
	log.SetFormatter(formatter)
	log.SetOutput(out)
	log.SetLevel(ParseLevel(logLevel))
	return log
}
