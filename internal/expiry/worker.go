package expiry

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
)

// Expirer - часть сервиса событий, нужная воркеру
type Expirer interface {
	ExpireEvents(ctx context.Context) (int, error)
}

// Worker периодически переводит события с истекшим сроком жизни в EXPIRED
type Worker struct {
	expirer  Expirer
	interval time.Duration
	logger   *logrus.Logger
}

func NewWorker(expirer Expirer, interval time.Duration, logger *logrus.Logger) *Worker {
	if interval <= 0 {
		interval = time.Minute
	}
	return &Worker{
		expirer:  expirer,
		interval: interval,
		logger:   logger,
	}
}

// Run блокируется до отмены контекста
func (w *Worker) Run(ctx context.Context) error {
	w.logger.WithField("interval", w.interval).Info("Expiry worker started")

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("Expiry worker stopped")
			return nil
		case <-ticker.C:
			w.sweep(ctx)
		}
	}
}

func (w *Worker) sweep(ctx context.Context) {
	count, err := w.expirer.ExpireEvents(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		// ошибка одного прохода не останавливает воркер
		w.logger.WithError(err).Error("Failed to expire events")
		return
	}
	if count > 0 {
		w.logger.WithField("count", count).Debug("Expiry sweep finished")
	}
}
