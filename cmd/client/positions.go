package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/shenikar/road_hazard_system/internal/models"
)

// replayPositions читает позиции из JSON-lines файла и отдает их с паузой interval
func replayPositions(ctx context.Context, path string, interval time.Duration, out chan<- models.Position, log *logrus.Logger) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("could not open positions file: %w", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	line := 0
	for scanner.Scan() {
		line++
		if len(scanner.Bytes()) == 0 {
			continue
		}

		var pos models.Position
		if err := json.Unmarshal(scanner.Bytes(), &pos); err != nil {
			log.WithError(err).WithField("line", line).Warn("Skipping invalid position")
			continue
		}
		if pos.Timestamp.IsZero() {
			pos.Timestamp = time.Now().UTC()
		}

		select {
		case out <- pos:
		case <-ctx.Done():
			return nil
		}

		select {
		case <-time.After(interval):
		case <-ctx.Done():
			return nil
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("could not read positions file: %w", err)
	}

	log.WithField("count", line).Info("Position replay finished")
	<-ctx.Done()
	return nil
}
