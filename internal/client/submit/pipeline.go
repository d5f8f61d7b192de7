// Package submit доставляет отчеты пользователя на сервер, а при любой ошибке
// сохраняет их в офлайн-очередь.
package submit

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shenikar/road_hazard_system/internal/models"
	"github.com/sirupsen/logrus"
)

//go:generate mockgen -source=pipeline.go -destination=mocks/mock_pipeline.go -package=mocks

// Outcome - итог отправки с точки зрения пользователя
type Outcome string

const (
	OutcomeSent   Outcome = "SENT"
	OutcomeQueued Outcome = "QUEUED"
)

// Result - результат Submit. ReportID заполнен только для OutcomeSent
type Result struct {
	Outcome  Outcome
	ReportID uuid.UUID
}

// Submitter - серверный API отчетов
type Submitter interface {
	SubmitReport(ctx context.Context, report models.Report) (uuid.UUID, error)
}

// Queue - офлайн-очередь отчетов
type Queue interface {
	Enqueue(report models.Report) error
}

type Pipeline struct {
	submitter Submitter
	queue     Queue
	timeout   time.Duration
	logger    *logrus.Logger
	now       func() time.Time
}

func NewPipeline(submitter Submitter, queue Queue, timeout time.Duration, logger *logrus.Logger) *Pipeline {
	return &Pipeline{
		submitter: submitter,
		queue:     queue,
		timeout:   timeout,
		logger:    logger,
		now:       time.Now,
	}
}

// Submit строит отчет по тексту и позиции и отправляет его. Сетевые и серверные
// ошибки не возвращаются: отчет уходит в очередь с OutcomeQueued.
// Ошибка возвращается только если отчет не удалось и сохранить
func (p *Pipeline) Submit(ctx context.Context, text string, pos models.Position) (Result, error) {
	report := models.Report{
		RawText:   text,
		Latitude:  pos.Latitude,
		Longitude: pos.Longitude,
		Heading:   pos.Heading,
		Speed:     pos.Speed,
		Timestamp: p.now().UTC(),
	}

	log := p.logger.WithFields(logrus.Fields{
		"service": "SubmitPipeline",
		"method":  "Submit",
	})

	id, err := p.Send(ctx, report)
	if err == nil {
		log.WithField("report_id", id).Info("Report submitted")
		return Result{Outcome: OutcomeSent, ReportID: id}, nil
	}

	log.WithError(err).Warn("Report submission failed, queueing offline")
	if qerr := p.queue.Enqueue(report); qerr != nil {
		return Result{}, fmt.Errorf("submit: could not queue report: %w", qerr)
	}
	return Result{Outcome: OutcomeQueued}, nil
}

// Send - одна попытка отправки с таймаутом запроса, без постановки в очередь
func (p *Pipeline) Send(ctx context.Context, report models.Report) (uuid.UUID, error) {
	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	id, err := p.submitter.SubmitReport(ctx, report)
	if err != nil {
		return uuid.Nil, fmt.Errorf("submit: could not send report: %w", err)
	}
	return id, nil
}

// Resend подходит как offline.SendFunc при сбросе очереди
func (p *Pipeline) Resend(ctx context.Context, report models.Report) error {
	_, err := p.Send(ctx, report)
	return err
}
