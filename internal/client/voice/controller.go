// Package voice реализует голосовое управление: hands-free цикл ожидания
// фразы активации и push-to-talk. Одновременно активно не больше одного прослушивания.
package voice

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/shenikar/road_hazard_system/internal/client/submit"
	"github.com/shenikar/road_hazard_system/internal/models"
	"github.com/sirupsen/logrus"
)

//go:generate mockgen -source=controller.go -destination=mocks/mock_controller.go -package=mocks

const (
	DefaultCommandTimeout = 12 * time.Second
	DefaultWakeTimeout    = 3 * time.Second
	DefaultWakePause      = 500 * time.Millisecond
)

var (
	// ErrNoSpeech - распознаватель ничего не услышал до таймаута
	ErrNoSpeech = errors.New("voice: no speech recognized")
	// ErrBusy - команда уже обрабатывается
	ErrBusy = errors.New("voice: command already in progress")
)

const (
	phraseRetry       = "Didn't catch that."
	phraseNoLocation  = "Location not found. Cannot submit report."
	phraseSubmitError = "Failed to submit report."
)

// State - состояние голосовой сессии
type State int

const (
	StateIdle State = iota
	StateWakeListening
	StateActiveListening
	StateProcessing
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "IDLE"
	case StateWakeListening:
		return "WAKE_LISTENING"
	case StateActiveListening:
		return "ACTIVE_LISTENING"
	case StateProcessing:
		return "PROCESSING"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Recognizer - распознавание речи. Прослушивание ограничено дедлайном ctx;
// тишина до дедлайна возвращается как ErrNoSpeech
type Recognizer interface {
	Listen(ctx context.Context) (string, error)
}

// Speaker - синтез речи
type Speaker interface {
	Speak(ctx context.Context, text string) error
}

// ReportSubmitter - конвейер отправки отчетов
type ReportSubmitter interface {
	Submit(ctx context.Context, text string, pos models.Position) (submit.Result, error)
}

// PositionSource - последняя известная позиция пользователя
type PositionSource interface {
	Position() (models.Position, bool)
}

// wakeLoop - один запуск hands-free цикла. abort закрывается один раз,
// done закрывается, когда цикл отдал распознаватель
type wakeLoop struct {
	abort chan struct{}
	done  chan struct{}
	once  sync.Once
}

func newWakeLoop() *wakeLoop {
	return &wakeLoop{abort: make(chan struct{}), done: make(chan struct{})}
}

func (w *wakeLoop) stop() {
	w.once.Do(func() { close(w.abort) })
}

func (w *wakeLoop) aborted() bool {
	select {
	case <-w.abort:
		return true
	default:
		return false
	}
}

type Controller struct {
	recognizer  Recognizer
	speaker     Speaker
	submitter   ReportSubmitter
	positions   PositionSource
	wakePhrases []string
	logger      *logrus.Logger

	commandTimeout time.Duration
	wakeTimeout    time.Duration
	wakePause      time.Duration

	// OnStateChange вызывается при каждой смене состояния
	OnStateChange func(State)

	// listenMu - эксклюзивный доступ к распознавателю
	listenMu sync.Mutex
	busy     atomic.Bool

	mu        sync.Mutex
	state     State
	handsFree bool
	wake      *wakeLoop
	loops     sync.WaitGroup
}

func NewController(recognizer Recognizer, speaker Speaker, submitter ReportSubmitter, positions PositionSource, wakePhrases []string, logger *logrus.Logger) *Controller {
	phrases := make([]string, 0, len(wakePhrases))
	for _, phrase := range wakePhrases {
		if phrase = strings.ToLower(strings.TrimSpace(phrase)); phrase != "" {
			phrases = append(phrases, phrase)
		}
	}

	return &Controller{
		recognizer:     recognizer,
		speaker:        speaker,
		submitter:      submitter,
		positions:      positions,
		wakePhrases:    phrases,
		logger:         logger,
		commandTimeout: DefaultCommandTimeout,
		wakeTimeout:    DefaultWakeTimeout,
		wakePause:      DefaultWakePause,
	}
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *Controller) HandsFree() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.handsFree
}

func (c *Controller) setState(state State) {
	c.mu.Lock()
	changed := c.state != state
	c.state = state
	c.mu.Unlock()

	if changed && c.OnStateChange != nil {
		c.OnStateChange(state)
	}
}

// EnableHandsFree запускает цикл ожидания фразы активации
func (c *Controller) EnableHandsFree(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.handsFree {
		return
	}
	c.handsFree = true
	c.startWakeLoopLocked(ctx)
	c.logger.Info("Hands-free mode enabled")
}

// DisableHandsFree выставляет флаг остановки. Текущее прослушивание
// доводится до конца, новых попыток цикл не начинает
func (c *Controller) DisableHandsFree() {
	c.mu.Lock()
	c.handsFree = false
	w := c.wake
	c.wake = nil
	c.mu.Unlock()

	if w != nil {
		w.stop()
		c.logger.Info("Hands-free mode disabled")
	}
}

// Close останавливает hands-free цикл и ждет, пока он отдаст распознаватель
func (c *Controller) Close() {
	c.DisableHandsFree()
	c.loops.Wait()
}

// PushToTalk останавливает hands-free цикл, дожидается его завершения и
// выполняет одну команду. Если hands-free все еще включен, цикл возобновляется
func (c *Controller) PushToTalk(ctx context.Context) error {
	if !c.busy.CompareAndSwap(false, true) {
		return ErrBusy
	}
	defer c.busy.Store(false)

	c.mu.Lock()
	w := c.wake
	c.wake = nil
	c.mu.Unlock()

	if w != nil {
		w.stop()
		select {
		case <-w.done:
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	c.runCommand(ctx)

	c.mu.Lock()
	if c.handsFree && c.wake == nil && ctx.Err() == nil {
		c.startWakeLoopLocked(ctx)
	}
	c.mu.Unlock()
	return nil
}

func (c *Controller) startWakeLoopLocked(ctx context.Context) {
	w := newWakeLoop()
	c.wake = w
	c.loops.Add(1)
	go c.runWakeLoop(ctx, w)
}

func (c *Controller) runWakeLoop(ctx context.Context, w *wakeLoop) {
	defer c.loops.Done()
	defer close(w.done)
	defer c.finishWakeLoop(w)

	for {
		if w.aborted() || ctx.Err() != nil {
			return
		}

		c.setState(StateWakeListening)
		text, err := c.listen(ctx, c.wakeTimeout)

		if w.aborted() || ctx.Err() != nil {
			return
		}

		if err == nil && c.isWakePhrase(text) {
			c.logger.WithField("phrase", text).Debug("Wake phrase recognized")
			c.runCommand(ctx)
			continue
		}
		if err != nil && !errors.Is(err, ErrNoSpeech) && !errors.Is(err, context.DeadlineExceeded) {
			c.logger.WithError(err).Debug("Wake listen failed")
		}

		select {
		case <-time.After(c.wakePause):
		case <-w.abort:
			return
		case <-ctx.Done():
			return
		}
	}
}

// finishWakeLoop переводит сессию в IDLE, только если w не был заменен новым циклом
func (c *Controller) finishWakeLoop(w *wakeLoop) {
	c.mu.Lock()
	if c.wake != nil && c.wake != w {
		c.mu.Unlock()
		return
	}
	changed := c.state != StateIdle
	c.state = StateIdle
	c.mu.Unlock()

	if changed && c.OnStateChange != nil {
		c.OnStateChange(StateIdle)
	}
}

func (c *Controller) isWakePhrase(text string) bool {
	lower := strings.ToLower(text)
	for _, phrase := range c.wakePhrases {
		if strings.Contains(lower, phrase) {
			return true
		}
	}
	return false
}

// listen - единственное место обращения к распознавателю
func (c *Controller) listen(ctx context.Context, timeout time.Duration) (string, error) {
	c.listenMu.Lock()
	defer c.listenMu.Unlock()

	lctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return c.recognizer.Listen(lctx)
}

func (c *Controller) runCommand(ctx context.Context) {
	c.setState(StateActiveListening)
	text, err := c.listen(ctx, c.commandTimeout)

	c.setState(StateProcessing)
	c.process(ctx, text, err)
	c.setState(StateIdle)
}

func (c *Controller) process(ctx context.Context, text string, listenErr error) {
	log := c.logger.WithFields(logrus.Fields{
		"service": "VoiceController",
		"method":  "process",
	})

	if listenErr != nil {
		if !errors.Is(listenErr, ErrNoSpeech) && !errors.Is(listenErr, context.DeadlineExceeded) {
			log.WithError(listenErr).Warn("Command listen failed")
		}
		c.say(ctx, phraseRetry)
		return
	}

	intent := ParseIntent(text)
	if intent == nil {
		log.WithField("text", text).Debug("No intent recognized")
		c.say(ctx, phraseRetry)
		return
	}

	c.submitAndConfirm(ctx, intent.OriginalText, intent.Label(), log.WithField("intent", intent.Type))
}

// ManualReport отправляет отчет, выбранный пользователем без распознавания речи
func (c *Controller) ManualReport(ctx context.Context, label string) {
	log := c.logger.WithFields(logrus.Fields{
		"service": "VoiceController",
		"method":  "ManualReport",
	})
	c.submitAndConfirm(ctx, "Manual report: "+label, label, log)
}

func (c *Controller) submitAndConfirm(ctx context.Context, text, label string, log *logrus.Entry) {
	pos, ok := c.positions.Position()
	if !ok {
		c.say(ctx, phraseNoLocation)
		return
	}

	result, err := c.submitter.Submit(ctx, text, pos)
	if err != nil {
		log.WithError(err).Error("Failed to submit report")
		c.say(ctx, phraseSubmitError)
		return
	}

	log.WithField("outcome", result.Outcome).Info("Report handled")

	if result.Outcome == submit.OutcomeQueued {
		c.say(ctx, fmt.Sprintf("%s report saved. It will be sent when the connection is back.", label))
		return
	}
	c.say(ctx, fmt.Sprintf("%s report submitted.", label))
}

func (c *Controller) say(ctx context.Context, text string) {
	if err := c.speaker.Speak(ctx, text); err != nil {
		c.logger.WithError(err).Warn("Failed to speak")
	}
}
