// Package console - текстовые адаптеры речи для CLI: строки ввода играют роль
// распознанных фраз, озвучивание печатается в вывод.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/shenikar/road_hazard_system/internal/client/voice"
	"github.com/sirupsen/logrus"
)

// handoffTimeout покрывает паузу между попытками hands-free цикла
const handoffTimeout = time.Second

//go:generate mockgen -source=console.go -destination=mocks/mock_console.go -package=mocks

// VoiceControl - операции голосового контроллера, доступные из консоли
type VoiceControl interface {
	EnableHandsFree(ctx context.Context)
	DisableHandsFree()
	PushToTalk(ctx context.Context) error
	ManualReport(ctx context.Context, label string)
	State() voice.State
}

// Speaker печатает фразы в writer
type Speaker struct {
	mu  sync.Mutex
	out io.Writer
}

func NewSpeaker(out io.Writer) *Speaker {
	return &Speaker{out: out}
}

func (s *Speaker) Speak(_ context.Context, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := fmt.Fprintf(s.out, "[voice] %s\n", text)
	return err
}

// Recognizer отдает строки, не являющиеся командами, как распознанную речь
type Recognizer struct {
	utterances chan string
}

func NewRecognizer() *Recognizer {
	return &Recognizer{utterances: make(chan string)}
}

// Listen ждет следующую фразу до дедлайна ctx
func (r *Recognizer) Listen(ctx context.Context) (string, error) {
	select {
	case text := <-r.utterances:
		return text, nil
	case <-ctx.Done():
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return "", voice.ErrNoSpeech
		}
		return "", ctx.Err()
	}
}

// Console читает ввод построчно. Строки с "/" - команды управления,
// остальные передаются распознавателю, если кто-то слушает
type Console struct {
	in         io.Reader
	out        io.Writer
	recognizer *Recognizer
	logger     *logrus.Logger
}

func New(in io.Reader, out io.Writer, recognizer *Recognizer, logger *logrus.Logger) *Console {
	return &Console{in: in, out: out, recognizer: recognizer, logger: logger}
}

// Run обрабатывает ввод до EOF или отмены ctx
func (c *Console) Run(ctx context.Context, control VoiceControl) error {
	lines := make(chan string)
	scanErr := make(chan error, 1)

	go func() {
		scanner := bufio.NewScanner(c.in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		scanErr <- scanner.Err()
		close(lines)
	}()

	var wg sync.WaitGroup
	defer wg.Wait()

	for {
		select {
		case <-ctx.Done():
			return nil
		case line, ok := <-lines:
			if !ok {
				if err := <-scanErr; err != nil {
					return fmt.Errorf("console: could not read input: %w", err)
				}
				return nil
			}
			if quit := c.handle(ctx, control, strings.TrimSpace(line), &wg); quit {
				return nil
			}
		}
	}
}

func (c *Console) handle(ctx context.Context, control VoiceControl, line string, wg *sync.WaitGroup) bool {
	if line == "" {
		return false
	}

	if !strings.HasPrefix(line, "/") {
		timer := time.NewTimer(handoffTimeout)
		defer timer.Stop()
		select {
		case c.recognizer.utterances <- line:
		case <-timer.C:
			fmt.Fprintln(c.out, "Not listening. Use /talk or /handsfree on.")
		case <-ctx.Done():
		}
		return false
	}

	command, arg, _ := strings.Cut(strings.TrimPrefix(line, "/"), " ")
	switch strings.ToLower(command) {
	case "talk":
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := control.PushToTalk(ctx); err != nil {
				c.logger.WithError(err).Warn("Push-to-talk rejected")
			}
		}()
	case "handsfree":
		switch strings.ToLower(strings.TrimSpace(arg)) {
		case "on":
			control.EnableHandsFree(ctx)
		case "off":
			control.DisableHandsFree()
		default:
			fmt.Fprintln(c.out, "Usage: /handsfree on|off")
		}
	case "report":
		label := strings.ToUpper(strings.TrimSpace(arg))
		if label == "" {
			fmt.Fprintln(c.out, "Usage: /report <type>")
			return false
		}
		control.ManualReport(ctx, label)
	case "status":
		fmt.Fprintf(c.out, "Voice: %s\n", control.State())
	case "quit", "exit":
		return true
	default:
		fmt.Fprintf(c.out, "Unknown command %q. Commands: /talk, /handsfree on|off, /report <type>, /status, /quit\n", command)
	}
	return false
}
