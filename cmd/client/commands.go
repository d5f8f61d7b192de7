package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/shenikar/road_hazard_system/internal/client/agent"
	"github.com/shenikar/road_hazard_system/internal/client/api"
	"github.com/shenikar/road_hazard_system/internal/client/console"
	"github.com/shenikar/road_hazard_system/internal/client/offline"
	"github.com/shenikar/road_hazard_system/internal/client/proximity"
	"github.com/shenikar/road_hazard_system/internal/client/stream"
	"github.com/shenikar/road_hazard_system/internal/client/submit"
	"github.com/shenikar/road_hazard_system/internal/client/voice"
	"github.com/shenikar/road_hazard_system/internal/config"
	"github.com/shenikar/road_hazard_system/internal/models"
	"github.com/shenikar/road_hazard_system/pkg/badgerdb"
	"github.com/shenikar/road_hazard_system/pkg/logger"
)

// clientDeps - общие зависимости команд
type clientDeps struct {
	cfg      *config.ClientConfig
	log      *logrus.Logger
	db       *badger.DB
	queue    *offline.Queue
	client   *api.Client
	pipeline *submit.Pipeline
}

func setup() (*clientDeps, error) {
	cfg, err := config.LoadClientConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	log := logger.NewConsole(cfg.LogLevel, os.Stderr)

	db, err := badgerdb.Open(badgerdb.Config{Path: cfg.QueueDir, SyncWrites: true, Logger: log})
	if err != nil {
		return nil, fmt.Errorf("failed to open offline queue: %w", err)
	}

	queue, err := offline.NewQueue(db, log)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to init offline queue: %w", err)
	}

	client := api.NewClient(cfg, log)
	return &clientDeps{
		cfg:      cfg,
		log:      log,
		db:       db,
		queue:    queue,
		client:   client,
		pipeline: submit.NewPipeline(client, queue, cfg.RequestTimeout, log),
	}, nil
}

func (d *clientDeps) close() {
	if err := d.queue.Close(); err != nil {
		d.log.WithError(err).Warn("Failed to release queue sequence")
	}
	if err := d.db.Close(); err != nil {
		d.log.WithError(err).Warn("Failed to close offline queue")
	}
}

func runAgent(cmd *cobra.Command, _ []string) error {
	interval, err := time.ParseDuration(positionInterval)
	if err != nil {
		return fmt.Errorf("invalid --interval: %w", err)
	}

	deps, err := setup()
	if err != nil {
		return err
	}
	defer deps.close()

	log := deps.log
	speaker := console.NewSpeaker(cmd.OutOrStdout())
	mute := proximity.MuteSettings{RadiusMeters: deps.cfg.MuteRadiusMeters, Streets: deps.cfg.MutedStreets}
	engine := proximity.NewEngine(speaker, deps.client, mute, log)

	subscriber := stream.NewSubscriber(deps.client.PushURL(), deps.client.APIKey(), deps.cfg.PushBackoff, log)
	subscriber.OnStateChange = func(state stream.State) {
		log.WithField("state", state).Info("Push channel state")
	}

	recognizer := console.NewRecognizer()
	controller := voice.NewController(recognizer, speaker, deps.pipeline, engine, deps.cfg.WakePhrases, log)
	defer controller.Close()

	a := agent.New(engine, subscriber, deps.client, deps.queue, deps.pipeline.Resend, deps.cfg.FlushInterval, log)

	sigCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithCancel(sigCtx)
	defer cancel()

	positions := make(chan models.Position)
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error { return a.Run(ctx, positions) })
	g.Go(func() error {
		defer close(positions)
		if positionsFile == "" {
			<-ctx.Done()
			return nil
		}
		return replayPositions(ctx, positionsFile, interval, positions, log)
	})

	if handsFree {
		controller.EnableHandsFree(ctx)
	}
	if !headless {
		g.Go(func() error {
			defer cancel()
			return console.New(cmd.InOrStdin(), cmd.OutOrStdout(), recognizer, log).Run(ctx, controller)
		})
	}

	log.WithField("server", deps.cfg.ServerURL).Info("Agent started")
	if err := g.Wait(); err != nil {
		return err
	}
	log.Info("Agent stopped")
	return nil
}

func runReport(cmd *cobra.Command, args []string) error {
	deps, err := setup()
	if err != nil {
		return err
	}
	defer deps.close()

	text := strings.Join(args, " ")
	pos := models.Position{Latitude: reportLat, Longitude: reportLon, Timestamp: time.Now().UTC()}

	result, err := deps.pipeline.Submit(cmd.Context(), text, pos)
	if err != nil {
		return err
	}

	if result.Outcome == submit.OutcomeSent {
		fmt.Fprintf(cmd.OutOrStdout(), "%s: report %s\n", result.Outcome, result.ReportID)
		return nil
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s: report saved offline\n", result.Outcome)
	return nil
}

func runFlush(cmd *cobra.Command, _ []string) error {
	deps, err := setup()
	if err != nil {
		return err
	}
	defer deps.close()

	sent, remaining, err := deps.queue.Flush(cmd.Context(), deps.pipeline.Resend)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "sent=%d remaining=%d\n", sent, remaining)
	return nil
}

func runPending(cmd *cobra.Command, _ []string) error {
	deps, err := setup()
	if err != nil {
		return err
	}
	defer deps.close()

	reports, err := deps.queue.List()
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "TIMESTAMP\tLAT\tLON\tTEXT")
	for _, r := range reports {
		fmt.Fprintf(w, "%s\t%.5f\t%.5f\t%s\n", r.Timestamp.Format(time.RFC3339), r.Latitude, r.Longitude, r.RawText)
	}
	return w.Flush()
}

func runEvents(cmd *cobra.Command, _ []string) error {
	cfg, err := config.LoadClientConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	client := api.NewClient(cfg, logger.NewConsole(cfg.LogLevel, os.Stderr))

	events, err := client.ListEvents(cmd.Context())
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTYPE\tLAT\tLON\tCONFIRMATIONS\tADDRESS")
	for _, e := range events {
		fmt.Fprintf(w, "%s\t%s\t%.5f\t%.5f\t%d\t%s\n", e.ID, e.EventType, e.Latitude, e.Longitude, e.ConfirmationsCount, e.Address)
	}
	return w.Flush()
}
