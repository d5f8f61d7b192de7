package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	positionsFile    string
	positionInterval string
	handsFree        bool
	headless         bool
	reportLat        float64
	reportLon        float64

	rootCmd = &cobra.Command{
		Use:   "hazard-client",
		Short: "Driver-side agent for the road hazard system",
		Long: `hazard-client subscribes to live hazard updates, speaks proximity alerts
and submits voice or manual reports. Reports that cannot be delivered are kept
in a local queue and resent later.`,
		SilenceUsage: true,
	}

	runCmd = &cobra.Command{
		Use:   "run",
		Short: "Run the agent: push channel, proximity alerts and console voice control",
		RunE:  runAgent,
	}

	reportCmd = &cobra.Command{
		Use:   "report [text]",
		Short: "Submit a single report, queueing it offline on failure",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runReport,
	}

	flushCmd = &cobra.Command{
		Use:   "flush",
		Short: "Resend reports from the offline queue",
		RunE:  runFlush,
	}

	pendingCmd = &cobra.Command{
		Use:   "pending",
		Short: "List reports waiting in the offline queue",
		RunE:  runPending,
	}

	eventsCmd = &cobra.Command{
		Use:   "events",
		Short: "List active hazard events",
		RunE:  runEvents,
	}
)

func init() {
	runCmd.Flags().StringVar(&positionsFile, "positions", "", "JSON-lines file with positions to replay")
	runCmd.Flags().StringVar(&positionInterval, "interval", "1s", "delay between replayed positions")
	runCmd.Flags().BoolVar(&handsFree, "hands-free", false, "start with the wake phrase loop enabled")
	runCmd.Flags().BoolVar(&headless, "headless", false, "do not read commands from stdin")

	reportCmd.Flags().Float64Var(&reportLat, "lat", 0, "latitude of the report")
	reportCmd.Flags().Float64Var(&reportLon, "lon", 0, "longitude of the report")
	_ = reportCmd.MarkFlagRequired("lat")
	_ = reportCmd.MarkFlagRequired("lon")

	rootCmd.AddCommand(runCmd, reportCmd, flushCmd, pendingCmd, eventsCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
