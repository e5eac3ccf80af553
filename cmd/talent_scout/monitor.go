package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/jonathan/talent-scout/internal/orchestrator"
)

var monitorCmd = &cobra.Command{
	Use:   "monitor",
	Short: "Scan the inbox and route candidate replies",
	Long:  "Fetch recent inbox messages, match senders against contacted candidates, and route each reply into interview scheduling or decline handling.",
	RunE:  runMonitor,
}

func init() {
	rootCmd.AddCommand(monitorCmd)
}

func runMonitor(_ *cobra.Command, _ []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	ctx := context.Background()

	router, err := a.buildScheduling(ctx)
	if err != nil {
		return err
	}
	gmail, err := a.buildGmail(ctx)
	if err != nil {
		return err
	}
	candidates, err := a.buildStore(ctx)
	if err != nil {
		return err
	}

	orch := orchestrator.New(nil, nil, router, gmail, candidates, a.log)
	return orch.ScanInbox(ctx)
}
