package main

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var approveCmd = &cobra.Command{
	Use:   "approve",
	Short: "Approve and send a candidate's pending outreach draft",
	RunE:  runApprove,
}

var approveCandidateID string

func init() {
	approveCmd.Flags().StringVar(&approveCandidateID, "candidate-id", "", "Candidate UUID whose draft to send (required)")
	_ = approveCmd.MarkFlagRequired("candidate-id")

	rootCmd.AddCommand(approveCmd)
}

func runApprove(_ *cobra.Command, _ []string) error {
	candidateID, err := uuid.Parse(approveCandidateID)
	if err != nil {
		return fmt.Errorf("invalid candidate-id: %w", err)
	}

	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	ctx := context.Background()

	workflow, err := a.buildOutreach(ctx)
	if err != nil {
		return err
	}
	if err := workflow.ApproveAndSend(ctx, candidateID); err != nil {
		return err
	}

	fmt.Fprintf(os.Stdout, "Outreach sent for candidate %s\n", candidateID)
	return nil
}
