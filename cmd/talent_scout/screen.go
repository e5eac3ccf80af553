package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/talent-scout/internal/config"
	"github.com/jonathan/talent-scout/internal/orchestrator"
)

var screenCmd = &cobra.Command{
	Use:   "screen",
	Short: "Screen a folder of resumes against a job description",
	Long:  "Parse every resume in a folder, score each candidate against the job description, persist qualified candidates, and optionally draft outreach email for each of them.",
	RunE:  runScreen,
}

var (
	screenResumeFolder string
	screenJobFile      string
	screenCreateDrafts bool
)

func init() {
	screenCmd.Flags().StringVarP(&screenResumeFolder, "resume-folder", "r", "", "Path to folder of resume files (required)")
	screenCmd.Flags().StringVarP(&screenJobFile, "job-description", "j", "", "Path to job description JSON file (required)")
	screenCmd.Flags().BoolVar(&screenCreateDrafts, "create-drafts", false, "Draft outreach email for each qualified candidate")
	_ = screenCmd.MarkFlagRequired("resume-folder")
	_ = screenCmd.MarkFlagRequired("job-description")

	rootCmd.AddCommand(screenCmd)
}

func runScreen(_ *cobra.Command, _ []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	ctx := context.Background()

	job, err := config.LoadJobDescription(screenJobFile)
	if err != nil {
		return err
	}

	screener, err := a.buildScreening(ctx)
	if err != nil {
		return err
	}

	var drafter orchestrator.Drafter
	if screenCreateDrafts {
		drafter, err = a.buildOutreach(ctx)
		if err != nil {
			return err
		}
	}

	candidates, err := a.buildStore(ctx)
	if err != nil {
		return err
	}

	orch := orchestrator.New(screener, drafter, nil, nil, candidates, a.log)
	result, err := orch.RunPipeline(ctx, screenResumeFolder, job, screenCreateDrafts)
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stdout, "Qualified candidates: %d\n", len(result.Qualified))
	for _, candidate := range result.Qualified {
		fmt.Fprintf(os.Stdout, "  %s <%s>  score=%.2f  status=%s  id=%s\n",
			candidate.Name, candidate.Email, candidate.FitScore, candidate.Status, candidate.ID)
	}
	if screenCreateDrafts {
		fmt.Fprintf(os.Stdout, "Drafts created: %d\n", len(result.Drafts))
		for _, draft := range result.Drafts {
			fmt.Fprintf(os.Stdout, "  %s  draft=%s\n", draft.CandidateName, draft.DraftID)
		}
	}
	return nil
}
