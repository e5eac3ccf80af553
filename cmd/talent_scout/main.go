// Package main provides the talent_scout CLI: screen resumes against a job
// description, draft and approve outreach, and monitor the inbox for replies.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "talent_scout",
	Short: "Candidate sourcing automation",
	Long:  "Talent Scout screens resume folders against a job description, drafts personalized outreach for recruiter approval, and routes candidate replies into interview scheduling.",
}

var (
	flagJSONLogs bool
	flagDebug    bool
)

func init() {
	rootCmd.PersistentFlags().BoolVar(&flagJSONLogs, "json-logs", false, "Emit JSON logs instead of console output")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Enable debug logging")
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
