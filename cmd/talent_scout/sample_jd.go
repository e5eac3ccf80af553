package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/talent-scout/internal/types"
)

var sampleJDCmd = &cobra.Command{
	Use:   "sample-jd",
	Short: "Write a sample job description JSON file",
	RunE:  runSampleJD,
}

var sampleJDOutput string

func init() {
	sampleJDCmd.Flags().StringVarP(&sampleJDOutput, "output", "o", "job_description.json", "Path to write the sample job description")

	rootCmd.AddCommand(sampleJDCmd)
}

func runSampleJD(_ *cobra.Command, _ []string) error {
	sample := types.JobDescription{
		Title:       "Senior Software Engineer",
		Company:     "Tech Innovations Inc.",
		Description: "We are looking for a Senior Software Engineer to design and build scalable backend services. You will own features end to end, from design through deployment, and mentor junior engineers along the way.",
		RequiredSkills: []string{
			"Python", "AWS", "Docker", "Kubernetes", "PostgreSQL",
		},
		PreferredSkills: []string{
			"React", "TypeScript", "Terraform",
		},
		ExperienceRequired: "5+ years of professional software development experience",
		EducationRequired:  "Bachelor's degree in Computer Science or a related field",
	}

	data, err := json.MarshalIndent(sample, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal sample job description: %w", err)
	}
	if err := os.WriteFile(sampleJDOutput, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", sampleJDOutput, err)
	}

	fmt.Fprintf(os.Stdout, "Wrote sample job description to %s\n", sampleJDOutput)
	return nil
}
