// Package config loads runtime configuration from the environment and job
// descriptions from JSON files.
package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/viper"

	"github.com/jonathan/talent-scout/internal/types"
)

// Config holds everything the commands need from the environment.
type Config struct {
	// LLM provider settings.
	LLMProvider  string
	LLMModel     string
	GeminiAPIKey string

	// Screening.
	FitScoreThreshold float64

	// Outreach identity. RecruiterEmail is the Gmail account the OAuth
	// credentials belong to; RecruiterName signs outgoing mail.
	RecruiterEmail string
	RecruiterName  string

	// Google OAuth client credentials and cached tokens.
	GmailCredentialsPath    string
	GmailTokenPath          string
	CalendarCredentialsPath string
	CalendarTokenPath       string

	// Persistence.
	DatabaseURL string

	// Slack notifications, optional.
	SlackBotToken string
	SlackChannel  string
}

// Load reads configuration from environment variables, applying defaults for
// everything that has a sensible one. Secrets have no defaults.
func Load() *Config {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("LLM_PROVIDER", "gemini")
	v.SetDefault("LLM_MODEL", "gemini-2.5-flash")
	v.SetDefault("FIT_SCORE_THRESHOLD", 75.0)
	v.SetDefault("RECRUITER_EMAIL", "recruiter@example.com")
	v.SetDefault("RECRUITER_NAME", "Recruiter")
	v.SetDefault("GMAIL_CREDENTIALS_PATH", "credentials.json")
	v.SetDefault("GMAIL_TOKEN_PATH", "token.json")
	v.SetDefault("CALENDAR_CREDENTIALS_PATH", "credentials.json")
	v.SetDefault("CALENDAR_TOKEN_PATH", "calendar_token.json")

	return &Config{
		LLMProvider:             v.GetString("LLM_PROVIDER"),
		LLMModel:                v.GetString("LLM_MODEL"),
		GeminiAPIKey:            v.GetString("GEMINI_API_KEY"),
		FitScoreThreshold:       v.GetFloat64("FIT_SCORE_THRESHOLD"),
		RecruiterEmail:          v.GetString("RECRUITER_EMAIL"),
		RecruiterName:           v.GetString("RECRUITER_NAME"),
		GmailCredentialsPath:    v.GetString("GMAIL_CREDENTIALS_PATH"),
		GmailTokenPath:          v.GetString("GMAIL_TOKEN_PATH"),
		CalendarCredentialsPath: v.GetString("CALENDAR_CREDENTIALS_PATH"),
		CalendarTokenPath:       v.GetString("CALENDAR_TOKEN_PATH"),
		DatabaseURL:             v.GetString("DATABASE_URL"),
		SlackBotToken:           v.GetString("SLACK_BOT_TOKEN"),
		SlackChannel:            v.GetString("SLACK_CHANNEL_ID"),
	}
}

// LoadJobDescription reads and validates a job description JSON file.
func LoadJobDescription(path string) (*types.JobDescription, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read job description %s: %w", path, err)
	}

	var job types.JobDescription
	if err := json.Unmarshal(data, &job); err != nil {
		return nil, fmt.Errorf("failed to parse job description %s: %w", path, err)
	}
	if err := job.Validate(); err != nil {
		return nil, fmt.Errorf("invalid job description %s: %w", path, err)
	}
	return &job, nil
}
