package main

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/jonathan/talent-scout/internal/config"
	"github.com/jonathan/talent-scout/internal/google"
	"github.com/jonathan/talent-scout/internal/llm"
	"github.com/jonathan/talent-scout/internal/logger"
	"github.com/jonathan/talent-scout/internal/outreach"
	"github.com/jonathan/talent-scout/internal/parsing"
	"github.com/jonathan/talent-scout/internal/scheduling"
	"github.com/jonathan/talent-scout/internal/screening"
	"github.com/jonathan/talent-scout/internal/slack"
	"github.com/jonathan/talent-scout/internal/store"
)

// app holds the shared dependencies a command builds before running. Each
// command constructs only what it needs; the Google clients trigger an OAuth
// consent flow on first use, so nothing is built eagerly.
type app struct {
	cfg *config.Config
	log *zap.Logger

	llmClient llm.Client
	db        *store.Postgres
}

func newApp() (*app, error) {
	log, err := logger.New(flagJSONLogs, flagDebug)
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}
	return &app{cfg: config.Load(), log: log}, nil
}

// close releases the clients the commands opened.
func (a *app) close() {
	if a.llmClient != nil {
		_ = a.llmClient.Close()
	}
	if a.db != nil {
		a.db.Close()
	}
	_ = a.log.Sync()
}

func (a *app) buildLLM(ctx context.Context) (llm.Client, error) {
	if a.llmClient != nil {
		return a.llmClient, nil
	}
	client, err := llm.NewClient(ctx, &llm.Config{
		Provider: llm.Provider(a.cfg.LLMProvider),
		Model:    a.cfg.LLMModel,
	}, a.cfg.GeminiAPIKey)
	if err != nil {
		return nil, err
	}
	a.llmClient = client
	return client, nil
}

func (a *app) buildStore(ctx context.Context) (store.CandidateStore, error) {
	if a.db != nil {
		return a.db, nil
	}
	if a.cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	db, err := store.Connect(ctx, a.cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}
	a.db = db
	return db, nil
}

func (a *app) buildGmail(ctx context.Context) (*google.Gmail, error) {
	return google.NewGmail(ctx,
		a.cfg.GmailCredentialsPath, a.cfg.GmailTokenPath, a.cfg.RecruiterEmail, a.log)
}

func (a *app) buildCalendar(ctx context.Context) (*google.Calendar, error) {
	return google.NewCalendar(ctx,
		a.cfg.CalendarCredentialsPath, a.cfg.CalendarTokenPath, a.log)
}

func (a *app) buildNotifier() *slack.Notifier {
	return slack.NewNotifier(a.cfg.SlackBotToken, a.cfg.SlackChannel, a.log)
}

func (a *app) buildScreening(ctx context.Context) (*screening.Workflow, error) {
	llmClient, err := a.buildLLM(ctx)
	if err != nil {
		return nil, err
	}
	candidates, err := a.buildStore(ctx)
	if err != nil {
		return nil, err
	}
	parser := parsing.NewParser(llmClient, a.log)
	return screening.New(parser, candidates, a.cfg.FitScoreThreshold, a.log), nil
}

func (a *app) buildOutreach(ctx context.Context) (*outreach.Workflow, error) {
	llmClient, err := a.buildLLM(ctx)
	if err != nil {
		return nil, err
	}
	candidates, err := a.buildStore(ctx)
	if err != nil {
		return nil, err
	}
	gmail, err := a.buildGmail(ctx)
	if err != nil {
		return nil, err
	}
	return outreach.New(llmClient, gmail, a.buildNotifier(), candidates, a.cfg.RecruiterName, a.log), nil
}

func (a *app) buildScheduling(ctx context.Context) (*scheduling.Workflow, error) {
	llmClient, err := a.buildLLM(ctx)
	if err != nil {
		return nil, err
	}
	candidates, err := a.buildStore(ctx)
	if err != nil {
		return nil, err
	}
	gmail, err := a.buildGmail(ctx)
	if err != nil {
		return nil, err
	}
	calendar, err := a.buildCalendar(ctx)
	if err != nil {
		return nil, err
	}
	return scheduling.New(llmClient, gmail, calendar, a.buildNotifier(), candidates, a.cfg.RecruiterName, a.log), nil
}
