// Package orchestrator ties the workflows together: the screening-to-draft
// pipeline behind the screen command, and the inbox scan behind the monitor
// command.
package orchestrator

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/jonathan/talent-scout/internal/google"
	"github.com/jonathan/talent-scout/internal/outreach"
	"github.com/jonathan/talent-scout/internal/scheduling"
	"github.com/jonathan/talent-scout/internal/store"
	"github.com/jonathan/talent-scout/internal/types"
)

// inboxScanLimit caps how many recent messages one scan inspects.
const inboxScanLimit = 20

// Screener runs the screening workflow.
type Screener interface {
	Run(ctx context.Context, resumeDir string, job *types.JobDescription) ([]*types.Candidate, error)
}

// Drafter runs the outreach workflow for one candidate.
type Drafter interface {
	Run(ctx context.Context, candidate *types.Candidate) (*outreach.Result, error)
}

// Router runs the reply-routing workflow for one inbound message.
type Router interface {
	Run(ctx context.Context, senderEmail, messageText string) (scheduling.Intent, error)
}

// InboxService lists recent inbox messages.
type InboxService interface {
	ListRecentInbox(ctx context.Context, max int) ([]google.Message, error)
}

// Orchestrator wires the workflows into the two top-level operations.
type Orchestrator struct {
	screener Screener
	drafter  Drafter
	router   Router
	inbox    InboxService
	store    store.CandidateStore
	log      *zap.Logger
}

// New builds an orchestrator over the given workflows.
func New(screener Screener, drafter Drafter, router Router, inbox InboxService, candidates store.CandidateStore, log *zap.Logger) *Orchestrator {
	return &Orchestrator{
		screener: screener,
		drafter:  drafter,
		router:   router,
		inbox:    inbox,
		store:    candidates,
		log:      log,
	}
}

// DraftRecord identifies one created outreach draft.
type DraftRecord struct {
	CandidateName string
	DraftID       string
}

// PipelineResult summarizes one screening run.
type PipelineResult struct {
	Qualified []*types.Candidate
	Drafts    []DraftRecord
}

// RunPipeline screens the resume folder and, when autoDraft is set, drafts
// outreach for each qualified candidate. A screening failure aborts the run;
// a per-candidate drafting failure is logged and the pipeline moves on.
func (o *Orchestrator) RunPipeline(ctx context.Context, resumeDir string, job *types.JobDescription, autoDraft bool) (*PipelineResult, error) {
	qualified, err := o.screener.Run(ctx, resumeDir, job)
	if err != nil {
		return nil, fmt.Errorf("screening failed: %w", err)
	}

	result := &PipelineResult{Qualified: qualified}
	if !autoDraft {
		return result, nil
	}

	for _, candidate := range qualified {
		draft, err := o.drafter.Run(ctx, candidate)
		if err != nil {
			o.log.Warn("skipping candidate whose draft failed",
				zap.String("candidate", candidate.Name), zap.Error(err))
			continue
		}
		result.Drafts = append(result.Drafts, DraftRecord{
			CandidateName: candidate.Name,
			DraftID:       draft.DraftID,
		})
	}
	return result, nil
}

// ScanInbox fetches recent inbox messages and routes the ones sent by active
// candidates. Per-message routing failures are logged; the scan continues.
func (o *Orchestrator) ScanInbox(ctx context.Context) error {
	messages, err := o.inbox.ListRecentInbox(ctx, inboxScanLimit)
	if err != nil {
		return fmt.Errorf("inbox scan failed: %w", err)
	}

	active, err := o.activeCandidateEmails(ctx)
	if err != nil {
		return err
	}

	routed := 0
	for _, msg := range messages {
		if msg.Sender == "" || msg.Body == "" || !active[msg.Sender] {
			continue
		}
		intent, err := o.router.Run(ctx, msg.Sender, msg.Body)
		if err != nil {
			o.log.Warn("failed to route reply",
				zap.String("sender", msg.Sender), zap.Error(err))
			continue
		}
		o.log.Info("routed reply",
			zap.String("sender", msg.Sender), zap.String("intent", string(intent)))
		routed++
	}

	o.log.Info("inbox scan complete",
		zap.Int("messages", len(messages)), zap.Int("routed", routed))
	return nil
}

// activeCandidateEmails returns the lowercased addresses of candidates a
// reply could plausibly come from.
func (o *Orchestrator) activeCandidateEmails(ctx context.Context) (map[string]bool, error) {
	active := make(map[string]bool)
	for _, status := range []types.CandidateStatus{types.StatusContacted, types.StatusInterested} {
		candidates, err := o.store.ListByStatus(ctx, status)
		if err != nil {
			return nil, fmt.Errorf("failed to list %s candidates: %w", status, err)
		}
		for _, candidate := range candidates {
			if candidate.Email != "" {
				active[normalizeEmail(candidate.Email)] = true
			}
		}
	}
	return active, nil
}

func normalizeEmail(addr string) string {
	return strings.ToLower(strings.TrimSpace(addr))
}
