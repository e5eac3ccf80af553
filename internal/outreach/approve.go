package outreach

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jonathan/talent-scout/internal/store"
	"github.com/jonathan/talent-scout/internal/types"
)

// ErrNoDraft is returned when approval is requested for a candidate that has
// no pending draft.
var ErrNoDraft = errors.New("candidate has no pending draft")

// ApproveAndSend sends a candidate's pending draft and promotes them to
// contacted. It is the recruiter-approval half of the outreach workflow.
func (w *Workflow) ApproveAndSend(ctx context.Context, candidateID uuid.UUID) error {
	candidate, err := w.store.Get(ctx, candidateID)
	if err != nil {
		return fmt.Errorf("failed to load candidate %s: %w", candidateID, err)
	}
	if candidate == nil {
		return fmt.Errorf("candidate %s: %w", candidateID, store.ErrNotFound)
	}
	if candidate.EmailDraftID == "" {
		return fmt.Errorf("candidate %s: %w", candidateID, ErrNoDraft)
	}

	if err := w.email.SendDraft(ctx, candidate.EmailDraftID); err != nil {
		return fmt.Errorf("failed to send draft for %s: %w", candidate.Name, err)
	}

	if err := w.store.Update(ctx, candidate.ID, store.CandidateUpdate{
		Status:    store.StatusPtr(types.StatusContacted),
		EmailSent: store.BoolPtr(true),
	}); err != nil {
		return fmt.Errorf("failed to mark %s contacted: %w", candidate.Name, err)
	}

	w.log.Info("sent approved outreach",
		zap.String("candidate", candidate.Name),
		zap.String("draft_id", candidate.EmailDraftID))

	if err := w.notifier.Notify(ctx, "Outreach sent",
		fmt.Sprintf("Outreach email sent to %s (%s).", candidate.Name, candidate.Email)); err != nil {
		w.log.Warn("failed to send outreach notification", zap.Error(err))
	}
	return nil
}
