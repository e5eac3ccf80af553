// Package store provides persistence for candidate records.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/talent-scout/internal/types"
)

// ErrNotFound is returned by Update when the candidate does not exist.
var ErrNotFound = errors.New("candidate not found")

// CandidateStore is the persistence boundary the workflows depend on.
type CandidateStore interface {
	// Save inserts a candidate and returns it with its assigned identity
	// and timestamps populated.
	Save(ctx context.Context, candidate *types.Candidate) (*types.Candidate, error)
	// Update applies a partial update; unset fields are left untouched.
	Update(ctx context.Context, id uuid.UUID, update CandidateUpdate) error
	// Get returns the candidate with the given id, or nil if none exists.
	Get(ctx context.Context, id uuid.UUID) (*types.Candidate, error)
	// ListByStatus returns all candidates currently in the given status.
	ListByStatus(ctx context.Context, status types.CandidateStatus) ([]*types.Candidate, error)
}

// CandidateUpdate describes a partial update. Nil fields are not touched.
// updated_at is always bumped.
type CandidateUpdate struct {
	Status             *types.CandidateStatus
	EmailSent          *bool
	EmailDraftID       *string
	ReplyReceived      *bool
	InterviewScheduled *bool
	InterviewTime      *time.Time
	CalendarEventID    *string
}

// Convenience pointer helpers for building partial updates.

func StatusPtr(s types.CandidateStatus) *types.CandidateStatus { return &s }
func BoolPtr(b bool) *bool                                     { return &b }
func StringPtr(s string) *string                               { return &s }
func TimePtr(t time.Time) *time.Time                           { return &t }
