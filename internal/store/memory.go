package store

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/talent-scout/internal/types"
)

// Memory is an in-memory CandidateStore used by tests and local dry runs.
type Memory struct {
	mu         sync.Mutex
	candidates map[uuid.UUID]*types.Candidate
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{candidates: make(map[uuid.UUID]*types.Candidate)}
}

// Save assigns an id and timestamps and stores a copy of the candidate.
func (m *Memory) Save(_ context.Context, candidate *types.Candidate) (*types.Candidate, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	saved := *candidate
	saved.ID = uuid.New()
	now := time.Now().UTC()
	saved.CreatedAt = now
	saved.UpdatedAt = now

	stored := saved
	m.candidates[saved.ID] = &stored
	return &saved, nil
}

// Update applies a partial update to a stored candidate.
func (m *Memory) Update(_ context.Context, id uuid.UUID, update CandidateUpdate) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	candidate, ok := m.candidates[id]
	if !ok {
		return ErrNotFound
	}

	if update.Status != nil {
		candidate.Status = *update.Status
	}
	if update.EmailSent != nil {
		candidate.EmailSent = *update.EmailSent
	}
	if update.EmailDraftID != nil {
		candidate.EmailDraftID = *update.EmailDraftID
	}
	if update.ReplyReceived != nil {
		candidate.ReplyReceived = *update.ReplyReceived
	}
	if update.InterviewScheduled != nil {
		candidate.InterviewScheduled = *update.InterviewScheduled
	}
	if update.InterviewTime != nil {
		t := *update.InterviewTime
		candidate.InterviewTime = &t
	}
	if update.CalendarEventID != nil {
		candidate.CalendarEventID = *update.CalendarEventID
	}
	candidate.UpdatedAt = time.Now().UTC()
	return nil
}

// Get returns a copy of the candidate with the given id, or nil.
func (m *Memory) Get(_ context.Context, id uuid.UUID) (*types.Candidate, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	candidate, ok := m.candidates[id]
	if !ok {
		return nil, nil
	}
	copied := *candidate
	return &copied, nil
}

// ListByStatus returns copies of all candidates in the given status.
func (m *Memory) ListByStatus(_ context.Context, status types.CandidateStatus) ([]*types.Candidate, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []*types.Candidate
	for _, candidate := range m.candidates {
		if candidate.Status == status {
			copied := *candidate
			out = append(out, &copied)
		}
	}
	return out, nil
}
