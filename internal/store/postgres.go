package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jonathan/talent-scout/internal/types"
)

// Postgres implements CandidateStore on a PostgreSQL pool.
//
// Expected schema:
//
//	CREATE TABLE candidates (
//	    id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
//	    name TEXT NOT NULL,
//	    email TEXT,
//	    phone TEXT,
//	    resume_data JSONB NOT NULL,
//	    fit_score FLOAT NOT NULL,
//	    job_description TEXT NOT NULL,
//	    status TEXT DEFAULT 'screened',
//	    email_sent BOOLEAN DEFAULT FALSE,
//	    email_draft_id TEXT,
//	    reply_received BOOLEAN DEFAULT FALSE,
//	    interview_scheduled BOOLEAN DEFAULT FALSE,
//	    interview_time TIMESTAMPTZ,
//	    calendar_event_id TEXT,
//	    created_at TIMESTAMPTZ DEFAULT NOW(),
//	    updated_at TIMESTAMPTZ DEFAULT NOW()
//	);
type Postgres struct {
	pool *pgxpool.Pool
}

// Connect establishes a connection pool to the database.
func Connect(ctx context.Context, databaseURL string) (*Postgres, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Postgres{pool: pool}, nil
}

// Close closes the connection pool.
func (s *Postgres) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

const candidateColumns = `id, name, email, phone, resume_data, fit_score, job_description,
	status, email_sent, email_draft_id, reply_received,
	interview_scheduled, interview_time, calendar_event_id, created_at, updated_at`

// Save inserts a candidate and returns it with id and timestamps populated.
func (s *Postgres) Save(ctx context.Context, candidate *types.Candidate) (*types.Candidate, error) {
	resumeJSON, err := json.Marshal(candidate.ResumeData)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal resume data: %w", err)
	}

	saved := *candidate
	err = s.pool.QueryRow(ctx,
		`INSERT INTO candidates (name, email, phone, resume_data, fit_score, job_description,
		         status, email_sent, email_draft_id, reply_received,
		         interview_scheduled, interview_time, calendar_event_id)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		 RETURNING id, created_at, updated_at`,
		candidate.Name, nullable(candidate.Email), nullable(candidate.Phone), resumeJSON,
		candidate.FitScore, candidate.JobDescription, candidate.Status,
		candidate.EmailSent, nullable(candidate.EmailDraftID), candidate.ReplyReceived,
		candidate.InterviewScheduled, candidate.InterviewTime, nullable(candidate.CalendarEventID),
	).Scan(&saved.ID, &saved.CreatedAt, &saved.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to save candidate: %w", err)
	}
	return &saved, nil
}

// Update applies a partial update to a candidate record.
func (s *Postgres) Update(ctx context.Context, id uuid.UUID, update CandidateUpdate) error {
	sets := []string{"updated_at = NOW()"}
	args := []any{id}

	add := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if update.Status != nil {
		add("status", *update.Status)
	}
	if update.EmailSent != nil {
		add("email_sent", *update.EmailSent)
	}
	if update.EmailDraftID != nil {
		add("email_draft_id", *update.EmailDraftID)
	}
	if update.ReplyReceived != nil {
		add("reply_received", *update.ReplyReceived)
	}
	if update.InterviewScheduled != nil {
		add("interview_scheduled", *update.InterviewScheduled)
	}
	if update.InterviewTime != nil {
		add("interview_time", *update.InterviewTime)
	}
	if update.CalendarEventID != nil {
		add("calendar_event_id", *update.CalendarEventID)
	}

	query := fmt.Sprintf("UPDATE candidates SET %s WHERE id = $1", joinSets(sets))
	tag, err := s.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update candidate %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Get returns the candidate with the given id, or nil when absent.
func (s *Postgres) Get(ctx context.Context, id uuid.UUID) (*types.Candidate, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+candidateColumns+` FROM candidates WHERE id = $1`, id)

	candidate, err := scanCandidate(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get candidate: %w", err)
	}
	return candidate, nil
}

// ListByStatus returns all candidates in the given status, oldest first.
func (s *Postgres) ListByStatus(ctx context.Context, status types.CandidateStatus) ([]*types.Candidate, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+candidateColumns+` FROM candidates WHERE status = $1 ORDER BY created_at`, status)
	if err != nil {
		return nil, fmt.Errorf("failed to list candidates: %w", err)
	}
	defer rows.Close()

	var candidates []*types.Candidate
	for rows.Next() {
		candidate, err := scanCandidate(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan candidate: %w", err)
		}
		candidates = append(candidates, candidate)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list candidates: %w", err)
	}
	return candidates, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCandidate(row rowScanner) (*types.Candidate, error) {
	var (
		c          types.Candidate
		email      *string
		phone      *string
		draftID    *string
		eventID    *string
		resumeJSON []byte
	)

	err := row.Scan(&c.ID, &c.Name, &email, &phone, &resumeJSON, &c.FitScore,
		&c.JobDescription, &c.Status, &c.EmailSent, &draftID, &c.ReplyReceived,
		&c.InterviewScheduled, &c.InterviewTime, &eventID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}

	if email != nil {
		c.Email = *email
	}
	if phone != nil {
		c.Phone = *phone
	}
	if draftID != nil {
		c.EmailDraftID = *draftID
	}
	if eventID != nil {
		c.CalendarEventID = *eventID
	}
	if resumeJSON != nil {
		_ = json.Unmarshal(resumeJSON, &c.ResumeData)
	}
	return &c, nil
}

// nullable maps the empty string to SQL NULL.
func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func joinSets(sets []string) string {
	out := sets[0]
	for _, s := range sets[1:] {
		out += ", " + s
	}
	return out
}
