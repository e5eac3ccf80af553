package types

import (
	"time"

	"github.com/google/uuid"
)

// CandidateStatus tracks where a candidate sits in the sourcing funnel.
// The happy path is screened -> contacted -> interested -> scheduled, with
// rejected reachable from contacted or interested. Hired is reserved for
// hiring-manager tooling and never set by the workflows here.
type CandidateStatus string

const (
	StatusScreened   CandidateStatus = "screened"
	StatusContacted  CandidateStatus = "contacted"
	StatusInterested CandidateStatus = "interested"
	StatusScheduled  CandidateStatus = "scheduled"
	StatusHired      CandidateStatus = "hired"
	StatusRejected   CandidateStatus = "rejected"
)

// Candidate is the persisted record for a screened candidate. It is created
// once by the screening workflow and mutated in place (partial updates) by
// the outreach and reply-routing workflows.
type Candidate struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email,omitempty"`
	Phone string    `json:"phone,omitempty"`

	// ResumeData is a denormalized snapshot of the parsed resume, and
	// JobDescription a serialized snapshot of the role screened against.
	ResumeData     map[string]any  `json:"resume_data"`
	FitScore       float64         `json:"fit_score"`
	JobDescription string          `json:"job_description"`
	Status         CandidateStatus `json:"status"`

	// Outreach tracking.
	EmailSent     bool   `json:"email_sent"`
	EmailDraftID  string `json:"email_draft_id,omitempty"`
	ReplyReceived bool   `json:"reply_received"`

	// Interview tracking.
	InterviewScheduled bool       `json:"interview_scheduled"`
	InterviewTime      *time.Time `json:"interview_time,omitempty"`
	CalendarEventID    string     `json:"calendar_event_id,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
