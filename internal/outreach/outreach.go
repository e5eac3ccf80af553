// Package outreach implements the outreach workflow: generate a personalized
// message for a screened candidate, create a Gmail draft, and notify the
// recruiter that a draft is waiting for approval.
package outreach

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/jonathan/talent-scout/internal/store"
	"github.com/jonathan/talent-scout/internal/types"
	"github.com/jonathan/talent-scout/internal/workflow"
)

// Generator is the slice of the LLM client the workflow needs.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// EmailService creates and sends email drafts.
type EmailService interface {
	CreateDraft(ctx context.Context, to, subject, body string) (string, error)
	SendDraft(ctx context.Context, draftID string) error
}

// Notifier delivers recruiter-facing notifications. Failures are logged,
// never fatal.
type Notifier interface {
	Notify(ctx context.Context, title, message string) error
	ApprovalRequest(ctx context.Context, candidateName, candidateEmail, draftPreview, candidateID string) error
}

// Result describes the draft produced for one candidate.
type Result struct {
	DraftID string
	Subject string
	Body    string
}

// Workflow drafts outreach email for screened candidates.
type Workflow struct {
	llm           Generator
	email         EmailService
	notifier      Notifier
	store         store.CandidateStore
	recruiterName string
	log           *zap.Logger
	graph         *workflow.Graph[*state]
}

type state struct {
	candidate *types.Candidate

	subject string
	body    string
	draftID string
	err     error
}

// New builds the outreach workflow. The recruiter name signs every message.
func New(llm Generator, email EmailService, notifier Notifier, candidates store.CandidateStore, recruiterName string, log *zap.Logger) *Workflow {
	w := &Workflow{
		llm:           llm,
		email:         email,
		notifier:      notifier,
		store:         candidates,
		recruiterName: recruiterName,
		log:           log,
	}

	g := workflow.New[*state]()
	g.AddNode("generate_message", w.generateMessage)
	g.AddNode("create_draft", w.createDraft)
	g.AddNode("notify_recruiter", w.notifyRecruiter)
	g.SetEntryPoint("generate_message")
	g.AddEdge("generate_message", "create_draft")
	g.AddEdge("create_draft", "notify_recruiter")
	g.AddEdge("notify_recruiter", workflow.End)
	w.graph = g

	return w
}

// Run drafts outreach for one candidate and records the draft id on the
// candidate record. A candidate without an email address is an error.
func (w *Workflow) Run(ctx context.Context, candidate *types.Candidate) (*Result, error) {
	if candidate.Email == "" {
		return nil, fmt.Errorf("candidate %s has no email address", candidate.Name)
	}

	st := &state{candidate: candidate}
	if err := w.graph.Run(ctx, st); err != nil {
		return nil, err
	}
	if st.err != nil {
		return nil, st.err
	}
	return &Result{DraftID: st.draftID, Subject: st.subject, Body: st.body}, nil
}

// generateMessage asks the LLM for a personalized outreach body and derives
// the subject from the job snapshot.
func (w *Workflow) generateMessage(ctx context.Context, st *state) {
	job := decodeJobSnapshot(st.candidate.JobDescription)

	title := job.Title
	if title == "" {
		title = "Opportunity"
	}
	company := job.Company
	if company == "" {
		company = "Our Company"
	}
	st.subject = fmt.Sprintf("Exciting %s at %s", title, company)

	body, err := w.llm.Generate(ctx, buildOutreachPrompt(st.candidate, job, w.recruiterName))
	if err != nil {
		st.err = fmt.Errorf("failed to generate outreach message for %s: %w", st.candidate.Name, err)
		return
	}
	st.body = strings.TrimSpace(body)
}

// createDraft creates the Gmail draft and records its id on the candidate.
func (w *Workflow) createDraft(ctx context.Context, st *state) {
	if st.err != nil {
		return
	}

	draftID, err := w.email.CreateDraft(ctx, st.candidate.Email, st.subject, st.body)
	if err != nil {
		st.err = fmt.Errorf("failed to create draft for %s: %w", st.candidate.Name, err)
		return
	}
	st.draftID = draftID

	if err := w.store.Update(ctx, st.candidate.ID, store.CandidateUpdate{
		EmailDraftID: store.StringPtr(draftID),
	}); err != nil {
		st.err = fmt.Errorf("failed to record draft id for %s: %w", st.candidate.Name, err)
	}
}

// notifyRecruiter posts the approval request. Notification failures never
// fail the run; the draft already exists and can be approved from the CLI.
func (w *Workflow) notifyRecruiter(ctx context.Context, st *state) {
	if st.err != nil {
		return
	}

	err := w.notifier.ApprovalRequest(ctx,
		st.candidate.Name, st.candidate.Email, st.body, st.candidate.ID.String())
	if err != nil {
		w.log.Warn("failed to send approval notification",
			zap.String("candidate", st.candidate.Name), zap.Error(err))
	}
}

// decodeJobSnapshot recovers the job description stored on the candidate.
// A corrupt snapshot degrades to generic subject and prompt fields.
func decodeJobSnapshot(snapshot string) *types.JobDescription {
	var job types.JobDescription
	if err := json.Unmarshal([]byte(snapshot), &job); err != nil {
		return &types.JobDescription{}
	}
	return &job
}

// buildOutreachPrompt highlights the candidate facts the message should lean
// on: a handful of skills, a couple of projects, and their experience.
func buildOutreachPrompt(candidate *types.Candidate, job *types.JobDescription, recruiterName string) string {
	skills := snapshotSkills(candidate.ResumeData, 5)
	projects := snapshotProjects(candidate.ResumeData, 3)
	years := snapshotYears(candidate.ResumeData)

	var b strings.Builder
	b.WriteString("You are a friendly technical recruiter. Write a short, personalized outreach email.\n\n")
	fmt.Fprintf(&b, "Candidate: %s\n", candidate.Name)
	if years > 0 {
		fmt.Fprintf(&b, "Years of experience: %g\n", years)
	}
	if len(skills) > 0 {
		fmt.Fprintf(&b, "Key skills: %s\n", strings.Join(skills, ", "))
	}
	if len(projects) > 0 {
		fmt.Fprintf(&b, "Notable projects: %s\n", strings.Join(projects, "; "))
	}
	fmt.Fprintf(&b, "\nRole: %s at %s\n", job.Title, job.Company)
	if job.Description != "" {
		fmt.Fprintf(&b, "Role description: %s\n", job.Description)
	}
	if len(job.RequiredSkills) > 0 {
		fmt.Fprintf(&b, "Role requirements: %s\n", strings.Join(job.RequiredSkills, ", "))
	}
	fmt.Fprintf(&b, `
Guidelines:
- 3 short paragraphs at most
- Reference the candidate's actual skills and projects, not generic praise
- Invite them to reply if they are interested in hearing more
- Sign off as %s
- Respond with ONLY the email body, no subject line
`, recruiterName)
	return b.String()
}

// snapshotSkills pulls up to max technical skills from the resume snapshot.
func snapshotSkills(snapshot map[string]any, max int) []string {
	skills, ok := snapshot["skills"].(map[string]any)
	if !ok {
		return nil
	}
	technical, ok := skills["technical_skills"].([]any)
	if !ok {
		return nil
	}

	var out []string
	for _, s := range technical {
		if str, ok := s.(string); ok && str != "" {
			out = append(out, str)
		}
		if len(out) == max {
			break
		}
	}
	return out
}

// snapshotProjects pulls up to max project names across the work history.
func snapshotProjects(snapshot map[string]any, max int) []string {
	experience, ok := snapshot["experience"].([]any)
	if !ok {
		return nil
	}

	var out []string
	for _, e := range experience {
		entry, ok := e.(map[string]any)
		if !ok {
			continue
		}
		projects, ok := entry["projects"].([]any)
		if !ok {
			continue
		}
		// At most two projects per position keeps the prompt focused.
		for i, p := range projects {
			if i == 2 {
				break
			}
			if str, ok := p.(string); ok && str != "" {
				out = append(out, str)
			}
			if len(out) == max {
				return out
			}
		}
	}
	return out
}

func snapshotYears(snapshot map[string]any) float64 {
	years, _ := snapshot["total_years_experience"].(float64)
	return years
}
