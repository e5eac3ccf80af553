package outreach

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jonathan/talent-scout/internal/store"
	"github.com/jonathan/talent-scout/internal/types"
)

type fakeGenerator struct {
	response string
	err      error
	prompts  []string
}

func (f *fakeGenerator) Generate(_ context.Context, prompt string) (string, error) {
	f.prompts = append(f.prompts, prompt)
	return f.response, f.err
}

type fakeEmail struct {
	draftID     string
	createErr   error
	sendErr     error
	created     []string
	sentDrafts  []string
	lastSubject string
	lastBody    string
}

func (f *fakeEmail) CreateDraft(_ context.Context, to, subject, body string) (string, error) {
	if f.createErr != nil {
		return "", f.createErr
	}
	f.created = append(f.created, to)
	f.lastSubject = subject
	f.lastBody = body
	return f.draftID, nil
}

func (f *fakeEmail) SendDraft(_ context.Context, draftID string) error {
	if f.sendErr != nil {
		return f.sendErr
	}
	f.sentDrafts = append(f.sentDrafts, draftID)
	return nil
}

type fakeNotifier struct {
	err       error
	notices   []string
	approvals []string
}

func (f *fakeNotifier) Notify(_ context.Context, title, _ string) error {
	f.notices = append(f.notices, title)
	return f.err
}

func (f *fakeNotifier) ApprovalRequest(_ context.Context, name, _, _, _ string) error {
	f.approvals = append(f.approvals, name)
	return f.err
}

func jobSnapshot(t *testing.T) string {
	t.Helper()
	data, err := json.Marshal(&types.JobDescription{
		Title:          "Senior Software Engineer",
		Company:        "TechCorp",
		Description:    "Build scalable backend services",
		RequiredSkills: []string{"Python", "AWS"},
	})
	require.NoError(t, err)
	return string(data)
}

func screenedCandidate(t *testing.T, candidates store.CandidateStore) *types.Candidate {
	t.Helper()
	saved, err := candidates.Save(context.Background(), &types.Candidate{
		Name:  "Alice",
		Email: "alice@example.com",
		ResumeData: map[string]any{
			"skills": map[string]any{
				"technical_skills": []any{"Python", "AWS", "Docker"},
			},
			"experience": []any{
				map[string]any{"projects": []any{"payment platform", "search rebuild"}},
			},
			"total_years_experience": 6.0,
		},
		JobDescription: jobSnapshot(t),
		Status:         types.StatusScreened,
	})
	require.NoError(t, err)
	return saved
}

func TestRunCreatesDraftAndNotifies(t *testing.T) {
	candidates := store.NewMemory()
	candidate := screenedCandidate(t, candidates)
	email := &fakeEmail{draftID: "draft-123"}
	notifier := &fakeNotifier{}
	llm := &fakeGenerator{response: "Hi Alice, we would love to talk."}

	w := New(llm, email, notifier, candidates, "Jordan", zap.NewNop())
	result, err := w.Run(context.Background(), candidate)

	require.NoError(t, err)
	assert.Equal(t, "draft-123", result.DraftID)
	assert.Equal(t, "Exciting Senior Software Engineer at TechCorp", result.Subject)
	assert.Equal(t, "Hi Alice, we would love to talk.", result.Body)
	assert.Equal(t, []string{"alice@example.com"}, email.created)
	assert.Equal(t, []string{"Alice"}, notifier.approvals)

	// The prompt leans on the candidate's actual profile.
	require.Len(t, llm.prompts, 1)
	assert.Contains(t, llm.prompts[0], "Python")
	assert.Contains(t, llm.prompts[0], "payment platform")
	assert.Contains(t, llm.prompts[0], "Jordan")

	stored, err := candidates.Get(context.Background(), candidate.ID)
	require.NoError(t, err)
	assert.Equal(t, "draft-123", stored.EmailDraftID)
}

func TestRunSubjectFallbacks(t *testing.T) {
	candidates := store.NewMemory()
	saved, err := candidates.Save(context.Background(), &types.Candidate{
		Name:           "Alice",
		Email:          "alice@example.com",
		JobDescription: "not json",
		Status:         types.StatusScreened,
	})
	require.NoError(t, err)

	email := &fakeEmail{draftID: "draft-1"}
	w := New(&fakeGenerator{response: "body"}, email, &fakeNotifier{}, candidates, "Jordan", zap.NewNop())
	result, err := w.Run(context.Background(), saved)

	require.NoError(t, err)
	assert.Equal(t, "Exciting Opportunity at Our Company", result.Subject)
}

func TestRunRequiresEmailAddress(t *testing.T) {
	w := New(&fakeGenerator{}, &fakeEmail{}, &fakeNotifier{}, store.NewMemory(), "Jordan", zap.NewNop())
	_, err := w.Run(context.Background(), &types.Candidate{Name: "Bob"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "no email address")
}

func TestRunNotificationFailureIsNotFatal(t *testing.T) {
	candidates := store.NewMemory()
	candidate := screenedCandidate(t, candidates)
	email := &fakeEmail{draftID: "draft-9"}
	notifier := &fakeNotifier{err: errors.New("slack down")}

	w := New(&fakeGenerator{response: "body"}, email, notifier, candidates, "Jordan", zap.NewNop())
	result, err := w.Run(context.Background(), candidate)

	require.NoError(t, err)
	assert.Equal(t, "draft-9", result.DraftID)
}

func TestRunDraftFailure(t *testing.T) {
	candidates := store.NewMemory()
	candidate := screenedCandidate(t, candidates)
	email := &fakeEmail{createErr: errors.New("gmail unavailable")}
	notifier := &fakeNotifier{}

	w := New(&fakeGenerator{response: "body"}, email, notifier, candidates, "Jordan", zap.NewNop())
	_, err := w.Run(context.Background(), candidate)

	require.Error(t, err)
	assert.Empty(t, notifier.approvals)
}

func TestApproveAndSend(t *testing.T) {
	candidates := store.NewMemory()
	candidate := screenedCandidate(t, candidates)
	require.NoError(t, candidates.Update(context.Background(), candidate.ID, store.CandidateUpdate{
		EmailDraftID: store.StringPtr("draft-42"),
	}))

	email := &fakeEmail{}
	notifier := &fakeNotifier{}
	w := New(&fakeGenerator{}, email, notifier, candidates, "Jordan", zap.NewNop())

	require.NoError(t, w.ApproveAndSend(context.Background(), candidate.ID))
	assert.Equal(t, []string{"draft-42"}, email.sentDrafts)

	stored, err := candidates.Get(context.Background(), candidate.ID)
	require.NoError(t, err)
	assert.Equal(t, types.StatusContacted, stored.Status)
	assert.True(t, stored.EmailSent)
}

func TestApproveAndSendWithoutDraft(t *testing.T) {
	candidates := store.NewMemory()
	candidate := screenedCandidate(t, candidates)

	w := New(&fakeGenerator{}, &fakeEmail{}, &fakeNotifier{}, candidates, "Jordan", zap.NewNop())
	err := w.ApproveAndSend(context.Background(), candidate.ID)

	assert.ErrorIs(t, err, ErrNoDraft)
}

func TestApproveAndSendUnknownCandidate(t *testing.T) {
	w := New(&fakeGenerator{}, &fakeEmail{}, &fakeNotifier{}, store.NewMemory(), "Jordan", zap.NewNop())
	err := w.ApproveAndSend(context.Background(), uuid.New())

	assert.ErrorIs(t, err, store.ErrNotFound)
}
