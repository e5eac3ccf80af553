package orchestrator

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jonathan/talent-scout/internal/google"
	"github.com/jonathan/talent-scout/internal/outreach"
	"github.com/jonathan/talent-scout/internal/scheduling"
	"github.com/jonathan/talent-scout/internal/store"
	"github.com/jonathan/talent-scout/internal/types"
)

type fakeScreener struct {
	qualified []*types.Candidate
	err       error
}

func (f *fakeScreener) Run(context.Context, string, *types.JobDescription) ([]*types.Candidate, error) {
	return f.qualified, f.err
}

type fakeDrafter struct {
	failFor map[string]bool
	drafted []string
}

func (f *fakeDrafter) Run(_ context.Context, candidate *types.Candidate) (*outreach.Result, error) {
	if f.failFor[candidate.Name] {
		return nil, errors.New("draft failed")
	}
	f.drafted = append(f.drafted, candidate.Name)
	return &outreach.Result{DraftID: "draft-" + candidate.Name}, nil
}

type fakeRouter struct {
	failFor map[string]bool
	routed  []string
}

func (f *fakeRouter) Run(_ context.Context, sender, _ string) (scheduling.Intent, error) {
	if f.failFor[sender] {
		return scheduling.IntentUnknown, errors.New("routing failed")
	}
	f.routed = append(f.routed, sender)
	return scheduling.IntentInterested, nil
}

type fakeInbox struct {
	messages []google.Message
	err      error
}

func (f *fakeInbox) ListRecentInbox(context.Context, int) ([]google.Message, error) {
	return f.messages, f.err
}

func TestRunPipelineDraftsEachQualifiedCandidate(t *testing.T) {
	screener := &fakeScreener{qualified: []*types.Candidate{
		{Name: "Alice"}, {Name: "Bob"},
	}}
	drafter := &fakeDrafter{}

	o := New(screener, drafter, nil, nil, store.NewMemory(), zap.NewNop())
	result, err := o.RunPipeline(context.Background(), "resumes", &types.JobDescription{}, true)

	require.NoError(t, err)
	assert.Len(t, result.Qualified, 2)
	require.Len(t, result.Drafts, 2)
	assert.Equal(t, "Alice", result.Drafts[0].CandidateName)
	assert.Equal(t, "draft-Alice", result.Drafts[0].DraftID)
}

func TestRunPipelineWithoutAutoDraft(t *testing.T) {
	screener := &fakeScreener{qualified: []*types.Candidate{{Name: "Alice"}}}

	o := New(screener, nil, nil, nil, store.NewMemory(), zap.NewNop())
	result, err := o.RunPipeline(context.Background(), "resumes", &types.JobDescription{}, false)

	require.NoError(t, err)
	assert.Len(t, result.Qualified, 1)
	assert.Empty(t, result.Drafts)
}

func TestRunPipelineScreeningFailureAborts(t *testing.T) {
	o := New(&fakeScreener{err: errors.New("folder missing")}, &fakeDrafter{}, nil, nil, store.NewMemory(), zap.NewNop())
	_, err := o.RunPipeline(context.Background(), "resumes", &types.JobDescription{}, true)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "screening failed")
}

func TestRunPipelineContinuesPastDraftFailures(t *testing.T) {
	screener := &fakeScreener{qualified: []*types.Candidate{
		{Name: "Alice"}, {Name: "Bob"}, {Name: "Carol"},
	}}
	drafter := &fakeDrafter{failFor: map[string]bool{"Bob": true}}

	o := New(screener, drafter, nil, nil, store.NewMemory(), zap.NewNop())
	result, err := o.RunPipeline(context.Background(), "resumes", &types.JobDescription{}, true)

	require.NoError(t, err)
	assert.Equal(t, []string{"Alice", "Carol"}, drafter.drafted)
	assert.Len(t, result.Drafts, 2)
}

func saveCandidate(t *testing.T, candidates store.CandidateStore, email string, status types.CandidateStatus) {
	t.Helper()
	_, err := candidates.Save(context.Background(), &types.Candidate{
		Name:   "Candidate",
		Email:  email,
		Status: status,
	})
	require.NoError(t, err)
}

func TestScanInboxRoutesOnlyActiveCandidates(t *testing.T) {
	candidates := store.NewMemory()
	saveCandidate(t, candidates, "alice@example.com", types.StatusContacted)
	saveCandidate(t, candidates, "bob@example.com", types.StatusInterested)
	saveCandidate(t, candidates, "carol@example.com", types.StatusRejected)

	inbox := &fakeInbox{messages: []google.Message{
		{Sender: "alice@example.com", Body: "interested"},
		{Sender: "bob@example.com", Body: "option 2"},
		{Sender: "carol@example.com", Body: "please stop"},
		{Sender: "newsletter@example.com", Body: "weekly digest"},
		{Sender: "", Body: "no sender header"},
	}}
	router := &fakeRouter{}

	o := New(nil, nil, router, inbox, candidates, zap.NewNop())
	require.NoError(t, o.ScanInbox(context.Background()))

	assert.ElementsMatch(t, []string{"alice@example.com", "bob@example.com"}, router.routed)
}

func TestScanInboxContinuesPastRoutingFailures(t *testing.T) {
	candidates := store.NewMemory()
	saveCandidate(t, candidates, "alice@example.com", types.StatusContacted)
	saveCandidate(t, candidates, "bob@example.com", types.StatusContacted)

	inbox := &fakeInbox{messages: []google.Message{
		{Sender: "alice@example.com", Body: "garbled"},
		{Sender: "bob@example.com", Body: "interested"},
	}}
	router := &fakeRouter{failFor: map[string]bool{"alice@example.com": true}}

	o := New(nil, nil, router, inbox, candidates, zap.NewNop())
	require.NoError(t, o.ScanInbox(context.Background()))

	assert.Equal(t, []string{"bob@example.com"}, router.routed)
}

func TestScanInboxListFailure(t *testing.T) {
	o := New(nil, nil, &fakeRouter{}, &fakeInbox{err: errors.New("gmail unavailable")}, store.NewMemory(), zap.NewNop())
	err := o.ScanInbox(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "inbox scan failed")
}
