package screening

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jonathan/talent-scout/internal/store"
	"github.com/jonathan/talent-scout/internal/types"
)

// fakeParser maps file base names to canned resumes or errors.
type fakeParser struct {
	resumes map[string]*types.ResumeData
	fail    map[string]bool
}

func (f *fakeParser) Parse(_ context.Context, path string) (*types.ResumeData, error) {
	base := filepath.Base(path)
	if f.fail[base] {
		return nil, errors.New("unreadable resume")
	}
	resume, ok := f.resumes[base]
	if !ok {
		return nil, errors.New("unexpected file " + base)
	}
	return resume, nil
}

func writeResumeFiles(t *testing.T, names ...string) string {
	t.Helper()
	dir := t.TempDir()
	for _, name := range names {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("resume text"), 0644))
	}
	return dir
}

func strongResume(name string) *types.ResumeData {
	return &types.ResumeData{
		Name:  name,
		Email: name + "@example.com",
		Skills: types.Skills{
			TechnicalSkills: []string{"Python", "AWS", "Docker", "Kubernetes", "PostgreSQL"},
		},
		Experience: []types.Experience{
			{Company: "TechCorp", Role: "Senior Software Engineer", Description: "Built scalable backend services in Python on AWS"},
		},
	}
}

func weakResume(name string) *types.ResumeData {
	return &types.ResumeData{
		Name: name,
		Skills: types.Skills{
			TechnicalSkills: []string{"Photoshop", "Illustrator"},
		},
	}
}

func screeningJob() *types.JobDescription {
	return &types.JobDescription{
		Title:          "Senior Software Engineer",
		Company:        "TechCorp",
		Description:    "Build scalable backend services",
		RequiredSkills: []string{"Python", "AWS", "Docker", "Kubernetes", "PostgreSQL"},
	}
}

func TestRunPersistsQualifiedCandidates(t *testing.T) {
	dir := writeResumeFiles(t, "strong.txt", "weak.txt")
	parser := &fakeParser{resumes: map[string]*types.ResumeData{
		"strong.txt": strongResume("Alice"),
		"weak.txt":   weakResume("Bob"),
	}}
	candidates := store.NewMemory()

	w := New(parser, candidates, 50, zap.NewNop())
	qualified, err := w.Run(context.Background(), dir, screeningJob())

	require.NoError(t, err)
	require.Len(t, qualified, 1)
	assert.Equal(t, "Alice", qualified[0].Name)
	assert.Equal(t, types.StatusScreened, qualified[0].Status)
	assert.NotZero(t, qualified[0].ID)
	assert.GreaterOrEqual(t, qualified[0].FitScore, 50.0)
	assert.NotEmpty(t, qualified[0].JobDescription)
	assert.Equal(t, "Alice", qualified[0].ResumeData["name"])

	stored, err := candidates.ListByStatus(context.Background(), types.StatusScreened)
	require.NoError(t, err)
	assert.Len(t, stored, 1)
}

func TestRunSkipsResumesThatFailToParse(t *testing.T) {
	dir := writeResumeFiles(t, "good.txt", "bad.txt")
	parser := &fakeParser{
		resumes: map[string]*types.ResumeData{"good.txt": strongResume("Alice")},
		fail:    map[string]bool{"bad.txt": true},
	}

	w := New(parser, store.NewMemory(), 50, zap.NewNop())
	qualified, err := w.Run(context.Background(), dir, screeningJob())

	require.NoError(t, err)
	require.Len(t, qualified, 1)
	assert.Equal(t, "Alice", qualified[0].Name)
}

func TestRunIgnoresUnsupportedFiles(t *testing.T) {
	dir := writeResumeFiles(t, "resume.txt", "notes.json", "photo.png")
	parser := &fakeParser{resumes: map[string]*types.ResumeData{
		"resume.txt": strongResume("Alice"),
	}}

	w := New(parser, store.NewMemory(), 50, zap.NewNop())
	qualified, err := w.Run(context.Background(), dir, screeningJob())

	require.NoError(t, err)
	assert.Len(t, qualified, 1)
}

func TestRunMissingFolderFails(t *testing.T) {
	w := New(&fakeParser{}, store.NewMemory(), 50, zap.NewNop())
	_, err := w.Run(context.Background(), filepath.Join(t.TempDir(), "missing"), screeningJob())

	assert.Error(t, err)
}

func TestRunThresholdFiltersEveryone(t *testing.T) {
	dir := writeResumeFiles(t, "weak.txt")
	parser := &fakeParser{resumes: map[string]*types.ResumeData{
		"weak.txt": weakResume("Bob"),
	}}
	candidates := store.NewMemory()

	w := New(parser, candidates, 75, zap.NewNop())
	qualified, err := w.Run(context.Background(), dir, screeningJob())

	require.NoError(t, err)
	assert.Empty(t, qualified)

	stored, err := candidates.ListByStatus(context.Background(), types.StatusScreened)
	require.NoError(t, err)
	assert.Empty(t, stored)
}

type failingStore struct {
	store.CandidateStore
}

func (f *failingStore) Save(context.Context, *types.Candidate) (*types.Candidate, error) {
	return nil, errors.New("connection lost")
}

func TestRunPersistFailureIsFatal(t *testing.T) {
	dir := writeResumeFiles(t, "strong.txt")
	parser := &fakeParser{resumes: map[string]*types.ResumeData{
		"strong.txt": strongResume("Alice"),
	}}

	w := New(parser, &failingStore{}, 50, zap.NewNop())
	_, err := w.Run(context.Background(), dir, screeningJob())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to save candidate")
}
