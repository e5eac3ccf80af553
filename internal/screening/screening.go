// Package screening implements the resume screening workflow: parse every
// resume in a folder, score each candidate against the job description, and
// persist the ones that clear the fit threshold.
package screening

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/jonathan/talent-scout/internal/parsing"
	"github.com/jonathan/talent-scout/internal/scoring"
	"github.com/jonathan/talent-scout/internal/store"
	"github.com/jonathan/talent-scout/internal/types"
	"github.com/jonathan/talent-scout/internal/workflow"
)

// ResumeParser is the slice of the parser the workflow needs.
type ResumeParser interface {
	Parse(ctx context.Context, path string) (*types.ResumeData, error)
}

// Workflow screens a folder of resumes against one job description.
type Workflow struct {
	parser    ResumeParser
	store     store.CandidateStore
	threshold float64
	log       *zap.Logger
	graph     *workflow.Graph[*state]
}

// state is the mutable value threaded through the screening graph.
type state struct {
	resumeDir string
	job       *types.JobDescription

	resumes   []*types.ResumeData
	qualified []*types.Candidate
	err       error
}

// New builds the screening workflow. Candidates scoring at or above
// threshold are persisted with status screened.
func New(parser ResumeParser, candidates store.CandidateStore, threshold float64, log *zap.Logger) *Workflow {
	w := &Workflow{
		parser:    parser,
		store:     candidates,
		threshold: threshold,
		log:       log,
	}

	g := workflow.New[*state]()
	g.AddNode("parse_resumes", w.parseResumes)
	g.AddNode("compute_scores", w.computeScores)
	g.AddNode("persist_candidates", w.persistCandidates)
	g.SetEntryPoint("parse_resumes")
	g.AddEdge("parse_resumes", "compute_scores")
	g.AddEdge("compute_scores", "persist_candidates")
	g.AddEdge("persist_candidates", workflow.End)
	w.graph = g

	return w
}

// Run screens every supported resume under resumeDir and returns the
// qualified candidates in scoring order.
func (w *Workflow) Run(ctx context.Context, resumeDir string, job *types.JobDescription) ([]*types.Candidate, error) {
	st := &state{resumeDir: resumeDir, job: job}
	if err := w.graph.Run(ctx, st); err != nil {
		return nil, err
	}
	if st.err != nil {
		return nil, st.err
	}
	return st.qualified, nil
}

// parseResumes parses every supported file in the folder. A file that fails
// to parse is logged and skipped; only an unreadable folder is fatal.
func (w *Workflow) parseResumes(ctx context.Context, st *state) {
	entries, err := os.ReadDir(st.resumeDir)
	if err != nil {
		st.err = fmt.Errorf("failed to read resume folder %s: %w", st.resumeDir, err)
		return
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		path := filepath.Join(st.resumeDir, entry.Name())
		if !parsing.IsSupportedResumeFile(path) {
			continue
		}

		resume, err := w.parser.Parse(ctx, path)
		if err != nil {
			w.log.Warn("skipping resume that failed to parse",
				zap.String("path", path), zap.Error(err))
			continue
		}
		st.resumes = append(st.resumes, resume)
	}

	w.log.Info("parsed resumes",
		zap.String("folder", st.resumeDir), zap.Int("count", len(st.resumes)))
}

// computeScores scores each parsed resume and keeps the ones at or above
// the threshold as candidates.
func (w *Workflow) computeScores(ctx context.Context, st *state) {
	if st.err != nil {
		return
	}

	jobJSON, err := json.Marshal(st.job)
	if err != nil {
		st.err = fmt.Errorf("failed to serialize job description: %w", err)
		return
	}

	for _, resume := range st.resumes {
		score := scoring.FitScore(resume, st.job)
		w.log.Info("scored candidate",
			zap.String("name", resume.Name), zap.Float64("score", score))

		if score < w.threshold {
			continue
		}
		st.qualified = append(st.qualified, &types.Candidate{
			Name:           resume.Name,
			Email:          resume.Email,
			Phone:          resume.Phone,
			ResumeData:     resume.Snapshot(),
			FitScore:       score,
			JobDescription: string(jobJSON),
			Status:         types.StatusScreened,
		})
	}
}

// persistCandidates saves every qualified candidate. A save failure is fatal
// so no run ends with a partially recorded cohort going unnoticed.
func (w *Workflow) persistCandidates(ctx context.Context, st *state) {
	if st.err != nil {
		return
	}

	for i, candidate := range st.qualified {
		saved, err := w.store.Save(ctx, candidate)
		if err != nil {
			st.err = fmt.Errorf("failed to save candidate %s: %w", candidate.Name, err)
			return
		}
		st.qualified[i] = saved
	}

	w.log.Info("persisted qualified candidates", zap.Int("count", len(st.qualified)))
}
