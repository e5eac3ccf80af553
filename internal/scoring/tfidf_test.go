package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/talent-scout/internal/types"
)

func pythonResume() *types.ResumeData {
	return &types.ResumeData{
		Name: "Jane Doe",
		Skills: types.Skills{
			TechnicalSkills: []string{"Python", "AWS", "Docker"},
		},
		Experience: []types.Experience{
			{Company: "Acme", Role: "Backend Engineer", Description: "Built Python services on AWS"},
		},
		TotalYearsExperience: 6,
	}
}

func engineeringJob() *types.JobDescription {
	return &types.JobDescription{
		Title:          "Senior Software Engineer",
		Company:        "TechCorp",
		Description:    "Build scalable backend services",
		RequiredSkills: []string{"Python", "AWS"},
	}
}

func TestFitScoreDisjointVocabularies(t *testing.T) {
	resume := &types.ResumeData{
		Skills: types.Skills{TechnicalSkills: []string{"Photoshop", "Illustrator"}},
	}
	job := &types.JobDescription{
		Title:       "Kernel Developer",
		Company:     "Chipmakers",
		Description: "Embedded firmware debugging",
	}

	assert.Equal(t, 0.0, FitScore(resume, job))
}

func TestFitScoreIdenticalText(t *testing.T) {
	text := "python aws docker kubernetes backend services"
	resume := &types.ResumeData{Summary: text}
	job := &types.JobDescription{Description: text}

	assert.InDelta(t, 100.0, FitScore(resume, job), 0.01)
}

func TestFitScoreEmptyDocuments(t *testing.T) {
	assert.Equal(t, 0.0, FitScore(&types.ResumeData{}, &types.JobDescription{}))
	assert.Equal(t, 0.0, FitScore(pythonResume(), &types.JobDescription{}))
	assert.Equal(t, 0.0, FitScore(&types.ResumeData{}, engineeringJob()))
}

func TestFitScoreRequiredSkillsOutweighPreferred(t *testing.T) {
	resume := &types.ResumeData{
		Skills: types.Skills{TechnicalSkills: []string{"Python"}},
	}
	asRequired := &types.JobDescription{
		Title:          "Engineer",
		Company:        "TechCorp",
		Description:    "Ship software",
		RequiredSkills: []string{"Python"},
	}
	asPreferred := &types.JobDescription{
		Title:           "Engineer",
		Company:         "TechCorp",
		Description:     "Ship software",
		PreferredSkills: []string{"Python"},
	}

	assert.Greater(t, FitScore(resume, asRequired), FitScore(resume, asPreferred))
}

func TestFitScoreMatchingSkillsBeatUnrelated(t *testing.T) {
	job := engineeringJob()

	matching := FitScore(pythonResume(), job)
	unrelated := FitScore(&types.ResumeData{
		Skills: types.Skills{TechnicalSkills: []string{"Photoshop", "Illustrator", "InDesign"}},
		Experience: []types.Experience{
			{Company: "Studio", Role: "Graphic Designer", Description: "Designed print campaigns"},
		},
	}, job)

	assert.Greater(t, matching, unrelated)
	assert.Greater(t, matching, 10.0)
}

func TestFitScoreSkillOrderInvariant(t *testing.T) {
	job := engineeringJob()

	a := pythonResume()
	b := pythonResume()
	b.Skills.TechnicalSkills = []string{"Docker", "Python", "AWS"}

	assert.InDelta(t, FitScore(a, job), FitScore(b, job), 0.01)
}

func TestTokenizeDropsShortTokensAndStopWords(t *testing.T) {
	tokens := tokenize("The 5 quick engineers of C built a system platform")

	// "the", "of", "a" are stop words, and so is "system" (it is on the
	// Glasgow list); "5" and "c" are single characters.
	assert.Equal(t, []string{"quick", "engineers", "built", "platform"}, tokens)
}

func TestTermsBuildsBigramsAfterStopWordRemoval(t *testing.T) {
	got := terms("python and aws")

	// The bigram spans the removed stop word.
	assert.Contains(t, got, "python aws")
	assert.NotContains(t, got, "python and")
}
