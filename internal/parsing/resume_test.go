package parsing

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const validExtraction = `{
	"name": "Alice Smith",
	"email": "alice@example.com",
	"skills": {
		"technical_skills": ["Python", "AWS"],
		"soft_skills": ["Communication"],
		"certifications": []
	},
	"experience": [
		{"company": "TechCorp", "role": "Engineer", "duration": "3 years", "projects": ["billing revamp"]}
	],
	"education": [
		{"institution": "State University", "degree": "BS", "field": "Computer Science"}
	],
	"summary": "Backend engineer.",
	"total_years_experience": 6
}`

type stubExtractor struct {
	response string
	err      error
	prompt   string
}

func (s *stubExtractor) Extract(_ context.Context, prompt string) (string, error) {
	s.prompt = prompt
	return s.response, s.err
}

func TestIsSupportedResumeFile(t *testing.T) {
	assert.True(t, IsSupportedResumeFile("resume.pdf"))
	assert.True(t, IsSupportedResumeFile("Resume.DOCX"))
	assert.True(t, IsSupportedResumeFile("resume.txt"))
	assert.False(t, IsSupportedResumeFile("resume.json"))
	assert.False(t, IsSupportedResumeFile("resume"))
}

func TestExtractTextPlainFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "resume.txt")
	require.NoError(t, os.WriteFile(path, []byte("  Alice Smith\nBackend engineer.\n"), 0644))

	text, err := ExtractText(path)
	require.NoError(t, err)
	assert.Equal(t, "Alice Smith\nBackend engineer.", text)
}

func TestExtractTextUnsupportedType(t *testing.T) {
	_, err := ExtractText("resume.json")

	var extractionErr *ExtractionError
	require.ErrorAs(t, err, &extractionErr)
}

func TestParse(t *testing.T) {
	path := filepath.Join(t.TempDir(), "resume.txt")
	require.NoError(t, os.WriteFile(path, []byte("Alice Smith, backend engineer"), 0644))

	extractor := &stubExtractor{response: validExtraction}
	parser := NewParser(extractor, zap.NewNop())

	resume, err := parser.Parse(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "Alice Smith", resume.Name)
	assert.Equal(t, "alice@example.com", resume.Email)
	assert.Equal(t, []string{"Python", "AWS"}, resume.Skills.TechnicalSkills)
	assert.Equal(t, 6.0, resume.TotalYearsExperience)

	// The resume text reaches the extraction prompt.
	assert.Contains(t, extractor.prompt, "Alice Smith, backend engineer")
}

func TestParseEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "resume.txt")
	require.NoError(t, os.WriteFile(path, []byte("   \n"), 0644))

	parser := NewParser(&stubExtractor{response: validExtraction}, zap.NewNop())
	_, err := parser.Parse(context.Background(), path)

	var extractionErr *ExtractionError
	require.ErrorAs(t, err, &extractionErr)
}

func TestParseLLMFailure(t *testing.T) {
	path := filepath.Join(t.TempDir(), "resume.txt")
	require.NoError(t, os.WriteFile(path, []byte("resume text"), 0644))

	parser := NewParser(&stubExtractor{err: errors.New("quota exceeded")}, zap.NewNop())
	_, err := parser.Parse(context.Background(), path)

	var apiErr *APICallError
	require.ErrorAs(t, err, &apiErr)
}

func TestDecodeResumeDataStripsFences(t *testing.T) {
	resume, err := decodeResumeData("```json\n" + validExtraction + "\n```")

	require.NoError(t, err)
	assert.Equal(t, "Alice Smith", resume.Name)
}

func TestDecodeResumeDataInvalidJSON(t *testing.T) {
	_, err := decodeResumeData("this is not json")

	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
}

func TestDecodeResumeDataSchemaViolation(t *testing.T) {
	// Missing the required skills object.
	_, err := decodeResumeData(`{"name": "Alice Smith"}`)

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
}
