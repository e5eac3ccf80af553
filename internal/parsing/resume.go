// Package parsing turns resume files into structured ResumeData: docconv
// extracts the raw text, the LLM extracts structure, and a JSON Schema
// guards the result before decoding.
package parsing

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/xeipuuv/gojsonschema"
	"go.uber.org/zap"

	"github.com/jonathan/talent-scout/internal/llm"
	"github.com/jonathan/talent-scout/internal/types"
)

// Extractor is the slice of the LLM client the parser needs.
type Extractor interface {
	Extract(ctx context.Context, prompt string) (string, error)
}

// Parser parses resume files into structured data.
type Parser struct {
	llm Extractor
	log *zap.Logger
}

// NewParser creates a resume parser backed by the given LLM extractor.
func NewParser(extractor Extractor, log *zap.Logger) *Parser {
	return &Parser{llm: extractor, log: log}
}

// Parse reads the resume file at path and returns its structured data.
func (p *Parser) Parse(ctx context.Context, path string) (*types.ResumeData, error) {
	text, err := ExtractText(path)
	if err != nil {
		return nil, err
	}
	if text == "" {
		return nil, &ExtractionError{Path: path, Message: "no text content"}
	}
	p.log.Debug("extracted resume text", zap.String("path", path), zap.Int("chars", len(text)))

	responseText, err := p.llm.Extract(ctx, buildExtractionPrompt(text))
	if err != nil {
		return nil, &APICallError{Message: "resume extraction failed", Cause: err}
	}

	resume, err := decodeResumeData(responseText)
	if err != nil {
		return nil, err
	}

	p.log.Info("parsed resume", zap.String("path", path), zap.String("name", resume.Name))
	return resume, nil
}

// decodeResumeData validates the extraction JSON against the schema and
// decodes it into ResumeData.
func decodeResumeData(jsonText string) (*types.ResumeData, error) {
	jsonText = llm.CleanJSONBlock(jsonText)

	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(resumeDataSchema),
		gojsonschema.NewStringLoader(jsonText),
	)
	if err != nil {
		return nil, &ParseError{Message: "response is not valid JSON", Cause: err}
	}
	if !result.Valid() {
		first := result.Errors()[0]
		return nil, &ValidationError{Field: first.Field(), Message: first.Description()}
	}

	var resume types.ResumeData
	if err := json.Unmarshal([]byte(jsonText), &resume); err != nil {
		return nil, &ParseError{Message: "failed to decode resume data", Cause: err}
	}
	return &resume, nil
}

// buildExtractionPrompt constructs the structured-extraction prompt.
func buildExtractionPrompt(resumeText string) string {
	return fmt.Sprintf(`You are an expert resume parser. Extract structured information from the resume text below.

Be thorough and accurate. Extract:
- Full name
- Contact information (email, phone)
- Technical and soft skills, and certifications
- Work experience with companies, roles, durations, and notable projects
- Education details
- Professional summary
- Estimated total years of professional experience

Respond with ONLY a JSON object of this shape:
{
  "name": string,
  "email": string,
  "phone": string,
  "skills": {
    "technical_skills": [string],
    "soft_skills": [string],
    "certifications": [string]
  },
  "experience": [
    {"company": string, "role": string, "duration": string, "description": string, "projects": [string]}
  ],
  "education": [
    {"institution": string, "degree": string, "field": string, "year": string}
  ],
  "summary": string,
  "total_years_experience": number
}

Resume text:

%s`, resumeText)
}
