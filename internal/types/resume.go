package types

import "encoding/json"

// Skills groups the skill lists extracted from a resume.
type Skills struct {
	TechnicalSkills []string `json:"technical_skills"`
	SoftSkills      []string `json:"soft_skills"`
	Certifications  []string `json:"certifications"`
}

// Experience is one work-history entry from a resume.
type Experience struct {
	Company     string   `json:"company"`
	Role        string   `json:"role"`
	Duration    string   `json:"duration"`
	Description string   `json:"description,omitempty"`
	Projects    []string `json:"projects"`
}

// Education is one education entry from a resume.
type Education struct {
	Institution string `json:"institution"`
	Degree      string `json:"degree"`
	Field       string `json:"field"`
	Year        string `json:"year,omitempty"`
}

// ResumeData is the structured representation of a parsed resume.
// It is produced once by the parser and read-only afterwards.
type ResumeData struct {
	Name                 string       `json:"name"`
	Email                string       `json:"email,omitempty"`
	Phone                string       `json:"phone,omitempty"`
	Skills               Skills       `json:"skills"`
	Experience           []Experience `json:"experience"`
	Education            []Education  `json:"education"`
	Summary              string       `json:"summary,omitempty"`
	TotalYearsExperience float64      `json:"total_years_experience,omitempty"`
}

// Snapshot converts the resume into the key-value form stored on a Candidate.
// Storage keeps the denormalized map rather than the typed struct so the
// candidate record stays readable even if the resume schema evolves.
func (r *ResumeData) Snapshot() map[string]any {
	raw, err := json.Marshal(r)
	if err != nil {
		return map[string]any{"name": r.Name}
	}

	var snapshot map[string]any
	if err := json.Unmarshal(raw, &snapshot); err != nil {
		return map[string]any{"name": r.Name}
	}
	return snapshot
}
