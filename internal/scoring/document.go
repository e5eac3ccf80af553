package scoring

import (
	"fmt"
	"strings"

	"github.com/jonathan/talent-scout/internal/types"
)

// Repetition multipliers used to over-weight skills within a plain TF-IDF
// model: repeating a skill inflates its term frequency without needing a
// custom weighted-vector implementation.
const (
	resumeSkillWeight    = 3
	requiredSkillWeight  = 3
	preferredSkillWeight = 2
)

// resumeDocument flattens a resume into the text compared against the job.
func resumeDocument(resume *types.ResumeData) string {
	var parts []string

	allSkills := make([]string, 0,
		len(resume.Skills.TechnicalSkills)+len(resume.Skills.SoftSkills)+len(resume.Skills.Certifications))
	allSkills = append(allSkills, resume.Skills.TechnicalSkills...)
	allSkills = append(allSkills, resume.Skills.SoftSkills...)
	allSkills = append(allSkills, resume.Skills.Certifications...)
	for i := 0; i < resumeSkillWeight; i++ {
		parts = append(parts, allSkills...)
	}

	for _, exp := range resume.Experience {
		parts = append(parts, exp.Role, exp.Company)
		if exp.Description != "" {
			parts = append(parts, exp.Description)
		}
		parts = append(parts, exp.Projects...)
	}

	for _, edu := range resume.Education {
		parts = append(parts, edu.Degree, edu.Field, edu.Institution)
	}

	if resume.Summary != "" {
		parts = append(parts, resume.Summary)
	}

	if resume.TotalYearsExperience > 0 {
		parts = append(parts, fmt.Sprintf("%g years experience", resume.TotalYearsExperience))
	}

	return strings.Join(parts, " ")
}

// jobDocument flattens a job description into the text compared against the resume.
func jobDocument(job *types.JobDescription) string {
	parts := []string{job.Title, job.Company, job.Description}

	for i := 0; i < requiredSkillWeight; i++ {
		parts = append(parts, job.RequiredSkills...)
	}
	for i := 0; i < preferredSkillWeight; i++ {
		parts = append(parts, job.PreferredSkills...)
	}

	if job.ExperienceRequired != "" {
		parts = append(parts, job.ExperienceRequired)
	}
	if job.EducationRequired != "" {
		parts = append(parts, job.EducationRequired)
	}

	return strings.Join(parts, " ")
}
