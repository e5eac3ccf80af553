// Package types provides type definitions for structured data used throughout the talent-scout system.
package types

import (
	"github.com/go-playground/validator/v10"
)

// JobDescription is the role a screening run matches candidates against.
// It is loaded from a JSON file, validated once, and never mutated afterwards.
type JobDescription struct {
	Title              string   `json:"title" validate:"required"`
	Company            string   `json:"company" validate:"required"`
	Description        string   `json:"description" validate:"required"`
	RequiredSkills     []string `json:"required_skills,omitempty"`
	PreferredSkills    []string `json:"preferred_skills,omitempty"`
	ExperienceRequired string   `json:"experience_required,omitempty"`
	EducationRequired  string   `json:"education_required,omitempty"`
}

// Validate validates the JobDescription using the validator.
func (j *JobDescription) Validate() error {
	validate := validator.New()
	return validate.Struct(j)
}
