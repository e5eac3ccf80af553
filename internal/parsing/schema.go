package parsing

// resumeDataSchema validates the LLM's structured extraction before it is
// decoded. Keeping the contract here rather than trusting the model catches
// shape drift (missing skills object, stringly-typed years) early.
const resumeDataSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "title": "ResumeData",
  "type": "object",
  "required": ["name", "skills"],
  "properties": {
    "name": {"type": "string", "minLength": 1},
    "email": {"type": "string"},
    "phone": {"type": "string"},
    "skills": {
      "type": "object",
      "properties": {
        "technical_skills": {"type": "array", "items": {"type": "string"}},
        "soft_skills": {"type": "array", "items": {"type": "string"}},
        "certifications": {"type": "array", "items": {"type": "string"}}
      }
    },
    "experience": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["company", "role"],
        "properties": {
          "company": {"type": "string"},
          "role": {"type": "string"},
          "duration": {"type": "string"},
          "description": {"type": "string"},
          "projects": {"type": "array", "items": {"type": "string"}}
        }
      }
    },
    "education": {
      "type": "array",
      "items": {
        "type": "object",
        "properties": {
          "institution": {"type": "string"},
          "degree": {"type": "string"},
          "field": {"type": "string"},
          "year": {"type": "string"}
        }
      }
    },
    "summary": {"type": "string"},
    "total_years_experience": {"type": "number"}
  }
}`
