package schema

// CareerSchema is the JSON Schema for the career analysis document.
// A full analysis carries the profile, recommendations and evaluation; a
// resume too thin to analyze yields only the improvement section.
const CareerSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "properties": {
    "candidateProfile": {
      "type": "object",
      "properties": {
        "coreCompetencies": {
          "type": "object",
          "properties": {
            "technicalSkills": {"type": "array", "items": {"type": "string"}},
            "softSkills": {"type": "array", "items": {"type": "string"}},
            "mostUsedSkill": {"type": "array", "items": {"type": "string"}, "maxItems": 4},
            "certifications": {"type": "array"}
          }
        },
        "workExperience": {"type": "object"},
        "education": {"type": "object"},
        "careerProgression": {"type": "object"}
      }
    },
    "jobRecommendations": {
      "type": "array",
      "items": {
        "type": "object",
        "properties": {
          "roleTitle": {"type": "string"},
          "assessment": {"type": "object"},
          "currentOpportunities": {"type": "array"},
          "skillDevelopment": {"type": "array"}
        }
      }
    },
    "overallEvaluation": {
      "type": "object",
      "properties": {
        "jobFitScores": {"type": "object"},
        "marketPositioning": {"type": "object"},
        "interviewReadiness": {"type": "object"},
        "personalBrandingSuggestions": {"type": "array"}
      }
    },
    "resumeImprovement": {
      "type": "object",
      "properties": {
        "missingElements": {"type": "array", "items": {"type": "string"}},
        "actionableSteps": {"type": "array", "items": {"type": "string"}}
      }
    }
  },
  "anyOf": [
    {"required": ["candidateProfile", "jobRecommendations", "overallEvaluation"]},
    {"required": ["resumeImprovement"]}
  ]
}`
