package openai

import "fmt"

// documentLayout is the shape the model is asked to fill in.
const documentLayout = `{
  "candidateProfile": {
    "coreCompetencies": {
      "technicalSkills": ["key technical skills, tools and methods"],
      "softSkills": ["communication, leadership, teamwork"],
      "mostUsedSkill": ["three or four skills"],
      "uniqueValueProposition": "what sets the candidate apart",
      "certifications": ["certifications with dates if given"]
    },
    "workExperience": {
      "totalProfessionalTenure": "years by role or industry",
      "seniorityLevel": "junior, mid-level, senior or executive",
      "industryTransferPotential": ["industries the skills carry over to"],
      "keyAccomplishments": ["major achievements"],
      "mostImpactfulProject": {
        "title": "project name",
        "description": "short description",
        "impact": "measurable outcomes",
        "technologies": ["technologies used"]
      }
    },
    "education": {
      "highestDegree": "highest level attained",
      "relevantCoursework": ["relevant courses"],
      "certificationOpportunities": ["certifications worth pursuing"]
    },
    "careerProgression": {
      "growthTrajectory": "speed and direction of progression",
      "gapAnalysis": ["gaps for the roles below"]
    }
  },
  "jobRecommendations": [
    {
      "roleTitle": "job title",
      "experienceLevel": "entry, mid or senior",
      "industryFocus": "primary industry",
      "workplaceType": "remote, hybrid or onsite",
      "assessment": {
        "skillsMatch": ["matching skills"],
        "skillGaps": ["missing skills"],
        "experienceMatch": "how experience lines up"
      },
      "growthPotential": {"marketDemand": "expected demand", "upwardMobility": "promotion potential"},
      "currentOpportunities": [{"platform": "job board", "searchQuery": "query", "url": "search URL"}],
      "skillDevelopment": [{"title": "resource", "description": "what it teaches", "duration": "6h 30m", "link": "URL"}]
    }
  ],
  "overallEvaluation": {
    "jobFitScores": {"job title": 0},
    "marketPositioning": {"competitiveAdvantages": ["strengths"], "improvementAreas": ["weaknesses"]},
    "interviewReadiness": {"commonQuestions": ["likely questions"], "suggestedTalkingPoints": ["experiences to highlight"]},
    "personalBrandingSuggestions": ["ways to strengthen professional presence"]
  },
  "resumeImprovement": {
    "overallAssessment": "how complete the resume is",
    "missingElements": ["critical missing information"],
    "actionableSteps": ["specific steps to improve the resume"]
  }
}`

const analysisPromptTemplate = `Produce a career analysis of the resume you are given as a single JSON object.

Output ONLY valid JSON. Do not include any preamble, explanation or markdown. Start your response with the
opening brace { and end it with the closing brace }. Fill in this layout:

%s

Rules:
- Cover every career field, not only software. Adapt the analysis to the industry the resume shows.
- Give 4 to 7 job recommendations.
- jobFitScores maps each recommended role title to a number from 0 to 100.
- If the resume lacks basic skills and education data, return ONLY the "resumeImprovement" section.
- Use only facts stated in or clearly implied by the resume. Do not invent employers, dates or degrees.
- The JSON must parse without errors: no trailing commas, no comments, no text outside the object.`

// buildSystemPrompt creates the system prompt with the document layout embedded.
func buildSystemPrompt() string {
	return fmt.Sprintf(analysisPromptTemplate, documentLayout)
}
