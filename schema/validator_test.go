package schema

import (
	"testing"

	"github.com/poiesic/compass/repair"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fullDoc = `{
  "candidateProfile": {
    "coreCompetencies": {"technicalSkills": ["Go", "SQL", "Kubernetes"], "softSkills": ["mentoring"]},
    "workExperience": {"seniorityLevel": "senior"}
  },
  "jobRecommendations": [
    {"roleTitle": "Staff Engineer", "assessment": {}},
    {"roleTitle": "Platform Lead"}
  ],
  "overallEvaluation": {"jobFitScores": {"Staff Engineer": 87, "Platform Lead": 72.5}}
}`

func TestValidate(t *testing.T) {
	v, err := NewCareerValidator()
	require.NoError(t, err)

	tests := []struct {
		name    string
		doc     string
		wantErr error
	}{
		{"full analysis", fullDoc, nil},
		{"improvement only", `{"resumeImprovement":{"missingElements":["education"]}}`, nil},
		{"plain text", "JSON parsing failed", ErrNotJSON},
		{"missing sections", `{"candidateProfile":{}}`, ErrSchemaViolation},
		{"wrong container", `{"candidateProfile":[],"jobRecommendations":[],"overallEvaluation":{}}`, ErrSchemaViolation},
		{"root array", `[]`, ErrSchemaViolation},
		{"not json", `{"candidateProfile":`, ErrNotJSON},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(tt.doc)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestValidate_FallbackSkeleton(t *testing.T) {
	v, err := NewCareerValidator()
	require.NoError(t, err)

	e, err := repair.NewEngine()
	require.NoError(t, err)
	assert.NoError(t, v.Validate(e.Skeleton()))
}

func TestViolationDetails(t *testing.T) {
	v, err := NewCareerValidator()
	require.NoError(t, err)

	err = v.Validate(`{"candidateProfile":[],"jobRecommendations":{},"overallEvaluation":{}}`)
	var violation *ViolationError
	require.ErrorAs(t, err, &violation)
	assert.NotEmpty(t, violation.Details)
	assert.Contains(t, err.Error(), "schema violation")
}

func TestNewValidator_Invalid(t *testing.T) {
	_, err := NewValidator(`not a schema`)
	assert.ErrorIs(t, err, ErrInvalidSchema)
}
