package schema

import (
	"slices"

	"github.com/poiesic/compass/repair"
	"github.com/tidwall/gjson"
)

// FallbackNote is the diagnostic the repair engine writes into documents it
// could not recover.
var FallbackNote = repair.DefaultShape().Note

// Summary holds headline facts read from a career analysis document.
type Summary struct {
	Valid              bool
	SeniorityLevel     string
	TechnicalSkills    int
	JobRecommendations int
	RoleTitles         []string
	FitScores          map[string]float64
	MissingElements    []string

	// Degraded is set when the document carries the repair fallback note.
	Degraded bool
}

// Summarize reads a Summary from doc. Fields absent from doc are left zero;
// an unparseable doc yields a Summary with Valid unset.
func Summarize(doc string) Summary {
	if !gjson.Valid(doc) {
		return Summary{}
	}

	sum := Summary{
		Valid:              true,
		SeniorityLevel:     gjson.Get(doc, "candidateProfile.workExperience.seniorityLevel").String(),
		TechnicalSkills:    int(gjson.Get(doc, "candidateProfile.coreCompetencies.technicalSkills.#").Int()),
		JobRecommendations: int(gjson.Get(doc, "jobRecommendations.#").Int()),
	}

	for _, title := range gjson.Get(doc, "jobRecommendations.#.roleTitle").Array() {
		sum.RoleTitles = append(sum.RoleTitles, title.String())
	}

	gjson.Get(doc, "overallEvaluation.jobFitScores").ForEach(func(key, value gjson.Result) bool {
		if sum.FitScores == nil {
			sum.FitScores = make(map[string]float64)
		}
		sum.FitScores[key.String()] = value.Float()
		return true
	})

	for _, el := range gjson.Get(doc, "resumeImprovement.missingElements").Array() {
		sum.MissingElements = append(sum.MissingElements, el.String())
	}
	sum.Degraded = slices.Contains(sum.MissingElements, FallbackNote)

	return sum
}
