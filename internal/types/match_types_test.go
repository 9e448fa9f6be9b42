package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScoreResultJSONRoundTrip(t *testing.T) {
	original := ScoreResult{
		FinalScore: 79.75,
		Tier:       TierGood,
		SubScores: SubScores{
			Skills: SkillScore{
				Score: 65, ExactScore: 50, SemanticScore: 100, Coverage: 50,
				Matched: []string{"python"}, Missing: []string{"java"}, Extra: []string{"sql"},
			},
			Experience: ExperienceScore{
				Score: 88, YearsCV: 5, RequiredBand: "3-8",
				Adequacy: "Adéquat", Comment: "5 ans - Requis: 3-8 ans",
			},
			Education: EducationScore{
				Score: 90, LevelCV: "Bac+5 (Master/Ingénieur)",
				LevelRequired: "Bac+5 (Master/Ingénieur)", Adequacy: "Excellente",
			},
			Languages:  CoverageScore{Score: 100, Comment: "Aucune exigence linguistique spécifiée"},
			SoftSkills: CoverageScore{Score: 100},
		},
		Weights: Weights{
			Skills: 0.45, Experience: 0.25, Education: 0.15, Languages: 0.10, SoftSkills: 0.05,
		},
		Recommendations: []string{"Bonne correspondance. Le candidat est qualifié pour le poste."},
	}

	data, err := json.Marshal(original)
	require.NoError(t, err)

	var decoded ScoreResult
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, original, decoded)
}

func TestWeightsSum(t *testing.T) {
	w := Weights{Skills: 0.45, Experience: 0.25, Education: 0.15, Languages: 0.10, SoftSkills: 0.05}
	assert.InDelta(t, 1.0, w.Sum(), 1e-9)
}

func TestExperienceProfileHasYears(t *testing.T) {
	assert.False(t, ExperienceProfile{Years: YearsUnknown}.HasYears())
	assert.True(t, ExperienceProfile{Years: 0}.HasYears())
	assert.True(t, ExperienceProfile{Years: 5}.HasYears())
}
