package analyzer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cv-match-go/internal/lexicon"
)

const sampleCV = `Jean Dupont
jean.dupont@example.com - 06 12 34 56 78
Développeur senior avec 5 ans d'expérience en python et sql.
Master en informatique, Université Paris Dauphine.
Anglais courant.`

func TestCVAnalyzerAnalyze(t *testing.T) {
	a := NewCVAnalyzer(lexicon.Default(nil, nil))

	profile := a.Analyze(sampleCV)

	assert.Equal(t, "j*********t@example.com", profile.PersonalInfo.Email)
	assert.Equal(t, "06******78", profile.PersonalInfo.Phone)

	require.Len(t, profile.TechnicalSkills, 2)
	assert.Equal(t, "python", profile.TechnicalSkills[0].Name)
	assert.Equal(t, "sql", profile.TechnicalSkills[1].Name)

	assert.Equal(t, 5, profile.Experience.Years)
	assert.Equal(t, "senior", profile.Experience.Seniority.Level)

	assert.Equal(t, LevelMaster, profile.Education.AcademicLevel)
	assert.Equal(t, []string{"Informatique"}, profile.Education.Domains)
	assert.Equal(t, []string{"paris dauphine"}, profile.Education.Schools)

	require.Len(t, profile.Languages, 1)
	assert.Equal(t, "Anglais", profile.Languages[0].Language)
	assert.Equal(t, "Courant", profile.Languages[0].Proficiency)

	assert.NotContains(t, profile.Text, "\n")
	assert.Equal(t, len(profile.Text), profile.TextLength)
}
