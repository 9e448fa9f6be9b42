package analyzer

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"cv-match-go/internal/lexicon"
	"cv-match-go/internal/types"
)

func newExperienceExtractor(t *testing.T) *ExperienceExtractor {
	t.Helper()
	return NewExperienceExtractor(lexicon.Default(nil, nil))
}

func TestExtractYearsExplicitMention(t *testing.T) {
	e := newExperienceExtractor(t)

	tests := []struct {
		name string
		text string
		want int
	}{
		{
			name: "single mention",
			text: "5 ans d'expérience en développement",
			want: 5,
		},
		{
			name: "largest mention wins",
			text: "10 ans d'expérience dont 3 ans d'expérience en finance",
			want: 10,
		},
		{
			name: "année spelling",
			text: "7 années d'expérience",
			want: 7,
		},
		{
			name: "explicit mention beats period ranges",
			text: "2010-2020 chez Acme, 2 ans d'expérience en data",
			want: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, e.ExtractYears(tt.text))
		})
	}
}

func TestExtractYearsFromPeriods(t *testing.T) {
	e := newExperienceExtractor(t)

	assert.Equal(t, 4, e.ExtractYears("Développeur 2018-2020 puis 2020 - 2022"))

	wantOpen := time.Now().Year() - 2019
	assert.Equal(t, wantOpen, e.ExtractYears("Consultant 2019 - présent"))

	// Backwards and future ranges are ignored.
	assert.Equal(t, types.YearsUnknown, e.ExtractYears("Projet 2022-2018 et 2030-2035"))
}

func TestExtractYearsUnknown(t *testing.T) {
	e := newExperienceExtractor(t)
	assert.Equal(t, types.YearsUnknown, e.ExtractYears("Passionné de programmation"))
}

func TestDetectSeniority(t *testing.T) {
	e := newExperienceExtractor(t)

	s := e.DetectSeniority("Profil senior, développeur confirmé")
	assert.Equal(t, "senior", s.Level)
	assert.Equal(t, 3, s.Rank)
	assert.Equal(t, []string{"confirmé", "senior"}, s.AllLevels)

	none := e.DetectSeniority("Développeur polyvalent")
	assert.Equal(t, "non spécifié", none.Level)
	assert.Equal(t, 0, none.Rank)
	assert.Empty(t, none.AllLevels)
}

func TestParseRequiredBand(t *testing.T) {
	tests := []struct {
		requirement string
		wantMin     int
		wantMax     int
	}{
		{"5+ ans", 5, 10},
		{"3 à 5 ans", 3, 5},
		{"3 ans", 3, 8},
		{"10+ ans (Expert)", 10, 15},
		{"profil junior", 0, 5},
		{"Non spécifié", 0, 5},
		// a degenerate upper bound is ignored
		{"5 à 2 ans", 5, 10},
	}

	for _, tt := range tests {
		t.Run(tt.requirement, func(t *testing.T) {
			min, max := ParseRequiredBand(tt.requirement)
			assert.Equal(t, tt.wantMin, min)
			assert.Equal(t, tt.wantMax, max)
		})
	}
}

func TestAdequacy(t *testing.T) {
	e := newExperienceExtractor(t)

	tests := []struct {
		years        int
		wantScore    float64
		wantAdequacy string
	}{
		{12, 100, "Surqualifié"},
		{10, 100, "Surqualifié"},
		{7, 88, "Adéquat"},
		{5, 80, "Adéquat"},
		{3, 56, "Légèrement en-dessous"},
		{2, 40, "Insuffisant"},
		{0, 0, "Insuffisant"},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d years", tt.years), func(t *testing.T) {
			profile := types.ExperienceProfile{Years: tt.years}
			score := e.Adequacy(profile, "5 à 10 ans")
			assert.InDelta(t, tt.wantScore, score.Score, 1e-9)
			assert.Equal(t, tt.wantAdequacy, score.Adequacy)
			assert.Equal(t, "5-10", score.RequiredBand)
		})
	}
}

func TestAdequacyUnknownYears(t *testing.T) {
	e := newExperienceExtractor(t)

	profile := types.ExperienceProfile{Years: types.YearsUnknown}
	score := e.Adequacy(profile, "3 à 5 ans")
	assert.InDelta(t, 50.0, score.Score, 1e-9)
	assert.Equal(t, "Non spécifié", score.Adequacy)
	assert.Equal(t, types.YearsUnknown, score.YearsCV)
}

func TestAdequacyNoMinimum(t *testing.T) {
	e := newExperienceExtractor(t)

	// junior band [0,5]: any experience sits inside the band
	profile := types.ExperienceProfile{Years: 2}
	score := e.Adequacy(profile, "profil junior")
	assert.InDelta(t, 88.0, score.Score, 1e-9)
	assert.Equal(t, "Adéquat", score.Adequacy)
}
