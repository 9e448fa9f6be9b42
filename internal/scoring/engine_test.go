package scoring

import (
	"context"
	"errors"
	"testing"

	einoembedding "github.com/cloudwego/eino/components/embedding"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cv-match-go/internal/analyzer"
	"cv-match-go/internal/config"
	"cv-match-go/internal/embedding"
	"cv-match-go/internal/lexicon"
	"cv-match-go/internal/types"
)

type stubEmbedder struct {
	vector []float64
	err    error
}

func (s *stubEmbedder) EmbedStrings(_ context.Context, texts []string, _ ...einoembedding.Option) ([][]float64, error) {
	if s.err != nil {
		return nil, s.err
	}
	out := make([][]float64, len(texts))
	for i := range texts {
		out[i] = s.vector
	}
	return out, nil
}

func (s *stubEmbedder) Dimensions() int { return len(s.vector) }

func newTestEngine(t *testing.T, emb embedding.Embedder, factoryErr error) *Engine {
	t.Helper()
	svc := embedding.NewService(func() (embedding.Embedder, error) {
		return emb, factoryErr
	})
	return NewEngine(config.Default().Scoring, lexicon.Default(nil, nil), svc)
}

func technicalSkills(names ...string) []types.SkillMatch {
	skills := make([]types.SkillMatch, 0, len(names))
	for _, n := range names {
		skills = append(skills, types.SkillMatch{Name: n, Confidence: 0.6, Mentions: 1, Kind: types.SkillTechnical})
	}
	return skills
}

func TestComputeScore(t *testing.T) {
	e := newTestEngine(t, &stubEmbedder{vector: []float64{1, 0, 0}}, nil)

	cv := &types.CandidateProfile{
		TechnicalSkills: technicalSkills("python", "sql"),
		Experience:      types.ExperienceProfile{Years: 5},
		Education: types.EducationProfile{
			AcademicLevel: analyzer.LevelMaster,
			PrestigeScore: 50,
		},
		Languages: []types.LanguageEntry{{Language: "Anglais", Proficiency: "Courant"}},
	}
	offer := &types.OfferProfile{
		JobTitle:           "Data Scientist",
		TechnicalSkills:    technicalSkills("python", "java"),
		RequiredExperience: "3 ans d'expérience",
		RequiredEducation:  "master",
		Languages:          []types.LanguageEntry{{Language: "Anglais", Required: true}},
	}

	result, err := e.ComputeScore(context.Background(), cv, offer)
	require.NoError(t, err)

	// identical stub vectors: semantic term is a full 100
	assert.InDelta(t, 65.0, result.SubScores.Skills.Score, 1e-9)
	assert.InDelta(t, 50.0, result.SubScores.Skills.ExactScore, 1e-9)
	assert.InDelta(t, 100.0, result.SubScores.Skills.SemanticScore, 1e-9)
	assert.Equal(t, []string{"python"}, result.SubScores.Skills.Matched)
	assert.Equal(t, []string{"java"}, result.SubScores.Skills.Missing)
	assert.Equal(t, []string{"sql"}, result.SubScores.Skills.Extra)

	assert.InDelta(t, 88.0, result.SubScores.Experience.Score, 1e-9)
	assert.Equal(t, "Adéquat", result.SubScores.Experience.Adequacy)

	assert.InDelta(t, 90.0, result.SubScores.Education.Score, 1e-9)
	assert.InDelta(t, 100.0, result.SubScores.Languages.Score, 1e-9)
	assert.InDelta(t, 100.0, result.SubScores.SoftSkills.Score, 1e-9)

	assert.InDelta(t, 79.75, result.FinalScore, 1e-9)
	assert.Equal(t, types.TierGood, result.Tier)
	require.Len(t, result.Recommendations, 1)
	assert.Equal(t, "Bonne correspondance. Le candidat est qualifié pour le poste.", result.Recommendations[0])
}

func TestComputeScoreWeakProfile(t *testing.T) {
	// factory error is irrelevant: the semantic term is skipped when the
	// candidate has no technical skills
	e := newTestEngine(t, nil, errors.New("no api key"))

	cv := &types.CandidateProfile{
		Experience: types.ExperienceProfile{Years: 0},
		Education: types.EducationProfile{
			AcademicLevel: analyzer.LevelUnspecified,
			PrestigeScore: 50,
		},
	}
	offer := &types.OfferProfile{
		TechnicalSkills:    technicalSkills("python"),
		RequiredExperience: "5+ ans",
		RequiredEducation:  "Non spécifié",
		Languages:          []types.LanguageEntry{{Language: "Anglais", Required: true}},
		SoftSkills: []types.SkillMatch{
			{Name: "rigueur", Kind: types.SkillSoft},
		},
	}

	result, err := e.ComputeScore(context.Background(), cv, offer)
	require.NoError(t, err)

	assert.InDelta(t, 0.0, result.SubScores.Skills.Score, 1e-9)
	assert.InDelta(t, 0.0, result.SubScores.Experience.Score, 1e-9)
	assert.InDelta(t, 40.0, result.SubScores.Education.Score, 1e-9)
	assert.InDelta(t, 0.0, result.SubScores.Languages.Score, 1e-9)
	assert.InDelta(t, 0.0, result.SubScores.SoftSkills.Score, 1e-9)

	assert.InDelta(t, 6.0, result.FinalScore, 1e-9)
	assert.Equal(t, types.TierWeak, result.Tier)

	require.Len(t, result.Recommendations, 4)
	assert.Equal(t, "Correspondance faible. Profil peu adapté au poste.", result.Recommendations[0])
	assert.Contains(t, result.Recommendations[1], "1 compétence(s) technique(s) manquante(s)")
	assert.Contains(t, result.Recommendations[2], "0 ans vs 5-10 requis")
	assert.Contains(t, result.Recommendations[3], "Niveau de formation en dessous des attentes.")
}

func TestComputeScoreEmbeddingFailure(t *testing.T) {
	e := newTestEngine(t, nil, errors.New("no api key"))

	cv := &types.CandidateProfile{TechnicalSkills: technicalSkills("python")}
	offer := &types.OfferProfile{TechnicalSkills: technicalSkills("java")}

	_, err := e.ComputeScore(context.Background(), cv, offer)
	require.Error(t, err)
	assert.ErrorIs(t, err, embedding.ErrUnavailable)
}

func TestComputeScoreNoRequiredSkills(t *testing.T) {
	// empty required list: exact coverage is vacuous and no embedding
	// call happens even though the backend cannot initialize
	e := newTestEngine(t, nil, errors.New("no api key"))

	cv := &types.CandidateProfile{
		TechnicalSkills: technicalSkills("python"),
		Experience:      types.ExperienceProfile{Years: types.YearsUnknown},
		Education: types.EducationProfile{
			AcademicLevel: analyzer.LevelMaster,
			PrestigeScore: 50,
		},
	}
	offer := &types.OfferProfile{RequiredExperience: "Non spécifié", RequiredEducation: "Non spécifié"}

	result, err := e.ComputeScore(context.Background(), cv, offer)
	require.NoError(t, err)
	assert.InDelta(t, 70.0, result.SubScores.Skills.Score, 1e-9)
	assert.InDelta(t, 50.0, result.SubScores.Experience.Score, 1e-9)
	assert.Equal(t, "Non spécifié", result.SubScores.Experience.Adequacy)
}

func TestScoreLanguagesBonus(t *testing.T) {
	cv := []types.LanguageEntry{
		{Language: "Anglais"},
		{Language: "Allemand"},
		{Language: "Espagnol"},
	}
	required := []types.LanguageEntry{
		{Language: "Anglais", Required: true},
		{Language: "Chinois"},
	}

	score := scoreLanguages(cv, required)
	// 50% coverage plus the capped extra-language bonus
	assert.InDelta(t, 60.0, score.Score, 1e-9)
	assert.Equal(t, []string{"Anglais"}, score.Matched)
	assert.Equal(t, []string{"Chinois"}, score.Missing)
	assert.Equal(t, "1/2 langue(s) requise(s) maîtrisée(s)", score.Comment)
}

func TestScoreLanguagesNoRequirement(t *testing.T) {
	score := scoreLanguages([]types.LanguageEntry{{Language: "Anglais"}}, nil)
	assert.InDelta(t, 100.0, score.Score, 1e-9)
	assert.Equal(t, "Aucune exigence linguistique spécifiée", score.Comment)
}

func TestScoreLanguagesCap(t *testing.T) {
	cv := []types.LanguageEntry{
		{Language: "Anglais"},
		{Language: "Allemand"},
		{Language: "Espagnol"},
		{Language: "Italien"},
	}
	required := []types.LanguageEntry{{Language: "Anglais"}}

	score := scoreLanguages(cv, required)
	assert.InDelta(t, 100.0, score.Score, 1e-9)
}

func TestScoreSoftSkills(t *testing.T) {
	cv := []types.SkillMatch{{Name: "leadership", Kind: types.SkillSoft}}
	required := []types.SkillMatch{
		{Name: "leadership", Kind: types.SkillSoft},
		{Name: "rigueur", Kind: types.SkillSoft},
	}

	score := scoreSoftSkills(cv, required)
	assert.InDelta(t, 50.0, score.Score, 1e-9)
	assert.Equal(t, []string{"leadership"}, score.Matched)
	assert.Equal(t, []string{"rigueur"}, score.Missing)
}

func TestTierThresholds(t *testing.T) {
	e := newTestEngine(t, nil, nil)

	assert.Equal(t, types.TierExcellent, e.tier(80))
	assert.Equal(t, types.TierGood, e.tier(79.99))
	assert.Equal(t, types.TierGood, e.tier(65))
	assert.Equal(t, types.TierAverage, e.tier(64.99))
	assert.Equal(t, types.TierAverage, e.tier(50))
	assert.Equal(t, types.TierWeak, e.tier(49.99))
}
