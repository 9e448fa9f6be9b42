// Package scoring combines the rule-based sub-scores and the semantic
// similarity into one weighted, explainable match score.
package scoring

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"

	"cv-match-go/internal/analyzer"
	"cv-match-go/internal/config"
	"cv-match-go/internal/embedding"
	"cv-match-go/internal/lexicon"
	"cv-match-go/internal/logger"
	"cv-match-go/internal/types"
)

// maxExtraSkills caps how many beyond-requirement skills are reported.
const maxExtraSkills = 10

// Engine computes the final CV/offer match score. It is stateless
// across requests; the embedding service it holds is shared and
// lazily initialized.
type Engine struct {
	weights    types.Weights
	thresholds config.TierThresholds
	similarity *embedding.Service
	experience *analyzer.ExperienceExtractor
	education  *analyzer.EducationExtractor
}

// NewEngine builds a scoring engine from configuration.
func NewEngine(cfg config.ScoringConfig, lex *lexicon.Lexicon, similarity *embedding.Service) *Engine {
	return &Engine{
		weights:    cfg.Weights,
		thresholds: cfg.Thresholds,
		similarity: similarity,
		experience: analyzer.NewExperienceExtractor(lex),
		education:  analyzer.NewEducationExtractor(lex),
	}
}

// ComputeScore scores a candidate profile against an offer profile.
// The computation is pure and idempotent for identical inputs; the
// only failure mode is an unreachable embedding backend, which aborts
// the request because the skill sub-score would be incomplete.
func (e *Engine) ComputeScore(ctx context.Context, cv *types.CandidateProfile, offer *types.OfferProfile) (*types.ScoreResult, error) {
	skills, err := e.scoreSkills(ctx, cv, offer)
	if err != nil {
		return nil, fmt.Errorf("scoring skills: %w", err)
	}

	sub := types.SubScores{
		Skills:     skills,
		Experience: e.experience.Adequacy(cv.Experience, offer.RequiredExperience),
		Education:  e.education.Adequacy(cv.Education, offer.RequiredEducation),
		Languages:  scoreLanguages(cv.Languages, offer.Languages),
		SoftSkills: scoreSoftSkills(cv.SoftSkills, offer.SoftSkills),
	}

	final := round2(
		sub.Skills.Score*e.weights.Skills +
			sub.Experience.Score*e.weights.Experience +
			sub.Education.Score*e.weights.Education +
			sub.Languages.Score*e.weights.Languages +
			sub.SoftSkills.Score*e.weights.SoftSkills)

	result := &types.ScoreResult{
		FinalScore:      final,
		Tier:            e.tier(final),
		SubScores:       sub,
		Weights:         e.weights,
		Recommendations: e.recommendations(final, sub),
	}

	logger.Info().
		Float64("final_score", final).
		Str("tier", result.Tier).
		Msg("scoring done")

	return result, nil
}

func (e *Engine) tier(score float64) string {
	switch {
	case score >= e.thresholds.Excellent:
		return types.TierExcellent
	case score >= e.thresholds.Good:
		return types.TierGood
	case score >= e.thresholds.Average:
		return types.TierAverage
	default:
		return types.TierWeak
	}
}

// scoreSkills blends exact coverage of the required technical skills
// (70%) with the semantic similarity of the two skill lists (30%).
// The semantic term is 0 without a backend call when either list is
// empty.
func (e *Engine) scoreSkills(ctx context.Context, cv *types.CandidateProfile, offer *types.OfferProfile) (types.SkillScore, error) {
	cov := analyzer.Coverage(cv.TechnicalSkills, offer.TechnicalSkills)
	exact := cov.Rate

	var semantic float64
	if len(cv.TechnicalSkills) > 0 && len(offer.TechnicalSkills) > 0 {
		sim, err := e.similarity.SkillListSimilarity(ctx, skillNames(cv.TechnicalSkills), skillNames(offer.TechnicalSkills))
		if err != nil {
			return types.SkillScore{}, err
		}
		semantic = sim * 100
	}

	extra := cov.Extra
	if len(extra) > maxExtraSkills {
		extra = extra[:maxExtraSkills]
	}

	return types.SkillScore{
		Score:         round2(exact*0.7 + semantic*0.3),
		ExactScore:    round2(exact),
		SemanticScore: round2(semantic),
		Coverage:      round2(cov.Rate),
		Matched:       cov.Matched,
		Missing:       cov.Missing,
		Extra:         extra,
	}, nil
}

// scoreLanguages rewards coverage of the required languages plus a
// small bonus for extra ones. No requirement scores a neutral 100.
func scoreLanguages(cvLangs, required []types.LanguageEntry) types.CoverageScore {
	present := languageNames(cvLangs)
	if len(required) == 0 {
		return types.CoverageScore{
			Score:    100,
			Present:  present,
			Required: []string{},
			Matched:  []string{},
			Missing:  []string{},
			Comment:  "Aucune exigence linguistique spécifiée",
		}
	}

	requiredNames := languageNames(required)
	matched, missing := splitByMembership(requiredNames, present)
	extras := 0
	for _, p := range present {
		if !containsFold(requiredNames, p) {
			extras++
		}
	}

	coverage := float64(len(matched)) / float64(len(requiredNames)) * 100
	bonus := math.Min(10, float64(extras)*5)
	score := math.Min(100, coverage+bonus)

	return types.CoverageScore{
		Score:    round2(score),
		Present:  present,
		Required: requiredNames,
		Matched:  matched,
		Missing:  missing,
		Comment:  fmt.Sprintf("%d/%d langue(s) requise(s) maîtrisée(s)", len(matched), len(requiredNames)),
	}
}

// scoreSoftSkills is plain coverage of the offer's soft skills. No
// requirement scores a neutral 100.
func scoreSoftSkills(cvSkills, required []types.SkillMatch) types.CoverageScore {
	present := skillNames(cvSkills)
	if len(required) == 0 {
		return types.CoverageScore{
			Score:    100,
			Present:  present,
			Required: []string{},
			Matched:  []string{},
			Missing:  []string{},
			Comment:  "Aucune soft skill spécifiée dans l'offre",
		}
	}

	requiredNames := skillNames(required)
	matched, missing := splitByMembership(requiredNames, present)
	score := float64(len(matched)) / float64(len(requiredNames)) * 100

	return types.CoverageScore{
		Score:    round2(score),
		Present:  present,
		Required: requiredNames,
		Matched:  matched,
		Missing:  missing,
		Comment:  fmt.Sprintf("%d/%d soft skill(s) identifiée(s)", len(matched), len(requiredNames)),
	}
}

// recommendations builds the explanation: one verdict line for the
// tier, then one line per weak sub-score in fixed order (skills,
// experience, education).
func (e *Engine) recommendations(final float64, sub types.SubScores) []string {
	recs := make([]string, 0, 4)

	switch e.tier(final) {
	case types.TierExcellent:
		recs = append(recs, "Excellente correspondance. Le candidat répond à tous les critères principaux.")
	case types.TierGood:
		recs = append(recs, "Bonne correspondance. Le candidat est qualifié pour le poste.")
	case types.TierAverage:
		recs = append(recs, "Correspondance moyenne. Certaines lacunes à combler.")
	default:
		recs = append(recs, "Correspondance faible. Profil peu adapté au poste.")
	}

	if sub.Skills.Score < 60 {
		recs = append(recs, fmt.Sprintf(
			"%d compétence(s) technique(s) manquante(s) critique(s). Formation recommandée.",
			len(sub.Skills.Missing)))
	}
	if sub.Experience.Score < 60 {
		years := "non précisée"
		if sub.Experience.YearsCV != types.YearsUnknown {
			years = fmt.Sprintf("%d ans", sub.Experience.YearsCV)
		}
		recs = append(recs, fmt.Sprintf(
			"Expérience insuffisante (%s vs %s requis). Considérer comme profil junior.",
			years, sub.Experience.RequiredBand))
	}
	if sub.Education.Score < 60 {
		recs = append(recs, "Niveau de formation en dessous des attentes. Évaluer les compétences acquises sur le terrain.")
	}

	return recs
}

func skillNames(skills []types.SkillMatch) []string {
	names := make([]string, 0, len(skills))
	for _, s := range skills {
		names = append(names, s.Name)
	}
	return names
}

func languageNames(langs []types.LanguageEntry) []string {
	names := make([]string, 0, len(langs))
	for _, l := range langs {
		names = append(names, l.Language)
	}
	return names
}

// splitByMembership partitions required into names present in the
// candidate list (case-insensitive) and names missing from it. Both
// partitions come back sorted.
func splitByMembership(required, present []string) (matched, missing []string) {
	matched, missing = []string{}, []string{}
	for _, r := range required {
		if containsFold(present, r) {
			matched = append(matched, r)
		} else {
			missing = append(missing, r)
		}
	}
	sort.Strings(matched)
	sort.Strings(missing)
	return matched, missing
}

func containsFold(haystack []string, needle string) bool {
	for _, h := range haystack {
		if strings.EqualFold(h, needle) {
			return true
		}
	}
	return false
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
