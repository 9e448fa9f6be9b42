// Package report renders a match result into a plain, serializable
// summary structure. It is a pure presentation layer: everything it
// outputs is derived from the score result and the two profiles,
// nothing feeds back into scoring.
package report

import (
	"fmt"
	"math"
	"strings"
	"time"

	"cv-match-go/internal/config"
	"cv-match-go/internal/types"
)

const systemVersion = "1.0.0"

// Metadata identifies one generated report.
type Metadata struct {
	SessionID   string `json:"session_id"`
	GeneratedAt string `json:"generated_at"`
	Version     string `json:"version"`
}

// GlobalScore presents the final score with its qualitative reading.
type GlobalScore struct {
	Value          float64 `json:"value"`
	Tier           string  `json:"tier"`
	Interpretation string  `json:"interpretation"`
}

// CriterionDetail is one weighted sub-score line.
type CriterionDetail struct {
	Criterion      string  `json:"criterion"`
	Score          float64 `json:"score"`
	WeightPercent  float64 `json:"weight_percent"`
	Contribution   float64 `json:"contribution"`
	Interpretation string  `json:"interpretation"`
}

// SkillAnalysis details the skills sub-score.
type SkillAnalysis struct {
	Score         float64  `json:"score"`
	ExactScore    float64  `json:"exact_score"`
	SemanticScore float64  `json:"semantic_score"`
	Coverage      float64  `json:"coverage"`
	Matched       []string `json:"matched"`
	Missing       []string `json:"missing"`
	Extra         []string `json:"extra"`
	Analysis      string   `json:"analysis"`
}

// ExperienceAnalysis details the experience sub-score.
type ExperienceAnalysis struct {
	Score         float64 `json:"score"`
	YearsCV       string  `json:"years_cv"`
	YearsRequired string  `json:"years_required"`
	Adequacy      string  `json:"adequacy"`
	Analysis      string  `json:"analysis"`
}

// EducationAnalysis details the education sub-score.
type EducationAnalysis struct {
	Score         float64 `json:"score"`
	LevelCV       string  `json:"level_cv"`
	LevelRequired string  `json:"level_required"`
	Adequacy      string  `json:"adequacy"`
	Analysis      string  `json:"analysis"`
}

// CandidateSummary condenses the candidate profile.
type CandidateSummary struct {
	TotalExperience string `json:"total_experience"`
	SeniorityLevel  string `json:"seniority_level"`
	AcademicLevel   string `json:"academic_level"`
	TechnicalSkills int    `json:"technical_skills"`
	Languages       int    `json:"languages"`
}

// OfferSummary condenses the offer profile.
type OfferSummary struct {
	JobTitle           string `json:"job_title"`
	RequiredExperience string `json:"required_experience"`
	RequiredEducation  string `json:"required_education"`
	RequiredSkills     int    `json:"required_skills"`
	RequiredLanguages  int    `json:"required_languages"`
}

// Report is the complete explainable match report.
type Report struct {
	Metadata           Metadata           `json:"metadata"`
	ExecutiveSummary   string             `json:"executive_summary"`
	GlobalScore        GlobalScore        `json:"global_score"`
	SubScoreDetails    []CriterionDetail  `json:"sub_score_details"`
	SkillAnalysis      SkillAnalysis      `json:"skill_analysis"`
	ExperienceAnalysis ExperienceAnalysis `json:"experience_analysis"`
	EducationAnalysis  EducationAnalysis  `json:"education_analysis"`
	Recommendations    []string           `json:"recommendations"`
	Candidate          CandidateSummary   `json:"candidate"`
	Offer              OfferSummary       `json:"offer"`
}

// Builder assembles reports. Tier thresholds come from the same
// configuration the scoring engine uses so both always agree.
type Builder struct {
	thresholds config.TierThresholds
}

// NewBuilder returns a report builder.
func NewBuilder(thresholds config.TierThresholds) *Builder {
	return &Builder{thresholds: thresholds}
}

// Build produces the full report for one match result.
func (b *Builder) Build(result *types.MatchResult) *Report {
	score := result.Score
	return &Report{
		Metadata: Metadata{
			SessionID:   result.SessionID,
			GeneratedAt: result.CreatedAt.Format(time.DateTime),
			Version:     systemVersion,
		},
		ExecutiveSummary:   b.executiveSummary(score),
		GlobalScore:        b.globalScore(score),
		SubScoreDetails:    subScoreDetails(score),
		SkillAnalysis:      skillAnalysis(score.SubScores.Skills),
		ExperienceAnalysis: experienceAnalysis(score.SubScores.Experience),
		EducationAnalysis:  educationAnalysis(score.SubScores.Education),
		Recommendations:    score.Recommendations,
		Candidate:          candidateSummary(result.Candidate),
		Offer:              offerSummary(result.Offer),
	}
}

func (b *Builder) executiveSummary(score *types.ScoreResult) string {
	base := fmt.Sprintf("Le candidat présente une correspondance %s avec le poste (score %.2f/100). ",
		strings.ToLower(score.Tier), score.FinalScore)
	switch {
	case score.FinalScore >= b.thresholds.Excellent:
		return base + "Le profil répond à l'ensemble des critères essentiels et démontre une forte adéquation avec les compétences recherchées."
	case score.FinalScore >= b.thresholds.Good:
		return base + "La plupart des critères sont satisfaits, avec quelques axes d'amélioration identifiés."
	case score.FinalScore >= b.thresholds.Average:
		return base + "Certaines compétences clés sont manquantes, nécessitant une évaluation approfondie."
	default:
		return base + "Le profil ne répond pas aux critères essentiels et présente des lacunes significatives."
	}
}

func (b *Builder) globalScore(score *types.ScoreResult) GlobalScore {
	var interpretation string
	switch {
	case score.FinalScore >= b.thresholds.Excellent:
		interpretation = "Score excellent indiquant une parfaite adéquation entre le profil et les exigences du poste."
	case score.FinalScore >= b.thresholds.Good:
		interpretation = "Score bon reflétant une correspondance solide sur les critères principaux."
	case score.FinalScore >= b.thresholds.Average:
		interpretation = "Score moyen suggérant une correspondance partielle avec des lacunes dans des domaines critiques."
	default:
		interpretation = "Score faible indiquant une inadéquation significative avec les exigences minimales du poste."
	}
	return GlobalScore{
		Value:          score.FinalScore,
		Tier:           score.Tier,
		Interpretation: interpretation,
	}
}

func subScoreDetails(score *types.ScoreResult) []CriterionDetail {
	sub := score.SubScores
	w := score.Weights
	rows := []struct {
		label  string
		value  float64
		weight float64
	}{
		{"Compétences Techniques", sub.Skills.Score, w.Skills},
		{"Expérience Professionnelle", sub.Experience.Score, w.Experience},
		{"Formation Académique", sub.Education.Score, w.Education},
		{"Compétences Linguistiques", sub.Languages.Score, w.Languages},
		{"Soft Skills", sub.SoftSkills.Score, w.SoftSkills},
	}

	details := make([]CriterionDetail, 0, len(rows))
	for _, r := range rows {
		details = append(details, CriterionDetail{
			Criterion:      r.label,
			Score:          r.value,
			WeightPercent:  r.weight * 100,
			Contribution:   round2(r.value * r.weight),
			Interpretation: interpretSubScore(r.value),
		})
	}
	return details
}

func interpretSubScore(score float64) string {
	var level string
	switch {
	case score >= 80:
		level = "Excellent"
	case score >= 60:
		level = "Bon"
	case score >= 40:
		level = "Moyen"
	default:
		level = "Faible"
	}
	return fmt.Sprintf("%s (%.1f/100)", level, score)
}

func skillAnalysis(s types.SkillScore) SkillAnalysis {
	return SkillAnalysis{
		Score:         s.Score,
		ExactScore:    s.ExactScore,
		SemanticScore: s.SemanticScore,
		Coverage:      s.Coverage,
		Matched:       s.Matched,
		Missing:       s.Missing,
		Extra:         s.Extra,
		Analysis: fmt.Sprintf(
			"Le candidat maîtrise %d des compétences requises, avec un taux de couverture de %.1f%%. %d compétence(s) clé(s) manquante(s).",
			len(s.Matched), s.Coverage, len(s.Missing)),
	}
}

func experienceAnalysis(s types.ExperienceScore) ExperienceAnalysis {
	years := "non précisée"
	if s.YearsCV != types.YearsUnknown {
		years = fmt.Sprintf("%d ans", s.YearsCV)
	}
	return ExperienceAnalysis{
		Score:         s.Score,
		YearsCV:       years,
		YearsRequired: s.RequiredBand,
		Adequacy:      s.Adequacy,
		Analysis: fmt.Sprintf(
			"Avec %s d'expérience pour %s requise(s), le niveau d'adéquation est %s.",
			years, s.RequiredBand, strings.ToLower(s.Adequacy)),
	}
}

func educationAnalysis(s types.EducationScore) EducationAnalysis {
	return EducationAnalysis{
		Score:         s.Score,
		LevelCV:       s.LevelCV,
		LevelRequired: s.LevelRequired,
		Adequacy:      s.Adequacy,
		Analysis: fmt.Sprintf(
			"Niveau académique : %s (requis : %s). Adéquation %s.",
			s.LevelCV, s.LevelRequired, strings.ToLower(s.Adequacy)),
	}
}

func candidateSummary(cv *types.CandidateProfile) CandidateSummary {
	experience := "non précisée"
	if cv.Experience.HasYears() {
		experience = fmt.Sprintf("%d ans", cv.Experience.Years)
	}
	return CandidateSummary{
		TotalExperience: experience,
		SeniorityLevel:  cv.Experience.Seniority.Level,
		AcademicLevel:   cv.Education.AcademicLevel,
		TechnicalSkills: len(cv.TechnicalSkills),
		Languages:       len(cv.Languages),
	}
}

func offerSummary(offer *types.OfferProfile) OfferSummary {
	return OfferSummary{
		JobTitle:           offer.JobTitle,
		RequiredExperience: offer.RequiredExperience,
		RequiredEducation:  offer.RequiredEducation,
		RequiredSkills:     len(offer.TechnicalSkills),
		RequiredLanguages:  len(offer.Languages),
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
