package types

import "time"

// SkillKind distinguishes technical skills from soft skills.
type SkillKind string

const (
	// SkillTechnical is a hard skill from the technical lexicon.
	SkillTechnical SkillKind = "technical"
	// SkillSoft is a behavioural skill from the soft-skill lexicon.
	SkillSoft SkillKind = "soft"
)

// YearsUnknown marks that no experience signal was found in the text.
// It is distinct from 0 years: downstream scoring treats it as a
// neutral midpoint, never as a penalty.
const YearsUnknown = -1

// SkillMatch is one lexicon entry found in a text.
// Confidence grows with the mention count and saturates at 1.0.
type SkillMatch struct {
	Name       string    `json:"name"`
	Confidence float64   `json:"confidence"`
	Mentions   int       `json:"mentions"`
	Kind       SkillKind `json:"kind"`
}

// Seniority is the career level detected from keywords, independent of
// the raw year count. Rank is 0 when no keyword matched.
type Seniority struct {
	Level     string   `json:"level"`
	Rank      int      `json:"rank"`
	AllLevels []string `json:"all_levels,omitempty"`
}

// ExperienceProfile summarizes professional experience found in a CV.
type ExperienceProfile struct {
	// Years of experience, or YearsUnknown.
	Years     int       `json:"years"`
	Seniority Seniority `json:"seniority"`
}

// HasYears reports whether an explicit year count was detected.
func (e ExperienceProfile) HasYears() bool {
	return e.Years != YearsUnknown
}

// EducationProfile summarizes the academic background found in a CV.
type EducationProfile struct {
	Degrees       []string `json:"degrees"`
	Schools       []string `json:"schools"`
	Domains       []string `json:"domains"`
	AcademicLevel string   `json:"academic_level"`
	// PrestigeScore is tier-based, 0-100, 50 when no school matched.
	PrestigeScore int `json:"prestige_score"`
}

// LanguageEntry is a language detected in a CV or required by an offer.
type LanguageEntry struct {
	Language    string `json:"language"`
	Proficiency string `json:"proficiency"`
	// Required is only meaningful on the offer side.
	Required bool `json:"required,omitempty"`
}

// PersonalInfo carries partially masked contact details. Full values
// never leave the analyzer.
type PersonalInfo struct {
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
}

// CandidateProfile is the immutable result of analyzing a CV text.
// It is produced once per request and consumed by the scoring engine.
type CandidateProfile struct {
	PersonalInfo    PersonalInfo      `json:"personal_info"`
	TechnicalSkills []SkillMatch      `json:"technical_skills"`
	SoftSkills      []SkillMatch      `json:"soft_skills"`
	Experience      ExperienceProfile `json:"experience"`
	Education       EducationProfile  `json:"education"`
	Languages       []LanguageEntry   `json:"languages"`
	Text            string            `json:"-"`
	TextLength      int               `json:"text_length"`
}

// OfferMetadata groups secondary attributes of a job offer.
type OfferMetadata struct {
	ContractType string `json:"contract_type,omitempty"`
	Location     string `json:"location,omitempty"`
	Salary       string `json:"salary,omitempty"`
}

// OfferProfile is the immutable result of analyzing an offer text.
type OfferProfile struct {
	JobTitle           string          `json:"job_title"`
	TechnicalSkills    []SkillMatch    `json:"technical_skills"`
	SoftSkills         []SkillMatch    `json:"soft_skills"`
	RequiredExperience string          `json:"required_experience"`
	RequiredEducation  string          `json:"required_education"`
	Languages          []LanguageEntry `json:"languages"`
	Metadata           OfferMetadata   `json:"metadata"`
	Text               string          `json:"-"`
}

// SkillScore is the hybrid skills sub-score: 70% exact coverage of the
// required list, 30% semantic similarity between the two skill lists.
type SkillScore struct {
	Score         float64  `json:"score"`
	ExactScore    float64  `json:"exact_score"`
	SemanticScore float64  `json:"semantic_score"`
	Coverage      float64  `json:"coverage"`
	Matched       []string `json:"matched"`
	Missing       []string `json:"missing"`
	Extra         []string `json:"extra"`
}

// ExperienceScore is the experience adequacy sub-score.
type ExperienceScore struct {
	Score        float64 `json:"score"`
	YearsCV      int     `json:"years_cv"`
	RequiredBand string  `json:"required_band"`
	Adequacy     string  `json:"adequacy"`
	Comment      string  `json:"comment"`
}

// EducationScore is the education adequacy sub-score.
type EducationScore struct {
	Score           float64  `json:"score"`
	LevelCV         string   `json:"level_cv"`
	LevelRequired   string   `json:"level_required"`
	DomainsCV       []string `json:"domains_cv"`
	DomainsRequired []string `json:"domains_required"`
	Adequacy        string   `json:"adequacy"`
	Comment         string   `json:"comment"`
}

// CoverageScore is a plain coverage sub-score used for languages and
// soft skills. Score is 100 when nothing is required.
type CoverageScore struct {
	Score    float64  `json:"score"`
	Present  []string `json:"present"`
	Required []string `json:"required"`
	Matched  []string `json:"matched"`
	Missing  []string `json:"missing"`
	Comment  string   `json:"comment"`
}

// SubScores groups the five per-criterion sub-scores.
type SubScores struct {
	Skills     SkillScore      `json:"skills"`
	Experience ExperienceScore `json:"experience"`
	Education  EducationScore  `json:"education"`
	Languages  CoverageScore   `json:"languages"`
	SoftSkills CoverageScore   `json:"soft_skills"`
}

// Weights are the relative criterion weights used for the final score.
// They must sum to 1.0.
type Weights struct {
	Skills     float64 `json:"skills" yaml:"skills"`
	Experience float64 `json:"experience" yaml:"experience"`
	Education  float64 `json:"education" yaml:"education"`
	Languages  float64 `json:"languages" yaml:"languages"`
	SoftSkills float64 `json:"soft_skills" yaml:"soft_skills"`
}

// Sum returns the total of all weights.
func (w Weights) Sum() float64 {
	return w.Skills + w.Experience + w.Education + w.Languages + w.SoftSkills
}

// Tier labels, derived from the final score by fixed thresholds.
const (
	TierExcellent = "Excellent"
	TierGood      = "Bon"
	TierAverage   = "Moyen"
	TierWeak      = "Faible"
)

// ScoreResult is the final, explainable matching result. All fields
// are plain values so any renderer can consume it without reaching
// back into the engine.
type ScoreResult struct {
	FinalScore      float64   `json:"final_score"`
	Tier            string    `json:"tier"`
	SubScores       SubScores `json:"sub_scores"`
	Weights         Weights   `json:"weights"`
	Recommendations []string  `json:"recommendations"`
}

// MatchResult bundles everything produced for one analyze request. It
// is what the result cache stores under the session ID.
type MatchResult struct {
	SessionID string            `json:"session_id"`
	CreatedAt time.Time         `json:"created_at"`
	Candidate *CandidateProfile `json:"candidate"`
	Offer     *OfferProfile     `json:"offer"`
	Score     *ScoreResult      `json:"score"`
}
