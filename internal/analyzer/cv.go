package analyzer

import (
	"cv-match-go/internal/lexicon"
	"cv-match-go/internal/logger"
	"cv-match-go/internal/types"
)

// CVAnalyzer runs every extractor over a CV text and assembles the
// candidate profile. It is stateless and safe for concurrent use.
type CVAnalyzer struct {
	skills     *SkillExtractor
	experience *ExperienceExtractor
	education  *EducationExtractor
	languages  *LanguageExtractor
}

// NewCVAnalyzer builds an analyzer over the given lexicon.
func NewCVAnalyzer(lex *lexicon.Lexicon) *CVAnalyzer {
	return &CVAnalyzer{
		skills:     NewSkillExtractor(lex),
		experience: NewExperienceExtractor(lex),
		education:  NewEducationExtractor(lex),
		languages:  NewLanguageExtractor(lex),
	}
}

// Analyze normalizes the raw CV text and extracts the full candidate
// profile. Absence of any signal is recorded as a value, never as an
// error.
func (a *CVAnalyzer) Analyze(rawText string) *types.CandidateProfile {
	text := NormalizeText(rawText)

	profile := &types.CandidateProfile{
		PersonalInfo:    extractPersonalInfo(text),
		TechnicalSkills: a.skills.ExtractTechnical(text),
		SoftSkills:      a.skills.ExtractSoft(text),
		Experience:      a.experience.Extract(text),
		Education:       a.education.Extract(text),
		Languages:       a.languages.ExtractCV(text),
		Text:            text,
		TextLength:      len(text),
	}

	logger.Info().
		Int("technical_skills", len(profile.TechnicalSkills)).
		Int("years", profile.Experience.Years).
		Int("languages", len(profile.Languages)).
		Msg("CV analysis done")

	return profile
}
