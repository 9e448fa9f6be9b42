package analyzer

import (
	"strings"

	"cv-match-go/internal/lexicon"
	"cv-match-go/internal/types"
)

// proficiencyWindow is how far around a language mention (in bytes of
// lowercased text) a proficiency keyword is searched for.
const proficiencyWindow = 50

// LanguageExtractor finds spoken languages and their proficiency in
// CVs and offers.
type LanguageExtractor struct {
	languages []skillPattern
	levels    []string
}

// NewLanguageExtractor compiles word-boundary patterns for the
// language lexicon. Proficiency levels keep lexicon order: CEFR codes
// first, then qualitative terms, first match wins.
func NewLanguageExtractor(lex *lexicon.Lexicon) *LanguageExtractor {
	return &LanguageExtractor{
		languages: compileSkillPatterns(lex.Languages),
		levels:    lex.ProficiencyLevels,
	}
}

// ExtractCV returns the languages mentioned in a CV. Proficiency comes
// from the nearest keyword in a ±50 char window, "Non spécifié" when
// none is present.
func (e *LanguageExtractor) ExtractCV(text string) []types.LanguageEntry {
	var entries []types.LanguageEntry
	e.scan(text, func(name string, window string) {
		level := e.findLevel(window)
		if level == "" {
			level = "non spécifié"
		}
		entries = append(entries, types.LanguageEntry{
			Language:    capitalize(name),
			Proficiency: capitalize(level),
		})
	})
	return entries
}

// ExtractRequired returns the languages an offer asks for. When no
// proficiency keyword is present the level is inferred from obligation
// wording around the mention, and the entry is flagged required when
// that wording is imperative.
func (e *LanguageExtractor) ExtractRequired(text string) []types.LanguageEntry {
	var entries []types.LanguageEntry
	e.scan(text, func(name string, window string) {
		level := e.findLevel(window)
		if level == "" {
			switch {
			case containsAny(window, "obligatoire", "impératif", "exigé"):
				level = "courant"
			case containsAny(window, "souhait", "apprécié", "plus"):
				level = "intermédiaire"
			default:
				level = "professionnel"
			}
		}
		entries = append(entries, types.LanguageEntry{
			Language:    capitalize(name),
			Proficiency: capitalize(level),
			Required:    containsAny(window, "obligatoire", "impératif"),
		})
	})
	return entries
}

// scan calls fn for the first mention of each lexicon language, with
// the surrounding context window.
func (e *LanguageExtractor) scan(text string, fn func(name, window string)) {
	lowered := strings.ToLower(text)
	for _, lang := range e.languages {
		loc := lang.pattern.FindStringIndex(lowered)
		if loc == nil {
			continue
		}
		fn(lang.name, contextWindow(lowered, loc[0], loc[1]))
	}
}

func (e *LanguageExtractor) findLevel(window string) string {
	for _, level := range e.levels {
		if strings.Contains(window, level) {
			return level
		}
	}
	return ""
}

func contextWindow(text string, start, end int) string {
	lo := start - proficiencyWindow
	if lo < 0 {
		lo = 0
	}
	hi := end + proficiencyWindow
	if hi > len(text) {
		hi = len(text)
	}
	return text[lo:hi]
}
