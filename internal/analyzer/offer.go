package analyzer

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"cv-match-go/internal/lexicon"
	"cv-match-go/internal/logger"
	"cv-match-go/internal/types"
)

var jobTitlePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?:poste|titre|intitulé)\s*[:\-]\s*(.+)`),
	regexp.MustCompile(`(?:nous recherchons|recrutons)\s+(?:un|une)\s+(.+)`),
	regexp.MustCompile(`(?:offre d['e]emploi)\s*[:\-]\s*(.+)`),
}

var jobKeywords = []string{
	"data scientist", "analyst", "developer", "engineer", "manager",
	"consultant", "architect", "specialist", "analyste", "développeur",
	"ingénieur", "responsable", "chargé", "chef",
}

var requiredExperiencePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(\d+)\+?\s*ans?\s+d['e]expérience`),
	regexp.MustCompile(`expérience\s+(?:de|d')\s*(\d+)\+?\s+ans?`),
	regexp.MustCompile(`minimum\s+(\d+)\s+ans?`),
	regexp.MustCompile(`(\d+)\s+(?:à|a)\s+(\d+)\s+ans?`),
}

var requiredEducationPatterns = []*regexp.Regexp{
	regexp.MustCompile(`bac\s*\+\s*[2-8]`),
	regexp.MustCompile(`master|ingénieur|doctorat|licence|bachelor|mba`),
	regexp.MustCompile(`diplôme\s+(?:master|ingénieur|licence)`),
	regexp.MustCompile(`formation\s+(?:de\s+niveau\s+)?(?:bac\+\d|master|ingénieur)`),
}

var contractTypes = []struct {
	keyword string
	label   string
}{
	{"cdi", "CDI"},
	{"cdd", "CDD"},
	{"stage", "Stage"},
	{"alternance", "Alternance"},
	{"freelance", "Freelance"},
	{"intérim", "Intérim"},
}

var knownLocations = []string{
	"paris", "lyon", "marseille", "toulouse", "nice", "nantes",
	"strasbourg", "montpellier", "bordeaux", "lille", "rennes",
	"remote", "télétravail", "distance",
}

var salaryPattern = regexp.MustCompile(`(\d+)\s*(?:k€|k|000)\s*(?:€|euros?)?`)

// OfferAnalyzer extracts the selection criteria from a job-offer text.
type OfferAnalyzer struct {
	skills    *SkillExtractor
	languages *LanguageExtractor
}

// NewOfferAnalyzer builds an analyzer over the given lexicon.
func NewOfferAnalyzer(lex *lexicon.Lexicon) *OfferAnalyzer {
	return &OfferAnalyzer{
		skills:    NewSkillExtractor(lex),
		languages: NewLanguageExtractor(lex),
	}
}

// Analyze normalizes the raw offer text and extracts the offer
// profile: title, required skills, experience, education, languages
// and metadata.
func (a *OfferAnalyzer) Analyze(rawText string) *types.OfferProfile {
	text := NormalizeText(rawText)

	profile := &types.OfferProfile{
		JobTitle:           extractJobTitle(text),
		TechnicalSkills:    a.skills.ExtractTechnical(text),
		SoftSkills:         a.skills.ExtractSoft(text),
		RequiredExperience: extractRequiredExperience(text),
		RequiredEducation:  extractRequiredEducation(text),
		Languages:          a.languages.ExtractRequired(text),
		Metadata:           extractMetadata(text),
		Text:               text,
	}

	logger.Info().
		Str("job_title", profile.JobTitle).
		Int("required_skills", len(profile.TechnicalSkills)).
		Msg("offer analysis done")

	return profile
}

// extractJobTitle tries, in order: an explicit "Poste :" style label,
// the first line when it is short, then context around a job keyword.
func extractJobTitle(text string) string {
	lowered := strings.ToLower(text)

	for _, p := range jobTitlePatterns {
		if loc := p.FindStringSubmatchIndex(lowered); loc != nil {
			// Slice the original text so the casing survives.
			title := strings.TrimSpace(text[loc[2]:loc[3]])
			return truncate(title, 100)
		}
	}

	lines := strings.Split(text, "\n")
	if len(lines) > 0 && len(lines[0]) < 100 {
		first := strings.TrimSpace(lines[0])
		if len(strings.Fields(first)) >= 2 {
			return first
		}
	}

	for _, keyword := range jobKeywords {
		idx := strings.Index(lowered, keyword)
		if idx < 0 {
			continue
		}
		lo := idx - 30
		if lo < 0 {
			lo = 0
		}
		for lo < len(text) && !utf8.RuneStart(text[lo]) {
			lo++
		}
		hi := idx + 50
		if hi > len(text) {
			hi = len(text)
		}
		for hi > lo && hi < len(text) && !utf8.RuneStart(text[hi]) {
			hi--
		}
		return truncate(strings.TrimSpace(text[lo:hi]), 100)
	}

	return "Poste non spécifié"
}

// extractRequiredExperience returns the offer's experience requirement
// as text: an explicit pattern match first, then a seniority wording
// heuristic.
func extractRequiredExperience(text string) string {
	lowered := strings.ToLower(text)

	for _, p := range requiredExperiencePatterns {
		if m := p.FindString(lowered); m != "" {
			return m
		}
	}

	switch {
	case containsAny(lowered, "junior", "débutant"):
		return "0-2 ans (Junior)"
	case containsAny(lowered, "senior", "confirmé"):
		return "5+ ans (Senior)"
	case strings.Contains(lowered, "expert"):
		return "10+ ans (Expert)"
	}
	return "Non spécifié"
}

// extractRequiredEducation joins every distinct education requirement
// mention found in the text.
func extractRequiredEducation(text string) string {
	lowered := strings.ToLower(text)

	seen := make(map[string]bool)
	var found []string
	for _, p := range requiredEducationPatterns {
		for _, m := range p.FindAllString(lowered, -1) {
			if !seen[m] {
				seen[m] = true
				found = append(found, m)
			}
		}
	}
	if len(found) == 0 {
		return "Non spécifié"
	}
	return strings.Join(found, ", ")
}

func extractMetadata(text string) types.OfferMetadata {
	lowered := strings.ToLower(text)
	var meta types.OfferMetadata

	for _, ct := range contractTypes {
		if strings.Contains(lowered, ct.keyword) {
			meta.ContractType = ct.label
			break
		}
	}
	for _, loc := range knownLocations {
		if strings.Contains(lowered, loc) {
			meta.Location = capitalize(loc)
			break
		}
	}
	meta.Salary = salaryPattern.FindString(lowered)

	return meta
}

// truncate cuts to at most n bytes without splitting a rune.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
