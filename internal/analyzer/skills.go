package analyzer

import (
	"regexp"
	"sort"
	"strings"

	"cv-match-go/internal/lexicon"
	"cv-match-go/internal/logger"
	"cv-match-go/internal/types"
)

// SkillExtractor finds lexicon skills in free text by whole-word
// matching. Patterns are compiled once at construction; the extractor
// is safe for concurrent use.
type SkillExtractor struct {
	technical []skillPattern
	soft      []skillPattern
}

type skillPattern struct {
	name    string
	pattern *regexp.Regexp
}

// NewSkillExtractor compiles a word-boundary pattern for every entry
// in the technical and soft skill lists.
func NewSkillExtractor(lex *lexicon.Lexicon) *SkillExtractor {
	e := &SkillExtractor{
		technical: compileSkillPatterns(lex.TechnicalSkills),
		soft:      compileSkillPatterns(lex.SoftSkills),
	}
	logger.Debug().
		Int("technical_skills", len(e.technical)).
		Int("soft_skills", len(e.soft)).
		Msg("skill extractor initialized")
	return e
}

func compileSkillPatterns(names []string) []skillPattern {
	patterns := make([]skillPattern, 0, len(names))
	seen := make(map[string]bool, len(names))
	for _, name := range names {
		name = strings.ToLower(name)
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		patterns = append(patterns, skillPattern{
			name:    name,
			pattern: wordPattern(name),
		})
	}
	return patterns
}

// wordPattern compiles a whole-word pattern for a lexicon entry. \b is
// ASCII-only in RE2, so entries whose edges are accented letters
// (éthique, confirmé) or symbols (c++, .net) get an explicit
// non-word-character boundary instead.
func wordPattern(name string) *regexp.Regexp {
	lead := `\b`
	if !isASCIIWordByte(name[0]) {
		lead = `(?:^|[^\p{L}\p{N}_])`
	}
	trail := `\b`
	if !isASCIIWordByte(name[len(name)-1]) {
		trail = `(?:$|[^\p{L}\p{N}_])`
	}
	return regexp.MustCompile(lead + regexp.QuoteMeta(name) + trail)
}

func isASCIIWordByte(b byte) bool {
	return b >= 'a' && b <= 'z' || b >= '0' && b <= '9' || b >= 'A' && b <= 'Z' || b == '_'
}

// ExtractTechnical returns every technical skill mentioned in the
// text. Confidence starts at 0.6 for a single mention and grows by
// 0.1 per extra mention, capped at 1.0.
func (e *SkillExtractor) ExtractTechnical(text string) []types.SkillMatch {
	matches := extractSkills(e.technical, text, types.SkillTechnical, 0.6, 0.1)
	logger.Debug().Int("found", len(matches)).Msg("technical skill extraction done")
	return matches
}

// ExtractSoft returns every soft skill mentioned in the text.
// Confidence starts at 0.5 and grows by 0.15 per extra mention,
// capped at 1.0.
func (e *SkillExtractor) ExtractSoft(text string) []types.SkillMatch {
	matches := extractSkills(e.soft, text, types.SkillSoft, 0.5, 0.15)
	logger.Debug().Int("found", len(matches)).Msg("soft skill extraction done")
	return matches
}

func extractSkills(patterns []skillPattern, text string, kind types.SkillKind, base, step float64) []types.SkillMatch {
	lowered := strings.ToLower(text)
	var found []types.SkillMatch
	for _, sp := range patterns {
		mentions := len(sp.pattern.FindAllStringIndex(lowered, -1))
		if mentions == 0 {
			continue
		}
		confidence := base + float64(mentions-1)*step
		if confidence > 1.0 {
			confidence = 1.0
		}
		found = append(found, types.SkillMatch{
			Name:       sp.name,
			Confidence: confidence,
			Mentions:   mentions,
			Kind:       kind,
		})
	}
	// Confidence descending, name ascending as the tie-break so the
	// output order is deterministic.
	sort.Slice(found, func(i, j int) bool {
		if found[i].Confidence != found[j].Confidence {
			return found[i].Confidence > found[j].Confidence
		}
		return found[i].Name < found[j].Name
	})
	return found
}

// SkillCoverage describes how a candidate skill list covers a
// required list. Rate is a percentage; a vacuous requirement is full
// coverage.
type SkillCoverage struct {
	Rate    float64
	Matched []string
	Missing []string
	Extra   []string
}

// Coverage computes exact name coverage of required skills by
// candidate skills. Name lists in the result are sorted.
func Coverage(candidate, required []types.SkillMatch) SkillCoverage {
	if len(required) == 0 {
		return SkillCoverage{Rate: 100.0, Matched: []string{}, Missing: []string{}, Extra: []string{}}
	}

	cvSet := nameSet(candidate)
	reqSet := nameSet(required)

	cov := SkillCoverage{Matched: []string{}, Missing: []string{}, Extra: []string{}}
	for name := range reqSet {
		if cvSet[name] {
			cov.Matched = append(cov.Matched, name)
		} else {
			cov.Missing = append(cov.Missing, name)
		}
	}
	for name := range cvSet {
		if !reqSet[name] {
			cov.Extra = append(cov.Extra, name)
		}
	}
	sort.Strings(cov.Matched)
	sort.Strings(cov.Missing)
	sort.Strings(cov.Extra)

	cov.Rate = float64(len(cov.Matched)) / float64(len(reqSet)) * 100
	if cov.Rate > 100 {
		cov.Rate = 100
	}
	return cov
}

func nameSet(skills []types.SkillMatch) map[string]bool {
	set := make(map[string]bool, len(skills))
	for _, s := range skills {
		set[strings.ToLower(s.Name)] = true
	}
	return set
}
