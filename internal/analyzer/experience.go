package analyzer

import (
	"fmt"
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"cv-match-go/internal/lexicon"
	"cv-match-go/internal/logger"
	"cv-match-go/internal/types"
)

var (
	// "5 ans d'expérience", "3 années d’exp"
	yearsPattern = regexp.MustCompile(`(\d+)\s*(?:ans?|années?)\s*(?:d['’])?(?:expérience|exp)`)
	// "2018-2022", "2019 – présent"
	periodPattern = regexp.MustCompile(`(\d{4})\s*[-–]\s*(\d{4}|présent|aujourd'hui|actuel)`)
	// "5+ ans", "3 à 5 ans"
	requiredBandPattern = regexp.MustCompile(`(\d+)\s*(?:\+|à|a)\s*(\d+)?`)
)

// ExperienceExtractor derives years of experience and seniority level
// from free text.
type ExperienceExtractor struct {
	ranks map[string]int
	// keyword patterns in deterministic order
	keywords []seniorityKeyword
}

type seniorityKeyword struct {
	word    string
	rank    int
	pattern *regexp.Regexp
}

// NewExperienceExtractor builds the extractor from the lexicon's
// seniority table.
func NewExperienceExtractor(lex *lexicon.Lexicon) *ExperienceExtractor {
	e := &ExperienceExtractor{ranks: lex.SeniorityRanks}
	for word, rank := range lex.SeniorityRanks {
		e.keywords = append(e.keywords, seniorityKeyword{
			word:    word,
			rank:    rank,
			pattern: wordPattern(word),
		})
	}
	sort.Slice(e.keywords, func(i, j int) bool { return e.keywords[i].word < e.keywords[j].word })
	return e
}

// ExtractYears returns the number of years of experience stated in the
// text, or YearsUnknown. Explicit "N ans d'expérience" mentions win
// (largest value); otherwise the summed durations of YYYY-YYYY
// periods are used.
func (e *ExperienceExtractor) ExtractYears(text string) int {
	lowered := strings.ToLower(text)

	matches := yearsPattern.FindAllStringSubmatch(lowered, -1)
	if len(matches) > 0 {
		maxYears := 0
		for _, m := range matches {
			if y, err := strconv.Atoi(m[1]); err == nil && y > maxYears {
				maxYears = y
			}
		}
		logger.Debug().Int("years", maxYears).Msg("explicit experience mention found")
		return maxYears
	}

	if years := sumPeriods(text); years > 0 {
		logger.Debug().Int("years", years).Msg("experience computed from period ranges")
		return years
	}

	return types.YearsUnknown
}

// sumPeriods totals YYYY-YYYY ranges found in the text. Open-ended
// ranges ("présent", "actuel") close at the current year. Ranges that
// run backwards or into the future are ignored.
func sumPeriods(text string) int {
	matches := periodPattern.FindAllStringSubmatch(strings.ToLower(text), -1)
	if len(matches) == 0 {
		return 0
	}

	currentYear := time.Now().Year()
	total := 0
	for _, m := range matches {
		start, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		end := currentYear
		if y, err := strconv.Atoi(m[2]); err == nil {
			end = y
		}
		if start <= end && end <= currentYear {
			total += end - start
		}
	}
	return total
}

// DetectSeniority scans for seniority keywords. When several match,
// the highest rank wins and the full set is kept.
func (e *ExperienceExtractor) DetectSeniority(text string) types.Seniority {
	lowered := strings.ToLower(text)

	var best seniorityKeyword
	var all []string
	for _, kw := range e.keywords {
		if !kw.pattern.MatchString(lowered) {
			continue
		}
		all = append(all, kw.word)
		if kw.rank > best.rank {
			best = kw
		}
	}

	if best.rank == 0 {
		return types.Seniority{Level: "non spécifié", Rank: 0}
	}
	return types.Seniority{Level: best.word, Rank: best.rank, AllLevels: all}
}

// Extract returns the full experience profile for a text.
func (e *ExperienceExtractor) Extract(text string) types.ExperienceProfile {
	return types.ExperienceProfile{
		Years:     e.ExtractYears(text),
		Seniority: e.DetectSeniority(text),
	}
}

// ParseRequiredBand reads a "5+ ans" or "3 à 5 ans" requirement into a
// [min,max] band. A missing upper bound defaults to min+5; an
// unparseable requirement defaults to [0,5].
func ParseRequiredBand(requirement string) (min, max int) {
	m := requiredBandPattern.FindStringSubmatch(strings.ToLower(requirement))
	if m == nil {
		return 0, 5
	}
	min, _ = strconv.Atoi(m[1])
	max = min + 5
	if m[2] != "" {
		if v, err := strconv.Atoi(m[2]); err == nil && v > min {
			max = v
		}
	}
	return min, max
}

// Adequacy scores candidate years against a textual requirement.
// Bands: at or above max is overqualified (100); inside the band
// scales 80..100; above half the minimum scales 50..80; below that
// scales 0..50. Unknown years score the neutral midpoint.
func (e *ExperienceExtractor) Adequacy(profile types.ExperienceProfile, requirement string) types.ExperienceScore {
	min, max := ParseRequiredBand(requirement)
	band := fmt.Sprintf("%d-%d", min, max)

	if !profile.HasYears() {
		return types.ExperienceScore{
			Score:        50,
			YearsCV:      types.YearsUnknown,
			RequiredBand: band,
			Adequacy:     "Non spécifié",
			Comment:      fmt.Sprintf("Expérience non précisée - Requis: %s ans", band),
		}
	}

	years := profile.Years
	var score float64
	var adequacy string
	halfMin := float64(min) * 0.5

	switch {
	case years >= max:
		score = 100
		adequacy = "Surqualifié"
	case years >= min:
		score = 80 + float64(years-min)*20/float64(max-min)
		adequacy = "Adéquat"
	case float64(years) >= halfMin:
		score = 50 + (float64(years)-halfMin)*30/halfMin
		adequacy = "Légèrement en-dessous"
	default:
		score = math.Max(0, float64(years)*50/halfMin)
		adequacy = "Insuffisant"
	}

	if score > 100 {
		score = 100
	}
	return types.ExperienceScore{
		Score:        round2(score),
		YearsCV:      years,
		RequiredBand: band,
		Adequacy:     adequacy,
		Comment:      fmt.Sprintf("%d ans - Requis: %s ans", years, band),
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
