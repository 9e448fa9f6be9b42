package analyzer

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"cv-match-go/internal/lexicon"
	"cv-match-go/internal/logger"
	"cv-match-go/internal/types"
)

// Academic levels, ordered. A prestigious school without an explicit
// degree counts as the Bac+5 tier with a slight edge in comparisons.
const (
	LevelDoctorate   = "Bac+8 (Doctorat)"
	LevelMaster      = "Bac+5 (Master/Ingénieur)"
	LevelGrandeEcole = "Bac+5 (Grande École)"
	LevelBachelor    = "Bac+3 (Licence)"
	LevelBacPlusTwo  = "Bac+2"
	LevelBac         = "Bac"
	LevelUnspecified = "Non spécifié"
)

var academicRanks = map[string]float64{
	LevelBac:         1,
	LevelBacPlusTwo:  2,
	LevelBachelor:    3,
	LevelMaster:      5,
	LevelGrandeEcole: 5.5,
	LevelDoctorate:   8,
}

var degreePatterns = []*regexp.Regexp{
	regexp.MustCompile(`\bbac\s*\+\s*[2-8]\b`),
	regexp.MustCompile(`\bniveau\s+(?:bac\s*\+\s*[2-8]|master|licence|doctorat)\b`),
	regexp.MustCompile(`\b(?:deug|deust|licence pro|master [12]|mastère)\b`),
	regexp.MustCompile(`\b(?:diplôme d['e] ?ingénieur|ingénieur)\b`),
	regexp.MustCompile(`\b(?:doctorat|phd|thèse)\b`),
	regexp.MustCompile(`\b(?:bachelor|bsc|ba|bs)\b`),
	regexp.MustCompile(`\b(?:master|msc|ma|ms|mba)\b`),
	regexp.MustCompile(`\b(?:phd|doctorate)\b`),
}

// School patterns use an explicit leading boundary class because
// several names start with an accented letter, outside what RE2's \b
// considers a word character. Group 1 is the school name.
var schoolPatterns = []*regexp.Regexp{
	// engineering schools
	compileSchoolPattern(`école polytechnique|polytechnique|x`),
	compileSchoolPattern(`école centrale|centrale`),
	compileSchoolPattern(`école des mines|mines`),
	compileSchoolPattern(`ponts et chaussées|ponts|enpc`),
	compileSchoolPattern(`supelec|supélec|centralesupélec`),
	compileSchoolPattern(`telecom|télécom`),
	compileSchoolPattern(`ensae|ensai|ensimag`),
	compileSchoolPattern(`insa|polytech|utc|utt`),
	// business schools
	compileSchoolPattern(`hec paris|hec`),
	compileSchoolPattern(`essec`),
	compileSchoolPattern(`escp europe|escp`),
	compileSchoolPattern(`em lyon|emlyon`),
	compileSchoolPattern(`edhec`),
	compileSchoolPattern(`skema|audencia|grenoble em`),
	// universities and IEP
	compileSchoolPattern(`sciences po|institut d['e] ?études politiques|iep`),
	compileSchoolPattern(`école nationale d['e] ?administration|ena`),
	compileSchoolPattern(`paris dauphine|dauphine`),
	compileSchoolPattern(`sorbonne|panthéon-sorbonne`),
	compileSchoolPattern(`mit|stanford|harvard|oxford|cambridge`),
	compileSchoolPattern(`eth zürich|epfl`),
}

func compileSchoolPattern(alternatives string) *regexp.Regexp {
	return regexp.MustCompile(`(?:^|[^\p{L}\p{N}_])(` + alternatives + `)(?:$|[^\p{L}\p{N}_])`)
}

// Prestige tiers, checked top-down against the joined school list.
var (
	ultraPrestigeSchools = []string{"polytechnique", "x", "hec", "ena", "mit", "stanford", "harvard"}
	topTierSchools       = []string{"centrale", "mines", "ponts", "essec", "escp", "sciences po"}
	strongSchools        = []string{"telecom", "supelec", "em lyon", "edhec", "insa"}
)

// studyDomains maps detection patterns to canonical domain labels.
var studyDomains = []struct {
	pattern *regexp.Regexp
	label   string
}{
	{regexp.MustCompile(`\b(?:informatique|computer science|cs)\b`), "Informatique"},
	{regexp.MustCompile(`\b(?:mathématiques|maths|mathematics)\b`), "Mathématiques"},
	{regexp.MustCompile(`\b(?:statistiques|statistics|data science)\b`), "Statistiques / Data Science"},
	{regexp.MustCompile(`\b(?:finance|financial)\b`), "Finance"},
	{regexp.MustCompile(`(?:^|[^\p{L}\p{N}_])(?:économie|economics)\b`), "Économie"},
	{regexp.MustCompile(`\b(?:gestion|management)\b`), "Gestion / Management"},
	{regexp.MustCompile(`\b(?:ingénierie|engineering)\b`), "Ingénierie"},
	{regexp.MustCompile(`\b(?:droit|law)\b`), "Droit"},
	{regexp.MustCompile(`\b(?:physique|physics)\b`), "Physique"},
	{regexp.MustCompile(`\b(?:actuariat|actuarial)\b`), "Actuariat"},
}

// EducationExtractor detects degrees, schools and study domains and
// scores education adequacy against an offer requirement.
type EducationExtractor struct {
	degreeNames []skillPattern
}

// NewEducationExtractor compiles word-boundary patterns for the degree
// lexicon; the regex families above are shared package state.
func NewEducationExtractor(lex *lexicon.Lexicon) *EducationExtractor {
	return &EducationExtractor{degreeNames: compileSkillPatterns(lex.Degrees)}
}

// Extract returns the education profile found in a CV text.
func (e *EducationExtractor) Extract(text string) types.EducationProfile {
	lowered := strings.ToLower(text)

	degrees := e.extractDegrees(lowered)
	schools := extractSchools(lowered)
	domains := extractDomains(lowered)
	level := determineLevel(degrees, schools)
	prestige := prestigeScore(schools)

	logger.Debug().
		Int("degrees", len(degrees)).
		Int("schools", len(schools)).
		Str("level", level).
		Msg("education extraction done")

	return types.EducationProfile{
		Degrees:       degrees,
		Schools:       schools,
		Domains:       domains,
		AcademicLevel: level,
		PrestigeScore: prestige,
	}
}

func (e *EducationExtractor) extractDegrees(lowered string) []string {
	found := make(map[string]bool)
	for _, dp := range e.degreeNames {
		if dp.pattern.MatchString(lowered) {
			found[dp.name] = true
		}
	}
	for _, p := range degreePatterns {
		for _, m := range p.FindAllString(lowered, -1) {
			found[m] = true
		}
	}
	return sortedKeys(found)
}

func extractSchools(lowered string) []string {
	found := make(map[string]bool)
	for _, p := range schoolPatterns {
		if m := p.FindStringSubmatch(lowered); m != nil {
			found[m[1]] = true
		}
	}
	return sortedKeys(found)
}

func extractDomains(lowered string) []string {
	found := make(map[string]bool)
	for _, d := range studyDomains {
		if d.pattern.MatchString(lowered) {
			found[d.label] = true
		}
	}
	return sortedKeys(found)
}

// determineLevel picks the highest academic level supported by the
// detected degrees. A prestigious school stands in for a Bac+5 when no
// master-level degree is explicit.
func determineLevel(degrees, schools []string) string {
	joined := strings.ToLower(strings.Join(degrees, " "))

	if containsAny(joined, "doctorat", "phd", "thèse") {
		return LevelDoctorate
	}
	if containsAny(joined, "master", "mba", "ingénieur", "ms", "msc") {
		return LevelMaster
	}
	if len(schools) > 0 {
		return LevelGrandeEcole
	}
	if containsAny(joined, "licence", "bachelor", "bac+3", "bac + 3", "bac +3") {
		return LevelBachelor
	}
	if containsAny(joined, "bts", "dut", "bac+2", "bac + 2", "bac +2") {
		return LevelBacPlusTwo
	}
	if strings.Contains(joined, "bac") {
		return LevelBac
	}
	return LevelUnspecified
}

// prestigeScore rates the school list by tier. 50 is the neutral value
// when no school was recognized at all.
func prestigeScore(schools []string) int {
	if len(schools) == 0 {
		return 50
	}
	joined := strings.ToLower(strings.Join(schools, " "))
	if containsAny(joined, ultraPrestigeSchools...) {
		return 100
	}
	if containsAny(joined, topTierSchools...) {
		return 90
	}
	if containsAny(joined, strongSchools...) {
		return 75
	}
	return 60
}

// requiredLevel reads the education level demanded by an offer.
// Banking positions default to Bac+5 when nothing is stated.
func requiredLevel(requirement string) string {
	lowered := strings.ToLower(requirement)
	switch {
	case containsAny(lowered, "doctorat", "phd"):
		return LevelDoctorate
	case containsAny(lowered, "master", "bac+5", "bac + 5", "bac +5", "ingénieur", "mba"):
		return LevelMaster
	case containsAny(lowered, "licence", "bac+3", "bac + 3", "bac +3", "bachelor"):
		return LevelBachelor
	case containsAny(lowered, "bts", "dut", "bac+2", "bac + 2", "bac +2"):
		return LevelBacPlusTwo
	default:
		return LevelMaster
	}
}

func requiredDomains(requirement string) []string {
	lowered := strings.ToLower(requirement)
	found := make(map[string]bool)
	if containsAny(lowered, "informatique", "computer science") {
		found["Informatique"] = true
	}
	if containsAny(lowered, "finance", "financial") {
		found["Finance"] = true
	}
	if containsAny(lowered, "mathématiques", "mathematics", "quantitatif") {
		found["Mathématiques"] = true
	}
	if containsAny(lowered, "économie", "economics") {
		found["Économie"] = true
	}
	if containsAny(lowered, "statistiques", "data science") {
		found["Statistiques / Data Science"] = true
	}
	return sortedKeys(found)
}

// compareLevels scores the candidate level against the required one:
// at or above gives 100, exactly one tier below gives 80, anything
// further scales down proportionally.
func compareLevels(cvLevel, reqLevel string) float64 {
	cvRank := academicRanks[cvLevel]
	reqRank, ok := academicRanks[reqLevel]
	if !ok {
		reqRank = 5
	}
	switch {
	case cvRank >= reqRank:
		return 100
	case cvRank >= reqRank-1:
		return 80
	default:
		return cvRank / reqRank * 70
	}
}

func compareDomains(cvDomains, reqDomains []string) float64 {
	if len(reqDomains) == 0 {
		return 100
	}
	cvSet := make(map[string]bool, len(cvDomains))
	for _, d := range cvDomains {
		cvSet[strings.ToLower(d)] = true
	}
	matched := 0
	for _, d := range reqDomains {
		if cvSet[strings.ToLower(d)] {
			matched++
		}
	}
	return float64(matched) / float64(len(reqDomains)) * 100
}

// Adequacy scores an education profile against the offer's requirement
// text: 50% level match, 30% domain overlap, 20% prestige.
func (e *EducationExtractor) Adequacy(profile types.EducationProfile, requirement string) types.EducationScore {
	reqLevel := requiredLevel(requirement)
	reqDomains := requiredDomains(requirement)

	levelScore := compareLevels(profile.AcademicLevel, reqLevel)
	domainScore := compareDomains(profile.Domains, reqDomains)
	prestige := float64(profile.PrestigeScore)

	final := levelScore*0.5 + domainScore*0.3 + prestige*0.2

	var adequacy string
	switch {
	case final >= 80:
		adequacy = "Excellente"
	case final >= 65:
		adequacy = "Bonne"
	case final >= 50:
		adequacy = "Moyenne"
	default:
		adequacy = "Faible"
	}

	return types.EducationScore{
		Score:           round2(final),
		LevelCV:         profile.AcademicLevel,
		LevelRequired:   reqLevel,
		DomainsCV:       profile.Domains,
		DomainsRequired: reqDomains,
		Adequacy:        adequacy,
		Comment:         educationComment(profile, reqLevel, reqDomains),
	}
}

func educationComment(profile types.EducationProfile, reqLevel string, reqDomains []string) string {
	parts := []string{fmt.Sprintf("Niveau : %s (requis : %s)", profile.AcademicLevel, reqLevel)}

	if len(profile.Domains) > 0 {
		parts = append(parts, "Domaines : "+strings.Join(profile.Domains, ", "))
	}
	if len(reqDomains) > 0 {
		cvSet := make(map[string]bool, len(profile.Domains))
		for _, d := range profile.Domains {
			cvSet[strings.ToLower(d)] = true
		}
		var missing []string
		for _, d := range reqDomains {
			if !cvSet[strings.ToLower(d)] {
				missing = append(missing, d)
			}
		}
		if len(missing) == 0 {
			parts = append(parts, "Tous les domaines requis sont couverts.")
		} else {
			parts = append(parts, "Domaines manquants : "+strings.Join(missing, ", "))
		}
	}
	return strings.Join(parts, " | ")
}

func containsAny(s string, substrings ...string) bool {
	for _, sub := range substrings {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

func sortedKeys(set map[string]bool) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
