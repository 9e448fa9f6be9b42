// Package lexicon holds the static reference lists used by the
// rule-based extractors: skills, degrees, languages, proficiency
// levels and seniority keywords. A Lexicon is immutable after
// construction and safe for concurrent use.
package lexicon

// Lexicon groups every reference list used during extraction.
type Lexicon struct {
	TechnicalSkills   []string
	SoftSkills        []string
	Degrees           []string
	Languages         []string
	ProficiencyLevels []string

	// SeniorityRanks maps a seniority keyword to its rank (1-5).
	SeniorityRanks map[string]int
}

// seniorityRanks follows the recruiting convention: several distinct
// keywords share rank 4 (expert-level individual contributors and
// first-line management).
var seniorityRanks = map[string]int{
	"junior":    1,
	"confirmé":  2,
	"senior":    3,
	"expert":    4,
	"lead":      4,
	"principal": 4,
	"chef":      4,
	"manager":   4,
	"directeur": 5,
}

var technicalSkills = []string{
	// Programming languages
	"python", "java", "scala", "r", "sql", "c++", "javascript", "typescript",
	"c#", ".net", "go", "kotlin", "swift",

	// Data science & AI
	"machine learning", "deep learning", "nlp", "data science", "big data",
	"pandas", "numpy", "scikit-learn", "tensorflow", "pytorch", "keras",
	"spark", "hadoop", "airflow", "mlflow",

	// Finance & risk
	"risk management", "gestion des risques", "bâle iii", "bâle iv", "solvabilité",
	"var", "value at risk", "stress testing", "backtesting", "credit scoring",
	"kyc", "aml", "lutte anti-blanchiment", "compliance", "réglementation",
	"mifid", "ifrs", "sox", "gdpr", "rgpd",

	// Infrastructure
	"cloud", "aws", "azure", "gcp", "docker", "kubernetes", "jenkins",
	"gitlab", "ci/cd", "microservices", "api rest", "graphql",
	"kafka", "rabbitmq", "elasticsearch", "mongodb", "postgresql",
	"oracle", "cassandra", "redis",

	// Methodologies
	"agile", "scrum", "devops", "safe", "kanban", "lean",

	// Security
	"cybersécurité", "sécurité informatique", "pki", "cryptographie",
	"authentification", "oauth", "saml", "pentest",

	// Business intelligence
	"power bi", "tableau", "qlik", "sas", "alteryx", "talend",

	// Core banking
	"swift", "sepa", "t2s", "payments", "paiements", "clearing",
	"settlement", "core banking", "temenos", "finastra",
}

var softSkills = []string{
	"leadership", "communication", "travail d'équipe", "collaboration",
	"autonomie", "rigueur", "analyse", "esprit d'analyse",
	"résolution de problèmes", "créativité", "innovation",
	"adaptabilité", "gestion du stress", "organisation",
	"sens du service", "orientation client", "pédagogie",
	"négociation", "persuasion", "esprit critique",
	"proactivité", "résilience", "éthique", "intégrité",
}

var degrees = []string{
	"bac+2", "bac+3", "bac+4", "bac+5", "bac+6",
	"deug", "deust", "licence", "licence pro", "master", "mastère", "doctorat", "dut", "dts",
	"diplôme d'ingénieur", "ingénieur", "école d'ingénieur",
	"diplôme de commerce", "école de commerce",
	"bts", "iut",
	"bachelor", "bsc", "ba", "bs",
	"master of science", "msc", "ma", "ms", "mba",
	"phd", "doctorate",
}

var languages = []string{
	"français", "anglais", "allemand", "espagnol", "italien",
	"portugais", "néerlandais", "belge", "suisse",
	"chinois", "japonais", "coréen", "arabe", "russe",
	"hindi", "bengali", "thaï", "vietnamien",
}

// proficiencyLevels are searched in order inside the context window
// around a language mention; the first match wins, so CEFR codes take
// precedence over the qualitative terms.
var proficiencyLevels = []string{
	"a1", "a2", "b1", "b2", "c1", "c2",
	"débutant", "intermédiaire", "avancé", "courant", "bilingue", "natif",
}

// Default returns the built-in reference lexicon, optionally extended
// with extra technical and soft skills (e.g. from configuration).
// The returned value shares no state with any other Lexicon.
func Default(extraTechnical, extraSoft []string) *Lexicon {
	lex := &Lexicon{
		TechnicalSkills:   append(cloneList(technicalSkills), extraTechnical...),
		SoftSkills:        append(cloneList(softSkills), extraSoft...),
		Degrees:           cloneList(degrees),
		Languages:         cloneList(languages),
		ProficiencyLevels: cloneList(proficiencyLevels),
		SeniorityRanks:    make(map[string]int, len(seniorityRanks)),
	}
	for k, v := range seniorityRanks {
		lex.SeniorityRanks[k] = v
	}
	return lex
}

func cloneList(src []string) []string {
	dst := make([]string, len(src))
	copy(dst, src)
	return dst
}
