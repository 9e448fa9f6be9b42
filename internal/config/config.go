package config

import (
	"fmt"
	"math"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"cv-match-go/internal/types"
)

// ServerConfig holds the HTTP server settings.
type ServerConfig struct {
	Address string `yaml:"address"` // e.g. ":8080"
	// APIKey guards the API when non-empty (X-API-Key header).
	APIKey string `yaml:"api_key"`
}

// EmbeddingConfig configures the OpenAI-compatible embedding backend.
type EmbeddingConfig struct {
	APIKey     string `yaml:"api_key"`
	Model      string `yaml:"model"`
	Dimensions int    `yaml:"dimensions"`
	BaseURL    string `yaml:"base_url"`
}

// TierThresholds are the score cut-offs for the qualitative tiers.
// One canonical table is used everywhere.
type TierThresholds struct {
	Excellent float64 `yaml:"excellent"`
	Good      float64 `yaml:"good"`
	Average   float64 `yaml:"average"`
}

// ScoringConfig holds criterion weights and tier thresholds.
type ScoringConfig struct {
	Weights    types.Weights  `yaml:"weights"`
	Thresholds TierThresholds `yaml:"thresholds"`
}

// Validate checks that the weights sum to 1.0 and the thresholds are
// strictly decreasing.
func (s ScoringConfig) Validate() error {
	if math.Abs(s.Weights.Sum()-1.0) > 0.001 {
		return fmt.Errorf("scoring weights must sum to 1.0, got %.3f", s.Weights.Sum())
	}
	if !(s.Thresholds.Excellent > s.Thresholds.Good && s.Thresholds.Good > s.Thresholds.Average) {
		return fmt.Errorf("tier thresholds must be strictly decreasing: %.0f/%.0f/%.0f",
			s.Thresholds.Excellent, s.Thresholds.Good, s.Thresholds.Average)
	}
	return nil
}

// LexiconConfig extends the built-in reference lists.
type LexiconConfig struct {
	ExtraTechnicalSkills []string `yaml:"extra_technical_skills"`
	ExtraSoftSkills      []string `yaml:"extra_soft_skills"`
}

// LoggerConfig mirrors logger.Config for yaml loading.
type LoggerConfig struct {
	Level        string `yaml:"level"`
	Format       string `yaml:"format"`
	TimeFormat   string `yaml:"time_format"`
	ReportCaller bool   `yaml:"report_caller"`
}

// Config is the application configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Logger    LoggerConfig    `yaml:"logger"`
	Embedding EmbeddingConfig `yaml:"embedding"`
	Scoring   ScoringConfig   `yaml:"scoring"`
	Lexicon   LexiconConfig   `yaml:"lexicon"`

	// MinTextLength is the minimum accepted length for CV and offer
	// texts; shorter inputs are rejected at the boundary.
	MinTextLength int `yaml:"min_text_length"`
	// CacheTTLMinutes is how long match results stay retrievable.
	CacheTTLMinutes int `yaml:"cache_ttl_minutes"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Server: ServerConfig{Address: ":8080"},
		Logger: LoggerConfig{Level: "info", Format: "json"},
		Embedding: EmbeddingConfig{
			Model:      "text-embedding-v3",
			Dimensions: 1024,
		},
		Scoring: ScoringConfig{
			Weights: types.Weights{
				Skills:     0.45,
				Experience: 0.25,
				Education:  0.15,
				Languages:  0.10,
				SoftSkills: 0.05,
			},
			Thresholds: TierThresholds{Excellent: 80, Good: 65, Average: 50},
		},
		MinTextLength:   50,
		CacheTTLMinutes: 60,
	}
}

// LoadConfig loads the configuration from the given yaml file. When
// path is empty, common locations are searched; when no file is found
// the defaults are returned. EMBEDDING_API_KEY overrides the file
// value so the key never has to live on disk.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		searchPaths := []string{
			"config.yaml",
			"./config.yaml",
			"../config.yaml",
			filepath.Join(os.Getenv("HOME"), ".cv-match", "config.yaml"),
		}
		if execPath, err := os.Executable(); err == nil {
			searchPaths = append(searchPaths, filepath.Join(filepath.Dir(execPath), "config.yaml"))
		}
		for _, p := range searchPaths {
			if _, err := os.Stat(p); err == nil {
				path = p
				break
			}
		}
		if path == "" {
			cfg := Default()
			applyEnvOverrides(cfg)
			return cfg, nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file %s: %w", path, err)
	}

	applyEnvOverrides(cfg)

	if err := cfg.Scoring.Validate(); err != nil {
		return nil, fmt.Errorf("invalid scoring config: %w", err)
	}
	if cfg.MinTextLength <= 0 {
		cfg.MinTextLength = 50
	}
	if cfg.CacheTTLMinutes <= 0 {
		cfg.CacheTTLMinutes = 60
	}
	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if key := os.Getenv("EMBEDDING_API_KEY"); key != "" {
		cfg.Embedding.APIKey = key
	}
	if url := os.Getenv("EMBEDDING_BASE_URL"); url != "" {
		cfg.Embedding.BaseURL = url
	}
}
