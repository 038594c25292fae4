package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/pelletier/go-toml/v2"
)

type LLMConfig struct {
	Provider string `toml:"provider"`
	Model    string `toml:"model"`
	APIKey   string `toml:"api_key"`
	BaseURL  string `toml:"base_url"`
}

type MatchingConfig struct {
	// FuzzyThreshold is the minimum token-sort similarity in [0,1] for an
	// actor match.
	FuzzyThreshold float64 `toml:"fuzzy_threshold"`
}

type ExtractionConfig struct {
	// ChunkSize is the number of words per chunk.
	ChunkSize int `toml:"chunk_size"`
	// ChunkMethod is "word" or "sentence".
	ChunkMethod string `toml:"chunk_method"`
	ChunkOverlap int   `toml:"chunk_overlap"`
	MaxTriplets  int   `toml:"max_triplets"`
}

type CatalogConfig struct {
	// ActorsPath overrides the embedded actor catalog.
	ActorsPath string `toml:"actors_path"`
	// VerbsPath overrides the built-in canonical verb table.
	VerbsPath string `toml:"verbs_path"`
}

type MemgraphConfig struct {
	URI      string `toml:"uri"`
	User     string `toml:"user"`
	Password string `toml:"password"`
}

type ServerConfig struct {
	Port  string `toml:"port"`
	Debug bool   `toml:"debug"`
}

type Config struct {
	LLM        LLMConfig        `toml:"llm"`
	Matching   MatchingConfig   `toml:"matching"`
	Extraction ExtractionConfig `toml:"extraction"`
	Catalog    CatalogConfig    `toml:"catalog"`
	Memgraph   MemgraphConfig   `toml:"memgraph"`
	Server     ServerConfig     `toml:"server"`
}

// Defaults mirror the original tool's parameters.
func defaults() Config {
	return Config{
		Matching: MatchingConfig{FuzzyThreshold: 0.8},
		Extraction: ExtractionConfig{
			ChunkSize:   900,
			ChunkMethod: "word",
		},
		Server: ServerConfig{Port: "8080"},
	}
}

// Load reads a TOML config file and fills unset values with defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file '%s': %w", path, err)
	}

	cfg := defaults()
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse TOML: %w", err)
	}
	cfg.normalize()
	return &cfg, nil
}

// Default returns the baseline config when no file is present.
func Default() *Config {
	cfg := defaults()
	cfg.normalize()
	return &cfg
}

func (c *Config) normalize() {
	if c.Matching.FuzzyThreshold <= 0 || c.Matching.FuzzyThreshold > 1 {
		c.Matching.FuzzyThreshold = 0.8
	}
	if c.Extraction.ChunkSize <= 0 {
		c.Extraction.ChunkSize = 900
	}
	if c.Extraction.ChunkMethod == "" {
		c.Extraction.ChunkMethod = "word"
	}
	if c.Server.Port == "" {
		c.Server.Port = "8080"
	}
}

// ApplyEnv overrides file values with environment variables when present.
func (c *Config) ApplyEnv() {
	if v := os.Getenv("LLM_PROVIDER"); v != "" {
		c.LLM.Provider = v
	}
	if v := os.Getenv("LLM_MODEL"); v != "" {
		c.LLM.Model = v
	}
	if v := os.Getenv("LLM_API_KEY"); v != "" {
		c.LLM.APIKey = v
	}
	if v := os.Getenv("LLM_BASE_URL"); v != "" {
		c.LLM.BaseURL = v
	}
	if v := os.Getenv("SOCIOTYPER_FUZZY_THRESHOLD"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f > 0 && f <= 1 {
			c.Matching.FuzzyThreshold = f
		}
	}
	if v := os.Getenv("SOCIOTYPER_CHUNK_SIZE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.Extraction.ChunkSize = n
		}
	}
	if v := os.Getenv("SOCIOTYPER_ACTORS_PATH"); v != "" {
		c.Catalog.ActorsPath = v
	}
	if v := os.Getenv("MEMGRAPH_URI"); v != "" {
		c.Memgraph.URI = v
	}
	if v := os.Getenv("MEMGRAPH_USER"); v != "" {
		c.Memgraph.User = v
	}
	if v := os.Getenv("MEMGRAPH_PASSWORD"); v != "" {
		c.Memgraph.Password = v
	}
	if v := os.Getenv("PORT"); v != "" {
		c.Server.Port = v
	}
}
