package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ServerConfig holds the HTTP listener settings.
type ServerConfig struct {
	Addr           string `yaml:"addr"`
	FrontendOrigin string `yaml:"frontend_origin"`
}

// PathsConfig points at the on-disk layout: raw per-ayah sources, consolidated
// per-surah documents, and the translation/reflection cache.
type PathsConfig struct {
	DataDir   string `yaml:"data_dir"`
	OutputDir string `yaml:"output_dir"`
	CacheDir  string `yaml:"cache_dir"`
}

// QdrantConfig contains connection details for the vector db. The host and api
// key come from env (QDRANT_HOST / QDRANT_API_KEY) so they stay out of the file.
type QdrantConfig struct {
	HostEnv    string `yaml:"host_env"`
	APIKeyEnv  string `yaml:"api_key_env"`
	Collection string `yaml:"collection"`
	VectorSize uint64 `yaml:"vector_size"`
}

// EmbeddingConfig configures the Hugging Face feature-extraction client.
type EmbeddingConfig struct {
	BaseURL   string `yaml:"base_url"`
	APIKeyEnv string `yaml:"api_key_env"`
	Model     string `yaml:"model"`
}

// TranslationConfig maps target language codes onto translation models. The
// zero value gets a small default table (arabic source).
type TranslationConfig struct {
	BaseURL   string            `yaml:"base_url"`
	APIKeyEnv string            `yaml:"api_key_env"`
	Models    map[string]string `yaml:"models"`
}

// ReflectionConfig selects the LLM used for /reflect.
type ReflectionConfig struct {
	Provider    string  `yaml:"provider"` // "openai" or "gemini"
	Model       string  `yaml:"model"`
	Temperature float64 `yaml:"temperature"`
	APIKeyEnv   string  `yaml:"api_key_env"`
}

type Config struct {
	Server      ServerConfig      `yaml:"server"`
	Paths       PathsConfig       `yaml:"paths"`
	Qdrant      QdrantConfig      `yaml:"qdrant"`
	Embedding   EmbeddingConfig   `yaml:"embedding"`
	Translation TranslationConfig `yaml:"translation"`
	Reflection  ReflectionConfig  `yaml:"reflection"`
}

// Load reads a config from the given path. A missing file is not an error; you
// just get the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			cfg := defaultConfig()
			return cfg, nil
		}
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	applyDefaults(&cfg)
	if err := validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func validate(cfg *Config) error {
	switch cfg.Reflection.Provider {
	case "openai", "gemini":
	default:
		return fmt.Errorf("unknown reflection provider %q", cfg.Reflection.Provider)
	}
	if cfg.Qdrant.VectorSize == 0 {
		return errors.New("qdrant vector_size must be set")
	}
	return nil
}

func defaultConfig() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = ":1323"
	}
	if cfg.Server.FrontendOrigin == "" {
		cfg.Server.FrontendOrigin = "http://localhost:5173"
	}
	if cfg.Paths.DataDir == "" {
		cfg.Paths.DataDir = "data"
	}
	if cfg.Paths.OutputDir == "" {
		cfg.Paths.OutputDir = "output"
	}
	if cfg.Paths.CacheDir == "" {
		cfg.Paths.CacheDir = "cache"
	}
	if cfg.Qdrant.HostEnv == "" {
		cfg.Qdrant.HostEnv = "QDRANT_HOST"
	}
	if cfg.Qdrant.APIKeyEnv == "" {
		cfg.Qdrant.APIKeyEnv = "QDRANT_API_KEY"
	}
	if cfg.Qdrant.Collection == "" {
		cfg.Qdrant.Collection = "tafsir"
	}
	if cfg.Qdrant.VectorSize == 0 {
		cfg.Qdrant.VectorSize = 512
	}
	if cfg.Embedding.BaseURL == "" {
		cfg.Embedding.BaseURL = "https://router.huggingface.co/hf-inference"
	}
	if cfg.Embedding.APIKeyEnv == "" {
		cfg.Embedding.APIKeyEnv = "HF_API_KEY"
	}
	if cfg.Embedding.Model == "" {
		cfg.Embedding.Model = "sentence-transformers/distiluse-base-multilingual-cased-v2"
	}
	if cfg.Translation.BaseURL == "" {
		cfg.Translation.BaseURL = "https://router.huggingface.co/hf-inference"
	}
	if cfg.Translation.APIKeyEnv == "" {
		cfg.Translation.APIKeyEnv = "HF_API_KEY"
	}
	if len(cfg.Translation.Models) == 0 {
		cfg.Translation.Models = map[string]string{
			"en": "Helsinki-NLP/opus-mt-ar-en",
			"fr": "Helsinki-NLP/opus-mt-ar-fr",
			"ru": "Helsinki-NLP/opus-mt-ar-ru",
			"tr": "Helsinki-NLP/opus-mt-ar-tr",
		}
	}
	if cfg.Reflection.Provider == "" {
		cfg.Reflection.Provider = "openai"
	}
	if cfg.Reflection.Model == "" {
		if cfg.Reflection.Provider == "gemini" {
			cfg.Reflection.Model = "gemini-2.0-flash"
		} else {
			cfg.Reflection.Model = "gpt-4o"
		}
	}
	if cfg.Reflection.Temperature == 0 {
		cfg.Reflection.Temperature = 0.6
	}
	if cfg.Reflection.APIKeyEnv == "" {
		cfg.Reflection.APIKeyEnv = "OPENAI_API_KEY"
	}
}
