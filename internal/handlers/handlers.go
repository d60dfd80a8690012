package handlers

import (
	"context"
	"os"
	"regexp"

	"tafsir/internal/cache"
	"tafsir/internal/config"
	"tafsir/internal/embedding"
	"tafsir/internal/llm"
	"tafsir/internal/tafsir"
	"tafsir/internal/translate"
	"tafsir/internal/vector"
)

// lang comes straight from the query string and ends up in cache file names,
// so only accept plain language codes.
var langPattern = regexp.MustCompile(`^[a-z]{2,8}$`)

func validLang(lang string) bool {
	return langPattern.MatchString(lang)
}

// ReturnType - JSON envelope for every response.
type ReturnType struct {
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

// Embedder turns text into a vector.
type Embedder interface {
	Embed(text string) ([]float32, error)
}

// Searcher runs a nearest-neighbor query with optional author/surah filters.
type Searcher interface {
	Search(embeddings []float32, limit uint64, author string, surah int) ([]vector.ScoredEntry, error)
}

// Translator renders text into a target language.
type Translator interface {
	Translate(text, lang string) (string, error)
}

// Handler - Owns every client the endpoints delegate to.
type Handler struct {
	Store      *tafsir.Store
	Embedder   Embedder
	Searcher   Searcher
	Translator Translator
	Reflector  llm.Reflector
	Cache      *cache.Cache
}

// NewHandler wires the real clients from config.
func NewHandler(ctx context.Context, cfg *config.Config) (*Handler, error) {
	embedder, err := embedding.NewClient(embedding.Config{
		BaseURL:   cfg.Embedding.BaseURL,
		APIKeyEnv: cfg.Embedding.APIKeyEnv,
		Model:     cfg.Embedding.Model,
	})
	if err != nil {
		return nil, err
	}

	translator, err := translate.NewClient(translate.Config{
		BaseURL:   cfg.Translation.BaseURL,
		APIKeyEnv: cfg.Translation.APIKeyEnv,
		Models:    cfg.Translation.Models,
	})
	if err != nil {
		return nil, err
	}

	reflector, err := llm.NewReflector(ctx, cfg.Reflection)
	if err != nil {
		return nil, err
	}

	vectorDb, err := vector.Connect(
		os.Getenv(cfg.Qdrant.HostEnv),
		os.Getenv(cfg.Qdrant.APIKeyEnv),
		cfg.Qdrant.Collection,
		cfg.Qdrant.VectorSize,
	)
	if err != nil {
		return nil, err
	}

	return &Handler{
		Store:      tafsir.NewStore(cfg.Paths.OutputDir),
		Embedder:   embedder,
		Searcher:   vectorDb,
		Translator: translator,
		Reflector:  reflector,
		Cache:      cache.New(cfg.Paths.CacheDir),
	}, nil
}
