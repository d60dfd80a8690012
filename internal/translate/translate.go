package translate

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"sort"
	"time"

	_ "github.com/joho/godotenv/autoload"

	"tafsir/internal/utils"
)

// ErrUnsupportedLanguage - The target language has no configured model. A
// client error, not an upstream failure.
var ErrUnsupportedLanguage = errors.New("unsupported target language")

// Client translates tafsir text through the Hugging Face Inference API's
// translation task. One opus-mt model per target language; the source side is
// always arabic.
type Client struct {
	baseURL string
	apiKey  string
	models  map[string]string // lang code -> model id
	http    *http.Client
}

type Config struct {
	BaseURL   string
	APIKeyEnv string
	Models    map[string]string
}

type translationRequest struct {
	Inputs string `json:"inputs"`
}

type translationResult struct {
	TranslationText string `json:"translation_text"`
}

func NewClient(cfg Config) (*Client, error) {
	apiKey := os.Getenv(cfg.APIKeyEnv)
	if apiKey == "" {
		return nil, fmt.Errorf("%s env var not set", cfg.APIKeyEnv)
	}
	if len(cfg.Models) == 0 {
		return nil, fmt.Errorf("no translation models configured")
	}

	return &Client{
		baseURL: cfg.BaseURL,
		apiKey:  apiKey,
		models:  cfg.Models,
		http:    &http.Client{Timeout: 60 * time.Second},
	}, nil
}

// Supported lists the configured target language codes, sorted.
func (c *Client) Supported() []string {
	langs := make([]string, 0, len(c.models))
	for lang := range c.models {
		langs = append(langs, lang)
	}
	sort.Strings(langs)
	return langs
}

// Translate renders text into the target language.
func (c *Client) Translate(text, lang string) (string, error) {
	model, ok := c.models[lang]
	if !ok {
		return "", fmt.Errorf("%w %q (have %v)", ErrUnsupportedLanguage, lang, c.Supported())
	}

	jsonData, err := json.Marshal(translationRequest{Inputs: text})
	if err != nil {
		return "", err
	}

	resp, err := utils.MakeHeadersRequest(
		c.baseURL+"/models/"+model,
		bytes.NewReader(jsonData),
		c.http,
		utils.Header{Key: "Authorization", Value: "Bearer " + c.apiKey},
		utils.Header{Key: "Content-Type", Value: "application/json"},
	)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("translation api returned status %d", resp.StatusCode)
	}

	var results []translationResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return "", err
	}
	if len(results) == 0 || results[0].TranslationText == "" {
		return "", fmt.Errorf("empty translation")
	}
	return results[0].TranslationText, nil
}
