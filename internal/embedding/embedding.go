package embedding

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	_ "github.com/joho/godotenv/autoload"

	"tafsir/internal/utils"
)

// Client talks to the Hugging Face Inference API's feature-extraction pipeline.
// The model is a multilingual sentence-transformer so arabic tafsir and english
// queries land in the same vector space.
type Client struct {
	baseURL string
	apiKey  string
	model   string
	http    *http.Client
}

type Config struct {
	BaseURL   string
	APIKeyEnv string
	Model     string
}

type embeddingRequest struct {
	Inputs string `json:"inputs"`
}

func NewClient(cfg Config) (*Client, error) {
	apiKey := os.Getenv(cfg.APIKeyEnv)
	if apiKey == "" {
		return nil, fmt.Errorf("%s env var not set", cfg.APIKeyEnv)
	}

	return &Client{
		baseURL: cfg.BaseURL,
		apiKey:  apiKey,
		model:   cfg.Model,
		http:    &http.Client{Timeout: 30 * time.Second},
	}, nil
}

// Embed returns the embedding vector for the given text.
func (c *Client) Embed(text string) ([]float32, error) {
	jsonData, err := json.Marshal(embeddingRequest{Inputs: text})
	if err != nil {
		return nil, err
	}

	resp, err := utils.MakeHeadersRequest(
		c.baseURL+"/models/"+c.model+"/pipeline/feature-extraction",
		bytes.NewReader(jsonData),
		c.http,
		utils.Header{Key: "Authorization", Value: "Bearer " + c.apiKey},
		utils.Header{Key: "Content-Type", Value: "application/json"},
	)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("embedding api returned status %d", resp.StatusCode)
	}

	return parseVector(json.NewDecoder(resp.Body))
}

// parseVector - The pipeline returns a flat vector for single-sentence input,
// but some models wrap it in an extra array. Accept both.
func parseVector(dec *json.Decoder) ([]float32, error) {
	var raw json.RawMessage
	if err := dec.Decode(&raw); err != nil {
		return nil, err
	}

	var flat []float32
	if err := json.Unmarshal(raw, &flat); err == nil {
		if len(flat) == 0 {
			return nil, fmt.Errorf("empty embedding")
		}
		return flat, nil
	}

	var nested [][]float32
	if err := json.Unmarshal(raw, &nested); err != nil {
		return nil, fmt.Errorf("unexpected embedding response shape: %w", err)
	}
	if len(nested) == 0 || len(nested[0]) == 0 {
		return nil, fmt.Errorf("empty embedding")
	}
	return nested[0], nil
}
