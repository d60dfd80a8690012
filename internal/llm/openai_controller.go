package llm

// All about SENDING api requests to the LLM

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	_ "github.com/joho/godotenv/autoload"

	"tafsir/internal/utils"
)

const (
	llmUrl = "https://api.openai.com/v1/chat/completions"
)

// OpenAILLM - Chat-completions backend for reflections. Unstreamed; a
// reflection is one short completion, not a chat.
type OpenAILLM struct {
	ApiKey      string
	Model       Model
	Temperature float64
	Parser      *OpenAIParser
	Url         string // overridable for tests
	http        *http.Client
}

// AIMessage - Message API format for a message
type AIMessage struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// promptRequest Request format for the API
type promptRequest struct {
	Messages    []AIMessage `json:"messages"`
	Model       Model       `json:"model"`
	Temperature float64     `json:"temperature"`
}

func NewOpenAIHandler(model Model, temperature float64, apiKeyEnv string) (*OpenAILLM, error) {
	apiKey := os.Getenv(apiKeyEnv)
	if apiKey == "" {
		return nil, fmt.Errorf("%s env var not set", apiKeyEnv)
	}

	return &OpenAILLM{
		ApiKey:      apiKey,
		Model:       model,
		Temperature: temperature,
		Parser:      &OpenAIParser{},
		Url:         llmUrl,
		http:        &http.Client{Timeout: 120 * time.Second},
	}, nil
}

func (oai *OpenAILLM) SendPrompt(userPrompt string) (*http.Response, error) {
	request := promptRequest{
		Messages: []AIMessage{
			{
				Role:    UserRole,
				Content: userPrompt,
			},
		},
		Model:       oai.Model,
		Temperature: oai.Temperature,
	}

	parsedRequest, _ := json.Marshal(request)
	return utils.MakeHeadersRequest(oai.Url, bytes.NewReader(parsedRequest), oai.http, utils.Header{
		Key:   "Authorization",
		Value: "Bearer " + oai.ApiKey,
	}, utils.Header{
		Key:   "Content-Type",
		Value: "application/json",
	})
}

// Reflect implements Reflector.
func (oai *OpenAILLM) Reflect(ctx context.Context, tafsirText, lang string) (string, error) {
	resp, err := oai.SendPrompt(BuildReflectionPrompt(tafsirText, lang))
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("llm api returned status %d", resp.StatusCode)
	}

	parsed, err := oai.Parser.ParseResponse(resp.Body)
	if err != nil {
		return "", err
	}
	return parsed.Content, nil
}
