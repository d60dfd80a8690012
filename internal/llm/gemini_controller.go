package llm

import (
	"context"

	_ "github.com/joho/godotenv/autoload"
	"google.golang.org/genai"
)

// GeminiLLM - Alternate reflection backend. The genai client reads
// GEMINI_API_KEY from env on its own.
type GeminiLLM struct {
	Model       Model
	Temperature float64
	Client      *genai.Client
	Parser      *GeminiParser
}

func NewGeminiHandler(ctx context.Context, model Model, temperature float64) (*GeminiLLM, error) {
	client, err := genai.NewClient(ctx, nil)
	if err != nil {
		return nil, err
	}

	return &GeminiLLM{
		Model:       model,
		Temperature: temperature,
		Client:      client,
		Parser:      &GeminiParser{},
	}, nil
}

// SendPrompt - Send a prompt to the Gemini model. Does NOT support streaming.
func (gemini *GeminiLLM) SendPrompt(ctx context.Context, userPrompt string) (*CompleteAIResponse, error) {
	contents := []*genai.Content{
		{
			Parts: []*genai.Part{
				{
					Text: userPrompt,
				},
			},
			Role: string(UserRole),
		},
	}

	cfg := &genai.GenerateContentConfig{
		Temperature: genai.Ptr(float32(gemini.Temperature)),
	}
	return gemini.Parser.ParseResponse(gemini.Client.Models.GenerateContent(ctx, string(gemini.Model), contents, cfg))
}

// Reflect implements Reflector.
func (gemini *GeminiLLM) Reflect(ctx context.Context, tafsirText, lang string) (string, error) {
	resp, err := gemini.SendPrompt(ctx, BuildReflectionPrompt(tafsirText, lang))
	if err != nil {
		return "", err
	}
	return resp.Content, nil
}
