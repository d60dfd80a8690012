package llm

import (
	"fmt"
	"strings"

	"google.golang.org/genai"
)

type GeminiParser struct{}

// ParseResponse - Parse an unstreamed response from the API request made to Gemini's LLM.
func (GeminiParser) ParseResponse(resp *genai.GenerateContentResponse, err error) (*CompleteAIResponse, error) {
	if err != nil {
		return nil, err
	}

	if len(resp.Candidates) < 1 {
		return nil, fmt.Errorf("no candidates found")
	}

	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) < 1 {
		return nil, fmt.Errorf("no content found")
	}

	content := strings.TrimSpace(candidate.Content.Parts[0].Text)
	if content == "" {
		return nil, fmt.Errorf("empty response")
	}

	return &CompleteAIResponse{
		Content:      content,
		FinishReason: FinishReasonType(candidate.FinishReason),
	}, nil
}
