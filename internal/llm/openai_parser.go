package llm

// Parse responses returned from openai_controller.go

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

const (
	StopFinishReason   FinishReasonType = "stop"
	LengthFinishReason FinishReasonType = "length"
	FilterFinishReason FinishReasonType = "content_filter"
)

type FinishReasonType string

// completionChoice - Returned in choices{} JSON object by the API
type completionChoice struct {
	Index        int              `json:"index"`
	FinishReason FinishReasonType `json:"finish_reason"`
	Message      AIMessage        `json:"message"`
}

// completionResponse - Unstreamed API response
type completionResponse struct {
	Choices []completionChoice `json:"choices"`
}

// CompleteAIResponse - Content from the request properly structured for convenience
type CompleteAIResponse struct {
	Content      string
	FinishReason FinishReasonType
}

type OpenAIParser struct{}

// ParseResponse - Parse the unstreamed response from the API.
func (OpenAIParser) ParseResponse(body io.Reader) (*CompleteAIResponse, error) {
	var response completionResponse
	if err := json.NewDecoder(body).Decode(&response); err != nil {
		return nil, err
	}

	if len(response.Choices) < 1 {
		return nil, fmt.Errorf("no choices found")
	}

	choice := response.Choices[0]
	content := strings.TrimSpace(choice.Message.Content)
	if content == "" {
		return nil, fmt.Errorf("empty response")
	}

	return &CompleteAIResponse{
		Content:      content,
		FinishReason: choice.FinishReason,
	}, nil
}
