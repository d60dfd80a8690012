package llm

import (
	"context"
	"fmt"
	"strings"

	"tafsir/internal/config"
)

const (
	UserRole      Role = "user"
	AssistantRole Role = "assistant"
	SystemRole    Role = "system"
)

type Role string
type Model string

// Reflector generates a spiritual reflection for a block of tafsir text.
// Implemented by the OpenAI and Gemini backends.
type Reflector interface {
	Reflect(ctx context.Context, tafsirText, lang string) (string, error)
}

// NewReflector picks the backend from config.
func NewReflector(ctx context.Context, cfg config.ReflectionConfig) (Reflector, error) {
	switch cfg.Provider {
	case "openai":
		return NewOpenAIHandler(Model(cfg.Model), cfg.Temperature, cfg.APIKeyEnv)
	case "gemini":
		return NewGeminiHandler(ctx, Model(cfg.Model), cfg.Temperature)
	default:
		return nil, fmt.Errorf("unknown reflection provider %q", cfg.Provider)
	}
}

// BuildReflectionPrompt frames the tafsir text for the model.
func BuildReflectionPrompt(tafsirText, lang string) string {
	var promptBuilder strings.Builder
	promptBuilder.WriteString("Based on the following Arabic Islamic tafsir text, write a spiritual reflection in ")
	promptBuilder.WriteString(lang)
	promptBuilder.WriteString(" that helps the reader draw practical wisdom and guidance. ")
	promptBuilder.WriteString("Focus on character, morality, or life purpose.\n\n")
	promptBuilder.WriteString(tafsirText)
	return promptBuilder.String()
}
