package factory

import (
	"fmt"

	"project-intake-be/pkg/llm"
	"project-intake-be/pkg/llm/huggingface"
	"project-intake-be/pkg/llm/ollama"
)

// NewLLMProvider builds the configured LLM backend.
func NewLLMProvider(providerType, modelName, ollamaBaseURL, hfAPIKey string) (llm.LLMProvider, error) {
	switch providerType {
	case "ollama":
		if ollamaBaseURL == "" {
			ollamaBaseURL = "http://localhost:11434"
		}
		return ollama.NewOllamaProvider(ollamaBaseURL, modelName), nil
	case "huggingface":
		return huggingface.NewHuggingFaceProvider(hfAPIKey, "", modelName), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", providerType)
	}
}
