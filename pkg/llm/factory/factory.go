package factory

import (
	"fmt"

	"deepsea-be/pkg/llm"
	"deepsea-be/pkg/llm/deepseek"
	"deepsea-be/pkg/llm/openai"
)

func NewLLMProvider(providerType, apiKey, baseURL, modelName string) (llm.Provider, error) {
	switch providerType {
	case "deepseek":
		return deepseek.NewDeepSeekProvider(apiKey, baseURL, modelName), nil
	case "openai":
		return openai.NewOpenAIProvider(apiKey, baseURL, modelName), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", providerType)
	}
}
