package config

import (
	"testing"
)

func TestProviderEndpointFollowsSlotType(t *testing.T) {
	t.Setenv("DEEPSEEK_API_KEY", "ds-key")
	t.Setenv("OPENAI_API_KEY", "oa-key")
	t.Setenv("OPENAI_BASE_URL", "https://oa.example.com/v1")

	t.Run("defaults", func(t *testing.T) {
		primary := providerEndpoint("PRIMARY_PROVIDER", "deepseek")
		if primary.Type != "deepseek" || primary.APIKey != "ds-key" || primary.Model != "deepseek-chat" {
			t.Errorf("primary = %+v", primary)
		}

		fallback := providerEndpoint("FALLBACK_PROVIDER", "openai")
		if fallback.Type != "openai" || fallback.APIKey != "oa-key" || fallback.Model != "gpt-4o" {
			t.Errorf("fallback = %+v", fallback)
		}
		if fallback.BaseURL != "https://oa.example.com/v1" {
			t.Errorf("fallback base URL = %q", fallback.BaseURL)
		}
	})

	t.Run("swapped slot types resolve matching credentials", func(t *testing.T) {
		t.Setenv("PRIMARY_PROVIDER", "openai")
		t.Setenv("FALLBACK_PROVIDER", "deepseek")

		primary := providerEndpoint("PRIMARY_PROVIDER", "deepseek")
		if primary.Type != "openai" || primary.APIKey != "oa-key" || primary.Model != "gpt-4o" {
			t.Errorf("primary = %+v, want openai credentials", primary)
		}

		fallback := providerEndpoint("FALLBACK_PROVIDER", "openai")
		if fallback.Type != "deepseek" || fallback.APIKey != "ds-key" || fallback.Model != "deepseek-chat" {
			t.Errorf("fallback = %+v, want deepseek credentials", fallback)
		}
	})
}
