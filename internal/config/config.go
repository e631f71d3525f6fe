package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	App       AppConfig
	Auth      AuthConfig
	Providers ProviderConfig
	Mode      ModeConfig
	Pipeline  PipelineConfig
	Telemetry TelemetryConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
}

type AuthConfig struct {
	JWTSecret string
	Username  string
	// Password is the plaintext credential; PasswordHash, when set, takes
	// precedence and is compared with bcrypt.
	Password     string
	PasswordHash string
}

type ProviderConfig struct {
	Primary  ProviderEndpoint
	Fallback ProviderEndpoint
}

type ProviderEndpoint struct {
	Type    string // "deepseek", "openai"
	APIKey  string
	BaseURL string
	Model   string
}

type ModeConfig struct {
	// AllowAutoHardcore controls whether auto classification may escalate
	// to hardcore, or only explicit selection reaches it.
	AllowAutoHardcore bool
	LiteMaxRunes      int
	HardcoreMinRunes  int
}

type PipelineConfig struct {
	DeadlineBudgetMs int
	DebugHardcore    bool
}

type TelemetryConfig struct {
	Topic string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
		},
		Auth: AuthConfig{
			JWTSecret:    getEnv("JWT_SECRET_KEY", "default-secret-key-change-me"),
			Username:     getEnv("APP_USERNAME", ""),
			Password:     getEnv("APP_PASSWORD", ""),
			PasswordHash: getEnv("APP_PASSWORD_HASH", ""),
		},
		Providers: ProviderConfig{
			Primary:  providerEndpoint("PRIMARY_PROVIDER", "deepseek"),
			Fallback: providerEndpoint("FALLBACK_PROVIDER", "openai"),
		},
		Mode: ModeConfig{
			AllowAutoHardcore: getEnvAsBool("MODE_AUTO_ALLOW_HARDCORE", false),
			LiteMaxRunes:      getEnvAsInt("MODE_LITE_MAX_RUNES", 30),
			HardcoreMinRunes:  getEnvAsInt("MODE_HARDCORE_MIN_RUNES", 150),
		},
		Pipeline: PipelineConfig{
			DeadlineBudgetMs: getEnvAsInt("PIPELINE_DEADLINE_BUDGET_MS", 8000),
			DebugHardcore:    getEnvAsBool("DEBUG_HARDCORE", false),
		},
		Telemetry: TelemetryConfig{
			Topic: getEnv("PIPELINE_LOG_TOPIC_NAME", "PIPELINE_COMPLETED"),
		},
	}
}

var defaultModels = map[string]string{
	"deepseek": "deepseek-chat",
	"openai":   "gpt-4o",
}

// providerEndpoint resolves a provider slot. The key, base URL and model
// env names follow the slot's resolved type, so DEEPSEEK_* and OPENAI_*
// credentials never cross slots.
func providerEndpoint(slotVar, defaultType string) ProviderEndpoint {
	providerType := getEnv(slotVar, defaultType)
	prefix := strings.ToUpper(providerType)
	return ProviderEndpoint{
		Type:    providerType,
		APIKey:  getEnv(prefix+"_API_KEY", ""),
		BaseURL: getEnv(prefix+"_BASE_URL", ""),
		Model:   getEnv(prefix+"_MODEL", defaultModels[providerType]),
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseBool(strValue); err == nil {
		return value
	}
	return fallback
}
