package bootstrap

import (
	"log"
	"os"
	"time"

	"deepsea-be/internal/config"
	"deepsea-be/internal/controller"
	"deepsea-be/internal/pkg/logger"
	"deepsea-be/internal/pkg/serverutils"
	"deepsea-be/internal/service"
	"deepsea-be/pkg/ai/mode"
	"deepsea-be/pkg/ai/pipeline"
	"deepsea-be/pkg/ai/prompt"
	"deepsea-be/pkg/llm/factory"
	"deepsea-be/pkg/telemetry"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/go-playground/validator/v10"
)

type Container struct {
	// Controllers
	AuthController         controller.IAuthController
	ChatController         controller.IChatController
	ConversationController controller.IConversationController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService
}

func NewContainer(cfg *config.Config) *Container {
	// 1. Core Facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")
	validate := validator.New()

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. LLM Providers
	primary, err := factory.NewLLMProvider(
		cfg.Providers.Primary.Type,
		cfg.Providers.Primary.APIKey,
		cfg.Providers.Primary.BaseURL,
		cfg.Providers.Primary.Model,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize primary LLM provider: %v", err)
	}
	log.Printf("[INFO] Using Primary LLM Provider: %s (%s)", cfg.Providers.Primary.Type, cfg.Providers.Primary.Model)

	fallback, err := factory.NewLLMProvider(
		cfg.Providers.Fallback.Type,
		cfg.Providers.Fallback.APIKey,
		cfg.Providers.Fallback.BaseURL,
		cfg.Providers.Fallback.Model,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize fallback LLM provider: %v", err)
	}
	log.Printf("[INFO] Using Fallback LLM Provider: %s (%s)", cfg.Providers.Fallback.Type, cfg.Providers.Fallback.Model)

	// 4. Pipelines
	resolver := mode.NewResolver(mode.Policy{
		AllowAutoHardcore: cfg.Mode.AllowAutoHardcore,
		LiteMaxRunes:      cfg.Mode.LiteMaxRunes,
		HardcoreMinRunes:  cfg.Mode.HardcoreMinRunes,
	})
	assembler := prompt.NewAssembler(prompt.DefaultConfig())

	recorder := telemetry.NewPublisher(pubSub, cfg.Telemetry.Topic)

	pipelineLogger := log.New(os.Stdout, "", log.LstdFlags)

	direct := pipeline.NewDirectPipeline(primary, assembler, pipelineLogger)

	hardcoreCfg := pipeline.DefaultHardcoreConfig()
	hardcoreCfg.DeadlineBudget = time.Duration(cfg.Pipeline.DeadlineBudgetMs) * time.Millisecond
	hardcore := pipeline.NewHardcorePipeline(primary, fallback, recorder, pipelineLogger, hardcoreCfg)

	// 5. Services
	authService := service.NewAuthService(cfg.Auth, sysLogger, validate)
	chatService := service.NewChatService(resolver, direct, hardcore, validate, sysLogger)
	conversationService := service.NewConversationService(validate)
	consumerService := service.NewConsumerService(pubSub, cfg.Telemetry.Topic, sysLogger, cfg.Pipeline.DebugHardcore)

	// 6. Controllers
	jwtMiddleware := serverutils.NewJwtMiddleware(cfg.Auth.JWTSecret)
	secureCookie := cfg.App.Environment == "production"

	return &Container{
		AuthController:         controller.NewAuthController(authService, secureCookie),
		ChatController:         controller.NewChatController(chatService, jwtMiddleware),
		ConversationController: controller.NewConversationController(conversationService, jwtMiddleware),
		ConsumerService:        consumerService,
	}
}
