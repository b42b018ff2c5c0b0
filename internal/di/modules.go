package di

import (
	"log"
	"time"

	"newsgraph-ai/config"
	"newsgraph-ai/internal/apis/handlers"
	"newsgraph-ai/internal/constants"
	"newsgraph-ai/internal/graph"
	"newsgraph-ai/internal/models"
	"newsgraph-ai/internal/repositories"
	"newsgraph-ai/internal/services"
	"newsgraph-ai/internal/utils"
	"newsgraph-ai/pkg/llm"
	"newsgraph-ai/pkg/mongodb"
	"newsgraph-ai/pkg/postgres"
	"newsgraph-ai/pkg/redis"

	"go.uber.org/dig"
)

var DiContainer *dig.Container

func Initialize() {
	DiContainer = dig.New()

	// Initialize PostgreSQL (article store)
	postgresClient, err := postgres.NewClient(config.Env.PostgresDSN)
	if err != nil {
		log.Fatalf("Failed to initialize PostgreSQL client: %v", err)
	}
	if err := postgres.AutoMigrate(postgresClient, &models.Article{}, &models.Category{}, &models.Tag{}); err != nil {
		log.Fatalf("Failed to migrate article store: %v", err)
	}

	// Initialize MongoDB (query history store)
	mongodbClient := mongodb.InitializeDatabaseConnection(mongodb.MongoDbConfigModel{
		ConnectionUrl: config.Env.MongoURI,
		DatabaseName:  config.Env.MongoDatabaseName,
	})

	// Initialize Redis (stats cache)
	redisClient, err := redis.RedisClient(config.Env.RedisHost, config.Env.RedisPort, config.Env.RedisUsername, config.Env.RedisPassword)
	if err != nil {
		log.Fatalf("Failed to initialize Redis client: %v", err)
	}
	redisRepo := redis.NewRedisRepositories(redisClient)

	jwtService := utils.NewJWTService(
		config.Env.JWTSecret,
		time.Millisecond*time.Duration(config.Env.JWTExpirationMilliseconds),
	)

	// Repositories
	articleRepo := repositories.NewArticleRepository(postgresClient)
	queryLogRepo := repositories.NewQueryLogRepository(mongodbClient)

	if err := DiContainer.Provide(func() utils.JWTService { return jwtService }); err != nil {
		log.Fatalf("Failed to provide JWT service: %v", err)
	}

	if err := DiContainer.Provide(func() repositories.ArticleRepository { return articleRepo }); err != nil {
		log.Fatalf("Failed to provide article repository: %v", err)
	}

	if err := DiContainer.Provide(func() repositories.QueryLogRepository { return queryLogRepo }); err != nil {
		log.Fatalf("Failed to provide query log repository: %v", err)
	}

	// Add LLM Manager
	if err := DiContainer.Provide(func() *llm.Manager {
		manager := llm.NewManager()

		switch config.Env.DefaultLLMClient {
		case constants.OpenAI:
			err := manager.RegisterClient(constants.OpenAI, llm.Config{
				Provider:            constants.OpenAI,
				Model:               config.Env.OpenAIModel,
				APIKey:              config.Env.OpenAIAPIKey,
				MaxCompletionTokens: config.Env.OpenAIMaxCompletionTokens,
				Temperature:         config.Env.OpenAITemperature,
				ResponseSchema:      constants.TranslationResponseSchema,
			})
			if err != nil {
				log.Printf("Warning: Failed to register OpenAI client: %v", err)
			}
		case constants.Gemini:
			err := manager.RegisterClient(constants.Gemini, llm.Config{
				Provider:            constants.Gemini,
				Model:               config.Env.GeminiModel,
				APIKey:              config.Env.GeminiAPIKey,
				MaxCompletionTokens: config.Env.GeminiMaxCompletionTokens,
				Temperature:         config.Env.GeminiTemperature,
				ResponseSchema:      constants.TranslationResponseSchema,
			})
			if err != nil {
				log.Printf("Warning: Failed to register Gemini client: %v", err)
			}
		}
		return manager
	}); err != nil {
		log.Fatalf("Failed to provide LLM manager: %v", err)
	}

	// Stats service backs both the articleStats resolver and the REST endpoint
	if err := DiContainer.Provide(func(articleRepo repositories.ArticleRepository) services.StatsService {
		return services.NewStatsService(articleRepo, redisRepo)
	}); err != nil {
		log.Fatalf("Failed to provide stats service: %v", err)
	}

	// Query service: the whole translate-correct-validate-execute pipeline
	if err := DiContainer.Provide(func(
		articleRepo repositories.ArticleRepository,
		queryLogRepo repositories.QueryLogRepository,
		statsService services.StatsService,
		llmManager *llm.Manager,
	) (services.QueryService, error) {
		grammar := graph.NewGrammar()

		schema, err := graph.NewSchema(articleRepo, statsService)
		if err != nil {
			return nil, err
		}

		llmClient, err := llmManager.GetClient(config.Env.DefaultLLMClient)
		if err != nil {
			// The pipeline still works through the fallback translator.
			log.Printf("Warning: Failed to get default LLM client: %v", err)
		}

		return services.NewQueryService(
			services.NewLLMTranslator(llmClient, grammar),
			services.NewFallbackTranslator(),
			services.NewCorrector(grammar),
			services.NewValidator(grammar),
			services.NewExecutor(schema, articleRepo),
			queryLogRepo,
		), nil
	}); err != nil {
		log.Fatalf("Failed to provide query service: %v", err)
	}

	if err := DiContainer.Provide(func(queryService services.QueryService) *services.ToolRegistry {
		return services.NewToolRegistry(queryService)
	}); err != nil {
		log.Fatalf("Failed to provide tool registry: %v", err)
	}

	if err := DiContainer.Provide(func(jwt utils.JWTService) services.AuthService {
		return services.NewAuthService(jwt, config.Env.APIUser, config.Env.APIPassword)
	}); err != nil {
		log.Fatalf("Failed to provide auth service: %v", err)
	}

	// Provide handlers
	if err := DiContainer.Provide(func(authService services.AuthService) *handlers.AuthHandler {
		return handlers.NewAuthHandler(authService)
	}); err != nil {
		log.Fatalf("Failed to provide auth handler: %v", err)
	}

	if err := DiContainer.Provide(func(queryService services.QueryService, statsService services.StatsService, toolRegistry *services.ToolRegistry) *handlers.QueryHandler {
		return handlers.NewQueryHandler(queryService, statsService, toolRegistry)
	}); err != nil {
		log.Fatalf("Failed to provide query handler: %v", err)
	}
}

// GetAuthHandler retrieves the AuthHandler from the DI container
func GetAuthHandler() (*handlers.AuthHandler, error) {
	var handler *handlers.AuthHandler
	err := DiContainer.Invoke(func(h *handlers.AuthHandler) {
		handler = h
	})
	if err != nil {
		return nil, err
	}
	return handler, nil
}

// GetQueryHandler retrieves the QueryHandler from the DI container
func GetQueryHandler() (*handlers.QueryHandler, error) {
	var handler *handlers.QueryHandler
	err := DiContainer.Invoke(func(h *handlers.QueryHandler) {
		handler = h
	})
	if err != nil {
		return nil, err
	}
	return handler, nil
}

// GetJWTService retrieves the JWT service for the auth middleware
func GetJWTService() (utils.JWTService, error) {
	var service utils.JWTService
	err := DiContainer.Invoke(func(s utils.JWTService) {
		service = s
	})
	return service, err
}
