package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	_ "github.com/mindmate/mindmate-api/docs"
	"github.com/mindmate/mindmate-api/internal/api"
	"github.com/mindmate/mindmate-api/internal/api/handler"
	"github.com/mindmate/mindmate-api/internal/core/domain"
	"github.com/mindmate/mindmate-api/internal/core/ports"
	"github.com/mindmate/mindmate-api/internal/core/service"
	"github.com/mindmate/mindmate-api/internal/infrastructure/config"
	memorystore "github.com/mindmate/mindmate-api/internal/infrastructure/db/memory"
	mongodb "github.com/mindmate/mindmate-api/internal/infrastructure/db/mongo"
	redisdb "github.com/mindmate/mindmate-api/internal/infrastructure/db/redis"
	"github.com/mindmate/mindmate-api/internal/infrastructure/llm"
	"github.com/mindmate/mindmate-api/internal/infrastructure/sms"
	"github.com/mindmate/mindmate-api/pkg/logger"
)

const (
	shutdownGracePeriod = 10 * time.Second
	otpSendLimit        = 3
	otpSendWindow       = 10 * time.Minute
)

// repositories groups the persistence layer so the store backend can be
// swapped wholesale between Mongo and in-memory.
type repositories struct {
	users         ports.UserRepository
	otps          ports.OTPRepository
	tasks         ports.TaskRepository
	goals         ports.GoalRepository
	conversations ports.ConversationRepository
}

// @title           MindMate API
// @version         1.0
// @description     Personal assistant API: authentication, tasks, goals and AI chat.
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in              header
// @name            Authorization
func main() {
	_ = godotenv.Load()

	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "mindmate-api",
	})

	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	ctx := context.Background()

	repos, mongoPinger := buildRepositories(ctx, cfg, log)
	limiter, redisPinger := buildOTPLimiter(ctx, cfg, log)

	twilio := sms.NewTwilioClient(sms.TwilioConfig{
		AccountSID: cfg.Twilio.AccountSID,
		AuthToken:  cfg.Twilio.AuthToken,
		FromNumber: cfg.Twilio.FromNumber,
	})

	openai := llm.NewClient(llm.Config{
		Name:    domain.ProviderOpenAI,
		APIKey:  cfg.OpenAI.APIKey,
		BaseURL: cfg.OpenAI.BaseURL,
		Model:   cfg.OpenAI.Model,
	})
	grok := llm.NewClient(llm.Config{
		Name:    domain.ProviderGrok,
		APIKey:  cfg.XAI.APIKey,
		BaseURL: cfg.XAI.BaseURL,
		Model:   cfg.XAI.Model,
	})

	tokens := service.NewTokenManager(cfg.JWTSecret, service.DefaultTokenTTL)
	authService := service.NewAuthService(repos.users, tokens, log)
	otpService := service.NewOTPService(repos.otps, repos.users, twilio, tokens, limiter, cfg.IsDevelopment(), log)
	taskService := service.NewTaskService(repos.tasks, log)
	goalService := service.NewGoalService(repos.goals, log)
	chatService := service.NewChatService(
		repos.users, repos.tasks, repos.conversations,
		[]ports.ChatModel{openai, grok},
		cfg.DefaultAIProvider, log,
	)

	e := api.NewRouter(api.Deps{
		Auth:  handler.NewAuthHandler(authService, otpService),
		Tasks: handler.NewTaskHandler(taskService),
		Goals: handler.NewGoalHandler(goalService),
		Chat:  handler.NewChatHandler(chatService, log),
		Health: handler.NewHealthHandler(mongoPinger, redisPinger, map[string]bool{
			"sms":    twilio.Configured(),
			"openai": openai.Configured(),
			"grok":   grok.Configured(),
		}),
		JWTSecret: cfg.JWTSecret,
		Logger:    log,
	})

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: e,
	}

	serverErrors := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("mindmate api starting")
		serverErrors <- server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	case sig := <-shutdown:
		log.Info().Str("signal", sig.String()).Msg("shutdown signal received")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGracePeriod)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("graceful shutdown failed")
			_ = server.Close()
		}
	}

	log.Info().Msg("mindmate api stopped")
}

// buildRepositories selects the store backend. Mongo is used whenever a URI
// is configured; development falls back to the in-memory store so the API
// runs without external services.
func buildRepositories(ctx context.Context, cfg *config.Config, log zerolog.Logger) (repositories, handler.Pinger) {
	if cfg.Mongo.URI == "" {
		log.Warn().Msg("MONGODB_URI not set, using in-memory store (data is lost on restart)")
		return repositories{
			users:         memorystore.NewUserRepository(),
			otps:          memorystore.NewOTPRepository(),
			tasks:         memorystore.NewTaskRepository(),
			goals:         memorystore.NewGoalRepository(),
			conversations: memorystore.NewConversationRepository(),
		}, nil
	}

	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}

	users := mongodb.NewUserRepository(db)
	otps := mongodb.NewOTPRepository(db)
	tasks := mongodb.NewTaskRepository(db)
	goals := mongodb.NewGoalRepository(db)

	for name, idx := range map[string]interface {
		EnsureIndexes(context.Context) error
	}{
		"users": users,
		"otps":  otps,
		"tasks": tasks,
		"goals": goals,
	} {
		if err := idx.EnsureIndexes(ctx); err != nil {
			log.Fatal().Err(err).Str("collection", name).Msg("index creation failed")
		}
	}

	return repositories{
		users:         users,
		otps:          otps,
		tasks:         tasks,
		goals:         goals,
		conversations: mongodb.NewConversationRepository(db),
	}, mongodb.NewHealthPinger(client)
}

// buildOTPLimiter wires the Redis-backed OTP send throttle when Redis is
// configured. The limiter is optional; without it OTP sends are unthrottled
// beyond the HTTP rate limit.
func buildOTPLimiter(ctx context.Context, cfg *config.Config, log zerolog.Logger) (service.SendLimiter, handler.Pinger) {
	if cfg.Redis.Addr == "" {
		log.Warn().Msg("REDIS_ADDR not set, OTP send throttling disabled")
		return nil, nil
	}

	client, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}

	return redisdb.NewOTPSendLimiter(client, otpSendLimit, otpSendWindow), redisdb.NewHealthPinger(client)
}
