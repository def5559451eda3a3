package main

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/joho/godotenv/autoload"
	"go.uber.org/zap"

	"github.com/Yash39459/ai-mock-interview-webapp/internal/auth"
	"github.com/Yash39459/ai-mock-interview-webapp/internal/cache"
	"github.com/Yash39459/ai-mock-interview-webapp/internal/config"
	"github.com/Yash39459/ai-mock-interview-webapp/internal/database"
	"github.com/Yash39459/ai-mock-interview-webapp/internal/fetcher"
	"github.com/Yash39459/ai-mock-interview-webapp/internal/gemini"
	"github.com/Yash39459/ai-mock-interview-webapp/internal/handler"
	"github.com/Yash39459/ai-mock-interview-webapp/internal/logger"
	"github.com/Yash39459/ai-mock-interview-webapp/internal/repository"
)

type application struct {
	DB         *pgxpool.Pool
	Limiter    rateLimiter
	Logger     *zap.Logger
	Config     *config.Config
	Repository *repository.Repository
	Handler    *handler.Handler
}

func main() {
	ctx := context.Background()
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log, _ := logger.NewLogger(cfg.Env)
	defer log.Sync()
	sugar := log.Sugar()
	sugar.Infof("config loaded, env=%s", cfg.Env)

	pool, err := database.Connect(ctx, cfg.DB)
	if err != nil {
		sugar.Fatal(err)
	}
	defer pool.Close()

	var redisCache *cache.Cache
	if cfg.Redis.Addr != "" {
		redisCache, err = cache.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, log)
		if err != nil {
			sugar.Fatal(err)
		}
		defer redisCache.Close()
	} else {
		sugar.Info("redis not configured, caching and rate limiting disabled")
	}

	tokenMaker, err := auth.NewJWTMaker(cfg.JWT.Secret)
	if err != nil {
		sugar.Fatal(err)
	}

	geminiClient := gemini.NewClient(cfg.Gemini.APIKey, cfg.Gemini.Model, redisCache)
	fetcherClient := fetcher.NewClient()
	repo := repository.NewRepository(pool)

	handlerApp := &handler.Handler{
		Logger:     log,
		Users:      repo,
		Sessions:   repo,
		Interviews: repo,
		Generator:  geminiClient,
		Importer:   fetcherClient,
		TokenMaker: tokenMaker,
		AccessTTL:  cfg.JWT.AccessTokenTTL,
		RefreshTTL: cfg.JWT.RefreshTokenTTL,
		GenTimeout: cfg.Gemini.Timeout,
	}

	app := &application{
		DB:         pool,
		Logger:     log,
		Config:     cfg,
		Repository: repo,
		Handler:    handlerApp,
	}
	if redisCache != nil {
		app.Limiter = redisCache
	}

	if err := app.serve(); err != nil {
		sugar.Fatal(err)
	}
}
