package main // Entry point package

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"gigbook/internal/config"
	"gigbook/internal/database"
	"gigbook/internal/handler"
	appmw "gigbook/internal/middleware"
	"gigbook/internal/queue"
	"gigbook/internal/repository"
	"gigbook/internal/router"
)

func main() {
	// Load .env when present; in production the variables come from the
	// environment directly.
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, relying on environment")
	}

	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database open failed: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := database.Migrate(ctx, db); err != nil {
		cancel()
		log.Fatalf("migration failed: %v", err)
	}
	cancel()

	// Redis is optional: when unavailable, rate limiting and response
	// caching degrade to no-ops.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Println("redis unavailable, rate limiting and caching disabled")
	}

	// Repositories
	userRepo := repository.NewUserRepo(db)
	tokenRepo := repository.NewTokenRepo(db)
	gigRepo := repository.NewGigRepo(db)
	genreRepo := repository.NewGenreRepo(db)

	// Handlers
	authHandler := handler.NewAuthHandler(cfg, userRepo, tokenRepo)
	gigHandler := handler.NewGigHandler(gigRepo, genreRepo)
	publicHandler := handler.NewPublicHandler(gigRepo, genreRepo)

	e := echo.New()
	e.HideBanner = true

	// Rate limit the whole API; cache only the public browse routes.
	e.Use(appmw.NewTokenBucket(config.LoadRateLimitConfig(), rdb))
	browseCache := appmw.NewRedisCache(config.LoadCacheConfig(), rdb)

	router.RegisterRoutes(e)
	router.RegisterAuth(e, authHandler, cfg.JWTSecret)
	router.RegisterGigs(e, gigHandler, cfg.JWTSecret)
	router.RegisterPublic(e, publicHandler, browseCache)

	// The consumer keeps its own reconnect loop; run it for the lifetime
	// of the process.
	go func() {
		if err := queue.StartGigConsumer(); err != nil {
			log.Printf("gig consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
