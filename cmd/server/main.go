package main // Entry point package

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/event-pass-market/internal/config"
	"github.com/iliyamo/event-pass-market/internal/database"
	"github.com/iliyamo/event-pass-market/internal/handler"
	"github.com/iliyamo/event-pass-market/internal/middleware"
	"github.com/iliyamo/event-pass-market/internal/queue"
	"github.com/iliyamo/event-pass-market/internal/repository"
	"github.com/iliyamo/event-pass-market/internal/router"
	"github.com/iliyamo/event-pass-market/internal/search"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("db open: %v", err)
	}

	// Redis is optional: a nil client disables rate limiting and caching.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Printf("redis unavailable; rate limiting and response cache disabled")
	}

	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)
	listings := repository.NewListingRepo(db)
	unlocks := repository.NewUnlockRepo(db)

	// Warm the autocomplete index from the store so suggestions work
	// before the first full listing fetch has run.
	index := search.NewHolder()
	{
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		entries, err := listings.NameIndex(ctx)
		cancel()
		if err != nil {
			log.Printf("index warm build failed: %v (starting empty)", err)
		} else {
			index.Rebuild(entries)
		}
	}

	authH := handler.NewAuthHandler(cfg, users, tokens)
	listingH := handler.NewListingHandler(cfg, listings, unlocks, users, index)

	e := echo.New()
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))

	router.RegisterRoutes(e)
	router.RegisterAuth(e, authH, cfg.JWTSecret)
	router.RegisterPublic(e, listingH, middleware.NewRedisCache(config.LoadCacheConfig(), rdb))
	router.RegisterListings(e, listingH, cfg.JWTSecret)

	// Background consumer that appends sale events to logs/sales.log.
	go func() {
		if err := queue.StartSalesConsumer(); err != nil {
			log.Printf("sales consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
