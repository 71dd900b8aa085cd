package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Domenick1991/priceops/config"
	"github.com/Domenick1991/priceops/internal/bootstrap"
	"github.com/Domenick1991/priceops/internal/cache"
	"github.com/Domenick1991/priceops/internal/kafka"
	"github.com/Domenick1991/priceops/internal/repository"
	"github.com/Domenick1991/priceops/internal/service/pricing"
	"github.com/jackc/pgx/v5/pgxpool"
)

func main() {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		log.Fatalf("connect postgres: %v", err)
	}
	defer pool.Close()

	redisCache := cache.NewRedisCache(cfg.Redis, time.Duration(cfg.Pricing.HistoryCacheTTL)*time.Second)
	producer := kafka.NewProducer(cfg.Kafka.Brokers)
	defer producer.Close()

	quoteRepo := repository.NewQuoteRepository(pool)
	rules := pricing.NewRules(cfg.Pricing)
	pricingService := pricing.NewPricingService(
		rules,
		quoteRepo,
		redisCache,
		producer,
		cfg.Kafka.QuotesTopic,
		cfg.Pricing.HistoryLimit,
		pricing.WithNotificationsTopic(cfg.Kafka.NotificationsTopic),
	)

	if err := bootstrap.Run(ctx, cfg, pricingService); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
