package main

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Domenick1991/priceops/config"
	"github.com/Domenick1991/priceops/internal/kafka"
	"github.com/Domenick1991/priceops/internal/notify"
	"github.com/Domenick1991/priceops/internal/repository"
	"github.com/jackc/pgx/v5/pgxpool"
	kafkaGo "github.com/segmentio/kafka-go"
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

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		log.Fatalf("connect postgres: %v", err)
	}
	defer pool.Close()

	quoteRepo := repository.NewQuoteRepository(pool)

	consumer := kafka.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.GroupID, cfg.Kafka.NotificationsTopic)
	defer consumer.Close()

	sender := notify.NewSender()

	go func() {
		if err := consumer.Consume(ctx, func(ctx context.Context, msg kafkaGo.Message) error {
			var event kafka.QuoteEvent
			if err := json.Unmarshal(msg.Value, &event); err != nil {
				log.Printf("decode event error: %v", err)
				return nil
			}
			return sender.Send(ctx, event)
		}); err != nil {
			log.Printf("consumer stopped: %v", err)
		}
	}()

	sweepInterval := time.Duration(cfg.Worker.VolumeSweepMinutes) * time.Minute
	volumeTicker := time.NewTicker(sweepInterval)
	defer volumeTicker.Stop()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)

	for {
		select {
		case <-volumeTicker.C:
			count, err := quoteRepo.CountSince(ctx, time.Now().Add(-sweepInterval))
			if err != nil {
				log.Printf("count quotes error: %v", err)
				continue
			}
			log.Printf("appended %d quote records in the last %s", count, sweepInterval)
		case s := <-sig:
			log.Printf("received signal %v, shutting down", s)
			return
		}
	}
}
