package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/haulaway/haulaway/internal/cache"
	"github.com/haulaway/haulaway/internal/db"
	"github.com/haulaway/haulaway/internal/events"
	"github.com/haulaway/haulaway/internal/kafka"
	"github.com/haulaway/haulaway/internal/lifecycle"
	"github.com/haulaway/haulaway/internal/logger"
	"github.com/haulaway/haulaway/internal/payments"
	"github.com/haulaway/haulaway/internal/repository/postgresql"
	"github.com/haulaway/haulaway/internal/server"
)

func main() {
	log := logger.New()
	defer func() { _ = log.Sync() }()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	database, err := db.NewDb(ctx)
	if err != nil {
		log.Fatal("database init failed", zap.Error(err))
	}
	defer database.Close()

	jobRepo := postgresql.NewJobRepo(database)
	orderRepo := postgresql.NewOrderRepo(database)
	moverRepo := postgresql.NewMoverRepo(database)
	historyRepo := postgresql.NewHistoryRepo(database)
	userRepo := postgresql.NewUserRepo(database)
	outboxRepo := postgresql.NewOutboxTaskRepo(database)

	sink := events.NewOutboxChannel(outboxRepo)

	jobCache := cache.NewJobCache(jobRepo, log)
	if err := jobCache.LoadInitialData(ctx); err != nil {
		log.Fatal("job cache warmup failed", zap.Error(err))
	}

	refunder := payments.NewConsoleRefunder()
	defer refunder.Close()

	engine := lifecycle.NewEngine(database, jobRepo, orderRepo, moverRepo, historyRepo, sink, refunder, jobCache, log)

	var producer kafka.Producer
	if brokers := os.Getenv("KAFKA_BROKERS"); brokers != "" {
		producer = kafka.NewKafkaProducer(strings.Split(brokers, ","), log)
	} else {
		producer = kafka.NewConsoleProducer(log)
	}

	publisher := kafka.NewPublisher(database, outboxRepo, producer, kafka.PublisherConfig{
		PollInterval: 2 * time.Second,
		BatchSize:    20,
		MaxAttempts:  5,
	}, log)

	srv := server.New(engine, userRepo, sink, log)

	port := os.Getenv("SERVER_PORT")
	if port == "" {
		port = "9000"
	}

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		return srv.Run(groupCtx, port)
	})
	group.Go(func() error {
		publisher.Run(groupCtx)
		return nil
	})

	if err := group.Wait(); err != nil {
		log.Fatal("service terminated", zap.Error(err))
	}
	log.Info("service stopped")
}
