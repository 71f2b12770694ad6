package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fulfillment/cmd"
	httpin "fulfillment/internal/adapters/in/http"
	"fulfillment/internal/adapters/out/cache"
	"fulfillment/internal/adapters/out/eventbus"
	"fulfillment/internal/adapters/out/postgres"
	"fulfillment/internal/adapters/out/proofstore"
	"fulfillment/internal/adapters/out/vnpay"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/logging"
	"fulfillment/internal/pkg/telemetry"

	"github.com/labstack/gommon/log"
	"golang.org/x/sync/errgroup"
	pgdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const (
	serviceName     = "fulfillment"
	shutdownTimeout = 15 * time.Second
)

func main() {
	configs, err := cmd.LoadConfig(".env")
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	logger := logging.New(configs.LogLevel, os.Stdout)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err = run(ctx, configs, logger); err != nil {
		logger.Error("service stopped with error", "error", err)
		os.Exit(1)
	}
	logger.Info("service stopped")
}

func run(ctx context.Context, configs cmd.Config, logger *slog.Logger) error {
	shutdownTracer, err := telemetry.SetupTracer(ctx, telemetry.Config{
		ServiceName: serviceName,
		Environment: configs.Environment,
		Endpoint:    configs.OTLPEndpoint,
		SampleRatio: configs.TraceSampleRatio,
	})
	if err != nil {
		return fmt.Errorf("setup tracer: %w", err)
	}
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := shutdownTracer(flushCtx); err != nil {
			logger.Warn("tracer shutdown failed", "error", err)
		}
	}()

	gormDB, err := openDatabase(configs.DSN())
	if err != nil {
		return err
	}
	if err = postgres.Migrate(gormDB); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	gateway, err := vnpay.NewGateway(vnpay.Config{
		PaymentURL:   configs.PaymentURL,
		TerminalCode: configs.PaymentTerminalCode,
		HashSecret:   configs.PaymentHashSecret,
		ReturnURL:    configs.PaymentReturnURL,
		Locale:       configs.PaymentLocale,
		ExpireAfter:  configs.PaymentExpireAfter,
	})
	if err != nil {
		return fmt.Errorf("payment gateway: %w", err)
	}

	storage, err := proofStorage(ctx, configs)
	if err != nil {
		return fmt.Errorf("proof storage: %w", err)
	}

	checks := map[string]httpin.ReadinessCheck{
		"postgres": func(ctx context.Context) error {
			sqlDB, err := gormDB.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		},
	}

	var publishers eventbus.Fanout
	if brokers := configs.Brokers(); len(brokers) > 0 {
		kafka := eventbus.NewKafkaPublisher(brokers, configs.KafkaOrderTopic, logger)
		defer kafka.Close()
		publishers = append(publishers, kafka)
	}

	var orderCache ports.Cache
	if configs.RedisAddr != "" {
		redisCache := cache.NewRedisCache(configs.RedisAddr, configs.RedisPassword, configs.RedisDB, serviceName)
		defer redisCache.Close()
		orderCache = redisCache
		publishers = append(publishers, cache.NewOrderInvalidator(redisCache))
		checks["redis"] = redisCache.Ping
	}

	adapters := cmd.Adapters{
		Gateway:      gateway,
		ProofStorage: storage,
		Cache:        orderCache,
		Logger:       logger,
	}
	if len(publishers) > 0 {
		adapters.Publisher = publishers
	}
	app := cmd.NewCompositionRoot(configs, gormDB, adapters)

	e := httpin.NewEcho(httpin.NewServer(app.HTTPHandlers(), checks), logger)
	if configs.ProofStorage == cmd.ProofStorageLocal {
		e.Static(configs.ProofPublicBase, configs.ProofLocalDir)
	}

	jobManager := app.JobManager()
	if err = jobManager.StartAll(ctx); err != nil {
		return err
	}
	defer jobManager.StopAll()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("http server listening", "port", configs.HTTPPort)
		if err := e.Start(fmt.Sprintf("0.0.0.0:%s", configs.HTTPPort)); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return e.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

func openDatabase(dsn string) (*gorm.DB, error) {
	gormDB, err := gorm.Open(pgdriver.New(pgdriver.Config{DSN: dsn, PreferSimpleProtocol: true}), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Warn),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	return gormDB, nil
}

func proofStorage(ctx context.Context, configs cmd.Config) (ports.ProofStorage, error) {
	if configs.ProofStorage == cmd.ProofStorageS3 {
		return proofstore.NewS3Storage(ctx, configs.ProofS3Region, configs.ProofS3Bucket, configs.ProofS3Prefix)
	}
	return proofstore.NewLocalStorage(configs.ProofLocalDir, configs.ProofPublicBase)
}
