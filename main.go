package main

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"homeBakery/config"
	"homeBakery/handlers"
	"homeBakery/repository"
	"homeBakery/services"

	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func newLogger(level string) (*zap.Logger, error) {
	if level == "debug" {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	if err := cfg.Level.UnmarshalText([]byte(level)); err != nil {
		return nil, err
	}
	return cfg.Build()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}
	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	ctx := context.Background()

	catalog, err := repository.LoadCatalog(cfg.CatalogFile)
	if err != nil {
		logger.Fatal("load catalog", zap.String("file", cfg.CatalogFile), zap.Error(err))
	}

	db, err := sql.Open(cfg.DatabaseDriver, cfg.DSN())
	if err != nil {
		logger.Fatal("open database", zap.String("driver", cfg.DatabaseDriver), zap.Error(err))
	}
	defer db.Close()
	if cfg.DatabaseDriver == repository.DriverSQLite {
		db.SetMaxOpenConns(1)
	}
	oR, err := repository.NewOrderRepository(ctx, db, cfg.DatabaseDriver, logger)
	if err != nil {
		logger.Fatal("connect database", zap.Error(err))
	}
	if err = oR.Migrate(ctx); err != nil {
		logger.Fatal("migrate database", zap.Error(err))
	}
	logger.Info("db connected", zap.String("driver", cfg.DatabaseDriver))

	sealer := repository.NewSealer(cfg.SessionSecret)
	var sR repository.SessionRepository
	var notifier repository.OrderNotifier
	if cfg.UseRedis() {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr(),
			Password: cfg.RedisPassword,
			DB:       0,
		})
		defer rdb.Close()
		pingCtx, cncl := context.WithTimeout(ctx, 5*time.Second)
		sR, err = repository.NewRedisSessionRepository(pingCtx, rdb, cfg.SessionTTL, sealer, logger)
		cncl()
		if err != nil {
			logger.Fatal("redis is not working", zap.String("addr", cfg.RedisAddr()), zap.Error(err))
		}
		notifier, err = repository.NewRedisOrderNotifier(rdb, repository.OrdersChannel, logger)
		if err != nil {
			logger.Fatal("order notifier", zap.Error(err))
		}
		logger.Info("redis connected", zap.String("addr", cfg.RedisAddr()))
	} else {
		sR = repository.NewMemorySessionRepository(cfg.SessionTTL, sealer)
		logger.Warn("REDIS_HOST not set, keeping sessions in memory")
	}

	cartService := services.NewCartService(catalog, sR)
	hp := handlers.HandlerParams{
		CrtService: cartService,
		OrdService: services.NewOrderService(cartService, oR, notifier, logger),
		CatService: services.NewCatalogService(catalog),
		Logger:     logger,
		SessionTTL: cfg.SessionTTL,
	}
	router := handlers.NewRouter(handlers.NewHandler(hp))

	logger.Info("starting server", zap.String("port", cfg.Port))
	if err = http.ListenAndServe(":"+cfg.Port, router); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}
