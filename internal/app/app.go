package app

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jimlawless/whereami"
	config "github.com/vitrine-tech/storefront-backend/internal/cfg"
	v1Http "github.com/vitrine-tech/storefront-backend/internal/delivery/v1/http"
	"github.com/vitrine-tech/storefront-backend/internal/infrastructure/kafka"
	"github.com/vitrine-tech/storefront-backend/internal/repository/pgdb"
	pgdbConv "github.com/vitrine-tech/storefront-backend/internal/repository/pgdb/converter/generated"
	"github.com/vitrine-tech/storefront-backend/internal/repository/redis"
	redisConv "github.com/vitrine-tech/storefront-backend/internal/repository/redis/converter/generated"
	"github.com/vitrine-tech/storefront-backend/internal/usecase"
	"github.com/vitrine-tech/storefront-backend/pkg/clients"
	"github.com/vitrine-tech/storefront-backend/pkg/closer"
	"github.com/vitrine-tech/storefront-backend/pkg/e"
	"github.com/vitrine-tech/storefront-backend/pkg/logger"
	"github.com/vitrine-tech/storefront-backend/pkg/postgres"
)

const (
	shutdownTimeout    = 10 * time.Second
	ensureTopicTimeout = 15 * time.Second
)

func Run() {
	log := logger.NewZapLogger()
	defer log.Sync()

	cfg, err := config.Load(log)
	if err != nil {
		log.Errorf(err, "failed to load config")
		os.Exit(1)
	}

	db, err := initPGDB(log, cfg)
	if err != nil {
		log.Errorf(err, "failed to initialize database")
		os.Exit(1)
	}

	cl := closer.NewCloser(shutdownTimeout)
	cl.Add(func(ctx context.Context) error {
		db.Close()
		return nil
	})

	prConv := pgdbConv.NewProductConverterImpl()
	catConv := pgdbConv.NewCategoryConverterImpl()
	cartConv := pgdbConv.NewCartLineConverterImpl()
	orderConv := pgdbConv.NewOrderConverterImpl()
	lineConv := pgdbConv.NewOrderLineConverterImpl()
	outboxConv := pgdbConv.NewOutboxEventConverterImpl()
	infoConv := redisConv.NewProductInfoConverterImpl()

	productRepo := pgdb.NewProductRepo(db.Pool, prConv)
	categoryRepo := pgdb.NewCategoryRepo(db.Pool, catConv)
	cartRepo := pgdb.NewCartRepo(db.Pool, cartConv)
	orderRepo := pgdb.NewOrderRepo(db.Pool, orderConv, lineConv)
	outboxRepo := pgdb.NewOutboxEventRepo(db.Pool, outboxConv)

	redisClient := clients.NewRedisClient(cfg.Redis)
	redisCtx, redisCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer redisCancel()
	if err := redisClient.Ping(redisCtx); err != nil {
		log.Errorf(err, "failed to connect to redis")
		os.Exit(1)
	}
	cl.Add(func(ctx context.Context) error {
		return redisClient.Client.Close()
	})
	cacheRepo := redis.NewCacheRepo(redisClient, infoConv, cfg.Redis, log)

	producer, err := kafka.NewProducer(log, cfg.Kafka)
	if err != nil {
		log.Errorf(err, "failed to initialize kafka producer")
		os.Exit(1)
	}
	if err := producer.EnsureTopic(ensureTopicTimeout); err != nil {
		log.Errorf(err, "failed to ensure kafka topic")
		os.Exit(1)
	}
	cl.Add(func(ctx context.Context) error {
		return producer.Close()
	})

	orderUC := usecase.NewOrderUC(orderRepo, cartRepo, productRepo, outboxRepo, cacheRepo, db.Pool, log)
	cartUC := usecase.NewCartUC(cartRepo, productRepo, db.Pool, log)
	catalogUC := usecase.NewCatalogUC(productRepo, categoryRepo, cacheRepo, db.Pool, log)

	workerCtx, workerCancel := context.WithCancel(context.Background())
	worker := kafka.NewOutboxWorker(outboxRepo, log, producer, db.Dsn)
	worker.Start(workerCtx)
	cl.Add(func(ctx context.Context) error {
		workerCancel()
		worker.Stop()
		return nil
	})

	r := chi.NewRouter()
	router := v1Http.NewRouter(r, log)
	router.Init(orderUC, cartUC, catalogUC)

	httpSrv := v1Http.NewServer(r, cfg.Http)

	errCh := make(chan error, 1)
	go func() {
		log.Infof("HTTP server started on port %s", cfg.Http.Port)
		if err := httpSrv.Run(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Errorf(err, "HTTP server failed")
			errCh <- err
		}
	}()

	// === Ожидание сигнала или ошибки ===
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	var appErr error
	select {
	case appErr = <-errCh:
		log.Errorf(appErr, "HTTP server fatal error")
	case <-shutdown:
		log.Infof("Received shutdown signal, stopping gracefully...")
	}

	// === Graceful shutdown ===
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	if err := httpSrv.Stop(shutdownCtx); err != nil {
		log.Errorf(err, "HTTP server shutdown error")
	} else {
		log.Infof("HTTP server stopped")
	}

	if err := cl.Close(shutdownCtx); err != nil {
		log.Warnf("shutdown finished with errors: %v", err)
	}

	log.Infof("Application shutdown complete")
	if appErr != nil {
		os.Exit(1)
	}
}

func initPGDB(log logger.Logger, cfg *config.Config) (*postgres.PgDatabase, error) {
	db, err := postgres.Connect(cfg.Db)
	if err != nil {
		log.Errorf(err, "failed to connect to database")
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	if err := db.RunMigrations(log); err != nil {
		log.Errorf(err, "failed to run migrations")
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	if err := db.Ping(); err != nil {
		log.Errorf(err, "failed to ping database")
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return db, nil
}
