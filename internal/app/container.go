package app

import (
	"context"
	"errors"
	"log"
	"time"

	"jobboard/internal/config"
	"jobboard/internal/database"
	"jobboard/internal/database/migration"
	dbpostgres "jobboard/internal/database/postgres"
	"jobboard/internal/delivery/http/dto"
	"jobboard/internal/infrastructure/cache"
	"jobboard/internal/infrastructure/events"
	"jobboard/internal/infrastructure/storage"
	"jobboard/internal/pkg/jwt"
	"jobboard/internal/telemetry"
	"jobboard/internal/usecase"
	"jobboard/internal/ws"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Container owns every long-lived dependency of the API process.
type Container struct {
	Config config.Config
	Logger *log.Logger

	DB      database.DB
	Cache   *cache.Redis
	Storage *storage.MinioStore
	Events  events.Publisher
	Hub     *ws.Hub
	JWT     jwt.Service

	Registry *prometheus.Registry
	Metrics  *telemetry.Metrics

	shutdownTracing func(context.Context) error
	stopHub         context.CancelFunc
}

func NewContainer(cfg config.Config, logger *log.Logger) (*Container, error) {
	if logger == nil {
		logger = log.Default()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	c := &Container{Config: cfg, Logger: logger}

	shutdown, err := telemetry.InitTracing(ctx, cfg.Telemetry, cfg.App.Environment, logger)
	if err != nil {
		return nil, err
	}
	c.shutdownTracing = shutdown

	db, err := dbpostgres.Connect(ctx, cfg.Database)
	if err != nil {
		_ = c.Close()
		return nil, err
	}
	c.DB = db

	if err := (migration.Runner{Logger: logger}).Run(ctx, db.SQLDB()); err != nil {
		_ = c.Close()
		return nil, err
	}

	c.Cache = cache.NewRedis(cfg.Redis, logger)

	store, err := storage.NewMinio(cfg.Storage, logger)
	switch {
	case errors.Is(err, storage.ErrUnavailable):
		logger.Printf("[Storage] S3_ENDPOINT empty, uploads disabled")
	case err != nil:
		_ = c.Close()
		return nil, err
	default:
		if err := store.EnsureBucket(ctx); err != nil {
			logger.Printf("[Storage] ensure bucket failed bucket=%s err=%v", cfg.Storage.Bucket, err)
		}
		c.Storage = store
	}

	if len(cfg.Kafka.Brokers) > 0 {
		c.Events = events.NewKafkaPublisher(cfg.Kafka)
	} else {
		logger.Printf("[Events] KAFKA_BROKERS empty, job events disabled")
		c.Events = events.NopPublisher{}
	}

	hubCtx, stopHub := context.WithCancel(context.Background())
	c.Hub = ws.NewHub(logger)
	c.stopHub = stopHub
	go c.Hub.Run(hubCtx)

	c.JWT = jwt.NewHMACService(
		cfg.JWT.AccessSecret,
		cfg.JWT.RefreshSecret,
		cfg.JWT.AccessExpiresIn,
		cfg.JWT.RefreshExpiresIn,
	)

	c.Registry = prometheus.NewRegistry()
	c.Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	c.Metrics = telemetry.NewMetrics(c.Registry)

	return c, nil
}

// FileStore is nil when object storage is not configured.
func (c *Container) FileStore() usecase.FileStore {
	if c.Storage == nil {
		return nil
	}
	return c.Storage
}

func (c *Container) URLSigner() dto.URLSigner {
	if c.Storage == nil {
		return nil
	}
	return c.Storage
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var errs []error
	if c.stopHub != nil {
		c.stopHub()
	}
	if c.Events != nil {
		errs = append(errs, c.Events.Close())
	}
	if c.Cache != nil {
		errs = append(errs, c.Cache.Close())
	}
	if c.DB != nil {
		errs = append(errs, c.DB.Close())
	}
	if c.shutdownTracing != nil {
		errs = append(errs, c.shutdownTracing(ctx))
	}
	return errors.Join(errs...)
}
