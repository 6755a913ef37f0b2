package main

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/harentsoaR/clinic-api/internal/cache"
	"github.com/harentsoaR/clinic-api/internal/config"
	"github.com/harentsoaR/clinic-api/internal/handlers"
	"github.com/harentsoaR/clinic-api/internal/metrics"
	"github.com/harentsoaR/clinic-api/internal/repository"
	"github.com/harentsoaR/clinic-api/internal/services"
	"github.com/harentsoaR/clinic-api/internal/utils"
)

// clinicStore is what both repository backends provide.
type clinicStore interface {
	handlers.Pinger
	services.PatientStore
	services.StaffStore
	services.AppointmentStore
	services.BookedSlotSource
	services.SeedStore
}

type app struct {
	cfg     *config.Config
	logger  zerolog.Logger
	store   clinicStore
	closers []func(context.Context) error
}

func newApp(ctx context.Context) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	a := &app{cfg: cfg, logger: utils.NewLogger(cfg.LogLevel, cfg.LogPretty)}

	switch cfg.StoreBackend {
	case config.BackendMemory:
		a.store = repository.NewMemoryStore()
		a.logger.Warn().Msg("using in-memory store, data is lost on exit")
	default:
		store, disconnect, err := connectMongo(ctx, cfg)
		if err != nil {
			return nil, err
		}
		a.store = store
		a.closers = append(a.closers, disconnect)
		a.logger.Info().Str("database", cfg.MongoDatabase).Msg("connected to MongoDB")
	}
	return a, nil
}

func connectMongo(ctx context.Context, cfg *config.Config) (*repository.MongoStore, func(context.Context) error, error) {
	ctx, cancel := context.WithTimeout(ctx, cfg.MongoConnectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		return nil, nil, fmt.Errorf("connect to MongoDB: %w", err)
	}
	store := repository.NewMongoStore(client.Database(cfg.MongoDatabase))
	if err := store.Ping(ctx); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, fmt.Errorf("ping MongoDB: %w", err)
	}
	return store, client.Disconnect, nil
}

// doctorFinder puts the Redis cache in front of the store when REDIS_ADDR is
// set.
func (a *app) doctorFinder() services.DoctorFinder {
	if !a.cfg.CacheEnabled() {
		return a.store
	}
	client := redis.NewClient(&redis.Options{
		Addr:     a.cfg.RedisAddr,
		Password: a.cfg.RedisPassword,
	})
	a.closers = append(a.closers, func(context.Context) error { return client.Close() })
	a.logger.Info().Str("addr", a.cfg.RedisAddr).Dur("ttl", a.cfg.DoctorCacheTTL).Msg("doctor cache enabled")
	return cache.NewDoctorCache(client, a.store, a.cfg.DoctorCacheTTL, a.logger)
}

type appServices struct {
	records      *services.RecordService
	doctors      *services.DoctorService
	availability *services.AvailabilityService
	appointments *services.AppointmentService
}

func (a *app) buildServices(reg prometheus.Registerer) appServices {
	m := metrics.NewSchedulingMetrics(reg)
	finder := a.doctorFinder()
	notifier := services.NewNotificationService(a.cfg.TextbeltAPIKey, a.logger)
	return appServices{
		records:      services.NewRecordService(a.store, a.logger),
		doctors:      services.NewDoctorService(a.store, finder, a.logger),
		availability: services.NewAvailabilityService(finder, a.store, m, a.logger),
		appointments: services.NewAppointmentService(a.store, finder, services.NewRoomAllocator(), notifier, m, a.logger),
	}
}

func (a *app) close(ctx context.Context) {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](ctx); err != nil {
			a.logger.Warn().Err(err).Msg("shutdown cleanup failed")
		}
	}
}
