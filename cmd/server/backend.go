package main

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/sharedcustody/custody-calendar/internal/api/handler"
	"github.com/sharedcustody/custody-calendar/internal/core/ports"
	"github.com/sharedcustody/custody-calendar/internal/core/service"
	mongostore "github.com/sharedcustody/custody-calendar/internal/infrastructure/db/mongo"
	redisstore "github.com/sharedcustody/custody-calendar/internal/infrastructure/db/redis"
	sqldb "github.com/sharedcustody/custody-calendar/internal/infrastructure/db/sql"
	"github.com/sharedcustody/custody-calendar/internal/pkg/config"
)

// backend bundles the repositories of one STORE_BACKEND.
type backend struct {
	credentials ports.CredentialRepository
	documents   ports.DocumentRepository
	throttle    service.LoginThrottle
	readiness   map[string]handler.Pinger
	close       func(ctx context.Context) error
}

func openBackend(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*backend, error) {
	switch cfg.StoreBackend {
	case config.BackendRedis:
		client, err := redisstore.Connect(ctx, redisstore.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			return nil, err
		}
		log.Info().Str("addr", cfg.Redis.Addr).Msg("connected to redis")
		return &backend{
			credentials: redisstore.NewCredentialRepository(client),
			documents:   redisstore.NewDocumentRepository(client),
			throttle:    redisstore.NewLoginThrottle(client, cfg.Throttle.MaxAttempts, cfg.Throttle.Lockout),
			readiness: map[string]handler.Pinger{
				"redis": func(ctx context.Context) error { return client.Ping(ctx).Err() },
			},
			close: func(context.Context) error { return client.Close() },
		}, nil

	case config.BackendMongo:
		client, db, err := mongostore.Connect(ctx, mongostore.Config{
			URI:         cfg.Mongo.URI,
			Database:    cfg.Mongo.Database,
			AppName:     "custody-api",
			MaxPoolSize: cfg.Mongo.MaxPoolSize,
		})
		if err != nil {
			return nil, err
		}
		log.Info().Str("database", cfg.Mongo.Database).Msg("connected to mongodb")
		return &backend{
			credentials: mongostore.NewCredentialRepository(db),
			documents:   mongostore.NewDocumentRepository(db),
			readiness: map[string]handler.Pinger{
				"mongodb": func(ctx context.Context) error { return client.Ping(ctx, nil) },
			},
			close: client.Disconnect,
		}, nil

	case config.BackendSQL:
		db, err := sqldb.Connect(ctx, sqldb.Config{
			Driver:   cfg.SQL.Driver,
			DSN:      cfg.SQL.DSN,
			MaxConns: cfg.SQL.MaxConns,
		})
		if err != nil {
			return nil, err
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		log.Info().Str("driver", cfg.SQL.Driver).Msg("connected to sql database")
		return &backend{
			credentials: sqldb.NewCredentialRepository(db),
			documents:   sqldb.NewDocumentRepository(db),
			readiness: map[string]handler.Pinger{
				cfg.SQL.Driver: sqlDB.PingContext,
			},
			close: func(context.Context) error { return sqlDB.Close() },
		}, nil
	}
	return nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
}
