package tokenstore

import (
	"context"
	"fmt"

	"github.com/jobportal/client/internal/core/ports"
	mongostore "github.com/jobportal/client/internal/infrastructure/db/mongo"
	redisstore "github.com/jobportal/client/internal/infrastructure/db/redis"
	"github.com/jobportal/client/internal/pkg/config"
)

// Store is a token slot that can also report reachability.
type Store interface {
	ports.TokenStore
	ports.Pinger
}

// CloseFunc releases whatever connection backs a Store.
type CloseFunc func(ctx context.Context) error

func noopClose(context.Context) error { return nil }

// Open selects the token slot named by cfg.Store.Driver and connects its
// backend.
func Open(ctx context.Context, cfg *config.Config) (Store, CloseFunc, error) {
	switch cfg.Store.Driver {
	case "file":
		return NewFileStore(cfg.Store.File), noopClose, nil
	case "memory":
		return NewMemoryStore(), noopClose, nil
	case "redis":
		client, err := redisstore.Connect(ctx, redisstore.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("open redis token store: %w", err)
		}
		closeFn := func(context.Context) error { return client.Close() }
		return redisstore.NewTokenStore(client, cfg.Store.Key), closeFn, nil
	case "mongo":
		client, db, err := mongostore.Connect(ctx, mongostore.Config{
			URI:      cfg.Mongo.URI,
			Database: cfg.Mongo.Database,
			AppName:  "jobportal",
		})
		if err != nil {
			return nil, nil, fmt.Errorf("open mongo token store: %w", err)
		}
		return mongostore.NewTokenStore(db, cfg.Store.Key), client.Disconnect, nil
	default:
		return nil, nil, fmt.Errorf("unknown token store driver %q", cfg.Store.Driver)
	}
}
