package redisStore

import (
	"context"
	"os"
	"sync"
	"time"

	"github.com/akolanti/DocQueryAPI/internal/config"
	"github.com/akolanti/DocQueryAPI/pkg/logger_i"
	"github.com/redis/go-redis/v9"
)

var (
	instance *Store
	logger   *logger_i.Logger
	once     sync.Once
)

type Store struct {
	client *redis.Client
}

// GetRedisStore connects once and reuses the client. Returns nil when redis
// is unreachable so the caller can fall back to the in-memory store.
func GetRedisStore(ctx context.Context) *Store {
	once.Do(func() {
		logger = logger_i.NewLogger("Redis Store")
		instance = createNewStore(ctx)
		if instance != nil {
			go closeOnShutdown(ctx, instance)
		}
	})
	return instance
}

func closeOnShutdown(ctx context.Context, store *Store) {
	<-ctx.Done()
	logger.Info("Closing Redis store")
	if err := store.client.Close(); err != nil {
		logger.Error("Error closing redis client", "error", err)
	}
}

func createNewStore(ctx context.Context) *Store {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = config.RedisAddr
	}
	newClient := redis.NewClient(&redis.Options{
		Addr:                  addr,
		Password:              config.RedisPassword,
		DB:                    config.RedisDocumentStore,
		ContextTimeoutEnabled: true,
		ReadTimeout:           30 * time.Second,
		WriteTimeout:          30 * time.Second,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	if err := newClient.Ping(pingCtx).Err(); err != nil {
		logger.Error("Redis is offline: ", "error", err.Error())
		return nil
	}

	logger.Info("Redis store init successfully")
	return &Store{client: newClient}
}

// NewTestStore lets tests inject a miniredis-backed client.
func NewTestStore(client *redis.Client) *Store {
	return &Store{client: client}
}
