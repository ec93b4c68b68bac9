package config

import (
	"context"

	"github.com/matzehuels/forgeboard/pkg/errors"
	"github.com/matzehuels/forgeboard/pkg/store"
	"github.com/matzehuels/forgeboard/pkg/store/mongo"
	"github.com/matzehuels/forgeboard/pkg/store/redis"
	"github.com/matzehuels/forgeboard/pkg/store/sqlite"
)

// OpenBackend constructs the settings backend named by c.Store.Backend.
// Connection failures are reported as STORAGE_ERROR.
func (c Config) OpenBackend(ctx context.Context) (store.Backend, error) {
	var (
		b   store.Backend
		err error
	)
	switch c.Store.Backend {
	case BackendMemory:
		return store.NewMemoryBackend(), nil
	case BackendNull:
		return store.NewNullBackend(), nil
	case BackendFile:
		b, err = store.NewFileBackend(c.StorePath())
	case BackendSQLite:
		b, err = sqlite.Open(ctx, c.StorePath())
	case BackendRedis:
		b, err = redis.New(ctx, redis.Config{
			Addr:     c.Store.RedisAddr,
			Password: c.Store.RedisPassword,
			DB:       c.Store.RedisDB,
			Prefix:   c.Store.RedisPrefix,
		})
	case BackendMongo:
		b, err = mongo.New(ctx, mongo.Config{
			URI:      c.Store.MongoURI,
			Database: c.Store.MongoDatabase,
		})
	default:
		return nil, errors.New(errors.ErrCodeInvalidConfig, "unknown store backend %q", c.Store.Backend)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "open %s backend", c.Store.Backend)
	}
	return b, nil
}
