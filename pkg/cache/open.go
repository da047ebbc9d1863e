package cache

import (
	"context"
	"fmt"
)

// Backend names accepted by [Open].
const (
	BackendNone  = "none"
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendMongo = "mongo"
)

// Config selects and configures a cache backend. The mapstructure and toml
// tags match the [cache] table of the seqdiag config file.
type Config struct {
	Backend         string `toml:"backend" mapstructure:"backend"`
	Dir             string `toml:"dir" mapstructure:"dir"`
	RedisURL        string `toml:"redis_url" mapstructure:"redis_url"`
	MongoURI        string `toml:"mongo_uri" mapstructure:"mongo_uri"`
	MongoDatabase   string `toml:"mongo_database" mapstructure:"mongo_database"`
	MongoCollection string `toml:"mongo_collection" mapstructure:"mongo_collection"`
	Prefix          string `toml:"prefix" mapstructure:"prefix"`
}

// Open returns the backend named by cfg.Backend. An empty backend means
// "file" in the default directory.
func Open(ctx context.Context, cfg Config) (Cache, error) {
	switch cfg.Backend {
	case BackendNone:
		return NewNullCache(), nil
	case "", BackendFile:
		dir := cfg.Dir
		if dir == "" {
			d, err := DefaultDir()
			if err != nil {
				return nil, fmt.Errorf("cache dir: %w", err)
			}
			dir = d
		}
		return NewFileCache(dir)
	case BackendRedis:
		if cfg.RedisURL == "" {
			return nil, fmt.Errorf("redis cache requires redis_url")
		}
		return NewRedisCache(ctx, cfg.RedisURL, cfg.Prefix)
	case BackendMongo:
		if cfg.MongoURI == "" {
			return nil, fmt.Errorf("mongo cache requires mongo_uri")
		}
		db, coll := cfg.MongoDatabase, cfg.MongoCollection
		if db == "" {
			db = "seqdiag"
		}
		if coll == "" {
			coll = "cache"
		}
		return NewMongoCache(ctx, cfg.MongoURI, db, coll)
	default:
		return nil, fmt.Errorf("unknown cache backend %q (must be one of: none, file, redis, mongo)", cfg.Backend)
	}
}

// KeyerFor returns the keyer to pair with the cache opened from cfg. The
// Redis backend applies cfg.Prefix itself; for MongoDB the prefix is moved
// into the keys.
func KeyerFor(cfg Config) Keyer {
	if cfg.Backend == BackendMongo && cfg.Prefix != "" {
		return NewScopedKeyer(NewDefaultKeyer(), cfg.Prefix)
	}
	return NewDefaultKeyer()
}
