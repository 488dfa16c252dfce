package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// Snapshot store type constants
const (
	CacheStoreDatabase = "database"
	CacheStoreRedis    = "redis"
)

// RedisSettings holds the connection configuration for a redis snapshot store
type RedisSettings struct {
	Addr     string `mapstructure:"addr"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db" validate:"min=0,max=15"`
}

// CacheSettings selects and configures the snapshot store backing the
// portal cache.
type CacheSettings struct {
	Store      string        `mapstructure:"store" validate:"required,oneof=database redis"`
	TTLMinutes int           `mapstructure:"ttl_minutes" validate:"min=0"`
	Redis      RedisSettings `mapstructure:"redis"`
}

// Validate checks that all fields in CacheSettings are valid
func (s *CacheSettings) Validate() error {
	validate := validator.New()

	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("validation failed for CacheSettings: %w", err)
	}

	if s.Store == CacheStoreRedis && s.Redis.Addr == "" {
		return fmt.Errorf("redis addr is required for the redis snapshot store")
	}

	return nil
}
