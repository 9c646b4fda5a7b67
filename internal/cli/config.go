package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sethvargo/go-envconfig"
)

// Config is the client configuration, read from the environment. The API
// base URL is the single required setting; everything else has a default.
type Config struct {
	APIURL    string `env:"ESHOP_API_URL, default=http://localhost:3000/api"`
	TokenPath string `env:"ESHOP_TOKEN_PATH"`
	// RedisAddr switches token persistence to Redis when set, for hosts
	// sharing one session.
	RedisAddr string `env:"ESHOP_REDIS_ADDR"`
	RedisDB   int    `env:"ESHOP_REDIS_DB, default=0"`
	LogLevel  string `env:"ESHOP_LOG_LEVEL, default=info"`
	LogPretty bool   `env:"ESHOP_LOG_PRETTY, default=true"`
}

// LoadConfig reads configuration from environment variables using
// go-envconfig and resolves the default token path under the home
// directory.
func LoadConfig(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	if cfg.TokenPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("config: resolve home dir: %w", err)
		}
		cfg.TokenPath = filepath.Join(home, ".eshop", "token")
	}

	return &cfg, nil
}
