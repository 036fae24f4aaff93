package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	Mongo   MongoConfig
	Redis   RedisConfig
	Session SessionConfig
	Admin   AdminBootstrapConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=commerce_system"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// SessionConfig holds the settings for both session namespaces. The two
// namespaces share the expiry policy but carry distinct cookie names and
// signing secrets.
type SessionConfig struct {
	UserCookieName  string        `env:"SESSION_COOKIE_NAME,       default=session"`
	AdminCookieName string        `env:"ADMIN_SESSION_COOKIE_NAME, default=admin_session"`
	UserSecret      string        `env:"SESSION_SECRET"`
	AdminSecret     string        `env:"ADMIN_SESSION_SECRET"`
	MaxAge          time.Duration `env:"SESSION_MAX_AGE, default=168h"`

	// Origins of the two single-page frontends, used by the request
	// classifier to attribute cross-origin browser requests.
	UserOrigin  string `env:"STORE_ORIGIN, default=http://localhost:5173"`
	AdminOrigin string `env:"ADMIN_ORIGIN, default=http://localhost:5174"`
}

// AdminBootstrapConfig provisions an initial admin account at startup when
// both fields are set. This is the only path that creates role=admin users.
type AdminBootstrapConfig struct {
	Email    string `env:"ADMIN_EMAIL"`
	Password string `env:"ADMIN_PASSWORD"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}

// IsProduction reports whether the deployment mode requires production
// cookie attributes (Secure, SameSite=None).
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}
