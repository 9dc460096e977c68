package app

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/arralabs/userhub/pkg/cryptox"
)

type Config struct {
	TokenSecret string        `env:"TOKEN_SECRET,required,notEmpty"`  // Required: HS256 signing secret, >= 32 bytes
	TokenIssuer string        `env:"TOKEN_ISSUER" envDefault:"userhub"` // Optional: issuer claim for tokens
	TokenTTL    time.Duration `env:"TOKEN_TTL" envDefault:"24h"`      // Optional: bearer token lifetime

	ArgonMemoryKiB   uint32 `env:"ARGON_MEMORY_KIB" envDefault:"19456"` // Optional: argon2id memory cost in KiB
	ArgonIterations  uint32 `env:"ARGON_ITERATIONS" envDefault:"2"`     // Optional: argon2id time cost
	ArgonParallelism uint8  `env:"ARGON_PARALLELISM" envDefault:"1"`    // Optional: argon2id lanes

	DatabaseFile string `env:"DATABASE_FILE" envDefault:"userhub.db"` // Optional: path to SQLite database file
	PepperFile   string `env:"PEPPER_FILE" envDefault:"pepper"`       // Optional: path to password pepper file

	Env       string `env:"ENV" envDefault:"dev"`         // Environment (dev, staging, prod)
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`  // Log level (debug, info, warn, error)
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"` // Log format (json, text)

	Port                int           `env:"PORT" envDefault:"8080"`
	ShutdownGracePeriod time.Duration `env:"SHUTDOWN_GRACE_PERIOD" envDefault:"10s"`

	// ClientURL, when set, is allowed as a CORS origin for browser clients.
	ClientURL string `env:"CLIENT_URL"`

	// Bootstrap admin credentials. When set and the database holds no
	// users, an admin account is provisioned at startup. This is the only
	// path that assigns the admin role.
	BootstrapAdminName     string `env:"BOOTSTRAP_ADMIN_NAME"`
	BootstrapAdminEmail    string `env:"BOOTSTRAP_ADMIN_EMAIL"`
	BootstrapAdminPassword string `env:"BOOTSTRAP_ADMIN_PASSWORD"`
}

// LoadConfig reads configuration from the environment.
func LoadConfig() (Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

// HashParams maps the configured argon2id costs onto cryptox parameters.
// Zero values fall back to the library defaults.
func (c Config) HashParams() cryptox.Params {
	return cryptox.Params{
		Memory:      c.ArgonMemoryKiB,
		Iterations:  c.ArgonIterations,
		Parallelism: c.ArgonParallelism,
	}
}
