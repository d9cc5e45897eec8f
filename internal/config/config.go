package config

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"
	// zone database for images without /usr/share/zoneinfo.
	_ "time/tzdata"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const (
	defaultLoginRate   = 5
	defaultLoginBurst  = 10
	defaultMaxUploadMB = 10
)

type Config struct {
	RunAddress    string        `env:"RUN_ADDRESS"`
	DatabaseDSN   string        `env:"DATABASE_URI"`
	MigrationsDir string        `env:"MIGRATIONS_DIR"`
	JWTSecret     string        `env:"JWT_SECRET"`
	JWTExpiresIn  time.Duration `env:"JWT_EXPIRES_IN"`
	UploadDir     string        `env:"UPLOAD_DIR"`
	TimeZone      string        `env:"TIME_ZONE"`
	StaticDir     string        `env:"STATIC_DIR"`

	AdminAccount  string `env:"ADMIN_ACCOUNT"`
	AdminUsername string `env:"ADMIN_USERNAME"`
	AdminPassword string `env:"ADMIN_PASSWORD"`

	// LoginRate is the number of login attempts per second allowed for one client IP.
	LoginRate   float64 `env:"LOGIN_RATE"`
	LoginBurst  int     `env:"LOGIN_BURST"`
	MaxUploadMB int64   `env:"MAX_UPLOAD_MB"`
	// ServiceTimeout bounds every API request context. Zero disables it.
	ServiceTimeout time.Duration `env:"SERVICE_TIMEOUT"`

	location *time.Location
}

// Location is TimeZone resolved by Load.
func (c *Config) Location() *time.Location {
	if c.location == nil {
		return time.UTC
	}
	return c.location
}

// MaxUploadBytes is the upload size limit in bytes.
func (c *Config) MaxUploadBytes() int64 {
	return c.MaxUploadMB << 20
}

// String hides secrets so the config can be logged.
func (c *Config) String() string {
	return fmt.Sprintf(
		"{RunAddress:%s MigrationsDir:%s JWTExpiresIn:%s UploadDir:%s TimeZone:%s StaticDir:%q AdminAccount:%q "+
			"LoginRate:%g LoginBurst:%d MaxUploadMB:%d ServiceTimeout:%s}",
		c.RunAddress, c.MigrationsDir, c.JWTExpiresIn, c.UploadDir, c.TimeZone, c.StaticDir, c.AdminAccount,
		c.LoginRate, c.LoginBurst, c.MaxUploadMB, c.ServiceTimeout,
	)
}

// LoadConfig reads an optional .env file, then environment variables and command line flags. Environment
// variables take precedence over flags.
func LoadConfig() (*Config, error) {
	return Load(os.Args[1:], ".env")
}

func MustLoadConfig() *Config {
	config, err := LoadConfig()
	if err != nil {
		panic(err)
	}
	return config
}

// Load is LoadConfig over explicit arguments. Missing env files are ignored.
func Load(args []string, envFiles ...string) (*Config, error) {
	for _, file := range envFiles {
		// godotenv never overrides variables that are already set.
		if err := godotenv.Load(file); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load env file %s: %w", file, err)
		}
	}

	var flagsConfig, envConfig Config
	if envParseErr := env.Parse(&envConfig); envParseErr != nil {
		return nil, fmt.Errorf("parse env config: %s", envParseErr.Error())
	}

	if err := loadFlags(&flagsConfig, args); err != nil {
		return nil, err
	}

	conf := mergeConfig(&envConfig, &flagsConfig)
	if err := conf.validate(); err != nil {
		return nil, err
	}

	loc, err := time.LoadLocation(conf.TimeZone)
	if err != nil {
		return nil, fmt.Errorf("load time zone %q: %w", conf.TimeZone, err)
	}
	conf.location = loc
	return conf, nil
}

func loadFlags(flagConfig *Config, args []string) error {
	flags := flag.NewFlagSet("cenjin", flag.ContinueOnError)
	flags.StringVar(&flagConfig.RunAddress, "a", "localhost:8080", "Run address in format host:port")
	flags.StringVar(&flagConfig.DatabaseDSN, "d", "", "Database DSN")
	flags.StringVar(&flagConfig.MigrationsDir, "m", "internal/db/migrations", "Database migrations directory")
	flags.StringVar(&flagConfig.JWTSecret, "s", "", "JWT signing secret")
	flags.DurationVar(&flagConfig.JWTExpiresIn, "e", 7*24*time.Hour, "JWT lifetime")
	flags.StringVar(&flagConfig.UploadDir, "u", "uploads", "Directory for uploaded files")
	flags.StringVar(&flagConfig.TimeZone, "z", "Asia/Shanghai", "Time zone of order times and statistics")
	flags.StringVar(&flagConfig.StaticDir, "w", "", "Dashboard build directory, static hosting is off when empty")
	flags.Float64Var(&flagConfig.LoginRate, "login-rate", defaultLoginRate, "Login attempts per second per IP")
	flags.IntVar(&flagConfig.LoginBurst, "login-burst", defaultLoginBurst, "Login attempts burst per IP")
	flags.Int64Var(&flagConfig.MaxUploadMB, "max-upload-mb", defaultMaxUploadMB, "Upload size limit in megabytes")
	flags.DurationVar(&flagConfig.ServiceTimeout, "service-timeout", 0, "Request deadline, 0 means none")

	if err := flags.Parse(args); err != nil {
		return fmt.Errorf("parse flags: %w", err)
	}
	return nil
}

func mergeConfig(envConfig, flagsConfig *Config) *Config {
	return &Config{
		RunAddress:    defaultIfBlank(envConfig.RunAddress, flagsConfig.RunAddress),
		DatabaseDSN:   defaultIfBlank(envConfig.DatabaseDSN, flagsConfig.DatabaseDSN),
		MigrationsDir: defaultIfBlank(envConfig.MigrationsDir, flagsConfig.MigrationsDir),
		JWTSecret:     defaultIfBlank(envConfig.JWTSecret, flagsConfig.JWTSecret),
		JWTExpiresIn:  defaultIfBlank(envConfig.JWTExpiresIn, flagsConfig.JWTExpiresIn),
		UploadDir:     defaultIfBlank(envConfig.UploadDir, flagsConfig.UploadDir),
		TimeZone:      defaultIfBlank(envConfig.TimeZone, flagsConfig.TimeZone),
		StaticDir:     defaultIfBlank(envConfig.StaticDir, flagsConfig.StaticDir),
		AdminAccount:  envConfig.AdminAccount,
		AdminUsername: defaultIfBlank(envConfig.AdminUsername, envConfig.AdminAccount),
		AdminPassword: envConfig.AdminPassword,
		LoginRate:     defaultIfBlank(envConfig.LoginRate, flagsConfig.LoginRate),
		LoginBurst:    defaultIfBlank(envConfig.LoginBurst, flagsConfig.LoginBurst),
		MaxUploadMB:   defaultIfBlank(envConfig.MaxUploadMB, flagsConfig.MaxUploadMB),

		ServiceTimeout: defaultIfBlank(envConfig.ServiceTimeout, flagsConfig.ServiceTimeout),
	}
}

func (c *Config) validate() error {
	switch {
	case c.DatabaseDSN == "":
		return errors.New("database DSN is not set")
	case c.JWTSecret == "":
		return errors.New("JWT secret is not set")
	case c.JWTExpiresIn <= 0:
		return errors.New("JWT lifetime must be positive")
	case c.LoginRate <= 0 || c.LoginBurst <= 0:
		return errors.New("login rate and burst must be positive")
	case c.MaxUploadMB <= 0:
		return errors.New("upload limit must be positive")
	case c.ServiceTimeout < 0:
		return errors.New("service timeout must not be negative")
	case strings.EqualFold(c.TimeZone, "Local"):
		// the zone name is handed to postgres AT TIME ZONE, which has no Local.
		return errors.New("time zone must be an IANA name such as Asia/Shanghai")
	}
	return nil
}

func defaultIfBlank[T comparable](value T, defaultValue T) T {
	var zero T
	if value == zero {
		return defaultValue
	}
	return value
}
