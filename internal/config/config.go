package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Backend     BackendConfig     `yaml:"backend" mapstructure:"backend"`
	Geocode     GeocodeConfig     `yaml:"geocode" mapstructure:"geocode"`
	Geolocation GeolocationConfig `yaml:"geolocation" mapstructure:"geolocation"`
	Locations   LocationsConfig   `yaml:"locations" mapstructure:"locations"`
	Server      ServerConfig      `yaml:"server" mapstructure:"server"`
	Log         LogConfig         `yaml:"log" mapstructure:"log"`
}

// BackendConfig points at the service that stores submitted fuel locations.
type BackendConfig struct {
	BaseURL     string `yaml:"base_url" mapstructure:"base_url"`
	TimeoutSecs int    `yaml:"timeout_secs" mapstructure:"timeout_secs"`
}

// GeocodeConfig configures reverse geocoding.
type GeocodeConfig struct {
	// Provider is "google", "tiger", "cascade" (tiger then google) or "none".
	Provider    string  `yaml:"provider" mapstructure:"provider"`
	APIKey      string  `yaml:"api_key" mapstructure:"api_key"`
	BaseURL     string  `yaml:"base_url" mapstructure:"base_url"`
	RateLimit   float64 `yaml:"rate_limit" mapstructure:"rate_limit"`
	DatabaseURL string  `yaml:"database_url" mapstructure:"database_url"`
}

// GeolocationConfig selects where the "current position" comes from.
type GeolocationConfig struct {
	// Provider is "static", "ip" or "none".
	Provider    string  `yaml:"provider" mapstructure:"provider"`
	Latitude    float64 `yaml:"latitude" mapstructure:"latitude"`
	Longitude   float64 `yaml:"longitude" mapstructure:"longitude"`
	IPURL       string  `yaml:"ip_url" mapstructure:"ip_url"`
	// TimeoutSecs bounds one fix plus its reverse geocode.
	TimeoutSecs int     `yaml:"timeout_secs" mapstructure:"timeout_secs"`
}

// LocationsConfig selects the seed source for known locations.
type LocationsConfig struct {
	// Source is "file", "xlsx", "shapefile", "sqlite", "postgres" or "none".
	Source      string `yaml:"source" mapstructure:"source"`
	// Path is the seed file for the file, xlsx and shapefile sources.
	Path        string `yaml:"path" mapstructure:"path"`
	// Sheet selects the xlsx worksheet; empty reads the first one.
	Sheet       string `yaml:"sheet" mapstructure:"sheet"`
	DatabaseURL string `yaml:"database_url" mapstructure:"database_url"`
}

// ServerConfig configures the HTTP form server.
type ServerConfig struct {
	Port           int      `yaml:"port" mapstructure:"port"`
	AllowedOrigins []string `yaml:"allowed_origins" mapstructure:"allowed_origins"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from .env, file and environment.
func Load() (*Config, error) {
	// .env is optional; real environment variables win over it.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, eris.Wrap(err, "config: load .env")
	}

	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("ENERGON")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("backend.base_url", "http://localhost:5000")
	v.SetDefault("backend.timeout_secs", 30)
	v.SetDefault("geocode.provider", "google")
	v.SetDefault("geocode.api_key", "")
	v.SetDefault("geocode.base_url", "https://maps.googleapis.com/maps/api/geocode/json")
	v.SetDefault("geocode.rate_limit", 10)
	v.SetDefault("geocode.database_url", "")
	v.SetDefault("geolocation.provider", "none")
	v.SetDefault("geolocation.latitude", 0)
	v.SetDefault("geolocation.longitude", 0)
	v.SetDefault("geolocation.ip_url", "http://ip-api.com/json")
	v.SetDefault("geolocation.timeout_secs", 30)
	v.SetDefault("locations.source", "none")
	v.SetDefault("locations.path", "locations.yaml")
	v.SetDefault("locations.sheet", "")
	v.SetDefault("locations.database_url", "")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.allowed_origins", []string{"*"})
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate rejects provider names the wiring does not understand.
func (c *Config) Validate() error {
	switch c.Geocode.Provider {
	case "google", "tiger", "cascade", "none":
	default:
		return eris.Errorf("config: unknown geocode provider %q", c.Geocode.Provider)
	}
	switch c.Geolocation.Provider {
	case "static", "ip", "none":
	default:
		return eris.Errorf("config: unknown geolocation provider %q", c.Geolocation.Provider)
	}
	switch c.Locations.Source {
	case "file", "xlsx", "shapefile", "sqlite", "postgres", "none":
	default:
		return eris.Errorf("config: unknown locations source %q", c.Locations.Source)
	}
	if c.Backend.BaseURL == "" {
		return eris.New("config: backend.base_url is required")
	}
	return nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
