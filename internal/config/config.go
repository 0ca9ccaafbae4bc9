package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	envPrefix      = "telemetry"
	configName     = "config"
	defaultConfDir = "configs"
)

// Config is the resolved service configuration.
type Config struct {
	Port      string
	Log       LogConfig
	Telemetry TelemetryConfig
	Errors    ErrorsConfig
	DB        DBConfig
	CORS      CORSConfig
	Server    ServerConfig
}

type LogConfig struct {
	Level  string
	Format string
}

type TelemetryConfig struct {
	// RequireContentType rejects /temp bodies not declared as JSON.
	RequireContentType bool
}

type ErrorsConfig struct {
	Storage string // memory | sqlite
}

type DBConfig struct {
	Path string
}

type CORSConfig struct {
	AllowedOrigins []string
}

type ServerConfig struct {
	ReadHeaderTimeout time.Duration
	WriteTimeout      time.Duration
	IdleTimeout       time.Duration
	ShutdownTimeout   time.Duration
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", "8080")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("telemetry.require_content_type", false)
	v.SetDefault("errors.storage", "memory")
	v.SetDefault("db.path", "errors.db")
	v.SetDefault("cors.allowed_origins", []string{"*"})
	v.SetDefault("server.read_header_timeout", 10*time.Second)
	v.SetDefault("server.write_timeout", 10*time.Second)
	v.SetDefault("server.idle_timeout", 60*time.Second)
	v.SetDefault("server.shutdown_timeout", 10*time.Second)
}

// NewFlagSet declares the command-line flags understood by Load.
func NewFlagSet(name string) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.String("config", defaultConfDir, "config directory, or path to a config file")
	fs.String("port", "8080", "HTTP listen port")
	fs.String("storage", "memory", "error buffer storage: memory or sqlite")
	fs.String("log-level", "info", "log level: debug, info, warn, error")
	return fs
}

// Load resolves configuration from flags, TELEMETRY_* env vars, the config
// file and defaults, in that order of precedence.
func Load(args []string) (Config, error) {
	fs := NewFlagSet("telemetry_monitor")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for key, flag := range map[string]string{
		"port":           "port",
		"errors.storage": "storage",
		"log.level":      "log-level",
	} {
		if err := v.BindPFlag(key, fs.Lookup(flag)); err != nil {
			return Config{}, fmt.Errorf("bind flag %q: %w", flag, err)
		}
	}

	confPath, _ := fs.GetString("config")
	if err := readConfigFile(v, confPath); err != nil {
		return Config{}, err
	}

	cfg := Config{
		Port: v.GetString("port"),
		Log: LogConfig{
			Level:  strings.ToLower(v.GetString("log.level")),
			Format: strings.ToLower(v.GetString("log.format")),
		},
		Telemetry: TelemetryConfig{
			RequireContentType: v.GetBool("telemetry.require_content_type"),
		},
		Errors: ErrorsConfig{
			Storage: strings.ToLower(strings.TrimSpace(v.GetString("errors.storage"))),
		},
		DB: DBConfig{
			Path: v.GetString("db.path"),
		},
		CORS: CORSConfig{
			AllowedOrigins: v.GetStringSlice("cors.allowed_origins"),
		},
		Server: ServerConfig{
			ReadHeaderTimeout: v.GetDuration("server.read_header_timeout"),
			WriteTimeout:      v.GetDuration("server.write_timeout"),
			IdleTimeout:       v.GetDuration("server.idle_timeout"),
			ShutdownTimeout:   v.GetDuration("server.shutdown_timeout"),
		},
	}
	return cfg, cfg.validate()
}

// readConfigFile treats a missing file in a search directory as "use defaults",
// but an explicitly named file must exist.
func readConfigFile(v *viper.Viper, path string) error {
	if ext := filepath.Ext(path); ext == ".yml" || ext == ".yaml" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("read config %q: %w", path, err)
		}
		return nil
	}

	v.SetConfigName(configName)
	v.AddConfigPath(path)
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("read config: %w", err)
	}
	return nil
}

var errStorage = errors.New(`errors.storage must be "memory" or "sqlite"`)

func (c Config) validate() error {
	switch c.Errors.Storage {
	case "memory":
	case "sqlite":
		if c.DB.Path == "" {
			return errors.New("db.path is required for sqlite storage")
		}
	default:
		return fmt.Errorf("%w, got %q", errStorage, c.Errors.Storage)
	}
	return nil
}
