package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/ZQisAmalou/v2x-log-server/internal/models"
)

type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Paths   PathsConfig   `mapstructure:"paths"`
	Ingest  IngestConfig  `mapstructure:"ingest"`
	Watch   WatchConfig   `mapstructure:"watch"`
	Logging LoggingConfig `mapstructure:"logging"`
}

type ServerConfig struct {
	Port           int           `mapstructure:"port"`
	ReadTimeout    time.Duration `mapstructure:"read_timeout"`
	WriteTimeout   time.Duration `mapstructure:"write_timeout"`
	IdleTimeout    time.Duration `mapstructure:"idle_timeout"`
	AllowedOrigins []string      `mapstructure:"allowed_origins"`
}

// PathsConfig maps each artifact store to its root directory.
type PathsConfig struct {
	Veins          string `mapstructure:"veins"`
	Certificate    string `mapstructure:"certificate"`
	QCA            string `mapstructure:"qca"`
	Config         string `mapstructure:"config"`
	Communications string `mapstructure:"communications"`
}

// Roots returns the source-type to root-directory map consumed by the
// ingestion aggregator and the change watcher.
func (p PathsConfig) Roots() map[models.SourceType]string {
	return map[models.SourceType]string{
		models.SourceVeins:       p.Veins,
		models.SourceCertificate: p.Certificate,
		models.SourceQCA:         p.QCA,
		models.SourceConfig:      p.Config,
	}
}

type IngestConfig struct {
	SyntheticCount int `mapstructure:"synthetic_count"`
	NodeLogLimit   int `mapstructure:"node_log_limit"`
}

type WatchConfig struct {
	Enabled    bool `mapstructure:"enabled"`
	BufferSize int  `mapstructure:"buffer_size"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

func Load(configPath string) (*Config, error) {
	v := viper.New()

	// Set defaults
	v.SetDefault("server.port", 5000)
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "30s")
	v.SetDefault("server.idle_timeout", "120s")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:3000"})
	v.SetDefault("paths.veins", "./messages/logs")
	v.SetDefault("paths.certificate", "./messages/cafiles/nodes")
	v.SetDefault("paths.qca", "./messages/qca_storage")
	v.SetDefault("paths.config", "./messages/config")
	v.SetDefault("paths.communications", "./messages/communications")
	v.SetDefault("ingest.synthetic_count", 100)
	v.SetDefault("ingest.node_log_limit", 50)
	v.SetDefault("watch.enabled", true)
	v.SetDefault("watch.buffer_size", 256)
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")

	// Read config file
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("/etc/logserver")
	}

	// Environment variables override
	v.SetEnvPrefix("LOGSERVER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		// Config file not found; use defaults
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}
