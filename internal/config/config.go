package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Physics   PhysicsConfig   `yaml:"physics" mapstructure:"physics"`
	Dataset   DatasetConfig   `yaml:"dataset" mapstructure:"dataset"`
	Gazetteer GazetteerConfig `yaml:"gazetteer" mapstructure:"gazetteer"`
	Server    ServerConfig    `yaml:"server" mapstructure:"server"`
	Log       LogConfig       `yaml:"log" mapstructure:"log"`
}

// PhysicsConfig overrides the damage-radius scaling factors.
type PhysicsConfig struct {
	BlastFactor   float64 `yaml:"blast_factor" mapstructure:"blast_factor"`
	ThermalFactor float64 `yaml:"thermal_factor" mapstructure:"thermal_factor"`
}

// DatasetConfig configures the city dataset load.
type DatasetConfig struct {
	Manifest    string `yaml:"manifest" mapstructure:"manifest"`
	CacheDir    string `yaml:"cache_dir" mapstructure:"cache_dir"`
	TimeoutSecs int    `yaml:"timeout_secs" mapstructure:"timeout_secs"`
	UserAgent   string `yaml:"user_agent" mapstructure:"user_agent"`
}

// GazetteerConfig configures city lookup behavior.
type GazetteerConfig struct {
	CountryAffinity bool `yaml:"country_affinity" mapstructure:"country_affinity"`
}

// ServerConfig configures the HTTP API server.
type ServerConfig struct {
	Port        int      `yaml:"port" mapstructure:"port"`
	CORSOrigins []string `yaml:"cors_origins" mapstructure:"cors_origins"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("IMPACT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("physics.blast_factor", 3.0)
	v.SetDefault("physics.thermal_factor", 1.8)
	v.SetDefault("dataset.timeout_secs", 120)
	v.SetDefault("dataset.user_agent", "impact-cli/1.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.cors_origins", []string{"*"})
	v.SetDefault("gazetteer.country_affinity", false)

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

	return &cfg, nil
}

// Validate checks the configuration for the given run mode. Shared checks
// apply to every mode; "serve" additionally requires a usable port.
func (c *Config) Validate(mode string) error {
	var problems []string

	if c.Physics.BlastFactor <= 0 {
		problems = append(problems, "physics.blast_factor must be > 0")
	}
	if c.Physics.ThermalFactor <= 0 {
		problems = append(problems, "physics.thermal_factor must be > 0")
	}
	if c.Dataset.TimeoutSecs < 0 {
		problems = append(problems, "dataset.timeout_secs must be >= 0")
	}

	switch mode {
	case "serve":
		if c.Server.Port <= 0 || c.Server.Port > 65535 {
			problems = append(problems, "server.port must be between 1 and 65535")
		}
	case "cli":
	default:
		problems = append(problems, "unknown mode "+mode)
	}

	if len(problems) > 0 {
		return eris.New("config: " + strings.Join(problems, "; "))
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
