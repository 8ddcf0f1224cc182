// Package config loads the application configuration from files and environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/sevigo/code-critic/internal/core"
	"github.com/sevigo/code-critic/internal/logger"
)

const (
	ProviderPerplexity = "perplexity"
	ProviderGemini     = "gemini"
	ProviderOllama     = "ollama"

	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Config holds the application's configuration values.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Logging   logger.Config   `mapstructure:"logging"`
	Database  DBConfig        `mapstructure:"database"`
	AI        AIConfig        `mapstructure:"ai"`
	GitHub    GitHubConfig    `mapstructure:"github"`
	Review    ReviewConfig    `mapstructure:"review"`
	Telemetry TelemetryConfig `mapstructure:"telemetry"`
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Port           string        `mapstructure:"port"`
	ReadTimeout    time.Duration `mapstructure:"read_timeout"`
	WriteTimeout   time.Duration `mapstructure:"write_timeout"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
}

// DBConfig selects and configures the review store.
type DBConfig struct {
	Driver          string        `mapstructure:"driver"`
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	Username        string        `mapstructure:"username"`
	Password        string        `mapstructure:"password"`
	Database        string        `mapstructure:"database"`
	SSLMode         string        `mapstructure:"sslmode"`
	Path            string        `mapstructure:"path"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idle_time"`
}

// AIConfig configures the model that writes the critique.
type AIConfig struct {
	Provider          string  `mapstructure:"provider"`
	PerplexityAPIKey  string  `mapstructure:"perplexity_api_key"`
	PerplexityBaseURL string  `mapstructure:"perplexity_base_url"`
	GeminiAPIKey      string  `mapstructure:"gemini_api_key"`
	OllamaHost        string  `mapstructure:"ollama_host"`
	Model             string  `mapstructure:"model"`
	Temperature       float64 `mapstructure:"temperature"`
	MaxTokens         int     `mapstructure:"max_tokens"`
}

// GitHubConfig configures access to the GitHub API. With no credentials the
// fetcher runs anonymously, which only works for public repositories.
type GitHubConfig struct {
	Token          string `mapstructure:"token"`
	AppID          int64  `mapstructure:"app_id"`
	InstallationID int64  `mapstructure:"installation_id"`
	PrivateKeyPath string `mapstructure:"private_key_path"`
	APIURL         string `mapstructure:"api_url"`
	MaxPRFiles     int    `mapstructure:"max_pr_files"`
}

// ReviewConfig tunes the review pipeline.
type ReviewConfig struct {
	MaxCodeChars  int           `mapstructure:"max_code_chars"`
	StaleAfter    time.Duration `mapstructure:"stale_after"`
	SweepInterval time.Duration `mapstructure:"sweep_interval"`
}

// TelemetryConfig configures OpenTelemetry tracing.
type TelemetryConfig struct {
	Enabled      bool    `mapstructure:"enabled"`
	ServiceName  string  `mapstructure:"service_name"`
	CollectorURL string  `mapstructure:"collector_url"`
	SamplingRate float64 `mapstructure:"sampling_rate"`
}

// LoadConfig reads configuration from config.yaml (./ or ./configs), a .env file and
// environment variables, in increasing order of precedence. Defaults cover every key.
func LoadConfig() (*Config, error) {
	return Load("")
}

// Load is LoadConfig with an explicit configuration file.
func Load(configFile string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	bindLegacyEnv(v)

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}
	if configFile == "" {
		mergeDotEnv(v)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.read_timeout", 10*time.Second)
	v.SetDefault("server.write_timeout", 75*time.Second)
	v.SetDefault("server.request_timeout", 60*time.Second)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")
	v.SetDefault("logging.output", "stdout")

	v.SetDefault("database.driver", DriverPostgres)
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.username", "postgres")
	v.SetDefault("database.password", "")
	v.SetDefault("database.database", "code_critic")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.path", "code-critic.db")
	v.SetDefault("database.max_open_conns", 10)
	v.SetDefault("database.conn_max_lifetime", 5*time.Minute)
	v.SetDefault("database.conn_max_idle_time", time.Minute)

	v.SetDefault("ai.provider", ProviderPerplexity)
	v.SetDefault("ai.perplexity_api_key", "")
	v.SetDefault("ai.perplexity_base_url", "https://api.perplexity.ai/")
	v.SetDefault("ai.gemini_api_key", "")
	v.SetDefault("ai.ollama_host", "http://localhost:11434")
	v.SetDefault("ai.model", "sonar-pro")
	v.SetDefault("ai.temperature", 0.7)
	v.SetDefault("ai.max_tokens", 2000)

	v.SetDefault("github.token", "")
	v.SetDefault("github.app_id", 0)
	v.SetDefault("github.installation_id", 0)
	v.SetDefault("github.private_key_path", "")
	v.SetDefault("github.api_url", "")
	v.SetDefault("github.max_pr_files", 20)

	v.SetDefault("review.max_code_chars", 15000)
	v.SetDefault("review.stale_after", 10*time.Minute)
	v.SetDefault("review.sweep_interval", time.Duration(0))

	v.SetDefault("telemetry.enabled", false)
	v.SetDefault("telemetry.service_name", "code-critic")
	v.SetDefault("telemetry.collector_url", "localhost:4318")
	v.SetDefault("telemetry.sampling_rate", 1.0)
}

// bindLegacyEnv maps the well-known provider variables onto their config keys.
func bindLegacyEnv(v *viper.Viper) {
	_ = v.BindEnv("ai.perplexity_api_key", "AI_PERPLEXITY_API_KEY", "PERPLEXITY_API_KEY")
	_ = v.BindEnv("ai.gemini_api_key", "AI_GEMINI_API_KEY", "GEMINI_API_KEY")
	_ = v.BindEnv("github.token", "GITHUB_TOKEN")
	_ = v.BindEnv("server.port", "SERVER_PORT", "PORT")
}

// mergeDotEnv layers a .env file from the working directory between the config
// file and the real environment.
func mergeDotEnv(v *viper.Viper) {
	env := viper.New()
	env.SetConfigFile(".env")
	env.SetConfigType("env")
	if err := env.ReadInConfig(); err != nil {
		return
	}
	for _, key := range env.AllKeys() {
		if _, ok := os.LookupEnv(strings.ToUpper(key)); ok {
			continue
		}
		v.Set(dotEnvKey(key), env.Get(key))
	}
}

// dotEnvKey turns a .env variable name such as AI_MODEL into the config key ai.model.
func dotEnvKey(key string) string {
	key = strings.ToLower(key)
	switch key {
	case "perplexity_api_key":
		return "ai.perplexity_api_key"
	case "gemini_api_key":
		return "ai.gemini_api_key"
	case "github_token":
		return "github.token"
	}
	return strings.Replace(key, "_", ".", 1)
}

// Validate rejects structurally invalid settings. A missing model credential is
// not an error here; it is reported per request by AIConfig.Validate.
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case DriverPostgres, DriverSQLite:
	default:
		return fmt.Errorf("unsupported database driver: %s", c.Database.Driver)
	}
	switch c.AI.Provider {
	case ProviderPerplexity, ProviderGemini, ProviderOllama:
	default:
		return fmt.Errorf("unsupported LLM provider: %s", c.AI.Provider)
	}
	if c.AI.MaxTokens <= 0 {
		return fmt.Errorf("ai.max_tokens must be positive, got %d", c.AI.MaxTokens)
	}
	if c.AI.Temperature < 0 || c.AI.Temperature > 2 {
		return fmt.Errorf("ai.temperature must be within [0, 2], got %v", c.AI.Temperature)
	}
	if c.Review.MaxCodeChars <= 0 {
		return fmt.Errorf("review.max_code_chars must be positive, got %d", c.Review.MaxCodeChars)
	}
	if c.Server.RequestTimeout <= 0 {
		return fmt.Errorf("server.request_timeout must be positive")
	}
	return nil
}

// Validate is the pre-flight credential check run before every review.
func (c AIConfig) Validate() error {
	switch c.Provider {
	case ProviderPerplexity:
		if c.PerplexityAPIKey == "" {
			return &core.ConfigError{Reason: "Missing Perplexity API Key"}
		}
	case ProviderGemini:
		if c.GeminiAPIKey == "" {
			return &core.ConfigError{Reason: "Missing Gemini API Key"}
		}
	case ProviderOllama:
		if c.OllamaHost == "" {
			return &core.ConfigError{Reason: "Missing Ollama host"}
		}
	default:
		return &core.ConfigError{Reason: "unsupported LLM provider " + c.Provider}
	}
	return nil
}

// DSN builds the Postgres connection string.
func (c DBConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.Username, c.Password, c.Database, c.SSLMode)
}
