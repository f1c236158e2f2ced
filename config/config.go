// Package config loads process configuration from an optional YAML file, an
// optional .env file and DEFECT_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"

	"jira_defect_writer/generator"
)

// Provider names accepted in llm.provider.
const (
	ProviderOpenRouter = "openrouter"
	ProviderOpenAI     = "openai"
	ProviderMock       = "mock"
)

const openAIBaseURL = "https://api.openai.com/v1/"

// Config is the resolved process configuration.
type Config struct {
	HTTP struct {
		Addr string
	}
	LLM             LLMConfig
	ReportStyle     generator.ReportStyle
	SessionLifetime time.Duration
}

// LLMConfig describes the completion endpoint.
type LLMConfig struct {
	Provider    string
	Model       string
	APIKey      string
	BaseURL     string
	Temperature float64
	Timeout     time.Duration
}

// Settings converts the config for generator.NewOpenAILLMFromConfig.
func (c LLMConfig) Settings() *generator.LLMSettings {
	return &generator.LLMSettings{
		Provider:    c.Provider,
		Model:       c.Model,
		APIKey:      c.APIKey,
		BaseURL:     c.BaseURL,
		Temperature: c.Temperature,
		Timeout:     c.Timeout,
	}
}

// Load reads configuration. path may be empty, in which case
// defect-writer.yaml is looked up in the working directory.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("DEFECT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("http.addr", ":8080")
	v.SetDefault("llm.provider", ProviderOpenRouter)
	v.SetDefault("llm.model", generator.DefaultModel)
	v.SetDefault("llm.temperature", generator.DefaultTemperature)
	v.SetDefault("llm.timeout", generator.DefaultTimeout.String())
	v.SetDefault("report.style", string(generator.DefaultStyle))
	v.SetDefault("session.lifetime", "12h")

	// Keys the original tool read from its environment.
	_ = v.BindEnv("openrouter_api_key", "OPENROUTER_API_KEY")
	_ = v.BindEnv("openai_api_key", "OPENAI_API_KEY")

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	} else {
		v.SetConfigName("defect-writer")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}
	if err := mergeDotEnv(v, ".env"); err != nil {
		return nil, err
	}

	cfg := &Config{}
	cfg.HTTP.Addr = v.GetString("http.addr")
	cfg.LLM = LLMConfig{
		Provider:    strings.ToLower(strings.TrimSpace(v.GetString("llm.provider"))),
		Model:       v.GetString("llm.model"),
		APIKey:      v.GetString("llm.api_key"),
		BaseURL:     v.GetString("llm.base_url"),
		Temperature: v.GetFloat64("llm.temperature"),
	}

	timeout, err := time.ParseDuration(v.GetString("llm.timeout"))
	if err != nil {
		return nil, fmt.Errorf("invalid DEFECT_LLM_TIMEOUT: %w", err)
	}
	if timeout <= 0 {
		return nil, fmt.Errorf("DEFECT_LLM_TIMEOUT must be positive, got %s", timeout)
	}
	cfg.LLM.Timeout = timeout

	lifetime, err := time.ParseDuration(v.GetString("session.lifetime"))
	if err != nil {
		return nil, fmt.Errorf("invalid DEFECT_SESSION_LIFETIME: %w", err)
	}
	cfg.SessionLifetime = lifetime

	style, err := generator.ParseReportStyle(v.GetString("report.style"))
	if err != nil {
		return nil, fmt.Errorf("invalid DEFECT_REPORT_STYLE: %w", err)
	}
	cfg.ReportStyle = style

	switch cfg.LLM.Provider {
	case ProviderOpenRouter:
		if cfg.LLM.APIKey == "" {
			cfg.LLM.APIKey = v.GetString("openrouter_api_key")
		}
		if cfg.LLM.BaseURL == "" {
			cfg.LLM.BaseURL = generator.OpenRouterBaseURL
		}
	case ProviderOpenAI:
		if cfg.LLM.APIKey == "" {
			cfg.LLM.APIKey = v.GetString("openai_api_key")
		}
		if cfg.LLM.BaseURL == "" {
			cfg.LLM.BaseURL = openAIBaseURL
		}
	case ProviderMock:
	default:
		return nil, fmt.Errorf("llm provider %q not supported (openrouter, openai, mock)", cfg.LLM.Provider)
	}

	return cfg, nil
}

// keys lists every configuration key, used to map .env entries.
var keys = []string{
	"http.addr",
	"llm.provider",
	"llm.model",
	"llm.api_key",
	"llm.base_url",
	"llm.temperature",
	"llm.timeout",
	"report.style",
	"session.lifetime",
}

// envName is the environment variable that overrides key.
func envName(key string) string {
	return "DEFECT_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
}

// mergeDotEnv applies KEY=value pairs from a .env file when one exists. Like
// dotenv, a variable already present in the process environment wins.
func mergeDotEnv(v *viper.Viper, path string) error {
	if _, err := os.Stat(path); err != nil {
		return nil
	}
	env := viper.New()
	env.SetConfigFile(path)
	env.SetConfigType("env")
	if err := env.ReadInConfig(); err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	apply := func(key, name string) {
		fileKey := strings.ToLower(name)
		if !env.IsSet(fileKey) {
			return
		}
		if _, ok := os.LookupEnv(name); ok {
			return
		}
		v.Set(key, env.GetString(fileKey))
	}
	for _, key := range keys {
		apply(key, envName(key))
	}
	apply("openrouter_api_key", "OPENROUTER_API_KEY")
	apply("openai_api_key", "OPENAI_API_KEY")
	return nil
}
