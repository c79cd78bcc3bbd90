package config

import (
	"os"

	"github.com/spf13/viper"
)

// Config is the full runtime configuration. Everything has a usable default;
// the credential is the only value without one and is usually supplied via
// the GROQ_API_KEY environment variable.
type Config struct {
	LLM struct {
		APIKey         string `mapstructure:"api_key"`
		BaseURL        string `mapstructure:"base_url"`
		Model          string `mapstructure:"model"`
		MaxRetries     int    `mapstructure:"max_retries"`
		TimeoutSeconds int    `mapstructure:"timeout_seconds"`
	} `mapstructure:"llm"`
	MemoriesDir string `mapstructure:"memories_dir"`
	LogFile     string `mapstructure:"log_file"`
	ServerAddr  string `mapstructure:"server_addr"`
	Cache       struct {
		Driver string `mapstructure:"driver"` // memory | sqlite
		Path   string `mapstructure:"path"`
	} `mapstructure:"cache"`
}

func Default() *Config {
	cfg := &Config{}
	cfg.LLM.BaseURL = "https://api.groq.com/openai/v1"
	cfg.LLM.Model = "llama-3.1-8b-instant"
	cfg.LLM.MaxRetries = 4
	cfg.LLM.TimeoutSeconds = 30
	cfg.MemoriesDir = "memories"
	cfg.LogFile = "logs.txt"
	cfg.ServerAddr = ":8080"
	cfg.Cache.Driver = "memory"
	cfg.Cache.Path = "runs.db"
	return cfg
}

// Load reads path (YAML) over the defaults. A missing file is not an error;
// the env credential always wins over the file value. Absence of a
// credential is left to the LLM layer to surface as a fast-fail.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			v := viper.New()
			v.SetConfigFile(path)
			v.SetConfigType("yaml")
			if err := v.ReadInConfig(); err != nil {
				return nil, err
			}
			if err := v.Unmarshal(cfg); err != nil {
				return nil, err
			}
		}
	}

	if key := os.Getenv("GROQ_API_KEY"); key != "" {
		cfg.LLM.APIKey = key
	}
	return cfg, nil
}
