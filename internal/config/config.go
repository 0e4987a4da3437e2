package config

import (
	"log"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	configPathEnv     = "MEMEXPLAINER_CONFIG"
	serverAddrEnv     = "MEMEXPLAINER_ADDR"
	openAIAPIKeyEnv   = "OPENAI_API_KEY"
	openAIModelEnv    = "OPENAI_MODEL"
	chromaAPIKeyEnv   = "CHROMA_API_KEY"
	chromaTenantEnv   = "CHROMA_TENANT"
	chromaDatabaseEnv = "CHROMA_DATABASE"
)

// Config holds high-level settings required across the application.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Logging LoggingConfig `yaml:"logging"`
	OpenAI  OpenAIConfig  `yaml:"openai"`
	Chroma  ChromaConfig  `yaml:"chroma"`
	Source  SourceConfig  `yaml:"source"`
	YouTube YouTubeConfig `yaml:"youtube"`
}

// ServerConfig describes the HTTP service binding.
type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// LoggingConfig controls slog verbosity.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// OpenAIConfig defines how to contact the completion and embedding APIs.
type OpenAIConfig struct {
	Endpoint   string `yaml:"endpoint"`
	ChatModel  string `yaml:"chatModel"`
	EmbedModel string `yaml:"embedModel"`
	APIKey     string `yaml:"apiKey"`
}

// ChromaConfig wires the cloud vector store. APIKey, Tenant, and Database are
// mandatory; the store client refuses to construct without them.
type ChromaConfig struct {
	BaseURL  string `yaml:"baseUrl"`
	APIKey   string `yaml:"apiKey"`
	Tenant   string `yaml:"tenant"`
	Database string `yaml:"database"`
}

// SourceConfig tunes the Know Your Meme fetcher.
type SourceConfig struct {
	BaseURL      string `yaml:"baseUrl"`
	SearchLimit  int    `yaml:"searchLimit"`
	ReportLimit  int    `yaml:"reportLimit"`
	SectionLimit int    `yaml:"sectionLimit"`
}

// YouTubeConfig points the video search at its results page.
type YouTubeConfig struct {
	BaseURL string `yaml:"baseUrl"`
}

// Load reads YAML configuration (if present) and applies environment overrides.
func Load() Config {
	cfg := defaultConfig()

	if path := os.Getenv(configPathEnv); path != "" {
		if raw, err := os.ReadFile(path); err != nil {
			log.Printf("config: cannot read %s: %v (falling back to defaults)", path, err)
		} else {
			var fileCfg Config
			if err := yaml.Unmarshal(raw, &fileCfg); err != nil {
				log.Printf("config: cannot parse %s: %v (falling back to defaults)", path, err)
			} else {
				cfg = mergeConfig(cfg, fileCfg)
			}
		}
	}

	cfg.applyEnvOverrides()
	return cfg
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(serverAddrEnv); v != "" {
		c.Server.Addr = v
	}

	if v := os.Getenv(openAIAPIKeyEnv); v != "" {
		c.OpenAI.APIKey = v
	}
	if v := os.Getenv(openAIModelEnv); v != "" {
		c.OpenAI.ChatModel = v
	}

	if v := os.Getenv(chromaAPIKeyEnv); v != "" {
		c.Chroma.APIKey = v
	}
	if v := os.Getenv(chromaTenantEnv); v != "" {
		c.Chroma.Tenant = v
	}
	if v := os.Getenv(chromaDatabaseEnv); v != "" {
		c.Chroma.Database = v
	}
}

func mergeConfig(base, override Config) Config {
	if override.Server.Addr != "" {
		base.Server.Addr = override.Server.Addr
	}

	if override.Logging.Level != "" {
		base.Logging.Level = override.Logging.Level
	}

	if override.OpenAI.Endpoint != "" {
		base.OpenAI.Endpoint = override.OpenAI.Endpoint
	}
	if override.OpenAI.ChatModel != "" {
		base.OpenAI.ChatModel = override.OpenAI.ChatModel
	}
	if override.OpenAI.EmbedModel != "" {
		base.OpenAI.EmbedModel = override.OpenAI.EmbedModel
	}
	if override.OpenAI.APIKey != "" {
		base.OpenAI.APIKey = override.OpenAI.APIKey
	}

	if override.Chroma.BaseURL != "" {
		base.Chroma.BaseURL = override.Chroma.BaseURL
	}
	if override.Chroma.APIKey != "" {
		base.Chroma.APIKey = override.Chroma.APIKey
	}
	if override.Chroma.Tenant != "" {
		base.Chroma.Tenant = override.Chroma.Tenant
	}
	if override.Chroma.Database != "" {
		base.Chroma.Database = override.Chroma.Database
	}

	if override.Source.BaseURL != "" {
		base.Source.BaseURL = override.Source.BaseURL
	}
	if override.Source.SearchLimit > 0 {
		base.Source.SearchLimit = override.Source.SearchLimit
	}
	if override.Source.ReportLimit > 0 {
		base.Source.ReportLimit = override.Source.ReportLimit
	}
	if override.Source.SectionLimit > 0 {
		base.Source.SectionLimit = override.Source.SectionLimit
	}

	if override.YouTube.BaseURL != "" {
		base.YouTube.BaseURL = override.YouTube.BaseURL
	}

	return base
}

func defaultConfig() Config {
	return Config{
		Server:  ServerConfig{Addr: ":8000"},
		Logging: LoggingConfig{Level: "info"},
		OpenAI: OpenAIConfig{
			Endpoint:   "https://api.openai.com/v1",
			ChatModel:  "gpt-4o",
			EmbedModel: "text-embedding-3-small",
			APIKey:     "",
		},
		Chroma: ChromaConfig{
			BaseURL: "https://api.trychroma.com",
		},
		Source: SourceConfig{
			BaseURL:      "https://knowyourmeme.com",
			SearchLimit:  5,
			ReportLimit:  3,
			SectionLimit: 800,
		},
		YouTube: YouTubeConfig{BaseURL: "https://www.youtube.com"},
	}
}
