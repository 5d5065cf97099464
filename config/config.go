package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
)

// Credentials is the explicit provider-credential snapshot handed to the
// provider manager. It is a value object: rotating a key means building a new
// Credentials and constructing a new manager from it, never mutating process
// state in place.
type Credentials struct {
	OpenAIKey     string `toml:"openai_key"`
	AnthropicKey  string `toml:"anthropic_key"`
	OpenRouterKey string `toml:"openrouter_key"`
	OllamaHost    string `toml:"ollama_host"`
}

// ServerConfig holds HTTP service settings.
type ServerConfig struct {
	ListenAddr string `toml:"listen_addr"`
	PublicURL  string `toml:"public_url"`
}

// AdminConfig holds the single shared admin credential. PasswordHash is a
// bcrypt hash; Password is accepted as a plaintext fallback for local
// development only.
type AdminConfig struct {
	Username     string `toml:"username"`
	Password     string `toml:"password"`
	PasswordHash string `toml:"password_hash"`
}

// AnalyzerConfig holds repository walk limits.
type AnalyzerConfig struct {
	TempDir         string  `toml:"temp_dir"`
	MaxRepoSizeMB   float64 `toml:"max_repo_size_mb"`
	MaxFileBytes    int64   `toml:"max_file_bytes"`
	MaxContentBytes int     `toml:"max_content_bytes"`
	MaxTreeDepth    int     `toml:"max_tree_depth"`
	GitHubToken     string  `toml:"github_token"`
}

// Config is the full application configuration.
type Config struct {
	Server          ServerConfig   `toml:"server"`
	Admin           AdminConfig    `toml:"admin"`
	Analyzer        AnalyzerConfig `toml:"analyzer"`
	Credentials     Credentials    `toml:"credentials"`
	DefaultProvider string         `toml:"default_provider"`

	CleanupInterval time.Duration `toml:"-"`
	TaskTTL         time.Duration `toml:"-"`

	// Raw hour values from the config file; converted to durations in Load.
	CleanupHours int `toml:"cleanup_hours"`
	TaskTTLHours int `toml:"task_ttl_hours"`
}

// Default returns the built-in configuration. Every field can be overridden
// by the TOML file and then by environment variables.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			ListenAddr: ":8000",
			PublicURL:  "https://crackr.app",
		},
		Admin: AdminConfig{
			Username: "admin",
		},
		Analyzer: AnalyzerConfig{
			TempDir:         filepath.Join(os.TempDir(), "crackr"),
			MaxRepoSizeMB:   100,
			MaxFileBytes:    1 << 20,
			MaxContentBytes: 10000,
			MaxTreeDepth:    3,
		},
		CleanupHours: 1,
		TaskTTLHours: 2,
	}
}

// Load reads the config file at path (if it exists), applies environment
// overrides and returns the resulting Config. An empty path loads defaults
// plus environment only.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if _, err := toml.DecodeFile(path, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
			}
		}
	}

	cfg.applyEnvOverrides()

	if cfg.CleanupHours <= 0 {
		cfg.CleanupHours = 1
	}
	if cfg.TaskTTLHours <= 0 {
		cfg.TaskTTLHours = 2
	}
	cfg.CleanupInterval = time.Duration(cfg.CleanupHours) * time.Hour
	cfg.TaskTTL = time.Duration(cfg.TaskTTLHours) * time.Hour

	return cfg, nil
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("CRACKR_LISTEN_ADDR"); v != "" {
		c.Server.ListenAddr = v
	}
	if v := os.Getenv("CRACKR_TEMP_DIR"); v != "" {
		c.Analyzer.TempDir = v
	}
	if v := os.Getenv("CRACKR_MAX_REPO_SIZE_MB"); v != "" {
		if n, err := strconv.ParseFloat(v, 64); err == nil {
			c.Analyzer.MaxRepoSizeMB = n
		}
	}
	if v := os.Getenv("OPENAI_API_KEY"); v != "" {
		c.Credentials.OpenAIKey = v
	}
	if v := os.Getenv("ANTHROPIC_API_KEY"); v != "" {
		c.Credentials.AnthropicKey = v
	}
	if v := os.Getenv("OPENROUTER_API_KEY"); v != "" {
		c.Credentials.OpenRouterKey = v
	}
	if v := os.Getenv("OLLAMA_HOST"); v != "" {
		c.Credentials.OllamaHost = v
	}
	if v := os.Getenv("GITHUB_TOKEN"); v != "" {
		c.Analyzer.GitHubToken = v
	}
	if v := os.Getenv("CRACKR_ADMIN_USERNAME"); v != "" {
		c.Admin.Username = v
	}
	if v := os.Getenv("CRACKR_ADMIN_PASSWORD"); v != "" {
		c.Admin.Password = v
	}
	if v := os.Getenv("CRACKR_ADMIN_PASSWORD_HASH"); v != "" {
		c.Admin.PasswordHash = v
	}
	if v := os.Getenv("CRACKR_DEFAULT_PROVIDER"); v != "" {
		c.DefaultProvider = v
	}
}
