package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DEFAULT_API_URL          = "https://forkify-api.herokuapp.com/api/v2/recipes/"
	DEFAULT_TIMEOUT          = 10 * time.Second
	DEFAULT_RESULTS_PER_PAGE = 10
	DEFAULT_MODAL_CLOSE      = 2500 * time.Millisecond
)

type Config struct {
	API           APIConfig           `yaml:"api"`
	Search        SearchConfig        `yaml:"search"`
	Storage       StorageConfig       `yaml:"storage"`
	Notifications NotificationsConfig `yaml:"notifications,omitempty"`
	Upload        UploadConfig        `yaml:"upload"`
	Logging       LoggingConfig       `yaml:"logging"`
	Server        ServerConfig        `yaml:"server"`
	Icons         string              `yaml:"icons"`
}

type APIConfig struct {
	URL     string        `yaml:"url"`
	Key     string        `yaml:"key,omitempty"`
	Timeout time.Duration `yaml:"timeout"`
}

type SearchConfig struct {
	ResultsPerPage int `yaml:"results_per_page"`
}

// StorageConfig selects the durable key/value backend: memory, file, bolt,
// sqlite or dynamodb.
type StorageConfig struct {
	Backend   string `yaml:"backend"`
	Path      string `yaml:"path,omitempty"`
	TableName string `yaml:"table_name,omitempty"`
	Namespace string `yaml:"namespace,omitempty"`
}

type NotificationsConfig struct {
	TopicArn string `yaml:"topic_arn,omitempty"`
}

type UploadConfig struct {
	ModalClose time.Duration `yaml:"modal_close"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
}

type ServerConfig struct {
	Addr string `yaml:"addr"`
}

func Default() *Config {
	return &Config{
		API: APIConfig{
			URL:     DEFAULT_API_URL,
			Timeout: DEFAULT_TIMEOUT,
		},
		Search: SearchConfig{
			ResultsPerPage: DEFAULT_RESULTS_PER_PAGE,
		},
		Storage: StorageConfig{
			Backend:   "file",
			Path:      "bookmarks.json",
			Namespace: "forkify",
		},
		Upload: UploadConfig{
			ModalClose: DEFAULT_MODAL_CLOSE,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
		Server: ServerConfig{
			Addr: ":8080",
		},
		Icons: "img/icons.svg",
	}
}

// Load reads the YAML file at path on top of the defaults, then applies
// environment overrides. An empty path falls back to FORKIFY_CONFIG; a missing
// file is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		path = os.Getenv("FORKIFY_CONFIG")
	}
	if path != "" {
		body, err := os.ReadFile(path)
		if err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
		if err == nil {
			if err := yaml.Unmarshal(body, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
			}
		}
	}
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	return cfg, cfg.Validate()
}

func (c *Config) applyEnv() error {
	if v := os.Getenv("FORKIFY_API_URL"); v != "" {
		c.API.URL = v
	}
	if v := os.Getenv("FORKIFY_API_KEY"); v != "" {
		c.API.Key = v
	}
	if v := os.Getenv("FORKIFY_TIMEOUT"); v != "" {
		seconds, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("FORKIFY_TIMEOUT is not a number of seconds: %q", v)
		}
		c.API.Timeout = time.Duration(seconds * float64(time.Second))
	}
	if v := os.Getenv("FORKIFY_STORAGE"); v != "" {
		c.Storage.Backend = v
	}
	if v := os.Getenv("FORKIFY_STORAGE_PATH"); v != "" {
		c.Storage.Path = v
	}
	if v := os.Getenv("TABLE_NAME"); v != "" {
		c.Storage.TableName = v
	}
	if v := os.Getenv("TOPIC_ARN"); v != "" {
		c.Notifications.TopicArn = v
	}
	if v := os.Getenv("FORKIFY_LOG"); v != "" {
		c.Logging.Level = v
	}
	return nil
}

func (c *Config) Validate() error {
	if c.API.URL == "" {
		return fmt.Errorf("api.url is required")
	}
	if c.API.Timeout <= 0 {
		return fmt.Errorf("api.timeout must be positive, got %s", c.API.Timeout)
	}
	if c.Search.ResultsPerPage <= 0 {
		return fmt.Errorf("search.results_per_page must be positive, got %d", c.Search.ResultsPerPage)
	}
	switch c.Storage.Backend {
	case "memory":
	case "file", "bolt", "sqlite":
		if c.Storage.Path == "" {
			return fmt.Errorf("storage.path is required for the %s backend", c.Storage.Backend)
		}
	case "dynamodb":
		if c.Storage.TableName == "" {
			return fmt.Errorf("storage.table_name (or TABLE_NAME) is required for the dynamodb backend")
		}
	default:
		return fmt.Errorf("unknown storage backend %q", c.Storage.Backend)
	}
	return nil
}
