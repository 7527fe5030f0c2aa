package config

import (
	"os"
	"regexp"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// AdapterSpec configures one logging output adapter
type AdapterSpec struct {
	Name    string                 `yaml:"name"`
	Type    string                 `yaml:"type"`
	Enabled bool                   `yaml:"enabled"`
	Options map[string]interface{} `yaml:"options"`
}

// Config represents the application configuration
type Config struct {
	Server struct {
		Port         int           `yaml:"port" default:"8080"`
		Host         string        `yaml:"host" default:"0.0.0.0"`
		ReadTimeout  time.Duration `yaml:"read_timeout" default:"30s"`
		WriteTimeout time.Duration `yaml:"write_timeout" default:"30s"`
		IdleTimeout  time.Duration `yaml:"idle_timeout" default:"60s"`
	} `yaml:"server"`

	Workers struct {
		PoolSize  int `yaml:"pool_size" default:"10"`
		QueueSize int `yaml:"queue_size" default:"100"`
	} `yaml:"workers"`

	BackgroundTasks struct {
		TaskTimeout     time.Duration `yaml:"task_timeout" default:"300s"`
		CleanupInterval time.Duration `yaml:"cleanup_interval" default:"1h"`
		MaxTaskAge      time.Duration `yaml:"max_task_age" default:"24h"`
	} `yaml:"background_tasks"`

	Extractor struct {
		Provider    string        `yaml:"provider" default:"claude"`
		APIKey      string        `yaml:"api_key"`
		Model       string        `yaml:"model" default:"claude-3-haiku-20240307"`
		MaxTokens   int           `yaml:"max_tokens" default:"8192"`
		Temperature float32       `yaml:"temperature" default:"0.1"`
		Timeout     time.Duration `yaml:"timeout" default:"120s"`
		Endpoint    string        `yaml:"endpoint"`
		RateLimit   int           `yaml:"rate_limit" default:"30"` // requests per minute
		MaxFileSize int64         `yaml:"max_file_size" default:"10485760"`
	} `yaml:"extractor"`

	HRBackend struct {
		BaseURL    string        `yaml:"base_url" default:"http://localhost:3000/api"`
		APIToken   string        `yaml:"api_token"`
		Timeout    time.Duration `yaml:"timeout" default:"30s"`
		MaxRetries int           `yaml:"max_retries" default:"3"`
		RetryDelay time.Duration `yaml:"retry_delay" default:"500ms"`
	} `yaml:"hr_backend"`

	Lookup struct {
		RefreshInterval time.Duration `yaml:"refresh_interval" default:"10m"`
	} `yaml:"lookup"`

	Suggestions struct {
		TTL time.Duration `yaml:"ttl" default:"24h"`
	} `yaml:"suggestions"`

	Redis struct {
		URL      string        `yaml:"url" default:"redis://localhost:6379"`
		Password string        `yaml:"password"`
		DB       int           `yaml:"db" default:"0"`
		Timeout  time.Duration `yaml:"timeout" default:"5s"`
	} `yaml:"redis"`

	Logging struct {
		Level    string        `yaml:"level" default:"info"`
		Format   string        `yaml:"format" default:"json"`
		Adapters []AdapterSpec `yaml:"adapters"`
	} `yaml:"logging"`
}

// expandEnvVars expands environment variables in a string using ${VAR} or $VAR syntax
func expandEnvVars(s string) string {
	re := regexp.MustCompile(`\$\{([^}]+)\}`)
	s = re.ReplaceAllStringFunc(s, func(match string) string {
		varName := match[2 : len(match)-1]
		if val := os.Getenv(varName); val != "" {
			return val
		}
		return match
	})

	re2 := regexp.MustCompile(`\$([A-Za-z_][A-Za-z0-9_]*)`)
	s = re2.ReplaceAllStringFunc(s, func(match string) string {
		varName := match[1:]
		if val := os.Getenv(varName); val != "" {
			return val
		}
		return match
	})

	return s
}

// LoadConfig loads configuration from file and environment variables
func LoadConfig(configPath string) (*Config, error) {
	// Load .env file if it exists (ignore errors if file doesn't exist)
	_ = godotenv.Load()

	config := &Config{}

	// Set defaults
	config.Server.Port = 8080
	config.Server.Host = "0.0.0.0"
	config.Server.ReadTimeout = 30 * time.Second
	config.Server.WriteTimeout = 30 * time.Second
	config.Server.IdleTimeout = 60 * time.Second

	config.Workers.PoolSize = 10
	config.Workers.QueueSize = 100

	config.BackgroundTasks.TaskTimeout = 300 * time.Second
	config.BackgroundTasks.CleanupInterval = 1 * time.Hour
	config.BackgroundTasks.MaxTaskAge = 24 * time.Hour

	config.Extractor.Provider = "claude"
	config.Extractor.MaxTokens = 8192
	config.Extractor.Temperature = 0.1
	config.Extractor.Timeout = 120 * time.Second
	config.Extractor.RateLimit = 30
	config.Extractor.MaxFileSize = 10 * 1024 * 1024

	config.HRBackend.BaseURL = "http://localhost:3000/api"
	config.HRBackend.Timeout = 30 * time.Second
	config.HRBackend.MaxRetries = 3
	config.HRBackend.RetryDelay = 500 * time.Millisecond

	config.Lookup.RefreshInterval = 10 * time.Minute
	config.Suggestions.TTL = 24 * time.Hour

	config.Redis.URL = "redis://localhost:6379"
	config.Redis.DB = 0
	config.Redis.Timeout = 5 * time.Second

	config.Logging.Level = "info"
	config.Logging.Format = "json"

	// Load from YAML file if it exists
	if configPath != "" {
		if data, err := os.ReadFile(configPath); err == nil {
			// Expand environment variables in the YAML content
			yamlContent := expandEnvVars(string(data))

			if err := yaml.Unmarshal([]byte(yamlContent), config); err != nil {
				return nil, err
			}
		}
	}

	// Override with environment variables
	config.loadFromEnv()

	return config, nil
}

// loadFromEnv loads configuration from environment variables
func (c *Config) loadFromEnv() {
	if port := os.Getenv("PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			c.Server.Port = p
		}
	}

	if host := os.Getenv("HOST"); host != "" {
		c.Server.Host = host
	}

	if apiKey := os.Getenv("EXTRACTOR_API_KEY"); apiKey != "" {
		c.Extractor.APIKey = apiKey
	}

	// Also support LLM_API_KEY for compatibility with older deployments
	if apiKey := os.Getenv("LLM_API_KEY"); apiKey != "" && c.Extractor.APIKey == "" {
		c.Extractor.APIKey = apiKey
	}

	if provider := os.Getenv("EXTRACTOR_PROVIDER"); provider != "" {
		c.Extractor.Provider = provider
	}

	if model := os.Getenv("EXTRACTOR_MODEL"); model != "" {
		c.Extractor.Model = model
	}

	if endpoint := os.Getenv("EXTRACTOR_ENDPOINT"); endpoint != "" {
		c.Extractor.Endpoint = endpoint
	}

	if rateLimit := os.Getenv("EXTRACTOR_RATE_LIMIT"); rateLimit != "" {
		if limit, err := strconv.Atoi(rateLimit); err == nil {
			c.Extractor.RateLimit = limit
		}
	}

	if baseURL := os.Getenv("HR_BACKEND_BASE_URL"); baseURL != "" {
		c.HRBackend.BaseURL = baseURL
	}

	if apiToken := os.Getenv("HR_BACKEND_API_TOKEN"); apiToken != "" {
		c.HRBackend.APIToken = apiToken
	}

	if timeout := os.Getenv("HR_BACKEND_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil {
			c.HRBackend.Timeout = d
		}
	}

	if maxRetries := os.Getenv("HR_BACKEND_MAX_RETRIES"); maxRetries != "" {
		if retries, err := strconv.Atoi(maxRetries); err == nil {
			c.HRBackend.MaxRetries = retries
		}
	}

	if refreshInterval := os.Getenv("LOOKUP_REFRESH_INTERVAL"); refreshInterval != "" {
		if d, err := time.ParseDuration(refreshInterval); err == nil {
			c.Lookup.RefreshInterval = d
		}
	}

	if ttl := os.Getenv("SUGGESTIONS_TTL"); ttl != "" {
		if d, err := time.ParseDuration(ttl); err == nil {
			c.Suggestions.TTL = d
		}
	}

	if redisURL := os.Getenv("REDIS_URL"); redisURL != "" {
		c.Redis.URL = redisURL
	}

	if redisPassword := os.Getenv("REDIS_PASSWORD"); redisPassword != "" {
		c.Redis.Password = redisPassword
	}

	if redisDB := os.Getenv("REDIS_DB"); redisDB != "" {
		if db, err := strconv.Atoi(redisDB); err == nil {
			c.Redis.DB = db
		}
	}

	if redisTimeout := os.Getenv("REDIS_TIMEOUT"); redisTimeout != "" {
		if timeout, err := time.ParseDuration(redisTimeout); err == nil {
			c.Redis.Timeout = timeout
		}
	}

	if logLevel := os.Getenv("LOG_LEVEL"); logLevel != "" {
		c.Logging.Level = logLevel
	}

	if logFormat := os.Getenv("LOG_FORMAT"); logFormat != "" {
		c.Logging.Format = logFormat
	}
}
