package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App       AppConfig       `mapstructure:"app"`
	Server    ServerConfig    `mapstructure:"server"`
	Log       LogConfig       `mapstructure:"log"`
	Cache     CacheConfig     `mapstructure:"cache"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
	Appraisal AppraisalConfig `mapstructure:"appraisal"`
	Advisor   AdvisorConfig   `mapstructure:"advisor"`
}

type AppConfig struct {
	Env string `mapstructure:"env"`
}

type ServerConfig struct {
	HTTPAddr        string        `mapstructure:"http_addr"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	IdleTimeout     time.Duration `mapstructure:"idle_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type LogConfig struct {
	Level             string `mapstructure:"level"`
	Encoding          string `mapstructure:"encoding"`
	Development       bool   `mapstructure:"development"`
	Sampling          bool   `mapstructure:"sampling"`
	DisableCaller     bool   `mapstructure:"disable_caller"`
	DisableStacktrace bool   `mapstructure:"disable_stacktrace"`
}

type CacheConfig struct {
	// Driver is "memory" or "redis".
	Driver     string        `mapstructure:"driver"`
	SessionTTL time.Duration `mapstructure:"session_ttl"`
	Redis      RedisConfig   `mapstructure:"redis"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type RateLimitConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Capacity int           `mapstructure:"capacity"`
	Refill   time.Duration `mapstructure:"refill"`
}

type AppraisalConfig struct {
	MinYears     int       `mapstructure:"min_years"`
	MaxYears     int       `mapstructure:"max_years"`
	DefaultYears int       `mapstructure:"default_years"`
	ExampleFlows []float64 `mapstructure:"example_flows"`
	Currency     string    `mapstructure:"currency"`
	IRR          IRRConfig `mapstructure:"irr"`
}

type IRRConfig struct {
	Low           float64 `mapstructure:"low"`
	High          float64 `mapstructure:"high"`
	Tolerance     float64 `mapstructure:"tolerance"`
	MaxIterations int     `mapstructure:"max_iterations"`
}

type AdvisorConfig struct {
	APIKey  string        `mapstructure:"api_key"`
	APIURL  string        `mapstructure:"api_url"`
	Model   string        `mapstructure:"model"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// Load reads the yaml file at path, then APPRAISAL_* environment variables.
// A missing file is not an error; envOnly skips the file entirely.
func Load(path string, envOnly bool) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("APPRAISAL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.SetConfigType("yaml")
	v.AutomaticEnv()

	v.SetDefault("app.env", "dev")
	v.SetDefault("server.http_addr", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "15s")
	v.SetDefault("server.idle_timeout", "60s")
	v.SetDefault("server.shutdown_timeout", "10s")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.encoding", "console")
	v.SetDefault("log.development", true)
	v.SetDefault("log.sampling", false)
	v.SetDefault("log.disable_caller", false)
	v.SetDefault("log.disable_stacktrace", false)
	v.SetDefault("cache.driver", "memory")
	v.SetDefault("cache.session_ttl", "2h")
	v.SetDefault("cache.redis.addr", "localhost:6379")
	v.SetDefault("cache.redis.password", "")
	v.SetDefault("cache.redis.db", 0)
	v.SetDefault("rate_limit.enabled", true)
	v.SetDefault("rate_limit.capacity", 30)
	v.SetDefault("rate_limit.refill", "1m")
	v.SetDefault("appraisal.min_years", 3)
	v.SetDefault("appraisal.max_years", 30)
	v.SetDefault("appraisal.default_years", 7)
	v.SetDefault("appraisal.example_flows", []float64{250000, 300000, 350000, 320000, 280000, 200000, 150000})
	v.SetDefault("appraisal.currency", "DZD")
	v.SetDefault("appraisal.irr.low", -0.99)
	v.SetDefault("appraisal.irr.high", 5.0)
	v.SetDefault("appraisal.irr.tolerance", 1e-6)
	v.SetDefault("appraisal.irr.max_iterations", 100)
	v.SetDefault("advisor.api_key", "")
	v.SetDefault("advisor.api_url", "https://api.openai.com/v1/chat/completions")
	v.SetDefault("advisor.model", "gpt-4o-mini")
	v.SetDefault("advisor.timeout", "10s")

	if !envOnly && path != "" {
		_, err := os.Stat(path)
		switch {
		case err == nil:
			v.SetConfigFile(path)
			if err := v.ReadInConfig(); err != nil {
				return Config{}, err
			}
		case !errors.Is(err, os.ErrNotExist):
			return Config{}, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	a := c.Appraisal
	if a.MinYears < 1 {
		return fmt.Errorf("appraisal.min_years must be at least 1, got %d", a.MinYears)
	}
	if a.MaxYears < a.MinYears {
		return fmt.Errorf("appraisal.max_years (%d) below min_years (%d)", a.MaxYears, a.MinYears)
	}
	if a.DefaultYears < a.MinYears || a.DefaultYears > a.MaxYears {
		return fmt.Errorf("appraisal.default_years (%d) outside [%d, %d]", a.DefaultYears, a.MinYears, a.MaxYears)
	}
	if a.IRR.Low <= -1 || a.IRR.High <= a.IRR.Low {
		return fmt.Errorf("appraisal.irr bracket [%g, %g] is invalid", a.IRR.Low, a.IRR.High)
	}
	if a.IRR.Tolerance <= 0 || a.IRR.MaxIterations <= 0 {
		return fmt.Errorf("appraisal.irr tolerance and max_iterations must be positive")
	}
	switch c.Cache.Driver {
	case "memory", "redis":
	default:
		return fmt.Errorf("cache.driver must be memory or redis, got %q", c.Cache.Driver)
	}
	if c.Advisor.Timeout <= 0 || c.Advisor.Timeout >= c.Server.WriteTimeout {
		return fmt.Errorf("advisor.timeout (%s) must be positive and below server.write_timeout (%s)",
			c.Advisor.Timeout, c.Server.WriteTimeout)
	}
	if c.RateLimit.Enabled && (c.RateLimit.Capacity <= 0 || c.RateLimit.Refill <= 0) {
		return fmt.Errorf("rate_limit capacity and refill must be positive")
	}
	return nil
}
