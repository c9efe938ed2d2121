package shared

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	SourceDir   = "dir"
	SourceMySQL = "mysql"
)

type Config struct {
	AppEnv         string        `yaml:"app_env"`
	LogLevel       string        `yaml:"log_level"`
	HTTPAddr       string        `yaml:"http_addr"`
	MetricsAddr    string        `yaml:"metrics_addr"`
	CatalogSource  string        `yaml:"catalog_source"`
	CatalogDir     string        `yaml:"catalog_dir"`
	MySQLDSN       string        `yaml:"mysql_dsn"`
	RedisAddr      string        `yaml:"redis_addr"`
	RedisDB        int           `yaml:"redis_db"`
	RedisPass      string        `yaml:"redis_password"`
	Workers        int           `yaml:"load_workers"`
	CacheTTL       time.Duration `yaml:"cache_ttl"`
	RateLimitRPS   int           `yaml:"rate_limit_rps"`
	RequestTimeout time.Duration `yaml:"request_timeout"`
}

func Default() Config {
	return Config{
		AppEnv:         "prod",
		LogLevel:       "info",
		HTTPAddr:       ":8080",
		CatalogSource:  SourceDir,
		CatalogDir:     "./eateries",
		MySQLDSN:       "root:root@tcp(localhost:3306)/eateries?parseTime=true&charset=utf8mb4",
		Workers:        8,
		CacheTTL:       900 * time.Second,
		RequestTimeout: 15 * time.Second,
	}
}

// Load applies, in order: defaults, the YAML file named by CONFIG_FILE, env vars.
func Load() (Config, error) {
	c := Default()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := loadFromFile(path, &c); err != nil {
			return Config{}, err
		}
	}

	str := func(k string, dst *string) {
		if v := os.Getenv(k); v != "" {
			*dst = v
		}
	}
	var err error
	atoi := func(k string, dst *int) {
		v := os.Getenv(k)
		if v == "" || err != nil {
			return
		}
		n, perr := strconv.Atoi(v)
		if perr != nil {
			err = fmt.Errorf("invalid %s: %w", k, perr)
			return
		}
		*dst = n
	}
	secs := func(k string, dst *time.Duration) {
		if os.Getenv(k) == "" || err != nil {
			return
		}
		var n int
		atoi(k, &n)
		if err != nil {
			return
		}
		if n < 0 {
			err = fmt.Errorf("invalid %s: must not be negative", k)
			return
		}
		*dst = time.Duration(n) * time.Second
	}

	str("APP_ENV", &c.AppEnv)
	str("LOG_LEVEL", &c.LogLevel)
	str("HTTP_ADDR", &c.HTTPAddr)
	str("METRICS_ADDR", &c.MetricsAddr)
	str("CATALOG_SOURCE", &c.CatalogSource)
	str("CATALOG_DIR", &c.CatalogDir)
	str("MYSQL_DSN", &c.MySQLDSN)
	str("REDIS_ADDR", &c.RedisAddr)
	str("REDIS_PASSWORD", &c.RedisPass)
	atoi("REDIS_DB", &c.RedisDB)
	atoi("LOAD_WORKERS", &c.Workers)
	atoi("RATE_LIMIT_RPS", &c.RateLimitRPS)
	secs("CACHE_TTL_SECONDS", &c.CacheTTL)
	secs("REQUEST_TIMEOUT_SECONDS", &c.RequestTimeout)
	if err != nil {
		return Config{}, err
	}

	if c.CatalogSource != SourceDir && c.CatalogSource != SourceMySQL {
		return Config{}, fmt.Errorf("invalid CATALOG_SOURCE %q: want %s or %s", c.CatalogSource, SourceDir, SourceMySQL)
	}
	return c, nil
}

func loadFromFile(path string, c *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}
