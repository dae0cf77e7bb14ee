// Package config loads the service configuration from an optional .env file,
// an optional YAML file named by BANQUE_CONFIG, and the environment, in that
// order of increasing precedence.
package config

import (
    "fmt"
    "os"
    "strconv"
    "strings"

    "github.com/joho/godotenv"
    "gopkg.in/yaml.v3"
)

// Storage backends.
const (
    StorageMemory   = "memory"
    StoragePostgres = "postgres"
    StorageSQLite   = "sqlite"
)

// Config represents the application configuration.
type Config struct {
    HTTPAddr    string `yaml:"http_addr"`
    Storage     string `yaml:"storage"`
    DatabaseURL string `yaml:"database_url"`
    SQLitePath  string `yaml:"sqlite_path"`
    Currency    string `yaml:"currency"`
    LogLevel    string `yaml:"log_level"`
    LogFormat   string `yaml:"log_format"`
    DevSeed     bool   `yaml:"dev_seed"`
}

func defaults() *Config {
    return &Config{
        HTTPAddr:  ":8080",
        Currency:  "MAD",
        LogLevel:  "info",
        LogFormat: "json",
    }
}

// Load builds the configuration. A custom .env path may be given; otherwise
// .env in the working directory is loaded when present.
func Load(envPath ...string) (*Config, error) {
    if len(envPath) > 0 && envPath[0] != "" {
        if err := godotenv.Load(envPath[0]); err != nil {
            return nil, fmt.Errorf("failed to load .env file: %w", err)
        }
    } else {
        _ = godotenv.Load()
    }

    cfg := defaults()
    if path := strings.TrimSpace(os.Getenv("BANQUE_CONFIG")); path != "" {
        if err := cfg.loadYAML(path); err != nil { return nil, err }
    }
    if err := cfg.applyEnv(); err != nil { return nil, err }
    cfg.normalize()
    return cfg, nil
}

func (c *Config) loadYAML(path string) error {
    data, err := os.ReadFile(path)
    if err != nil { return fmt.Errorf("failed to read config file: %w", err) }
    if err := yaml.Unmarshal(data, c); err != nil {
        return fmt.Errorf("failed to parse config file %s: %w", path, err)
    }
    return nil
}

func (c *Config) applyEnv() error {
    setString(&c.HTTPAddr, "HTTP_ADDR")
    setString(&c.Storage, "STORAGE")
    setString(&c.DatabaseURL, "DATABASE_URL")
    setString(&c.SQLitePath, "SQLITE_PATH")
    setString(&c.Currency, "BANQUE_CURRENCY")
    setString(&c.LogLevel, "LOG_LEVEL")
    setString(&c.LogFormat, "LOG_FORMAT")
    if v := strings.TrimSpace(os.Getenv("DEV_SEED")); v != "" {
        b, err := parseBool(v)
        if err != nil { return fmt.Errorf("invalid DEV_SEED: %w", err) }
        c.DevSeed = b
    }
    return nil
}

// normalize infers the backend from the connection settings when unset.
func (c *Config) normalize() {
    c.Storage = strings.ToLower(strings.TrimSpace(c.Storage))
    c.Currency = strings.ToUpper(strings.TrimSpace(c.Currency))
    c.LogFormat = strings.ToLower(strings.TrimSpace(c.LogFormat))
    if c.Storage == "" {
        switch {
        case c.DatabaseURL != "":
            c.Storage = StoragePostgres
        case c.SQLitePath != "":
            c.Storage = StorageSQLite
        default:
            c.Storage = StorageMemory
        }
    }
}

// Validate rejects inconsistent settings.
func (c *Config) Validate() error {
    var problems []string
    switch c.Storage {
    case StorageMemory:
    case StoragePostgres:
        if c.DatabaseURL == "" { problems = append(problems, "DATABASE_URL is required for postgres storage") }
    case StorageSQLite:
        if c.SQLitePath == "" { problems = append(problems, "SQLITE_PATH is required for sqlite storage") }
    default:
        problems = append(problems, fmt.Sprintf("unknown STORAGE %q", c.Storage))
    }
    if len(c.Currency) != 3 { problems = append(problems, fmt.Sprintf("BANQUE_CURRENCY must be a 3-letter code, got %q", c.Currency)) }
    if c.HTTPAddr == "" { problems = append(problems, "HTTP_ADDR must not be empty") }
    if c.LogFormat != "json" && c.LogFormat != "text" {
        problems = append(problems, fmt.Sprintf("LOG_FORMAT must be json or text, got %q", c.LogFormat))
    }
    if len(problems) > 0 {
        return fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
    }
    return nil
}

func setString(dst *string, key string) {
    if v := os.Getenv(key); v != "" { *dst = v }
}

func parseBool(v string) (bool, error) {
    switch strings.ToLower(v) {
    case "yes", "y", "on":
        return true, nil
    case "no", "n", "off":
        return false, nil
    }
    return strconv.ParseBool(v)
}
