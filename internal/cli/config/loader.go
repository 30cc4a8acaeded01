package config

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"regexp"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// loggerKey is used to store logger in context.
type loggerKey struct{}

// configKey is used to store config in context.
type configKey struct{}

// envPrefix prefixes every environment variable read by the loader.
const envPrefix = "SQLBIND_"

// sections are the nested config sections. SQLBIND_CATALOG_TYPE maps to
// catalog.type, while SQLBIND_HISTORY_FILE stays history_file.
var sections = []string{"catalog", "session", "binder"}

// flagKeys maps flag names to config keys. Flags not listed map to their
// name with dashes replaced by underscores.
var flagKeys = map[string]string{
	"catalog-type":     "catalog.type",
	"catalog-path":     "catalog.path",
	"dsn":              "catalog.dsn",
	"computed-columns": "binder.computed_columns",
	"query-compiler":   "binder.query_compiler",
	"use-catalog":      "session.catalog",
	"use-database":     "session.database",
}

var configFileUsed string

// findConfigFile finds the config file to use.
// Priority: explicit path > sqlbind.yaml > sqlbind.yml
func findConfigFile(explicit string) string {
	if explicit != "" {
		return explicit
	}
	for _, name := range []string{"sqlbind.yaml", "sqlbind.yml"} {
		if _, err := os.Stat(name); err == nil {
			return name
		}
	}
	return ""
}

// LoadConfig loads configuration from file, environment variables, and flags.
// Precedence (highest to lowest): flags > env vars > config file > defaults
func LoadConfig(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	// 1. Load defaults
	if err := k.Load(confmap.Provider(map[string]any{
		"catalog.type":            DefaultCatalogType,
		"binder.computed_columns": true,
		"binder.query_compiler":   DefaultCompiler,
		"output":                  DefaultOutput,
		"history_file":            DefaultHistoryFile,
		"verbose":                 false,
		"log_format":              DefaultLogFormat,
	}, "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// 2. Find and load config file
	configFileUsed = findConfigFile(cfgFile)
	if configFileUsed != "" {
		if err := k.Load(file.Provider(configFileUsed), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", configFileUsed, err)
		}
	}

	// 3. Load environment variables (SQLBIND_ prefix)
	if err := k.Load(env.Provider(envPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	// 4. Load flags (highest priority - overrides env vars and config file)
	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, any) {
			if !f.Changed {
				return "", nil
			}
			key, ok := flagKeys[f.Name]
			if !ok {
				key = strings.ReplaceAll(f.Name, "-", "_")
			}
			return key, posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	// 5. Unmarshal into Config struct
	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	cfg.Catalog.DSN = expandEnvVars(cfg.Catalog.DSN)
	cfg.Catalog.Host = expandEnvVars(cfg.Catalog.Host)
	cfg.Catalog.Username = expandEnvVars(cfg.Catalog.Username)
	cfg.Catalog.Password = expandEnvVars(cfg.Catalog.Password)
	if cfg.Catalog.Type == CatalogSQLite && cfg.Catalog.Path == "" {
		cfg.Catalog.Path = DefaultSQLitePath
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// envKey transforms SQLBIND_CATALOG_TYPE into catalog.type.
func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, envPrefix))
	for _, section := range sections {
		if rest, ok := strings.CutPrefix(key, section+"_"); ok {
			return section + "." + rest
		}
	}
	return key
}

// GetConfigFileUsed returns the path to the config file being used, if any.
func GetConfigFileUsed() string {
	return configFileUsed
}

// LoggerKey returns the context key used for storing the logger.
// This allows the commands package to retrieve the logger from context
// without creating an import cycle with the cli package.
func LoggerKey() any {
	return loggerKey{}
}

// GetLogger retrieves the logger from the command context.
func GetLogger(ctx context.Context) *slog.Logger {
	if l, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok {
		return l
	}
	// Return discard logger as safe fallback
	return slog.New(slog.DiscardHandler)
}

// WithConfig stores cfg in ctx.
func WithConfig(ctx context.Context, cfg *Config) context.Context {
	return context.WithValue(ctx, configKey{}, cfg)
}

// FromContext retrieves the config from ctx, or the defaults if none was
// stored.
func FromContext(ctx context.Context) *Config {
	if c, ok := ctx.Value(configKey{}).(*Config); ok {
		return c
	}
	return &Config{
		Catalog:     CatalogConfig{Type: DefaultCatalogType},
		Binder:      BinderConfig{ComputedColumns: true, QueryCompiler: DefaultCompiler},
		Output:      DefaultOutput,
		HistoryFile: DefaultHistoryFile,
		LogFormat:   DefaultLogFormat,
	}
}

var envVarPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

// expandEnvVars expands ${VAR} patterns in a string with environment variable values.
func expandEnvVars(s string) string {
	return envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		varName := match[2 : len(match)-1]
		if val := os.Getenv(varName); val != "" {
			return val
		}
		return match // Return original if not found
	})
}
