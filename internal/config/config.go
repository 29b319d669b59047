// Package config loads session settings from defaults, an optional YAML file,
// UPKEEP_* environment variables and bound command-line flags, in increasing
// order of precedence.
package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/talgya/upkeep/internal/ai"
	"github.com/talgya/upkeep/internal/engine"
	"github.com/talgya/upkeep/internal/entropy"
	"github.com/talgya/upkeep/internal/journal"
	"github.com/talgya/upkeep/internal/world"
)

// EnvPrefix namespaces environment overrides, e.g. UPKEEP_RADIUS=6.
const EnvPrefix = "UPKEEP"

// Config is the full session configuration.
type Config struct {
	Mode    string    `mapstructure:"mode"`
	Radius  int       `mapstructure:"radius"`
	Seed    int64     `mapstructure:"seed"` // 0 draws a random seed
	Terrain string    `mapstructure:"terrain"`
	Turns   int       `mapstructure:"turns"`
	Steps   int       `mapstructure:"steps"` // AI action budget per turn
	Journal string    `mapstructure:"journal"`
	Log     LogConfig `mapstructure:"log"`
	AI      AIConfig  `mapstructure:"ai"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // "auto", "text" or "json"
}

type AIConfig struct {
	Rules []ai.Rule `mapstructure:"rules"`
}

// SetDefaults registers every key's default on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("mode", "duel")
	v.SetDefault("radius", 4)
	v.SetDefault("seed", 0)
	v.SetDefault("terrain", "random")
	v.SetDefault("turns", 20)
	v.SetDefault("steps", ai.DefaultStepBudget)
	v.SetDefault("journal", journal.MemoryPath)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "auto")
	v.SetDefault("ai.rules", []ai.Rule{})
}

// New returns a viper instance with defaults and environment overrides set up.
func New() *viper.Viper {
	v := viper.New()
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// BindFlags makes flags override file and environment values. Flag names use
// the config keys with dots replaced by dashes.
func BindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	var err error
	flags.VisitAll(func(f *pflag.Flag) {
		if err != nil {
			return
		}
		key := strings.ReplaceAll(f.Name, "-", ".")
		if bindErr := v.BindPFlag(key, f); bindErr != nil {
			err = fmt.Errorf("bind flag %q: %w", f.Name, bindErr)
		}
	})
	return err
}

// Load reads the optional config file at path into v and decodes the result.
func Load(v *viper.Viper, path string) (Config, error) {
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}
	return decode(v)
}

// Watch re-decodes the config file whenever it changes and hands the result
// to fn. Invalid edits are logged and skipped. fn runs on viper's watcher
// goroutine.
func Watch(v *viper.Viper, fn func(Config)) {
	v.OnConfigChange(func(e fsnotify.Event) {
		cfg, err := decode(v)
		if err != nil {
			slog.Warn("config reload rejected", "file", e.Name, "error", err)
			return
		}
		slog.Info("config reloaded", "file", e.Name, "op", e.Op.String())
		fn(cfg)
	})
	v.WatchConfig()
}

func decode(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks values that decoding cannot.
func (c Config) Validate() error {
	mode, err := engine.ParseMode(c.Mode)
	if err != nil {
		return err
	}
	if mode == engine.ModeDuel && c.Radius < 2 {
		return fmt.Errorf("duel radius must be at least 2, got %d", c.Radius)
	}
	if c.Terrain != "random" && c.Terrain != "noise" {
		return fmt.Errorf("unknown terrain source %q", c.Terrain)
	}
	if c.Turns < 0 {
		return fmt.Errorf("turns must not be negative, got %d", c.Turns)
	}
	if _, err := c.LogLevel(); err != nil {
		return err
	}
	switch c.Log.Format {
	case "auto", "text", "json":
	default:
		return fmt.Errorf("unknown log format %q", c.Log.Format)
	}
	if _, err := ai.NewPolicy(c.AI.Rules); err != nil {
		return fmt.Errorf("ai rules: %w", err)
	}
	return nil
}

// LogLevel parses the configured level name.
func (c Config) LogLevel() (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return 0, fmt.Errorf("log level: %w", err)
	}
	return lvl, nil
}

// Session builds the engine config. The seed actually used is returned so a
// random session can be replayed.
func (c Config) Session() (engine.Config, int64, error) {
	mode, err := engine.ParseMode(c.Mode)
	if err != nil {
		return engine.Config{}, 0, err
	}

	seed := c.Seed
	if seed == 0 {
		seed = entropy.CryptoSeed()
	}

	gen := world.GenConfig{Radius: c.Radius}
	switch c.Terrain {
	case "noise":
		gen.Source = world.NewNoiseSource(seed)
	default:
		gen.Source = world.StreamSource{Src: entropy.NewSeeded(seed)}
	}
	return engine.Config{Mode: mode, Gen: gen}, seed, nil
}

// Policy compiles the AI rules.
func (c Config) Policy() (*ai.Policy, error) {
	return ai.NewPolicy(c.AI.Rules)
}
