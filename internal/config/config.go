// Package config loads locedit settings.
//
// Configuration is read from, in increasing priority:
//  1. built-in defaults
//  2. locedit.yaml (working directory, $HOME/.config/locedit, or --config)
//  3. environment variables prefixed LOCEDIT_ (layout.max_depth -> LOCEDIT_LAYOUT_MAX_DEPTH),
//     with a .env file in the working directory loaded first when present.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config is the root configuration structure.
type Config struct {
	// Root is the default localization root holding one folder per language.
	Root     string         `mapstructure:"root"`
	Layout   LayoutConfig   `mapstructure:"layout"`
	Workbook WorkbookConfig `mapstructure:"workbook"`
	Log      LogConfig      `mapstructure:"log"`
}

// LayoutConfig controls folder discovery and validation.
type LayoutConfig struct {
	RequiredRootFiles []string `mapstructure:"required_root_files"`
	MaxDepth          int      `mapstructure:"max_depth"`
}

// WorkbookConfig controls spreadsheet import naming.
type WorkbookConfig struct {
	// StandardNames map straight to <name>.yaml at the language root.
	StandardNames []string `mapstructure:"standard_names"`
	// LikelySubdirs are sheet-name prefixes that denote a subdirectory,
	// so dialogues_intro imports as dialogues/intro.yaml.
	LikelySubdirs []string `mapstructure:"likely_subdirs"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // console or json
}

// Default returns the configuration used when nothing is overridden.
func Default() *Config {
	v := viper.New()
	setDefaults(v)
	var cfg Config
	_ = v.Unmarshal(&cfg)
	return &cfg
}

// Load reads configuration. path may name an explicit config file; when
// empty, locedit.yaml is looked up in the usual places and is optional.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("LOCEDIT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("locedit")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "locedit"))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return &cfg, nil
}

// Validate checks for settings the core cannot work with.
func (c *Config) Validate() error {
	if len(c.Layout.RequiredRootFiles) == 0 {
		return fmt.Errorf("layout.required_root_files must not be empty")
	}
	for _, f := range c.Layout.RequiredRootFiles {
		if strings.TrimSpace(f) == "" || strings.ContainsAny(f, `/\`) {
			return fmt.Errorf("layout.required_root_files: invalid file name %q", f)
		}
	}
	if c.Layout.MaxDepth <= 0 {
		return fmt.Errorf("layout.max_depth must be positive, got %d", c.Layout.MaxDepth)
	}
	switch c.Log.Format {
	case "console", "json":
	default:
		return fmt.Errorf("log.format must be console or json, got %q", c.Log.Format)
	}
	if _, err := zapcore.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	return nil
}

// NewLogger builds the process logger from c.
func NewLogger(c LogConfig) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(c.Level)
	if err != nil {
		return nil, err
	}
	var zc zap.Config
	if c.Format == "json" {
		zc = zap.NewProductionConfig()
	} else {
		zc = zap.NewDevelopmentConfig()
		zc.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	zc.Level = zap.NewAtomicLevelAt(level)
	zc.OutputPaths = []string{"stderr"}
	return zc.Build()
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("root", "")

	v.SetDefault("layout.required_root_files", []string{"metadata.yaml", "characters.yaml", "ui.yaml"})
	v.SetDefault("layout.max_depth", 64)

	v.SetDefault("workbook.standard_names", []string{"metadata", "characters", "ui", "terms"})
	v.SetDefault("workbook.likely_subdirs", []string{
		"dialogues", "levels", "screens", "scenes", "chapters", "quests", "items", "characters_data",
	})

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
}
