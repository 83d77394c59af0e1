// Package config wires flags, environment variables and an optional
// config file into one settings object. Precedence: flags, then
// WORDFRAY_* env vars, then wordfray.yaml, then defaults.
package config

import (
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const envPrefix = "wordfray"

type Config struct {
	v    *viper.Viper
	args []string
}

func defaultConfig() *viper.Viper {
	v := viper.New()
	v.SetDefault("debug", false)
	v.SetDefault("dictionary-path", "")
	v.SetDefault("data-path", "./data")
	v.SetDefault("player-name", "you")
	v.SetDefault("max-health", 50)
	v.SetDefault("mulligans", 2)
	v.SetDefault("bot-delay-scale", 1.0)
	v.SetDefault("seed", int64(0))
	v.SetDefault("autoplay-db", "")
	v.SetDefault("cpu-profile", "")
	v.SetDefault("mem-profile", "")
	return v
}

// Load parses the given command-line arguments over env vars, an optional
// wordfray.yaml in the working directory, and built-in defaults.
func (c *Config) Load(args []string) error {
	c.v = defaultConfig()

	fs := pflag.NewFlagSet("wordfray", pflag.ContinueOnError)
	fs.Bool("debug", false, "log at debug level")
	fs.String("dictionary-path", "", "rank-ordered word list; empty uses the embedded list")
	fs.String("data-path", "./data", "directory for generated data")
	fs.String("player-name", "you", "display name for the human side")
	fs.Int("max-health", 50, "starting health for the human side")
	fs.Int("mulligans", 2, "paid mulligans per match")
	fs.Float64("bot-delay-scale", 1.0, "scale opponent think/move delays; 0 removes them")
	fs.Int64("seed", 0, "random seed; 0 seeds from entropy")
	fs.String("autoplay-db", "", "sqlite file for autoplay results")
	fs.String("cpu-profile", "", "write a cpu profile to this file")
	fs.String("mem-profile", "", "write a memory profile to this file")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := c.v.BindPFlags(fs); err != nil {
		return err
	}
	c.args = fs.Args()

	c.v.SetEnvPrefix(envPrefix)
	c.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	c.v.AutomaticEnv()

	c.v.SetConfigName("wordfray")
	c.v.SetConfigType("yaml")
	c.v.AddConfigPath(".")
	if err := c.v.ReadInConfig(); err != nil {
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound {
			return err
		}
	} else {
		log.Debug().Str("file", c.v.ConfigFileUsed()).Msg("read-config-file")
	}
	return nil
}

// Args returns the positional arguments left over after flag parsing.
// A non-empty remainder runs as a one-shot shell command.
func (c *Config) Args() []string {
	return c.args
}

// AdjustRelativePaths anchors relative path settings at the executable's
// directory so the binary works when launched from anywhere.
func (c *Config) AdjustRelativePaths(exPath string) {
	for _, key := range []string{"dictionary-path", "data-path", "autoplay-db"} {
		p := c.v.GetString(key)
		if p == "" || filepath.IsAbs(p) {
			continue
		}
		c.v.Set(key, filepath.Join(exPath, p))
	}
}

func (c *Config) GetString(key string) string   { return c.v.GetString(key) }
func (c *Config) GetBool(key string) bool       { return c.v.GetBool(key) }
func (c *Config) GetInt(key string) int         { return c.v.GetInt(key) }
func (c *Config) GetInt64(key string) int64     { return c.v.GetInt64(key) }
func (c *Config) GetFloat64(key string) float64 { return c.v.GetFloat64(key) }

// Set overrides a setting at runtime. The shell's set command uses this.
func (c *Config) Set(key string, value any) {
	c.v.Set(key, value)
}

// Has reports whether the key is a known setting.
func (c *Config) Has(key string) bool {
	return c.v.IsSet(key)
}

// SanitizedSettings returns a copy of every setting for display.
func (c *Config) SanitizedSettings() map[string]any {
	return c.v.AllSettings()
}
