package config

import (
	"testing"

	"github.com/matryer/is"
)

func TestDefaults(t *testing.T) {
	is := is.New(t)

	c := &Config{}
	is.NoErr(c.Load(nil))
	is.Equal(c.GetInt("max-health"), 50)
	is.Equal(c.GetInt("mulligans"), 2)
	is.Equal(c.GetFloat64("bot-delay-scale"), 1.0)
	is.Equal(c.GetString("dictionary-path"), "")
	is.True(!c.GetBool("debug"))
}

func TestFlagsOverrideDefaults(t *testing.T) {
	is := is.New(t)

	c := &Config{}
	is.NoErr(c.Load([]string{"--debug", "--max-health", "75", "--seed", "42"}))
	is.True(c.GetBool("debug"))
	is.Equal(c.GetInt("max-health"), 75)
	is.Equal(c.GetInt64("seed"), int64(42))
}

func TestEnvOverrideDefaults(t *testing.T) {
	is := is.New(t)

	t.Setenv("WORDFRAY_PLAYER_NAME", "ragnar")
	c := &Config{}
	is.NoErr(c.Load(nil))
	is.Equal(c.GetString("player-name"), "ragnar")
}

func TestAdjustRelativePaths(t *testing.T) {
	is := is.New(t)

	c := &Config{}
	is.NoErr(c.Load([]string{"--data-path", "./stuff", "--dictionary-path", "/abs/words.txt"}))
	c.AdjustRelativePaths("/opt/wordfray")
	is.Equal(c.GetString("data-path"), "/opt/wordfray/stuff")
	// absolute paths are left alone; empty ones too
	is.Equal(c.GetString("dictionary-path"), "/abs/words.txt")
	is.Equal(c.GetString("autoplay-db"), "")
}

func TestRuntimeSet(t *testing.T) {
	is := is.New(t)

	c := &Config{}
	is.NoErr(c.Load(nil))
	c.Set("bot-delay-scale", 0.0)
	is.Equal(c.GetFloat64("bot-delay-scale"), 0.0)
	is.True(c.Has("bot-delay-scale"))
}
