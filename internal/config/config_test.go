package config

import (
	"flag"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFlagSet() *flag.FlagSet {
	fs := flag.NewFlagSet("chip8", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "chip8.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestParse_Defaults(t *testing.T) {
	cfg, err := Parse(newFlagSet(), []string{"pong.ch8"})
	require.NoError(t, err)

	want := Default()
	want.ROM = "pong.ch8"
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("config (-want +got):\n%s", diff)
	}
	assert.Equal(t, 8, cfg.CyclesPerFrame())
}

func TestParse_Flags(t *testing.T) {
	cfg, err := Parse(newFlagSet(), []string{
		"-clock", "1000", "-timer", "50", "-scale", "4", "-seed", "7",
		"-trace", "-watch", "-quirk-load-store", "rom.ch8",
	})
	require.NoError(t, err)

	assert.Equal(t, Config{
		ROM:     "rom.ch8",
		ClockHz: 1000,
		TimerHz: 50,
		Scale:   4,
		Seed:    7,
		Trace:   true,
		Watch:   true,
		Keys:    DefaultKeys,
		Quirks:  Quirks{LoadStoreIncrementsI: true},
	}, cfg)
	assert.Equal(t, 20, cfg.CyclesPerFrame())
}

func TestParse_FlagsOverrideFile(t *testing.T) {
	path := writeFile(t, `
rom = "from-file.ch8"
clock_hz = 700
scale = 3

[quirks]
load_store_increments_i = true
`)

	cfg, err := Parse(newFlagSet(), []string{"-config", path, "-scale", "6"})
	require.NoError(t, err)

	assert.Equal(t, "from-file.ch8", cfg.ROM)
	assert.Equal(t, 700, cfg.ClockHz)
	assert.Equal(t, 60, cfg.TimerHz)
	assert.Equal(t, 6, cfg.Scale)
	assert.True(t, cfg.Quirks.LoadStoreIncrementsI)
}

func TestParse_PositionalROMOverridesFile(t *testing.T) {
	path := writeFile(t, `rom = "a.ch8"`)

	cfg, err := Parse(newFlagSet(), []string{"-config", path, "b.ch8"})
	require.NoError(t, err)
	assert.Equal(t, "b.ch8", cfg.ROM)
}

func TestParse_NoROM(t *testing.T) {
	_, err := Parse(newFlagSet(), nil)
	assert.ErrorIs(t, err, ErrNoROM)
}

func TestParse_BadFlag(t *testing.T) {
	_, err := Parse(newFlagSet(), []string{"-clock", "fast"})
	assert.Error(t, err)
}

func TestLoad_UnknownKey(t *testing.T) {
	path := writeFile(t, "clock_hz = 600\nturbo = true\n")

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "turbo")
}

func TestLoad_Malformed(t *testing.T) {
	_, err := Load(writeFile(t, "clock_hz = \n"))
	assert.Error(t, err)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		ok     bool
	}{
		{"default", func(*Config) {}, true},
		{"zero clock", func(c *Config) { c.ClockHz = 0 }, false},
		{"negative timer", func(c *Config) { c.TimerHz = -60 }, false},
		{"zero scale", func(c *Config) { c.Scale = 0 }, false},
		{"short keymap", func(c *Config) { c.Keys = "1234" }, false},
		{"duplicate key", func(c *Config) { c.Keys = "2QWEASDZXC13RFVq" }, false},
		{"keymap uses pause key", func(c *Config) { c.Keys = "2QWEASDZXC13RFVp" }, false},
		{"lower-case keymap", func(c *Config) { c.Keys = "x123qweasdzc4rfv" }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			cfg.ROM = "rom.ch8"
			tt.modify(&cfg)

			err := cfg.Validate()
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestConfig_CyclesPerFrameAtLeastOne(t *testing.T) {
	cfg := Default()
	cfg.ClockHz = 30

	assert.Equal(t, 1, cfg.CyclesPerFrame())
}

func TestConfig_NewMachine(t *testing.T) {
	cfg := Default()
	cfg.Trace = true
	cfg.Seed = 99
	cfg.Quirks.LoadStoreIncrementsI = true

	m := cfg.NewMachine(nil)

	assert.True(t, m.Trace)
	assert.True(t, m.Quirks.LoadStoreIncrementsI)
	assert.False(t, m.Loaded())
}
