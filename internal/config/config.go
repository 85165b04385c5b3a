// Package config holds the interpreter settings shared by every frontend.
//
// Settings come from three places, later ones winning: the defaults, an
// optional TOML file named with -config, and the command line.
package config

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/mpingram/chip8vm/cpu"
	"github.com/mpingram/chip8vm/internal/translate"
)

// DefaultKeys is the keyboard layout, one character per key code 0 to F.
//
//	1 2 3 4      A 0 B F
//	Q W E R  ->  1 2 3 C
//	A S D F      4 5 6 D
//	Z X C V      7 8 9 E
const DefaultKeys = "2QWEASDZXC13RFV4"

var ErrNoROM = errors.New(translate.From("no ROM given"))

// Quirks are opt-in behaviours of other interpreters.
type Quirks struct {
	// LoadStoreIncrementsI makes Fx55 and Fx65 leave I pointing past the
	// last register transferred.
	LoadStoreIncrementsI bool `toml:"load_store_increments_i"`
}

type Config struct {
	ROM     string `toml:"rom"`
	ClockHz int    `toml:"clock_hz"`
	TimerHz int    `toml:"timer_hz"`
	Scale   int    `toml:"scale"`
	Seed    int64  `toml:"seed"` // 0 seeds from the clock
	Trace   bool   `toml:"trace"`
	Watch   bool   `toml:"watch"`
	Keys    string `toml:"keys"`
	Quirks  Quirks `toml:"quirks"`
}

func Default() Config {
	return Config{
		ClockHz: 500,
		TimerHz: 60,
		Scale:   10,
		Keys:    DefaultKeys,
	}
}

// RegisterFlags binds the settings to flags in fs, using the current
// values as defaults.
func (c *Config) RegisterFlags(fs *flag.FlagSet) {
	fs.IntVar(&c.ClockHz, "clock", c.ClockHz, "instructions per second")
	fs.IntVar(&c.TimerHz, "timer", c.TimerHz, "timer and display rate in `Hz`")
	fs.IntVar(&c.Scale, "scale", c.Scale, "window pixels per Chip-8 pixel")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "random number seed (0 uses the clock)")
	fs.BoolVar(&c.Trace, "trace", c.Trace, "log every executed instruction")
	fs.BoolVar(&c.Watch, "watch", c.Watch, "reload the ROM when the file changes")
	fs.StringVar(&c.Keys, "keys", c.Keys, "keyboard characters for keys 0 to F")
	fs.BoolVar(&c.Quirks.LoadStoreIncrementsI, "quirk-load-store", c.Quirks.LoadStoreIncrementsI, "Fx55/Fx65 advance I")
}

// Parse reads the configuration from defaults, the TOML file named by the
// -config flag and the flags themselves. The first positional argument,
// if any, is the ROM. The result is validated.
func Parse(fs *flag.FlagSet, args []string) (Config, error) {
	cfg := Default()
	cfg.RegisterFlags(fs)

	var path string
	fs.StringVar(&path, "config", "", "read settings from TOML `file`")

	if err := fs.Parse(args); err != nil {
		return cfg, err
	}
	if path != "" {
		if err := cfg.decodeFile(path); err != nil {
			return cfg, err
		}
		// Flags win over the file.
		if err := fs.Parse(args); err != nil {
			return cfg, err
		}
	}
	if fs.NArg() > 0 {
		cfg.ROM = fs.Arg(0)
	}

	return cfg, cfg.Validate()
}

// Load reads a TOML file over the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if err := cfg.decodeFile(path); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c *Config) decodeFile(path string) error {
	md, err := toml.DecodeFile(path, c)
	if err != nil {
		return fmt.Errorf("config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return translate.Error("config %s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	return nil
}

func (c Config) Validate() error {
	switch {
	case c.ROM == "":
		return ErrNoROM
	case c.ClockHz <= 0:
		return translate.Error("clock rate must be positive, got %d", c.ClockHz)
	case c.TimerHz <= 0:
		return translate.Error("timer rate must be positive, got %d", c.TimerHz)
	case c.Scale <= 0:
		return translate.Error("scale must be positive, got %d", c.Scale)
	}
	_, err := ParseKeymap(c.Keys)
	return err
}

// CyclesPerFrame is the number of instructions to run between timer ticks.
func (c Config) CyclesPerFrame() int {
	return max(1, c.ClockHz/c.TimerHz)
}

// Keymap returns the parsed key layout. It panics if the layout is
// invalid, so call Validate first.
func (c Config) Keymap() Keymap {
	k, err := ParseKeymap(c.Keys)
	if err != nil {
		panic(err)
	}
	return k
}

// NewMachine returns a Machine with the trace, quirk and seed settings
// applied.
func (c Config) NewMachine(logger *log.Logger) *cpu.Machine {
	m := cpu.New(logger)
	m.Trace = c.Trace
	m.Quirks = cpu.Quirks{LoadStoreIncrementsI: c.Quirks.LoadStoreIncrementsI}
	if c.Seed != 0 {
		m.Seed(c.Seed)
	}
	return m
}
