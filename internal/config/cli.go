package config

import (
	"errors"
	"flag"
	"os"

	"github.com/mpingram/chip8vm/internal/translate"
)

// ParseArgs is Parse for a command's main function. It adds a -version
// flag and exits the process with a usage message on bad arguments.
func ParseArgs(fs *flag.FlagSet, args []string, version string) Config {
	showVersion := fs.Bool("version", false, "print the version and exit")
	fs.Usage = func() {
		translate.Fprintf(fs.Output(), "usage: %s [options] <program.ch8>\n", fs.Name())
		fs.PrintDefaults()
	}

	cfg, err := Parse(fs, args)
	if *showVersion {
		translate.Fprintf(os.Stdout, "%s version %s\n", fs.Name(), version)
		os.Exit(0)
	}
	switch {
	case errors.Is(err, ErrNoROM):
		fs.Usage()
		os.Exit(2)
	case err != nil:
		translate.Fprintf(fs.Output(), "%s: %v\n", fs.Name(), err)
		os.Exit(2)
	}
	return cfg
}
