// Command chip8term runs Chip-8 programs in a text terminal.
//
// With -debug it shows the debugger: the screen, a log and the machine
// state, with a command line below. Tab switches the keyboard between the
// program and the command line.
package main

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"

	"github.com/gdamore/tcell/v2"
	"github.com/retroenv/retrogolib/buildinfo"
	xterm "golang.org/x/term"

	"github.com/mpingram/chip8vm/cpu"
	"github.com/mpingram/chip8vm/internal/audio"
	"github.com/mpingram/chip8vm/internal/config"
	"github.com/mpingram/chip8vm/internal/debugger"
	"github.com/mpingram/chip8vm/internal/runner"
	"github.com/mpingram/chip8vm/internal/term"
	"github.com/mpingram/chip8vm/internal/translate"
	"github.com/mpingram/chip8vm/internal/watch"
	"github.com/mpingram/chip8vm/screen"
)

var (
	version = "dev"
	commit  = ""
	date    = ""
)

func main() {
	log.SetPrefix(translate.Prefix)
	log.SetFlags(0)

	debugFlag := flag.Bool("debug", false, "run under the debugger")
	cfg := config.ParseArgs(flag.CommandLine, os.Args[1:], buildinfo.Version(version, commit, date))

	fd := int(os.Stdout.Fd())
	if !xterm.IsTerminal(fd) {
		log.Fatal("standard output is not a terminal")
	}
	if w, h, err := xterm.GetSize(fd); err == nil && !term.Fits(w, h) {
		log.Fatalf("terminal is %dx%d, need at least %dx%d", w, h, term.Cols, term.Rows)
	}

	rom, err := os.ReadFile(cfg.ROM)
	if err != nil {
		log.Fatal(err)
	}

	if *debugFlag {
		err = runDebugger(cfg, rom)
	} else {
		err = run(cfg, rom)
	}
	if err != nil {
		log.Fatal(err)
	}
}

type app struct {
	cfg    config.Config
	pad    *cpu.Keypad
	r      *runner.Runner
	logger *log.Logger
	close  func()
}

func newApp(cfg config.Config, rom []byte, presenter screen.Presenter, logger *log.Logger) (*app, error) {
	a := &app{cfg: cfg, pad: &cpu.Keypad{}, logger: logger, close: func() {}}

	var speaker runner.Speaker = audio.Silent{}
	if beeper, err := audio.NewBeeper(); err != nil {
		logger.Printf("no sound: %v", err)
	} else {
		speaker = beeper
		a.close = func() { beeper.Close() }
	}

	a.r = runner.New(cfg.NewMachine(logger), screen.New(), a.pad, runner.Options{
		CyclesPerFrame: cfg.CyclesPerFrame(),
		TimerHz:        cfg.TimerHz,
		Speaker:        speaker,
		Presenter:      presenter,
		Logger:         logger,
	})
	if err := a.r.Swap(rom); err != nil {
		a.close()
		return nil, err
	}
	return a, nil
}

func (a *app) watch(ctx context.Context) {
	if !a.cfg.Watch {
		return
	}
	go func() {
		if err := watch.Watch(ctx, a.cfg.ROM, a.r, a.logger); err != nil && ctx.Err() == nil {
			a.logger.Printf("watch: %v", err)
		}
	}()
}

func run(cfg config.Config, rom []byte) error {
	s, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := s.Init(); err != nil {
		return err
	}

	// The terminal belongs to tcell until Fini, so hold log output
	// until then.
	var logs bytes.Buffer
	logger := log.New(&logs, "", log.Ltime|log.Lmicroseconds)
	defer logs.WriteTo(os.Stderr)
	defer s.Fini()

	a, err := newApp(cfg, rom, term.NewPresenter(s), logger)
	if err != nil {
		return err
	}
	defer a.close()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()
	a.watch(ctx)

	keys := term.NewKeys(a.pad, cfg.Keymap())
	go func() {
		defer cancel()
		for {
			switch ev := s.PollEvent().(type) {
			case nil:
				return
			case *tcell.EventResize:
				s.Sync()
				a.r.Screen().Invalidate()
			case *tcell.EventKey:
				if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
					return
				}
				keys.HandleEvent(ev)
			}
		}
	}()

	err = a.r.Run(ctx)
	if ctx.Err() != nil {
		return nil
	}
	return err
}

func runDebugger(cfg config.Config, rom []byte) error {
	a, err := newApp(cfg, rom, nil, log.Default())
	if err != nil {
		return err
	}
	defer a.close()

	d := debugger.New(a.r, term.NewKeys(a.pad, cfg.Keymap()))
	log.SetPrefix("")
	log.SetFlags(log.Ltime)
	log.SetOutput(d.LogWriter())
	defer func() {
		log.SetOutput(os.Stderr)
		log.SetPrefix(translate.Prefix)
		log.SetFlags(0)
	}()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()
	a.watch(ctx)

	if err := d.Run(ctx, cfg.TimerHz); err != nil {
		return fmt.Errorf("debugger: %w", err)
	}
	return nil
}
