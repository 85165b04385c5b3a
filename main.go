// Command chip8 runs Chip-8 programs in a window.
//
// Besides the 16 keypad keys, Escape quits, P pauses, [ resumes, ] steps
// one instruction while paused and O dumps the machine state.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"runtime"
	"time"

	"github.com/go-gl/glfw/v3.2/glfw"
	"github.com/retroenv/retrogolib/buildinfo"

	"github.com/mpingram/chip8vm/cpu"
	"github.com/mpingram/chip8vm/internal/audio"
	"github.com/mpingram/chip8vm/internal/config"
	"github.com/mpingram/chip8vm/internal/runner"
	"github.com/mpingram/chip8vm/internal/translate"
	"github.com/mpingram/chip8vm/internal/watch"
	"github.com/mpingram/chip8vm/screen"
)

var (
	version = "dev"
	commit  = ""
	date    = ""
)

func init() {
	// openGL requires this to render properly
	runtime.LockOSThread()
}

func main() {
	log.SetPrefix(translate.Prefix)
	log.SetFlags(0)

	cfg := config.ParseArgs(flag.CommandLine, os.Args[1:], buildinfo.Version(version, commit, date))
	if err := run(cfg); err != nil {
		log.Fatal(err)
	}
}

func run(cfg config.Config) error {
	rom, err := os.ReadFile(cfg.ROM)
	if err != nil {
		return err
	}

	if err := glfw.Init(); err != nil {
		return fmt.Errorf("glfw: %w", err)
	}
	defer glfw.Terminate()

	glfw.WindowHint(glfw.Resizable, glfw.True)
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	window, err := glfw.CreateWindow(screen.Width*cfg.Scale, screen.Height*cfg.Scale, "Chip-8", nil, nil)
	if err != nil {
		return fmt.Errorf("glfw: %w", err)
	}
	defer window.Destroy()
	window.MakeContextCurrent()

	renderer, err := NewOpenGLRenderer(window)
	if err != nil {
		return err
	}
	defer renderer.Delete()

	pad := &cpu.Keypad{}
	input, err := NewKeyboardInput(window, pad, cfg.Keymap())
	if err != nil {
		return err
	}

	var speaker runner.Speaker = audio.Silent{}
	if beeper, err := audio.NewBeeper(); err != nil {
		log.Printf("no sound: %v", err)
	} else {
		defer beeper.Close()
		speaker = beeper
	}

	scr := screen.New()
	r := runner.New(cfg.NewMachine(log.Default()), scr, pad, runner.Options{
		CyclesPerFrame: cfg.CyclesPerFrame(),
		TimerHz:        cfg.TimerHz,
		Speaker:        speaker,
		Logger:         log.Default(),
	})
	if err := r.Swap(rom); err != nil {
		return err
	}
	window.SetFramebufferSizeCallback(func(*glfw.Window, int, int) {
		scr.Invalidate()
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if cfg.Watch {
		go func() {
			if err := watch.Watch(ctx, cfg.ROM, r, log.Default()); err != nil && ctx.Err() == nil {
				log.Printf("watch: %v", err)
			}
		}()
	}

	// The GL context belongs to this thread, so frames are paced here
	// rather than by runner.Run.
	ticker := time.NewTicker(time.Second / time.Duration(cfg.TimerHz))
	defer ticker.Stop()
	for !window.ShouldClose() {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}

		glfw.PollEvents()
		ctl := input.Poll()
		switch {
		case ctl&PowerOff != 0:
			window.SetShouldClose(true)
			continue
		case ctl&Pause != 0:
			r.Pause()
		case ctl&Unpause != 0:
			r.Resume()
		case ctl&StepForward != 0 && r.Paused():
			if err := r.Step(); err != nil {
				log.Print(err)
			}
		case ctl&DumpState != 0:
			fmt.Print(dumpState(r))
		}

		if err := r.Frame(); err != nil {
			// The runner is paused on the fault; O still dumps the state.
			log.Print(err)
		}
		scr.Present(renderer)
	}
	return nil
}

func dumpState(r *runner.Runner) string {
	st := r.State()
	next := st.Next()
	return fmt.Sprintf("%vpc: %03x %04x %v\ni: %03x dt: %02x st: %02x\nv: % x\nstack: %03x\n",
		r.Screen(), st.PC, uint16(next), next, st.I, st.DT, st.ST, st.V[:], st.Stack)
}
