// Command chip8ebiten runs Chip-8 programs in an Ebitengine window.
package main

import (
	"context"
	"flag"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
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

	keys, err := ebitenKeys(cfg.Keymap())
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

	g := &game{
		pad:    &cpu.Keypad{},
		keys:   keys,
		pixels: make([]byte, 0, screen.Width*screen.Height*4),
	}
	g.r = runner.New(cfg.NewMachine(log.Default()), screen.New(), g.pad, runner.Options{
		CyclesPerFrame: cfg.CyclesPerFrame(),
		TimerHz:        cfg.TimerHz,
		Speaker:        speaker,
		Presenter:      screen.PresenterFunc(g.render),
		Logger:         log.Default(),
	})
	if err := g.r.Swap(rom); err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if cfg.Watch {
		go func() {
			if err := watch.Watch(ctx, cfg.ROM, g.r, log.Default()); err != nil && ctx.Err() == nil {
				log.Printf("watch: %v", err)
			}
		}()
	}

	// Ebitengine calls Update once per timer tick.
	ebiten.SetTPS(cfg.TimerHz)
	ebiten.SetWindowSize(screen.Width*cfg.Scale, screen.Height*cfg.Scale)
	ebiten.SetWindowTitle("Chip-8")
	ebiten.SetWindowResizable(true)
	return ebiten.RunGame(g)
}

type game struct {
	r    *runner.Runner
	pad  *cpu.Keypad
	keys [cpu.NumKeys]ebiten.Key

	pixels []byte
	img    *ebiten.Image
}

func (g *game) Update() error {
	if ebiten.IsKeyPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	for i, k := range g.keys {
		g.pad.Set(byte(i), ebiten.IsKeyPressed(k))
	}
	if err := g.r.Frame(); err != nil {
		log.Print(err)
	}
	return nil
}

// render is called by the runner from inside Update.
func (g *game) render(f screen.Frame) {
	g.pixels = f.RGBA(g.pixels[:0], [4]byte{0xff, 0xff, 0xff, 0xff}, [4]byte{0, 0, 0, 0xff})
	if g.img == nil {
		g.img = ebiten.NewImage(screen.Width, screen.Height)
	}
	g.img.WritePixels(g.pixels)
}

func (g *game) Draw(dst *ebiten.Image) {
	if g.img != nil {
		dst.DrawImage(g.img, nil)
	}
}

func (g *game) Layout(outerWidth, outerHeight int) (int, int) {
	return screen.Width, screen.Height
}
