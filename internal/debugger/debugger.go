// Package debugger is a terminal user interface for watching and
// controlling a running Chip-8 program.
package debugger

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/mpingram/chip8vm/cpu"
	"github.com/mpingram/chip8vm/internal/runner"
	"github.com/mpingram/chip8vm/internal/term"
)

// ShotScale is the pixel size of screenshots taken with the shot command.
const ShotScale = 10

type Debugger struct {
	r    *runner.Runner
	keys *term.Keys

	game  *tview.Box
	log   *tview.TextView
	state *tview.TextView
	input *tview.InputField
	cols  *tview.Flex
	rows  *tview.Flex
	app   *tview.Application

	logger *log.Logger
}

func New(r *runner.Runner, keys *term.Keys) *Debugger {
	d := &Debugger{
		r:    r,
		keys: keys,
		game: tview.NewBox(),
		log: tview.NewTextView().
			SetMaxLines(1000),
		state: tview.NewTextView().
			SetWrap(false),
		input: tview.NewInputField(),
		cols:  tview.NewFlex(),
		rows: tview.NewFlex().
			SetDirection(tview.FlexRow),
		app: tview.NewApplication(),
	}
	d.logger = log.New(d.log, "", 0)

	d.log.SetChangedFunc(func() { d.app.Draw() })
	d.state.SetBackgroundColor(tcell.ColorDarkGrey)
	d.game.SetDrawFunc(func(s tcell.Screen, x, y, w, h int) (int, int, int, int) {
		term.DrawFrame(s, x, y, d.r.Screen().Frame())
		return x, y, w, h
	})
	d.game.SetInputCapture(func(ev *tcell.EventKey) *tcell.EventKey {
		if d.keys != nil && d.keys.HandleEvent(ev) {
			return nil
		}
		return ev
	})

	d.cols.
		AddItem(d.game, term.Cols, 0, false).
		AddItem(d.log, 0, 1, false)
	d.rows.
		AddItem(d.cols, term.Rows, 0, false).
		AddItem(d.state, 5, 0, false).
		AddItem(d.input, 1, 0, true)
	d.app.SetRoot(d.rows, true)

	// Tab moves the keyboard between the game and the command line.
	d.app.SetInputCapture(func(ev *tcell.EventKey) *tcell.EventKey {
		if ev.Key() != tcell.KeyTab {
			return ev
		}
		if d.input.HasFocus() {
			d.app.SetFocus(d.game)
		} else {
			d.app.SetFocus(d.input)
		}
		return nil
	})

	d.input.SetDoneFunc(func(key tcell.Key) {
		if key != tcell.KeyEnter {
			return
		}
		cmd := d.input.GetText()
		if cmd == "" {
			return
		}
		d.input.SetText("")
		d.exec(cmd)
	})
	return d
}

// LogWriter returns the log pane, for use with log.SetOutput.
func (d *Debugger) LogWriter() *tview.TextView {
	return d.log
}

// Run shows the debugger and drives the runner at hz frames per second
// until the user exits or ctx is done.
func (d *Debugger) Run(ctx context.Context, hz int) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go func() {
		<-ctx.Done()
		d.app.Stop()
	}()
	go d.drive(ctx, hz)

	return d.app.Run()
}

func (d *Debugger) drive(ctx context.Context, hz int) {
	ticker := time.NewTicker(time.Second / time.Duration(max(1, hz)))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := d.r.Frame(); err != nil {
				d.logger.Printf("%v", err)
			}
			d.refresh()
		}
	}
}

func (d *Debugger) refresh() {
	msg := stateMsg(d.r.State(), d.r.Paused())
	d.app.QueueUpdateDraw(func() {
		d.state.SetText(msg)
	})
}

// exec runs one command line. The state pane catches up on the next frame.
func (d *Debugger) exec(line string) {
	cmd, arg, _ := strings.Cut(strings.TrimSpace(line), " ")
	arg = strings.TrimSpace(arg)

	switch cmd {
	case "exit", "q", "quit":
		d.app.Stop()
	case "s", "step":
		if err := d.r.Step(); err != nil {
			d.logger.Printf("%v", err)
		}
	case "c", "continue":
		d.r.Resume()
	case "p", "pause":
		d.r.Pause()
	case "b", "break":
		if arg == "" {
			d.r.ClearBreakpoints()
			d.logger.Print("cleared breaks")
			return
		}
		addr, err := parseAddr(arg)
		if err != nil {
			d.logger.Printf("invalid addr %q", arg)
			return
		}
		d.r.SetBreakpoint(addr)
		d.logger.Printf("set break %03x", addr)
	case "reset":
		if err := d.r.Reset(); err != nil {
			d.logger.Printf("reset: %v", err)
			return
		}
		d.logger.Print("reset")
	case "shot":
		if arg == "" {
			d.logger.Print("usage: shot <file.png>")
			return
		}
		if err := d.shot(arg); err != nil {
			d.logger.Printf("shot: %v", err)
			return
		}
		d.logger.Printf("wrote %s", arg)
	default:
		d.logger.Printf("unknown command %q", cmd)
	}
}

func (d *Debugger) shot(name string) error {
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	if err := d.r.Screen().WritePNG(f, ShotScale); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// parseAddr reads a hexadecimal address, with or without a $ or 0x prefix.
func parseAddr(s string) (uint16, error) {
	s = strings.TrimPrefix(s, "$")
	s = strings.TrimPrefix(strings.ToLower(s), "0x")
	n, err := strconv.ParseUint(s, 16, 12)
	if err != nil {
		return 0, err
	}
	return uint16(n), nil
}

func stateMsg(st cpu.State, paused bool) string {
	kind := "       "
	if paused {
		kind = "[pause]"
	}

	var b strings.Builder
	next := st.Next()
	fmt.Fprintf(&b, "%03x %04x %-16s %s\n", st.PC, uint16(next), next, kind)
	fmt.Fprintf(&b, "I: %03x dt: %02x st: %02x\n", st.I, st.DT, st.ST)
	fmt.Fprintf(&b, "v: % x\n", st.V[:])
	fmt.Fprintf(&b, "rs: %03x", st.Stack)
	return b.String()
}
