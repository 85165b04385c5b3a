// Package term runs the Chip-8 screen and keypad on a text terminal.
//
// Each terminal cell shows two pixels stacked vertically using the upper
// half block character, so the whole 64x32 screen fits in 64x16 cells.
package term

import (
	"github.com/gdamore/tcell/v2"

	"github.com/mpingram/chip8vm/screen"
)

const (
	Cols = screen.Width
	Rows = screen.Height / 2
)

const halfBlock = '▀'

var (
	On  = tcell.ColorWhite
	Off = tcell.ColorBlack
)

// DrawFrame writes f into s with its top-left corner at cell (x, y). It
// does not call Show.
func DrawFrame(s tcell.Screen, x, y int, f screen.Frame) {
	for row := 0; row < Rows; row++ {
		top, bottom := f[row*2], f[row*2+1]
		for col := 0; col < Cols; col++ {
			style := tcell.StyleDefault.
				Foreground(color(top[col])).
				Background(color(bottom[col]))
			s.SetContent(x+col, y+row, halfBlock, nil, style)
		}
	}
}

func color(lit bool) tcell.Color {
	if lit {
		return On
	}
	return Off
}

// Presenter shows frames on a whole tcell screen.
type Presenter struct {
	s tcell.Screen
}

func NewPresenter(s tcell.Screen) *Presenter {
	return &Presenter{s: s}
}

func (p *Presenter) Render(f screen.Frame) {
	DrawFrame(p.s, 0, 0, f)
	p.s.Show()
}

// Fits reports whether a terminal of the given size can show the screen.
func Fits(width, height int) bool {
	return width >= Cols && height >= Rows
}
