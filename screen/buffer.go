// Package screen implements the Chip-8's 64x32 monochrome display as an
// in-memory framebuffer that frontends present at their own pace.
package screen

import (
	"strings"
	"sync"
)

const (
	Width  = 64
	Height = 32
)

// Frame is one picture of the screen, indexed [y][x]. A true pixel is lit.
type Frame [Height][Width]bool

// A Presenter puts frames on a real screen: a window, a terminal, a test.
type Presenter interface {
	Render(Frame)
}

// PresenterFunc adapts an ordinary function to a Presenter.
type PresenterFunc func(Frame)

func (f PresenterFunc) Render(frame Frame) { f(frame) }

// Buffer is the display the interpreter draws on. It satisfies cpu.Display.
//
// Drawing only flips bits in memory; nothing reaches a Presenter until the
// owner calls Present, normally once per 60Hz frame.
type Buffer struct {
	mu    sync.Mutex
	frame Frame
	dirty bool
}

// New returns a blank Buffer that will present on the first Present call.
func New() *Buffer {
	return &Buffer{dirty: true}
}

// Clear turns every pixel off.
func (b *Buffer) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.frame = Frame{}
	b.dirty = true
}

// Draw XORs sprite rows onto the screen with the top-left corner at (x, y).
//
// Each row is one byte; the highest bit is the leftmost pixel. Pixels that
// fall off an edge wrap around to the opposite edge. Draw reports whether
// any pixel that was lit got turned off.
func (b *Buffer) Draw(x, y byte, rows []byte) (collision bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for i, row := range rows {
		py := (int(y) + i) % Height
		for j := 0; j < 8; j++ {
			if row&(0x80>>j) == 0 {
				continue
			}
			px := (int(x) + j) % Width
			if b.frame[py][px] {
				collision = true
			}
			b.frame[py][px] = !b.frame[py][px]
		}
	}

	if len(rows) > 0 {
		b.dirty = true
	}
	return collision
}

// Pixel reports whether the pixel at (x, y) is lit. Coordinates wrap.
func (b *Buffer) Pixel(x, y int) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.frame[mod(y, Height)][mod(x, Width)]
}

// Frame returns a copy of the current picture.
func (b *Buffer) Frame() Frame {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.frame
}

// Present hands the picture to p if anything changed since the last
// Present, and reports whether it did.
func (b *Buffer) Present(p Presenter) bool {
	b.mu.Lock()
	if !b.dirty {
		b.mu.Unlock()
		return false
	}
	frame := b.frame
	b.dirty = false
	b.mu.Unlock()

	p.Render(frame)
	return true
}

// Invalidate forces the next Present to render, e.g. after a window resize.
func (b *Buffer) Invalidate() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.dirty = true
}

// String draws the screen as text inside a border, one character per pixel.
func (b *Buffer) String() string {
	frame := b.Frame()
	return frame.String()
}

func (f *Frame) String() string {
	var s strings.Builder

	border := "+" + strings.Repeat("-", Width) + "+\n"
	s.WriteString(border)
	for _, row := range f {
		s.WriteByte('|')
		for _, px := range row {
			if px {
				s.WriteByte('*')
			} else {
				s.WriteByte(' ')
			}
		}
		s.WriteString("|\n")
	}
	s.WriteString(border)

	return s.String()
}

// RGBA appends the frame to dst as 8-bit RGBA pixels, lit pixels in on and
// dark ones in off.
func (f *Frame) RGBA(dst []byte, on, off [4]byte) []byte {
	for _, row := range f {
		for _, px := range row {
			if px {
				dst = append(dst, on[:]...)
			} else {
				dst = append(dst, off[:]...)
			}
		}
	}
	return dst
}

func mod(a, n int) int {
	a %= n
	if a < 0 {
		a += n
	}
	return a
}
