package screen

import (
	"image"
	"image/color"
	"image/png"
	"io"

	xdraw "golang.org/x/image/draw"
)

// Palette holds the colours for dark and lit pixels, in that order.
var Palette = color.Palette{color.Black, color.White}

// Image renders the screen scaled up by an integer factor, each Chip-8
// pixel becoming a scale x scale square.
func (b *Buffer) Image(scale int) *image.Paletted {
	if scale < 1 {
		scale = 1
	}
	frame := b.Frame()

	src := image.NewPaletted(image.Rect(0, 0, Width, Height), Palette)
	for y, row := range frame {
		for x, px := range row {
			if px {
				src.SetColorIndex(x, y, 1)
			}
		}
	}
	if scale == 1 {
		return src
	}

	dst := image.NewPaletted(image.Rect(0, 0, Width*scale, Height*scale), Palette)
	xdraw.NearestNeighbor.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Src, nil)
	return dst
}

// WritePNG writes a scaled screenshot to w.
func (b *Buffer) WritePNG(w io.Writer, scale int) error {
	return png.Encode(w, b.Image(scale))
}
