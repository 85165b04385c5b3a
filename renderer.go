package main

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.2/glfw"

	"github.com/mpingram/chip8vm/screen"
)

var (
	onColor  = [4]byte{0xff, 0xff, 0xff, 0xff}
	offColor = [4]byte{0x00, 0x00, 0x00, 0xff}
)

// OpenGLRenderer uploads each frame to a 64x32 texture and blits it,
// scaled up, onto the window.
type OpenGLRenderer struct {
	window *glfw.Window
	tex    uint32
	fbo    uint32
	pixels []byte
}

// NewOpenGLRenderer needs the window's context to be current.
func NewOpenGLRenderer(window *glfw.Window) (*OpenGLRenderer, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("opengl: %w", err)
	}

	r := &OpenGLRenderer{
		window: window,
		pixels: make([]byte, 0, screen.Width*screen.Height*4),
	}

	gl.GenTextures(1, &r.tex)
	gl.BindTexture(gl.TEXTURE_2D, r.tex)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, screen.Width, screen.Height, 0, gl.RGBA, gl.UNSIGNED_BYTE, nil)

	gl.GenFramebuffers(1, &r.fbo)
	gl.BindFramebuffer(gl.READ_FRAMEBUFFER, r.fbo)
	gl.FramebufferTexture2D(gl.READ_FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.TEXTURE_2D, r.tex, 0)
	if status := gl.CheckFramebufferStatus(gl.READ_FRAMEBUFFER); status != gl.FRAMEBUFFER_COMPLETE {
		return nil, fmt.Errorf("opengl: framebuffer incomplete: %#x", status)
	}

	return r, nil
}

func (r *OpenGLRenderer) Render(f screen.Frame) {
	r.pixels = f.RGBA(r.pixels[:0], onColor, offColor)

	gl.BindTexture(gl.TEXTURE_2D, r.tex)
	gl.TexSubImage2D(gl.TEXTURE_2D, 0, 0, 0, screen.Width, screen.Height, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(r.pixels))

	w, h := r.window.GetFramebufferSize()
	gl.BindFramebuffer(gl.READ_FRAMEBUFFER, r.fbo)
	gl.BindFramebuffer(gl.DRAW_FRAMEBUFFER, 0)
	// Texture row 0 is the top of the screen but GL counts from the
	// bottom, so blit upside down.
	gl.BlitFramebuffer(0, 0, screen.Width, screen.Height, 0, int32(h), int32(w), 0, gl.COLOR_BUFFER_BIT, gl.NEAREST)

	r.window.SwapBuffers()
}

func (r *OpenGLRenderer) Delete() {
	gl.DeleteFramebuffers(1, &r.fbo)
	gl.DeleteTextures(1, &r.tex)
}
