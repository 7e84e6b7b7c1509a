// Package memdisplay is an in-memory display driver. It accumulates flushed
// regions into an RGBA framebuffer that can be inspected, scaled, or written
// out as PNG — the backend for headless simulation and for asserting on
// rendered output in tests.
package memdisplay

import (
	"encoding/binary"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"

	"golang.org/x/image/draw"

	"github.com/embedkit/lvgo/pkg/bind"
)

// Display implements the bridge's display driver contract against an
// in-memory framebuffer. Like the bridge itself it is single-threaded: Flush
// and the inspection methods must run on the owning thread.
type Display struct {
	w, h   int
	frame  *image.RGBA
	frames int
}

// New returns a display of the given resolution with a black framebuffer.
func New(w, h int) *Display {
	return &Display{w: w, h: h, frame: image.NewRGBA(image.Rect(0, 0, w, h))}
}

// Size returns the configured resolution.
func (d *Display) Size() (int, int) { return d.w, d.h }

// Flush decodes the region's RGB565 pixels into the framebuffer and completes
// synchronously.
func (d *Display) Flush(region image.Rectangle, pixels []byte, done func()) {
	i := 0
	for y := region.Min.Y; y < region.Max.Y; y++ {
		for x := region.Min.X; x < region.Max.X; x++ {
			px := binary.LittleEndian.Uint16(pixels[i:])
			i += bind.BytesPerPixel
			r, g, b := bind.FromRGB565(px)
			d.frame.SetRGBA(x, y, color.RGBA{R: r, G: g, B: b, A: 0xff})
		}
	}
	if region.Max.X >= d.w && region.Max.Y >= d.h {
		d.frames++
	}
	done()
}

// FrameCount returns how many complete frames have been flushed (a frame ends
// with the stripe touching the bottom-right corner).
func (d *Display) FrameCount() int { return d.frames }

// At returns the framebuffer color at (x, y).
func (d *Display) At(x, y int) color.RGBA { return d.frame.RGBAAt(x, y) }

// Frame returns a copy of the current framebuffer.
func (d *Display) Frame() *image.RGBA {
	out := image.NewRGBA(d.frame.Rect)
	copy(out.Pix, d.frame.Pix)
	return out
}

// Scaled returns the framebuffer enlarged by an integer factor, with hard
// pixel edges.
func (d *Display) Scaled(factor int) *image.RGBA {
	if factor <= 1 {
		return d.Frame()
	}
	out := image.NewRGBA(image.Rect(0, 0, d.w*factor, d.h*factor))
	draw.NearestNeighbor.Scale(out, out.Rect, d.frame, d.frame.Rect, draw.Src, nil)
	return out
}

// WritePNG encodes the current framebuffer, scaled by factor, to w.
func (d *Display) WritePNG(w io.Writer, factor int) error {
	return png.Encode(w, d.Scaled(factor))
}

// SavePNG writes the current framebuffer to a file.
func (d *Display) SavePNG(path string, factor int) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := d.WritePNG(f, factor); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
