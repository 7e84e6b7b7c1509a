package memdisplay

import (
	"bytes"
	"encoding/binary"
	"image"
	"image/png"
	"testing"

	"github.com/embedkit/lvgo/pkg/bind"
)

func stripe(c bind.Color, n int) []byte {
	buf := make([]byte, n*bind.BytesPerPixel)
	for i := 0; i < n; i++ {
		binary.LittleEndian.PutUint16(buf[i*2:], c.RGB565())
	}
	return buf
}

func TestFlushDecodesPixels(t *testing.T) {
	d := New(4, 4)
	red := bind.Color{Red: 0xf8}

	completed := false
	d.Flush(image.Rect(0, 0, 4, 2), stripe(red, 8), func() { completed = true })
	if !completed {
		t.Fatal("done not called")
	}

	if got := d.At(2, 1); got.R != 0xf8 || got.G != 0 || got.B != 0 {
		t.Fatalf("pixel in flushed region = %v", got)
	}
	if got := d.At(2, 3); got.R != 0 {
		t.Fatalf("pixel outside region = %v, want untouched", got)
	}
	if d.FrameCount() != 0 {
		t.Fatalf("frames = %d, bottom stripe not flushed yet", d.FrameCount())
	}

	d.Flush(image.Rect(0, 2, 4, 4), stripe(red, 8), func() {})
	if d.FrameCount() != 1 {
		t.Fatalf("frames = %d, want 1 after closing stripe", d.FrameCount())
	}
}

func TestScaled(t *testing.T) {
	d := New(2, 2)
	d.Flush(image.Rect(0, 0, 2, 2), stripe(bind.Color{Green: 0xfc}, 4), func() {})

	img := d.Scaled(3)
	if img.Rect.Dx() != 6 || img.Rect.Dy() != 6 {
		t.Fatalf("scaled bounds = %v, want 6x6", img.Rect)
	}
	if got := img.RGBAAt(5, 5); got.G != 0xfc {
		t.Fatalf("scaled pixel = %v", got)
	}
}

func TestWritePNG(t *testing.T) {
	d := New(3, 3)
	var buf bytes.Buffer
	if err := d.WritePNG(&buf, 2); err != nil {
		t.Fatal(err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 6 || b.Dy() != 6 {
		t.Fatalf("decoded bounds = %v", b)
	}
}
