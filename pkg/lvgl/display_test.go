package lvgl

import (
	"image"
	"testing"

	"github.com/embedkit/lvgo/pkg/errors"
)

// fakeDisplay records flushes and can withhold or crash the completion path.
type fakeDisplay struct {
	w, h      int
	flushes   []image.Rectangle
	sizes     []int
	holdDone  bool
	held      func()
	panicNext bool
}

func (d *fakeDisplay) Size() (int, int) { return d.w, d.h }

func (d *fakeDisplay) Flush(region image.Rectangle, pixels []byte, done func()) {
	if d.panicNext {
		d.panicNext = false
		panic("flush boom")
	}
	d.flushes = append(d.flushes, region)
	d.sizes = append(d.sizes, len(pixels))
	if d.holdDone {
		d.held = done
		return
	}
	done()
}

func TestRegisterDisplayValidation(t *testing.T) {
	ui, _ := newTestUI(t)
	if _, err := ui.RegisterDisplay(nil); !errors.IsDriver(err) {
		t.Fatalf("nil driver: want driver error, got %v", err)
	}
	if _, err := ui.RegisterDisplay(&fakeDisplay{w: 0, h: 8}); !errors.IsDriver(err) {
		t.Fatalf("zero width: want driver error, got %v", err)
	}
	if _, err := ui.RegisterDisplay(&fakeDisplay{w: 8, h: 8}); err != nil {
		t.Fatal(err)
	}
	// The emulated core models a single display.
	if _, err := ui.RegisterDisplay(&fakeDisplay{w: 8, h: 8}); !errors.IsAlloc(err) {
		t.Fatalf("second display: want alloc error, got %v", err)
	}
}

func TestFullFrameFlush(t *testing.T) {
	ui, core := newTestUI(t)
	drv := &fakeDisplay{w: 8, h: 8}
	d, err := ui.RegisterDisplay(drv)
	if err != nil {
		t.Fatal(err)
	}
	if w, h := d.Resolution(); w != 8 || h != 8 {
		t.Fatalf("resolution = %dx%d, want 8x8", w, h)
	}

	if _, err := ui.RunTasks(); err != nil {
		t.Fatal(err)
	}
	if len(drv.flushes) != 1 {
		t.Fatalf("flushes = %d, want 1 full-frame flush", len(drv.flushes))
	}
	if got, want := drv.flushes[0], image.Rect(0, 0, 8, 8); got != want {
		t.Fatalf("region = %v, want %v", got, want)
	}
	if drv.sizes[0] != 8*8*2 {
		t.Fatalf("pixel bytes = %d, want %d", drv.sizes[0], 8*8*2)
	}
	if core.StalledTicks() != 0 {
		t.Fatalf("stalled ticks = %d, want 0", core.StalledTicks())
	}

	// Nothing changed; a clean frame flushes nothing.
	if _, err := ui.RunTasks(); err != nil {
		t.Fatal(err)
	}
	if len(drv.flushes) != 1 {
		t.Fatalf("flushes after clean frame = %d, want 1", len(drv.flushes))
	}
}

func TestPartialBufferStripes(t *testing.T) {
	ui, _ := newTestUI(t)
	drv := &fakeDisplay{w: 8, h: 8}
	if _, err := ui.RegisterDisplay(drv, WithBufferLines(2)); err != nil {
		t.Fatal(err)
	}

	if _, err := ui.RunTasks(); err != nil {
		t.Fatal(err)
	}
	if len(drv.flushes) != 4 {
		t.Fatalf("flushes = %d, want 4 stripes", len(drv.flushes))
	}
	for i, r := range drv.flushes {
		want := image.Rect(0, i*2, 8, i*2+2)
		if r != want {
			t.Fatalf("stripe %d = %v, want %v", i, r, want)
		}
		if drv.sizes[i] != 8*2*2 {
			t.Fatalf("stripe %d bytes = %d, want %d", i, drv.sizes[i], 8*2*2)
		}
	}
}

func TestWithheldCompletionStallsRendering(t *testing.T) {
	ui, core := newTestUI(t)
	drv := &fakeDisplay{w: 8, h: 8, holdDone: true}
	if _, err := ui.RegisterDisplay(drv, WithBufferLines(4)); err != nil {
		t.Fatal(err)
	}

	ui.RunTasks()
	if len(drv.flushes) != 1 {
		t.Fatalf("flushes = %d, want 1 (chain blocked)", len(drv.flushes))
	}

	// Redraw cannot progress while the completion is outstanding. Nothing
	// crashes or corrupts; the frame just waits.
	for i := 0; i < 3; i++ {
		if _, err := ui.RunTasks(); err != nil {
			t.Fatal(err)
		}
	}
	if len(drv.flushes) != 1 {
		t.Fatalf("flushes while stalled = %d, want 1", len(drv.flushes))
	}
	if core.StalledTicks() == 0 {
		t.Fatal("stall should be observable")
	}

	// Late completion resumes the stripe chain.
	drv.holdDone = false
	drv.held()
	if len(drv.flushes) != 2 {
		t.Fatalf("flushes after late done = %d, want 2", len(drv.flushes))
	}
}

func TestCompletionIsIdempotent(t *testing.T) {
	ui, _ := newTestUI(t)
	drv := &fakeDisplay{w: 8, h: 8, holdDone: true}
	if _, err := ui.RegisterDisplay(drv); err != nil {
		t.Fatal(err)
	}
	ui.RunTasks()
	done := drv.held
	drv.holdDone = false
	done()
	done() // second call must be a no-op
	if len(drv.flushes) != 1 {
		t.Fatalf("flushes = %d, want 1", len(drv.flushes))
	}
	if _, err := ui.RunTasks(); err != nil {
		t.Fatal(err)
	}
}

func TestFlushPanicReportedAndCompleted(t *testing.T) {
	ui, _ := newTestUI(t)
	h := record(t)
	drv := &fakeDisplay{w: 8, h: 8, panicNext: true}
	if _, err := ui.RegisterDisplay(drv); err != nil {
		t.Fatal(err)
	}

	_, err := ui.RunTasks()
	if !errors.IsDriver(err) {
		t.Fatalf("want driver violation, got %v", err)
	}
	if len(h.panics) != 1 {
		t.Fatalf("reported panics = %d, want 1", len(h.panics))
	}

	// The bridge completed the flush on the driver's behalf, so the next
	// frame renders normally.
	scr, _ := ui.ActiveScreen()
	obj, _ := ui.NewObj(scr)
	obj.SetSize(4, 4)
	if _, err := ui.RunTasks(); err != nil {
		t.Fatal(err)
	}
	if len(drv.flushes) == 0 {
		t.Fatal("rendering should continue after a contained driver panic")
	}
}

func TestCloseDisplay(t *testing.T) {
	ui, _ := newTestUI(t)
	drv := &fakeDisplay{w: 8, h: 8}
	d, err := ui.RegisterDisplay(drv)
	if err != nil {
		t.Fatal(err)
	}
	scr, err := ui.ActiveScreen()
	if err != nil {
		t.Fatal(err)
	}

	if err := d.Close(); err != nil {
		t.Fatal(err)
	}
	if err := d.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}

	// The display's screens went with it.
	if scr.Valid() {
		t.Fatal("screen should be stale after display close")
	}
	if _, err := ui.RunTasks(); err != nil {
		t.Fatal(err)
	}
	if len(drv.flushes) != 0 {
		t.Fatalf("flushes after close = %d, want 0", len(drv.flushes))
	}
}
