package lvgl

import (
	"image"
	"runtime"
	"unsafe"

	"github.com/embedkit/lvgo/pkg/bind"
	"github.com/embedkit/lvgo/pkg/errors"
)

// DisplayDriver is the contract a display collaborator implements.
//
// Flush is invoked synchronously from [UI.RunTasks], once per dirty rectangle
// of a redraw pass. pixels holds region's rows in the pinned build's RGB565
// format, row-major, and is only valid until done is called. The driver must
// call done exactly once — before returning, or later from the owning thread
// once an asynchronous transfer finishes; the native side blocks further
// rendering until then, so a driver that never completes stalls redraw (it
// does not corrupt anything, and RunTasks keeps working otherwise).
type DisplayDriver interface {
	// Size returns the fixed resolution in pixels.
	Size() (width, height int)
	// Flush pushes one dirty region to the device.
	Flush(region image.Rectangle, pixels []byte, done func())
}

// Display is a registered display device. It owns the native draw buffer
// handed to the toolkit at registration; the buffer stays allocated and
// pinned until Close.
type Display struct {
	ui     *UI
	raw    uintptr
	drv    DisplayDriver
	buf    []byte
	pin    runtime.Pinner
	closed bool
}

type displayOpts struct {
	bufferLines int
}

// DisplayOption configures RegisterDisplay.
type DisplayOption func(*displayOpts)

// WithBufferLines sets the draw buffer height in lines. Smaller buffers mean
// less memory and more Flush calls per pass. The default is a full-frame
// buffer.
func WithBufferLines(n int) DisplayOption {
	return func(o *displayOpts) { o.bufferLines = n }
}

// RegisterDisplay creates a native display backed by drv and allocates its
// draw buffer. The driver will receive Flush calls from RunTasks until the
// returned Display is closed.
func (ui *UI) RegisterDisplay(drv DisplayDriver, opts ...DisplayOption) (*Display, error) {
	const op = "lvgl.UI.RegisterDisplay"
	if err := ui.guard(op); err != nil {
		return nil, err
	}
	if drv == nil {
		return nil, errors.Newf(op, errors.KindDriver, "nil driver")
	}
	w, h := drv.Size()
	if w <= 0 || h <= 0 {
		return nil, errors.Newf(op, errors.KindDriver, "driver reported invalid size %dx%d", w, h)
	}

	var o displayOpts
	for _, opt := range opts {
		opt(&o)
	}
	lines := o.bufferLines
	if lines <= 0 || lines > h {
		lines = h
	}

	raw := ui.abi.DisplayCreate(int32(w), int32(h))
	if raw == 0 {
		return nil, errors.Newf(op, errors.KindAlloc, "native display allocation failed")
	}

	d := &Display{ui: ui, raw: raw, drv: drv, buf: make([]byte, w*lines*bind.BytesPerPixel)}
	d.pin.Pin(&d.buf[0])
	ui.displays[raw] = d

	ui.abi.DisplaySetBuffers(raw, uintptr(unsafe.Pointer(&d.buf[0])), 0,
		uint32(len(d.buf)), bind.RenderModePartial)
	ui.abi.DisplaySetFlushCB(raw, ui.flushThunk)
	return d, nil
}

// Resolution returns the native display resolution.
func (d *Display) Resolution() (int, int) {
	if d == nil || d.closed {
		return 0, 0
	}
	return int(d.ui.abi.DisplayGetHorRes(d.raw)), int(d.ui.abi.DisplayGetVerRes(d.raw))
}

// Close deregisters the display and releases its draw buffer. Deregistration
// happens natively before the buffer is freed, so the toolkit can never flush
// into released memory. Screens owned by the display are destroyed with it;
// their handles go stale.
func (d *Display) Close() error {
	const op = "lvgl.Display.Close"
	if err := d.ui.guard(op); err != nil {
		return err
	}
	if d.closed {
		return nil
	}
	d.closed = true
	delete(d.ui.displays, d.raw)
	d.ui.abi.DisplayDelete(d.raw)
	d.pin.Unpin()
	d.buf = nil
	return nil
}

// dispatchFlush is the flush trampoline. It reslices the native pixel map
// into the dirty region's bytes and hands it to the driver together with a
// completion func that forwards to the native flush-ready signal.
func (ui *UI) dispatchFlush(disp uintptr, area *bind.Area, pxMap uintptr) {
	const op = "lvgl.flushTrampoline"
	d := ui.displays[disp]
	if d == nil || d.closed {
		ui.noteViolation(errors.Newf(op, errors.KindDriver, "flush for unregistered display %#x", disp))
		ui.abi.DisplayFlushReady(disp)
		return
	}

	region := image.Rect(int(area.X1), int(area.Y1), int(area.X2)+1, int(area.Y2)+1)
	n := region.Dx() * region.Dy() * bind.BytesPerPixel
	pixels := unsafe.Slice((*byte)(unsafe.Pointer(pxMap)), n)

	completed := false
	done := func() {
		if completed || d.closed {
			return
		}
		completed = true
		ui.abi.DisplayFlushReady(disp)
	}

	defer func() {
		if r := recover(); r != nil {
			errors.ReportPanic(&errors.PanicError{Op: op, Value: r, StackTrace: errors.CaptureStack()})
			ui.noteViolation(errors.Newf(op, errors.KindDriver, "display driver panicked: %v", r))
			// Complete on the driver's behalf so the native loop is not
			// wedged by a crashing driver.
			done()
		}
	}()
	d.drv.Flush(region, pixels, done)
}
