package lvgl

import (
	"github.com/embedkit/lvgo/pkg/bind"
	"github.com/embedkit/lvgo/pkg/errors"
)

// Sample is one pointer reading.
type Sample struct {
	X, Y    int
	Pressed bool
}

// InputDriver is the contract a pointer-input collaborator implements. Poll
// is invoked once per task-processing tick on the owning thread. Returning
// ok=false means "no change since last poll"; the bridge then replays the
// previous sample to the native side.
type InputDriver interface {
	Poll() (s Sample, ok bool)
}

// InputDevice is a registered pointer device.
type InputDevice struct {
	ui     *UI
	raw    uintptr
	drv    InputDriver
	last   Sample
	closed bool
}

// Coordinates beyond this are treated as a malformed driver sample.
const maxCoord = 1 << 14

// RegisterPointer creates a native pointer input device polled from RunTasks
// via drv until the returned device is closed.
func (ui *UI) RegisterPointer(drv InputDriver) (*InputDevice, error) {
	const op = "lvgl.UI.RegisterPointer"
	if err := ui.guard(op); err != nil {
		return nil, err
	}
	if drv == nil {
		return nil, errors.Newf(op, errors.KindDriver, "nil driver")
	}
	raw := ui.abi.IndevCreate()
	if raw == 0 {
		return nil, errors.Newf(op, errors.KindAlloc, "native input device allocation failed")
	}
	dev := &InputDevice{ui: ui, raw: raw, drv: drv}
	ui.indevs[raw] = dev
	ui.abi.IndevSetType(raw, bind.IndevTypePointer)
	ui.abi.IndevSetReadCB(raw, ui.readThunk)
	return dev, nil
}

// Close deregisters the device. The driver is not polled again afterward.
func (dev *InputDevice) Close() error {
	const op = "lvgl.InputDevice.Close"
	if err := dev.ui.guard(op); err != nil {
		return err
	}
	if dev.closed {
		return nil
	}
	dev.closed = true
	delete(dev.ui.indevs, dev.raw)
	dev.ui.abi.IndevDelete(dev.raw)
	return nil
}

// dispatchRead is the input trampoline. It polls the driver, validates the
// sample, and writes it into the native input record. A malformed sample or
// a panicking driver yields a driver violation; the previous good sample is
// replayed so one bad tick cannot inject garbage coordinates.
func (ui *UI) dispatchRead(indev uintptr, data *bind.IndevData) {
	const op = "lvgl.readTrampoline"
	dev := ui.indevs[indev]
	if dev == nil || dev.closed {
		ui.noteViolation(errors.Newf(op, errors.KindDriver, "read for unregistered device %#x", indev))
		return
	}

	defer func() {
		if r := recover(); r != nil {
			errors.ReportPanic(&errors.PanicError{Op: op, Value: r, StackTrace: errors.CaptureStack()})
			ui.noteViolation(errors.Newf(op, errors.KindDriver, "input driver panicked: %v", r))
			writeSample(data, dev.last)
		}
	}()

	s, ok := dev.drv.Poll()
	if !ok {
		s = dev.last
	} else if s.X < 0 || s.Y < 0 || s.X >= maxCoord || s.Y >= maxCoord {
		ui.noteViolation(errors.Newf(op, errors.KindDriver, "malformed input sample (%d,%d)", s.X, s.Y))
		s = dev.last
	} else {
		dev.last = s
	}
	writeSample(data, s)
}

func writeSample(data *bind.IndevData, s Sample) {
	data.Point = bind.Point{X: int32(s.X), Y: int32(s.Y)}
	if s.Pressed {
		data.State = bind.IndevStatePressed
	} else {
		data.State = bind.IndevStateReleased
	}
}
