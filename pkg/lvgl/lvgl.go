// Package lvgl is a memory-safe bridge to the LVGL native GUI toolkit.
//
// The native toolkit owns every widget: objects live in a tree on the native
// heap, deleting a parent silently destroys its descendants, and callbacks are
// registered as C function pointer + opaque userdata pairs. This package wraps
// that model in ordinary Go idioms — handles that fail with errors instead of
// dereferencing freed memory, closures for event callbacks, and driver
// interfaces for display and input devices.
//
// # Initialization
//
// All operations hang off a UI token returned by [Init]:
//
//	abi, err := bind.Load("liblvgl.so")
//	if err != nil { ... }
//	ui, err := lvgl.Init(abi)
//
// Tests and headless use pass an emulated ABI instead (package emul).
//
// # Threading
//
// The native toolkit is single-threaded and not reentrant. Init locks the
// calling goroutine to its OS thread and every subsequent bridge call must
// happen on that thread; calls from elsewhere are rejected with an error and
// reported to the error handler rather than corrupting native state. Other
// goroutines must marshal work to the owning one.
//
// # Liveness
//
// A handle does not know when the native side destroys its object (deleting a
// parent invalidates a whole subtree in one native call), so every operation
// first re-queries the native existence check. Operations on destroyed objects
// fail with a KindStale error; they never touch freed native memory.
package lvgl

import (
	stderrors "errors"
	"runtime"
	"time"

	"github.com/embedkit/lvgo/pkg/bind"
	"github.com/embedkit/lvgo/pkg/errors"
)

// UI is the context token for a running bridge. All handles, styles and
// drivers are scoped to the UI they were created from.
type UI struct {
	abi *bind.ABI
	tid int

	// One native thunk per callback role, minted at Init. Native callback
	// slots are finite, so these are the only function pointers the bridge
	// ever registers; everything else goes through the userdata-keyed tables.
	eventThunk  bind.Callback
	deleteThunk bind.Callback
	flushThunk  bind.Callback
	readThunk   bind.Callback

	regs     *callbackTable
	styles   map[uintptr]*styleRec
	displays map[uintptr]*Display
	indevs   map[uintptr]*InputDevice

	// Driver contract violations collected during the current tick.
	violations []error
}

// Init initializes the native toolkit and returns the UI token all other
// operations are defined relative to. It locks the calling goroutine to its
// OS thread; that thread owns the bridge from then on.
//
// With a loaded native library only one UI may exist per process (the toolkit
// keeps process-global state). Emulated ABIs are independent and a fresh UI
// can be created per emulation core.
func Init(abi *bind.ABI) (*UI, error) {
	const op = "lvgl.Init"
	if abi == nil {
		return nil, errors.Newf(op, errors.KindInit, "nil ABI")
	}
	runtime.LockOSThread()

	ui := &UI{
		abi:      abi,
		regs:     newCallbackTable(),
		styles:   make(map[uintptr]*styleRec),
		displays: make(map[uintptr]*Display),
		indevs:   make(map[uintptr]*InputDevice),
	}
	abi.Init()
	ui.tid = threadID()
	ui.eventThunk = abi.NewEventCallback(ui.dispatchEvent)
	ui.deleteThunk = abi.NewEventCallback(ui.dispatchDelete)
	ui.flushThunk = abi.NewFlushCallback(ui.dispatchFlush)
	ui.readThunk = abi.NewReadCallback(ui.dispatchRead)
	return ui, nil
}

// guard rejects calls before Init and calls from a non-owning thread.
func (ui *UI) guard(op string) error {
	if ui == nil || ui.abi == nil {
		return errors.Newf(op, errors.KindInit, "bridge not initialized")
	}
	if ui.tid != 0 {
		if tid := threadID(); tid != 0 && tid != ui.tid {
			err := errors.Newf(op, errors.KindInit,
				"called from thread %d, bridge is owned by thread %d", tid, ui.tid)
			errors.Report(err)
			return err
		}
	}
	return nil
}

// Tick advances the native toolkit's clock. Call it with the elapsed time
// between iterations of the caller's loop.
func (ui *UI) Tick(elapsed time.Duration) error {
	const op = "lvgl.UI.Tick"
	if err := ui.guard(op); err != nil {
		return err
	}
	ui.abi.TickInc(uint32(elapsed.Milliseconds()))
	return nil
}

// RunTasks runs one native task-processing pass: input devices are polled,
// queued events fire synchronously through registered closures, and dirty
// regions are flushed to display drivers — all on the calling goroutine
// before RunTasks returns.
//
// The returned duration is the native side's requested delay before the next
// call. Driver contract violations that occurred during the pass are joined
// into the returned error; they do not stop this or future passes.
func (ui *UI) RunTasks() (time.Duration, error) {
	const op = "lvgl.UI.RunTasks"
	if err := ui.guard(op); err != nil {
		return 0, err
	}
	ms := ui.abi.TimerHandler()
	var err error
	if len(ui.violations) > 0 {
		err = stderrors.Join(ui.violations...)
		ui.violations = nil
	}
	return time.Duration(ms) * time.Millisecond, err
}

// noteViolation records a driver contract violation for the current tick and
// reports it to the global handler.
func (ui *UI) noteViolation(err *errors.BridgeError) {
	errors.Report(err)
	ui.violations = append(ui.violations, err)
}

// ActiveScreen returns a handle to the currently active root object. Screen
// handles have the same staleness semantics as any other handle but are
// created and destroyed by the native side (a display brings its screen with
// it).
func (ui *UI) ActiveScreen() (Obj, error) {
	const op = "lvgl.UI.ActiveScreen"
	if err := ui.guard(op); err != nil {
		return Obj{}, err
	}
	raw := ui.abi.ScreenActive()
	if raw == 0 {
		return Obj{}, errors.Newf(op, errors.KindInit, "no active screen; register a display first")
	}
	return Obj{ui: ui, raw: raw}, nil
}

// NewScreen creates a new root object. It does not become active until
// LoadScreen.
func (ui *UI) NewScreen() (Obj, error) {
	const op = "lvgl.UI.NewScreen"
	if err := ui.guard(op); err != nil {
		return Obj{}, err
	}
	raw := ui.abi.ObjCreate(0)
	if raw == 0 {
		return Obj{}, errors.Newf(op, errors.KindAlloc, "native allocation failed")
	}
	return Obj{ui: ui, raw: raw}, nil
}

// LoadScreen makes screen the active root.
func (ui *UI) LoadScreen(screen Obj) error {
	const op = "lvgl.UI.LoadScreen"
	if err := screen.live(op); err != nil {
		return err
	}
	ui.abi.ScreenLoad(screen.raw)
	return nil
}
