package lvgl

import (
	"testing"
	"time"

	"github.com/embedkit/lvgo/pkg/emul"
	"github.com/embedkit/lvgo/pkg/errors"
)

func newTestUI(t *testing.T) (*UI, *emul.Core) {
	t.Helper()
	core := emul.New()
	ui, err := Init(core.ABI())
	if err != nil {
		t.Fatalf("Init: %v", err)
	}
	return ui, core
}

// recordingHandler captures reported errors and panics for assertions.
type recordingHandler struct {
	errs   []*errors.BridgeError
	panics []*errors.PanicError
}

func (h *recordingHandler) HandleError(err *errors.BridgeError) { h.errs = append(h.errs, err) }
func (h *recordingHandler) HandlePanic(err *errors.PanicError) { h.panics = append(h.panics, err) }

func record(t *testing.T) *recordingHandler {
	t.Helper()
	h := &recordingHandler{}
	errors.SetHandler(h)
	t.Cleanup(func() { errors.SetHandler(nil) })
	return h
}

func TestInitNilABI(t *testing.T) {
	_, err := Init(nil)
	if !errors.IsInit(err) {
		t.Fatalf("want init error, got %v", err)
	}
}

func TestOperationsBeforeInit(t *testing.T) {
	var o Obj
	if err := o.SetPos(1, 2); !errors.IsInit(err) {
		t.Fatalf("zero handle SetPos: want init error, got %v", err)
	}
	var ui *UI
	if _, err := ui.NewScreen(); !errors.IsInit(err) {
		t.Fatalf("nil UI NewScreen: want init error, got %v", err)
	}
}

func TestActiveScreenRequiresDisplay(t *testing.T) {
	ui, _ := newTestUI(t)
	if _, err := ui.ActiveScreen(); !errors.IsInit(err) {
		t.Fatalf("want init error, got %v", err)
	}
}

func TestTickAdvancesClock(t *testing.T) {
	ui, core := newTestUI(t)
	if err := ui.Tick(15 * time.Millisecond); err != nil {
		t.Fatal(err)
	}
	if err := ui.Tick(5 * time.Millisecond); err != nil {
		t.Fatal(err)
	}
	if got := core.Ticks(); got != 20 {
		t.Fatalf("ticks = %d, want 20", got)
	}
}

func TestRunTasksReturnsDelay(t *testing.T) {
	ui, _ := newTestUI(t)
	delay, err := ui.RunTasks()
	if err != nil {
		t.Fatal(err)
	}
	if delay <= 0 {
		t.Fatalf("delay = %v, want > 0", delay)
	}
}

func TestLoadScreenSwitchesActive(t *testing.T) {
	ui, _ := newTestUI(t)
	if _, err := ui.RegisterDisplay(&fakeDisplay{w: 8, h: 8}); err != nil {
		t.Fatal(err)
	}
	scr, err := ui.NewScreen()
	if err != nil {
		t.Fatal(err)
	}
	if err := ui.LoadScreen(scr); err != nil {
		t.Fatal(err)
	}
	active, err := ui.ActiveScreen()
	if err != nil {
		t.Fatal(err)
	}
	if active.Raw() != scr.Raw() {
		t.Fatalf("active = %#x, want %#x", active.Raw(), scr.Raw())
	}
}
