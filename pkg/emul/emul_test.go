package emul

import (
	"testing"
	"unsafe"

	"github.com/embedkit/lvgo/pkg/bind"
)

func uintptrOf(b []byte) uintptr {
	return uintptr(unsafe.Pointer(&b[0]))
}

func TestCascadeDeleteFiresDeleteEvents(t *testing.T) {
	c := New()
	abi := c.ABI()

	parent := abi.ObjCreate(0)
	child := abi.ObjCreate(parent)
	grandchild := abi.ObjCreate(child)

	var deleted []uintptr
	cb := abi.NewEventCallback(func(e uintptr) {
		deleted = append(deleted, abi.EventGetTarget(e))
	})
	for _, addr := range []uintptr{parent, child, grandchild} {
		abi.ObjAddEventCB(addr, cb, bind.EventDelete, 0)
	}

	abi.ObjDelete(parent)

	if len(deleted) != 3 {
		t.Fatalf("expected 3 delete events, got %d", len(deleted))
	}
	// Parent-first destructor order.
	if deleted[0] != parent || deleted[1] != child || deleted[2] != grandchild {
		t.Errorf("delete order = %v, want [parent child grandchild]", deleted)
	}
	for _, addr := range []uintptr{parent, child, grandchild} {
		if abi.ObjIsValid(addr) {
			t.Errorf("object %#x still valid after cascade delete", addr)
		}
	}
}

func TestAdditiveRegistrationOrder(t *testing.T) {
	c := New()
	abi := c.ABI()
	obj := abi.ObjCreate(0)

	var order []int
	first := abi.NewEventCallback(func(uintptr) { order = append(order, 1) })
	second := abi.NewEventCallback(func(uintptr) { order = append(order, 2) })
	abi.ObjAddEventCB(obj, first, bind.EventClicked, 0)
	abi.ObjAddEventCB(obj, second, bind.EventClicked, 0)

	if !c.Emit(obj, bind.EventClicked) {
		t.Fatal("Emit returned false for a live object")
	}
	if len(order) != 2 || order[0] != 1 || order[1] != 2 {
		t.Errorf("dispatch order = %v, want [1 2]", order)
	}
}

func TestRemoveEventCB(t *testing.T) {
	c := New()
	abi := c.ABI()
	obj := abi.ObjCreate(0)

	calls := 0
	cb := abi.NewEventCallback(func(uintptr) { calls++ })
	abi.ObjAddEventCB(obj, cb, bind.EventClicked, 7)

	if !abi.ObjRemoveEventCB(obj, cb, 7) {
		t.Fatal("ObjRemoveEventCB returned false for a registered callback")
	}
	c.Emit(obj, bind.EventClicked)
	if calls != 0 {
		t.Errorf("removed callback still fired %d times", calls)
	}
}

func TestFlushReadyDrivesStripeChain(t *testing.T) {
	c := New()
	abi := c.ABI()
	const w, h = 8, 8

	disp := abi.DisplayCreate(w, h)
	if disp == 0 {
		t.Fatal("DisplayCreate returned null")
	}
	// Two-line buffer: four stripes per frame.
	buf := make([]byte, w*2*bind.BytesPerPixel)

	var flushes []bind.Area
	flush := abi.NewFlushCallback(func(d uintptr, area *bind.Area, px uintptr) {
		flushes = append(flushes, *area)
		abi.DisplayFlushReady(d)
	})
	abi.DisplaySetBuffers(disp, uintptrOf(buf), 0, uint32(len(buf)), bind.RenderModePartial)
	abi.DisplaySetFlushCB(disp, flush)

	abi.TimerHandler()

	if len(flushes) != 4 {
		t.Fatalf("expected 4 stripe flushes, got %d", len(flushes))
	}
	if flushes[0].Y1 != 0 || flushes[3].Y2 != h-1 {
		t.Errorf("stripes do not cover screen: first=%+v last=%+v", flushes[0], flushes[3])
	}

	// Clean frame: no further flushes until something invalidates.
	n := len(flushes)
	abi.TimerHandler()
	if len(flushes) != n {
		t.Errorf("clean frame still flushed (%d -> %d)", n, len(flushes))
	}
}

func TestMissingFlushReadyStallsRendering(t *testing.T) {
	c := New()
	abi := c.ABI()
	const w, h = 8, 8

	disp := abi.DisplayCreate(w, h)
	buf := make([]byte, w*h*bind.BytesPerPixel)

	flushes := 0
	flush := abi.NewFlushCallback(func(uintptr, *bind.Area, uintptr) {
		flushes++ // never acknowledges
	})
	abi.DisplaySetBuffers(disp, uintptrOf(buf), 0, uint32(len(buf)), bind.RenderModePartial)
	abi.DisplaySetFlushCB(disp, flush)

	for i := 0; i < 5; i++ {
		abi.TimerHandler()
		abi.ObjInvalidate(c.active)
	}
	if flushes != 1 {
		t.Errorf("expected rendering to stall after 1 flush, got %d", flushes)
	}
	if c.StalledTicks() == 0 {
		t.Error("expected stalled ticks to be recorded")
	}
}

func TestPointerClickSynthesis(t *testing.T) {
	c := New()
	abi := c.ABI()
	const w, h = 32, 32

	abi.DisplayCreate(w, h)
	btn := abi.ButtonCreate(c.active)
	abi.ObjSetPos(btn, 4, 4)
	abi.ObjSetSize(btn, 10, 10)

	var codes []uint32
	cb := abi.NewEventCallback(func(e uintptr) { codes = append(codes, abi.EventGetCode(e)) })
	abi.ObjAddEventCB(btn, cb, bind.EventAll, 0)

	samples := []bind.IndevData{
		{Point: bind.Point{X: 8, Y: 8}, State: bind.IndevStatePressed},
		{Point: bind.Point{X: 8, Y: 8}, State: bind.IndevStateReleased},
	}
	i := 0
	read := abi.NewReadCallback(func(_ uintptr, data *bind.IndevData) {
		if i < len(samples) {
			*data = samples[i]
			i++
		}
	})
	indev := abi.IndevCreate()
	abi.IndevSetType(indev, bind.IndevTypePointer)
	abi.IndevSetReadCB(indev, read)

	abi.TimerHandler()
	abi.TimerHandler()

	want := []uint32{bind.EventPressed, bind.EventReleased, bind.EventClicked}
	if len(codes) != len(want) {
		t.Fatalf("event codes = %v, want %v", codes, want)
	}
	for j := range want {
		if codes[j] != want[j] {
			t.Errorf("codes[%d] = %d, want %d", j, codes[j], want[j])
		}
	}
}
