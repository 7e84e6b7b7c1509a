package errors

import (
	"fmt"
	"testing"
)

func TestKindString(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{KindUnknown, "unknown"},
		{KindInit, "init"},
		{KindStale, "stale"},
		{KindInvalidParent, "invalid-parent"},
		{KindAlloc, "alloc"},
		{KindDriver, "driver"},
		{KindNative, "native"},
		{KindPanic, "panic"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("Kind(%d).String() = %q, want %q", tt.kind, got, tt.want)
		}
	}
}

func TestKindOfUnwrapsChain(t *testing.T) {
	inner := New("lvgl.Obj.SetSize", KindStale, fmt.Errorf("object 0x1010 destroyed"))
	wrapped := fmt.Errorf("building settings page: %w", inner)

	if got := KindOf(wrapped); got != KindStale {
		t.Errorf("KindOf(wrapped) = %v, want KindStale", got)
	}
	if !IsStale(wrapped) {
		t.Error("IsStale(wrapped) = false, want true")
	}
	if IsDriver(wrapped) {
		t.Error("IsDriver(wrapped) = true, want false")
	}
}

func TestKindOfPlainError(t *testing.T) {
	if got := KindOf(fmt.Errorf("plain")); got != KindUnknown {
		t.Errorf("KindOf(plain) = %v, want KindUnknown", got)
	}
}

type recordingHandler struct {
	errs   []*BridgeError
	panics []*PanicError
}

func (h *recordingHandler) HandleError(err *BridgeError) { h.errs = append(h.errs, err) }
func (h *recordingHandler) HandlePanic(err *PanicError)  { h.panics = append(h.panics, err) }

func TestRecoverReportsPanic(t *testing.T) {
	h := &recordingHandler{}
	SetHandler(h)
	defer SetHandler(nil)

	func() {
		defer Recover("test.op")
		panic("boom")
	}()

	if len(h.panics) != 1 {
		t.Fatalf("expected 1 recovered panic, got %d", len(h.panics))
	}
	if h.panics[0].Op != "test.op" {
		t.Errorf("panic Op = %q, want %q", h.panics[0].Op, "test.op")
	}
	if h.panics[0].Value != "boom" {
		t.Errorf("panic Value = %v, want \"boom\"", h.panics[0].Value)
	}
	if h.panics[0].StackTrace == "" {
		t.Error("expected non-empty stack trace")
	}
}

func TestReportSetsTimestamp(t *testing.T) {
	h := &recordingHandler{}
	SetHandler(h)
	defer SetHandler(nil)

	Report(&BridgeError{Op: "x", Kind: KindDriver})
	if len(h.errs) != 1 {
		t.Fatalf("expected 1 reported error, got %d", len(h.errs))
	}
	if h.errs[0].Timestamp.IsZero() {
		t.Error("Report should set a timestamp")
	}
}
