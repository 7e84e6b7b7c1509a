package scriptindev

import (
	"testing"

	"github.com/embedkit/lvgo/pkg/lvgl"
)

func TestTapScript(t *testing.T) {
	d := New(Tap(10, 20, 2)...)

	want := []lvgl.Sample{
		{X: 10, Y: 20, Pressed: true},
		{X: 10, Y: 20, Pressed: true},
		{X: 10, Y: 20, Pressed: false},
	}
	for i, w := range want {
		s, ok := d.Poll()
		if !ok {
			t.Fatalf("poll %d: script ended early", i)
		}
		if s != w {
			t.Fatalf("poll %d = %+v, want %+v", i, s, w)
		}
	}
	if !d.Done() {
		t.Fatal("script should be exhausted")
	}
	if _, ok := d.Poll(); ok {
		t.Fatal("exhausted script must report no change")
	}
}

func TestAppendRestartsExhaustedScript(t *testing.T) {
	d := New()
	if _, ok := d.Poll(); ok {
		t.Fatal("empty script should report no change")
	}

	d.Append(Step{Sample: lvgl.Sample{X: 1, Y: 2, Pressed: true}, Polls: 1})
	s, ok := d.Poll()
	if !ok || s.X != 1 || s.Y != 2 || !s.Pressed {
		t.Fatalf("poll after append = %+v ok=%v", s, ok)
	}
	if !d.Done() {
		t.Fatal("script should be exhausted again")
	}
}
