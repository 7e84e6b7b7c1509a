package lvgl

import (
	"testing"

	"github.com/embedkit/lvgo/pkg/errors"
)

func TestStyleSurvivesWidgetDestruction(t *testing.T) {
	ui, core := newTestUI(t)
	scr, _ := ui.NewScreen()
	btn, _ := ui.NewButton(scr)

	st, err := ui.NewStyle()
	if err != nil {
		t.Fatal(err)
	}
	if err := st.SetBgColor(Hex(0x3366cc)); err != nil {
		t.Fatal(err)
	}
	if err := btn.Obj.AddStyle(st, PartMain); err != nil {
		t.Fatal(err)
	}

	if err := btn.Delete(); err != nil {
		t.Fatal(err)
	}

	// The arena keeps the style alive regardless of referencing widgets.
	if got := core.LiveStyleCount(); got != 1 {
		t.Fatalf("live styles = %d, want 1", got)
	}
	if err := st.SetRadius(4); err != nil {
		t.Fatalf("style use after widget destroy: %v", err)
	}
	other, _ := ui.NewButton(scr)
	if err := other.Obj.AddStyle(st, PartMain); err != nil {
		t.Fatalf("re-applying retained style: %v", err)
	}
}

func TestStyleSetters(t *testing.T) {
	ui, _ := newTestUI(t)
	st, err := ui.NewStyle()
	if err != nil {
		t.Fatal(err)
	}
	for _, set := range []func() error{
		func() error { return st.SetBgColor(RGB(10, 20, 30)) },
		func() error { return st.SetBgOpa(200) },
		func() error { return st.SetTextColor(Hex(0xffffff)) },
		func() error { return st.SetBorderColor(Hex(0x000000)) },
		func() error { return st.SetBorderWidth(2) },
		func() error { return st.SetRadius(8) },
		func() error { return st.SetPadAll(6) },
	} {
		if err := set(); err != nil {
			t.Fatal(err)
		}
	}
}

func TestRetireStyle(t *testing.T) {
	ui, core := newTestUI(t)
	scr, _ := ui.NewScreen()
	obj, _ := ui.NewObj(scr)

	st, _ := ui.NewStyle()
	if err := ui.RetireStyle(st); err != nil {
		t.Fatal(err)
	}
	if got := core.LiveStyleCount(); got != 0 {
		t.Fatalf("live styles after retire = %d, want 0", got)
	}

	if err := st.SetBgColor(Hex(0xff0000)); !errors.IsStale(err) {
		t.Fatalf("setter on retired style: want stale error, got %v", err)
	}
	if err := obj.AddStyle(st, PartMain); !errors.IsStale(err) {
		t.Fatalf("applying retired style: want stale error, got %v", err)
	}
	if err := ui.RetireStyle(st); !errors.IsStale(err) {
		t.Fatalf("double retire: want stale error, got %v", err)
	}
}

func TestSelectorWithState(t *testing.T) {
	sel := PartKnob.WithState(StatePressed)
	if sel&PartKnob != PartKnob {
		t.Fatal("part bits lost")
	}
	if sel&Selector(StatePressed) == 0 {
		t.Fatal("state bits lost")
	}
}

func TestColorConversions(t *testing.T) {
	c := Hex(0x123456)
	if c.R != 0x12 || c.G != 0x34 || c.B != 0x56 {
		t.Fatalf("Hex = %+v", c)
	}
	n := RGB(1, 2, 3).native()
	if n.Red != 1 || n.Green != 2 || n.Blue != 3 {
		t.Fatalf("native = %+v", n)
	}
}
