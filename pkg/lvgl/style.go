package lvgl

import (
	"runtime"
	"unsafe"

	"github.com/embedkit/lvgo/pkg/bind"
	"github.com/embedkit/lvgo/pkg/errors"
)

// Color is an 8-bit-per-channel RGB color.
type Color struct {
	R, G, B uint8
}

// RGB builds a color from channel values.
func RGB(r, g, b uint8) Color { return Color{R: r, G: g, B: b} }

// Hex builds a color from 0xRRGGBB.
func Hex(v uint32) Color {
	return Color{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}
}

func (c Color) native() bind.Color {
	return bind.Color{Blue: c.B, Green: c.G, Red: c.R}
}

// Selector addresses a part and state combination when applying styles.
type Selector uint32

const (
	PartMain      Selector = Selector(bind.PartMain)
	PartScrollbar Selector = Selector(bind.PartScrollbar)
	PartIndicator Selector = Selector(bind.PartIndicator)
	PartKnob      Selector = Selector(bind.PartKnob)
	PartSelected  Selector = Selector(bind.PartSelected)
	PartItems     Selector = Selector(bind.PartItems)
	PartCursor    Selector = Selector(bind.PartCursor)
)

// WithState narrows the selector to a widget state.
func (s Selector) WithState(st State) Selector {
	return s | Selector(st)
}

// Style is a copyable handle to a shared visual style record.
//
// The native contract is the reason styles get special lifetime treatment: a
// widget stores only a pointer to the applied style, and the native side
// never says when the last widget stops referencing it. Style storage is
// therefore allocated from a process-lifetime arena owned by the UI and
// pinned against the garbage collector — a bounded, deliberate leak. A style
// may be applied to any number of widgets and stays usable after any of them
// is destroyed.
type Style struct {
	ui  *UI
	raw uintptr
}

type styleRec struct {
	buf     []byte
	pin     runtime.Pinner
	retired bool
}

// NewStyle allocates an empty style in the UI's style arena.
func (ui *UI) NewStyle() (Style, error) {
	const op = "lvgl.UI.NewStyle"
	if err := ui.guard(op); err != nil {
		return Style{}, err
	}
	rec := &styleRec{buf: make([]byte, bind.StyleSize)}
	rec.pin.Pin(&rec.buf[0])
	raw := uintptr(unsafe.Pointer(&rec.buf[0]))
	ui.styles[raw] = rec
	ui.abi.StyleInit(raw)
	return Style{ui: ui, raw: raw}, nil
}

func (s Style) live(op string) error {
	if err := s.ui.guard(op); err != nil {
		return err
	}
	rec := s.ui.styles[s.raw]
	if rec == nil || rec.retired {
		return errors.Newf(op, errors.KindStale, "style %#x retired", s.raw)
	}
	return nil
}

// SetBgColor sets the background color property.
func (s Style) SetBgColor(c Color) error {
	const op = "lvgl.Style.SetBgColor"
	if err := s.live(op); err != nil {
		return err
	}
	s.ui.abi.StyleSetBgColor(s.raw, c.native())
	return nil
}

// SetBgOpa sets the background opacity (0-255).
func (s Style) SetBgOpa(opa uint8) error {
	const op = "lvgl.Style.SetBgOpa"
	if err := s.live(op); err != nil {
		return err
	}
	s.ui.abi.StyleSetBgOpa(s.raw, opa)
	return nil
}

// SetTextColor sets the text color property.
func (s Style) SetTextColor(c Color) error {
	const op = "lvgl.Style.SetTextColor"
	if err := s.live(op); err != nil {
		return err
	}
	s.ui.abi.StyleSetTextColor(s.raw, c.native())
	return nil
}

// SetBorderColor sets the border color property.
func (s Style) SetBorderColor(c Color) error {
	const op = "lvgl.Style.SetBorderColor"
	if err := s.live(op); err != nil {
		return err
	}
	s.ui.abi.StyleSetBorderColor(s.raw, c.native())
	return nil
}

// SetBorderWidth sets the border width property.
func (s Style) SetBorderWidth(w int) error {
	const op = "lvgl.Style.SetBorderWidth"
	if err := s.live(op); err != nil {
		return err
	}
	s.ui.abi.StyleSetBorderWidth(s.raw, int32(w))
	return nil
}

// SetRadius sets the corner radius property.
func (s Style) SetRadius(r int) error {
	const op = "lvgl.Style.SetRadius"
	if err := s.live(op); err != nil {
		return err
	}
	s.ui.abi.StyleSetRadius(s.raw, int32(r))
	return nil
}

// SetPadAll sets padding on all four sides.
func (s Style) SetPadAll(pad int) error {
	const op = "lvgl.Style.SetPadAll"
	if err := s.live(op); err != nil {
		return err
	}
	p := int32(pad)
	s.ui.abi.StyleSetPadTop(s.raw, p)
	s.ui.abi.StyleSetPadBottom(s.raw, p)
	s.ui.abi.StyleSetPadLeft(s.raw, p)
	s.ui.abi.StyleSetPadRight(s.raw, p)
	return nil
}

// AddStyle applies a shared style to the object for the given selector. The
// object keeps a pointer to the style record, not a copy; the arena keeps the
// record alive for the rest of the process.
func (o Obj) AddStyle(s Style, sel Selector) error {
	const op = "lvgl.Obj.AddStyle"
	if err := o.live(op); err != nil {
		return err
	}
	if err := s.live(op); err != nil {
		return err
	}
	o.ui.abi.ObjAddStyle(o.raw, s.raw, uint32(sel))
	return nil
}

// RetireStyle reclaims a style's arena storage.
//
// This is an opt-in escape hatch from the retention policy: the caller must
// prove no live widget still references the style — the native side cannot
// check, and a retired style that is still referenced is a use-after-free in
// native code. When in doubt, don't: the arena's cost is bounded by the
// number of styles ever defined.
func (ui *UI) RetireStyle(s Style) error {
	const op = "lvgl.UI.RetireStyle"
	if err := s.live(op); err != nil {
		return err
	}
	rec := ui.styles[s.raw]
	ui.abi.StyleReset(s.raw)
	rec.retired = true
	rec.pin.Unpin()
	rec.buf = nil
	return nil
}
