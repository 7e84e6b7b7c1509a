package lvgl

import "github.com/embedkit/lvgo/pkg/bind"

// Label displays a line of text.
type Label struct{ Obj }

// NewLabel creates a label under parent.
func (ui *UI) NewLabel(parent Obj) (Label, error) {
	o, err := ui.createChild("lvgl.UI.NewLabel", parent, ui.abi.LabelCreate)
	return Label{o}, err
}

// SetText replaces the label text. The native side copies the string; the Go
// string is not retained.
func (l Label) SetText(text string) error {
	const op = "lvgl.Label.SetText"
	if err := l.live(op); err != nil {
		return err
	}
	l.ui.abi.LabelSetText(l.raw, text)
	return nil
}

// Button is a clickable widget. Press and click behavior comes from event
// registrations on the embedded Obj.
type Button struct{ Obj }

// NewButton creates a button under parent.
func (ui *UI) NewButton(parent Obj) (Button, error) {
	o, err := ui.createChild("lvgl.UI.NewButton", parent, ui.abi.ButtonCreate)
	return Button{o}, err
}

// NewButtonWithLabel creates a button with a centered text label child.
func (ui *UI) NewButtonWithLabel(parent Obj, text string) (Button, error) {
	btn, err := ui.NewButton(parent)
	if err != nil {
		return Button{}, err
	}
	lbl, err := ui.NewLabel(btn.Obj)
	if err != nil {
		return Button{}, err
	}
	if err := lbl.SetText(text); err != nil {
		return Button{}, err
	}
	if err := lbl.Center(); err != nil {
		return Button{}, err
	}
	return btn, nil
}

// Slider is a draggable value widget. It fires EventValueChanged when the
// value moves.
type Slider struct{ Obj }

// NewSlider creates a slider under parent with the native default range 0-100.
func (ui *UI) NewSlider(parent Obj) (Slider, error) {
	o, err := ui.createChild("lvgl.UI.NewSlider", parent, ui.abi.SliderCreate)
	return Slider{o}, err
}

// SetValue sets the slider value, clamped to the range.
func (s Slider) SetValue(v int, anim bool) error {
	const op = "lvgl.Slider.SetValue"
	if err := s.live(op); err != nil {
		return err
	}
	s.ui.abi.SliderSetValue(s.raw, int32(v), animFlag(anim))
	return nil
}

// Value returns the current slider value.
func (s Slider) Value() (int, error) {
	const op = "lvgl.Slider.Value"
	if err := s.live(op); err != nil {
		return 0, err
	}
	return int(s.ui.abi.SliderGetValue(s.raw)), nil
}

// SetRange sets the slider's min and max.
func (s Slider) SetRange(min, max int) error {
	const op = "lvgl.Slider.SetRange"
	if err := s.live(op); err != nil {
		return err
	}
	s.ui.abi.SliderSetRange(s.raw, int32(min), int32(max))
	return nil
}

// Switch is an on/off toggle. Its checked state is the StateChecked flag and
// it fires EventValueChanged on toggle.
type Switch struct{ Obj }

// NewSwitch creates a switch under parent.
func (ui *UI) NewSwitch(parent Obj) (Switch, error) {
	o, err := ui.createChild("lvgl.UI.NewSwitch", parent, ui.abi.SwitchCreate)
	return Switch{o}, err
}

// Checked reports whether the switch is on.
func (sw Switch) Checked() (bool, error) {
	return sw.HasState(StateChecked)
}

// SetChecked turns the switch on or off without firing events.
func (sw Switch) SetChecked(on bool) error {
	if on {
		return sw.AddState(StateChecked)
	}
	return sw.RemoveState(StateChecked)
}

// Bar is a non-interactive progress indicator.
type Bar struct{ Obj }

// NewBar creates a bar under parent with the native default range 0-100.
func (ui *UI) NewBar(parent Obj) (Bar, error) {
	o, err := ui.createChild("lvgl.UI.NewBar", parent, ui.abi.BarCreate)
	return Bar{o}, err
}

// SetValue sets the bar value, clamped to the range.
func (b Bar) SetValue(v int, anim bool) error {
	const op = "lvgl.Bar.SetValue"
	if err := b.live(op); err != nil {
		return err
	}
	b.ui.abi.BarSetValue(b.raw, int32(v), animFlag(anim))
	return nil
}

// SetRange sets the bar's min and max.
func (b Bar) SetRange(min, max int) error {
	const op = "lvgl.Bar.SetRange"
	if err := b.live(op); err != nil {
		return err
	}
	b.ui.abi.BarSetRange(b.raw, int32(min), int32(max))
	return nil
}

func animFlag(anim bool) uint32 {
	if anim {
		return bind.AnimOn
	}
	return bind.AnimOff
}
