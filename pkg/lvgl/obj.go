package lvgl

import (
	"github.com/embedkit/lvgo/pkg/bind"
	"github.com/embedkit/lvgo/pkg/errors"
)

// Obj is a handle to a native tree object. The zero value is invalid.
//
// Obj carries no ownership: the native library owns the object and may
// destroy it behind the handle's back (deleting any ancestor cascades).
// Liveness is therefore re-checked against the native side before every
// operation rather than cached; a handle to a destroyed object keeps failing
// with a KindStale error forever, it never becomes dangerous.
type Obj struct {
	ui  *UI
	raw uintptr
}

// Align positions relative to the parent.
type Align uint32

const (
	AlignDefault     Align = Align(bind.AlignDefault)
	AlignTopLeft     Align = Align(bind.AlignTopLeft)
	AlignTopMid      Align = Align(bind.AlignTopMid)
	AlignTopRight    Align = Align(bind.AlignTopRight)
	AlignBottomLeft  Align = Align(bind.AlignBottomLeft)
	AlignBottomMid   Align = Align(bind.AlignBottomMid)
	AlignBottomRight Align = Align(bind.AlignBottomRight)
	AlignLeftMid     Align = Align(bind.AlignLeftMid)
	AlignRightMid    Align = Align(bind.AlignRightMid)
	AlignCenter      Align = Align(bind.AlignCenter)
)

// State flags on an object.
type State uint16

const (
	StateChecked  State = State(bind.StateChecked)
	StateFocused  State = State(bind.StateFocused)
	StatePressed  State = State(bind.StatePressed)
	StateDisabled State = State(bind.StateDisabled)
)

// Raw returns the native object address, for integrating with test harnesses
// and external native code. The address is opaque; never dereference it.
func (o Obj) Raw() uintptr { return o.raw }

// Valid reports whether the native object still exists.
func (o Obj) Valid() bool {
	return o.ui != nil && o.ui.abi != nil && o.ui.abi.ObjIsValid(o.raw)
}

// live is the precondition of every operation on a handle.
func (o Obj) live(op string) error {
	if err := o.ui.guard(op); err != nil {
		return err
	}
	if !o.ui.abi.ObjIsValid(o.raw) {
		return errors.Newf(op, errors.KindStale, "object %#x destroyed", o.raw)
	}
	return nil
}

// createChild validates the parent, runs the native constructor, and wraps
// the result. Shared by every widget constructor.
func (ui *UI) createChild(op string, parent Obj, construct func(uintptr) uintptr) (Obj, error) {
	if err := ui.guard(op); err != nil {
		return Obj{}, err
	}
	if parent.ui != ui || !ui.abi.ObjIsValid(parent.raw) {
		return Obj{}, errors.Newf(op, errors.KindInvalidParent, "parent %#x destroyed", parent.raw)
	}
	raw := construct(parent.raw)
	if raw == 0 {
		return Obj{}, errors.Newf(op, errors.KindAlloc, "native allocation failed")
	}
	return Obj{ui: ui, raw: raw}, nil
}

// NewObj creates a plain container object under parent.
func (ui *UI) NewObj(parent Obj) (Obj, error) {
	return ui.createChild("lvgl.UI.NewObj", parent, ui.abi.ObjCreate)
}

// Delete destroys the subtree rooted at o. Every handle referencing an object
// in that subtree — including handles the caller still holds — becomes stale.
// Closure registrations for the subtree are reclaimed via the native delete
// notification.
func (o Obj) Delete() error {
	const op = "lvgl.Obj.Delete"
	if err := o.live(op); err != nil {
		return err
	}
	o.ui.abi.ObjDelete(o.raw)
	return nil
}

// SetPos sets the position relative to the parent.
func (o Obj) SetPos(x, y int) error {
	const op = "lvgl.Obj.SetPos"
	if err := o.live(op); err != nil {
		return err
	}
	o.ui.abi.ObjSetPos(o.raw, int32(x), int32(y))
	return nil
}

// SetSize sets the object's width and height.
func (o Obj) SetSize(w, h int) error {
	const op = "lvgl.Obj.SetSize"
	if err := o.live(op); err != nil {
		return err
	}
	o.ui.abi.ObjSetSize(o.raw, int32(w), int32(h))
	return nil
}

// Align positions the object relative to its parent with an offset.
func (o Obj) Align(align Align, xOfs, yOfs int) error {
	const op = "lvgl.Obj.Align"
	if err := o.live(op); err != nil {
		return err
	}
	o.ui.abi.ObjAlign(o.raw, uint32(align), int32(xOfs), int32(yOfs))
	return nil
}

// Center centers the object in its parent.
func (o Obj) Center() error {
	return o.Align(AlignCenter, 0, 0)
}

// AddState adds state flags.
func (o Obj) AddState(s State) error {
	const op = "lvgl.Obj.AddState"
	if err := o.live(op); err != nil {
		return err
	}
	o.ui.abi.ObjAddState(o.raw, uint16(s))
	return nil
}

// RemoveState clears state flags.
func (o Obj) RemoveState(s State) error {
	const op = "lvgl.Obj.RemoveState"
	if err := o.live(op); err != nil {
		return err
	}
	o.ui.abi.ObjRemoveState(o.raw, uint16(s))
	return nil
}

// HasState reports whether any of the given state flags are set.
func (o Obj) HasState(s State) (bool, error) {
	const op = "lvgl.Obj.HasState"
	if err := o.live(op); err != nil {
		return false, err
	}
	return o.ui.abi.ObjHasState(o.raw, uint16(s)), nil
}

// SetHidden shows or hides the subtree.
func (o Obj) SetHidden(hidden bool) error {
	const op = "lvgl.Obj.SetHidden"
	if err := o.live(op); err != nil {
		return err
	}
	if hidden {
		o.ui.abi.ObjAddFlag(o.raw, bind.FlagHidden)
	} else {
		o.ui.abi.ObjRemoveFlag(o.raw, bind.FlagHidden)
	}
	return nil
}

// SetClickable controls whether the object receives pointer events.
func (o Obj) SetClickable(clickable bool) error {
	const op = "lvgl.Obj.SetClickable"
	if err := o.live(op); err != nil {
		return err
	}
	if clickable {
		o.ui.abi.ObjAddFlag(o.raw, bind.FlagClickable)
	} else {
		o.ui.abi.ObjRemoveFlag(o.raw, bind.FlagClickable)
	}
	return nil
}

// Invalidate marks the object for redraw on the next task pass.
func (o Obj) Invalidate() error {
	const op = "lvgl.Obj.Invalidate"
	if err := o.live(op); err != nil {
		return err
	}
	o.ui.abi.ObjInvalidate(o.raw)
	return nil
}

// Parent returns the parent handle, or a zero handle for roots.
func (o Obj) Parent() (Obj, error) {
	const op = "lvgl.Obj.Parent"
	if err := o.live(op); err != nil {
		return Obj{}, err
	}
	raw := o.ui.abi.ObjGetParent(o.raw)
	if raw == 0 {
		return Obj{}, nil
	}
	return Obj{ui: o.ui, raw: raw}, nil
}

// ChildCount returns the number of direct children.
func (o Obj) ChildCount() (int, error) {
	const op = "lvgl.Obj.ChildCount"
	if err := o.live(op); err != nil {
		return 0, err
	}
	return int(o.ui.abi.ObjGetChildCount(o.raw)), nil
}

// Child returns the i'th direct child.
func (o Obj) Child(i int) (Obj, error) {
	const op = "lvgl.Obj.Child"
	if err := o.live(op); err != nil {
		return Obj{}, err
	}
	raw := o.ui.abi.ObjGetChild(o.raw, int32(i))
	if raw == 0 {
		return Obj{}, errors.Newf(op, errors.KindUnknown, "no child at index %d", i)
	}
	return Obj{ui: o.ui, raw: raw}, nil
}

// SetBgColor sets a local background color for the selector.
func (o Obj) SetBgColor(c Color, sel Selector) error {
	const op = "lvgl.Obj.SetBgColor"
	if err := o.live(op); err != nil {
		return err
	}
	o.ui.abi.ObjSetStyleBgColor(o.raw, c.native(), uint32(sel))
	return nil
}

// SetTextColor sets a local text color for the selector.
func (o Obj) SetTextColor(c Color, sel Selector) error {
	const op = "lvgl.Obj.SetTextColor"
	if err := o.live(op); err != nil {
		return err
	}
	o.ui.abi.ObjSetStyleTextColor(o.raw, c.native(), uint32(sel))
	return nil
}
