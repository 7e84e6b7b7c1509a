package lvgl

import (
	"github.com/embedkit/lvgo/pkg/bind"
	"github.com/embedkit/lvgo/pkg/errors"
)

// EventCode selects which native events a registration observes.
type EventCode uint32

const (
	EventAll          EventCode = EventCode(bind.EventAll)
	EventPressed      EventCode = EventCode(bind.EventPressed)
	EventPressing     EventCode = EventCode(bind.EventPressing)
	EventPressLost    EventCode = EventCode(bind.EventPressLost)
	EventShortClicked EventCode = EventCode(bind.EventShortClicked)
	EventLongPressed  EventCode = EventCode(bind.EventLongPressed)
	EventClicked      EventCode = EventCode(bind.EventClicked)
	EventReleased     EventCode = EventCode(bind.EventReleased)
	EventFocused      EventCode = EventCode(bind.EventFocused)
	EventDefocused    EventCode = EventCode(bind.EventDefocused)
	EventValueChanged EventCode = EventCode(bind.EventValueChanged)
)

// Event is the payload delivered to registered closures, reconstructed from
// the native event record. The record itself is only valid during dispatch
// and is never exposed.
type Event struct {
	Code   EventCode
	Target Obj
}

// Registration identifies one (object, selector, closure) binding and can
// cancel it.
type Registration struct {
	ui  *UI
	obj uintptr
	id  uintptr
}

type registration struct {
	obj  uintptr
	code EventCode
	fn   func(Event)
}

// callbackTable owns every registered closure. The native side only ever
// holds small integer keys into this table as its opaque userdata — never Go
// pointers — so the native heap cannot keep Go memory alive or dangle into
// it. Entries are dropped when the owning object's native delete notification
// fires; the pinned toolkit delivers one for every object kind, so closures
// are reclaimed exactly at object destruction and never sooner.
type callbackTable struct {
	nextID  uintptr
	byID    map[uintptr]*registration
	byObj   map[uintptr][]uintptr
	watched map[uintptr]bool
}

func newCallbackTable() *callbackTable {
	return &callbackTable{
		nextID:  1,
		byID:    make(map[uintptr]*registration),
		byObj:   make(map[uintptr][]uintptr),
		watched: make(map[uintptr]bool),
	}
}

func (t *callbackTable) add(obj uintptr, code EventCode, fn func(Event)) uintptr {
	id := t.nextID
	t.nextID++
	t.byID[id] = &registration{obj: obj, code: code, fn: fn}
	t.byObj[obj] = append(t.byObj[obj], id)
	return id
}

func (t *callbackTable) remove(id uintptr) {
	reg, ok := t.byID[id]
	if !ok {
		return
	}
	delete(t.byID, id)
	ids := t.byObj[reg.obj]
	for i, other := range ids {
		if other == id {
			t.byObj[reg.obj] = append(ids[:i], ids[i+1:]...)
			break
		}
	}
}

func (t *callbackTable) dropObject(obj uintptr) {
	for _, id := range t.byObj[obj] {
		delete(t.byID, id)
	}
	delete(t.byObj, obj)
	delete(t.watched, obj)
}

// On registers fn for the given event code on the object. Registrations are
// additive: a second closure for the same (object, code) pair is queued after
// the first, matching the pinned toolkit's dispatch semantics.
//
// The closure runs synchronously during [UI.RunTasks], on the owning thread,
// in native dispatch order. A panic inside the closure is caught at the
// trampoline boundary and reported; it never unwinds into native code.
func (o Obj) On(code EventCode, fn func(Event)) (Registration, error) {
	const op = "lvgl.Obj.On"
	if err := o.live(op); err != nil {
		return Registration{}, err
	}
	if fn == nil {
		return Registration{}, errors.Newf(op, errors.KindUnknown, "nil closure")
	}
	t := o.ui.regs
	id := t.add(o.raw, code, fn)
	o.ui.abi.ObjAddEventCB(o.raw, o.ui.eventThunk, uint32(code), id)

	// First registration on an object also installs the delete watch that
	// reclaims the object's closures when the native side destroys it.
	if !t.watched[o.raw] {
		o.ui.abi.ObjAddEventCB(o.raw, o.ui.deleteThunk, bind.EventDelete, o.raw)
		t.watched[o.raw] = true
	}
	return Registration{ui: o.ui, obj: o.raw, id: id}, nil
}

// Cancel removes the registration. Canceling twice, or after the owning
// object was destroyed, is a no-op.
func (r Registration) Cancel() error {
	const op = "lvgl.Registration.Cancel"
	if err := r.ui.guard(op); err != nil {
		return err
	}
	if _, ok := r.ui.regs.byID[r.id]; !ok {
		return nil
	}
	r.ui.regs.remove(r.id)
	if r.ui.abi.ObjIsValid(r.obj) {
		r.ui.abi.ObjRemoveEventCB(r.obj, r.ui.eventThunk, r.id)
	}
	return nil
}

// dispatchEvent is the single event trampoline: it recovers the registered
// closure from the userdata key and rebuilds the payload from the native
// record. A key with no table entry means the registration was reclaimed;
// the closure is then never invoked.
func (ui *UI) dispatchEvent(event uintptr) {
	defer errors.Recover("lvgl.eventTrampoline")
	id := ui.abi.EventGetUserData(event)
	reg := ui.regs.byID[id]
	if reg == nil {
		return
	}
	reg.fn(Event{
		Code:   EventCode(ui.abi.EventGetCode(event)),
		Target: Obj{ui: ui, raw: ui.abi.EventGetTarget(event)},
	})
}

// dispatchDelete is the delete-watch trampoline; its userdata is the object
// address whose closures it reclaims.
func (ui *UI) dispatchDelete(event uintptr) {
	defer errors.Recover("lvgl.deleteTrampoline")
	ui.regs.dropObject(ui.abi.EventGetUserData(event))
}
