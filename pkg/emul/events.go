package emul

import "github.com/embedkit/lvgo/pkg/bind"

func (c *Core) objAddEventCB(addr uintptr, cb bind.Callback, filter uint32, userData uintptr) {
	o := c.objs[addr]
	if o == nil {
		return
	}
	// Additive: multiple callbacks may be queued for the same filter, fired
	// in registration order.
	o.regs = append(o.regs, eventReg{cb: cb, filter: filter, userData: userData})
}

func (c *Core) objRemoveEventCB(addr uintptr, cb bind.Callback, userData uintptr) bool {
	o := c.objs[addr]
	if o == nil {
		return false
	}
	for i, reg := range o.regs {
		if reg.cb == cb && reg.userData == userData {
			o.regs = append(o.regs[:i], o.regs[i+1:]...)
			return true
		}
	}
	return false
}

// dispatch synchronously fires code on o's matching registrations, in
// registration order. Each invocation gets a fresh event record so callbacks
// observe their own userdata.
func (c *Core) dispatch(o *object, code uint32) {
	regs := make([]eventReg, len(o.regs))
	copy(regs, o.regs)
	for _, reg := range regs {
		if reg.filter != bind.EventAll && reg.filter != code {
			continue
		}
		fn, ok := c.cbs[reg.cb].(bind.EventFn)
		if !ok {
			continue
		}
		eid := c.nextEvent
		c.nextEvent += 0x10
		c.events[eid] = &eventRec{code: code, target: o.addr, userData: reg.userData}
		fn(eid)
		delete(c.events, eid)
	}
}

func (c *Core) drainQueue() {
	for len(c.queue) > 0 {
		pe := c.queue[0]
		c.queue = c.queue[1:]
		if o := c.objs[pe.target]; o != nil {
			c.dispatch(o, pe.code)
		}
	}
}

// Emit synthesizes a native event on the object at addr and dispatches it
// immediately, as the native event path would during a task-processing tick.
// It reports whether the target object exists.
func (c *Core) Emit(addr uintptr, code uint32) bool {
	o := c.objs[addr]
	if o == nil {
		return false
	}
	c.dispatch(o, code)
	return true
}

func (c *Core) eventGetCode(eid uintptr) uint32 {
	if rec := c.events[eid]; rec != nil {
		return rec.code
	}
	return bind.EventAll
}

func (c *Core) eventGetTarget(eid uintptr) uintptr {
	if rec := c.events[eid]; rec != nil {
		return rec.target
	}
	return 0
}

func (c *Core) eventGetUserData(eid uintptr) uintptr {
	if rec := c.events[eid]; rec != nil {
		return rec.userData
	}
	return 0
}
