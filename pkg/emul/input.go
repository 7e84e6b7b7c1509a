package emul

import "github.com/embedkit/lvgo/pkg/bind"

type indev struct {
	addr   uintptr
	typ    uint32
	readCB bind.Callback

	lastState   uint32
	pressTarget uintptr
}

func (c *Core) indevCreate() uintptr {
	dev := &indev{addr: c.alloc()}
	c.indevs[dev.addr] = dev
	return dev.addr
}

func (c *Core) indevDelete(addr uintptr) {
	delete(c.indevs, addr)
}

func (c *Core) indevSetType(addr uintptr, typ uint32) {
	if dev := c.indevs[addr]; dev != nil {
		dev.typ = typ
	}
}

func (c *Core) indevSetReadCB(addr uintptr, cb bind.Callback) {
	if dev := c.indevs[addr]; dev != nil {
		dev.readCB = cb
	}
}

// pollInputs runs each registered pointer device's read callback once and
// synthesizes press/release events from the returned sample, queued for
// dispatch in the same tick.
func (c *Core) pollInputs() {
	for _, dev := range c.indevs {
		if dev.readCB == 0 || dev.typ != bind.IndevTypePointer {
			continue
		}
		fn, ok := c.cbs[dev.readCB].(bind.ReadFn)
		if !ok {
			continue
		}
		var data bind.IndevData
		fn(dev.addr, &data)

		switch {
		case data.State == bind.IndevStatePressed && dev.lastState == bind.IndevStateReleased:
			if target := c.hitTest(data.Point.X, data.Point.Y); target != 0 {
				dev.pressTarget = target
				c.queue = append(c.queue, pendingEvent{target: target, code: bind.EventPressed})
			}
		case data.State == bind.IndevStatePressed:
			if dev.pressTarget != 0 {
				c.queue = append(c.queue, pendingEvent{target: dev.pressTarget, code: bind.EventPressing})
			}
		case data.State == bind.IndevStateReleased && dev.lastState == bind.IndevStatePressed:
			if dev.pressTarget != 0 {
				c.queue = append(c.queue,
					pendingEvent{target: dev.pressTarget, code: bind.EventReleased},
					pendingEvent{target: dev.pressTarget, code: bind.EventClicked})
				dev.pressTarget = 0
			}
		}
		dev.lastState = data.State
	}
}

func (c *Core) hitTest(x, y int32) uintptr {
	screen := c.objs[c.active]
	if screen == nil {
		return 0
	}
	if o := hit(screen, x, y, 0, 0); o != nil {
		return o.addr
	}
	return 0
}
