package emul

import (
	"encoding/binary"

	"github.com/embedkit/lvgo/pkg/bind"
)

type display struct {
	addr    uintptr
	w, h    int32
	buf     uintptr
	bufSize uint32
	flushCB bind.Callback

	dirty         bool
	awaitingReady bool
	stripes       []bind.Area
	stalledTicks  int
}

func (c *Core) displayCreate(w, h int32) uintptr {
	if c.display != nil {
		// Single-display emulation.
		return 0
	}
	d := &display{addr: c.alloc(), w: w, h: h, dirty: true}
	c.display = d
	// A display comes with a default active screen, as in the native build.
	scr := c.objCreate(0, classScreen)
	c.active = scr
	if o := c.objs[scr]; o != nil {
		o.w, o.h = w, h
	}
	return d.addr
}

func (c *Core) displayDelete(addr uintptr) {
	d := c.display
	if d == nil || d.addr != addr {
		return
	}
	// Screens belong to the display; deleting it cascades through every
	// screen's subtree.
	for a, o := range c.objs {
		if o.class == classScreen && o.parent == nil {
			c.objDelete(a)
		}
	}
	c.display = nil
	c.active = 0
}

func (c *Core) displaySetBuffers(addr, buf1, buf2 uintptr, size uint32, renderMode uint32) {
	if d := c.display; d != nil && d.addr == addr {
		d.buf = buf1
		d.bufSize = size
	}
}

func (c *Core) displaySetFlushCB(addr uintptr, cb bind.Callback) {
	if d := c.display; d != nil && d.addr == addr {
		d.flushCB = cb
	}
}

func (c *Core) displayFlushReady(addr uintptr) {
	d := c.display
	if d == nil || d.addr != addr || !d.awaitingReady {
		return
	}
	d.awaitingReady = false
	d.flushNext(c)
}

func (c *Core) displayHorRes(addr uintptr) int32 {
	if d := c.display; d != nil && d.addr == addr {
		return d.w
	}
	return 0
}

func (c *Core) displayVerRes(addr uintptr) int32 {
	if d := c.display; d != nil && d.addr == addr {
		return d.h
	}
	return 0
}

func (c *Core) invalidate() {
	if c.display != nil {
		c.display.dirty = true
	}
}

// StalledTicks reports how many task ticks skipped rendering because a flush
// completion was still outstanding.
func (c *Core) StalledTicks() int {
	if c.display == nil {
		return 0
	}
	return c.display.stalledTicks
}

// render slices the dirty screen into buffer-sized horizontal stripes and
// starts the flush chain. A stripe's flush must be acknowledged through
// lv_display_flush_ready before the next stripe is sent; an unacknowledged
// flush therefore stalls rendering entirely.
func (d *display) render(c *Core) {
	if !d.dirty || d.flushCB == 0 || d.buf == 0 {
		return
	}
	if d.awaitingReady || len(d.stripes) > 0 {
		d.stalledTicks++
		return
	}
	lines := int32(d.bufSize) / (d.w * bind.BytesPerPixel)
	if lines <= 0 {
		return
	}
	for y := int32(0); y < d.h; y += lines {
		y2 := y + lines - 1
		if y2 >= d.h {
			y2 = d.h - 1
		}
		d.stripes = append(d.stripes, bind.Area{X1: 0, Y1: y, X2: d.w - 1, Y2: y2})
	}
	d.flushNext(c)
}

func (d *display) flushNext(c *Core) {
	if len(d.stripes) == 0 {
		d.dirty = false
		return
	}
	area := d.stripes[0]
	d.stripes = d.stripes[1:]
	c.compose(d, area)
	fn, ok := c.cbs[d.flushCB].(bind.FlushFn)
	if !ok {
		return
	}
	d.awaitingReady = true
	fn(d.addr, &area, d.buf)
}

// compose renders the active screen's subtree for area into the draw buffer,
// row-major RGB565 from the buffer start.
func (c *Core) compose(d *display, area bind.Area) {
	buf := bufBytes(d.buf, d.bufSize)
	screen := c.objs[c.active]
	i := 0
	for y := area.Y1; y <= area.Y2; y++ {
		for x := area.X1; x <= area.X2; x++ {
			px := c.colorAt(screen, x, y).RGB565()
			binary.LittleEndian.PutUint16(buf[i:], px)
			i += 2
		}
	}
}

// colorAt resolves the visible color for an absolute pixel: the deepest,
// latest-created object covering it wins, honoring local background, then
// applied styles (last applied wins), then the class default.
func (c *Core) colorAt(screen *object, x, y int32) bind.Color {
	if screen == nil {
		return bind.Color{}
	}
	top := hit(screen, x, y, 0, 0)
	if top == nil {
		return classColors[classScreen]
	}
	if top.hasBg {
		return top.bg
	}
	for i := len(top.styleRefs) - 1; i >= 0; i-- {
		if st := c.styles[top.styleRefs[i]]; st != nil && st.hasBg {
			return st.bg
		}
	}
	return classColors[top.class]
}

// hit returns the topmost object in o's subtree containing the absolute
// point, or nil. Hidden subtrees are skipped; children are stacked above
// parents, later siblings above earlier ones.
func hit(o *object, x, y, offX, offY int32) *object {
	if o.flags&bind.FlagHidden != 0 {
		return nil
	}
	ax, ay := offX+o.x, offY+o.y
	inside := x >= ax && x < ax+o.w && y >= ay && y < ay+o.h
	for i := len(o.children) - 1; i >= 0; i-- {
		if m := hit(o.children[i], x, y, ax, ay); m != nil {
			return m
		}
	}
	if inside && o.w > 0 && o.h > 0 {
		return o
	}
	return nil
}
