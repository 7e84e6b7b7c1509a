// Package emul is an in-memory implementation of the native toolkit ABI.
//
// It reproduces the object-tree, event, style, display and input semantics the
// bridge depends on: cascading deletion with per-object delete events,
// existence checks, additive event callback queues, the flush/flush-ready
// handshake, and pointer input synthesis. The simulator uses it as a headless
// backend and the bridge test suites use it in place of a linked native
// library (which would make the safety properties unobservable: a real
// use-after-free is undefined behavior, an emulated one is a test failure).
//
// Object and event addresses handed out by the core are opaque tokens from a
// private range, never real pointers; the bridge never dereferences them.
// The emulation models a single display, which is all the bridge's pinned
// configuration uses.
package emul

import (
	"unsafe"

	"github.com/embedkit/lvgo/pkg/bind"
)

type class int

const (
	classObj class = iota
	classScreen
	classLabel
	classButton
	classSlider
	classSwitch
	classBar
)

// Default fill colors per widget class, used when no style sets a background.
var classColors = map[class]bind.Color{
	classObj:    {Blue: 0xdd, Green: 0xdd, Red: 0xdd},
	classScreen: {Blue: 0xff, Green: 0xff, Red: 0xff},
	classLabel:  {Blue: 0xff, Green: 0xff, Red: 0xff},
	classButton: {Blue: 0xe0, Green: 0x70, Red: 0x20},
	classSlider: {Blue: 0xe0, Green: 0x70, Red: 0x20},
	classSwitch: {Blue: 0xc0, Green: 0xc0, Red: 0xc0},
	classBar:    {Blue: 0xc0, Green: 0xc0, Red: 0xc0},
}

type object struct {
	addr     uintptr
	parent   *object
	children []*object
	class    class

	x, y, w, h int32
	state      uint16
	flags      uint32

	text            string
	value, min, max int32

	// Local background, set through lv_obj_set_style_bg_color.
	bg    bind.Color
	hasBg bool

	styleRefs []uintptr
	regs      []eventReg
}

type eventReg struct {
	cb       bind.Callback
	filter   uint32
	userData uintptr
}

type eventRec struct {
	code     uint32
	target   uintptr
	userData uintptr
}

type pendingEvent struct {
	target uintptr
	code   uint32
}

type style struct {
	bg    bind.Color
	hasBg bool
}

// Core holds the complete emulated toolkit state. It is not safe for
// concurrent use, matching the native library it stands in for.
type Core struct {
	nextAddr  uintptr
	nextCB    bind.Callback
	nextEvent uintptr

	tickMS uint64

	objs     map[uintptr]*object
	active   uintptr
	styles   map[uintptr]*style
	display  *display
	indevs   map[uintptr]*indev
	cbs      map[bind.Callback]any
	events   map[uintptr]*eventRec
	queue    []pendingEvent
	deleting int
}

// New returns an empty emulated toolkit.
func New() *Core {
	return &Core{
		nextAddr:  0x1000,
		nextCB:    1,
		nextEvent: 0x10_0000,
		objs:      make(map[uintptr]*object),
		styles:    make(map[uintptr]*style),
		indevs:    make(map[uintptr]*indev),
		cbs:       make(map[bind.Callback]any),
		events:    make(map[uintptr]*eventRec),
	}
}

func (c *Core) alloc() uintptr {
	addr := c.nextAddr
	c.nextAddr += 0x40
	return addr
}

// Ticks returns the accumulated emulated clock in milliseconds.
func (c *Core) Ticks() uint64 { return c.tickMS }

// ObjectCount returns the number of live objects, screens included.
func (c *Core) ObjectCount() int { return len(c.objs) }

// LiveStyleCount returns the number of initialized, non-reset styles.
func (c *Core) LiveStyleCount() int { return len(c.styles) }

func (c *Core) objCreate(parentAddr uintptr, cl class) uintptr {
	var parent *object
	if parentAddr != 0 {
		parent = c.objs[parentAddr]
		if parent == nil {
			return 0
		}
	}
	o := &object{addr: c.alloc(), parent: parent, class: cl}
	if parent == nil {
		o.class = classScreen
		if c.display != nil {
			o.w, o.h = c.display.w, c.display.h
		}
		if c.active == 0 {
			c.active = o.addr
		}
	} else {
		parent.children = append(parent.children, o)
	}
	c.objs[o.addr] = o
	c.invalidate()
	return o.addr
}

// objDelete removes the subtree rooted at addr. Each object in the subtree
// receives its delete event before its children are torn down, matching the
// pinned native build's destructor order.
func (c *Core) objDelete(addr uintptr) {
	o := c.objs[addr]
	if o == nil {
		return
	}
	if o.parent != nil {
		siblings := o.parent.children
		for i, ch := range siblings {
			if ch == o {
				o.parent.children = append(siblings[:i], siblings[i+1:]...)
				break
			}
		}
	}
	c.deleteRec(o)
	if c.active == addr {
		c.active = 0
	}
	c.invalidate()
}

func (c *Core) deleteRec(o *object) {
	c.dispatch(o, bind.EventDelete)
	delete(c.objs, o.addr)
	for _, ch := range o.children {
		c.deleteRec(ch)
	}
	o.children = nil
}

func (c *Core) objIsValid(addr uintptr) bool {
	_, ok := c.objs[addr]
	return ok
}

func (c *Core) styleInit(addr uintptr) {
	c.styles[addr] = &style{}
}

func (c *Core) styleReset(addr uintptr) {
	delete(c.styles, addr)
}

func (c *Core) timerHandler() uint32 {
	c.pollInputs()
	c.drainQueue()
	if c.display != nil {
		c.display.render(c)
	}
	return 5
}

// bufBytes exposes a bridge-owned draw buffer the bridge registered with
// DisplaySetBuffers. The address is real Go memory in this emulation.
func bufBytes(addr uintptr, size uint32) []byte {
	return unsafe.Slice((*byte)(unsafe.Pointer(addr)), size)
}
