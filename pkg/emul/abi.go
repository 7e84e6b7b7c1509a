package emul

import (
	"strconv"
	"strings"

	"github.com/embedkit/lvgo/pkg/bind"
)

// ABI returns a fully populated native function table backed by this core.
// The table reports the bridge's pinned version, so it always passes version
// pinning checks.
func (c *Core) ABI() *bind.ABI {
	major, minor, patch := pinnedParts()

	abi := &bind.ABI{
		Init:         func() {},
		TimerHandler: c.timerHandler,
		TickInc:      func(ms uint32) { c.tickMS += uint64(ms) },
		VersionMajor: func() uint32 { return major },
		VersionMinor: func() uint32 { return minor },
		VersionPatch: func() uint32 { return patch },

		ObjCreate:  func(parent uintptr) uintptr { return c.objCreate(parent, classObj) },
		ObjDelete:  c.objDelete,
		ObjIsValid: c.objIsValid,
		ObjGetParent: func(addr uintptr) uintptr {
			if o := c.objs[addr]; o != nil && o.parent != nil {
				return o.parent.addr
			}
			return 0
		},
		ObjGetChild: func(addr uintptr, index int32) uintptr {
			o := c.objs[addr]
			if o == nil || index < 0 || int(index) >= len(o.children) {
				return 0
			}
			return o.children[index].addr
		},
		ObjGetChildCount: func(addr uintptr) uint32 {
			if o := c.objs[addr]; o != nil {
				return uint32(len(o.children))
			}
			return 0
		},
		ScreenActive: func() uintptr { return c.active },
		ScreenLoad: func(screen uintptr) {
			if o := c.objs[screen]; o != nil && o.parent == nil {
				c.active = screen
				c.invalidate()
			}
		},

		ObjSetPos: func(addr uintptr, x, y int32) {
			if o := c.objs[addr]; o != nil {
				o.x, o.y = x, y
				c.invalidate()
			}
		},
		ObjSetSize: func(addr uintptr, w, h int32) {
			if o := c.objs[addr]; o != nil {
				o.w, o.h = w, h
				c.invalidate()
			}
		},
		ObjAlign: func(addr uintptr, align uint32, xOfs, yOfs int32) {
			o := c.objs[addr]
			if o == nil || o.parent == nil {
				return
			}
			p := o.parent
			switch align {
			case bind.AlignCenter:
				o.x = (p.w-o.w)/2 + xOfs
				o.y = (p.h-o.h)/2 + yOfs
			case bind.AlignTopMid:
				o.x = (p.w-o.w)/2 + xOfs
				o.y = yOfs
			case bind.AlignBottomMid:
				o.x = (p.w-o.w)/2 + xOfs
				o.y = p.h - o.h + yOfs
			default:
				o.x, o.y = xOfs, yOfs
			}
			c.invalidate()
		},
		ObjAddState: func(addr uintptr, state uint16) {
			if o := c.objs[addr]; o != nil {
				o.state |= state
			}
		},
		ObjRemoveState: func(addr uintptr, state uint16) {
			if o := c.objs[addr]; o != nil {
				o.state &^= state
			}
		},
		ObjHasState: func(addr uintptr, state uint16) bool {
			o := c.objs[addr]
			return o != nil && o.state&state != 0
		},
		ObjAddFlag: func(addr uintptr, flag uint32) {
			if o := c.objs[addr]; o != nil {
				o.flags |= flag
				c.invalidate()
			}
		},
		ObjRemoveFlag: func(addr uintptr, flag uint32) {
			if o := c.objs[addr]; o != nil {
				o.flags &^= flag
				c.invalidate()
			}
		},
		ObjInvalidate: func(addr uintptr) { c.invalidate() },

		ObjAddEventCB:    c.objAddEventCB,
		ObjRemoveEventCB: c.objRemoveEventCB,
		EventGetCode:     c.eventGetCode,
		EventGetTarget:   c.eventGetTarget,
		EventGetUserData: c.eventGetUserData,

		StyleInit:  c.styleInit,
		StyleReset: c.styleReset,
		StyleSetBgColor: func(addr uintptr, col bind.Color) {
			if st := c.styles[addr]; st != nil {
				st.bg = col
				st.hasBg = true
			}
		},
		StyleSetBgOpa:       func(addr uintptr, opa uint8) {},
		StyleSetTextColor:   func(addr uintptr, col bind.Color) {},
		StyleSetBorderColor: func(addr uintptr, col bind.Color) {},
		StyleSetBorderWidth: func(addr uintptr, w int32) {},
		StyleSetRadius:      func(addr uintptr, r int32) {},
		StyleSetPadTop:      func(addr uintptr, pad int32) {},
		StyleSetPadBottom:   func(addr uintptr, pad int32) {},
		StyleSetPadLeft:     func(addr uintptr, pad int32) {},
		StyleSetPadRight:    func(addr uintptr, pad int32) {},
		ObjAddStyle: func(addr, styleAddr uintptr, selector uint32) {
			if o := c.objs[addr]; o != nil {
				o.styleRefs = append(o.styleRefs, styleAddr)
				c.invalidate()
			}
		},

		ObjSetStyleBgColor: func(addr uintptr, col bind.Color, selector uint32) {
			if o := c.objs[addr]; o != nil {
				o.bg = col
				o.hasBg = true
				c.invalidate()
			}
		},
		ObjSetStyleTextColor: func(addr uintptr, col bind.Color, selector uint32) {},

		LabelCreate: func(parent uintptr) uintptr { return c.objCreate(parent, classLabel) },
		LabelSetText: func(addr uintptr, text string) {
			if o := c.objs[addr]; o != nil {
				o.text = text
				c.invalidate()
			}
		},
		ButtonCreate: func(parent uintptr) uintptr { return c.objCreate(parent, classButton) },
		SliderCreate: func(parent uintptr) uintptr {
			addr := c.objCreate(parent, classSlider)
			if o := c.objs[addr]; o != nil {
				o.max = 100
			}
			return addr
		},
		SliderSetValue: func(addr uintptr, value int32, anim uint32) { c.setRangedValue(addr, value) },
		SliderGetValue: func(addr uintptr) int32 {
			if o := c.objs[addr]; o != nil {
				return o.value
			}
			return 0
		},
		SliderSetRange: func(addr uintptr, min, max int32) { c.setRange(addr, min, max) },
		SwitchCreate:   func(parent uintptr) uintptr { return c.objCreate(parent, classSwitch) },
		BarCreate: func(parent uintptr) uintptr {
			addr := c.objCreate(parent, classBar)
			if o := c.objs[addr]; o != nil {
				o.max = 100
			}
			return addr
		},
		BarSetValue: func(addr uintptr, value int32, anim uint32) { c.setRangedValue(addr, value) },
		BarSetRange: func(addr uintptr, min, max int32) { c.setRange(addr, min, max) },

		DisplayCreate:     c.displayCreate,
		DisplayDelete:     c.displayDelete,
		DisplaySetBuffers: c.displaySetBuffers,
		DisplaySetFlushCB: c.displaySetFlushCB,
		DisplayFlushReady: c.displayFlushReady,
		DisplayGetHorRes:  c.displayHorRes,
		DisplayGetVerRes:  c.displayVerRes,

		IndevCreate:    c.indevCreate,
		IndevDelete:    c.indevDelete,
		IndevSetType:   c.indevSetType,
		IndevSetReadCB: c.indevSetReadCB,
	}

	abi.NewEventCallback = func(fn bind.EventFn) bind.Callback { return c.mint(fn) }
	abi.NewFlushCallback = func(fn bind.FlushFn) bind.Callback { return c.mint(fn) }
	abi.NewReadCallback = func(fn bind.ReadFn) bind.Callback { return c.mint(fn) }

	return abi
}

func (c *Core) mint(fn any) bind.Callback {
	cb := c.nextCB
	c.nextCB++
	c.cbs[cb] = fn
	return cb
}

func (c *Core) setRangedValue(addr uintptr, value int32) {
	o := c.objs[addr]
	if o == nil {
		return
	}
	if value < o.min {
		value = o.min
	}
	if value > o.max {
		value = o.max
	}
	if value != o.value {
		o.value = value
		c.invalidate()
		c.dispatch(o, bind.EventValueChanged)
	}
}

func (c *Core) setRange(addr uintptr, min, max int32) {
	if o := c.objs[addr]; o != nil {
		o.min, o.max = min, max
	}
}

func pinnedParts() (major, minor, patch uint32) {
	parts := strings.SplitN(strings.TrimPrefix(bind.PinnedVersion, "v"), ".", 3)
	n := func(i int) uint32 {
		if i >= len(parts) {
			return 0
		}
		v, _ := strconv.Atoi(parts[i])
		return uint32(v)
	}
	return n(0), n(1), n(2)
}
