// Package bind exposes the C ABI of the pinned LVGL build as Go function
// values, without cgo.
//
// The ABI struct is the single seam between the safe bridge layers and the
// native toolkit. Production code fills it with Load, which resolves symbols
// from a shared LVGL library via purego. Tests and the simulator fill it with
// the in-memory implementation in package emul.
//
// Field layouts of the mirror structs (Area, IndevData, Color) and all
// constants below are bit-exact for PinnedVersion only. The bridge does not
// support ABI version skew; Load rejects a library whose reported version does
// not match the pin.
package bind

// PinnedVersion is the native LVGL release this ABI mirrors.
const PinnedVersion = "v9.2.2"

// StyleSize is sizeof(lv_style_t) for the pinned build and its lv_conf.h.
// Style storage is allocated Go-side and handed to lv_style_init, so this
// must be at least as large as the real struct.
const StyleSize = 64

// BytesPerPixel reflects the pinned build's LV_COLOR_DEPTH of 16 (RGB565).
// Display drivers receive flush pixel data in this format.
const BytesPerPixel = 2

// Area mirrors lv_area_t. Coordinates are inclusive on both ends.
type Area struct {
	X1, Y1, X2, Y2 int32
}

// Point mirrors lv_point_t.
type Point struct {
	X, Y int32
}

// Color mirrors lv_color_t for a 24-bit color configuration: blue, green,
// red, in that order.
type Color struct {
	Blue, Green, Red uint8
}

// RGB565 packs the color into the pinned build's 16-bit pixel format.
func (c Color) RGB565() uint16 {
	return uint16(c.Red>>3)<<11 | uint16(c.Green>>2)<<5 | uint16(c.Blue>>3)
}

// FromRGB565 unpacks a 16-bit pixel into 8-bit channels.
func FromRGB565(v uint16) (r, g, b uint8) {
	r = uint8(v>>11) << 3
	g = uint8(v>>5&0x3f) << 2
	b = uint8(v&0x1f) << 3
	return r, g, b
}

// IndevData mirrors the leading fields of lv_indev_data_t. The native read
// callback fills this record once per poll.
type IndevData struct {
	Point           Point
	Key             uint32
	BtnID           uint32
	EncDiff         int16
	_               [2]byte
	State           uint32
	ContinueReading uint8
	_               [3]byte
}

// Event codes (lv_event_code_t subset used by the bridge).
const (
	EventAll          uint32 = 0
	EventPressed      uint32 = 1
	EventPressing     uint32 = 2
	EventPressLost    uint32 = 3
	EventShortClicked uint32 = 4
	EventLongPressed  uint32 = 8
	EventClicked      uint32 = 10
	EventReleased     uint32 = 11
	EventFocused      uint32 = 19
	EventDefocused    uint32 = 20
	EventValueChanged uint32 = 35
	EventDelete       uint32 = 41
)

// Alignments (lv_align_t).
const (
	AlignDefault     uint32 = 0
	AlignTopLeft     uint32 = 1
	AlignTopMid      uint32 = 2
	AlignTopRight    uint32 = 3
	AlignBottomLeft  uint32 = 4
	AlignBottomMid   uint32 = 5
	AlignBottomRight uint32 = 6
	AlignLeftMid     uint32 = 7
	AlignRightMid    uint32 = 8
	AlignCenter      uint32 = 9
)

// Object states (lv_state_t).
const (
	StateDefault  uint16 = 0x0000
	StateChecked  uint16 = 0x0001
	StateFocused  uint16 = 0x0002
	StatePressed  uint16 = 0x0020
	StateDisabled uint16 = 0x0080
)

// Style parts (lv_part_t).
const (
	PartMain      uint32 = 0x000000
	PartScrollbar uint32 = 0x010000
	PartIndicator uint32 = 0x020000
	PartKnob      uint32 = 0x030000
	PartSelected  uint32 = 0x040000
	PartItems     uint32 = 0x050000
	PartCursor    uint32 = 0x060000
)

// Object flags (lv_obj_flag_t subset).
const (
	FlagHidden    uint32 = 1 << 0
	FlagClickable uint32 = 1 << 1
)

// Input device types (lv_indev_type_t).
const (
	IndevTypeNone    uint32 = 0
	IndevTypePointer uint32 = 1
	IndevTypeKeypad  uint32 = 2
	IndevTypeButton  uint32 = 3
	IndevTypeEncoder uint32 = 4
)

// Input device states (lv_indev_state_t).
const (
	IndevStateReleased uint32 = 0
	IndevStatePressed  uint32 = 1
)

// Display render modes (lv_display_render_mode_t).
const (
	RenderModePartial uint32 = 0
	RenderModeDirect  uint32 = 1
	RenderModeFull    uint32 = 2
)

// Animation enable flags (lv_anim_enable_t).
const (
	AnimOff uint32 = 0
	AnimOn  uint32 = 1
)

// Callback is a native-callable code pointer minted by one of the New*Callback
// adapters (or an opaque key under emulation). It is the only value the bridge
// ever hands to the native side as a function pointer.
type Callback uintptr

// Callback shapes the native side invokes. Event records, areas and input
// data live in native memory; the uintptr/pointer arguments are only valid
// for the duration of the call.
type (
	EventFn func(event uintptr)
	FlushFn func(disp uintptr, area *Area, pxMap uintptr)
	ReadFn  func(indev uintptr, data *IndevData)
)

// ABI is the function table of the pinned native build.
//
// Every field must be populated; the bridge does not nil-check on the hot
// path. Raw uintptr arguments are native object addresses obtained from the
// same ABI and are never dereferenced Go-side.
type ABI struct {
	// Core.
	Init         func()
	TimerHandler func() uint32
	TickInc      func(ms uint32)
	VersionMajor func() uint32
	VersionMinor func() uint32
	VersionPatch func() uint32

	// Object tree.
	ObjCreate        func(parent uintptr) uintptr
	ObjDelete        func(obj uintptr)
	ObjIsValid       func(obj uintptr) bool
	ObjGetParent     func(obj uintptr) uintptr
	ObjGetChild      func(obj uintptr, index int32) uintptr
	ObjGetChildCount func(obj uintptr) uint32
	ScreenActive     func() uintptr
	ScreenLoad       func(screen uintptr)

	// Geometry and state.
	ObjSetPos      func(obj uintptr, x, y int32)
	ObjSetSize     func(obj uintptr, w, h int32)
	ObjAlign       func(obj uintptr, align uint32, xOfs, yOfs int32)
	ObjAddState    func(obj uintptr, state uint16)
	ObjRemoveState func(obj uintptr, state uint16)
	ObjHasState    func(obj uintptr, state uint16) bool
	ObjAddFlag     func(obj uintptr, flag uint32)
	ObjRemoveFlag  func(obj uintptr, flag uint32)
	ObjInvalidate  func(obj uintptr)

	// Events.
	ObjAddEventCB    func(obj uintptr, cb Callback, filter uint32, userData uintptr)
	ObjRemoveEventCB func(obj uintptr, cb Callback, userData uintptr) bool
	EventGetCode     func(event uintptr) uint32
	EventGetTarget   func(event uintptr) uintptr
	EventGetUserData func(event uintptr) uintptr

	// Styles. The style argument is the address of caller-owned storage of at
	// least StyleSize bytes, previously passed to StyleInit.
	StyleInit           func(style uintptr)
	StyleReset          func(style uintptr)
	StyleSetBgColor     func(style uintptr, c Color)
	StyleSetBgOpa       func(style uintptr, opa uint8)
	StyleSetTextColor   func(style uintptr, c Color)
	StyleSetBorderColor func(style uintptr, c Color)
	StyleSetBorderWidth func(style uintptr, w int32)
	StyleSetRadius      func(style uintptr, r int32)
	StyleSetPadTop      func(style uintptr, pad int32)
	StyleSetPadBottom   func(style uintptr, pad int32)
	StyleSetPadLeft     func(style uintptr, pad int32)
	StyleSetPadRight    func(style uintptr, pad int32)
	ObjAddStyle         func(obj uintptr, style uintptr, selector uint32)

	// Local style properties.
	ObjSetStyleBgColor   func(obj uintptr, c Color, selector uint32)
	ObjSetStyleTextColor func(obj uintptr, c Color, selector uint32)

	// Widgets.
	LabelCreate    func(parent uintptr) uintptr
	LabelSetText   func(label uintptr, text string)
	ButtonCreate   func(parent uintptr) uintptr
	SliderCreate   func(parent uintptr) uintptr
	SliderSetValue func(slider uintptr, value int32, anim uint32)
	SliderGetValue func(slider uintptr) int32
	SliderSetRange func(slider uintptr, min, max int32)
	SwitchCreate   func(parent uintptr) uintptr
	BarCreate      func(parent uintptr) uintptr
	BarSetValue    func(bar uintptr, value int32, anim uint32)
	BarSetRange    func(bar uintptr, min, max int32)

	// Display.
	DisplayCreate     func(w, h int32) uintptr
	DisplayDelete     func(disp uintptr)
	DisplaySetBuffers func(disp uintptr, buf1, buf2 uintptr, size uint32, renderMode uint32)
	DisplaySetFlushCB func(disp uintptr, cb Callback)
	DisplayFlushReady func(disp uintptr)
	DisplayGetHorRes  func(disp uintptr) int32
	DisplayGetVerRes  func(disp uintptr) int32

	// Input devices.
	IndevCreate    func() uintptr
	IndevDelete    func(indev uintptr)
	IndevSetType   func(indev uintptr, typ uint32)
	IndevSetReadCB func(indev uintptr, cb Callback)

	// Callback minting. Each adapter converts a Go function into a Callback
	// the native side can invoke. Native callback slots are a finite resource,
	// so callers mint one Callback per role and reuse it for every
	// registration (the trampoline pattern).
	NewEventCallback func(fn EventFn) Callback
	NewFlushCallback func(fn FlushFn) Callback
	NewReadCallback  func(fn ReadFn) Callback
}
