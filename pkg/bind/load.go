//go:build darwin || linux || freebsd

package bind

import (
	"fmt"
	"sync"
	"unsafe"

	"github.com/ebitengine/purego"
	"golang.org/x/mod/semver"
)

var (
	loadOnce sync.Once
	loaded   *ABI
	loadErr  error
)

// Load opens the shared native toolkit library at path, resolves every symbol
// in the ABI, and verifies the library's reported version against
// PinnedVersion.
//
// The native library holds process-global state, so Load resolves exactly
// once; subsequent calls return the first result regardless of path.
func Load(path string) (*ABI, error) {
	loadOnce.Do(func() {
		loaded, loadErr = load(path)
	})
	return loaded, loadErr
}

func load(path string) (*ABI, error) {
	lib, err := purego.Dlopen(path, purego.RTLD_LAZY|purego.RTLD_LOCAL)
	if err != nil {
		return nil, fmt.Errorf("bind: loading %s: %w", path, err)
	}

	abi := &ABI{}

	purego.RegisterLibFunc(&abi.Init, lib, "lv_init")
	purego.RegisterLibFunc(&abi.TimerHandler, lib, "lv_timer_handler")
	purego.RegisterLibFunc(&abi.TickInc, lib, "lv_tick_inc")
	purego.RegisterLibFunc(&abi.VersionMajor, lib, "lv_version_major")
	purego.RegisterLibFunc(&abi.VersionMinor, lib, "lv_version_minor")
	purego.RegisterLibFunc(&abi.VersionPatch, lib, "lv_version_patch")

	purego.RegisterLibFunc(&abi.ObjCreate, lib, "lv_obj_create")
	purego.RegisterLibFunc(&abi.ObjDelete, lib, "lv_obj_delete")
	purego.RegisterLibFunc(&abi.ObjIsValid, lib, "lv_obj_is_valid")
	purego.RegisterLibFunc(&abi.ObjGetParent, lib, "lv_obj_get_parent")
	purego.RegisterLibFunc(&abi.ObjGetChild, lib, "lv_obj_get_child")
	purego.RegisterLibFunc(&abi.ObjGetChildCount, lib, "lv_obj_get_child_count")
	purego.RegisterLibFunc(&abi.ScreenActive, lib, "lv_screen_active")
	purego.RegisterLibFunc(&abi.ScreenLoad, lib, "lv_screen_load")

	purego.RegisterLibFunc(&abi.ObjSetPos, lib, "lv_obj_set_pos")
	purego.RegisterLibFunc(&abi.ObjSetSize, lib, "lv_obj_set_size")
	purego.RegisterLibFunc(&abi.ObjAlign, lib, "lv_obj_align")
	purego.RegisterLibFunc(&abi.ObjAddState, lib, "lv_obj_add_state")
	purego.RegisterLibFunc(&abi.ObjRemoveState, lib, "lv_obj_remove_state")
	purego.RegisterLibFunc(&abi.ObjHasState, lib, "lv_obj_has_state")
	purego.RegisterLibFunc(&abi.ObjAddFlag, lib, "lv_obj_add_flag")
	purego.RegisterLibFunc(&abi.ObjRemoveFlag, lib, "lv_obj_remove_flag")
	purego.RegisterLibFunc(&abi.ObjInvalidate, lib, "lv_obj_invalidate")

	purego.RegisterLibFunc(&abi.ObjAddEventCB, lib, "lv_obj_add_event_cb")
	purego.RegisterLibFunc(&abi.ObjRemoveEventCB, lib, "lv_obj_remove_event_cb_with_user_data")
	purego.RegisterLibFunc(&abi.EventGetCode, lib, "lv_event_get_code")
	purego.RegisterLibFunc(&abi.EventGetTarget, lib, "lv_event_get_target")
	purego.RegisterLibFunc(&abi.EventGetUserData, lib, "lv_event_get_user_data")

	purego.RegisterLibFunc(&abi.StyleInit, lib, "lv_style_init")
	purego.RegisterLibFunc(&abi.StyleReset, lib, "lv_style_reset")
	purego.RegisterLibFunc(&abi.StyleSetBgColor, lib, "lv_style_set_bg_color")
	purego.RegisterLibFunc(&abi.StyleSetBgOpa, lib, "lv_style_set_bg_opa")
	purego.RegisterLibFunc(&abi.StyleSetTextColor, lib, "lv_style_set_text_color")
	purego.RegisterLibFunc(&abi.StyleSetBorderColor, lib, "lv_style_set_border_color")
	purego.RegisterLibFunc(&abi.StyleSetBorderWidth, lib, "lv_style_set_border_width")
	purego.RegisterLibFunc(&abi.StyleSetRadius, lib, "lv_style_set_radius")
	purego.RegisterLibFunc(&abi.StyleSetPadTop, lib, "lv_style_set_pad_top")
	purego.RegisterLibFunc(&abi.StyleSetPadBottom, lib, "lv_style_set_pad_bottom")
	purego.RegisterLibFunc(&abi.StyleSetPadLeft, lib, "lv_style_set_pad_left")
	purego.RegisterLibFunc(&abi.StyleSetPadRight, lib, "lv_style_set_pad_right")
	purego.RegisterLibFunc(&abi.ObjAddStyle, lib, "lv_obj_add_style")

	purego.RegisterLibFunc(&abi.ObjSetStyleBgColor, lib, "lv_obj_set_style_bg_color")
	purego.RegisterLibFunc(&abi.ObjSetStyleTextColor, lib, "lv_obj_set_style_text_color")

	purego.RegisterLibFunc(&abi.LabelCreate, lib, "lv_label_create")
	purego.RegisterLibFunc(&abi.LabelSetText, lib, "lv_label_set_text")
	purego.RegisterLibFunc(&abi.ButtonCreate, lib, "lv_button_create")
	purego.RegisterLibFunc(&abi.SliderCreate, lib, "lv_slider_create")
	purego.RegisterLibFunc(&abi.SliderSetValue, lib, "lv_slider_set_value")
	purego.RegisterLibFunc(&abi.SliderGetValue, lib, "lv_slider_get_value")
	purego.RegisterLibFunc(&abi.SliderSetRange, lib, "lv_slider_set_range")
	purego.RegisterLibFunc(&abi.SwitchCreate, lib, "lv_switch_create")
	purego.RegisterLibFunc(&abi.BarCreate, lib, "lv_bar_create")
	purego.RegisterLibFunc(&abi.BarSetValue, lib, "lv_bar_set_value")
	purego.RegisterLibFunc(&abi.BarSetRange, lib, "lv_bar_set_range")

	purego.RegisterLibFunc(&abi.DisplayCreate, lib, "lv_display_create")
	purego.RegisterLibFunc(&abi.DisplayDelete, lib, "lv_display_delete")
	purego.RegisterLibFunc(&abi.DisplaySetBuffers, lib, "lv_display_set_buffers")
	purego.RegisterLibFunc(&abi.DisplaySetFlushCB, lib, "lv_display_set_flush_cb")
	purego.RegisterLibFunc(&abi.DisplayFlushReady, lib, "lv_display_flush_ready")
	purego.RegisterLibFunc(&abi.DisplayGetHorRes, lib, "lv_display_get_horizontal_resolution")
	purego.RegisterLibFunc(&abi.DisplayGetVerRes, lib, "lv_display_get_vertical_resolution")

	purego.RegisterLibFunc(&abi.IndevCreate, lib, "lv_indev_create")
	purego.RegisterLibFunc(&abi.IndevDelete, lib, "lv_indev_delete")
	purego.RegisterLibFunc(&abi.IndevSetType, lib, "lv_indev_set_type")
	purego.RegisterLibFunc(&abi.IndevSetReadCB, lib, "lv_indev_set_read_cb")

	abi.NewEventCallback = func(fn EventFn) Callback {
		return Callback(purego.NewCallback(func(event uintptr) uintptr {
			fn(event)
			return 0
		}))
	}
	abi.NewFlushCallback = func(fn FlushFn) Callback {
		return Callback(purego.NewCallback(func(disp, area, pxMap uintptr) uintptr {
			fn(disp, (*Area)(unsafe.Pointer(area)), pxMap)
			return 0
		}))
	}
	abi.NewReadCallback = func(fn ReadFn) Callback {
		return Callback(purego.NewCallback(func(indev, data uintptr) uintptr {
			fn(indev, (*IndevData)(unsafe.Pointer(data)))
			return 0
		}))
	}

	if err := checkVersion(abi); err != nil {
		return nil, err
	}
	return abi, nil
}

// checkVersion rejects a library whose major.minor differs from the pin.
// Patch-level skew is tolerated: the symbols and struct layouts the bridge
// depends on are stable within a minor series.
func checkVersion(abi *ABI) error {
	got := fmt.Sprintf("v%d.%d.%d", abi.VersionMajor(), abi.VersionMinor(), abi.VersionPatch())
	if !semver.IsValid(got) {
		return fmt.Errorf("bind: native library reported invalid version %q", got)
	}
	if semver.MajorMinor(got) != semver.MajorMinor(PinnedVersion) {
		return fmt.Errorf("bind: native library is %s, bridge is pinned to %s", got, PinnedVersion)
	}
	return nil
}
