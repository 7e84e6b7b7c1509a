package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/embedkit/lvgo/cmd/lvsim/internal/config"
	"github.com/embedkit/lvgo/pkg/bind"
	"github.com/embedkit/lvgo/pkg/drivers/memdisplay"
	"github.com/embedkit/lvgo/pkg/drivers/scriptindev"
	"github.com/embedkit/lvgo/pkg/emul"
	"github.com/embedkit/lvgo/pkg/lvgl"
)

func init() {
	RegisterCommand(&Command{
		Name:  "run",
		Short: "Run a simulated UI and write the rendered frame",
		Long: `Run builds the demo widget tree, replays the scripted taps from
lvsim.yaml against it, renders the configured number of frames, and
writes the final framebuffer as PNG.

With library.path set in lvsim.yaml the real native library is loaded
through the FFI layer; otherwise the in-memory emulated core is used.

Flags:
  -C DIR    Resolve lvsim.yaml relative to DIR (default: current directory)`,
		Usage: "lvsim run [-C DIR]",
		Run:   runRun,
	})
}

func runRun(args []string) error {
	dir := "."
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "-C":
			if i+1 >= len(args) {
				return fmt.Errorf("-C requires a directory path")
			}
			dir = args[i+1]
			i++
		default:
			return fmt.Errorf("unknown argument %q", args[i])
		}
	}

	cfg, err := config.Resolve(dir)
	if err != nil {
		return err
	}

	abi, err := loadBackend(cfg)
	if err != nil {
		return err
	}
	ui, err := lvgl.Init(abi)
	if err != nil {
		return err
	}

	screen := memdisplay.New(cfg.Width, cfg.Height)
	var opts []lvgl.DisplayOption
	if cfg.BufferLines > 0 {
		opts = append(opts, lvgl.WithBufferLines(cfg.BufferLines))
	}
	if _, err := ui.RegisterDisplay(screen, opts...); err != nil {
		return err
	}

	pointer := scriptindev.New()
	for _, tap := range cfg.Taps {
		pointer.Append(scriptindev.Tap(tap.X, tap.Y, tap.Hold)...)
	}
	if _, err := ui.RegisterPointer(pointer); err != nil {
		return err
	}

	if err := buildDemo(ui); err != nil {
		return err
	}

	for frame := 0; frame < cfg.Frames; frame++ {
		if err := ui.Tick(16 * time.Millisecond); err != nil {
			return err
		}
		if _, err := ui.RunTasks(); err != nil {
			fmt.Fprintf(os.Stderr, "frame %d: %v\n", frame, err)
		}
	}

	if parent := filepath.Dir(cfg.OutputPath); parent != "." {
		if err := os.MkdirAll(parent, 0o755); err != nil {
			return err
		}
	}
	if err := screen.SavePNG(cfg.OutputPath, cfg.Scale); err != nil {
		return err
	}
	fmt.Printf("rendered %d frames (%d complete) to %s\n",
		cfg.Frames, screen.FrameCount(), cfg.OutputPath)
	return nil
}

func loadBackend(cfg *config.Resolved) (*bind.ABI, error) {
	if cfg.LibraryPath != "" {
		return bind.Load(cfg.LibraryPath)
	}
	return emul.New().ABI(), nil
}

// buildDemo assembles the counter demo: a button that increments a label,
// a slider feeding a bar, and a switch that hides the slider row.
func buildDemo(ui *lvgl.UI) error {
	scr, err := ui.ActiveScreen()
	if err != nil {
		return err
	}
	if err := scr.SetBgColor(lvgl.Hex(0x202830), lvgl.PartMain); err != nil {
		return err
	}

	count := 0
	counter, err := ui.NewLabel(scr)
	if err != nil {
		return err
	}
	if err := counter.SetText("count: 0"); err != nil {
		return err
	}
	if err := counter.Align(lvgl.AlignTopMid, 0, 8); err != nil {
		return err
	}

	btn, err := ui.NewButtonWithLabel(scr, "tap me")
	if err != nil {
		return err
	}
	if err := btn.SetSize(96, 32); err != nil {
		return err
	}
	if err := btn.Align(lvgl.AlignCenter, 0, -24); err != nil {
		return err
	}
	if _, err := btn.On(lvgl.EventClicked, func(lvgl.Event) {
		count++
		counter.SetText(fmt.Sprintf("count: %d", count))
	}); err != nil {
		return err
	}

	slider, err := ui.NewSlider(scr)
	if err != nil {
		return err
	}
	if err := slider.SetSize(160, 12); err != nil {
		return err
	}
	if err := slider.Align(lvgl.AlignCenter, 0, 24); err != nil {
		return err
	}

	bar, err := ui.NewBar(scr)
	if err != nil {
		return err
	}
	if err := bar.SetSize(160, 8); err != nil {
		return err
	}
	if err := bar.Align(lvgl.AlignBottomMid, 0, -16); err != nil {
		return err
	}
	if _, err := slider.On(lvgl.EventValueChanged, func(lvgl.Event) {
		if v, verr := slider.Value(); verr == nil {
			bar.SetValue(v, false)
		}
	}); err != nil {
		return err
	}

	sw, err := ui.NewSwitch(scr)
	if err != nil {
		return err
	}
	if err := sw.SetSize(40, 20); err != nil {
		return err
	}
	if err := sw.Align(lvgl.AlignBottomMid, 0, -40); err != nil {
		return err
	}
	_, err = sw.On(lvgl.EventValueChanged, func(lvgl.Event) {
		on, herr := sw.Checked()
		if herr != nil {
			return
		}
		slider.SetHidden(on)
	})
	return err
}
