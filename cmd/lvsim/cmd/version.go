package cmd

import (
	"fmt"

	"github.com/embedkit/lvgo/pkg/bind"
)

func init() {
	RegisterCommand(&Command{
		Name:  "version",
		Short: "Show version information",
		Long: `Print the lvsim version and the LVGL release line the bridge is
pinned to. A loaded native library must match that line at the
major.minor level.`,
		Usage: "lvsim version",
		Run:   runVersion,
	})
}

func runVersion(args []string) error {
	fmt.Printf("lvsim version %s (built %s)\n", Version, BuildTime)
	fmt.Printf("pinned LVGL %s\n", bind.PinnedVersion)
	return nil
}
