package bind

import "testing"

func TestRGB565RoundTrip(t *testing.T) {
	tests := []struct {
		name string
		c    Color
		want uint16
	}{
		{"black", Color{}, 0x0000},
		{"white", Color{Blue: 0xff, Green: 0xff, Red: 0xff}, 0xffff},
		{"red", Color{Red: 0xff}, 0xf800},
		{"green", Color{Green: 0xff}, 0x07e0},
		{"blue", Color{Blue: 0xff}, 0x001f},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.c.RGB565()
			if got != tt.want {
				t.Errorf("RGB565() = %#04x, want %#04x", got, tt.want)
			}
			r, g, b := FromRGB565(got)
			// Low bits are truncated by the 565 packing; the round trip must
			// preserve the high bits exactly.
			if r != tt.c.Red&0xf8 || g != tt.c.Green&0xfc || b != tt.c.Blue&0xf8 {
				t.Errorf("FromRGB565(%#04x) = (%d,%d,%d), want high bits of (%d,%d,%d)",
					got, r, g, b, tt.c.Red, tt.c.Green, tt.c.Blue)
			}
		})
	}
}
