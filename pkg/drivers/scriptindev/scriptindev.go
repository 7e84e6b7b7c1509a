// Package scriptindev is a pointer input driver that replays a scripted
// sequence of touch gestures, one sample per poll. It drives simulations and
// interaction tests without real hardware.
package scriptindev

import "github.com/embedkit/lvgo/pkg/lvgl"

// Step holds one pointer sample for a number of polls.
type Step struct {
	Sample lvgl.Sample
	Polls  int
}

// Driver feeds scripted steps to the bridge's input poll.
type Driver struct {
	steps []Step
	left  int
}

// New returns a driver that replays steps in order. After the script runs out
// the driver reports no change, which holds the final sample.
func New(steps ...Step) *Driver {
	d := &Driver{steps: steps}
	if len(steps) > 0 {
		d.left = steps[0].Polls
	}
	return d
}

// Tap returns the steps for a press-and-release at (x, y), held for hold
// polls.
func Tap(x, y, hold int) []Step {
	if hold < 1 {
		hold = 1
	}
	return []Step{
		{Sample: lvgl.Sample{X: x, Y: y, Pressed: true}, Polls: hold},
		{Sample: lvgl.Sample{X: x, Y: y, Pressed: false}, Polls: 1},
	}
}

// Append adds steps to the end of the script.
func (d *Driver) Append(steps ...Step) {
	empty := d.Done()
	d.steps = append(d.steps, steps...)
	if empty && len(d.steps) > 0 {
		d.left = d.steps[0].Polls
	}
}

// Done reports whether the script is exhausted.
func (d *Driver) Done() bool { return len(d.steps) == 0 }

// Poll emits the current step's sample and advances the script.
func (d *Driver) Poll() (lvgl.Sample, bool) {
	if len(d.steps) == 0 {
		return lvgl.Sample{}, false
	}
	s := d.steps[0].Sample
	d.left--
	if d.left <= 0 {
		d.steps = d.steps[1:]
		if len(d.steps) > 0 {
			d.left = d.steps[0].Polls
		}
	}
	return s, true
}
