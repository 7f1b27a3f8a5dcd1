package editor

import (
	"gonum.org/v1/gonum/stat"

	"retouch/pkg/colorutil"
)

// Stats summarizes the luminance of the committed image for the status bar.
type Stats struct {
	Mean   float64
	StdDev float64
}

// statsSampleBudget caps how many pixels feed the statistics so large photos
// do not stall the event loop.
const statsSampleBudget = 100000

// CommittedStats computes luminance statistics over the committed buffer,
// sampling on a uniform grid when the image exceeds the sample budget.
// Returns false before the first load.
func (c *Context) CommittedStats() (Stats, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	img := c.buffers.Committed()
	if img == nil {
		return Stats{}, false
	}

	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	step := 1
	for (w/step)*(h/step) > statsSampleBudget {
		step++
	}

	samples := make([]float64, 0, (w/step+1)*(h/step+1))
	for y := bounds.Min.Y; y < bounds.Max.Y; y += step {
		for x := bounds.Min.X; x < bounds.Max.X; x += step {
			samples = append(samples, colorutil.Luminance(img.RGBAAt(x, y)))
		}
	}
	if len(samples) == 0 {
		return Stats{}, false
	}
	if len(samples) == 1 {
		return Stats{Mean: samples[0]}, true
	}

	return Stats{
		Mean:   stat.Mean(samples, nil),
		StdDev: stat.StdDev(samples, nil),
	}, true
}
