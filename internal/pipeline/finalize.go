package pipeline

import (
	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-vocoder/dsp/core"
	"github.com/cwbudde/algo-vocoder/dsp/dither"
)

type finalStats struct {
	peakDBFS float64 // after gain, before clipping
	clipped  int
}

// finalize applies gain and clips buf to [-1, 1] in place, then quantizes
// it with q.
func finalize(buf []float64, gain float64, q *dither.Quantizer) ([]int, finalStats) {
	vecmath.ScaleBlockInPlace(buf, gain)

	stats := finalStats{peakDBFS: core.LinearToDB(vecmath.MaxAbs(buf))}
	stats.clipped = core.ClipBlock(buf, -1, 1)

	return q.QuantizeBlock(nil, buf), stats
}
