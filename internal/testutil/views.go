package testutil

import (
	"testing"

	"github.com/cwbudde/algo-audiobuf/dsp/audiobuf"
)

// Interleave packs equal-length channels into one frame-major slice.
func Interleave(channels ...[]float64) []float64 {
	if len(channels) == 0 {
		return nil
	}
	frames := len(channels[0])
	out := make([]float64, len(channels)*frames)
	for c, ch := range channels {
		for f := range frames {
			out[f*len(channels)+c] = ch[f]
		}
	}
	return out
}

// Channel copies channel c of v into a new slice.
func Channel(v audiobuf.View[float64], c int) []float64 {
	out := make([]float64, v.Frames())
	for f := range out {
		out[f] = v.At(c, f)
	}
	return out
}

// RequireViewNearlyEqual fails t unless v holds want[c] on every channel c.
func RequireViewNearlyEqual(t *testing.T, v audiobuf.View[float64], want [][]float64, eps float64) {
	t.Helper()
	if v.Channels() != len(want) {
		t.Fatalf("channels: got %d, want %d", v.Channels(), len(want))
	}
	for c := range want {
		RequireSliceNearlyEqual(t, Channel(v, c), want[c], eps)
	}
}
