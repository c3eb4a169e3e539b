package audiobuf

import (
	"testing"
	"unsafe"
)

// value is the logical content every fixture holds at (c, f).
func value(c, f int) float64 { return float64(100*c + f) }

type fixture struct {
	name string
	view View[float64]
}

// fixtures builds the same logical content in every supported layout. The
// raw storage is filled from the addressing formulas directly so the
// accessors are checked against them.
func fixtures(channels, frames int) []fixture {
	inter := make([]float64, channels*frames)
	chMajor := make([]float64, channels*frames)
	planes := make([][]float64, channels)
	strided := make([][]float64, channels)
	split := make([]float64, channels*frames)
	splitPlanes := make([][]float64, channels)

	for c := range channels {
		planes[c] = make([]float64, frames)
		strided[c] = make([]float64, 2*frames)
		for f := range frames {
			inter[f*channels+c] = value(c, f)
			chMajor[c*frames+f] = value(c, f)
			planes[c][f] = value(c, f)
			strided[c][2*f] = value(c, f)
			strided[c][2*f+1] = -1
			split[f*channels+c] = value(c, f)
		}
		splitPlanes[c] = split[c:]
	}

	return []fixture{
		{"Planar", NewPlanar(planes, channels, frames)},
		{"Interleaved", NewInterleaved(inter, channels, frames)},
		{"ChannelContiguous", NewChannelContiguous(chMajor, channels, frames)},
		{"Buffer/frames-contiguous", NewFramesContiguous(clone(inter), channels, frames)},
		{"Buffer/channels-contiguous", NewChannelsContiguous(clone(chMajor), channels, frames)},
		{"Buffer/planar", NewChannelsPlanar(clonePlanes(planes), channels, frames)},
		{"Buffer/planar-strided", NewChannelsPlanarStrided(strided, channels, frames, 2)},
		{"Buffer/split-interleaved", NewChannelsPlanarStrided(splitPlanes, channels, frames, channels)},
	}
}

func clone(s []float64) []float64 {
	out := make([]float64, len(s))
	copy(out, s)
	return out
}

func clonePlanes(p [][]float64) [][]float64 {
	out := make([][]float64, len(p))
	for i := range p {
		out[i] = clone(p[i])
	}
	return out
}

// distance returns b - a in samples.
func distance[T Sample](a, b *T) int {
	var zero T
	return (int(uintptr(unsafe.Pointer(b))) - int(uintptr(unsafe.Pointer(a)))) / int(unsafe.Sizeof(zero))
}

func requireContent(t *testing.T, name string, v View[float64], offset int) {
	t.Helper()
	for c := range v.Channels() {
		for f := range v.Frames() {
			if got, want := v.At(c, f), value(c, f+offset); got != want {
				t.Fatalf("%s: At(%d, %d) = %v, want %v", name, c, f, got, want)
			}
		}
	}
}

// requireAddressing checks that the contiguity predicates agree with the
// addresses the view hands out. chainChannels enables the channel-axis check,
// which does not hold for offset views: they report the wrapped storage.
func requireAddressing(t *testing.T, name string, v View[float64], chainChannels bool) {
	t.Helper()

	channels, frames := v.Channels(), v.Frames()
	if v.Samples() != channels*frames {
		t.Fatalf("%s: Samples() = %d, want %d", name, v.Samples(), channels*frames)
	}

	if v.FramesAreContiguous() {
		for c := range channels {
			for f := 0; f+1 < frames; f++ {
				if d := distance(v.Ptr(c, f), v.Ptr(c, f+1)); d != channels {
					t.Fatalf("%s: frame step at (%d, %d) = %d samples, want %d", name, c, f, d, channels)
				}
			}
		}
	}

	if v.ChannelsAreContiguous() && chainChannels {
		for c := 0; c+1 < channels; c++ {
			for f := range frames {
				if d := distance(v.Ptr(c, f), v.Ptr(c+1, f)); d != frames {
					t.Fatalf("%s: channel step at (%d, %d) = %d samples, want %d", name, c, f, d, frames)
				}
			}
		}
	}

	data := v.Data()
	if !v.IsContiguous() {
		if data != nil {
			t.Fatalf("%s: Data() = %v, want nil for non-contiguous view", name, data)
		}
		return
	}

	if len(data) != v.Samples() {
		t.Fatalf("%s: len(Data()) = %d, want %d", name, len(data), v.Samples())
	}
	if len(data) == 0 {
		return
	}
	for c := range channels {
		for f := range frames {
			idx := distance(&data[0], v.Ptr(c, f))
			if idx < 0 || idx >= len(data) {
				t.Fatalf("%s: (%d, %d) at index %d outside Data()", name, c, f, idx)
			}
		}
	}
}
