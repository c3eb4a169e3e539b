// Package mix provides gain and summing primitives over audiobuf views.
//
// Each operation looks for the widest contiguous run the views expose (the
// whole buffer, then one span per channel) and hands it to the SIMD block
// kernels of algo-vecmath, falling back to per-sample access otherwise.
package mix

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-audiobuf/dsp/audiobuf"
	"github.com/cwbudde/algo-audiobuf/dsp/buffer"
	"github.com/cwbudde/algo-audiobuf/dsp/core"
)

// ErrEnvelopeTooShort is returned when an envelope covers fewer frames than the view.
var ErrEnvelopeTooShort = errors.New("mix: envelope shorter than view")

// Gain multiplies every sample of v by g. Unity gain leaves v untouched.
func Gain(v audiobuf.View[float64], g float64) {
	if core.NearlyEqual(g, 1, 0) {
		return
	}
	if data := v.Data(); data != nil {
		vecmath.ScaleBlock(data, data, g)
		return
	}
	for c := range v.Channels() {
		if span, ok := audiobuf.ChannelSpan(v, c); ok {
			vecmath.ScaleBlock(span, span, g)
			continue
		}
		for f := range v.Frames() {
			*v.Ptr(c, f) *= g
		}
	}
}

// GainDB applies a gain given in decibels.
func GainDB(v audiobuf.View[float64], db float64) {
	Gain(v, core.DBToLinear(db))
}

// ApplyEnvelope multiplies frame f of every channel by env[f].
func ApplyEnvelope(v audiobuf.View[float64], env []float64) error {
	frames := v.Frames()
	if len(env) < frames {
		return fmt.Errorf("%w: %d < %d", ErrEnvelopeTooShort, len(env), frames)
	}
	env = env[:frames]
	for c := range v.Channels() {
		if span, ok := audiobuf.ChannelSpan(v, c); ok {
			vecmath.MulBlockInPlace(span, env)
			continue
		}
		for f, e := range env {
			*v.Ptr(c, f) *= e
		}
	}
	return nil
}

// Mixer sums sources into a destination view. Its scratch memory is pooled,
// so a Mixer may be shared between goroutines that mix into distinct views.
type Mixer struct {
	scratch *buffer.Pool
}

// NewMixer returns a Mixer with its own scratch pool.
func NewMixer() *Mixer {
	return &Mixer{scratch: buffer.NewPool()}
}

var defaultMixer = NewMixer()

// Accumulate adds g*src to dst using a package-level Mixer.
func Accumulate(dst, src audiobuf.View[float64], g float64) (int, error) {
	return defaultMixer.Accumulate(dst, src, g)
}

// Accumulate adds g*src to dst for the first min(dst.Frames(), src.Frames())
// frames and returns that frame count.
func (m *Mixer) Accumulate(dst, src audiobuf.View[float64], g float64) (int, error) {
	channels := src.Channels()
	if dst.Channels() != channels {
		return 0, fmt.Errorf("%w: dst has %d, src has %d", audiobuf.ErrShapeMismatch, dst.Channels(), channels)
	}
	frames := min(dst.Frames(), src.Frames())
	if frames == 0 || channels == 0 {
		return frames, nil
	}

	if dst.IsContiguous() && src.IsContiguous() && dst.FramesAreContiguous() && src.FramesAreContiguous() {
		n := channels * frames
		m.addScaled(dst.Data()[:n], src.Data()[:n], g)
		return frames, nil
	}

	for c := range channels {
		d, dok := audiobuf.ChannelSpan(dst, c)
		s, sok := audiobuf.ChannelSpan(src, c)
		if dok && sok {
			m.addScaled(d[:frames], s[:frames], g)
			continue
		}
		for f := range frames {
			*dst.Ptr(c, f) += g * src.At(c, f)
		}
	}
	return frames, nil
}

func (m *Mixer) addScaled(dst, src []float64, g float64) {
	if g == 1 {
		vecmath.AddBlockInPlace(dst, src)
		return
	}
	tmp := m.scratch.Get(1, len(src))
	vecmath.ScaleBlock(tmp.Samples(), src, g)
	vecmath.AddBlockInPlace(dst, tmp.Samples())
	m.scratch.Put(tmp)
}
