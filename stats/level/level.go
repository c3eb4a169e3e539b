// Package level accumulates per-channel level statistics over audiobuf views.
package level

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-audiobuf/dsp/audiobuf"
	"github.com/cwbudde/algo-audiobuf/dsp/core"
)

// ErrChannelMismatch is returned when a view's channel count differs from the meter's.
var ErrChannelMismatch = errors.New("level: channel count mismatch")

// DefaultClipCeiling is the absolute level at or above which a sample counts as clipped.
const DefaultClipCeiling = 1.0

// Stats holds level statistics of one channel.
//
//nolint:revive
type Stats struct {
	Frames         int
	DC             float64 // mean
	RMS            float64
	RMS_dB         float64
	Peak           float64 // max |x|
	Peak_dB        float64
	PeakPos        int
	CrestFactor    float64 // peak / RMS (linear)
	CrestFactor_dB float64
	ZeroCrossings  int
	Clipped        int
}

// channelState accumulates one channel incrementally.
type channelState struct {
	n             int
	mean          float64
	sumSq         float64
	peak          float64
	peakPos       int
	zeroCrossings int
	clipped       int
	last          float64
}

func (s *channelState) update(samples []float64, ceiling float64) {
	for _, x := range samples {
		s.push(x, ceiling)
	}
}

func (s *channelState) push(x, ceiling float64) {
	s.n++
	s.mean += (x - s.mean) / float64(s.n)
	s.sumSq += x * x

	a := math.Abs(x)
	if a > s.peak {
		s.peak = a
		s.peakPos = s.n - 1
	}
	if a >= ceiling {
		s.clipped++
	}
	if s.n > 1 && s.last*x < 0 {
		s.zeroCrossings++
	}
	s.last = x
}

func (s *channelState) result() Stats {
	if s.n == 0 {
		return Stats{
			RMS_dB:         math.Inf(-1),
			Peak_dB:        math.Inf(-1),
			CrestFactor_dB: math.Inf(-1),
		}
	}

	rms := math.Sqrt(s.sumSq / float64(s.n))

	var crest, crestdB float64
	if rms != 0 {
		crest = s.peak / rms
		crestdB = core.LinearToDB(crest)
	}

	return Stats{
		Frames:         s.n,
		DC:             s.mean,
		RMS:            rms,
		RMS_dB:         core.LinearToDB(rms),
		Peak:           s.peak,
		Peak_dB:        core.LinearToDB(s.peak),
		PeakPos:        s.peakPos,
		CrestFactor:    crest,
		CrestFactor_dB: crestdB,
		ZeroCrossings:  s.zeroCrossings,
		Clipped:        s.clipped,
	}
}

// Option configures a Meter.
type Option func(*Meter)

// WithClipCeiling sets the absolute level counted as clipping.
// Non-positive values are ignored.
func WithClipCeiling(ceiling float64) Option {
	return func(m *Meter) {
		if ceiling > 0 {
			m.ceiling = ceiling
		}
	}
}

// WithClipCeilingDB sets the clipping level in dBFS, e.g. -0.1.
func WithClipCeilingDB(db float64) Option {
	return WithClipCeiling(core.DBToLinear(db))
}

// Meter accumulates level statistics for each channel of a stream of views.
// Successive updates continue the same signal: zero crossings and peak
// positions are tracked across block boundaries.
type Meter struct {
	ceiling  float64
	channels []channelState
}

// NewMeter creates a Meter for the given channel count.
func NewMeter(channels int, opts ...Option) *Meter {
	if channels < 0 {
		channels = 0
	}
	m := &Meter{
		ceiling:  DefaultClipCeiling,
		channels: make([]channelState, channels),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Channels returns the number of channels the meter tracks.
func (m *Meter) Channels() int { return len(m.channels) }

// Update adds every frame of v to the running statistics.
func (m *Meter) Update(v audiobuf.View[float64]) error {
	if v.Channels() != len(m.channels) {
		return fmt.Errorf("%w: view has %d, meter has %d", ErrChannelMismatch, v.Channels(), len(m.channels))
	}

	if data := v.Data(); data != nil && v.FramesAreContiguous() {
		channels := len(m.channels)
		for i, x := range data {
			m.channels[i%channels].push(x, m.ceiling)
		}
		return nil
	}

	for c := range m.channels {
		if span, ok := audiobuf.ChannelSpan(v, c); ok {
			m.channels[c].update(span, m.ceiling)
			continue
		}
		for f := range v.Frames() {
			m.channels[c].push(v.At(c, f), m.ceiling)
		}
	}
	return nil
}

// Result returns the statistics accumulated so far, one entry per channel.
func (m *Meter) Result() []Stats {
	out := make([]Stats, len(m.channels))
	for c := range m.channels {
		out[c] = m.channels[c].result()
	}
	return out
}

// Reset clears all accumulated data, keeping the channel count and ceiling.
func (m *Meter) Reset() {
	clear(m.channels)
}

// Calculate returns the statistics of every channel of v.
func Calculate(v audiobuf.View[float64], opts ...Option) []Stats {
	m := NewMeter(v.Channels(), opts...)
	_ = m.Update(v)
	return m.Result()
}
