// Package spectrum computes magnitude spectra of single channels of audiobuf views.
package spectrum

import (
	"errors"
	"fmt"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-audiobuf/dsp/audiobuf"
	"github.com/cwbudde/algo-audiobuf/dsp/core"
	"github.com/cwbudde/algo-audiobuf/dsp/window"
)

// ErrInvalidSize is returned for FFT sizes that are not a power of two >= 2.
var ErrInvalidSize = errors.New("spectrum: size must be a power of two >= 2")

// Option configures an Analyzer.
type Option func(*config)

type config struct {
	window     window.Type
	sampleRate float64
}

// WithWindow selects the analysis window. The default is Hann.
func WithWindow(t window.Type) Option {
	return func(c *config) {
		c.window = t
	}
}

// WithSampleRate sets the rate used to map bins to frequencies.
// Non-positive values are ignored.
func WithSampleRate(rate float64) Option {
	return func(c *config) {
		if rate > 0 {
			c.sampleRate = rate
		}
	}
}

// Analyzer computes amplitude-normalised magnitude spectra of a fixed size.
// A full-scale sinusoid centred on a bin reads as 1 in that bin.
//
// An Analyzer reuses internal scratch buffers and is not safe for concurrent use.
type Analyzer struct {
	size       int
	sampleRate float64
	window     []float64
	norm       float64
	plan       *algofft.Plan[complex128]

	in  []complex128
	out []complex128
	re  []float64
	im  []float64
}

// New returns an Analyzer for frames of the given size.
func New(size int, opts ...Option) (*Analyzer, error) {
	if size < 2 || size&(size-1) != 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSize, size)
	}

	cfg := config{
		window:     window.TypeHann,
		sampleRate: core.DefaultProcessorConfig().SampleRate,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	plan, err := algofft.NewPlan64(size)
	if err != nil {
		return nil, fmt.Errorf("spectrum: fft plan: %w", err)
	}

	win := window.Generate(cfg.window, size, window.WithPeriodic())
	bins := size/2 + 1

	return &Analyzer{
		size:       size,
		sampleRate: cfg.sampleRate,
		window:     win,
		norm:       2 / (float64(size) * window.CoherentGain(win)),
		plan:       plan,
		in:         make([]complex128, size),
		out:        make([]complex128, size),
		re:         make([]float64, bins),
		im:         make([]float64, bins),
	}, nil
}

// Size returns the FFT size.
func (a *Analyzer) Size() int { return a.size }

// Bins returns the number of non-negative frequency bins, Size()/2 + 1.
func (a *Analyzer) Bins() int { return a.size/2 + 1 }

// BinFrequency returns the centre frequency of bin k in Hz.
func (a *Analyzer) BinFrequency(k int) float64 {
	return float64(k) * a.sampleRate / float64(a.size)
}

// Magnitude writes the magnitude spectrum of channel c of v, starting at
// frame start, into dst (grown if needed) and returns it. Frames past the end
// of v are treated as silence.
func (a *Analyzer) Magnitude(dst []float64, v audiobuf.View[float64], c, start int) ([]float64, error) {
	if c < 0 || c >= v.Channels() {
		return nil, fmt.Errorf("%w: %d of %d", audiobuf.ErrChannelOutOfRange, c, v.Channels())
	}
	region, err := audiobuf.TryWithOffset[float64](v, start)
	if err != nil {
		return nil, err
	}

	n := min(region.Frames(), a.size)
	if span, ok := region.ChannelSpan(c); ok {
		for i, x := range span[:n] {
			a.in[i] = complex(x*a.window[i], 0)
		}
	} else {
		for i := range n {
			a.in[i] = complex(region.At(c, i)*a.window[i], 0)
		}
	}
	clear(a.in[n:])

	if err := a.plan.Forward(a.out, a.in); err != nil {
		return nil, fmt.Errorf("spectrum: forward fft: %w", err)
	}

	for k := range a.re {
		a.re[k] = real(a.out[k])
		a.im[k] = imag(a.out[k])
	}

	dst = core.EnsureLen(dst, a.Bins())
	vecmath.Magnitude(dst, a.re, a.im)
	vecmath.ScaleBlock(dst, dst, a.norm)
	// DC and Nyquist have no mirrored negative-frequency half.
	dst[0] /= 2
	dst[len(dst)-1] /= 2

	return dst, nil
}

// Peak returns the bin with the largest magnitude in channel c of v starting
// at frame start, its frequency and its magnitude. The DC bin is skipped.
func (a *Analyzer) Peak(v audiobuf.View[float64], c, start int) (bin int, freq, mag float64, err error) {
	spec, err := a.Magnitude(nil, v, c, start)
	if err != nil {
		return 0, 0, 0, err
	}
	for k := 1; k < len(spec); k++ {
		if spec[k] > mag {
			bin, mag = k, spec[k]
		}
	}
	return bin, a.BinFrequency(bin), mag, nil
}
