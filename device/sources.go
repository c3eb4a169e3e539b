package device

import (
	"math"

	"github.com/cwbudde/algo-audiobuf/dsp/audiobuf"
)

// ToneSource renders a sine tone on every channel.
type ToneSource struct {
	step      float64
	amplitude float32
	phase     float64
}

// NewToneSource returns a sine source at freq Hz for the given sample rate.
func NewToneSource(freq, amplitude, sampleRate float64) *ToneSource {
	return &ToneSource{
		step:      2 * math.Pi * freq / sampleRate,
		amplitude: float32(amplitude),
	}
}

// Render writes the next out.Frames() samples of the tone to every channel.
func (t *ToneSource) Render(out audiobuf.View[float32]) {
	for f := range out.Frames() {
		x := t.amplitude * float32(math.Sin(t.phase))
		for c := range out.Channels() {
			out.Set(c, f, x)
		}
		t.phase += t.step
		if t.phase >= 2*math.Pi {
			t.phase -= 2 * math.Pi
		}
	}
}

// ViewSource plays a fixed view once. When the output has more channels
// than the view, view channels are repeated cyclically; extra view channels
// are dropped.
type ViewSource struct {
	view audiobuf.View[float32]
	pos  int
}

// NewViewSource returns a source that plays v from its first frame.
func NewViewSource(v audiobuf.View[float32]) *ViewSource {
	return &ViewSource{view: v}
}

// Render copies the next frames of the view into out. Frames past the end
// of the view are left silent.
func (s *ViewSource) Render(out audiobuf.View[float32]) {
	if s.Done() || s.view.Channels() == 0 {
		return
	}
	rest := audiobuf.WithOffset[float32](s.view, s.pos)

	if out.Channels() == rest.Channels() {
		n, _ := audiobuf.Copy[float32](out, rest)
		s.pos += n
		return
	}

	frames := min(out.Frames(), rest.Frames())
	for c := range out.Channels() {
		src := c % rest.Channels()
		for f := range frames {
			out.Set(c, f, rest.At(src, f))
		}
	}
	s.pos += frames
}

// Done reports whether every frame of the view has been rendered.
func (s *ViewSource) Done() bool { return s.pos >= s.view.Frames() }

// Remaining returns the number of frames left to play.
func (s *ViewSource) Remaining() int { return s.view.Frames() - s.pos }

// Rewind restarts playback from the first frame.
func (s *ViewSource) Rewind() { s.pos = 0 }
