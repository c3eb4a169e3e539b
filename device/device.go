// Package device connects audio sources to sound-device backends.
//
// A Source renders into whatever buffer layout the backend owns: pull-model
// backends such as oto read encoded bytes from a Stream, which renders into
// an interleaved scratch view; callback backends such as PortAudio hand over
// per-channel planes, which RenderPlanar wraps in a planar view.
package device

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/cwbudde/algo-audiobuf/dsp/audiobuf"
)

var (
	// ErrUnavailable is returned by backends that were not compiled in.
	ErrUnavailable = errors.New("device: backend unavailable")
	// ErrUnknownFormat is returned by ParseFormat for unrecognised names.
	ErrUnknownFormat = errors.New("device: unknown sample format")
)

// Source produces audio on demand. Render must fill every sample of out; out
// is zeroed before the call, so a source that has nothing to add may return
// without writing.
type Source interface {
	Render(out audiobuf.View[float32])
}

// SourceFunc adapts a function to the Source interface.
type SourceFunc func(out audiobuf.View[float32])

// Render calls f(out).
func (f SourceFunc) Render(out audiobuf.View[float32]) { f(out) }

// Finite is implemented by sources with a natural end. A Stream reports
// io.EOF once its source is done.
type Finite interface {
	Done() bool
}

// Format is the wire encoding of samples produced by a Stream.
type Format int

const (
	FormatFloat32LE Format = iota
	FormatInt16LE
)

// BytesPerSample returns the encoded size of one sample.
func (f Format) BytesPerSample() int {
	if f == FormatInt16LE {
		return 2
	}
	return 4
}

func (f Format) String() string {
	switch f {
	case FormatFloat32LE:
		return "f32le"
	case FormatInt16LE:
		return "s16le"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

// ParseFormat returns the Format named s ("f32le" or "s16le").
func ParseFormat(s string) (Format, error) {
	switch s {
	case "f32le", "float32":
		return FormatFloat32LE, nil
	case "s16le", "int16":
		return FormatInt16LE, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
}

// Option configures a Stream or backend.
type Option func(*Options)

// Options holds settings shared by streams and backends.
type Options struct {
	Format Format
	Logger *slog.Logger
}

// WithFormat selects the sample encoding.
func WithFormat(f Format) Option {
	return func(o *Options) {
		o.Format = f
	}
}

// WithLogger sets the logger. A nil logger is ignored.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

// ApplyOptions resolves opts over the defaults: float32 samples and slog.Default().
func ApplyOptions(opts ...Option) Options {
	o := Options{
		Format: FormatFloat32LE,
		Logger: slog.Default(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}

// RenderPlanar renders src into a non-interleaved device buffer. Only the
// leading run of non-nil planes, capped at maxChannels, is exposed to the
// source. It returns the number of channels rendered.
func RenderPlanar(src Source, planes [][]float32, maxChannels int) int {
	channels := audiobuf.ValidChannels(planes, maxChannels)
	if channels == 0 {
		return 0
	}
	frames := len(planes[0])
	for _, p := range planes[1:channels] {
		frames = min(frames, len(p))
	}

	view := audiobuf.NewPlanar(planes, channels, frames)
	audiobuf.Clear[float32](view)
	src.Render(view)
	return channels
}
