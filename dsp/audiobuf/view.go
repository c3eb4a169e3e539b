package audiobuf

import (
	"errors"
	"fmt"
)

// Sample is the set of PCM element types a view can address.
type Sample interface {
	~int8 | ~int16 | ~int32 | ~int64 | ~int | ~uint8 | ~float32 | ~float64
}

// View is the logical access contract shared by every buffer layout.
//
// ChannelsAreContiguous reports that moving one channel moves exactly
// Frames() samples in memory; FramesAreContiguous reports that moving one
// frame moves exactly Channels() samples. A consumer may only take a bulk
// path over Data() when IsContiguous is true as well.
type View[T Sample] interface {
	Channels() int
	Frames() int
	Samples() int

	At(channel, frame int) T
	Set(channel, frame int, v T)
	Ptr(channel, frame int) *T

	// Data returns the whole view as one slice of Samples() elements, or nil
	// if the view has no single contiguous span.
	Data() []T

	IsContiguous() bool
	ChannelsAreContiguous() bool
	FramesAreContiguous() bool
}

// ChannelSpanner is implemented by views that can expose the frames of one
// channel as a slice.
type ChannelSpanner[T Sample] interface {
	ChannelSpan(channel int) ([]T, bool)
}

// ChannelSpan returns the Frames() samples of channel as a slice aliasing the
// view's storage. The second result is false if v cannot provide one.
func ChannelSpan[T Sample](v View[T], channel int) ([]T, bool) {
	if s, ok := v.(ChannelSpanner[T]); ok {
		return s.ChannelSpan(channel)
	}
	return nil, false
}

// Layout selects the memory organisation of a [Buffer].
type Layout int

// Supported layouts.
const (
	// LayoutFramesContiguous stores all channels of frame 0, then frame 1, ...
	LayoutFramesContiguous Layout = iota
	// LayoutChannelsContiguous stores all frames of channel 0, then channel 1, ...
	LayoutChannelsContiguous
	// LayoutChannelsPlanar stores each channel in its own slice.
	LayoutChannelsPlanar
	// LayoutChannelsPlanarStrided stores each channel in its own slice with a
	// fixed distance between consecutive frames.
	LayoutChannelsPlanarStrided
)

// Planar reports whether the layout keeps one slice per channel.
func (l Layout) Planar() bool {
	return l == LayoutChannelsPlanar || l == LayoutChannelsPlanarStrided
}

func (l Layout) String() string {
	switch l {
	case LayoutFramesContiguous:
		return "frames-contiguous"
	case LayoutChannelsContiguous:
		return "channels-contiguous"
	case LayoutChannelsPlanar:
		return "channels-planar"
	case LayoutChannelsPlanarStrided:
		return "channels-planar-strided"
	default:
		return fmt.Sprintf("Layout(%d)", int(l))
	}
}

// ParseLayout returns the layout named by s, as printed by [Layout.String].
func ParseLayout(s string) (Layout, error) {
	for l := LayoutFramesContiguous; l <= LayoutChannelsPlanarStrided; l++ {
		if l.String() == s {
			return l, nil
		}
	}
	switch s {
	case "interleaved":
		return LayoutFramesContiguous, nil
	case "planar":
		return LayoutChannelsPlanar, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownLayout, s)
}

// Errors returned by the checked accessors and transfer helpers.
var (
	ErrChannelOutOfRange = errors.New("audiobuf: channel out of range")
	ErrFrameOutOfRange   = errors.New("audiobuf: frame out of range")
	ErrOffsetOutOfRange  = errors.New("audiobuf: offset exceeds frame count")
	ErrShapeMismatch     = errors.New("audiobuf: channel count mismatch")
	ErrUnknownLayout     = errors.New("audiobuf: unknown layout")
)

func checkDims(channels, frames int) {
	if channels < 0 || frames < 0 {
		panic(fmt.Sprintf("audiobuf: negative dimensions %dx%d", channels, frames))
	}
}

func checkSpan(n, channels, frames int) {
	checkDims(channels, frames)
	if n < channels*frames {
		panic(fmt.Sprintf("audiobuf: storage holds %d samples, need %d", n, channels*frames))
	}
}
