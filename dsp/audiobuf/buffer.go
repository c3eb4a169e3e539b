package audiobuf

import "fmt"

// Buffer is a view whose layout is chosen at construction time.
//
// Contiguous layouts address buf[c*channelStride+f*frameStride]; planar
// layouts address planes[c][f*frameStride], which lets a plane itself be a
// strided window, e.g. one half of an interleaved stereo slice. The layout
// tag, not the strides, decides which storage is active.
type Buffer[T Sample] struct {
	layout        Layout
	contiguous    []T
	planes        [][]T
	frameStride   int
	channelStride int
	channels      int
	frames        int
}

// NewFramesContiguous returns an interleaved Buffer over buf.
func NewFramesContiguous[T Sample](buf []T, channels, frames int) Buffer[T] {
	checkSpan(len(buf), channels, frames)
	return Buffer[T]{
		layout:        LayoutFramesContiguous,
		contiguous:    buf,
		frameStride:   channels,
		channelStride: 1,
		channels:      channels,
		frames:        frames,
	}
}

// NewChannelsContiguous returns a channel-major Buffer over buf.
func NewChannelsContiguous[T Sample](buf []T, channels, frames int) Buffer[T] {
	checkSpan(len(buf), channels, frames)
	return Buffer[T]{
		layout:        LayoutChannelsContiguous,
		contiguous:    buf,
		frameStride:   1,
		channelStride: frames,
		channels:      channels,
		frames:        frames,
	}
}

// NewChannelsPlanar returns a Buffer with one dense slice per channel.
func NewChannelsPlanar[T Sample](planes [][]T, channels, frames int) Buffer[T] {
	return NewChannelsPlanarStrided(planes, channels, frames, 1)
}

// NewChannelsPlanarStrided returns a Buffer with one slice per channel in
// which consecutive frames are frameStride samples apart.
func NewChannelsPlanarStrided[T Sample](planes [][]T, channels, frames, frameStride int) Buffer[T] {
	checkDims(channels, frames)
	if len(planes) < channels {
		panic("audiobuf: fewer planes than channels")
	}
	if frameStride < 1 {
		panic(fmt.Sprintf("audiobuf: invalid frame stride %d", frameStride))
	}
	layout := LayoutChannelsPlanarStrided
	if frameStride == 1 {
		layout = LayoutChannelsPlanar
	}
	return Buffer[T]{
		layout:      layout,
		planes:      planes,
		frameStride: frameStride,
		channels:    channels,
		frames:      frames,
	}
}

// Layout returns the layout tag the Buffer was constructed with.
func (b Buffer[T]) Layout() Layout { return b.layout }

// FrameStride returns the distance in samples between consecutive frames of
// one channel.
func (b Buffer[T]) FrameStride() int { return b.frameStride }

// ChannelStride returns the distance in samples between consecutive channels
// of one frame. It is 0 for planar layouts.
func (b Buffer[T]) ChannelStride() int { return b.channelStride }

func (b Buffer[T]) Channels() int { return b.channels }
func (b Buffer[T]) Frames() int   { return b.frames }
func (b Buffer[T]) Samples() int  { return b.channels * b.frames }

func (b Buffer[T]) At(channel, frame int) T {
	if b.layout.Planar() {
		return b.planes[channel][frame*b.frameStride]
	}
	return b.contiguous[channel*b.channelStride+frame*b.frameStride]
}

func (b Buffer[T]) Set(channel, frame int, x T) {
	if b.layout.Planar() {
		b.planes[channel][frame*b.frameStride] = x
		return
	}
	b.contiguous[channel*b.channelStride+frame*b.frameStride] = x
}

func (b Buffer[T]) Ptr(channel, frame int) *T {
	if b.layout.Planar() {
		return &b.planes[channel][frame*b.frameStride]
	}
	return &b.contiguous[channel*b.channelStride+frame*b.frameStride]
}

func (b Buffer[T]) Data() []T {
	if b.layout.Planar() {
		return nil
	}
	return b.contiguous[:b.channels*b.frames]
}

func (b Buffer[T]) IsContiguous() bool { return !b.layout.Planar() }

func (b Buffer[T]) ChannelsAreContiguous() bool { return b.channelStride == b.frames }

func (b Buffer[T]) FramesAreContiguous() bool { return b.frameStride == b.channels }

func (b Buffer[T]) ChannelSpan(c int) ([]T, bool) {
	if b.frameStride != 1 {
		return nil, false
	}
	if b.layout.Planar() {
		return b.planes[c][:b.frames], true
	}
	start := c * b.channelStride
	return b.contiguous[start : start+b.frames], true
}
