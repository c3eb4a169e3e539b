package audiobuf

// Planar addresses one slice per channel: sample (c, f) is planes[c][f].
//
// A nil plane marks an absent channel; see [ValidChannels]. Indexing such a
// channel panics.
type Planar[T Sample] struct {
	planes   [][]T
	channels int
	frames   int
}

// NewPlanar returns a planar view over the first channels entries of planes.
// Each present plane must hold at least frames samples.
func NewPlanar[T Sample](planes [][]T, channels, frames int) Planar[T] {
	checkDims(channels, frames)
	if len(planes) < channels {
		panic("audiobuf: fewer planes than channels")
	}
	return Planar[T]{planes: planes, channels: channels, frames: frames}
}

func (v Planar[T]) Channels() int { return v.channels }
func (v Planar[T]) Frames() int   { return v.frames }
func (v Planar[T]) Samples() int  { return v.channels * v.frames }

func (v Planar[T]) At(channel, frame int) T       { return v.planes[channel][frame] }
func (v Planar[T]) Set(channel, frame int, x T)   { v.planes[channel][frame] = x }
func (v Planar[T]) Ptr(channel, frame int) *T     { return &v.planes[channel][frame] }
func (v Planar[T]) Data() []T                     { return nil }
func (v Planar[T]) IsContiguous() bool            { return false }
func (v Planar[T]) ChannelsAreContiguous() bool   { return false }
func (v Planar[T]) FramesAreContiguous() bool     { return false }
func (v Planar[T]) ChannelSpan(c int) ([]T, bool) { return v.planes[c][:v.frames], true }

// Plane returns the frames of channel c.
func (v Planar[T]) Plane(c int) []T { return v.planes[c][:v.frames] }

// Planes returns the per-channel slices the view was built from.
func (v Planar[T]) Planes() [][]T { return v.planes[:v.channels] }

// Interleaved addresses a single slice in frame-major order: sample (c, f)
// is buf[f*channels+c].
type Interleaved[T Sample] struct {
	buf      []T
	channels int
	frames   int
}

// NewInterleaved returns an interleaved view over buf, which must hold at
// least channels*frames samples.
func NewInterleaved[T Sample](buf []T, channels, frames int) Interleaved[T] {
	checkSpan(len(buf), channels, frames)
	return Interleaved[T]{buf: buf, channels: channels, frames: frames}
}

func (v Interleaved[T]) Channels() int { return v.channels }
func (v Interleaved[T]) Frames() int   { return v.frames }
func (v Interleaved[T]) Samples() int  { return v.channels * v.frames }

func (v Interleaved[T]) At(channel, frame int) T {
	return v.buf[v.channels*frame+channel]
}

func (v Interleaved[T]) Set(channel, frame int, x T) {
	v.buf[v.channels*frame+channel] = x
}

func (v Interleaved[T]) Ptr(channel, frame int) *T {
	return &v.buf[v.channels*frame+channel]
}

func (v Interleaved[T]) Data() []T                   { return v.buf[:v.channels*v.frames] }
func (v Interleaved[T]) IsContiguous() bool          { return true }
func (v Interleaved[T]) ChannelsAreContiguous() bool { return false }
func (v Interleaved[T]) FramesAreContiguous() bool   { return true }

// ChannelSpan only succeeds for mono views, where a channel is the whole buffer.
func (v Interleaved[T]) ChannelSpan(c int) ([]T, bool) {
	if v.channels != 1 {
		return nil, false
	}
	return v.buf[:v.frames], true
}

// Frame returns the Channels() samples of frame f.
func (v Interleaved[T]) Frame(f int) []T {
	return v.buf[f*v.channels : (f+1)*v.channels]
}

// ChannelContiguous addresses a single slice in channel-major order: sample
// (c, f) is buf[c*frames+f].
type ChannelContiguous[T Sample] struct {
	buf      []T
	channels int
	frames   int
}

// NewChannelContiguous returns a channel-major view over buf, which must hold
// at least channels*frames samples.
func NewChannelContiguous[T Sample](buf []T, channels, frames int) ChannelContiguous[T] {
	checkSpan(len(buf), channels, frames)
	return ChannelContiguous[T]{buf: buf, channels: channels, frames: frames}
}

func (v ChannelContiguous[T]) Channels() int { return v.channels }
func (v ChannelContiguous[T]) Frames() int   { return v.frames }
func (v ChannelContiguous[T]) Samples() int  { return v.channels * v.frames }

func (v ChannelContiguous[T]) At(channel, frame int) T {
	return v.buf[v.frames*channel+frame]
}

func (v ChannelContiguous[T]) Set(channel, frame int, x T) {
	v.buf[v.frames*channel+frame] = x
}

func (v ChannelContiguous[T]) Ptr(channel, frame int) *T {
	return &v.buf[v.frames*channel+frame]
}

func (v ChannelContiguous[T]) Data() []T                   { return v.buf[:v.channels*v.frames] }
func (v ChannelContiguous[T]) IsContiguous() bool          { return true }
func (v ChannelContiguous[T]) ChannelsAreContiguous() bool { return true }
func (v ChannelContiguous[T]) FramesAreContiguous() bool   { return false }

func (v ChannelContiguous[T]) ChannelSpan(c int) ([]T, bool) {
	return v.buf[c*v.frames : (c+1)*v.frames], true
}
