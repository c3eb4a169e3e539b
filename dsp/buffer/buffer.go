package buffer

import "github.com/cwbudde/algo-audiobuf/dsp/audiobuf"

// Buffer owns channels*frames float64 samples with reuse-friendly semantics.
type Buffer struct {
	samples  []float64
	channels int
}

// New returns a zero-filled Buffer with the given shape.
func New(channels, frames int) *Buffer {
	channels = max(channels, 1)
	frames = max(frames, 0)
	return &Buffer{samples: make([]float64, channels*frames), channels: channels}
}

// FromSlice wraps an existing slice without copying. Trailing samples that
// do not fill a whole frame are not part of the Buffer.
func FromSlice(s []float64, channels int) *Buffer {
	channels = max(channels, 1)
	return &Buffer{samples: s[:len(s)/channels*channels], channels: channels}
}

// Samples returns the underlying slice.
func (b *Buffer) Samples() []float64 {
	return b.samples
}

// Channels returns the channel count.
func (b *Buffer) Channels() int {
	return b.channels
}

// Frames returns the current number of frames.
func (b *Buffer) Frames() int {
	return len(b.samples) / b.channels
}

// Cap returns the capacity of the backing slice in frames.
func (b *Buffer) Cap() int {
	return cap(b.samples) / b.channels
}

// Reshape sets the channel count and frame count, reusing capacity when
// possible. All samples are zeroed.
func (b *Buffer) Reshape(channels, frames int) {
	b.channels = max(channels, 1)
	b.samples = b.samples[:0]
	b.Resize(frames)
}

// Resize sets the frame count, reusing existing capacity when possible.
// Samples beyond the previous length are zeroed.
func (b *Buffer) Resize(frames int) {
	n := max(frames, 0) * b.channels
	oldLen := len(b.samples)
	if n <= cap(b.samples) {
		b.samples = b.samples[:n]
	} else {
		s := make([]float64, n)
		copy(s, b.samples)
		b.samples = s
	}
	// The backing array may hold stale data from previous use.
	if n > oldLen {
		clear(b.samples[oldLen:])
	}
}

// Zero sets all samples to 0.
func (b *Buffer) Zero() {
	clear(b.samples)
}

// Copy returns a deep copy of the buffer.
func (b *Buffer) Copy() *Buffer {
	s := make([]float64, len(b.samples))
	copy(s, b.samples)
	return &Buffer{samples: s, channels: b.channels}
}

// Interleaved views the storage in frame-major order.
func (b *Buffer) Interleaved() audiobuf.Interleaved[float64] {
	return audiobuf.NewInterleaved(b.samples, b.channels, b.Frames())
}

// ChannelContiguous views the storage in channel-major order.
func (b *Buffer) ChannelContiguous() audiobuf.ChannelContiguous[float64] {
	return audiobuf.NewChannelContiguous(b.samples, b.channels, b.Frames())
}

// Planar views the storage as channel-major planes.
func (b *Buffer) Planar() audiobuf.Planar[float64] {
	return audiobuf.NewPlanar(b.planes(), b.channels, b.Frames())
}

// View returns a runtime-layout view of the storage. Planar layouts slice
// the storage into planes: dense channel-major rows for
// LayoutChannelsPlanar, strided windows onto frame-major storage for
// LayoutChannelsPlanarStrided.
func (b *Buffer) View(layout audiobuf.Layout) audiobuf.Buffer[float64] {
	frames := b.Frames()
	switch layout {
	case audiobuf.LayoutChannelsContiguous:
		return audiobuf.NewChannelsContiguous(b.samples, b.channels, frames)
	case audiobuf.LayoutChannelsPlanar:
		return audiobuf.NewChannelsPlanar(b.planes(), b.channels, frames)
	case audiobuf.LayoutChannelsPlanarStrided:
		planes := make([][]float64, b.channels)
		for c := range planes {
			planes[c] = b.samples[min(c, len(b.samples)):]
		}
		return audiobuf.NewChannelsPlanarStrided(planes, b.channels, frames, b.channels)
	default:
		return audiobuf.NewFramesContiguous(b.samples, b.channels, frames)
	}
}

func (b *Buffer) planes() [][]float64 {
	frames := b.Frames()
	planes := make([][]float64, b.channels)
	for c := range planes {
		planes[c] = b.samples[c*frames : (c+1)*frames]
	}
	return planes
}
