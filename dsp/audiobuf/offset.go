package audiobuf

import "fmt"

// Offset is the suffix of a view starting offset frames into it.
//
// It lets a producer hand out "the remaining space" after a partial fill
// without leaking index arithmetic into the caller. The channel count and
// both axis predicates describe the wrapped storage; the suffix is only one
// contiguous run if the wrapped view is contiguous and frame-contiguous.
type Offset[T Sample, V View[T]] struct {
	view   V
	offset int
}

// WithOffset returns the suffix of v starting at offsetFrames.
// It panics unless 0 <= offsetFrames <= v.Frames().
func WithOffset[T Sample, V View[T]](v V, offsetFrames int) Offset[T, V] {
	if offsetFrames < 0 || offsetFrames > v.Frames() {
		panic(fmt.Sprintf("audiobuf: offset %d outside [0, %d]", offsetFrames, v.Frames()))
	}
	return Offset[T, V]{view: v, offset: offsetFrames}
}

// TryWithOffset is like [WithOffset] but reports an invalid offset as
// [ErrOffsetOutOfRange].
func TryWithOffset[T Sample, V View[T]](v V, offsetFrames int) (Offset[T, V], error) {
	if offsetFrames < 0 || offsetFrames > v.Frames() {
		return Offset[T, V]{}, fmt.Errorf("%w: %d of %d frames", ErrOffsetOutOfRange, offsetFrames, v.Frames())
	}
	return Offset[T, V]{view: v, offset: offsetFrames}, nil
}

// Unwrap returns the wrapped view.
func (o Offset[T, V]) Unwrap() V { return o.view }

// OffsetFrames returns the number of leading frames hidden by o.
func (o Offset[T, V]) OffsetFrames() int { return o.offset }

func (o Offset[T, V]) Channels() int { return o.view.Channels() }
func (o Offset[T, V]) Frames() int   { return o.view.Frames() - o.offset }
func (o Offset[T, V]) Samples() int  { return o.Channels() * o.Frames() }

func (o Offset[T, V]) At(channel, frame int) T {
	return o.view.At(channel, o.offset+frame)
}

func (o Offset[T, V]) Set(channel, frame int, x T) {
	o.view.Set(channel, o.offset+frame, x)
}

func (o Offset[T, V]) Ptr(channel, frame int) *T {
	return o.view.Ptr(channel, o.offset+frame)
}

func (o Offset[T, V]) Data() []T {
	if !o.IsContiguous() {
		return nil
	}
	start := o.Channels() * o.offset
	return o.view.Data()[start : start+o.Samples()]
}

func (o Offset[T, V]) IsContiguous() bool {
	return o.view.IsContiguous() && o.view.FramesAreContiguous()
}

func (o Offset[T, V]) ChannelsAreContiguous() bool { return o.view.ChannelsAreContiguous() }
func (o Offset[T, V]) FramesAreContiguous() bool   { return o.view.FramesAreContiguous() }

func (o Offset[T, V]) ChannelSpan(c int) ([]T, bool) {
	span, ok := ChannelSpan[T](o.view, c)
	if !ok {
		return nil, false
	}
	return span[o.offset:], true
}
