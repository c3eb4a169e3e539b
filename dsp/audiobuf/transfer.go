package audiobuf

import "fmt"

// Copy copies the first min(dst.Frames(), src.Frames()) frames of src into
// dst and returns the number of frames copied.
//
// Matching interleaved or channel-major storage is moved with one copy,
// channel spans with one copy per channel, anything else sample by sample.
func Copy[T Sample](dst, src View[T]) (int, error) {
	channels := src.Channels()
	if dst.Channels() != channels {
		return 0, fmt.Errorf("%w: dst has %d, src has %d", ErrShapeMismatch, dst.Channels(), channels)
	}
	frames := min(dst.Frames(), src.Frames())
	if frames == 0 || channels == 0 {
		return frames, nil
	}

	if dst.IsContiguous() && src.IsContiguous() {
		switch {
		case dst.FramesAreContiguous() && src.FramesAreContiguous():
			n := channels * frames
			copy(dst.Data()[:n], src.Data()[:n])
			return frames, nil
		case dst.ChannelsAreContiguous() && src.ChannelsAreContiguous() && dst.Frames() == src.Frames():
			copy(dst.Data(), src.Data())
			return frames, nil
		}
	}

	if copySpans(dst, src, channels, frames) {
		return frames, nil
	}

	for c := range channels {
		for f := range frames {
			dst.Set(c, f, src.At(c, f))
		}
	}
	return frames, nil
}

func copySpans[T Sample](dst, src View[T], channels, frames int) bool {
	ds, ok := dst.(ChannelSpanner[T])
	if !ok {
		return false
	}
	ss, ok := src.(ChannelSpanner[T])
	if !ok {
		return false
	}
	// Probe channel 0 before writing anything so a refusal leaves dst intact.
	if _, ok := ds.ChannelSpan(0); !ok {
		return false
	}
	if _, ok := ss.ChannelSpan(0); !ok {
		return false
	}
	for c := range channels {
		d, _ := ds.ChannelSpan(c)
		s, _ := ss.ChannelSpan(c)
		copy(d[:frames], s[:frames])
	}
	return true
}

// Interleave packs the planes of src into the frame-major storage of dst.
// It returns the number of frames written.
func Interleave[T Sample](dst Interleaved[T], src Planar[T]) (int, error) {
	channels := src.Channels()
	if dst.Channels() != channels {
		return 0, fmt.Errorf("%w: dst has %d, src has %d", ErrShapeMismatch, dst.Channels(), channels)
	}
	frames := min(dst.Frames(), src.Frames())
	out := dst.Data()
	for c, plane := range src.Planes() {
		for f, x := range plane[:frames] {
			out[f*channels+c] = x
		}
	}
	return frames, nil
}

// Deinterleave splits the frame-major storage of src into the planes of dst.
// It returns the number of frames written.
func Deinterleave[T Sample](dst Planar[T], src Interleaved[T]) (int, error) {
	channels := src.Channels()
	if dst.Channels() != channels {
		return 0, fmt.Errorf("%w: dst has %d, src has %d", ErrShapeMismatch, dst.Channels(), channels)
	}
	frames := min(dst.Frames(), src.Frames())
	in := src.Data()
	for c, plane := range dst.Planes() {
		for f := range plane[:frames] {
			plane[f] = in[f*channels+c]
		}
	}
	return frames, nil
}

// Fill sets every sample of v to x.
func Fill[T Sample](v View[T], x T) {
	if data := v.Data(); data != nil {
		for i := range data {
			data[i] = x
		}
		return
	}
	for c := range v.Channels() {
		if span, ok := ChannelSpan(v, c); ok {
			for i := range span {
				span[i] = x
			}
			continue
		}
		for f := range v.Frames() {
			v.Set(c, f, x)
		}
	}
}

// Clear sets every sample of v to zero.
func Clear[T Sample](v View[T]) {
	if data := v.Data(); data != nil {
		clear(data)
		return
	}
	for c := range v.Channels() {
		if span, ok := ChannelSpan(v, c); ok {
			clear(span)
			continue
		}
		var zero T
		for f := range v.Frames() {
			v.Set(c, f, zero)
		}
	}
}

// Convert writes conv(src(c, f)) into dst for the first
// min(dst.Frames(), src.Frames()) frames and returns that frame count.
func Convert[D, S Sample](dst View[D], src View[S], conv func(S) D) (int, error) {
	channels := src.Channels()
	if dst.Channels() != channels {
		return 0, fmt.Errorf("%w: dst has %d, src has %d", ErrShapeMismatch, dst.Channels(), channels)
	}
	frames := min(dst.Frames(), src.Frames())
	for c := range channels {
		for f := range frames {
			dst.Set(c, f, conv(src.At(c, f)))
		}
	}
	return frames, nil
}

// Equal reports whether a and b have the same shape and the same sample at
// every (channel, frame), regardless of layout.
func Equal[T Sample](a, b View[T]) bool {
	if a.Channels() != b.Channels() || a.Frames() != b.Frames() {
		return false
	}
	for c := range a.Channels() {
		for f := range a.Frames() {
			if a.At(c, f) != b.At(c, f) {
				return false
			}
		}
	}
	return true
}
