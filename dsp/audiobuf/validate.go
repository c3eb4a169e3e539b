package audiobuf

import "fmt"

// ValidChannels returns the number of leading non-nil planes, scanning at
// most maxChannels entries. Entries past len(planes) count as nil.
//
// Host APIs often allocate a fixed number of channel slots but only wire up
// a prefix of them. Planes after the first nil are ignored even if they are
// non-nil.
func ValidChannels[T Sample](planes [][]T, maxChannels int) int {
	n := min(maxChannels, len(planes))
	channel := 0
	for ; channel < n; channel++ {
		if planes[channel] == nil {
			break
		}
	}
	return max(channel, 0)
}

// CheckIndex reports whether (channel, frame) addresses a sample of v.
func CheckIndex[T Sample](v View[T], channel, frame int) error {
	if channel < 0 || channel >= v.Channels() {
		return fmt.Errorf("%w: %d of %d", ErrChannelOutOfRange, channel, v.Channels())
	}
	if frame < 0 || frame >= v.Frames() {
		return fmt.Errorf("%w: %d of %d", ErrFrameOutOfRange, frame, v.Frames())
	}
	return nil
}

// Load is the checked form of v.At.
func Load[T Sample](v View[T], channel, frame int) (T, error) {
	if err := CheckIndex(v, channel, frame); err != nil {
		var zero T
		return zero, err
	}
	return v.At(channel, frame), nil
}

// Store is the checked form of v.Set.
func Store[T Sample](v View[T], channel, frame int, x T) error {
	if err := CheckIndex(v, channel, frame); err != nil {
		return err
	}
	v.Set(channel, frame, x)
	return nil
}
