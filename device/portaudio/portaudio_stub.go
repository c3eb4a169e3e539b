//go:build !portaudio

package portaudio

import (
	"github.com/cwbudde/algo-audiobuf/device"
	"github.com/cwbudde/algo-audiobuf/dsp/core"
)

// Enabled reports whether the PortAudio backend was compiled in.
const Enabled = false

// Stream is a placeholder for builds without PortAudio.
type Stream struct{}

// Open always returns device.ErrUnavailable.
func Open(device.Source, core.ProcessorConfig, ...device.Option) (*Stream, error) {
	return nil, device.ErrUnavailable
}

// Position returns 0.
func (s *Stream) Position() int64 { return 0 }

// Start returns device.ErrUnavailable.
func (s *Stream) Start() error { return device.ErrUnavailable }

// Stop returns device.ErrUnavailable.
func (s *Stream) Stop() error { return device.ErrUnavailable }

// Close returns device.ErrUnavailable.
func (s *Stream) Close() error { return device.ErrUnavailable }
