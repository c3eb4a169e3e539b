//go:build portaudio

package portaudio

import (
	"fmt"
	"log/slog"
	"sync/atomic"

	pa "github.com/gordonklaus/portaudio"

	"github.com/cwbudde/algo-audiobuf/device"
	"github.com/cwbudde/algo-audiobuf/dsp/core"
)

// Enabled reports whether the PortAudio backend was compiled in.
const Enabled = true

// Stream is an open PortAudio output stream.
type Stream struct {
	stream   *pa.Stream
	src      device.Source
	channels int
	log      *slog.Logger
	frames   atomic.Int64
}

// Open initialises PortAudio and opens the default output device with the
// shape in cfg. The stream is not started.
func Open(src device.Source, cfg core.ProcessorConfig, opts ...device.Option) (*Stream, error) {
	o := device.ApplyOptions(opts...)

	if err := pa.Initialize(); err != nil {
		return nil, fmt.Errorf("portaudio: initialize: %w", err)
	}

	s := &Stream{
		src:      src,
		channels: cfg.Channels,
		log:      o.Logger,
	}
	stream, err := pa.OpenDefaultStream(0, cfg.Channels, cfg.SampleRate, cfg.BlockSize, s.callback)
	if err != nil {
		_ = pa.Terminate()
		return nil, fmt.Errorf("portaudio: open stream: %w", err)
	}
	s.stream = stream

	s.log.Info("portaudio: stream opened",
		"sample_rate", cfg.SampleRate,
		"channels", cfg.Channels,
		"block_size", cfg.BlockSize,
	)
	return s, nil
}

func (s *Stream) callback(out [][]float32) {
	if n := device.RenderPlanar(s.src, out, s.channels); n < s.channels {
		s.log.Debug("portaudio: missing output planes", "valid", n, "want", s.channels)
	}
	if len(out) > 0 {
		s.frames.Add(int64(len(out[0])))
	}
}

// Position returns the number of frames handed to the device so far.
func (s *Stream) Position() int64 { return s.frames.Load() }

// Start begins calling the source.
func (s *Stream) Start() error {
	if err := s.stream.Start(); err != nil {
		return fmt.Errorf("portaudio: start: %w", err)
	}
	return nil
}

// Stop stops the callback after pending buffers have played.
func (s *Stream) Stop() error {
	if err := s.stream.Stop(); err != nil {
		return fmt.Errorf("portaudio: stop: %w", err)
	}
	return nil
}

// Close closes the stream and terminates PortAudio.
func (s *Stream) Close() error {
	if err := s.stream.Close(); err != nil {
		_ = pa.Terminate()
		return fmt.Errorf("portaudio: close: %w", err)
	}
	if err := pa.Terminate(); err != nil {
		return fmt.Errorf("portaudio: terminate: %w", err)
	}
	s.log.Info("portaudio: stream closed", "frames", s.frames.Load())
	return nil
}
