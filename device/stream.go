package device

import (
	"encoding/binary"
	"io"
	"log/slog"
	"math"
	"sync"

	"github.com/cwbudde/algo-audiobuf/dsp/audiobuf"
	"github.com/cwbudde/algo-audiobuf/dsp/core"
)

// Stream renders a Source block by block and serves the result as
// little-endian PCM through io.Reader. It is safe for concurrent use.
type Stream struct {
	mu sync.Mutex

	src    Source
	cfg    core.ProcessorConfig
	format Format
	log    *slog.Logger

	scratch  []float32
	frame    []byte // one encoded frame, for reads shorter than a frame
	pending  []byte
	position int64
	closed   bool
}

// NewStream returns a Stream rendering src with the shape described by cfg.
// Unset fields of cfg take their defaults from core.DefaultProcessorConfig.
func NewStream(src Source, cfg core.ProcessorConfig, opts ...Option) *Stream {
	o := ApplyOptions(opts...)
	defaults := core.DefaultProcessorConfig()
	if cfg.Channels < 1 {
		cfg.Channels = defaults.Channels
	}
	if cfg.BlockSize < 1 {
		cfg.BlockSize = defaults.BlockSize
	}
	if cfg.SampleRate <= 0 {
		cfg.SampleRate = defaults.SampleRate
	}

	s := &Stream{
		src:     src,
		cfg:     cfg,
		format:  o.Format,
		log:     o.Logger,
		scratch: make([]float32, cfg.BlockSamples()),
		frame:   make([]byte, cfg.Channels*o.Format.BytesPerSample()),
	}
	s.log.Info("device: stream opened",
		"sample_rate", cfg.SampleRate,
		"channels", cfg.Channels,
		"block_size", cfg.BlockSize,
		"format", o.Format.String(),
	)
	return s
}

// Config returns the stream shape.
func (s *Stream) Config() core.ProcessorConfig { return s.cfg }

// Format returns the sample encoding.
func (s *Stream) Format() Format { return s.format }

// Position returns the number of frames rendered so far.
func (s *Stream) Position() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.position
}

// Read renders at most one block of whole frames into p. Reads shorter than
// one frame are served from a single rendered frame across calls.
func (s *Stream) Read(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.pending) > 0 {
		n := copy(p, s.pending)
		s.pending = s.pending[n:]
		return n, nil
	}
	if s.closed {
		return 0, io.EOF
	}
	if f, ok := s.src.(Finite); ok && f.Done() {
		return 0, io.EOF
	}
	if len(p) == 0 {
		return 0, nil
	}

	frameBytes := len(s.frame)
	frames := min(len(p)/frameBytes, s.cfg.BlockSize)
	if frames == 0 {
		s.render(s.frame, 1)
		n := copy(p, s.frame)
		s.pending = s.frame[n:]
		s.log.Debug("device: short read", "requested", len(p), "frame_bytes", frameBytes)
		return n, nil
	}

	s.render(p, frames)
	return frames * frameBytes, nil
}

// render produces frames frames of audio and encodes them into dst.
func (s *Stream) render(dst []byte, frames int) {
	channels := s.cfg.Channels
	view := audiobuf.NewInterleaved(s.scratch[:frames*channels], channels, frames)
	audiobuf.Clear[float32](view)
	s.src.Render(view)
	s.position += int64(frames)

	samples := view.Data()
	switch s.format {
	case FormatInt16LE:
		for i, x := range samples {
			binary.LittleEndian.PutUint16(dst[2*i:], uint16(audiobuf.Float32ToInt16(x)))
		}
	default:
		for i, x := range samples {
			binary.LittleEndian.PutUint32(dst[4*i:], math.Float32bits(x))
		}
	}
}

// Close ends the stream. Subsequent reads return io.EOF once any partially
// delivered frame has been drained.
func (s *Stream) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true
	s.log.Info("device: stream closed", "frames", s.position)
	return nil
}
