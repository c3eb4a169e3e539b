// Package wav reads and writes PCM WAV files as audiobuf views.
//
// Samples are exchanged as signed integers at the file's bit depth. 8-bit
// files, stored unsigned on disk, are re-centred around zero on decode and
// shifted back on encode.
package wav

import (
	"errors"
	"fmt"
	"io"

	"github.com/go-audio/audio"
	gowav "github.com/go-audio/wav"

	"github.com/cwbudde/algo-audiobuf/dsp/audiobuf"
	"github.com/cwbudde/algo-audiobuf/dsp/buffer"
)

var (
	// ErrInvalidFile is returned when the input is not a readable WAV file.
	ErrInvalidFile = errors.New("wav: invalid file")
	// ErrUnsupportedFormat is returned for non-PCM encodings such as IEEE float.
	ErrUnsupportedFormat = errors.New("wav: unsupported sample format")
	// ErrUnsupportedBitDepth is returned for bit depths other than 8, 16, 24 and 32.
	ErrUnsupportedBitDepth = errors.New("wav: unsupported bit depth")
	// ErrInvalidSampleRate is returned for non-positive sample rates.
	ErrInvalidSampleRate = errors.New("wav: invalid sample rate")
)

const (
	formatPCM        = 1
	formatExtensible = 0xFFFE
	unsignedBias     = 128
)

// Clip is decoded PCM audio held as interleaved signed samples.
type Clip struct {
	SampleRate int
	BitDepth   int
	Channels   int
	Data       []int
}

// Frames returns the number of complete frames in the clip.
func (c *Clip) Frames() int {
	if c.Channels <= 0 {
		return 0
	}
	return len(c.Data) / c.Channels
}

// View returns a frame-major view over the clip's samples.
func (c *Clip) View() audiobuf.Interleaved[int] {
	return audiobuf.NewInterleaved(c.Data, c.Channels, c.Frames())
}

// Float64 converts the clip to an owned float buffer scaled to [-1, 1).
func (c *Clip) Float64() *buffer.Buffer {
	out := buffer.New(c.Channels, c.Frames())
	_, _ = audiobuf.Convert(out.Interleaved(), c.View(), audiobuf.IntToFloat64Func(c.BitDepth))
	return out
}

// Decode reads a complete PCM WAV stream.
func Decode(r io.ReadSeeker) (*Clip, error) {
	dec := gowav.NewDecoder(r)
	if !dec.IsValidFile() {
		if err := dec.Err(); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidFile, err)
		}
		return nil, ErrInvalidFile
	}
	if f := dec.WavAudioFormat; f != formatPCM && f != formatExtensible {
		return nil, fmt.Errorf("%w: format tag %#x", ErrUnsupportedFormat, f)
	}
	if err := checkBitDepth(int(dec.BitDepth)); err != nil {
		return nil, err
	}

	pcm, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("wav: read pcm: %w", err)
	}

	view, err := FromIntBuffer(pcm)
	if err != nil {
		return nil, err
	}
	data := view.Data()
	if pcm.SourceBitDepth == 8 {
		for i := range data {
			data[i] -= unsignedBias
		}
	}

	return &Clip{
		SampleRate: int(dec.SampleRate),
		BitDepth:   int(dec.BitDepth),
		Channels:   view.Channels(),
		Data:       data,
	}, nil
}

// Encode writes v as a PCM WAV stream. Samples must already be scaled to
// bitDepth; the writer is left open.
func Encode(w io.WriteSeeker, v audiobuf.View[int], sampleRate, bitDepth int) error {
	if err := checkBitDepth(bitDepth); err != nil {
		return err
	}
	if sampleRate <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidSampleRate, sampleRate)
	}

	buf := ToIntBuffer(v, sampleRate, bitDepth)
	if bitDepth == 8 {
		for i := range buf.Data {
			buf.Data[i] += unsignedBias
		}
	}

	enc := gowav.NewEncoder(w, sampleRate, bitDepth, v.Channels(), formatPCM)
	if err := enc.Write(buf); err != nil {
		return fmt.Errorf("wav: write pcm: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("wav: finalize header: %w", err)
	}
	return nil
}

// EncodeFloat64 scales v from [-1, 1] to bitDepth and writes it with [Encode].
func EncodeFloat64(w io.WriteSeeker, v audiobuf.View[float64], sampleRate, bitDepth int) error {
	if err := checkBitDepth(bitDepth); err != nil {
		return err
	}
	ints := audiobuf.NewInterleaved(make([]int, v.Samples()), v.Channels(), v.Frames())
	if _, err := audiobuf.Convert(ints, v, audiobuf.Float64ToIntFunc(bitDepth)); err != nil {
		return err
	}
	return Encode(w, ints, sampleRate, bitDepth)
}

// FromIntBuffer returns a view over the interleaved data of buf without copying.
// A trailing partial frame is excluded.
func FromIntBuffer(buf *audio.IntBuffer) (audiobuf.Interleaved[int], error) {
	if buf == nil || buf.Format == nil || buf.Format.NumChannels <= 0 {
		return audiobuf.Interleaved[int]{}, fmt.Errorf("%w: missing channel format", ErrInvalidFile)
	}
	channels := buf.Format.NumChannels
	return audiobuf.NewInterleaved(buf.Data, channels, len(buf.Data)/channels), nil
}

// ToIntBuffer copies v into a new interleaved audio.IntBuffer.
func ToIntBuffer(v audiobuf.View[int], sampleRate, bitDepth int) *audio.IntBuffer {
	data := make([]int, v.Samples())
	_, _ = audiobuf.Copy(audiobuf.NewInterleaved(data, v.Channels(), v.Frames()), v)

	return &audio.IntBuffer{
		Data:           data,
		Format:         &audio.Format{NumChannels: v.Channels(), SampleRate: sampleRate},
		SourceBitDepth: bitDepth,
	}
}

func checkBitDepth(bitDepth int) error {
	switch bitDepth {
	case 8, 16, 24, 32:
		return nil
	default:
		return fmt.Errorf("%w: %d", ErrUnsupportedBitDepth, bitDepth)
	}
}
