package wav

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/go-audio/audio"

	"github.com/cwbudde/algo-audiobuf/dsp/audiobuf"
	"github.com/cwbudde/algo-audiobuf/internal/testutil"
)

func tempFile(t *testing.T) *os.File {
	t.Helper()
	f, err := os.Create(filepath.Join(t.TempDir(), "clip.wav"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = f.Close() })
	return f
}

func rewind(t *testing.T, f *os.File) {
	t.Helper()
	if _, err := f.Seek(0, 0); err != nil {
		t.Fatal(err)
	}
}

func TestRoundTripBitDepths(t *testing.T) {
	tests := []struct {
		bitDepth int
		samples  []int
	}{
		{8, []int{-128, 127, 0, -1, 64, -64}},
		{16, []int{-32768, 32767, 0, -1, 1000, -1000}},
		{24, []int{-8388608, 8388607, 0, -1, 70000, -70000}},
		{32, []int{-2147483648, 2147483647, 0, -1, 1 << 20, -(1 << 20)}},
	}

	for _, tt := range tests {
		t.Run(strconv.Itoa(tt.bitDepth)+"bit", func(t *testing.T) {
			f := tempFile(t)
			src := audiobuf.NewInterleaved(tt.samples, 2, 3)
			if err := Encode(f, src, 44100, tt.bitDepth); err != nil {
				t.Fatalf("Encode() error: %v", err)
			}
			rewind(t, f)

			clip, err := Decode(f)
			if err != nil {
				t.Fatalf("Decode() error: %v", err)
			}
			if clip.SampleRate != 44100 || clip.BitDepth != tt.bitDepth || clip.Channels != 2 || clip.Frames() != 3 {
				t.Fatalf("clip = %d Hz, %d bit, %d ch, %d frames", clip.SampleRate, clip.BitDepth, clip.Channels, clip.Frames())
			}
			if !audiobuf.Equal[int](clip.View(), src) {
				t.Fatalf("Data = %v, want %v", clip.Data, tt.samples)
			}
		})
	}
}

func TestEncodePlanarView(t *testing.T) {
	f := tempFile(t)
	left := []int{1, 2, 3, 4}
	right := []int{-1, -2, -3, -4}
	if err := Encode(f, audiobuf.NewPlanar([][]int{left, right}, 2, 4), 8000, 16); err != nil {
		t.Fatal(err)
	}
	rewind(t, f)

	clip, err := Decode(f)
	if err != nil {
		t.Fatal(err)
	}
	want := []int{1, -1, 2, -2, 3, -3, 4, -4}
	for i := range want {
		if clip.Data[i] != want[i] {
			t.Fatalf("Data = %v, want %v", clip.Data, want)
		}
	}
}

func TestEncodeFloat64AndBack(t *testing.T) {
	f := tempFile(t)
	sine := testutil.DeterministicSine(440, 48000, 0.5, 480)
	if err := EncodeFloat64(f, audiobuf.NewInterleaved(sine, 1, len(sine)), 48000, 24); err != nil {
		t.Fatal(err)
	}
	rewind(t, f)

	clip, err := Decode(f)
	if err != nil {
		t.Fatal(err)
	}
	got := clip.Float64()
	if got.Channels() != 1 || got.Frames() != 480 {
		t.Fatalf("Float64() shape = %dx%d, want 1x480", got.Channels(), got.Frames())
	}
	testutil.RequireSliceNearlyEqual(t, got.Samples(), sine, 1.0/(1<<23))
}

func TestEncodeRejectsBadParameters(t *testing.T) {
	v := audiobuf.NewInterleaved([]int{0, 0}, 1, 2)
	if err := Encode(tempFile(t), v, 48000, 12); !errors.Is(err, ErrUnsupportedBitDepth) {
		t.Fatalf("Encode(12 bit) error = %v, want ErrUnsupportedBitDepth", err)
	}
	if err := Encode(tempFile(t), v, 0, 16); !errors.Is(err, ErrInvalidSampleRate) {
		t.Fatalf("Encode(0 Hz) error = %v, want ErrInvalidSampleRate", err)
	}
	fv := audiobuf.NewInterleaved([]float64{0}, 1, 1)
	if err := EncodeFloat64(tempFile(t), fv, 48000, 4); !errors.Is(err, ErrUnsupportedBitDepth) {
		t.Fatalf("EncodeFloat64(4 bit) error = %v, want ErrUnsupportedBitDepth", err)
	}
}

func TestDecodeRejectsGarbage(t *testing.T) {
	_, err := Decode(bytes.NewReader([]byte("this is not a riff file at all")))
	if !errors.Is(err, ErrInvalidFile) {
		t.Fatalf("Decode() error = %v, want ErrInvalidFile", err)
	}
}

func TestIntBufferConversions(t *testing.T) {
	buf := &audio.IntBuffer{
		Data:   []int{1, 2, 3, 4, 5, 6, 7},
		Format: &audio.Format{NumChannels: 3, SampleRate: 48000},
	}
	v, err := FromIntBuffer(buf)
	if err != nil {
		t.Fatal(err)
	}
	if v.Channels() != 3 || v.Frames() != 2 || v.At(2, 1) != 6 {
		t.Fatalf("FromIntBuffer() = %dx%d, At(2, 1) = %d", v.Channels(), v.Frames(), v.At(2, 1))
	}
	v.Set(0, 0, -1)
	if buf.Data[0] != -1 {
		t.Fatal("FromIntBuffer() should alias the buffer data")
	}

	if _, err := FromIntBuffer(&audio.IntBuffer{}); !errors.Is(err, ErrInvalidFile) {
		t.Fatalf("FromIntBuffer(no format) error = %v, want ErrInvalidFile", err)
	}

	back := ToIntBuffer(audiobuf.NewChannelContiguous([]int{1, 2, 3, 4}, 2, 2), 22050, 16)
	if back.Format.NumChannels != 2 || back.Format.SampleRate != 22050 || back.SourceBitDepth != 16 {
		t.Fatalf("ToIntBuffer() format = %+v, bit depth %d", back.Format, back.SourceBitDepth)
	}
	want := []int{1, 3, 2, 4}
	for i := range want {
		if back.Data[i] != want[i] {
			t.Fatalf("ToIntBuffer().Data = %v, want %v", back.Data, want)
		}
	}
}
