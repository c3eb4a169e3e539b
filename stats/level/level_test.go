package level

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-audiobuf/dsp/audiobuf"
	"github.com/cwbudde/algo-audiobuf/dsp/buffer"
	"github.com/cwbudde/algo-audiobuf/internal/testutil"
)

const tolerance = 1e-10

func almostEqual(a, b, tol float64) bool {
	if math.IsInf(a, -1) && math.IsInf(b, -1) {
		return true
	}
	return math.Abs(a-b) <= tol
}

func TestCalculateDCAndSquare(t *testing.T) {
	dc := testutil.DC(0.5, 100)
	square := make([]float64, 100)
	for i := range square {
		square[i] = 1
		if i%2 == 1 {
			square[i] = -1
		}
	}
	v := audiobuf.NewPlanar([][]float64{dc, square}, 2, 100)
	got := Calculate(v)

	if len(got) != 2 {
		t.Fatalf("len(Calculate()) = %d, want 2", len(got))
	}
	if !almostEqual(got[0].DC, 0.5, tolerance) || !almostEqual(got[0].RMS, 0.5, tolerance) {
		t.Errorf("dc: DC, RMS = %g, %g, want 0.5, 0.5", got[0].DC, got[0].RMS)
	}
	if got[0].ZeroCrossings != 0 || got[0].Clipped != 0 {
		t.Errorf("dc: ZeroCrossings, Clipped = %d, %d, want 0, 0", got[0].ZeroCrossings, got[0].Clipped)
	}
	if !almostEqual(got[0].CrestFactor, 1, tolerance) || !almostEqual(got[0].CrestFactor_dB, 0, tolerance) {
		t.Errorf("dc: CrestFactor = %g (%g dB), want 1 (0 dB)", got[0].CrestFactor, got[0].CrestFactor_dB)
	}

	if got[1].ZeroCrossings != 99 {
		t.Errorf("square: ZeroCrossings = %d, want 99", got[1].ZeroCrossings)
	}
	if got[1].Clipped != 100 {
		t.Errorf("square: Clipped = %d, want 100", got[1].Clipped)
	}
	if !almostEqual(got[1].DC, 0, tolerance) || !almostEqual(got[1].Peak_dB, 0, tolerance) {
		t.Errorf("square: DC, Peak_dB = %g, %g, want 0, 0", got[1].DC, got[1].Peak_dB)
	}
}

func TestSineLevels(t *testing.T) {
	sine := testutil.DeterministicSine(1000, 48000, 0.5, 4800)
	got := Calculate(audiobuf.NewInterleaved(sine, 1, len(sine)))[0]

	if !almostEqual(got.RMS, 0.5/math.Sqrt2, 1e-9) {
		t.Errorf("RMS = %g, want %g", got.RMS, 0.5/math.Sqrt2)
	}
	if !almostEqual(got.Peak, 0.5, 1e-9) {
		t.Errorf("Peak = %g, want 0.5", got.Peak)
	}
	if got.PeakPos != 12 {
		t.Errorf("PeakPos = %d, want 12", got.PeakPos)
	}
	if !almostEqual(got.CrestFactor_dB, 20*math.Log10(math.Sqrt2), 1e-6) {
		t.Errorf("CrestFactor_dB = %g, want ~3.01", got.CrestFactor_dB)
	}
}

func TestMeterLayoutIndependent(t *testing.T) {
	left := testutil.DeterministicNoise(1, 1.2, 257)
	right := testutil.DeterministicSine(300, 48000, 0.8, 257)
	inter := buffer.FromSlice(testutil.Interleave(left, right), 2)

	views := map[string]audiobuf.View[float64]{
		"interleaved": inter.Interleaved(),
		"planar":      audiobuf.NewPlanar([][]float64{left, right}, 2, 257),
		"strided":     inter.View(audiobuf.LayoutChannelsPlanarStrided),
	}
	want := Calculate(views["planar"])

	for name, v := range views {
		t.Run(name, func(t *testing.T) {
			got := Calculate(v)
			for c := range got {
				if got[c] != want[c] {
					t.Fatalf("channel %d: %+v, want %+v", c, got[c], want[c])
				}
			}
		})
	}
}

func TestMeterStreamingMatchesBlock(t *testing.T) {
	sig := testutil.DeterministicNoise(9, 1, 1000)
	whole := audiobuf.NewInterleaved(sig, 1, len(sig))
	want := Calculate(whole)[0]

	m := NewMeter(1)
	for start := 0; start < len(sig); start += 64 {
		block := audiobuf.WithOffset[float64](whole, start)
		end := min(64, block.Frames())
		if err := m.Update(audiobuf.NewInterleaved(block.Data()[:end], 1, end)); err != nil {
			t.Fatal(err)
		}
	}
	got := m.Result()[0]

	if got.Frames != want.Frames || got.ZeroCrossings != want.ZeroCrossings || got.PeakPos != want.PeakPos {
		t.Fatalf("streaming = %+v, block = %+v", got, want)
	}
	if !almostEqual(got.RMS, want.RMS, tolerance) || !almostEqual(got.DC, want.DC, tolerance) {
		t.Fatalf("RMS, DC = %g, %g, want %g, %g", got.RMS, got.DC, want.RMS, want.DC)
	}
}

func TestMeterClipCeiling(t *testing.T) {
	v := audiobuf.NewInterleaved([]float64{0.4, -0.6, 0.9, -1.0}, 1, 4)
	tests := []struct {
		name    string
		opts    []Option
		clipped int
	}{
		{"default", nil, 1},
		{"half", []Option{WithClipCeiling(0.5)}, 3},
		{"ignored", []Option{WithClipCeiling(-1)}, 1},
		{"dBFS", []Option{WithClipCeilingDB(-3)}, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Calculate(v, tt.opts...)[0].Clipped; got != tt.clipped {
				t.Fatalf("Clipped = %d, want %d", got, tt.clipped)
			}
		})
	}
}

func TestMeterEmptyAndReset(t *testing.T) {
	m := NewMeter(2)
	for _, s := range m.Result() {
		if !math.IsInf(s.RMS_dB, -1) || !math.IsInf(s.Peak_dB, -1) || s.Frames != 0 {
			t.Fatalf("empty stats = %+v", s)
		}
	}

	if err := m.Update(audiobuf.NewInterleaved([]float64{1, 1}, 2, 1)); err != nil {
		t.Fatal(err)
	}
	m.Reset()
	if m.Channels() != 2 || m.Result()[0].Frames != 0 {
		t.Fatalf("after Reset: Channels() = %d, Frames = %d", m.Channels(), m.Result()[0].Frames)
	}
}

func TestMeterChannelMismatch(t *testing.T) {
	m := NewMeter(2)
	err := m.Update(audiobuf.NewInterleaved([]float64{1}, 1, 1))
	if !errors.Is(err, ErrChannelMismatch) {
		t.Fatalf("Update() error = %v, want ErrChannelMismatch", err)
	}
}
