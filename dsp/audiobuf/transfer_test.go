package audiobuf

import (
	"errors"
	"testing"
)

// blank returns views of every layout with the given shape, zero-filled.
func blank(channels, frames int) []fixture {
	out := fixtures(channels, frames)
	for _, fx := range out {
		Clear(fx.view)
	}
	return out
}

func TestCopyAcrossLayouts(t *testing.T) {
	const channels, frames = 3, 5
	for _, src := range fixtures(channels, frames) {
		for _, dst := range blank(channels, frames) {
			n, err := Copy(dst.view, src.view)
			if err != nil {
				t.Fatalf("%s <- %s: %v", dst.name, src.name, err)
			}
			if n != frames {
				t.Fatalf("%s <- %s: copied %d frames, want %d", dst.name, src.name, n, frames)
			}
			requireContent(t, dst.name+" <- "+src.name, dst.view, 0)
		}
	}
}

func TestCopyShorterDestination(t *testing.T) {
	src := NewInterleaved([]float64{1, 2, 3, 4, 5, 6}, 2, 3)
	raw := make([]float64, 4)
	dst := NewInterleaved(raw, 2, 2)

	n, err := Copy[float64](dst, src)
	if err != nil || n != 2 {
		t.Fatalf("Copy() = %d, %v, want 2, nil", n, err)
	}
	want := []float64{1, 2, 3, 4}
	for i := range want {
		if raw[i] != want[i] {
			t.Fatalf("raw = %v, want %v", raw, want)
		}
	}
}

func TestCopyIntoOffset(t *testing.T) {
	raw := make([]float64, 8)
	dst := WithOffset[float64](NewChannelContiguous(raw, 2, 4), 2)
	src := NewInterleaved([]float64{1, 2, 3, 4}, 2, 2)

	if _, err := Copy[float64](dst, src); err != nil {
		t.Fatal(err)
	}
	want := []float64{0, 0, 1, 3, 0, 0, 2, 4}
	for i := range want {
		if raw[i] != want[i] {
			t.Fatalf("raw = %v, want %v", raw, want)
		}
	}
}

func TestCopyChannelMismatch(t *testing.T) {
	a := NewInterleaved(make([]float64, 4), 2, 2)
	b := NewInterleaved(make([]float64, 4), 1, 4)
	if _, err := Copy[float64](a, b); !errors.Is(err, ErrShapeMismatch) {
		t.Fatalf("Copy() error = %v, want ErrShapeMismatch", err)
	}
	if _, err := Convert[float64, float64](a, b, func(x float64) float64 { return x }); !errors.Is(err, ErrShapeMismatch) {
		t.Fatalf("Convert() error = %v, want ErrShapeMismatch", err)
	}
}

func TestFillAndClear(t *testing.T) {
	for _, fx := range fixtures(2, 3) {
		Fill(fx.view, 7)
		for c := range 2 {
			for f := range 3 {
				if got := fx.view.At(c, f); got != 7 {
					t.Fatalf("%s: At(%d, %d) = %v after Fill, want 7", fx.name, c, f, got)
				}
			}
		}
		Clear(fx.view)
		for c := range 2 {
			for f := range 3 {
				if got := fx.view.At(c, f); got != 0 {
					t.Fatalf("%s: At(%d, %d) = %v after Clear, want 0", fx.name, c, f, got)
				}
			}
		}
	}
}

func TestFillLeavesStrideGapsAlone(t *testing.T) {
	planes := [][]float64{{0, -1, 0, -1}}
	Fill[float64](NewChannelsPlanarStrided(planes, 1, 2, 2), 5)
	want := []float64{5, -1, 5, -1}
	for i := range want {
		if planes[0][i] != want[i] {
			t.Fatalf("plane = %v, want %v", planes[0], want)
		}
	}
}

func TestConvert(t *testing.T) {
	src := NewPlanar([][]int16{{0, 16384}, {-32768, -16384}}, 2, 2)
	raw := make([]float64, 4)
	dst := NewInterleaved(raw, 2, 2)

	n, err := Convert[float64, int16](dst, src, Int16ToFloat64)
	if err != nil || n != 2 {
		t.Fatalf("Convert() = %d, %v, want 2, nil", n, err)
	}
	want := []float64{0, -1, 0.5, -0.5}
	for i := range want {
		if raw[i] != want[i] {
			t.Fatalf("raw = %v, want %v", raw, want)
		}
	}
}

func TestEqual(t *testing.T) {
	fx := fixtures(2, 3)
	for i := 1; i < len(fx); i++ {
		if !Equal(fx[0].view, fx[i].view) {
			t.Fatalf("Equal(%s, %s) = false", fx[0].name, fx[i].name)
		}
	}
	fx[1].view.Set(1, 2, -5)
	if Equal(fx[0].view, fx[1].view) {
		t.Fatal("Equal() = true after modification")
	}
	if Equal[float64](fx[0].view, NewInterleaved(make([]float64, 6), 3, 2)) {
		t.Fatal("Equal() = true for different shapes")
	}
}

func TestInterleaveRoundTrip(t *testing.T) {
	left := []int16{1, 2, 3}
	right := []int16{-1, -2, -3}
	src := NewPlanar([][]int16{left, right}, 2, 3)
	raw := make([]int16, 6)

	n, err := Interleave(NewInterleaved(raw, 2, 3), src)
	if err != nil || n != 3 {
		t.Fatalf("Interleave() = %d, %v, want 3, nil", n, err)
	}
	want := []int16{1, -1, 2, -2, 3, -3}
	for i := range want {
		if raw[i] != want[i] {
			t.Fatalf("raw = %v, want %v", raw, want)
		}
	}

	back := NewPlanar([][]int16{make([]int16, 2), make([]int16, 2)}, 2, 2)
	n, err = Deinterleave(back, NewInterleaved(raw, 2, 3))
	if err != nil || n != 2 {
		t.Fatalf("Deinterleave() = %d, %v, want 2, nil", n, err)
	}
	if back.At(0, 1) != 2 || back.At(1, 1) != -2 {
		t.Fatalf("Deinterleave() planes = %v", back.Planes())
	}

	if _, err := Interleave(NewInterleaved(raw, 3, 2), src); !errors.Is(err, ErrShapeMismatch) {
		t.Fatalf("Interleave() error = %v, want ErrShapeMismatch", err)
	}
}
