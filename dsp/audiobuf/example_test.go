package audiobuf_test

import (
	"fmt"

	"github.com/cwbudde/algo-audiobuf/dsp/audiobuf"
)

func ExampleNewFramesContiguous() {
	// Two channels, four frames: L0 R0 L1 R1 L2 R2 L3 R3.
	raw := []int{0, 10, 1, 11, 2, 12, 3, 13}
	b := audiobuf.NewFramesContiguous(raw, 2, 4)

	fmt.Println(b.At(1, 2), b.FramesAreContiguous(), b.ChannelsAreContiguous())

	// Output:
	// 12 true false
}

func ExampleWithOffset() {
	raw := make([]float32, 8)
	v := audiobuf.NewInterleaved(raw, 2, 4)

	// The producer has filled one frame; hand out the rest.
	rest := audiobuf.WithOffset[float32](v, 1)
	audiobuf.Fill[float32](rest, 0.5)

	fmt.Println(rest.Frames(), rest.IsContiguous())
	fmt.Println(raw)

	// Output:
	// 3 true
	// [0 0 0.5 0.5 0.5 0.5 0.5 0.5]
}

func ExampleValidChannels() {
	left := make([]float32, 64)
	right := make([]float32, 64)
	slots := [][]float32{left, right, nil, nil, nil, nil}

	channels := audiobuf.ValidChannels(slots, len(slots))
	v := audiobuf.NewPlanar(slots, channels, 64)

	fmt.Println(channels, v.Samples())

	// Output:
	// 2 128
}

func ExampleCopy() {
	planar := audiobuf.NewPlanar([][]int16{{1, 2, 3}, {-1, -2, -3}}, 2, 3)
	raw := make([]int16, 6)

	n, _ := audiobuf.Copy[int16](audiobuf.NewInterleaved(raw, 2, 3), planar)
	fmt.Println(n, raw)

	// Output:
	// 3 [1 -1 2 -2 3 -3]
}
