package mix

import (
	"strconv"
	"testing"

	"github.com/cwbudde/algo-audiobuf/dsp/buffer"
)

func BenchmarkAccumulate(b *testing.B) {
	for _, n := range []int{256, 1024, 4096} {
		src := buffer.New(2, n)
		dst := buffer.New(2, n)
		m := NewMixer()

		b.Run("interleaved/"+strconv.Itoa(n), func(b *testing.B) {
			b.ReportAllocs()
			b.SetBytes(int64(2 * n * 8))

			for range b.N {
				_, _ = m.Accumulate(dst.Interleaved(), src.Interleaved(), 0.5)
			}
		})
		b.Run("planar/"+strconv.Itoa(n), func(b *testing.B) {
			dv, sv := dst.Planar(), src.Planar()
			b.ReportAllocs()
			b.SetBytes(int64(2 * n * 8))

			for range b.N {
				_, _ = m.Accumulate(dv, sv, 0.5)
			}
		})
	}
}
