package audiobuf

import (
	"math"

	"github.com/cwbudde/algo-audiobuf/dsp/core"
)

// Int16ToFloat64 maps a 16-bit sample to [-1, 1).
func Int16ToFloat64(s int16) float64 {
	return float64(s) / 32768
}

// Float64ToInt16 maps x in [-1, 1] to a 16-bit sample, clamping out-of-range input.
func Float64ToInt16(x float64) int16 {
	return int16(math.Round(core.Clamp(x*32768, math.MinInt16, math.MaxInt16)))
}

// Float32ToInt16 is [Float64ToInt16] for float32 input.
func Float32ToInt16(x float32) int16 {
	return Float64ToInt16(float64(x))
}

// Int16ToFloat32 is [Int16ToFloat64] with float32 output.
func Int16ToFloat32(s int16) float32 {
	return float32(s) / 32768
}

// IntToFloat64 maps an integer sample of the given bit depth to [-1, 1).
func IntToFloat64(s, bitDepth int) float64 {
	return float64(s) / fullScale(bitDepth)
}

// Float64ToInt maps x in [-1, 1] to an integer sample of the given bit
// depth, clamping out-of-range input.
func Float64ToInt(x float64, bitDepth int) int {
	scale := fullScale(bitDepth)
	return int(math.Round(core.Clamp(x*scale, -scale, scale-1)))
}

// IntToFloat64Func returns a converter suitable for [Convert].
func IntToFloat64Func(bitDepth int) func(int) float64 {
	scale := fullScale(bitDepth)
	return func(s int) float64 { return float64(s) / scale }
}

// Float64ToIntFunc returns a converter suitable for [Convert].
func Float64ToIntFunc(bitDepth int) func(float64) int {
	scale := fullScale(bitDepth)
	return func(x float64) int {
		return int(math.Round(core.Clamp(x*scale, -scale, scale-1)))
	}
}

func fullScale(bitDepth int) float64 {
	if bitDepth < 1 || bitDepth > 32 {
		bitDepth = 16
	}
	return float64(int64(1) << (bitDepth - 1))
}
