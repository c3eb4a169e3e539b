// Command bufinfo inspects audio buffer layouts and WAV files.
//
// Usage:
//
//	bufinfo [flags] <command> [args]
//
// Commands:
//
//	layouts  - contiguity predicates and strides of every layout for a shape
//	index    - storage index of every (channel, frame) for one layout
//	wav      - per-channel level statistics of a WAV file
//	play     - play a test tone or a WAV file on the default output device
//	version  - build information
//
// Examples:
//
//	bufinfo layouts -c 2 -n 4
//	bufinfo index --layout channels-planar-strided -c 2 -n 3
//	bufinfo wav --fft 4096 take.wav
//	bufinfo play --tone 440 --duration 2s
//	bufinfo play --profile speakers.yaml take.wav
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
