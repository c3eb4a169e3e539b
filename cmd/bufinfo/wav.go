package main

import (
	"fmt"
	"math"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-audiobuf/codec/wav"
	"github.com/cwbudde/algo-audiobuf/dsp/window"
	"github.com/cwbudde/algo-audiobuf/measure/spectrum"
	"github.com/cwbudde/algo-audiobuf/stats/level"
)

// dbFloor replaces -Inf levels of silent channels so every output format can encode them.
const dbFloor = -200.0

type channelRow struct {
	Channel       int     `json:"channel" yaml:"channel"`
	PeakDB        float64 `json:"peak_db" yaml:"peak_db"`
	RMSDB         float64 `json:"rms_db" yaml:"rms_db"`
	DC            float64 `json:"dc" yaml:"dc"`
	CrestDB       float64 `json:"crest_db" yaml:"crest_db"`
	ZeroCrossings int     `json:"zero_crossings" yaml:"zero_crossings"`
	Clipped       int     `json:"clipped" yaml:"clipped"`
	PeakHz        float64 `json:"peak_hz,omitempty" yaml:"peak_hz,omitempty"`
}

type wavReport struct {
	File       string       `json:"file" yaml:"file"`
	SampleRate int          `json:"sample_rate" yaml:"sample_rate"`
	BitDepth   int          `json:"bit_depth" yaml:"bit_depth"`
	Frames     int          `json:"frames" yaml:"frames"`
	Seconds    float64      `json:"seconds" yaml:"seconds"`
	Channels   []channelRow `json:"channels" yaml:"channels"`

	spectrum bool
}

func (r *wavReport) header() []string {
	h := []string{"Channel", "Peak [dB]", "RMS [dB]", "DC", "Crest [dB]", "Zero X", "Clipped"}
	if r.spectrum {
		h = append(h, "Peak [Hz]")
	}
	return h
}

func (r *wavReport) rows() [][]string {
	out := make([][]string, 0, len(r.Channels))
	for _, c := range r.Channels {
		row := []string{
			strconv.Itoa(c.Channel),
			fmt.Sprintf("%.2f", c.PeakDB),
			fmt.Sprintf("%.2f", c.RMSDB),
			fmt.Sprintf("%.6f", c.DC),
			fmt.Sprintf("%.2f", c.CrestDB),
			strconv.Itoa(c.ZeroCrossings),
			strconv.Itoa(c.Clipped),
		}
		if r.spectrum {
			row = append(row, fmt.Sprintf("%.1f", c.PeakHz))
		}
		out = append(out, row)
	}
	return out
}

func floorDB(db float64) float64 {
	if math.IsNaN(db) {
		return dbFloor
	}
	return math.Max(db, dbFloor)
}

type wavOptions struct {
	fftSize int
	window  string
	ceiling float64
}

// analyzeWav decodes path and measures every channel. A non-zero fftSize
// adds the strongest spectral bin of the first fftSize frames.
func analyzeWav(path string, o wavOptions) (*wavReport, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	clip, err := wav.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	buf := clip.Float64()
	v := buf.Interleaved()

	report := &wavReport{
		File:       path,
		SampleRate: clip.SampleRate,
		BitDepth:   clip.BitDepth,
		Frames:     v.Frames(),
		spectrum:   o.fftSize > 0,
	}
	if clip.SampleRate > 0 {
		report.Seconds = float64(v.Frames()) / float64(clip.SampleRate)
	}

	var an *spectrum.Analyzer
	if o.fftSize > 0 {
		wt, err := window.ParseType(o.window)
		if err != nil {
			return nil, err
		}
		an, err = spectrum.New(o.fftSize, spectrum.WithWindow(wt), spectrum.WithSampleRate(float64(clip.SampleRate)))
		if err != nil {
			return nil, err
		}
	}

	for c, s := range level.Calculate(v, level.WithClipCeiling(o.ceiling)) {
		row := channelRow{
			Channel:       c,
			PeakDB:        floorDB(s.Peak_dB),
			RMSDB:         floorDB(s.RMS_dB),
			DC:            s.DC,
			CrestDB:       floorDB(s.CrestFactor_dB),
			ZeroCrossings: s.ZeroCrossings,
			Clipped:       s.Clipped,
		}
		if an != nil {
			_, freq, _, err := an.Peak(v, c, 0)
			if err != nil {
				return nil, err
			}
			row.PeakHz = freq
		}
		report.Channels = append(report.Channels, row)
	}
	return report, nil
}

func newWavCmd(g *globals) *cobra.Command {
	o := wavOptions{}
	cmd := &cobra.Command{
		Use:   "wav <file>",
		Short: "Print per-channel level statistics of a WAV file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := analyzeWav(args[0], o)
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), g.format, report)
		},
	}
	cmd.Flags().IntVar(&o.fftSize, "fft", 0, "FFT size for the spectral peak (power of two, 0 disables)")
	cmd.Flags().StringVar(&o.window, "window", window.TypeHann.String(), "analysis window for --fft")
	cmd.Flags().Float64Var(&o.ceiling, "clip", level.DefaultClipCeiling, "absolute level counted as clipped")
	return cmd
}
