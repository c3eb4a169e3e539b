package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-audiobuf/codec/wav"
	"github.com/cwbudde/algo-audiobuf/device"
	"github.com/cwbudde/algo-audiobuf/device/otodev"
	"github.com/cwbudde/algo-audiobuf/dsp/audiobuf"
	"github.com/cwbudde/algo-audiobuf/dsp/core"
	"github.com/cwbudde/algo-audiobuf/dsp/mix"
)

// profile describes the output device settings. Zero values keep the defaults.
type profile struct {
	SampleRate float64 `yaml:"sample_rate"`
	Channels   int     `yaml:"channels"`
	BlockSize  int     `yaml:"block_size"`
	Format     string  `yaml:"format"`
	Volume     float64 `yaml:"volume"`
	GainDB     float64 `yaml:"gain_db"`
}

func defaultProfile() profile {
	return profile{Format: device.FormatFloat32LE.String(), Volume: 1}
}

// loadProfile reads a YAML profile over the defaults.
func loadProfile(path string) (profile, error) {
	p := defaultProfile()
	if path == "" {
		return p, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return p, fmt.Errorf("failed to read profile %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &p); err != nil {
		return p, fmt.Errorf("failed to parse profile %s: %w", path, err)
	}
	return p, nil
}

func (p profile) config() core.ProcessorConfig {
	return core.ApplyProcessorOptions(
		core.WithSampleRate(p.SampleRate),
		core.WithChannels(p.Channels),
		core.WithBlockSize(p.BlockSize),
	)
}

type playOptions struct {
	profile  string
	tone     float64
	amp      float64
	duration time.Duration
}

// wavSource decodes path into a float32 source with gainDB applied and
// overrides cfg's rate and channel count with the file's.
func wavSource(path string, gainDB float64, cfg *core.ProcessorConfig) (*device.ViewSource, error) {
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
	mix.GainDB(buf.Interleaved(), gainDB)

	dst := audiobuf.NewInterleaved(make([]float32, len(buf.Samples())), buf.Channels(), buf.Frames())
	if _, err := audiobuf.Convert(dst, buf.Interleaved(), func(x float64) float32 { return float32(x) }); err != nil {
		return nil, err
	}

	cfg.SampleRate = float64(clip.SampleRate)
	cfg.Channels = clip.Channels
	return device.NewViewSource(dst), nil
}

func runPlay(ctx context.Context, g *globals, cmd *cobra.Command, args []string, o playOptions) error {
	p, err := loadProfile(o.profile)
	if err != nil {
		return err
	}
	format, err := device.ParseFormat(p.Format)
	if err != nil {
		return err
	}
	cfg := p.config()

	var src device.Source
	if len(args) == 1 {
		vs, err := wavSource(args[0], p.GainDB, &cfg)
		if err != nil {
			return err
		}
		src = vs
	} else {
		src = device.NewToneSource(o.tone, o.amp, cfg.SampleRate)
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.duration)
		defer cancel()
	}

	player, err := otodev.Open(src, cfg, device.WithFormat(format), device.WithLogger(g.logger(cmd)))
	if err != nil {
		return err
	}
	defer func() { _ = player.Close() }()

	player.SetVolume(p.Volume)
	player.Play()
	err = player.Wait(ctx)
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		err = nil
	}
	fmt.Fprintf(cmd.OutOrStdout(), "played %d frames at %g Hz\n", player.Position(), cfg.SampleRate)
	return err
}

func newPlayCmd(g *globals) *cobra.Command {
	o := playOptions{}
	cmd := &cobra.Command{
		Use:   "play [file.wav]",
		Short: "Play a WAV file or a test tone on the default output device",
		Long: `Play a WAV file, or a sine tone when no file is given.

A YAML profile may set the output device parameters:

  sample_rate: 48000
  channels: 2
  block_size: 512
  format: s16le
  volume: 0.5
  gain_db: -6

The sample rate and channel count of a WAV file take precedence.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()
			return runPlay(ctx, g, cmd, args, o)
		},
	}
	cmd.Flags().StringVarP(&o.profile, "profile", "p", "", "YAML device profile")
	cmd.Flags().Float64Var(&o.tone, "tone", 440, "tone frequency in Hz")
	cmd.Flags().Float64Var(&o.amp, "amp", 0.25, "tone amplitude")
	cmd.Flags().DurationVar(&o.duration, "duration", 2*time.Second, "tone length")
	return cmd
}
