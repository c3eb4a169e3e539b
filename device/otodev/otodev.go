// Package otodev plays device sources through an oto output context.
package otodev

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ebitengine/oto/v3"

	"github.com/cwbudde/algo-audiobuf/device"
	"github.com/cwbudde/algo-audiobuf/dsp/core"
)

// pollInterval is how often Wait checks whether playback has finished.
const pollInterval = 10 * time.Millisecond

// Player pulls audio from a device.Stream into an oto player.
// oto allows one context per process, so at most one Player should be open.
type Player struct {
	otoCtx *oto.Context
	player *oto.Player
	stream *device.Stream
	log    *slog.Logger
}

// Open creates an oto context matching cfg and a player reading from src.
// It blocks until the audio driver is ready.
func Open(src device.Source, cfg core.ProcessorConfig, opts ...device.Option) (*Player, error) {
	o := device.ApplyOptions(opts...)
	stream := device.NewStream(src, cfg, opts...)
	cfg = stream.Config()

	otoCtx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   int(cfg.SampleRate),
		ChannelCount: cfg.Channels,
		Format:       otoFormat(o.Format),
		BufferSize:   blockDuration(cfg),
	})
	if err != nil {
		_ = stream.Close()
		return nil, fmt.Errorf("otodev: create context: %w", err)
	}
	<-ready

	p := &Player{
		otoCtx: otoCtx,
		player: otoCtx.NewPlayer(stream),
		stream: stream,
		log:    o.Logger,
	}
	p.log.Info("otodev: output ready", "sample_rate", cfg.SampleRate, "channels", cfg.Channels)
	return p, nil
}

// Play starts or resumes playback.
func (p *Player) Play() { p.player.Play() }

// Pause pauses playback.
func (p *Player) Pause() { p.player.Pause() }

// SetVolume sets the output volume in [0, 1].
func (p *Player) SetVolume(v float64) { p.player.SetVolume(core.Clamp(v, 0, 1)) }

// Position returns the number of frames rendered by the source so far.
func (p *Player) Position() int64 { return p.stream.Position() }

// Wait blocks until playback ends or ctx is done.
func (p *Player) Wait(ctx context.Context) error {
	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for p.player.IsPlaying() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
	return p.player.Err()
}

// Close stops playback and releases the player. The oto context stays
// suspended for reuse by the process.
func (p *Player) Close() error {
	_ = p.stream.Close()
	if err := p.player.Close(); err != nil {
		return fmt.Errorf("otodev: close player: %w", err)
	}
	if err := p.otoCtx.Suspend(); err != nil {
		return fmt.Errorf("otodev: suspend context: %w", err)
	}
	p.log.Info("otodev: output closed", "frames", p.stream.Position())
	return nil
}

func otoFormat(f device.Format) oto.Format {
	if f == device.FormatInt16LE {
		return oto.FormatSignedInt16LE
	}
	return oto.FormatFloat32LE
}

// blockDuration returns the playback time of one block.
func blockDuration(cfg core.ProcessorConfig) time.Duration {
	return time.Duration(float64(cfg.BlockSize) / cfg.SampleRate * float64(time.Second))
}
