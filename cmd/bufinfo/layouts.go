package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-audiobuf/dsp/audiobuf"
	"github.com/cwbudde/algo-audiobuf/dsp/buffer"
)

var errInvalidShape = errors.New("channels must be positive and frames non-negative")

var allLayouts = []audiobuf.Layout{
	audiobuf.LayoutFramesContiguous,
	audiobuf.LayoutChannelsContiguous,
	audiobuf.LayoutChannelsPlanar,
	audiobuf.LayoutChannelsPlanarStrided,
}

type shapeFlags struct {
	channels int
	frames   int
}

func (s *shapeFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVarP(&s.channels, "channels", "c", 2, "number of channels")
	cmd.Flags().IntVarP(&s.frames, "frames", "n", 4, "number of frames")
}

func (s *shapeFlags) validate() error {
	if s.channels < 1 || s.frames < 0 {
		return fmt.Errorf("%w: %dx%d", errInvalidShape, s.channels, s.frames)
	}
	return nil
}

type layoutRow struct {
	Layout                string `json:"layout" yaml:"layout"`
	Contiguous            bool   `json:"contiguous" yaml:"contiguous"`
	ChannelsAreContiguous bool   `json:"channels_contiguous" yaml:"channels_contiguous"`
	FramesAreContiguous   bool   `json:"frames_contiguous" yaml:"frames_contiguous"`
	FrameStride           int    `json:"frame_stride" yaml:"frame_stride"`
	ChannelStride         int    `json:"channel_stride" yaml:"channel_stride"`
	Spans                 bool   `json:"channel_spans" yaml:"channel_spans"`
}

type layoutsReport struct {
	Channels int         `json:"channels" yaml:"channels"`
	Frames   int         `json:"frames" yaml:"frames"`
	Offset   int         `json:"offset" yaml:"offset"`
	Layouts  []layoutRow `json:"layouts" yaml:"layouts"`
}

func (r *layoutsReport) header() []string {
	return []string{"Layout", "Contiguous", "Channels Contig", "Frames Contig", "Frame Stride", "Channel Stride", "Spans"}
}

func (r *layoutsReport) rows() [][]string {
	out := make([][]string, 0, len(r.Layouts))
	for _, l := range r.Layouts {
		out = append(out, []string{
			l.Layout,
			strconv.FormatBool(l.Contiguous),
			strconv.FormatBool(l.ChannelsAreContiguous),
			strconv.FormatBool(l.FramesAreContiguous),
			strconv.Itoa(l.FrameStride),
			strconv.Itoa(l.ChannelStride),
			strconv.FormatBool(l.Spans),
		})
	}
	return out
}

// describeLayouts builds one row per layout for a channels x frames buffer,
// viewed from frame offset onwards.
func describeLayouts(channels, frames, offset int) (*layoutsReport, error) {
	b := buffer.New(channels, frames)
	report := &layoutsReport{Channels: channels, Frames: frames - offset, Offset: offset}
	for _, layout := range allLayouts {
		bv := b.View(layout)
		v, err := audiobuf.TryWithOffset[float64](bv, offset)
		if err != nil {
			return nil, err
		}
		_, spans := audiobuf.ChannelSpan[float64](v, 0)
		report.Layouts = append(report.Layouts, layoutRow{
			Layout:                layout.String(),
			Contiguous:            v.IsContiguous(),
			ChannelsAreContiguous: v.ChannelsAreContiguous(),
			FramesAreContiguous:   v.FramesAreContiguous(),
			FrameStride:           bv.FrameStride(),
			ChannelStride:         bv.ChannelStride(),
			Spans:                 spans,
		})
	}
	return report, nil
}

func newLayoutsCmd(g *globals) *cobra.Command {
	var (
		shape  shapeFlags
		offset int
	)
	cmd := &cobra.Command{
		Use:   "layouts",
		Short: "Show contiguity predicates and strides of every layout",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := shape.validate(); err != nil {
				return err
			}
			report, err := describeLayouts(shape.channels, shape.frames, offset)
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), g.format, report)
		},
	}
	shape.register(cmd)
	cmd.Flags().IntVar(&offset, "offset", 0, "view the buffer from this frame onwards")
	return cmd
}

type indexEntry struct {
	Channel int `json:"channel" yaml:"channel"`
	Frame   int `json:"frame" yaml:"frame"`
	Index   int `json:"index" yaml:"index"`
}

type indexReport struct {
	Layout   string       `json:"layout" yaml:"layout"`
	Channels int          `json:"channels" yaml:"channels"`
	Frames   int          `json:"frames" yaml:"frames"`
	Entries  []indexEntry `json:"entries" yaml:"entries"`
}

func (r *indexReport) header() []string { return []string{"Channel", "Frame", "Index"} }

func (r *indexReport) rows() [][]string {
	out := make([][]string, 0, len(r.Entries))
	for _, e := range r.Entries {
		out = append(out, []string{strconv.Itoa(e.Channel), strconv.Itoa(e.Frame), strconv.Itoa(e.Index)})
	}
	return out
}

// describeIndex reports where each (channel, frame) lives in the backing
// storage. The storage is filled with its own indices and read back through
// the layout's view.
func describeIndex(layout audiobuf.Layout, channels, frames int) *indexReport {
	b := buffer.New(channels, frames)
	for i := range b.Samples() {
		b.Samples()[i] = float64(i)
	}
	v := b.View(layout)
	report := &indexReport{Layout: layout.String(), Channels: channels, Frames: frames}
	for c := range channels {
		for f := range frames {
			report.Entries = append(report.Entries, indexEntry{Channel: c, Frame: f, Index: int(v.At(c, f))})
		}
	}
	return report
}

func newIndexCmd(g *globals) *cobra.Command {
	var (
		shape  shapeFlags
		layout string
	)
	cmd := &cobra.Command{
		Use:   "index",
		Short: "Show the storage index of every (channel, frame) for a layout",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := shape.validate(); err != nil {
				return err
			}
			l, err := audiobuf.ParseLayout(layout)
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), g.format, describeIndex(l, shape.channels, shape.frames))
		},
	}
	shape.register(cmd)
	cmd.Flags().StringVarP(&layout, "layout", "l", audiobuf.LayoutFramesContiguous.String(), "buffer layout")
	return cmd
}
