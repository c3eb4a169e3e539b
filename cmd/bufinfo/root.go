package main

import (
	"log/slog"

	"github.com/spf13/cobra"
)

// globals holds the persistent flags shared by all commands.
type globals struct {
	format  string
	verbose bool
}

func newRootCmd() *cobra.Command {
	g := &globals{}
	root := &cobra.Command{
		Use:   "bufinfo",
		Short: "Inspect audio buffer layouts and WAV files",
		Long: `bufinfo - inspect how multichannel audio is laid out in memory.

Layouts:
  frames-contiguous        interleaved, all channels of a frame together
  channels-contiguous      one block holding each channel's frames in turn
  channels-planar          one slice per channel
  channels-planar-strided  one slice per channel, frames a fixed stride apart`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&g.format, "output", "o", string(formatTable), "output format (table, yaml, json)")
	root.PersistentFlags().BoolVarP(&g.verbose, "verbose", "v", false, "verbose logging")

	root.AddCommand(
		newLayoutsCmd(g),
		newIndexCmd(g),
		newWavCmd(g),
		newPlayCmd(g),
		newVersionCmd(g),
	)
	return root
}

// logger returns a text logger on the command's error stream.
func (g *globals) logger(cmd *cobra.Command) *slog.Logger {
	level := slog.LevelWarn
	if g.verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
}
