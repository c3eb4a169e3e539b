package main

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-audiobuf/version"
)

type versionReport struct {
	Version  string `json:"version" yaml:"version"`
	Platform string `json:"platform" yaml:"platform"`
	Source   string `json:"source,omitempty" yaml:"source,omitempty"`
	Date     string `json:"date,omitempty" yaml:"date,omitempty"`
	State    string `json:"state" yaml:"state"`
	Features string `json:"features" yaml:"features"`
}

func (r *versionReport) header() []string { return []string{"Field", "Value"} }

func (r *versionReport) rows() [][]string {
	return [][]string{
		{"version", r.Version},
		{"platform", r.Platform},
		{"source", r.Source},
		{"date", r.Date},
		{"state", r.State},
		{"features", r.Features},
	}
}

func currentVersion() *versionReport {
	src := version.CurrentSourceInfo()
	return &versionReport{
		Version:  version.Current().String(),
		Platform: runtime.GOOS + "/" + runtime.GOARCH,
		Source:   src.URLWithRevision(),
		Date:     src.Date,
		State:    src.StateString(),
		Features: version.BuildFeatures(),
	}
}

func newVersionCmd(g *globals) *cobra.Command {
	var short bool
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if short {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), version.String())
				return err
			}
			return render(cmd.OutOrStdout(), g.format, currentVersion())
		},
	}
	cmd.Flags().BoolVar(&short, "short", false, "print a single line")
	return cmd
}
