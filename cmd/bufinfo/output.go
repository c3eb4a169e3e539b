package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/goccy/go-yaml"
)

// outputFormat selects how command results are printed.
type outputFormat string

const (
	formatTable outputFormat = "table"
	formatYAML  outputFormat = "yaml"
	formatJSON  outputFormat = "json"
)

// table is implemented by results that can print themselves as rows.
type table interface {
	header() []string
	rows() [][]string
}

// render writes result to w in the requested format.
func render(w io.Writer, format string, result table) error {
	switch outputFormat(strings.ToLower(format)) {
	case formatTable, "":
		return renderTable(w, result)
	case formatYAML:
		data, err := yaml.Marshal(result)
		if err != nil {
			return fmt.Errorf("failed to format output: %w", err)
		}
		_, err = w.Write(data)
		return err
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
}

func renderTable(w io.Writer, result table) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	header := result.header()
	rule := make([]string, len(header))
	for i, h := range header {
		rule[i] = strings.Repeat("-", len(h))
	}
	lines := append([][]string{header, rule}, result.rows()...)
	for _, line := range lines {
		if _, err := fmt.Fprintln(tw, strings.Join(line, "\t")); err != nil {
			return fmt.Errorf("failed to write output row: %w", err)
		}
	}
	return tw.Flush()
}
