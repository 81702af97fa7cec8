// Package printers renders facility data for the command line.
package printers

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"gopkg.in/yaml.v3"
)

// Format is an output format.
type Format string

const (
	Table Format = "table"
	JSON  Format = "json"
	YAML  Format = "yaml"
)

// ParseFormat converts a flag value into a Format.
func ParseFormat(raw string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(raw))) {
	case "", Table:
		return Table, nil
	case JSON:
		return JSON, nil
	case YAML, "yml":
		return YAML, nil
	}
	return "", fmt.Errorf("printers: unknown output format %q, want table, json or yaml", raw)
}

// Printer writes values in one Format.
type Printer struct {
	Out    io.Writer
	Format Format
}

// New returns a printer writing to out. A nil out writes to color.Output.
func New(out io.Writer, format Format) *Printer {
	if out == nil {
		out = color.Output
	}
	return &Printer{Out: out, Format: format}
}

// Print writes v as JSON or YAML, or calls table to fill a table.
func (p *Printer) Print(v any, table func(*uitable.Table)) error {
	switch p.Format {
	case JSON:
		b, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(p.Out, string(b))
		return err
	case YAML:
		enc := yaml.NewEncoder(p.Out)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		tbl := uitable.New()
		tbl.Separator = "  "
		tbl.MaxColWidth = 48
		tbl.Wrap = true
		table(tbl)
		_, err := fmt.Fprintln(p.Out, tbl)
		return err
	}
}

// Title prints a bold underlined heading, only in table format.
func (p *Printer) Title(title string) {
	if p.Format != Table {
		return
	}
	t := color.New(color.Bold, color.Underline)
	_, _ = t.Fprintln(p.Out, title)
}

// Empty prints a faint placeholder, only in table format.
func (p *Printer) Empty(what string) {
	if p.Format != Table {
		return
	}
	f := color.New(color.Faint, color.Italic)
	_, _ = f.Fprintf(p.Out, " no %s\n", what)
}

func header(tbl *uitable.Table, cols ...interface{}) {
	h := color.New(color.Bold)
	row := make([]interface{}, len(cols))
	for i, c := range cols {
		row[i] = h.Sprint(c)
	}
	tbl.AddRow(row...)
}

func faint(s string) string {
	return color.New(color.Faint).Sprint(s)
}

// status colors well known status values.
func status(s string) string {
	var c *color.Color
	switch s {
	case "Active", "On Duty", "Available", "Completed", "Low":
		c = color.New(color.FgGreen)
	case "Occupied", "Scheduled", "Training", "Normal":
		c = color.New(color.FgCyan)
	case "Maintenance", "On Leave", "Transferred":
		c = color.New(color.FgYellow)
	case "Released", "Off Duty", "Closed", "Cancelled", "High":
		c = color.New(color.FgRed)
	default:
		return s
	}
	return c.Sprint(s)
}
