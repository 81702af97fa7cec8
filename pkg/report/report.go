// Package report renders facility reports as xlsx workbooks.
package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"tableflip.dev/warden/pkg/derive"
	"tableflip.dev/warden/pkg/facility"
)

// Type selects the detail sheet of a report.
type Type string

const (
	InmateSummary Type = "inmate-summary"
	StaffSchedule Type = "staff-schedule"
	VisitorLog    Type = "visitor-log"
	CellOccupancy Type = "cell-occupancy"
	// Facility includes every detail sheet.
	Facility Type = "facility"
)

// Types returns the supported report types.
func Types() []Type {
	return []Type{InmateSummary, StaffSchedule, VisitorLog, CellOccupancy, Facility}
}

// Title is the human name of the report.
func (t Type) Title() string {
	switch t {
	case InmateSummary:
		return "Inmate Summary Report"
	case StaffSchedule:
		return "Staff Schedule Report"
	case VisitorLog:
		return "Visitor Activity Report"
	case CellOccupancy:
		return "Cell Occupancy Report"
	case Facility:
		return "Facility Report"
	default:
		return "Custom Report"
	}
}

// Description is a one line summary of the report.
func (t Type) Description() string {
	switch t {
	case InmateSummary:
		return "Overview of all inmates and their status"
	case StaffSchedule:
		return "Current staff assignments and schedules"
	case VisitorLog:
		return "Recent visitor logs and statistics"
	case CellOccupancy:
		return "Current cell assignments and availability"
	case Facility:
		return "All of the above in one workbook"
	default:
		return ""
	}
}

// ParseType converts raw input into a Type.
func ParseType(raw string) (Type, error) {
	for _, t := range Types() {
		if strings.EqualFold(string(t), strings.TrimSpace(raw)) {
			return t, nil
		}
	}
	return "", fmt.Errorf("report: unknown report type %q", raw)
}

// Range bounds the dates included in a report. A zero bound is open.
type Range struct {
	From time.Time
	To   time.Time
}

const dateLayout = "2006-01-02"

// ParseRange parses YYYY-MM-DD bounds; empty strings leave a bound open.
func ParseRange(from, to string) (Range, error) {
	var r Range
	var err error
	if strings.TrimSpace(from) != "" {
		if r.From, err = time.Parse(dateLayout, strings.TrimSpace(from)); err != nil {
			return Range{}, fmt.Errorf("report: from: %w", err)
		}
	}
	if strings.TrimSpace(to) != "" {
		if r.To, err = time.Parse(dateLayout, strings.TrimSpace(to)); err != nil {
			return Range{}, fmt.Errorf("report: to: %w", err)
		}
	}
	if !r.From.IsZero() && !r.To.IsZero() && r.To.Before(r.From) {
		return Range{}, fmt.Errorf("report: range ends before it starts")
	}
	return r, nil
}

// Open reports whether the range has no bounds.
func (r Range) Open() bool {
	return r.From.IsZero() && r.To.IsZero()
}

// Contains reports whether date (YYYY-MM-DD, or an RFC 3339 timestamp) falls
// in the range, bounds included. Undated records only match an open range.
func (r Range) Contains(date string) bool {
	if r.Open() {
		return true
	}
	d, ok := parseDate(date)
	if !ok {
		return false
	}
	if !r.From.IsZero() && d.Before(r.From) {
		return false
	}
	if !r.To.IsZero() && d.After(r.To) {
		return false
	}
	return true
}

// String renders the range for the report header.
func (r Range) String() string {
	switch {
	case r.Open():
		return "All dates"
	case r.From.IsZero():
		return "Up to " + r.To.Format(dateLayout)
	case r.To.IsZero():
		return "From " + r.From.Format(dateLayout)
	default:
		return r.From.Format(dateLayout) + " to " + r.To.Format(dateLayout)
	}
}

func parseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if len(s) >= len(dateLayout) {
		if d, err := time.Parse(dateLayout, s[:len(dateLayout)]); err == nil {
			return d, true
		}
	}
	return time.Time{}, false
}

// Data is the input of a report.
type Data struct {
	Inmates   []facility.Inmate
	Staff     []facility.Staff
	Visitors  []facility.Visitor
	Cells     []facility.Cell
	Summary   facility.DashboardSummary
	Facility  string
	Generated time.Time
}

// Write renders the report of type t over data to w.
func Write(w io.Writer, t Type, rng Range, data Data) error {
	f, err := Build(t, rng, data)
	if err != nil {
		return err
	}
	defer f.Close()
	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("report: write: %w", err)
	}
	return nil
}

// Save renders the report to path.
func Save(path string, t Type, rng Range, data Data) error {
	f, err := Build(t, rng, data)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("report: save %s: %w", path, err)
	}
	return nil
}

// Build renders the workbook. The caller must Close it.
func Build(t Type, rng Range, data Data) (*excelize.File, error) {
	if _, err := ParseType(string(t)); err != nil {
		return nil, err
	}
	if data.Generated.IsZero() {
		data.Generated = time.Now()
	}

	f := excelize.NewFile()
	b := &builder{f: f}
	if err := b.init(); err != nil {
		f.Close()
		return nil, err
	}

	steps := []func() error{func() error { return b.summary(t, rng, data) }}
	if t == InmateSummary || t == Facility {
		steps = append(steps, func() error { return b.inmates(rng, data.Inmates) })
	}
	if t == StaffSchedule || t == Facility {
		steps = append(steps, func() error { return b.staff(rng, data.Staff) })
	}
	if t == VisitorLog || t == Facility {
		steps = append(steps, func() error { return b.visitors(rng, data.Visitors) })
	}
	if t == CellOccupancy || t == Facility {
		steps = append(steps, func() error { return b.cells(data.Cells) })
	}
	for _, step := range steps {
		if err := step(); err != nil {
			f.Close()
			return nil, err
		}
	}
	return f, nil
}

// Load classifies a block's utilization for the summary sheet.
func Load(utilization int) string {
	switch {
	case utilization >= 95:
		return "High"
	case utilization >= 70:
		return "Normal"
	default:
		return "Low"
	}
}

func blockStats(cells []facility.Cell) []derive.BlockStat {
	return derive.BlockStats(cells)
}
