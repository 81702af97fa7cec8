package printers

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/warden/pkg/derive"
	"tableflip.dev/warden/pkg/facility"
	"tableflip.dev/warden/pkg/notify"
	"tableflip.dev/warden/pkg/store"
)

func (p *Printer) Inmates(items []facility.Inmate) error {
	return p.Print(items, func(tbl *uitable.Table) {
		header(tbl, "ID", "INMATE ID", "NAME", "AGE", "BLOCK", "CELL", "STATUS", "ADMITTED", "CHARGES")
		for _, i := range items {
			tbl.AddRow(faint(i.ID), i.InmateID, i.Name, i.Age, i.Block, i.CellNumber, status(string(i.Status)), i.AdmissionDate, i.Charges)
		}
	})
}

func (p *Printer) Staff(items []facility.Staff) error {
	return p.Print(items, func(tbl *uitable.Table) {
		header(tbl, "ID", "EMPLOYEE ID", "NAME", "POSITION", "DEPARTMENT", "SHIFT", "STATUS", "PHONE")
		for _, s := range items {
			tbl.AddRow(faint(s.ID), s.EmployeeID, s.Name, s.Position, s.Department, string(s.Shift), status(string(s.Status)), s.Phone)
		}
	})
}

func (p *Printer) Visitors(items []facility.Visitor) error {
	return p.Print(items, func(tbl *uitable.Table) {
		header(tbl, "ID", "NAME", "RELATIONSHIP", "VISITING", "DATE", "TIME", "STATUS", "PHONE")
		for _, v := range items {
			tbl.AddRow(faint(v.ID), v.Name, v.Relationship, v.InmateVisiting, v.VisitDate, v.VisitTime, status(string(v.Status)), v.Phone)
		}
	})
}

func (p *Printer) Cells(items []facility.Cell) error {
	return p.Print(items, func(tbl *uitable.Table) {
		header(tbl, "ID", "CELL", "BLOCK", "TYPE", "OCCUPANCY", "STATUS", "INMATES")
		for _, c := range items {
			tbl.AddRow(faint(c.ID), c.CellNumber, c.Block, string(c.Type),
				fmt.Sprintf("%d/%d", c.CurrentOccupancy, c.Capacity), status(string(c.Status)), strings.Join(c.Inmates, ", "))
		}
	})
}

// CellBlocks prints the aggregate served by the API.
func (p *Printer) CellBlocks(items []facility.CellBlock) error {
	return p.Print(items, func(tbl *uitable.Table) {
		header(tbl, "BLOCK", "CURRENT", "CAPACITY", "UTILIZATION")
		for _, b := range items {
			tbl.AddRow(b.Name, b.Current, b.Capacity, fmt.Sprintf("%d%%", b.Utilization))
		}
	})
}

// BlockStats prints statistics derived from the cell listing.
func (p *Printer) BlockStats(items []derive.BlockStat) error {
	return p.Print(items, func(tbl *uitable.Table) {
		header(tbl, "BLOCK", "CELLS", "AVAILABLE", "CURRENT", "CAPACITY", "UTILIZATION")
		for _, b := range items {
			tbl.AddRow(b.Block, b.Cells, b.Available, b.Current, b.Capacity, fmt.Sprintf("%d%%", b.Utilization))
		}
	})
}

// Strings prints one value per line, or a list in JSON and YAML.
func (p *Printer) Strings(label string, values []string) error {
	return p.Print(values, func(tbl *uitable.Table) {
		header(tbl, label)
		for _, v := range values {
			tbl.AddRow(v)
		}
	})
}

// Summary prints the dashboard headline counters with the weekly series.
func (p *Printer) Summary(summary facility.DashboardSummary, staff []facility.StaffStatus, weekly []facility.WeeklyActivity, v any) error {
	return p.Print(v, func(tbl *uitable.Table) {
		b := color.New(color.Bold)
		tbl.AddRow(b.Sprint("Total Inmates"), summary.TotalInmates)
		tbl.AddRow(b.Sprint("Active Staff"), summary.ActiveStaff)
		tbl.AddRow(b.Sprint("Daily Visitors"), summary.DailyVisitors)
		tbl.AddRow(b.Sprint("Available Cells"), summary.AvailableCells)
		tbl.AddRow("")
		header(tbl, "STAFF", "COUNT")
		for _, s := range staff {
			tbl.AddRow(status(s.Name), s.Value)
		}
		tbl.AddRow("")
		header(tbl, "DAY", "ADMISSIONS", "RELEASES", "VISITORS", "INCIDENTS")
		for _, w := range weekly {
			tbl.AddRow(w.Day, w.Admissions, w.Releases, w.Visitors, w.Incidents)
		}
	})
}

func (p *Printer) Settings(s store.Settings) error {
	return p.Print(s, func(tbl *uitable.Table) {
		header(tbl, "KEY", "VALUE")
		for _, key := range store.SettingKeys() {
			v, _ := s.Get(key)
			tbl.AddRow(key, v)
		}
	})
}

func (p *Printer) Session(s store.Session) error {
	return p.Print(s, func(tbl *uitable.Table) {
		tbl.AddRow(color.New(color.Bold).Sprint(s.User), faint("since "+s.LoggedIn.Format("2006-01-02 15:04")))
	})
}

// Report prints where a generated workbook was written.
func (p *Printer) Report(title, path, period string) error {
	v := map[string]string{"report": title, "file": path, "period": period}
	return p.Print(v, func(tbl *uitable.Table) {
		tbl.AddRow(color.New(color.Bold).Sprint(title), path, faint(period))
	})
}

// Notification prints one notification line, colored by severity. It is the
// command line rendition of a toast.
func Notification(out io.Writer, n notify.Notification) {
	c := color.New(color.FgCyan)
	mark := "i"
	switch n.Severity {
	case notify.Success:
		c, mark = color.New(color.FgGreen), "✓"
	case notify.Error:
		c, mark = color.New(color.FgRed), "✗"
	}
	_, _ = c.Fprintf(out, "%s %s: %s\n", mark, n.Title, n.Description)
}

// NotificationSink prints notifications to out as they are raised.
func NotificationSink(out io.Writer) notify.Sink {
	return notify.SinkFunc(func(n notify.Notification) {
		Notification(out, n)
	})
}
