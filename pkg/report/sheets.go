package report

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"tableflip.dev/warden/pkg/facility"
)

const (
	SummarySheet  = "Summary"
	InmatesSheet  = "Inmates"
	StaffSheet    = "Staff"
	VisitorsSheet = "Visitors"
	CellsSheet    = "Cells"

	defaultSheet = "Sheet1"
)

type builder struct {
	f      *excelize.File
	header int
	title  int
}

func (b *builder) init() error {
	index, err := b.f.NewSheet(SummarySheet)
	if err != nil {
		return fmt.Errorf("report: create summary sheet: %w", err)
	}
	if err := b.f.DeleteSheet(defaultSheet); err != nil {
		return fmt.Errorf("report: delete default sheet: %w", err)
	}
	b.f.SetActiveSheet(index)

	border := []excelize.Border{
		{Type: "left", Color: "000000", Style: 1},
		{Type: "top", Color: "000000", Style: 1},
		{Type: "bottom", Color: "000000", Style: 1},
		{Type: "right", Color: "000000", Style: 1},
	}
	b.header, err = b.f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#E6F3FF"},
			Pattern: 1,
		},
		Border: border,
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
	})
	if err != nil {
		return fmt.Errorf("report: header style: %w", err)
	}
	b.title, err = b.f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 14},
	})
	if err != nil {
		return fmt.Errorf("report: title style: %w", err)
	}
	return nil
}

func (b *builder) set(sheet string, col, row int, value interface{}) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return err
	}
	return b.f.SetCellValue(sheet, cell, value)
}

// table writes headers at row and one line per record below it, then sizes
// the columns and freezes the header when it is the first row.
func (b *builder) table(sheet string, row int, headers []string, widths []float64, rows [][]interface{}) error {
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, row)
		if err != nil {
			return err
		}
		if err := b.f.SetCellValue(sheet, cell, h); err != nil {
			return err
		}
		if err := b.f.SetCellStyle(sheet, cell, cell, b.header); err != nil {
			return err
		}
	}
	for r, values := range rows {
		for c, v := range values {
			if err := b.set(sheet, c+1, row+r+1, v); err != nil {
				return err
			}
		}
	}
	for i, w := range widths {
		name, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if err := b.f.SetColWidth(sheet, name, name, w); err != nil {
			return err
		}
	}
	if row == 1 {
		return b.f.SetPanes(sheet, &excelize.Panes{
			Freeze:      true,
			YSplit:      1,
			TopLeftCell: "A2",
			ActivePane:  "bottomLeft",
		})
	}
	return nil
}

func (b *builder) summary(t Type, rng Range, data Data) error {
	name := data.Facility
	if name == "" {
		name = "Facility"
	}
	lines := [][2]interface{}{
		{name, nil},
		{t.Title(), nil},
		{"Generated", data.Generated.Format("2006-01-02 15:04")},
		{"Period", rng.String()},
		{nil, nil},
		{"Executive Summary", nil},
		{"Total Inmates", data.Summary.TotalInmates},
		{"Active Staff", data.Summary.ActiveStaff},
		{"Available Cells", data.Summary.AvailableCells},
		{"Daily Visitors", data.Summary.DailyVisitors},
	}
	for i, l := range lines {
		for c, v := range l {
			if v == nil {
				continue
			}
			if err := b.set(SummarySheet, c+1, i+1, v); err != nil {
				return fmt.Errorf("report: summary: %w", err)
			}
		}
	}
	for _, cell := range []string{"A1", "A6"} {
		if err := b.f.SetCellStyle(SummarySheet, cell, cell, b.title); err != nil {
			return fmt.Errorf("report: summary: %w", err)
		}
	}

	detail := len(lines) + 2
	if err := b.set(SummarySheet, 1, detail, "Detailed Information"); err != nil {
		return fmt.Errorf("report: summary: %w", err)
	}
	cell, _ := excelize.CoordinatesToCellName(1, detail)
	if err := b.f.SetCellStyle(SummarySheet, cell, cell, b.title); err != nil {
		return fmt.Errorf("report: summary: %w", err)
	}

	var rows [][]interface{}
	for _, st := range blockStats(data.Cells) {
		rows = append(rows, []interface{}{
			"Block " + st.Block,
			st.Current,
			st.Capacity,
			fmt.Sprintf("%d%%", st.Utilization),
			Load(st.Utilization),
		})
	}
	headers := []string{"Category", "Current Count", "Capacity", "Utilization", "Status"}
	if err := b.table(SummarySheet, detail+1, headers, []float64{24, 16, 12, 14, 12}, rows); err != nil {
		return fmt.Errorf("report: summary: %w", err)
	}
	return nil
}

func (b *builder) sheet(name string) error {
	if _, err := b.f.NewSheet(name); err != nil {
		return fmt.Errorf("report: create %s sheet: %w", strings.ToLower(name), err)
	}
	return nil
}

func (b *builder) inmates(rng Range, inmates []facility.Inmate) error {
	if err := b.sheet(InmatesSheet); err != nil {
		return err
	}
	var rows [][]interface{}
	for _, i := range inmates {
		if !rng.Contains(i.AdmissionDate) {
			continue
		}
		rows = append(rows, []interface{}{i.InmateID, i.Name, i.Age, i.Block, i.CellNumber, string(i.Status), i.AdmissionDate, i.Charges})
	}
	headers := []string{"Inmate ID", "Name", "Age", "Block", "Cell", "Status", "Admission Date", "Charges"}
	if err := b.table(InmatesSheet, 1, headers, []float64{12, 24, 6, 8, 10, 12, 16, 30}, rows); err != nil {
		return fmt.Errorf("report: inmates: %w", err)
	}
	return nil
}

func (b *builder) staff(rng Range, staff []facility.Staff) error {
	if err := b.sheet(StaffSheet); err != nil {
		return err
	}
	var rows [][]interface{}
	for _, s := range staff {
		if !rng.Contains(s.HireDate) {
			continue
		}
		rows = append(rows, []interface{}{s.EmployeeID, s.Name, s.Position, s.Department, string(s.Shift), string(s.Status), s.HireDate, s.Phone})
	}
	headers := []string{"Employee ID", "Name", "Position", "Department", "Shift", "Status", "Hire Date", "Phone"}
	if err := b.table(StaffSheet, 1, headers, []float64{12, 24, 20, 18, 10, 12, 14, 16}, rows); err != nil {
		return fmt.Errorf("report: staff: %w", err)
	}
	return nil
}

func (b *builder) visitors(rng Range, visitors []facility.Visitor) error {
	if err := b.sheet(VisitorsSheet); err != nil {
		return err
	}
	var rows [][]interface{}
	for _, v := range visitors {
		if !rng.Contains(v.VisitDate) {
			continue
		}
		rows = append(rows, []interface{}{v.Name, v.Relationship, v.InmateVisiting, v.VisitDate, v.VisitTime, string(v.Status), v.Phone, v.IDNumber})
	}
	headers := []string{"Visitor", "Relationship", "Visiting", "Visit Date", "Visit Time", "Status", "Phone", "ID Number"}
	if err := b.table(VisitorsSheet, 1, headers, []float64{24, 14, 24, 14, 12, 12, 16, 16}, rows); err != nil {
		return fmt.Errorf("report: visitors: %w", err)
	}
	return nil
}

func (b *builder) cells(cells []facility.Cell) error {
	if err := b.sheet(CellsSheet); err != nil {
		return err
	}
	var rows [][]interface{}
	for _, c := range cells {
		rows = append(rows, []interface{}{c.CellNumber, c.Block, string(c.Type), c.Capacity, c.CurrentOccupancy, string(c.Status), strings.Join(c.Inmates, ", ")})
	}
	headers := []string{"Cell", "Block", "Type", "Capacity", "Occupancy", "Status", "Inmates"}
	if err := b.table(CellsSheet, 1, headers, []float64{10, 8, 14, 10, 12, 14, 40}, rows); err != nil {
		return fmt.Errorf("report: cells: %w", err)
	}
	return nil
}
