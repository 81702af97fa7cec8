package teaui

import (
	"context"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"

	"tableflip.dev/warden/pkg/app"
	"tableflip.dev/warden/pkg/derive"
	"tableflip.dev/warden/pkg/facility"
	"tableflip.dev/warden/pkg/tui/components/form"
	"tableflip.dev/warden/pkg/tui/theme"
	"tableflip.dev/warden/pkg/tui/views/collection"
)

func choices(values []string) func(map[string]string) []string {
	return func(map[string]string) []string { return values }
}

// inmateForm offers blocks and eligible cells from the current Cell
// collection, re-read each time the choices are asked for.
func inmateForm(svc *app.Service, th theme.Theme) *form.Model {
	picker := derive.NewCellPicker(svc.Cells.Items())
	return form.New("inmates-form", "Add New Inmate", th,
		form.Field{Name: "name", Label: "Full name", Required: true},
		form.Field{Name: "age", Label: "Age", Kind: form.Number, Required: true},
		form.Field{Name: "block", Label: "Block", Kind: form.Choice, Required: true,
			Options: func(map[string]string) []string {
				picker.SetCells(svc.Cells.Items())
				return picker.Blocks()
			}},
		form.Field{Name: "cell", Label: "Cell", Kind: form.Choice, Required: true,
			Options: func(v map[string]string) []string {
				picker.SetCells(svc.Cells.Items())
				picker.SetBlock(v["block"])
				return picker.Options()
			}},
		form.Field{Name: "charges", Label: "Charges", Required: true},
	)
}

func inmatesPanel(ctx context.Context, svc *app.Service, th theme.Theme) *collection.Model[facility.Inmate] {
	return collection.New(ctx, collection.Config[facility.Inmate]{
		ID:    "inmates",
		Title: "Inmates",
		Store: svc.Inmates,
		Columns: []table.Column{
			{Title: "Inmate ID", Width: 10},
			{Title: "Name", Width: 22},
			{Title: "Age", Width: 4},
			{Title: "Block", Width: 6},
			{Title: "Cell", Width: 8},
			{Title: "Admitted", Width: 11},
			{Title: "Status", Width: 12},
			{Title: "Charges", Width: 24},
		},
		Row: func(i facility.Inmate) table.Row {
			return table.Row{i.InmateID, i.Name, strconv.Itoa(i.Age), i.Block, i.CellNumber, i.AdmissionDate, string(i.Status), i.Charges}
		},
		Key: func(i facility.Inmate) string { return i.ID },
		Filters: []collection.Filter{
			{Name: facility.FilterStatus, Key: "s", Values: facility.FilterValues(facility.AllInmateStatuses())},
			{Name: facility.FilterBlock, Key: "b"},
		},
		Statuses: func(facility.Inmate) []string { return facility.Strings(facility.AllInmateStatuses()) },
		Prepare:  svc.RefreshCells,
		Form:     func() *form.Model { return inmateForm(svc, th) },
		Create: func(ctx context.Context, v map[string]string) error {
			age, _ := strconv.Atoi(v["age"])
			_, err := svc.Admit(ctx, facility.Inmate{
				Name:       v["name"],
				Age:        age,
				Block:      v["block"],
				CellNumber: v["cell"],
				Charges:    v["charges"],
			})
			return err
		},
	}, th)
}

func staffPanel(ctx context.Context, svc *app.Service, th theme.Theme) *collection.Model[facility.Staff] {
	return collection.New(ctx, collection.Config[facility.Staff]{
		ID:    "staff",
		Title: "Staff",
		Store: svc.Staff,
		Columns: []table.Column{
			{Title: "Employee", Width: 10},
			{Title: "Name", Width: 20},
			{Title: "Position", Width: 22},
			{Title: "Department", Width: 14},
			{Title: "Shift", Width: 9},
			{Title: "Status", Width: 10},
			{Title: "Hired", Width: 11},
			{Title: "Phone", Width: 14},
		},
		Row: func(s facility.Staff) table.Row {
			return table.Row{s.EmployeeID, s.Name, s.Position, s.Department, string(s.Shift), string(s.Status), s.HireDate, s.Phone}
		},
		Key: func(s facility.Staff) string { return s.ID },
		Filters: []collection.Filter{
			{Name: facility.FilterStatus, Key: "s", Values: facility.FilterValues(facility.AllStaffStatuses())},
			{Name: facility.FilterShift, Key: "h", Values: facility.FilterValues(facility.AllShifts())},
			{Name: facility.FilterDepartment, Key: "d"},
		},
		Statuses: func(facility.Staff) []string { return facility.Strings(facility.AllStaffStatuses()) },
		Form: func() *form.Model {
			return form.New("staff-form", "Add Staff Member", th,
				form.Field{Name: "name", Label: "Full name", Required: true},
				form.Field{Name: "position", Label: "Position", Required: true},
				form.Field{Name: "department", Label: "Department", Required: true},
				form.Field{Name: "shift", Label: "Shift", Kind: form.Choice, Options: choices(facility.Strings(facility.AllShifts()))},
				form.Field{Name: "phone", Label: "Phone", Required: true},
			)
		},
		Create: func(ctx context.Context, v map[string]string) error {
			draft := facility.Staff{Name: v["name"], Position: v["position"], Department: v["department"], Phone: v["phone"]}
			if v["shift"] != "" {
				shift, err := facility.ParseShift(v["shift"])
				if err != nil {
					return err
				}
				draft.Shift = shift
			}
			_, err := svc.Staff.Add(ctx, draft)
			return err
		},
	}, th)
}

func visitorsPanel(ctx context.Context, svc *app.Service, th theme.Theme) *collection.Model[facility.Visitor] {
	return collection.New(ctx, collection.Config[facility.Visitor]{
		ID:    "visitors",
		Title: "Visitors",
		Store: svc.Visitors,
		Columns: []table.Column{
			{Title: "Visitor", Width: 20},
			{Title: "Relationship", Width: 12},
			{Title: "Visiting", Width: 20},
			{Title: "Date", Width: 11},
			{Title: "Time", Width: 6},
			{Title: "Status", Width: 10},
			{Title: "Phone", Width: 14},
			{Title: "ID Number", Width: 12},
		},
		Row: func(v facility.Visitor) table.Row {
			return table.Row{v.Name, v.Relationship, v.InmateVisiting, v.VisitDate, v.VisitTime, string(v.Status), v.Phone, v.IDNumber}
		},
		Key: func(v facility.Visitor) string { return v.ID },
		Filters: []collection.Filter{
			{Name: facility.FilterStatus, Key: "s", Values: facility.FilterValues(facility.AllVisitStatuses())},
		},
		Statuses: func(facility.Visitor) []string { return facility.Strings(facility.AllVisitStatuses()) },
		Form: func() *form.Model {
			return form.New("visitors-form", "Schedule Visit", th,
				form.Field{Name: "name", Label: "Visitor name", Required: true},
				form.Field{Name: "relationship", Label: "Relationship", Required: true},
				form.Field{Name: "inmate", Label: "Inmate visiting", Required: true},
				form.Field{Name: "date", Label: "Visit date", Placeholder: "YYYY-MM-DD", Required: true},
				form.Field{Name: "time", Label: "Visit time", Placeholder: "HH:MM", Required: true},
				form.Field{Name: "phone", Label: "Phone", Required: true},
				form.Field{Name: "id", Label: "ID number", Required: true},
			)
		},
		Create: func(ctx context.Context, v map[string]string) error {
			_, err := svc.Visitors.Add(ctx, facility.Visitor{
				Name:           v["name"],
				Relationship:   v["relationship"],
				InmateVisiting: v["inmate"],
				VisitDate:      v["date"],
				VisitTime:      v["time"],
				Phone:          v["phone"],
				IDNumber:       v["id"],
			})
			return err
		},
	}, th)
}

func cellsPanel(ctx context.Context, svc *app.Service, th theme.Theme) *collection.Model[facility.Cell] {
	return collection.New(ctx, collection.Config[facility.Cell]{
		ID:    "cells",
		Title: "Cells",
		Store: svc.Cells,
		Columns: []table.Column{
			{Title: "Cell", Width: 8},
			{Title: "Block", Width: 6},
			{Title: "Type", Width: 11},
			{Title: "Occupancy", Width: 10},
			{Title: "Status", Width: 12},
			{Title: "Inmates", Width: 32},
		},
		Row: func(c facility.Cell) table.Row {
			return table.Row{
				c.CellNumber, c.Block, string(c.Type),
				strconv.Itoa(c.CurrentOccupancy) + "/" + strconv.Itoa(c.Capacity),
				string(c.Status), strings.Join(c.Inmates, ", "),
			}
		},
		Key: func(c facility.Cell) string { return c.ID },
		Filters: []collection.Filter{
			{Name: facility.FilterStatus, Key: "s", Values: facility.FilterValues(facility.AllCellStatuses())},
			{Name: facility.FilterBlock, Key: "b"},
			{Name: facility.FilterType, Key: "t", Values: facility.FilterValues(facility.AllCellTypes())},
		},
		Statuses: func(c facility.Cell) []string { return facility.Strings(derive.StatusOptions(c)) },
		Form: func() *form.Model {
			return form.New("cells-form", "Add Cell", th,
				form.Field{Name: "number", Label: "Cell number", Placeholder: "A-101", Required: true},
				form.Field{Name: "block", Label: "Block", Required: true},
				form.Field{Name: "capacity", Label: "Capacity", Kind: form.Number, Required: true},
				form.Field{Name: "type", Label: "Type", Kind: form.Choice, Options: choices(facility.Strings(facility.AllCellTypes()))},
			)
		},
		Create: func(ctx context.Context, v map[string]string) error {
			capacity, _ := strconv.Atoi(v["capacity"])
			typ, err := facility.ParseCellType(v["type"])
			if err != nil {
				return err
			}
			_, err = svc.Cells.Add(ctx, facility.Cell{CellNumber: v["number"], Block: v["block"], Capacity: capacity, Type: typ})
			return err
		},
	}, th)
}
