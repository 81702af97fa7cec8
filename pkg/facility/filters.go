package facility

import (
	"tableflip.dev/warden/pkg/filter"
	"tableflip.dev/warden/pkg/resource"
)

// Categorical filter names shared by the CLI flags and the dashboard.
const (
	FilterStatus     = "status"
	FilterBlock      = "block"
	FilterType       = "type"
	FilterShift      = "shift"
	FilterDepartment = "department"
)

// InmateFilter searches name and inmate id.
var InmateFilter = filter.Spec[Inmate]{
	Search: []filter.Field[Inmate]{
		{Name: "name", Value: func(i Inmate) string { return i.Name }},
		{Name: "inmateId", Value: func(i Inmate) string { return i.InmateID }},
	},
	Categories: []filter.Field[Inmate]{
		{Name: FilterStatus, Value: func(i Inmate) string { return string(i.Status) }},
		{Name: FilterBlock, Value: func(i Inmate) string { return i.Block }},
	},
}

// StaffFilter searches name, employee id and department.
var StaffFilter = filter.Spec[Staff]{
	Search: []filter.Field[Staff]{
		{Name: "name", Value: func(s Staff) string { return s.Name }},
		{Name: "employeeId", Value: func(s Staff) string { return s.EmployeeID }},
		{Name: "department", Value: func(s Staff) string { return s.Department }},
	},
	Categories: []filter.Field[Staff]{
		{Name: FilterStatus, Value: func(s Staff) string { return string(s.Status) }},
		{Name: FilterShift, Value: func(s Staff) string { return string(s.Shift) }},
		{Name: FilterDepartment, Value: func(s Staff) string { return s.Department }},
	},
}

// VisitorFilter searches the visitor and the inmate being visited.
var VisitorFilter = filter.Spec[Visitor]{
	Search: []filter.Field[Visitor]{
		{Name: "name", Value: func(v Visitor) string { return v.Name }},
		{Name: "inmateVisiting", Value: func(v Visitor) string { return v.InmateVisiting }},
	},
	Categories: []filter.Field[Visitor]{
		{Name: FilterStatus, Value: func(v Visitor) string { return string(v.Status) }},
	},
}

// CellFilter searches cell number and block.
var CellFilter = filter.Spec[Cell]{
	Search: []filter.Field[Cell]{
		{Name: "cellNumber", Value: func(c Cell) string { return c.CellNumber }},
		{Name: "block", Value: func(c Cell) string { return c.Block }},
	},
	Categories: []filter.Field[Cell]{
		{Name: FilterStatus, Value: func(c Cell) string { return string(c.Status) }},
		{Name: FilterBlock, Value: func(c Cell) string { return c.Block }},
		{Name: FilterType, Value: func(c Cell) string { return string(c.Type) }},
	},
}

// VisitorFields maps the visitor's local field names onto the wire.
var VisitorFields = resource.FieldMap{
	{Local: "inmateVisiting", Wire: "visitingInmate"},
}

// Resource paths relative to the API base.
const (
	PathInmates        = "inmates"
	PathStaff          = "staff"
	PathVisitors       = "visitors"
	PathCells          = "cells"
	PathCellBlocks     = "cell-block"
	PathStaffStatus    = "staff-status"
	PathWeeklyActivity = "weekly-activity"
)

// InmateResource, StaffResource, VisitorResource and CellResource describe the
// CRUD collections. The read-only aggregates follow.
var (
	InmateResource  = resource.Config{Name: "inmates", Path: PathInmates}
	StaffResource   = resource.Config{Name: "staff", Path: PathStaff}
	VisitorResource = resource.Config{Name: "visitors", Path: PathVisitors, Fields: VisitorFields}
	CellResource    = resource.Config{Name: "cells", Path: PathCells}

	CellBlockResource      = resource.Config{Name: "cell-block", Path: PathCellBlocks}
	StaffStatusResource    = resource.Config{Name: "staff-status", Path: PathStaffStatus}
	WeeklyActivityResource = resource.Config{Name: "weekly-activity", Path: PathWeeklyActivity}
)
