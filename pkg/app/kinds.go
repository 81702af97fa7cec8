package app

import (
	"fmt"
	"time"

	"tableflip.dev/warden/pkg/derive"
	"tableflip.dev/warden/pkg/entitystore"
	"tableflip.dev/warden/pkg/facility"
)

// now is swapped in tests.
var now = time.Now

const dateLayout = "2006-01-02"

func today() string {
	return now().Format(dateLayout)
}

// InmateKind deletes by inmate id and stamps admission date and status on new
// inmates.
var InmateKind = entitystore.Kind[facility.Inmate]{
	Name:    "inmates",
	ID:      func(i facility.Inmate) string { return i.ID },
	Key:     func(i facility.Inmate) string { return firstNonEmpty(i.InmateID, i.ID) },
	Missing: facility.Inmate.Missing,
	Prepare: func(i facility.Inmate) facility.Inmate {
		if i.Status == "" {
			i.Status = facility.InmateActive
		}
		if i.AdmissionDate == "" {
			i.AdmissionDate = today()
		}
		return i
	},
	Status: func(i facility.Inmate) string { return string(i.Status) },
	WithStatus: func(i facility.Inmate, raw string) (facility.Inmate, error) {
		st, err := facility.ParseInmateStatus(raw)
		if err != nil {
			return i, err
		}
		i.Status = st
		return i, nil
	},
	Filter: facility.InmateFilter,
	Messages: entitystore.Messages{
		LoadFailed:    "Failed to load inmates data",
		Added:         "Inmate added successfully",
		AddFailed:     "Failed to add inmate",
		Removed:       "Inmate removed successfully",
		RemoveFailed:  "Failed to remove inmate",
		StatusUpdated: "Inmate status updated to %s",
		StatusFailed:  "Failed to update status",
	},
}

// StaffKind stamps hire date, shift and duty status on new staff.
var StaffKind = entitystore.Kind[facility.Staff]{
	Name:    "staff",
	ID:      func(s facility.Staff) string { return s.ID },
	Missing: facility.Staff.Missing,
	Prepare: func(s facility.Staff) facility.Staff {
		if s.Shift == "" {
			s.Shift = facility.ShiftDay
		}
		if s.Status == "" {
			s.Status = facility.StaffOnDuty
		}
		if s.HireDate == "" {
			s.HireDate = today()
		}
		return s
	},
	Status: func(s facility.Staff) string { return string(s.Status) },
	WithStatus: func(s facility.Staff, raw string) (facility.Staff, error) {
		st, err := facility.ParseStaffStatus(raw)
		if err != nil {
			return s, err
		}
		s.Status = st
		return s, nil
	},
	Filter: facility.StaffFilter,
	Messages: entitystore.Messages{
		LoadFailed:    "Failed to load staff data",
		Added:         "Staff member added successfully",
		AddFailed:     "Failed to add staff member",
		Removed:       "Staff member removed successfully",
		RemoveFailed:  "Failed to remove staff member",
		StatusUpdated: "Staff status updated to %s",
		StatusFailed:  "Failed to update status",
	},
}

// VisitorKind schedules new visits.
var VisitorKind = entitystore.Kind[facility.Visitor]{
	Name:    "visitors",
	ID:      func(v facility.Visitor) string { return v.ID },
	Missing: facility.Visitor.Missing,
	Prepare: func(v facility.Visitor) facility.Visitor {
		if v.Status == "" {
			v.Status = facility.VisitScheduled
		}
		return v
	},
	Status: func(v facility.Visitor) string { return string(v.Status) },
	WithStatus: func(v facility.Visitor, raw string) (facility.Visitor, error) {
		st, err := facility.ParseVisitStatus(raw)
		if err != nil {
			return v, err
		}
		v.Status = st
		return v, nil
	},
	Filter: facility.VisitorFilter,
	Messages: entitystore.Messages{
		LoadFailed:    "Failed to load visitors data",
		Added:         "Visitor scheduled successfully",
		AddFailed:     "Failed to schedule visitor",
		Removed:       "Visitor record removed successfully",
		RemoveFailed:  "Failed to remove visitor record",
		StatusUpdated: "Visit status updated to %s",
		StatusFailed:  "Failed to update status",
	},
}

// CellKind creates empty cells and only accepts the status changes offered by
// derive.StatusOptions.
var CellKind = entitystore.Kind[facility.Cell]{
	Name:    "cells",
	ID:      func(c facility.Cell) string { return c.ID },
	Missing: facility.Cell.Missing,
	Prepare: func(c facility.Cell) facility.Cell {
		c.CurrentOccupancy = 0
		c.Inmates = []string{}
		if c.Status == "" {
			c.Status = facility.CellAvailable
		}
		if c.Type == "" {
			c.Type = facility.CellStandard
		}
		return c
	},
	Status: func(c facility.Cell) string { return string(c.Status) },
	WithStatus: func(c facility.Cell, raw string) (facility.Cell, error) {
		st, err := facility.ParseCellStatus(raw)
		if err != nil {
			return c, err
		}
		if !derive.Allowed(c, st) {
			return c, fmt.Errorf("cell %s can only be set to %v", c.CellNumber, derive.StatusOptions(c))
		}
		c.Status = st
		return c, nil
	},
	Filter: facility.CellFilter,
	Messages: entitystore.Messages{
		LoadFailed:    "Failed to load cells data",
		Added:         "Cell added successfully",
		AddFailed:     "Failed to add cell",
		Removed:       "Cell removed successfully",
		RemoveFailed:  "Failed to remove cell",
		StatusUpdated: "Cell status updated to %s",
		StatusFailed:  "Failed to update status",
	},
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
