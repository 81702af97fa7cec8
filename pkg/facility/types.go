// Package facility defines the entities administered through the warden API
// and the enumerations that constrain them.
package facility

import (
	"fmt"
	"strings"
)

// All is the filter sentinel that matches every value of a categorical field.
const All = "All"

// InmateStatus describes where an inmate is in their custody lifecycle.
type InmateStatus string

const (
	InmateActive      InmateStatus = "Active"
	InmateReleased    InmateStatus = "Released"
	InmateTransferred InmateStatus = "Transferred"
)

// AllInmateStatuses returns the supported inmate statuses in display order.
func AllInmateStatuses() []InmateStatus {
	return []InmateStatus{InmateActive, InmateReleased, InmateTransferred}
}

// ParseInmateStatus converts raw input (case-insensitive) into an InmateStatus.
func ParseInmateStatus(raw string) (InmateStatus, error) {
	for _, candidate := range AllInmateStatuses() {
		if strings.EqualFold(string(candidate), strings.TrimSpace(raw)) {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("facility: unknown inmate status %q", raw)
}

// StaffStatusValue is the duty state of a staff member.
type StaffStatusValue string

const (
	StaffOnDuty   StaffStatusValue = "On Duty"
	StaffOffDuty  StaffStatusValue = "Off Duty"
	StaffOnLeave  StaffStatusValue = "On Leave"
	StaffTraining StaffStatusValue = "Training"
)

// AllStaffStatuses returns the supported staff statuses.
func AllStaffStatuses() []StaffStatusValue {
	return []StaffStatusValue{StaffOnDuty, StaffOffDuty, StaffOnLeave, StaffTraining}
}

// ParseStaffStatus converts raw input into a StaffStatusValue.
func ParseStaffStatus(raw string) (StaffStatusValue, error) {
	for _, candidate := range AllStaffStatuses() {
		if strings.EqualFold(string(candidate), strings.TrimSpace(raw)) {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("facility: unknown staff status %q", raw)
}

// Shift is a staff rota assignment.
type Shift string

const (
	ShiftDay      Shift = "Day"
	ShiftNight    Shift = "Night"
	ShiftRotating Shift = "Rotating"
)

// AllShifts returns the supported shifts.
func AllShifts() []Shift {
	return []Shift{ShiftDay, ShiftNight, ShiftRotating}
}

// ParseShift converts raw input into a Shift.
func ParseShift(raw string) (Shift, error) {
	for _, candidate := range AllShifts() {
		if strings.EqualFold(string(candidate), strings.TrimSpace(raw)) {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("facility: unknown shift %q", raw)
}

// VisitStatus tracks a scheduled visit. Transitions are user driven only.
type VisitStatus string

const (
	VisitScheduled VisitStatus = "Scheduled"
	VisitCompleted VisitStatus = "Completed"
	VisitCancelled VisitStatus = "Cancelled"
)

// AllVisitStatuses returns the supported visit statuses.
func AllVisitStatuses() []VisitStatus {
	return []VisitStatus{VisitScheduled, VisitCompleted, VisitCancelled}
}

// ParseVisitStatus converts raw input into a VisitStatus.
func ParseVisitStatus(raw string) (VisitStatus, error) {
	for _, candidate := range AllVisitStatuses() {
		if strings.EqualFold(string(candidate), strings.TrimSpace(raw)) {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("facility: unknown visit status %q", raw)
}

// CellStatus is the availability of a cell.
type CellStatus string

const (
	CellAvailable   CellStatus = "Available"
	CellOccupied    CellStatus = "Occupied"
	CellMaintenance CellStatus = "Maintenance"
	CellClosed      CellStatus = "Closed"
)

// AllCellStatuses returns the full cell status enumeration. Status pickers
// should offer derive.StatusOptions instead of this list.
func AllCellStatuses() []CellStatus {
	return []CellStatus{CellAvailable, CellOccupied, CellMaintenance, CellClosed}
}

// ParseCellStatus converts raw input into a CellStatus.
func ParseCellStatus(raw string) (CellStatus, error) {
	for _, candidate := range AllCellStatuses() {
		if strings.EqualFold(string(candidate), strings.TrimSpace(raw)) {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("facility: unknown cell status %q", raw)
}

// CellType classifies the regime of a cell.
type CellType string

const (
	CellStandard   CellType = "Standard"
	CellSolitary   CellType = "Solitary"
	CellMedical    CellType = "Medical"
	CellProtective CellType = "Protective"
)

// AllCellTypes returns the supported cell types.
func AllCellTypes() []CellType {
	return []CellType{CellStandard, CellSolitary, CellMedical, CellProtective}
}

// ParseCellType converts raw input into a CellType. Empty input yields
// CellStandard.
func ParseCellType(raw string) (CellType, error) {
	if strings.TrimSpace(raw) == "" {
		return CellStandard, nil
	}
	for _, candidate := range AllCellTypes() {
		if strings.EqualFold(string(candidate), strings.TrimSpace(raw)) {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("facility: unknown cell type %q", raw)
}

// Strings converts an enumeration to plain strings, in order.
func Strings[S ~string](values []S) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = string(v)
	}
	return out
}

// FilterValues returns All followed by the given enumeration, suitable for
// cycling a categorical filter.
func FilterValues[S ~string](values []S) []string {
	return append([]string{All}, Strings(values)...)
}
