package facility

import (
	"strings"
)

// Inmate is a person held at the facility.
type Inmate struct {
	ID            string       `json:"id,omitempty" yaml:"id,omitempty"`
	Name          string       `json:"name" yaml:"name"`
	InmateID      string       `json:"inmateId,omitempty" yaml:"inmateId,omitempty"`
	Age           int          `json:"age" yaml:"age"`
	CellNumber    string       `json:"cellNumber" yaml:"cellNumber"`
	Block         string       `json:"block" yaml:"block"`
	AdmissionDate string       `json:"admissionDate,omitempty" yaml:"admissionDate,omitempty"`
	Status        InmateStatus `json:"status" yaml:"status"`
	Charges       string       `json:"charges" yaml:"charges"`
}

// Missing lists the required fields that are empty on a creation draft.
func (i Inmate) Missing() []string {
	var missing []string
	missing = appendIfBlank(missing, "name", i.Name)
	if i.Age <= 0 {
		missing = append(missing, "age")
	}
	missing = appendIfBlank(missing, "block", i.Block)
	missing = appendIfBlank(missing, "cellNumber", i.CellNumber)
	missing = appendIfBlank(missing, "charges", i.Charges)
	return missing
}

// Staff is an employee of the facility.
type Staff struct {
	ID         string           `json:"id,omitempty" yaml:"id,omitempty"`
	Name       string           `json:"name" yaml:"name"`
	EmployeeID string           `json:"employeeId,omitempty" yaml:"employeeId,omitempty"`
	Position   string           `json:"position" yaml:"position"`
	Department string           `json:"department" yaml:"department"`
	Shift      Shift            `json:"shift" yaml:"shift"`
	Status     StaffStatusValue `json:"status" yaml:"status"`
	HireDate   string           `json:"hireDate,omitempty" yaml:"hireDate,omitempty"`
	Phone      string           `json:"phone" yaml:"phone"`
}

// Missing lists the required fields that are empty on a creation draft.
func (s Staff) Missing() []string {
	var missing []string
	missing = appendIfBlank(missing, "name", s.Name)
	missing = appendIfBlank(missing, "position", s.Position)
	missing = appendIfBlank(missing, "department", s.Department)
	missing = appendIfBlank(missing, "phone", s.Phone)
	return missing
}

// Visitor is one scheduled visit. A person visiting twice has two records.
type Visitor struct {
	ID             string      `json:"id,omitempty" yaml:"id,omitempty"`
	Name           string      `json:"name" yaml:"name"`
	Relationship   string      `json:"relationship" yaml:"relationship"`
	InmateVisiting string      `json:"inmateVisiting" yaml:"inmateVisiting"`
	VisitDate      string      `json:"visitDate" yaml:"visitDate"`
	VisitTime      string      `json:"visitTime" yaml:"visitTime"`
	Status         VisitStatus `json:"status" yaml:"status"`
	Phone          string      `json:"phone" yaml:"phone"`
	IDNumber       string      `json:"idNumber" yaml:"idNumber"`
}

// Missing lists the required fields that are empty on a creation draft.
func (v Visitor) Missing() []string {
	var missing []string
	missing = appendIfBlank(missing, "name", v.Name)
	missing = appendIfBlank(missing, "relationship", v.Relationship)
	missing = appendIfBlank(missing, "inmateVisiting", v.InmateVisiting)
	missing = appendIfBlank(missing, "visitDate", v.VisitDate)
	missing = appendIfBlank(missing, "visitTime", v.VisitTime)
	missing = appendIfBlank(missing, "phone", v.Phone)
	missing = appendIfBlank(missing, "idNumber", v.IDNumber)
	return missing
}

// Cell is a housing unit. CurrentOccupancy never exceeds Capacity.
type Cell struct {
	ID               string     `json:"id,omitempty" yaml:"id,omitempty"`
	CellNumber       string     `json:"cellNumber" yaml:"cellNumber"`
	Block            string     `json:"block" yaml:"block"`
	Capacity         int        `json:"capacity" yaml:"capacity"`
	CurrentOccupancy int        `json:"currentOccupancy" yaml:"currentOccupancy"`
	Status           CellStatus `json:"status" yaml:"status"`
	Type             CellType   `json:"type,omitempty" yaml:"type,omitempty"`
	Inmates          []string   `json:"inmates" yaml:"inmates"`
}

// Missing lists the required fields that are empty on a creation draft.
func (c Cell) Missing() []string {
	var missing []string
	missing = appendIfBlank(missing, "cellNumber", c.CellNumber)
	missing = appendIfBlank(missing, "block", c.Block)
	if c.Capacity <= 0 {
		missing = append(missing, "capacity")
	}
	return missing
}

// HasHeadroom reports whether another inmate fits in the cell.
func (c Cell) HasHeadroom() bool {
	return c.CurrentOccupancy < c.Capacity
}

// Full reports whether occupancy has reached capacity.
func (c Cell) Full() bool {
	return c.CurrentOccupancy >= c.Capacity
}

// CellBlock is the per-block aggregate served by /cell-block.
type CellBlock struct {
	ID          string `json:"id,omitempty" yaml:"id,omitempty"`
	Name        string `json:"name" yaml:"name"`
	Capacity    int    `json:"capacity" yaml:"capacity"`
	Current     int    `json:"current" yaml:"current"`
	Utilization int    `json:"utilization" yaml:"utilization"`
}

// StaffStatus is one slice of the /staff-status breakdown.
type StaffStatus struct {
	ID    string `json:"id,omitempty" yaml:"id,omitempty"`
	Name  string `json:"name" yaml:"name"`
	Value int    `json:"value" yaml:"value"`
}

// WeeklyActivity is one day of the /weekly-activity series.
type WeeklyActivity struct {
	ID         string `json:"id,omitempty" yaml:"id,omitempty"`
	Day        string `json:"day" yaml:"day"`
	Admissions int    `json:"admissions" yaml:"admissions"`
	Releases   int    `json:"releases" yaml:"releases"`
	Visitors   int    `json:"visitors" yaml:"visitors"`
	Incidents  int    `json:"incidents" yaml:"incidents"`
}

// DashboardSummary holds the headline counters of the dashboard home panel.
type DashboardSummary struct {
	TotalInmates   int `json:"totalInmates" yaml:"totalInmates"`
	ActiveStaff    int `json:"activeStaff" yaml:"activeStaff"`
	DailyVisitors  int `json:"dailyVisitors" yaml:"dailyVisitors"`
	AvailableCells int `json:"availableCells" yaml:"availableCells"`
}

func appendIfBlank(missing []string, name, value string) []string {
	if strings.TrimSpace(value) == "" {
		return append(missing, name)
	}
	return missing
}
