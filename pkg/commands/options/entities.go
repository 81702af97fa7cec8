package options

import (
	"github.com/spf13/cobra"

	"tableflip.dev/warden/pkg/facility"
)

// InmateOptions are the fields of a new inmate.
type InmateOptions struct {
	Name       string
	Age        int
	Block      string
	CellNumber string
	Charges    string
}

func AddInmateArgs(cmd *cobra.Command, o *InmateOptions) {
	cmd.Flags().StringVar(&o.Name, "name", "", "Full name.")
	cmd.Flags().IntVar(&o.Age, "age", 0, "Age in years.")
	cmd.Flags().StringVar(&o.Block, "block", "", "Cell block, example: --block=A.")
	cmd.Flags().StringVar(&o.CellNumber, "cell", "", "Cell number, must be available in the block.")
	cmd.Flags().StringVar(&o.Charges, "charges", "", "Charges held against the inmate.")
}

func (o *InmateOptions) Draft() facility.Inmate {
	return facility.Inmate{Name: o.Name, Age: o.Age, Block: o.Block, CellNumber: o.CellNumber, Charges: o.Charges}
}

// StaffOptions are the fields of a new staff member.
type StaffOptions struct {
	Name       string
	Position   string
	Department string
	Shift      string
	Phone      string
}

func AddStaffArgs(cmd *cobra.Command, o *StaffOptions) {
	cmd.Flags().StringVar(&o.Name, "name", "", "Full name.")
	cmd.Flags().StringVar(&o.Position, "position", "", "Position, example: --position=\"Correctional Officer\".")
	cmd.Flags().StringVar(&o.Department, "department", "", "Department, example: --department=Security.")
	cmd.Flags().StringVar(&o.Shift, "shift", "", "Shift. One of 'Day', 'Night' or 'Rotating'; default Day.")
	cmd.Flags().StringVar(&o.Phone, "phone", "", "Contact phone number.")
}

func (o *StaffOptions) Draft() (facility.Staff, error) {
	s := facility.Staff{Name: o.Name, Position: o.Position, Department: o.Department, Phone: o.Phone}
	if o.Shift != "" {
		shift, err := facility.ParseShift(o.Shift)
		if err != nil {
			return s, err
		}
		s.Shift = shift
	}
	return s, nil
}

// VisitorOptions are the fields of a new visit.
type VisitorOptions struct {
	Name         string
	Relationship string
	Inmate       string
	Date         string
	Time         string
	Phone        string
	IDNumber     string
}

func AddVisitorArgs(cmd *cobra.Command, o *VisitorOptions) {
	cmd.Flags().StringVar(&o.Name, "name", "", "Visitor full name.")
	cmd.Flags().StringVar(&o.Relationship, "relationship", "", "Relationship to the inmate.")
	cmd.Flags().StringVar(&o.Inmate, "inmate", "", "Name of the inmate being visited.")
	cmd.Flags().StringVar(&o.Date, "date", "", `Visit day, example: --date="2026-2-28" or --date="2/28".`)
	cmd.Flags().StringVar(&o.Time, "time", "", `Visit time, example: --time="14:30".`)
	cmd.Flags().StringVar(&o.Phone, "phone", "", "Contact phone number.")
	cmd.Flags().StringVar(&o.IDNumber, "id-number", "", "Identity document number.")
}

func (o *VisitorOptions) Draft() (facility.Visitor, error) {
	day, err := ParseDay(o.Date)
	if err != nil {
		return facility.Visitor{}, err
	}
	return facility.Visitor{
		Name:           o.Name,
		Relationship:   o.Relationship,
		InmateVisiting: o.Inmate,
		VisitDate:      day,
		VisitTime:      o.Time,
		Phone:          o.Phone,
		IDNumber:       o.IDNumber,
	}, nil
}

// CellOptions are the fields of a new cell.
type CellOptions struct {
	CellNumber string
	Block      string
	Capacity   int
	Type       string
}

func AddCellArgs(cmd *cobra.Command, o *CellOptions) {
	cmd.Flags().StringVar(&o.CellNumber, "number", "", "Cell number, example: --number=A-101.")
	cmd.Flags().StringVar(&o.Block, "block", "", "Cell block, example: --block=A.")
	cmd.Flags().IntVar(&o.Capacity, "capacity", 0, "Number of inmates the cell holds.")
	cmd.Flags().StringVar(&o.Type, "type", "", "Cell type. One of 'Standard', 'Solitary', 'Medical' or 'Protective'; default Standard.")
}

func (o *CellOptions) Draft() (facility.Cell, error) {
	typ, err := facility.ParseCellType(o.Type)
	if err != nil {
		return facility.Cell{}, err
	}
	return facility.Cell{CellNumber: o.CellNumber, Block: o.Block, Capacity: o.Capacity, Type: typ}, nil
}
