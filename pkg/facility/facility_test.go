package facility

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tableflip.dev/warden/pkg/filter"
)

func TestParseEnumsCaseInsensitive(t *testing.T) {
	s, err := ParseStaffStatus("on duty")
	require.NoError(t, err)
	assert.Equal(t, StaffOnDuty, s)

	c, err := ParseCellStatus(" MAINTENANCE ")
	require.NoError(t, err)
	assert.Equal(t, CellMaintenance, c)

	_, err = ParseInmateStatus("Escaped")
	require.Error(t, err)
	_, err = ParseShift("Swing")
	require.Error(t, err)
	_, err = ParseVisitStatus("")
	require.Error(t, err)
}

func TestParseCellTypeDefaultsToStandard(t *testing.T) {
	typ, err := ParseCellType("")
	require.NoError(t, err)
	assert.Equal(t, CellStandard, typ)
	typ, err = ParseCellType("protective")
	require.NoError(t, err)
	assert.Equal(t, CellProtective, typ)
}

func TestFilterValues(t *testing.T) {
	assert.Equal(t, []string{"All", "Day", "Night", "Rotating"}, FilterValues(AllShifts()))
	assert.Equal(t, []string{"Day", "Night", "Rotating"}, Strings(AllShifts()))
}

func TestMissing(t *testing.T) {
	assert.Equal(t, []string{"name", "age", "block", "cellNumber", "charges"}, Inmate{}.Missing())
	assert.Empty(t, Inmate{Name: "John", Age: 30, Block: "A", CellNumber: "A-101", Charges: "Theft"}.Missing())
	assert.Equal(t, []string{"phone"}, Staff{Name: "a", Position: "b", Department: "c"}.Missing())
	assert.Len(t, Visitor{}.Missing(), 7)
	assert.Equal(t, []string{"capacity"}, Cell{CellNumber: "A-101", Block: "A"}.Missing())
}

func TestCellHeadroom(t *testing.T) {
	c := Cell{Capacity: 2, CurrentOccupancy: 1}
	assert.True(t, c.HasHeadroom())
	assert.False(t, c.Full())
	c.CurrentOccupancy = 2
	assert.False(t, c.HasHeadroom())
	assert.True(t, c.Full())
}

func TestVisitorJSONUsesLocalNames(t *testing.T) {
	data, err := json.Marshal(Visitor{Name: "Mary", InmateVisiting: "John Doe"})
	require.NoError(t, err)
	assert.Contains(t, string(data), `"inmateVisiting":"John Doe"`)

	wire := VisitorFields.ToWire(map[string]any{"inmateVisiting": "John Doe"})
	assert.Equal(t, "John Doe", wire["visitingInmate"])
}

func TestInmateFilterSearchesInmateID(t *testing.T) {
	inmates := []Inmate{
		{ID: "1", Name: "John Doe", InmateID: "INM001", Status: InmateActive, Block: "A"},
		{ID: "2", Name: "Jane Roe", InmateID: "INM002", Status: InmateReleased, Block: "B"},
	}
	got := InmateFilter.Apply(inmates, filter.State{Search: "inm002"})
	require.Len(t, got, 1)
	assert.Equal(t, "2", got[0].ID)

	got = InmateFilter.Apply(inmates, filter.State{}.With(FilterStatus, string(InmateActive)))
	require.Len(t, got, 1)
	assert.Equal(t, "1", got[0].ID)
}

func TestStaffFilterSearchesDepartment(t *testing.T) {
	staff := []Staff{
		{ID: "1", Name: "A", Department: "Security", Shift: ShiftDay},
		{ID: "2", Name: "B", Department: "Medical", Shift: ShiftNight},
	}
	assert.Len(t, StaffFilter.Apply(staff, filter.State{Search: "secur"}), 1)
	assert.Len(t, StaffFilter.Apply(staff, filter.State{}.With(FilterShift, "Night")), 1)
}

func TestCellFilterBlockAndStatus(t *testing.T) {
	cells := []Cell{
		{ID: "1", CellNumber: "A-101", Block: "A", Status: CellAvailable},
		{ID: "2", CellNumber: "A-102", Block: "A", Status: CellOccupied},
		{ID: "3", CellNumber: "B-201", Block: "B", Status: CellAvailable},
	}
	st := filter.State{}.With(FilterBlock, "A").With(FilterStatus, string(CellAvailable))
	got := CellFilter.Apply(cells, st)
	require.Len(t, got, 1)
	assert.Equal(t, "A-101", got[0].CellNumber)
	assert.Equal(t, []string{"A", "B"}, CellFilter.Distinct(cells, FilterBlock))
}
