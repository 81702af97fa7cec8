package printers

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"tableflip.dev/warden/pkg/facility"
	"tableflip.dev/warden/pkg/notify"
)

func init() {
	color.NoColor = true
}

var cells = []facility.Cell{
	{ID: "c1", CellNumber: "A-101", Block: "A", Capacity: 2, CurrentOccupancy: 1, Status: facility.CellAvailable, Type: facility.CellStandard, Inmates: []string{"INM001"}},
}

func TestParseFormat(t *testing.T) {
	for raw, want := range map[string]Format{"": Table, "TABLE": Table, "json": JSON, "yml": YAML} {
		got, err := ParseFormat(raw)
		require.NoError(t, err, raw)
		assert.Equal(t, want, got, raw)
	}
	_, err := ParseFormat("xml")
	require.Error(t, err)
}

func TestCellsTable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, New(&buf, Table).Cells(cells))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "OCCUPANCY")
	assert.Contains(t, lines[1], "A-101")
	assert.Contains(t, lines[1], "1/2")
}

func TestCellsJSONUsesLocalNames(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, New(&buf, JSON).Cells(cells))

	var got []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "A-101", got[0]["cellNumber"])
	assert.EqualValues(t, 1, got[0]["currentOccupancy"])
}

func TestVisitorsYAML(t *testing.T) {
	var buf bytes.Buffer
	visitors := []facility.Visitor{{ID: "v1", Name: "Mary", InmateVisiting: "John Smith", Status: facility.VisitScheduled}}
	require.NoError(t, New(&buf, YAML).Visitors(visitors))

	var got []map[string]any
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "John Smith", got[0]["inmateVisiting"])
}

func TestTitleOnlyInTables(t *testing.T) {
	var buf bytes.Buffer
	New(&buf, JSON).Title("Cells")
	assert.Empty(t, buf.String())

	New(&buf, Table).Title("Cells")
	assert.Equal(t, "Cells\n", buf.String())
}

func TestNotificationSink(t *testing.T) {
	var buf bytes.Buffer
	sink := NotificationSink(&buf)
	sink.Notify(notify.Successf("Cell added successfully"))
	sink.Notify(notify.Errorf("Failed to add cell: Cell already exists"))

	assert.Equal(t, "✓ Success: Cell added successfully\n✗ Error: Failed to add cell: Cell already exists\n", buf.String())
}
