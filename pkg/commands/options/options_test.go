package options

import (
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tableflip.dev/warden/pkg/facility"
	"tableflip.dev/warden/pkg/printers"
	"tableflip.dev/warden/pkg/store"
)

func TestParseDay(t *testing.T) {
	got, err := ParseDay("2026-2-8")
	require.NoError(t, err)
	assert.Equal(t, "2026-02-08", got)

	got, err = ParseDay("")
	require.NoError(t, err)
	assert.Equal(t, "", got)

	// A short date is never in the past.
	yesterday := time.Now().AddDate(0, 0, -1)
	got, err = ParseDay(yesterday.Format("1/2"))
	require.NoError(t, err)
	day, err := time.Parse(layoutWire, got)
	require.NoError(t, err)
	assert.True(t, day.After(yesterday))

	_, err = ParseDay("someday")
	require.Error(t, err)
}

func TestParseDate(t *testing.T) {
	got, err := ParseDate("2026-12-1")
	require.NoError(t, err)
	assert.Equal(t, "2026-12-01", got)
	_, err = ParseDate("12/1")
	require.Error(t, err)
}

func TestFilterOptionsState(t *testing.T) {
	cmd := &cobra.Command{Use: "list"}
	o := &FilterOptions{}
	AddFilterArgs(cmd, o, map[string][]string{facility.FilterStatus: {"Active"}, facility.FilterBlock: nil})
	require.NoError(t, cmd.ParseFlags([]string{"-s", "smith", "--status", "Active"}))

	st := o.State()
	assert.Equal(t, "smith", st.Search)
	assert.Equal(t, "Active", st.Value(facility.FilterStatus))
	assert.Equal(t, []string{facility.FilterStatus}, st.Active())
}

func TestOutputFormat(t *testing.T) {
	o := &OutputOptions{Output: "yaml"}
	f, err := o.Format()
	require.NoError(t, err)
	assert.Equal(t, printers.YAML, f)

	o.JSON = true
	f, err = o.Format()
	require.NoError(t, err)
	assert.Equal(t, printers.JSON, f)
}

func TestGlobalApply(t *testing.T) {
	cfg := &store.Config{Server: "http://a/api/", Timeout: time.Second, LogLevel: "info"}
	(&GlobalOptions{Server: "http://b/api/"}).Apply(cfg)
	assert.Equal(t, "http://b/api/", cfg.Server)
	assert.Equal(t, time.Second, cfg.Timeout)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestDrafts(t *testing.T) {
	s, err := (&StaffOptions{Name: "Sam", Shift: "night"}).Draft()
	require.NoError(t, err)
	assert.Equal(t, facility.ShiftNight, s.Shift)

	_, err = (&StaffOptions{Shift: "evening"}).Draft()
	require.Error(t, err)

	c, err := (&CellOptions{CellNumber: "A-101", Block: "A", Capacity: 2}).Draft()
	require.NoError(t, err)
	assert.Equal(t, facility.CellStandard, c.Type)

	v, err := (&VisitorOptions{Name: "Mary", Date: "2026-5-1"}).Draft()
	require.NoError(t, err)
	assert.Equal(t, "2026-05-01", v.VisitDate)
}
