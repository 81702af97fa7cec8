// Package derive computes values that depend on more than one field or more
// than one collection: the eligible cells for a new inmate, the status choices
// offered for a cell, block statistics and the dashboard summary.
package derive

import (
	"sort"

	"tableflip.dev/warden/pkg/facility"
)

// Eligible reports whether an inmate can be placed in c for block.
func Eligible(c facility.Cell, block string) bool {
	return c.Block == block && c.Status == facility.CellAvailable && c.CurrentOccupancy < c.Capacity
}

// EligibleCellNumbers returns, in collection order, the numbers of cells in
// block that are Available and below capacity.
func EligibleCellNumbers(cells []facility.Cell, block string) []string {
	out := []string{}
	for _, c := range cells {
		if Eligible(c, block) {
			out = append(out, c.CellNumber)
		}
	}
	return out
}

// Blocks returns the sorted distinct block names across cells.
func Blocks(cells []facility.Cell) []string {
	return facility.CellFilter.Distinct(cells, facility.FilterBlock)
}

// DerivedStatus is the status a cell has by occupancy alone.
func DerivedStatus(c facility.Cell) facility.CellStatus {
	if c.CurrentOccupancy >= c.Capacity {
		return facility.CellOccupied
	}
	return facility.CellAvailable
}

// StatusOptions returns the two statuses a cell may be switched to. A cell in
// Maintenance may leave it only for its occupancy-derived status; any other
// cell may only enter Maintenance or keep its status.
func StatusOptions(c facility.Cell) []facility.CellStatus {
	if c.Status == facility.CellMaintenance {
		return []facility.CellStatus{facility.CellMaintenance, DerivedStatus(c)}
	}
	return []facility.CellStatus{facility.CellMaintenance, c.Status}
}

// Allowed reports whether status is one of StatusOptions(c).
func Allowed(c facility.Cell, status facility.CellStatus) bool {
	for _, opt := range StatusOptions(c) {
		if opt == status {
			return true
		}
	}
	return false
}

// BlockStat aggregates the cells of one block.
type BlockStat struct {
	Block       string `json:"block" yaml:"block"`
	Cells       int    `json:"cells" yaml:"cells"`
	Capacity    int    `json:"capacity" yaml:"capacity"`
	Current     int    `json:"current" yaml:"current"`
	Available   int    `json:"available" yaml:"available"`
	Utilization int    `json:"utilization" yaml:"utilization"`
}

// Utilization is floor(current/capacity*100), or 0 when capacity is 0.
func Utilization(current, capacity int) int {
	if capacity <= 0 {
		return 0
	}
	return current * 100 / capacity
}

// BlockStats aggregates cells per block, sorted by block name.
func BlockStats(cells []facility.Cell) []BlockStat {
	byBlock := map[string]*BlockStat{}
	for _, c := range cells {
		st, ok := byBlock[c.Block]
		if !ok {
			st = &BlockStat{Block: c.Block}
			byBlock[c.Block] = st
		}
		st.Cells++
		st.Capacity += c.Capacity
		st.Current += c.CurrentOccupancy
		if Eligible(c, c.Block) {
			st.Available++
		}
	}
	out := make([]BlockStat, 0, len(byBlock))
	for _, st := range byBlock {
		st.Utilization = Utilization(st.Current, st.Capacity)
		out = append(out, *st)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Block < out[j].Block })
	return out
}

// Summary computes the dashboard headline counters from the read-only
// aggregates served by the API.
func Summary(blocks []facility.CellBlock, staff []facility.StaffStatus, weekly []facility.WeeklyActivity) facility.DashboardSummary {
	var s facility.DashboardSummary
	for _, b := range blocks {
		s.TotalInmates += b.Current
		s.AvailableCells += b.Capacity - b.Current
	}
	for _, st := range staff {
		s.ActiveStaff += st.Value
	}
	for _, w := range weekly {
		s.DailyVisitors += w.Visitors
	}
	return s
}
