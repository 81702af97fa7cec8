package derive

import (
	"fmt"

	"tableflip.dev/warden/pkg/facility"
)

// CellPicker holds the block and cell choice of an inmate creation form. The
// offered cell numbers are recomputed whenever the block or the cell
// collection changes, and a chosen cell that is no longer offered is cleared.
// A CellPicker is owned by a single form and is not safe for concurrent use.
type CellPicker struct {
	cells   []facility.Cell
	block   string
	cell    string
	options []string
}

// NewCellPicker returns a picker over cells with no block chosen.
func NewCellPicker(cells []facility.Cell) *CellPicker {
	p := &CellPicker{}
	p.SetCells(cells)
	return p
}

// SetCells replaces the cell collection.
func (p *CellPicker) SetCells(cells []facility.Cell) {
	p.cells = append([]facility.Cell(nil), cells...)
	p.recompute()
}

// SetBlock chooses the block.
func (p *CellPicker) SetBlock(block string) {
	p.block = block
	p.recompute()
}

// Select chooses a cell number among Options.
func (p *CellPicker) Select(cellNumber string) error {
	for _, opt := range p.options {
		if opt == cellNumber {
			p.cell = cellNumber
			return nil
		}
	}
	return fmt.Errorf("derive: cell %q is not available in block %q", cellNumber, p.block)
}

// Block returns the chosen block.
func (p *CellPicker) Block() string { return p.block }

// CellNumber returns the chosen cell number, or "" when none is chosen.
func (p *CellPicker) CellNumber() string { return p.cell }

// Options returns the eligible cell numbers for the chosen block.
func (p *CellPicker) Options() []string {
	return append([]string{}, p.options...)
}

// Blocks returns the blocks present in the cell collection.
func (p *CellPicker) Blocks() []string {
	return Blocks(p.cells)
}

func (p *CellPicker) recompute() {
	p.options = EligibleCellNumbers(p.cells, p.block)
	if p.cell == "" {
		return
	}
	for _, opt := range p.options {
		if opt == p.cell {
			return
		}
	}
	p.cell = ""
}
