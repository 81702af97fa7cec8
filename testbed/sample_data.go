package main

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"tableflip.dev/warden/pkg/facility"
)

var errSample = errors.New("sample backend: request failed")

// memory is an in-process stand in for the REST API.
type memory[T any] struct {
	mu    sync.Mutex
	items []T
	id    func(T) string
	key   func(T) string
	setID func(T, string) T
	delay time.Duration
	fail  bool
	next  int
}

func (m *memory[T]) wait(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(m.delay):
	}
	if m.fail {
		return errSample
	}
	return nil
}

func (m *memory[T]) List(ctx context.Context) ([]T, error) {
	if err := m.wait(ctx); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]T(nil), m.items...), nil
}

func (m *memory[T]) Create(ctx context.Context, draft T) (T, error) {
	if err := m.wait(ctx); err != nil {
		return draft, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.next++
	created := m.setID(draft, fmt.Sprintf("sample-%d", m.next))
	m.items = append(m.items, created)
	return created, nil
}

func (m *memory[T]) Update(ctx context.Context, id string, entity T) (T, error) {
	if err := m.wait(ctx); err != nil {
		return entity, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, it := range m.items {
		if m.id(it) == id {
			m.items[i] = entity
		}
	}
	return entity, nil
}

func (m *memory[T]) Remove(ctx context.Context, key string) error {
	if err := m.wait(ctx); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	match := m.id
	if m.key != nil {
		match = m.key
	}
	for i, it := range m.items {
		if match(it) == key {
			m.items = append(m.items[:i], m.items[i+1:]...)
			break
		}
	}
	return nil
}

func sampleCells(opts options) *memory[facility.Cell] {
	return &memory[facility.Cell]{
		id:    func(c facility.Cell) string { return c.ID },
		setID: func(c facility.Cell, id string) facility.Cell { c.ID = id; return c },
		delay: 400 * time.Millisecond,
		fail:  opts.fail,
		items: []facility.Cell{
			{ID: "1", CellNumber: "A-101", Block: "A", Capacity: 2, CurrentOccupancy: 1, Status: facility.CellOccupied, Type: facility.CellStandard, Inmates: []string{"John Smith"}},
			{ID: "2", CellNumber: "A-102", Block: "A", Capacity: 2, Status: facility.CellAvailable, Type: facility.CellStandard, Inmates: []string{}},
			{ID: "3", CellNumber: "B-201", Block: "B", Capacity: 1, Status: facility.CellMaintenance, Type: facility.CellSolitary, Inmates: []string{}},
			{ID: "4", CellNumber: "C-301", Block: "C", Capacity: 1, CurrentOccupancy: 1, Status: facility.CellOccupied, Type: facility.CellMedical, Inmates: []string{"Robert Johnson"}},
			{ID: "5", CellNumber: "C-302", Block: "C", Capacity: 2, Status: facility.CellClosed, Type: facility.CellProtective, Inmates: []string{}},
		},
	}
}

func sampleInmates(opts options) *memory[facility.Inmate] {
	return &memory[facility.Inmate]{
		id:    func(i facility.Inmate) string { return i.ID },
		key:   func(i facility.Inmate) string { return i.InmateID },
		setID: func(i facility.Inmate, id string) facility.Inmate { i.ID = id; return i },
		delay: 400 * time.Millisecond,
		fail:  opts.fail,
		items: []facility.Inmate{
			{ID: "1", Name: "John Smith", InmateID: "INM001", Age: 34, Block: "A", CellNumber: "A-101", AdmissionDate: "2023-02-11", Status: facility.InmateActive, Charges: "Burglary"},
			{ID: "2", Name: "Robert Johnson", InmateID: "INM002", Age: 45, Block: "C", CellNumber: "C-301", AdmissionDate: "2022-09-30", Status: facility.InmateActive, Charges: "Fraud"},
			{ID: "3", Name: "Michael Brown", InmateID: "INM003", Age: 28, Block: "B", CellNumber: "B-201", AdmissionDate: "2021-05-18", Status: facility.InmateReleased, Charges: "Assault"},
		},
	}
}
