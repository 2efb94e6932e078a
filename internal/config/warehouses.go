// Package config holds the warehouse registry: which spreadsheet and
// which worksheets make up each warehouse, and where its inventory
// segments and count-sheet anchors sit. The active warehouse is always
// chosen explicitly at session start; there is no process-wide default
// hiding in a global.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Warehouse describes one remote inventory document.
type Warehouse struct {
	Name string `yaml:"name"`

	// SpreadsheetID is the remote document id (or the workbook path when
	// running against a local .xlsx file).
	SpreadsheetID string `yaml:"spreadsheet_id"`

	InventorySheet string `yaml:"inventory_sheet"`
	CountSheet     string `yaml:"count_sheet"`
	HistorySheet   string `yaml:"history_sheet"`

	// Segments are the inventory columns holding item names, in catalog
	// order.
	Segments []int `yaml:"segments"`

	// Anchors are the count sheet's item-name columns, in search order.
	// The running-expression column is always the one to the right.
	Anchors []int `yaml:"anchors"`

	// HeaderRows at the top of each count-sheet segment are skipped.
	HeaderRows int `yaml:"header_rows"`
}

// Registry is the parsed warehouse file.
type Registry struct {
	Default    string      `yaml:"default"`
	Warehouses []Warehouse `yaml:"warehouses"`
}

// Load reads and validates a warehouse registry from a YAML file.
func Load(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read warehouse config %s: %w", path, err)
	}

	var reg Registry
	if err := yaml.Unmarshal(data, &reg); err != nil {
		return nil, fmt.Errorf("failed to parse warehouse config %s: %w", path, err)
	}

	if len(reg.Warehouses) == 0 {
		return nil, fmt.Errorf("warehouse config %s defines no warehouses", path)
	}
	for i := range reg.Warehouses {
		w := &reg.Warehouses[i]
		if w.Name == "" {
			return nil, fmt.Errorf("warehouse %d has no name", i)
		}
		if w.SpreadsheetID == "" {
			return nil, fmt.Errorf("warehouse %q has no spreadsheet id", w.Name)
		}
		w.applyDefaults()
	}
	if reg.Default == "" {
		reg.Default = reg.Warehouses[0].Name
	}
	if _, err := reg.Warehouse(reg.Default); err != nil {
		return nil, fmt.Errorf("default warehouse: %w", err)
	}
	return &reg, nil
}

// applyDefaults fills the reference layout: three inventory segments,
// anchors at columns 1, 5 and 10, one header row, the conventional sheet
// names.
func (w *Warehouse) applyDefaults() {
	if w.InventorySheet == "" {
		w.InventorySheet = "Inventory"
	}
	if w.CountSheet == "" {
		w.CountSheet = w.Name + " Count Sheet"
	}
	if w.HistorySheet == "" {
		w.HistorySheet = "History"
	}
	if len(w.Segments) == 0 {
		w.Segments = []int{1, 2, 3}
	}
	if len(w.Anchors) == 0 {
		w.Anchors = []int{1, 5, 10}
	}
	if w.HeaderRows == 0 {
		w.HeaderRows = 1
	}
}

// Warehouse looks a warehouse up by name.
func (r *Registry) Warehouse(name string) (Warehouse, error) {
	for _, w := range r.Warehouses {
		if w.Name == name {
			return w, nil
		}
	}
	return Warehouse{}, fmt.Errorf("unknown warehouse %q", name)
}

// Names lists the configured warehouses in file order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.Warehouses))
	for i, w := range r.Warehouses {
		names[i] = w.Name
	}
	return names
}
