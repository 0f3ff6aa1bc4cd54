package domain

import (
	"fmt"
	"sort"
)

// EntityType identifies one of the three tabular datasets a session holds.
type EntityType string

const (
	EntityClients EntityType = "clients"
	EntityWorkers EntityType = "workers"
	EntityTasks   EntityType = "tasks"
)

// Valid reports whether the entity type is one of the known datasets.
func (e EntityType) Valid() bool {
	switch e {
	case EntityClients, EntityWorkers, EntityTasks:
		return true
	}
	return false
}

// EntityTypes lists the known datasets in canonical order.
func EntityTypes() []EntityType {
	return []EntityType{EntityClients, EntityWorkers, EntityTasks}
}

// Row maps canonical field names to scalar cell values. Values are strings,
// numbers, booleans, or nil depending on what the source file carried.
type Row map[string]any

// Clone returns a shallow copy of the row. Cell values are scalars, so a
// shallow copy is a full copy.
func (r Row) Clone() Row {
	clone := make(Row, len(r))
	for k, v := range r {
		clone[k] = v
	}
	return clone
}

// Keys returns the row's field names in sorted order.
func (r Row) Keys() []string {
	keys := make([]string, 0, len(r))
	for k := range r {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Dataset is an ordered collection of rows for one entity type, together with
// the original header list as it appeared in the uploaded file. Row order is
// significant: validation findings address rows by 0-based position.
type Dataset struct {
	Type     EntityType `json:"type"`
	Headers  []string   `json:"headers"`
	Rows     []Row      `json:"rows"`
	RowCount int        `json:"rowCount"`
	FileName string     `json:"fileName,omitempty"`
}

// NewDataset builds a dataset and records its row count.
func NewDataset(entityType EntityType, headers []string, rows []Row) Dataset {
	return Dataset{
		Type:     entityType,
		Headers:  append([]string(nil), headers...),
		Rows:     rows,
		RowCount: len(rows),
	}
}

// Clone returns a deep copy of the dataset. Auto-fix operates copy-on-write,
// so callers holding the original never observe fixed values.
func (d Dataset) Clone() Dataset {
	rows := make([]Row, len(d.Rows))
	for i, row := range d.Rows {
		rows[i] = row.Clone()
	}
	return Dataset{
		Type:     d.Type,
		Headers:  append([]string(nil), d.Headers...),
		Rows:     rows,
		RowCount: d.RowCount,
		FileName: d.FileName,
	}
}

// RowAt returns the row at the given 0-based index and whether it exists.
func (d Dataset) RowAt(index int) (Row, bool) {
	if index < 0 || index >= len(d.Rows) {
		return nil, false
	}
	return d.Rows[index], true
}

// Datasets groups the (possibly partial) set of uploaded datasets by entity
// type. Any of the three may be nil when that file has not been uploaded yet.
type Datasets struct {
	Clients *Dataset `json:"clients,omitempty"`
	Workers *Dataset `json:"workers,omitempty"`
	Tasks   *Dataset `json:"tasks,omitempty"`
}

// Get returns the dataset for the requested entity type.
func (d Datasets) Get(entityType EntityType) *Dataset {
	switch entityType {
	case EntityClients:
		return d.Clients
	case EntityWorkers:
		return d.Workers
	case EntityTasks:
		return d.Tasks
	}
	return nil
}

// Set stores a dataset under its entity type.
func (d *Datasets) Set(dataset Dataset) error {
	switch dataset.Type {
	case EntityClients:
		d.Clients = &dataset
	case EntityWorkers:
		d.Workers = &dataset
	case EntityTasks:
		d.Tasks = &dataset
	default:
		return fmt.Errorf("unknown entity type %q", dataset.Type)
	}
	return nil
}
