package util

import (
	"fmt"
	"sync"
)

// Dict interns strings to sequential integer ids.
//
// Reserved values are interned first, in order, so their ids are fixed
// for the life of the dictionary. Once frozen, unseen strings resolve to
// Unknown instead of growing the table.
type Dict struct {
	mu      sync.RWMutex
	Enum    map[string]int
	Index   []string
	Frozen  bool
	Unknown int
}

// Intern returns the id of value, assigning the next id on first sight.
// A frozen dictionary returns Unknown for values it has not seen.
func (d *Dict) Intern(value string) int {
	d.mu.RLock()
	enum, exists := d.Enum[value]
	frozen := d.Frozen
	d.mu.RUnlock()
	if exists {
		return enum
	}
	if frozen {
		return d.Unknown
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if enum, exists = d.Enum[value]; exists {
		return enum
	}
	enum = len(d.Index)
	d.Enum[value] = enum
	d.Index = append(d.Index, value)
	return enum
}

// IndexOf looks up value without interning it.
func (d *Dict) IndexOf(value string) (int, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	enum, exists := d.Enum[value]
	return enum, exists
}

// Lookup returns the string interned under id.
func (d *Dict) Lookup(id int) (string, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if id < 0 || id >= len(d.Index) {
		return "", fmt.Errorf("unknown index requested: %d of %d", id, len(d.Index))
	}
	return d.Index[id], nil
}

// ValueOf is Lookup for callers holding ids the dictionary produced.
func (d *Dict) ValueOf(id int) string {
	value, err := d.Lookup(id)
	if err != nil {
		panic(err)
	}
	return value
}

func (d *Dict) Freeze() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.Frozen = true
}

func (d *Dict) Len() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.Index)
}

// NewDict creates a dictionary whose first ids are taken by reserved.
// Unknown is set to the id of unknown when it is among the reserved
// values, and to -1 otherwise.
func NewDict(capacity int, unknown string, reserved ...string) *Dict {
	d := &Dict{
		Enum:    make(map[string]int, capacity),
		Index:   make([]string, 0, capacity),
		Unknown: -1,
	}
	for _, value := range reserved {
		d.Intern(value)
	}
	if id, exists := d.Enum[unknown]; exists && unknown != "" {
		d.Unknown = id
	}
	return d
}
