// Package consent defines the tri-state cookie consent record.
package consent

import "time"

// Record is the visitor's consent state. Necessary is structurally always
// true; it exists in the record so the persisted shape matches what the
// settings panel renders.
type Record struct {
	Necessary bool      `json:"necessary"`
	Analytics bool      `json:"analytics"`
	Marketing bool      `json:"marketing"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Defaults returns the pre-consent record: only necessary cookies allowed.
func Defaults() Record {
	return Record{Necessary: true}
}

// Normalize forces the necessary invariant regardless of input.
func (r Record) Normalize() Record {
	r.Necessary = true
	return r
}
