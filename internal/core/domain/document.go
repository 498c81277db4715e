package domain

import (
	"fmt"
	"strings"
)

// DayEntry is the assignment and annotation of one day.
type DayEntry struct {
	Custodian Custodian `json:"custodian" bson:"custodian"`
	Notes     string    `json:"notes,omitempty" bson:"notes,omitempty"`
}

// empty reports whether the entry carries no information.
func (e DayEntry) empty() bool {
	return (e.Custodian == Unassigned || e.Custodian == "") && strings.TrimSpace(e.Notes) == ""
}

// Document is one user's sparse custody calendar. A missing key means
// Unassigned with no notes; such entries are never stored.
type Document map[DateKey]DayEntry

// Entry returns the entry at key, defaulting to Unassigned.
func (d Document) Entry(key DateKey) DayEntry {
	if e, ok := d[key]; ok {
		if e.Custodian == "" {
			e.Custodian = Unassigned
		}
		return e
	}
	return DayEntry{Custodian: Unassigned}
}

func (d Document) Clone() Document {
	out := make(Document, len(d))
	for k, v := range d {
		out[k] = v
	}
	return out
}

// CycleCustodian advances the custodian at key and keeps its notes.
func CycleCustodian(doc Document, key DateKey) Document {
	cur := doc.Entry(key)
	cur.Custodian = cur.Custodian.Next()
	return withEntry(doc, key, cur)
}

// SetNotes trims text and stores it as the notes at key.
func SetNotes(doc Document, key DateKey, text string) Document {
	cur := doc.Entry(key)
	cur.Notes = strings.TrimSpace(text)
	return withEntry(doc, key, cur)
}

func withEntry(doc Document, key DateKey, e DayEntry) Document {
	out := doc.Clone()
	if e.empty() {
		delete(out, key)
		return out
	}
	out[key] = e
	return out
}

// Normalize validates an externally supplied document and returns a copy
// with trimmed notes and without empty entries.
func Normalize(doc Document) (Document, error) {
	out := make(Document, len(doc))
	for k, e := range doc {
		if _, err := ParseDateKey(string(k)); err != nil {
			return nil, err
		}
		c, err := ParseCustodian(string(e.Custodian))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", k, err)
		}
		e.Custodian = c
		e.Notes = strings.TrimSpace(e.Notes)
		if e.empty() {
			continue
		}
		out[k] = e
	}
	return out, nil
}
