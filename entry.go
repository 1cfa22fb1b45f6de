package docset

import (
	"context"
	"strings"
)

// EntryType is the kind of a documented symbol as understood by docset viewers.
type EntryType string

// Entry types recognized by the index.
const (
	EntryModule    EntryType = "Module"
	EntryClass     EntryType = "Class"
	EntryException EntryType = "Exception"
	EntryMethod    EntryType = "Method"
	EntryAttribute EntryType = "Attribute"
	EntryFunction  EntryType = "Function"
	EntryConstant  EntryType = "Constant"
)

// EntryTypes lists every valid EntryType.
var EntryTypes = []EntryType{
	EntryModule,
	EntryClass,
	EntryException,
	EntryMethod,
	EntryAttribute,
	EntryFunction,
	EntryConstant,
}

// Valid reports whether t is one of the recognized entry types.
func (t EntryType) Valid() bool {
	for _, v := range EntryTypes {
		if t == v {
			return true
		}
	}
	return false
}

// Entry is a single row of the symbol index.
type Entry struct {
	Name string
	Type EntryType

	// Path is relative to the bundle's documents directory and may carry
	// a #fragment pointing at the symbol's anchor.
	Path string
}

// Validate returns an error if the entry contains invalid fields.
func (e *Entry) Validate() error {
	if e.Name == "" {
		return Errorf(EINVALID, "entry name required")
	}
	if e.Path == "" {
		return Errorf(EINVALID, "entry path required")
	}
	if !e.Type.Valid() {
		return Errorf(EINVALID, "unknown entry type %q", e.Type)
	}
	return nil
}

// File returns the page part of Path, without any fragment.
func (e *Entry) File() string {
	if i := strings.IndexByte(e.Path, '#'); i >= 0 {
		return e.Path[:i]
	}
	return e.Path
}

// EntryFilter represents a filter passed to FindEntries.
type EntryFilter struct {
	Name *string
	Type *EntryType
	Path *string

	Limit int
}

// IndexService represents the symbol index of a bundle.
type IndexService interface {
	// AddEntry inserts e unless an identical (name, type, path) row exists.
	// Returns true if a row was inserted.
	AddEntry(ctx context.Context, e *Entry) (bool, error)

	// AddEntries inserts all entries in a single transaction and returns
	// the number of rows actually inserted.
	AddEntries(ctx context.Context, entries []*Entry) (int, error)

	// FindEntries returns entries matching filter, ordered by name.
	FindEntries(ctx context.Context, filter EntryFilter) ([]*Entry, error)

	// CountEntries returns the number of rows in the index.
	CountEntries(ctx context.Context) (int, error)
}
