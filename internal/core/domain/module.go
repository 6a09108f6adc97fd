package domain

import (
	"iter"
	"strconv"

	"go.trai.ch/zerr"
)

// Dependency is one specifier as written in a module's source and the
// absolute path it resolved to.
type Dependency struct {
	Specifier string
	Path      string
}

// ModuleRecord is the build's view of one physical module.
type ModuleRecord struct {
	// Path is the absolute path of the module and its identity.
	Path string
	// ID is assigned when the module is first discovered and never changes.
	ID int
	// Loader is the loader that produced Code.
	Loader LoaderKind
	// Code is the loader output before transformation.
	Code string
	// Dependencies are in scan order with unique specifiers.
	Dependencies []Dependency
	// RequireStatement is substituted wherever another module requires this one.
	RequireStatement string
}

// RequireByID returns the require-linking statement for a module id.
func RequireByID(id int) string {
	return "require(" + strconv.Itoa(id) + ")"
}

// ModuleTable holds every record of a build keyed by absolute path.
// Once frozen it is safe for concurrent readers.
type ModuleTable struct {
	byPath map[string]*ModuleRecord
	byID   []*ModuleRecord
	frozen bool
}

// NewModuleTable creates an empty table.
func NewModuleTable() *ModuleTable {
	return &ModuleTable{
		byPath: make(map[string]*ModuleRecord),
	}
}

// Add records a module. Ids must be handed out densely starting at zero.
func (t *ModuleTable) Add(rec *ModuleRecord) error {
	if t.frozen {
		return zerr.With(ErrModuleTableFrozen, "path", rec.Path)
	}
	if _, exists := t.byPath[rec.Path]; exists {
		return zerr.With(ErrModuleAlreadyRecorded, "path", rec.Path)
	}
	if rec.ID != len(t.byID) {
		err := zerr.With(ErrModuleIDOutOfOrder, "path", rec.Path)
		return zerr.With(err, "id", rec.ID)
	}
	t.byPath[rec.Path] = rec
	t.byID = append(t.byID, rec)
	return nil
}

// Freeze makes the table read-only.
func (t *ModuleTable) Freeze() {
	t.frozen = true
}

// Frozen reports whether Freeze has been called.
func (t *ModuleTable) Frozen() bool {
	return t.frozen
}

// Has reports whether a module with the given path is recorded.
func (t *ModuleTable) Has(path string) bool {
	_, ok := t.byPath[path]
	return ok
}

// Get returns the record for path.
func (t *ModuleTable) Get(path string) (*ModuleRecord, bool) {
	rec, ok := t.byPath[path]
	return rec, ok
}

// ByID returns the record with the given id.
func (t *ModuleTable) ByID(id int) (*ModuleRecord, bool) {
	if id < 0 || id >= len(t.byID) {
		return nil, false
	}
	return t.byID[id], true
}

// Len returns the number of recorded modules.
func (t *ModuleTable) Len() int {
	return len(t.byID)
}

// Records yields every record in id order.
func (t *ModuleTable) Records() iter.Seq[*ModuleRecord] {
	return func(yield func(*ModuleRecord) bool) {
		for _, rec := range t.byID {
			if !yield(rec) {
				return
			}
		}
	}
}

// Fragment is the final, linked and wrapped code of one module.
type Fragment struct {
	ID   int
	Path string
	Code string
}
