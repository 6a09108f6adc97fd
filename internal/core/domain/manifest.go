package domain

// PackageManifest holds the package.json fields resolution cares about.
type PackageManifest struct {
	Name    string
	Main    string
	Exports *Exports
}

// Exports is a package's "exports" field with declaration order preserved.
type Exports struct {
	Entries []ExportEntry
}

// ExportEntry maps a subpath pattern such as "./utils/*" to its target.
type ExportEntry struct {
	Key    string
	Target ExportTarget
}

// ExportTarget is one exports value: a path, a conditional object,
// a fallback list, or an explicit null.
type ExportTarget struct {
	Path       string
	Conditions []ExportCondition
	Fallbacks  []ExportTarget
	Null       bool
}

// IsPath reports whether the target is a plain path string.
func (t ExportTarget) IsPath() bool {
	return t.Path != ""
}

// ExportCondition is one condition name of a conditional target, in declaration order.
type ExportCondition struct {
	Name   string
	Target ExportTarget
}

// Condition returns the target registered under name.
func (t ExportTarget) Condition(name string) (ExportTarget, bool) {
	for _, c := range t.Conditions {
		if c.Name == name {
			return c.Target, true
		}
	}
	return ExportTarget{}, false
}
