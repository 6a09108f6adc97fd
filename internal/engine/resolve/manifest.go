package resolve

import (
	"strings"

	"github.com/tidwall/gjson"
	"go.trai.ch/pack/internal/core/domain"
	"go.trai.ch/zerr"
)

// ParseManifest reads the package.json fields resolution needs. Object keys of
// "exports" keep their declaration order.
func ParseManifest(data []byte) (*domain.PackageManifest, error) {
	if !gjson.ValidBytes(data) {
		return nil, domain.ErrManifestInvalid
	}

	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return nil, zerr.With(domain.ErrManifestInvalid, "reason", "top level is not an object")
	}

	m := &domain.PackageManifest{}
	if name := root.Get("name"); name.Type == gjson.String {
		m.Name = name.Str
	}
	if main := root.Get("main"); main.Type == gjson.String {
		m.Main = main.Str
	}
	if exports := root.Get("exports"); exports.Exists() {
		m.Exports = parseExports(exports)
	}
	return m, nil
}

// parseExports normalizes every accepted shape to a subpath table. A string,
// an array, or an object without "."-prefixed keys all describe subpath ".".
func parseExports(value gjson.Result) *domain.Exports {
	if value.IsObject() && hasSubpathKeys(value) {
		exports := &domain.Exports{}
		value.ForEach(func(key, target gjson.Result) bool {
			exports.Entries = append(exports.Entries, domain.ExportEntry{
				Key:    key.String(),
				Target: parseTarget(target),
			})
			return true
		})
		return exports
	}

	return &domain.Exports{
		Entries: []domain.ExportEntry{{Key: ".", Target: parseTarget(value)}},
	}
}

func hasSubpathKeys(value gjson.Result) bool {
	found := false
	value.ForEach(func(key, _ gjson.Result) bool {
		found = strings.HasPrefix(key.String(), ".")
		return !found
	})
	return found
}

func parseTarget(value gjson.Result) domain.ExportTarget {
	switch {
	case value.Type == gjson.String:
		return domain.ExportTarget{Path: value.Str}
	case value.IsArray():
		var t domain.ExportTarget
		for _, item := range value.Array() {
			t.Fallbacks = append(t.Fallbacks, parseTarget(item))
		}
		return t
	case value.IsObject():
		var t domain.ExportTarget
		value.ForEach(func(key, cond gjson.Result) bool {
			t.Conditions = append(t.Conditions, domain.ExportCondition{
				Name:   key.String(),
				Target: parseTarget(cond),
			})
			return true
		})
		return t
	default:
		return domain.ExportTarget{Null: true}
	}
}
