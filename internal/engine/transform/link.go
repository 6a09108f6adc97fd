package transform

import (
	"regexp"
	"strconv"

	"go.trai.ch/pack/internal/core/domain"
	"go.trai.ch/zerr"
)

// Link replaces every require("<specifier>") and require('<specifier>') of
// rec's dependencies in code with the dependency's require statement.
//
// Linking is textual: only calls with a single literal argument are
// rewritten, so concatenated or computed specifiers stay unlinked.
func Link(code string, rec *domain.ModuleRecord, table *domain.ModuleTable) (string, error) {
	for _, dep := range rec.Dependencies {
		target, ok := table.Get(dep.Path)
		if !ok {
			err := zerr.With(domain.ErrMissingDependency, "path", dep.Path)
			err = zerr.With(err, "specifier", dep.Specifier)
			return "", domain.Classify(domain.ErrLink, zerr.With(err, "importer", rec.Path))
		}
		code = requireCall(dep.Specifier).ReplaceAllLiteralString(code, target.RequireStatement)
	}
	return code, nil
}

func requireCall(specifier string) *regexp.Regexp {
	quoted := regexp.QuoteMeta(specifier)
	return regexp.MustCompile(`require\("` + quoted + `"\)|require\('` + quoted + `'\)`)
}

// Wrap registers code as the factory of module id.
func Wrap(id int, code string) string {
	return "define(" + strconv.Itoa(id) + ", function(module, exports, require) {\n" + code + "});"
}
