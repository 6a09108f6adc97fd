package resolve_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/pack/internal/core/domain"
	"go.trai.ch/pack/internal/engine/resolve"
)

func mustManifest(t *testing.T, data string) *domain.PackageManifest {
	t.Helper()
	m, err := resolve.ParseManifest([]byte(data))
	require.NoError(t, err)
	return m
}

func TestResolveExports(t *testing.T) {
	tests := []struct {
		name     string
		manifest string
		subpath  string
		want     string
		found    bool
	}{
		{
			name:     "bare string answers root",
			manifest: `{"exports": "./index.js"}`,
			subpath:  ".",
			want:     "./index.js",
			found:    true,
		},
		{
			name:     "bare string does not answer subpaths",
			manifest: `{"exports": "./index.js"}`,
			subpath:  "./other",
		},
		{
			name:     "exact subpath",
			manifest: `{"exports": {".": "./main.js", "./feature": "./lib/feature.js"}}`,
			subpath:  "./feature",
			want:     "./lib/feature.js",
			found:    true,
		},
		{
			name:     "condition priority prefers browser over default",
			manifest: `{"exports": {".": {"default": "./d.js", "browser": "./b.js"}}}`,
			subpath:  ".",
			want:     "./b.js",
			found:    true,
		},
		{
			name:     "require before production and default",
			manifest: `{"exports": {".": {"default": "./d.js", "production": "./p.js", "require": "./r.js", "import": "./i.mjs"}}}`,
			subpath:  ".",
			want:     "./r.js",
			found:    true,
		},
		{
			name:     "unknown conditions are ignored",
			manifest: `{"exports": {".": {"import": "./i.mjs", "node": "./n.js"}}}`,
			subpath:  ".",
		},
		{
			name:     "empty condition value is skipped",
			manifest: `{"exports": {".": {"browser": "", "default": "./d.js"}}}`,
			subpath:  ".",
			want:     "./d.js",
			found:    true,
		},
		{
			name:     "wildcard substitution",
			manifest: `{"exports": {"./utils/*": "./dist/utils/*.js"}}`,
			subpath:  "./utils/x",
			want:     "./dist/utils/x.js",
			found:    true,
		},
		{
			name:     "wildcard capture spans slashes",
			manifest: `{"exports": {"./utils/*": {"require": "./cjs/*.js"}}}`,
			subpath:  "./utils/a/b",
			want:     "./cjs/a/b.js",
			found:    true,
		},
		{
			name:     "metacharacters in keys are literal",
			manifest: `{"exports": {"./a+b/*": "./x/*.js"}}`,
			subpath:  "./aab/c",
		},
		{
			name:     "later keys win",
			manifest: `{"exports": {"./*": "./generic/*.js", "./special": "./special.js"}}`,
			subpath:  "./special",
			want:     "./special.js",
			found:    true,
		},
		{
			name:     "later wildcard shadows earlier exact key",
			manifest: `{"exports": {"./special": "./special.js", "./*": "./generic/*.js"}}`,
			subpath:  "./special",
			want:     "./generic/special.js",
			found:    true,
		},
		{
			name:     "null target excludes subpath",
			manifest: `{"exports": {"./*": "./src/*.js", "./internal/*": null}}`,
			subpath:  "./internal/x",
		},
		{
			name:     "conditional sugar at top level",
			manifest: `{"exports": {"require": "./cjs.js", "import": "./esm.mjs"}}`,
			subpath:  ".",
			want:     "./cjs.js",
			found:    true,
		},
		{
			name:     "nested conditions",
			manifest: `{"exports": {".": {"browser": {"production": "./b.prod.js", "default": "./b.js"}}}}`,
			subpath:  ".",
			want:     "./b.prod.js",
			found:    true,
		},
		{
			name:     "fallback array",
			manifest: `{"exports": {".": [{"import": "./i.mjs"}, "./fallback.js"]}}`,
			subpath:  ".",
			want:     "./fallback.js",
			found:    true,
		},
		{
			name:     "no exports",
			manifest: `{"main": "index.js"}`,
			subpath:  ".",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := mustManifest(t, tt.manifest)

			got, found := resolve.ResolveExports(m.Exports, tt.subpath)

			assert.Equal(t, tt.found, found)
			assert.Equal(t, tt.want, got)
		})
	}
}
