package resolve_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/pack/internal/core/domain"
	"go.trai.ch/pack/internal/engine/resolve"
)

func TestParseManifest(t *testing.T) {
	m, err := resolve.ParseManifest([]byte(`{
  "name": "@acme/ui",
  "main": "dist/index.js",
  "exports": {
    "./b": "./b.js",
    "./a": {"browser": "./a.browser.js", "default": null}
  }
}`))
	require.NoError(t, err)

	assert.Equal(t, "@acme/ui", m.Name)
	assert.Equal(t, "dist/index.js", m.Main)
	require.NotNil(t, m.Exports)
	require.Len(t, m.Exports.Entries, 2)
	assert.Equal(t, "./b", m.Exports.Entries[0].Key)
	assert.Equal(t, "./a", m.Exports.Entries[1].Key)

	a := m.Exports.Entries[1].Target
	require.Len(t, a.Conditions, 2)
	assert.Equal(t, "browser", a.Conditions[0].Name)
	assert.Equal(t, "./a.browser.js", a.Conditions[0].Target.Path)
	assert.True(t, a.Conditions[1].Target.Null)
}

func TestParseManifest_Invalid(t *testing.T) {
	for _, data := range []string{`{"name": `, `[1, 2]`} {
		_, err := resolve.ParseManifest([]byte(data))
		require.Error(t, err)
		assert.Contains(t, err.Error(), domain.ErrManifestInvalid.Error())
	}
}

func TestParseManifest_NonStringFieldsIgnored(t *testing.T) {
	m, err := resolve.ParseManifest([]byte(`{"name": 1, "main": false}`))
	require.NoError(t, err)

	assert.Empty(t, m.Name)
	assert.Empty(t, m.Main)
	assert.Nil(t, m.Exports)
}

func TestSplitPackageSpecifier(t *testing.T) {
	tests := []struct {
		specifier string
		name      string
		rest      string
	}{
		{"react", "react", ""},
		{"lodash/fp/map", "lodash", "/fp/map"},
		{"@scope/pkg", "@scope/pkg", ""},
		{"@scope/pkg/utils/x", "@scope/pkg", "/utils/x"},
	}

	for _, tt := range tests {
		t.Run(tt.specifier, func(t *testing.T) {
			name, rest := resolve.SplitPackageSpecifier(tt.specifier)
			assert.Equal(t, tt.name, name)
			assert.Equal(t, tt.rest, rest)
		})
	}
}
