package load

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_YAML(t *testing.T) {
	s, err := Load(filepath.Join("testdata", "schema.yaml"))
	require.NoError(t, err)
	require.Equal(t, "prefs", s.Package)
	require.Len(t, s.Entities, 2)
	require.Len(t, s.Components, 1)
	assert.Equal(t, filepath.Join("testdata", "schema.yaml"), s.Path)

	user := s.Entities[0]
	assert.Equal(t, "UserPrefs", user.Name)
	assert.False(t, user.Default)
	require.Len(t, user.Fields, 3)
	assert.Equal(t, "age", user.Fields[0].Key)
	assert.Equal(t, "int", user.Fields[0].Type)
	assert.Equal(t, 0, user.Fields[0].Default)
	assert.Equal(t, "guest", user.Fields[2].Default)

	settings := s.Entities[1]
	assert.True(t, settings.Default)
	assert.Equal(t, 0.5, settings.Fields[0].Default)
	assert.Equal(t, []any{"a", "b"}, settings.Fields[1].Default)

	c := s.Components[0]
	assert.Equal(t, "UserComponent", c.Name)
	assert.Equal(t, []string{"UserPrefs", "Settings"}, c.Entities)
	require.NotNil(t, c.Contract)
	require.Len(t, c.Contract.Methods, 1)
	m := c.Contract.Methods[0]
	assert.Equal(t, "Inject", m.Name)
	require.Len(t, m.Params, 1)
	assert.Equal(t, "*example.com/app/ui.Activity", m.Params[0].Type)
	assert.Empty(t, m.Returns)
}

func TestLoad_JSON(t *testing.T) {
	s, err := Load(filepath.Join("testdata", "schema.json"))
	require.NoError(t, err)
	require.Len(t, s.Entities, 1)
	assert.Equal(t, float64(3), s.Entities[0].Fields[0].Default)
	assert.Nil(t, s.Entities[0].Fields[1].Default)
	require.Len(t, s.Components, 1)
	assert.Equal(t, "Reset", s.Components[0].Contract.Methods[0].Name)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load("schema.toml")
	require.ErrorIs(t, err, ErrUnknownFormat)

	_, err = Load(filepath.Join("testdata", "missing.yaml"))
	require.Error(t, err)

	_, err = Parse([]byte("entities:\n  - name: A\n    colour: red\n"), FormatYAML)
	require.Error(t, err, "unknown keys are rejected")

	_, err = Parse([]byte(`{"entities":[{"name":"A","extra":1}]}`), FormatJSON)
	require.Error(t, err, "unknown keys are rejected")

	_, err = Parse([]byte("entities:\n  - fields: []\n"), FormatYAML)
	require.EqualError(t, err, "entity #0: missing name")

	_, err = Parse([]byte("components:\n  - entities: [A]\n"), FormatYAML)
	require.EqualError(t, err, "component #0: missing name")

	_, err = Parse(nil, Format("toml"))
	require.ErrorIs(t, err, ErrUnknownFormat)
}

func TestParse_Empty(t *testing.T) {
	s, err := Parse(nil, FormatYAML)
	require.NoError(t, err)
	assert.Empty(t, s.Entities)
	assert.Empty(t, s.Components)
}

func TestParseTypeRef(t *testing.T) {
	tests := []struct {
		in   string
		want TypeRef
	}{
		{"int", TypeRef{Name: "int"}},
		{"[]string", TypeRef{Name: "string", Slice: true}},
		{"*Activity", TypeRef{Name: "Activity", Pointer: true}},
		{"*example.com/app/ui.Activity", TypeRef{PkgPath: "example.com/app/ui", Name: "Activity", Pointer: true}},
		{"[]*time.Time", TypeRef{PkgPath: "time", Name: "Time", Pointer: true, Slice: true}},
		{" context.Context ", TypeRef{PkgPath: "context", Name: "Context"}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseTypeRef(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
	for _, bad := range []string{"", "*", "map[string]int", ".Foo", "pkg.", "a b.C"} {
		_, err := ParseTypeRef(bad)
		assert.Error(t, err, bad)
	}
}

func TestTypeRef_String(t *testing.T) {
	for _, s := range []string{"int", "[]string", "*example.com/app/ui.Activity", "[]*time.Time"} {
		ref, err := ParseTypeRef(s)
		require.NoError(t, err)
		assert.Equal(t, s, ref.String())
	}
}
