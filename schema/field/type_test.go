package field_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/prefroom/schema/field"
)

func TestFieldTypeInfo(t *testing.T) {
	tests := []struct {
		name     string
		typ      field.Type
		numeric  bool
		valid    bool
		constNam string
		goType   string
		store    string
	}{
		{"TypeBool", field.TypeBool, false, true, "TypeBool", "bool", "Bool"},
		{"TypeInt", field.TypeInt, true, true, "TypeInt", "int", "Int"},
		{"TypeInt64", field.TypeInt64, true, true, "TypeInt64", "int64", "Int64"},
		{"TypeFloat", field.TypeFloat, true, true, "TypeFloat", "float32", "Float32"},
		{"TypeString", field.TypeString, false, true, "TypeString", "string", "String"},
		{"TypeStringSet", field.TypeStringSet, false, true, "TypeStringSet", "[]string", "StringSet"},
		{"TypeInvalid", field.TypeInvalid, false, false, "invalid", "invalid", ""},
		{"OutOfRange", field.Type(200), false, false, "invalid", "invalid", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.numeric, tt.typ.Numeric(), "Numeric() mismatch")
			assert.Equal(t, tt.valid, tt.typ.Valid(), "Valid() mismatch")
			assert.Equal(t, tt.constNam, tt.typ.ConstName(), "ConstName() mismatch")
			assert.Equal(t, tt.goType, tt.typ.String(), "String() mismatch")
			assert.Equal(t, tt.store, tt.typ.StoreName(), "StoreName() mismatch")
		})
	}
}

func TestParseType(t *testing.T) {
	for name, want := range map[string]field.Type{
		"bool":      field.TypeBool,
		"Boolean":   field.TypeBool,
		"integer":   field.TypeInt,
		"long":      field.TypeInt64,
		"float":     field.TypeFloat,
		" string ":  field.TypeString,
		"stringset": field.TypeStringSet,
		"[]string":  field.TypeStringSet,
	} {
		got, err := field.ParseType(name)
		require.NoError(t, err, name)
		assert.Equal(t, want, got, name)
	}
	_, err := field.ParseType("double")
	require.EqualError(t, err, `unsupported value type "double"`)
}

func TestCoerce(t *testing.T) {
	t.Run("Nil", func(t *testing.T) {
		v, err := field.TypeInt64.Coerce(nil)
		require.NoError(t, err)
		assert.Equal(t, int64(0), v)
		v, err = field.TypeStringSet.Coerce(nil)
		require.NoError(t, err)
		assert.Nil(t, v)
	})

	t.Run("Numbers", func(t *testing.T) {
		v, err := field.TypeInt.Coerce(float64(42))
		require.NoError(t, err)
		assert.Equal(t, 42, v)

		v, err = field.TypeInt64.Coerce(7)
		require.NoError(t, err)
		assert.Equal(t, int64(7), v)

		v, err = field.TypeFloat.Coerce(1.5)
		require.NoError(t, err)
		assert.Equal(t, float32(1.5), v)

		v, err = field.TypeFloat.Coerce(3)
		require.NoError(t, err)
		assert.Equal(t, float32(3), v)

		_, err = field.TypeInt.Coerce(1.5)
		assert.Error(t, err)
	})

	t.Run("StringSet", func(t *testing.T) {
		v, err := field.TypeStringSet.Coerce([]any{"a", "b", "a"})
		require.NoError(t, err)
		assert.Equal(t, []string{"a", "b"}, v)

		_, err = field.TypeStringSet.Coerce([]any{"a", 1})
		assert.Error(t, err)
	})

	t.Run("Mismatch", func(t *testing.T) {
		_, err := field.TypeBool.Coerce("yes")
		require.EqualError(t, err, "default value yes (string) does not match type bool")
		_, err = field.TypeString.Coerce(true)
		assert.Error(t, err)
		_, err = field.TypeInvalid.Coerce(1)
		assert.Error(t, err)
	})
}
