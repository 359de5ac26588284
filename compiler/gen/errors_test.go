package gen

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchemaError(t *testing.T) {
	t.Run("Error message with all fields", func(t *testing.T) {
		cause := errors.New("underlying error")
		err := NewSchemaError("UserPrefs", "age", "invalid default", cause)

		assert.Contains(t, err.Error(), "prefroom: schema error")
		assert.Contains(t, err.Error(), "on UserPrefs")
		assert.Contains(t, err.Error(), "field age")
		assert.Contains(t, err.Error(), "invalid default")
		assert.Contains(t, err.Error(), "underlying error")
	})

	t.Run("Error message with type only", func(t *testing.T) {
		err := &SchemaError{Type: "UserPrefs"}
		assert.Contains(t, err.Error(), "on UserPrefs")
		assert.NotContains(t, err.Error(), "field")
	})

	t.Run("Unwrap returns cause", func(t *testing.T) {
		cause := errors.New("root cause")
		err := NewSchemaError("UserPrefs", "", "", cause)

		assert.Equal(t, cause, err.Unwrap())
		assert.True(t, errors.Is(err, cause))
	})

	t.Run("Is matches ErrInvalidSchema", func(t *testing.T) {
		err := NewSchemaError("UserPrefs", "", "", nil)
		assert.True(t, errors.Is(err, ErrInvalidSchema))
	})

	t.Run("IsSchemaError helper", func(t *testing.T) {
		err := NewSchemaError("UserPrefs", "age", "test", nil)
		assert.True(t, IsSchemaError(err))
		assert.True(t, IsSchemaError(fmt.Errorf("wrapped: %w", err)))
		assert.False(t, IsSchemaError(errors.New("other")))
	})
}

func TestContractError(t *testing.T) {
	err := NewContractError("UserComponent", "Count", "int")
	assert.Equal(t, `prefroom: contract violation on component UserComponent: operation Count returns "int", only operations without results are allowed`, err.Error())
	assert.True(t, errors.Is(err, ErrContractViolation))
	assert.False(t, errors.Is(err, ErrInvalidSchema))
	assert.True(t, IsContractError(NewGenerationError("component", "PreferenceComponent_UserComponent", "", err)))
	assert.False(t, IsContractError(errors.New("other")))
}

func TestConfigError(t *testing.T) {
	t.Run("Error message with value", func(t *testing.T) {
		err := NewConfigError("Workers", -1, "must be positive")

		assert.Contains(t, err.Error(), "prefroom: config error")
		assert.Contains(t, err.Error(), "Workers")
		assert.Contains(t, err.Error(), "-1")
		assert.Contains(t, err.Error(), "must be positive")
	})

	t.Run("Error message without value", func(t *testing.T) {
		err := NewConfigError("Package", nil, "cannot be empty")

		assert.Contains(t, err.Error(), "Package")
		assert.Contains(t, err.Error(), "cannot be empty")
		assert.NotContains(t, err.Error(), "value:")
	})

	t.Run("Is matches ErrMissingConfig", func(t *testing.T) {
		err := NewConfigError("Target", nil, "missing")
		assert.True(t, errors.Is(err, ErrMissingConfig))
	})

	t.Run("IsConfigError helper", func(t *testing.T) {
		err := NewConfigError("Target", nil, "missing")
		assert.True(t, IsConfigError(err))
		assert.False(t, IsConfigError(errors.New("other")))
	})
}

func TestGenerationError(t *testing.T) {
	t.Run("Error message with all fields", func(t *testing.T) {
		cause := errors.New("disk full")
		err := NewGenerationError("write", "Preference_UserPrefs", "write file", cause)

		assert.Equal(t, "prefroom: generation error in phase write (artifact: Preference_UserPrefs): write file: disk full", err.Error())
		assert.True(t, errors.Is(err, cause))
		assert.True(t, errors.Is(err, ErrGenerationFailed))
	})

	t.Run("Wraps schema errors", func(t *testing.T) {
		cause := NewSchemaError("UserComponent", "Missing", "unknown entity", nil)
		err := NewGenerationError("component", "PreferenceComponent_UserComponent", "", cause)

		require.True(t, IsGenerationError(err))
		assert.True(t, errors.Is(err, ErrInvalidSchema))
		assert.True(t, IsSchemaError(err))
	})

	t.Run("IsGenerationError helper", func(t *testing.T) {
		assert.False(t, IsGenerationError(errors.New("other")))
	})
}
