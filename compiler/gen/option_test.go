package gen

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestWithHeader(t *testing.T) {
	t.Run("sets header", func(t *testing.T) {
		c := &Config{}
		err := WithHeader("// Custom header")(c)

		require.NoError(t, err)
		assert.Equal(t, "// Custom header", c.Header)
	})

	t.Run("empty header falls back to default", func(t *testing.T) {
		c := &Config{Header: "existing"}
		err := WithHeader("")(c)

		require.NoError(t, err)
		assert.Equal(t, DefaultHeader, c.HeaderComment())
	})
}

func TestWithPackage(t *testing.T) {
	tests := []struct {
		name    string
		pkg     string
		wantErr bool
	}{
		{"import path", "example.com/app/prefs", false},
		{"single element", "prefs", false},
		{"empty", "", true},
		{"invalid name", "example.com/app/my-prefs", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &Config{}
			err := WithPackage(tt.pkg)(c)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, IsConfigError(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.pkg, c.Package)
		})
	}
}

func TestWithTargetAndRuntime(t *testing.T) {
	c := &Config{}
	require.NoError(t, WithTarget("/tmp/out")(c))
	assert.Equal(t, "/tmp/out", c.Target)
	assert.True(t, IsConfigError(WithTarget("")(c)))

	assert.Equal(t, DefaultRuntime, c.RuntimePkg())
	require.NoError(t, WithRuntime("example.com/rt")(c))
	assert.Equal(t, "example.com/rt", c.RuntimePkg())
	assert.True(t, IsConfigError(WithRuntime("")(c)))
}

func TestWithWorkersAndLogger(t *testing.T) {
	c := &Config{}
	require.NoError(t, WithWorkers(4)(c))
	assert.Equal(t, 4, c.Workers)
	assert.True(t, IsConfigError(WithWorkers(-1)(c)))

	assert.NotNil(t, c.Log(), "nop logger by default")
	l := zap.NewExample()
	require.NoError(t, WithLogger(l)(c))
	assert.Same(t, l, c.Log())
	assert.True(t, IsConfigError(WithLogger(nil)(c)))
}

func TestNewConfig(t *testing.T) {
	c, err := NewConfig(WithPackage("example.com/app/prefs"), WithTarget("out"), WithWorkers(2))
	require.NoError(t, err)
	assert.Equal(t, 2, c.Workers)

	_, err = NewConfig(WithPackage(""))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMissingConfig))

	assert.Panics(t, func() { MustNewConfig(WithTarget("")) })
}

func TestApplyAll(t *testing.T) {
	c := &Config{}
	err := c.ApplyAll(WithPackage(""), WithTarget(""), WithWorkers(1))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Package")
	assert.Contains(t, err.Error(), "Target")
	assert.Equal(t, 1, c.Workers)
}
