package gen

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubBackend renders a class as its name, failing for names listed in fail.
type stubBackend struct {
	fail map[Ident]bool
}

func (stubBackend) Name() string { return "stub" }

func (b stubBackend) Render(c *Class) (*File, error) {
	if b.fail[c.Name] {
		return nil, errors.New("render failed")
	}
	return &File{
		Path:    filepath.Join(c.Package, strings.ToLower(c.Name.String())+".go"),
		Content: []byte("package " + c.Package + "\n"),
	}, nil
}

func classes(names ...string) []*Class {
	cs := make([]*Class, len(names))
	for i, n := range names {
		cs[i] = &Class{Name: Ident(n), Package: "prefs"}
	}
	return cs
}

func TestWriter_Write(t *testing.T) {
	dir := t.TempDir()
	cfg := MustNewConfig(WithTarget(dir), WithWorkers(2))
	w := NewWriter(cfg, stubBackend{})

	require.NoError(t, w.Write(context.Background(), classes("Preference_A", "Preference_B")))
	assert.FileExists(t, filepath.Join(dir, "prefs", "preference_a.go"))
	assert.FileExists(t, filepath.Join(dir, "prefs", "preference_b.go"))
	assert.Equal(t, 2, w.Metrics().FilesWritten)

	m, err := ReadManifest(dir)
	require.NoError(t, err)
	assert.Equal(t, "stub", m.Generator)
	assert.Equal(t, []string{"prefs/preference_a.go", "prefs/preference_b.go"}, m.Files)
}

func TestWriter_RemovesStaleFiles(t *testing.T) {
	dir := t.TempDir()
	cfg := MustNewConfig(WithTarget(dir))

	require.NoError(t, NewWriter(cfg, stubBackend{}).Write(context.Background(), classes("Preference_A", "Preference_B")))
	w := NewWriter(cfg, stubBackend{})
	require.NoError(t, w.Write(context.Background(), classes("Preference_A")))

	assert.FileExists(t, filepath.Join(dir, "prefs", "preference_a.go"))
	assert.NoFileExists(t, filepath.Join(dir, "prefs", "preference_b.go"))
	assert.Equal(t, 1, w.Metrics().FilesRemoved)

	m, err := ReadManifest(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"prefs/preference_a.go"}, m.Files)
}

func TestWriter_IsolatesFailures(t *testing.T) {
	dir := t.TempDir()
	cfg := MustNewConfig(WithTarget(dir))
	require.NoError(t, NewWriter(cfg, stubBackend{}).Write(context.Background(), classes("Preference_A", "Preference_B")))

	w := NewWriter(cfg, stubBackend{fail: map[Ident]bool{"Preference_B": true}})
	err := w.Write(context.Background(), classes("Preference_A", "Preference_B"))
	require.Error(t, err)
	assert.True(t, IsGenerationError(err))
	assert.Contains(t, err.Error(), "Preference_B")

	// The previous output of the failed class is kept.
	assert.FileExists(t, filepath.Join(dir, "prefs", "preference_b.go"))
	m, err := ReadManifest(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"prefs/preference_a.go", "prefs/preference_b.go"}, m.Files)
}

func TestWriter_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := NewWriter(MustNewConfig(WithTarget(t.TempDir())), stubBackend{}).Write(ctx, classes("Preference_A"))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestWriter_MissingTarget(t *testing.T) {
	err := NewWriter(&Config{}, stubBackend{}).Write(context.Background(), nil)
	require.Error(t, err)
	assert.True(t, IsConfigError(err))
}

func TestManifest(t *testing.T) {
	dir := t.TempDir()
	m, err := ReadManifest(dir)
	require.NoError(t, err)
	assert.Empty(t, m.Files)

	m = &Manifest{Generator: "go", Files: []string{"b.go", "a.go", "b.go"}}
	require.NoError(t, m.Write(dir))
	got, err := ReadManifest(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"a.go", "b.go"}, got.Files)
	assert.Equal(t, []string{"b.go"}, got.Stale(&Manifest{Files: []string{"a.go"}}))

	require.NoError(t, os.WriteFile(filepath.Join(dir, ManifestFile), []byte{0xc1}, 0o644))
	_, err = ReadManifest(dir)
	require.Error(t, err)
}

func TestWriter_KeepStale(t *testing.T) {
	dir := t.TempDir()
	cfg := MustNewConfig(WithTarget(dir))
	require.NoError(t, NewWriter(cfg, stubBackend{}).Write(context.Background(), classes("Preference_A", "Preference_B")))
	require.NoError(t, NewWriter(cfg, stubBackend{}).KeepStale().Write(context.Background(), classes("Preference_A")))
	assert.FileExists(t, filepath.Join(dir, "prefs", "preference_b.go"))
}

// caseBackend renders a class to a file named exactly like the class.
type caseBackend struct{}

func (caseBackend) Name() string { return "case" }

func (caseBackend) Render(c *Class) (*File, error) {
	return &File{Path: c.Name.String() + ".go", Content: []byte("package prefs\n")}, nil
}

func TestWriter_PathCollision(t *testing.T) {
	tests := []struct {
		name    string
		backend Backend
		paths   []string
	}{
		{"same path", stubBackend{}, []string{"prefs/preference_bar.go"}},
		{"paths differing in case", caseBackend{}, []string{"Preference_Bar.go"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			w := NewWriter(MustNewConfig(WithTarget(dir)), tt.backend)
			err := w.Write(context.Background(), classes("Preference_Foo", "Preference_foo", "Preference_Bar"))
			require.Error(t, err)
			assert.True(t, IsGenerationError(err))
			assert.Contains(t, err.Error(), "collides with Preference_foo")
			assert.Contains(t, err.Error(), "collides with Preference_Foo")
			assert.Equal(t, 1, w.Metrics().FilesWritten)

			m, err := ReadManifest(dir)
			require.NoError(t, err)
			assert.Equal(t, tt.paths, m.Files)
		})
	}
}
