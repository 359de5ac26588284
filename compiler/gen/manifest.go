package gen

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"

	"github.com/vmihailenco/msgpack/v5"
)

// ManifestFile is the name of the manifest written to the target directory.
const ManifestFile = ".prefroom.manifest"

// Manifest records the files written by one generation run, relative to
// the target directory.
type Manifest struct {
	Generator string   `msgpack:"generator"`
	Files     []string `msgpack:"files"`
}

// ReadManifest reads the manifest of dir. A missing manifest yields an
// empty one.
func ReadManifest(dir string) (*Manifest, error) {
	data, err := os.ReadFile(filepath.Join(dir, ManifestFile))
	if errors.Is(err, fs.ErrNotExist) {
		return &Manifest{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	m := &Manifest{}
	if err := msgpack.Unmarshal(data, m); err != nil {
		return nil, fmt.Errorf("decode manifest: %w", err)
	}
	return m, nil
}

// Write stores the manifest in dir.
func (m *Manifest) Write(dir string) error {
	slices.Sort(m.Files)
	m.Files = slices.Compact(m.Files)
	data, err := msgpack.Marshal(m)
	if err != nil {
		return fmt.Errorf("encode manifest: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, ManifestFile), data, 0o644); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}
	return nil
}

// Stale returns the files of m that are not listed in next.
func (m *Manifest) Stale(next *Manifest) []string {
	var stale []string
	for _, f := range m.Files {
		if !slices.Contains(next.Files, f) {
			stale = append(stale, f)
		}
	}
	return stale
}
