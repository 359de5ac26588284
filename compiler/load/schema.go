// Package load reads declarative preference schema files into the records
// the generator consumes.
package load

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// Schema is the content of one schema file.
type Schema struct {
	// Package is the default output package of entities and components
	// that do not name one.
	Package    string       `json:"package,omitempty" yaml:"package,omitempty"`
	Entities   []*Entity    `json:"entities,omitempty" yaml:"entities,omitempty"`
	Components []*Component `json:"components,omitempty" yaml:"components,omitempty"`
	// Path is the file the schema was loaded from, if any.
	Path string `json:"-" yaml:"-"`
}

// Entity describes one preference group.
type Entity struct {
	Name    string `json:"name" yaml:"name"`
	Package string `json:"package,omitempty" yaml:"package,omitempty"`
	// Default selects the process-wide default store instead of a store
	// namespaced by Name.
	Default bool     `json:"default,omitempty" yaml:"default,omitempty"`
	Fields  []*Field `json:"fields,omitempty" yaml:"fields,omitempty"`
}

// Field describes one typed key of an entity.
type Field struct {
	Key     string `json:"key" yaml:"key"`
	Type    string `json:"type" yaml:"type"`
	Default any    `json:"default,omitempty" yaml:"default,omitempty"`
}

// Component describes an aggregate facade over entities.
type Component struct {
	Name     string    `json:"name" yaml:"name"`
	Package  string    `json:"package,omitempty" yaml:"package,omitempty"`
	Contract *Contract `json:"contract,omitempty" yaml:"contract,omitempty"`
	// Entities lists the names of the aggregated entities.
	Entities []string `json:"entities,omitempty" yaml:"entities,omitempty"`
}

// Contract describes the interface a component implements.
type Contract struct {
	Name string `json:"name" yaml:"name"`
	// Path is the import path of the package declaring the interface.
	// Empty means the component's own package.
	Path    string    `json:"path,omitempty" yaml:"path,omitempty"`
	Methods []*Method `json:"methods,omitempty" yaml:"methods,omitempty"`
}

// Method is one operation of a contract.
type Method struct {
	Name    string   `json:"name" yaml:"name"`
	Params  []*Param `json:"params,omitempty" yaml:"params,omitempty"`
	Returns []string `json:"returns,omitempty" yaml:"returns,omitempty"`
}

// Param is a named method parameter. Type is a type expression accepted by
// ParseTypeRef.
type Param struct {
	Name string `json:"name" yaml:"name"`
	Type string `json:"type" yaml:"type"`
}

// Format is a schema file encoding.
type Format string

// Supported schema formats.
const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// ErrUnknownFormat is returned for schema files with an unrecognized extension.
var ErrUnknownFormat = errors.New("load: unknown schema format")

// FormatOf returns the format of a schema file by its extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, path)
	}
}

// Load reads and parses the schema file at path.
func Load(path string) (*Schema, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load: read schema: %w", err)
	}
	s, err := Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("load: %s: %w", path, err)
	}
	s.Path = path
	return s, nil
}

// Parse decodes a schema. Unknown keys are rejected.
func Parse(data []byte, format Format) (*Schema, error) {
	s := &Schema{}
	switch format {
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(s); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("decode yaml: %w", err)
		}
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(s); err != nil {
			return nil, fmt.Errorf("decode json: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
	if err := s.check(); err != nil {
		return nil, err
	}
	return s, nil
}

// check reports structural problems that make records unusable, such as
// missing names or nil entries.
func (s *Schema) check() error {
	for i, e := range s.Entities {
		switch {
		case e == nil:
			return fmt.Errorf("entity #%d is empty", i)
		case e.Name == "":
			return fmt.Errorf("entity #%d: missing name", i)
		}
		for j, f := range e.Fields {
			if f == nil {
				return fmt.Errorf("entity %q: field #%d is empty", e.Name, j)
			}
		}
	}
	for i, c := range s.Components {
		switch {
		case c == nil:
			return fmt.Errorf("component #%d is empty", i)
		case c.Name == "":
			return fmt.Errorf("component #%d: missing name", i)
		}
		if c.Contract == nil {
			continue
		}
		for j, m := range c.Contract.Methods {
			if m == nil {
				return fmt.Errorf("component %q: method #%d is empty", c.Name, j)
			}
			for k, p := range m.Params {
				if p == nil {
					return fmt.Errorf("component %q: method %q: param #%d is empty", c.Name, m.Name, k)
				}
			}
		}
	}
	return nil
}
