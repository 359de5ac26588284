// Package golang renders preference artifacts as Go source code.
//
// Usage:
//
//	import (
//	    "github.com/syssam/prefroom/compiler/gen"
//	    "github.com/syssam/prefroom/compiler/gen/golang"
//	)
//
//	graph, err := gen.NewGraph(cfg, schema)
//	...
//	err = golang.Generate(ctx, graph)
//
// Names of the artifact tree map to Go identifiers as follows. Public names
// are exported by upper-casing their first letter. Static members, static
// methods and nested types become package-level declarations named
// <Class>_<Name>; private static members are prefixed with the class name
// with a lower-cased first letter instead. Instance methods are declared on
// a *<Class> receiver named p.
//
// Generated code structure:
//
//	{target}/
//	├── preference_{entity}.go             # Preference_{Entity}
//	├── preferencecomponent_{component}.go # PreferenceComponent_{Component}
//	└── {package}/                         # artifacts of other packages
package golang

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/dave/jennifer/jen"
	"go.uber.org/zap"
	"golang.org/x/tools/imports"

	"github.com/syssam/prefroom/compiler/gen"
)

// Backend renders artifact trees as Go files.
type Backend struct {
	cfg *gen.Config
}

// New returns a Go backend for cfg.
func New(cfg *gen.Config) *Backend {
	return &Backend{cfg: cfg}
}

// Verify Backend implements gen.Backend at compile time.
var _ gen.Backend = (*Backend)(nil)

// Name implements gen.Backend.
func (*Backend) Name() string { return "golang" }

// Render implements gen.Backend.
func (b *Backend) Render(c *gen.Class) (*gen.File, error) {
	if c.Package == "" {
		return nil, fmt.Errorf("class %s: missing package name", c.Name)
	}
	f, err := b.File(c)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := f.Render(&buf); err != nil {
		return nil, fmt.Errorf("render %s: %w", c.Name, err)
	}
	name := filepath.Join(b.cfg.RelDir(c.Package), FileName(c))
	// Format using goimports (removes unused imports and adds missing ones)
	out, err := imports.Process(filepath.Join(b.cfg.Target, name), buf.Bytes(), nil)
	if err != nil {
		return nil, fmt.Errorf("format %s: %w", name, err)
	}
	return &gen.File{Path: name, Content: out}, nil
}

// File builds the jennifer file of c without rendering it.
func (b *Backend) File(c *gen.Class) (f *jen.File, err error) {
	defer func() {
		// Unknown tree nodes are programming errors of the generators.
		if r := recover(); r != nil {
			err = fmt.Errorf("class %s: %v", c.Name, r)
		}
	}()
	f = jen.NewFilePathName(b.cfg.PkgPath(c.Package), c.Package)
	f.HeaderComment(b.cfg.HeaderComment())
	f.ImportName(b.cfg.RuntimePkg(), "prefroom")
	(&renderer{b: b, c: c, f: f}).class()
	return f, nil
}

// FileName returns the name of the file c is written to.
func FileName(c *gen.Class) string {
	return strings.ToLower(c.Name.String()) + ".go"
}

// Generate builds the artifacts of g and writes them to the target
// directory. Every artifact that could be generated is written; the
// returned error joins the failures of the others.
func Generate(ctx context.Context, g *gen.Graph) error {
	if g.Config == nil || g.Config.Target == "" {
		return gen.NewConfigError("Target", nil, "missing target directory in config")
	}
	classes, genErr := g.Artifacts()
	w := gen.NewWriter(g.Config, New(g.Config))
	if genErr != nil {
		// Outputs of failed artifacts from a previous run stay in place.
		w.KeepStale()
	}
	if err := w.Write(ctx, classes); err != nil {
		return fmt.Errorf("write artifacts: %w", err)
	}
	m := w.Metrics()
	g.Log().Info("generation finished",
		zap.Int("files", m.FilesWritten),
		zap.Int("removed", m.FilesRemoved),
		zap.Int64("bytes", m.TotalBytes),
	)
	return genErr
}
