package gen

import (
	"path"
	"path/filepath"

	"go.uber.org/zap"
)

// Default configuration values.
const (
	// DefaultHeader is the file header written to every generated file.
	DefaultHeader = "Code generated by prefroom. DO NOT EDIT."
	// DefaultRuntime is the import path of the runtime package generated
	// code depends on.
	DefaultRuntime = "github.com/syssam/prefroom"
)

// Config holds the global configuration of a generation run.
type Config struct {
	// Package is the import path of the output root, for example
	// "example.com/app/prefs". Artifacts whose package equals the last
	// element of Package are written to Target directly; others to a
	// sub-directory of Target named after their package.
	Package string
	// Target is the output directory matching Package.
	Target string
	// Header is the comment written at the top of every generated file.
	Header string
	// Runtime is the import path of the runtime package.
	Runtime string
	// Workers bounds the number of files rendered in parallel.
	// Zero means GOMAXPROCS.
	Workers int
	// Logger receives diagnostics. Nil disables logging.
	Logger *zap.Logger
}

// PkgPath returns the import path of the generated package pkg.
func (c *Config) PkgPath(pkg string) string {
	switch {
	case c == nil || c.Package == "":
		return pkg
	case pkg == "" || path.Base(c.Package) == pkg:
		return c.Package
	default:
		return path.Join(c.Package, pkg)
	}
}

// Dir returns the output directory of the generated package pkg.
func (c *Config) Dir(pkg string) string {
	return filepath.Join(c.Target, c.RelDir(pkg))
}

// RelDir returns the output directory of the generated package pkg
// relative to Target.
func (c *Config) RelDir(pkg string) string {
	if c == nil || c.Package == "" || pkg == "" || path.Base(c.Package) == pkg {
		return ""
	}
	return pkg
}

// DefaultPackage returns the package name used by artifacts that do not
// declare one.
func (c *Config) DefaultPackage() string {
	if c == nil || c.Package == "" {
		return ""
	}
	return path.Base(c.Package)
}

// RuntimePkg returns the import path of the runtime package.
func (c *Config) RuntimePkg() string {
	if c == nil || c.Runtime == "" {
		return DefaultRuntime
	}
	return c.Runtime
}

// HeaderComment returns the file header.
func (c *Config) HeaderComment() string {
	if c == nil || c.Header == "" {
		return DefaultHeader
	}
	return c.Header
}

// Log returns the configured logger or a no-op logger.
func (c *Config) Log() *zap.Logger {
	if c == nil || c.Logger == nil {
		return zap.NewNop()
	}
	return c.Logger
}
