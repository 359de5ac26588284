package load

import (
	"fmt"
	"go/token"
	"strings"
)

// TypeRef is a parsed type expression of a contract parameter or result.
type TypeRef struct {
	// PkgPath is the import path of a qualified type, empty for builtin and
	// package-local types.
	PkgPath string
	Name    string
	Pointer bool
	Slice   bool
}

// ParseTypeRef parses expressions of the form
//
//	[[]][*][import/path.]Name
//
// for example "int", "[]string", "*Activity" or "*example.com/app/ui.Activity".
func ParseTypeRef(s string) (TypeRef, error) {
	var (
		ref  TypeRef
		expr = strings.TrimSpace(s)
	)
	if rest, ok := strings.CutPrefix(expr, "[]"); ok {
		ref.Slice, expr = true, rest
	}
	if rest, ok := strings.CutPrefix(expr, "*"); ok {
		ref.Pointer, expr = true, rest
	}
	if i := strings.LastIndex(expr, "."); i >= 0 {
		ref.PkgPath, expr = expr[:i], expr[i+1:]
		if ref.PkgPath == "" || strings.ContainsAny(ref.PkgPath, " \t*[]") {
			return TypeRef{}, fmt.Errorf("invalid import path in type %q", s)
		}
	}
	if !token.IsIdentifier(expr) {
		return TypeRef{}, fmt.Errorf("invalid type %q", s)
	}
	ref.Name = expr
	return ref, nil
}

// String returns the type expression.
func (r TypeRef) String() string {
	var b strings.Builder
	if r.Slice {
		b.WriteString("[]")
	}
	if r.Pointer {
		b.WriteString("*")
	}
	if r.PkgPath != "" {
		b.WriteString(r.PkgPath)
		b.WriteString(".")
	}
	b.WriteString(r.Name)
	return b.String()
}
