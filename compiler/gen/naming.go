package gen

import (
	"fmt"
	"go/token"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Fixed names of the generated artifacts. Generated-code consumers match on
// these, so they must not change.
const (
	EntityPrefix    = "Preference_"
	ComponentPrefix = "PreferenceComponent_"

	InstanceMember   = "instance"
	StoreMember      = "preference"
	ContextParam     = "context"
	GetInstance      = "getInstance"
	InitMethod       = "init"
	KeyNameList      = "getKeyNameList"
	EntityNameMethod = "getEntityName"
	ClearMethod      = "clear"
	OnChangedMethod  = "onChanged"
)

// Accessor verbs prefixed to UpperCamel(key).
const (
	verbGet      = "get"
	verbPut      = "put"
	verbContains = "contains"
	verbRemove   = "remove"
	verbRegister = "register"
	verbKey      = "key"

	listenerSuffix = "OnChangedListener"
)

// isSeparator reports whether r separates two words of a key name.
func isSeparator(r rune) bool {
	switch r {
	case '_', '-', '.', ' ':
		return true
	}
	return false
}

// UpperCamel converts a key name to upper camel case: the first letter and
// every letter following a separator are upper-cased and separators are
// removed. All other characters are kept as is.
//
//	UpperCamel("age")       // Age
//	UpperCamel("user_name") // UserName
//	UpperCamel("isPro")     // IsPro
func UpperCamel(key string) string {
	// A Caser keeps state and must not be shared between goroutines.
	upper := cases.Upper(language.Und)
	var (
		b    strings.Builder
		head = true
	)
	b.Grow(len(key))
	for _, r := range key {
		if isSeparator(r) {
			head = true
			continue
		}
		if head {
			b.WriteString(upper.String(string(r)))
			head = false
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// lowerCamel is UpperCamel with the first letter lower-cased.
func lowerCamel(key string) string {
	s := UpperCamel(key)
	r, n := utf8.DecodeRuneInString(s)
	if n == 0 {
		return s
	}
	return strings.ToLower(string(r)) + s[n:]
}

// Ident is a generated identifier. Values are validated once by NewIdent
// and are never re-derived from raw strings afterwards.
type Ident string

// NewIdent validates s as an identifier.
func NewIdent(s string) (Ident, error) {
	if !token.IsIdentifier(s) {
		return "", fmt.Errorf("%q is not a valid identifier", s)
	}
	return Ident(s), nil
}

// MustIdent is like NewIdent but panics on invalid input. It is used for
// names composed from already validated parts.
func MustIdent(s string) Ident {
	id, err := NewIdent(s)
	if err != nil {
		panic(err)
	}
	return id
}

// String implements fmt.Stringer.
func (i Ident) String() string { return string(i) }

// Exported returns the identifier with its first letter upper-cased.
func (i Ident) Exported() string {
	r, n := utf8.DecodeRuneInString(string(i))
	if n == 0 {
		return ""
	}
	return strings.ToUpper(string(r)) + string(i[n:])
}

// paramName returns the parameter name used for the value of key in
// put/onChanged operations. Names that clash with generated locals or Go
// keywords get a trailing underscore.
func paramName(key string) Ident {
	name := lowerCamel(key)
	switch {
	case name == "":
		name = "value"
	case token.IsKeyword(name), reservedParams[name]:
		name += "_"
	}
	if !token.IsIdentifier(name) {
		name = "value"
	}
	return Ident(name)
}

// reservedParams are identifiers bound by generated method bodies.
var reservedParams = map[string]bool{
	"p":          true,
	ContextParam: true,
	"listener":   true,
	"prefroom":   true,
	"key":        true,
}

// EntityClass returns the artifact class name of entity name.
func EntityClass(name string) Ident {
	return MustIdent(EntityPrefix + name)
}

// ComponentClass returns the artifact class name of component name.
func ComponentClass(name string) Ident {
	return MustIdent(ComponentPrefix + name)
}
