package gen

import (
	"fmt"
	"strings"

	"github.com/syssam/prefroom/schema/field"
)

// Visibility of a class, member or method.
type Visibility uint8

// Visibility values.
const (
	Private Visibility = iota
	Public
)

// Modifier is a set of declaration modifiers.
type Modifier uint8

// Modifier flags.
const (
	Static Modifier = 1 << iota
	Final
	Abstract
)

// Has reports whether all flags of m2 are set in m.
func (m Modifier) Has(m2 Modifier) bool { return m&m2 == m2 }

// String returns the modifiers in declaration order.
func (m Modifier) String() string {
	var s []string
	if m.Has(Static) {
		s = append(s, "static")
	}
	if m.Has(Final) {
		s = append(s, "final")
	}
	if m.Has(Abstract) {
		s = append(s, "abstract")
	}
	return strings.Join(s, " ")
}

// ClassKind tells classes and interfaces apart.
type ClassKind uint8

// Class kinds.
const (
	KindClass ClassKind = iota
	KindInterface
)

// RefKind classifies a TypeRef.
type RefKind uint8

// Reference kinds.
const (
	// RefValue is a preference value kind (TypeRef.Value).
	RefValue RefKind = iota
	// RefRuntime is a type of the runtime package (TypeRef.Name).
	RefRuntime
	// RefClass is a generated artifact class.
	RefClass
	// RefNested is a type nested in the generated class TypeRef.Owner.
	RefNested
	// RefNamed is a user declared type, optionally in package PkgPath.
	RefNamed
)

// Runtime type names referenced by artifacts.
const (
	RuntimeStore       = "Store"
	RuntimeContext     = "Context"
	RuntimeUnsubscribe = "Unsubscribe"
)

// TypeRef references a type from an artifact tree.
type TypeRef struct {
	Kind  RefKind
	Value field.Type
	Name  string
	// Package is the package name of RefClass and RefNested references.
	Package string
	// Owner is the enclosing class of RefNested references.
	Owner string
	// PkgPath is the import path of RefNamed references.
	PkgPath string
	Pointer bool
	Slice   bool
}

// ValueRef returns a reference to a value kind.
func ValueRef(t field.Type) TypeRef { return TypeRef{Kind: RefValue, Value: t} }

// RuntimeRef returns a reference to a runtime package type.
func RuntimeRef(name string) TypeRef { return TypeRef{Kind: RefRuntime, Name: name} }

// String returns a readable form of the reference.
func (r TypeRef) String() string {
	var b strings.Builder
	if r.Slice {
		b.WriteString("[]")
	}
	if r.Pointer {
		b.WriteString("*")
	}
	switch r.Kind {
	case RefValue:
		b.WriteString(r.Value.String())
	case RefRuntime:
		b.WriteString("prefroom.")
		b.WriteString(r.Name)
	case RefNested:
		b.WriteString(r.Owner)
		b.WriteString(".")
		b.WriteString(r.Name)
	case RefNamed:
		if r.PkgPath != "" {
			b.WriteString(r.PkgPath)
			b.WriteString(".")
		}
		b.WriteString(r.Name)
	default:
		b.WriteString(r.Name)
	}
	return b.String()
}

// The artifact tree is a language-neutral description of generated code.
// Backends turn it into source text.
type (
	// Class is one generated type with its members, methods and nested
	// types.
	Class struct {
		Name       Ident
		Package    string
		Kind       ClassKind
		Doc        string
		Visibility Visibility
		// Implements is the interface the class implements, if any.
		Implements  *TypeRef
		Members     []*Member
		Constructor *Method
		Methods     []*Method
		Types       []*Class
	}

	// Member is a class field. Value holds the initializer of final
	// members.
	Member struct {
		Name       Ident
		Type       TypeRef
		Visibility Visibility
		Modifiers  Modifier
		Value      any
	}

	// Method is a class operation. A nil Returns means no result. Abstract
	// methods have no body.
	Method struct {
		Name       Ident
		Doc        string
		Visibility Visibility
		Modifiers  Modifier
		Params     []*Param
		Returns    *TypeRef
		Body       []Stmt
	}
)

// Ref returns a reference to the class.
func (c *Class) Ref() TypeRef {
	return TypeRef{Kind: RefClass, Name: c.Name.String(), Package: c.Package}
}

// Member returns the member with the given name, or nil.
func (c *Class) Member(name Ident) *Member {
	for _, m := range c.Members {
		if m.Name == name {
			return m
		}
	}
	return nil
}

// Method returns the method with the given name, or nil.
func (c *Class) Method(name Ident) *Method {
	for _, m := range c.Methods {
		if m.Name == name {
			return m
		}
	}
	return nil
}

// Type returns the nested type with the given name, or nil.
func (c *Class) Type(name Ident) *Class {
	for _, t := range c.Types {
		if t.Name == name {
			return t
		}
	}
	return nil
}

// Check reports declarations whose names collide once exported. Instance
// methods share one scope; static members, static methods and nested types
// share another.
func (c *Class) Check() error {
	var (
		instance = make(map[string]string)
		static   = make(map[string]string)
	)
	declare := func(scope map[string]string, name Ident, what string) error {
		key := name.Exported()
		if prev, ok := scope[key]; ok {
			return NewSchemaError(c.Name.String(), name.String(), fmt.Sprintf("%s collides with %s", what, prev), nil)
		}
		scope[key] = fmt.Sprintf("%s %s", what, name)
		return nil
	}
	for _, m := range c.Members {
		if !m.Modifiers.Has(Static) {
			continue
		}
		if err := declare(static, m.Name, "member"); err != nil {
			return err
		}
	}
	for _, m := range c.Methods {
		scope := instance
		if m.Modifiers.Has(Static) {
			scope = static
		}
		if err := declare(scope, m.Name, "method"); err != nil {
			return err
		}
	}
	for _, t := range c.Types {
		if err := declare(static, t.Name, "type"); err != nil {
			return err
		}
	}
	return nil
}

// Stmt is a statement of a method body.
type Stmt interface {
	stmt()
}

// StoreStrategy selects how an entity acquires its store.
type StoreStrategy uint8

// Store strategies.
const (
	// NamespacedStore acquires the store named after the entity.
	NamespacedStore StoreStrategy = iota
	// DefaultStore acquires the process-wide default store.
	DefaultStore
)

// String implements fmt.Stringer.
func (s StoreStrategy) String() string {
	if s == DefaultStore {
		return "default"
	}
	return "namespaced"
}

// Statements. Store, Member and Key fields name members of the enclosing
// class; Key members are static key constants.
type (
	// AcquireStore assigns the store resolved from Context to Member.
	AcquireStore struct {
		Member    Ident
		Context   Ident
		Strategy  StoreStrategy
		Namespace string
	}

	// LazyInstance returns the cached Member instance, constructing and
	// caching Class from Context on first use.
	LazyInstance struct {
		Member  Ident
		Class   TypeRef
		Context Ident
	}

	// RequireInstance returns the cached Member instance and fails if none
	// was cached.
	RequireInstance struct {
		Member  Ident
		Class   TypeRef
		Context Ident
	}

	// AssignInstance assigns the singleton of Class resolved from Context
	// to Member.
	AssignInstance struct {
		Member  Ident
		Class   TypeRef
		Context Ident
	}

	// ReturnStored returns the value stored under Key, or Default.
	ReturnStored struct {
		Store   Ident
		Key     Ident
		Type    field.Type
		Default any
	}

	// PutStored writes parameter Value under Key and applies the change
	// asynchronously.
	PutStored struct {
		Store Ident
		Key   Ident
		Type  field.Type
		Value Ident
	}

	// ReturnContains returns whether Key is stored.
	ReturnContains struct {
		Store Ident
		Key   Ident
	}

	// RemoveStored deletes Key and applies the change asynchronously.
	RemoveStored struct {
		Store Ident
		Key   Ident
	}

	// ClearStore deletes every key of Store and applies the change
	// asynchronously.
	ClearStore struct {
		Store Ident
	}

	// ReturnStrings returns the literal list Values.
	ReturnStrings struct {
		Values []string
	}

	// ReturnString returns the literal Value.
	ReturnString struct {
		Value string
	}

	// ReturnMember returns Member.
	ReturnMember struct {
		Member Ident
	}

	// SubscribeKey subscribes to changes of Store, and for changes of Key
	// invokes Callback on parameter Listener with the result of Getter.
	// It returns the unsubscribe handle.
	SubscribeKey struct {
		Store    Ident
		Key      Ident
		Listener Ident
		Callback Ident
		Getter   Ident
	}
)

func (*AcquireStore) stmt()    {}
func (*LazyInstance) stmt()    {}
func (*RequireInstance) stmt() {}
func (*AssignInstance) stmt()  {}
func (*ReturnStored) stmt()    {}
func (*PutStored) stmt()       {}
func (*ReturnContains) stmt()  {}
func (*RemoveStored) stmt()    {}
func (*ClearStore) stmt()      {}
func (*ReturnStrings) stmt()   {}
func (*ReturnString) stmt()    {}
func (*ReturnMember) stmt()    {}
func (*SubscribeKey) stmt()    {}
