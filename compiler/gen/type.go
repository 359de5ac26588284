package gen

import (
	"errors"
	"fmt"
	"go/token"
	"strings"

	"github.com/syssam/prefroom/schema/field"
)

// The following types make up the schema model consumed by the generators.
// Values are built once by their constructors and are read-only afterwards.
type (
	// Field is one typed key of an entity.
	Field struct {
		// Key is the storage key.
		Key string
		// Type is the value kind stored under Key.
		Type field.Type
		// Default is the value returned when Key is absent. It always
		// holds a value of the Go type named by Type.String().
		Default any
	}

	// Entity is a named group of fields backed by one storage namespace.
	Entity struct {
		// Name is the entity identifier, used as storage namespace and
		// class disambiguator.
		Name string
		// Package is the output package name.
		Package string
		// DefaultStore selects the process-wide default store instead of
		// the store namespaced by Name.
		DefaultStore bool
		// Fields in declaration order.
		Fields []*Field
	}

	// Component is a facade aggregating entity singletons behind a
	// declared contract.
	Component struct {
		Name    string
		Package string
		// Contract is the interface implemented by the component. A nil
		// contract generates a facade without pass-through operations.
		Contract *Contract
		// Entities are the aggregated entity identifiers, in order.
		Entities []string
	}

	// Contract is an explicitly declared operation set.
	Contract struct {
		// Name of the interface type.
		Name string
		// PkgPath is the import path of the package declaring the
		// interface. Empty means the component's own package.
		PkgPath    string
		Operations []*Operation
	}

	// Operation is one contract operation.
	Operation struct {
		Name    Ident
		Params  []*Param
		Results []TypeRef
	}

	// Param is a named operation parameter.
	Param struct {
		Name Ident
		Type TypeRef
	}
)

// NewField returns a field after validating the key and coercing the
// default value to typ. A nil default is the zero value of typ.
func NewField(key string, typ field.Type, def any) (*Field, error) {
	if key == "" {
		return nil, errors.New("missing key")
	}
	if !typ.Valid() {
		return nil, fmt.Errorf("field %q: invalid type %d", key, typ)
	}
	if def == nil {
		return &Field{Key: key, Type: typ, Default: typ.Zero()}, nil
	}
	v, err := typ.Coerce(def)
	if err != nil {
		return nil, fmt.Errorf("field %q: %w", key, err)
	}
	return &Field{Key: key, Type: typ, Default: v}, nil
}

// Accessor returns UpperCamel(Key), the suffix of all accessors of f.
func (f *Field) Accessor() string { return UpperCamel(f.Key) }

// reservedAccessors are UpperCamel key forms whose getter would clash with
// a fixed entity operation.
var reservedAccessors = map[string]string{
	"KeyNameList": KeyNameList,
	"EntityName":  EntityNameMethod,
	"Instance":    GetInstance,
}

// NewEntity returns an entity after checking that its name is an
// identifier, keys are unique and no two keys produce the same accessor.
func NewEntity(name, pkg string, defaultStore bool, fields ...*Field) (*Entity, error) {
	if !token.IsIdentifier(name) {
		return nil, NewSchemaError(name, "", "entity name must be a valid identifier", nil)
	}
	if pkg != "" && !token.IsIdentifier(pkg) {
		return nil, NewSchemaError(name, "", fmt.Sprintf("invalid package name %q", pkg), nil)
	}
	var (
		keys      = make(map[string]bool, len(fields))
		accessors = make(map[string]string, len(fields))
	)
	for _, f := range fields {
		if f == nil || f.Key == "" {
			return nil, NewSchemaError(name, "", "field with empty key", nil)
		}
		if keys[f.Key] {
			return nil, NewSchemaError(name, f.Key, "key redeclared", nil)
		}
		keys[f.Key] = true
		acc := f.Accessor()
		if bad, ok := invalidDerived(acc); ok {
			return nil, NewSchemaError(name, f.Key, fmt.Sprintf("key does not form a valid accessor name %q", bad), nil)
		}
		if prev, ok := accessors[acc]; ok {
			return nil, NewSchemaError(name, f.Key, fmt.Sprintf("accessor %s%s collides with key %q", verbGet, acc, prev), nil)
		}
		if op, ok := reservedAccessors[acc]; ok {
			return nil, NewSchemaError(name, f.Key, fmt.Sprintf("accessor %s%s collides with operation %s", verbGet, acc, op), nil)
		}
		accessors[acc] = f.Key
	}
	return &Entity{
		Name:         name,
		Package:      pkg,
		DefaultStore: defaultStore,
		Fields:       fields,
	}, nil
}

// invalidDerived reports acc or the first name derived from it that is
// not a valid Go identifier.
func invalidDerived(acc string) (string, bool) {
	listener := acc + listenerSuffix
	for _, name := range []string{
		acc,
		verbGet + acc,
		verbPut + acc,
		verbContains + acc,
		verbRemove + acc,
		verbKey + acc,
		listener,
		verbRegister + listener,
	} {
		if !token.IsIdentifier(name) {
			return name, true
		}
	}
	return "", false
}

// KeyNames returns the field keys in declaration order.
func (e *Entity) KeyNames() []string {
	names := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		names[i] = f.Key
	}
	return names
}

// ClassName returns the name of the generated entity artifact.
func (e *Entity) ClassName() Ident { return EntityClass(e.Name) }

// Ref returns a reference to the generated entity artifact.
func (e *Entity) Ref() TypeRef {
	return TypeRef{Kind: RefClass, Name: e.ClassName().String(), Package: e.Package}
}

// NewContract returns the contract of component after checking that every
// operation is named and declares no results.
func NewContract(component, name, pkgPath string, ops ...*Operation) (*Contract, error) {
	if !token.IsIdentifier(name) {
		return nil, NewSchemaError(name, "", "contract name must be a valid identifier", nil)
	}
	seen := make(map[string]bool, len(ops))
	for _, op := range ops {
		if op == nil || op.Name == "" {
			return nil, NewSchemaError(name, "", "operation without name", nil)
		}
		if seen[op.Name.Exported()] {
			return nil, NewSchemaError(name, op.Name.String(), "operation redeclared", nil)
		}
		seen[op.Name.Exported()] = true
		if err := op.checkVoid(component); err != nil {
			return nil, err
		}
	}
	return &Contract{Name: name, PkgPath: pkgPath, Operations: ops}, nil
}

// Ref returns a reference to the contract interface.
func (c *Contract) Ref() TypeRef {
	return TypeRef{Kind: RefNamed, Name: c.Name, PkgPath: c.PkgPath}
}

// checkVoid fails with a ContractError if op declares results.
func (op *Operation) checkVoid(component string) error {
	if len(op.Results) == 0 {
		return nil
	}
	rs := make([]string, len(op.Results))
	for i, r := range op.Results {
		rs[i] = r.String()
	}
	ret := strings.Join(rs, ", ")
	if len(rs) > 1 {
		ret = "(" + ret + ")"
	}
	return NewContractError(component, op.Name.String(), ret)
}

// ClassName returns the name of the generated component artifact.
func (c *Component) ClassName() Ident { return ComponentClass(c.Name) }

// Validate checks the component against the entity map: every referenced
// entity must exist, be referenced once and every contract operation must
// be void.
func (c *Component) Validate(entities map[string]*Entity) error {
	if !token.IsIdentifier(c.Name) {
		return NewSchemaError(c.Name, "", "component name must be a valid identifier", nil)
	}
	seen := make(map[string]bool, len(c.Entities))
	for _, name := range c.Entities {
		if _, ok := entities[name]; !ok {
			return NewSchemaError(c.Name, name, "unknown entity", nil)
		}
		if acc := UpperCamel(name); !token.IsIdentifier(acc) || !token.IsIdentifier(InstanceMember+acc) {
			return NewSchemaError(c.Name, name, fmt.Sprintf("entity name does not form a valid accessor name %q", acc), nil)
		}
		if seen[name] {
			return NewSchemaError(c.Name, name, "entity referenced twice", nil)
		}
		seen[name] = true
	}
	if c.Contract == nil {
		return nil
	}
	for _, op := range c.Contract.Operations {
		if err := op.checkVoid(c.Name); err != nil {
			return err
		}
	}
	return nil
}
