package gen

import "github.com/syssam/prefroom/schema/field"

// FieldAccessorGenerator synthesizes the accessor operations of one field.
// It only describes code and never touches a store.
type FieldAccessorGenerator struct {
	field *Field
	store Ident
	name  string
}

// NewFieldAccessorGenerator returns a generator for f whose operations use
// the storage handle member store.
func NewFieldAccessorGenerator(f *Field, store Ident) *FieldAccessorGenerator {
	return &FieldAccessorGenerator{field: f, store: store, name: f.Accessor()}
}

// KeyConstant returns the public static key constant holding the storage
// key.
func (g *FieldAccessorGenerator) KeyConstant() *Member {
	return &Member{
		Name:       g.keyIdent(),
		Type:       ValueRef(field.TypeString),
		Visibility: Public,
		Modifiers:  Static | Final,
		Value:      g.field.Key,
	}
}

func (g *FieldAccessorGenerator) keyIdent() Ident {
	return MustIdent(verbKey + g.name)
}

// Methods returns get, put, contains and remove, in this order.
func (g *FieldAccessorGenerator) Methods() []*Method {
	return []*Method{g.get(), g.put(), g.contains(), g.remove()}
}

// Getter returns the name of the get operation.
func (g *FieldAccessorGenerator) Getter() Ident {
	return MustIdent(verbGet + g.name)
}

func (g *FieldAccessorGenerator) get() *Method {
	ret := ValueRef(g.field.Type)
	return &Method{
		Name:       g.Getter(),
		Doc:        "returns the value of " + g.field.Key + ", or its default if unset.",
		Visibility: Public,
		Returns:    &ret,
		Body: []Stmt{
			&ReturnStored{
				Store:   g.store,
				Key:     g.keyIdent(),
				Type:    g.field.Type,
				Default: g.field.Default,
			},
		},
	}
}

func (g *FieldAccessorGenerator) put() *Method {
	param := paramName(g.field.Key)
	return &Method{
		Name:       MustIdent(verbPut + g.name),
		Doc:        "stores the value of " + g.field.Key + ".",
		Visibility: Public,
		Params:     []*Param{{Name: param, Type: ValueRef(g.field.Type)}},
		Body: []Stmt{
			&PutStored{Store: g.store, Key: g.keyIdent(), Type: g.field.Type, Value: param},
		},
	}
}

func (g *FieldAccessorGenerator) contains() *Method {
	ret := ValueRef(field.TypeBool)
	return &Method{
		Name:       MustIdent(verbContains + g.name),
		Doc:        "reports whether " + g.field.Key + " is set.",
		Visibility: Public,
		Returns:    &ret,
		Body: []Stmt{
			&ReturnContains{Store: g.store, Key: g.keyIdent()},
		},
	}
}

func (g *FieldAccessorGenerator) remove() *Method {
	return &Method{
		Name:       MustIdent(verbRemove + g.name),
		Doc:        "deletes " + g.field.Key + ".",
		Visibility: Public,
		Body: []Stmt{
			&RemoveStored{Store: g.store, Key: g.keyIdent()},
		},
	}
}
