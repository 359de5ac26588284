package gen

import "github.com/syssam/prefroom/schema/field"

// EntityGenerator composes the artifact of one entity.
type EntityGenerator struct {
	entity *Entity
}

// NewEntityGenerator returns a generator for e.
func NewEntityGenerator(e *Entity) *EntityGenerator {
	return &EntityGenerator{entity: e}
}

// Generate builds the Preference_<Name> artifact. Structural validity is
// guaranteed by NewEntity, so generation cannot fail; an entity without
// fields yields an artifact without accessors.
func (g *EntityGenerator) Generate() *Class {
	e := g.entity
	c := &Class{
		Name:       e.ClassName(),
		Package:    e.Package,
		Kind:       KindClass,
		Doc:        "gives typed access to the " + e.Name + " preferences.",
		Visibility: Public,
	}
	self := c.Ref()
	c.Members = []*Member{
		{Name: StoreMember, Type: RuntimeRef(RuntimeStore), Visibility: Private, Modifiers: Final},
		{Name: InstanceMember, Type: self, Visibility: Private, Modifiers: Static},
	}
	c.Constructor = g.constructor()
	c.Methods = append(c.Methods, &Method{
		Name:       GetInstance,
		Doc:        "returns the " + e.Name + " singleton of context, constructing it on first use.",
		Visibility: Public,
		Modifiers:  Static,
		Params:     []*Param{{Name: ContextParam, Type: RuntimeRef(RuntimeContext)}},
		Returns:    &self,
		Body: []Stmt{
			&LazyInstance{Member: InstanceMember, Class: self, Context: ContextParam},
		},
	})
	for _, f := range e.Fields {
		acc := NewFieldAccessorGenerator(f, StoreMember)
		c.Members = append(c.Members, acc.KeyConstant())
		c.Methods = append(c.Methods, acc.Methods()...)
	}
	for _, f := range e.Fields {
		l := NewChangeListenerGenerator(f, StoreMember, c)
		c.Types = append(c.Types, l.Listener())
		c.Methods = append(c.Methods, l.Register())
	}
	c.Methods = append(c.Methods, g.clear(), g.keyNameList(), g.entityName())
	return c
}

func (g *EntityGenerator) constructor() *Method {
	acquire := &AcquireStore{Member: StoreMember, Context: ContextParam, Strategy: NamespacedStore, Namespace: g.entity.Name}
	if g.entity.DefaultStore {
		acquire.Strategy, acquire.Namespace = DefaultStore, ""
	}
	return &Method{
		Visibility: Private,
		Params:     []*Param{{Name: ContextParam, Type: RuntimeRef(RuntimeContext)}},
		Body:       []Stmt{acquire},
	}
}

func (g *EntityGenerator) clear() *Method {
	return &Method{
		Name:       ClearMethod,
		Doc:        "deletes every " + g.entity.Name + " preference.",
		Visibility: Public,
		Body:       []Stmt{&ClearStore{Store: StoreMember}},
	}
}

func (g *EntityGenerator) keyNameList() *Method {
	ret := ValueRef(field.TypeStringSet)
	return &Method{
		Name:       KeyNameList,
		Doc:        "returns the preference keys in declaration order.",
		Visibility: Public,
		Returns:    &ret,
		Body:       []Stmt{&ReturnStrings{Values: g.entity.KeyNames()}},
	}
}

func (g *EntityGenerator) entityName() *Method {
	ret := ValueRef(field.TypeString)
	return &Method{
		Name:       EntityNameMethod,
		Doc:        "returns the entity name.",
		Visibility: Public,
		Returns:    &ret,
		Body:       []Stmt{&ReturnString{Value: g.entity.Name}},
	}
}
