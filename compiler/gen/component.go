package gen

// getInstanceNote documents the context argument of the component lookup.
const getInstanceNote = "Singletons are kept in the registry of the context instead of process-wide state, so it takes the context as its only argument."

// ComponentGenerator composes the artifact of one component from the
// component and the entities it references.
type ComponentGenerator struct {
	component *Component
	entities  map[string]*Entity
}

// NewComponentGenerator returns a generator for c resolving entity
// references in entities.
func NewComponentGenerator(c *Component, entities map[string]*Entity) *ComponentGenerator {
	return &ComponentGenerator{component: c, entities: entities}
}

// Generate builds the PreferenceComponent_<Name> artifact. It fails with a
// SchemaError for unresolved entities or name collisions and with a
// ContractError for contract operations declaring results.
func (g *ComponentGenerator) Generate() (*Class, error) {
	comp := g.component
	if err := comp.Validate(g.entities); err != nil {
		return nil, err
	}
	c := &Class{
		Name:       comp.ClassName(),
		Package:    comp.Package,
		Kind:       KindClass,
		Doc:        "aggregates the preferences used by " + comp.Name + ".",
		Visibility: Public,
	}
	if comp.Contract != nil {
		ref := comp.Contract.Ref()
		c.Implements = &ref
	}
	self := c.Ref()
	c.Members = []*Member{
		{Name: InstanceMember, Type: self, Visibility: Private, Modifiers: Static},
	}
	ctor := &Method{
		Visibility: Private,
		Params:     []*Param{{Name: ContextParam, Type: RuntimeRef(RuntimeContext)}},
	}
	var accessors []*Method
	for _, name := range comp.Entities {
		e := g.entities[name]
		ref, member := e.Ref(), MustIdent(InstanceMember+UpperCamel(name))
		c.Members = append(c.Members, &Member{Name: member, Type: ref, Visibility: Private, Modifiers: Final})
		ctor.Body = append(ctor.Body, &AssignInstance{Member: member, Class: ref, Context: ContextParam})
		accessors = append(accessors, &Method{
			Name:       MustIdent(UpperCamel(name)),
			Doc:        "returns the " + name + " preferences.",
			Visibility: Public,
			Returns:    &ref,
			Body:       []Stmt{&ReturnMember{Member: member}},
		})
	}
	c.Constructor = ctor
	c.Methods = append(c.Methods,
		&Method{
			Name:       InitMethod,
			Doc:        "constructs the " + comp.Name + " singleton of context once and returns it.",
			Visibility: Public,
			Modifiers:  Static,
			Params:     []*Param{{Name: ContextParam, Type: RuntimeRef(RuntimeContext)}},
			Returns:    &self,
			Body:       []Stmt{&LazyInstance{Member: InstanceMember, Class: self, Context: ContextParam}},
		},
		&Method{
			Name:       GetInstance,
			Doc:        "returns the " + comp.Name + " singleton of context. " + getInstanceNote + " It panics if " + comp.Name + " was not initialized.",
			Visibility: Public,
			Modifiers:  Static,
			Params:     []*Param{{Name: ContextParam, Type: RuntimeRef(RuntimeContext)}},
			Returns:    &self,
			Body:       []Stmt{&RequireInstance{Member: InstanceMember, Class: self, Context: ContextParam}},
		},
	)
	if comp.Contract != nil {
		for _, op := range comp.Contract.Operations {
			c.Methods = append(c.Methods, &Method{
				Name:       op.Name,
				Visibility: Public,
				Params:     op.Params,
			})
		}
	}
	c.Methods = append(c.Methods, accessors...)
	if err := c.Check(); err != nil {
		return nil, err
	}
	return c, nil
}
