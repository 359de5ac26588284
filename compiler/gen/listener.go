package gen

// ChangeListenerGenerator synthesizes the change notification contract of
// one field: a nested listener interface and the operation registering it
// on the entity's store.
type ChangeListenerGenerator struct {
	field *Field
	store Ident
	owner *Class
	name  string
}

// NewChangeListenerGenerator returns a generator for f nested in owner.
func NewChangeListenerGenerator(f *Field, store Ident, owner *Class) *ChangeListenerGenerator {
	return &ChangeListenerGenerator{field: f, store: store, owner: owner, name: f.Accessor()}
}

// TypeName returns the name of the nested listener interface.
func (g *ChangeListenerGenerator) TypeName() Ident {
	return MustIdent(g.name + listenerSuffix)
}

// Ref returns a reference to the nested listener interface.
func (g *ChangeListenerGenerator) Ref() TypeRef {
	return TypeRef{
		Kind:    RefNested,
		Name:    g.TypeName().String(),
		Owner:   g.owner.Name.String(),
		Package: g.owner.Package,
	}
}

// Listener returns the nested interface with its single abstract
// onChanged operation.
func (g *ChangeListenerGenerator) Listener() *Class {
	return &Class{
		Name:       g.TypeName(),
		Package:    g.owner.Package,
		Kind:       KindInterface,
		Doc:        "is notified when " + g.field.Key + " changes.",
		Visibility: Public,
		Methods: []*Method{
			{
				Name:       OnChangedMethod,
				Visibility: Public,
				Modifiers:  Abstract,
				Params: []*Param{
					{Name: paramName(g.field.Key), Type: ValueRef(g.field.Type)},
				},
			},
		},
	}
}

// Register returns the operation subscribing a listener to changes of the
// field's key. Listeners receive the current value of the key.
func (g *ChangeListenerGenerator) Register() *Method {
	const listener Ident = "listener"
	ret := RuntimeRef(RuntimeUnsubscribe)
	return &Method{
		Name:       MustIdent(verbRegister + g.TypeName().String()),
		Doc:        "subscribes listener to changes of " + g.field.Key + ". The returned function cancels the subscription.",
		Visibility: Public,
		Params:     []*Param{{Name: listener, Type: g.Ref()}},
		Returns:    &ret,
		Body: []Stmt{
			&SubscribeKey{
				Store:    g.store,
				Key:      MustIdent(verbKey + g.name),
				Listener: listener,
				Callback: OnChangedMethod,
				Getter:   MustIdent(verbGet + g.name),
			},
		},
	}
}
