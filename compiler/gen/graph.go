package gen

import (
	"errors"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/syssam/prefroom/compiler/load"
	"github.com/syssam/prefroom/schema/field"
)

// Graph holds the schema model of one generation run: entities keyed by
// name and components in declaration order.
type Graph struct {
	*Config
	Entities   map[string]*Entity
	Components []*Component
}

// NewGraph builds the schema model from loaded schemas. Entity and field
// errors are fatal. Component validation is deferred to artifact
// generation so a broken component does not affect its siblings.
func NewGraph(c *Config, schemas ...*load.Schema) (*Graph, error) {
	if c == nil {
		return nil, NewConfigError("Config", nil, "missing config")
	}
	g := &Graph{Config: c, Entities: make(map[string]*Entity)}
	for _, s := range schemas {
		if s == nil {
			continue
		}
		for _, le := range s.Entities {
			e, err := g.entity(s, le)
			if err != nil {
				return nil, err
			}
			if _, ok := g.Entities[e.Name]; ok {
				return nil, NewSchemaError(e.Name, "", "entity redeclared", nil)
			}
			g.Entities[e.Name] = e
		}
		for _, lc := range s.Components {
			comp, err := g.component(s, lc)
			if err != nil {
				return nil, err
			}
			g.Components = append(g.Components, comp)
		}
	}
	return g, nil
}

// pkg resolves the output package of a declaration.
func (g *Graph) pkg(s *load.Schema, declared string) string {
	switch {
	case declared != "":
		return declared
	case s.Package != "":
		return s.Package
	default:
		return g.DefaultPackage()
	}
}

func (g *Graph) entity(s *load.Schema, le *load.Entity) (*Entity, error) {
	fields := make([]*Field, 0, len(le.Fields))
	for _, lf := range le.Fields {
		typ, err := field.ParseType(lf.Type)
		if err != nil {
			return nil, NewSchemaError(le.Name, lf.Key, "", err)
		}
		f, err := NewField(lf.Key, typ, lf.Default)
		if err != nil {
			return nil, NewSchemaError(le.Name, lf.Key, "", err)
		}
		fields = append(fields, f)
	}
	return NewEntity(le.Name, g.pkg(s, le.Package), le.Default, fields...)
}

func (g *Graph) component(s *load.Schema, lc *load.Component) (*Component, error) {
	comp := &Component{
		Name:     lc.Name,
		Package:  g.pkg(s, lc.Package),
		Entities: lc.Entities,
	}
	if lc.Contract == nil {
		return comp, nil
	}
	ops := make([]*Operation, 0, len(lc.Contract.Methods))
	for _, m := range lc.Contract.Methods {
		op, err := operation(lc.Name, m)
		if err != nil {
			return nil, err
		}
		ops = append(ops, op)
	}
	// Result checks happen in Component.Validate so that a non-void
	// operation fails only this component.
	comp.Contract = &Contract{Name: lc.Contract.Name, PkgPath: lc.Contract.Path, Operations: ops}
	return comp, nil
}

func operation(component string, m *load.Method) (*Operation, error) {
	name, err := NewIdent(m.Name)
	if err != nil {
		return nil, NewSchemaError(component, m.Name, "invalid operation name", err)
	}
	op := &Operation{Name: name}
	for _, p := range m.Params {
		pname, err := NewIdent(p.Name)
		if err != nil {
			return nil, NewSchemaError(component, m.Name, "invalid parameter name", err)
		}
		if reservedParams[pname.String()] {
			return nil, NewSchemaError(component, m.Name, fmt.Sprintf("parameter name %q is reserved", p.Name), nil)
		}
		ref, err := typeRef(p.Type)
		if err != nil {
			return nil, NewSchemaError(component, m.Name, "invalid parameter type", err)
		}
		op.Params = append(op.Params, &Param{Name: pname, Type: ref})
	}
	for _, r := range m.Returns {
		ref, err := typeRef(r)
		if err != nil {
			return nil, NewSchemaError(component, m.Name, "invalid result type", err)
		}
		op.Results = append(op.Results, ref)
	}
	return op, nil
}

func typeRef(s string) (TypeRef, error) {
	r, err := load.ParseTypeRef(s)
	if err != nil {
		return TypeRef{}, err
	}
	return TypeRef{Kind: RefNamed, Name: r.Name, PkgPath: r.PkgPath, Pointer: r.Pointer, Slice: r.Slice}, nil
}

// Artifacts generates one class per entity, sorted by name, followed by one
// class per component in declaration order. A failing artifact does not
// stop the others: every class that could be generated is returned along
// with the joined errors of the failed ones.
func (g *Graph) Artifacts() ([]*Class, error) {
	var (
		classes []*Class
		errs    []error
		log     = g.Log()
	)
	names := make([]string, 0, len(g.Entities))
	for name := range g.Entities {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		e := g.Entities[name]
		c := NewEntityGenerator(e).Generate()
		if err := c.Check(); err != nil {
			errs = append(errs, NewGenerationError("entity", e.Name, "", err))
			log.Error("entity generation failed", zap.String("entity", e.Name), zap.Error(err))
			continue
		}
		classes = append(classes, c)
	}
	for _, comp := range g.Components {
		c, err := NewComponentGenerator(comp, g.Entities).Generate()
		if err != nil {
			errs = append(errs, NewGenerationError("component", comp.Name, "", err))
			log.Error("component generation failed", zap.String("component", comp.Name), zap.Error(err))
			continue
		}
		classes = append(classes, c)
	}
	log.Debug("artifacts generated", zap.Int("classes", len(classes)), zap.Int("failed", len(errs)))
	return classes, errors.Join(errs...)
}

// String implements fmt.Stringer.
func (g *Graph) String() string {
	return fmt.Sprintf("Graph(entities=%d, components=%d)", len(g.Entities), len(g.Components))
}
