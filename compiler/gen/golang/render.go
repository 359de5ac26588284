package golang

import (
	"fmt"
	"unicode"
	"unicode/utf8"

	"github.com/dave/jennifer/jen"

	"github.com/syssam/prefroom/compiler/gen"
	"github.com/syssam/prefroom/schema/field"
)

// receiver is the receiver name of generated methods.
const receiver = "p"

// renderer emits one top-level class into a jennifer file.
type renderer struct {
	b *Backend
	c *gen.Class
	f *jen.File
}

func (r *renderer) class() {
	c := r.c
	if c.Kind == gen.KindInterface {
		r.iface(c, c.Name.String())
		return
	}
	if c.Doc != "" {
		r.f.Comment(c.Name.String() + " " + c.Doc)
	}
	r.f.Type().Id(c.Name.String()).StructFunc(func(g *jen.Group) {
		for _, m := range c.Members {
			if m.Modifiers.Has(gen.Static) {
				continue
			}
			g.Id(r.memberName(m)).Add(r.goType(m.Type))
		}
	})
	if c.Implements != nil {
		r.f.Var().Id("_").Add(r.goType(*c.Implements)).Op("=").Parens(jen.Op("*").Id(c.Name.String())).Call(jen.Nil())
	}
	r.consts()
	for _, t := range c.Types {
		r.iface(t, r.staticName(t.Name, t.Visibility))
	}
	if c.Constructor != nil {
		r.constructor(c.Constructor)
	}
	for _, m := range c.Methods {
		r.method(m)
	}
}

// consts emits static members: final members as public constants, the
// others as private registry keys.
func (r *renderer) consts() {
	var keys, slots []jen.Code
	for _, m := range r.c.Members {
		if !m.Modifiers.Has(gen.Static) {
			continue
		}
		name := r.staticName(m.Name, m.Visibility)
		if m.Modifiers.Has(gen.Final) {
			keys = append(keys, jen.Id(name).Op("=").Add(literal(m.Type.Value, m.Value)))
			continue
		}
		slots = append(slots, jen.Id(name).Op("=").Lit(r.registryKey()))
	}
	if len(keys) > 0 {
		r.f.Comment("Storage keys of " + r.c.Name.String() + ".")
		r.f.Const().Defs(keys...)
	}
	if len(slots) > 0 {
		r.f.Comment("Registry key of the " + r.c.Name.String() + " singleton.")
		r.f.Const().Defs(slots...)
	}
}

// registryKey identifies the class singleton in a prefroom.Registry.
func (r *renderer) registryKey() string {
	return r.b.cfg.PkgPath(r.c.Package) + "." + r.c.Name.String()
}

func (r *renderer) iface(t *gen.Class, name string) {
	if t.Doc != "" {
		r.f.Comment(name + " " + t.Doc)
	}
	r.f.Type().Id(name).InterfaceFunc(func(g *jen.Group) {
		for _, m := range t.Methods {
			g.Id(m.Name.Exported()).Params(r.params(m.Params)...).Add(r.returns(m.Returns))
		}
	})
}

func (r *renderer) constructor(m *gen.Method) {
	name := "new" + r.c.Name.String()
	self := jen.Op("*").Id(r.c.Name.String())
	r.f.Commentf("%s returns a new %s.", name, r.c.Name)
	r.f.Func().Id(name).Params(r.params(m.Params)...).Add(self).BlockFunc(func(g *jen.Group) {
		g.Id(receiver).Op(":=").Op("&").Id(r.c.Name.String()).Values()
		for _, s := range m.Body {
			for _, code := range r.stmt(s) {
				g.Add(code)
			}
		}
		g.Return(jen.Id(receiver))
	})
}

func (r *renderer) method(m *gen.Method) {
	var (
		name string
		decl = jen.Func()
	)
	if m.Modifiers.Has(gen.Static) {
		name = r.staticName(m.Name, m.Visibility)
	} else {
		name = methodName(m)
		decl = decl.Params(jen.Id(receiver).Op("*").Id(r.c.Name.String()))
	}
	if m.Doc != "" {
		r.f.Comment(name + " " + m.Doc)
	}
	r.f.Add(decl.Id(name).Params(r.params(m.Params)...).Add(r.returns(m.Returns)).BlockFunc(func(g *jen.Group) {
		for _, s := range m.Body {
			for _, code := range r.stmt(s) {
				g.Add(code)
			}
		}
	}))
}

func (r *renderer) params(ps []*gen.Param) []jen.Code {
	codes := make([]jen.Code, len(ps))
	for i, p := range ps {
		codes[i] = jen.Id(p.Name.String()).Add(r.goType(p.Type))
	}
	return codes
}

func (r *renderer) returns(t *gen.TypeRef) jen.Code {
	if t == nil {
		return jen.Null()
	}
	return r.goType(*t)
}

// goType returns the Go type of a reference. Generated classes are used
// through pointers.
func (r *renderer) goType(t gen.TypeRef) jen.Code {
	s := &jen.Statement{}
	if t.Slice {
		s = s.Index()
	}
	if t.Pointer {
		s = s.Op("*")
	}
	switch t.Kind {
	case gen.RefValue:
		return s.Add(valueType(t.Value))
	case gen.RefRuntime:
		return s.Qual(r.b.cfg.RuntimePkg(), t.Name)
	case gen.RefClass:
		return s.Op("*").Qual(r.b.cfg.PkgPath(t.Package), t.Name)
	case gen.RefNested:
		return s.Qual(r.b.cfg.PkgPath(t.Package), t.Owner+"_"+exported(t.Name))
	case gen.RefNamed:
		if t.PkgPath == "" {
			return s.Id(t.Name)
		}
		return s.Qual(t.PkgPath, t.Name)
	default:
		panic(fmt.Sprintf("unknown type reference kind %d", t.Kind))
	}
}

func valueType(t field.Type) jen.Code {
	switch t {
	case field.TypeBool:
		return jen.Bool()
	case field.TypeInt:
		return jen.Int()
	case field.TypeInt64:
		return jen.Int64()
	case field.TypeFloat:
		return jen.Float32()
	case field.TypeString:
		return jen.String()
	case field.TypeStringSet:
		return jen.Index().String()
	default:
		panic(fmt.Sprintf("unsupported value type %s", t))
	}
}

// literal returns the Go literal of a value of kind t.
func literal(t field.Type, v any) jen.Code {
	if t == field.TypeStringSet {
		vs, _ := v.([]string)
		if vs == nil {
			return jen.Nil()
		}
		items := make([]jen.Code, len(vs))
		for i, s := range vs {
			items[i] = jen.Lit(s)
		}
		return jen.Index().String().Values(items...)
	}
	if v == nil {
		v = t.Zero()
	}
	return jen.Lit(v)
}

// stmt returns the Go statements of s.
func (r *renderer) stmt(s gen.Stmt) []jen.Code {
	self := jen.Id(receiver)
	switch s := s.(type) {
	case *gen.AcquireStore:
		target := self.Clone().Dot(s.Member.String())
		if s.Strategy == gen.DefaultStore {
			return one(target.Op("=").Id(s.Context.String()).Dot("DefaultStore").Call())
		}
		return one(target.Op("=").Id(s.Context.String()).Dot("Store").Call(jen.Lit(s.Namespace)))
	case *gen.LazyInstance:
		registry := jen.Id(s.Context.String()).Dot("Registry").Call()
		key := jen.Id(r.memberRef(s.Member))
		cls := r.classType(s.Class)
		return []jen.Code{
			jen.If(
				jen.List(jen.Id("instance"), jen.Id("ok")).Op(":=").Add(registry.Clone()).Dot("Load").Call(key.Clone()),
				jen.Id("ok"),
			).Block(
				jen.Return(jen.Id("instance").Assert(cls.Clone())),
			),
			jen.Return(registry.Clone().Dot("LoadOrStore").Call(
				key.Clone(),
				jen.Id("new"+s.Class.Name).Call(jen.Id(s.Context.String())),
			).Assert(cls.Clone())),
		}
	case *gen.RequireInstance:
		registry := jen.Id(s.Context.String()).Dot("Registry").Call()
		return []jen.Code{
			jen.List(jen.Id("instance"), jen.Id("ok")).Op(":=").Add(registry).Dot("Load").Call(jen.Id(r.memberRef(s.Member))),
			jen.If(jen.Op("!").Id("ok")).Block(
				jen.Panic(jen.Qual(r.b.cfg.RuntimePkg(), "NewNotInitializedError").Call(jen.Lit(s.Class.Name))),
			),
			jen.Return(jen.Id("instance").Assert(r.classType(s.Class))),
		}
	case *gen.AssignInstance:
		getter := jen.Qual(r.b.cfg.PkgPath(s.Class.Package), s.Class.Name+"_"+exported(gen.GetInstance))
		return one(self.Clone().Dot(s.Member.String()).Op("=").Add(getter).Call(jen.Id(s.Context.String())))
	case *gen.ReturnStored:
		return one(jen.Return(self.Clone().Dot(s.Store.String()).Dot(s.Type.StoreName()).Call(
			jen.Id(r.memberRef(s.Key)),
			literal(s.Type, s.Default),
		)))
	case *gen.PutStored:
		return one(self.Clone().Dot(s.Store.String()).Dot("Edit").Call().
			Dot("Put"+s.Type.StoreName()).Call(jen.Id(r.memberRef(s.Key)), jen.Id(s.Value.String())).
			Dot("Apply").Call())
	case *gen.ReturnContains:
		return one(jen.Return(self.Clone().Dot(s.Store.String()).Dot("Contains").Call(jen.Id(r.memberRef(s.Key)))))
	case *gen.RemoveStored:
		return one(self.Clone().Dot(s.Store.String()).Dot("Edit").Call().
			Dot("Remove").Call(jen.Id(r.memberRef(s.Key))).
			Dot("Apply").Call())
	case *gen.ClearStore:
		return one(self.Clone().Dot(s.Store.String()).Dot("Edit").Call().
			Dot("Clear").Call().
			Dot("Apply").Call())
	case *gen.ReturnStrings:
		return one(jen.Return(literal(field.TypeStringSet, s.Values)))
	case *gen.ReturnString:
		return one(jen.Return(jen.Lit(s.Value)))
	case *gen.ReturnMember:
		return one(jen.Return(self.Clone().Dot(s.Member.String())))
	case *gen.SubscribeKey:
		return one(jen.Return(self.Clone().Dot(s.Store.String()).Dot("Subscribe").Call(
			jen.Func().Params(jen.Id("key").String()).Block(
				jen.If(jen.Id("key").Op("==").Id(r.memberRef(s.Key))).Block(
					jen.Id(s.Listener.String()).Dot(s.Callback.Exported()).Call(
						jen.Id(receiver).Dot(s.Getter.Exported()).Call(),
					),
				),
			),
		)))
	default:
		panic(fmt.Sprintf("unknown statement %T", s))
	}
}

func one(c jen.Code) []jen.Code { return []jen.Code{c} }

// classType returns the pointer type of a generated class.
func (r *renderer) classType(t gen.TypeRef) *jen.Statement {
	return jen.Op("*").Qual(r.b.cfg.PkgPath(t.Package), t.Name)
}

// memberRef returns the Go identifier of a member of the current class.
func (r *renderer) memberRef(name gen.Ident) string {
	m := r.c.Member(name)
	if m == nil {
		panic(fmt.Sprintf("unknown member %s", name))
	}
	if m.Modifiers.Has(gen.Static) {
		return r.staticName(m.Name, m.Visibility)
	}
	return r.memberName(m)
}

func (r *renderer) memberName(m *gen.Member) string {
	if m.Visibility == gen.Public {
		return m.Name.Exported()
	}
	return m.Name.String()
}

// staticName returns the package-level name of a static declaration of
// the current class.
func (r *renderer) staticName(name gen.Ident, v gen.Visibility) string {
	class := r.c.Name.String()
	if v == gen.Public {
		return class + "_" + name.Exported()
	}
	return lowerFirst(class) + "_" + name.String()
}

func methodName(m *gen.Method) string {
	if m.Visibility == gen.Public {
		return m.Name.Exported()
	}
	return m.Name.String()
}

func exported(s string) string {
	return gen.Ident(s).Exported()
}

func lowerFirst(s string) string {
	r, n := utf8.DecodeRuneInString(s)
	if n == 0 {
		return s
	}
	return string(unicode.ToLower(r)) + s[n:]
}
