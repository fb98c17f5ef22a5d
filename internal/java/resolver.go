package java

// VarSymbol is the resolved declaration behind an identifier or field access.
type VarSymbol struct {
	Name   string
	Static bool
	Final  bool
	Init   Expression // resolved initializer, nil when unknown
}

// Resolver is the symbol resolution service supplied by the front end. The
// overload analysis needs only two answers from it: which declared method an
// invocation targets, and whether a name refers to a static immutable field.
// A nil result means resolution failed; callers treat that as fail-closed.
type Resolver interface {
	// ResolveMethod resolves the callee of an invocation appearing inside
	// owner to the method declaration it targets on that type.
	ResolveMethod(owner *ClassDecl, inv *Invocation) *MethodDecl

	// ResolveVar resolves an identifier or field-access expression to its
	// declared symbol. ctx is the class the expression appears in.
	ResolveVar(ctx *ClassDecl, expr Expression) *VarSymbol
}

// TreeResolver resolves symbols by walking the declared members of the unit's
// own classes. It covers everything the overload scanner asks about during a
// single-unit analysis; a full front end would substitute a resolver backed
// by its symbol tables.
type TreeResolver struct {
	classes map[string]*ClassDecl // qualified name -> declaration
}

// NewTreeResolver builds a resolver over the classes of the given units,
// including nested classes.
func NewTreeResolver(units ...*CompilationUnit) *TreeResolver {
	r := &TreeResolver{classes: make(map[string]*ClassDecl)}
	for _, u := range units {
		for _, c := range u.Classes {
			r.addClass(c)
		}
	}
	return r
}

func (r *TreeResolver) addClass(c *ClassDecl) {
	r.classes[c.Qualified] = c
	for _, m := range c.Members {
		if nested, ok := m.(*ClassDecl); ok {
			r.addClass(nested)
		}
	}
}

// ResolveMethod finds the declared method on owner matching the invocation's
// callee name and argument count. Unqualified calls and this-qualified calls
// resolve against owner itself; other qualifiers are out of scope for this
// resolver and yield nil.
func (r *TreeResolver) ResolveMethod(owner *ClassDecl, inv *Invocation) *MethodDecl {
	if owner == nil || inv == nil {
		return nil
	}
	name := inv.CalleeName()
	if name == "" {
		return nil
	}
	if fa, ok := inv.Callee.(*FieldAccess); ok && !isThisOrOwnName(fa.Target, owner) {
		return nil
	}
	for _, m := range owner.Methods() {
		if m.Name == name && len(m.Params) == len(inv.Args) {
			return m
		}
	}
	return nil
}

func isThisOrOwnName(target Expression, owner *ClassDecl) bool {
	switch t := target.(type) {
	case nil:
		return true
	case *Identifier:
		return t.Name == "this" || t.Name == owner.Name
	default:
		return false
	}
}

// ResolveVar resolves identifiers against parameters last; the scanner checks
// parameter names itself, so only field lookups matter here.
func (r *TreeResolver) ResolveVar(ctx *ClassDecl, expr Expression) *VarSymbol {
	switch e := expr.(type) {
	case *Identifier:
		return r.findField(ctx, e.Name)
	case *FieldAccess:
		if cls := r.targetClass(ctx, e.Target); cls != nil {
			return r.findField(cls, e.Name)
		}
		return nil
	default:
		return nil
	}
}

func (r *TreeResolver) targetClass(ctx *ClassDecl, target Expression) *ClassDecl {
	switch t := target.(type) {
	case nil:
		return ctx
	case *Identifier:
		if t.Name == "this" {
			return ctx
		}
		// Bare type name: try qualified lookup, then simple-name match.
		if c, ok := r.classes[t.Name]; ok {
			return c
		}
		for _, c := range r.classes {
			if c.Name == t.Name {
				return c
			}
		}
		return nil
	case *FieldAccess:
		// Qualified type name like com.example.Config.
		if c, ok := r.classes[flattenName(t)]; ok {
			return c
		}
		return nil
	default:
		return nil
	}
}

func flattenName(e Expression) string {
	switch n := e.(type) {
	case *Identifier:
		return n.Name
	case *FieldAccess:
		prefix := flattenName(n.Target)
		if prefix == "" {
			return n.Name
		}
		return prefix + "." + n.Name
	default:
		return ""
	}
}

func (r *TreeResolver) findField(cls *ClassDecl, name string) *VarSymbol {
	if cls == nil {
		return nil
	}
	for _, m := range cls.Members {
		if fd, ok := m.(*FieldDecl); ok && fd.Name == name {
			return &VarSymbol{Name: fd.Name, Static: fd.Static, Final: fd.Final, Init: fd.Init}
		}
	}
	return nil
}
