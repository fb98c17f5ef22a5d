package overloads

import (
	"testing"

	"github.com/nagarajutv11/jsweet/internal/java"
)

// Tree-building helpers. Positions are irrelevant to the analysis and left
// zero except for the file name.

func class(name string, members ...java.Member) *java.ClassDecl {
	c := &java.ClassDecl{Name: name, Qualified: name, Members: members}
	for _, m := range members {
		switch md := m.(type) {
		case *java.MethodDecl:
			md.Class = c
		case *java.FieldDecl:
			md.Class = c
		}
	}
	return c
}

func method(name string, params []string, body ...java.Statement) *java.MethodDecl {
	m := &java.MethodDecl{Name: name, Body: body}
	for _, p := range params {
		m.Params = append(m.Params, &java.Param{Name: p})
	}
	return m
}

func call(name string, args ...java.Expression) *java.Invocation {
	return &java.Invocation{Callee: &java.Identifier{Name: name}, Args: args}
}

func ret(expr java.Expression) *java.ReturnStatement {
	return &java.ReturnStatement{Expr: expr}
}

func intLit(v int64) *java.Literal {
	return &java.Literal{Kind: java.IntLiteral, Value: v}
}

func ident(name string) *java.Identifier {
	return &java.Identifier{Name: name}
}

func unit(classes ...*java.ClassDecl) *java.CompilationUnit {
	return &java.CompilationUnit{File: "Test.java", Classes: classes}
}

func scan(t *testing.T, u *java.CompilationUnit) *Index {
	t.Helper()
	index := NewIndex()
	NewScanner(index, java.NewTreeResolver(u), nil).Process(u)
	return index
}

func TestValidDelegationChain(t *testing.T) {
	c := class("C",
		method("f", []string{"a", "b", "c"}, ret(ident("a"))),
		method("f", []string{"a", "b"}, ret(call("f", ident("a"), ident("b"), intLit(10)))),
		method("f", []string{"a"}, ret(call("f", ident("a"), intLit(5), intLit(10)))),
	)
	index := scan(t, unit(c))

	ov := index.Lookup(c, "f")
	if ov == nil {
		t.Fatal("no overload group for C.f")
	}
	if !ov.IsValid {
		t.Fatal("expected valid group")
	}
	if got := len(ov.Canonical.Params); got != 3 {
		t.Fatalf("canonical should have 3 params, got %d", got)
	}
	if len(ov.DefaultValues) != 2 {
		t.Fatalf("expected defaults for ordinals 1 and 2, got %v", ov.DefaultValues)
	}
	if lit, ok := ov.DefaultValues[1].(*java.Literal); !ok || lit.Value != int64(5) {
		t.Errorf("default for ordinal 1 should be 5, got %v", ov.DefaultValues[1])
	}
	if lit, ok := ov.DefaultValues[2].(*java.Literal); !ok || lit.Value != int64(10) {
		t.Errorf("default for ordinal 2 should be 10, got %v", ov.DefaultValues[2])
	}
}

func TestPassthroughArguments(t *testing.T) {
	c := class("C",
		method("f", []string{"a", "b", "c"}, ret(ident("a"))),
		method("f", []string{"a", "b"}, ret(call("f", ident("a"), ident("b"), intLit(0)))),
	)
	index := scan(t, unit(c))

	ov := index.Lookup(c, "f")
	if !ov.IsValid {
		t.Fatal("expected valid group")
	}
	if len(ov.DefaultValues) != 1 {
		t.Fatalf("only ordinal 2 should have a default, got %v", ov.DefaultValues)
	}
	if lit, ok := ov.DefaultValues[2].(*java.Literal); !ok || lit.Value != int64(0) {
		t.Errorf("default for ordinal 2 should be 0, got %v", ov.DefaultValues[2])
	}
}

func TestComputedArgumentInvalidates(t *testing.T) {
	c := class("C",
		method("f", []string{"a", "b", "c"}, ret(ident("a"))),
		method("f", []string{"a", "b"}, ret(call("f", ident("a"), ident("b"), call("compute")))),
		method("compute", nil, ret(intLit(1))),
	)
	index := scan(t, unit(c))

	if index.Lookup(c, "f").IsValid {
		t.Fatal("computed argument must invalidate the group")
	}
}

func TestMultiStatementBodyInvalidates(t *testing.T) {
	c := class("C",
		method("f", []string{"a", "b", "c"}, ret(ident("a"))),
		method("f", []string{"a", "b"},
			&java.VarStatement{Name: "x", Init: intLit(1)},
			ret(call("f", ident("a"), ident("b"), ident("x"))),
		),
	)
	index := scan(t, unit(c))

	if index.Lookup(c, "f").IsValid {
		t.Fatal("multi-statement body must invalidate the group")
	}
}

func TestParameterCountTie(t *testing.T) {
	first := method("f", []string{"a", "b"}, ret(ident("a")))
	second := method("f", []string{"x", "y"}, ret(ident("x")))
	c := class("C", first, second)
	index := scan(t, unit(c))

	ov := index.Lookup(c, "f")
	if ov.IsValid {
		t.Fatal("tie on parameter count must invalidate the group")
	}
	if ov.Canonical != first {
		t.Error("canonical must be the declaration seen first (stable sort)")
	}
}

func TestSingletonMethodIsLeftAlone(t *testing.T) {
	c := class("C", method("g", []string{"a", "b"}, ret(ident("a"))))
	index := scan(t, unit(c))

	ov := index.Lookup(c, "g")
	if ov == nil {
		t.Fatal("singleton should still be registered")
	}
	if ov.Canonical != nil {
		t.Error("singleton must not get a canonical method")
	}
	if ov.DefaultValues != nil {
		t.Error("singleton must not accumulate defaults")
	}
	if ov.Mergeable() {
		t.Error("singleton is not a merge candidate")
	}
}

func TestForwardDeclaredCanonical(t *testing.T) {
	// The delegate is declared before the implementation it calls; the
	// register pass must complete before canonical selection.
	c := class("C",
		method("f", []string{"a"}, ret(call("f", ident("a"), intLit(7)))),
		method("f", []string{"a", "b"}, ret(ident("a"))),
	)
	index := scan(t, unit(c))

	ov := index.Lookup(c, "f")
	if !ov.IsValid {
		t.Fatal("expected valid group")
	}
	if len(ov.Canonical.Params) != 2 {
		t.Fatalf("canonical should be the two-parameter declaration")
	}
	if lit, ok := ov.DefaultValues[1].(*java.Literal); !ok || lit.Value != int64(7) {
		t.Errorf("default for ordinal 1 should be 7, got %v", ov.DefaultValues[1])
	}
}

func TestLastAnalyzedDelegateWins(t *testing.T) {
	// Two delegates both supply a constant for ordinal 2; the one visited
	// later (declaration order) overwrites the earlier value.
	c := class("C",
		method("f", []string{"a", "b", "c"}, ret(ident("a"))),
		method("f", []string{"a", "b"}, ret(call("f", ident("a"), ident("b"), intLit(10)))),
		method("f", []string{"a"}, ret(call("f", ident("a"), intLit(5), intLit(99)))),
	)
	index := scan(t, unit(c))

	ov := index.Lookup(c, "f")
	if !ov.IsValid {
		t.Fatal("expected valid group")
	}
	if lit, ok := ov.DefaultValues[2].(*java.Literal); !ok || lit.Value != int64(99) {
		t.Errorf("ordinal 2 default should be the last-analyzed 99, got %v", ov.DefaultValues[2])
	}
}

func TestExpressionStatementDelegate(t *testing.T) {
	// void-style delegation: f(a) { f(a, 3); }
	c := class("C",
		method("f", []string{"a", "b"}, &java.ExpressionStatement{Expr: call("g")}),
		method("f", []string{"a"}, &java.ExpressionStatement{Expr: call("f", ident("a"), intLit(3))}),
		method("g", nil),
	)
	index := scan(t, unit(c))

	ov := index.Lookup(c, "f")
	if !ov.IsValid {
		t.Fatal("expression-statement delegation must be accepted")
	}
	if lit, ok := ov.DefaultValues[1].(*java.Literal); !ok || lit.Value != int64(3) {
		t.Errorf("ordinal 1 default should be 3, got %v", ov.DefaultValues[1])
	}
}

func TestStaticFinalFieldIsConstant(t *testing.T) {
	c := class("C",
		&java.FieldDecl{Name: "DEFAULT_SIZE", Static: true, Final: true, Init: intLit(16)},
		method("f", []string{"a", "b"}, ret(ident("a"))),
		method("f", []string{"a"}, ret(call("f", ident("a"), ident("DEFAULT_SIZE")))),
	)
	index := scan(t, unit(c))

	ov := index.Lookup(c, "f")
	if !ov.IsValid {
		t.Fatal("static final field reference must count as a constant")
	}
	fa, ok := ov.DefaultValues[1].(*java.FieldAccess)
	if !ok || fa.Name != "DEFAULT_SIZE" {
		t.Fatalf("default should be the field reference, got %v", ov.DefaultValues[1])
	}
	if target, ok := fa.Target.(*java.Identifier); !ok || target.Name != "C" {
		t.Errorf("field reference should be qualified by the owning class, got %v", fa.Target)
	}
}

func TestQualifiedStaticFinalFieldIsConstant(t *testing.T) {
	cfg := class("Defaults", &java.FieldDecl{Name: "SIZE", Static: true, Final: true, Init: intLit(8)})
	c := class("C",
		method("f", []string{"a", "b"}, ret(ident("a"))),
		method("f", []string{"a"}, ret(call("f", ident("a"),
			&java.FieldAccess{Target: ident("Defaults"), Name: "SIZE"}))),
	)
	index := scan(t, unit(cfg, c))

	ov := index.Lookup(c, "f")
	if !ov.IsValid {
		t.Fatal("qualified static final field must count as a constant")
	}
	if _, ok := ov.DefaultValues[1].(*java.FieldAccess); !ok {
		t.Errorf("default should be the field access, got %v", ov.DefaultValues[1])
	}
}

func TestMutableFieldInvalidates(t *testing.T) {
	c := class("C",
		&java.FieldDecl{Name: "size", Static: true, Final: false, Init: intLit(16)},
		method("f", []string{"a", "b"}, ret(ident("a"))),
		method("f", []string{"a"}, ret(call("f", ident("a"), ident("size")))),
	)
	index := scan(t, unit(c))

	if index.Lookup(c, "f").IsValid {
		t.Fatal("non-final field reference is not a legal default")
	}
}

func TestDelegateCallingUnrelatedMethod(t *testing.T) {
	c := class("C",
		method("f", []string{"a", "b"}, ret(ident("a"))),
		method("f", []string{"a"}, ret(call("h", ident("a"), intLit(1)))),
		method("h", []string{"x", "y"}, ret(ident("x"))),
	)
	index := scan(t, unit(c))

	if index.Lookup(c, "f").IsValid {
		t.Fatal("delegate calling a differently-named method must invalidate")
	}
}

func TestUnresolvedTargetInvalidates(t *testing.T) {
	c := class("C",
		method("f", []string{"a", "b"}, ret(ident("a"))),
		method("f", []string{"a"}, ret(call("f", ident("a"), intLit(1), intLit(2)))),
	)
	// The delegate calls f with three arguments but no such sibling exists.
	index := scan(t, unit(c))

	if index.Lookup(c, "f").IsValid {
		t.Fatal("unresolvable delegate target must invalidate")
	}
}

func TestInterfaceClassesAreSkipped(t *testing.T) {
	iface := class("I",
		method("f", []string{"a", "b"}),
		method("f", []string{"a"}),
	)
	iface.Interface = true
	index := scan(t, unit(iface))

	if index.Lookup(iface, "f") != nil {
		t.Fatal("interface methods must never enter the index")
	}
}

func TestAnnotatedInterfaceClassesAreSkipped(t *testing.T) {
	c := class("I",
		method("f", []string{"a", "b"}),
		method("f", []string{"a"}),
	)
	c.Annotations = []string{"jsweet.lang.Interface"}
	index := scan(t, unit(c))

	if index.Lookup(c, "f") != nil {
		t.Fatal("@Interface-annotated classes must never enter the index")
	}
}

func TestNestedClassesAreScanned(t *testing.T) {
	inner := class("Inner",
		method("f", []string{"a", "b"}, ret(ident("a"))),
		method("f", []string{"a"}, ret(call("f", ident("a"), intLit(4)))),
	)
	outer := class("Outer", inner)
	index := scan(t, unit(outer))

	ov := index.Lookup(inner, "f")
	if ov == nil || !ov.IsValid {
		t.Fatal("nested class overloads must be analyzed")
	}
	if lit, ok := ov.DefaultValues[1].(*java.Literal); !ok || lit.Value != int64(4) {
		t.Errorf("ordinal 1 default should be 4, got %v", ov.DefaultValues[1])
	}
}

func TestSameNameAcrossClassesIsIndependent(t *testing.T) {
	a := class("A",
		method("f", []string{"a", "b"}, ret(ident("a"))),
		method("f", []string{"a"}, ret(call("f", ident("a"), intLit(1)))),
	)
	b := class("B",
		method("f", []string{"a", "b"}, ret(ident("a"))),
		method("f", []string{"a"}, ret(call("f", ident("a"), call("compute")))),
		method("compute", nil, ret(intLit(0))),
	)
	index := scan(t, unit(a, b))

	if !index.Lookup(a, "f").IsValid {
		t.Error("A.f should stay valid")
	}
	if index.Lookup(b, "f").IsValid {
		t.Error("B.f should be invalid")
	}
}

func TestBodylessDelegateInvalidates(t *testing.T) {
	c := class("C",
		method("f", []string{"a", "b"}, ret(ident("a"))),
		method("f", []string{"a"}),
	)
	index := scan(t, unit(c))

	if index.Lookup(c, "f").IsValid {
		t.Fatal("a delegate without a body cannot supply defaults")
	}
}

func TestValidityIsMonotone(t *testing.T) {
	c := class("C",
		method("f", []string{"a", "b", "c"}, ret(ident("a"))),
		method("f", []string{"a", "b"}, ret(call("f", ident("a"), ident("b"), call("compute")))),
		method("f", []string{"a"}, ret(call("f", ident("a"), intLit(5), intLit(10)))),
		method("compute", nil, ret(intLit(1))),
	)
	index := scan(t, unit(c))

	ov := index.Lookup(c, "f")
	if ov.IsValid {
		t.Fatal("the bad middle delegate must invalidate the group")
	}
	// Re-finalizing an invalidated group must not revive it.
	ov.Finalize()
	if ov.IsValid {
		t.Fatal("validity must never transition back to true")
	}
}

func TestFinalizeIsIdempotent(t *testing.T) {
	c := class("C",
		method("f", []string{"a", "b", "c"}, ret(ident("a"))),
		method("f", []string{"a", "b"}, ret(call("f", ident("a"), ident("b"), intLit(10)))),
	)
	index := scan(t, unit(c))

	ov := index.Lookup(c, "f")
	canonical, valid := ov.Canonical, ov.IsValid
	before := len(ov.DefaultValues)
	ov.Finalize()
	if ov.Canonical != canonical || ov.IsValid != valid {
		t.Fatal("re-finalizing must not change canonical method or validity")
	}
	if len(ov.DefaultValues) != before {
		t.Fatal("re-finalizing must not reset accumulated defaults")
	}
}

func TestDefaultOrdinalsStayWithinCanonical(t *testing.T) {
	c := class("C",
		method("f", []string{"a", "b", "c"}, ret(ident("a"))),
		method("f", []string{"a", "b"}, ret(call("f", ident("a"), ident("b"), intLit(10)))),
		method("f", []string{"a"}, ret(call("f", ident("a"), intLit(5), intLit(10)))),
	)
	index := scan(t, unit(c))

	ov := index.Lookup(c, "f")
	for ordinal := range ov.DefaultValues {
		if ordinal < 0 || ordinal >= len(ov.Canonical.Params) {
			t.Errorf("default ordinal %d outside canonical parameter list", ordinal)
		}
	}
}
