// Package java models the slice of the Java source tree that the transpiler
// consumes from its front end: compilation units, class declarations, method
// declarations and the statement/expression shapes needed to recognize
// overload delegation. Parsing and type checking happen upstream; trees
// arrive here already built and resolved.
package java

// Pos is a source position supplied by the front end.
type Pos struct {
	File   string
	Line   int
	Column int
}

// Node is the base interface for all tree nodes.
type Node interface {
	GetPos() Pos
}

// Statement is a Node that represents a statement.
type Statement interface {
	Node
	statementNode()
}

// Expression is a Node that represents an expression.
type Expression interface {
	Node
	expressionNode()
}

// Member is a direct member of a class body: a method, a field, or a
// nested class declaration.
type Member interface {
	Node
	memberNode()
}

// CompilationUnit is one source file's worth of class declarations.
type CompilationUnit struct {
	File    string
	Package string
	Classes []*ClassDecl
}

func (cu *CompilationUnit) GetPos() Pos { return Pos{File: cu.File, Line: 1, Column: 1} }

// ClassDecl represents a class or interface declaration. Class identity is
// pointer identity: the front end hands out one ClassDecl per declared type.
type ClassDecl struct {
	Pos         Pos
	Name        string
	Qualified   string // fully qualified name, e.g. "com.example.Point"
	Interface   bool   // declared with the interface keyword
	Annotations []string
	Members     []Member
}

func (cd *ClassDecl) GetPos() Pos { return cd.Pos }
func (cd *ClassDecl) memberNode() {}

// HasAnnotation reports whether the class carries the given annotation,
// matched by its fully qualified name.
func (cd *ClassDecl) HasAnnotation(qualified string) bool {
	for _, a := range cd.Annotations {
		if a == qualified {
			return true
		}
	}
	return false
}

// Methods returns the class's directly declared methods, in source order.
func (cd *ClassDecl) Methods() []*MethodDecl {
	var out []*MethodDecl
	for _, m := range cd.Members {
		if md, ok := m.(*MethodDecl); ok {
			out = append(out, md)
		}
	}
	return out
}

// MethodDecl represents a method declaration. Body is nil for abstract and
// interface methods.
type MethodDecl struct {
	Pos    Pos
	Name   string
	Class  *ClassDecl // owning class
	Params []*Param
	Result string // declared return type name, "void" or "" for none
	Static bool
	Body   []Statement
}

func (md *MethodDecl) GetPos() Pos { return md.Pos }
func (md *MethodDecl) memberNode() {}

// ParamNames returns the declared parameter names in ordinal order.
func (md *MethodDecl) ParamNames() []string {
	names := make([]string, len(md.Params))
	for i, p := range md.Params {
		names[i] = p.Name
	}
	return names
}

// Param is a declared method parameter. Ordinal position is its index in
// MethodDecl.Params.
type Param struct {
	Pos  Pos
	Name string
	Type string // declared type name, opaque to the overload analysis
}

func (p *Param) GetPos() Pos { return p.Pos }

// FieldDecl represents a field declaration. Static final fields with a
// constant initializer are eligible default values for merged overloads.
type FieldDecl struct {
	Pos    Pos
	Name   string
	Class  *ClassDecl
	Type   string // declared type name, opaque to the overload analysis
	Static bool
	Final  bool
	Init   Expression // nil when the field has no initializer
}

func (fd *FieldDecl) GetPos() Pos { return fd.Pos }
func (fd *FieldDecl) memberNode() {}

// ReturnStatement represents `return expr;` (Expr may be nil for bare return).
type ReturnStatement struct {
	Pos  Pos
	Expr Expression
}

func (rs *ReturnStatement) GetPos() Pos    { return rs.Pos }
func (rs *ReturnStatement) statementNode() {}

// ExpressionStatement represents an expression used as a statement.
type ExpressionStatement struct {
	Pos  Pos
	Expr Expression
}

func (es *ExpressionStatement) GetPos() Pos    { return es.Pos }
func (es *ExpressionStatement) statementNode() {}

// VarStatement represents a local variable declaration statement.
type VarStatement struct {
	Pos  Pos
	Name string
	Init Expression
}

func (vs *VarStatement) GetPos() Pos    { return vs.Pos }
func (vs *VarStatement) statementNode() {}

// LiteralKind discriminates Literal payloads.
type LiteralKind int

const (
	IntLiteral LiteralKind = iota
	FloatLiteral
	BoolLiteral
	StringLiteral
	CharLiteral
	NullLiteral
)

// Literal represents a compile-time literal value.
type Literal struct {
	Pos   Pos
	Kind  LiteralKind
	Value any // int64, float64, bool, string, or nil for NullLiteral
}

func (l *Literal) GetPos() Pos     { return l.Pos }
func (l *Literal) expressionNode() {}

// Identifier represents a plain name reference.
type Identifier struct {
	Pos  Pos
	Name string
}

func (id *Identifier) GetPos() Pos     { return id.Pos }
func (id *Identifier) expressionNode() {}

// FieldAccess represents dot access, e.g. Config.DEFAULT or this.x.
type FieldAccess struct {
	Pos    Pos
	Target Expression // nil for an access qualified by a bare type name in Name
	Name   string
}

func (fa *FieldAccess) GetPos() Pos     { return fa.Pos }
func (fa *FieldAccess) expressionNode() {}

// Invocation represents a method call. Callee is an Identifier for unqualified
// calls or a FieldAccess for qualified ones.
type Invocation struct {
	Pos    Pos
	Callee Expression
	Args   []Expression
}

func (inv *Invocation) GetPos() Pos     { return inv.Pos }
func (inv *Invocation) expressionNode() {}

// CalleeName returns the simple name the invocation targets, or "" when the
// callee has an unsupported shape.
func (inv *Invocation) CalleeName() string {
	switch c := inv.Callee.(type) {
	case *Identifier:
		return c.Name
	case *FieldAccess:
		return c.Name
	default:
		return ""
	}
}

// BinaryExpr represents an infix arithmetic or logical expression.
type BinaryExpr struct {
	Pos   Pos
	Op    string
	Left  Expression
	Right Expression
}

func (be *BinaryExpr) GetPos() Pos     { return be.Pos }
func (be *BinaryExpr) expressionNode() {}

// NewExpr represents object creation, e.g. new ArrayList().
type NewExpr struct {
	Pos  Pos
	Type string
	Args []Expression
}

func (ne *NewExpr) GetPos() Pos     { return ne.Pos }
func (ne *NewExpr) expressionNode() {}
