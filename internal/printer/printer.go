// Package printer emits TypeScript for analyzed compilation units. Its one
// interesting job is rendering overload groups: a mergeable group becomes a
// single function carrying the canonical body, with the parameters the
// delegates used to fill in turned into defaulted or optional parameters.
// Groups that could not be merged fall back to emitting the canonical
// method only, with the erased declarations noted in a comment.
package printer

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/iancoleman/strcase"

	"github.com/nagarajutv11/jsweet/internal/config"
	"github.com/nagarajutv11/jsweet/internal/java"
	"github.com/nagarajutv11/jsweet/internal/overloads"
)

// Printer renders one compilation unit. Not reusable across units.
type Printer struct {
	buf    bytes.Buffer
	indent int
	index  *overloads.Index
}

// New creates a printer reading merge decisions from index.
func New(index *overloads.Index) *Printer {
	return &Printer{index: index}
}

// FileName returns the output file name for a unit, e.g. "PointUtils.java"
// becomes "point-utils.ts".
func FileName(unit *java.CompilationUnit) string {
	base := unit.File
	if i := strings.LastIndexByte(base, '/'); i >= 0 {
		base = base[i+1:]
	}
	base = strings.TrimSuffix(base, config.SourceFileExt)
	return strcase.ToKebab(base) + config.TsFileExt
}

// DeclarationFileName returns the .d.ts file name for a unit.
func DeclarationFileName(unit *java.CompilationUnit) string {
	base := unit.File
	if i := strings.LastIndexByte(base, '/'); i >= 0 {
		base = base[i+1:]
	}
	base = strings.TrimSuffix(base, config.SourceFileExt)
	return strcase.ToKebab(base) + config.DTsFileExt
}

// PrintUnit renders the unit and returns the generated TypeScript.
func (p *Printer) PrintUnit(unit *java.CompilationUnit) string {
	p.buf.Reset()
	first := true
	for _, c := range unit.Classes {
		if skipClass(c) {
			continue
		}
		if !first {
			p.line("")
		}
		first = false
		p.printClass(c)
	}
	return p.buf.String()
}

// skipClass reports whether a class produces no output at all: erased
// classes exist only on the Java side, and ambient classes are already
// declared by a candy's definitions.
func skipClass(c *java.ClassDecl) bool {
	return c.HasAnnotation(config.AnnotationErased) || c.HasAnnotation(config.AnnotationAmbient)
}

func (p *Printer) printClass(c *java.ClassDecl) {
	if c.Interface || c.HasAnnotation(config.AnnotationInterface) {
		p.printInterface(c)
		return
	}
	p.line("export class " + c.Name + " {")
	p.indent++
	var nested []*java.ClassDecl
	for _, member := range c.Members {
		switch m := member.(type) {
		case *java.FieldDecl:
			p.printField(m)
		case *java.MethodDecl:
			p.printMethod(c, m)
		case *java.ClassDecl:
			if !skipClass(m) {
				nested = append(nested, m)
			}
		}
	}
	p.indent--
	p.line("}")
	if len(nested) > 0 {
		p.line("")
		p.line("export namespace " + c.Name + " {")
		p.indent++
		for _, n := range nested {
			p.printClass(n)
		}
		p.indent--
		p.line("}")
	}
}

// PrintDeclarations renders the unit's public surface as a .d.ts document:
// signatures only, no bodies. Default parameter values are not legal in
// declaration files, so defaulted parameters become optional ones.
func (p *Printer) PrintDeclarations(unit *java.CompilationUnit) string {
	p.buf.Reset()
	first := true
	for _, c := range unit.Classes {
		if skipClass(c) {
			continue
		}
		if !first {
			p.line("")
		}
		first = false
		p.declClass(c)
	}
	return p.buf.String()
}

func (p *Printer) declClass(c *java.ClassDecl) {
	if c.Interface || c.HasAnnotation(config.AnnotationInterface) {
		p.printInterface(c)
		return
	}
	p.line("export declare class " + c.Name + " {")
	p.indent++
	var nested []*java.ClassDecl
	for _, member := range c.Members {
		switch m := member.(type) {
		case *java.FieldDecl:
			p.declField(m)
		case *java.MethodDecl:
			p.declMethod(c, m)
		case *java.ClassDecl:
			if !skipClass(m) {
				nested = append(nested, m)
			}
		}
	}
	p.indent--
	p.line("}")
	if len(nested) > 0 {
		p.line("")
		p.line("export declare namespace " + c.Name + " {")
		p.indent++
		for _, n := range nested {
			p.declClass(n)
		}
		p.indent--
		p.line("}")
	}
}

func (p *Printer) declField(f *java.FieldDecl) {
	var b strings.Builder
	if f.Static {
		b.WriteString("static ")
	}
	if f.Final {
		b.WriteString("readonly ")
	}
	b.WriteString(f.Name)
	b.WriteString(": ")
	b.WriteString(tsType(f.Type))
	b.WriteString(";")
	p.line(b.String())
}

func (p *Printer) declMethod(c *java.ClassDecl, m *java.MethodDecl) {
	ov := p.index.Lookup(c, m.Name)
	if ov != nil && len(ov.Methods) >= 2 {
		if m != ov.Canonical {
			return
		}
		if ov.Mergeable() {
			minArity := len(ov.Methods[len(ov.Methods)-1].Params)
			var parts []string
			for i, param := range m.Params {
				if i < minArity {
					parts = append(parts, param.Name+": "+tsType(param.Type))
				} else {
					parts = append(parts, param.Name+"?: "+tsType(param.Type))
				}
			}
			p.declSignature(m, strings.Join(parts, ", "))
			return
		}
	}
	p.declSignature(m, p.plainParams(m))
}

func (p *Printer) declSignature(m *java.MethodDecl, params string) {
	var b strings.Builder
	if m.Static {
		b.WriteString("static ")
	}
	b.WriteString(m.Name)
	b.WriteString("(")
	b.WriteString(params)
	b.WriteString("): ")
	b.WriteString(tsType(m.Result))
	b.WriteString(";")
	p.line(b.String())
}

func (p *Printer) printInterface(c *java.ClassDecl) {
	p.line("export interface " + c.Name + " {")
	p.indent++
	for _, member := range c.Members {
		if m, ok := member.(*java.MethodDecl); ok {
			p.line(fmt.Sprintf("%s(%s): %s;", m.Name, p.plainParams(m), tsType(m.Result)))
		}
	}
	p.indent--
	p.line("}")
}

func (p *Printer) printField(f *java.FieldDecl) {
	var b strings.Builder
	if f.Static {
		b.WriteString("static ")
	}
	if f.Final {
		b.WriteString("readonly ")
	}
	b.WriteString(f.Name)
	if f.Init != nil {
		b.WriteString(" = ")
		b.WriteString(p.expr(f.Init))
	}
	b.WriteString(";")
	p.line(b.String())
}

// printMethod renders one method declaration, consulting the overload index
// for the merge decision of its name group.
func (p *Printer) printMethod(c *java.ClassDecl, m *java.MethodDecl) {
	ov := p.index.Lookup(c, m.Name)
	if ov != nil && len(ov.Methods) >= 2 {
		if ov.Mergeable() {
			if m == ov.Canonical {
				p.printMerged(ov)
			}
			// Delegates disappear into the canonical signature.
			return
		}
		if ov.Canonical != nil && m != ov.Canonical {
			p.line(fmt.Sprintf("// erased overload %s(%s)", m.Name, strings.Join(m.ParamNames(), ", ")))
			return
		}
	}
	p.printPlain(m)
}

// printMerged emits the single function replacing a valid overload group.
// Parameters the shortest delegate omits become defaulted (when a delegate
// supplied a constant) or optional (when every delegate forwarded them).
func (p *Printer) printMerged(ov *overloads.Overload) {
	m := ov.Canonical
	minArity := len(ov.Methods[len(ov.Methods)-1].Params)
	var parts []string
	for i, param := range m.Params {
		switch {
		case i < minArity:
			parts = append(parts, param.Name+": "+tsType(param.Type))
		default:
			if def, ok := ov.DefaultValues[i]; ok {
				parts = append(parts, fmt.Sprintf("%s: %s = %s", param.Name, tsType(param.Type), p.expr(def)))
			} else {
				parts = append(parts, param.Name+"?: "+tsType(param.Type))
			}
		}
	}
	p.methodHeader(m, strings.Join(parts, ", "))
	p.printBody(m.Body)
}

func (p *Printer) printPlain(m *java.MethodDecl) {
	p.methodHeader(m, p.plainParams(m))
	p.printBody(m.Body)
}

func (p *Printer) methodHeader(m *java.MethodDecl, params string) {
	var b strings.Builder
	if m.Static {
		b.WriteString("static ")
	}
	b.WriteString(m.Name)
	b.WriteString("(")
	b.WriteString(params)
	b.WriteString("): ")
	b.WriteString(tsType(m.Result))
	b.WriteString(" {")
	p.line(b.String())
}

func (p *Printer) printBody(body []java.Statement) {
	p.indent++
	for _, st := range body {
		p.printStatement(st)
	}
	p.indent--
	p.line("}")
}

func (p *Printer) plainParams(m *java.MethodDecl) string {
	var parts []string
	for _, param := range m.Params {
		parts = append(parts, param.Name+": "+tsType(param.Type))
	}
	return strings.Join(parts, ", ")
}

func (p *Printer) printStatement(st java.Statement) {
	switch s := st.(type) {
	case *java.ReturnStatement:
		if s.Expr == nil {
			p.line("return;")
		} else {
			p.line("return " + p.expr(s.Expr) + ";")
		}
	case *java.ExpressionStatement:
		p.line(p.expr(s.Expr) + ";")
	case *java.VarStatement:
		if s.Init != nil {
			p.line("let " + s.Name + " = " + p.expr(s.Init) + ";")
		} else {
			p.line("let " + s.Name + ";")
		}
	default:
		p.line("// unsupported statement")
	}
}

func (p *Printer) expr(e java.Expression) string {
	switch x := e.(type) {
	case *java.Literal:
		return literal(x)
	case *java.Identifier:
		return x.Name
	case *java.FieldAccess:
		if x.Target == nil {
			return x.Name
		}
		return p.expr(x.Target) + "." + x.Name
	case *java.Invocation:
		args := make([]string, len(x.Args))
		for i, a := range x.Args {
			args[i] = p.expr(a)
		}
		return p.expr(x.Callee) + "(" + strings.Join(args, ", ") + ")"
	case *java.BinaryExpr:
		return p.expr(x.Left) + " " + x.Op + " " + p.expr(x.Right)
	case *java.NewExpr:
		args := make([]string, len(x.Args))
		for i, a := range x.Args {
			args[i] = p.expr(a)
		}
		return "new " + x.Type + "(" + strings.Join(args, ", ") + ")"
	default:
		return "/* unsupported */"
	}
}

func literal(l *java.Literal) string {
	switch l.Kind {
	case java.NullLiteral:
		return "null"
	case java.StringLiteral, java.CharLiteral:
		return strconv.Quote(fmt.Sprint(l.Value))
	case java.BoolLiteral:
		if v, ok := l.Value.(bool); ok && v {
			return "true"
		}
		return "false"
	default:
		return fmt.Sprint(l.Value)
	}
}

var tsTypes = map[string]string{
	"int":     "number",
	"long":    "number",
	"short":   "number",
	"byte":    "number",
	"float":   "number",
	"double":  "number",
	"char":    "string",
	"String":  "string",
	"boolean": "boolean",
	"void":    "void",
	"Object":  "any",
}

func tsType(javaType string) string {
	if javaType == "" {
		return "any"
	}
	if t, ok := tsTypes[javaType]; ok {
		return t
	}
	return javaType
}

func (p *Printer) line(s string) {
	if s == "" {
		p.buf.WriteByte('\n')
		return
	}
	p.buf.WriteString(strings.Repeat("    ", p.indent))
	p.buf.WriteString(s)
	p.buf.WriteByte('\n')
}
