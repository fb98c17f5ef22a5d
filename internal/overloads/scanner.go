package overloads

import (
	"fmt"

	"github.com/nagarajutv11/jsweet/internal/config"
	"github.com/nagarajutv11/jsweet/internal/diagnostics"
	"github.com/nagarajutv11/jsweet/internal/java"
)

type phase int

const (
	phaseRegister phase = iota
	phaseAnalyze
)

// Scanner runs the two-pass overload analysis over compilation units. The
// register pass records every method declaration into the Index and then
// finalizes each group created for the unit; the analyze pass re-walks the
// unit and checks every non-canonical declaration against the delegation
// idiom. Results are final only once Process returns: a delegate may call a
// sibling declared later in the file, so neither pass can be short-cut.
type Scanner struct {
	index    *Index
	resolver java.Resolver
	handler  *diagnostics.Handler // optional advisory diagnostics

	phase   phase
	created []*Overload // groups first seen in the current register pass
}

// NewScanner creates a scanner populating index. handler may be nil.
func NewScanner(index *Index, resolver java.Resolver, handler *diagnostics.Handler) *Scanner {
	return &Scanner{index: index, resolver: resolver, handler: handler}
}

// Process runs both passes over one compilation unit. Groups registered by
// earlier units in the same session are untouched; only groups created for
// this unit are finalized here.
func (s *Scanner) Process(unit *java.CompilationUnit) {
	s.phase = phaseRegister
	s.created = s.created[:0]
	for _, c := range unit.Classes {
		s.scanClass(c)
	}
	for _, ov := range s.created {
		ov.Finalize()
	}
	s.phase = phaseAnalyze
	for _, c := range unit.Classes {
		s.scanClass(c)
	}
}

func (s *Scanner) scanClass(c *java.ClassDecl) {
	if c.Interface || c.HasAnnotation(config.AnnotationInterface) {
		// Interfaces have no bodies to merge; none of their methods enter
		// the index, in either pass.
		return
	}
	for _, member := range c.Members {
		switch m := member.(type) {
		case *java.MethodDecl:
			if s.phase == phaseRegister {
				s.register(c, m)
			} else {
				s.analyze(c, m)
			}
		case *java.ClassDecl:
			s.scanClass(m)
		}
	}
}

func (s *Scanner) register(c *java.ClassDecl, m *java.MethodDecl) {
	ov, created := s.index.Register(c, m)
	if created {
		s.created = append(s.created, ov)
	}
}

func (s *Scanner) analyze(c *java.ClassDecl, m *java.MethodDecl) {
	ov := s.index.Lookup(c, m.Name)
	if ov == nil || len(ov.Methods) < 2 || !ov.IsValid {
		return
	}
	if m == ov.Canonical {
		return
	}
	s.analyzeDelegate(ov, m)
}

// analyzeDelegate checks that m is a thin delegate of its group: a body of
// exactly one statement calling a same-named sibling, with every argument
// either a constant or a forwarded own parameter. Constants land in the
// group's default-value map, keyed by the argument's ordinal in the
// canonical signature. Delegates are visited in declaration order, and a
// later delegate's constant overwrites an earlier one at the same ordinal:
// last write wins. That rule is an artifact of visitation order kept for
// compatibility, not a deliberate conflict resolution.
func (s *Scanner) analyzeDelegate(ov *Overload, m *java.MethodDecl) {
	inv := singleInvocation(m.Body)
	if inv == nil {
		s.invalidate(ov, m.Pos, fmt.Sprintf("%s.%s: delegate body is not a single call to an overload", ov.Class.Name, m.Name))
		return
	}
	target := s.resolveMethod(ov.Class, inv)
	if target == nil || target.Name != ov.MethodName {
		s.invalidate(ov, m.Pos, fmt.Sprintf("%s.%s: delegate does not call a same-named overload", ov.Class.Name, m.Name))
		return
	}
	own := make(map[string]bool, len(m.Params))
	for _, p := range m.Params {
		own[p.Name] = true
	}
	for i, arg := range inv.Args {
		kind, value := classifyArgument(arg, ov.Class, s.resolver, own)
		switch kind {
		case argConstant:
			ov.DefaultValues[i] = value
		case argPassthrough:
			// The delegate received this parameter itself; no default needed.
		default:
			s.invalidate(ov, arg.GetPos(), fmt.Sprintf("%s.%s: argument %d is neither a constant nor a forwarded parameter", ov.Class.Name, m.Name, i))
			return
		}
	}
}

func (s *Scanner) resolveMethod(owner *java.ClassDecl, inv *java.Invocation) *java.MethodDecl {
	if s.resolver == nil {
		return nil
	}
	return s.resolver.ResolveMethod(owner, inv)
}

func (s *Scanner) invalidate(ov *Overload, pos java.Pos, msg string) {
	ov.Invalidate()
	s.handler.Report(diagnostics.NewWarning(diagnostics.WarnT010, pos, msg))
}

// singleInvocation returns the delegate call when body is exactly one
// return-of-an-invocation or expression-statement-invocation, nil otherwise.
func singleInvocation(body []java.Statement) *java.Invocation {
	if len(body) != 1 {
		return nil
	}
	switch st := body[0].(type) {
	case *java.ReturnStatement:
		if inv, ok := st.Expr.(*java.Invocation); ok {
			return inv
		}
	case *java.ExpressionStatement:
		if inv, ok := st.Expr.(*java.Invocation); ok {
			return inv
		}
	}
	return nil
}
