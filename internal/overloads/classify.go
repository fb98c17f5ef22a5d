package overloads

import "github.com/nagarajutv11/jsweet/internal/java"

// argClass is the three-way classification of a delegate call argument.
type argClass int

const (
	// argConstant: a literal, or a reference to a static final field. The
	// expression becomes a default value in the merged function.
	argConstant argClass = iota
	// argPassthrough: a bare identifier forwarding one of the delegate's own
	// parameters unchanged.
	argPassthrough
	// argNeither: anything else. A delegate passing such an argument cannot
	// be expressed as a default parameter, so the group is not mergeable.
	argNeither
)

// classifyArgument classifies one argument of a delegate call. ctx is the
// class the call appears in, ownParams the delegate's declared parameter
// names. For argConstant the returned expression is the default value to
// record. Unrecognized node shapes classify as argNeither: the analysis
// fails closed rather than guessing.
func classifyArgument(expr java.Expression, ctx *java.ClassDecl, resolver java.Resolver, ownParams map[string]bool) (argClass, java.Expression) {
	switch e := expr.(type) {
	case *java.Literal:
		return argConstant, e
	case *java.Identifier:
		// A parameter shadows any same-named field, so the passthrough
		// check comes first.
		if ownParams[e.Name] {
			return argPassthrough, nil
		}
		if sym := resolveVar(ctx, resolver, e); sym != nil && sym.Static && sym.Final {
			// Record the reference qualified by the owning class: a bare
			// field name does not resolve inside the generated class body.
			qualified := &java.FieldAccess{
				Pos:    e.Pos,
				Target: &java.Identifier{Pos: e.Pos, Name: ctx.Name},
				Name:   e.Name,
			}
			return argConstant, qualified
		}
		return argNeither, nil
	case *java.FieldAccess:
		if sym := resolveVar(ctx, resolver, e); sym != nil && sym.Static && sym.Final {
			return argConstant, e
		}
		return argNeither, nil
	default:
		return argNeither, nil
	}
}

func resolveVar(ctx *java.ClassDecl, resolver java.Resolver, expr java.Expression) *java.VarSymbol {
	if resolver == nil {
		return nil
	}
	return resolver.ResolveVar(ctx, expr)
}
