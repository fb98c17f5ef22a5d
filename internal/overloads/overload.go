// Package overloads reconciles Java method overloading with TypeScript's
// single-function-with-default-parameters model. For every class it groups
// same-named method declarations into an Overload, picks the canonical
// method (the one with the most parameters) and checks that every other
// declaration is a thin delegate that only supplies constant defaults for
// the parameters it omits. Valid groups are handed to the printer as one
// function with defaulted parameters; anything richer than the plain
// delegation idiom marks the whole group as not mergeable.
package overloads

import (
	"sort"

	"github.com/nagarajutv11/jsweet/internal/java"
)

// Overload gathers the same-named method declarations of one class.
type Overload struct {
	// Class is the owning class.
	Class *java.ClassDecl

	// MethodName is the shared method name.
	MethodName string

	// Methods holds the declarations, in registration order until Finalize
	// sorts them by descending parameter count.
	Methods []*java.MethodDecl

	// IsValid tells whether the group can be merged into a single function
	// with default parameters. It starts true and only ever latches to
	// false; it never recovers.
	IsValid bool

	// Canonical is the method holding the real implementation, set by
	// Finalize and never changed afterwards.
	Canonical *java.MethodDecl

	// DefaultValues maps parameter ordinals of Canonical to the constant
	// expression a delegate supplies for them. Nil until Finalize, and left
	// nil for singleton or invalid groups.
	DefaultValues map[int]java.Expression
}

func newOverload(class *java.ClassDecl, name string) *Overload {
	return &Overload{Class: class, MethodName: name, IsValid: true}
}

// Finalize picks the canonical method and detects parameter-count ties.
// It must run only after every method of the compilation unit has been
// registered, because siblings may be declared after the first one seen.
// Calling it again is harmless: the stable sort and tie check reproduce
// the same canonical method and validity.
func (o *Overload) Finalize() {
	if len(o.Methods) < 2 {
		// Not a real overload group; nothing to merge downstream.
		return
	}
	sort.SliceStable(o.Methods, func(i, j int) bool {
		return len(o.Methods[i].Params) > len(o.Methods[j].Params)
	})
	o.Canonical = o.Methods[0]
	for i := 1; i < len(o.Methods); i++ {
		if len(o.Methods[i].Params) == len(o.Methods[i-1].Params) {
			// Two declarations tie on parameter count: there is no way to
			// decide which holds the implementation or how defaults align.
			o.IsValid = false
		}
	}
	if o.IsValid && o.DefaultValues == nil {
		o.DefaultValues = make(map[int]java.Expression)
	}
}

// Invalidate latches the group as not mergeable.
func (o *Overload) Invalidate() {
	o.IsValid = false
}

// Mergeable reports whether the group is a real overload group that the
// printer may merge: at least two declarations, a canonical method and no
// violation recorded.
func (o *Overload) Mergeable() bool {
	return len(o.Methods) >= 2 && o.IsValid && o.Canonical != nil
}
