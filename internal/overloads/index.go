package overloads

import "github.com/nagarajutv11/jsweet/internal/java"

// Index maps (class, method name) to overload groups. One Index lives for a
// whole compilation session, so a later unit's code generator can ask about
// overloads declared in an earlier unit. Class identity is the ClassDecl
// pointer handed out by the front end.
//
// The Index is not safe for concurrent use; a session runs its units'
// register/analyze passes on a single goroutine.
type Index struct {
	byClass map[*java.ClassDecl]map[string]*Overload
}

// NewIndex creates an empty index.
func NewIndex() *Index {
	return &Index{byClass: make(map[*java.ClassDecl]map[string]*Overload)}
}

// GetOrCreate returns the group for (class, name), creating it on first use.
// The second result reports whether the group was created by this call.
func (ix *Index) GetOrCreate(class *java.ClassDecl, name string) (*Overload, bool) {
	byName := ix.byClass[class]
	if byName == nil {
		byName = make(map[string]*Overload)
		ix.byClass[class] = byName
	}
	if ov, ok := byName[name]; ok {
		return ov, false
	}
	ov := newOverload(class, name)
	byName[name] = ov
	return ov, true
}

// Register appends a method declaration to its group, creating the group if
// needed, and returns it along with whether the group is new. The driver
// calls this exactly once per declaration during the register pass.
func (ix *Index) Register(class *java.ClassDecl, method *java.MethodDecl) (*Overload, bool) {
	ov, created := ix.GetOrCreate(class, method.Name)
	ov.Methods = append(ov.Methods, method)
	return ov, created
}

// Lookup returns the group for (class, name), or nil.
func (ix *Index) Lookup(class *java.ClassDecl, name string) *Overload {
	return ix.byClass[class][name]
}

// ByClass returns the name→group map for a class, or nil. The printer uses
// it to decide, per method name, whether declarations merge.
func (ix *Index) ByClass(class *java.ClassDecl) map[string]*Overload {
	return ix.byClass[class]
}
