package trace

import "github.com/vcrobe/guic/ir"

// Context accumulates one generated function's body: the ordered local
// declarations and the ordered statements recorded while tracing runs inside
// it. A Context is created when tracing begins for a function, pushed onto
// the tracer's stack, popped when tracing completes, and never reused.
type Context struct {
	Name string

	// Decls lists the locals declared in this scope, in declaration order.
	// The matching declaration statements are interleaved in Body so that
	// initializers can depend on earlier statements.
	Decls []*Binding

	Body []ir.Stmt

	// HasStateOp is set by state-mutation calls traced inside this context;
	// the emitter appends an update-propagation call to functions whose
	// context carries it.
	HasStateOp bool
}

func (c *Context) append(s ir.Stmt) {
	c.Body = append(c.Body, s)
}

// retract removes a local declaration and its declaration statement from the
// context. This is the move half of state promotion: the binding leaves the
// scope that declared it, and later statements keep referencing it through
// late-bound identifier resolution.
func (c *Context) retract(b *Binding) bool {
	found := false
	for i, d := range c.Decls {
		if d == b {
			c.Decls = append(c.Decls[:i], c.Decls[i+1:]...)
			found = true
			break
		}
	}
	if !found {
		return false
	}
	for i, s := range c.Body {
		if d, ok := s.(ir.VarDecl); ok && d.Sym == ir.Symbol(b) {
			c.Body = append(c.Body[:i], c.Body[i+1:]...)
			break
		}
	}
	return true
}

// replace removes a local from the declaration list and splices repl in
// place of its declaration statement. This is the promotion path for
// bindings whose initializer reads other locals: the computation stays at
// its original position, re-targeted at the state member.
func (c *Context) replace(b *Binding, repl ...ir.Stmt) bool {
	found := false
	for i, d := range c.Decls {
		if d == b {
			c.Decls = append(c.Decls[:i], c.Decls[i+1:]...)
			found = true
			break
		}
	}
	if !found {
		return false
	}
	for i, s := range c.Body {
		if d, ok := s.(ir.VarDecl); ok && d.Sym == ir.Symbol(b) {
			out := make([]ir.Stmt, 0, len(c.Body)+len(repl)-1)
			out = append(out, c.Body[:i]...)
			out = append(out, repl...)
			out = append(out, c.Body[i+1:]...)
			c.Body = out
			break
		}
	}
	return true
}

// closeScope appends the destroyer statement for every owning local that
// still needs one, in declaration order. Runs exactly once, when the context
// is popped.
func (c *Context) closeScope() {
	for _, b := range c.Decls {
		if d := b.destroyer(); d != nil {
			c.append(d)
		}
	}
}

// StateField is a declaration promoted to persistent component state.
type StateField struct {
	Name string
	B    *Binding
}

// EventHandler binds a native event name and a target reference to either an
// inline-traced context or a pre-existing native function name. Registrations
// that reuse a memoized handler share its Name and carry a nil Ctx.
type EventHandler struct {
	TargetRef string
	Event     string
	Name      string
	Ctx       *Context
	Extern    string
}

// ComponentContext is the root context for one component compilation. It
// additionally owns the promoted state declarations, the allocated reference
// names, the event handler declarations, and the accumulated headers.
type ComponentContext struct {
	Context

	Component string
	State     []*StateField
	Refs      []*Ref
	Handlers  []*EventHandler
	Headers   []string

	headerSet map[string]bool
	stateBase *Binding
	refsBase  *Binding
}

func (cc *ComponentContext) stateField(name string) *StateField {
	for _, f := range cc.State {
		if f.Name == name {
			return f
		}
	}
	return nil
}

func (cc *ComponentContext) ref(name string) *Ref {
	for _, r := range cc.Refs {
		if r.Name == name {
			return r
		}
	}
	return nil
}
