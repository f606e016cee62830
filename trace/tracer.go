package trace

import (
	"fmt"

	"github.com/vcrobe/guic/ir"
)

// Tracer carries all compiler state for one compilation: the context stack
// and the per-compilation name counters. It is an explicit value threaded
// through every tracing operation, so independent compilations share
// nothing; a single Tracer must not be used reentrantly or concurrently.
type Tracer struct {
	stack    []*Context
	root     *ComponentContext
	counters map[string]int
}

// New starts a compilation for one component and returns a Tracer whose
// stack holds the freshly created ComponentContext.
func New(component string) *Tracer {
	t := &Tracer{counters: make(map[string]int)}
	cc := &ComponentContext{
		Context:   Context{Name: "update"},
		Component: component,
		headerSet: make(map[string]bool),
	}
	cc.stateBase = &Binding{tr: t, name: "self->state", kind: KindObject, keepAlive: true}
	cc.refsBase = &Binding{tr: t, name: "self->refs", kind: KindObject, keepAlive: true}
	t.root = cc
	t.stack = append(t.stack, &cc.Context)
	return t
}

// Active returns the top-of-stack context. Every statement-emitting
// primitive records into it.
func (t *Tracer) Active() *Context {
	if len(t.stack) == 0 {
		failf(ContextError, "traced operation outside any active context")
	}
	return t.stack[len(t.stack)-1]
}

// Component returns the root ComponentContext of the compilation.
func (t *Tracer) Component() *ComponentContext {
	if t.root == nil {
		failf(ContextError, "state or ref primitive used without an active component context")
	}
	return t.root
}

// Trace runs fn under a dedicated fresh context pushed for its duration.
// fn executes exactly once, synchronously; push and pop stay paired on every
// exit path, including fatal compile errors unwinding through fn.
func (t *Tracer) Trace(name string, fn func()) *Context {
	ctx := &Context{Name: name}
	t.stack = append(t.stack, ctx)
	defer func() {
		t.stack = t.stack[:len(t.stack)-1]
	}()
	fn()
	ctx.closeScope()
	return ctx
}

// Finish closes the root context and hands the accumulated compilation over
// for emission. The tracer must not be used afterwards.
func (t *Tracer) Finish() *ComponentContext {
	if len(t.stack) != 1 {
		failf(ContextError, "unbalanced context stack at end of compilation")
	}
	cc := t.root
	cc.closeScope()
	t.stack = nil
	return cc
}

// Header records a required include, deduplicated in first-use order.
func (t *Tracer) Header(h string) {
	cc := t.root
	if cc == nil || cc.headerSet[h] {
		return
	}
	cc.headerSet[h] = true
	cc.Headers = append(cc.Headers, h)
}

func (t *Tracer) nextName(prefix string) string {
	n := t.counters[prefix]
	t.counters[prefix]++
	return fmt.Sprintf("%s_%d", prefix, n)
}

// declare records b as a local of the active context and appends its
// declaration statement. array > 0 declares a fixed-size array.
func (t *Tracer) declare(b *Binding, ctype string, array int) {
	ctx := t.Active()
	b.declCtx = ctx
	ctx.Decls = append(ctx.Decls, b)
	ctx.append(ir.VarDecl{Type: ctype, Sym: b, Array: array, Init: b.init})
}
