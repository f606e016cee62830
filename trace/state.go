package trace

import (
	"fmt"

	"github.com/vcrobe/guic/ir"
)

// State declares (or promotes) a persistent state slot on the component.
// The slot's identifier is supplied explicitly by the caller; nothing is
// inferred from surrounding source text.
//
// When initial is a locally declared Binding, its ownership is transferred
// into component state: the local declaration is retracted from the scope
// that made it and every recorded statement referencing the binding resolves
// to the state member path from then on. Otherwise initial must be a literal
// and becomes the state field's initializer expression.
//
// The returned binding reads the slot; the returned setter emits a mutation
// statement in the currently active context and flags it as state-operating,
// which makes the emitter append an update-propagation call to the generated
// function.
func (t *Tracer) State(name string, initial any) (*Binding, func(any)) {
	cc := t.Component()
	if cc.stateField(name) != nil {
		failf(StructuralError, "state %q declared twice on component %s", name, cc.Component)
	}

	var b *Binding
	switch x := initial.(type) {
	case *Binding:
		if x.declCtx == nil {
			failf(StructuralError, "state %q initializer is not a locally declared binding", name)
		}
		if x.init != nil && !ir.SelfContained(x.init) {
			// The initializer reads locals of the function that built it
			// (a formatted string's malloc(len_N), a construction taking
			// bindings), so it cannot move into init_state. Keep the
			// computation at its original position as an assignment to the
			// state member; the slot starts out empty.
			repl := []ir.Stmt{ir.Assign{LHS: ir.Sym{S: x}, RHS: x.init}}
			if x.kind == KindString {
				repl = []ir.Stmt{
					ir.ExprStmt{X: ir.Call{Fn: "free", Args: []ir.Expr{ir.Sym{S: x}}}},
					ir.Assign{LHS: ir.Sym{S: x}, RHS: x.init},
				}
				x.init = ir.Null{}
			} else {
				x.init = nil
			}
			x.declCtx.replace(x, repl...)
		} else {
			x.declCtx.retract(x)
		}
		x.promoted = true
		x.declCtx = nil
		x.name = ""
		x.parent = cc.stateBase
		x.field = name
		b = x
	case string:
		t.Header("string.h")
		b = &Binding{
			tr: t, parent: cc.stateBase, field: name,
			kind: KindString, owned: true,
			init: ir.Call{Fn: "strdup", Args: []ir.Expr{ir.StrLit(x)}},
		}
	case int:
		b = &Binding{tr: t, parent: cc.stateBase, field: name, kind: KindInt, owned: true, init: ir.IntLit(x)}
	case int64:
		b = &Binding{tr: t, parent: cc.stateBase, field: name, kind: KindInt, owned: true, init: ir.IntLit(x)}
	case uint, uint64:
		b = &Binding{tr: t, parent: cc.stateBase, field: name, kind: KindSize, owned: true, init: ir.Raw(fmt.Sprintf("%d", x))}
	case float64:
		b = &Binding{tr: t, parent: cc.stateBase, field: name, kind: KindDouble, owned: true, init: ir.FloatLit(x)}
	case bool:
		t.Header("stdbool.h")
		b = &Binding{tr: t, parent: cc.stateBase, field: name, kind: KindBool, owned: true, init: ir.BoolLit(x)}
	default:
		failf(TypeError, "unsupported state initializer of type %T for %q", initial, name)
	}

	cc.State = append(cc.State, &StateField{Name: name, B: b})

	set := func(v any) {
		t.setState(b, v)
	}
	return b, set
}

// setState emits the mutation statements for one state slot and marks the
// active context as state-operating.
func (t *Tracer) setState(b *Binding, v any) {
	ctx := t.Active()
	ctx.HasStateOp = true

	if nb, ok := v.(*Binding); ok {
		if nb.kind != b.kind {
			failf(TypeError, "cannot assign a %s binding to %s state slot %q",
				nb.kind.describe(), b.kind.describe(), b.field)
		}
		if b.kind == KindString {
			// The slot owns its buffer; release it, then take ownership of
			// the incoming value so scope exit does not free it.
			ctx.append(ir.ExprStmt{X: ir.Call{Fn: "free", Args: []ir.Expr{ir.Sym{S: b}}}})
			nb.keepAlive = true
		}
		ctx.append(ir.Assign{LHS: ir.Sym{S: b}, RHS: ir.Sym{S: nb}})
		return
	}

	switch x := v.(type) {
	case string:
		if b.kind != KindString {
			failf(TypeError, "cannot assign a string to %s state slot %q", b.kind.describe(), b.field)
		}
		ctx.append(ir.ExprStmt{X: ir.Call{Fn: "free", Args: []ir.Expr{ir.Sym{S: b}}}})
		ctx.append(ir.Assign{
			LHS: ir.Sym{S: b},
			RHS: ir.Call{Fn: "strdup", Args: []ir.Expr{ir.StrLit(x)}},
		})
	case int, int64:
		if b.kind != KindInt && b.kind != KindSize {
			failf(TypeError, "cannot assign an integer to %s state slot %q", b.kind.describe(), b.field)
		}
		ctx.append(ir.Assign{LHS: ir.Sym{S: b}, RHS: t.exprOf(x)})
	case float64:
		if b.kind != KindDouble {
			failf(TypeError, "cannot assign a double to %s state slot %q", b.kind.describe(), b.field)
		}
		ctx.append(ir.Assign{LHS: ir.Sym{S: b}, RHS: ir.FloatLit(x)})
	case bool:
		if b.kind != KindBool {
			failf(TypeError, "cannot assign a boolean to %s state slot %q", b.kind.describe(), b.field)
		}
		ctx.append(ir.Assign{LHS: ir.Sym{S: b}, RHS: ir.BoolLit(x)})
	default:
		failf(TypeError, "unsupported value of type %T assigned to state slot %q", v, b.field)
	}
}
