// Package trace implements the symbolic binding model: native values and
// operations are represented as traceable Binding objects whose effects are
// accumulated, statement by statement, into per-function Contexts. A
// component function is executed exactly once under an active Tracer; the
// statements recorded during that single pass become the body of the
// generated native functions.
package trace

import (
	"strconv"

	"github.com/vcrobe/guic/ir"
)

// Kind is the native value kind carried by a Binding.
type Kind int

const (
	KindInt Kind = iota
	KindSize
	KindDouble
	KindBool
	KindString
	KindObject
)

// CType returns the C type used to declare a value of this kind. typeTag is
// only consulted for object kinds.
func (k Kind) CType(typeTag string) string {
	switch k {
	case KindInt:
		return "int"
	case KindSize:
		return "size_t"
	case KindDouble:
		return "double"
	case KindBool:
		return "bool"
	case KindString:
		return "char *"
	default:
		return typeTag + " *"
	}
}

// Binding is a symbolic stand-in for a native value: a declared local, a
// literal, or a field path rooted at another Binding. A Binding records how
// it is initialized and whether it owns the value it names; owning bindings
// with a construction or string initializer receive exactly one destroyer
// when their declaring scope closes, unless promoted into component state or
// marked keep-alive.
type Binding struct {
	tr *Tracer

	// Either name is set, or parent+field form a member path.
	name   string
	parent *Binding
	field  string

	kind    Kind
	typeTag string
	init    ir.Expr

	owned     bool
	keepAlive bool
	promoted  bool

	declCtx *Context
}

// CName resolves the binding's C identifier or member path. Resolution is
// late: renaming a promoted binding rewrites every recorded statement that
// references it.
func (b *Binding) CName() string {
	if b.parent != nil {
		p := b.parent.CName()
		if p == "" {
			return b.field
		}
		return p + "." + b.field
	}
	return b.name
}

// Kind reports the binding's native value kind.
func (b *Binding) Kind() Kind { return b.kind }

// TypeTag reports the native type tag for object bindings.
func (b *Binding) TypeTag() string { return b.typeTag }

// Initializer reports the binding's initializer expression, if any.
func (b *Binding) Initializer() ir.Expr { return b.init }

// KeepAlive marks the binding non-owning, exempting it from destroyer
// emission. Returns the binding for chaining at creation sites.
func (b *Binding) KeepAlive() *Binding {
	b.keepAlive = true
	return b
}

// Field resolves a native field or member path rooted at b. This is pure
// name resolution: no local is declared and no statement is emitted.
func (b *Binding) Field(name string) *Binding {
	return &Binding{tr: b.tr, parent: b, field: name, kind: KindObject, keepAlive: true}
}

// Call emits a call-expression statement in the current context, using the
// binding's resolved identifier as the function name. Arguments follow the
// standard stringification: strings quoted, numbers and booleans printed
// literally, nil mapped to NULL, bindings resolved to their identifiers.
func (b *Binding) Call(args ...any) {
	if b.kind != KindObject {
		failf(TypeError, "cannot invoke a %s binding as a function", b.kind.describe())
	}
	name := b.CName()
	if name == "" {
		failf(TypeError, "cannot invoke a binding with no name")
	}
	ctx := b.tr.Active()
	ctx.append(ir.ExprStmt{X: ir.Call{Fn: name, Args: b.tr.exprList(args)}})
}

// New uses the binding as a constructor: it allocates a fresh owning local
// whose initializer is a construction call named by convention from the
// binding's resolved type tag (<Type>_create), with the matching
// <Type>_destroy deferred until scope exit.
func (b *Binding) New(args ...any) *Binding {
	if b.kind != KindObject {
		failf(TypeError, "cannot construct from a %s binding", b.kind.describe())
	}
	tag := b.CName()
	if tag == "" {
		failf(TypeError, "cannot construct from a binding with no name")
	}
	return b.tr.Object(tag, args...)
}

func (k Kind) describe() string {
	switch k {
	case KindInt:
		return "numeric"
	case KindSize:
		return "numeric"
	case KindDouble:
		return "numeric"
	case KindBool:
		return "boolean"
	case KindString:
		return "string"
	default:
		return "object"
	}
}

// Extern returns a non-owning object binding naming a pre-existing native
// identifier, typically a toolkit function consumed by generated code.
func (t *Tracer) Extern(name string) *Binding {
	return &Binding{tr: t, name: name, kind: KindObject, keepAlive: true}
}

// String allocates a fresh owning local string binding in the current
// context, initialized with a copy of the literal.
func (t *Tracer) String(v string) *Binding {
	t.Header("string.h")
	b := &Binding{
		tr:    t,
		name:  t.nextName("str"),
		kind:  KindString,
		owned: true,
		init:  ir.Call{Fn: "strdup", Args: []ir.Expr{ir.StrLit(v)}},
	}
	t.declare(b, "char *", 0)
	return b
}

// Int allocates a fresh local int binding in the current context.
func (t *Tracer) Int(v int64) *Binding {
	b := &Binding{tr: t, name: t.nextName("num"), kind: KindInt, owned: true, init: ir.IntLit(v)}
	t.declare(b, "int", 0)
	return b
}

// Size allocates a fresh local size_t binding in the current context.
func (t *Tracer) Size(v uint64) *Binding {
	b := &Binding{
		tr:    t,
		name:  t.nextName("num"),
		kind:  KindSize,
		owned: true,
		init:  ir.Raw(strconv.FormatUint(v, 10)),
	}
	t.declare(b, "size_t", 0)
	return b
}

// Double allocates a fresh local double binding in the current context.
func (t *Tracer) Double(v float64) *Binding {
	b := &Binding{tr: t, name: t.nextName("num"), kind: KindDouble, owned: true, init: ir.FloatLit(v)}
	t.declare(b, "double", 0)
	return b
}

// Bool allocates a fresh local bool binding in the current context.
func (t *Tracer) Bool(v bool) *Binding {
	t.Header("stdbool.h")
	b := &Binding{tr: t, name: t.nextName("num"), kind: KindBool, owned: true, init: ir.BoolLit(v)}
	t.declare(b, "bool", 0)
	return b
}

// Object allocates a fresh owning local object binding constructed with
// <typeTag>_create(args); the matching <typeTag>_destroy is emitted when the
// declaring scope closes.
func (t *Tracer) Object(typeTag string, args ...any) *Binding {
	b := &Binding{
		tr:      t,
		name:    t.nextName("obj"),
		kind:    KindObject,
		typeTag: typeTag,
		owned:   true,
		init:    ir.Construct{TypeTag: typeTag, Args: t.exprList(args)},
	}
	t.declare(b, typeTag+" *", 0)
	return b
}

// exprOf converts a traced argument to its IR expression.
func (t *Tracer) exprOf(v any) ir.Expr {
	switch x := v.(type) {
	case nil:
		return ir.Null{}
	case *Binding:
		return ir.Sym{S: x}
	case string:
		return ir.StrLit(x)
	case int:
		return ir.IntLit(x)
	case int64:
		return ir.IntLit(x)
	case float64:
		return ir.FloatLit(x)
	case bool:
		return ir.BoolLit(x)
	case ir.Expr:
		return x
	default:
		failf(TypeError, "unsupported value of type %T in traced call", v)
		return nil
	}
}

func (t *Tracer) exprList(args []any) []ir.Expr {
	out := make([]ir.Expr, len(args))
	for i, a := range args {
		out[i] = t.exprOf(a)
	}
	return out
}

// destroyer returns the statement releasing the binding's native value, or
// nil when the binding needs none.
func (b *Binding) destroyer() ir.Stmt {
	if !b.owned || b.keepAlive || b.promoted || b.init == nil {
		return nil
	}
	switch b.kind {
	case KindString:
		return ir.ExprStmt{X: ir.Call{Fn: "free", Args: []ir.Expr{ir.Sym{S: b}}}}
	case KindObject:
		if b.typeTag == "" {
			return nil
		}
		return ir.ExprStmt{X: ir.Call{Fn: b.typeTag + "_destroy", Args: []ir.Expr{ir.Sym{S: b}}}}
	default:
		return nil
	}
}
