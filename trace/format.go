package trace

import (
	"strconv"

	"github.com/vcrobe/guic/ir"
)

// formatSlack is the fixed slack added to every runtime concatenation's
// length accumulator before the per-argument lengths.
const formatSlack = 8

// numericBufSize is the fixed buffer size used when stringifying a numeric
// binding with snprintf.
const numericBufSize = 32

// Format builds one runtime string from a mixed list of literal and symbolic
// arguments. Each argument is stringified (literals inline, objects through
// <Type>_to_string, numerics through a fixed snprintf buffer), a length
// accumulator seeded with the slack constant is incremented by every
// argument's length, a buffer of exactly that length is allocated, and the
// arguments are copied in order with one strcpy followed by strcat per
// remaining argument. The returned binding owns the buffer and is destroyed
// at scope exit unless promoted or marked keep-alive.
func (t *Tracer) Format(args ...any) *Binding {
	t.Header("string.h")
	t.Header("stdlib.h")
	ctx := t.Active()

	parts := make([]ir.Expr, 0, len(args))
	for _, a := range args {
		parts = append(parts, t.stringify(ctx, a))
	}

	length := &Binding{tr: t, name: t.nextName("len"), kind: KindSize, init: ir.IntLit(formatSlack)}
	t.declare(length, "size_t", 0)
	for _, p := range parts {
		ctx.append(ir.AddAssign{
			LHS: ir.Sym{S: length},
			RHS: ir.Call{Fn: "strlen", Args: []ir.Expr{p}},
		})
	}

	result := &Binding{
		tr:    t,
		name:  t.nextName("str"),
		kind:  KindString,
		owned: true,
		init:  ir.Call{Fn: "malloc", Args: []ir.Expr{ir.Sym{S: length}}},
	}
	t.declare(result, "char *", 0)

	if len(parts) == 0 {
		ctx.append(ir.Assign{
			LHS: ir.Index{X: ir.Sym{S: result}, I: ir.IntLit(0)},
			RHS: ir.Raw(`'\0'`),
		})
		return result
	}
	for i, p := range parts {
		fn := "strcat"
		if i == 0 {
			fn = "strcpy"
		}
		ctx.append(ir.ExprStmt{X: ir.Call{Fn: fn, Args: []ir.Expr{ir.Sym{S: result}, p}}})
	}
	return result
}

// stringify lowers one Format argument to a char* expression, emitting any
// statements the conversion needs.
func (t *Tracer) stringify(ctx *Context, v any) ir.Expr {
	switch x := v.(type) {
	case string:
		return ir.StrLit(x)
	case int:
		return ir.StrLit(strconv.Itoa(x))
	case int64:
		return ir.StrLit(strconv.FormatInt(x, 10))
	case float64:
		return ir.StrLit(strconv.FormatFloat(x, 'g', -1, 64))
	case bool:
		return ir.StrLit(strconv.FormatBool(x))
	case *Binding:
		return t.stringifyBinding(ctx, x)
	default:
		failf(TypeError, "cannot stringify value of type %T", v)
		return nil
	}
}

func (t *Tracer) stringifyBinding(ctx *Context, b *Binding) ir.Expr {
	switch b.kind {
	case KindString:
		return ir.Sym{S: b}
	case KindInt, KindSize, KindDouble:
		return t.stringifyNumeric(ctx, b)
	case KindObject:
		if b.typeTag == "" {
			failf(TypeError, "cannot stringify an object binding without a type tag")
		}
		t.Header("stdlib.h")
		s := &Binding{
			tr:    t,
			name:  t.nextName("str"),
			kind:  KindString,
			owned: true,
			init:  ir.Call{Fn: b.typeTag + "_to_string", Args: []ir.Expr{ir.Sym{S: b}}},
		}
		t.declare(s, "char *", 0)
		return ir.Sym{S: s}
	default:
		failf(TypeError, "cannot stringify a %s binding", b.kind.describe())
		return nil
	}
}

// stringifyNumeric prints a numeric binding into a fixed 32-byte buffer with
// the format specifier matching its numeric subtype, forcing the last byte
// to the terminator.
func (t *Tracer) stringifyNumeric(ctx *Context, b *Binding) ir.Expr {
	t.Header("stdio.h")
	var spec string
	switch b.kind {
	case KindSize:
		spec = "%zu"
	case KindDouble:
		spec = "%lf"
	default:
		spec = "%d"
	}
	buf := &Binding{tr: t, name: t.nextName("buf"), kind: KindString}
	t.declare(buf, "char", numericBufSize)
	ctx.append(ir.ExprStmt{X: ir.Call{Fn: "snprintf", Args: []ir.Expr{
		ir.Sym{S: buf},
		ir.IntLit(numericBufSize),
		ir.StrLit(spec),
		ir.Sym{S: b},
	}}})
	ctx.append(ir.Assign{
		LHS: ir.Index{X: ir.Sym{S: buf}, I: ir.IntLit(numericBufSize - 1)},
		RHS: ir.Raw(`'\0'`),
	})
	return ir.Sym{S: buf}
}
