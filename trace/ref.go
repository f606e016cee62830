package trace

import "github.com/vcrobe/guic/ir"

// Ref is an allocated reference to one widget of the component's tree,
// persisted in the generated refs struct. The widget's expected interaction
// type, attached during attribute compilation, unlocks typed accessors.
type Ref struct {
	Name       string
	WidgetType string

	tr *Tracer
	b  *Binding
}

// Ref allocates a reference slot with the given name, or returns the
// existing one. The name is supplied explicitly at the call site.
func (t *Tracer) Ref(name string) *Ref {
	cc := t.Component()
	if r := cc.ref(name); r != nil {
		return r
	}
	r := &Ref{
		Name: name,
		tr:   t,
		b:    &Binding{tr: t, parent: cc.refsBase, field: name, kind: KindObject, typeTag: "widget", keepAlive: true},
	}
	cc.Refs = append(cc.Refs, r)
	return r
}

// Binding returns the non-owning binding naming the ref's member path.
func (r *Ref) Binding() *Binding { return r.b }

// Text reads the referenced text input's value into a fresh owning string
// binding, converting the toolkit's wide-character text to multi-byte.
func (r *Ref) Text() *Binding {
	if r.WidgetType != "textinput" {
		failf(TypeError, "ref %q is not a text input", r.Name)
	}
	t := r.tr
	t.Header("stdlib.h")
	t.Header("wchar.h")
	ctx := t.Active()

	length := &Binding{
		tr:   t,
		name: t.nextName("len"),
		kind: KindSize,
		init: ir.Raw(ir.Call{Fn: "textinput_length", Args: []ir.Expr{ir.Sym{S: r.b}}}.Emit() + " + 1"),
	}
	t.declare(length, "size_t", 0)

	wcs := &Binding{
		tr:   t,
		name: t.nextName("wcs"),
		kind: KindObject, typeTag: "wchar_t",
		keepAlive: true,
		init:      ir.Raw("malloc(sizeof(wchar_t) * " + length.CName() + ")"),
	}
	t.declare(wcs, "wchar_t *", 0)
	ctx.append(ir.ExprStmt{X: ir.Call{Fn: "textinput_get_text_w", Args: []ir.Expr{
		ir.Sym{S: r.b}, ir.IntLit(0), ir.Sym{S: length}, ir.Sym{S: wcs},
	}}})

	s := &Binding{
		tr:    t,
		name:  t.nextName("str"),
		kind:  KindString,
		owned: true,
		init:  ir.Call{Fn: "malloc", Args: []ir.Expr{ir.Sym{S: length}}},
	}
	t.declare(s, "char *", 0)
	ctx.append(ir.ExprStmt{X: ir.Call{Fn: "wcstombs", Args: []ir.Expr{
		ir.Sym{S: s}, ir.Sym{S: wcs}, ir.Sym{S: length},
	}}})
	ctx.append(ir.ExprStmt{X: ir.Call{Fn: "free", Args: []ir.Expr{ir.Sym{S: wcs}}}})
	return s
}

// SetText writes a literal or string binding into the referenced text input.
func (r *Ref) SetText(v any) {
	if r.WidgetType != "textinput" {
		failf(TypeError, "ref %q is not a text input", r.Name)
	}
	t := r.tr
	if b, ok := v.(*Binding); ok && b.kind != KindString {
		failf(TypeError, "cannot set text input %q from a %s binding", r.Name, b.kind.describe())
	}
	t.Active().append(ir.ExprStmt{X: ir.Call{
		Fn:   "textinput_set_text",
		Args: []ir.Expr{ir.Sym{S: r.b}, t.exprOf(v)},
	}})
}
