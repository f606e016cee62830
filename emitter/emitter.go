// Package emitter renders a finished component compilation — the output node
// tree plus the traced contexts — into native C source text: struct
// definitions, lifecycle functions, event handlers, and the update function.
package emitter

import (
	"fmt"
	"strings"

	"github.com/vcrobe/guic/ir"
	"github.com/vcrobe/guic/trace"
)

// toolkitHeader is the native widget toolkit's include, always required by
// generated code.
const toolkitHeader = "gui/widget.h"

// Output is the generated source for one component, split the way the
// surrounding build consumes it: a type-definition block, a declaration
// block with the public prototypes, and the source block with the lifecycle
// glue. Headers lists every include the build must provide.
type Output struct {
	Component string
	Types     string
	Decls     string
	Source    string
	Headers   []string
}

// Emit renders one finished component context and its output tree.
func Emit(cc *trace.ComponentContext, root *Node) *Output {
	e := &emitter{cc: cc, name: cc.Component}
	return &Output{
		Component: cc.Component,
		Types:     e.typesBlock(),
		Decls:     e.declsBlock(),
		Source:    e.sourceBlock(root),
		Headers:   e.headers(),
	}
}

type emitter struct {
	cc   *trace.ComponentContext
	name string
	w    int // widget variable counter for the load function
}

func (e *emitter) headers() []string {
	hs := []string{toolkitHeader, "stdlib.h"}
	seen := map[string]bool{toolkitHeader: true, "stdlib.h": true}
	for _, h := range e.cc.Headers {
		if !seen[h] {
			seen[h] = true
			hs = append(hs, h)
		}
	}
	return hs
}

// cdecl renders a C declarator for the given type and name.
func cdecl(ctype, name string) string {
	if strings.HasSuffix(ctype, "*") {
		return ctype + name
	}
	return ctype + " " + name
}

func (e *emitter) typesBlock() string {
	var b strings.Builder

	fmt.Fprintf(&b, "typedef struct {\n")
	if len(e.cc.State) == 0 {
		// Keep the struct non-empty so sizeof stays valid.
		fmt.Fprintf(&b, "\tchar unused;\n")
	}
	for _, f := range e.cc.State {
		fmt.Fprintf(&b, "\t%s;\n", cdecl(f.B.Kind().CType(f.B.TypeTag()), f.Name))
	}
	fmt.Fprintf(&b, "} %sState;\n", e.name)

	if len(e.cc.Refs) > 0 {
		fmt.Fprintf(&b, "\ntypedef struct {\n")
		for _, r := range e.cc.Refs {
			fmt.Fprintf(&b, "\twidget_t *%s;\n", r.Name)
		}
		fmt.Fprintf(&b, "} %sRefs;\n", e.name)
	}

	fmt.Fprintf(&b, "\ntypedef struct {\n")
	fmt.Fprintf(&b, "\t%sState state;\n", e.name)
	if len(e.cc.Refs) > 0 {
		fmt.Fprintf(&b, "\t%sRefs refs;\n", e.name)
	}
	fmt.Fprintf(&b, "} %s;\n", e.name)
	return b.String()
}

func (e *emitter) declsBlock() string {
	var b strings.Builder
	fmt.Fprintf(&b, "void %s_register(void);\n", e.name)
	fmt.Fprintf(&b, "widget_t *%s_create(void);\n", e.name)
	fmt.Fprintf(&b, "void %s_update(%s *self);\n", e.name, e.name)
	return b.String()
}

func (e *emitter) sourceBlock(root *Node) string {
	var b strings.Builder

	e.initStateFunc(&b)
	b.WriteString("\n")
	e.destroyStateFunc(&b)
	b.WriteString("\n")
	e.updateFunc(&b)
	e.handlerFuncs(&b)
	if len(e.cc.Handlers) > 0 {
		b.WriteString("\n")
		e.registerEventsFunc(&b)
	}
	b.WriteString("\n")
	e.loadFunc(&b, root)
	b.WriteString("\n")
	e.lifecycleFuncs(&b)
	b.WriteString("\n")
	e.extensionStruct(&b)
	return b.String()
}

func (e *emitter) writeBody(b *strings.Builder, ctx *trace.Context) {
	for _, s := range ctx.Body {
		fmt.Fprintf(b, "\t%s\n", s.EmitStmt())
	}
}

func (e *emitter) initStateFunc(b *strings.Builder) {
	fmt.Fprintf(b, "static void %s_init_state(%s *self)\n{\n", e.name, e.name)
	for _, f := range e.cc.State {
		init := f.B.Initializer()
		if init == nil {
			continue
		}
		fmt.Fprintf(b, "\t%s\n", ir.Assign{LHS: ir.Sym{S: f.B}, RHS: init}.EmitStmt())
	}
	b.WriteString("}\n")
}

func (e *emitter) destroyStateFunc(b *strings.Builder) {
	fmt.Fprintf(b, "static void %s_destroy_state(%s *self)\n{\n", e.name, e.name)
	for _, f := range e.cc.State {
		switch f.B.Kind() {
		case trace.KindString:
			fmt.Fprintf(b, "\tfree(%s);\n", f.B.CName())
		case trace.KindObject:
			if tag := f.B.TypeTag(); tag != "" {
				fmt.Fprintf(b, "\t%s_destroy(%s);\n", tag, f.B.CName())
			}
		}
	}
	b.WriteString("}\n")
}

func (e *emitter) updateFunc(b *strings.Builder) {
	fmt.Fprintf(b, "void %s_update(%s *self)\n{\n", e.name, e.name)
	e.writeBody(b, &e.cc.Context)
	b.WriteString("}\n")
}

func (e *emitter) handlerFuncs(b *strings.Builder) {
	for _, h := range e.cc.Handlers {
		if h.Ctx == nil || h.Extern != "" {
			continue
		}
		fmt.Fprintf(b, "\nstatic void %s_%s(widget_t *w, widget_event_t *ev, void *arg)\n{\n", e.name, h.Name)
		fmt.Fprintf(b, "\t%s *self = arg;\n\n", e.name)
		e.writeBody(b, h.Ctx)
		if h.Ctx.HasStateOp {
			fmt.Fprintf(b, "\t%s_update(self);\n", e.name)
		}
		b.WriteString("}\n")
	}
}

func (e *emitter) registerEventsFunc(b *strings.Builder) {
	fmt.Fprintf(b, "static void %s_register_events(%s *self)\n{\n", e.name, e.name)
	for _, h := range e.cc.Handlers {
		fn := h.Extern
		if fn == "" {
			fn = fmt.Sprintf("%s_%s", e.name, h.Name)
		}
		fmt.Fprintf(b, "\twidget_on(self->refs.%s, %s, %s, self);\n",
			h.TargetRef, ir.Quote(h.Event), fn)
	}
	b.WriteString("}\n")
}

func (e *emitter) loadFunc(b *strings.Builder, root *Node) {
	fmt.Fprintf(b, "static void %s_load(%s *self, widget_t *w)\n{\n", e.name, e.name)
	e.w = 0
	e.nodeSetup(b, root, "w")
	for _, c := range root.Children {
		e.createNode(b, c, "w")
	}
	b.WriteString("}\n")
}

// nodeSetup emits the static attribute, text, and ref statements applying to
// an already-constructed widget.
func (e *emitter) nodeSetup(b *strings.Builder, n *Node, v string) {
	for _, a := range n.Attrs {
		fmt.Fprintf(b, "\twidget_set_attribute(%s, %s, %s);\n", v, ir.Quote(a.Key), ir.Quote(a.Val))
	}
	if n.Text != "" {
		fmt.Fprintf(b, "\twidget_set_text(%s, %s);\n", v, ir.Quote(n.Text))
	}
	if n.Ref != "" {
		fmt.Fprintf(b, "\tself->refs.%s = %s;\n", n.Ref, v)
	}
}

// createNode emits construction of one node and its subtree, appending it to
// the given parent variable.
func (e *emitter) createNode(b *strings.Builder, n *Node, parent string) {
	v := fmt.Sprintf("w_%d", e.w)
	e.w++
	fmt.Fprintf(b, "\twidget_t *%s = %s_create();\n", v, n.Tag)
	e.nodeSetup(b, n, v)
	for _, c := range n.Children {
		e.createNode(b, c, v)
	}
	fmt.Fprintf(b, "\twidget_append(%s, %s);\n", parent, v)
}

func (e *emitter) lifecycleFuncs(b *strings.Builder) {
	fmt.Fprintf(b, "static void %s_init(widget_t *w)\n{\n", e.name)
	fmt.Fprintf(b, "\t%s *self = malloc(sizeof(%s));\n\n", e.name, e.name)
	fmt.Fprintf(b, "\twidget_set_data(w, self);\n")
	fmt.Fprintf(b, "\t%s_load(self, w);\n", e.name)
	fmt.Fprintf(b, "\t%s_init_state(self);\n", e.name)
	if len(e.cc.Handlers) > 0 {
		fmt.Fprintf(b, "\t%s_register_events(self);\n", e.name)
	}
	fmt.Fprintf(b, "\t%s_update(self);\n", e.name)
	b.WriteString("}\n\n")

	fmt.Fprintf(b, "static void %s_destroy(widget_t *w)\n{\n", e.name)
	fmt.Fprintf(b, "\t%s *self = widget_get_data(w);\n\n", e.name)
	fmt.Fprintf(b, "\t%s_destroy_state(self);\n", e.name)
	fmt.Fprintf(b, "\tfree(self);\n")
	b.WriteString("}\n\n")

	fmt.Fprintf(b, "void %s_register(void)\n{\n", e.name)
	fmt.Fprintf(b, "\twidget_register(%s, %s_init, %s_destroy);\n", ir.Quote(e.name), e.name, e.name)
	b.WriteString("}\n\n")

	fmt.Fprintf(b, "widget_t *%s_create(void)\n{\n", e.name)
	fmt.Fprintf(b, "\twidget_t *w = widget_create();\n\n")
	fmt.Fprintf(b, "\t%s_init(w);\n", e.name)
	fmt.Fprintf(b, "\treturn w;\n")
	b.WriteString("}\n")
}

// extensionStruct emits the caller-extensible record combining the generated
// component with room for hand-written additions.
func (e *emitter) extensionStruct(b *strings.Builder) {
	fmt.Fprintf(b, "typedef struct {\n")
	fmt.Fprintf(b, "\t%s base;\n", e.name)
	fmt.Fprintf(b, "\t/* component-specific fields go here */\n")
	fmt.Fprintf(b, "} %sRec;\n", e.name)
}
