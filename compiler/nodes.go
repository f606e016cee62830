package compiler

import (
	"fmt"
	"strconv"

	"github.com/vcrobe/guic/element"
	"github.com/vcrobe/guic/emitter"
	"github.com/vcrobe/guic/trace"
)

// walker carries the per-compilation walk state: the tracer, the handler
// memoization table, and the reference name counters.
type walker struct {
	t        *trace.Tracer
	opts     Options
	memo     map[uintptr]string
	refCount map[string]int
	traced   int
}

// compileElement lowers one declarative element into an output node,
// recording any runtime statements into the active context. inheritedRef is
// the explicit reference propagated downward when a pre-renderable component
// is inlined.
func (w *walker) compileElement(el *element.Element, inheritedRef *trace.Ref) *emitter.Node {
	if el == nil {
		w.fail(trace.StructuralError, "component rendered no element")
	}
	if el.Tag == element.Fragment {
		w.fail(trace.StructuralError, "fragments are unsupported")
	}

	var proto string
	switch tag := el.Tag.(type) {
	case string:
		proto = resolveTag(tag, w.opts)
	case *element.ComponentType:
		if tag.Prerender {
			return w.inlineComponent(el, tag, inheritedRef)
		}
		// Opaque native widget type, defined elsewhere; the display name
		// becomes the native tag directly.
		proto = identSafe(tag.Name)
	default:
		w.fail(trace.StructuralError, "unsupported element tag of type %T", el.Tag)
	}

	node := &emitter.Node{Tag: proto}
	w.compileRef(node, el, inheritedRef)
	w.compileAttrs(node, el)
	w.compileChildren(node, el)
	w.compileEvents(node, el)
	return node
}

// inlineComponent invokes a pre-renderable component immediately with its
// props and transforms the result in place; no separate native construct is
// emitted for it.
func (w *walker) inlineComponent(el *element.Element, ct *element.ComponentType, inheritedRef *trace.Ref) *emitter.Node {
	ref := inheritedRef
	props := element.Props{}
	for _, a := range el.Attrs {
		if a.Key == "ref" {
			ref = w.asRef(a.Val)
			continue
		}
		props[a.Key] = a.Val
	}
	if len(el.Children) > 0 {
		props["children"] = el.Children
	}
	sub := ct.Render(w.t, props)
	w.scanRefs(sub)
	return w.compileElement(sub, ref)
}

// scanRefs walks a rendered element tree before compilation and attaches
// widget interaction types to explicitly referenced elements. Handlers trace
// during their own element's compilation, so without this pass a handler on
// an element preceding its target would read the ref before the type is
// known.
func (w *walker) scanRefs(el *element.Element) {
	if el == nil {
		return
	}
	if tag, ok := el.Tag.(string); ok {
		if v, found := el.Attr("ref"); found {
			var r *trace.Ref
			switch x := v.(type) {
			case *trace.Ref:
				r = x
			case string:
				r = w.t.Ref(x)
			}
			if r != nil && r.WidgetType == "" && resolveTag(tag, w.opts) == "textinput" {
				r.WidgetType = "textinput"
			}
		}
	}
	for _, c := range el.Children {
		if child, ok := c.(*element.Element); ok {
			w.scanRefs(child)
		}
	}
}

func (w *walker) asRef(v any) *trace.Ref {
	switch x := v.(type) {
	case *trace.Ref:
		return x
	case string:
		return w.t.Ref(x)
	default:
		w.fail(trace.TypeError, "ref prop must be a reference or a name, got %T", v)
		return nil
	}
}

// compileRef resolves the element's reference prop, unwrapping reference
// objects to their allocated names and attaching the widget's expected
// interaction type for later typed accessors.
func (w *walker) compileRef(node *emitter.Node, el *element.Element, inheritedRef *trace.Ref) {
	ref := inheritedRef
	if v, ok := el.Attr("ref"); ok {
		ref = w.asRef(v)
	}
	if ref == nil {
		return
	}
	node.Ref = ref.Name
	if node.Tag == "textinput" && ref.WidgetType == "" {
		ref.WidgetType = "textinput"
	}
}

// ensureRef returns the node's reference, allocating a deterministic name
// derived from its tag when the author supplied none.
func (w *walker) ensureRef(node *emitter.Node) *trace.Ref {
	if node.Ref != "" {
		return w.t.Ref(node.Ref)
	}
	n := w.refCount[node.Tag]
	w.refCount[node.Tag]++
	r := w.t.Ref(fmt.Sprintf("%s_%d", node.Tag, n))
	node.Ref = r.Name
	if node.Tag == "textinput" && r.WidgetType == "" {
		r.WidgetType = "textinput"
	}
	return r
}

// compileChildren lowers an element's child list. A purely literal list
// becomes static text with no runtime statements; a list containing symbolic
// values but no nested elements is routed through the string formatting
// subsystem and assigned with a single set-text call; a mixed list lowers
// each child individually.
func (w *walker) compileChildren(node *emitter.Node, el *element.Element) {
	if len(el.Children) == 0 {
		return
	}

	hasElement := false
	hasBinding := false
	for _, c := range el.Children {
		switch c.(type) {
		case *element.Element:
			hasElement = true
		case *trace.Binding:
			hasBinding = true
		}
	}

	switch {
	case !hasElement && !hasBinding:
		text := ""
		for _, c := range el.Children {
			text += w.litText(c)
		}
		node.Text = text

	case !hasElement:
		ref := w.ensureRef(node)
		s := w.t.Format(el.Children...)
		w.t.Extern("widget_set_text").Call(ref.Binding(), s)

	default:
		for _, c := range el.Children {
			switch x := c.(type) {
			case *element.Element:
				node.Children = append(node.Children, w.compileElement(x, nil))
			case *trace.Binding:
				child := &emitter.Node{Tag: "text"}
				ref := w.ensureRef(child)
				s := w.t.Format(x)
				w.t.Extern("widget_set_text").Call(ref.Binding(), s)
				node.Children = append(node.Children, child)
			default:
				node.Children = append(node.Children, &emitter.Node{Tag: "text", Text: w.litText(c)})
			}
		}
	}
}

// litText renders a literal child to its static text.
func (w *walker) litText(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64)
	default:
		w.fail(trace.TypeError, "unsupported child of type %T", v)
		return ""
	}
}

// fail raises a fatal compile error through the tracer's error channel.
func (w *walker) fail(kind trace.ErrorKind, format string, args ...any) {
	trace.Fail(kind, format, args...)
}
