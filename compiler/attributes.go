package compiler

import (
	"sort"
	"strconv"

	"github.com/vcrobe/guic/element"
	"github.com/vcrobe/guic/emitter"
	"github.com/vcrobe/guic/trace"
)

// compileAttrs runs the generic attribute pass: the static rename table is
// applied, children/style/ref are excluded, event props are deferred to
// event compilation, literal values become static node attributes, and
// symbolic values lower to a runtime widget_set_attribute call against the
// node's reference.
func (w *walker) compileAttrs(node *emitter.Node, el *element.Element) {
	seen := make(map[string]bool)
	for _, a := range el.Attrs {
		if seen[a.Key] {
			w.fail(trace.StructuralError, "attribute %q appears twice on <%s>", a.Key, node.Tag)
		}
		seen[a.Key] = true

		switch {
		case a.Key == "children" || a.Key == "ref":
			continue
		case a.Key == "style":
			w.compileStyle(node, a.Val)
			continue
		case isEventProp(a.Key):
			continue // handled by compileEvents
		}

		key := a.Key
		if renamed, ok := attrRename[key]; ok {
			key = renamed
		}

		switch v := a.Val.(type) {
		case string:
			node.Attrs = append(node.Attrs, emitter.Attr{Key: key, Val: v})
		case int:
			node.Attrs = append(node.Attrs, emitter.Attr{Key: key, Val: strconv.Itoa(v)})
		case float64:
			node.Attrs = append(node.Attrs, emitter.Attr{Key: key, Val: strconv.FormatFloat(v, 'g', -1, 64)})
		case bool:
			node.Attrs = append(node.Attrs, emitter.Attr{Key: key, Val: strconv.FormatBool(v)})
		case *trace.Binding:
			ref := w.ensureRef(node)
			w.t.Extern("widget_set_attribute").Call(ref.Binding(), key, v)
		default:
			w.fail(trace.TypeError, "unsupported value of type %T for attribute %q", a.Val, a.Key)
		}
	}
}

// compileStyle lowers the style prop: one widget_set_style_string call per
// property, keys converted to the toolkit's dashed naming, values resolved
// to a symbolic identifier or a quoted literal. A non-object style value is
// a fatal error.
func (w *walker) compileStyle(node *emitter.Node, val any) {
	var pairs element.Style
	switch v := val.(type) {
	case element.Style:
		pairs = v
	case map[string]any:
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			pairs = append(pairs, element.Attr{Key: k, Val: v[k]})
		}
	default:
		w.fail(trace.StructuralError, "style on <%s> requires an object value, got %T", node.Tag, val)
	}

	ref := w.ensureRef(node)
	setStyle := w.t.Extern("widget_set_style_string")
	for _, p := range pairs {
		key := styleKey(p.Key)
		switch v := p.Val.(type) {
		case *trace.Binding:
			setStyle.Call(ref.Binding(), key, v)
		case string:
			setStyle.Call(ref.Binding(), key, v)
		case int:
			setStyle.Call(ref.Binding(), key, strconv.Itoa(v))
		case float64:
			setStyle.Call(ref.Binding(), key, strconv.FormatFloat(v, 'g', -1, 64))
		default:
			w.fail(trace.TypeError, "unsupported style value of type %T for %q", p.Val, p.Key)
		}
	}
}
