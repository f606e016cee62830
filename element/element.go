// Package element defines the declarative element vocabulary consumed by the
// component compiler: a tree of tagged elements with ordered attributes,
// literal or symbolic children, and component tags carrying the render
// function executed once during tracing.
package element

import "github.com/vcrobe/guic/trace"

// Attr is one attribute of an element. Attributes keep source order; keys
// must be unique within an element.
type Attr struct {
	Key string
	Val any
}

// Style is the object value expected by the style prop: an ordered list of
// property/value pairs.
type Style []Attr

// Props carries the values a component is rendered with.
type Props map[string]any

// RenderFunc is a component's render logic. It is invoked exactly once per
// compilation, under the active tracer. Conditionals and loops inside it run
// as ordinary Go code during that single invocation; only the statements on
// the path actually taken are recorded.
type RenderFunc func(t *trace.Tracer, props Props) *Element

// ComponentType describes a function-tagged element. Pre-renderable
// components are inlined into their caller's tree during compilation; others
// become opaque native widget types named by Name.
type ComponentType struct {
	Name      string
	Render    RenderFunc
	Prerender bool
}

// Component declares a component compiled to its own native widget type.
func Component(name string, render RenderFunc) *ComponentType {
	return &ComponentType{Name: name, Render: render}
}

// Prerendered declares a component inlined into its caller during
// compilation; no separate native construct is emitted for it.
func Prerendered(name string, render RenderFunc) *ComponentType {
	return &ComponentType{Name: name, Render: render, Prerender: true}
}

type fragment struct{}

// Fragment is the unsupported fragment tag; compiling an element tagged with
// it is a fatal structural error.
var Fragment any = fragment{}

// Element is one node of the declarative tree. Tag is a string, a
// *ComponentType, or Fragment. Children may be literal strings and numbers,
// symbolic bindings, or nested elements.
type Element struct {
	Tag      any
	Attrs    []Attr
	Children []any
}

// New builds an element. Attribute order is preserved into the output.
func New(tag any, attrs []Attr, children ...any) *Element {
	return &Element{Tag: tag, Attrs: attrs, Children: children}
}

// Attr returns the value of the named attribute, if present.
func (e *Element) Attr(key string) (any, bool) {
	for _, a := range e.Attrs {
		if a.Key == key {
			return a.Val, true
		}
	}
	return nil, false
}
