package compiler

import (
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/net/html"

	"github.com/vcrobe/guic/element"
	"github.com/vcrobe/guic/trace"
)

// dataBindingRegex finds data binding expressions like {count} in template
// text and attribute values.
var dataBindingRegex = regexp.MustCompile(`\{([a-zA-Z][a-zA-Z0-9_]*)\}`)

// ParseTemplate parses a *.ui.html component template into a component whose
// render function declares the schema's state slots and builds the element
// tree, resolving {field} bindings to state bindings and @event attributes
// to pre-existing native handler functions. Binding references are validated
// against the schema up front so template errors surface with source
// context instead of failing mid-trace.
func ParseTemplate(name, source string, schema StateSchema) (*element.ComponentType, error) {
	if err := validateComponentName(name); err != nil {
		return nil, err
	}

	doc, err := html.Parse(strings.NewReader(source))
	if err != nil {
		return nil, fmt.Errorf("failed to parse template for %s: %w", name, err)
	}
	body := findBody(doc)
	if body == nil {
		return nil, fmt.Errorf("template for %s has no content", name)
	}
	root := findFirstElementChild(body)
	if root == nil {
		return nil, fmt.Errorf("template for %s has no root element", name)
	}
	if findNextElementSibling(root) != nil {
		return nil, fmt.Errorf("template for %s must have a single root element", name)
	}

	if err := validateBindings(root, name, source, schema); err != nil {
		return nil, err
	}

	render := func(t *trace.Tracer, props element.Props) *element.Element {
		states := make(map[string]*trace.Binding, len(schema))
		for _, f := range schema {
			b, _ := t.State(f.Name, f.Default)
			states[f.Name] = b
		}
		return buildElement(root, states)
	}
	return element.Component(name, render), nil
}

// validateComponentName rejects component names that collide with the
// declarative element vocabulary; such a tag would shadow the native
// prototype it maps to.
func validateComponentName(name string) error {
	if _, clash := nativeTags[strings.ToLower(name)]; clash {
		return fmt.Errorf("component name %q conflicts with a built-in element tag", name)
	}
	return nil
}

// validateBindings checks every {field} reference in the template against
// the component's state schema.
func validateBindings(n *html.Node, name, source string, schema StateSchema) error {
	known := make(map[string]bool, len(schema))
	fields := make([]string, 0, len(schema))
	for _, f := range schema {
		known[f.Name] = true
		fields = append(fields, f.Name)
	}

	var check func(*html.Node) error
	check = func(node *html.Node) error {
		if node.Type == html.TextNode {
			for _, m := range dataBindingRegex.FindAllStringSubmatch(node.Data, -1) {
				if !known[m[1]] {
					line := estimateLineNumber(source, m[0])
					return fmt.Errorf("compilation error in %s:%d: field %q not found in component state. Available fields: [%s]\n%s",
						name, line, m[1], strings.Join(fields, ", "), getContextLines(source, line, 2))
				}
			}
		}
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			if err := check(c); err != nil {
				return err
			}
		}
		return nil
	}
	return check(n)
}

// buildElement converts a parsed template node into a declarative element,
// resolving bindings against the declared state slots.
func buildElement(n *html.Node, states map[string]*trace.Binding) *element.Element {
	var attrs []element.Attr
	for _, a := range n.Attr {
		if ev, ok := strings.CutPrefix(a.Key, "@"); ok {
			// @click="on_submit" binds a pre-existing native function.
			attrs = append(attrs, element.Attr{Key: eventPropKey(ev), Val: a.Val})
			continue
		}
		if a.Key == "style" {
			attrs = append(attrs, element.Attr{Key: "style", Val: parseInlineStyle(a.Val)})
			continue
		}
		if a.Key == "class" {
			attrs = append(attrs, element.Attr{Key: "className", Val: a.Val})
			continue
		}
		attrs = append(attrs, element.Attr{Key: a.Key, Val: a.Val})
	}

	var children []any
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		switch c.Type {
		case html.TextNode:
			trimmed := strings.TrimSpace(c.Data)
			if trimmed == "" {
				continue
			}
			children = append(children, splitBindings(trimmed, states)...)
		case html.ElementNode:
			children = append(children, buildElement(c, states))
		}
	}
	return element.New(n.Data, attrs, children...)
}

// splitBindings slices template text into literal and symbolic children.
func splitBindings(text string, states map[string]*trace.Binding) []any {
	var out []any
	rest := text
	for {
		loc := dataBindingRegex.FindStringSubmatchIndex(rest)
		if loc == nil {
			break
		}
		if loc[0] > 0 {
			out = append(out, rest[:loc[0]])
		}
		out = append(out, states[rest[loc[2]:loc[3]]])
		rest = rest[loc[1]:]
	}
	if rest != "" {
		out = append(out, rest)
	}
	return out
}

// eventPropKey converts a template event name to the on-prefixed prop key
// (click -> onClick).
func eventPropKey(ev string) string {
	if ev == "" {
		return "on"
	}
	return "on" + strings.ToUpper(ev[:1]) + ev[1:]
}

// parseInlineStyle converts an inline CSS string into the ordered style
// object the compiler expects.
func parseInlineStyle(s string) element.Style {
	var style element.Style
	for _, decl := range strings.Split(s, ";") {
		decl = strings.TrimSpace(decl)
		if decl == "" {
			continue
		}
		key, val, ok := strings.Cut(decl, ":")
		if !ok {
			continue
		}
		style = append(style, element.Attr{
			Key: strings.TrimSpace(key),
			Val: strings.TrimSpace(val),
		})
	}
	return style
}

// findNextElementSibling returns the next element sibling of a node.
func findNextElementSibling(n *html.Node) *html.Node {
	for c := n.NextSibling; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			return c
		}
	}
	return nil
}
