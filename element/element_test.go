package element

import "testing"

func TestElement_Attr(t *testing.T) {
	el := New("div", []Attr{
		{Key: "class", Val: "row"},
		{Key: "title", Val: "hi"},
	})

	v, ok := el.Attr("title")
	if !ok || v != "hi" {
		t.Errorf("Expected title=hi, got %v (found=%v)", v, ok)
	}
	if _, ok := el.Attr("missing"); ok {
		t.Error("Expected missing attribute to report absence")
	}
}

func TestNew_PreservesOrder(t *testing.T) {
	el := New("div", []Attr{{Key: "a"}, {Key: "b"}}, "x", "y")

	if el.Attrs[0].Key != "a" || el.Attrs[1].Key != "b" {
		t.Errorf("Attribute order not preserved: %v", el.Attrs)
	}
	if len(el.Children) != 2 || el.Children[0] != "x" {
		t.Errorf("Children not preserved: %v", el.Children)
	}
}

func TestComponentConstructors(t *testing.T) {
	c := Component("Card", nil)
	if c.Prerender {
		t.Error("Component must not be pre-renderable by default")
	}
	p := Prerendered("Card", nil)
	if !p.Prerender {
		t.Error("Prerendered must mark the component pre-renderable")
	}
}
