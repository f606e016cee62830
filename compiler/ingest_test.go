package compiler

import (
	"strings"
	"testing"

	"github.com/vcrobe/guic/trace"
)

const counterTemplate = `<div>
	<text>Count: {count}</text>
	<button @click="counter_increment">+</button>
</div>`

// TestParseTemplate_CompilesEndToEnd verifies a parsed template compiles with
// its state bindings resolved and its @event attributes bound to the named
// native functions.
func TestParseTemplate_CompilesEndToEnd(t *testing.T) {
	// Arrange
	schema := StateSchema{{Name: "count", Kind: trace.KindInt, Default: 0}}
	comp, err := ParseTemplate("Counter", counterTemplate, schema)
	if err != nil {
		t.Fatalf("Expected no parse error, got %v", err)
	}

	// Act
	out, err := Compile(comp, nil)

	// Assert
	if err != nil {
		t.Fatalf("Expected no compile error, got %v", err)
	}
	if !strings.Contains(out.Source, `snprintf(buf_0, 32, "%d", self->state.count);`) {
		t.Errorf("Expected the bound state slot stringified, got:\n%s", out.Source)
	}
	if !strings.Contains(out.Source, `strcpy(str_0, "Count: ");`) {
		t.Errorf("Expected the literal text prefix copied first, got:\n%s", out.Source)
	}
	if !strings.Contains(out.Source, `widget_on(self->refs.button_0, "click", counter_increment, self);`) {
		t.Errorf("Expected the native handler registered, got:\n%s", out.Source)
	}
	if strings.Contains(out.Source, "static void Counter_on_button") {
		t.Errorf("A native handler must not generate a function, got:\n%s", out.Source)
	}
}

// TestParseTemplate_UnknownBindingReportsContext verifies an unknown {field}
// reference fails up front with the offending source line in the message.
func TestParseTemplate_UnknownBindingReportsContext(t *testing.T) {
	schema := StateSchema{{Name: "count", Kind: trace.KindInt, Default: 0}}

	_, err := ParseTemplate("Counter", `<div>
	<text>{missing}</text>
</div>`, schema)

	if err == nil {
		t.Fatal("Expected a validation error")
	}
	msg := err.Error()
	if !strings.Contains(msg, `field "missing" not found in component state`) {
		t.Errorf("Expected the missing field named, got: %s", msg)
	}
	if !strings.Contains(msg, "Available fields: [count]") {
		t.Errorf("Expected the available fields listed, got: %s", msg)
	}
	if !strings.Contains(msg, "> ") {
		t.Errorf("Expected the offending line marked in the context, got: %s", msg)
	}
}

// TestParseTemplate_RejectsBuiltinTagNames verifies component names that
// would shadow an element tag are rejected.
func TestParseTemplate_RejectsBuiltinTagNames(t *testing.T) {
	_, err := ParseTemplate("Input", "<div></div>", nil)

	if err == nil || !strings.Contains(err.Error(), "conflicts with a built-in element tag") {
		t.Fatalf("Expected a name conflict error, got %v", err)
	}
}

// TestParseTemplate_RequiresSingleRoot verifies multi-rooted templates are
// rejected.
func TestParseTemplate_RequiresSingleRoot(t *testing.T) {
	_, err := ParseTemplate("Split", "<div></div><div></div>", nil)

	if err == nil || !strings.Contains(err.Error(), "single root element") {
		t.Fatalf("Expected a single-root error, got %v", err)
	}
}

// TestParseTemplate_InlineStyle verifies inline CSS attributes become ordered
// style pairs in the compiled output.
func TestParseTemplate_InlineStyle(t *testing.T) {
	comp, err := ParseTemplate("Hero", `<div style="background-color: red; padding-top: 4px"></div>`, nil)
	if err != nil {
		t.Fatalf("Expected no parse error, got %v", err)
	}

	out, err := Compile(comp, nil)

	if err != nil {
		t.Fatalf("Expected no compile error, got %v", err)
	}
	if !strings.Contains(out.Source, `widget_set_style_string(self->refs.widget_0, "background-color", "red");`) {
		t.Errorf("Expected the first style pair, got:\n%s", out.Source)
	}
	if !strings.Contains(out.Source, `widget_set_style_string(self->refs.widget_0, "padding-top", "4px");`) {
		t.Errorf("Expected the second style pair, got:\n%s", out.Source)
	}
}

// TestSplitBindings verifies template text slices into literal and symbolic
// children in order.
func TestSplitBindings(t *testing.T) {
	tr := trace.New("Demo")
	count, _ := tr.State("count", 0)
	states := map[string]*trace.Binding{"count": count}

	parts := splitBindings("Count: {count}!", states)

	if len(parts) != 3 {
		t.Fatalf("Expected 3 parts, got %d: %v", len(parts), parts)
	}
	if parts[0] != "Count: " || parts[2] != "!" {
		t.Errorf("Unexpected literal parts: %v", parts)
	}
	if parts[1] != count {
		t.Error("Expected the middle part to be the state binding")
	}
}
