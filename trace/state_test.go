package trace

import (
	"reflect"
	"testing"
)

// TestState_LiteralInitializers verifies literal initial values become the
// state field's initializer expression without emitting local statements.
func TestState_LiteralInitializers(t *testing.T) {
	// Arrange
	tr := New("Profile")

	// Act
	name, _ := tr.State("name", "Ada")
	age, _ := tr.State("age", 36)
	score, _ := tr.State("score", 9.5)
	active, _ := tr.State("active", true)
	cc := tr.Finish()

	// Assert
	if len(cc.Body) != 0 {
		t.Errorf("State declarations must not emit statements, got %v", bodyLines(&cc.Context))
	}
	if got := name.CName(); got != "self->state.name" {
		t.Errorf("Expected member path self->state.name, got %q", got)
	}
	inits := map[string]string{
		name.CName():   `strdup("Ada")`,
		age.CName():    "36",
		score.CName():  "9.5",
		active.CName(): "true",
	}
	for _, f := range cc.State {
		want := inits["self->state."+f.Name]
		if got := f.B.Initializer().Emit(); got != want {
			t.Errorf("State %q: expected initializer %q, got %q", f.Name, want, got)
		}
	}
}

// TestState_PromotionMovesLocalIntoState verifies promoting a local binding
// retracts its declaration and rewrites every recorded statement that
// referenced it to the state member path.
func TestState_PromotionMovesLocalIntoState(t *testing.T) {
	tr := New("Card")
	title := tr.String("hi")
	tr.Extern("widget_set_text").Call(tr.Extern("w"), title)

	tr.State("title", title)
	cc := tr.Finish()

	want := []string{"widget_set_text(w, self->state.title);"}
	got := bodyLines(&cc.Context)
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Expected the declaration retracted and the use rewritten.\nExpected: %v\nGot:      %v", want, got)
	}
	if len(cc.Decls) != 0 {
		t.Errorf("Expected no remaining locals, got %d", len(cc.Decls))
	}
	if got := cc.State[0].B.Initializer().Emit(); got != `strdup("hi")` {
		t.Errorf("Promotion must keep the original initializer, got %q", got)
	}
}

// TestState_PromotionKeepsDependentInitializerInPlace verifies promoting a
// binding whose initializer reads other locals (a formatted string's
// allocation) keeps the computation at its original position as an
// assignment to the state member, instead of hoisting an expression whose
// operands only exist inside the recording function.
func TestState_PromotionKeepsDependentInitializerInPlace(t *testing.T) {
	tr := New("Promo")
	s := tr.Format("Hello, ", "World")

	b, _ := tr.State("greeting", s)
	cc := tr.Finish()

	want := []string{
		"size_t len_0 = 8;",
		`len_0 += strlen("Hello, ");`,
		`len_0 += strlen("World");`,
		"free(self->state.greeting);",
		"self->state.greeting = malloc(len_0);",
		`strcpy(self->state.greeting, "Hello, ");`,
		`strcat(self->state.greeting, "World");`,
	}
	got := bodyLines(&cc.Context)
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Unexpected statements.\nExpected: %v\nGot:      %v", want, got)
	}
	// The slot starts out empty; the in-place free stays valid on re-runs.
	if init := b.Initializer(); init == nil || init.Emit() != "NULL" {
		t.Errorf("Expected a NULL state initializer, got %v", init)
	}
}

// TestState_DuplicateNameFails verifies declaring the same slot twice is a
// fatal structural error.
func TestState_DuplicateNameFails(t *testing.T) {
	tr := New("Demo")
	tr.State("count", 0)

	var err error
	func() {
		defer Recover(&err)
		tr.State("count", 1)
	}()

	cerr, ok := err.(*Error)
	if !ok || cerr.Kind != StructuralError {
		t.Fatalf("Expected a structural error, got %v", err)
	}
}

// TestSetState_EmitsMutationAndFlagsContext verifies a setter call records the
// assignment in the active context and marks it state-operating.
func TestSetState_EmitsMutationAndFlagsContext(t *testing.T) {
	tr := New("Counter")
	_, setCount := tr.State("count", 0)

	ctx := tr.Trace("on_click", func() {
		setCount(3)
	})
	tr.Finish()

	if !ctx.HasStateOp {
		t.Error("Expected the handler context to be flagged state-operating")
	}
	want := []string{"self->state.count = 3;"}
	if got := bodyLines(ctx); !reflect.DeepEqual(got, want) {
		t.Errorf("Expected %v, got %v", want, got)
	}
}

// TestSetState_StringTransfersOwnership verifies assigning a string binding
// frees the previous buffer and exempts the incoming value from scope-exit
// release.
func TestSetState_StringTransfersOwnership(t *testing.T) {
	tr := New("Form")
	_, setName := tr.State("name", "a")

	ctx := tr.Trace("on_submit", func() {
		v := tr.String("b")
		setName(v)
	})
	tr.Finish()

	want := []string{
		`char *str_0 = strdup("b");`,
		"free(self->state.name);",
		"self->state.name = str_0;",
	}
	if got := bodyLines(ctx); !reflect.DeepEqual(got, want) {
		t.Errorf("Expected %v, got %v", want, got)
	}
}

// TestSetState_KindMismatchFails verifies cross-kind assignments are fatal
// type errors.
func TestSetState_KindMismatchFails(t *testing.T) {
	tr := New("Demo")
	_, setCount := tr.State("count", 0)

	var err error
	func() {
		defer Recover(&err)
		setCount("three")
	}()

	cerr, ok := err.(*Error)
	if !ok || cerr.Kind != TypeError {
		t.Fatalf("Expected a type error, got %v", err)
	}
}

// TestRefText_ReadsTextInputValue verifies the wide-to-multibyte read
// sequence and that the resulting string is owned by the reading scope.
func TestRefText_ReadsTextInputValue(t *testing.T) {
	tr := New("Form")
	input := tr.Ref("name_input")
	input.WidgetType = "textinput"

	ctx := tr.Trace("on_submit", func() {
		input.Text()
	})
	tr.Finish()

	want := []string{
		"size_t len_0 = textinput_length(self->refs.name_input) + 1;",
		"wchar_t *wcs_0 = malloc(sizeof(wchar_t) * len_0);",
		"textinput_get_text_w(self->refs.name_input, 0, len_0, wcs_0);",
		"char *str_0 = malloc(len_0);",
		"wcstombs(str_0, wcs_0, len_0);",
		"free(wcs_0);",
		"free(str_0);",
	}
	if got := bodyLines(ctx); !reflect.DeepEqual(got, want) {
		t.Errorf("Expected %v, got %v", want, got)
	}
}

// TestRefSetText_WritesLiteralOrBinding verifies the typed write accessor.
func TestRefSetText_WritesLiteralOrBinding(t *testing.T) {
	tr := New("Form")
	input := tr.Ref("name_input")
	input.WidgetType = "textinput"

	ctx := tr.Trace("on_reset", func() {
		input.SetText("")
	})
	tr.Finish()

	want := []string{`textinput_set_text(self->refs.name_input, "");`}
	if got := bodyLines(ctx); !reflect.DeepEqual(got, want) {
		t.Errorf("Expected %v, got %v", want, got)
	}
}

// TestRefText_RequiresTextInput verifies typed accessors check the widget
// type attached to the ref.
func TestRefText_RequiresTextInput(t *testing.T) {
	tr := New("Form")
	r := tr.Ref("box")

	var err error
	func() {
		defer Recover(&err)
		r.Text()
	}()

	cerr, ok := err.(*Error)
	if !ok || cerr.Kind != TypeError {
		t.Fatalf("Expected a type error, got %v", err)
	}
}

// TestRef_DeduplicatesByName verifies repeated allocation under one name
// returns the same slot.
func TestRef_DeduplicatesByName(t *testing.T) {
	tr := New("Demo")

	a := tr.Ref("box")
	b := tr.Ref("box")
	cc := tr.Finish()

	if a != b {
		t.Error("Expected the same ref for a repeated name")
	}
	if len(cc.Refs) != 1 {
		t.Errorf("Expected 1 allocated ref, got %d", len(cc.Refs))
	}
}
