package ir

import (
	"testing"

	"github.com/nalgeon/be"
)

type ident string

func (s ident) CName() string { return string(s) }

func TestLiterals(t *testing.T) {
	be.Equal(t, IntLit(42).Emit(), "42")
	be.Equal(t, IntLit(-3).Emit(), "-3")
	be.Equal(t, BoolLit(true).Emit(), "true")
	be.Equal(t, BoolLit(false).Emit(), "false")
	be.Equal(t, StrLit("hi").Emit(), `"hi"`)
	be.Equal(t, Null{}.Emit(), "NULL")
}

func TestFloatLit_KeepsDoubleType(t *testing.T) {
	// A bare integer mantissa would compile to an int expression.
	be.Equal(t, FloatLit(2).Emit(), "2.0")
	be.Equal(t, FloatLit(2.5).Emit(), "2.5")
	be.Equal(t, FloatLit(1e10).Emit(), "1e+10")
}

func TestQuote(t *testing.T) {
	be.Equal(t, Quote(`say "hi"`), `"say \"hi\""`)
	be.Equal(t, Quote("a\nb\tc"), `"a\nb\tc"`)
	be.Equal(t, Quote(`back\slash`), `"back\\slash"`)
}

func TestCall(t *testing.T) {
	c := Call{Fn: "widget_set_text", Args: []Expr{Sym{S: ident("w")}, StrLit("ok")}}
	be.Equal(t, c.Emit(), `widget_set_text(w, "ok")`)
	be.Equal(t, Call{Fn: "f"}.Emit(), "f()")
}

func TestConstruct(t *testing.T) {
	c := Construct{TypeTag: "button", Args: []Expr{IntLit(1)}}
	be.Equal(t, c.Emit(), "button_create(1)")
}

func TestIndex(t *testing.T) {
	x := Index{X: Sym{S: ident("buf")}, I: IntLit(31)}
	be.Equal(t, x.Emit(), "buf[31]")
}

func TestVarDecl(t *testing.T) {
	be.Equal(t,
		VarDecl{Type: "int", Sym: ident("n"), Init: IntLit(0)}.EmitStmt(),
		"int n = 0;")
	// Pointer types carry the star; no double space.
	be.Equal(t,
		VarDecl{Type: "char *", Sym: ident("s"), Init: Call{Fn: "malloc", Args: []Expr{Sym{S: ident("len")}}}}.EmitStmt(),
		"char *s = malloc(len);")
	be.Equal(t,
		VarDecl{Type: "char", Sym: ident("buf"), Array: 32}.EmitStmt(),
		"char buf[32];")
}

func TestAssignStatements(t *testing.T) {
	be.Equal(t,
		Assign{LHS: Sym{S: ident("n")}, RHS: IntLit(3)}.EmitStmt(),
		"n = 3;")
	be.Equal(t,
		AddAssign{LHS: Sym{S: ident("len")}, RHS: Call{Fn: "strlen", Args: []Expr{Sym{S: ident("s")}}}}.EmitStmt(),
		"len += strlen(s);")
	be.Equal(t,
		ExprStmt{X: Call{Fn: "free", Args: []Expr{Sym{S: ident("s")}}}}.EmitStmt(),
		"free(s);")
}

func TestSelfContained(t *testing.T) {
	be.True(t, SelfContained(StrLit("x")))
	be.True(t, SelfContained(Call{Fn: "strdup", Args: []Expr{StrLit("x")}}))
	be.True(t, SelfContained(Construct{TypeTag: "button"}))
	be.True(t, !SelfContained(Sym{S: ident("len_0")}))
	be.True(t, !SelfContained(Call{Fn: "malloc", Args: []Expr{Sym{S: ident("len_0")}}}))
	be.True(t, !SelfContained(Raw("len_0 + 1")))
	be.True(t, !SelfContained(Construct{TypeTag: "button", Args: []Expr{Sym{S: ident("n")}}}))
}

// TestSym_LateBinding verifies a renamed symbol changes how already-built
// statements render.
func TestSym_LateBinding(t *testing.T) {
	name := ident("str_0")
	stmt := Assign{LHS: Sym{S: &name}, RHS: StrLit("x")}
	be.Equal(t, stmt.EmitStmt(), `str_0 = "x";`)

	name = "self->state.title"
	be.Equal(t, stmt.EmitStmt(), `self->state.title = "x";`)
}
