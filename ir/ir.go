// Package ir defines the small expression/statement representation that the
// tracing layer accumulates and the emitter renders into C source text.
// Identifiers are late-bound through the Symbol interface so that renaming a
// binding (state promotion) rewrites every statement that references it
// without walking the statement lists.
package ir

import (
	"fmt"
	"strconv"
	"strings"
)

// Symbol is anything that can resolve to a C identifier or member path.
type Symbol interface {
	CName() string
}

// Expr is a renderable C expression.
type Expr interface {
	Emit() string
}

// Stmt is a renderable C statement, emitted without indentation and with a
// trailing semicolon where the statement form requires one.
type Stmt interface {
	EmitStmt() string
}

// IntLit is an integer literal.
type IntLit int64

func (l IntLit) Emit() string { return strconv.FormatInt(int64(l), 10) }

// FloatLit is a floating point literal.
type FloatLit float64

func (l FloatLit) Emit() string {
	s := strconv.FormatFloat(float64(l), 'g', -1, 64)
	// A bare integer mantissa would change the C expression's type.
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}

// BoolLit is a boolean literal, rendered with <stdbool.h> spelling.
type BoolLit bool

func (l BoolLit) Emit() string {
	if l {
		return "true"
	}
	return "false"
}

// StrLit is a string literal, rendered as a quoted C string.
type StrLit string

func (l StrLit) Emit() string { return Quote(string(l)) }

// Null is the toolkit's null sentinel.
type Null struct{}

func (Null) Emit() string { return "NULL" }

// Sym is a late-bound identifier reference.
type Sym struct {
	S Symbol
}

func (s Sym) Emit() string { return s.S.CName() }

// Raw is pre-rendered C expression text.
type Raw string

func (r Raw) Emit() string { return string(r) }

// Call is a function call expression.
type Call struct {
	Fn   string
	Args []Expr
}

func (c Call) Emit() string {
	args := make([]string, len(c.Args))
	for i, a := range c.Args {
		args[i] = a.Emit()
	}
	return fmt.Sprintf("%s(%s)", c.Fn, strings.Join(args, ", "))
}

// Construct is a constructor call following the <Type>_create convention.
type Construct struct {
	TypeTag string
	Args    []Expr
}

func (c Construct) Emit() string {
	return Call{Fn: c.TypeTag + "_create", Args: c.Args}.Emit()
}

// Index is an array subscript expression.
type Index struct {
	X Expr
	I Expr
}

func (x Index) Emit() string { return fmt.Sprintf("%s[%s]", x.X.Emit(), x.I.Emit()) }

// ExprStmt wraps an expression as a statement.
type ExprStmt struct {
	X Expr
}

func (s ExprStmt) EmitStmt() string { return s.X.Emit() + ";" }

// VarDecl declares a local variable. Sym carries the (possibly renamed)
// identifier; Array > 0 declares a fixed-size array instead of a scalar.
type VarDecl struct {
	Type  string
	Sym   Symbol
	Array int
	Init  Expr
}

func (d VarDecl) EmitStmt() string {
	var b strings.Builder
	b.WriteString(d.Type)
	if !strings.HasSuffix(d.Type, "*") {
		b.WriteString(" ")
	}
	b.WriteString(d.Sym.CName())
	if d.Array > 0 {
		fmt.Fprintf(&b, "[%d]", d.Array)
	}
	if d.Init != nil {
		b.WriteString(" = ")
		b.WriteString(d.Init.Emit())
	}
	b.WriteString(";")
	return b.String()
}

// Assign is a plain assignment statement.
type Assign struct {
	LHS Expr
	RHS Expr
}

func (s Assign) EmitStmt() string {
	return fmt.Sprintf("%s = %s;", s.LHS.Emit(), s.RHS.Emit())
}

// AddAssign is a compound += statement.
type AddAssign struct {
	LHS Expr
	RHS Expr
}

func (s AddAssign) EmitStmt() string {
	return fmt.Sprintf("%s += %s;", s.LHS.Emit(), s.RHS.Emit())
}

// SelfContained reports whether an expression references no symbols or
// pre-rendered identifiers, so it can be evaluated outside the function whose
// trace recorded it.
func SelfContained(e Expr) bool {
	switch x := e.(type) {
	case IntLit, FloatLit, BoolLit, StrLit, Null:
		return true
	case Call:
		for _, a := range x.Args {
			if !SelfContained(a) {
				return false
			}
		}
		return true
	case Construct:
		for _, a := range x.Args {
			if !SelfContained(a) {
				return false
			}
		}
		return true
	case Index:
		return SelfContained(x.X) && SelfContained(x.I)
	default:
		// Sym and Raw may name locals of the recording function.
		return false
	}
}

// Quote renders s as a C string literal.
func Quote(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\t':
			b.WriteString(`\t`)
		case '\r':
			b.WriteString(`\r`)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}
