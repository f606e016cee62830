package trace

import "fmt"

// ErrorKind classifies fatal compile errors.
type ErrorKind int

const (
	// StructuralError marks unsupported declarative constructs.
	StructuralError ErrorKind = iota
	// TypeError marks impossible value-to-native-type coercions.
	TypeError
	// ContextError marks primitives invoked outside their required scope.
	ContextError
)

func (k ErrorKind) String() string {
	switch k {
	case StructuralError:
		return "structural error"
	case TypeError:
		return "type error"
	case ContextError:
		return "context error"
	default:
		return "error"
	}
}

// Error is a fatal compile error. Compilation aborts at the point of
// detection; there is no partial output and no recovery.
type Error struct {
	Kind ErrorKind
	Msg  string
}

func (e *Error) Error() string { return e.Msg }

// failf raises a fatal compile error. Tracing primitives run inside user
// component code, so the error travels as a panic and is recovered into an
// ordinary error at the Compile boundary. The panic unwinds through the
// deferred pops, keeping push/pop pairing intact on error exits.
func failf(kind ErrorKind, format string, args ...any) {
	panic(&Error{Kind: kind, Msg: fmt.Sprintf(format, args...)})
}

// Fail raises a fatal compile error. Exported for the compiler layers built
// on top of the tracing primitives.
func Fail(kind ErrorKind, format string, args ...any) {
	failf(kind, format, args...)
}

// Recover converts a raised compile error into *err. Use in a defer at the
// compilation boundary; unrelated panics are re-raised.
func Recover(err *error) {
	r := recover()
	if r == nil {
		return
	}
	if e, ok := r.(*Error); ok {
		*err = e
		return
	}
	panic(r)
}
