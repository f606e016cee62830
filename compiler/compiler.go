// Package compiler turns a declarative component into native C source. The
// component's render function is invoked exactly once with its props under a
// fresh tracer; the returned element tree is walked into an output node tree
// while every traced operation accumulates statements, and the emitter
// renders the result. A compile either fully succeeds or fails at the first
// error; there is no partial output.
package compiler

import (
	"github.com/vcrobe/guic/element"
	"github.com/vcrobe/guic/emitter"
	"github.com/vcrobe/guic/trace"
)

// Options holds compiler-wide options passed from CLI flags and project
// configuration.
type Options struct {
	DevMode bool              // verbose diagnostics
	Tags    map[string]string // extra tag-to-prototype mappings
	Headers []string          // extra toolkit headers to require
}

// Compile compiles one component with the given props using default options.
func Compile(comp *element.ComponentType, props element.Props) (*emitter.Output, error) {
	return CompileWithOptions(comp, props, Options{})
}

// CompileWithOptions compiles one component. Compilations are independent:
// all compiler state lives in the tracer created here, so separate
// components may be compiled back to back or from separate goroutines; one
// component's render logic always executes synchronously, exactly once.
func CompileWithOptions(comp *element.ComponentType, props element.Props, opts Options) (out *emitter.Output, err error) {
	defer trace.Recover(&err)

	t := trace.New(comp.Name)
	for _, h := range opts.Headers {
		t.Header(h)
	}

	root := comp.Render(t, props)
	w := &walker{
		t:        t,
		opts:     opts,
		memo:     make(map[uintptr]string),
		refCount: make(map[string]int),
	}
	w.scanRefs(root)
	node := w.compileElement(root, nil)
	cc := t.Finish()
	return emitter.Emit(cc, node), nil
}
