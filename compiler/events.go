package compiler

import (
	"fmt"
	"reflect"

	"github.com/vcrobe/guic/element"
	"github.com/vcrobe/guic/emitter"
	"github.com/vcrobe/guic/trace"
)

// compileEvents lowers the deferred event props of one element. Each handler
// gets a deterministic name synthesized from the node's tag, the event name,
// and its ordinal position; its body is traced exactly once into a dedicated
// context. Registering the identical handler function again reuses the
// previously generated name instead of re-tracing. A string-valued handler
// binds a pre-existing native function supplied by the caller.
func (w *walker) compileEvents(node *emitter.Node, el *element.Element) {
	cc := w.t.Component()
	for _, a := range el.Attrs {
		if !isEventProp(a.Key) {
			continue
		}
		ev := eventName(a.Key)
		ref := w.ensureRef(node)

		switch h := a.Val.(type) {
		case string:
			cc.Handlers = append(cc.Handlers, &trace.EventHandler{
				TargetRef: ref.Name,
				Event:     ev,
				Extern:    h,
			})
		case func():
			id := reflect.ValueOf(h).Pointer()
			if name, ok := w.memo[id]; ok {
				cc.Handlers = append(cc.Handlers, &trace.EventHandler{
					TargetRef: ref.Name,
					Event:     ev,
					Name:      name,
				})
				continue
			}
			name := fmt.Sprintf("on_%s_%s_%d", node.Tag, ev, w.traced)
			w.traced++
			ctx := w.t.Trace(name, h)
			w.memo[id] = name
			cc.Handlers = append(cc.Handlers, &trace.EventHandler{
				TargetRef: ref.Name,
				Event:     ev,
				Name:      name,
				Ctx:       ctx,
			})
		default:
			w.fail(trace.TypeError, "unsupported handler of type %T for %s on <%s>", a.Val, a.Key, node.Tag)
		}
	}
}
