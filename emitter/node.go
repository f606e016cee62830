package emitter

// Attr is one static attribute of an output node, already rendered to its
// literal value.
type Attr struct {
	Key string
	Val string
}

// Node is one element of the output tree: the native prototype to construct,
// optional static text, static attributes in source order, an optional
// reference slot name, and child nodes. Nodes are immutable once emitted.
type Node struct {
	Tag      string
	Text     string
	Attrs    []Attr
	Ref      string
	Children []*Node
}
