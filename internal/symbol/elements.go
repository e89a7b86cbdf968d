package symbol

import "strings"

// ElementTree is the generic host shape: a forest of elements that each
// enclose further elements.
type ElementTree struct {
	Elements []*Element `yaml:"elements" json:"elements"`
}

// Element is one node of the generic shape.
type Element struct {
	Name string `yaml:"name" json:"name"`
	// QualifiedName is the full package name for package elements. When
	// empty, Name is used.
	QualifiedName string `yaml:"qualified_name" json:"qualified_name,omitempty"`
	Kind          Kind   `yaml:"kind"           json:"kind"`
	// Package names the namespace of a root type that has no enclosing
	// package element.
	Package  string     `yaml:"package"  json:"package,omitempty"`
	Comment  string     `yaml:"comment"  json:"comment,omitempty"`
	Position *Position  `yaml:"position" json:"position,omitempty"`
	Enclosed []*Element `yaml:"enclosed" json:"enclosed,omitempty"`
}

// ElementTreeAdapter adapts an ElementTree to Tree.
type ElementTreeAdapter struct {
	tree *ElementTree
}

// NewElementTree creates a Tree over the generic shape. A nil tree is empty.
func NewElementTree(tree *ElementTree) *ElementTreeAdapter {
	if tree == nil {
		tree = &ElementTree{}
	}
	return &ElementTreeAdapter{tree: tree}
}

// Shape implements Tree.
func (a *ElementTreeAdapter) Shape() Shape {
	return ShapeElements
}

// Roots returns the root elements in input order.
func (a *ElementTreeAdapter) Roots() []Node {
	nodes := make([]Node, 0, len(a.tree.Elements))
	for _, e := range a.tree.Elements {
		if e == nil {
			continue
		}
		nodes = append(nodes, elementNode(e, NewNamespace(e.Package)))
	}
	return nodes
}

// Containers returns the enclosed packages and types of n.
func (a *ElementTreeAdapter) Containers(n Node) []Node {
	containers, _ := a.children(n)
	return containers
}

// Leaves returns the enclosed elements of n that are not packages or types.
func (a *ElementTreeAdapter) Leaves(n Node) []Node {
	_, leaves := a.children(n)
	return leaves
}

func (a *ElementTreeAdapter) children(n Node) (containers, leaves []Node) {
	e, ok := n.ref.(*Element)
	if !ok {
		return nil, nil
	}
	nodes := make([]Node, 0, len(e.Enclosed))
	for _, child := range e.Enclosed {
		if child == nil {
			continue
		}
		nodes = append(nodes, elementNode(child, n.Namespace))
	}
	return Partition(nodes)
}

// nestedPackageName qualifies the simple name of a package element by the
// package that encloses it. A name already carrying the parent prefix is kept.
func nestedPackageName(parent, name string) string {
	if parent == "" {
		return name
	}
	sep := "."
	if strings.Contains(parent, "/") {
		sep = "/"
	}
	if strings.HasPrefix(name, parent+sep) {
		return name
	}
	return parent + sep + name
}

// elementNode converts an element whose enclosing namespace is ns. A package
// element is its own namespace. Elements of unrecognized kind keep their name
// but lose their comment.
func elementNode(e *Element, ns Namespace) Node {
	node := Node{
		Name:      e.Name,
		Comment:   e.Comment,
		Kind:      e.Kind,
		Namespace: ns,
		Position:  e.Position,
		ref:       e,
	}

	switch e.Kind {
	case KindPackage:
		name := e.QualifiedName
		if name == "" {
			name = nestedPackageName(ns.Name, e.Name)
		}
		node.Name = name
		node.Namespace = NewNamespace(name)
		node.Namespace.Comment = e.Comment
		node.Namespace.Position = e.Position
	case KindOther:
		node.Comment = ""
	}
	return node
}
