package symbol

import "strings"

// FlatRoot is the flat host shape: every type is listed at the root and
// exposes its members through separate lists.
type FlatRoot struct {
	Classes  []*ClassDoc   `yaml:"classes"  json:"classes"`
	Packages []*PackageDoc `yaml:"packages" json:"packages,omitempty"`
}

// PackageDoc documents a package of the flat shape. Packages are not roots;
// they supply the comment for a namespace named by a class.
type PackageDoc struct {
	Name     string    `yaml:"name"     json:"name"`
	Comment  string    `yaml:"comment"  json:"comment,omitempty"`
	Position *Position `yaml:"position" json:"position,omitempty"`
}

// ClassDoc is a type of the flat shape.
type ClassDoc struct {
	Name     string    `yaml:"name"     json:"name"`
	Package  string    `yaml:"package"  json:"package"`
	Kind     string    `yaml:"kind"     json:"kind,omitempty"`
	Comment  string    `yaml:"comment"  json:"comment,omitempty"`
	Position *Position `yaml:"position" json:"position,omitempty"`

	Fields        []*MemberDoc `yaml:"fields"         json:"fields,omitempty"`
	Constructors  []*MemberDoc `yaml:"constructors"   json:"constructors,omitempty"`
	Methods       []*MemberDoc `yaml:"methods"        json:"methods,omitempty"`
	EnumConstants []*MemberDoc `yaml:"enum_constants" json:"enum_constants,omitempty"`
	Elements      []*MemberDoc `yaml:"elements"       json:"elements,omitempty"`
}

// IsAnnotation reports whether the class is an annotation type. Only
// annotation types expose their elements.
func (c *ClassDoc) IsAnnotation() bool {
	switch strings.ToLower(c.Kind) {
	case "annotation", "annotation_type", "@interface":
		return true
	}
	return false
}

// MemberDoc is a field, constructor, method, enum constant, or annotation
// element of a ClassDoc.
type MemberDoc struct {
	Name     string    `yaml:"name"     json:"name"`
	Comment  string    `yaml:"comment"  json:"comment,omitempty"`
	Position *Position `yaml:"position" json:"position,omitempty"`
}

// FlatTree adapts a FlatRoot to Tree.
type FlatTree struct {
	root     *FlatRoot
	packages map[string]*PackageDoc
}

// NewFlatTree creates a Tree over the flat shape. A nil root is an empty tree.
func NewFlatTree(root *FlatRoot) *FlatTree {
	if root == nil {
		root = &FlatRoot{}
	}
	packages := make(map[string]*PackageDoc, len(root.Packages))
	for _, pkg := range root.Packages {
		if pkg == nil {
			continue
		}
		if _, seen := packages[pkg.Name]; !seen {
			packages[pkg.Name] = pkg
		}
	}
	return &FlatTree{root: root, packages: packages}
}

// Shape implements Tree.
func (t *FlatTree) Shape() Shape {
	return ShapeFlat
}

// Roots returns one type node per class, in input order.
func (t *FlatTree) Roots() []Node {
	nodes := make([]Node, 0, len(t.root.Classes))
	for _, class := range t.root.Classes {
		if class == nil {
			continue
		}
		nodes = append(nodes, Node{
			Name:      class.Name,
			Comment:   class.Comment,
			Kind:      KindType,
			Namespace: t.containingPackage(class),
			Position:  class.Position,
			ref:       class,
		})
	}
	return nodes
}

// Containers implements Tree. Nested classes of the flat shape are listed as
// roots, so a class never has container children.
func (t *FlatTree) Containers(_ Node) []Node {
	return nil
}

// Leaves returns the members of a class node: fields, constructors, methods,
// enum constants, then annotation elements.
func (t *FlatTree) Leaves(n Node) []Node {
	class, ok := n.ref.(*ClassDoc)
	if !ok {
		return nil
	}

	var nodes []Node
	nodes = appendMembers(nodes, class.Fields, KindField, n.Namespace)
	nodes = appendMembers(nodes, class.Constructors, KindConstructor, n.Namespace)
	nodes = appendMembers(nodes, class.Methods, KindMethod, n.Namespace)
	nodes = appendMembers(nodes, class.EnumConstants, KindEnumConstant, n.Namespace)
	if class.IsAnnotation() {
		nodes = appendMembers(nodes, class.Elements, KindAnnotationElement, n.Namespace)
	}
	return nodes
}

// containingPackage resolves the namespace of a class, attaching the package
// comment when the root documents that package.
func (t *FlatTree) containingPackage(class *ClassDoc) Namespace {
	ns := NewNamespace(class.Package)
	if pkg, ok := t.packages[class.Package]; ok {
		ns.Comment = pkg.Comment
		ns.Position = pkg.Position
	}
	return ns
}

func appendMembers(nodes []Node, members []*MemberDoc, kind Kind, ns Namespace) []Node {
	for _, m := range members {
		if m == nil {
			continue
		}
		nodes = append(nodes, Node{
			Name:      m.Name,
			Comment:   m.Comment,
			Kind:      kind,
			Namespace: ns,
			Position:  m.Position,
			ref:       m,
		})
	}
	return nodes
}
