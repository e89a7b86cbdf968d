package symbol

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Kind classifies a node in the symbol tree.
type Kind int

// Node kinds. Package and Type are containers; the rest are leaves.
const (
	KindOther Kind = iota
	KindPackage
	KindType
	KindField
	KindConstructor
	KindMethod
	KindEnumConstant
	KindAnnotationElement
)

// kindNames maps host kind spellings to kinds. Several hosts name the same
// kind differently, so aliases are accepted.
var kindNames = map[string]Kind{
	"package":            KindPackage,
	"type":               KindType,
	"class":              KindType,
	"interface":          KindType,
	"enum":               KindType,
	"record":             KindType,
	"annotation":         KindType,
	"annotation_type":    KindType,
	"struct":             KindType,
	"field":              KindField,
	"record_component":   KindField,
	"variable":           KindField,
	"constructor":        KindConstructor,
	"method":             KindMethod,
	"function":           KindMethod,
	"enum_constant":      KindEnumConstant,
	"constant":           KindEnumConstant,
	"annotation_element": KindAnnotationElement,
}

// ParseKind maps a host kind name to a Kind. Matching ignores case and treats
// '-' like '_'. Unrecognized names map to KindOther.
func ParseKind(name string) Kind {
	key := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "-", "_")
	return kindNames[key]
}

// String returns the canonical name of the kind.
func (k Kind) String() string {
	switch k {
	case KindPackage:
		return "package"
	case KindType:
		return "type"
	case KindField:
		return "field"
	case KindConstructor:
		return "constructor"
	case KindMethod:
		return "method"
	case KindEnumConstant:
		return "enum_constant"
	case KindAnnotationElement:
		return "annotation_element"
	default:
		return "other"
	}
}

// IsContainer reports whether nodes of this kind become their own export unit.
func (k Kind) IsContainer() bool {
	return k == KindPackage || k == KindType
}

// UnmarshalYAML decodes a kind name. Unknown names decode to KindOther
// instead of failing, so one odd element does not reject a whole dump.
func (k *Kind) UnmarshalYAML(value *yaml.Node) error {
	var name string
	if err := value.Decode(&name); err != nil {
		return fmt.Errorf("decoding kind: %w", err)
	}
	*k = ParseKind(name)
	return nil
}

// MarshalYAML encodes the canonical kind name.
func (k Kind) MarshalYAML() (any, error) {
	return k.String(), nil
}

// MarshalText encodes the canonical kind name for JSON.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText decodes a kind name from JSON with the same rules as
// UnmarshalYAML.
func (k *Kind) UnmarshalText(text []byte) error {
	*k = ParseKind(string(text))
	return nil
}

// Position is the source location of a node.
type Position struct {
	File string `yaml:"file" json:"file"`
	Line int    `yaml:"line" json:"line"`
}

// String formats the position as file:line.
func (p *Position) String() string {
	if p == nil {
		return "<synthesized>"
	}
	return fmt.Sprintf("%s:%d", p.File, p.Line)
}

// Namespace is the enclosing package of a node.
type Namespace struct {
	// Name is the qualified name as the host spells it ("a.b.c" or
	// "example.com/a/b"). It identifies the namespace.
	Name string
	// Segments are the directory components derived from Name.
	Segments []string
	// Comment and Position are set when the host documents the package.
	Comment  string
	Position *Position
}

// NewNamespace splits a qualified name into directory segments. Names that
// contain '/' are import paths and split on '/'; all others split on '.'.
// The empty name is the root namespace and has no segments.
func NewNamespace(name string) Namespace {
	name = strings.TrimSpace(name)
	if name == "" {
		return Namespace{}
	}
	sep := "."
	if strings.Contains(name, "/") {
		sep = "/"
	}
	var segments []string
	for _, seg := range strings.Split(name, sep) {
		if seg != "" {
			segments = append(segments, seg)
		}
	}
	return Namespace{Name: name, Segments: segments}
}

// Node is one symbol in the tree, normalized across host shapes.
type Node struct {
	Name      string
	Comment   string
	Kind      Kind
	Namespace Namespace
	Position  *Position

	// ref points back into the host shape that produced the node.
	ref any
}

// Synthesized reports whether the host generated the node without a source
// position.
func (n Node) Synthesized() bool {
	return n.Position == nil
}

// Shape identifies which host hierarchy a Tree adapts.
type Shape int

// Supported host shapes.
const (
	ShapeFlat Shape = iota
	ShapeElements
)

// String returns the shape name used in flags and reports.
func (s Shape) String() string {
	if s == ShapeElements {
		return "elements"
	}
	return "flat"
}

// Tree is the uniform traversal view over a host symbol hierarchy.
type Tree interface {
	// Shape reports the host shape behind the tree.
	Shape() Shape
	// Roots returns the nodes the host handed over, in host order.
	Roots() []Node
	// Containers returns the children of n that are exported as their own
	// units.
	Containers(n Node) []Node
	// Leaves returns the children of n that are emitted inline in n's unit.
	Leaves(n Node) []Node
}

// Partition splits nodes into containers and leaves, preserving order.
func Partition(nodes []Node) (containers, leaves []Node) {
	for _, n := range nodes {
		if n.Kind.IsContainer() {
			containers = append(containers, n)
		} else {
			leaves = append(leaves, n)
		}
	}
	return containers, leaves
}
