package symbol

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func names(nodes []Node) []string {
	out := make([]string, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, n.Name)
	}
	return out
}

func TestParseKind(t *testing.T) {
	tests := []struct {
		in   string
		want Kind
	}{
		{"package", KindPackage},
		{"CLASS", KindType},
		{"annotation-type", KindType},
		{"enum", KindType},
		{"field", KindField},
		{"constructor", KindConstructor},
		{"method", KindMethod},
		{"Enum_Constant", KindEnumConstant},
		{"annotation_element", KindAnnotationElement},
		{"static_init", KindOther},
		{"", KindOther},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseKind(tt.in))
		})
	}
}

func TestKind_IsContainer(t *testing.T) {
	assert.True(t, KindPackage.IsContainer())
	assert.True(t, KindType.IsContainer())
	for _, k := range []Kind{KindOther, KindField, KindConstructor, KindMethod, KindEnumConstant, KindAnnotationElement} {
		assert.False(t, k.IsContainer(), k.String())
	}
}

func TestKind_JSONRoundTrip(t *testing.T) {
	data, err := json.Marshal(Element{Name: "m", Kind: KindMethod})
	require.NoError(t, err)
	assert.Contains(t, string(data), `"kind":"method"`)

	var e Element
	require.NoError(t, json.Unmarshal([]byte(`{"name":"x","kind":"initializer"}`), &e))
	assert.Equal(t, KindOther, e.Kind)
}

func TestNewNamespace(t *testing.T) {
	tests := []struct {
		name     string
		in       string
		segments []string
	}{
		{"dotted", "a.b.c", []string{"a", "b", "c"}},
		{"import path", "example.com/x/y", []string{"example.com", "x", "y"}},
		{"single", "vehicles", []string{"vehicles"}},
		{"empty", "", nil},
		{"stray separators", "a..b.", []string{"a", "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ns := NewNamespace(tt.in)
			assert.Equal(t, tt.segments, ns.Segments)
			assert.Equal(t, tt.in, ns.Name)
		})
	}
}

func TestFlatTree_LeafOrder(t *testing.T) {
	class := &ClassDoc{
		Name:          "T",
		Package:       "a.b",
		Kind:          "annotation",
		Position:      &Position{File: "T.java", Line: 1},
		Fields:        []*MemberDoc{{Name: "f"}},
		Constructors:  []*MemberDoc{{Name: "T"}},
		Methods:       []*MemberDoc{{Name: "m1"}, {Name: "m2"}},
		EnumConstants: []*MemberDoc{{Name: "E"}},
		Elements:      []*MemberDoc{{Name: "value"}},
	}
	tree := NewFlatTree(&FlatRoot{Classes: []*ClassDoc{class}})

	roots := tree.Roots()
	require.Len(t, roots, 1)
	assert.Equal(t, KindType, roots[0].Kind)
	assert.Equal(t, []string{"a", "b"}, roots[0].Namespace.Segments)
	assert.Empty(t, tree.Containers(roots[0]))

	leaves := tree.Leaves(roots[0])
	assert.Equal(t, []string{"f", "T", "m1", "m2", "E", "value"}, names(leaves))
	assert.Equal(t, KindConstructor, leaves[1].Kind)
	assert.Equal(t, KindAnnotationElement, leaves[5].Kind)
}

func TestFlatTree_ElementsOnlyForAnnotations(t *testing.T) {
	class := &ClassDoc{
		Name:     "C",
		Kind:     "class",
		Methods:  []*MemberDoc{{Name: "run"}},
		Elements: []*MemberDoc{{Name: "ignored"}},
	}
	tree := NewFlatTree(&FlatRoot{Classes: []*ClassDoc{class}})

	assert.Equal(t, []string{"run"}, names(tree.Leaves(tree.Roots()[0])))
}

func TestFlatTree_PackageComment(t *testing.T) {
	pos := &Position{File: "package-info.java", Line: 1}
	tree := NewFlatTree(&FlatRoot{
		Classes:  []*ClassDoc{{Name: "Car", Package: "vehicles"}, {Name: "Person", Package: "people"}},
		Packages: []*PackageDoc{{Name: "vehicles", Comment: "Things that move.", Position: pos}},
	})

	roots := tree.Roots()
	require.Len(t, roots, 2)
	assert.Equal(t, "Things that move.", roots[0].Namespace.Comment)
	assert.Equal(t, pos, roots[0].Namespace.Position)
	assert.Empty(t, roots[1].Namespace.Comment)
	assert.Nil(t, roots[1].Namespace.Position)
}

func TestFlatTree_NilRoot(t *testing.T) {
	tree := NewFlatTree(nil)
	assert.Empty(t, tree.Roots())
	assert.Equal(t, ShapeFlat, tree.Shape())
}

func TestFlatTree_ForeignNode(t *testing.T) {
	tree := NewFlatTree(&FlatRoot{})
	assert.Nil(t, tree.Leaves(Node{Name: "stray"}))
}

const elementDump = `
elements:
  - name: b
    qualified_name: a.b
    kind: package
    comment: Package b.
    position: {file: package-info.java, line: 1}
    enclosed:
      - name: Outer
        kind: class
        comment: Outer type.
        position: {file: Outer.java, line: 3}
        enclosed:
          - {name: f, kind: field, comment: F}
          - name: Inner
            kind: class
            enclosed:
              - {name: run, kind: method}
          - {name: m, kind: method, comment: M}
          - {name: "<clinit>", kind: static_init, comment: should vanish}
  - name: Loose
    kind: interface
    package: x.y
`

func TestElementTree_Classification(t *testing.T) {
	var dump ElementTree
	require.NoError(t, yaml.Unmarshal([]byte(elementDump), &dump))
	tree := NewElementTree(&dump)
	assert.Equal(t, ShapeElements, tree.Shape())

	roots := tree.Roots()
	require.Len(t, roots, 2)

	pkg := roots[0]
	assert.Equal(t, KindPackage, pkg.Kind)
	assert.Equal(t, "a.b", pkg.Name)
	assert.Equal(t, []string{"a", "b"}, pkg.Namespace.Segments)
	assert.Equal(t, "Package b.", pkg.Namespace.Comment)
	assert.Empty(t, tree.Leaves(pkg))

	types := tree.Containers(pkg)
	require.Len(t, types, 1)
	outer := types[0]
	assert.Equal(t, "Outer", outer.Name)
	assert.Equal(t, "a.b", outer.Namespace.Name)

	leaves := tree.Leaves(outer)
	assert.Equal(t, []string{"f", "m", "<clinit>"}, names(leaves))
	assert.Equal(t, KindOther, leaves[2].Kind)
	assert.Empty(t, leaves[2].Comment)

	nested := tree.Containers(outer)
	require.Len(t, nested, 1)
	assert.Equal(t, "Inner", nested[0].Name)
	assert.Equal(t, "a.b", nested[0].Namespace.Name)
	assert.True(t, nested[0].Synthesized())

	loose := roots[1]
	assert.Equal(t, KindType, loose.Kind)
	assert.Equal(t, []string{"x", "y"}, loose.Namespace.Segments)
}

func TestElementTree_NestedPackages(t *testing.T) {
	tests := []struct {
		name     string
		dump     string
		wantName string
		wantSegs []string
	}{
		{
			name:     "simple names join with dots",
			dump:     "elements:\n  - {name: a, kind: package, enclosed: [{name: b, kind: package, enclosed: [{name: T, kind: class}]}]}\n",
			wantName: "a.b",
			wantSegs: []string{"a", "b"},
		},
		{
			name:     "import path parent joins with slash",
			dump:     "elements:\n  - {name: fleet, qualified_name: example.com/fleet, kind: package, enclosed: [{name: cars, kind: package, enclosed: [{name: T, kind: class}]}]}\n",
			wantName: "example.com/fleet/cars",
			wantSegs: []string{"example.com", "fleet", "cars"},
		},
		{
			name:     "already qualified child is kept",
			dump:     "elements:\n  - {name: a, kind: package, enclosed: [{name: a.b, kind: package, enclosed: [{name: T, kind: class}]}]}\n",
			wantName: "a.b",
			wantSegs: []string{"a", "b"},
		},
		{
			name:     "qualified name wins",
			dump:     "elements:\n  - {name: a, kind: package, enclosed: [{name: b, qualified_name: z.b, kind: package, enclosed: [{name: T, kind: class}]}]}\n",
			wantName: "z.b",
			wantSegs: []string{"z", "b"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var dump ElementTree
			require.NoError(t, yaml.Unmarshal([]byte(tt.dump), &dump))
			tree := NewElementTree(&dump)

			outer := tree.Roots()
			require.Len(t, outer, 1)
			inner := tree.Containers(outer[0])
			require.Len(t, inner, 1)
			assert.Equal(t, tt.wantName, inner[0].Name)
			assert.Equal(t, tt.wantSegs, inner[0].Namespace.Segments)

			types := tree.Containers(inner[0])
			require.Len(t, types, 1)
			assert.Equal(t, tt.wantSegs, types[0].Namespace.Segments)
		})
	}
}

func TestPartition(t *testing.T) {
	nodes := []Node{
		{Name: "p", Kind: KindPackage},
		{Name: "f", Kind: KindField},
		{Name: "T", Kind: KindType},
		{Name: "?", Kind: KindOther},
	}
	containers, leaves := Partition(nodes)
	assert.Equal(t, []string{"p", "T"}, names(containers))
	assert.Equal(t, []string{"f", "?"}, names(leaves))
}

func TestWalk(t *testing.T) {
	tree := NewElementTree(&ElementTree{Elements: []*Element{
		{Name: "p", Kind: KindPackage, Enclosed: []*Element{
			{Name: "T", Kind: KindType, Enclosed: []*Element{
				{Name: "Inner", Kind: KindType},
				{Name: "f", Kind: KindField},
			}},
			{Name: "helper", Kind: KindMethod},
		}},
		{Name: "stray", Kind: KindMethod},
	}})

	var visited []string
	Walk(tree, func(n Node, depth int) {
		visited = append(visited, strings.Repeat(">", depth)+n.Name)
	})
	assert.Equal(t, []string{"p", ">helper", ">T", ">>f", ">>Inner", "stray"}, visited)
}
