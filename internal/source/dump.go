// Package source builds symbol trees from the inputs doctags accepts: YAML
// or JSON dumps of either host shape, and Go source directories.
package source

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/gorewood/doctags/internal/symbol"
)

// ErrUnknownShape is returned when a dump has neither a classes nor an
// elements list.
var ErrUnknownShape = errors.New("dump has neither 'classes' nor 'elements'")

// shapeKeys reads just enough of a dump to tell the shapes apart.
type shapeKeys struct {
	Classes  yaml.Node `yaml:"classes"`
	Elements yaml.Node `yaml:"elements"`
}

// DetectShape reports which host shape a dump uses. JSON is read as YAML.
func DetectShape(data []byte) (symbol.Shape, error) {
	var keys shapeKeys
	if err := yaml.Unmarshal(data, &keys); err != nil {
		return 0, fmt.Errorf("parsing dump: %w", err)
	}
	hasClasses := keys.Classes.Kind != 0
	hasElements := keys.Elements.Kind != 0
	switch {
	case hasClasses && hasElements:
		return 0, errors.New("dump has both 'classes' and 'elements'; pick one shape")
	case hasClasses:
		return symbol.ShapeFlat, nil
	case hasElements:
		return symbol.ShapeElements, nil
	default:
		return 0, ErrUnknownShape
	}
}

// DecodeFlat parses a flat dump.
func DecodeFlat(data []byte) (*symbol.FlatRoot, error) {
	var root symbol.FlatRoot
	if err := decodeStrict(data, &root); err != nil {
		return nil, fmt.Errorf("parsing flat dump: %w", err)
	}
	return &root, nil
}

// DecodeElements parses an element tree dump.
func DecodeElements(data []byte) (*symbol.ElementTree, error) {
	var tree symbol.ElementTree
	if err := decodeStrict(data, &tree); err != nil {
		return nil, fmt.Errorf("parsing element dump: %w", err)
	}
	return &tree, nil
}

// decodeStrict rejects unknown keys so misspelled member lists do not
// silently drop documentation. An empty document decodes to the zero value.
func decodeStrict(data []byte, out any) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(out); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// Decode parses a dump of either shape into a Tree.
func Decode(data []byte) (symbol.Tree, error) {
	shape, err := DetectShape(data)
	if err != nil {
		return nil, err
	}
	if shape == symbol.ShapeFlat {
		root, err := DecodeFlat(data)
		if err != nil {
			return nil, err
		}
		return symbol.NewFlatTree(root), nil
	}
	tree, err := DecodeElements(data)
	if err != nil {
		return nil, err
	}
	return symbol.NewElementTree(tree), nil
}

// LoadDump reads and decodes a dump file.
func LoadDump(path string) (symbol.Tree, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading dump %s: %w", path, err)
	}
	tree, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return tree, nil
}
