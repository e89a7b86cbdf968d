package export

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/gorewood/doctags/internal/symbol"
)

const (
	// Extension is appended to every unit file name.
	Extension = ".adoc"
	// PackageUnitName is the base name of package units.
	PackageUnitName = "package-info"
)

// ErrUnsafePath is returned for a unit whose name or namespace would escape
// the output directory.
var ErrUnsafePath = errors.New("unsafe unit path")

// TagBlock is one named, delimited region of a unit.
type TagBlock struct {
	Tag  string `json:"tag"`
	Body string `json:"body"`
}

// Unit is one output file.
type Unit struct {
	Name      string      `json:"name"`
	Kind      symbol.Kind `json:"kind"`
	Namespace string      `json:"namespace"`
	// Segments and File locate the unit below the output directory.
	Segments []string `json:"-"`
	File     string   `json:"file"`
	// Header is written before any block of a package unit.
	Header   string     `json:"header,omitempty"`
	Blocks   []TagBlock `json:"blocks"`
	Inferred bool       `json:"inferred,omitempty"`
}

// RelPath returns the unit path relative to the output directory.
func (u *Unit) RelPath() (string, error) {
	parts := make([]string, 0, len(u.Segments)+1)
	for _, seg := range u.Segments {
		if err := checkPathElement(seg); err != nil {
			return "", fmt.Errorf("namespace %q: %w", u.Namespace, err)
		}
		parts = append(parts, seg)
	}
	base := strings.TrimSuffix(u.File, Extension)
	if err := checkPathElement(base); err != nil {
		return "", fmt.Errorf("unit %q: %w", u.Name, err)
	}
	parts = append(parts, u.File)
	return filepath.Join(parts...), nil
}

// checkPathElement rejects names that are not a single path element.
func checkPathElement(name string) error {
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("%w: %q", ErrUnsafePath, name)
	}
	return nil
}

// newTypeUnit plans the unit of a type node. The type's own block is written
// only when the host knows where the type was declared.
func newTypeUnit(node symbol.Node, leaves []symbol.Node) *Unit {
	unit := &Unit{
		Name:      qualify(node.Namespace.Name, node.Name),
		Kind:      symbol.KindType,
		Namespace: node.Namespace.Name,
		Segments:  node.Namespace.Segments,
		File:      node.Name + Extension,
	}
	if !node.Synthesized() {
		unit.Blocks = append(unit.Blocks, TagBlock{Tag: node.Name, Body: CleanComment(node.Comment)})
	}
	unit.Blocks = appendLeafBlocks(unit.Blocks, leaves)
	return unit
}

// newPackageUnit plans the unit of a namespace. The namespace comment is
// written only when the host positioned the package documentation.
func newPackageUnit(ns symbol.Namespace, leaves []symbol.Node, inferred bool) *Unit {
	unit := &Unit{
		Name:      ns.Name,
		Kind:      symbol.KindPackage,
		Namespace: ns.Name,
		Segments:  ns.Segments,
		File:      PackageUnitName + Extension,
		Header:    ns.Name,
		Inferred:  inferred,
	}
	if ns.Position != nil {
		unit.Blocks = append(unit.Blocks, TagBlock{Tag: ns.Name, Body: CleanComment(ns.Comment)})
	}
	unit.Blocks = appendLeafBlocks(unit.Blocks, leaves)
	return unit
}

func appendLeafBlocks(blocks []TagBlock, leaves []symbol.Node) []TagBlock {
	for _, leaf := range leaves {
		blocks = append(blocks, TagBlock{Tag: leaf.Name, Body: CleanComment(leaf.Comment)})
	}
	return blocks
}

func qualify(namespace, name string) string {
	if namespace == "" {
		return name
	}
	return namespace + "." + name
}

// writeBlocks renders the header line and blocks of a unit.
func writeBlocks(w io.Writer, unit *Unit, blocks []TagBlock, captions bool) error {
	if unit.Kind == symbol.KindPackage {
		if _, err := fmt.Fprintln(w, unit.Header); err != nil {
			return err
		}
	}
	for _, block := range blocks {
		if err := writeBlock(w, block, captions); err != nil {
			return err
		}
	}
	return nil
}

// writeBlock writes one tag block:
//
//	// tag::<tag>[]
//	== <tag>        (captions only)
//	<body>
//	// end::<tag>[]
func writeBlock(w io.Writer, block TagBlock, captions bool) error {
	var b strings.Builder
	b.WriteString("// tag::" + block.Tag + "[]\n")
	if captions {
		b.WriteString("== " + block.Tag + "\n")
	}
	b.WriteString(block.Body + "\n")
	b.WriteString("// end::" + block.Tag + "[]\n")
	_, err := io.WriteString(w, b.String())
	return err
}

// FormatUnit renders a unit exactly as it would be written to disk, after
// applying the collision policy.
func FormatUnit(unit *Unit, cfg Config) (string, error) {
	blocks, err := resolveCollisions(unit.Blocks, cfg.Collisions)
	if err != nil {
		return "", err
	}
	var b strings.Builder
	if err := writeBlocks(&b, unit, blocks, cfg.IncludeCaptions); err != nil {
		return "", err
	}
	return b.String(), nil
}

// writeUnitFile creates path and its directories, then hands a buffered
// writer to render. The buffer is flushed and the file closed on every
// return path; a failed render leaves whatever was flushed on disk.
func writeUnitFile(path string, render func(w io.Writer) error) (err error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating directory for %s: %w", path, err)
	}

	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("closing %s: %w", path, closeErr)
		}
	}()

	writer := bufio.NewWriter(file)
	defer func() {
		if flushErr := writer.Flush(); flushErr != nil && err == nil {
			err = fmt.Errorf("flushing %s: %w", path, flushErr)
		}
	}()

	if err := render(writer); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
