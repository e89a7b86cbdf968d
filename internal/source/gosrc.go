package source

import (
	"fmt"
	"go/ast"
	"go/doc"
	"go/parser"
	"go/token"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"
	"golang.org/x/mod/modfile"
	"golang.org/x/sync/errgroup"

	"github.com/gorewood/doctags/internal/symbol"
)

// GoOptions controls how Go packages are read.
type GoOptions struct {
	// Unexported includes unexported declarations.
	Unexported bool
	// Logger receives skipped-file and parse diagnostics. Nil discards them.
	Logger *logrus.Logger
	// Cache reuses packages whose files have not changed since an earlier
	// scan. Nil parses every package.
	Cache *PackageCache
	// Workers bounds how many packages are parsed at once. Zero means
	// GOMAXPROCS.
	Workers int
}

// ScanGo walks root and returns one package element per Go package found,
// in directory order. Test files and directories named testdata or vendor or
// starting with '.' or '_' are skipped, as the go tool does.
func ScanGo(root string, opts GoOptions) (*symbol.ElementTree, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("reading source root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("source root %s is not a directory", root)
	}

	s := &goScanner{root: root, opts: opts, modulePath: modulePath(root)}
	if s.opts.Logger == nil {
		s.opts.Logger = logrus.New()
		s.opts.Logger.SetOutput(io.Discard)
	}
	if s.opts.Workers <= 0 {
		s.opts.Workers = runtime.GOMAXPROCS(0)
	}

	dirs, err := packageDirs(root)
	if err != nil {
		return nil, err
	}

	// Packages are parsed concurrently; each writes only its own slot, so
	// the tree keeps directory order.
	elements := make([]*symbol.Element, len(dirs))
	var g errgroup.Group
	g.SetLimit(s.opts.Workers)
	for i, dir := range dirs {
		g.Go(func() error {
			pkg, err := s.scanDir(dir)
			if err != nil {
				return err
			}
			elements[i] = pkg
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	tree := &symbol.ElementTree{}
	for _, pkg := range elements {
		if pkg != nil {
			tree.Elements = append(tree.Elements, pkg)
		}
	}
	return tree, nil
}

// packageDirs lists root and the directories below it that may hold
// packages, in walk order.
func packageDirs(root string) ([]string, error) {
	var dirs []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && skipDir(d.Name()) {
			return filepath.SkipDir
		}
		dirs = append(dirs, path)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dirs, nil
}

func skipDir(name string) bool {
	return name == "testdata" || name == "vendor" || strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_")
}

// modulePath reads the module path from root/go.mod, or "" without one.
func modulePath(root string) string {
	data, err := os.ReadFile(filepath.Join(root, "go.mod"))
	if err != nil {
		return ""
	}
	return modfile.ModulePath(data)
}

type goScanner struct {
	root       string
	modulePath string
	opts       GoOptions
}

// pkgReader converts the files of one package. Each has its own file set so
// packages can be read concurrently.
type pkgReader struct {
	*goScanner
	fset *token.FileSet
}

// scanDir parses the package in dir. It returns nil when dir holds no
// non-test Go files.
func (s *goScanner) scanDir(dir string) (*symbol.Element, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", dir, err)
	}

	var names []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".go") || strings.HasSuffix(name, "_test.go") {
			continue
		}
		names = append(names, name)
	}
	if len(names) == 0 {
		return nil, nil
	}

	var fingerprint string
	if s.opts.Cache != nil {
		fingerprint = s.fingerprint(dir, entries)
		if pkg, ok := s.opts.Cache.get(dir, fingerprint); ok {
			s.opts.Logger.WithField("dir", dir).Debug("package unchanged, reusing parse")
			return pkg, nil
		}
	}

	r := &pkgReader{goScanner: s, fset: token.NewFileSet()}
	byPackage := make(map[string][]*ast.File)
	for _, name := range names {
		file, err := parser.ParseFile(r.fset, filepath.Join(dir, name), nil, parser.ParseComments)
		if err != nil {
			return nil, fmt.Errorf("parsing %s: %w", filepath.Join(dir, name), err)
		}
		byPackage[file.Name.Name] = append(byPackage[file.Name.Name], file)
	}

	pkg, err := r.packageElement(dir, byPackage)
	if err != nil {
		return nil, err
	}
	if s.opts.Cache != nil {
		s.opts.Cache.put(dir, fingerprint, pkg)
	}
	return pkg, nil
}

// fingerprint identifies the state of the Go files in dir together with
// the options that change how they are read.
func (s *goScanner) fingerprint(dir string, entries []fs.DirEntry) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s|%t", s.importPath(dir, ""), s.opts.Unexported)
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".go") || strings.HasSuffix(name, "_test.go") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			// Unreadable metadata never matches a cached entry.
			return ""
		}
		fmt.Fprintf(&b, "|%s:%d:%d", name, info.Size(), info.ModTime().UnixNano())
	}
	return b.String()
}

func (s *pkgReader) packageElement(dir string, byPackage map[string][]*ast.File) (*symbol.Element, error) {
	pkgName := choosePackage(byPackage, filepath.Base(dir))
	for other := range byPackage {
		if other != pkgName {
			s.opts.Logger.WithFields(logrus.Fields{"dir": dir, "package": other}).Warn("skipping files of a second package")
		}
	}
	files := byPackage[pkgName]

	importPath := s.importPath(dir, pkgName)
	var mode doc.Mode
	if s.opts.Unexported {
		mode |= doc.AllDecls
	}
	pkg, err := doc.NewFromFiles(s.fset, files, importPath, mode)
	if err != nil {
		return nil, fmt.Errorf("reading docs of %s: %w", importPath, err)
	}

	element := &symbol.Element{
		Name:          pkg.Name,
		QualifiedName: importPath,
		Kind:          symbol.KindPackage,
		Comment:       pkg.Doc,
		Position:      s.packagePosition(files),
	}
	for _, t := range pkg.Types {
		element.Enclosed = append(element.Enclosed, s.typeElement(t))
	}
	element.Enclosed = append(element.Enclosed, s.valueElements(pkg.Consts, symbol.KindEnumConstant)...)
	element.Enclosed = append(element.Enclosed, s.valueElements(pkg.Vars, symbol.KindField)...)
	for _, f := range pkg.Funcs {
		element.Enclosed = append(element.Enclosed, s.funcElement(f, symbol.KindMethod))
	}
	return element, nil
}

// choosePackage picks the package of a directory: the one named like the
// directory, else the one with the most files, ties broken by name.
func choosePackage(byPackage map[string][]*ast.File, dirName string) string {
	if _, ok := byPackage[dirName]; ok {
		return dirName
	}
	names := make([]string, 0, len(byPackage))
	for name := range byPackage {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if len(byPackage[names[i]]) != len(byPackage[names[j]]) {
			return len(byPackage[names[i]]) > len(byPackage[names[j]])
		}
		return names[i] < names[j]
	})
	return names[0]
}

// importPath derives the import path of dir from the module path. Without a
// go.mod, the slash-separated path relative to the root is used, and the
// root itself is named after its package.
func (s *goScanner) importPath(dir, pkgName string) string {
	rel, err := filepath.Rel(s.root, dir)
	if err != nil || rel == "." {
		rel = ""
	}
	rel = filepath.ToSlash(rel)
	switch {
	case s.modulePath != "" && rel == "":
		return s.modulePath
	case s.modulePath != "":
		return s.modulePath + "/" + rel
	case rel == "":
		return pkgName
	default:
		return rel
	}
}

// packagePosition prefers the file that carries the package comment.
func (s *pkgReader) packagePosition(files []*ast.File) *symbol.Position {
	sort.Slice(files, func(i, j int) bool {
		return s.fset.File(files[i].Pos()).Name() < s.fset.File(files[j].Pos()).Name()
	})
	for _, f := range files {
		if f.Doc != nil {
			return s.position(f.Package)
		}
	}
	return s.position(files[0].Package)
}

func (s *pkgReader) position(pos token.Pos) *symbol.Position {
	if !pos.IsValid() {
		return nil
	}
	p := s.fset.Position(pos)
	file := p.Filename
	if rel, err := filepath.Rel(s.root, file); err == nil {
		file = filepath.ToSlash(rel)
	}
	return &symbol.Position{File: file, Line: p.Line}
}

// typeElement maps a Go type to a type element. Its members follow the
// order fields, constructors, methods, constants, variables.
func (s *pkgReader) typeElement(t *doc.Type) *symbol.Element {
	element := &symbol.Element{
		Name:     t.Name,
		Kind:     symbol.KindType,
		Comment:  t.Doc,
		Position: s.position(t.Decl.Pos()),
	}

	if spec := findTypeSpec(t); spec != nil {
		element.Position = s.position(spec.Name.Pos())
		element.Enclosed = append(element.Enclosed, s.memberElements(spec)...)
	}
	for _, f := range t.Funcs {
		element.Enclosed = append(element.Enclosed, s.funcElement(f, symbol.KindConstructor))
	}
	for _, m := range t.Methods {
		element.Enclosed = append(element.Enclosed, s.funcElement(m, symbol.KindMethod))
	}
	element.Enclosed = append(element.Enclosed, s.valueElements(t.Consts, symbol.KindEnumConstant)...)
	element.Enclosed = append(element.Enclosed, s.valueElements(t.Vars, symbol.KindField)...)
	return element
}

func findTypeSpec(t *doc.Type) *ast.TypeSpec {
	for _, spec := range t.Decl.Specs {
		if ts, ok := spec.(*ast.TypeSpec); ok && ts.Name.Name == t.Name {
			return ts
		}
	}
	return nil
}

// memberElements lists struct fields and interface methods.
func (s *pkgReader) memberElements(spec *ast.TypeSpec) []*symbol.Element {
	var list *ast.FieldList
	kind := symbol.KindField
	switch typ := spec.Type.(type) {
	case *ast.StructType:
		list = typ.Fields
	case *ast.InterfaceType:
		list = typ.Methods
		kind = symbol.KindMethod
	default:
		return nil
	}
	if list == nil {
		return nil
	}

	var elements []*symbol.Element
	for _, field := range list.List {
		comment := fieldComment(field)
		for _, name := range fieldNames(field) {
			if !s.opts.Unexported && !ast.IsExported(name.Name) {
				continue
			}
			memberKind := kind
			if kind == symbol.KindMethod {
				if _, isFunc := field.Type.(*ast.FuncType); !isFunc {
					// Embedded interface or type constraint.
					memberKind = symbol.KindField
				}
			}
			elements = append(elements, &symbol.Element{
				Name:     name.Name,
				Kind:     memberKind,
				Comment:  comment,
				Position: s.position(name.Pos()),
			})
		}
	}
	return elements
}

// fieldNames returns the declared names of a field, or the type name of an
// embedded field.
func fieldNames(field *ast.Field) []*ast.Ident {
	if len(field.Names) > 0 {
		return field.Names
	}
	if ident := embeddedIdent(field.Type); ident != nil {
		return []*ast.Ident{ident}
	}
	return nil
}

func embeddedIdent(expr ast.Expr) *ast.Ident {
	switch e := expr.(type) {
	case *ast.Ident:
		return e
	case *ast.StarExpr:
		return embeddedIdent(e.X)
	case *ast.SelectorExpr:
		return e.Sel
	case *ast.IndexExpr:
		return embeddedIdent(e.X)
	case *ast.IndexListExpr:
		return embeddedIdent(e.X)
	}
	return nil
}

func fieldComment(field *ast.Field) string {
	if field.Doc != nil {
		return field.Doc.Text()
	}
	if field.Comment != nil {
		return field.Comment.Text()
	}
	return ""
}

func (s *pkgReader) funcElement(f *doc.Func, kind symbol.Kind) *symbol.Element {
	return &symbol.Element{
		Name:     f.Name,
		Kind:     kind,
		Comment:  f.Doc,
		Position: s.position(f.Decl.Name.Pos()),
	}
}

// valueElements lists every name of const or var groups. A spec with its own
// comment uses it; otherwise the group comment applies.
func (s *pkgReader) valueElements(values []*doc.Value, kind symbol.Kind) []*symbol.Element {
	var elements []*symbol.Element
	for _, v := range values {
		for _, spec := range v.Decl.Specs {
			vs, ok := spec.(*ast.ValueSpec)
			if !ok {
				continue
			}
			comment := v.Doc
			if vs.Doc != nil {
				comment = vs.Doc.Text()
			} else if vs.Comment != nil {
				comment = vs.Comment.Text()
			}
			for _, name := range vs.Names {
				if name.Name == "_" || (!s.opts.Unexported && !ast.IsExported(name.Name)) {
					continue
				}
				elements = append(elements, &symbol.Element{
					Name:     name.Name,
					Kind:     kind,
					Comment:  comment,
					Position: s.position(name.Pos()),
				})
			}
		}
	}
	return elements
}
