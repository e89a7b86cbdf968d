package export

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/gorewood/doctags/internal/symbol"
)

// ErrDuplicateUnit is returned for a unit whose path was already written in
// the same pass, for example two nested types with the same simple name.
var ErrDuplicateUnit = errors.New("unit path already written in this pass")

// Config holds the export settings.
type Config struct {
	// OutputDirectory is the root of the mirrored namespace tree. Empty means
	// the current directory.
	OutputDirectory string
	// IncludeCaptions adds an "== <tag>" heading to every block.
	IncludeCaptions bool
	// Collisions is the duplicate tag policy. Empty means CollisionAllow.
	Collisions CollisionPolicy
}

// Exporter writes a symbol tree as tagged units.
type Exporter struct {
	cfg Config
	log *logrus.Logger
}

// Option configures an Exporter.
type Option func(*Exporter)

// WithLogger sets the logger for per-unit progress and failures.
func WithLogger(logger *logrus.Logger) Option {
	return func(e *Exporter) {
		if logger != nil {
			e.log = logger
		}
	}
}

// New creates an Exporter. Without WithLogger, log output is discarded.
func New(cfg Config, opts ...Option) *Exporter {
	if cfg.Collisions == "" {
		cfg.Collisions = CollisionAllow
	}
	silent := logrus.New()
	silent.SetOutput(io.Discard)

	e := &Exporter{cfg: cfg, log: silent}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Config returns the settings the exporter was built with.
func (e *Exporter) Config() Config {
	return e.cfg
}

// UnitResult is the outcome of writing one unit.
type UnitResult struct {
	Name     string      `json:"name"`
	Kind     symbol.Kind `json:"kind"`
	Path     string      `json:"path"`
	Tags     int         `json:"tags"`
	Inferred bool        `json:"inferred,omitempty"`
	Err      error       `json:"-"`
	Error    string      `json:"error,omitempty"`
}

// Report summarizes one export pass.
type Report struct {
	Shape     string       `json:"shape"`
	OutputDir string       `json:"output_dir"`
	Units     []UnitResult `json:"units"`
}

// OK reports whether every unit was written.
func (r *Report) OK() bool {
	return len(r.Failed()) == 0
}

// Failed returns the units that could not be written.
func (r *Report) Failed() []UnitResult {
	var failed []UnitResult
	for _, u := range r.Units {
		if u.Err != nil {
			failed = append(failed, u)
		}
	}
	return failed
}

// Written returns the number of units written successfully.
func (r *Report) Written() int {
	return len(r.Units) - len(r.Failed())
}

// Export plans every unit of tree and writes them one at a time. It always
// attempts every unit; failures are logged and recorded in the report.
func (e *Exporter) Export(tree symbol.Tree) *Report {
	units := e.Plan(tree)
	report := &Report{
		Shape:     tree.Shape().String(),
		OutputDir: e.cfg.OutputDirectory,
		Units:     make([]UnitResult, 0, len(units)),
	}

	written := make(map[string]bool, len(units))
	for _, unit := range units {
		report.Units = append(report.Units, e.emit(unit, written))
	}

	e.log.WithFields(logrus.Fields{
		"units":  len(report.Units),
		"failed": len(report.Failed()),
	}).Info("export finished")
	return report
}

// Plan walks tree and returns its units in write order without touching the
// file system.
func (e *Exporter) Plan(tree symbol.Tree) []*Unit {
	p := &planner{tree: tree, seen: make(map[string]bool), explicit: make(map[string]bool)}

	containers, leaves := symbol.Partition(tree.Roots())
	for _, leaf := range leaves {
		e.log.WithField("symbol", leaf.Name).Debug("skipping member handed over without an enclosing type")
	}
	p.visit(containers)

	if tree.Shape() == symbol.ShapeFlat {
		for _, ns := range p.packages {
			if p.explicit[ns.Name] {
				continue
			}
			p.units = append(p.units, newPackageUnit(ns, nil, true))
		}
	}
	return p.units
}

// planner collects units depth first. Types record their namespace in
// packages, which keeps first-seen order and holds each namespace once.
type planner struct {
	tree     symbol.Tree
	units    []*Unit
	packages []symbol.Namespace
	seen     map[string]bool
	explicit map[string]bool
}

func (p *planner) visit(nodes []symbol.Node) {
	for _, node := range nodes {
		switch node.Kind {
		case symbol.KindType:
			p.units = append(p.units, newTypeUnit(node, p.tree.Leaves(node)))
			p.recordPackage(node.Namespace)
		case symbol.KindPackage:
			p.units = append(p.units, newPackageUnit(node.Namespace, p.tree.Leaves(node), false))
			p.explicit[node.Namespace.Name] = true
		default:
			continue
		}
		p.visit(p.tree.Containers(node))
	}
}

func (p *planner) recordPackage(ns symbol.Namespace) {
	if p.seen[ns.Name] {
		return
	}
	p.seen[ns.Name] = true
	p.packages = append(p.packages, ns)
}

// Preview resolves every unit of tree the way Export would, including
// paths, duplicate paths and the collision policy, without writing. Units
// Export would refuse carry their error.
func (e *Exporter) Preview(tree symbol.Tree) *Report {
	units := e.Plan(tree)
	report := &Report{
		Shape:     tree.Shape().String(),
		OutputDir: e.cfg.OutputDirectory,
		Units:     make([]UnitResult, 0, len(units)),
	}

	claimed := make(map[string]bool, len(units))
	for _, unit := range units {
		result, _ := e.resolve(unit, claimed)
		if result.Err != nil {
			result.Error = result.Err.Error()
		}
		report.Units = append(report.Units, result)
	}
	return report
}

// resolve computes where unit goes and which blocks it holds after the
// collision policy. A path is claimed only when the unit can be written.
func (e *Exporter) resolve(unit *Unit, claimed map[string]bool) (UnitResult, []TagBlock) {
	result := UnitResult{Name: unit.Name, Kind: unit.Kind, Inferred: unit.Inferred}

	rel, err := unit.RelPath()
	if err != nil {
		result.Err = err
		return result, nil
	}
	path := filepath.Join(e.cfg.OutputDirectory, rel)
	result.Path = path

	if claimed[path] {
		result.Err = fmt.Errorf("%w: %s", ErrDuplicateUnit, path)
		return result, nil
	}

	blocks, err := resolveCollisions(unit.Blocks, e.cfg.Collisions)
	if err != nil {
		result.Err = err
		return result, nil
	}
	result.Tags = len(blocks)
	claimed[path] = true
	return result, blocks
}

// emit writes one unit. Nothing that goes wrong here escapes as a panic or
// stops the pass.
func (e *Exporter) emit(unit *Unit, written map[string]bool) (result UnitResult) {
	result = UnitResult{Name: unit.Name, Kind: unit.Kind, Inferred: unit.Inferred}
	logger := e.log.WithField("unit", unit.Name)

	defer func() {
		if r := recover(); r != nil {
			result.Err = fmt.Errorf("export panicked: %v", r)
		}
		if result.Err != nil {
			result.Error = result.Err.Error()
			logger.WithField("path", result.Path).WithError(result.Err).Error("unit not exported")
		}
	}()

	if dups := Duplicates(unit.Blocks); len(dups) > 0 && e.cfg.Collisions == CollisionAllow {
		logger.WithField("tags", dups).Warn("unit has duplicate tags")
	}
	result, blocks := e.resolve(unit, written)
	if result.Err != nil {
		return result
	}

	result.Err = writeUnitFile(result.Path, func(w io.Writer) error {
		return writeBlocks(w, unit, blocks, e.cfg.IncludeCaptions)
	})
	if result.Err == nil {
		logger.WithFields(logrus.Fields{"path": result.Path, "tags": result.Tags}).Debug("unit exported")
	}
	return result
}
