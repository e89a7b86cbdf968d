// Package symbol models the documentation symbol tree handed to the exporter.
//
// Hosts describe their symbols in one of two shapes, and this package hides
// the difference behind the [Tree] interface.
//
// # Flat Root
//
// A [FlatRoot] lists every type directly. Each [ClassDoc] carries separate
// member lists and names its containing package:
//
//	classes:
//	  - name: Car
//	    package: vehicles
//	    comment: A car.
//	    position: {file: Car.java, line: 12}
//	    fields:
//	      - name: wheels
//	        comment: Number of wheels.
//
// [NewFlatTree] adapts it. Members are always returned in the order fields,
// constructors, methods, enum constants, annotation elements.
//
// # Element Tree
//
// An [ElementTree] is a homogeneous tree where each [Element] has a kind and
// a list of enclosed elements:
//
//	elements:
//	  - name: vehicles
//	    kind: package
//	    enclosed:
//	      - name: Car
//	        kind: class
//	        enclosed:
//	          - {name: wheels, kind: field}
//
// [NewElementTree] adapts it. Package and type kinds become containers and
// are exported as their own units; everything else is a leaf.
//
// # Positions
//
// A nil [Position] marks a node the host synthesized (an implicit default
// constructor, for example). The exporter writes no header block for such
// nodes.
package symbol
