// Package export writes symbol documentation as tagged AsciiDoc regions.
//
// Every type and every package in a [symbol.Tree] becomes one export unit: a
// file under the output directory whose path mirrors the namespace. Inside the
// file, each documented symbol is wrapped in a tag block that a document
// assembler can include by name:
//
//	// tag::Car[]
//	A car.
//	// end::Car[]
//	// tag::wheels[]
//	Number of wheels.
//	// end::wheels[]
//
// With [Config.IncludeCaptions] each body is preceded by an "== <tag>" heading.
//
// # File Layout
//
// For namespace a.b.c:
//
//	<output>/a/b/c/T.adoc            one per type
//	<output>/a/b/c/package-info.adoc one per package
//
// Package units start with the qualified package name on a line of its own.
//
// # Passes
//
// [Exporter.Export] first plans every unit in memory, then writes them one at
// a time. Each file is opened, written, flushed, and closed before the next
// one is touched. A failing unit is logged and recorded in the [Report]; the
// remaining units are still written.
//
// # Tag Collisions
//
// Overloaded methods, or a field and method sharing a name, produce the same
// tag twice in one unit. [CollisionPolicy] decides what happens: keep the
// duplicates (the default), suffix them, merge their bodies, or fail the unit.
package export
