// Package model provides the intermediate representation (IR) shared by the
// extraction and comparison pipelines: geometric primitives, the clause tree
// produced per document, and the cross-document comparison result.
//
// All types in this package are plain values computed once per pipeline
// invocation and are immutable thereafter; nothing here holds file handles,
// mutexes, or other process-wide state (see spec.md §5).
package model
