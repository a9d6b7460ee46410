// Package compare implements ComparisonBuilder, the final stage that turns
// a set of aligned sections and rows into the pure ComparisonResult the
// core exposes to callers: page maps and navigation anchors for the UI,
// flattened rows with globally unique keys, and a merged coverage figure
// (spec.md §4.8).
package compare
