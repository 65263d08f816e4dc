// Package drawer renders a parsed build timeline as a visual artifact.
// It contains no parsing or layout logic: every drawer consumes the
// result structure produced by the waterfall package as-is.
package drawer
