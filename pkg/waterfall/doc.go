// Package waterfall turns a container-build log into a structured
// timeline of build steps suitable for Gantt-style rendering.
//
// The package understands two log dialects: the concurrent `#N ...`
// output of BuildKit and the sequential `Step N/M : ...` output of the
// classic docker builder. A parse runs a fixed pipeline: dialect
// detection, dialect-specific step extraction, timing reconciliation,
// timeline assembly, row layout, and bottleneck detection. Each stage
// consumes only the previous stage's output.
//
// Every parse is a pure function of its input text plus an optional
// dialect hint. There is no shared state between invocations, so the
// package is safe to call repeatedly and concurrently.
package waterfall
