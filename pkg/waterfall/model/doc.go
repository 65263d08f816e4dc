// Package model provides the data structures for the waterfall package.
// It defines the build step, the parse result shared with rendering
// collaborators, and the warnings accumulated during a parse.
package model
