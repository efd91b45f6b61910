// Package pipeline runs one srindex invocation: build the requested index,
// optionally verify it, render it to stdout, and report a summary.
package pipeline
