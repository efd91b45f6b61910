// Package index builds the filename -> variant-path lookup tables for the
// two super-resolution dataset layouts:
//
//   - [BuildTraining]: DIV2K-style train/valid splits with bicubic and
//     unknown-degradation LR variants whose file names carry the scale token.
//   - [BuildBenchmark]: classical SR benchmark sets where every variant keeps
//     the original file name.
//
// Only HR/original directories are listed. Every other path is synthesized
// from the layout and is not checked for existence (see package check).
// Builders keep no state between calls and may be used concurrently.
package index
