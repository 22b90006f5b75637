// Package particle converts pixel buffers into "particle art" SVG documents.
//
// A conversion samples the image on two interleaved square grids, groups the
// sampled particles by exact color, merges nearby same-color particles into
// clusters, and writes one filled path per cluster. Groups are painted from
// darkest to lightest so brighter particles sit on top.
//
// # Pipeline
//
//  1. Blur (optional): separable Gaussian, see imaging.GaussianBlur
//  2. Background: mean of the four corner pixels
//  3. Sampling: primary grid from (size, size), secondary grid offset by
//     half a step; transparent and light-background pixels are skipped
//  4. Grouping: exact RGB buckets, stable-sorted by luminance
//  5. Clustering: breadth-first search over a uniform spatial hash with
//     cells of side 3·size
//  6. Emission: <circle> for lone particles, a compound arc <path> otherwise
//  7. Assembly: one <g fill="#rrggbb"> per cluster inside the <svg> root
//
// # Determinism
//
// Output depends only on the pixel buffer and the Settings. Map iteration
// is never used to order anything, so identical inputs produce
// byte-identical documents.
//
// # Concurrency
//
// Every stage is synchronous. An Engine holds only configuration and may be
// shared; buffers are owned by the single conversion that created them.
package particle
