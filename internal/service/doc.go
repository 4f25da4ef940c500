// Package service wires the pipeline together: workspace loading and
// filtering, clang-tidy invocation fan-out, and result aggregation. The
// cobra commands in cmd/coltidy are thin wrappers over this package.
package service
