// Package bitmap provides a sorted set of proposition indexes.
//
// IndexSet wraps a 32-bit Roaring bitmap. Mass stores use it to remember
// which indexes carry mass so that focal elements are always visited in
// ascending index order, independent of Go's randomized map iteration.
// Deterministic order keeps floating-point sums reproducible across runs.
package bitmap
