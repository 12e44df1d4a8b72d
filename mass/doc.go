// Package mass implements the sparse, unnormalized mass vector of a body of evidence.
//
// A Store maps proposition indexes to real-valued masses. Absent indexes
// read as 0 and nothing forces the stored values to sum to 1; the
// normalizing constant is computed on demand. Setting a mass to 0 drops the
// entry, so every stored index is a focal element.
package mass
