// Package resource bounds the cost of multisource fusion.
//
// Each fusion step materializes one float64 per proposition, 2^n values for
// an n-label frame. A Controller caps how many fusion steps run at once and
// how many bytes of those buffers may be held in total. One Controller can
// be shared by many BOEs.
package resource
