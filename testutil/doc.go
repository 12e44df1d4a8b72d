// Package testutil provides testing utilities for unsure.
//
// This package is intended for use in tests only. It generates reproducible
// random frames and mass assignments and offers comparison options for
// floating-point mass maps.
//
// # Random Evidence
//
//	rng := testutil.NewRNG(seed)
//	f := rng.Frame(4)                 // labels s0..s3
//	masses := rng.Masses(f, 5)        // 5 random focal elements
//
// # Comparing Masses
//
//	if diff := cmp.Diff(want, got, testutil.ApproxMasses(1e-9)); diff != "" {
//	    t.Errorf("masses mismatch (-want +got):\n%s", diff)
//	}
package testutil
