// Package unsure implements Dempster-Shafer evidence theory for Go.
//
// A BOE (body of evidence) assigns unnormalized masses to propositions, the
// subsets of a frame of discernment. Masses never need to sum to 1; every
// normalized quantity divides by the sum of stored masses on demand.
//
// # Quick Start
//
//	boe1, _ := unsure.New([]string{"a", "b"})
//	boe1.SetMass([]string{"a"}, 0.6)
//	boe1.SetMass([]string{"a", "b"}, 0.4)
//
//	boe2, _ := unsure.New([]string{"a", "b"})
//	boe2.SetMass([]string{"b"}, 0.3)
//	boe2.SetMassTheta(0.7)
//
//	k, _ := boe1.Conflict(boe2)                 // 0.18
//	pa, _ := boe1.PCR5(boe2, []string{"a"})     // 0.54
//	iv, _ := boe1.Uncertainty([]string{"a"})    // [0.6, 1]
//
// # Combination Rules
//
//   - Conjunctive / Disjunctive: product mass of focal pairs whose
//     intersection / union equals the proposition.
//   - Dempster (DCR): conjunctive form divided by 1 - K. Undefined under
//     total conflict (ErrTotalConflict).
//   - Yager: conflict moves to the whole frame.
//   - Dubois-Prade: each partial conflict moves to the union of its sources.
//   - PCR5: each partial conflict returns to its sources in proportion to
//     their masses.
//
// Every rule has a multisource variant that folds a list of BOEs into the
// receiver one at a time. The fold is order dependent.
//
// # Streaming Updates
//
// Update and UpdateStream implement the CUE rule. They are the only
// operations that modify a populated BOE; all combinations return new BOEs.
//
// # Bulk Assignment
//
// SetMasses and LoadMasses take propositions in textual form, e.g.
// "['a', 'b']". The text is read by a restricted parser that accepts only a
// list of quoted strings.
package unsure
