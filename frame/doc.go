// Package frame implements the frame of discernment and its proposition codec.
//
// A Frame is an ordered list of distinct, lower-cased labels. Every subset of
// the frame (a proposition) maps to exactly one Index: label i contributes
// bit i. Index 0 is the empty proposition and Theta() is the whole frame.
//
//	f, _ := frame.New("a", "b", "c")
//	i, _ := f.IndexOf("C", "a") // 0b101 == 5
//	labels, _ := f.PropositionOf(i) // ["a" "c"]
//
// Propositions also have a textual form used for bulk mass assignment:
//
//	frame.Format([]string{"a", "b"}) // "['a', 'b']"
//	frame.Parse("['a', 'b']")        // ["a" "b"]
//
// Parse accepts nothing but a bracketed list of quoted strings.
package frame
