package unsure

import (
	"testing"

	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// threshold is the tolerance the literature examples are quoted with.
const threshold = 0.1

// newBOE builds a BOE from textual masses.
func newBOE(t *testing.T, labels []string, masses map[string]float64, optFns ...Option) *BOE {
	t.Helper()
	b, err := New(labels, optFns...)
	if err != nil {
		t.Fatalf("new BOE: %v", err)
	}
	if err := b.SetMasses(masses); err != nil {
		t.Fatalf("set masses: %v", err)
	}
	return b
}
