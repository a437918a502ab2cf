package teal

import "testing"

// Parsing the same source twice must produce the same analysis results:
// the dataflow framework has no hidden non-determinism (map iteration
// order, goroutine scheduling) leaking into its fixed point.
func TestDataflowIdempotence(t *testing.T) {
	source := `#pragma version 6
gtxn 0 Sender
pop
gtxn 1 Receiver
pop
int 1
return
`
	p1 := mustParse(t, source)
	p2 := mustParse(t, source)

	r1, ok1 := p1.Findings(GroupIndices.Name())
	r2, ok2 := p2.Findings(GroupIndices.Name())
	if !ok1 || !ok2 {
		t.Fatalf("group-indices result missing: ok1=%v ok2=%v", ok1, ok2)
	}
	if len(r1) != len(r2) {
		t.Fatalf("result sizes differ: %d vs %d", len(r1), len(r2))
	}
	for idx, l1 := range r1 {
		l2, ok := r2[idx]
		if !ok || !l1.Equal(l2) {
			t.Fatalf("block %d result differs between runs", idx)
		}
	}
}

// GroupIndices narrows the possible values of this transaction's own
// position within its group along a branch guarded by "txn GroupIndex ==
// K": the edge taken when the comparison holds sees GroupIndex pinned to
// K, the same way a FieldConstraintAnalysis narrows any other field.
func TestGroupIndicesNarrowedByEqualityGuard(t *testing.T) {
	p := mustParse(t, `#pragma version 6
txn GroupIndex
int 0
==
bnz first
int 0
return
first:
int 1
return
`)

	results, ok := p.Findings(GroupIndices.Name())
	if !ok {
		t.Fatalf("group-indices analysis did not run")
	}

	var guarded *BasicBlock
	for _, b := range p.Blocks {
		if _, isLabel := b.Entry().(*Label); isLabel {
			guarded = b
		}
	}
	if guarded == nil {
		t.Fatalf("could not find the block entered through the equality-guarded edge")
	}

	lattice, ok := results[guarded.Idx].(*IntSetLattice)
	if !ok {
		t.Fatalf("result for block %d is %T, want *IntSetLattice", guarded.Idx, results[guarded.Idx])
	}
	if lattice.IsTop() || lattice.IsBottom() {
		t.Fatalf("lattice = %+v, want a concrete {0} set", lattice)
	}
	values := lattice.Values()
	if len(values) != 1 || values[0] != 0 {
		t.Errorf("Values() = %v, want [0]", values)
	}
}
