package teal

// Lattice is the value a FieldAnalysis tracks per basic block: a bounded
// meet-semilattice with an explicit Top (no information yet) and Bottom
// (contradictory/unreachable) element.
type Lattice interface {
	IsTop() bool
	IsBottom() bool
	Meet(other Lattice) Lattice
	Equal(other Lattice) bool
}

// FieldAnalysis is one forward, path-sensitive dataflow pass over a
// program's block graph. Implementations are registered in
// AllFieldAnalyses(); GroupIndices always runs first, so later analyses can
// read its result out of Program's stored results if they need to.
type FieldAnalysis interface {
	Name() string
	Top() Lattice
	Entry() Lattice
	// Transfer computes the analysis's out-state for block b given the
	// meet of its (possibly branch-refined) predecessor out-states.
	Transfer(b *BasicBlock, in Lattice, driver *Driver) Lattice
	// Refine narrows a predecessor's out-state using one edge's branch
	// fact, when the analysis's cond expression matches something the
	// fact talks about. Implementations that don't use path sensitivity
	// can return in unchanged.
	Refine(fact BranchFact, in Lattice) Lattice
}

// Run executes one FieldAnalysis to a fixed point over p's block graph,
// block-granularity, forward, path-sensitive: a predecessor's contribution
// to a successor's in-state is first passed through every BranchFact on
// that edge before being met with the other predecessors' contributions.
func (d *Driver) Run(p *Program, a FieldAnalysis) map[int]Lattice {
	state := make(map[int]Lattice, len(p.Blocks))
	for _, b := range p.Blocks {
		state[b.Idx] = a.Top()
	}
	if len(p.Blocks) > 0 {
		state[p.Blocks[0].Idx] = a.Entry()
	}

	for changed := true; changed; {
		changed = false
		for _, b := range p.Blocks {
			in := d.predecessorMeet(b, a, state)
			out := a.Transfer(b, in, d)
			if !out.Equal(state[b.Idx]) {
				state[b.Idx] = out
				changed = true
			}
		}
	}
	return state
}

func (d *Driver) predecessorMeet(b *BasicBlock, a FieldAnalysis, state map[int]Lattice) Lattice {
	if len(b.Prev) == 0 {
		return state[b.Idx]
	}
	var acc Lattice
	for i, pred := range b.Prev {
		contrib := state[pred.Idx]
		for _, fact := range d.BranchFacts(pred) {
			if fact.Successor == b {
				contrib = a.Refine(fact, contrib)
			}
		}
		if i == 0 {
			acc = contrib
			continue
		}
		acc = acc.Meet(contrib)
	}
	return acc
}

// runDataflow runs every registered FieldAnalysis over p and returns each
// one's per-block result keyed by analysis name. GroupIndices runs first so
// analyses that consult its output (via p.results["group-indices"]) during
// Transfer can rely on it being complete — FieldAnalysis.Transfer only
// receives already-computed predecessor state for the analysis itself, so
// any cross-analysis read happens by closing over p in the analysis value,
// not through the FieldAnalysis interface.
func runDataflow(p *Program) map[string]map[int]Lattice {
	results := make(map[string]map[int]Lattice)
	p.results = results
	for _, a := range AllFieldAnalyses(p) {
		results[a.Name()] = p.driver.Run(p, a)
	}
	return results
}
