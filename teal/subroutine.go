package teal

// Subroutine is the set of blocks reachable from a labeled entry that is
// the target of at least one Callsub, plus the synthetic __main__
// subroutine that owns the program's entry block and anything left
// unclaimed.
type Subroutine struct {
	Name      string
	Entry     *BasicBlock
	Blocks    []*BasicBlock
	CallSites []*BasicBlock
	Program   *Program
}

const mainSubroutineName = "__main__"

// reachableBlocks performs a naive DFS from entry through successor edges,
// without stopping at Retsub. This over-approximates a subroutine's block
// set to include blocks only reachable through return edges; see the
// "Known over-approximation" design note. The walk uses an explicit stack,
// not recursion, matching the discovery algorithm it is grounded on.
func reachableBlocks(entry *BasicBlock) []*BasicBlock {
	var out []*BasicBlock
	seen := map[*BasicBlock]bool{}
	stack := []*BasicBlock{entry}
	for len(stack) > 0 {
		b := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if seen[b] {
			continue
		}
		seen[b] = true
		out = append(out, b)
		for _, n := range b.Next {
			if !seen[n] {
				stack = append(stack, n)
			}
		}
	}
	return out
}

// discoverSubroutines partitions the program's blocks into subroutines.
// callSubs maps a subroutine's label name to every Callsub instruction that
// targets it. labels maps every label name to its Label instruction.
func discoverSubroutines(p *Program, labels map[string]*Label, callSubs map[string][]*Callsub) map[string]*Subroutine {
	subroutines := make(map[string]*Subroutine, len(callSubs))

	for name, calls := range callSubs {
		label := labels[name]
		entry := label.Block
		entry.Comments = append(entry.Comments, "Subroutine "+name)

		blocks := reachableBlocks(entry)
		sub := &Subroutine{Name: name, Entry: entry, Blocks: blocks, Program: p}

		callSites := make([]*BasicBlock, 0, len(calls))
		for _, call := range calls {
			callSites = append(callSites, call.Block)
			call.Callee = sub
		}
		sub.CallSites = callSites

		for _, b := range blocks {
			b.Subroutine = sub
		}
		subroutines[name] = sub
	}

	main := &Subroutine{Name: mainSubroutineName, Program: p}
	if len(p.Blocks) > 0 {
		main.Entry = p.Blocks[0]
		main.Blocks = reachableBlocks(p.Blocks[0])
		for _, b := range main.Blocks {
			b.Subroutine = main
		}
	}

	// Blocks unreachable from both block 0 and every subroutine entry
	// (e.g. dead code) are still assigned to __main__, per the parser's
	// "no block left without a subroutine" invariant.
	for _, b := range p.Blocks {
		if b.Subroutine == nil {
			b.Subroutine = main
			main.Blocks = append(main.Blocks, b)
		}
	}

	p.Main = main
	return subroutines
}
