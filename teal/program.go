package teal

import (
	"strings"

	"golang.org/x/exp/slices"
)

// ParseOptions configures ParseTeal. The zero value is usable: default
// program version handling and the default contract name.
type ParseOptions struct {
	// ContractName labels the parsed program in detector output and in the
	// dot graph header. Optional; defaults to "contract".
	ContractName string
}

// Program is a fully parsed and analyzed TEAL source: its flat instruction
// stream, its basic-block CFG, its subroutine partition, its constant
// pools (when resolvable) and every diagnostic collected along the way.
type Program struct {
	ContractName string
	Version      int
	Mode         Mode

	Instructions []Instruction
	Blocks       []*BasicBlock
	Main         *Subroutine
	Subroutines  map[string]*Subroutine

	IntConstants     []int64
	HasIntConstants  bool
	ByteConstants    [][]byte
	HasByteConstants bool

	Diagnostics []Diagnostic

	driver  *Driver
	results map[string]map[int]Lattice
}

// ParseTeal parses and analyzes a TEAL source listing. Parsing never fails
// on version or mode mismatches; those become entries in Program.Diagnostics.
// It only returns an error for malformed instruction syntax or a structurally
// empty program.
func ParseTeal(source string, opts ParseOptions) (*Program, error) {
	name := opts.ContractName
	if name == "" {
		name = "contract"
	}

	instructions, labels, callSubs, err := parseInstructions(source)
	if err != nil {
		return nil, err
	}
	if len(instructions) == 0 {
		return nil, newParseError(0, "program contains no instructions")
	}

	linkSequential(instructions)
	if err := linkJumps(instructions, labels); err != nil {
		return nil, err
	}

	blocks := buildBasicBlocks(instructions)
	linkBlockJumps(blocks, labels)
	assignBlockIndices(blocks)

	p := &Program{
		ContractName: name,
		Instructions: instructions,
		Blocks:       blocks,
		driver:       NewDriver(),
	}
	for _, b := range blocks {
		b.Program = p
	}

	version := 1
	for _, ins := range instructions {
		if pr, ok := ins.(*Pragma); ok {
			version = pr.ProgramVersion
			break
		}
	}
	p.Version = version
	p.Mode = detectMode(instructions)
	p.Diagnostics = verifyVersion(instructions, version)

	p.Subroutines = discoverSubroutines(p, labels, callSubs)
	for _, sub := range p.Subroutines {
		sub.Program = p
	}

	resolveConstantPools(p)

	p.results = runDataflow(p)
	p.driver.Clear()

	return p, nil
}

// parseInstructions runs the lexer over every source line, tracking label
// declarations and callsub targets as it goes (pass 1).
func parseInstructions(source string) ([]Instruction, map[string]*Label, map[string][]*Callsub, error) {
	lines := strings.Split(source, "\n")
	instructions := make([]Instruction, 0, len(lines))
	labels := map[string]*Label{}
	callSubs := map[string][]*Callsub{}

	var pendingComments []string
	lineNo := 0
	for _, raw := range lines {
		lineNo++
		if trimmed := strings.TrimSpace(raw); strings.HasPrefix(trimmed, "//") {
			pendingComments = append(pendingComments, trimmed)
			continue
		}

		ins, err := parseLine(raw, lineNo-1)
		if err != nil {
			return nil, nil, nil, err
		}
		if ins == nil {
			continue
		}
		ins.Header().Line = lineNo
		if len(pendingComments) > 0 {
			ins.Header().CommentsBefore = pendingComments
			pendingComments = nil
		}
		instructions = append(instructions, ins)

		switch v := ins.(type) {
		case *Label:
			labels[v.Name] = v
		case *Callsub:
			callSubs[v.Target] = append(callSubs[v.Target], v)
		}
	}
	return instructions, labels, callSubs, nil
}

// linkSequential connects every instruction to the one immediately
// following it in source order (pass 1's fallthrough edges).
func linkSequential(instructions []Instruction) {
	for i := 0; i+1 < len(instructions); i++ {
		instructions[i].Header().addNext(instructions[i+1])
		instructions[i+1].Header().addPrev(instructions[i])
	}
}

// linkJumps adds instruction-level edges for every branch, switch and match
// to its label target (pass 2); a callsub's target is only checked to exist
// and gets no edge. Fallthrough edges added in pass 1
// are left in place; a block-construction pass later decides which survive
// as block successors.
func linkJumps(instructions []Instruction, labels map[string]*Label) error {
	resolve := func(name string) (Instruction, error) {
		l, ok := labels[name]
		if !ok {
			return nil, newCoreError("undefined label: " + name)
		}
		return l, nil
	}

	for _, ins := range instructions {
		switch v := ins.(type) {
		case *BranchUnconditional:
			t, err := resolve(v.Target)
			if err != nil {
				return err
			}
			v.Header().addNext(t)
			t.Header().addPrev(v)
		case *BranchIfZero:
			t, err := resolve(v.Target)
			if err != nil {
				return err
			}
			v.Header().addNext(t)
			t.Header().addPrev(v)
		case *BranchIfNonZero:
			t, err := resolve(v.Target)
			if err != nil {
				return err
			}
			v.Header().addNext(t)
			t.Header().addPrev(v)
		case *Switch:
			for _, name := range v.Targets {
				t, err := resolve(name)
				if err != nil {
					return err
				}
				v.Header().addNext(t)
				t.Header().addPrev(v)
			}
		case *MatchIns:
			for _, name := range v.Targets {
				t, err := resolve(name)
				if err != nil {
					return err
				}
				v.Header().addNext(t)
				t.Header().addPrev(v)
			}
		case *Callsub:
			if _, err := resolve(v.Target); err != nil {
				return err
			}
			// The call edge is realized at the subroutine level
			// (Subroutine.CallSites), not as a block successor: a
			// callsub's block still falls through to the instruction
			// after it once the callee returns.
		}
	}
	return nil
}

// isBlockTerminator reports whether ins may only appear as a block's exit
// instruction: it branches, calls, returns or terminates execution.
func isBlockTerminator(ins Instruction) bool {
	switch ins.(type) {
	case *BranchUnconditional, *BranchIfZero, *BranchIfNonZero,
		*Switch, *MatchIns, *Err, *Return, *Callsub, *Retsub:
		return true
	}
	return false
}

// buildBasicBlocks partitions the flat instruction stream into basic blocks
// (pass 3). A new block starts at instruction 0, at every Label, and at the
// instruction immediately following a terminator; a block closes at a
// terminator or at the instruction before the next block-starting point.
func buildBasicBlocks(instructions []Instruction) []*BasicBlock {
	var blocks []*BasicBlock
	cur := newBasicBlock()

	flush := func() {
		if len(cur.Instructions) > 0 {
			blocks = append(blocks, cur)
			cur = newBasicBlock()
		}
	}

	for i, ins := range instructions {
		startsNew := false
		if _, ok := ins.(*Label); ok {
			startsNew = true
		}
		if i > 0 && isBlockTerminator(instructions[i-1]) {
			startsNew = true
		}
		if startsNew {
			flush()
		}

		ins.Header().Block = cur
		cur.addInstruction(ins)

		if isBlockTerminator(ins) {
			flush()
		}
	}
	flush()
	return blocks
}

// linkBlockJumps derives block-level Next/Prev edges from each block's exit
// instruction (pass 4). Conditional branches and switch/match forms keep
// their fallthrough successor alongside their jump targets; unconditional
// branches, err, return and retsub have no fallthrough; callsub's only
// successor is its fallthrough (the call edge lives in Subroutine.CallSites).
func linkBlockJumps(blocks []*BasicBlock, labels map[string]*Label) {
	indexOf := make(map[*BasicBlock]int, len(blocks))
	for i, b := range blocks {
		indexOf[b] = i
	}
	fallthroughOf := func(b *BasicBlock) *BasicBlock {
		i := indexOf[b]
		if i+1 < len(blocks) {
			return blocks[i+1]
		}
		return nil
	}
	link := func(from, to *BasicBlock) {
		if to == nil || from.hasNext(to) {
			return
		}
		from.addNext(to)
		to.addPrev(from)
	}

	for _, b := range blocks {
		switch exit := b.Exit().(type) {
		case *BranchUnconditional:
			link(b, labels[exit.Target].Block)
		case *BranchIfZero:
			link(b, labels[exit.Target].Block)
			link(b, fallthroughOf(b))
		case *BranchIfNonZero:
			link(b, labels[exit.Target].Block)
			link(b, fallthroughOf(b))
		case *Switch:
			for _, name := range exit.Targets {
				link(b, labels[name].Block)
			}
			link(b, fallthroughOf(b))
		case *MatchIns:
			for _, name := range exit.Targets {
				link(b, labels[name].Block)
			}
			link(b, fallthroughOf(b))
		case *Callsub:
			link(b, fallthroughOf(b))
		case *Err, *Return, *Retsub:
			// terminal: no successor
		default:
			link(b, fallthroughOf(b))
		}
	}
}

// assignBlockIndices assigns Idx in entry-line order and stabilizes it by
// sorting Blocks the same way, per the "idx assigned after sorting by entry
// line number" pass.
func assignBlockIndices(blocks []*BasicBlock) {
	sortBlocksByEntryLine(blocks)
	for i, b := range blocks {
		b.Idx = i
	}
}

func sortBlocksByEntryLine(blocks []*BasicBlock) {
	slices.SortFunc(blocks, func(a, b *BasicBlock) int {
		return a.Entry().Header().Line - b.Entry().Header().Line
	})
}
