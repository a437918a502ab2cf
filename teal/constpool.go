package teal

// resolveConstantPools populates Program.IntConstants/ByteConstants when the
// program defines exactly one IntcBlock/BytecBlock and it sits in the
// program's main entry block (block 0). Any other shape — zero pools,
// more than one, or a pool defined inside a subroutine or a non-entry
// block — leaves the corresponding Has*Constants flag false: the constant
// table can't be statically pinned down. No analysis in this package reads
// the resolved pools; the stack AST builder does not resolve intc/bytec
// references.
func resolveConstantPools(p *Program) {
	if len(p.Blocks) == 0 {
		return
	}
	entry := p.Blocks[0]

	var intBlocks []*IntcBlock
	var byteBlocks []*BytecBlock
	for _, ins := range p.Instructions {
		switch v := ins.(type) {
		case *IntcBlock:
			intBlocks = append(intBlocks, v)
		case *BytecBlock:
			byteBlocks = append(byteBlocks, v)
		}
	}

	if len(intBlocks) == 1 && intBlocks[0].Block == entry {
		p.IntConstants = intBlocks[0].Constants
		p.HasIntConstants = true
	}
	if len(byteBlocks) == 1 && byteBlocks[0].Block == entry {
		p.ByteConstants = byteBlocks[0].Constants
		p.HasByteConstants = true
	}
}
