package teal

// BasicBlock owns an ordered, non-empty sequence of instructions (entry
// first, exit last). Only the entry instruction may be a jump target; only
// the exit instruction may branch, terminate, call or return.
type BasicBlock struct {
	Idx          int
	Instructions []Instruction
	Next         []*BasicBlock
	Prev         []*BasicBlock
	Subroutine   *Subroutine
	Program      *Program
	Cost         int
	Comments     []string
}

func newBasicBlock() *BasicBlock {
	return &BasicBlock{}
}

func (b *BasicBlock) addInstruction(ins Instruction) {
	b.Instructions = append(b.Instructions, ins)
	b.Cost += opCost(ins.Mnemonic())
}

func (b *BasicBlock) Entry() Instruction {
	return b.Instructions[0]
}

func (b *BasicBlock) Exit() Instruction {
	return b.Instructions[len(b.Instructions)-1]
}

func (b *BasicBlock) addNext(n *BasicBlock) { b.Next = append(b.Next, n) }
func (b *BasicBlock) addPrev(n *BasicBlock) { b.Prev = append(b.Prev, n) }

func (b *BasicBlock) hasNext(n *BasicBlock) bool {
	for _, x := range b.Next {
		if x == n {
			return true
		}
	}
	return false
}

// opCostTable assigns an approximate execution cost per opcode, mirroring
// TEAL's own notion that some opcodes (hashing, signature verification,
// box access) are materially more expensive than a stack push; itxn_submit
// is listed at 0. Opcodes not listed cost 1.
var opCostTable = map[string]int{
	"sha256":          35,
	"keccak256":       130,
	"sha512_256":      45,
	"ed25519verify":   1900,
	"ecdsa_verify":    1700,
	"itxn_submit":     0, // priced by the submitted inner transaction, not the opcode
	"box_get":         5,
	"box_put":         5,
	"box_del":         5,
	"box_len":         5,
}

func opCost(mnemonic string) int {
	if c, ok := opCostTable[mnemonic]; ok {
		return c
	}
	return 1
}
