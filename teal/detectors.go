package teal

import "fmt"

func init() {
	RegisterDetector(missingFeeCheckDetector{})
	RegisterDetector(rekeyToDetector{})
}

// pathTo returns the block indices from sub's entry to b, following Prev
// edges back to the entry and reversing. It stops (possibly short of the
// entry) if a cycle or an unreached block is hit, rather than looping
// forever; Findings.Paths is a diagnostic aid, not a certified trace.
func pathTo(sub *Subroutine, b *BasicBlock) []int {
	seen := map[int]bool{}
	var rev []int
	cur := b
	for cur != nil && !seen[cur.Idx] {
		seen[cur.Idx] = true
		rev = append(rev, cur.Idx)
		if cur == sub.Entry || len(cur.Prev) == 0 {
			break
		}
		cur = cur.Prev[0]
	}
	out := make([]int, len(rev))
	for i := range rev {
		out[i] = rev[len(rev)-1-i]
	}
	return out
}

// referencesField reports whether any instruction in blocks reads the given
// transaction field, directly via Txn or via Gtxn.
func referencesField(blocks []*BasicBlock, kind TxnFieldKind) bool {
	for _, b := range blocks {
		for _, ins := range b.Instructions {
			switch v := ins.(type) {
			case *Txn:
				if v.Field.Kind == kind {
					return true
				}
			case *Gtxn:
				if v.Field.Kind == kind {
					return true
				}
			}
		}
	}
	return false
}

// missingFeeCheckDetector flags a stateless (signature-mode) program that
// never inspects txn Fee: such a program approves any fee the spender sets,
// letting a malicious relayer drain the signer through fee inflation.
// Grounded on tealer's fee-check detector family.
type missingFeeCheckDetector struct{}

func (missingFeeCheckDetector) Name() string { return "missing-fee-check" }
func (missingFeeCheckDetector) Description() string {
	return "flags signature-mode programs that never constrain txn Fee"
}

func (missingFeeCheckDetector) Check(c Contract) ([]Finding, error) {
	p, ok := c.(*Program)
	if !ok {
		return nil, newCoreError("missing-fee-check requires a *Program")
	}
	if p.Mode != ModeStateless {
		return nil, nil
	}
	if referencesField(p.AllBlocks(), FieldFee) {
		return nil, nil
	}
	main := p.EntrySubroutine()
	return []Finding{{
		Description: fmt.Sprintf("%s never checks txn Fee; a spender can inflate the fee arbitrarily", p.Name()),
		Paths:       [][]int{pathTo(main, main.Entry)},
	}}, nil
}

// rekeyToDetector flags a stateless program that never inspects RekeyTo:
// without an explicit check the signer can be rekeyed away by any
// transaction this logic signature approves. Grounded on tealer's
// RekeyTo detector.
type rekeyToDetector struct{}

func (rekeyToDetector) Name() string        { return "rekey-to" }
func (rekeyToDetector) Description() string { return "flags signature-mode programs that never constrain RekeyTo" }

func (rekeyToDetector) Check(c Contract) ([]Finding, error) {
	p, ok := c.(*Program)
	if !ok {
		return nil, newCoreError("rekey-to requires a *Program")
	}
	if p.Mode != ModeStateless {
		return nil, nil
	}
	if referencesField(p.AllBlocks(), FieldRekeyTo) {
		return nil, nil
	}
	main := p.EntrySubroutine()
	return []Finding{{
		Description: fmt.Sprintf("%s never checks RekeyTo; approved transactions can rekey the signer's account", p.Name()),
		Paths:       [][]int{pathTo(main, main.Entry)},
	}}, nil
}
