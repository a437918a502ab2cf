package teal

import (
	"crypto/sha512"
	"strings"
	"testing"

	"github.com/tealer-go/tealer/internal/fixtures"
)

func mustParse(t *testing.T, source string) *Program {
	t.Helper()
	p, err := ParseTeal(source, ParseOptions{ContractName: "test"})
	if err != nil {
		t.Fatalf("ParseTeal: unexpected error: %s", err)
	}
	return p
}

// Scenario 1: an empty subroutine called from two distinct call sites ends
// up as its own one-block subroutine with two call sites, and __main__
// owns everything else.
func TestEmptySubroutineCalledTwice(t *testing.T) {
	p := mustParse(t, fixtures.EmptySubroutineCalledTwice)

	sub, ok := p.Subroutines["empty"]
	if !ok {
		t.Fatalf("subroutine %q not discovered", "empty")
	}
	if len(sub.Blocks) != 1 {
		t.Fatalf("empty subroutine has %d blocks, want 1", len(sub.Blocks))
	}
	if len(sub.CallSites) != 2 {
		t.Fatalf("empty subroutine has %d call sites, want 2", len(sub.CallSites))
	}
	if sub.CallSites[0] == sub.CallSites[1] {
		t.Fatalf("both call sites resolved to the same block")
	}
	if len(p.Main.Blocks) != 3 {
		t.Fatalf("__main__ has %d blocks, want 3", len(p.Main.Blocks))
	}
}

// Scenario 2: an instruction whose minimum version exceeds the program's
// declared version produces a non-fatal diagnostic, not a parse error.
func TestVersionMismatchDiagnostic(t *testing.T) {
	p := mustParse(t, fixtures.VersionMismatch)

	if len(p.Diagnostics) != 1 {
		t.Fatalf("Diagnostics = %v, want exactly one", p.Diagnostics)
	}
	if !strings.Contains(p.Diagnostics[0].Msg, "log") {
		t.Errorf("diagnostic %q does not mention the offending opcode", p.Diagnostics[0].Msg)
	}
}

// Scenario 3: a program mixing stateful-only and stateless-only
// instructions is flagged with a combined mode-conflict diagnostic.
func TestModeConflictDiagnostic(t *testing.T) {
	p := mustParse(t, fixtures.ModeConflict)

	found := false
	for _, d := range p.Diagnostics {
		if strings.Contains(d.Msg, "both Application and Signature") {
			found = true
		}
	}
	if !found {
		t.Fatalf("Diagnostics = %v, want a mode-conflict entry", p.Diagnostics)
	}
}

// Scenario 4: the constant pool is only resolved when exactly one
// IntcBlock exists and it sits in the program's entry block.
func TestConstantPoolResolution(t *testing.T) {
	single := mustParse(t, "#pragma version 6\nintcblock 1 2 3\nint 1\nreturn\n")
	if !single.HasIntConstants {
		t.Fatalf("HasIntConstants = false, want true for a single intcblock")
	}
	if len(single.IntConstants) != 3 || single.IntConstants[2] != 3 {
		t.Errorf("IntConstants = %v, want [1 2 3]", single.IntConstants)
	}

	double := mustParse(t, `#pragma version 6
intcblock 1 2
int 1
return
unused:
intcblock 3 4
return
`)
	if double.HasIntConstants {
		t.Fatalf("HasIntConstants = true, want false when two intcblocks exist")
	}
}

// Scenario 5: a three-way switch links its block to all three labeled
// targets.
func TestSwitchThreeTargets(t *testing.T) {
	p := mustParse(t, `#pragma version 8
int 0
switch a b c
a:
int 1
return
b:
int 2
return
c:
int 3
return
`)

	entry := p.Blocks[0]
	if len(entry.Next) != 3 {
		t.Fatalf("entry block has %d successors, want 3", len(entry.Next))
	}
}

// Scenario 6: a method pseudo-op hashes the signature exactly as written,
// quotes included — the original's stripped copy was computed and
// discarded, never actually hashed.
func TestMethodSelectorPreservesQuotes(t *testing.T) {
	sig := `"add(uint64,uint64)uint64"`
	p := mustParse(t, "#pragma version 6\nmethod "+sig+"\n")

	var m *Method
	for _, ins := range p.Instructions {
		if v, ok := ins.(*Method); ok {
			m = v
		}
	}
	if m == nil {
		t.Fatalf("no Method instruction found")
	}
	if m.Signature != sig {
		t.Fatalf("Signature = %q, want %q (quotes preserved)", m.Signature, sig)
	}

	want := sha512.Sum512_256([]byte(sig))
	for i := 0; i < 4; i++ {
		if m.Selector[i] != want[i] {
			t.Fatalf("Selector = %x, want %x", m.Selector, want[:4])
		}
	}
}

// Comment-only lines produce no instruction of their own; their text is
// buffered and attached to the next real instruction's CommentsBefore.
func TestCommentLinesAttachToNextInstruction(t *testing.T) {
	p := mustParse(t, `#pragma version 6
// checks the sender before anything else
// second line of the same comment
txn Sender
pop
int 1
return
`)

	var txn *Txn
	for _, ins := range p.Instructions {
		if v, ok := ins.(*Txn); ok {
			txn = v
		}
	}
	if txn == nil {
		t.Fatalf("no Txn instruction found")
	}
	want := []string{"// checks the sender before anything else", "// second line of the same comment"}
	if len(txn.CommentsBefore) != len(want) {
		t.Fatalf("CommentsBefore = %v, want %v", txn.CommentsBefore, want)
	}
	for i, c := range want {
		if txn.CommentsBefore[i] != c {
			t.Errorf("CommentsBefore[%d] = %q, want %q", i, txn.CommentsBefore[i], c)
		}
	}

	if len(p.Instructions[0].Header().CommentsBefore) != 0 {
		t.Errorf("pragma's CommentsBefore = %v, want none", p.Instructions[0].Header().CommentsBefore)
	}
}
