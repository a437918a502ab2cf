package teal

import "testing"

func TestParseTealIntBoundaries(t *testing.T) {
	cases := []struct {
		in   string
		want int64
	}{
		{"0x1A", 26},
		{"017", 15},
		{"0", 0},
		{"42", 42},
	}
	for _, c := range cases {
		got, err := parseTealInt(c.in)
		if err != nil {
			t.Fatalf("parseTealInt(%q): unexpected error: %s", c.in, err)
		}
		if got != c.want {
			t.Errorf("parseTealInt(%q) = %d, want %d", c.in, got, c.want)
		}
	}
}

func TestParsePragmaOnlyProgram(t *testing.T) {
	p, err := ParseTeal("#pragma version 6\n", ParseOptions{})
	if err != nil {
		t.Fatalf("ParseTeal: unexpected error: %s", err)
	}
	if p.Version != 6 {
		t.Errorf("Version = %d, want 6", p.Version)
	}
	if p.Mode != ModeAny {
		t.Errorf("Mode = %s, want any", p.Mode)
	}
	if len(p.Diagnostics) != 0 {
		t.Errorf("Diagnostics = %v, want none", p.Diagnostics)
	}
}

func TestParseLabelDeclaration(t *testing.T) {
	ins, err := parseLine("loop:", 1)
	if err != nil {
		t.Fatalf("parseLine: unexpected error: %s", err)
	}
	label, ok := ins.(*Label)
	if !ok {
		t.Fatalf("got %T, want *Label", ins)
	}
	if label.Name != "loop" {
		t.Errorf("Name = %q, want %q", label.Name, "loop")
	}
}

func TestParseGtxnFixedIndex(t *testing.T) {
	ins, err := parseLine("gtxn 1 Sender", 1)
	if err != nil {
		t.Fatalf("parseLine: unexpected error: %s", err)
	}
	g, ok := ins.(*Gtxn)
	if !ok {
		t.Fatalf("got %T, want *Gtxn", ins)
	}
	if g.Group != 1 {
		t.Errorf("Group = %d, want 1", g.Group)
	}
	if g.Field.Kind != FieldSender {
		t.Errorf("Field.Kind = %v, want FieldSender", g.Field.Kind)
	}
}

func TestParseGtxnIndexedField(t *testing.T) {
	ins, err := parseLine("gtxn 0 Accounts 2", 1)
	if err != nil {
		t.Fatalf("parseLine: unexpected error: %s", err)
	}
	g := ins.(*Gtxn)
	if g.Field.Kind != FieldAccounts || g.Field.Index != 2 {
		t.Errorf("Field = %+v, want {FieldAccounts 2}", g.Field)
	}
}

func TestParseTxnasIndexedFromStack(t *testing.T) {
	ins, err := parseLine("txnas Accounts", 1)
	if err != nil {
		t.Fatalf("parseLine: unexpected error: %s", err)
	}
	tx := ins.(*Txn)
	if tx.Field.Kind != FieldAccounts || tx.Field.Index != -1 {
		t.Errorf("Field = %+v, want {FieldAccounts -1}", tx.Field)
	}
}
