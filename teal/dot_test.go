package teal

import (
	"strings"
	"testing"

	"github.com/tealer-go/tealer/internal/fixtures"
)

func TestWriteDotProducesValidDigraph(t *testing.T) {
	p := mustParse(t, fixtures.SingleBranch)

	var buf strings.Builder
	if err := p.WriteDot(&buf); err != nil {
		t.Fatalf("WriteDot: unexpected error: %s", err)
	}
	out := buf.String()

	if !strings.HasPrefix(out, "digraph test {\n") {
		t.Errorf("output does not start with the expected digraph header: %q", out)
	}
	if !strings.Contains(out, "block_0") {
		t.Errorf("output does not mention block_0: %q", out)
	}
	if strings.Count(out, "->") == 0 {
		t.Errorf("output has no edges: %q", out)
	}
	if !strings.HasSuffix(out, "}\n") {
		t.Errorf("output does not end with closing brace: %q", out)
	}
}

func TestCFGPrinterRegistered(t *testing.T) {
	printer, ok := LookupPrinter("cfg")
	if !ok {
		t.Fatalf("cfg printer not registered")
	}
	p := mustParse(t, "#pragma version 6\nint 1\nreturn\n")
	out, err := printer.Print(p)
	if err != nil {
		t.Fatalf("Print: unexpected error: %s", err)
	}
	if !strings.Contains(out, "digraph") {
		t.Errorf("printer output missing digraph: %q", out)
	}
}
