package teal

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
)

// dotPrinter is the built-in Printer that renders a program's block-level
// CFG as Graphviz dot text. No graphviz library is used: every repo in the
// reference pack that emits dot output hand-writes the "digraph { ... }"
// text with fmt, so this does the same rather than reaching for a binding
// this ecosystem corner doesn't actually use.
type dotPrinter struct{}

func (dotPrinter) Name() string { return "cfg" }

func (dotPrinter) Print(c Contract) (string, error) {
	p, ok := c.(*Program)
	if !ok {
		return "", newCoreError("cfg printer requires a *Program")
	}
	var buf strings.Builder
	if err := writeDot(&buf, p); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func init() { RegisterPrinter(dotPrinter{}) }

// WriteDot renders p's block-level CFG as Graphviz dot text to w.
func (p *Program) WriteDot(w io.Writer) error {
	return writeDot(w, p)
}

// ExportDot renders p's CFG and writes it to path, creating or truncating
// the file.
func ExportDot(p *Program, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return wrapCoreError(err, "creating dot output file")
	}
	defer f.Close()
	if err := writeDot(f, p); err != nil {
		return err
	}
	return nil
}

func writeDot(w io.Writer, p *Program) error {
	if _, err := fmt.Fprintf(w, "digraph %s {\n", dotIdent(p.ContractName)); err != nil {
		return errors.Wrap(err, "writing dot header")
	}

	subs := sortedSubroutines(p.Subroutines)
	if p.Main != nil {
		subs = append([]*Subroutine{p.Main}, subs...)
	}
	for _, sub := range subs {
		if _, err := fmt.Fprintf(w, "  subgraph cluster_%s {\n", dotIdent(sub.Name)); err != nil {
			return errors.Wrap(err, "writing dot subgraph")
		}
		if _, err := fmt.Fprintf(w, "    label=%q;\n", sub.Name); err != nil {
			return errors.Wrap(err, "writing dot subgraph label")
		}
		for _, b := range sub.Blocks {
			if err := writeBlockNode(w, b); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(w, "  }"); err != nil {
			return errors.Wrap(err, "writing dot subgraph close")
		}
	}

	for _, b := range p.Blocks {
		for _, n := range b.Next {
			if _, err := fmt.Fprintf(w, "  block_%d -> block_%d;\n", b.Idx, n.Idx); err != nil {
				return errors.Wrap(err, "writing dot edge")
			}
		}
	}

	if _, err := fmt.Fprintln(w, "}"); err != nil {
		return errors.Wrap(err, "writing dot footer")
	}
	return nil
}

func writeBlockNode(w io.Writer, b *BasicBlock) error {
	label := blockLabel(b)
	_, err := fmt.Fprintf(w, "    block_%d [shape=box label=%q];\n", b.Idx, label)
	return errors.Wrap(err, "writing dot node")
}

func blockLabel(b *BasicBlock) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "block_id = %d; cost = %d\n", b.Idx, b.Cost)
	for _, c := range b.Comments {
		fmt.Fprintf(&sb, "%s\n", c)
	}
	for _, ins := range b.Instructions {
		fmt.Fprintf(&sb, "%s\n", ins.String())
	}
	return sb.String()
}

func sortedSubroutines(m map[string]*Subroutine) []*Subroutine {
	out := make([]*Subroutine, 0, len(m))
	for _, s := range m {
		out = append(out, s)
	}
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j].Name < out[j-1].Name; j-- {
			out[j], out[j-1] = out[j-1], out[j]
		}
	}
	return out
}

func dotIdent(s string) string {
	out := make([]byte, len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '-' || c == '.' || c == ' ' {
			out[i] = '_'
		} else {
			out[i] = c
		}
	}
	return string(out)
}
