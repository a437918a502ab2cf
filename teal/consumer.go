package teal

import "sort"

// Contract is the read-only view of a parsed program that detectors and
// printers consume. Program satisfies it directly; the interface exists so
// a detector's signature doesn't couple it to Program's internal fields.
type Contract interface {
	Name() string
	AllSubroutines() map[string]*Subroutine
	AllBlocks() []*BasicBlock
	EntrySubroutine() *Subroutine
	Findings(name string) (map[int]Lattice, bool)
}

func (p *Program) Name() string                         { return p.ContractName }
func (p *Program) AllSubroutines() map[string]*Subroutine { return p.Subroutines }
func (p *Program) AllBlocks() []*BasicBlock              { return p.Blocks }
func (p *Program) EntrySubroutine() *Subroutine          { return p.Main }

func (p *Program) Findings(name string) (map[int]Lattice, bool) {
	r, ok := p.results[name]
	return r, ok
}

// Finding is one located result a Detector reports: the block(s) that make
// up the path it flags, and a human-readable description.
type Finding struct {
	Description string
	// Paths lists, for each counter-example path, the block indices along
	// it from the subroutine entry to the flagged block.
	Paths [][]int
}

// DetectorResult is a detector run's complete output, shaped to marshal
// directly to the front-end's expected JSON: "success" on a clean run with
// "result" holding every Finding, or "error" with a message when the
// detector itself could not complete.
type DetectorResult struct {
	Success bool      `json:"success"`
	Error   string    `json:"error,omitempty"`
	Result  []Finding `json:"result,omitempty"`
}

// Detector inspects a Contract and reports zero or more Findings. Detectors
// are registered by name so a front-end can select which to run without
// this package knowing about any specific one.
type Detector interface {
	Name() string
	Description() string
	Check(c Contract) ([]Finding, error)
}

// Printer renders a Contract (typically its CFG) to a string; dotPrinter in
// dot.go, registered as "cfg", is the built-in one.
type Printer interface {
	Name() string
	Print(c Contract) (string, error)
}

var (
	detectors = map[string]Detector{}
	printers  = map[string]Printer{}
)

// RegisterDetector adds d to the detector registry, keyed by d.Name().
func RegisterDetector(d Detector) { detectors[d.Name()] = d }

// RegisterPrinter adds p to the printer registry, keyed by p.Name().
func RegisterPrinter(pr Printer) { printers[pr.Name()] = pr }

// LookupDetector returns the registered detector named name, or false.
func LookupDetector(name string) (Detector, bool) {
	d, ok := detectors[name]
	return d, ok
}

// LookupPrinter returns the registered printer named name, or false.
func LookupPrinter(name string) (Printer, bool) {
	p, ok := printers[name]
	return p, ok
}

// DetectorNames returns every registered detector's name, sorted.
func DetectorNames() []string {
	out := make([]string, 0, len(detectors))
	for n := range detectors {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// RunDetector looks up name and runs it over c, wrapping both outcomes into
// the JSON-shaped DetectorResult a front-end reports directly.
func RunDetector(name string, c Contract) DetectorResult {
	d, ok := LookupDetector(name)
	if !ok {
		return DetectorResult{Success: false, Error: "unknown detector: " + name}
	}
	findings, err := d.Check(c)
	if err != nil {
		return DetectorResult{Success: false, Error: err.Error()}
	}
	return DetectorResult{Success: true, Result: findings}
}
