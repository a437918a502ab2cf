// Command tealer parses a TEAL program and reports what its registered
// detectors find: a thin front end that reads a .teal file and drives the
// teal package's parser, analyses and detector registry.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/tealer-go/tealer/teal"
)

func main() {
	var (
		contractName = flag.String("name", "", "contract name recorded on the parsed program")
		detectorName = flag.String("detector", "", "run a single registered detector and print its JSON result")
		listFlag     = flag.Bool("list-detectors", false, "print every registered detector name and exit")
		dotFlag      = flag.Bool("dot", false, "print the program's CFG as Graphviz dot instead of running detectors")
	)
	flag.Parse()

	if *listFlag {
		for _, name := range teal.DetectorNames() {
			fmt.Println(name)
		}
		return
	}

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: tealer [flags] <file.teal>")
		os.Exit(2)
	}

	source, err := os.ReadFile(flag.Arg(0))
	if err != nil {
		fmt.Fprintln(os.Stderr, "tealer:", err)
		os.Exit(1)
	}

	name := *contractName
	if name == "" {
		name = flag.Arg(0)
	}
	program, err := teal.ParseTeal(string(source), teal.ParseOptions{ContractName: name})
	if err != nil {
		fmt.Fprintln(os.Stderr, "tealer:", err)
		os.Exit(1)
	}

	for _, d := range program.Diagnostics {
		fmt.Fprintln(os.Stderr, d.String())
	}

	if *dotFlag {
		if err := program.WriteDot(os.Stdout); err != nil {
			fmt.Fprintln(os.Stderr, "tealer:", err)
			os.Exit(1)
		}
		return
	}

	names := teal.DetectorNames()
	if *detectorName != "" {
		names = []string{*detectorName}
	}

	results := make(map[string]teal.DetectorResult, len(names))
	for _, n := range names {
		results[n] = teal.RunDetector(n, program)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(results); err != nil {
		fmt.Fprintln(os.Stderr, "tealer:", err)
		os.Exit(1)
	}
}
