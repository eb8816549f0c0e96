// Command quillsim replays scripted field interactions against the in-memory
// host simulator and prints the state transition after every step. It exists
// to reproduce native editing sequences (focus churn, secure-entry flips,
// clear-button presses) without a device attached.
//
// Usage:
//
//	quillsim [-q] scenario.yaml [scenario.yaml ...]
//
// Scenario files describe one field, a list of steps, and optional per-step
// expectations; see testdata/ for examples. The exit code is non-zero when
// any expectation fails.
package main

import (
	"flag"
	"fmt"
	"os"
)

func main() {
	quiet := flag.Bool("q", false, "suppress the per-step transcript")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: quillsim [-q] scenario.yaml [scenario.yaml ...]\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	runner := &Runner{}
	if !*quiet {
		runner.Log = func(format string, args ...any) {
			fmt.Printf(format+"\n", args...)
		}
	}

	failed := false
	for _, path := range flag.Args() {
		scenario, err := LoadScenario(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "quillsim: %v\n", err)
			failed = true
			continue
		}

		if !*quiet {
			fmt.Printf("=== %s\n", scenario.Name)
		}
		if err := runner.Run(scenario); err != nil {
			fmt.Fprintf(os.Stderr, "quillsim: %v\n", err)
			failed = true
			continue
		}
		if !*quiet {
			fmt.Printf("ok  %s\n", scenario.Name)
		}
	}

	if failed {
		os.Exit(1)
	}
}
