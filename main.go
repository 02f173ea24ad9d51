//go:build !lambda

package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
)

const usage = `Usage: calendar-solver [flags] [mode]

Modes:
  solve    Run the interactive solver over stdin/stdout (default)
  gen      Generate a judge input file
  sim      Generate an instance and solve it against the local simulation

Flags:
`

func main() {
	verbose := flag.Bool("verbose", false, "Print search progress to stderr")
	flag.Usage = func() {
		fmt.Fprint(os.Stderr, usage)
		flag.PrintDefaults()
	}
	flag.Parse()

	Verbose = *verbose

	mode := "solve"
	args := flag.Args()
	if len(args) > 0 {
		mode = args[0]
		args = args[1:]
	}

	var err error
	switch mode {
	case "solve":
		err = Run(os.Stdin, os.Stdout, DefaultConfig())
	case "gen":
		err = genMain(args)
	case "sim":
		err = simMain(args)
	default:
		fmt.Fprintf(os.Stderr, "unknown mode %q\n", mode)
		flag.Usage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func genFlags(name string) (*flag.FlagSet, *GenOptions) {
	opts := &GenOptions{}
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	fs.IntVar(&opts.Week, "week", 0, "Number of weeks (0 = draw from range)")
	fs.IntVar(&opts.ResourceN, "resourceN", 0, "Number of resources (0 = draw from range)")
	fs.IntVar(&opts.ItemN, "itemN", 0, "Number of items (0 = draw from range)")
	fs.IntVar(&opts.ChangeLimit, "changeLimit", 0, "Per-resource calendar change limit (0 = draw from range)")
	fs.Int64Var(&opts.Seed, "seed", 0, "Random seed")
	return fs, opts
}

func genMain(args []string) error {
	fs, opts := genFlags("gen")
	outPath := fs.String("out", "", "Output file (default stdout)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	inst := GenerateInstance(*opts)

	out := os.Stdout
	if *outPath != "" {
		fp, err := os.Create(*outPath)
		if err != nil {
			return err
		}
		defer fp.Close()
		out = fp
	}

	if err := inst.WriteInput(out); err != nil {
		return err
	}

	fmt.Fprintf(logw(), "[gen] weeks=%d resources=%d maxChanges=%d interactions=%d operations=%d\n",
		inst.Weeks, inst.Resources, inst.MaxChanges, inst.Interactions, inst.Operations)
	return nil
}

func simMain(args []string) error {
	fs, opts := genFlags("sim")
	jsonOut := fs.Bool("json", false, "Output the result as JSON")
	if err := fs.Parse(args); err != nil {
		return err
	}

	result, err := runSim(*opts, DefaultConfig())
	if err != nil {
		return err
	}

	if *jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}

	fmt.Printf("seed %d: score=%d in %.1fs (%d weeks, %d resources, %d interactions)\n",
		result.Seed, result.Score, float64(result.TimeMs)/1000, result.Weeks, result.Resources, result.Interactions)
	fmt.Print(result.Detail)
	return nil
}
