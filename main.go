package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/caldonovan/walksat/bf"
	"github.com/caldonovan/walksat/dimacs"
	"github.com/caldonovan/walksat/walksat"
)

// runReport is the machine-readable summary written by -stats, grounded
// on the SolveResult/BatchResults shape found in the retrieved client
// for this algorithm.
type runReport struct {
	RunID      string  `json:"run_id"`
	File       string  `json:"file"`
	Sat        bool    `json:"sat"`
	Flips      int64   `json:"flips"`
	Restarts   int     `json:"restarts"`
	ElapsedSec float64 `json:"elapsed_sec"`
}

func main() {
	var (
		verbose     bool
		seed        int64
		bias        float64
		nonGreedy   float64
		maxFlips    int64
		restarts    bool
		lubyUnit    int64
		maxRestarts int
		statsPath   string
	)
	flag.BoolVar(&verbose, "verbose", false, "sets verbose mode on")
	flag.Int64Var(&seed, "seed", 0, "PRNG seed; 0 seeds from wall-clock time")
	flag.Float64Var(&bias, "initial-bias", walksat.DefaultConfig().InitialBias, "probability a variable is initially true")
	flag.Float64Var(&nonGreedy, "non-greedy-choice", walksat.DefaultConfig().NonGreedyChoice, "probability of non-greedy literal selection")
	flag.Int64Var(&maxFlips, "max-flips", 0, "flip budget; 0 runs the core loop unbounded")
	flag.BoolVar(&restarts, "restarts", false, "use a Luby reluctant-doubling restart schedule instead of a flat budget")
	flag.Int64Var(&lubyUnit, "luby-unit", walksat.DefaultRestartConfig().LubyUnit, "flips per Luby unit, used only with -restarts")
	flag.IntVar(&maxRestarts, "max-restarts", 0, "restart attempt cap; 0 is unbounded, used only with -restarts")
	flag.StringVar(&statsPath, "stats", "", "write a JSON run report to this path")
	flag.Parse()

	if len(flag.Args()) != 1 {
		fmt.Fprintf(os.Stderr, "Syntax: %s [options] (file.cnf|file.bf)\n", os.Args[0])
		flag.PrintDefaults()
		os.Exit(1)
	}
	path := flag.Args()[0]

	if strings.HasSuffix(path, ".bf") {
		if err := solveBFFile(path); err != nil {
			fmt.Fprintf(os.Stderr, "could not solve %q: %v\n", path, err)
			os.Exit(1)
		}
		return
	}

	f, err := parse(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "could not parse problem: %v\n", err)
		os.Exit(1)
	}

	if f.Trivial {
		fmt.Println("s UNSATISFIABLE")
		return
	}

	cfg := walksat.Config{InitialBias: bias, NonGreedyChoice: nonGreedy, Seed: seed}
	s := walksat.NewSolver(f, cfg)

	if verbose {
		fmt.Printf("c solving %s\n", path)
		fmt.Printf("c number of variables : %d\n", f.NumVars())
		fmt.Printf("c number of clauses   : %d\n", f.NumClauses())
	}

	start := time.Now()
	model, solveErr := run(s, restarts, maxFlips, lubyUnit, maxRestarts)
	elapsed := time.Since(start)

	if verbose {
		st := s.Stats()
		fmt.Printf("c nb flips: %d\nc nb restarts: %d\n", st.Flips, st.Restarts)
	}

	if statsPath != "" {
		st := s.Stats()
		report := runReport{
			RunID:      uuid.New().String(),
			File:       path,
			Sat:        solveErr == nil,
			Flips:      st.Flips,
			Restarts:   st.Restarts,
			ElapsedSec: elapsed.Seconds(),
		}
		if err := writeReport(statsPath, report); err != nil {
			fmt.Fprintf(os.Stderr, "could not write stats report: %v\n", err)
		}
	}

	if solveErr != nil {
		fmt.Printf("c %v\n", solveErr)
		fmt.Println("s UNKNOWN")
		os.Exit(1)
	}
	printModel(model)
}

// run dispatches to the unbounded core loop, the bounded outer driver,
// or the restart outer driver, depending on the flags the caller set.
func run(s *walksat.Solver, restarts bool, maxFlips, lubyUnit int64, maxRestarts int) ([]bool, error) {
	ctx := context.Background()
	switch {
	case restarts:
		return s.SolveWithRestarts(ctx, walksat.RestartConfig{LubyUnit: lubyUnit, MaxRestarts: maxRestarts})
	case maxFlips > 0:
		return s.SolveWithBudget(ctx, maxFlips)
	default:
		return s.Solve(), nil
	}
}

// solveBFFile reads a boolean-formula front-end file (see package bf's
// grammar) from path, solves it, and prints the resulting model or an
// UNSAT indicator -- mirroring the teacher's .bf dispatch path, but
// against bf.Solve's WalkSAT-backed, budget-bounded search rather than
// a complete CDCL solver.
func solveBFFile(path string) error {
	r, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("could not open %q: %w", path, err)
	}
	defer r.Close()
	form, err := bf.Parse(r)
	if err != nil {
		return fmt.Errorf("could not parse formula in %q: %w", path, err)
	}
	model := bf.Solve(form)
	if model == nil {
		fmt.Println("s UNSATISFIABLE")
		return nil
	}
	fmt.Println("s SATISFIABLE")
	names := make([]string, 0, len(model))
	for name := range model {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Printf("v %s=%t\n", name, model[name])
	}
	return nil
}

func parse(path string) (*walksat.Formula, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open %q: %w", path, err)
	}
	defer f.Close()
	form, err := dimacs.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("could not parse DIMACS file %q: %w", path, err)
	}
	return form, nil
}

// printModel emits the satisfying assignment in the conventional DIMACS
// model-output form: one or more "v ..." lines, up to 10 literals per
// line, terminated by a trailing " 0".
func printModel(model []bool) {
	fmt.Println("s SATISFIABLE")
	fmt.Print("v")
	for v := 1; v < len(model); v++ {
		if (v-1)%10 == 0 && v != 1 {
			fmt.Print("\nv")
		}
		if model[v] {
			fmt.Printf(" %d", v)
		} else {
			fmt.Printf(" -%d", v)
		}
	}
	fmt.Println(" 0")
}

func writeReport(path string, report runReport) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("could not marshal run report: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("could not write %q: %w", path, err)
	}
	return nil
}
