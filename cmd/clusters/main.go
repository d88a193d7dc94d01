/*
Command clusters exercises the cluster containers with a random workload.

	clusters -kind map -n 5000 -group 8 -seed 7 -shape -dot tree.dot -readers 4

After the workload has run, every container is checked for structural
consistency. With -shape the group structure is printed to the console,
with -dot it is written in Graphviz DOT format. -readers starts concurrent
cursor walks while the workload runs.
*/
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"math/rand"
	"os"

	"github.com/fatih/color"
	"github.com/npillmayer/clusters"
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
)

// T traces to the global core-tracer.
func T() tracing.Trace {
	return gtrace.CoreTracer
}

type options struct {
	kind    string
	n       int
	group   int
	seed    int64
	readers int
	shape   bool
	dot     string
}

func main() {
	opts := options{}
	flag.StringVar(&opts.kind, "kind", "list", "container kind: list, index, map (hash ordered) or natural")
	flag.IntVar(&opts.n, "n", 1000, "number of workload operations")
	flag.IntVar(&opts.group, "group", 0, "group size, 0 for the default")
	flag.Int64Var(&opts.seed, "seed", 1, "random seed")
	flag.IntVar(&opts.readers, "readers", 0, "number of concurrent cursor readers")
	flag.BoolVar(&opts.shape, "shape", false, "print the group structure")
	flag.StringVar(&opts.dot, "dot", "", "write the group structure in DOT format to this file")
	tlevel := flag.String("trace", "Error", "trace level: Debug, Info or Error")
	flag.Parse()

	gtrace.CoreTracer = gologadapter.New()
	setTraceLevel(*tlevel)

	if err := run(context.Background(), opts); err != nil {
		T().Errorf("clusters: %s", err.Error())
		color.New(color.FgRed, color.Bold).Fprintf(os.Stderr, "FAIL ")
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func setTraceLevel(s string) {
	switch s {
	case "Debug", "debug":
		gtrace.CoreTracer.SetTraceLevel(tracing.LevelDebug)
	case "Info", "info":
		gtrace.CoreTracer.SetTraceLevel(tracing.LevelInfo)
	default:
		gtrace.CoreTracer.SetTraceLevel(tracing.LevelError)
	}
}

func run(ctx context.Context, opts options) error {
	if opts.n < 0 || opts.readers < 0 {
		return errors.New("negative -n or -readers")
	}
	rnd := rand.New(rand.NewSource(opts.seed))
	var w workload
	switch opts.kind {
	case "list":
		l, err := clusters.NewListWithConfig[int](clusters.Config{GroupSize: opts.group})
		if err != nil {
			return err
		}
		w = &listWorkload{list: l, rnd: rnd}
	case "index":
		x, err := clusters.NewIndexWithConfig(orderedConfig[int](opts.group, intComparator))
		if err != nil {
			return err
		}
		w = &indexWorkload{index: x, rnd: rnd, model: make(map[int]bool)}
	case "map", "natural":
		cmp := stringComparator
		if opts.kind == "natural" {
			cmp = naturalComparator
		}
		m, err := clusters.NewMapWithConfig[string, int](orderedConfig[string](opts.group, cmp))
		if err != nil {
			return err
		}
		w = &mapWorkload{m: m, rnd: rnd, model: make(map[string]int)}
	default:
		return fmt.Errorf("unknown container kind %q", opts.kind)
	}
	visited, err := runWithReaders(ctx, w, opts.n, opts.readers)
	if err != nil {
		return err
	}
	if err := w.verify(); err != nil {
		return err
	}
	con := newConsole(os.Stdout)
	con.pass(fmt.Sprintf("%s: %d operations, %d items, height %d", opts.kind, opts.n, w.len(), w.height()))
	if opts.readers > 0 {
		con.pass(fmt.Sprintf("%d readers visited %d items", opts.readers, visited))
	}
	if opts.shape {
		w.shape(con)
	}
	if opts.dot != "" {
		f, err := os.Create(opts.dot)
		if err != nil {
			return err
		}
		defer f.Close()
		if err := w.dot(f); err != nil {
			return err
		}
		con.pass("DOT written to " + opts.dot)
	}
	return nil
}
