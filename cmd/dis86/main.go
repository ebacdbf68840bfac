package main

import (
	"fmt"
	"os"
	"runtime"
	"strings"

	"github.com/grimdork/climate/arg"
	"golang.org/x/sync/errgroup"

	"github.com/Urethramancer/i8086/disassembler"
)

type listing struct {
	name string
	text string
	err  error
}

func main() {
	opt := arg.New("dis86")
	opt.SetDefaultHelp(true)
	opt.SetOption(arg.GroupDefault, "o", "output", "Write the listing to a file instead of standard output.", "", false, arg.VarString, nil)
	opt.SetOption(arg.GroupDefault, "k", "skip", "Emit db for bytes outside the MOV family and continue.", false, false, arg.VarBool, nil)
	opt.SetPositional("FILE", "8086 binary to disassemble.", "", true, arg.VarStringSlice)

	err := opt.Parse(os.Args[1:])
	if err != nil {
		if err == arg.ErrNoArgs {
			opt.PrintHelp()
			return
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if opt.GetBool("help") {
		opt.PrintHelp()
		return
	}

	files := opt.GetPosStringSlice("FILE")
	dis := disassembler.New(disassembler.Options{SkipUnsupported: opt.GetBool("skip")})

	// Each file is an independent decode; only the output order is shared.
	listings := make([]listing, len(files))
	var g errgroup.Group
	g.SetLimit(runtime.NumCPU())
	for i, name := range files {
		i, name := i, name
		g.Go(func() error {
			code, err := os.ReadFile(name)
			if err != nil {
				return fmt.Errorf("reading %s: %w", name, err)
			}
			text, err := dis.Disassemble(code)
			listings[i] = listing{name: name, text: text, err: err}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	var out strings.Builder
	failed := false
	for _, l := range listings {
		if len(listings) > 1 {
			fmt.Fprintf(&out, "; %s\n", l.name)
		}
		out.WriteString(l.text)
		if l.err != nil {
			fmt.Fprintf(os.Stderr, "Disassembly of %s incomplete: %v\n", l.name, l.err)
			failed = true
		}
	}

	outputFile := opt.GetString("output")
	if outputFile == "" {
		fmt.Print(out.String())
	} else if err := os.WriteFile(outputFile, []byte(out.String()), 0644); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing output file: %v\n", err)
		os.Exit(1)
	}

	if failed {
		os.Exit(1)
	}
}
