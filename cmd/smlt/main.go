// Command smlt translates a BASIC-like source program into a Simpletron
// memory image.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/aruslantsev/simpletron/internal/compiler"
	"github.com/aruslantsev/simpletron/internal/image"
	"github.com/aruslantsev/simpletron/internal/logio"
)

func main() {
	var debug bool
	flag.BoolVar(&debug, "debug", false, "trace symbol allocation during compilation")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: %s <source-file> <output-file>\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	log := logio.Logger{}
	log.SetOutput(os.Stderr)
	defer func() { os.Exit(log.ExitCode()) }()

	if flag.NArg() != 2 {
		flag.Usage()
		log.Errorf("expected exactly 2 arguments, got %d", flag.NArg())
		return
	}
	srcPath, outPath := flag.Arg(0), flag.Arg(1)

	in, err := os.Open(srcPath)
	if err != nil {
		log.Errorf("%v", err)
		return
	}
	defer in.Close()

	c := compiler.New()
	c.SetDebug(debug)
	c.SetLogf(log.Leveledf("TRACE"))

	mem, err := c.Compile(srcPath, in)
	if err != nil {
		reportCompileError(&log, err)
		return
	}

	out, err := os.Create(outPath)
	if err != nil {
		log.Errorf("%v", err)
		return
	}
	defer out.Close()

	if err := image.Write(out, mem); err != nil {
		log.Errorf("writing %s: %v", outPath, err)
		return
	}
}

// reportCompileError prints at least the offending source-line number and a
// short reason, per the translator CLI's error-reporting contract.
func reportCompileError(log *logio.Logger, err error) {
	var cerr *compiler.Error
	if errors.As(err, &cerr) {
		log.Errorf("%v: %s: %v", cerr.Loc, cerr.Text, cerr.Err)
		return
	}
	log.Errorf("%v", err)
}
