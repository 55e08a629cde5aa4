// Command simpletron executes a Simpletron memory image against the
// terminal.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/aruslantsev/simpletron/internal/flushio"
	"github.com/aruslantsev/simpletron/internal/image"
	"github.com/aruslantsev/simpletron/internal/logio"
	"github.com/aruslantsev/simpletron/internal/vm"
)

func main() {
	var (
		trace   bool
		timeout time.Duration
		teePath string
	)
	flag.BoolVar(&trace, "trace", false, "log every executed instruction")
	flag.DurationVar(&timeout, "timeout", 0, "abort execution after the given duration")
	flag.StringVar(&teePath, "tee", "", "also write terminal output to this file")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: %s [image-file]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	log := logio.Logger{}
	log.SetOutput(os.Stderr)
	defer func() { os.Exit(log.ExitCode()) }()

	in := os.Stdin
	if flag.NArg() == 1 {
		f, err := os.Open(flag.Arg(0))
		if err != nil {
			log.Errorf("%v", err)
			return
		}
		defer f.Close()
		in = f
	} else if flag.NArg() > 1 {
		flag.Usage()
		log.Errorf("expected at most 1 argument, got %d", flag.NArg())
		return
	}

	mem, err := image.Read(in)
	if err != nil {
		log.Errorf("reading image: %v", err)
		return
	}

	out := flushio.NewWriteFlusher(os.Stdout)
	if teePath != "" {
		teeFile, err := os.Create(teePath)
		if err != nil {
			log.Errorf("%v", err)
			return
		}
		defer teeFile.Close()
		out = flushio.WriteFlushers(out, flushio.NewWriteFlusher(teeFile))
	}

	opts := []vm.Option{
		vm.WithImage(mem),
		vm.WithInput(os.Stdin),
		vm.WithOutput(out),
	}
	if trace {
		opts = append(opts, vm.WithLogf(log.Leveledf("TRACE")))
	}
	m := vm.New(opts...)

	ctx := context.Background()
	if timeout != 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	if err := m.Run(ctx); err != nil {
		fmt.Fprintln(os.Stdout, "*** Simpletron execution abnormally terminated ***")
		m.Dump(os.Stdout)
		var fault *vm.Fault
		if errors.As(err, &fault) {
			log.Errorf("%v", fault)
		} else {
			log.Errorf("%v", err)
		}
		return
	}

	fmt.Fprintln(os.Stdout, "*** Simpletron execution terminated ***")
}
