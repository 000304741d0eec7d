// internal/app/app.go
package app

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"morphogen/internal/appcore"
	"morphogen/internal/catalog"
	"morphogen/internal/cli"
	"morphogen/internal/cliutil"
	"morphogen/internal/logging"
	"morphogen/internal/version"
	"morphogen/internal/writers"
)

// Stdin backs the "-" genome argument.
var Stdin io.Reader = os.Stdin

func RunContext(parent context.Context, argv []string, stdout, stderr io.Writer) int {
	outw := bufio.NewWriter(stdout)
	defer func() { _ = outw.Flush() }()

	fs := cli.NewFlagSet("morphogen")
	fs.SetOutput(io.Discard)

	opts, err := cli.ParseArgs(fs, argv)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return usage(fs, outw, stderr, 0)
		}
		_, _ = fmt.Fprintln(stderr, err)
		return usage(fs, outw, stderr, 2)
	}

	if opts.Version {
		_, _ = fmt.Fprintf(outw, "morphogen version %s\n", version.Version)
		return flush(outw, stderr, 0)
	}

	log, err := logging.New(logging.Options{Level: opts.LogLevel, Format: opts.LogFormat, Out: stderr, Quiet: opts.Quiet})
	if err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return 2
	}
	cat, err := catalog.Load(opts.Catalog)
	if err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return 2
	}
	variant, err := cat.Variant(opts.Variant)
	if err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return 2
	}
	genomes, err := cliutil.ExpandGenomeArgs(opts.Genomes, Stdin)
	if err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return 2
	}

	coreOpts := appcore.Options{
		Genomes: genomes, Count: opts.Count,
		Encoding: opts.Encoding, Width: opts.Width, Range: opts.Range(),
		GeneCount: opts.GeneCount, Alphabet: opts.Alphabet(),
		Variant: variant, NoExtend: opts.NoExtend, Body: opts.Body,
		Unique: opts.Unique, DedupeCap: opts.DedupeCap,
		Threads: opts.Threads, Seed: opts.Seed, Log: log,
	}
	writer := appcore.NewOrganismWriterFactory(opts.Output, opts.Compress)
	return appcore.Run(parent, stdout, stderr, coreOpts, writer)
}

func Run(argv []string, stdout, stderr io.Writer) int {
	return RunContext(context.Background(), argv, stdout, stderr)
}

func usage(fs *flag.FlagSet, outw *bufio.Writer, stderr io.Writer, code int) int {
	fs.SetOutput(outw)
	fs.Usage()
	return flush(outw, stderr, code)
}

func flush(outw *bufio.Writer, stderr io.Writer, code int) int {
	if e := outw.Flush(); writers.IsBrokenPipe(e) {
		return 0
	} else if e != nil {
		_, _ = fmt.Fprintln(stderr, e)
		return 3
	}
	return code
}
