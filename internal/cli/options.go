// internal/cli/options.go
package cli

import (
	"errors"
	"flag"
	"fmt"
	"slices"

	"morphogen-core/bitseq"
	"morphogen/internal/cliutil"
	"morphogen/internal/version"
)

// Options holds all CLI flags and arguments.
type Options struct {
	// Genome source
	Count     int
	Width     int
	Encoding  string
	Seed      int64 // 0 = time based
	MinExp    uint
	MaxExp    uint
	GeneCount int
	Genomes   []string // positional; overrides Count

	// RNA alphabet
	StopsNeeded int

	// Decoding
	Variant  string
	Catalog  string
	NoExtend bool

	// Dedupe
	Unique    bool
	DedupeCap int

	// Output
	Output   string
	Compress string
	Body     bool

	// Performance
	Threads int

	// Diagnostics
	LogLevel  string
	LogFormat string
	Quiet     bool

	Version bool
}

var (
	encodings = []string{bitseq.EncodingBits, bitseq.EncodingRNA}
	outputs   = []string{"text", "json", "jsonl"}
	codecs    = []string{"none", "zstd"}
)

// NewFlagSet returns a configured FlagSet with custom usage/help.
func NewFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(),
			`%s: decode binary genomes into creature feature lists

Version: %s

Usage: %s [flags] [genome ...]

Each genome is a bit string (--encoding bits) or comma-separated small
integers (--encoding rna). "@file" reads one genome per line from file and
"-" reads them from stdin. Without genomes, --count random ones are drawn.

`, name, version.Version, name)
		fs.PrintDefaults()
	}
	return fs
}

// ParseArgs registers and parses all flags, returns an Options struct.
func ParseArgs(fs *flag.FlagSet, argv []string) (Options, error) {
	var opt Options
	var help bool

	// Genome source
	fs.IntVar(&opt.Count, "count", 1, "number of random genomes to decode [1]")
	fs.IntVar(&opt.Count, "n", 1, "shorthand for --count")
	fs.IntVar(&opt.Width, "codon-width", bitseq.DefaultWidth, "bits per codon unit (bits encoding) [4]")
	fs.IntVar(&opt.Width, "w", bitseq.DefaultWidth, "shorthand for --codon-width")
	fs.StringVar(&opt.Encoding, "encoding", bitseq.EncodingBits, "genome encoding: bits | rna [bits]")
	fs.Int64Var(&opt.Seed, "seed", 0, "random seed (0 = time based) [0]")
	fs.UintVar(&opt.MinExp, "min-exp", bitseq.DefaultRange.MinExp, "random bit genomes are >= 2^min-exp [31]")
	fs.UintVar(&opt.MaxExp, "max-exp", bitseq.DefaultRange.MaxExp, "random bit genomes are <= 2^max-exp [64]")
	fs.IntVar(&opt.GeneCount, "gene-count", bitseq.DefaultGeneCount, "values per random rna genome [256]")
	fs.IntVar(&opt.StopsNeeded, "stops-needed", bitseq.DefaultAlphabet.StopsNeeded, "consecutive stop markers that end an rna read [3]")

	// Decoding
	fs.StringVar(&opt.Variant, "variant", "creature", "organism variant (see --catalog) [creature]")
	fs.StringVar(&opt.Catalog, "catalog", "", "YAML file with extra kinds and variants")
	fs.BoolVar(&opt.NoExtend, "no-extend", false, "read fixed-width codons; a trailing 1 does not extend [false]")
	fs.BoolVar(&opt.Unique, "unique", false, "skip genomes already emitted in this run [false]")
	fs.IntVar(&opt.DedupeCap, "dedupe-cap", 200000, "genomes remembered by --unique [200000]")

	// Output
	fs.StringVar(&opt.Output, "output", "text", "output format: text | json | jsonl [text]")
	fs.StringVar(&opt.Output, "o", "text", "shorthand for --output")
	fs.StringVar(&opt.Compress, "compress", "none", "compress output: none | zstd [none]")
	fs.BoolVar(&opt.Body, "body", false, "include the resolved body layout [false]")

	// Performance
	fs.IntVar(&opt.Threads, "threads", 0, "number of decode workers (0 = all CPUs) [0]")
	fs.IntVar(&opt.Threads, "t", 0, "shorthand for --threads")

	// Diagnostics
	fs.StringVar(&opt.LogLevel, "log-level", "", "log level on stderr (default $LOG_LEVEL, then warn)")
	fs.StringVar(&opt.LogFormat, "log-format", "", "log format: text | json (default $LOG_FORMAT, then text)")
	fs.BoolVar(&opt.Quiet, "quiet", false, "only log errors [false]")
	fs.BoolVar(&opt.Quiet, "q", false, "shorthand for --quiet")

	fs.BoolVar(&opt.Version, "v", false, "print version and exit (shorthand) [false]")
	fs.BoolVar(&opt.Version, "version", false, "print version and exit [false]")
	fs.BoolVar(&help, "h", false, "show this help message (shorthand) [false]")

	// Genomes may come before, between or after flags.
	flagArgs, posArgs := cliutil.SplitFlagsAndPositionals(fs, argv)
	if err := fs.Parse(flagArgs); err != nil {
		return opt, err
	}
	if help {
		fs.Usage()
		return opt, flag.ErrHelp
	}
	if opt.Version {
		return opt, nil
	}
	opt.Genomes = append(posArgs, fs.Args()...)

	// Validation
	if opt.Count < 1 {
		return opt, errors.New("--count must be ≥ 1")
	}
	if opt.Width < 1 {
		return opt, errors.New("--codon-width must be ≥ 1")
	}
	if !slices.Contains(encodings, opt.Encoding) {
		return opt, fmt.Errorf("invalid --encoding %q", opt.Encoding)
	}
	if opt.MinExp > opt.MaxExp {
		return opt, errors.New("--min-exp must be ≤ --max-exp")
	}
	if opt.MaxExp > bitseq.MaxExpLimit {
		return opt, fmt.Errorf("--max-exp must be ≤ %d", bitseq.MaxExpLimit)
	}
	if opt.GeneCount < 1 {
		return opt, errors.New("--gene-count must be ≥ 1")
	}
	if opt.StopsNeeded < 1 {
		return opt, errors.New("--stops-needed must be ≥ 1")
	}
	if opt.Threads < 0 {
		return opt, errors.New("--threads must be ≥ 0")
	}
	if opt.DedupeCap < 1 {
		return opt, errors.New("--dedupe-cap must be ≥ 1")
	}
	if opt.Variant == "" {
		return opt, errors.New("--variant must not be empty")
	}
	if !slices.Contains(outputs, opt.Output) {
		return opt, fmt.Errorf("invalid --output %q", opt.Output)
	}
	if !slices.Contains(codecs, opt.Compress) {
		return opt, fmt.Errorf("invalid --compress %q", opt.Compress)
	}
	if opt.LogFormat != "" && opt.LogFormat != "text" && opt.LogFormat != "json" {
		return opt, fmt.Errorf("invalid --log-format %q", opt.LogFormat)
	}
	return opt, nil
}

// Range is the random genome range selected by --min-exp/--max-exp.
func (o Options) Range() bitseq.Range {
	return bitseq.Range{MinExp: o.MinExp, MaxExp: o.MaxExp}
}

// Alphabet is the RNA alphabet with --stops-needed applied.
func (o Options) Alphabet() bitseq.Alphabet {
	a := bitseq.DefaultAlphabet
	a.StopsNeeded = o.StopsNeeded
	return a
}
