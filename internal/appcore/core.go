// internal/appcore/core.go
package appcore

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"iter"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"morphogen-core/bitseq"
	"morphogen-core/organism"
	"morphogen/internal/body"
	"morphogen/internal/cmdutil"
	"morphogen/internal/output"
	"morphogen/internal/pipeline"
	"morphogen/internal/runutil"
	"morphogen/internal/writers"
	"morphogen/pkg/api"
)

type Options struct {
	// Explicit genomes; when empty, Count random ones are drawn.
	Genomes []string
	Count   int

	Encoding  string
	Width     int
	Range     bitseq.Range
	GeneCount int
	Alphabet  bitseq.Alphabet

	Variant  organism.Variant
	NoExtend bool
	Body     bool

	// Unique skips genomes seen among the last DedupeCap emitted.
	Unique    bool
	DedupeCap int

	Threads int   // decode workers; 0 = all CPUs
	Seed    int64 // 0 = time based
	Log     *logrus.Logger
}

// ParseGenomes turns explicit genome arguments into genomes of the given encoding.
func ParseGenomes(raw []string, encoding string, width int, a bitseq.Alphabet) ([]organism.Genome, error) {
	out := make([]organism.Genome, 0, len(raw))
	for i, s := range raw {
		var (
			g   organism.Genome
			err error
		)
		switch encoding {
		case bitseq.EncodingRNA:
			g, err = bitseq.ParseRNA(s, a)
		case bitseq.EncodingBits, "":
			g, err = bitseq.New(s, width)
		default:
			err = fmt.Errorf("unknown encoding %q", encoding)
		}
		if err != nil {
			return nil, fmt.Errorf("genome %d: %w", i+1, err)
		}
		out = append(out, g)
	}
	return out, nil
}

func randomGenome(rng *rand.Rand, o Options) (organism.Genome, error) {
	if o.Encoding == bitseq.EncodingRNA {
		return bitseq.RandomRNA(rng, o.GeneCount, o.Alphabet)
	}
	return bitseq.Random(rng, o.Range, o.Width)
}

// Run decodes every genome and streams the wire organisms to wf.
// Exit codes: 0 ok, 2 configuration, 3 output I/O, 130 cancelled.
func Run(parent context.Context, stdout, stderr io.Writer, o Options, wf WriterFactory) int {
	log := o.Log
	if log == nil {
		log = logrus.New()
		log.SetOutput(io.Discard)
	}
	if o.Variant == nil {
		o.Variant = organism.Plain
	}
	if err := organism.ValidateVariant(o.Variant); err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}
	explicit, err := ParseGenomes(o.Genomes, o.Encoding, o.Width, o.Alphabet)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}

	seed := o.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	log.WithFields(logrus.Fields{"seed": seed, "variant": o.Variant.Name()}).Info("decoding")
	rng := rand.New(rand.NewSource(seed))

	outw := bufio.NewWriter(stdout)
	inCh, writeErr := wf.Start(outw, 16)

	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	source := genomeSource(rng, explicit, o, log)
	work := func(j decodeJob) (api.OrganismV1, error) { return decodeOne(j.id, j.genome, o, log) }
	total, perr := cmdutil.RunStream(ctx, func(emit func(api.OrganismV1) error) error {
		return pipeline.Run(ctx, pipeline.Config{Threads: o.Threads}, source, work, emit)
	}, inCh)

	close(inCh)

	if werr := <-writeErr; writers.IsBrokenPipe(werr) {
		return 0
	} else if werr != nil {
		fmt.Fprintln(stderr, werr)
		return 3
	}
	if e := outw.Flush(); writers.IsBrokenPipe(e) {
		return 0
	} else if e != nil {
		fmt.Fprintln(stderr, e)
		return 3
	}

	if perr != nil {
		if errors.Is(perr, context.Canceled) {
			return 130
		}
		fmt.Fprintln(stderr, perr)
		return 2
	}
	log.Infof("decoded %d organisms", total)
	return 0
}

type decodeJob struct {
	id     string
	genome organism.Genome
}

// genomeSource draws genomes and ids serially from rng, so a seed fixes the
// output regardless of how many workers decode.
func genomeSource(rng *rand.Rand, explicit []organism.Genome, o Options, log *logrus.Logger) iter.Seq2[decodeJob, error] {
	n := len(explicit)
	if n == 0 {
		n = o.Count
	}
	var seen *runutil.LRUSet[string]
	if o.Unique {
		seen = runutil.NewLRUSet[string](o.DedupeCap)
	}
	return func(yield func(decodeJob, error) bool) {
		for i := 0; i < n; i++ {
			var g organism.Genome
			if len(explicit) > 0 {
				g = explicit[i]
			} else {
				var err error
				if g, err = randomGenome(rng, o); err != nil {
					yield(decodeJob{}, err)
					return
				}
			}
			if seen != nil && seen.Add(g.Encoding()+":"+g.String()) {
				log.WithField("genome", g.String()).Debug("duplicate genome skipped")
				continue
			}
			id, err := uuid.NewRandomFromReader(rng)
			if err != nil {
				yield(decodeJob{}, err)
				return
			}
			if !yield(decodeJob{id: id.String(), genome: g}, nil) {
				return
			}
		}
	}
}

func decodeOne(id string, g organism.Genome, o Options, log *logrus.Logger) (api.OrganismV1, error) {
	entry := log.WithField("organism", id)
	org, err := organism.New(organism.Options{Genome: g, Variant: o.Variant, Logger: entry, NoExtend: o.NoExtend})
	if err != nil {
		return api.OrganismV1{}, err
	}
	v := output.ToAPIOrganism(id, org)
	if o.Body {
		bp, err := body.Build(org)
		switch {
		case errors.Is(err, body.ErrNoNodes):
			entry.Warn("no node features; body omitted")
		case err != nil:
			return v, err
		default:
			v.Body = output.ToAPIBody(bp)
		}
	}
	entry.WithFields(logrus.Fields{"features": len(v.Features), "dropped": v.Dropped}).Debug("decoded")
	return v, nil
}
