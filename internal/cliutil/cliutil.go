// internal/cliutil/cliutil.go
package cliutil

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// BoolFlags returns names of flags that don't require a value.
func BoolFlags(fs *flag.FlagSet) map[string]bool {
	m := map[string]bool{}
	fs.VisitAll(func(f *flag.Flag) {
		if bf, ok := f.Value.(interface{ IsBoolFlag() bool }); ok && bf.IsBoolFlag() {
			m[f.Name] = true
		}
	})
	return m
}

// SplitFlagsAndPositionals separates flag-like args from positionals,
// preserving '-','--','--x=y' semantics. Use before fs.Parse(flagArgs).
func SplitFlagsAndPositionals(fs *flag.FlagSet, argv []string) (flagArgs, posArgs []string) {
	boolFlags := BoolFlags(fs)
	for i := 0; i < len(argv); i++ {
		arg := argv[i]
		if arg == "--" {
			posArgs = append(posArgs, argv[i+1:]...)
			break
		}
		if arg == "-" {
			posArgs = append(posArgs, arg)
			continue
		}
		if strings.HasPrefix(arg, "-") {
			if strings.Contains(arg, "=") {
				flagArgs = append(flagArgs, arg)
				continue
			}
			name := strings.TrimLeft(arg, "-")
			if eq := strings.IndexByte(name, '='); eq >= 0 {
				name = name[:eq]
			}
			needsVal := !boolFlags[name]
			flagArgs = append(flagArgs, arg)
			if needsVal && i+1 < len(argv) {
				flagArgs = append(flagArgs, argv[i+1])
				i++
			}
			continue
		}
		posArgs = append(posArgs, arg)
	}
	return
}

func hasGlobMeta(s string) bool { return strings.ContainsAny(s, "*?[") }

// ExpandGenomeArgs resolves genome positionals. "-" reads genomes from stdin
// and "@path" (globs allowed) reads them from files, one per line; blank lines
// and lines starting with '#' are skipped. Anything else is a literal genome.
func ExpandGenomeArgs(posArgs []string, stdin io.Reader) ([]string, error) {
	var out []string
	for _, a := range posArgs {
		switch {
		case a == "-":
			lines, err := readGenomes(stdin)
			if err != nil {
				return nil, fmt.Errorf("stdin: %w", err)
			}
			out = append(out, lines...)
		case strings.HasPrefix(a, "@"):
			paths := []string{a[1:]}
			if hasGlobMeta(a[1:]) {
				m, err := filepath.Glob(a[1:])
				if err != nil {
					return nil, fmt.Errorf("bad glob %q: %v", a[1:], err)
				}
				if len(m) == 0 {
					return nil, fmt.Errorf("no input matched %q", a[1:])
				}
				paths = m
			}
			for _, p := range paths {
				lines, err := readGenomeFile(p)
				if err != nil {
					return nil, err
				}
				out = append(out, lines...)
			}
		default:
			out = append(out, a)
		}
	}
	return out, nil
}

func readGenomeFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	lines, err := readGenomes(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return lines, nil
}

func readGenomes(r io.Reader) ([]string, error) {
	var out []string
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64<<10), 16<<20)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		out = append(out, line)
	}
	return out, sc.Err()
}
