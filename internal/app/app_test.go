package app

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"morphogen/pkg/api"
)

func run(t *testing.T, args ...string) (string, string, int) {
	t.Helper()
	var out, errb bytes.Buffer
	code := Run(args, &out, &errb)
	return out.String(), errb.String(), code
}

func TestHelpAndVersion(t *testing.T) {
	out, _, code := run(t, "-h")
	if code != 0 || !strings.Contains(out, "Usage: morphogen") || !strings.Contains(out, "-codon-width") {
		t.Fatalf("help: exit %d\n%s", code, out)
	}
	out, _, code = run(t, "--version")
	if code != 0 || !strings.HasPrefix(out, "morphogen version ") {
		t.Fatalf("version: exit %d %q", code, out)
	}
}

func TestUsageErrorExit2(t *testing.T) {
	out, stderr, code := run(t, "--output", "fasta")
	if code != 2 || !strings.Contains(stderr, "invalid --output") || !strings.Contains(out, "Usage:") {
		t.Fatalf("exit %d stderr=%q", code, stderr)
	}
}

func TestDecodeExplicitGenomeText(t *testing.T) {
	out, stderr, code := run(t, "--seed", "7", "011011101111001110101100")
	if code != 0 {
		t.Fatalf("exit %d: %s", code, stderr)
	}
	for _, want := range []string{"variant=creature", "feature\t2\tNode\tfriction=11 radius=16 weight=4\t111100111010"} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in:\n%s", want, out)
		}
	}
}

func TestSeedReproducible(t *testing.T) {
	a, _, _ := run(t, "--seed", "11", "-n", "2", "-o", "json")
	b, _, _ := run(t, "-o", "json", "--seed", "11", "-n", "2")
	if a != b || a == "" {
		t.Fatalf("outputs differ:\n%s\n---\n%s", a, b)
	}
	var list []api.OrganismV1
	if err := json.Unmarshal([]byte(a), &list); err != nil || len(list) != 2 {
		t.Fatalf("json: %v (%d)", err, len(list))
	}
}

func TestUnknownVariantExit2(t *testing.T) {
	_, stderr, code := run(t, "--variant", "dragon", "0110")
	if code != 2 || !strings.Contains(stderr, `unknown variant "dragon"`) {
		t.Fatalf("exit %d stderr=%q", code, stderr)
	}
}

func TestCatalogVariant(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cat.yaml")
	doc := "kinds:\n  - {name: Eyespot, role: appendage, slots: [size]}\nvariants:\n  - {name: watcher, kinds: [Node, Eyespot]}\n"
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}
	out, stderr, code := run(t, "--catalog", path, "--variant", "watcher", "-o", "jsonl", "--body", "01100010")
	if code != 0 {
		t.Fatalf("exit %d: %s", code, stderr)
	}
	var v api.OrganismV1
	if err := json.Unmarshal([]byte(strings.TrimSpace(out)), &v); err != nil {
		t.Fatal(err)
	}
	if v.Variant != "watcher" || len(v.Features) != 2 || v.Features[1].Kind != "Eyespot" {
		t.Fatalf("organism = %+v", v)
	}
	if v.Body == nil || len(v.Body.Appendages) != 1 {
		t.Fatalf("body = %+v", v.Body)
	}

	_ = os.WriteFile(path, []byte("kinds: nope\n"), 0o644)
	if _, stderr, code := run(t, "--catalog", path, "0110"); code != 2 || !strings.Contains(stderr, path) {
		t.Fatalf("bad catalog: exit %d %q", code, stderr)
	}
}

func TestGenomesFromStdin(t *testing.T) {
	old := Stdin
	defer func() { Stdin = old }()
	Stdin = strings.NewReader("10,10,10,6,3,11,7,12,15,15,15\n")

	out, stderr, code := run(t, "--encoding", "rna", "-o", "jsonl", "-")
	if code != 0 {
		t.Fatalf("exit %d: %s", code, stderr)
	}
	var v api.OrganismV1
	if err := json.Unmarshal([]byte(strings.TrimSpace(out)), &v); err != nil {
		t.Fatal(err)
	}
	if v.Encoding != "rna" || len(v.Features) != 2 || v.Features[0].Codon != "111111" {
		t.Fatalf("organism = %+v", v)
	}
}

func TestBadLogLevelExit2(t *testing.T) {
	if _, stderr, code := run(t, "--log-level", "loud", "0110"); code != 2 || !strings.Contains(stderr, "--log-level") {
		t.Fatalf("exit %d %q", code, stderr)
	}
}
