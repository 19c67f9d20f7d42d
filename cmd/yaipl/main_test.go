package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/k0kubun/pp"
)

// Not parallel: redirects pp's default output.
func TestRunDebugDumpsInArgumentOrder(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, "first.yaipl")
	second := filepath.Join(dir, "second.yaipl")
	if err := os.WriteFile(first, []byte("alpha = 1\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(second, []byte("omega = 2\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	orig := pp.GetDefaultOutput()
	pp.SetDefaultOutput(&buf)
	defer pp.SetDefaultOutput(orig)

	if code := run([]string{"--debug", "--check", "--no-color", first, second}); code != 0 {
		t.Fatalf("run: exit code %d\n%s", code, buf.String())
	}

	out := buf.String()
	i := strings.Index(out, `"alpha"`)
	j := strings.Index(out, `"omega"`)
	if i < 0 || j < 0 {
		t.Fatalf("dumps are missing from the output:\n%s", out)
	}
	if i > j {
		t.Errorf("dumps are not in argument order:\n%s", out)
	}
}
