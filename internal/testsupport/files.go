package testsupport

import (
	"os"
	"path/filepath"
	"strconv"
	"testing"
)

// WriteStubBinary writes an executable named name into dir that prints
// output and exits 0. It returns the executable path.
func WriteStubBinary(t testing.TB, dir, name, output string) string {
	t.Helper()

	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir bin dir: %v", err)
	}
	payload := filepath.Join(dir, name+".out")
	if err := os.WriteFile(payload, []byte(output), 0o644); err != nil {
		t.Fatalf("write stub payload: %v", err)
	}
	target := filepath.Join(dir, name)
	script := "#!/bin/sh\ncat " + quote(payload) + "\n"
	if err := os.WriteFile(target, []byte(script), 0o755); err != nil {
		t.Fatalf("write stub %s: %v", name, err)
	}
	return target
}

func quote(s string) string {
	return strconv.Quote(s)
}
