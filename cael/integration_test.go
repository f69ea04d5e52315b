package cael

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// TestProgramFixtures runs every testdata/*.cael program and compares its
// output with the matching .out file. A .err file names the error kind the
// run must end with.
func TestProgramFixtures(t *testing.T) {
	paths, err := filepath.Glob(filepath.Join("testdata", "*.cael"))
	if err != nil {
		t.Fatalf("glob fixtures: %v", err)
	}
	if len(paths) == 0 {
		t.Fatalf("no fixtures found")
	}
	for _, path := range paths {
		path := path
		name := strings.TrimSuffix(filepath.Base(path), ".cael")
		t.Run(name, func(t *testing.T) {
			source := readFixture(t, path)
			wantOut := readFixture(t, strings.TrimSuffix(path, ".cael")+".out")
			wantErr := ""
			if raw, err := os.ReadFile(strings.TrimSuffix(path, ".cael") + ".err"); err == nil {
				wantErr = strings.TrimSpace(string(raw))
			}

			var out bytes.Buffer
			engine := NewEngine(Config{Stdout: &out, StepQuota: 100_000})
			script, err := engine.Compile(source)
			if err != nil {
				t.Fatalf("compile %s: %v", path, err)
			}
			_, runErr := script.Run()
			switch {
			case wantErr == "" && runErr != nil:
				t.Fatalf("run %s: %v", path, runErr)
			case wantErr != "" && runErr == nil:
				t.Fatalf("run %s: expected %s error", path, wantErr)
			case wantErr != "" && KindOf(runErr).String() != wantErr:
				t.Fatalf("run %s: expected %s, got %v", path, wantErr, runErr)
			}
			if out.String() != wantOut {
				t.Fatalf("output mismatch for %s\nwant:\n%s\ngot:\n%s", path, wantOut, out.String())
			}
		})
	}
}

func readFixture(t *testing.T, path string) string {
	t.Helper()
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return string(raw)
}
