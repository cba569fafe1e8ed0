package abigen

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

const sampleYAML = `package: kernel
groups:
  - comment: |-
      Two lines of
      commentary.
    consts:
      - name: ExcReturnBase
        value: "0xFFFFFF00"
      - name: ThreadSPOffset
        value: "56"
`

const sampleWant = `// Code generated by abigen from sample.yaml. DO NOT EDIT.

package kernel

// Two lines of
// commentary.
const (
	ExcReturnBase = 0xFFFFFF00
	ThreadSPOffset = 56
)
`

func writeSample(t *testing.T, name, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(p, []byte(content), 0644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return p
}

func TestGenerate(t *testing.T) {
	c, err := Load(writeSample(t, "sample.yaml", sampleYAML))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	var buf bytes.Buffer
	if err := Generate(&buf, "sample.yaml", c); err != nil {
		t.Fatalf("generate: %v", err)
	}
	if diff := cmp.Diff(sampleWant, buf.String()); diff != "" {
		t.Errorf("generated source differs:\n%s", diff)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	bad := `package: kernel
groups:
  - consts:
      - name: X
        value: "not a number"
`
	if _, err := Load(writeSample(t, "bad.yaml", bad)); err == nil {
		t.Errorf("bad value accepted")
	}
}

func TestCheckFindsDrift(t *testing.T) {
	c, err := Load(writeSample(t, "sample.yaml", sampleYAML))
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	good := `package kernel

const (
	ExcReturnBase = 0xFFFFFF00
	ThreadSPOffset = 56
)
`
	problems, err := Check(writeSample(t, "good.go", good), c)
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if len(problems) != 0 {
		t.Errorf("clean source reported problems: %v", problems)
	}

	drifted := `package kernel

const ExcReturnBase = 0xFFFFFF00
const ThreadSPOffset = 60
`
	problems, err = Check(writeSample(t, "drifted.go", drifted), c)
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if len(problems) != 1 {
		t.Fatalf("want exactly one drift, got %v", problems)
	}
}
