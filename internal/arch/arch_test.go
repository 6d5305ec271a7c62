// ./internal/arch/arch_test.go
package arch

import (
	"bytes"
	"encoding/json"
	"io"
	"os/exec"
	"strings"
	"testing"
)

type pkg struct {
	ImportPath string
	Imports    []string
	Standard   bool
}

const mod = "vcfbench/"

// orchestration and presentation layers
var outer = []string{
	mod + "internal/duo", mod + "internal/pipeline", mod + "internal/writers",
	mod + "internal/output", mod + "internal/appcore", mod + "internal/app",
	mod + "internal/cli", mod + "internal/config", mod + "cmd/",
}

func TestImportBoundaries(t *testing.T) {
	cmd := exec.Command("go", "list", "-json", "./...")
	cmd.Dir = "../.."
	var out bytes.Buffer
	cmd.Stdout = &out
	if err := cmd.Run(); err != nil {
		t.Fatalf("go list: %v", err)
	}
	dec := json.NewDecoder(&out)

	// The search core stays synchronous and silent: no I/O, no logging,
	// no metrics, no loaders.
	core := append([]string{
		mod + "internal/fasta", mod + "internal/vcf", mod + "internal/bed", mod + "internal/region",
		"os", "io", "log", "log/slog", "net", "github.com/prometheus/", "go.opentelemetry.io/",
	}, outer...)

	bans := map[string][]string{
		mod + "internal/variant":  core,
		mod + "internal/replay":   core,
		mod + "internal/region":   outer,
		mod + "internal/vcf":      outer,
		mod + "internal/bed":      outer,
		mod + "internal/fasta":    outer,
		mod + "internal/pipeline": {mod + "internal/duo", mod + "internal/appcore", mod + "internal/app", mod + "internal/cli", mod + "cmd/"},
		mod + "internal/duo":      {mod + "internal/writers", mod + "internal/output", mod + "internal/appcore", mod + "internal/app", mod + "internal/cli", mod + "cmd/"},
		mod + "internal/writers":  {mod + "internal/appcore", mod + "internal/app", mod + "internal/cli", mod + "internal/pipeline", mod + "cmd/"},
		mod + "internal/output":   {mod + "internal/appcore", mod + "internal/app", mod + "internal/cli", mod + "internal/pipeline", mod + "cmd/"},
	}

	var violations []string
	for {
		var p pkg
		if err := dec.Decode(&p); err == io.EOF {
			break
		} else if err != nil {
			t.Fatalf("decode: %v", err)
		}
		if !strings.HasPrefix(p.ImportPath, mod) {
			continue
		}
		imp := p.ImportPath
		for prefix, forbidden := range bans {
			if imp != prefix {
				continue
			}
			for _, dep := range p.Imports {
				for _, ban := range forbidden {
					if dep == ban || (strings.HasSuffix(ban, "/") && strings.HasPrefix(dep, ban)) {
						violations = append(violations, imp+" → "+dep)
					}
				}
			}
		}
	}

	if len(violations) > 0 {
		t.Fatalf("import boundary violations:\n  %s", strings.Join(violations, "\n  "))
	}
}
