package app

import (
	"strings"
	"testing"

	"github.com/mangeshk619/memsource-change-app/internal/estimate"
	"github.com/mangeshk619/memsource-change-app/internal/extract"
)

func TestAppendReproFooter_AppendsDeterministicFooter(t *testing.T) {
	base := "# MT/PE change report\n"
	cmp := Comparison{
		Mode:       extract.ModeSegments,
		Normalized: true,
		Result:     estimate.Result{Algorithm: estimate.AlgorithmEditDistance},
	}
	out := appendReproFooter(base, cmp, "mt=file,pe=memsource")
	if !strings.HasPrefix(out, base) {
		t.Fatalf("footer must not alter the report body")
	}
	for _, want := range []string{"Reproducibility:", "algorithm=levenshtein", "mode=segments", "normalized=true", "source=mt=file,pe=memsource", "version=" + BuildVersion} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in footer; got:\n%s", want, out)
		}
	}
	if again := appendReproFooter(base, cmp, "mt=file,pe=memsource"); again != out {
		t.Fatalf("footer is not deterministic")
	}
}
