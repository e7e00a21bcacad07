package hunt

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"horizon/internal/classify"
	"horizon/internal/primes"
	"horizon/internal/signature"
)

// BuildAnalyzer constructs the prime table and the analyzer from config.
// A bound too small for the requested prime count is fatal here, before
// any analysis starts.
func BuildAnalyzer(cfg *Config) (*signature.Analyzer, error) {
	t, err := primes.New(cfg.PrimeCount, cfg.PrimeBound)
	if err != nil {
		return nil, err
	}
	return signature.NewAnalyzer(t, cfg.GlideCap), nil
}

// ParseCoeff parses a curve coefficient from user input. Anything that is
// not a signed decimal integer is a user error reported before any
// computation.
func ParseCoeff(s string) (int64, error) {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("integers only, got %q", s)
	}
	return n, nil
}

// Report is the outcome of a single probe.
type Report struct {
	A, B     int64
	Score    float64
	Glide    int
	Elapsed  time.Duration
	Verdict  classify.Verdict
	Singular bool
}

// Probe analyzes one curve and classifies it. Singular input is analyzed
// anyway (the analyzer is deterministic on it) but flagged in the report.
func Probe(an *signature.Analyzer, th classify.ProbeThresholds, a, b int64) Report {
	start := time.Now()
	res := an.Analyze(a, b)
	return Report{
		A:        a,
		B:        b,
		Score:    res.Score,
		Glide:    res.Glide,
		Elapsed:  time.Since(start),
		Verdict:  th.Classify(res.Score, res.Glide),
		Singular: signature.IsSingular(a, b),
	}
}

// Format writes the human-readable diagnostic report. Score is displayed
// to 4 decimals; the full precision stays in the Report for callers that
// compare thresholds.
func (r Report) Format(w io.Writer) {
	fmt.Fprintf(w, "curve: y^2 = x^3 + (%d)x + (%d)\n", r.A, r.B)
	if r.Singular {
		fmt.Fprintf(w, "warning: singular curve (4A^3+27B^2 = 0)\n")
	}
	fmt.Fprintf(w, "analytic signature (BSD): %.4f\n", r.Score)
	fmt.Fprintf(w, "dynamic resistance (glide): %d\n", r.Glide)
	fmt.Fprintf(w, "compute time: %.2f ms\n", float64(r.Elapsed.Microseconds())/1000)
	fmt.Fprintf(w, "classification: %s\n", r.Verdict)
}
