// Package classify applies the threshold rules to a signature pair.
// Verdicts are pure functions of (score, glide); the thresholds are
// configuration constants, not derived quantities.
package classify

// Verdict is the probe-mode classification label.
type Verdict int

const (
	Indeterminate Verdict = iota
	HighRank
	LowRank
)

func (v Verdict) String() string {
	switch v {
	case HighRank:
		return "high-rank candidate"
	case LowRank:
		return "low rank"
	default:
		return "indeterminate"
	}
}

// ProbeThresholds drives single-probe classification.
type ProbeThresholds struct {
	// HighScoreMax: score must be strictly below this AND glide strictly
	// above HighGlideMin for a high-rank verdict.
	HighScoreMax float64
	HighGlideMin int
	// LowScoreMin: score strictly above this is low rank.
	LowScoreMin float64
}

func (t ProbeThresholds) Classify(score float64, glide int) Verdict {
	switch {
	case score < t.HighScoreMax && glide > t.HighGlideMin:
		return HighRank
	case score > t.LowScoreMin:
		return LowRank
	default:
		return Indeterminate
	}
}

// MineThresholds is the stricter titan cut used by the mining loop.
type MineThresholds struct {
	ScoreMax float64
	GlideMin int
}

func (t MineThresholds) IsTitan(score float64, glide int) bool {
	return score < t.ScoreMax && glide > t.GlideMin
}
