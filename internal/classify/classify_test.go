package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var probe = ProbeThresholds{HighScoreMax: -25.0, HighGlideMin: 65, LowScoreMin: -10.0}

func TestProbeClassify(t *testing.T) {
	cases := []struct {
		score float64
		glide int
		want  Verdict
	}{
		{-26.0, 70, HighRank},
		{-20.0, 90, Indeterminate}, // fails the score bound
		{-26.0, 65, Indeterminate}, // glide must be strictly above
		{-25.0, 70, Indeterminate}, // score must be strictly below
		{-5.0, 10, LowRank},
		{-9.9, 100, LowRank},
		{-10.0, 10, Indeterminate}, // low rank needs strictly above -10
		{-15.0, 40, Indeterminate},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, probe.Classify(c.score, c.glide),
			"score=%v glide=%d", c.score, c.glide)
	}
}

func TestVerdictString(t *testing.T) {
	assert.Equal(t, "high-rank candidate", HighRank.String())
	assert.Equal(t, "low rank", LowRank.String())
	assert.Equal(t, "indeterminate", Indeterminate.String())
}

func TestMineIsTitan(t *testing.T) {
	th := MineThresholds{ScoreMax: -28.0, GlideMin: 80}
	assert.True(t, th.IsTitan(-28.5, 81))
	assert.False(t, th.IsTitan(-28.5, 80)) // glide strictly above
	assert.False(t, th.IsTitan(-28.0, 100))
	assert.False(t, th.IsTitan(-27.9, 100))
	assert.True(t, th.IsTitan(-100.0, 300))
}
