package hunt

import (
	"context"
	"math/rand"
	"sync"
	"sync/atomic"
	"time"

	"github.com/montanaflynn/stats"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"horizon/internal/classify"
	"horizon/internal/signature"
)

// Miner runs the unbounded random search: draw (A, B), skip singular
// pairs, analyze, persist titans. It only stops on context cancellation
// or a sink failure.
type Miner struct {
	cfg  MineConfig
	th   classify.MineThresholds
	log  *logrus.Logger
	sink TitanSink

	// analyze is swappable so tests can drive the loop with synthetic
	// signatures; the analyzer itself stays deterministic.
	analyze func(a, b int64) signature.Result
}

func NewMiner(cfg *Config, an *signature.Analyzer, log *logrus.Logger, sink TitanSink) *Miner {
	return &Miner{
		cfg:     cfg.Mine,
		th:      cfg.MineThresholds(),
		log:     log,
		sink:    sink,
		analyze: an.Analyze,
	}
}

// Summary is the final status report after the loop stops.
type Summary struct {
	Attempts int64
	Titans   int
	Elapsed  time.Duration
	Rate     float64 // curves per second

	// Titan score statistics; meaningful only when Titans > 0.
	BestScore float64
	MeanScore float64
}

// Run mines until ctx is cancelled. Singular pairs are skipped silently
// and never counted as attempts. With Workers == 1 and a fixed Seed the
// sequence of candidates is fully reproducible; with more workers each
// one derives its own source from the base seed.
func (m *Miner) Run(ctx context.Context) (Summary, error) {
	seed := m.cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	start := time.Now()

	var attempts int64
	var mu sync.Mutex
	var titanScores []float64

	span := 2*m.cfg.CoeffRange + 1
	g, ctx := errgroup.WithContext(ctx)
	for w := 0; w < m.cfg.Workers; w++ {
		rng := rand.New(rand.NewSource(seed + int64(w)))
		g.Go(func() error {
			for {
				select {
				case <-ctx.Done():
					return nil
				default:
				}

				a := rng.Int63n(span) - m.cfg.CoeffRange
				b := rng.Int63n(span) - m.cfg.CoeffRange
				if signature.IsSingular(a, b) {
					continue
				}

				res := m.analyze(a, b)
				n := atomic.AddInt64(&attempts, 1)

				if m.th.IsTitan(res.Score, res.Glide) {
					m.log.Infof("titan detected at attempt %d: A=%d B=%d score=%.4f glide=%d",
						n, a, b, res.Score, res.Glide)
					if err := m.sink.Append(a, b, res.Score, res.Glide); err != nil {
						return err
					}
					mu.Lock()
					titanScores = append(titanScores, res.Score)
					mu.Unlock()
				}

				if n%m.cfg.ProgressEvery == 0 {
					elapsed := time.Since(start).Seconds()
					m.log.Infof("scanning: %d curves, %.0f curves/sec", n, float64(n)/elapsed)
				}
			}
		})
	}
	err := g.Wait()

	sum := Summary{
		Attempts: atomic.LoadInt64(&attempts),
		Titans:   len(titanScores),
		Elapsed:  time.Since(start),
	}
	if s := sum.Elapsed.Seconds(); s > 0 {
		sum.Rate = float64(sum.Attempts) / s
	}
	if len(titanScores) > 0 {
		sum.BestScore, _ = stats.Min(titanScores)
		sum.MeanScore, _ = stats.Mean(titanScores)
	}
	return sum, err
}
