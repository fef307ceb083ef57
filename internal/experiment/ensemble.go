package experiment

import (
	"context"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/san-kum/trails/internal/config"
	"github.com/san-kum/trails/internal/sim"
)

// Ensemble runs the same configuration headless under consecutive seeds.
type Ensemble struct {
	cfg       *config.Config
	numRuns   int
	seedStart uint64
	log       *log.Logger
}

func NewEnsemble(cfg *config.Config, numRuns int, seedStart uint64, logger *log.Logger) *Ensemble {
	return &Ensemble{cfg: cfg, numRuns: numRuns, seedStart: seedStart, log: logger}
}

// Run starts one goroutine per run. Results are in seed order; the first
// error by seed order is returned.
func (e *Ensemble) Run(ctx context.Context) ([]*sim.Result, error) {
	results := make([]*sim.Result, e.numRuns)
	errs := make([]error, e.numRuns)

	var wg sync.WaitGroup
	for i := 0; i < e.numRuns; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			cfgCopy := *e.cfg
			cfgCopy.Seed = e.seedStart + uint64(idx)
			cfgCopy.FPS = 0

			exp, err := New(&cfgCopy, nil, e.log)
			if err != nil {
				errs[idx] = err
				return
			}
			results[idx], errs[idx] = exp.Run(ctx)
		}(i)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return results, nil
}

// Mean averages each metric over results.
func Mean(results []*sim.Result) map[string]float64 {
	out := make(map[string]float64)
	if len(results) == 0 {
		return out
	}
	for _, r := range results {
		for k, v := range r.Metrics {
			out[k] += v
		}
	}
	for k := range out {
		out[k] /= float64(len(results))
	}
	return out
}
