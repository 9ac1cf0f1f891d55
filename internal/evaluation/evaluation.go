// Package evaluation scores trained click models on session data.
package evaluation

import (
	"math"

	"github.com/clickexp/clickexp/internal"
	"github.com/clickexp/clickexp/internal/clickmodel"
)

// MaxRank is the number of leading ranks perplexity is computed for
const MaxRank = 10

const minProb = 1e-10

// LogLikelihoodEvaluator computes the log-likelihood of sessions under a model
type LogLikelihoodEvaluator interface {
	Evaluate(m clickmodel.ClickModel, sessions []*internal.SearchSession) float64
}

// PerplexityEvaluator computes the aggregate perplexity and its per-rank breakdown
type PerplexityEvaluator interface {
	Evaluate(m clickmodel.ClickModel, sessions []*internal.SearchSession) (float64, []float64)
}

func clamp(p float64) float64 {
	return math.Min(math.Max(p, minProb), 1-minProb)
}

// LogLikelihood averages, over sessions, the mean log probability of the
// observed clicks. No sessions yields NaN.
type LogLikelihood struct{}

func (LogLikelihood) Evaluate(m clickmodel.ClickModel, sessions []*internal.SearchSession) float64 {
	var (
		total float64
		n     int
	)
	for _, s := range sessions {
		if len(s.WebResults) == 0 {
			continue
		}
		var sum float64
		probs := m.ConditionalClickProbs(s)
		for _, p := range probs {
			sum += math.Log(clamp(p))
		}
		total += sum / float64(len(probs))
		n++
	}
	if n == 0 {
		return math.NaN()
	}
	return total / float64(n)
}

// Perplexity computes 2^(-mean log2 p) per rank, where p is the predicted
// probability of the observed outcome, and averages it over MaxRank ranks.
type Perplexity struct{}

func (Perplexity) Evaluate(m clickmodel.ClickModel, sessions []*internal.SearchSession) (float64, []float64) {
	if len(sessions) == 0 {
		return math.NaN(), nil
	}

	logSums := make([]float64, MaxRank)
	for _, s := range sessions {
		probs := m.FullClickProbs(s)
		clicks := s.Clicks()
		for rank, p := range probs {
			if rank >= MaxRank {
				break
			}
			if !clicks[rank] {
				p = 1 - p
			}
			logSums[rank] += math.Log2(clamp(p))
		}
	}

	perRank := make([]float64, MaxRank)
	var total float64
	for rank, sum := range logSums {
		perRank[rank] = math.Pow(2, -sum/float64(len(sessions)))
		total += perRank[rank]
	}
	return total / float64(MaxRank), perRank
}
