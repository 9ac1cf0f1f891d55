// Package clickmodel contains the click models the experiment harness can
// train and the registry resolving them by name.
package clickmodel

import (
	"encoding/json"

	"github.com/clickexp/clickexp/internal"
)

// DefaultEMIterations is the number of EM passes used by the EM models
const DefaultEMIterations = 50

// ClickModel is the capability contract the harness relies on
type ClickModel interface {
	// Name is the model type name, used to build output file names.
	Name() string

	// Train estimates the parameters from sessions, mutating the model.
	Train(sessions []*internal.SearchSession)

	// FullClickProbs returns the unconditional click probability of every
	// result of s, aligned with s.WebResults.
	FullClickProbs(s *internal.SearchSession) []float64

	// ConditionalClickProbs returns, for every rank, the probability of the
	// observed click (or skip) given the clicks above it.
	ConditionalClickProbs(s *internal.SearchSession) []float64

	// PredictRelevance returns the satisfaction probability of a result
	// for a query.
	PredictRelevance(query, resultID string) float64
}

// Iterative is implemented by models trained in several passes
type Iterative interface {
	Iterations() int
	OnIteration(fn func(iteration int))
}

// Options configure model construction
type Options struct {
	EMIterations int
}

func (o Options) emIterations() int {
	if o.EMIterations <= 0 {
		return DefaultEMIterations
	}
	return o.EMIterations
}

// Serialize renders the trained parameters of m as indented JSON
func Serialize(m ClickModel) ([]byte, error) {
	return json.MarshalIndent(m, "", "  ")
}

// conditionalIndependent converts full probabilities of independent clicks into the
// probabilities of the observed outcomes
func conditionalIndependent(s *internal.SearchSession, probs []float64) []float64 {
	out := make([]float64, len(probs))
	for i, p := range probs {
		if s.WebResults[i].Click {
			out[i] = p
		} else {
			out[i] = 1 - p
		}
	}
	return out
}
