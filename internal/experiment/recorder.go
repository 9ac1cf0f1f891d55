package experiment

import (
	"time"

	"github.com/clickexp/clickexp/internal"
	"github.com/clickexp/clickexp/internal/clickmodel"
	"github.com/clickexp/clickexp/internal/evaluation"
	"github.com/clickexp/clickexp/internal/ledger"
	"github.com/rs/zerolog"
)

// Recorder scores a trained model on both partitions and appends the
// result to every ledger sink
type Recorder struct {
	logFile       string
	logLikelihood evaluation.LogLikelihoodEvaluator
	perplexity    evaluation.PerplexityEvaluator
	sinks         []ledger.Sink
	logger        zerolog.Logger
	now           func() time.Time
}

// Record evaluates m and persists one ledger row
func (r *Recorder) Record(runID string, m clickmodel.ClickModel, split *internal.Split) (*ledger.Record, error) {
	r.logger.Info().
		Str("phase", "evaluate").
		Int("test_sessions", len(split.Test)).
		Int("test_queries", split.TestQueries.Len()).
		Msg("Testing click model")

	start := time.Now()
	llTrain := r.logLikelihood.Evaluate(m, split.Train)
	llTest := r.logLikelihood.Evaluate(m, split.Test)
	r.logger.Info().
		Str("phase", "loglikelihood").
		Float64("loglikelihood", llTest).
		Dur("duration", time.Since(start)).
		Msg("Computed log-likelihood")

	start = time.Now()
	perpTrain, _ := r.perplexity.Evaluate(m, split.Train)
	perpTest, _ := r.perplexity.Evaluate(m, split.Test)
	r.logger.Info().
		Str("phase", "perplexity").
		Float64("perplexity", perpTest).
		Dur("duration", time.Since(start)).
		Msg("Computed perplexity")

	rec := &ledger.Record{
		RunID:              runID,
		Timestamp:          r.now(),
		LogFile:            r.logFile,
		ModelName:          m.Name(),
		TrainSessionCount:  len(split.Train),
		TrainQueryCount:    split.TrainQueries.Len(),
		TestSessionCount:   len(split.Test),
		TestQueryCount:     split.TestQueries.Len(),
		LogLikelihoodTrain: llTrain,
		LogLikelihoodTest:  llTest,
		PerplexityTrain:    perpTrain,
		PerplexityTest:     perpTest,
	}

	for _, sink := range r.sinks {
		if err := sink.Append(rec); err != nil {
			return nil, err
		}
	}

	return rec, nil
}
