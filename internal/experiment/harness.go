// Package experiment drives a single click model experiment: load the log,
// split it, train, evaluate, persist the model and export probabilities.
package experiment

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/clickexp/clickexp/internal"
	"github.com/clickexp/clickexp/internal/clickmodel"
	"github.com/clickexp/clickexp/internal/config"
	"github.com/clickexp/clickexp/internal/evaluation"
	"github.com/clickexp/clickexp/internal/export"
	"github.com/clickexp/clickexp/internal/ledger"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// ModelsDir is the directory under the output path holding serialized models
const ModelsDir = "models"

// Harness runs one experiment
type Harness struct {
	cfg           config.Experiment
	registry      *clickmodel.Registry
	parser        internal.Parser
	logLikelihood evaluation.LogLikelihoodEvaluator
	perplexity    evaluation.PerplexityEvaluator
	sinks         []ledger.Sink
	logger        zerolog.Logger
	now           func() time.Time
	progress      bool
}

// Option configures a Harness
type Option func(*Harness)

// WithRegistry sets the model registry
func WithRegistry(r *clickmodel.Registry) Option {
	return func(h *Harness) { h.registry = r }
}

// WithParser sets the session log parser
func WithParser(p internal.Parser) Option {
	return func(h *Harness) { h.parser = p }
}

// WithEvaluators replaces the log-likelihood and perplexity evaluators
func WithEvaluators(ll evaluation.LogLikelihoodEvaluator, perp evaluation.PerplexityEvaluator) Option {
	return func(h *Harness) {
		h.logLikelihood = ll
		h.perplexity = perp
	}
}

// WithSinks adds ledger sinks besides the CSV ledger
func WithSinks(sinks ...ledger.Sink) Option {
	return func(h *Harness) { h.sinks = append(h.sinks, sinks...) }
}

// WithLogger sets the event sink
func WithLogger(l zerolog.Logger) Option {
	return func(h *Harness) { h.logger = l }
}

// WithClock sets the time source of ledger timestamps
func WithClock(now func() time.Time) Option {
	return func(h *Harness) { h.now = now }
}

// WithProgress enables a terminal progress bar while training iterative models
func WithProgress(enabled bool) Option {
	return func(h *Harness) { h.progress = enabled }
}

// NewHarness creates a harness for cfg
func NewHarness(cfg config.Experiment, opts ...Option) *Harness {
	h := &Harness{
		cfg:           cfg,
		registry:      clickmodel.DefaultRegistry(clickmodel.Options{}),
		parser:        internal.NewYandexParser(),
		logLikelihood: evaluation.LogLikelihood{},
		perplexity:    evaluation.Perplexity{},
		logger:        internal.Logger(),
		now:           time.Now,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Result summarizes a finished experiment
type Result struct {
	RunID        string
	ModelName    string
	SessionCount int
	Split        *internal.Split
	Record       *ledger.Record
	ModelPath    string
	ExportPaths  map[string]string // export kind -> file
}

// LedgerPath returns the CSV ledger location of the experiment
func (h *Harness) LedgerPath() string {
	return filepath.Join(h.cfg.OutputPath, ledger.FileName)
}

// Run executes the experiment
func (h *Harness) Run() (*Result, error) {
	runID := uuid.NewString()
	log := h.logger.With().Str("run_id", runID).Str("model", h.cfg.ModelName).Logger()

	modelsDir := filepath.Join(h.cfg.OutputPath, ModelsDir)
	created, err := internal.EnsureDir(modelsDir)
	if err != nil {
		return nil, err
	}
	log.Debug().Str("dir", modelsDir).Bool("created", created).Msg("Models directory ready")

	model, err := h.registry.New(h.cfg.ModelName)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	sessions, err := h.parser.Parse(h.cfg.SearchLogFile, h.cfg.SessionLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to load sessions: %w", err)
	}
	log.Info().
		Str("phase", "parse").
		Str("log_file", h.cfg.SearchLogFile).
		Int("sessions", len(sessions)).
		Dur("duration", time.Since(start)).
		Msg("Loaded search sessions")

	split := internal.SplitSessions(sessions)
	log.Info().
		Str("phase", "split").
		Int("train_sessions", len(split.Train)).
		Int("train_queries", split.TrainQueries.Len()).
		Int("test_candidates", len(split.TestCandidates)).
		Int("test_sessions", len(split.Test)).
		Msg("Split search sessions")

	h.train(model, split.Train, log)

	recorder := &Recorder{
		logFile:       h.cfg.SearchLogFile,
		logLikelihood: h.logLikelihood,
		perplexity:    h.perplexity,
		sinks:         append([]ledger.Sink{ledger.NewCSVLedger(h.LedgerPath())}, h.sinks...),
		logger:        log,
		now:           h.now,
	}
	rec, err := recorder.Record(runID, model, split)
	if err != nil {
		return nil, err
	}

	modelPath, err := h.saveModel(model, modelsDir)
	if err != nil {
		return nil, err
	}
	log.Info().Str("phase", "save").Str("path", modelPath).Msg("Saved click model")

	exportPaths := make(map[string]string, len(export.Kinds))
	for _, kind := range export.Kinds {
		path, err := h.export(kind, model, sessions, log)
		if err != nil {
			return nil, err
		}
		exportPaths[kind] = path
	}

	return &Result{
		RunID:        runID,
		ModelName:    model.Name(),
		SessionCount: len(sessions),
		Split:        split,
		Record:       rec,
		ModelPath:    modelPath,
		ExportPaths:  exportPaths,
	}, nil
}

func (h *Harness) train(model clickmodel.ClickModel, sessions []*internal.SearchSession, log zerolog.Logger) {
	log.Info().
		Str("phase", "train").
		Int("sessions", len(sessions)).
		Msg("Training click model")

	if it, ok := model.(clickmodel.Iterative); ok && h.progress {
		bar := internal.NewProgressBar(it.Iterations(), "training "+model.Name())
		it.OnIteration(func(int) { _ = bar.Add(1) })
		defer func() { _ = bar.Finish() }()
	}

	start := time.Now()
	model.Train(sessions)
	log.Info().
		Str("phase", "train").
		Dur("duration", time.Since(start)).
		Msg("Trained click model")
}

// saveModel overwrites {modelsDir}/{Name}.json
func (h *Harness) saveModel(model clickmodel.ClickModel, modelsDir string) (string, error) {
	path := filepath.Join(modelsDir, model.Name()+".json")
	data, err := clickmodel.Serialize(model)
	if err != nil {
		return "", fmt.Errorf("failed to serialize model %s: %w", model.Name(), err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", &internal.StorageError{Path: path, Op: "write", Err: err}
	}
	return path, nil
}

// export runs one export pass over all sessions, truncating its file
func (h *Harness) export(kind string, model clickmodel.ClickModel, sessions []*internal.SearchSession, log zerolog.Logger) (string, error) {
	exporter, err := export.NewExporter(kind)
	if err != nil {
		return "", err
	}

	path := filepath.Join(h.cfg.OutputPath, export.FileName(model.Name(), exporter))
	start := time.Now()

	f, err := os.Create(path)
	if err != nil {
		return "", &internal.ExportError{Kind: kind, Path: path, Err: err}
	}
	if err := exporter.Export(model, sessions, f); err != nil {
		_ = f.Close()
		return "", &internal.ExportError{Kind: kind, Path: path, Err: err}
	}
	if err := f.Close(); err != nil {
		return "", &internal.ExportError{Kind: kind, Path: path, Err: err}
	}

	log.Info().
		Str("phase", "export").
		Str("kind", kind).
		Str("path", path).
		Dur("duration", time.Since(start)).
		Msg("Exported probabilities")
	return path, nil
}
