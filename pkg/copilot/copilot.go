// Package copilot exposes the finance question answering core as an
// embeddable library. Callers point it at a dataset once and ask
// questions against the loaded snapshot, without the CLI or any
// configuration files.
package copilot

import (
	"context"
	"fmt"
	"time"

	"fjacquet/cfo-copilot/internal/agent"
	"fjacquet/cfo-copilot/internal/analysis"
	"fjacquet/cfo-copilot/internal/assist"
	"fjacquet/cfo-copilot/internal/dataset"
	"fjacquet/cfo-copilot/internal/logging"
	"fjacquet/cfo-copilot/internal/models"
	"fjacquet/cfo-copilot/internal/store"
)

// Options configures a Copilot. Source names either a directory of CSV
// tables or an .xlsx workbook and is the only required field. Zero
// values select the current year, a three month trend window, a quiet
// logger and no AI assist; a non-empty AssistKey enables the Gemini
// fallback for questions the keyword parser cannot place.
type Options struct {
	Source      string
	DefaultYear int
	TrendMonths int
	AssistKey   string
	AssistModel string
	Logger      logging.Logger
}

// Copilot answers finance questions against one loaded dataset. It
// holds no mutable state, so concurrent Ask calls are safe.
type Copilot struct {
	agent    *agent.Agent
	samples  []string
	snapshot *dataset.Snapshot
}

// New loads the dataset named by opts.Source and builds the question
// answering agent over it. A dataset that fails to load is a terminal
// error.
func New(ctx context.Context, opts Options) (*Copilot, error) {
	if opts.Source == "" {
		return nil, fmt.Errorf("source cannot be empty")
	}

	logger := opts.Logger
	if logger == nil {
		logger = logging.NewLogrusAdapter("warn", "text")
	}

	snapshot, err := dataset.Load(ctx, opts.Source, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to load dataset: %w", err)
	}

	defaultYear := opts.DefaultYear
	if defaultYear <= 0 {
		defaultYear = time.Now().UTC().Year()
	}

	var assistClient assist.Client
	if opts.AssistKey != "" {
		model := opts.AssistModel
		if model == "" {
			model = "gemini-2.0-flash"
		}
		assistClient = assist.NewGeminiClient(opts.AssistKey, model, logger)
	}

	samples := store.DefaultQuestions()

	qa := agent.New(agent.Options{
		Analyzer:    analysis.New(snapshot, logger),
		Assist:      assistClient,
		Samples:     samples,
		TrendMonths: opts.TrendMonths,
		DefaultYear: defaultYear,
		Logger:      logger,
	})

	return &Copilot{agent: qa, samples: samples, snapshot: snapshot}, nil
}

// Ask answers one question. The reply always carries text, even for
// questions the copilot cannot interpret.
func (c *Copilot) Ask(ctx context.Context, question string) models.Envelope {
	return c.agent.Process(ctx, question)
}

// SampleQuestions returns the built-in questions the copilot answers
// directly.
func (c *Copilot) SampleQuestions() []string {
	samples := make([]string, len(c.samples))
	copy(samples, c.samples)
	return samples
}

// Counts reports the number of loaded rows per table.
func (c *Copilot) Counts() map[string]int {
	return c.snapshot.Counts()
}
