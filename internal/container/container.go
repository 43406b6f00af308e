// Package container provides dependency injection for the application.
// It centralizes the creation and wiring of all components, making the
// dependency graph explicit and testable.
package container

import (
	"context"
	"fmt"
	"time"

	"fjacquet/cfo-copilot/internal/agent"
	"fjacquet/cfo-copilot/internal/analysis"
	"fjacquet/cfo-copilot/internal/assist"
	"fjacquet/cfo-copilot/internal/config"
	"fjacquet/cfo-copilot/internal/dataset"
	"fjacquet/cfo-copilot/internal/logging"
	"fjacquet/cfo-copilot/internal/store"
)

// Container holds all application dependencies and provides methods to
// access them.
//
// Container is immutable after creation - all fields are private and
// can only be accessed through getter methods. This prevents accidental
// modification of dependencies after initialization.
type Container struct {
	logger   logging.Logger
	config   *config.Config
	store    *store.SampleStore
	samples  []string
	snapshot *dataset.Snapshot
	assist   assist.Client
	agent    *agent.Agent
}

// NewContainer creates and wires all application dependencies: logger,
// sample store, dataset snapshot, optional assist client and the agent.
// A dataset that fails to load is a terminal error; no agent is
// constructed and the caller reports the problem.
func NewContainer(ctx context.Context, cfg *config.Config) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}

	// Logger first, every other component needs it.
	logger := logging.NewLogrusAdapter(cfg.Log.Level, cfg.Log.Format)

	sampleStore := store.NewSampleStore(cfg.Samples.File, logger)
	samples, err := sampleStore.Questions()
	if err != nil {
		logger.WithError(err).Warn("Failed to load sample questions, using defaults")
		samples = store.DefaultQuestions()
	}

	snapshot, err := dataset.Load(ctx, cfg.Data.Source, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to load dataset: %w", err)
	}

	var assistClient assist.Client
	if cfg.AI.Enabled && cfg.AI.APIKey != "" {
		assistClient = assist.NewGeminiClient(cfg.AI.APIKey, cfg.AI.Model, logger)
		logger.Info("AI assist enabled",
			logging.Field{Key: logging.FieldModel, Value: cfg.AI.Model})
	} else {
		logger.Info("AI assist disabled")
	}

	qa := agent.New(agent.Options{
		Analyzer:      analysis.New(snapshot, logger),
		Assist:        assistClient,
		Samples:       samples,
		TrendMonths:   cfg.Analysis.TrendMonths,
		DefaultYear:   cfg.Data.DefaultYear,
		AssistTimeout: time.Duration(cfg.AI.TimeoutSeconds) * time.Second,
		Logger:        logger,
	})

	logger.Info("Container initialized successfully",
		logging.Field{Key: logging.FieldSource, Value: cfg.Data.Source},
		logging.Field{Key: "ai_enabled", Value: cfg.AI.Enabled})

	return &Container{
		logger:   logger,
		config:   cfg,
		store:    sampleStore,
		samples:  samples,
		snapshot: snapshot,
		assist:   assistClient,
		agent:    qa,
	}, nil
}

// GetLogger returns the container's logger instance.
func (c *Container) GetLogger() logging.Logger {
	return c.logger
}

// GetConfig returns the container's configuration instance.
func (c *Container) GetConfig() *config.Config {
	return c.config
}

// GetStore returns the container's sample question store.
func (c *Container) GetStore() *store.SampleStore {
	return c.store
}

// GetSamples returns a copy of the loaded sample questions.
func (c *Container) GetSamples() []string {
	samples := make([]string, len(c.samples))
	copy(samples, c.samples)
	return samples
}

// GetSnapshot returns the loaded dataset snapshot.
func (c *Container) GetSnapshot() *dataset.Snapshot {
	return c.snapshot
}

// GetAssistClient returns the assist client, or nil when assist is
// disabled.
func (c *Container) GetAssistClient() assist.Client {
	return c.assist
}

// GetAgent returns the question-answering agent.
func (c *Container) GetAgent() *agent.Agent {
	return c.agent
}

// Close performs cleanup of container resources.
// This method should be called when the container is no longer needed.
func (c *Container) Close() error {
	c.logger.Info("Container closed")
	return nil
}
