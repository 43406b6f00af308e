// Package store loads the sample questions surfaced by the chat REPL
// and fed to the assist prompt. Questions live in a small YAML file;
// when no file is configured or the configured file is absent, a fixed
// built-in set is served instead.
package store

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"fjacquet/cfo-copilot/internal/logging"
)

// defaultQuestions covers each supported intent once.
var defaultQuestions = []string{
	"What was June 2025 revenue vs budget in USD?",
	"Show Gross Margin % trend for the last 3 months",
	"Break down Opex by category for June",
	"What is our cash runway right now?",
}

// sampleFile is the preferred YAML layout: a "questions" list.
type sampleFile struct {
	Questions []string `yaml:"questions"`
}

// SampleStore manages loading of sample questions.
type SampleStore struct {
	File   string
	logger logging.Logger
}

// NewSampleStore creates a store reading from the given file. An empty
// file name means the built-in defaults are always served.
func NewSampleStore(file string, logger logging.Logger) *SampleStore {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &SampleStore{File: file, logger: logger}
}

// DefaultQuestions returns a copy of the built-in sample questions.
func DefaultQuestions() []string {
	questions := make([]string, len(defaultQuestions))
	copy(questions, defaultQuestions)
	return questions
}

// Questions returns the configured sample questions. A missing file is
// not an error: the defaults are returned, with a warning when a file
// was explicitly configured. Unreadable or malformed files are errors.
func (s *SampleStore) Questions() ([]string, error) {
	if s.File == "" {
		return DefaultQuestions(), nil
	}

	path, err := s.resolveFile(s.File)
	if err != nil {
		if os.IsNotExist(err) {
			s.logger.Warn("Sample questions file not found, using defaults",
				logging.Field{Key: logging.FieldFile, Value: s.File})
			return DefaultQuestions(), nil
		}
		return nil, fmt.Errorf("error resolving sample questions file: %w", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading sample questions file: %w", err)
	}

	questions, err := parseQuestions(data)
	if err != nil {
		return nil, fmt.Errorf("error parsing sample questions file %s: %w", path, err)
	}
	if len(questions) == 0 {
		s.logger.Warn("Sample questions file is empty, using defaults",
			logging.Field{Key: logging.FieldFile, Value: path})
		return DefaultQuestions(), nil
	}

	s.logger.Debug("Loaded sample questions",
		logging.Field{Key: logging.FieldFile, Value: path},
		logging.Field{Key: logging.FieldCount, Value: len(questions)})
	return questions, nil
}

// resolveFile locates the questions file. Absolute paths are used as
// given; relative names are probed in the working directory, ./config
// and ~/.config/cfo-copilot.
func (s *SampleStore) resolveFile(name string) (string, error) {
	if filepath.IsAbs(name) {
		if _, err := os.Stat(name); err != nil {
			return "", err
		}
		return name, nil
	}

	locations := []string{
		name,
		filepath.Join("config", name),
	}
	if homeDir, err := os.UserHomeDir(); err == nil {
		locations = append(locations, filepath.Join(homeDir, ".config", "cfo-copilot", name))
	}

	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location, nil
		}
	}
	return "", os.ErrNotExist
}

// parseQuestions accepts both the keyed layout ("questions: [...]") and
// a bare YAML list, skipping blank entries in either.
func parseQuestions(data []byte) ([]string, error) {
	var keyed sampleFile
	if err := yaml.Unmarshal(data, &keyed); err == nil {
		return cleanQuestions(keyed.Questions), nil
	}

	var bare []string
	if err := yaml.Unmarshal(data, &bare); err != nil {
		return nil, err
	}
	return cleanQuestions(bare), nil
}

func cleanQuestions(raw []string) []string {
	questions := make([]string, 0, len(raw))
	for _, q := range raw {
		q = strings.TrimSpace(q)
		if q != "" {
			questions = append(questions, q)
		}
	}
	return questions
}
