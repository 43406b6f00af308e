// Package assist provides the optional Gemini-backed rephrasing hint
// for questions the classifier cannot match. The model never classifies
// and never answers; it only suggests how to restate the question as
// one of the supported kinds. Assist stays off unless enabled in
// configuration, and any failure leaves the caller on the fixed help
// text.
package assist

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"fjacquet/cfo-copilot/internal/config"
	"fjacquet/cfo-copilot/internal/logging"
)

// Client defines the interface for rephrasing suggestions. The
// abstraction keeps the dispatcher testable without external API calls.
type Client interface {
	// Suggest returns a one-paragraph hint pointing the user at the
	// closest supported question.
	Suggest(ctx context.Context, question string, samples []string) (string, error)
}

// GeminiClient implements Client against the Google Gemini API. The
// underlying API client is created lazily on first use so construction
// never touches the network.
type GeminiClient struct {
	apiKey string
	model  string
	logger logging.Logger

	mu        sync.Mutex
	client    *genai.Client
	generator *genai.GenerativeModel
}

// NewGeminiClient creates a client for the given API key and model name.
func NewGeminiClient(apiKey, model string, logger logging.Logger) *GeminiClient {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &GeminiClient{apiKey: apiKey, model: model, logger: logger}
}

func (c *GeminiClient) ensureModel(ctx context.Context) (*genai.GenerativeModel, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.generator != nil {
		return c.generator, nil
	}
	if c.apiKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY environment variable not set")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(c.apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	c.client = client
	c.generator = client.GenerativeModel(c.model)
	return c.generator, nil
}

// Suggest implements Client. TEST_MODE suppresses all API calls so test
// runs can never reach the network.
func (c *GeminiClient) Suggest(ctx context.Context, question string, samples []string) (string, error) {
	if config.GetEnv("TEST_MODE", "") != "" {
		return "", fmt.Errorf("assist is disabled in test mode")
	}

	generator, err := c.ensureModel(ctx)
	if err != nil {
		return "", err
	}

	c.logger.Debug("Requesting rephrasing suggestion",
		logging.Field{Key: logging.FieldModel, Value: c.model})

	resp, err := generator.GenerateContent(ctx, genai.Text(buildPrompt(question, samples)))
	if err != nil {
		return "", fmt.Errorf("Gemini API error: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no response from Gemini API")
	}

	suggestion := strings.TrimSpace(fmt.Sprintf("%v", resp.Candidates[0].Content.Parts[0]))
	if suggestion == "" {
		return "", fmt.Errorf("empty response from Gemini API")
	}
	return suggestion, nil
}

// buildPrompt frames the unmatched question together with the sample
// questions the tool can actually answer.
func buildPrompt(question string, samples []string) string {
	var b strings.Builder
	b.WriteString("You help users of a finance Q&A tool that only answers questions about ")
	b.WriteString("revenue vs budget, gross margin, opex breakdown, cash runway and EBITDA.\n\n")
	b.WriteString("Example questions it can answer:\n")
	for _, sample := range samples {
		b.WriteString("- ")
		b.WriteString(sample)
		b.WriteByte('\n')
	}
	fmt.Fprintf(&b, "\nThe user asked: %q\n\n", question)
	b.WriteString("In one short paragraph, suggest how to rephrase the question so the tool can answer it. ")
	b.WriteString("Do not answer the question yourself.")
	return b.String()
}
