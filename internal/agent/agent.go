// Package agent dispatches free-text questions to the matching
// aggregation and wraps every outcome in a response envelope. Process
// is the single entry point for all presentation layers: it never
// panics and never returns an error, so callers always have text to
// show.
package agent

import (
	"context"
	"fmt"
	"time"

	"fjacquet/cfo-copilot/internal/analysis"
	"fjacquet/cfo-copilot/internal/assist"
	"fjacquet/cfo-copilot/internal/chart"
	"fjacquet/cfo-copilot/internal/currencyutils"
	"fjacquet/cfo-copilot/internal/intent"
	"fjacquet/cfo-copilot/internal/logging"
	"fjacquet/cfo-copilot/internal/models"
)

// helpText is the fixed reply for questions no rule matches.
const helpText = "I'm not sure how to help with that question. Please ask about revenue vs budget, gross margin, opex breakdown, cash runway, or EBITDA."

// QuestionParser classifies a question and extracts the period it
// refers to. The interface exists so dispatch-tier failure containment
// can be tested with a crashing implementation.
type QuestionParser interface {
	Classify(question string) models.Intent
	ExtractPeriod(question string, defaultYear int) models.PeriodFilter
}

// keywordParser adapts the intent package to QuestionParser.
type keywordParser struct{}

func (keywordParser) Classify(question string) models.Intent {
	return intent.Classify(question)
}

func (keywordParser) ExtractPeriod(question string, defaultYear int) models.PeriodFilter {
	return intent.ExtractPeriod(question, defaultYear)
}

// Options configures an Agent. Zero values select the built-in keyword
// parser, a three month margin trend, a 30 second assist timeout and no
// assist client.
type Options struct {
	Analyzer      *analysis.Analyzer
	Parser        QuestionParser
	Assist        assist.Client
	Samples       []string
	TrendMonths   int
	DefaultYear   int
	AssistTimeout time.Duration
	Logger        logging.Logger
}

// Agent answers questions against one loaded dataset. It holds no
// mutable state, so concurrent Process calls are safe.
type Agent struct {
	analyzer      *analysis.Analyzer
	parser        QuestionParser
	assist        assist.Client
	samples       []string
	trendMonths   int
	defaultYear   int
	assistTimeout time.Duration
	logger        logging.Logger
}

// New creates an Agent from options.
func New(opts Options) *Agent {
	logger := opts.Logger
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	parser := opts.Parser
	if parser == nil {
		parser = keywordParser{}
	}
	trendMonths := opts.TrendMonths
	if trendMonths <= 0 {
		trendMonths = 3
	}
	timeout := opts.AssistTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &Agent{
		analyzer:      opts.Analyzer,
		parser:        parser,
		assist:        opts.Assist,
		samples:       opts.Samples,
		trendMonths:   trendMonths,
		defaultYear:   opts.DefaultYear,
		assistTimeout: timeout,
		logger:        logger,
	}
}

// Process answers one question. Any panic below the dispatcher is
// converted into an error-intent envelope carrying the panic message,
// so the reply text is never empty, whatever the input.
func (a *Agent) Process(ctx context.Context, question string) (envelope models.Envelope) {
	defer func() {
		if r := recover(); r != nil {
			a.logger.Error("Recovered from panic while processing question",
				logging.Field{Key: logging.FieldQuestion, Value: question},
				logging.Field{Key: logging.FieldError, Value: fmt.Sprint(r)})
			envelope = errorEnvelope(fmt.Sprintf("%v", r))
		}
	}()

	if a.analyzer == nil {
		return errorEnvelope("no dataset is loaded")
	}

	classified := a.parser.Classify(question)
	a.logger.Info("Processing question",
		logging.Field{Key: logging.FieldQuestion, Value: question},
		logging.Field{Key: logging.FieldIntent, Value: classified.String()})

	switch classified {
	case models.IntentRevenueVsBudget:
		return a.revenueVsBudget(a.parser.ExtractPeriod(question, a.defaultYear))
	case models.IntentGrossMargin:
		return a.grossMargin()
	case models.IntentOpexBreakdown:
		return a.opexBreakdown(a.parser.ExtractPeriod(question, a.defaultYear))
	case models.IntentCashRunway:
		return a.cashRunway()
	case models.IntentEbitda:
		return a.ebitda()
	default:
		return a.unknown(ctx, question)
	}
}

func (a *Agent) revenueVsBudget(filter models.PeriodFilter) models.Envelope {
	result := a.analyzer.RevenueVsBudget(filter)
	text := fmt.Sprintf("Revenue %s: Actual %s vs Budget %s (Variance: %.1f%%)",
		filter.Label(),
		currencyutils.FormatUSDWhole(result.Actual),
		currencyutils.FormatUSDWhole(result.Budget),
		result.VariancePct)
	return models.NewEnvelope(models.IntentRevenueVsBudget, text, chart.RevenueVsBudget(result), result)
}

func (a *Agent) grossMargin() models.Envelope {
	result := a.analyzer.GrossMarginTrend(a.trendMonths)
	text := fmt.Sprintf("Gross Margin: %.1f%% average over last %d months",
		result.AvgMargin, a.trendMonths)
	return models.NewEnvelope(models.IntentGrossMargin, text, chart.MarginTrend(result), result)
}

func (a *Agent) opexBreakdown(filter models.PeriodFilter) models.Envelope {
	result := a.analyzer.OpexBreakdown(filter)
	text := fmt.Sprintf("Opex breakdown for %s", filter.Label())
	return models.NewEnvelope(models.IntentOpexBreakdown, text, chart.OpexBreakdown(result), result)
}

func (a *Agent) cashRunway() models.Envelope {
	result := a.analyzer.CashRunway()
	var text string
	if result.Unbounded() {
		text = fmt.Sprintf("Cash runway: unlimited (%s balance, cash is flat or growing)",
			currencyutils.FormatUSDWhole(result.CashBalance))
	} else {
		text = fmt.Sprintf("Cash runway: %.1f months (%s balance, %s/month burn)",
			result.RunwayMonths,
			currencyutils.FormatUSDWhole(result.CashBalance),
			currencyutils.FormatUSDWhole(result.MonthlyBurn))
	}
	return models.NewEnvelope(models.IntentCashRunway, text, nil, result)
}

func (a *Agent) ebitda() models.Envelope {
	result := a.analyzer.EbitdaProxy()
	text := fmt.Sprintf("EBITDA proxy: %s", currencyutils.FormatUSDWhole(result.Ebitda))
	return models.NewEnvelope(models.IntentEbitda, text, nil, result)
}

// unknown serves the fixed help text, or an assist suggestion when an
// assist client is wired in and answers in time. Assist failures fall
// back to the help text; the intent stays unknown either way.
func (a *Agent) unknown(ctx context.Context, question string) models.Envelope {
	if a.assist != nil {
		assistCtx, cancel := context.WithTimeout(ctx, a.assistTimeout)
		defer cancel()

		suggestion, err := a.assist.Suggest(assistCtx, question, a.samples)
		if err == nil {
			return models.NewEnvelope(models.IntentUnknown, suggestion, nil, nil)
		}
		a.logger.WithError(err).Warn("Assist suggestion failed, using fixed help text",
			logging.Field{Key: logging.FieldQuestion, Value: question})
	}
	return models.NewEnvelope(models.IntentUnknown, helpText, nil, nil)
}

func errorEnvelope(message string) models.Envelope {
	return models.NewEnvelope(models.IntentError,
		fmt.Sprintf("Sorry, I encountered an error processing your question: %s", message),
		nil, nil)
}
