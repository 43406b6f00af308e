// Package common contains shared functionality for command handlers
package common

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"fjacquet/cfo-copilot/internal/models"
)

// WriteEnvelope renders an answer envelope to w: indented JSON when asJSON
// is set, plain text with chart values otherwise.
func WriteEnvelope(w io.Writer, envelope models.Envelope, asJSON bool) error {
	if asJSON {
		data, err := json.MarshalIndent(envelope, "", "  ")
		if err != nil {
			return fmt.Errorf("error rendering envelope as JSON: %w", err)
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	}

	_, err := fmt.Fprintln(w, RenderText(envelope))
	return err
}

// RenderText formats an envelope for terminal output: the answer text,
// followed by the chart values when the answer carries a chart.
func RenderText(envelope models.Envelope) string {
	var b strings.Builder
	b.WriteString(envelope.Text)

	if !envelope.Chart.Empty() {
		b.WriteString("\n\n")
		b.WriteString(renderChart(envelope.Chart))
	}

	return b.String()
}

// renderChart prints a chart descriptor as labeled value lines. Series
// names are shown only when the chart has more than one series.
func renderChart(chart *models.Chart) string {
	var b strings.Builder
	b.WriteString(chart.Title)

	for _, series := range chart.Series {
		if len(chart.Series) > 1 {
			b.WriteString(fmt.Sprintf("\n%s:", series.Name))
		}
		for i, label := range series.Labels {
			if i >= len(series.Values) {
				break
			}
			b.WriteString(fmt.Sprintf("\n  %s: %s", label, formatValue(series.Values[i])))
		}
	}

	return b.String()
}

// formatValue renders a chart value without a fixed precision, so money
// amounts print whole and percentages keep their decimals.
func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
