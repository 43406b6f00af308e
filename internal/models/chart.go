package models

// ChartKind selects the visual representation a renderer should use.
type ChartKind string

const (
	// ChartGroupedBar renders one bar group per label with one bar per series.
	ChartGroupedBar ChartKind = "grouped_bar"
	// ChartLineMarkers renders each series as a line with point markers.
	ChartLineMarkers ChartKind = "line_markers"
	// ChartBar renders a plain bar chart from a single series.
	ChartBar ChartKind = "bar"
)

// Series is one named sequence of (label, value) points.
type Series struct {
	Name   string    `json:"name"`
	Labels []string  `json:"labels"`
	Values []float64 `json:"values"`
}

// Chart is a renderer-agnostic chart descriptor. The core never draws;
// presentation layers turn descriptors into whatever output they support.
type Chart struct {
	Kind   ChartKind `json:"kind"`
	Title  string    `json:"title"`
	XLabel string    `json:"x_label"`
	YLabel string    `json:"y_label"`
	Series []Series  `json:"series"`
}

// Empty reports whether the chart carries no data points.
func (c *Chart) Empty() bool {
	if c == nil {
		return true
	}
	for _, s := range c.Series {
		if len(s.Values) > 0 {
			return false
		}
	}
	return true
}
