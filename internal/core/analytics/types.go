package analytics

// ChartData represents generic chart data format
type ChartData struct {
	Type   string        `json:"type"`   // "line", "bar"
	Title  string        `json:"title"`  // Dataset caption
	Labels []string      `json:"labels"` // X-axis labels
	Data   []ChartSeries `json:"data"`   // Y-axis data series
}

// ChartSeries represents a data series in a chart
type ChartSeries struct {
	Name   string    `json:"name"`
	Values []float64 `json:"values"`
	Colors []string  `json:"colors"` // One color per value, by position
}

// PieChartData represents pie chart specific data
type PieChartData struct {
	Type   string    `json:"type"` // "pie" or "doughnut"
	Title  string    `json:"title"`
	Labels []string  `json:"labels"`
	Values []float64 `json:"values"`
	Colors []string  `json:"colors"`
}

// StatCard represents a summary statistic card
type StatCard struct {
	Title string `json:"title"`
	Value string `json:"value"`
	Color string `json:"color,omitempty"`
}

// Empty reports whether the chart has nothing to plot.
func (c ChartData) Empty() bool {
	return len(c.Labels) == 0
}

// Empty reports whether every slice of the pie is zero.
func (p PieChartData) Empty() bool {
	for _, v := range p.Values {
		if v != 0 {
			return false
		}
	}
	return true
}
