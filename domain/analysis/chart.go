package analysis

// UnknownKey replaces a null or empty grouping value.
const UnknownKey = "Unknown"

// Aggregate summarises one measure inside one partition.
type Aggregate struct {
	Count      int      `json:"count"`
	Sum        float64  `json:"sum"`
	Mean       float64  `json:"mean"`
	Percentage *float64 `json:"percentage,omitempty"`
}

// ChartPoint is one x partition. Measures is set on the flat path. Values
// carries the consumer-facing keys: on the flat path "<m>", "<m>_sum",
// "<m>_count" and, in percentage mode, "<m>_percentage"; on the grouped path
// "<group>_<m>" holding the cell mean.
type ChartPoint struct {
	Key      string               `json:"name"`
	Count    int                  `json:"count"`
	Measures map[string]Aggregate `json:"measures,omitempty"`
	Values   map[string]float64   `json:"values"`
}

// ChartSeries is the chart-ready aggregation in first-seen key order.
type ChartSeries struct {
	Status
	XColumn     string       `json:"x_column"`
	Measures    []string     `json:"measures"`
	GroupColumn string       `json:"group_column,omitempty"`
	Percentage  bool         `json:"percentage"`
	Points      []ChartPoint `json:"points"`
	// GroupKeys lists group values in first-seen order (grouped path only).
	GroupKeys []string `json:"group_keys,omitempty"`
	// Partitions counts all partitions before truncation.
	Partitions int  `json:"partitions"`
	Truncated  bool `json:"truncated"`
	TotalRows  int  `json:"total_rows"`
}

// PieSlice is one wedge of a pie chart.
type PieSlice struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}
