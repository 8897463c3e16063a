package analysis

// NumericSummary describes a numeric column. Std is the population standard
// deviation (squared deviations divided by Count).
type NumericSummary struct {
	Count  int     `json:"count"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Sum    float64 `json:"sum"`
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	Mode   float64 `json:"mode"`
	Std    float64 `json:"std"`
}

// DistributionShape describes the spread and symmetry of a numeric column.
// Kurtosis is excess kurtosis; NormalityP is the Jarque-Bera p-value.
type DistributionShape struct {
	Q1         float64 `json:"q1"`
	Q3         float64 `json:"q3"`
	IQR        float64 `json:"iqr"`
	Outliers   int     `json:"outliers"`
	Skewness   float64 `json:"skewness"`
	Kurtosis   float64 `json:"kurtosis"`
	NormalityP float64 `json:"normality_p"`
	Normal     bool    `json:"normal"`
}

// TextSummary describes a text column.
type TextSummary struct {
	Count       int            `json:"count"`
	UniqueCount int            `json:"unique_count"`
	ModeValue   string         `json:"mode_value"`
	Frequency   map[string]int `json:"frequency"`
}

// DescriptiveStatistics holds per-column summaries keyed by column name.
// Columns with no usable values appear in neither map.
type DescriptiveStatistics struct {
	Status
	Overview    TableOverview             `json:"overview"`
	Numeric     map[string]NumericSummary `json:"numeric"`
	Text        map[string]TextSummary    `json:"text"`
	ColumnTypes map[string]ColumnKind     `json:"column_types"`
	// Shapes covers numeric columns with enough values and non-zero spread.
	Shapes map[string]DistributionShape `json:"shapes"`
	// Order lists summarised columns in header order.
	Order []string `json:"order"`
}
