package analysis

// Strength buckets |r|.
type Strength string

const (
	StrengthStrong   Strength = "strong"
	StrengthModerate Strength = "moderate"
	StrengthWeak     Strength = "weak"
	StrengthNone     Strength = "none"
)

// Direction is the sign of a correlation.
type Direction string

const (
	DirectionPositive Direction = "positive"
	DirectionNegative Direction = "negative"
	DirectionNone     Direction = "none"
)

// CorrelationPair is one off-diagonal matrix entry.
type CorrelationPair struct {
	A         string    `json:"a"`
	B         string    `json:"b"`
	R         float64   `json:"r"`
	Strength  Strength  `json:"strength"`
	Direction Direction `json:"direction"`
}

// CorrelationMatrix maps column x column to Pearson r. It is symmetric and
// its diagonal is 1 for columns with nonzero variance, else 0.
type CorrelationMatrix struct {
	Status
	Columns []string                      `json:"columns"`
	Values  map[string]map[string]float64 `json:"values"`
	// Pairs ranks the off-diagonal entries by |r| descending.
	Pairs []CorrelationPair `json:"pairs"`
}

// Get returns r for a pair, 0 when either column is absent.
func (m CorrelationMatrix) Get(a, b string) float64 {
	row, ok := m.Values[a]
	if !ok {
		return 0
	}
	return row[b]
}

// ScatterPoint is one retained row of a scatter plot. Row is 1-based.
type ScatterPoint struct {
	X   float64 `json:"x"`
	Y   float64 `json:"y"`
	Row int     `json:"row"`
}

// ScatterRegression is the single-pair view: rows with a non-numeric value on
// either axis are excluded, unlike the matrix which coerces them to 0.
type ScatterRegression struct {
	Status
	X         string         `json:"x"`
	Y         string         `json:"y"`
	Points    []ScatterPoint `json:"points"`
	Excluded  int            `json:"excluded"`
	R         float64        `json:"r"`
	RSquared  float64        `json:"r_squared"`
	Slope     float64        `json:"slope"`
	Intercept float64        `json:"intercept"`
	Strength  Strength       `json:"strength"`
	Direction Direction      `json:"direction"`
}
