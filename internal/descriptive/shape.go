package descriptive

import (
	"math"

	"github.com/montanaflynn/stats"
	gstat "gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"

	"tablens/domain/analysis"
)

const (
	// MinShapeSamples is the smallest sample the shape moments are
	// defined for.
	MinShapeSamples = 4
	// NormalityAlpha is the Jarque-Bera significance level.
	NormalityAlpha = 0.05
	outlierFence   = 1.5
)

// Shape computes quartiles, IQR outliers, skewness, excess kurtosis and a
// Jarque-Bera normality test. ok is false below MinShapeSamples values or
// when every value is equal.
func Shape(values []float64) (analysis.DistributionShape, bool) {
	if len(values) < MinShapeSamples {
		return analysis.DistributionShape{}, false
	}
	data := stats.Float64Data(values)
	sd, _ := stats.StandardDeviationSample(data)
	if sd == 0 || math.IsNaN(sd) {
		return analysis.DistributionShape{}, false
	}

	q, err := stats.Quartile(data)
	if err != nil {
		return analysis.DistributionShape{}, false
	}
	iqr := q.Q3 - q.Q1

	skew := gstat.Skew(values, nil)
	kurt := gstat.ExKurtosis(values, nil)
	p := jarqueBeraP(len(values), skew, kurt)

	return analysis.DistributionShape{
		Q1:         q.Q1,
		Q3:         q.Q3,
		IQR:        iqr,
		Outliers:   countOutliers(values, q.Q1-outlierFence*iqr, q.Q3+outlierFence*iqr),
		Skewness:   skew,
		Kurtosis:   kurt,
		NormalityP: p,
		Normal:     p > NormalityAlpha,
	}, true
}

// jarqueBeraP returns the upper tail of chi-squared(2) at the JB statistic.
func jarqueBeraP(n int, skew, exKurt float64) float64 {
	jb := float64(n) / 6 * (skew*skew + exKurt*exKurt/4)
	return 1 - distuv.ChiSquared{K: 2}.CDF(jb)
}

func countOutliers(values []float64, lo, hi float64) int {
	n := 0
	for _, v := range values {
		if v < lo || v > hi {
			n++
		}
	}
	return n
}
