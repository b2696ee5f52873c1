// Statistics reported by db.KVDB.GetInfo. Size and distribution statistics are
// computed with go-metrics samples, implementations only feed in what they observe
// while sampling their entries.

package util

import (
	"math"

	gometrics "github.com/rcrowley/go-metrics"
)

// ----------------------------------------------------------------------------
// Shard distribution
// ----------------------------------------------------------------------------

type Stats struct {
	StdDeviation float64 `json:"std_deviation" yaml:"std_deviation"`
	Min          float64 `json:"min" yaml:"min"`
	Max          float64 `json:"max" yaml:"max"`
	Mean         float64 `json:"mean" yaml:"mean"`
	MinMaxRatio  float64 `json:"min_max_ratio" yaml:"min_max_ratio"`
}

// NewStats computes the standard deviation, minimum, mean and maximum of the given values
func NewStats(values []int64) Stats {
	if len(values) == 0 {
		return Stats{}
	}

	min := float64(gometrics.SampleMin(values))
	max := float64(gometrics.SampleMax(values))

	// an empty database is perfectly distributed
	minMaxRatio := 1.0
	if max > 0 {
		minMaxRatio = min / max
	}

	return Stats{
		StdDeviation: gometrics.SampleStdDev(values),
		Min:          min,
		Max:          max,
		Mean:         gometrics.SampleMean(values),
		MinMaxRatio:  minMaxRatio,
	}
}

type DistributionStats struct {
	Stats               `yaml:",inline"`
	DistributionQuality float64 `json:"distribution_quality" yaml:"distribution_quality"`
}

// NewDistributionStats computes quality metrics for the distribution of entries over shards
func NewDistributionStats(shardSizes []int64) DistributionStats {
	stats := NewStats(shardSizes)

	// coefficient of variation
	var cv float64
	if stats.Mean > 0 {
		cv = stats.StdDeviation / stats.Mean
	}

	// lower CV and higher min/max ratio indicate better distribution
	distributionQuality := (1.0-math.Min(1.0, cv))*0.5 + stats.MinMaxRatio*0.5

	return DistributionStats{
		Stats:               stats,
		DistributionQuality: distributionQuality,
	}
}

// ----------------------------------------------------------------------------
// Value sizes
// ----------------------------------------------------------------------------

// sizeReservoir is the number of samples kept by a size histogram
const sizeReservoir = 1028

// NewSizeHistogram creates a histogram for value sizes (in bytes) backed by a uniform sample.
//
// Thread-safe: The returned histogram is safe for concurrent use
func NewSizeHistogram() gometrics.Histogram {
	return gometrics.NewHistogram(gometrics.NewUniformSample(sizeReservoir))
}

// EstimateEntrySize estimates the size of one entry from a size histogram.
// The estimate is weighted 60% median, 40% average, plus a fixed per entry overhead.
func EstimateEntrySize(h gometrics.Histogram, overhead int) int {
	if h.Count() == 0 {
		return 0
	}
	median := int(h.Percentile(0.5)) + overhead
	avg := int(h.Mean()) + overhead
	return (median*60 + avg*40) / 100
}
