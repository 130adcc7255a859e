package report

import (
	"fmt"

	"github.com/montanaflynn/stats"

	"github.com/quantfx/fxterm/src/models"
	"github.com/quantfx/fxterm/src/services"
)

// SpreadStats summarizes the current spreads across all quoted instruments,
// in pips.
type SpreadStats struct {
	Mean   float64
	Median float64
	Min    float64
	Max    float64
}

func ComputeSpreadStats(desk *services.Desk) (SpreadStats, error) {
	var spreads []float64
	desk.Offers.Each(func(_ int, item models.Keyed) bool {
		spreads = append(spreads, item.(*models.Offer).Spread())
		return true
	})

	if len(spreads) == 0 {
		return SpreadStats{}, fmt.Errorf("ComputeSpreadStats: no offers quoted")
	}

	mean, err := stats.Mean(spreads)
	if err != nil {
		return SpreadStats{}, fmt.Errorf("ComputeSpreadStats: %w", err)
	}

	median, err := stats.Median(spreads)
	if err != nil {
		return SpreadStats{}, fmt.Errorf("ComputeSpreadStats: %w", err)
	}

	min, err := stats.Min(spreads)
	if err != nil {
		return SpreadStats{}, fmt.Errorf("ComputeSpreadStats: %w", err)
	}

	max, err := stats.Max(spreads)
	if err != nil {
		return SpreadStats{}, fmt.Errorf("ComputeSpreadStats: %w", err)
	}

	return SpreadStats{Mean: mean, Median: median, Min: min, Max: max}, nil
}
