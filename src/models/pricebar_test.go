package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPriceBarDerivedPrices(t *testing.T) {
	start := time.Date(2024, 3, 5, 14, 0, 0, 0, time.UTC)
	b := NewPriceBar("EUR/USD", IntervalM5, start)
	b.SetAsk(1.10, 1.20, 1.00, 1.15)

	ask := b.Ask()
	assert.InDelta(t, (1.20+1.00)/2, ask.Median, 1e-9)
	assert.InDelta(t, (1.20+1.00+1.15)/3, ask.Typical, 1e-9)
	assert.InDelta(t, (1.20+1.00+2*1.15)/4, ask.Weighted, 1e-9)
}

func TestPriceBarUpdateByOffer(t *testing.T) {
	o := NewOffer("1", "EUR/USD", 0.0001, 5)
	o.SetBid(1.1000)
	o.SetAsk(1.1002)

	start := time.Date(2024, 3, 5, 14, 0, 0, 0, time.UTC)
	b := NewPriceBarFromOffer(o, IntervalM1, start)

	o.SetAsk(1.1010)
	o.SetBid(1.1008)
	b.UpdateByOffer(o)

	o.SetAsk(1.0990)
	o.SetBid(1.0988)
	b.UpdateByOffer(o)

	ask := b.Ask()
	assert.Equal(t, 1.1002, ask.Open)
	assert.Equal(t, 1.1010, ask.High)
	assert.Equal(t, 1.0990, ask.Low)
	assert.Equal(t, 1.0990, ask.Close)

	// derived prices track the running extrema
	assert.InDelta(t, (ask.High+ask.Low+ask.Close)/3, ask.Typical, 1e-9)
}

func TestPriceBarContains(t *testing.T) {
	start := time.Date(2024, 3, 5, 14, 0, 0, 0, time.UTC)
	b := NewPriceBar("EUR/USD", IntervalM5, start)

	assert.True(t, b.Contains(start))
	assert.True(t, b.Contains(start.Add(4*time.Minute)))
	assert.False(t, b.Contains(start.Add(5*time.Minute)))
	assert.False(t, b.Contains(start.Add(-time.Second)))
}

func TestPriceBarOrdering(t *testing.T) {
	start := time.Date(2024, 3, 5, 14, 0, 0, 0, time.UTC)
	earlier := NewPriceBar("EUR/USD", IntervalM5, start)
	later := NewPriceBar("EUR/USD", IntervalM5, start.Add(5*time.Minute))

	assert.True(t, earlier.Before(later))
	assert.False(t, later.Before(earlier))
	assert.NotEqual(t, earlier.Key(), later.Key())
}
