package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOfferSpread(t *testing.T) {
	t.Run("spread derived from bid and ask", func(t *testing.T) {
		o := NewOffer("1", "EUR/USD", 0.0001, 5)
		o.SetBid(1.2340)
		o.SetAsk(1.2343)

		assert.InDelta(t, 3.0, o.Spread(), 1e-9)
		assert.InDelta(t, 1.23415, o.Average(), 1e-9)
	})

	t.Run("zero point size yields zero spread", func(t *testing.T) {
		o := NewOffer("2", "XXX/YYY", 0, 5)
		o.SetBid(1.0)
		o.SetAsk(2.0)

		assert.Equal(t, 0.0, o.Spread())
	})

	t.Run("recalculated on either input", func(t *testing.T) {
		o := NewOffer("3", "USD/JPY", 0.01, 3)
		o.SetBid(155.10)
		o.SetAsk(155.13)
		assert.InDelta(t, 3.0, o.Spread(), 1e-9)

		o.SetAsk(155.15)
		assert.InDelta(t, 5.0, o.Spread(), 1e-9)
	})
}

func TestOfferPrices(t *testing.T) {
	o := NewOffer("1", "EUR/USD", 0.0001, 5)
	o.SetBid(1.1000)
	o.SetAsk(1.1002)

	assert.Equal(t, 1.1002, o.OpenPrice(SideBuy))
	assert.Equal(t, 1.1000, o.OpenPrice(SideSell))
	assert.Equal(t, 1.1000, o.ClosePrice(SideBuy))
	assert.Equal(t, 1.1002, o.ClosePrice(SideSell))
}

func TestOfferTradable(t *testing.T) {
	o := NewOffer("1", "EUR/USD", 0.0001, 5)
	assert.True(t, o.IsTradable())

	o.SetTradable(true, false)
	assert.False(t, o.IsTradable())
	assert.Equal(t, "F", o.FormattedText(OfferFieldTradable))

	o.SetTradable(true, true)
	assert.True(t, o.IsTradable())
}

func TestOfferFormatting(t *testing.T) {
	o := NewOffer("1", "EUR/USD", 0.0001, 5)
	o.SetBid(1.2340)

	assert.Equal(t, "1.23400", o.FormattedText(OfferFieldBid))

	// recomputing with unchanged inputs must not change the rendered text
	o.SetBid(1.2340)
	assert.Equal(t, "1.23400", o.FormattedText(OfferFieldBid))
}
