package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPositionNetPL(t *testing.T) {
	p := NewPosition("T1", "acct", "EUR/USD", SideBuy)

	p.SetGrossPL(100)
	assert.InDelta(t, 100.0, p.NetPL(), 1e-9)

	p.SetCommission(7.5)
	assert.InDelta(t, 92.5, p.NetPL(), 1e-9)

	p.SetInterest(2.5)
	assert.InDelta(t, 95.0, p.NetPL(), 1e-9)

	// identity holds after any setter on the three inputs
	assert.InDelta(t, p.GrossPL()-p.Commission()+p.Interest(), p.NetPL(), 1e-9)
}

func TestPositionPips(t *testing.T) {
	t.Run("buy side", func(t *testing.T) {
		p := NewPosition("T1", "acct", "EUR/USD", SideBuy)
		p.SetPrecision(0.0001, 5)
		p.SetOpen(1.1000)
		p.SetClose(1.1012)

		assert.InDelta(t, 12.0, p.PL(), 1e-9)
	})

	t.Run("sell side", func(t *testing.T) {
		p := NewPosition("T2", "acct", "EUR/USD", SideSell)
		p.SetPrecision(0.0001, 5)
		p.SetOpen(1.1000)
		p.SetClose(1.1012)

		assert.InDelta(t, -12.0, p.PL(), 1e-9)
	})

	t.Run("zero point size", func(t *testing.T) {
		p := NewPosition("T3", "acct", "EUR/USD", SideBuy)
		p.SetPrecision(0, 5)
		p.SetOpen(1.1)
		p.SetClose(1.2)

		assert.Equal(t, 0.0, p.PL())
	})
}

func TestPositionRecalculationIdempotent(t *testing.T) {
	p := NewPosition("T1", "acct", "EUR/USD", SideBuy)
	p.SetGrossPL(42.42)
	p.SetCommission(1.11)

	first := p.FormattedText(PositionFieldNetPL)
	p.SetGrossPL(42.42)
	second := p.FormattedText(PositionFieldNetPL)

	assert.Equal(t, first, second)
	assert.Equal(t, "41.31", first)
}

func TestPositionClone(t *testing.T) {
	p := NewPosition("T1", "acct", "EUR/USD", SideBuy)
	p.SetGrossPL(10)

	cp := p.Clone()
	cp.SetGrossPL(99)

	assert.InDelta(t, 10.0, p.GrossPL(), 1e-9)
	assert.Equal(t, "10.00", p.FormattedText(PositionFieldGrossPL))
	assert.Equal(t, "99.00", cp.FormattedText(PositionFieldGrossPL))
}
