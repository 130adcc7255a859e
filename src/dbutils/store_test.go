package dbutils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quantfx/fxterm/src/models"
)

func TestHistoryStoreMessages(t *testing.T) {
	store, err := OpenHistoryStore(":memory:")
	require.NoError(t, err)
	defer store.Close()

	first := models.NewMessage(time.Date(2024, 3, 5, 14, 0, 0, 0, time.UTC), "session opened")
	second := models.NewMessage(time.Date(2024, 3, 5, 14, 5, 0, 0, time.UTC), "margin warning")

	require.NoError(t, store.SaveMessage(first))
	require.NoError(t, store.SaveMessage(second))

	loaded, err := store.LoadMessages()
	require.NoError(t, err)
	require.Len(t, loaded, 2)
	assert.Equal(t, "session opened", loaded[0].Text())
	assert.Equal(t, "margin warning", loaded[1].Text())
}

func TestHistoryStoreAccountSnapshots(t *testing.T) {
	store, err := OpenHistoryStore(":memory:")
	require.NoError(t, err)
	defer store.Close()

	a := models.NewAccount("demo")
	a.SetBalance(50000)
	a.SetEquity(50120.50)
	a.SetUsedMargin(1000)
	a.SetUsableMargin(49120.50)
	a.SetGrossPL(120.50)
	a.SetMarginCall("W")
	a.SetHedging(true)

	require.NoError(t, store.SaveAccountSnapshot(a))

	// a second save for the same account replaces the snapshot
	a.SetBalance(51000)
	require.NoError(t, store.SaveAccountSnapshot(a))

	loaded, err := store.LoadAccounts()
	require.NoError(t, err)
	require.Len(t, loaded, 1)

	got := loaded[0]
	assert.Equal(t, "demo", got.Name())
	assert.InDelta(t, 51000.0, got.Balance(), 1e-9)
	assert.Equal(t, "W", got.MarginCall())
	assert.False(t, got.IsUnderMarginCall())
	assert.True(t, got.Hedging())
}

func TestHistoryStoreClosedPositions(t *testing.T) {
	store, err := OpenHistoryStore(":memory:")
	require.NoError(t, err)
	defer store.Close()

	p := models.NewPosition("T1", "demo", "EUR/USD", models.SideBuy)
	p.SetStage(models.StageClosed)
	p.SetAmount(10000)
	p.SetOpen(1.1000)
	p.SetClose(1.1010)
	p.SetGrossPL(10)
	p.SetCommission(1)
	p.SetInterest(0.5)
	p.SetOpenTime(time.Date(2024, 3, 5, 14, 0, 0, 0, time.UTC))
	p.SetCloseTime(time.Date(2024, 3, 5, 16, 0, 0, 0, time.UTC))

	require.NoError(t, store.SaveClosedPosition(p))

	loaded, err := store.LoadClosedPositions()
	require.NoError(t, err)
	require.Len(t, loaded, 1)

	got := loaded[0]
	assert.Equal(t, "T1", got.TradeID())
	assert.Equal(t, models.StageClosed, got.Stage())
	// derived state is rebuilt by the setters during hydration
	assert.InDelta(t, 9.5, got.NetPL(), 1e-9)
}

func TestHistoryStoreEntryOrders(t *testing.T) {
	store, err := OpenHistoryStore(":memory:")
	require.NoError(t, err)
	defer store.Close()

	o := models.NewOrder("O1", "demo", "EUR/USD", models.SideBuy, models.OrderTypeLimitEntry)
	o.SetStatus("W")
	o.SetAmount(10000)
	o.SetRate(1.0950)
	o.SetOrderTime(time.Date(2024, 3, 5, 14, 0, 0, 0, time.UTC))

	require.NoError(t, store.SaveEntryOrder(o))

	market := models.NewOrder("O2", "demo", "EUR/USD", models.SideBuy, models.OrderTypeMarket)
	assert.Error(t, store.SaveEntryOrder(market))

	loaded, err := store.LoadEntryOrders()
	require.NoError(t, err)
	require.Len(t, loaded, 1)

	got := loaded[0]
	assert.Equal(t, "O1", got.OrderID())
	assert.True(t, got.IsEntryOrder())
	assert.InDelta(t, 1.0950, got.Rate(), 1e-9)
}

func TestHistoryStoreRejectsOpenPosition(t *testing.T) {
	store, err := OpenHistoryStore(":memory:")
	require.NoError(t, err)
	defer store.Close()

	p := models.NewPosition("T1", "demo", "EUR/USD", models.SideBuy)
	assert.Error(t, store.SaveClosedPosition(p))
}
