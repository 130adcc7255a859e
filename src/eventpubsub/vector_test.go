package eventpubsub

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quantfx/fxterm/src/models"
)

func TestSignalVectorCommitOrder(t *testing.T) {
	v := NewSignalVector("positions")

	var first, second []string
	v.Subscribe(SignalAll, func(sig Signal) {
		first = append(first, fmt.Sprintf("%s:%s", sig.Type, sig.Item.Key()))
	})
	v.Subscribe(SignalAll, func(sig Signal) {
		second = append(second, fmt.Sprintf("%s:%s", sig.Type, sig.Item.Key()))
	})

	p := models.NewPosition("T1", "acct", "EUR/USD", models.SideBuy)
	require.NoError(t, v.Add(p))
	require.NoError(t, v.Update("T1", func(item models.Keyed) {
		item.(*models.Position).SetGrossPL(5)
	}))
	require.NoError(t, v.Remove("T1"))

	want := []string{"add:T1", "change:T1", "remove:T1"}
	assert.Equal(t, want, first)
	assert.Equal(t, want, second)
}

func TestSignalVectorSubscriptionFilter(t *testing.T) {
	v := NewSignalVector("orders")

	var got []SignalType
	v.Subscribe(SignalRemove, func(sig Signal) {
		got = append(got, sig.Type)
	})

	o := models.NewOrder("O1", "acct", "EUR/USD", models.SideBuy, models.OrderTypeLimitEntry)
	require.NoError(t, v.Add(o))
	require.NoError(t, v.Update("O1", func(item models.Keyed) {}))
	require.NoError(t, v.Remove("O1"))

	assert.Equal(t, []SignalType{SignalRemove}, got)
}

func TestSignalVectorDeliveryAfterCommit(t *testing.T) {
	v := NewSignalVector("accounts")

	v.Subscribe(SignalChange, func(sig Signal) {
		// by delivery time the mutation is already visible in the collection
		a := v.GetByKey("demo").(*models.Account)
		assert.Equal(t, 99.0, a.Balance())
	})

	require.NoError(t, v.Add(models.NewAccount("demo")))
	require.NoError(t, v.Update("demo", func(item models.Keyed) {
		item.(*models.Account).SetBalance(99)
	}))
}

func TestSignalVectorListenerPanicIsolated(t *testing.T) {
	v := NewSignalVector("offers")

	var delivered bool
	v.Subscribe(SignalAdd, func(sig Signal) {
		panic("bad listener")
	})
	v.Subscribe(SignalAdd, func(sig Signal) {
		delivered = true
	})

	require.NoError(t, v.Add(models.NewOffer("1", "EUR/USD", 0.0001, 5)))
	assert.True(t, delivered)
}

func TestSubscriptionCancel(t *testing.T) {
	v := NewSignalVector("messages")

	var count int
	sub := v.Subscribe(SignalAll, func(sig Signal) {
		count++
	})

	require.NoError(t, v.Add(models.NewAccount("a")))
	sub.Cancel()
	sub.Cancel() // second cancel is a no-op
	require.NoError(t, v.Add(models.NewAccount("b")))

	assert.Equal(t, 1, count)
	assert.Equal(t, 0, v.ListenerCount())
}

func TestSignalVectorDuplicateAndMissingKeys(t *testing.T) {
	v := NewSignalVector("accounts")
	require.NoError(t, v.Add(models.NewAccount("demo")))

	assert.Error(t, v.Add(models.NewAccount("demo")))
	assert.Error(t, v.Update("ghost", func(models.Keyed) {}))
	assert.Error(t, v.Remove("ghost"))
}

func TestSignalVectorRemoveReindexes(t *testing.T) {
	v := NewSignalVector("accounts")
	require.NoError(t, v.Add(models.NewAccount("a")))
	require.NoError(t, v.Add(models.NewAccount("b")))
	require.NoError(t, v.Add(models.NewAccount("c")))

	require.NoError(t, v.Remove("b"))

	assert.Equal(t, 2, v.Len())
	assert.Equal(t, "a", v.Get(0).Key())
	assert.Equal(t, "c", v.Get(1).Key())
	assert.Nil(t, v.Get(2))
	assert.Equal(t, "c", v.GetByKey("c").Key())
}

func TestSignalVectorTotalRow(t *testing.T) {
	v := NewSignalVector("summaries")
	v.EnableTotalRow(func(items []models.Keyed) models.Keyed {
		total := models.NewSummary("Total")
		var gross float64
		for _, item := range items {
			gross += item.(*models.Summary).GrossPL()
		}
		total.SetGrossPL(gross)
		return total
	})

	s1 := models.NewSummary("EUR/USD")
	s1.SetGrossPL(10)
	s2 := models.NewSummary("USD/JPY")
	s2.SetGrossPL(-4)
	require.NoError(t, v.Add(s1))
	require.NoError(t, v.Add(s2))

	assert.True(t, v.IsTotalRowEnabled())
	assert.Equal(t, 3, v.Size())
	assert.Equal(t, 2, v.Len())

	total := v.Get(2).(*models.Summary)
	assert.InDelta(t, 6.0, total.GrossPL(), 1e-9)

	require.NoError(t, v.Remove("USD/JPY"))
	total = v.Get(1).(*models.Summary)
	assert.InDelta(t, 10.0, total.GrossPL(), 1e-9)
}
