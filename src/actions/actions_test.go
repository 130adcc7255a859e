package actions

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quantfx/fxterm/src/liaison"
	"github.com/quantfx/fxterm/src/models"
	"github.com/quantfx/fxterm/src/services"
)

type fixture struct {
	desk     *services.Desk
	session  *liaison.Session
	liaison  *liaison.ScriptedLiaison
	registry *Registry
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	desk := services.NewDesk()
	session := liaison.NewSession()
	scripted := liaison.NewScriptedLiaison(session)

	render := func(w io.Writer, desk *services.Desk) error {
		_, err := w.Write([]byte("report"))
		return err
	}

	registry := NewRegistry(desk, scripted, session, render)

	require.True(t, session.Transition(liaison.StatusConnecting))
	require.True(t, session.Transition(liaison.StatusReady))

	return &fixture{desk: desk, session: session, liaison: scripted, registry: registry}
}

func (f *fixture) addAccount(t *testing.T, name string) *models.Account {
	t.Helper()

	a := models.NewAccount(name)
	a.SetBalance(50000)
	require.NoError(t, f.desk.Accounts.Add(a))
	return a
}

func (f *fixture) addOffer(t *testing.T, symbol string) *models.Offer {
	t.Helper()

	o := models.NewOffer("1", symbol, 0.0001, 5)
	o.SetBid(1.2343)
	o.SetAsk(1.2345)
	require.NoError(t, f.desk.Offers.Add(o))
	return o
}

func (f *fixture) addPosition(t *testing.T, ticket, account, symbol string) *models.Position {
	t.Helper()

	p := models.NewPosition(ticket, account, symbol, models.SideBuy)
	p.SetAmount(10000)
	p.SetOpen(1.2340)
	p.SetClose(1.2345)
	require.NoError(t, f.desk.Positions.Add(p))
	return p
}

func TestClosePositionEligibility(t *testing.T) {
	f := newFixture(t)
	f.addAccount(t, "demo")
	f.addOffer(t, "EUR/USD")
	f.addPosition(t, "T1", "demo", "EUR/USD")

	f.registry.ClosePosition.Select("T1")
	assert.True(t, f.registry.ClosePosition.EffectiveEnabled())

	// flipping the account to margin call must disable the action with no
	// other mutation
	require.NoError(t, f.desk.Accounts.Update("demo", func(item models.Keyed) {
		item.(*models.Account).SetUnderMarginCall(true)
	}))
	assert.False(t, f.registry.ClosePosition.EffectiveEnabled())

	require.NoError(t, f.desk.Accounts.Update("demo", func(item models.Keyed) {
		item.(*models.Account).SetUnderMarginCall(false)
	}))
	assert.True(t, f.registry.ClosePosition.EffectiveEnabled())
}

func TestClosePositionIneligibleWhileBeingClosed(t *testing.T) {
	f := newFixture(t)
	f.addAccount(t, "demo")
	f.addPosition(t, "T1", "demo", "EUR/USD")

	f.registry.ClosePosition.Select("T1")
	require.True(t, f.registry.ClosePosition.EffectiveEnabled())

	require.NoError(t, f.desk.Positions.Update("T1", func(item models.Keyed) {
		item.(*models.Position).SetBeingClosed(true)
	}))
	assert.False(t, f.registry.ClosePosition.EffectiveEnabled())
}

func TestSessionStatusGatesAllActions(t *testing.T) {
	f := newFixture(t)
	f.addAccount(t, "demo")
	f.addPosition(t, "T1", "demo", "EUR/USD")
	f.registry.ClosePosition.Select("T1")
	require.True(t, f.registry.ClosePosition.EffectiveEnabled())

	var observedDuringTransition bool
	f.registry.ClosePosition.OnEffectiveEnabled(func(enabled bool) {
		observedDuringTransition = !enabled
	})

	// canAct drops and propagates before the transition completes
	require.True(t, f.session.Transition(liaison.StatusDisconnecting))

	assert.True(t, observedDuringTransition)
	for _, a := range f.registry.All() {
		assert.False(t, a.CanAct(), "action %s should be gated", a.Name())
		assert.False(t, a.EffectiveEnabled(), "action %s should be disabled", a.Name())
	}
}

func TestPerformWhileIneligibleIsNoOp(t *testing.T) {
	f := newFixture(t)

	// nothing selected: enabled is false, Perform must not reach the session
	require.NoError(t, f.registry.ClosePosition.Perform(0, "", false))
	require.NoError(t, f.registry.RemoveEntryOrder.Perform())
	assert.Empty(t, f.liaison.Sent())
}

func TestBatchCloseContinuesPastFailure(t *testing.T) {
	f := newFixture(t)
	f.addAccount(t, "demo")
	f.addPosition(t, "T1", "demo", "EUR/USD")
	f.addPosition(t, "T2", "demo", "EUR/USD")

	f.liaison.FailTicket("T1", "dealer rejected")
	f.registry.ClosePosition.Select("T1")

	failures := f.registry.ClosePosition.PerformBatch([]string{"T1", "T2"}, nil, "batch close")

	// T1's failure is reported individually; T2's request still went out
	require.Len(t, failures, 1)
	assert.Contains(t, failures, "T1")
	assert.Equal(t, []string{"ClosePosition"}, f.liaison.SentKinds())

	// the successful close marks only T2
	assert.False(t, f.desk.PositionByTicket("T1").IsBeingClosed())
	assert.True(t, f.desk.PositionByTicket("T2").IsBeingClosed())
}

func TestBatchCloseWhileGatedReportsUnavailable(t *testing.T) {
	f := newFixture(t)
	f.addAccount(t, "demo")
	f.addPosition(t, "T1", "demo", "EUR/USD")
	f.addPosition(t, "T2", "demo", "EUR/USD")

	f.registry.ClosePosition.Select("T1")
	require.True(t, f.registry.ClosePosition.EffectiveEnabled())
	require.True(t, f.session.Transition(liaison.StatusDisconnecting))

	failures := f.registry.ClosePosition.PerformBatch([]string{"T1", "T2"}, nil, "")

	// every ticket is reported rejected, distinguishable from an all-success
	// empty map, and nothing reaches the session
	require.Len(t, failures, 2)
	assert.ErrorIs(t, failures["T1"], ErrUnavailable)
	assert.ErrorIs(t, failures["T2"], ErrUnavailable)
	assert.Empty(t, f.liaison.Sent())
	assert.False(t, f.desk.PositionByTicket("T1").IsBeingClosed())
	assert.False(t, f.desk.PositionByTicket("T2").IsBeingClosed())
}

func TestBatchCloseResolvesAmountsIndependently(t *testing.T) {
	f := newFixture(t)
	f.addAccount(t, "demo")
	f.addPosition(t, "T1", "demo", "EUR/USD")
	f.addPosition(t, "T2", "demo", "EUR/USD")

	f.registry.ClosePosition.Select("T1")
	failures := f.registry.ClosePosition.PerformBatch(
		[]string{"T1", "T2"},
		map[string]int64{"T1": 4000, "T2": 999999},
		"",
	)
	require.Empty(t, failures)

	sent := f.liaison.Sent()
	require.Len(t, sent, 2)
	assert.Equal(t, int64(4000), sent[0].(liaison.ClosePositionRequest).Amount)
	// oversized request falls back to the full position
	assert.Equal(t, int64(10000), sent[1].(liaison.ClosePositionRequest).Amount)
}

func TestEntryOrderEligibility(t *testing.T) {
	f := newFixture(t)
	f.addAccount(t, "demo")
	offer := f.addOffer(t, "EUR/USD")

	o := models.NewOrder("O1", "demo", "EUR/USD", models.SideBuy, models.OrderTypeLimitEntry)
	require.NoError(t, f.desk.Orders.Add(o))

	f.registry.UpdateEntryOrder.Select("O1")
	assert.True(t, f.registry.UpdateEntryOrder.EffectiveEnabled())

	// quote goes untradable: entry order operations freeze
	require.NoError(t, f.desk.Offers.Update("EUR/USD", func(item models.Keyed) {
		item.(*models.Offer).SetTradable(false, false)
	}))
	assert.False(t, f.registry.UpdateEntryOrder.EffectiveEnabled())
	_ = offer

	// a market order is never an entry order target
	m := models.NewOrder("O2", "demo", "EUR/USD", models.SideBuy, models.OrderTypeMarket)
	require.NoError(t, f.desk.Orders.Add(m))
	f.registry.UpdateEntryOrder.Select("O2")
	assert.False(t, f.registry.UpdateEntryOrder.EffectiveEnabled())
}

func TestCreateEntryOrderAndQuoteGate(t *testing.T) {
	f := newFixture(t)
	acct := f.addAccount(t, "demo")
	f.addOffer(t, "EUR/USD")

	f.registry.CreateEntryOrder.Select("EUR/USD", "demo")
	f.registry.RequestForQuote.Select("EUR/USD", "demo")
	assert.True(t, f.registry.CreateEntryOrder.EffectiveEnabled())
	assert.True(t, f.registry.RequestForQuote.EffectiveEnabled())

	require.NoError(t, f.desk.Accounts.Update(acct.Key(), func(item models.Keyed) {
		item.(*models.Account).SetUnderMarginCall(true)
	}))
	assert.False(t, f.registry.CreateEntryOrder.EffectiveEnabled())
	assert.False(t, f.registry.RequestForQuote.EffectiveEnabled())
}

func TestRegistryStopRevokesSubscriptions(t *testing.T) {
	f := newFixture(t)
	f.addAccount(t, "demo")
	f.addPosition(t, "T1", "demo", "EUR/USD")

	f.registry.ClosePosition.Select("T1")
	require.True(t, f.registry.ClosePosition.EffectiveEnabled())

	f.registry.Stop()

	assert.Zero(t, f.desk.Positions.ListenerCount())
	assert.Zero(t, f.desk.Accounts.ListenerCount())
	assert.Zero(t, f.desk.Orders.ListenerCount())
	assert.Zero(t, f.desk.Offers.ListenerCount())

	// a mutation that would have disabled the action is no longer observed
	require.NoError(t, f.desk.Accounts.Update("demo", func(item models.Keyed) {
		item.(*models.Account).SetUnderMarginCall(true)
	}))
	assert.True(t, f.registry.ClosePosition.EffectiveEnabled())
}

func TestReportAction(t *testing.T) {
	f := newFixture(t)

	assert.False(t, f.registry.Report.EffectiveEnabled())

	f.addAccount(t, "demo")
	assert.True(t, f.registry.Report.EffectiveEnabled())

	var buf bytes.Buffer
	require.NoError(t, f.registry.Report.Perform(&buf))
	assert.Equal(t, "report", buf.String())
}
