package services

import (
	log "github.com/sirupsen/logrus"

	"github.com/quantfx/fxterm/src/eventpubsub"
	"github.com/quantfx/fxterm/src/models"
)

// SummaryService keeps the per-symbol Summary rows consistent with the open
// positions. It recomputes in response to position signals; it never runs
// from inside a position setter, so one collection's mutation can not nest
// into another's.
type SummaryService struct {
	desk *Desk
	sub  *eventpubsub.Subscription
}

func NewSummaryService(desk *Desk) *SummaryService {
	s := &SummaryService{desk: desk}
	s.sub = desk.Positions.Subscribe(eventpubsub.SignalAll, s.onPositionSignal)
	return s
}

// Stop revokes the position subscription.
func (s *SummaryService) Stop() {
	s.sub.Cancel()
}

func (s *SummaryService) onPositionSignal(sig eventpubsub.Signal) {
	pos, ok := sig.Item.(*models.Position)
	if !ok {
		log.Warnf("SummaryService.onPositionSignal: unexpected item type for %s signal", sig.Type)
		return
	}

	s.Recompute(pos.Symbol())
}

// Recompute rebuilds the symbol's summary row from all of its open
// positions, removing the row when the last one is gone.
func (s *SummaryService) Recompute(symbol string) {
	var (
		amountBuy    int64
		amountSell   int64
		buyNotional  float64
		sellNotional float64
		buyPL        float64
		sellPL       float64
		netPL        float64
		count        int64
	)

	s.desk.Positions.Each(func(_ int, item models.Keyed) bool {
		p := item.(*models.Position)
		if p.Symbol() != symbol || p.Stage() != models.StageOpen {
			return true
		}

		count++
		netPL += p.NetPL()

		if p.Side() == models.SideBuy {
			amountBuy += p.Amount()
			buyNotional += p.Open() * float64(p.Amount())
			buyPL += p.GrossPL()
		} else {
			amountSell += p.Amount()
			sellNotional += p.Open() * float64(p.Amount())
			sellPL += p.GrossPL()
		}

		return true
	})

	if count == 0 {
		if s.desk.Summaries.Contains(symbol) {
			if err := s.desk.Summaries.Remove(symbol); err != nil {
				log.Errorf("SummaryService.Recompute: failed to remove summary %s: %v", symbol, err)
			}
		}
		return
	}

	apply := func(item models.Keyed) {
		sum := item.(*models.Summary)
		sum.SetAmountBuy(amountBuy)
		sum.SetAmountSell(amountSell)
		if amountBuy > 0 {
			sum.SetAvgBuy(buyNotional / float64(amountBuy))
		} else {
			sum.SetAvgBuy(0)
		}
		if amountSell > 0 {
			sum.SetAvgSell(sellNotional / float64(amountSell))
		} else {
			sum.SetAvgSell(0)
		}
		sum.SetBuyPL(buyPL)
		sum.SetSellPL(sellPL)
		sum.SetGrossPL(buyPL + sellPL)
		sum.SetNetPL(netPL)
		sum.SetPositionCount(count)
	}

	if s.desk.Summaries.Contains(symbol) {
		if err := s.desk.Summaries.Update(symbol, apply); err != nil {
			log.Errorf("SummaryService.Recompute: failed to update summary %s: %v", symbol, err)
		}
		return
	}

	sum := models.NewSummary(symbol)
	apply(sum)
	if err := s.desk.Summaries.Add(sum); err != nil {
		log.Errorf("SummaryService.Recompute: failed to add summary %s: %v", symbol, err)
	}
}

// summaryTotal is the synthetic grand-total row of the summaries collection.
func summaryTotal(items []models.Keyed) models.Keyed {
	total := models.NewSummary("Total")

	var (
		amountBuy  int64
		amountSell int64
		grossPL    float64
		netPL      float64
		count      int64
	)

	for _, item := range items {
		sum := item.(*models.Summary)
		amountBuy += sum.AmountBuy()
		amountSell += sum.AmountSell()
		grossPL += sum.GrossPL()
		netPL += sum.NetPL()
		count += sum.PositionCount()
	}

	total.SetAmountBuy(amountBuy)
	total.SetAmountSell(amountSell)
	total.SetGrossPL(grossPL)
	total.SetNetPL(netPL)
	total.SetPositionCount(count)

	return total
}
