package services

import (
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/quantfx/fxterm/src/eventpubsub"
	"github.com/quantfx/fxterm/src/models"
)

// BarService builds chart bars from the live offer stream. Each configured
// interval keeps one current bar per symbol; the bar rolls when a quote
// arrives past the bar's period.
type BarService struct {
	desk      *Desk
	intervals []models.Interval
	current   map[string]string // symbol/interval -> current bar key
	sub       *eventpubsub.Subscription
}

func NewBarService(desk *Desk, intervals []models.Interval) *BarService {
	s := &BarService{
		desk:      desk,
		intervals: intervals,
		current:   make(map[string]string),
	}

	s.sub = desk.Offers.Subscribe(eventpubsub.SignalAdd|eventpubsub.SignalChange, s.onOfferSignal)
	return s
}

func (s *BarService) Stop() {
	s.sub.Cancel()
}

func (s *BarService) onOfferSignal(sig eventpubsub.Signal) {
	offer, ok := sig.Item.(*models.Offer)
	if !ok {
		log.Warnf("BarService.onOfferSignal: unexpected item type for %s signal", sig.Type)
		return
	}

	for _, interval := range s.intervals {
		if err := s.applyTick(offer, interval); err != nil {
			log.Errorf("BarService.onOfferSignal: %v", err)
		}
	}
}

func (s *BarService) applyTick(offer *models.Offer, interval models.Interval) error {
	d := interval.Duration()
	if d == 0 {
		return nil
	}

	ts := offer.QuoteTime()
	slot := fmt.Sprintf("%s/%s", offer.Symbol(), interval)

	if key, ok := s.current[slot]; ok {
		if item := s.desk.Bars.GetByKey(key); item != nil {
			bar := item.(*models.PriceBar)
			if bar.Contains(ts) {
				return s.desk.Bars.Update(key, func(item models.Keyed) {
					item.(*models.PriceBar).UpdateByOffer(offer)
				})
			}
		}
	}

	bar := models.NewPriceBarFromOffer(offer, interval, ts.Truncate(d))
	if err := s.desk.Bars.Add(bar); err != nil {
		return fmt.Errorf("BarService.applyTick: failed to open bar: %w", err)
	}

	s.current[slot] = bar.Key()
	return nil
}

// CurrentBar returns the bar currently being built for the symbol and
// interval, or nil before the first tick.
func (s *BarService) CurrentBar(symbol string, interval models.Interval) *models.PriceBar {
	key, ok := s.current[fmt.Sprintf("%s/%s", symbol, interval)]
	if !ok {
		return nil
	}

	if item := s.desk.Bars.GetByKey(key); item != nil {
		return item.(*models.PriceBar)
	}

	return nil
}
