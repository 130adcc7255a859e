package report

import (
	"fmt"
	"io"

	"github.com/gocarina/gocsv"

	"github.com/quantfx/fxterm/src/models"
)

// ClosedPositionCSV is the export row for one closed trade.
type ClosedPositionCSV struct {
	Ticket     string  `csv:"ticket"`
	Account    string  `csv:"account"`
	Symbol     string  `csv:"symbol"`
	Side       string  `csv:"side"`
	Amount     int64   `csv:"amount"`
	Open       float64 `csv:"open"`
	Close      float64 `csv:"close"`
	PipPL      float64 `csv:"pip_pl"`
	GrossPL    float64 `csv:"gross_pl"`
	Commission float64 `csv:"commission"`
	Interest   float64 `csv:"interest"`
	NetPL      float64 `csv:"net_pl"`
	OpenTime   string  `csv:"open_time"`
	CloseTime  string  `csv:"close_time"`
}

// ExportClosedPositions writes the closed trades as CSV.
func ExportClosedPositions(w io.Writer, positions []*models.Position) error {
	rows := make([]*ClosedPositionCSV, 0, len(positions))

	for _, p := range positions {
		if p.Stage() != models.StageClosed {
			continue
		}

		rows = append(rows, &ClosedPositionCSV{
			Ticket:     p.TradeID(),
			Account:    p.AccountName(),
			Symbol:     p.Symbol(),
			Side:       string(p.Side()),
			Amount:     p.Amount(),
			Open:       p.Open(),
			Close:      p.Close(),
			PipPL:      p.PL(),
			GrossPL:    p.GrossPL(),
			Commission: p.Commission(),
			Interest:   p.Interest(),
			NetPL:      p.NetPL(),
			OpenTime:   p.FormattedText(models.PositionFieldOpenTime),
			CloseTime:  p.FormattedText(models.PositionFieldCloseTime),
		})
	}

	if err := gocsv.Marshal(rows, w); err != nil {
		return fmt.Errorf("ExportClosedPositions: failed to write csv: %w", err)
	}

	return nil
}
