package report

import (
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/quantfx/fxterm/src/models"
	"github.com/quantfx/fxterm/src/services"
)

var printer = message.NewPrinter(language.English)

func money(v float64) string {
	return printer.Sprintf("%.2f", v)
}

// WriteAccounts renders the accounts table.
func WriteAccounts(w io.Writer, desk *services.Desk) error {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Account", "Balance", "Equity", "Used Mgn", "Usable Mgn", "Gross P/L", "MC"})

	desk.Accounts.Each(func(_ int, item models.Keyed) bool {
		a := item.(*models.Account)
		table.Append([]string{
			a.Name(),
			money(a.Balance()),
			money(a.Equity()),
			money(a.UsedMargin()),
			money(a.UsableMargin()),
			money(a.GrossPL()),
			a.MarginCall(),
		})
		return true
	})

	table.Render()
	return nil
}

// WriteOpenPositions renders the open positions table using each entity's
// own formatted fields, the same text a grid view would show.
func WriteOpenPositions(w io.Writer, desk *services.Desk) error {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Ticket", "Account", "Symbol", "B/S", "Amount", "Open", "Close", "PL", "Net P/L"})

	desk.Positions.Each(func(_ int, item models.Keyed) bool {
		p := item.(*models.Position)
		if p.Stage() != models.StageOpen {
			return true
		}

		table.Append([]string{
			p.FormattedText(models.PositionFieldTradeID),
			p.FormattedText(models.PositionFieldAccount),
			p.FormattedText(models.PositionFieldSymbol),
			p.FormattedText(models.PositionFieldSide),
			p.FormattedText(models.PositionFieldAmount),
			p.FormattedText(models.PositionFieldOpen),
			p.FormattedText(models.PositionFieldClose),
			p.FormattedText(models.PositionFieldPL),
			p.FormattedText(models.PositionFieldNetPL),
		})
		return true
	})

	table.Render()
	return nil
}

// WriteOrders renders the working orders blotter.
func WriteOrders(w io.Writer, desk *services.Desk) error {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Order", "Account", "Symbol", "Type", "Status", "B/S", "Amount", "Rate"})

	desk.Orders.Each(func(_ int, item models.Keyed) bool {
		o := item.(*models.Order)

		rate := o.FormattedText(models.OrderFieldBuyPrice)
		if o.Side() == models.SideSell {
			rate = o.FormattedText(models.OrderFieldSellPrice)
		}

		table.Append([]string{
			o.OrderID(),
			o.AccountName(),
			o.Symbol(),
			string(o.Type()),
			o.Status(),
			string(o.Side()),
			o.FormattedText(models.OrderFieldAmount),
			rate,
		})
		return true
	})

	table.Render()
	return nil
}

// Write renders the full terminal report: accounts, open positions, orders
// and the market snapshot.
func Write(w io.Writer, desk *services.Desk) error {
	fmt.Fprintln(w, "ACCOUNTS")
	if err := WriteAccounts(w, desk); err != nil {
		return fmt.Errorf("report.Write: accounts: %w", err)
	}

	fmt.Fprintln(w, "\nOPEN POSITIONS")
	if err := WriteOpenPositions(w, desk); err != nil {
		return fmt.Errorf("report.Write: positions: %w", err)
	}

	fmt.Fprintln(w, "\nORDERS")
	if err := WriteOrders(w, desk); err != nil {
		return fmt.Errorf("report.Write: orders: %w", err)
	}

	stats, err := ComputeSpreadStats(desk)
	if err == nil {
		fmt.Fprintf(w, "\nspreads: mean=%.1f median=%.1f min=%.1f max=%.1f\n",
			stats.Mean, stats.Median, stats.Min, stats.Max)
	}

	return nil
}
