package dbutils

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/quantfx/fxterm/src/models"
)

const schema = `
CREATE TABLE IF NOT EXISTS messages (
	received_at TIMESTAMP NOT NULL,
	body        TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS accounts (
	name          TEXT PRIMARY KEY,
	balance       REAL NOT NULL,
	equity        REAL NOT NULL,
	used_margin   REAL NOT NULL,
	usable_margin REAL NOT NULL,
	gross_pl      REAL NOT NULL,
	margin_call   TEXT NOT NULL,
	hedging       BOOLEAN NOT NULL
);

CREATE TABLE IF NOT EXISTS orders (
	order_id   TEXT PRIMARY KEY,
	account    TEXT NOT NULL,
	symbol     TEXT NOT NULL,
	type       TEXT NOT NULL,
	status     TEXT NOT NULL,
	side       TEXT NOT NULL,
	amount     INTEGER NOT NULL,
	rate       REAL NOT NULL,
	stop       REAL NOT NULL DEFAULT 0,
	lmt        REAL NOT NULL DEFAULT 0,
	order_time TIMESTAMP NOT NULL
);

CREATE TABLE IF NOT EXISTS positions (
	trade_id   TEXT PRIMARY KEY,
	account    TEXT NOT NULL,
	symbol     TEXT NOT NULL,
	side       TEXT NOT NULL,
	stage      TEXT NOT NULL,
	amount     INTEGER NOT NULL,
	open_rate  REAL NOT NULL,
	close_rate REAL NOT NULL,
	stop       REAL NOT NULL DEFAULT 0,
	lmt        REAL NOT NULL DEFAULT 0,
	gross_pl   REAL NOT NULL,
	commission REAL NOT NULL,
	interest   REAL NOT NULL,
	open_time  TIMESTAMP NOT NULL,
	close_time TIMESTAMP NOT NULL
);
`

// HistoryStore persists messages and closed trades to an embedded sqlite
// database so the blotter survives a session restart.
type HistoryStore struct {
	db *sql.DB
}

// OpenHistoryStore opens (and migrates) the store at path. Use ":memory:"
// for an ephemeral store.
func OpenHistoryStore(path string) (*HistoryStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("OpenHistoryStore: failed to open %s: %w", path, err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("OpenHistoryStore: failed to migrate: %w", err)
	}

	return &HistoryStore{db: db}, nil
}

func (s *HistoryStore) Close() error {
	return s.db.Close()
}

func (s *HistoryStore) SaveMessage(m *models.Message) error {
	_, err := s.db.Exec("INSERT INTO messages (received_at, body) VALUES (?, ?)", m.Time(), m.Text())
	if err != nil {
		return fmt.Errorf("HistoryStore.SaveMessage: %w", err)
	}

	return nil
}

// LoadMessages hydrates the stored messages in arrival order through the
// entity's own selection descriptor.
func (s *HistoryStore) LoadMessages() ([]*models.Message, error) {
	rows, err := s.db.Query(models.MessageSelect + " ORDER BY received_at")
	if err != nil {
		return nil, fmt.Errorf("HistoryStore.LoadMessages: %w", err)
	}
	defer rows.Close()

	var out []*models.Message
	for rows.Next() {
		m, err := models.HydrateMessage(rows)
		if err != nil {
			return nil, fmt.Errorf("HistoryStore.LoadMessages: failed to hydrate: %w", err)
		}
		out = append(out, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("HistoryStore.LoadMessages: %w", err)
	}

	return out, nil
}

// SaveAccountSnapshot upserts the account's end-of-session state.
func (s *HistoryStore) SaveAccountSnapshot(a *models.Account) error {
	_, err := s.db.Exec(`
		INSERT OR REPLACE INTO accounts
		(name, balance, equity, used_margin, usable_margin, gross_pl, margin_call, hedging)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		a.Name(), a.Balance(), a.Equity(), a.UsedMargin(), a.UsableMargin(),
		a.GrossPL(), a.MarginCall(), a.Hedging(),
	)
	if err != nil {
		return fmt.Errorf("HistoryStore.SaveAccountSnapshot: %w", err)
	}

	return nil
}

// LoadAccounts hydrates the stored account snapshots.
func (s *HistoryStore) LoadAccounts() ([]*models.Account, error) {
	rows, err := s.db.Query(models.AccountSelect + " ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("HistoryStore.LoadAccounts: %w", err)
	}
	defer rows.Close()

	var out []*models.Account
	for rows.Next() {
		a, err := models.HydrateAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("HistoryStore.LoadAccounts: failed to hydrate: %w", err)
		}
		out = append(out, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("HistoryStore.LoadAccounts: %w", err)
	}

	return out, nil
}

// SaveEntryOrder upserts one working entry order so it can be restored at
// the next session start. Non-entry orders are transient and rejected.
func (s *HistoryStore) SaveEntryOrder(o *models.Order) error {
	if !o.IsEntryOrder() {
		return fmt.Errorf("HistoryStore.SaveEntryOrder: order %s is not an entry order", o.OrderID())
	}

	_, err := s.db.Exec(`
		INSERT OR REPLACE INTO orders
		(order_id, account, symbol, type, status, side, amount, rate, stop, lmt, order_time)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		o.OrderID(), o.AccountName(), o.Symbol(), string(o.Type()), o.Status(),
		string(o.Side()), o.Amount(), o.Rate(), o.Stop(), o.Limit(), o.OrderTime(),
	)
	if err != nil {
		return fmt.Errorf("HistoryStore.SaveEntryOrder: %w", err)
	}

	return nil
}

// LoadEntryOrders hydrates the stored entry orders.
func (s *HistoryStore) LoadEntryOrders() ([]*models.Order, error) {
	rows, err := s.db.Query(models.OrderSelect + " ORDER BY order_time")
	if err != nil {
		return nil, fmt.Errorf("HistoryStore.LoadEntryOrders: %w", err)
	}
	defer rows.Close()

	var out []*models.Order
	for rows.Next() {
		o, err := models.HydrateOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("HistoryStore.LoadEntryOrders: failed to hydrate: %w", err)
		}
		out = append(out, o)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("HistoryStore.LoadEntryOrders: %w", err)
	}

	return out, nil
}

// SaveClosedPosition upserts one closed trade.
func (s *HistoryStore) SaveClosedPosition(p *models.Position) error {
	if p.Stage() != models.StageClosed {
		return fmt.Errorf("HistoryStore.SaveClosedPosition: position %s is still open", p.TradeID())
	}

	_, err := s.db.Exec(`
		INSERT OR REPLACE INTO positions
		(trade_id, account, symbol, side, stage, amount, open_rate, close_rate, stop, lmt, gross_pl, commission, interest, open_time, close_time)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.TradeID(), p.AccountName(), p.Symbol(), string(p.Side()), string(p.Stage()),
		p.Amount(), p.Open(), p.Close(), p.Stop(), p.Limit(),
		p.GrossPL(), p.Commission(), p.Interest(), p.OpenTime(), p.CloseTime(),
	)
	if err != nil {
		return fmt.Errorf("HistoryStore.SaveClosedPosition: %w", err)
	}

	return nil
}

// LoadClosedPositions hydrates the stored trades, most recently closed
// first.
func (s *HistoryStore) LoadClosedPositions() ([]*models.Position, error) {
	rows, err := s.db.Query(models.PositionSelect + " ORDER BY close_time DESC")
	if err != nil {
		return nil, fmt.Errorf("HistoryStore.LoadClosedPositions: %w", err)
	}
	defer rows.Close()

	var out []*models.Position
	for rows.Next() {
		p, err := models.HydratePosition(rows)
		if err != nil {
			return nil, fmt.Errorf("HistoryStore.LoadClosedPositions: failed to hydrate: %w", err)
		}
		out = append(out, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("HistoryStore.LoadClosedPositions: %w", err)
	}

	return out, nil
}
