package models

import (
	"github.com/quantfx/fxterm/src/fields"
)

// Account field ordinals.
const (
	AccountFieldName = iota
	AccountFieldBalance
	AccountFieldEquity
	AccountFieldUsedMargin
	AccountFieldUsableMargin
	AccountFieldGrossPL
	AccountFieldMarginCall
	AccountFieldHedging
)

var accountSchema = fields.Schema{
	{Name: "Account", Type: fields.FieldTypeString, Alignment: fields.AlignLeft, Visible: true},
	{Name: "Balance", Type: fields.FieldTypeDouble, Format: "#,##0.00", Alignment: fields.AlignRight, Visible: true},
	{Name: "Equity", Type: fields.FieldTypeDouble, Format: "#,##0.00", Alignment: fields.AlignRight, Visible: true},
	{Name: "Used Margin", Type: fields.FieldTypeDouble, Format: "#,##0.00", Alignment: fields.AlignRight, Visible: true},
	{Name: "Usable Margin", Type: fields.FieldTypeDouble, Format: "#,##0.00", Alignment: fields.AlignRight, Visible: true},
	{Name: "Gross P/L", Type: fields.FieldTypeDouble, Format: "#,##0.00", Alignment: fields.AlignRight, Visible: true},
	{Name: "MC", Type: fields.FieldTypeString, Alignment: fields.AlignCenter, Visible: true},
	{Name: "Hedging", Type: fields.FieldTypeString, Alignment: fields.AlignCenter, Visible: false},
}

// Account is one trading account row. The margin call state gates every
// trade action that would execute against the account.
type Account struct {
	Entity

	name            string
	balance         float64
	equity          float64
	usedMargin      float64
	usableMargin    float64
	grossPL         float64
	marginCall      string
	underMarginCall bool
	hedging         bool
}

func NewAccount(name string) *Account {
	a := &Account{Entity: newEntity(accountSchema)}
	a.setName(name)
	a.SetMarginCall("N")
	return a
}

func (a *Account) Key() string {
	return a.name
}

func (a *Account) Name() string {
	return a.name
}

func (a *Account) setName(name string) {
	a.name = name
	a.SetFieldValue(AccountFieldName, fields.StringValue(name))
}

func (a *Account) Balance() float64 {
	return a.balance
}

func (a *Account) SetBalance(v float64) {
	a.balance = v
	a.SetFieldValue(AccountFieldBalance, fields.DoubleValue(v))
}

func (a *Account) Equity() float64 {
	return a.equity
}

func (a *Account) SetEquity(v float64) {
	a.equity = v
	a.SetFieldValue(AccountFieldEquity, fields.DoubleValue(v))
}

func (a *Account) UsedMargin() float64 {
	return a.usedMargin
}

func (a *Account) SetUsedMargin(v float64) {
	a.usedMargin = v
	a.SetFieldValue(AccountFieldUsedMargin, fields.DoubleValue(v))
}

func (a *Account) UsableMargin() float64 {
	return a.usableMargin
}

func (a *Account) SetUsableMargin(v float64) {
	a.usableMargin = v
	a.SetFieldValue(AccountFieldUsableMargin, fields.DoubleValue(v))
}

func (a *Account) GrossPL() float64 {
	return a.grossPL
}

func (a *Account) SetGrossPL(v float64) {
	a.grossPL = v
	a.SetFieldValue(AccountFieldGrossPL, fields.DoubleValue(v))
}

// MarginCall is the server's margin call status code: "N" clear, "W" warning,
// "Y" under margin call.
func (a *Account) MarginCall() string {
	return a.marginCall
}

func (a *Account) SetMarginCall(status string) {
	a.marginCall = status
	a.underMarginCall = status == "Y"
	a.SetFieldValue(AccountFieldMarginCall, fields.StringValue(status))
}

func (a *Account) IsUnderMarginCall() bool {
	return a.underMarginCall
}

func (a *Account) SetUnderMarginCall(under bool) {
	if under {
		a.SetMarginCall("Y")
	} else {
		a.SetMarginCall("N")
	}
}

func (a *Account) Hedging() bool {
	return a.hedging
}

func (a *Account) SetHedging(hedging bool) {
	a.hedging = hedging
	a.SetFieldValue(AccountFieldHedging, fields.BoolValue(hedging))
}

func (a *Account) Clone() *Account {
	cp := *a
	a.cloneFields(&cp.Entity)
	return &cp
}

// AccountSelect is the selection descriptor consumed by the history store.
const AccountSelect = "SELECT name, balance, equity, used_margin, usable_margin, gross_pl, margin_call, hedging FROM accounts"

// HydrateAccount builds an Account from one row of AccountSelect.
func HydrateAccount(row RowScanner) (*Account, error) {
	var (
		name       string
		marginCall string
		hedging    bool
		balance    float64
		equity     float64
		usedMargin float64
		usable     float64
		grossPL    float64
	)

	if err := row.Scan(&name, &balance, &equity, &usedMargin, &usable, &grossPL, &marginCall, &hedging); err != nil {
		return nil, err
	}

	a := NewAccount(name)
	a.SetBalance(balance)
	a.SetEquity(equity)
	a.SetUsedMargin(usedMargin)
	a.SetUsableMargin(usable)
	a.SetGrossPL(grossPL)
	a.SetMarginCall(marginCall)
	a.SetHedging(hedging)

	return a, nil
}
