package service

import (
	"log/slog"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/cocoa-pos/api/internal/enum"
)

// billable reports whether a line item folds into the bill: anything marked
// done or marchado counts; items never marked ready are silently excluded.
func billable(item LineItem) bool { return item.Done || item.Marchado }

// CloseTable settles a table: the billable subset of its orders becomes an
// immutable Sale appended to the sales log, then the table's orders and
// takenAt are cleared together. Unbilled items are discarded with the rest:
// not ready at close means voided.
//
// A table with no billable items cannot be settled: ErrEmptySettlement is
// returned and the table is left untouched.
func (f *Floor) CloseTable(tableID int) (*Sale, error) {
	f.mu.Lock()
	i := f.indexOf(tableID)
	if i < 0 {
		f.mu.Unlock()
		return nil, ErrUnknownTable
	}

	table := f.tables[i]
	var completed []LineItem
	total := decimal.Zero
	for _, item := range table.Orders {
		if billable(item) {
			completed = append(completed, item.clone())
			total = total.Add(item.PriceBase)
		}
	}
	if len(completed) == 0 {
		f.mu.Unlock()
		return nil, ErrEmptySettlement
	}

	sale := Sale{
		ID:        uuid.New(),
		TableID:   table.ID,
		TableName: table.Name,
		Orders:    completed,
		Total:     total,
		Date:      f.now(),
	}
	f.sales = append(f.sales, sale)

	cleared := table.clone()
	cleared.Orders = nil
	cleared.TakenAt = nil
	cleared.Notes = ""
	cleared.PickupTime = ""
	cleared.PedirSegundos = false
	f.tables[i] = cleared
	f.attention.reset(tableID)
	f.mu.Unlock()

	slog.Info("table settled",
		"table", sale.TableName,
		"items", len(sale.Orders),
		"total", sale.Total.StringFixed(2),
	)
	f.notifier.FloorChanged()

	out := sale.clone()
	return &out, nil
}

// PaymentResult is the informational outcome of recording a payment against
// a table's current total. Recording a payment never mutates floor state.
type PaymentResult struct {
	Method string          `json:"method"`
	Total  decimal.Decimal `json:"total"`
	// Tendered is set for cash payments only.
	Tendered *decimal.Decimal `json:"tendered,omitempty"`
	// Change is the amount to hand back, never negative.
	Change decimal.Decimal `json:"change"`
	// ChangeDue is false when no change is owed, including underpayment.
	// An underpaid cash amount is reported, never rejected.
	ChangeDue bool `json:"change_due"`
}

// RecordPayment computes the change for a payment against the table's
// current total (the full total over all orders, billable or not). Cash
// requires a parsable tendered amount; anything unparsable is
// ErrInvalidAmount so the caller can block progression instead of showing
// a garbage change value.
func (f *Floor) RecordPayment(tableID int, method, tendered string) (*PaymentResult, error) {
	table, ok := f.Table(tableID)
	if !ok {
		return nil, ErrUnknownTable
	}
	total := table.Total()

	switch method {
	case enum.PaymentMethodCard:
		return &PaymentResult{Method: method, Total: total, Change: decimal.Zero}, nil
	case enum.PaymentMethodCash:
	default:
		return nil, ErrInvalidMethod
	}

	amount, err := decimal.NewFromString(tendered)
	if err != nil {
		return nil, ErrInvalidAmount
	}

	change := amount.Sub(total)
	result := &PaymentResult{Method: method, Total: total, Tendered: &amount}
	if change.IsPositive() {
		result.Change = change
		result.ChangeDue = true
	} else {
		result.Change = decimal.Zero
	}
	return result, nil
}
