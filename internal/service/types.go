// Package service implements the order lifecycle and station-routing engine:
// the floor of tables, the line items ordered at each, their progress through
// kitchen preparation and service, and settlement into sales.
package service

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/cocoa-pos/api/internal/enum"
)

// Modifier is one applied ingredient change on a line item. Removed
// modifiers carry a price for display but it is never subtracted from the
// item price.
type Modifier struct {
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

// Modifiers holds the applied changes on a line item, both append-only.
type Modifiers struct {
	Added   []Modifier `json:"added"`
	Removed []Modifier `json:"removed"`
}

// LineItem is one ordered product on a table. Identity is the generated ID,
// never the position in the table's order list.
type LineItem struct {
	ID        uuid.UUID       `json:"id"`
	Base      string          `json:"base"`
	PriceBase decimal.Decimal `json:"price_base"`
	Qty       int             `json:"qty"`
	Modifiers Modifiers       `json:"modifiers"`
	Comments  []string        `json:"comments,omitempty"`
	IsSecond  bool            `json:"is_second"`
	Done      bool            `json:"done"`
	DoneAt    *time.Time      `json:"done_at,omitempty"`
	Served    bool            `json:"served"`
	Marchado  bool            `json:"marchado"`
}

// clone returns a deep copy so snapshots never alias floor state.
func (li LineItem) clone() LineItem {
	out := li
	out.Modifiers.Added = append([]Modifier(nil), li.Modifiers.Added...)
	out.Modifiers.Removed = append([]Modifier(nil), li.Modifiers.Removed...)
	out.Comments = append([]string(nil), li.Comments...)
	if li.DoneAt != nil {
		at := *li.DoneAt
		out.DoneAt = &at
	}
	return out
}

// Table is one seat of the fixed roster. Tables are created at startup and
// never destroyed; settlement only empties their orders.
type Table struct {
	ID            int        `json:"id"`
	Name          string     `json:"name"`
	Orders        []LineItem `json:"orders"`
	Notes         string     `json:"notes,omitempty"`
	PickupTime    string     `json:"pickup_time,omitempty"`
	PedirSegundos bool       `json:"pedir_segundos"`
	TakenAt       *time.Time `json:"taken_at,omitempty"`
}

func (t Table) clone() Table {
	out := t
	out.Orders = make([]LineItem, len(t.Orders))
	for i, item := range t.Orders {
		out.Orders[i] = item.clone()
	}
	if t.TakenAt != nil {
		at := *t.TakenAt
		out.TakenAt = &at
	}
	return out
}

// Kind derives the table kind from its roster name.
func (t Table) Kind() string {
	name := strings.ToLower(t.Name)
	switch {
	case strings.Contains(name, "delivery"):
		return enum.TableKindDelivery
	case strings.Contains(name, "glovo"):
		return enum.TableKindCourier
	case strings.Contains(name, " t"):
		return enum.TableKindTakeaway
	default:
		return enum.TableKindDineIn
	}
}

// Occupied reports whether the table has at least one order.
func (t Table) Occupied() bool { return len(t.Orders) > 0 }

// Total sums PriceBase over all orders. Derived, never stored.
func (t Table) Total() decimal.Decimal {
	total := decimal.Zero
	for _, item := range t.Orders {
		total = total.Add(item.PriceBase)
	}
	return total
}

// HasWithheldSeconds reports whether any second course is still withheld
// from the kitchen (the red dot on the tables overview).
func (t Table) HasWithheldSeconds() bool {
	if t.PedirSegundos {
		return false
	}
	for _, item := range t.Orders {
		if item.IsSecond {
			return true
		}
	}
	return false
}

// item looks a line item up by ID. Returns its index or -1.
func (t Table) itemIndex(id uuid.UUID) int {
	for i, item := range t.Orders {
		if item.ID == id {
			return i
		}
	}
	return -1
}

// Sale is the immutable settlement record of a table's completed items.
type Sale struct {
	ID        uuid.UUID       `json:"id"`
	TableID   int             `json:"table_id"`
	TableName string          `json:"table_name"`
	Orders    []LineItem      `json:"orders"`
	Total     decimal.Decimal `json:"total"`
	Date      time.Time       `json:"date"`
}

func (s Sale) clone() Sale {
	out := s
	out.Orders = make([]LineItem, len(s.Orders))
	for i, item := range s.Orders {
		out.Orders[i] = item.clone()
	}
	return out
}
