package service

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cocoa-pos/api/internal/enum"
)

// StationEntry is one visible line item on a kitchen or service screen,
// carrying the table context and the action the screen may take on it.
type StationEntry struct {
	TableID    int        `json:"table_id"`
	TableName  string     `json:"table_name"`
	TakenAt    *time.Time `json:"taken_at,omitempty"`
	Notes      string     `json:"notes,omitempty"`
	PickupTime string     `json:"pickup_time,omitempty"`
	Item       LineItem   `json:"item"`
	// Dimmed marks an item the screen must show but not act on (withheld
	// second course, or a dish the previous station has not marched yet).
	Dimmed bool `json:"dimmed"`
	// Action is the toggle this screen exposes for the item.
	Action string `json:"action"`
}

// screenConfig parameterizes one kitchen/service screen: both kitchen
// stations share the same mechanics and differ only in exclusions, dim rule
// and action set.
type screenConfig struct {
	excludePizzas bool
	// doneQueue switches from "pending work grouped by table" to the
	// service view: only done-and-unserved items, FIFO by doneAt.
	doneQueue bool
	// dimUnmarched dims marchable items the first station has not marched.
	dimUnmarched bool
	// marcharAction exposes Marchar instead of Done for marchable products.
	marcharAction bool
}

var screens = map[string]screenConfig{
	enum.ScreenCocina:   {marcharAction: true},
	enum.ScreenCocina2:  {excludePizzas: true, dimUnmarched: true},
	enum.ScreenServicio: {doneQueue: true},
}

// VisibleItemsForStation selects and orders the line items one screen must
// display. Kitchen screens group items by table, oldest table first; the
// service screen is a flat done-queue, earliest finished first. Untimed
// entries sort to the front (timestamp treated as zero).
func (f *Floor) VisibleItemsForStation(station string) ([]StationEntry, error) {
	cfg, ok := screens[station]
	if !ok {
		return nil, ErrUnknownStation
	}

	tables := f.Tables()
	if cfg.doneQueue {
		return f.doneQueue(tables), nil
	}

	sort.SliceStable(tables, func(i, j int) bool {
		return unixOrZero(tables[i].TakenAt) < unixOrZero(tables[j].TakenAt)
	})

	var out []StationEntry
	for _, table := range tables {
		for _, item := range table.Orders {
			if item.Served || f.classifier.IsDrink(item.Base) {
				continue
			}
			if cfg.excludePizzas && f.classifier.IsPizza(item.Base) {
				continue
			}
			out = append(out, f.kitchenEntry(table, item, cfg))
		}
	}
	return out, nil
}

func (f *Floor) kitchenEntry(table Table, item LineItem, cfg screenConfig) StationEntry {
	entry := StationEntry{
		TableID:    table.ID,
		TableName:  table.Name,
		TakenAt:    table.TakenAt,
		Notes:      table.Notes,
		PickupTime: table.PickupTime,
		Item:       item,
	}

	withheld := item.IsSecond && !table.PedirSegundos
	marchable := f.classifier.IsMarchable(item.Base)
	entry.Dimmed = withheld || (cfg.dimUnmarched && marchable && !item.Marchado)

	if !entry.Dimmed {
		if cfg.marcharAction && marchable {
			entry.Action = enum.ActionMarchar
		} else {
			entry.Action = enum.ActionDone
		}
	}
	return entry
}

// doneQueue builds the service view: done, unserved, non-drink items across
// all tables, served in the order they were finished.
func (f *Floor) doneQueue(tables []Table) []StationEntry {
	var out []StationEntry
	for _, table := range tables {
		for _, item := range table.Orders {
			if !item.Done || item.Served || f.classifier.IsDrink(item.Base) {
				continue
			}
			out = append(out, StationEntry{
				TableID:   table.ID,
				TableName: table.Name,
				TakenAt:   table.TakenAt,
				Item:      item,
				Action:    enum.ActionServed,
			})
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return unixOrZero(out[i].Item.DoneAt) < unixOrZero(out[j].Item.DoneAt)
	})
	return out
}

func unixOrZero(t *time.Time) int64 {
	if t == nil {
		return 0
	}
	return t.UnixMilli()
}

// TableSummary is one tile on the tables overview.
type TableSummary struct {
	ID              int             `json:"id"`
	Name            string          `json:"name"`
	Kind            string          `json:"kind"`
	Occupied        bool            `json:"occupied"`
	Total           decimal.Decimal `json:"total"`
	Notes           string          `json:"notes,omitempty"`
	PickupTime      string          `json:"pickup_time,omitempty"`
	WithheldSeconds bool            `json:"withheld_seconds"`
	OrderCount      int             `json:"order_count"`
}

// Overview returns every table as a summary tile. Delivery and courier
// tables are distinguished by Kind; WithheldSeconds flags tables still
// holding back a second course.
func (f *Floor) Overview() []TableSummary {
	tables := f.Tables()
	out := make([]TableSummary, len(tables))
	for i, t := range tables {
		out[i] = TableSummary{
			ID:              t.ID,
			Name:            t.Name,
			Kind:            t.Kind(),
			Occupied:        t.Occupied(),
			Total:           t.Total(),
			Notes:           t.Notes,
			PickupTime:      t.PickupTime,
			WithheldSeconds: t.HasWithheldSeconds(),
			OrderCount:      len(t.Orders),
		}
	}
	return out
}
