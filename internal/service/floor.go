package service

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/cocoa-pos/api/internal/enum"
	"github.com/cocoa-pos/api/internal/menu"
)

// Errors returned by the floor.
var (
	ErrUnknownTable        = errors.New("unknown table")
	ErrUnknownProduct      = errors.New("product not found in catalog")
	ErrUnknownStation      = errors.New("unknown station")
	ErrInvalidModifierKind = errors.New("invalid modifier kind")
	ErrEmptySettlement     = errors.New("no completed items to settle")
	ErrInvalidAmount       = errors.New("invalid tendered amount")
	ErrInvalidMethod       = errors.New("invalid payment method")
	ErrInvalidTime         = errors.New("pickup time must be HH:MM")
)

// Notifier receives fire-and-forget signals from the floor. Calls happen
// outside the floor mutex, so implementations may read floor snapshots.
type Notifier interface {
	// FloorChanged fires after every applied mutation.
	FloorChanged()
	// TableAttention fires when a table's attention timer elapses.
	TableAttention(table Table)
}

// nopNotifier is used when no notifier is configured.
type nopNotifier struct{}

func (nopNotifier) FloorChanged()        {}
func (nopNotifier) TableAttention(Table) {}

// Config carries the floor's injected collaborators and policies.
type Config struct {
	Catalog *menu.Catalog
	// Roster is the fixed list of table names. Defaults to DefaultRoster().
	Roster []string
	// ServePolicy is enum.ServePolicyFlag (default) or enum.ServePolicyRemove.
	ServePolicy string
	// AttentionDelay is how long a table may hold unacknowledged orders
	// before the attention signal fires. Zero disables the timer.
	AttentionDelay time.Duration
	Notifier       Notifier
	// Clock defaults to time.Now; injected for tests.
	Clock func() time.Time
}

// Floor owns the whole table collection, the sales log and the station
// classifier. There is exactly one logical writer: every mutation runs under
// the mutex and replaces the touched table with a derived copy, so readers
// only ever observe complete states.
type Floor struct {
	mu         sync.Mutex
	tables     []Table
	sales      []Sale
	catalog    *menu.Catalog
	classifier *menu.Classifier

	servePolicy string
	notifier    Notifier
	now         func() time.Time
	attention   *attentionScheduler
}

// DefaultRoster is the fixed seat plan: dine-in tables, takeaway tables,
// terrace-bar tables, courier slots and own-delivery slots.
func DefaultRoster() []string {
	names := make([]string, 0, 32)
	for i := 1; i <= 8; i++ {
		names = append(names, fmt.Sprintf("Mesa %d", i))
	}
	for i := 1; i <= 8; i++ {
		names = append(names, fmt.Sprintf("Mesa T%d", i))
	}
	for i := 1; i <= 2; i++ {
		names = append(names, fmt.Sprintf("Mesa TB%d", i))
	}
	for i := 1; i <= 6; i++ {
		names = append(names, fmt.Sprintf("GLOVO %d", i))
	}
	for i := 1; i <= 8; i++ {
		names = append(names, fmt.Sprintf("delivery %d", i))
	}
	return names
}

// NewFloor builds a floor with the fixed roster. Tables get ids 1..N in
// roster order and live for the whole process.
func NewFloor(cfg Config) *Floor {
	roster := cfg.Roster
	if len(roster) == 0 {
		roster = DefaultRoster()
	}
	policy := cfg.ServePolicy
	if policy == "" {
		policy = enum.ServePolicyFlag
	}
	notifier := cfg.Notifier
	if notifier == nil {
		notifier = nopNotifier{}
	}
	clock := cfg.Clock
	if clock == nil {
		clock = time.Now
	}

	tables := make([]Table, len(roster))
	for i, name := range roster {
		tables[i] = Table{ID: i + 1, Name: name}
	}

	f := &Floor{
		tables:      tables,
		catalog:     cfg.Catalog,
		classifier:  menu.NewClassifier(cfg.Catalog),
		servePolicy: policy,
		notifier:    notifier,
		now:         clock,
	}
	f.attention = newAttentionScheduler(cfg.AttentionDelay, f.fireAttention)
	return f
}

// Tables returns a deep snapshot of every table.
func (f *Floor) Tables() []Table {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]Table, len(f.tables))
	for i, t := range f.tables {
		out[i] = t.clone()
	}
	return out
}

// Table returns a deep snapshot of one table.
func (f *Floor) Table(tableID int) (Table, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	i := f.indexOf(tableID)
	if i < 0 {
		return Table{}, false
	}
	return f.tables[i].clone(), true
}

// OccupiedTables returns snapshots of tables with at least one order.
func (f *Floor) OccupiedTables() []Table {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []Table
	for _, t := range f.tables {
		if t.Occupied() {
			out = append(out, t.clone())
		}
	}
	return out
}

// SalesLog returns a snapshot of the append-only sales log.
func (f *Floor) SalesLog() []Sale {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]Sale, len(f.sales))
	for i, s := range f.sales {
		out[i] = s.clone()
	}
	return out
}

func (f *Floor) indexOf(tableID int) int {
	for i, t := range f.tables {
		if t.ID == tableID {
			return i
		}
	}
	return -1
}

// updateTable is the single mutation path. It clones the table, applies fn
// to the clone and, when fn reports a change, swaps the clone in and fires
// the change notification. fn returning false is the silent-no-op path for
// stale references: no state change, no broadcast.
func (f *Floor) updateTable(tableID int, fn func(t *Table) bool) (Table, error) {
	f.mu.Lock()
	i := f.indexOf(tableID)
	if i < 0 {
		f.mu.Unlock()
		return Table{}, ErrUnknownTable
	}

	next := f.tables[i].clone()
	applied := fn(&next)
	if applied {
		f.tables[i] = next
		if next.Occupied() {
			f.attention.arm(next.ID)
		} else {
			f.attention.reset(next.ID)
		}
	}
	snapshot := f.tables[i].clone()
	f.mu.Unlock()

	if applied {
		f.notifier.FloorChanged()
	}
	return snapshot, nil
}

func (f *Floor) fireAttention(tableID int) {
	table, ok := f.Table(tableID)
	if !ok || !table.Occupied() {
		return
	}
	slog.Info("table attention", "table", table.Name, "orders", len(table.Orders))
	f.notifier.TableAttention(table)
}
