package service

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/cocoa-pos/api/internal/enum"
)

func newLineItemID(t *testing.T) uuid.UUID {
	t.Helper()
	return uuid.New()
}

func addItem(t *testing.T, f *Floor, tableID int, product string) LineItem {
	t.Helper()
	table, err := f.AddLineItem(tableID, product)
	if err != nil {
		t.Fatalf("add %q: %v", product, err)
	}
	return table.Orders[len(table.Orders)-1]
}

func TestAddLineItem_StampsTakenAtOnFirstOrder(t *testing.T) {
	f := newTestFloor(t, Config{})

	table, err := f.AddLineItem(1, "Margarita")
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if table.TakenAt == nil {
		t.Fatal("first order should stamp takenAt")
	}
	first := *table.TakenAt

	table, _ = f.AddLineItem(1, "Coca Cola")
	if !table.TakenAt.Equal(first) {
		t.Error("second order must not restamp takenAt")
	}
	if len(table.Orders) != 2 {
		t.Fatalf("orders: got %d, want 2", len(table.Orders))
	}
}

func TestAddLineItem_ResolvesCatalogPrice(t *testing.T) {
	f := newTestFloor(t, Config{})
	item := addItem(t, f, 1, "margarita")

	if item.Base != "Margarita" {
		t.Errorf("base: got %q, want catalog casing Margarita", item.Base)
	}
	if item.PriceBase.String() != "9.35" {
		t.Errorf("price: got %s, want 9.35", item.PriceBase)
	}
	if item.ID == uuid.Nil {
		t.Error("line item must get a generated id")
	}
	if item.Qty != 1 {
		t.Errorf("qty: got %d, want 1", item.Qty)
	}
}

func TestAddLineItem_UnknownProduct(t *testing.T) {
	f := newTestFloor(t, Config{})
	if _, err := f.AddLineItem(1, "Calzone"); !errors.Is(err, ErrUnknownProduct) {
		t.Errorf("got %v, want ErrUnknownProduct", err)
	}
}

func TestRemoveLineItem(t *testing.T) {
	f := newTestFloor(t, Config{})
	first := addItem(t, f, 1, "Margarita")
	second := addItem(t, f, 1, "Croquetas")

	table, err := f.RemoveLineItem(1, first.ID)
	if err != nil {
		t.Fatalf("remove: %v", err)
	}
	if len(table.Orders) != 1 || table.Orders[0].ID != second.ID {
		t.Errorf("expected only the second item to survive")
	}

	// Stale id: silent no-op.
	table, err = f.RemoveLineItem(1, first.ID)
	if err != nil {
		t.Fatalf("stale remove: %v", err)
	}
	if len(table.Orders) != 1 {
		t.Errorf("stale remove must not change the table")
	}
}

func TestModifyLineItem_PreservesIdentityAndPosition(t *testing.T) {
	f := newTestFloor(t, Config{})
	first := addItem(t, f, 1, "Margarita")
	addItem(t, f, 1, "Coca Cola")

	f.ToggleDone(1, first.ID)
	f.ApplyModifier(1, first.ID, "+ queso", decimal.NewFromFloat(2.5), enum.ModifierAdd)

	table, err := f.ModifyLineItem(1, first.ID, "Cuatro Quesos")
	if err != nil {
		t.Fatalf("modify: %v", err)
	}

	got := table.Orders[0]
	if got.ID != first.ID {
		t.Error("modify must preserve the line item id")
	}
	if got.Base != "Cuatro Quesos" {
		t.Errorf("base: got %q", got.Base)
	}
	if got.PriceBase.String() != "12.5" {
		t.Errorf("price must restart from the new product, got %s", got.PriceBase)
	}
	if got.Done || got.DoneAt != nil || len(got.Modifiers.Added) != 0 {
		t.Error("modify must reset lifecycle flags and modifiers")
	}
}

func TestToggleDone_StampsAndClears(t *testing.T) {
	f := newTestFloor(t, Config{})
	item := addItem(t, f, 1, "Croquetas")

	table, _ := f.ToggleDone(1, item.ID)
	got := table.Orders[0]
	if !got.Done || got.DoneAt == nil {
		t.Fatal("toggle on must set done and stamp doneAt")
	}

	table, _ = f.ToggleDone(1, item.ID)
	got = table.Orders[0]
	if got.Done || got.DoneAt != nil {
		t.Fatal("toggle off must clear done and doneAt")
	}
}

func TestToggleMarchado_IndependentOfDone(t *testing.T) {
	f := newTestFloor(t, Config{})
	item := addItem(t, f, 1, "Croquetas")

	table, _ := f.ToggleMarchado(1, item.ID)
	got := table.Orders[0]
	if !got.Marchado {
		t.Fatal("expected marchado set")
	}
	if got.Done || got.DoneAt != nil {
		t.Error("marchado must not touch done")
	}

	table, _ = f.ToggleMarchado(1, item.ID)
	if table.Orders[0].Marchado {
		t.Error("expected marchado cleared")
	}
}

func TestToggleSecond(t *testing.T) {
	f := newTestFloor(t, Config{})
	item := addItem(t, f, 1, "Carbonara")

	table, _ := f.ToggleSecond(1, item.ID)
	if !table.Orders[0].IsSecond {
		t.Fatal("expected second-course flag set")
	}
	if !table.HasWithheldSeconds() {
		t.Error("table should report withheld seconds")
	}

	f.TogglePedirSegundos(1)
	table, _ = f.Table(1)
	if table.HasWithheldSeconds() {
		t.Error("pedirSegundos releases the withheld seconds")
	}
}

func TestMarkServed_FlagPolicyIsOneWay(t *testing.T) {
	notifier := &recordingNotifier{}
	f := newTestFloor(t, Config{Notifier: notifier})
	item := addItem(t, f, 1, "Margarita")

	table, _ := f.MarkServed(1, item.ID)
	if !table.Orders[0].Served {
		t.Fatal("expected served set")
	}
	before := notifier.changeCount()

	// Serving again is a no-op and must not broadcast.
	table, _ = f.MarkServed(1, item.ID)
	if !table.Orders[0].Served {
		t.Error("served must stay set")
	}
	if notifier.changeCount() != before {
		t.Error("repeated serve must not broadcast")
	}
}

func TestMarkServed_RemovePolicyDeletes(t *testing.T) {
	f := newTestFloor(t, Config{ServePolicy: enum.ServePolicyRemove})
	item := addItem(t, f, 1, "Margarita")
	addItem(t, f, 1, "Coca Cola")

	table, _ := f.MarkServed(1, item.ID)
	if len(table.Orders) != 1 {
		t.Fatalf("orders: got %d, want 1", len(table.Orders))
	}
	if table.Orders[0].Base != "Coca Cola" {
		t.Errorf("wrong item removed: %q survived", table.Orders[0].Base)
	}
}

func TestApplyModifier_AddRaisesPrice(t *testing.T) {
	f := newTestFloor(t, Config{})
	item := addItem(t, f, 1, "Margarita")

	table, err := f.ApplyModifier(1, item.ID, "+ queso", decimal.NewFromFloat(2.5), enum.ModifierAdd)
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	got := table.Orders[0]
	if got.PriceBase.String() != "11.85" {
		t.Errorf("price: got %s, want 11.85", got.PriceBase)
	}
	if len(got.Modifiers.Added) != 1 || got.Modifiers.Added[0].Name != "+ queso" {
		t.Errorf("added modifiers: %+v", got.Modifiers.Added)
	}
}

func TestApplyModifier_RemoveNeverChangesPrice(t *testing.T) {
	f := newTestFloor(t, Config{})
	item := addItem(t, f, 1, "Margarita")

	table, err := f.ApplyModifier(1, item.ID, "- tomate", decimal.NewFromInt(1), enum.ModifierRemove)
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	got := table.Orders[0]
	if got.PriceBase.String() != "9.35" {
		t.Errorf("removal must not change price, got %s", got.PriceBase)
	}
	if len(got.Modifiers.Removed) != 1 {
		t.Errorf("removed modifiers: %+v", got.Modifiers.Removed)
	}
	// The recorded price is display-only.
	if got.Modifiers.Removed[0].Price.String() != "1" {
		t.Errorf("removed modifier price: got %s", got.Modifiers.Removed[0].Price)
	}
}

func TestApplyModifier_OrderIndependentTotal(t *testing.T) {
	f := newTestFloor(t, Config{})
	a := addItem(t, f, 1, "Margarita")
	b := addItem(t, f, 2, "Margarita")

	queso := decimal.NewFromFloat(2.5)
	bacon := decimal.NewFromFloat(1.5)

	f.ApplyModifier(1, a.ID, "+ queso", queso, enum.ModifierAdd)
	f.ApplyModifier(1, a.ID, "+ bacon", bacon, enum.ModifierAdd)

	f.ApplyModifier(2, b.ID, "+ bacon", bacon, enum.ModifierAdd)
	f.ApplyModifier(2, b.ID, "+ queso", queso, enum.ModifierAdd)

	t1, _ := f.Table(1)
	t2, _ := f.Table(2)
	if !t1.Total().Equal(t2.Total()) {
		t.Errorf("totals differ by application order: %s vs %s", t1.Total(), t2.Total())
	}
}

func TestApplyModifier_InvalidKind(t *testing.T) {
	f := newTestFloor(t, Config{})
	item := addItem(t, f, 1, "Margarita")
	_, err := f.ApplyModifier(1, item.ID, "+ queso", decimal.Zero, "replace")
	if !errors.Is(err, ErrInvalidModifierKind) {
		t.Errorf("got %v, want ErrInvalidModifierKind", err)
	}
}

func TestAddComment_AppendOnly(t *testing.T) {
	f := newTestFloor(t, Config{})
	item := addItem(t, f, 1, "Carbonara")

	f.AddComment(1, item.ID, "sin cebolla")
	table, _ := f.AddComment(1, item.ID, "poco hecha")
	got := table.Orders[0].Comments
	if len(got) != 2 || got[0] != "sin cebolla" || got[1] != "poco hecha" {
		t.Errorf("comments: %v", got)
	}
}

func TestSetPickupTime_Validation(t *testing.T) {
	f := newTestFloor(t, Config{})

	tests := []struct {
		value string
		valid bool
	}{
		{"14:30", true},
		{"00:00", true},
		{"23:59", true},
		{"", true}, // clears
		{"24:00", false},
		{"9:30", false},
		{"14:60", false},
		{"noon", false},
	}
	for _, tt := range tests {
		_, err := f.SetPickupTime(3, tt.value)
		if tt.valid && err != nil {
			t.Errorf("SetPickupTime(%q): unexpected error %v", tt.value, err)
		}
		if !tt.valid && !errors.Is(err, ErrInvalidTime) {
			t.Errorf("SetPickupTime(%q): got %v, want ErrInvalidTime", tt.value, err)
		}
	}
}

func TestSetNotes(t *testing.T) {
	f := newTestFloor(t, Config{})
	table, err := f.SetNotes(20, "pedido 42, Calle Mayor 3")
	if err != nil {
		t.Fatalf("notes: %v", err)
	}
	if table.Notes != "pedido 42, Calle Mayor 3" {
		t.Errorf("notes: got %q", table.Notes)
	}
}
