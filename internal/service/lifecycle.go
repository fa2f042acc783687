package service

import (
	"regexp"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/cocoa-pos/api/internal/enum"
	"github.com/cocoa-pos/api/internal/menu"
)

var pickupTimeRe = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)

// AddLineItem resolves the product in the catalog and appends a fresh line
// item to the table. The table's takenAt is stamped on its first order.
func (f *Floor) AddLineItem(tableID int, productName string) (Table, error) {
	product, ok := f.catalog.FindProduct(productName)
	if !ok {
		return Table{}, ErrUnknownProduct
	}
	return f.updateTable(tableID, func(t *Table) bool {
		if len(t.Orders) == 0 {
			now := f.now()
			t.TakenAt = &now
		}
		t.Orders = append(t.Orders, f.newLineItem(product))
		return true
	})
}

func (f *Floor) newLineItem(product menu.Product) LineItem {
	return LineItem{
		ID:        uuid.New(),
		Base:      product.Name,
		PriceBase: product.Price,
		Qty:       1,
		Modifiers: Modifiers{Added: []Modifier{}, Removed: []Modifier{}},
	}
}

// RemoveLineItem deletes a line item. A stale item id is a silent no-op.
func (f *Floor) RemoveLineItem(tableID int, itemID uuid.UUID) (Table, error) {
	return f.updateTable(tableID, func(t *Table) bool {
		i := t.itemIndex(itemID)
		if i < 0 {
			return false
		}
		t.Orders = append(t.Orders[:i], t.Orders[i+1:]...)
		return true
	})
}

// ModifyLineItem replaces a line item in place with a freshly selected
// product (correcting an order). Position and id are preserved; modifiers,
// comments and lifecycle flags start over.
func (f *Floor) ModifyLineItem(tableID int, itemID uuid.UUID, productName string) (Table, error) {
	product, ok := f.catalog.FindProduct(productName)
	if !ok {
		return Table{}, ErrUnknownProduct
	}
	return f.updateTable(tableID, func(t *Table) bool {
		i := t.itemIndex(itemID)
		if i < 0 {
			return false
		}
		replacement := f.newLineItem(product)
		replacement.ID = itemID
		t.Orders[i] = replacement
		return true
	})
}

// ToggleDone flips the done flag. The false->true transition stamps doneAt
// only if it is unset; true->false clears it.
func (f *Floor) ToggleDone(tableID int, itemID uuid.UUID) (Table, error) {
	return f.updateTable(tableID, func(t *Table) bool {
		i := t.itemIndex(itemID)
		if i < 0 {
			return false
		}
		item := &t.Orders[i]
		item.Done = !item.Done
		if item.Done {
			if item.DoneAt == nil {
				now := f.now()
				item.DoneAt = &now
			}
		} else {
			item.DoneAt = nil
		}
		return true
	})
}

// ToggleMarchado flips the marchado flag, independent of done.
func (f *Floor) ToggleMarchado(tableID int, itemID uuid.UUID) (Table, error) {
	return f.updateTable(tableID, func(t *Table) bool {
		i := t.itemIndex(itemID)
		if i < 0 {
			return false
		}
		t.Orders[i].Marchado = !t.Orders[i].Marchado
		return true
	})
}

// ToggleSecond flips the second-course flag.
func (f *Floor) ToggleSecond(tableID int, itemID uuid.UUID) (Table, error) {
	return f.updateTable(tableID, func(t *Table) bool {
		i := t.itemIndex(itemID)
		if i < 0 {
			return false
		}
		t.Orders[i].IsSecond = !t.Orders[i].IsSecond
		return true
	})
}

// MarkServed marks a line item served. Under the flag policy the item stays
// with served=true; under the remove policy it is deleted from the table.
// Serving is one-way: an already-served item is a no-op.
func (f *Floor) MarkServed(tableID int, itemID uuid.UUID) (Table, error) {
	return f.updateTable(tableID, func(t *Table) bool {
		i := t.itemIndex(itemID)
		if i < 0 {
			return false
		}
		if f.servePolicy == enum.ServePolicyRemove {
			t.Orders = append(t.Orders[:i], t.Orders[i+1:]...)
			return true
		}
		if t.Orders[i].Served {
			return false
		}
		t.Orders[i].Served = true
		return true
	})
}

// ApplyModifier appends an ingredient change. An "add" raises the item price
// by the surcharge; a "remove" is a display-only annotation whose price is
// deliberately never subtracted.
func (f *Floor) ApplyModifier(tableID int, itemID uuid.UUID, name string, surcharge decimal.Decimal, kind string) (Table, error) {
	if kind != enum.ModifierAdd && kind != enum.ModifierRemove {
		return Table{}, ErrInvalidModifierKind
	}
	return f.updateTable(tableID, func(t *Table) bool {
		i := t.itemIndex(itemID)
		if i < 0 {
			return false
		}
		item := &t.Orders[i]
		mod := Modifier{Name: name, Price: surcharge}
		if kind == enum.ModifierAdd {
			item.Modifiers.Added = append(item.Modifiers.Added, mod)
			item.PriceBase = item.PriceBase.Add(surcharge)
		} else {
			item.Modifiers.Removed = append(item.Modifiers.Removed, mod)
		}
		return true
	})
}

// AddComment appends a free-text note to a line item. Comments are never
// edited or deleted.
func (f *Floor) AddComment(tableID int, itemID uuid.UUID, text string) (Table, error) {
	return f.updateTable(tableID, func(t *Table) bool {
		i := t.itemIndex(itemID)
		if i < 0 {
			return false
		}
		t.Orders[i].Comments = append(t.Orders[i].Comments, text)
		return true
	})
}

// SetNotes sets the table-level note (customer / order number for delivery
// and courier tables).
func (f *Floor) SetNotes(tableID int, notes string) (Table, error) {
	return f.updateTable(tableID, func(t *Table) bool {
		t.Notes = notes
		return true
	})
}

// SetPickupTime sets the HH:MM pickup time. An empty value clears it.
func (f *Floor) SetPickupTime(tableID int, hhmm string) (Table, error) {
	if hhmm != "" && !pickupTimeRe.MatchString(hhmm) {
		return Table{}, ErrInvalidTime
	}
	return f.updateTable(tableID, func(t *Table) bool {
		t.PickupTime = hhmm
		return true
	})
}

// TogglePedirSegundos flips the "ready for seconds" gate releasing withheld
// second courses to the kitchen.
func (f *Floor) TogglePedirSegundos(tableID int) (Table, error) {
	return f.updateTable(tableID, func(t *Table) bool {
		t.PedirSegundos = !t.PedirSegundos
		return true
	})
}
