package menu_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/cocoa-pos/api/internal/menu"
)

const sampleMenu = `{
	"Bebidas 🥛": {
		"Refrescos": {
			"Coca Cola": 2.5,
			"Agua": 1.8
		},
		"Vinos": {
			"Rioja Crianza": 14
		}
	},
	"Pizzas Enteras 🍕": {
		"Margarita": {
			"price": 9.35,
			"+": {"+ queso": 2.5, "+ bacon": 1.5},
			"-": {"- tomate": 0}
		},
		"Cuatro Quesos": 12.5
	},
	"Entrantes 🥗": {
		"Croquetas": 7.5
	}
}`

func loadSample(t *testing.T) *menu.Catalog {
	t.Helper()
	c, err := menu.Load(strings.NewReader(sampleMenu))
	if err != nil {
		t.Fatalf("load sample menu: %v", err)
	}
	return c
}

func TestLoad_BareNumberLeaf(t *testing.T) {
	c := loadSample(t)

	p, ok := c.FindProduct("Coca Cola")
	if !ok {
		t.Fatal("expected Coca Cola in catalog")
	}
	if p.Price.String() != "2.5" {
		t.Errorf("price: got %s, want 2.5", p.Price)
	}
	if len(p.Added) != 0 || len(p.Removed) != 0 {
		t.Errorf("bare leaf should have no modifiers, got %d/%d", len(p.Added), len(p.Removed))
	}
}

func TestLoad_LeafWithModifiers(t *testing.T) {
	c := loadSample(t)

	p, ok := c.FindProduct("Margarita")
	if !ok {
		t.Fatal("expected Margarita in catalog")
	}
	if p.Price.String() != "9.35" {
		t.Errorf("price: got %s, want 9.35", p.Price)
	}
	if len(p.Added) != 2 {
		t.Fatalf("added modifiers: got %d, want 2", len(p.Added))
	}
	// Options come back sorted by name.
	if p.Added[0].Name != "+ bacon" || p.Added[1].Name != "+ queso" {
		t.Errorf("added order: got %q, %q", p.Added[0].Name, p.Added[1].Name)
	}
	if p.Added[1].Surcharge.String() != "2.5" {
		t.Errorf("queso surcharge: got %s, want 2.5", p.Added[1].Surcharge)
	}
	if len(p.Removed) != 1 || p.Removed[0].Name != "- tomate" {
		t.Errorf("removed: got %+v", p.Removed)
	}
}

func TestLoad_EmptyCatalog(t *testing.T) {
	_, err := menu.Load(strings.NewReader(`{}`))
	if !errors.Is(err, menu.ErrEmptyCatalog) {
		t.Errorf("got %v, want ErrEmptyCatalog", err)
	}
}

func TestLoad_NegativePrice(t *testing.T) {
	_, err := menu.Load(strings.NewReader(`{"Cat": {"Item": -1}}`))
	if !errors.Is(err, menu.ErrNegativePrice) {
		t.Errorf("got %v, want ErrNegativePrice", err)
	}
}

func TestLoad_MixedNode(t *testing.T) {
	_, err := menu.Load(strings.NewReader(`{"Cat": {"Item": {"price": 5, "Sub": {"Leaf": 2}}}}`))
	if !errors.Is(err, menu.ErrMixedNode) {
		t.Errorf("got %v, want ErrMixedNode", err)
	}
}

func TestLoad_UnknownLeafKey(t *testing.T) {
	_, err := menu.Load(strings.NewReader(`{"Cat": {"Item": {"price": 5, "weird": 1}}}`))
	if !errors.Is(err, menu.ErrUnknownLeafKey) {
		t.Errorf("got %v, want ErrUnknownLeafKey", err)
	}
}

func TestLoad_InvalidModifierSurcharge(t *testing.T) {
	_, err := menu.Load(strings.NewReader(`{"Cat": {"Item": {"price": 5, "+": {"+ x": -2}}}}`))
	if !errors.Is(err, menu.ErrInvalidModifier) {
		t.Errorf("got %v, want ErrInvalidModifier", err)
	}
}

func TestCategory_PrefixMatch(t *testing.T) {
	c := loadSample(t)

	// Category keys carry emoji suffixes; lookups go by lowercase prefix.
	if _, ok := c.Category("bebidas"); !ok {
		t.Error("expected prefix match for bebidas")
	}
	if _, ok := c.Category("pizzas"); !ok {
		t.Error("expected prefix match for pizzas")
	}
	if _, ok := c.Category("postres"); ok {
		t.Error("expected no match for postres")
	}
}

func TestFlatten_CollectsNestedLeaves(t *testing.T) {
	c := loadSample(t)

	node, ok := c.Category("bebidas")
	if !ok {
		t.Fatal("bebidas category missing")
	}
	names := menu.Flatten(node)
	for _, want := range []string{"coca cola", "agua", "rioja crianza"} {
		if _, ok := names[want]; !ok {
			t.Errorf("flatten missing %q", want)
		}
	}
	if len(names) != 3 {
		t.Errorf("flatten size: got %d, want 3", len(names))
	}
}

func TestFindProduct_CaseInsensitive(t *testing.T) {
	c := loadSample(t)

	p, ok := c.FindProduct("mArGaRiTa")
	if !ok {
		t.Fatal("expected case-insensitive match")
	}
	if p.Name != "Margarita" {
		t.Errorf("name: got %q, want Margarita", p.Name)
	}

	if _, ok := c.FindProduct("Calzone"); ok {
		t.Error("expected no match for Calzone")
	}
}

func TestDefault_EmbeddedMenuLoads(t *testing.T) {
	c, err := menu.Default()
	if err != nil {
		t.Fatalf("default menu: %v", err)
	}
	if len(c.Categories()) == 0 {
		t.Fatal("embedded menu has no categories")
	}
	if _, ok := c.Category("bebidas"); !ok {
		t.Error("embedded menu missing bebidas")
	}
	if _, ok := c.Category("pizzas"); !ok {
		t.Error("embedded menu missing pizzas")
	}
}
