// Package menu holds the static product catalog: a tree of categories and
// subcategories whose leaves are priced products, optionally carrying add /
// remove ingredient modifier lists. The catalog is loaded once at startup and
// is read-only afterwards.
package menu

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

//go:embed menu.json
var defaultMenu []byte

// Errors returned while loading a catalog.
var (
	ErrMixedNode       = errors.New("node is both a priced leaf and a grouping")
	ErrNegativePrice   = errors.New("price must be non-negative")
	ErrEmptyCatalog    = errors.New("catalog has no categories")
	ErrUnknownLeafKey  = errors.New("unknown key in product node")
	ErrInvalidModifier = errors.New("invalid modifier surcharge")
)

// ModifierOption is one selectable ingredient change with its surcharge.
type ModifierOption struct {
	Name      string          `json:"name"`
	Surcharge decimal.Decimal `json:"surcharge"`
}

// Product is a priced catalog leaf resolved by name.
type Product struct {
	Name    string           `json:"name"`
	Price   decimal.Decimal  `json:"price"`
	Added   []ModifierOption `json:"added,omitempty"`
	Removed []ModifierOption `json:"removed,omitempty"`
}

// Node is one entry in the catalog tree. A node is either a priced leaf or a
// grouping of child nodes, never both.
type Node struct {
	Leaf     bool
	Price    decimal.Decimal
	Added    []ModifierOption
	Removed  []ModifierOption
	Children map[string]*Node
}

// Catalog is the full category tree.
type Catalog struct {
	categories map[string]*Node
	raw        []byte
}

// Raw returns the JSON the catalog was loaded from, for serving to the
// ordering UI verbatim.
func (c *Catalog) Raw() []byte { return c.raw }

// Default loads the embedded menu.
func Default() (*Catalog, error) {
	return Load(bytes.NewReader(defaultMenu))
}

// LoadFile loads a catalog from a JSON file on disk.
func LoadFile(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open menu: %w", err)
	}
	defer f.Close()
	return Load(f)
}

// Load parses a catalog from JSON. The expected shape is
// category -> (subcategory -> ...) -> product, where a product is either a
// bare number (its price) or an object with "price" and optional "+" / "-"
// modifier maps of ingredient name -> surcharge.
func Load(r io.Reader) (*Catalog, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read menu: %w", err)
	}

	var raw map[string]json.RawMessage
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode menu: %w", err)
	}
	if len(raw) == 0 {
		return nil, ErrEmptyCatalog
	}

	categories := make(map[string]*Node, len(raw))
	for name, msg := range raw {
		node, err := parseNode(name, msg)
		if err != nil {
			return nil, err
		}
		categories[name] = node
	}
	return &Catalog{categories: categories, raw: data}, nil
}

func parseNode(path string, msg json.RawMessage) (*Node, error) {
	trimmed := bytes.TrimSpace(msg)
	if len(trimmed) > 0 && trimmed[0] != '{' {
		// Bare number: a priced leaf with no modifiers.
		price, err := parsePrice(path, msg)
		if err != nil {
			return nil, err
		}
		return &Node{Leaf: true, Price: price}, nil
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal(msg, &obj); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	if priceMsg, ok := obj["price"]; ok {
		return parseLeaf(path, obj, priceMsg)
	}

	children := make(map[string]*Node, len(obj))
	for name, childMsg := range obj {
		child, err := parseNode(path+"/"+name, childMsg)
		if err != nil {
			return nil, err
		}
		children[name] = child
	}
	return &Node{Children: children}, nil
}

func parseLeaf(path string, obj map[string]json.RawMessage, priceMsg json.RawMessage) (*Node, error) {
	price, err := parsePrice(path, priceMsg)
	if err != nil {
		return nil, err
	}
	node := &Node{Leaf: true, Price: price}

	for key, msg := range obj {
		switch key {
		case "price":
		case "+":
			node.Added, err = parseModifiers(path, msg)
		case "-":
			node.Removed, err = parseModifiers(path, msg)
		default:
			// A priced node must not also group children.
			trimmed := bytes.TrimSpace(msg)
			if len(trimmed) > 0 && trimmed[0] == '{' {
				return nil, fmt.Errorf("%s: %w", path, ErrMixedNode)
			}
			return nil, fmt.Errorf("%s: %q: %w", path, key, ErrUnknownLeafKey)
		}
		if err != nil {
			return nil, err
		}
	}
	return node, nil
}

func parsePrice(path string, msg json.RawMessage) (decimal.Decimal, error) {
	var num json.Number
	if err := json.Unmarshal(msg, &num); err != nil {
		return decimal.Zero, fmt.Errorf("%s: %w", path, err)
	}
	price, err := decimal.NewFromString(num.String())
	if err != nil {
		return decimal.Zero, fmt.Errorf("%s: %w", path, err)
	}
	if price.IsNegative() {
		return decimal.Zero, fmt.Errorf("%s: %w", path, ErrNegativePrice)
	}
	return price, nil
}

func parseModifiers(path string, msg json.RawMessage) ([]ModifierOption, error) {
	var raw map[string]json.Number
	if err := json.Unmarshal(msg, &raw); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	options := make([]ModifierOption, 0, len(raw))
	for name, num := range raw {
		surcharge, err := decimal.NewFromString(num.String())
		if err != nil || surcharge.IsNegative() {
			return nil, fmt.Errorf("%s: %q: %w", path, name, ErrInvalidModifier)
		}
		options = append(options, ModifierOption{Name: name, Surcharge: surcharge})
	}
	sort.Slice(options, func(i, j int) bool { return options[i].Name < options[j].Name })
	return options, nil
}

// Categories returns the top-level category names, sorted.
func (c *Catalog) Categories() []string {
	names := make([]string, 0, len(c.categories))
	for name := range c.categories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Category returns the node for a top-level category whose lowercased name
// starts with the given prefix. Category keys carry emoji suffixes, so
// lookups match by prefix ("bebidas" matches "Bebidas 🥛").
func (c *Catalog) Category(prefix string) (*Node, bool) {
	prefix = strings.ToLower(prefix)
	for name, node := range c.categories {
		if strings.HasPrefix(strings.ToLower(name), prefix) {
			return node, true
		}
	}
	return nil, false
}

// Flatten returns the set of lowercased product names reachable from node.
func Flatten(node *Node) map[string]struct{} {
	out := make(map[string]struct{})
	flattenInto(node, out)
	return out
}

func flattenInto(node *Node, out map[string]struct{}) {
	if node == nil {
		return
	}
	for name, child := range node.Children {
		if child.Leaf {
			out[strings.ToLower(name)] = struct{}{}
		} else {
			flattenInto(child, out)
		}
	}
}

// FindProduct resolves a product anywhere in the tree by case-insensitive
// name and returns it with its price and modifier options.
func (c *Catalog) FindProduct(name string) (Product, bool) {
	want := strings.ToLower(name)
	for _, category := range c.categories {
		if p, ok := findIn(category, want); ok {
			return p, true
		}
	}
	return Product{}, false
}

func findIn(node *Node, want string) (Product, bool) {
	for name, child := range node.Children {
		if child.Leaf {
			if strings.ToLower(name) == want {
				return Product{
					Name:    name,
					Price:   child.Price,
					Added:   child.Added,
					Removed: child.Removed,
				}, true
			}
			continue
		}
		if p, ok := findIn(child, want); ok {
			return p, true
		}
	}
	return Product{}, false
}
