package menu

import "strings"

// Category prefixes used to derive per-screen product sets. Keys in the
// catalog carry emoji suffixes, so matching is by lowercase prefix.
const (
	categoryDrinks = "bebidas"
	categoryPizzas = "pizzas"
)

// marchableCategories are the courses a kitchen "marcha" onward instead of
// finishing outright: starters, pasta, meat and fish.
var marchableCategories = []string{"entrantes", "pastas", "carnes", "pescados"}

// Classifier knows which products belong to which kitchen concern. It is
// cheap to rebuild and always reflects the catalog it was built from.
type Classifier struct {
	drinks    map[string]struct{}
	pizzas    map[string]struct{}
	marchable map[string]struct{}
}

// NewClassifier derives the drink, pizza and marchable product sets from the
// catalog. Missing categories yield empty sets, not errors.
func NewClassifier(c *Catalog) *Classifier {
	cl := &Classifier{
		drinks:    flattenCategory(c, categoryDrinks),
		pizzas:    flattenCategory(c, categoryPizzas),
		marchable: make(map[string]struct{}),
	}
	for _, prefix := range marchableCategories {
		for name := range flattenCategory(c, prefix) {
			cl.marchable[name] = struct{}{}
		}
	}
	return cl
}

func flattenCategory(c *Catalog, prefix string) map[string]struct{} {
	node, ok := c.Category(prefix)
	if !ok {
		return map[string]struct{}{}
	}
	return Flatten(node)
}

// IsDrink reports whether the product belongs to the drinks category.
func (cl *Classifier) IsDrink(product string) bool {
	return contains(cl.drinks, product)
}

// IsPizza reports whether the product belongs to the pizzas category.
func (cl *Classifier) IsPizza(product string) bool {
	return contains(cl.pizzas, product)
}

// IsMarchable reports whether the product takes the "marchar" action instead
// of "done" on the first kitchen screen.
func (cl *Classifier) IsMarchable(product string) bool {
	return contains(cl.marchable, product)
}

func contains(set map[string]struct{}, product string) bool {
	_, ok := set[strings.ToLower(product)]
	return ok
}
