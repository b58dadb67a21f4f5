package catalog

import (
	"github.com/KirkDiggler/mausritter-api/internal/errors"
)

// ErrUnknownItem is returned when a name has no catalog entry
var ErrUnknownItem = errors.NotFound("unknown item")

// Catalog is a lookup table of item definitions keyed by name. A Catalog is
// read only after construction and safe to share between goroutines.
type Catalog struct {
	items  []Item
	byName map[string]int
}

// New builds a catalog from the given items. Later duplicates replace
// earlier ones. Zero values for usage and pairing default to standard and
// normal, and a zero slot cost defaults to one.
func New(items ...Item) *Catalog {
	c := &Catalog{
		items:  make([]Item, 0, len(items)),
		byName: make(map[string]int, len(items)),
	}
	for _, item := range items {
		if item.SlotCost == 0 {
			item.SlotCost = 1
		}
		if item.Usage == "" {
			item.Usage = UsageStandard
		}
		if item.Pairing == "" {
			item.Pairing = PairingNormal
		}
		key := normalize(item.Name)
		if idx, ok := c.byName[key]; ok {
			c.items[idx] = item
			continue
		}
		c.byName[key] = len(c.items)
		c.items = append(c.items, item)
	}
	return c
}

// Default returns a new catalog holding the SRD 2.3 items
func Default() *Catalog {
	return New(srdItems()...)
}

// Lookup finds an item by name, ignoring case and repeated whitespace
func (c *Catalog) Lookup(name string) (Item, error) {
	idx, ok := c.byName[normalize(name)]
	if !ok {
		return Item{}, errors.Wrapf(ErrUnknownItem, "no catalog entry for %q", name).
			WithMeta("item", name)
	}
	return c.items[idx], nil
}

// Has reports whether name is a catalog entry
func (c *Catalog) Has(name string) bool {
	_, ok := c.byName[normalize(name)]
	return ok
}

// Resolve returns the catalog entry for name, or the freeform definition
// when there is none.
func (c *Catalog) Resolve(name string) Item {
	if item, err := c.Lookup(name); err == nil {
		return item
	}
	return Freeform(name)
}

// ClearConditionFor returns the clear text of a condition, or "" when name
// is not a condition.
func (c *Catalog) ClearConditionFor(name string) string {
	item, err := c.Lookup(name)
	if err != nil || !item.IsCondition() {
		return ""
	}
	return item.ClearCondition
}

// ByCategory returns the items of one category in catalog order
func (c *Catalog) ByCategory(category Category) []Item {
	var out []Item
	for _, item := range c.items {
		if item.Category == category {
			out = append(out, item)
		}
	}
	return out
}

// All returns every item in catalog order
func (c *Catalog) All() []Item {
	out := make([]Item, len(c.items))
	copy(out, c.items)
	return out
}
