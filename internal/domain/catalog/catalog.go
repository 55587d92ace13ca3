package catalog

// Catalog is an insertion-ordered snapshot of analyzed items. The ranking
// pipeline only reads it; the repository builds a fresh snapshot on every
// mutation, so a snapshot handed to a search is never written concurrently.
// Insertion order is the tie-break order for ranking.
type Catalog struct {
	order []string
	items map[string]Item
}

// NewCatalog creates an empty catalog snapshot.
func NewCatalog() *Catalog {
	return &Catalog{items: make(map[string]Item)}
}

// Add appends an item, or replaces it in place when the id already exists.
// Replacement keeps the original insertion position.
func (c *Catalog) Add(item Item) {
	if _, ok := c.items[item.id]; !ok {
		c.order = append(c.order, item.id)
	}
	c.items[item.id] = item
}

// Get returns the item with the given id.
func (c *Catalog) Get(id string) (Item, bool) {
	item, ok := c.items[id]
	return item, ok
}

// Items returns all items in insertion order.
func (c *Catalog) Items() []Item {
	out := make([]Item, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.items[id])
	}
	return out
}

// Len returns the number of items.
func (c *Catalog) Len() int { return len(c.order) }

// Clone returns a shallow copy sharing no bookkeeping with the original.
func (c *Catalog) Clone() *Catalog {
	clone := &Catalog{
		order: append([]string(nil), c.order...),
		items: make(map[string]Item, len(c.items)),
	}
	for id, item := range c.items {
		clone.items[id] = item
	}
	return clone
}
