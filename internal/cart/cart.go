package cart

import (
	"github.com/jamalparfum/storefront/internal/domain"
	"github.com/shopspring/decimal"
)

// Product is the snapshot of a perfume taken when it is added to the cart.
// The price is not refreshed afterwards; the backend total is what gets charged.
type Product struct {
	ID    int64           `json:"id"`
	Name  string          `json:"name"`
	Brand string          `json:"brand,omitempty"`
	Price decimal.Decimal `json:"price"`
	Stock int             `json:"stock"`
	Image string          `json:"image,omitempty"`
}

// ProductFromPerfume snapshots p
func ProductFromPerfume(p *domain.Perfume) Product {
	return Product{
		ID:    p.ID,
		Name:  p.Name,
		Brand: p.Brand,
		Price: p.Price,
		Stock: p.Stock,
		Image: p.ImageURL(),
	}
}

// Item is a product snapshot with its quantity. Serialized flat as {...product, quantity}.
type Item struct {
	Product
	Quantity int `json:"quantity"`
}

// Subtotal is price times quantity
func (i Item) Subtotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Cart maps product ids to items. Every item has quantity >= 1 and ids are unique.
// Cart does no I/O; see Store for persistence.
type Cart struct {
	items []Item
	index map[int64]int
}

// New returns an empty cart
func New() *Cart {
	return &Cart{index: make(map[int64]int)}
}

// FromItems rebuilds a cart from persisted items, dropping entries with
// quantity < 1 or a missing id and merging duplicate ids.
func FromItems(items []Item) *Cart {
	c := New()
	for _, it := range items {
		if it.ID <= 0 || it.Quantity < 1 {
			continue
		}
		if i, ok := c.index[it.ID]; ok {
			c.items[i].Quantity += it.Quantity
			continue
		}
		c.index[it.ID] = len(c.items)
		c.items = append(c.items, it)
	}
	return c
}

// Add inserts p with quantity 1, or increments the quantity if p is already present
func (c *Cart) Add(p Product) error {
	if p.ID <= 0 {
		return domain.ErrInvalidProduct
	}
	if i, ok := c.index[p.ID]; ok {
		c.items[i].Quantity++
		return nil
	}
	c.index[p.ID] = len(c.items)
	c.items = append(c.items, Item{Product: p, Quantity: 1})
	return nil
}

// Remove deletes the item; absent ids are ignored
func (c *Cart) Remove(id int64) {
	i, ok := c.index[id]
	if !ok {
		return
	}
	c.items = append(c.items[:i], c.items[i+1:]...)
	c.reindex()
}

// SetQuantity overwrites the quantity. Below 1 it removes the item. Absent ids are ignored.
func (c *Cart) SetQuantity(id int64, qty int) {
	if qty < 1 {
		c.Remove(id)
		return
	}
	if i, ok := c.index[id]; ok {
		c.items[i].Quantity = qty
	}
}

// Clear empties the cart
func (c *Cart) Clear() {
	c.items = nil
	c.index = make(map[int64]int)
}

// TotalItems sums quantities
func (c *Cart) TotalItems() int {
	n := 0
	for _, it := range c.items {
		n += it.Quantity
	}
	return n
}

// TotalPrice sums price x quantity over the snapshot prices
func (c *Cart) TotalPrice() decimal.Decimal {
	total := decimal.Zero
	for _, it := range c.items {
		total = total.Add(it.Subtotal())
	}
	return total
}

// Items returns a copy of the items
func (c *Cart) Items() []Item {
	out := make([]Item, len(c.items))
	copy(out, c.items)
	return out
}

// Get returns the item for id
func (c *Cart) Get(id int64) (Item, bool) {
	i, ok := c.index[id]
	if !ok {
		return Item{}, false
	}
	return c.items[i], true
}

func (c *Cart) Len() int      { return len(c.items) }
func (c *Cart) IsEmpty() bool { return len(c.items) == 0 }

// OrderRequest converts the cart into an order creation body
func (c *Cart) OrderRequest() domain.CreateOrderRequest {
	lines := make([]domain.OrderLine, 0, len(c.items))
	for _, it := range c.items {
		lines = append(lines, domain.OrderLine{PerfumeID: it.ID, Quantity: it.Quantity})
	}
	return domain.CreateOrderRequest{Items: lines}
}

func (c *Cart) reindex() {
	c.index = make(map[int64]int, len(c.items))
	for i, it := range c.items {
		c.index[it.ID] = i
	}
}
