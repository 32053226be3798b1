package cart

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jamalparfum/storefront/internal/domain"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Store is a Cart bound to a Storage. Every mutation is applied in memory and
// then persisted once.
type Store struct {
	storage Storage
	cart    *Cart
	logger  *zap.Logger
}

// Open hydrates a Store from storage. Unreadable or corrupt data yields an
// empty cart; the problem is logged, never returned.
func Open(ctx context.Context, storage Storage, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	if storage == nil {
		storage = NewMemoryStorage()
	}
	s := &Store{storage: storage, logger: logger}
	s.Reload(ctx)
	return s
}

// Reload re-reads storage, picking up writes made from other tabs
func (s *Store) Reload(ctx context.Context) {
	s.cart = New()

	data, err := s.storage.Load(ctx)
	if err != nil {
		s.logger.Warn("failed to load cart, starting empty", zap.Error(err))
		return
	}
	if len(data) == 0 {
		return
	}

	items, err := Decode(data)
	if err != nil {
		s.logger.Warn("corrupt cart data, starting empty", zap.Error(err))
		return
	}
	s.cart = FromItems(items)
}

// Add adds one unit of p
func (s *Store) Add(ctx context.Context, p Product) error {
	if err := s.cart.Add(p); err != nil {
		return err
	}
	return s.persist(ctx)
}

// Remove deletes the item with id
func (s *Store) Remove(ctx context.Context, id int64) error {
	s.cart.Remove(id)
	return s.persist(ctx)
}

// SetQuantity overwrites the quantity of id, removing it below 1
func (s *Store) SetQuantity(ctx context.Context, id int64, qty int) error {
	s.cart.SetQuantity(id, qty)
	return s.persist(ctx)
}

// Clear empties the cart and persists the empty state
func (s *Store) Clear(ctx context.Context) error {
	s.cart.Clear()
	return s.persist(ctx)
}

func (s *Store) Items() []Item {
	return s.cart.Items()
}

// OrderRequest converts the current cart into an order creation body
func (s *Store) OrderRequest() domain.CreateOrderRequest {
	return s.cart.OrderRequest()
}

func (s *Store) TotalItems() int {
	return s.cart.TotalItems()
}

func (s *Store) TotalPrice() decimal.Decimal {
	return s.cart.TotalPrice()
}

func (s *Store) IsEmpty() bool {
	return s.cart.IsEmpty()
}

func (s *Store) Len() int {
	return s.cart.Len()
}

func (s *Store) Cart() *Cart {
	return s.cart
}

func (s *Store) Get(id int64) (Item, bool) {
	return s.cart.Get(id)
}

func (s *Store) persist(ctx context.Context) error {
	data, err := Encode(s.cart)
	if err != nil {
		return err
	}
	if err := s.storage.Save(ctx, data); err != nil {
		s.logger.Warn("failed to persist cart", zap.Error(err))
		return fmt.Errorf("failed to persist cart: %w", err)
	}
	return nil
}

// Encode serializes the cart as a JSON array of {...product, quantity}
func Encode(c *Cart) ([]byte, error) {
	items := c.Items()
	data, err := json.Marshal(items)
	if err != nil {
		return nil, fmt.Errorf("failed to encode cart: %w", err)
	}
	return data, nil
}

// Decode parses a persisted cart
func Decode(data []byte) ([]Item, error) {
	var items []Item
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("failed to decode cart: %w", err)
	}
	return items, nil
}
