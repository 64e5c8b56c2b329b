package lab

import (
	"errors"
	"fmt"
	"sync"
	"time"

	apperrors "github.com/jrsteele09/portfolio-lab/internal/errors"
	"github.com/shopspring/decimal"
)

// maxOrders bounds the in-memory order history.
const maxOrders = 1000

type OrderItem struct {
	ProductID int `json:"product_id"`
	Quantity  int `json:"quantity"`
}

type Order struct {
	ID          int
	User        string
	Items       []OrderItem
	TotalAmount decimal.Decimal
	Status      string
	CreatedAt   time.Time
}

// OrderBook records orders placed in the playgrounds.
type OrderBook struct {
	catalog *Catalog
	nowTime func() time.Time

	lock   sync.Mutex
	nextID int
	orders []Order
}

func NewOrderBook(catalog *Catalog, nowTime func() time.Time) (*OrderBook, error) {
	if catalog == nil {
		return nil, errors.New("[NewOrderBook] catalog is required")
	}
	if nowTime == nil {
		nowTime = time.Now
	}
	return &OrderBook{catalog: catalog, nowTime: nowTime, nextID: 1}, nil
}

// Create prices the items and records a pending order. A zero quantity
// counts as one; unknown products contribute nothing.
func (b *OrderBook) Create(user string, items []OrderItem) (Order, error) {
	if len(items) == 0 {
		return Order{}, apperrors.Wrapf(apperrors.ErrInvalidRequest, "[OrderBook Create] order has no items")
	}

	total := decimal.Zero
	normalised := make([]OrderItem, 0, len(items))
	for _, item := range items {
		if item.Quantity < 0 {
			return Order{}, apperrors.Wrapf(apperrors.ErrInvalidRequest, "[OrderBook Create] negative quantity for product %d", item.ProductID)
		}
		if item.Quantity == 0 {
			item.Quantity = 1
		}
		normalised = append(normalised, item)

		p, err := b.catalog.Product(item.ProductID)
		if err != nil {
			continue
		}
		total = total.Add(p.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}

	b.lock.Lock()
	defer b.lock.Unlock()

	order := Order{
		ID:          b.nextID,
		User:        user,
		Items:       normalised,
		TotalAmount: total,
		Status:      "pending",
		CreatedAt:   b.nowTime(),
	}
	b.nextID++
	b.orders = append(b.orders, order)
	if len(b.orders) > maxOrders {
		b.orders = b.orders[len(b.orders)-maxOrders:]
	}
	return order, nil
}

// Orders returns the recorded orders for user, oldest first.
func (b *OrderBook) Orders(user string) []Order {
	b.lock.Lock()
	defer b.lock.Unlock()

	var out []Order
	for _, o := range b.orders {
		if o.User == user {
			out = append(out, o)
		}
	}
	return out
}

// Count is the number of orders currently held.
func (b *OrderBook) Count() int {
	b.lock.Lock()
	defer b.lock.Unlock()
	return len(b.orders)
}

func (o Order) String() string {
	return fmt.Sprintf("order %d (%s) %s", o.ID, o.Status, o.TotalAmount.StringFixed(2))
}
