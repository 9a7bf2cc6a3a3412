package order_generator

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"orderflow/internal/handlers/kafka-consumer/order_created"
)

var (
	products = []string{"Lamp", "Desk", "Chair", "Mug", "Notebook", "Headphones", "Backpack", "Kettle"}
	payments = []string{"card", "cash", "sbp"}
	streets  = []string{"Main st", "Lenina ave", "Park ln", "Harbor rd"}

	DefaultVendors = []string{"vendor-a", "vendor-b", "vendor-c", "vendor-d"}
)

// Generator builds plausible order.created payloads for load testing.
// It is not safe for concurrent use.
type Generator struct {
	rnd     *rand.Rand
	vendors []string
	now     func() time.Time
}

func New(seed int64, vendors []string) *Generator {
	if len(vendors) == 0 {
		vendors = DefaultVendors
	}
	return &Generator{
		rnd:     rand.New(rand.NewSource(seed)), //nolint:gosec // тестовые данные
		vendors: vendors,
		now:     time.Now,
	}
}

// Next returns an order with one to three vendors and one or two items each.
func (g *Generator) Next() order_created.CreatedEvent {
	id, err := uuid.NewRandomFromReader(g.rnd)
	if err != nil {
		id = uuid.New()
	}

	vendorCount := 1 + g.rnd.Intn(min(3, len(g.vendors)))
	picked := g.rnd.Perm(len(g.vendors))[:vendorCount]

	var (
		items []order_created.CreatedEventItem
		total int64
	)
	for _, idx := range picked {
		for range 1 + g.rnd.Intn(2) {
			quantity := 1 + g.rnd.Intn(3)
			items = append(items, order_created.CreatedEventItem{
				ProductName: products[g.rnd.Intn(len(products))],
				Quantity:    quantity,
				VendorID:    g.vendors[idx],
			})
			total += int64(quantity) * int64(100+g.rnd.Intn(9900))
		}
	}

	return order_created.CreatedEvent{
		OrderID:          "ORD-" + id.String()[:8],
		ShippingAddress:  fmt.Sprintf("%s %d", streets[g.rnd.Intn(len(streets))], 1+g.rnd.Intn(200)),
		PaymentMethod:    payments[g.rnd.Intn(len(payments))],
		OrderDate:        g.now().UTC().Truncate(time.Second),
		TotalAmountCents: total,
		Items:            items,
	}
}
