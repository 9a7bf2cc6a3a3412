package order_filter

import (
	"strings"

	"orderflow/internal/entities"
)

const dateLayout = "2006-01-02"

// Filter keeps orders where any searchable field contains query, ignoring case.
// Whitespace in query is part of the match. An empty query returns orders as is.
func Filter(orders []entities.Order, query string) []entities.Order {
	if query == "" {
		return orders
	}
	needle := strings.ToLower(query)

	out := make([]entities.Order, 0, len(orders))
	for _, order := range orders {
		if Match(order, needle) {
			out = append(out, order)
		}
	}
	return out
}

// Match expects needle already lower-cased.
func Match(order entities.Order, needle string) bool {
	for _, field := range searchFields(order) {
		if strings.Contains(strings.ToLower(field), needle) {
			return true
		}
	}
	return false
}

func searchFields(order entities.Order) []string {
	fields := make([]string, 0, 6+len(order.Items))
	fields = append(fields,
		order.ID,
		order.ShippingAddress,
		order.PaymentMethod,
		order.TotalAmount.String(),
		order.TotalAmount.Fixed(),
		order.OrderDate.UTC().Format(dateLayout),
	)
	for _, item := range order.Items {
		fields = append(fields, item.VendorID)
	}
	return fields
}
