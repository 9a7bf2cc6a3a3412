package order

import (
	"orderflow/internal/entities"
	"orderflow/internal/pkg/status_machine"
)

func ToDomain(o *OrderDB, items []OrderItemDB) *entities.Order {
	if o == nil {
		return nil
	}

	domainItems := make([]entities.OrderItem, 0, len(items))
	for _, item := range items {
		domainItems = append(domainItems, ToItemDomain(item))
	}

	return &entities.Order{
		ID:              o.ID,
		ShippingAddress: o.ShippingAddress,
		PaymentMethod:   o.PaymentMethod,
		OrderDate:       o.OrderDate.UTC(),
		TotalAmount:     entities.Money(o.TotalAmountCents),
		Items:           domainItems,
		Status:          status_machine.Derive(domainItems),
	}
}

func ToItemDomain(item OrderItemDB) entities.OrderItem {
	return entities.OrderItem{
		ID:           item.ID,
		ProductName:  item.ProductName,
		Quantity:     item.Quantity,
		VendorID:     item.VendorID,
		VendorStatus: entities.ItemStatus(item.VendorStatus),
	}
}

// groupRows folds joined rows into orders. Rows must be sorted by order.
func groupRows(rows []orderRowDB) []entities.Order {
	orders := make([]entities.Order, 0)
	for start := 0; start < len(rows); {
		end := start
		for end < len(rows) && rows[end].Order.ID == rows[start].Order.ID {
			end++
		}

		items := make([]OrderItemDB, 0, end-start)
		for _, row := range rows[start:end] {
			items = append(items, row.Item)
		}
		orders = append(orders, *ToDomain(&rows[start].Order, items))

		start = end
	}
	return orders
}

func FromDomainCreate(c entities.OrderCreate) (OrderDB, []OrderItemDB) {
	order := OrderDB{
		ID:               c.ID,
		ShippingAddress:  c.ShippingAddress,
		PaymentMethod:    c.PaymentMethod,
		OrderDate:        c.OrderDate.UTC(),
		TotalAmountCents: int64(c.TotalAmount),
	}

	items := make([]OrderItemDB, 0, len(c.Items))
	for i, item := range c.Items {
		items = append(items, OrderItemDB{
			OrderID:      c.ID,
			Position:     i,
			ProductName:  item.ProductName,
			Quantity:     item.Quantity,
			VendorID:     item.VendorID,
			VendorStatus: entities.ItemProcessing.String(),
		})
	}
	return order, items
}
