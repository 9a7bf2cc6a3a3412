package order_created

import (
	"time"

	"orderflow/internal/entities"
)

// CreatedEvent is the order.created payload published by checkout.
type CreatedEvent struct {
	OrderID          string             `json:"order_id"`
	ShippingAddress  string             `json:"shipping_address"`
	PaymentMethod    string             `json:"payment_method"`
	OrderDate        time.Time          `json:"order_date"`
	TotalAmountCents int64              `json:"total_amount_cents"`
	Items            []CreatedEventItem `json:"items"`
}

type CreatedEventItem struct {
	ProductName string `json:"product_name"`
	Quantity    int    `json:"quantity"`
	VendorID    string `json:"vendor_id"`
}

func (e CreatedEvent) toDomain() entities.OrderCreate {
	items := make([]entities.OrderItemCreate, 0, len(e.Items))
	for _, item := range e.Items {
		items = append(items, entities.OrderItemCreate{
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			VendorID:    item.VendorID,
		})
	}

	return entities.OrderCreate{
		ID:              e.OrderID,
		ShippingAddress: e.ShippingAddress,
		PaymentMethod:   e.PaymentMethod,
		OrderDate:       e.OrderDate,
		TotalAmount:     entities.Money(e.TotalAmountCents),
		Items:           items,
	}
}
