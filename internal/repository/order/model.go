package order

import "time"

type OrderDB struct {
	ID               string
	ShippingAddress  string
	PaymentMethod    string
	OrderDate        time.Time
	TotalAmountCents int64
}

type OrderItemDB struct {
	ID           int64
	OrderID      string
	Position     int
	ProductName  string
	Quantity     int
	VendorID     string
	VendorStatus string
}

// orderRowDB is one row of the orders x order_items join.
type orderRowDB struct {
	Order OrderDB
	Item  OrderItemDB
}
