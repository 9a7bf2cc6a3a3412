package dto

import "time"

type OrderItem struct {
	ProductName  string `json:"productName"`
	Quantity     int    `json:"quantity"`
	VendorID     string `json:"vendorId"`
	VendorStatus string `json:"vendorStatus"`
}

type Order struct {
	ID              string      `json:"id"`
	ShippingAddress string      `json:"shippingAddress"`
	PaymentMethod   string      `json:"paymentMethod"`
	OrderDate       time.Time   `json:"orderDate"`
	TotalAmount     float64     `json:"totalAmount"`
	Status          string      `json:"status"`
	Items           []OrderItem `json:"items"`
}

type HistoryEntry struct {
	ID               string    `json:"id"`
	OrderID          string    `json:"orderId"`
	VendorID         *string   `json:"vendorId"`
	ActorRole        string    `json:"actorRole"`
	ActorID          string    `json:"actorId"`
	ItemStatus       string    `json:"itemStatus"`
	ItemFromStatuses []string  `json:"itemFromStatuses"`
	FromStatus       string    `json:"fromStatus"`
	ToStatus         string    `json:"toStatus"`
	ItemsAffected    int       `json:"itemsAffected"`
	CreatedAt        time.Time `json:"createdAt"`
}

type CategoryCount struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}

type PingResponse struct {
	Message *string `json:"message,omitempty"`
}

// Error is the body of every non-2xx response.
type Error struct {
	Kind     string `json:"kind"`
	Message  string `json:"message"`
	OrderID  string `json:"orderId,omitempty"`
	VendorID string `json:"vendorId,omitempty"`
}
