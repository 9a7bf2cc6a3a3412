package entities

import (
	"strconv"
	"strings"
	"time"
)

// ItemStatus is the fulfillment state of a single vendor line item.
type ItemStatus string

const (
	ItemProcessing  ItemStatus = "Processing"
	ItemVendorReady ItemStatus = "VendorReady"
	ItemDelivered   ItemStatus = "Delivered"
	ItemCanceled    ItemStatus = "Canceled"
)

func (s ItemStatus) String() string {
	return string(s)
}

// ParseItemStatus accepts any letter case, the console sends "canceled" and "delivered".
func ParseItemStatus(s string) (ItemStatus, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "processing":
		return ItemProcessing, true
	case "vendorready":
		return ItemVendorReady, true
	case "delivered":
		return ItemDelivered, true
	case "canceled":
		return ItemCanceled, true
	default:
		return "", false
	}
}

// OrderStatus is the aggregate status of an order. It is always derived from
// the statuses of the order items and never stored on its own.
type OrderStatus string

const (
	OrderProcessing         OrderStatus = "Processing"
	OrderVendorReady        OrderStatus = "VendorReady"
	OrderPartiallyDelivered OrderStatus = "PartiallyDelivered"
	OrderDelivered          OrderStatus = "Delivered"
	OrderCanceled           OrderStatus = "Canceled"
)

// OrderCategories lists the admin dashboard categories in display order.
var OrderCategories = []OrderStatus{
	OrderProcessing,
	OrderVendorReady,
	OrderPartiallyDelivered,
	OrderDelivered,
	OrderCanceled,
}

func (s OrderStatus) String() string {
	return string(s)
}

func (s OrderStatus) IsTerminal() bool {
	return s == OrderDelivered || s == OrderCanceled
}

func ParseOrderStatus(s string) (OrderStatus, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "processing":
		return OrderProcessing, true
	case "vendorready":
		return OrderVendorReady, true
	case "partiallydelivered":
		return OrderPartiallyDelivered, true
	case "delivered":
		return OrderDelivered, true
	case "canceled":
		return OrderCanceled, true
	default:
		return "", false
	}
}

// Money is an amount in minor currency units.
type Money int64

// String renders the amount as shortest decimal text: 12050 -> "120.5", 10000 -> "100".
func (m Money) String() string {
	return strconv.FormatFloat(m.Float(), 'f', -1, 64)
}

// Fixed renders the amount with exactly two decimals: 12050 -> "120.50".
func (m Money) Fixed() string {
	return strconv.FormatFloat(m.Float(), 'f', 2, 64)
}

func (m Money) Float() float64 {
	return float64(m) / 100
}

type OrderItem struct {
	ID           int64
	ProductName  string
	Quantity     int
	VendorID     string
	VendorStatus ItemStatus
}

type Order struct {
	ID              string
	ShippingAddress string
	PaymentMethod   string
	OrderDate       time.Time
	TotalAmount     Money
	Items           []OrderItem
	Status          OrderStatus
}

// HasVendor reports whether at least one item belongs to the vendor.
func (o *Order) HasVendor(vendorID string) bool {
	for _, item := range o.Items {
		if item.VendorID == vendorID {
			return true
		}
	}
	return false
}

// VendorItems returns the items owned by the vendor, preserving order.
func (o *Order) VendorItems(vendorID string) []OrderItem {
	items := make([]OrderItem, 0, len(o.Items))
	for _, item := range o.Items {
		if item.VendorID == vendorID {
			items = append(items, item)
		}
	}
	return items
}

// OrderCreate is the checkout payload an order is created from.
type OrderCreate struct {
	ID              string
	ShippingAddress string
	PaymentMethod   string
	OrderDate       time.Time
	TotalAmount     Money
	Items           []OrderItemCreate
}

type OrderItemCreate struct {
	ProductName string
	Quantity    int
	VendorID    string
}

// ItemStatusChange carries transitions planned against Order, which the
// caller has locked in the current transaction.
type ItemStatusChange struct {
	Order       *Order
	Transitions []ItemTransition
}

// ItemTransition is a single applied item status change.
type ItemTransition struct {
	ItemID   int64
	VendorID string
	From     ItemStatus
	To       ItemStatus
}

type CategoryCount struct {
	Status OrderStatus
	Count  int64
}
