package order

import (
	"strings"

	"orderflow/internal/entities"
)

func isValidOrderID(orderID string) bool {
	return strings.TrimSpace(orderID) != ""
}

func isValidVendorID(vendorID string) bool {
	return strings.TrimSpace(vendorID) != ""
}

func isKnownRole(role entities.Role) bool {
	switch role {
	case entities.RoleAdmin, entities.RoleCSR, entities.RoleVendor:
		return true
	default:
		return false
	}
}

func isKnownItemStatus(status entities.ItemStatus) bool {
	parsed, ok := entities.ParseItemStatus(string(status))
	return ok && parsed == status
}

func isKnownCategory(status entities.OrderStatus) bool {
	for _, category := range entities.OrderCategories {
		if category == status {
			return true
		}
	}
	return false
}

func validateOrderCreate(orderCreate entities.OrderCreate) string {
	if !isValidOrderID(orderCreate.ID) {
		return "order id is required"
	}
	if len(orderCreate.Items) == 0 {
		return "order must contain at least one item"
	}
	if orderCreate.TotalAmount < 0 {
		return "total amount must not be negative"
	}
	if orderCreate.OrderDate.IsZero() {
		return "order date is required"
	}
	for _, item := range orderCreate.Items {
		if strings.TrimSpace(item.ProductName) == "" {
			return "item product name is required"
		}
		if !isValidVendorID(item.VendorID) {
			return "item vendor id is required"
		}
		if item.Quantity <= 0 {
			return "item quantity must be positive"
		}
	}
	return ""
}
