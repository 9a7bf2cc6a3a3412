package access_policy

import "orderflow/internal/entities"

type Transition struct {
	From entities.ItemStatus
	To   entities.ItemStatus
}

var (
	vendorRules = map[Transition]struct{}{
		{From: entities.ItemProcessing, To: entities.ItemVendorReady}: {},
	}
	staffRules = map[Transition]struct{}{
		{From: entities.ItemProcessing, To: entities.ItemCanceled}:   {},
		{From: entities.ItemVendorReady, To: entities.ItemCanceled}:  {},
		{From: entities.ItemVendorReady, To: entities.ItemDelivered}: {},
	}
)

func rulesFor(role entities.Role) map[Transition]struct{} {
	switch role {
	case entities.RoleVendor:
		return vendorRules
	case entities.RoleAdmin, entities.RoleCSR:
		return staffRules
	default:
		return nil
	}
}

// IsAllowed reports whether the role may perform the item transition.
// Ownership of the item is checked by the caller.
func IsAllowed(role entities.Role, transition Transition) bool {
	_, ok := rulesFor(role)[transition]
	return ok
}

// CanRequest reports whether the role has any rule that ends in status to.
func CanRequest(role entities.Role, to entities.ItemStatus) bool {
	for rule := range rulesFor(role) {
		if rule.To == to {
			return true
		}
	}
	return false
}

// CanViewAll reports whether the role sees every order regardless of vendor.
func CanViewAll(role entities.Role) bool {
	return role == entities.RoleAdmin || role == entities.RoleCSR
}
