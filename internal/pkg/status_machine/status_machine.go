package status_machine

import (
	"errors"

	"orderflow/internal/entities"
)

var (
	ErrNoVendorItems     = errors.New("vendor has no items in order")
	ErrTerminalOrder     = errors.New("order is in a terminal status")
	ErrIllegalTransition = errors.New("illegal item status transition")
	ErrUnknownItemStatus = errors.New("unknown item status")
	ErrEmptyItems        = errors.New("order has no items")
)

var successors = map[entities.ItemStatus][]entities.ItemStatus{
	entities.ItemProcessing:  {entities.ItemVendorReady, entities.ItemCanceled},
	entities.ItemVendorReady: {entities.ItemDelivered, entities.ItemCanceled},
	entities.ItemDelivered:   nil,
	entities.ItemCanceled:    nil,
}

// IsLegal reports whether an item may move from one status to another.
func IsLegal(from, to entities.ItemStatus) bool {
	for _, next := range successors[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Successors returns the statuses reachable from status in one step.
func Successors(status entities.ItemStatus) []entities.ItemStatus {
	next := successors[status]
	out := make([]entities.ItemStatus, len(next))
	copy(out, next)
	return out
}

func IsTerminal(status entities.ItemStatus) bool {
	return status == entities.ItemDelivered || status == entities.ItemCanceled
}

// Derive computes the aggregate order status. First matching rule wins.
func Derive(items []entities.OrderItem) entities.OrderStatus {
	if len(items) == 0 {
		return entities.OrderProcessing
	}

	var delivered, canceled, vendorReady, open int
	for _, item := range items {
		switch item.VendorStatus {
		case entities.ItemDelivered:
			delivered++
		case entities.ItemCanceled:
			canceled++
		case entities.ItemVendorReady:
			vendorReady++
			open++
		default:
			open++
		}
	}

	switch {
	case canceled == len(items):
		return entities.OrderCanceled
	case delivered > 0 && open == 0:
		return entities.OrderDelivered
	case delivered > 0:
		return entities.OrderPartiallyDelivered
	case vendorReady > 0:
		return entities.OrderVendorReady
	default:
		return entities.OrderProcessing
	}
}

// Plan decides which items move to status to. A nil vendorID targets the whole
// order. An empty result with a nil error is an idempotent no-op.
func Plan(items []entities.OrderItem, vendorID *string, to entities.ItemStatus) ([]entities.ItemTransition, error) {
	if _, ok := successors[to]; !ok {
		return nil, ErrUnknownItemStatus
	}
	if len(items) == 0 {
		return nil, ErrEmptyItems
	}

	targets := items
	if vendorID != nil {
		targets = make([]entities.OrderItem, 0, len(items))
		for _, item := range items {
			if item.VendorID == *vendorID {
				targets = append(targets, item)
			}
		}
		if len(targets) == 0 {
			return nil, ErrNoVendorItems
		}
	}

	aggregate := Derive(items)
	if aggregate.IsTerminal() {
		if vendorID != nil {
			for _, item := range targets {
				if item.VendorStatus != to {
					return nil, ErrTerminalOrder
				}
			}
			return nil, nil
		}
		if string(aggregate) == string(to) {
			return nil, nil
		}
		return nil, ErrTerminalOrder
	}

	transitions := make([]entities.ItemTransition, 0, len(targets))
	blocked := 0
	for _, item := range targets {
		if item.VendorStatus == to {
			continue
		}
		// завершенные позиции не трогаем, если есть что двигать кроме них
		if IsTerminal(item.VendorStatus) {
			blocked++
			continue
		}
		if !IsLegal(item.VendorStatus, to) {
			return nil, ErrIllegalTransition
		}
		transitions = append(transitions, entities.ItemTransition{
			ItemID:   item.ID,
			VendorID: item.VendorID,
			From:     item.VendorStatus,
			To:       to,
		})
	}

	if len(transitions) == 0 {
		if blocked > 0 {
			return nil, ErrIllegalTransition
		}
		return nil, nil
	}
	return transitions, nil
}

// Apply returns a copy of items with the transitions applied.
func Apply(items []entities.OrderItem, transitions []entities.ItemTransition) []entities.OrderItem {
	next := make(map[int64]entities.ItemStatus, len(transitions))
	for _, tr := range transitions {
		next[tr.ItemID] = tr.To
	}

	out := make([]entities.OrderItem, len(items))
	for i, item := range items {
		if status, ok := next[item.ID]; ok {
			item.VendorStatus = status
		}
		out[i] = item
	}
	return out
}
