package entities

import (
	"slices"
	"time"
)

// HistoryEntry records one successful transition. Entries are append-only.
// FromStatus and ToStatus are aggregate order statuses, ItemFromStatuses
// lists the distinct statuses the moved items left, in item order.
type HistoryEntry struct {
	ID               string
	OrderID          string
	VendorID         *string
	Actor            Actor
	ItemStatus       ItemStatus
	ItemFromStatuses []ItemStatus
	FromStatus       OrderStatus
	ToStatus         OrderStatus
	ItemsAffected    int
	CreatedAt        time.Time
}

type TransitionRequest struct {
	OrderID  string
	VendorID *string
	Status   ItemStatus
	Actor    Actor
}

// StatusChangedEvent is published after a transition commits.
type StatusChangedEvent struct {
	EventID          string
	OrderID          string
	VendorID         *string
	Actor            Actor
	ItemStatus       ItemStatus
	ItemFromStatuses []ItemStatus
	FromStatus       OrderStatus
	ToStatus         OrderStatus
	OccurredAt       time.Time
}

// ItemFromStatuses returns the distinct From statuses of transitions in
// first-seen order.
func ItemFromStatuses(transitions []ItemTransition) []ItemStatus {
	statuses := make([]ItemStatus, 0, len(transitions))
	for _, tr := range transitions {
		if !slices.Contains(statuses, tr.From) {
			statuses = append(statuses, tr.From)
		}
	}
	return statuses
}
