package order_events

import (
	"time"

	"orderflow/internal/entities"
)

type statusChangedMessage struct {
	EventID          string    `json:"event_id"`
	OrderID          string    `json:"order_id"`
	VendorID         *string   `json:"vendor_id"`
	ActorRole        string    `json:"actor_role"`
	ActorID          string    `json:"actor_id"`
	ItemStatus       string    `json:"item_status"`
	ItemFromStatuses []string  `json:"item_from_statuses"`
	FromStatus       string    `json:"from_status"`
	ToStatus         string    `json:"to_status"`
	OccurredAt       time.Time `json:"occurred_at"`
}

func fromDomain(event entities.StatusChangedEvent) statusChangedMessage {
	itemFrom := make([]string, 0, len(event.ItemFromStatuses))
	for _, s := range event.ItemFromStatuses {
		itemFrom = append(itemFrom, s.String())
	}

	return statusChangedMessage{
		EventID:          event.EventID,
		OrderID:          event.OrderID,
		VendorID:         event.VendorID,
		ActorRole:        event.Actor.Role.String(),
		ActorID:          event.Actor.ID,
		ItemStatus:       event.ItemStatus.String(),
		ItemFromStatuses: itemFrom,
		FromStatus:       event.FromStatus.String(),
		ToStatus:         event.ToStatus.String(),
		OccurredAt:       event.OccurredAt.UTC(),
	}
}
