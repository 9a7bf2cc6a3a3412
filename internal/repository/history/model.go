package history

import "time"

type EntryDB struct {
	ID               string
	OrderID          string
	VendorID         *string
	ActorRole        string
	ActorID          string
	ItemStatus       string
	ItemFromStatuses []string
	FromStatus       string
	ToStatus         string
	ItemsAffected    int
	CreatedAt        time.Time
}
