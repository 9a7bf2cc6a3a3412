package history

import "orderflow/internal/entities"

func ToDomain(e *EntryDB) *entities.HistoryEntry {
	if e == nil {
		return nil
	}
	return &entities.HistoryEntry{
		ID:       e.ID,
		OrderID:  e.OrderID,
		VendorID: e.VendorID,
		Actor: entities.Actor{
			Role: entities.Role(e.ActorRole),
			ID:   e.ActorID,
		},
		ItemStatus:       entities.ItemStatus(e.ItemStatus),
		ItemFromStatuses: itemStatusesToDomain(e.ItemFromStatuses),
		FromStatus:       entities.OrderStatus(e.FromStatus),
		ToStatus:         entities.OrderStatus(e.ToStatus),
		ItemsAffected:    e.ItemsAffected,
		CreatedAt:        e.CreatedAt.UTC(),
	}
}

func FromDomain(e entities.HistoryEntry) EntryDB {
	return EntryDB{
		ID:               e.ID,
		OrderID:          e.OrderID,
		VendorID:         e.VendorID,
		ActorRole:        e.Actor.Role.String(),
		ActorID:          e.Actor.ID,
		ItemStatus:       e.ItemStatus.String(),
		ItemFromStatuses: itemStatusesFromDomain(e.ItemFromStatuses),
		FromStatus:       e.FromStatus.String(),
		ToStatus:         e.ToStatus.String(),
		ItemsAffected:    e.ItemsAffected,
		CreatedAt:        e.CreatedAt,
	}
}

func itemStatusesToDomain(statuses []string) []entities.ItemStatus {
	result := make([]entities.ItemStatus, 0, len(statuses))
	for _, s := range statuses {
		result = append(result, entities.ItemStatus(s))
	}
	return result
}

// itemStatusesFromDomain never returns nil, the column is NOT NULL.
func itemStatusesFromDomain(statuses []entities.ItemStatus) []string {
	result := make([]string, 0, len(statuses))
	for _, s := range statuses {
		result = append(result, s.String())
	}
	return result
}
