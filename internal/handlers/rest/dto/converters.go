package dto

import "orderflow/internal/entities"

func FromOrder(order *entities.Order) Order {
	items := make([]OrderItem, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, OrderItem{
			ProductName:  item.ProductName,
			Quantity:     item.Quantity,
			VendorID:     item.VendorID,
			VendorStatus: item.VendorStatus.String(),
		})
	}

	return Order{
		ID:              order.ID,
		ShippingAddress: order.ShippingAddress,
		PaymentMethod:   order.PaymentMethod,
		OrderDate:       order.OrderDate.UTC(),
		TotalAmount:     order.TotalAmount.Float(),
		Status:          order.Status.String(),
		Items:           items,
	}
}

// FromOrders never returns nil so an empty result encodes as [].
func FromOrders(orders []entities.Order) []Order {
	res := make([]Order, 0, len(orders))
	for i := range orders {
		res = append(res, FromOrder(&orders[i]))
	}
	return res
}

func FromHistory(entries []entities.HistoryEntry) []HistoryEntry {
	res := make([]HistoryEntry, 0, len(entries))
	for _, e := range entries {
		res = append(res, HistoryEntry{
			ID:               e.ID,
			OrderID:          e.OrderID,
			VendorID:         e.VendorID,
			ActorRole:        e.Actor.Role.String(),
			ActorID:          e.Actor.ID,
			ItemStatus:       e.ItemStatus.String(),
			ItemFromStatuses: fromItemStatuses(e.ItemFromStatuses),
			FromStatus:       e.FromStatus.String(),
			ToStatus:         e.ToStatus.String(),
			ItemsAffected:    e.ItemsAffected,
			CreatedAt:        e.CreatedAt.UTC(),
		})
	}
	return res
}

func fromItemStatuses(statuses []entities.ItemStatus) []string {
	res := make([]string, 0, len(statuses))
	for _, s := range statuses {
		res = append(res, s.String())
	}
	return res
}

func FromCategoryCounts(counts []entities.CategoryCount) []CategoryCount {
	res := make([]CategoryCount, 0, len(counts))
	for _, c := range counts {
		res = append(res, CategoryCount{
			Status: c.Status.String(),
			Count:  c.Count,
		})
	}
	return res
}
