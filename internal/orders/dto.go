package orders

import (
	"time"

	"github.com/angelmondragon/orderdesk/pkg/commerce"
)

// OrderList is the denormalized, caller-ready view of the last orders fetch.
type OrderList struct {
	Orders       []commerce.Order             `json:"orders"`
	StatusCounts map[commerce.OrderStatus]int `json:"status_counts"`
	FetchedAt    time.Time                    `json:"fetched_at"`
}

func buildOrderList(orders []commerce.Order, fetchedAt time.Time) *OrderList {
	list := &OrderList{
		Orders:       orders,
		StatusCounts: countByStatus(orders),
		FetchedAt:    fetchedAt,
	}
	return list
}

func countByStatus(orders []commerce.Order) map[commerce.OrderStatus]int {
	counts := make(map[commerce.OrderStatus]int, len(commerce.OrderStatuses()))
	for _, order := range orders {
		counts[order.Status]++
	}
	return counts
}

func (l *OrderList) clone() *OrderList {
	if l == nil {
		return nil
	}
	out := &OrderList{
		Orders:       make([]commerce.Order, len(l.Orders)),
		StatusCounts: make(map[commerce.OrderStatus]int, len(l.StatusCounts)),
		FetchedAt:    l.FetchedAt,
	}
	copy(out.Orders, l.Orders)
	for status, count := range l.StatusCounts {
		out.StatusCounts[status] = count
	}
	return out
}
