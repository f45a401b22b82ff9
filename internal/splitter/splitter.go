// Package splitter adjusts claimed quantities in the single-consumer
// "split by quantity" flow.
//
// The functions are pure: they return a new slice and never mutate their
// input, so a report rebuild racing a tap always sees a coherent snapshot.
package splitter

import "github.com/tallyup/tallyup/internal/models"

// Increment raises the claimed quantity of the order matching id by one,
// capped at the purchased quantity. An unmatched id is a no-op, not an
// error: the UI may hold a stale id after a concurrent delete.
func Increment(orders []models.Order, id string) []models.Order {
	return adjust(orders, id, +1)
}

// Decrement lowers the claimed quantity of the order matching id by one,
// floored at zero. An unmatched id is a no-op.
func Decrement(orders []models.Order, id string) []models.Order {
	return adjust(orders, id, -1)
}

// Reset returns the orders with every claimed quantity zeroed, for when a
// split session starts over.
func Reset(orders []models.Order) []models.Order {
	out := make([]models.Order, len(orders))
	for i, order := range orders {
		order.Claimed = 0
		out[i] = order
	}
	return out
}

func adjust(orders []models.Order, id string, delta int) []models.Order {
	out := make([]models.Order, len(orders))
	for i, order := range orders {
		if order.ID == id {
			claimed := order.Claimed + delta
			if claimed >= 0 && claimed <= order.Quantity {
				order.Claimed = claimed
			}
		}
		out[i] = order
	}
	return out
}
