package models

// SplitOrder represents a line item annotated with the consumers sharing
// it, used in the multi-consumer flow.
type SplitOrder struct {
	// Name is the product line description.
	Name string `json:"name"`

	// TranslatedName is an optional translation of Name.
	TranslatedName string `json:"translated_name,omitempty"`

	// Price is the line total for this item, not a unit price.
	Price float64 `json:"price"`

	// Consumers is the list of people sharing the item. With n names the
	// item is divided evenly: each sharer owes Price/n, rounded to cents.
	// Consumer assignment is split-session state, attached and removed
	// dynamically while a split screen is open.
	Consumers []string `json:"consumers"`
}

// ReceiptWithOrders is the persisted aggregate: one receipt and its line
// items as stored, before any split-session state is attached.
type ReceiptWithOrders struct {
	Receipt Receipt `json:"receipt"`
	Orders  []Order `json:"orders"`
}

// ReceiptWithSplitOrders is the aggregate of one receipt and its
// consumer-annotated line items: the unit of work for folder-level,
// multi-consumer aggregation.
type ReceiptWithSplitOrders struct {
	Receipt Receipt      `json:"receipt"`
	Orders  []SplitOrder `json:"orders"`
}

// Consumers returns every consumer name appearing in any order's share
// list, deduplicated, in first-appearance order. Reports iterate this
// order so output is deterministic.
func (r ReceiptWithSplitOrders) Consumers() []string {
	return ConsumersOf(r.Orders)
}

// ConsumersOf extracts the deduplicated, first-appearance-ordered consumer
// names across a set of split orders.
func ConsumersOf(orders []SplitOrder) []string {
	seen := make(map[string]bool)
	var names []string
	for _, order := range orders {
		for _, name := range order.Consumers {
			if !seen[name] {
				seen[name] = true
				names = append(names, name)
			}
		}
	}
	return names
}
