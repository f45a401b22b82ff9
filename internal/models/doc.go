// Package models defines the core domain models for TallyUp.
//
// # Models
//
//   - Receipt: one parsed purchase with header fields and percent adjustments
//   - Order: one line item in the single-consumer "split by quantity" flow
//   - SplitOrder: one line item annotated with the consumers sharing it
//   - ReceiptWithSplitOrders: the aggregate used for folder-level reports
//
// # Design Principles
//
// 1. **Values, not references**: models are immutable value types; every
// transformation (quantity claims, consumer assignment) returns new slices
// instead of mutating shared state, so report rebuilds can read independent
// snapshots without locking.
//
// 2. **Session state stays out of storage**: Order.Claimed and
// SplitOrder.Consumers are split-session UI state. They are recomputed from
// zero each time a split screen is entered and are never persisted with the
// entity in the single-consumer flow.
//
// 3. **Percents are percents**: Tax, Discount and Tip are stored as values in
// [0,100], never as fractions. Zero means "absent, skip this adjustment".
package models
