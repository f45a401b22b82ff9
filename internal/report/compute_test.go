package report

import (
	"testing"

	"github.com/tallyup/tallyup/internal/models"
)

func TestAdjustmentOrderIsSequential(t *testing.T) {
	receipt := models.Receipt{Discount: 10, Tip: 20, Tax: 5}

	// 100 → 90 (−10%) → 108 (+20% of 90) → 113.4 (+5% of 108).
	// Not 100 × (1 − .10 + .20 + .05) = 115.
	steps := adjustments(receipt, 100)
	if len(steps) != 3 {
		t.Fatalf("got %d steps, want 3", len(steps))
	}
	wantRunning := []float64{90, 108, 113.4}
	wantAmount := []float64{10, 18, 5.4}
	for i, step := range steps {
		if step.running != wantRunning[i] {
			t.Errorf("step %d running = %v, want %v", i, step.running, wantRunning[i])
		}
		if step.amount != wantAmount[i] {
			t.Errorf("step %d amount = %v, want %v", i, step.amount, wantAmount[i])
		}
	}
	if got := adjustedTotal(receipt, 100); got != 113.4 {
		t.Errorf("adjustedTotal = %v, want 113.4", got)
	}
}

func TestAdjustedTotal(t *testing.T) {
	tests := []struct {
		name     string
		receipt  models.Receipt
		subtotal float64
		want     float64
	}{
		{"no adjustments", models.Receipt{}, 42.5, 42.5},
		{"discount only", models.Receipt{Discount: 10}, 10, 9},
		{"tip only", models.Receipt{Tip: 15}, 20, 23},
		{"tax only", models.Receipt{Tax: 8}, 50, 54},
		{"zero subtotal skips the chain", models.Receipt{Discount: 10, Tax: 5}, 0, 0},
		{
			"extras added after percents",
			models.Receipt{Tax: 10, Extras: []models.ExtraCharge{{Label: "Delivery", Amount: 3.50}}},
			20,
			25.50,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := adjustedTotal(tt.receipt, tt.subtotal); got != tt.want {
				t.Errorf("adjustedTotal(%v) = %v, want %v", tt.subtotal, got, tt.want)
			}
		})
	}
}

func TestShare(t *testing.T) {
	tests := []struct {
		name  string
		order models.SplitOrder
		want  float64
	}{
		{"sole consumer gets full price", models.SplitOrder{Price: 12.34, Consumers: []string{"Alice"}}, 12.34},
		{"three-way split", models.SplitOrder{Price: 30, Consumers: []string{"A", "B", "C"}}, 10},
		// round2(9.99/2) = round2(4.995) = 5.00; rounding the price first
		// would leave the raw 4.995.
		{"division before rounding", models.SplitOrder{Price: 9.99, Consumers: []string{"A", "B"}}, 5.00},
		{"uneven thirds", models.SplitOrder{Price: 0.10, Consumers: []string{"A", "B", "C"}}, 0.03},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := share(tt.order); got != tt.want {
				t.Errorf("share = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestConsumerSubtotal(t *testing.T) {
	orders := []models.SplitOrder{
		{Name: "Pizza", Price: 20, Consumers: []string{"Alice", "Bob"}},
		{Name: "Salad", Price: 8, Consumers: []string{"Alice"}},
		{Name: "Beer", Price: 6, Consumers: []string{"Bob"}},
	}
	if got := consumerSubtotal(orders, "Alice"); got != 18 {
		t.Errorf("Alice subtotal = %v, want 18", got)
	}
	if got := consumerSubtotal(orders, "Bob"); got != 16 {
		t.Errorf("Bob subtotal = %v, want 16", got)
	}
	if got := consumerSubtotal(orders, "Carol"); got != 0 {
		t.Errorf("Carol subtotal = %v, want 0", got)
	}
}
