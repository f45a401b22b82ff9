package report

import (
	"errors"
	"strings"
	"testing"

	"github.com/tallyup/tallyup/internal/models"
)

func TestForAllConsumersSharedItem(t *testing.T) {
	receipt := models.Receipt{Name: "Cafe"}
	orders := []models.SplitOrder{
		{Name: "Pizza", Price: 20.00, Consumers: []string{"Alice", "Bob"}},
	}

	got, err := ForAllConsumers(receipt, orders)
	if err != nil {
		t.Fatalf("ForAllConsumers() error = %v", err)
	}

	want := strings.Join([]string{
		"Cafe",
		Divider,
		Bullet + "Alice",
		"1. Pizza = 1/2 x 20.00 = 10.00",
		"Total = 10.00",
		Divider,
		Bullet + "Bob",
		"1. Pizza = 1/2 x 20.00 = 10.00",
		"Total = 10.00",
	}, "\n")
	if got != want {
		t.Errorf("report mismatch\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestForAllConsumersSoleItemOmitsFraction(t *testing.T) {
	receipt := models.Receipt{Name: "Cafe"}
	orders := []models.SplitOrder{
		{Name: "Salad", Price: 8.00, Consumers: []string{"Alice"}},
	}

	got, err := ForAllConsumers(receipt, orders)
	if err != nil {
		t.Fatalf("ForAllConsumers() error = %v", err)
	}
	if !strings.Contains(got, "1. Salad = 8.00") {
		t.Errorf("sole-consumer item should render without the fraction:\n%s", got)
	}
	if strings.Contains(got, "1/1") {
		t.Errorf("sole-consumer item carries a 1/1 annotation:\n%s", got)
	}
}

func TestForAllConsumersAdjustmentsPerConsumer(t *testing.T) {
	receipt := models.Receipt{Name: "Cafe", Discount: 10}
	orders := []models.SplitOrder{
		{Name: "Pizza", Price: 20.00, Consumers: []string{"Alice", "Bob"}},
		{Name: "Wine", Price: 10.00, Consumers: []string{"Alice"}},
	}

	got, err := ForAllConsumers(receipt, orders)
	if err != nil {
		t.Fatalf("ForAllConsumers() error = %v", err)
	}

	// Alice: 10 + 10 = 20, minus 10% = 18. Bob: 10, minus 10% = 9.
	if !strings.Contains(got, "Subtotal = 20.00\nDiscount 10% = -2.00\nTotal = 18.00") {
		t.Errorf("Alice block wrong:\n%s", got)
	}
	if !strings.Contains(got, "Subtotal = 10.00\nDiscount 10% = -1.00\nTotal = 9.00") {
		t.Errorf("Bob block wrong:\n%s", got)
	}
}

func TestForAllConsumersFirstAppearanceOrder(t *testing.T) {
	receipt := models.Receipt{}
	orders := []models.SplitOrder{
		{Name: "A", Price: 1, Consumers: []string{"Zoe", "Adam"}},
		{Name: "B", Price: 1, Consumers: []string{"Adam", "Mona"}},
	}

	got, err := ForAllConsumers(receipt, orders)
	if err != nil {
		t.Fatalf("ForAllConsumers() error = %v", err)
	}
	zoe := strings.Index(got, Bullet+"Zoe")
	adam := strings.Index(got, Bullet+"Adam")
	mona := strings.Index(got, Bullet+"Mona")
	if zoe == -1 || adam == -1 || mona == -1 || !(zoe < adam && adam < mona) {
		t.Errorf("consumers out of first-appearance order:\n%s", got)
	}
}

func TestForAllConsumersEmptyNameFails(t *testing.T) {
	receipt := models.Receipt{Name: "Cafe"}
	orders := []models.SplitOrder{
		{Name: "Pizza", Price: 20.00, Consumers: []string{"Alice", ""}},
	}

	got, err := ForAllConsumers(receipt, orders)
	if err == nil {
		t.Fatalf("expected error, got report:\n%s", got)
	}
	if got != "" {
		t.Errorf("partial report returned on failure: %q", got)
	}
	var rerr *Error
	if !errors.As(err, &rerr) || rerr.Code != ErrCodeBadInput {
		t.Errorf("error = %v, want code %s", err, ErrCodeBadInput)
	}
}
