package enum

import "testing"

func TestOrderStatusTransitions(t *testing.T) {
	cases := []struct {
		from    OrderStatus
		to      OrderStatus
		allowed bool
	}{
		{OrderStatusPending, OrderStatusInProgress, true},
		{OrderStatusPending, OrderStatusCancelled, true},
		{OrderStatusPending, OrderStatusCompleted, false},
		{OrderStatusPending, OrderStatusDelivered, false},
		{OrderStatusInProgress, OrderStatusCompleted, true},
		{OrderStatusInProgress, OrderStatusCancelled, true},
		{OrderStatusInProgress, OrderStatusPending, false},
		{OrderStatusInProgress, OrderStatusDelivered, false},
		{OrderStatusCompleted, OrderStatusDelivered, true},
		{OrderStatusCompleted, OrderStatusCancelled, false},
		{OrderStatusCompleted, OrderStatusInProgress, false},
		{OrderStatusDelivered, OrderStatusPending, false},
		{OrderStatusDelivered, OrderStatusCancelled, false},
		{OrderStatusCancelled, OrderStatusPending, false},
		{OrderStatusCancelled, OrderStatusInProgress, false},
	}

	for _, tc := range cases {
		if got := tc.from.CanTransitionTo(tc.to); got != tc.allowed {
			t.Errorf("%s -> %s: got %v, want %v", tc.from, tc.to, got, tc.allowed)
		}
	}
}

func TestOrderStatusTerminal(t *testing.T) {
	terminal := map[OrderStatus]bool{
		OrderStatusPending:    false,
		OrderStatusInProgress: false,
		OrderStatusCompleted:  false,
		OrderStatusDelivered:  true,
		OrderStatusCancelled:  true,
	}
	for status, want := range terminal {
		if got := status.IsTerminal(); got != want {
			t.Errorf("%s.IsTerminal() = %v, want %v", status, got, want)
		}
	}
}

func TestParseOrderStatus(t *testing.T) {
	for i, name := range orderStatusNames {
		status, err := ParseOrderStatus(name)
		if err != nil {
			t.Fatalf("ParseOrderStatus(%q): %v", name, err)
		}
		if status != OrderStatus(i) {
			t.Errorf("ParseOrderStatus(%q) = %d, want %d", name, status, i)
		}
	}

	if _, err := ParseOrderStatus("shipped"); err == nil {
		t.Error("expected error for unknown status name")
	}
}

func TestOrderStatusJSON(t *testing.T) {
	data, err := OrderStatusInProgress.MarshalJSON()
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != `"in-progress"` {
		t.Errorf("MarshalJSON = %s, want %q", data, "in-progress")
	}

	var s OrderStatus
	if err := s.UnmarshalJSON([]byte(`"completed"`)); err != nil {
		t.Fatal(err)
	}
	if s != OrderStatusCompleted {
		t.Errorf("UnmarshalJSON = %v, want completed", s)
	}

	if err := s.UnmarshalJSON([]byte(`4`)); err != nil {
		t.Fatal(err)
	}
	if s != OrderStatusCancelled {
		t.Errorf("UnmarshalJSON(4) = %v, want cancelled", s)
	}
}
