package domain

import "testing"

func TestOrderStatusClassification(t *testing.T) {
	tests := []struct {
		status      OrderStatus
		deliverable bool
		terminal    bool
	}{
		{StatusPending, false, false},
		{StatusPaid, true, false},
		{StatusShipped, true, false},
		{StatusDelivering, true, false},
		{StatusDelivered, false, true},
		{StatusCompleted, false, true},
		{StatusCancelled, false, false},
	}

	for _, tt := range tests {
		if got := tt.status.IsDeliverable(); got != tt.deliverable {
			t.Errorf("%s.IsDeliverable() = %v, want %v", tt.status, got, tt.deliverable)
		}
		if got := tt.status.IsTerminal(); got != tt.terminal {
			t.Errorf("%s.IsTerminal() = %v, want %v", tt.status, got, tt.terminal)
		}
	}
}

func TestParseOrderStatus(t *testing.T) {
	got, ok := ParseOrderStatus("  delivered ")
	if !ok || got != StatusDelivered {
		t.Fatalf("ParseOrderStatus = %q, %v; want DELIVERED, true", got, ok)
	}

	// Unknown values are accepted; the state machine is soft.
	got, ok = ParseOrderStatus("on_hold")
	if !ok || got != OrderStatus("ON_HOLD") {
		t.Fatalf("ParseOrderStatus = %q, %v; want ON_HOLD, true", got, ok)
	}

	if _, ok := ParseOrderStatus("   "); ok {
		t.Fatal("expected blank status to be rejected")
	}
}

func TestNewDeliveryStopRequiresBothCoordinates(t *testing.T) {
	lat, lon := 55.95, -3.19

	full := &Order{OrderID: 1, Address: Address{Latitude: &lat, Longitude: &lon}}
	if _, ok := NewDeliveryStop(full); !ok {
		t.Error("expected geocoded order to project onto a stop")
	}

	noLon := &Order{OrderID: 2, Address: Address{Latitude: &lat}}
	if _, ok := NewDeliveryStop(noLon); ok {
		t.Error("expected order without longitude to be skipped")
	}

	noLat := &Order{OrderID: 3, Address: Address{Longitude: &lon}}
	if _, ok := NewDeliveryStop(noLat); ok {
		t.Error("expected order without latitude to be skipped")
	}
}

func TestCoordinateValidate(t *testing.T) {
	if err := (Coordinate{Latitude: 90, Longitude: -180}).Validate(); err != nil {
		t.Errorf("boundary coordinate rejected: %v", err)
	}
	if err := (Coordinate{Latitude: 90.1, Longitude: 0}).Validate(); err == nil {
		t.Error("expected latitude out of range")
	}
	if err := (Coordinate{Latitude: 0, Longitude: 180.5}).Validate(); err == nil {
		t.Error("expected longitude out of range")
	}
}
