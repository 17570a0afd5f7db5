package reservations

import (
	"testing"

	"grillbox/models"
)

func TestCanAdvance(t *testing.T) {
	cases := []struct {
		current, target models.ReservationStatus
		want            bool
	}{
		{models.StatusNew, models.StatusPreparing, true},
		{models.StatusPreparing, models.StatusReady, true},
		{models.StatusReady, models.StatusDelivered, true},
		{models.StatusNew, models.StatusReady, false},     // no skipping
		{models.StatusNew, models.StatusDelivered, false}, // no skipping
		{models.StatusPreparing, models.StatusNew, false}, // no going back
		{models.StatusDelivered, models.StatusNew, false}, // terminal
		{models.StatusDelivered, models.StatusPreparing, false},
		{models.StatusNew, "BOGUS", false},
	}

	for _, c := range cases {
		if got := CanAdvance(c.current, c.target); got != c.want {
			t.Errorf("CanAdvance(%s, %s) = %v, want %v", c.current, c.target, got, c.want)
		}
	}
}
