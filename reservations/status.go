package reservations

import "grillbox/models"

// allowedTransitions fixes the linear pickup lifecycle. No skipping, no
// going back; DELIVERED is terminal.
var allowedTransitions = map[models.ReservationStatus][]models.ReservationStatus{
	models.StatusNew:       {models.StatusPreparing},
	models.StatusPreparing: {models.StatusReady},
	models.StatusReady:     {models.StatusDelivered},
	models.StatusDelivered: {},
}

// CanAdvance reports whether current → target is a legal single step.
// Re-applying the current status is handled by the caller as an idempotent
// no-op, not here.
func CanAdvance(current, target models.ReservationStatus) bool {
	for _, next := range allowedTransitions[current] {
		if next == target {
			return true
		}
	}
	return false
}
