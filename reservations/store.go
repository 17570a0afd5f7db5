package reservations

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"grillbox/models"
)

// Client-input-class failures surfaced directly to the caller. None are
// retried by the core.
var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrSlotNotFound      = errors.New("selected slot is not available")
	ErrSlotFull          = errors.New("slot is fully booked")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrNotFound          = errors.New("reservation not found")
)

// Store owns the authoritative reservation set and the slot configuration.
// Implementations must make the capacity check and the insert in Create
// atomic with respect to concurrent creates against the same slot.
type Store interface {
	SlotsForDate(ctx context.Context, date string) ([]models.Slot, error)
	Create(ctx context.Context, req models.CreateReservationRequest) (models.Reservation, error)
	Get(ctx context.Context, id string) (models.Reservation, error)
	List(ctx context.Context) ([]models.Reservation, error)
	// AdvanceStatus returns the reservation and whether the status actually
	// changed; re-applying the current status is a no-op success.
	AdvanceStatus(ctx context.Context, id string, status models.ReservationStatus) (models.Reservation, bool, error)
	Config(ctx context.Context) (models.SlotConfig, error)
	UpdateConfig(ctx context.Context, patch models.SlotConfigPatch) (models.SlotConfig, error)
}

// Notifier receives reservation lifecycle events. Delivery is best-effort:
// a Notifier failure never rolls back the operation that triggered it.
type Notifier interface {
	ReservationCreated(res models.Reservation)
	StatusChanged(res models.Reservation, status models.ReservationStatus)
}

// DefaultSlotConfig mirrors the storefront's opening hours at first boot.
func DefaultSlotConfig() models.SlotConfig {
	return models.SlotConfig{
		StartHour:  "11:30",
		EndHour:    "22:00",
		SlotSize:   30,
		Capacity:   6,
		DaysOfWeek: []int{0, 1, 2, 3, 4, 5, 6},
	}
}

var hhmmRe = regexp.MustCompile(`^\d{2}:\d{2}$`)

// ValidatePatch rejects malformed admin config updates before they are
// merged into the live schedule.
func ValidatePatch(patch models.SlotConfigPatch) error {
	if patch.StartHour != nil && !hhmmRe.MatchString(*patch.StartHour) {
		return fmt.Errorf("%w: bad start hour %q", ErrInvalidInput, *patch.StartHour)
	}
	if patch.EndHour != nil && !hhmmRe.MatchString(*patch.EndHour) {
		return fmt.Errorf("%w: bad end hour %q", ErrInvalidInput, *patch.EndHour)
	}
	if patch.SlotSize != nil && *patch.SlotSize <= 0 {
		return fmt.Errorf("%w: slot size must be positive", ErrInvalidInput)
	}
	if patch.Capacity != nil && *patch.Capacity <= 0 {
		return fmt.Errorf("%w: capacity must be positive", ErrInvalidInput)
	}
	for _, day := range patch.DaysOfWeek {
		if day < 0 || day > 6 {
			return fmt.Errorf("%w: weekday %d out of range", ErrInvalidInput, day)
		}
	}
	return nil
}

// MergePatch applies the present fields of patch onto cfg, last-writer-wins.
// A nil DaysOfWeek leaves the current set untouched.
func MergePatch(cfg models.SlotConfig, patch models.SlotConfigPatch) models.SlotConfig {
	if patch.StartHour != nil {
		cfg.StartHour = *patch.StartHour
	}
	if patch.EndHour != nil {
		cfg.EndHour = *patch.EndHour
	}
	if patch.SlotSize != nil {
		cfg.SlotSize = *patch.SlotSize
	}
	if patch.Capacity != nil {
		cfg.Capacity = *patch.Capacity
	}
	if patch.DaysOfWeek != nil {
		cfg.DaysOfWeek = append([]int(nil), patch.DaysOfWeek...)
	}
	return cfg
}
