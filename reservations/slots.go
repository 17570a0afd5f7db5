package reservations

import (
	"fmt"
	"time"

	"grillbox/models"
)

const dateLayout = "2006-01-02"

// dateKeyFromSlotID extracts the calendar date from a slot ID (the RFC3339
// start instant).
func dateKeyFromSlotID(slotID string) string {
	if len(slotID) < len(dateLayout) {
		return slotID
	}
	return slotID[:len(dateLayout)]
}

// buildDateAtTime combines a calendar date with an "HH:MM" time of day.
// All slot math runs in UTC so that slot IDs are stable across restarts
// and host timezone changes.
func buildDateAtTime(date time.Time, hhmm string) (time.Time, error) {
	t, err := time.Parse("15:04", hhmm)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: bad time of day %q", ErrInvalidInput, hhmm)
	}
	return time.Date(date.Year(), date.Month(), date.Day(), t.Hour(), t.Minute(), 0, 0, time.UTC), nil
}

// GenerateSlots computes the bookable pickup windows for one calendar date.
// It is a pure function of its inputs: slots are derived, never persisted,
// so schedule changes apply to every future query without migration.
//
// A date outside cfg.DaysOfWeek yields an empty list, not an error: the
// restaurant is simply closed. Remaining capacity counts existing
// reservations whose PickupSlot equals the slot ID exactly.
func GenerateSlots(cfg models.SlotConfig, date string, existing []models.Reservation) ([]models.Slot, error) {
	day, err := time.Parse(dateLayout, date)
	if err != nil {
		return nil, fmt.Errorf("%w: bad date %q", ErrInvalidInput, date)
	}

	enabled := false
	for _, dow := range cfg.DaysOfWeek {
		if dow == int(day.Weekday()) {
			enabled = true
			break
		}
	}
	if !enabled {
		return []models.Slot{}, nil
	}

	start, err := buildDateAtTime(day, cfg.StartHour)
	if err != nil {
		return nil, err
	}
	end, err := buildDateAtTime(day, cfg.EndHour)
	if err != nil {
		return nil, err
	}
	if !start.Before(end) {
		return []models.Slot{}, nil
	}

	reserved := make(map[string]int, len(existing))
	for _, r := range existing {
		reserved[r.PickupSlot]++
	}

	var slots []models.Slot
	size := time.Duration(cfg.SlotSize) * time.Minute
	for cursor := start; cursor.Before(end); cursor = cursor.Add(size) {
		id := cursor.Format(time.RFC3339)
		remaining := cfg.Capacity - reserved[id]
		if remaining < 0 {
			remaining = 0
		}
		slots = append(slots, models.Slot{
			ID:        id,
			Start:     id,
			End:       cursor.Add(size).Format(time.RFC3339),
			Capacity:  cfg.Capacity,
			Remaining: remaining,
		})
	}

	return slots, nil
}
