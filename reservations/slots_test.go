package reservations

import (
	"errors"
	"testing"

	"grillbox/models"
)

func allDays() []int { return []int{0, 1, 2, 3, 4, 5, 6} }

func TestGenerateSlotsTwoWindows(t *testing.T) {
	cfg := models.SlotConfig{
		StartHour:  "11:30",
		EndHour:    "13:30",
		SlotSize:   60,
		Capacity:   1,
		DaysOfWeek: allDays(),
	}

	slots, err := GenerateSlots(cfg, "2026-03-02", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(slots) != 2 {
		t.Fatalf("expected 2 slots, got %d", len(slots))
	}
	if slots[0].ID != "2026-03-02T11:30:00Z" || slots[0].End != "2026-03-02T12:30:00Z" {
		t.Errorf("first slot wrong: %+v", slots[0])
	}
	if slots[1].ID != "2026-03-02T12:30:00Z" || slots[1].End != "2026-03-02T13:30:00Z" {
		t.Errorf("second slot wrong: %+v", slots[1])
	}
}

func TestGenerateSlotsClosedDay(t *testing.T) {
	cfg := models.SlotConfig{
		StartHour:  "11:30",
		EndHour:    "13:30",
		SlotSize:   30,
		Capacity:   4,
		DaysOfWeek: []int{2, 3}, // 2026-03-02 is a Monday (1)
	}

	slots, err := GenerateSlots(cfg, "2026-03-02", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(slots) != 0 {
		t.Fatalf("expected no slots on a closed day, got %d", len(slots))
	}
}

func TestGenerateSlotsInvalidDate(t *testing.T) {
	cfg := models.SlotConfig{StartHour: "11:00", EndHour: "12:00", SlotSize: 30, Capacity: 1, DaysOfWeek: allDays()}

	if _, err := GenerateSlots(cfg, "not-a-date", nil); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestGenerateSlotsStartAfterEnd(t *testing.T) {
	cfg := models.SlotConfig{StartHour: "18:00", EndHour: "12:00", SlotSize: 30, Capacity: 1, DaysOfWeek: allDays()}

	slots, err := GenerateSlots(cfg, "2026-03-02", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(slots) != 0 {
		t.Fatalf("expected no slots, got %d", len(slots))
	}
}

// An uneven division leaves the last window overhanging the closing hour.
func TestGenerateSlotsOverhang(t *testing.T) {
	cfg := models.SlotConfig{StartHour: "11:00", EndHour: "12:00", SlotSize: 45, Capacity: 1, DaysOfWeek: allDays()}

	slots, err := GenerateSlots(cfg, "2026-03-02", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(slots) != 2 {
		t.Fatalf("expected 2 slots, got %d", len(slots))
	}
	if slots[1].End != "2026-03-02T12:30:00Z" {
		t.Errorf("expected last slot to overhang to 12:30, got %s", slots[1].End)
	}
}

func TestGenerateSlotsContiguous(t *testing.T) {
	cfg := models.SlotConfig{StartHour: "11:30", EndHour: "22:00", SlotSize: 30, Capacity: 6, DaysOfWeek: allDays()}

	slots, err := GenerateSlots(cfg, "2026-03-07", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(slots) != 21 { // ceil(630/30)
		t.Fatalf("expected 21 slots, got %d", len(slots))
	}
	if slots[0].ID != "2026-03-07T11:30:00Z" {
		t.Errorf("first slot must start at the opening hour, got %s", slots[0].ID)
	}
	for i := 1; i < len(slots); i++ {
		if slots[i].Start != slots[i-1].End {
			t.Errorf("slots %d and %d are not contiguous: %s vs %s", i-1, i, slots[i-1].End, slots[i].Start)
		}
	}
}

func TestGenerateSlotsRemaining(t *testing.T) {
	cfg := models.SlotConfig{StartHour: "11:00", EndHour: "12:00", SlotSize: 30, Capacity: 2, DaysOfWeek: allDays()}

	booked := "2026-03-02T11:00:00Z"
	existing := []models.Reservation{
		{ID: "a", PickupSlot: booked},
		{ID: "b", PickupSlot: booked},
		{ID: "c", PickupSlot: booked}, // overbooked after a capacity cut
	}

	slots, err := GenerateSlots(cfg, "2026-03-02", existing)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if slots[0].Remaining != 0 {
		t.Errorf("remaining must clamp at 0, got %d", slots[0].Remaining)
	}
	if slots[1].Remaining != 2 {
		t.Errorf("untouched slot must keep full capacity, got %d", slots[1].Remaining)
	}
}
