package reservations

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"grillbox/models"

	"github.com/google/uuid"
)

// MemStore keeps reservations and the slot schedule in process memory.
// One mutex serializes every check-then-insert, so two racing creates
// against the last seat of a slot cannot both succeed.
type MemStore struct {
	mu           sync.Mutex
	cfg          models.SlotConfig
	reservations map[string]models.Reservation

	// now is swappable for tests.
	now func() time.Time
}

var _ Store = (*MemStore)(nil)

func NewMemStore() *MemStore {
	return &MemStore{
		cfg:          DefaultSlotConfig(),
		reservations: make(map[string]models.Reservation),
		now:          time.Now,
	}
}

func (s *MemStore) snapshotLocked() []models.Reservation {
	out := make([]models.Reservation, 0, len(s.reservations))
	for _, r := range s.reservations {
		out = append(out, r)
	}
	return out
}

func (s *MemStore) SlotsForDate(_ context.Context, date string) ([]models.Slot, error) {
	s.mu.Lock()
	cfg := s.cfg
	existing := s.snapshotLocked()
	s.mu.Unlock()

	return GenerateSlots(cfg, date, existing)
}

func (s *MemStore) Create(_ context.Context, req models.CreateReservationRequest) (models.Reservation, error) {
	if len(req.Items) == 0 {
		return models.Reservation{}, fmt.Errorf("%w: at least one item is required", ErrInvalidInput)
	}
	for _, item := range req.Items {
		if item.Qty < 1 {
			return models.Reservation{}, fmt.Errorf("%w: item quantity must be at least 1", ErrInvalidInput)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	slots, err := GenerateSlots(s.cfg, dateKeyFromSlotID(req.PickupSlot), s.snapshotLocked())
	if err != nil {
		return models.Reservation{}, err
	}

	var slot *models.Slot
	for i := range slots {
		if slots[i].ID == req.PickupSlot {
			slot = &slots[i]
			break
		}
	}
	if slot == nil {
		return models.Reservation{}, ErrSlotNotFound
	}
	if slot.Remaining <= 0 {
		return models.Reservation{}, ErrSlotFull
	}

	payment := req.Payment
	if payment == "" {
		payment = models.PaymentCash
	}

	record := models.Reservation{
		ID:         uuid.New().String(),
		Status:     models.StatusNew,
		CreatedAt:  s.now().UTC().Format(time.RFC3339),
		Customer:   req.Customer,
		PickupSlot: req.PickupSlot,
		Notes:      req.Notes,
		Items:      req.Items,
		Subtotal:   Subtotal(req.Items),
		Payment:    payment,
	}
	s.reservations[record.ID] = record
	return record, nil
}

func (s *MemStore) Get(_ context.Context, id string) (models.Reservation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.reservations[id]
	if !ok {
		return models.Reservation{}, ErrNotFound
	}
	return r, nil
}

// List returns all reservations, newest first.
func (s *MemStore) List(_ context.Context) ([]models.Reservation, error) {
	s.mu.Lock()
	out := s.snapshotLocked()
	s.mu.Unlock()

	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt > out[j].CreatedAt
	})
	return out, nil
}

func (s *MemStore) AdvanceStatus(_ context.Context, id string, status models.ReservationStatus) (models.Reservation, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.reservations[id]
	if !ok {
		return models.Reservation{}, false, ErrNotFound
	}
	if r.Status == status {
		return r, false, nil
	}
	if !CanAdvance(r.Status, status) {
		return models.Reservation{}, false, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, r.Status, status)
	}

	r.Status = status
	s.reservations[id] = r
	return r, true, nil
}

func (s *MemStore) Config(_ context.Context) (models.SlotConfig, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cfg, nil
}

func (s *MemStore) UpdateConfig(_ context.Context, patch models.SlotConfigPatch) (models.SlotConfig, error) {
	if err := ValidatePatch(patch); err != nil {
		return models.SlotConfig{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.cfg = MergePatch(s.cfg, patch)
	return s.cfg, nil
}
