package storage

import (
	"context"
	"fmt"
	"sync"
	"time"

	"grillbox/db"
	"grillbox/models"
	"grillbox/reservations"
	"grillbox/utils"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const configDocID = "slotconfig"

// MongoStore persists reservations and the slot schedule in MongoDB.
// The in-process mutex gives the same per-slot atomicity as the in-memory
// store; the service owns its collections, so serializing check-then-insert
// here is enough.
type MongoStore struct {
	mu sync.Mutex
}

var _ reservations.Store = (*MongoStore)(nil)

func NewMongoStore() *MongoStore {
	return &MongoStore{}
}

func (s *MongoStore) loadConfig(ctx context.Context) (models.SlotConfig, error) {
	var doc struct {
		Config models.SlotConfig `bson:"config"`
	}
	err := db.SlotConfigCollection.FindOne(ctx, bson.M{"_id": configDocID}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return reservations.DefaultSlotConfig(), nil
	}
	if err != nil {
		return models.SlotConfig{}, fmt.Errorf("load slot config: %w", err)
	}
	return doc.Config, nil
}

func (s *MongoStore) reservationsForDate(ctx context.Context, date string) ([]models.Reservation, error) {
	// Slot IDs start with the calendar date, so a prefix range scan finds
	// every reservation occupying that day.
	filter := bson.M{"pickupSlot": bson.M{"$gte": date, "$lt": date + "~"}}
	return utils.FindAndDecode[models.Reservation](ctx, db.ReservationsCollection, filter)
}

func (s *MongoStore) SlotsForDate(ctx context.Context, date string) ([]models.Slot, error) {
	cfg, err := s.loadConfig(ctx)
	if err != nil {
		return nil, err
	}
	existing, err := s.reservationsForDate(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("load reservations: %w", err)
	}
	return reservations.GenerateSlots(cfg, date, existing)
}

func (s *MongoStore) Create(ctx context.Context, req models.CreateReservationRequest) (models.Reservation, error) {
	if len(req.Items) == 0 {
		return models.Reservation{}, fmt.Errorf("%w: at least one item is required", reservations.ErrInvalidInput)
	}
	for _, item := range req.Items {
		if item.Qty < 1 {
			return models.Reservation{}, fmt.Errorf("%w: item quantity must be at least 1", reservations.ErrInvalidInput)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	date := req.PickupSlot
	if len(date) >= 10 {
		date = date[:10]
	}
	slots, err := s.SlotsForDate(ctx, date)
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
		return models.Reservation{}, reservations.ErrSlotNotFound
	}
	if slot.Remaining <= 0 {
		return models.Reservation{}, reservations.ErrSlotFull
	}

	payment := req.Payment
	if payment == "" {
		payment = models.PaymentCash
	}

	record := models.Reservation{
		ID:         uuid.New().String(),
		Status:     models.StatusNew,
		CreatedAt:  time.Now().UTC().Format(time.RFC3339),
		Customer:   req.Customer,
		PickupSlot: req.PickupSlot,
		Notes:      req.Notes,
		Items:      req.Items,
		Subtotal:   reservations.Subtotal(req.Items),
		Payment:    payment,
	}

	if _, err := db.ReservationsCollection.InsertOne(ctx, record); err != nil {
		return models.Reservation{}, fmt.Errorf("insert reservation: %w", err)
	}
	return record, nil
}

func (s *MongoStore) Get(ctx context.Context, id string) (models.Reservation, error) {
	var record models.Reservation
	err := db.ReservationsCollection.FindOne(ctx, bson.M{"id": id}).Decode(&record)
	if err == mongo.ErrNoDocuments {
		return models.Reservation{}, reservations.ErrNotFound
	}
	if err != nil {
		return models.Reservation{}, fmt.Errorf("load reservation: %w", err)
	}
	return record, nil
}

func (s *MongoStore) List(ctx context.Context) ([]models.Reservation, error) {
	opts := options.Find().SetSort(bson.M{"createdAt": -1})
	return utils.FindAndDecode[models.Reservation](ctx, db.ReservationsCollection, bson.M{}, opts)
}

func (s *MongoStore) AdvanceStatus(ctx context.Context, id string, status models.ReservationStatus) (models.Reservation, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.Get(ctx, id)
	if err != nil {
		return models.Reservation{}, false, err
	}
	if current.Status == status {
		return current, false, nil
	}
	if !reservations.CanAdvance(current.Status, status) {
		return models.Reservation{}, false, fmt.Errorf("%w: %s -> %s", reservations.ErrInvalidTransition, current.Status, status)
	}

	res := db.ReservationsCollection.FindOneAndUpdate(ctx,
		bson.M{"id": id, "status": current.Status},
		bson.M{"$set": bson.M{"status": status}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)
	var updated models.Reservation
	if err := res.Decode(&updated); err != nil {
		return models.Reservation{}, false, fmt.Errorf("update status: %w", err)
	}
	return updated, true, nil
}

func (s *MongoStore) Config(ctx context.Context) (models.SlotConfig, error) {
	return s.loadConfig(ctx)
}

func (s *MongoStore) UpdateConfig(ctx context.Context, patch models.SlotConfigPatch) (models.SlotConfig, error) {
	if err := reservations.ValidatePatch(patch); err != nil {
		return models.SlotConfig{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cfg, err := s.loadConfig(ctx)
	if err != nil {
		return models.SlotConfig{}, err
	}
	cfg = reservations.MergePatch(cfg, patch)

	_, err = db.SlotConfigCollection.UpdateOne(ctx,
		bson.M{"_id": configDocID},
		bson.M{"$set": bson.M{"config": cfg}},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return models.SlotConfig{}, fmt.Errorf("save slot config: %w", err)
	}
	return cfg, nil
}
