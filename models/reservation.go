package models

// ReservationStatus is the linear pickup lifecycle of an order.
type ReservationStatus string

const (
	StatusNew       ReservationStatus = "NEW"
	StatusPreparing ReservationStatus = "PREPARING"
	StatusReady     ReservationStatus = "READY"
	StatusDelivered ReservationStatus = "DELIVERED"
)

// PaymentMethod is extensible; only cash on pickup is live today.
type PaymentMethod string

const PaymentCash PaymentMethod = "CASH"

// SlotConfig is the single admin-owned pickup schedule.
type SlotConfig struct {
	StartHour  string `json:"startHour" bson:"startHour"` // "HH:MM"
	EndHour    string `json:"endHour" bson:"endHour"`     // "HH:MM"
	SlotSize   int    `json:"slotSize" bson:"slotSize"`   // minutes
	Capacity   int    `json:"capacity" bson:"capacity"`   // max reservations per slot
	DaysOfWeek []int  `json:"daysOfWeek" bson:"daysOfWeek"`
}

// SlotConfigPatch carries a partial admin update; nil fields are untouched.
type SlotConfigPatch struct {
	StartHour  *string `json:"startHour,omitempty"`
	EndHour    *string `json:"endHour,omitempty"`
	SlotSize   *int    `json:"slotSize,omitempty"`
	Capacity   *int    `json:"capacity,omitempty"`
	DaysOfWeek []int   `json:"daysOfWeek,omitempty"`
}

// Slot is a bookable pickup window, derived on demand and never stored.
// ID is the canonical RFC3339 form of the slot start.
type Slot struct {
	ID        string `json:"id"`
	Start     string `json:"start"`
	End       string `json:"end"`
	Capacity  int    `json:"capacity"`
	Remaining int    `json:"remaining"`
}

// ReservationItem is an immutable price/name snapshot of a menu item,
// captured at booking time. Later menu edits never touch it.
type ReservationItem struct {
	ItemID             string   `json:"id" bson:"itemId"`
	NameSnapshot       string   `json:"nameSnapshot" bson:"nameSnapshot"`
	PriceSnapshot      float64  `json:"priceSnapshot" bson:"priceSnapshot"`
	PromoPriceSnapshot *float64 `json:"promoPriceSnapshot,omitempty" bson:"promoPriceSnapshot,omitempty"`
	Qty                int      `json:"qty" bson:"qty"`
}

type Customer struct {
	Name  string `json:"name" bson:"name"`
	Phone string `json:"phone" bson:"phone"`
	Email string `json:"email,omitempty" bson:"email,omitempty"`
}

type Reservation struct {
	ID         string            `json:"id" bson:"id"`
	Status     ReservationStatus `json:"status" bson:"status"`
	CreatedAt  string            `json:"createdAt" bson:"createdAt"` // RFC3339
	Customer   Customer          `json:"customer" bson:"customer"`
	PickupSlot string            `json:"pickupSlot" bson:"pickupSlot"` // slot ID
	Notes      string            `json:"notes,omitempty" bson:"notes,omitempty"`
	Items      []ReservationItem `json:"items" bson:"items"`
	Subtotal   float64           `json:"subtotal" bson:"subtotal"`
	Payment    PaymentMethod     `json:"payment" bson:"payment"`
}

// CreateReservationRequest is the booking payload from the storefront.
type CreateReservationRequest struct {
	Customer   Customer          `json:"customer"`
	PickupSlot string            `json:"pickupSlot"`
	Notes      string            `json:"notes,omitempty"`
	Items      []ReservationItem `json:"items"`
	Payment    PaymentMethod     `json:"payment"`
}
