package models

import "time"

// User is the staff account behind the admin gate.
type User struct {
	UserID    string    `json:"userid" bson:"userid"`
	Username  string    `json:"username" bson:"username"`
	Password  string    `json:"-" bson:"password"` // bcrypt hash
	Role      []string  `json:"role" bson:"role"`
	LastLogin time.Time `json:"lastLogin,omitempty" bson:"last_login,omitempty"`
}

// Event is the fire-and-forget message published on the notification channel.
type Event struct {
	Name          string  `json:"name"`
	ReservationID string  `json:"reservationId"`
	PickupSlot    string  `json:"pickupSlot"`
	Status        string  `json:"status,omitempty"`
	Subtotal      float64 `json:"subtotal,omitempty"`
	Email         string  `json:"email,omitempty"`
	Phone         string  `json:"phone,omitempty"`
}
