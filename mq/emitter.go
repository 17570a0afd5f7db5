package mq

import (
	"context"
	"encoding/json"
	"log"

	"grillbox/models"
	"grillbox/rdx"
)

const eventsChannel = "reservation-events"

// Emit publishes a reservation event to Redis. Best-effort: failures are
// logged and never propagated to the caller.
func Emit(ctx context.Context, ev models.Event) {
	data, err := json.Marshal(ev)
	if err != nil {
		log.Printf("[Emit] Failed to marshal event: %v", err)
		return
	}

	if err := rdx.Conn.Publish(ctx, eventsChannel, data).Err(); err != nil {
		log.Printf("[Emit] Failed to publish event to Redis: %v", err)
		return
	}
}

// Dispatcher publishes reservation lifecycle events. It satisfies
// reservations.Notifier.
type Dispatcher struct{}

func (Dispatcher) ReservationCreated(res models.Reservation) {
	Emit(context.Background(), models.Event{
		Name:          "reservation-created",
		ReservationID: res.ID,
		PickupSlot:    res.PickupSlot,
		Status:        string(res.Status),
		Subtotal:      res.Subtotal,
		Email:         res.Customer.Email,
		Phone:         res.Customer.Phone,
	})
}

func (Dispatcher) StatusChanged(res models.Reservation, status models.ReservationStatus) {
	Emit(context.Background(), models.Event{
		Name:          "reservation-status-updated",
		ReservationID: res.ID,
		PickupSlot:    res.PickupSlot,
		Status:        string(status),
		Email:         res.Customer.Email,
		Phone:         res.Customer.Phone,
	})
}

// StartNotificationWorker drains the event channel and delivers customer
// notifications. Delivery is a log line per channel until a real email /
// whatsapp provider is plugged in.
func StartNotificationWorker() {
	ctx := context.Background()
	sub := rdx.Conn.Subscribe(ctx, eventsChannel)
	ch := sub.Channel()

	log.Println("[NotificationWorker] Listening for reservation events...")

	for msg := range ch {
		var ev models.Event
		if err := json.Unmarshal([]byte(msg.Payload), &ev); err != nil {
			log.Printf("[NotificationWorker] Failed to parse event: %v", err)
			continue
		}
		deliver(ev)
	}
}

func deliver(ev models.Event) {
	if ev.Email != "" {
		log.Printf("[notify/email] to=%s template=%s reservation=%s slot=%s",
			ev.Email, ev.Name, ev.ReservationID, ev.PickupSlot)
	}
	if ev.Phone != "" {
		log.Printf("[notify/whatsapp] to=%s template=%s reservation=%s slot=%s status=%s",
			ev.Phone, ev.Name, ev.ReservationID, ev.PickupSlot, ev.Status)
	}
}
