package reservations

import "grillbox/models"

// Subtotal sums the snapshotted line prices, preferring the promotional
// price when one was captured. Stored subtotals must always equal this
// recomputation.
func Subtotal(items []models.ReservationItem) float64 {
	var total float64
	for _, item := range items {
		price := item.PriceSnapshot
		if item.PromoPriceSnapshot != nil {
			price = *item.PromoPriceSnapshot
		}
		total += price * float64(item.Qty)
	}
	return total
}
