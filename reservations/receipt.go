package reservations

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"net/http"

	"grillbox/globals"
	"grillbox/models"

	"github.com/julienschmidt/httprouter"
	"github.com/phpdave11/gofpdf"
	"github.com/skip2/go-qrcode"
)

// receiptQRPayload returns "reservationID|pickupSlot|signature" so the
// counter can verify a printed receipt against the stored reservation.
func receiptQRPayload(res models.Reservation) string {
	data := fmt.Sprintf("%s|%s", res.ID, res.PickupSlot)
	h := hmac.New(sha256.New, globals.JwtSecret)
	h.Write([]byte(data))
	sig := base64.StdEncoding.EncodeToString(h.Sum(nil))
	return fmt.Sprintf("%s|%s", data, sig)
}

// GET /api/reservations/:id/receipt
func (h *Handler) PrintReceipt(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	record, err := h.Store.Get(r.Context(), ps.ByName("id"))
	if err != nil {
		respondStoreError(w, err)
		return
	}

	qrPNG, err := qrcode.Encode(receiptQRPayload(record), qrcode.Medium, 256)
	if err != nil {
		http.Error(w, "Failed to generate QR code", http.StatusInternalServerError)
		return
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(40, 10, "Pickup Receipt")
	pdf.Ln(12)

	pdf.SetFont("Arial", "", 12)
	pdf.Cell(0, 10, fmt.Sprintf("Reservation: %s", record.ID))
	pdf.Ln(8)
	pdf.Cell(0, 10, fmt.Sprintf("Name: %s", record.Customer.Name))
	pdf.Ln(8)
	pdf.Cell(0, 10, fmt.Sprintf("Pickup: %s", record.PickupSlot))
	pdf.Ln(8)
	pdf.Cell(0, 10, fmt.Sprintf("Status: %s", record.Status))
	pdf.Ln(12)

	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(0, 8, "Items")
	pdf.Ln(8)
	pdf.SetFont("Arial", "", 11)
	for _, item := range record.Items {
		price := item.PriceSnapshot
		if item.PromoPriceSnapshot != nil {
			price = *item.PromoPriceSnapshot
		}
		pdf.Cell(0, 7, fmt.Sprintf("%dx %s - %.2f", item.Qty, item.NameSnapshot, price*float64(item.Qty)))
		pdf.Ln(7)
	}
	pdf.Ln(4)
	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Subtotal (cash on pickup): %.2f", record.Subtotal))

	imageOpts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("qr", imageOpts, bytes.NewReader(qrPNG))
	pdf.ImageOptions("qr", 150, 30, 40, 40, false, imageOpts, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		http.Error(w, "Failed to generate PDF", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=receipt-"+record.ID+".pdf")
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}
