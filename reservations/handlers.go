package reservations

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"grillbox/models"
	"grillbox/utils"

	"github.com/julienschmidt/httprouter"
)

// Handler maps the HTTP surface onto an injected Store. The Notifier is
// fire-and-forget: its failures never affect a response.
type Handler struct {
	Store  Store
	Notify Notifier
}

func NewHandler(store Store, notify Notifier) *Handler {
	return &Handler{Store: store, Notify: notify}
}

func respondStoreError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		utils.RespondWithError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, ErrInvalidInput),
		errors.Is(err, ErrSlotNotFound),
		errors.Is(err, ErrSlotFull),
		errors.Is(err, ErrInvalidTransition):
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
	default:
		utils.RespondWithError(w, http.StatusInternalServerError, "unexpected error")
	}
}

// GET /api/slots?date=YYYY-MM-DD
func (h *Handler) GetSlots(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	date := r.URL.Query().Get("date")
	if date == "" {
		date = time.Now().UTC().Format(dateLayout)
	}

	slots, err := h.Store.SlotsForDate(r.Context(), date)
	if err != nil {
		respondStoreError(w, err)
		return
	}
	if slots == nil {
		slots = []models.Slot{}
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"date": date, "slots": slots})
}

func validateCreatePayload(req models.CreateReservationRequest) string {
	if strings.TrimSpace(req.Customer.Name) == "" {
		return "customer name is required"
	}
	if strings.TrimSpace(req.Customer.Phone) == "" {
		return "customer phone is required"
	}
	if req.PickupSlot == "" {
		return "pickup slot is required"
	}
	if len(req.Items) == 0 {
		return "add at least one item"
	}
	return ""
}

// POST /api/reservations
func (h *Handler) CreateReservation(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req models.CreateReservationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}
	if msg := validateCreatePayload(req); msg != "" {
		utils.RespondWithError(w, http.StatusBadRequest, msg)
		return
	}

	record, err := h.Store.Create(r.Context(), req)
	if err != nil {
		respondStoreError(w, err)
		return
	}

	go h.Notify.ReservationCreated(record)
	broadcastSlotUpdate(dateKeyFromSlotID(record.PickupSlot))

	utils.RespondWithJSON(w, http.StatusCreated, record)
}

// GET /api/reservations/:id
func (h *Handler) GetReservation(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	record, err := h.Store.Get(r.Context(), ps.ByName("id"))
	if err != nil {
		respondStoreError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, record)
}

// GET /api/admin/reservations
func (h *Handler) ListReservations(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	records, err := h.Store.List(r.Context())
	if err != nil {
		respondStoreError(w, err)
		return
	}
	if records == nil {
		records = []models.Reservation{}
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"reservations": records})
}

// POST /api/admin/reservations/:id/status
func (h *Handler) UpdateReservationStatus(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var body struct {
		Status models.ReservationStatus `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}
	if body.Status == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "status is required")
		return
	}

	record, changed, err := h.Store.AdvanceStatus(r.Context(), ps.ByName("id"), body.Status)
	if err != nil {
		respondStoreError(w, err)
		return
	}

	if changed {
		go h.Notify.StatusChanged(record, body.Status)
	}

	utils.RespondWithJSON(w, http.StatusOK, record)
}

// GET /api/admin/slots
func (h *Handler) GetSlotConfig(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	cfg, err := h.Store.Config(r.Context())
	if err != nil {
		respondStoreError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, cfg)
}

// POST /api/admin/slots
func (h *Handler) UpdateSlotConfig(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var patch models.SlotConfigPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}

	cfg, err := h.Store.UpdateConfig(r.Context(), patch)
	if err != nil {
		respondStoreError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, cfg)
}
