package reservations

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"grillbox/models"

	"github.com/julienschmidt/httprouter"
)

type stubNotifier struct {
	created chan models.Reservation
	status  chan models.ReservationStatus
}

func newStubNotifier() *stubNotifier {
	return &stubNotifier{
		created: make(chan models.Reservation, 8),
		status:  make(chan models.ReservationStatus, 8),
	}
}

func (n *stubNotifier) ReservationCreated(res models.Reservation) { n.created <- res }
func (n *stubNotifier) StatusChanged(_ models.Reservation, s models.ReservationStatus) {
	n.status <- s
}

func newTestServer(t *testing.T, cfg models.SlotConfig) (*httptest.Server, *MemStore, *stubNotifier) {
	t.Helper()

	store := newTestStore(t, cfg)
	notifier := newStubNotifier()
	h := NewHandler(store, notifier)

	router := httprouter.New()
	router.GET("/api/slots", h.GetSlots)
	router.POST("/api/reservations", h.CreateReservation)
	router.GET("/api/reservations/:id", h.GetReservation)
	router.GET("/api/admin/reservations", h.ListReservations)
	router.POST("/api/admin/reservations/:id/status", h.UpdateReservationStatus)
	router.GET("/api/admin/slots", h.GetSlotConfig)
	router.POST("/api/admin/slots", h.UpdateSlotConfig)

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv, store, notifier
}

func postJSON(t *testing.T, url string, payload any) *http.Response {
	t.Helper()
	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}
	resp, err := http.Post(url, "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	return resp
}

func TestGetSlotsEndpoint(t *testing.T) {
	srv, _, _ := newTestServer(t, lunchConfig(2))

	resp, err := http.Get(srv.URL + "/api/slots?date=2026-03-02")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var body struct {
		Date  string        `json:"date"`
		Slots []models.Slot `json:"slots"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Date != "2026-03-02" || len(body.Slots) != 2 {
		t.Fatalf("unexpected body: %+v", body)
	}
}

func TestGetSlotsEndpointBadDate(t *testing.T) {
	srv, _, _ := newTestServer(t, lunchConfig(2))

	resp, err := http.Get(srv.URL + "/api/slots?date=garbage")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 for a bad date, got %d", resp.StatusCode)
	}
}

func TestCreateReservationEndpoint(t *testing.T) {
	srv, _, notifier := newTestServer(t, lunchConfig(2))

	resp := postJSON(t, srv.URL+"/api/reservations", bookingRequest("2026-03-02T11:30:00Z"))
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}

	var record models.Reservation
	if err := json.NewDecoder(resp.Body).Decode(&record); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if record.Status != models.StatusNew || record.Subtotal != 17.0 {
		t.Fatalf("unexpected reservation: %+v", record)
	}

	select {
	case got := <-notifier.created:
		if got.ID != record.ID {
			t.Errorf("notified about the wrong reservation: %s", got.ID)
		}
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for created notification")
	}

	// reservation must be readable back
	getResp, err := http.Get(srv.URL + "/api/reservations/" + record.ID)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer getResp.Body.Close()
	if getResp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", getResp.StatusCode)
	}
}

func TestCreateReservationEndpointRejectsBadPayloads(t *testing.T) {
	srv, _, _ := newTestServer(t, lunchConfig(2))

	cases := []models.CreateReservationRequest{
		func() models.CreateReservationRequest {
			r := bookingRequest("2026-03-02T11:30:00Z")
			r.Customer.Name = "  "
			return r
		}(),
		func() models.CreateReservationRequest {
			r := bookingRequest("2026-03-02T11:30:00Z")
			r.Customer.Phone = ""
			return r
		}(),
		func() models.CreateReservationRequest {
			r := bookingRequest("2026-03-02T11:30:00Z")
			r.PickupSlot = ""
			return r
		}(),
		func() models.CreateReservationRequest {
			r := bookingRequest("2026-03-02T11:30:00Z")
			r.Items = nil
			return r
		}(),
	}

	for i, payload := range cases {
		resp := postJSON(t, srv.URL+"/api/reservations", payload)
		resp.Body.Close()
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("case %d: expected 400, got %d", i, resp.StatusCode)
		}
	}
}

func TestCreateReservationEndpointSlotFull(t *testing.T) {
	srv, _, _ := newTestServer(t, lunchConfig(1))

	resp := postJSON(t, srv.URL+"/api/reservations", bookingRequest("2026-03-02T11:30:00Z"))
	resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}

	resp = postJSON(t, srv.URL+"/api/reservations", bookingRequest("2026-03-02T11:30:00Z"))
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 for a full slot, got %d", resp.StatusCode)
	}
}

func TestGetReservationEndpointNotFound(t *testing.T) {
	srv, _, _ := newTestServer(t, lunchConfig(2))

	resp, err := http.Get(srv.URL + "/api/reservations/unknown")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
}

func TestUpdateStatusEndpoint(t *testing.T) {
	srv, store, notifier := newTestServer(t, lunchConfig(2))

	record, err := store.Create(context.Background(), bookingRequest("2026-03-02T11:30:00Z"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	statusURL := fmt.Sprintf("%s/api/admin/reservations/%s/status", srv.URL, record.ID)

	// skipping a step
	resp := postJSON(t, statusURL, map[string]string{"status": "READY"})
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 for NEW -> READY, got %d", resp.StatusCode)
	}

	resp = postJSON(t, statusURL, map[string]string{"status": "PREPARING"})
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	var updated models.Reservation
	if err := json.NewDecoder(resp.Body).Decode(&updated); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if updated.Status != models.StatusPreparing {
		t.Fatalf("expected PREPARING, got %s", updated.Status)
	}

	select {
	case s := <-notifier.status:
		if s != models.StatusPreparing {
			t.Errorf("notified with wrong status %s", s)
		}
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for status notification")
	}

	// idempotent re-apply: 200, no second notification
	resp = postJSON(t, statusURL, map[string]string{"status": "PREPARING"})
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 for idempotent re-apply, got %d", resp.StatusCode)
	}
	select {
	case s := <-notifier.status:
		t.Fatalf("idempotent re-apply must not notify, got %s", s)
	case <-time.After(200 * time.Millisecond):
	}

	// unknown id
	resp = postJSON(t, srv.URL+"/api/admin/reservations/unknown/status", map[string]string{"status": "PREPARING"})
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
}

func TestSlotConfigEndpoints(t *testing.T) {
	srv, _, _ := newTestServer(t, DefaultSlotConfig())

	resp, err := http.Get(srv.URL + "/api/admin/slots")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	var cfg models.SlotConfig
	if err := json.NewDecoder(resp.Body).Decode(&cfg); err != nil {
		t.Fatalf("decode: %v", err)
	}
	resp.Body.Close()
	if cfg.SlotSize != 30 || cfg.Capacity != 6 {
		t.Fatalf("unexpected default config: %+v", cfg)
	}

	resp = postJSON(t, srv.URL+"/api/admin/slots", map[string]any{"capacity": 3, "daysOfWeek": []int{1, 2, 3}})
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(&cfg); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if cfg.Capacity != 3 || len(cfg.DaysOfWeek) != 3 || cfg.StartHour != "11:30" {
		t.Fatalf("partial update applied wrong: %+v", cfg)
	}

	bad := postJSON(t, srv.URL+"/api/admin/slots", map[string]any{"slotSize": -5})
	bad.Body.Close()
	if bad.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad config, got %d", bad.StatusCode)
	}
}
