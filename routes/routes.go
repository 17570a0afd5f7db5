package routes

import (
	"net/http"

	"grillbox/auth"
	"grillbox/menu"
	"grillbox/middleware"
	"grillbox/ratelim"
	"grillbox/reservations"

	"github.com/julienschmidt/httprouter"
)

func AddStaticRoutes(router *httprouter.Router) {
	router.ServeFiles("/static/menupic/*filepath", http.Dir("static/menupic"))
}

func AddAuthRoutes(router *httprouter.Router) {
	router.POST("/api/auth/login", ratelim.RateLimit(auth.Login))
	router.POST("/api/auth/logout", middleware.Authenticate(auth.Logout))
}

func AddMenuRoutes(router *httprouter.Router) {
	router.GET("/api/menu", ratelim.RateLimit(menu.GetMenu))
	router.POST("/api/admin/menu", middleware.Authenticate(menu.UpsertMenuItem))
	router.DELETE("/api/admin/menu/:itemid", middleware.Authenticate(menu.DeleteMenuItem))
	router.POST("/api/admin/menu/photo", middleware.Authenticate(menu.UploadMenuPhoto))
}

// AddReservationRoutes wires the booking engine. The handler carries its
// store, so tests can mount the same routes on a fresh in-memory instance.
func AddReservationRoutes(router *httprouter.Router, h *reservations.Handler) {
	router.GET("/api/slots", ratelim.RateLimit(h.GetSlots))
	router.GET("/api/slots/:date/updates", reservations.HandleWS)

	router.POST("/api/reservations", ratelim.RateLimit(h.CreateReservation))
	router.GET("/api/reservations/:id", h.GetReservation)
	router.GET("/api/reservations/:id/receipt", h.PrintReceipt)

	router.GET("/api/admin/reservations", middleware.Authenticate(h.ListReservations))
	router.POST("/api/admin/reservations/:id/status", middleware.Authenticate(h.UpdateReservationStatus))
	router.GET("/api/admin/slots", middleware.Authenticate(h.GetSlotConfig))
	router.POST("/api/admin/slots", middleware.Authenticate(h.UpdateSlotConfig))
}
