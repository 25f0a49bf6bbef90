package wire

import (
	"tour-booking/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireBooking(r chi.Router, bookingHandler *adaptor.BookingHandler) {
	r.Route("/api/booking", func(r chi.Router) {
		r.Get("/draft", bookingHandler.GetDraft)         // current draft with live total
		r.Patch("/draft", bookingHandler.SetField)       // {"field":..., "value":...}
		r.Delete("/draft", bookingHandler.Abandon)       // close the dialog
		r.Post("/draft/tour", bookingHandler.SelectTour) // {"tour_id":...}
		r.Post("/submit", bookingHandler.Submit)
	})

	// GET /api/notifications - Drain pending toasts for this session
	r.Get("/api/notifications", bookingHandler.GetNotifications)

	// GET /api/calendar?month=YYYY-MM - Date picker grid, past days disabled
	r.Get("/api/calendar", bookingHandler.GetCalendar)
}
