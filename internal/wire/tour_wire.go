package wire

import (
	"tour-booking/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireTour(r chi.Router, tourHandler *adaptor.TourHandler) {
	// GET /api/tours - Catalog in display order
	r.Get("/api/tours", tourHandler.GetTours)

	// GET /api/tours/{id} - Single tour
	r.Get("/api/tours/{id}", tourHandler.GetTourByID)
}
