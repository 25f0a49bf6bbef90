package wire

import (
	"tour-booking/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wirePage(r chi.Router, pageHandler *adaptor.PageHandler) {
	// GET / - Catalog page, with the booking dialog when one is open
	r.Get("/", pageHandler.Index)

	// POST /tours/{id}/book - Open the dialog for a tour
	r.Post("/tours/{id}/book", pageHandler.OpenDialog)

	r.Route("/booking", func(r chi.Router) {
		r.Post("/draft", pageHandler.UpdateDraft) // save inputs, pick a day, recalculate
		r.Post("/submit", pageHandler.Submit)     // confirm booking
		r.Post("/close", pageHandler.Close)       // abandon the dialog
	})
}
