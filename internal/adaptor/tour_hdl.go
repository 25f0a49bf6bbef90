package adaptor

import (
	"errors"
	"net/http"
	"strconv"

	"tour-booking/internal/data/repository"
	"tour-booking/internal/usecase"
	"tour-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type TourHandler struct {
	service usecase.TourService
	log     *zap.Logger
}

func NewTourHandler(service usecase.TourService, log *zap.Logger) *TourHandler {
	return &TourHandler{
		service: service,
		log:     log.With(zap.String("handler", "tour")),
	}
}

// GetTours handles GET /api/tours
func (h *TourHandler) GetTours(w http.ResponseWriter, r *http.Request) {
	tours, err := h.service.GetTours(r.Context())
	if err != nil {
		h.handleServiceError(w, err, "get tours")
		return
	}

	utils.ResponseSuccess(w, "success", tours)
}

// GetTourByID handles GET /api/tours/{id}
func (h *TourHandler) GetTourByID(w http.ResponseWriter, r *http.Request) {
	tourID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || tourID < 1 {
		utils.ResponseBadRequest(w, "Invalid tour ID", nil)
		return
	}

	tour, err := h.service.GetTourByID(r.Context(), tourID)
	if err != nil {
		h.handleServiceError(w, err, "get tour by ID")
		return
	}

	utils.ResponseSuccess(w, "success", tour)
}

func (h *TourHandler) handleServiceError(w http.ResponseWriter, err error, operation string) {
	switch {
	case errors.Is(err, repository.ErrTourNotFound):
		h.log.Warn(operation+" failed - not found",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseNotFound(w, "Tour not found")

	default:
		h.log.Error("Failed to "+operation,
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
