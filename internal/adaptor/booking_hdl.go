package adaptor

import (
	"encoding/json"
	"errors"
	"net/http"

	"tour-booking/internal/data/entity"
	"tour-booking/internal/data/repository"
	"tour-booking/internal/dto/request"
	"tour-booking/internal/notify"
	"tour-booking/internal/usecase"
	"tour-booking/pkg/utils"

	"go.uber.org/zap"
)

type BookingHandler struct {
	service  usecase.BookingService
	calendar usecase.CalendarService
	flash    *notify.FlashNotifier
	log      *zap.Logger
}

func NewBookingHandler(service usecase.BookingService, calendar usecase.CalendarService, flash *notify.FlashNotifier, log *zap.Logger) *BookingHandler {
	return &BookingHandler{
		service:  service,
		calendar: calendar,
		flash:    flash,
		log:      log.With(zap.String("handler", "booking")),
	}
}

// GetDraft handles GET /api/booking/draft
func (h *BookingHandler) GetDraft(w http.ResponseWriter, r *http.Request) {
	sid, ok := utils.GetSessionIDFromContext(r.Context())
	if !ok {
		utils.ResponseBadRequest(w, "Session required", nil)
		return
	}

	utils.ResponseSuccess(w, "success", h.service.GetDraft(r.Context(), sid))
}

// SelectTour handles POST /api/booking/draft/tour
func (h *BookingHandler) SelectTour(w http.ResponseWriter, r *http.Request) {
	sid, ok := utils.GetSessionIDFromContext(r.Context())
	if !ok {
		utils.ResponseBadRequest(w, "Session required", nil)
		return
	}

	var req request.SelectTourRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	draft, err := h.service.SelectTour(r.Context(), sid, req.TourID)
	if err != nil {
		h.handleServiceError(w, err, "select tour")
		return
	}

	utils.ResponseSuccess(w, "success", draft)
}

// SetField handles PATCH /api/booking/draft
func (h *BookingHandler) SetField(w http.ResponseWriter, r *http.Request) {
	sid, ok := utils.GetSessionIDFromContext(r.Context())
	if !ok {
		utils.ResponseBadRequest(w, "Session required", nil)
		return
	}

	var req request.SetFieldRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	draft, err := h.service.SetField(r.Context(), sid, req.Field, string(req.Value))
	if err != nil {
		h.handleServiceError(w, err, "set field")
		return
	}

	utils.ResponseSuccess(w, "success", draft)
}

// Submit handles POST /api/booking/submit
func (h *BookingHandler) Submit(w http.ResponseWriter, r *http.Request) {
	sid, ok := utils.GetSessionIDFromContext(r.Context())
	if !ok {
		utils.ResponseBadRequest(w, "Session required", nil)
		return
	}

	confirmation, err := h.service.Submit(r.Context(), sid)
	if err != nil {
		h.handleServiceError(w, err, "submit booking")
		return
	}

	utils.ResponseSuccess(w, "success", confirmation)
}

// Abandon handles DELETE /api/booking/draft
func (h *BookingHandler) Abandon(w http.ResponseWriter, r *http.Request) {
	sid, ok := utils.GetSessionIDFromContext(r.Context())
	if !ok {
		utils.ResponseBadRequest(w, "Session required", nil)
		return
	}

	if err := h.service.Abandon(r.Context(), sid); err != nil {
		h.handleServiceError(w, err, "abandon draft")
		return
	}

	utils.ResponseSuccess(w, "success", h.service.GetDraft(r.Context(), sid))
}

// GetNotifications handles GET /api/notifications; reading drains the queue.
func (h *BookingHandler) GetNotifications(w http.ResponseWriter, r *http.Request) {
	sid, ok := utils.GetSessionIDFromContext(r.Context())
	if !ok {
		utils.ResponseBadRequest(w, "Session required", nil)
		return
	}

	toasts := h.flash.Drain(sid)
	if toasts == nil {
		toasts = []notify.Notification{}
	}
	utils.ResponseSuccess(w, "success", toasts)
}

// GetCalendar handles GET /api/calendar?month=YYYY-MM
func (h *BookingHandler) GetCalendar(w http.ResponseWriter, r *http.Request) {
	req := request.CalendarRequest{Month: r.URL.Query().Get("month")}
	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	year, month, err := h.calendar.ParseMonth(req.Month)
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid month", nil)
		return
	}

	var selected string
	if sid, ok := utils.GetSessionIDFromContext(r.Context()); ok {
		selected = h.service.GetDraft(r.Context(), sid).StartDate
	}

	utils.ResponseSuccess(w, "success", h.calendar.Month(r.Context(), year, month, selected))
}

func (h *BookingHandler) handleServiceError(w http.ResponseWriter, err error, operation string) {
	var incomplete *usecase.IncompleteDraftError

	switch {
	case errors.As(err, &incomplete):
		h.log.Info(operation+" rejected - incomplete draft",
			zap.Strings("missing", incomplete.Rejection.Missing),
			zap.String("operation", operation))
		errs := make(map[string]string, len(incomplete.Rejection.Missing))
		for _, f := range incomplete.Rejection.Missing {
			errs[f] = "This field is required"
		}
		utils.ResponseUnprocessable(w, incomplete.Rejection.Notification.Title, incomplete.Rejection, errs)

	case errors.Is(err, repository.ErrTourNotFound):
		h.log.Warn(operation+" failed - not found",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseNotFound(w, "Tour not found")

	case errors.Is(err, entity.ErrDateInPast),
		errors.Is(err, entity.ErrInvalidDate),
		errors.Is(err, entity.ErrUnknownField):
		h.log.Warn("Invalid input for "+operation,
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseBadRequest(w, err.Error(), nil)

	default:
		h.log.Error("Failed to "+operation,
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
