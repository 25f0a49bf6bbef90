package adaptor

import (
	"tour-booking/internal/notify"
	"tour-booking/internal/usecase"
	"tour-booking/pkg/utils"

	"go.uber.org/zap"
)

type Handler struct {
	Tour    *TourHandler
	Booking *BookingHandler
	Page    *PageHandler
}

func NewHandler(service *usecase.Service, flash *notify.FlashNotifier, notifier notify.Notifier, config *utils.Config, log *zap.Logger) *Handler {
	return &Handler{
		Tour:    NewTourHandler(service.Tour, log),
		Booking: NewBookingHandler(service.Booking, service.Calendar, flash, log),
		Page:    NewPageHandler(service, flash, notifier, config, log),
	}
}
