package wire

import (
	"context"

	"tour-booking/internal/usecase"
	"tour-booking/pkg/metrics"

	"go.uber.org/zap"
)

func observeMetrics(booking usecase.BookingService, m *metrics.Metrics) {
	booking.Subscribe(func(ctx context.Context, ev usecase.DraftEvent) {
		switch ev.Kind {
		case usecase.EventTourSelected:
			m.TourOpened(ev.Draft.Tour.ID)
		case usecase.EventSubmitted:
			m.Submitted(metrics.ResultBooked)
		case usecase.EventRejected:
			m.Submitted(metrics.ResultRejected)
		case usecase.EventAbandoned:
			m.Abandoned.Inc()
		}
	})
}

func observeLog(booking usecase.BookingService, logger *zap.Logger) {
	log := logger.With(zap.String("component", "draft"))
	booking.Subscribe(func(ctx context.Context, ev usecase.DraftEvent) {
		fields := []zap.Field{
			zap.String("event", string(ev.Kind)),
			zap.String("session_id", ev.SessionID),
		}
		if ev.Field != "" {
			fields = append(fields, zap.String("field", string(ev.Field)))
		}
		if len(ev.Missing) > 0 {
			fields = append(fields, zap.Strings("missing", ev.Missing))
		}
		if total, ok := ev.Draft.Total(); ok {
			fields = append(fields, zap.Int("total", total))
		}
		log.Debug("Draft changed", fields...)
	})
}
