package usecase

import (
	"time"

	"tour-booking/internal/data/repository"
	"tour-booking/internal/notify"

	"go.uber.org/zap"
)

type Service struct {
	Tour     TourService
	Booking  BookingService
	Calendar CalendarService
}

func NewService(repo *repository.Repository, notifier notify.Notifier, clock Clock, log *zap.Logger) *Service {
	return &Service{
		Tour:     NewTourService(repo.Tour, log),
		Booking:  NewBookingService(repo, notifier, clock, log),
		Calendar: NewCalendarService(clock, log),
	}
}

// Clock supplies "now" and the timezone in which calendar days are cut.
type Clock struct {
	Now      func() time.Time
	Location *time.Location
}

func NewClock(loc *time.Location) Clock {
	if loc == nil {
		loc = time.Local
	}
	return Clock{Now: time.Now, Location: loc}
}

// Today is the current calendar day at midnight in the clock's location.
func (c Clock) Today() time.Time {
	y, m, d := c.Now().In(c.Location).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, c.Location)
}
