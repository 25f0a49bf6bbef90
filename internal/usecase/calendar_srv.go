package usecase

import (
	"context"
	"time"

	"tour-booking/internal/dto/response"
	"tour-booking/pkg/utils"

	"github.com/goodsign/monday"
	"go.uber.org/zap"
)

const monthLayout = "2006-01"

var weekdaysRu = []string{"Пн", "Вт", "Ср", "Чт", "Пт", "Сб", "Вс"}

type CalendarService interface {
	// Month lays out the given month (zero year means the current one) as
	// Monday-first weeks. Days before today are disabled.
	// selected ("2006-01-02", may be empty) marks the draft's chosen day.
	Month(ctx context.Context, year int, month time.Month, selected string) *response.CalendarResponse
	// Today is the first selectable day.
	Today() time.Time
	// ParseMonth reads "2006-01"; an empty string is the current month.
	ParseMonth(value string) (int, time.Month, error)
}

type calendarService struct {
	clock Clock
	log   *zap.Logger
}

func NewCalendarService(clock Clock, log *zap.Logger) CalendarService {
	return &calendarService{
		clock: clock,
		log:   log.With(zap.String("service", "calendar")),
	}
}

func (s *calendarService) Today() time.Time {
	return s.clock.Today()
}

func (s *calendarService) ParseMonth(value string) (int, time.Month, error) {
	if value == "" {
		today := s.clock.Today()
		return today.Year(), today.Month(), nil
	}
	t, err := time.ParseInLocation(monthLayout, value, s.clock.Location)
	if err != nil {
		return 0, 0, err
	}
	return t.Year(), t.Month(), nil
}

func (s *calendarService) Month(ctx context.Context, year int, month time.Month, selected string) *response.CalendarResponse {
	today := s.clock.Today()
	if year == 0 {
		year, month = today.Year(), today.Month()
	}

	first := time.Date(year, month, 1, 0, 0, 0, 0, s.clock.Location)
	// Monday-first: shift Sunday (0) to the end of the week.
	offset := (int(first.Weekday()) + 6) % 7
	cursor := first.AddDate(0, 0, -offset)

	resp := &response.CalendarResponse{
		Month:    first.Format(monthLayout),
		Title:    monday.Format(first, "January 2006", monday.LocaleRuRU),
		Prev:     first.AddDate(0, -1, 0).Format(monthLayout),
		Next:     first.AddDate(0, 1, 0).Format(monthLayout),
		Weekdays: weekdaysRu,
	}

	for {
		week := make([]response.CalendarDay, 7)
		for i := range week {
			date := cursor.Format(utils.DateLayout)
			week[i] = response.CalendarDay{
				Date:     date,
				Day:      cursor.Day(),
				InMonth:  cursor.Month() == month,
				Today:    cursor.Equal(today),
				Disabled: cursor.Before(today),
				Selected: date == selected,
			}
			cursor = cursor.AddDate(0, 0, 1)
		}
		resp.Weeks = append(resp.Weeks, week)
		if cursor.Month() != month {
			break
		}
	}

	return resp
}
