package entity

import (
	"errors"
	"fmt"
	"time"
)

type Field string

const (
	FieldDate         Field = "date"
	FieldParticipants Field = "participants"
	FieldName         Field = "name"
	FieldEmail        Field = "email"
	FieldPhone        Field = "phone"
)

const DefaultParticipants = 1

var (
	ErrUnknownField = errors.New("unknown draft field")
	ErrInvalidDate  = errors.New("invalid date")
	ErrDateInPast   = errors.New("date is in the past")
)

func ParseField(s string) (Field, error) {
	switch f := Field(s); f {
	case FieldDate, FieldParticipants, FieldName, FieldEmail, FieldPhone:
		return f, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownField, s)
}

// BookingDraft is the state of the open booking dialog. One per session.
type BookingDraft struct {
	Tour         *Tour
	StartDate    *time.Time
	Participants int
	Name         string
	Email        string
	Phone        string
}

func NewBookingDraft() *BookingDraft {
	return &BookingDraft{Participants: DefaultParticipants}
}

// Open reports whether a tour has been picked, i.e. the dialog is showing.
func (d *BookingDraft) Open() bool {
	return d.Tour != nil
}

func (d *BookingDraft) SelectTour(t *Tour) {
	d.Tour = t.Clone()
}

// SetStartDate stores date truncated to a calendar day. Days before today
// are not selectable and leave the draft untouched. nil clears the date.
func (d *BookingDraft) SetStartDate(date *time.Time, today time.Time) error {
	if date == nil {
		d.StartDate = nil
		return nil
	}

	day := dateOnly(date.In(today.Location()))
	if day.Before(dateOnly(today)) {
		return fmt.Errorf("%w: %s", ErrDateInPast, day.Format("2006-01-02"))
	}
	d.StartDate = &day
	return nil
}

// SetParticipants accepts any count; the 1..max range belongs to the input widget.
func (d *BookingDraft) SetParticipants(n int) {
	d.Participants = n
}

func (d *BookingDraft) SetText(f Field, value string) error {
	switch f {
	case FieldName:
		d.Name = value
	case FieldEmail:
		d.Email = value
	case FieldPhone:
		d.Phone = value
	default:
		return fmt.Errorf("%w: %q is not a text field", ErrUnknownField, f)
	}
	return nil
}

// Total is price x participants. ok is false while the total is not
// displayable: no tour, no date, or a non-positive participant count.
func (d *BookingDraft) Total() (total int, ok bool) {
	if d.Tour == nil || d.StartDate == nil || d.Participants <= 0 {
		return 0, false
	}
	return d.Tour.Price * d.Participants, true
}

func (d *BookingDraft) Reset() {
	*d = BookingDraft{Participants: DefaultParticipants}
}

// Snapshot is a deep copy safe to hand out after the store lock is released.
func (d *BookingDraft) Snapshot() BookingDraft {
	s := *d
	s.Tour = d.Tour.Clone()
	if d.StartDate != nil {
		date := *d.StartDate
		s.StartDate = &date
	}
	return s
}

func dateOnly(t time.Time) time.Time {
	y, m, day := t.Date()
	return time.Date(y, m, day, 0, 0, 0, 0, t.Location())
}
