package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"tour-booking/internal/data/entity"
	"tour-booking/internal/data/repository"
	"tour-booking/internal/dto/response"
	"tour-booking/internal/notify"
	"tour-booking/pkg/utils"

	"go.uber.org/zap"
)

var ErrIncompleteDraft = errors.New("booking draft is incomplete")

// IncompleteDraftError is returned by Submit when a required field is
// missing. It unwraps to ErrIncompleteDraft.
type IncompleteDraftError struct {
	Rejection response.SubmitRejection
}

func (e *IncompleteDraftError) Error() string {
	return fmt.Sprintf("%s: missing %s", ErrIncompleteDraft, strings.Join(e.Rejection.Missing, ", "))
}

func (e *IncompleteDraftError) Unwrap() error { return ErrIncompleteDraft }

const (
	titleIncomplete       = "Заполните все поля"
	descriptionIncomplete = "Пожалуйста, укажите все необходимые данные для бронирования"
	titleBooked           = "Бронирование успешно!"
)

type DraftEventKind string

const (
	EventTourSelected DraftEventKind = "selected"
	EventFieldChanged DraftEventKind = "field"
	EventSubmitted    DraftEventKind = "submitted"
	EventRejected     DraftEventKind = "rejected"
	EventAbandoned    DraftEventKind = "abandoned"
)

// DraftEvent describes one mutation (or failed submit) of a session's draft.
// Draft is the state after the change; for EventSubmitted it is the state
// that was booked, before the reset.
type DraftEvent struct {
	Kind      DraftEventKind
	SessionID string
	Field     entity.Field
	Missing   []string
	Draft     entity.BookingDraft
}

type DraftObserver func(ctx context.Context, ev DraftEvent)

type BookingService interface {
	SelectTour(ctx context.Context, sessionID string, tourID int) (*response.DraftResponse, error)
	SetField(ctx context.Context, sessionID, field, value string) (*response.DraftResponse, error)
	Submit(ctx context.Context, sessionID string) (*response.BookingConfirmation, error)
	Abandon(ctx context.Context, sessionID string) error
	GetDraft(ctx context.Context, sessionID string) *response.DraftResponse

	// Subscribe registers an observer for draft changes. Observers run
	// synchronously after the change, outside the draft lock.
	Subscribe(o DraftObserver) (unsubscribe func())
}

// submission mirrors the fields a booking cannot go without. Field names
// come from the json tags and are reported in this order.
type submission struct {
	Tour  int        `json:"tour" validate:"required"`
	Date  *time.Time `json:"date" validate:"required"`
	Name  string     `json:"name" validate:"required"`
	Email string     `json:"email" validate:"required"`
	Phone string     `json:"phone" validate:"required"`
}

var submissionOrder = []string{"tour", "date", "name", "email", "phone"}

type bookingService struct {
	repo     *repository.Repository
	notifier notify.Notifier
	clock    Clock
	log      *zap.Logger

	mu        sync.RWMutex
	nextObs   int
	observers map[int]DraftObserver
}

func NewBookingService(repo *repository.Repository, notifier notify.Notifier, clock Clock, log *zap.Logger) BookingService {
	return &bookingService{
		repo:      repo,
		notifier:  notifier,
		clock:     clock,
		log:       log.With(zap.String("service", "booking")),
		observers: make(map[int]DraftObserver),
	}
}

func (s *bookingService) Subscribe(o DraftObserver) func() {
	s.mu.Lock()
	id := s.nextObs
	s.nextObs++
	s.observers[id] = o
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.observers, id)
		s.mu.Unlock()
	}
}

func (s *bookingService) publish(ctx context.Context, ev DraftEvent) {
	s.mu.RLock()
	obs := make([]DraftObserver, 0, len(s.observers))
	for _, o := range s.observers {
		obs = append(obs, o)
	}
	s.mu.RUnlock()

	for _, o := range obs {
		o(ctx, ev)
	}
}

func (s *bookingService) SelectTour(ctx context.Context, sessionID string, tourID int) (*response.DraftResponse, error) {
	tour, err := s.repo.Tour.FindByID(ctx, tourID)
	if err != nil {
		return nil, fmt.Errorf("select tour: %w", err)
	}

	draft, _ := s.repo.Draft.Update(ctx, sessionID, func(d *entity.BookingDraft) error {
		d.SelectTour(tour)
		return nil
	})

	s.log.Debug("Tour selected",
		zap.String("session_id", sessionID),
		zap.Int("tour_id", tourID),
	)
	s.publish(ctx, DraftEvent{Kind: EventTourSelected, SessionID: sessionID, Draft: draft})

	resp := response.DraftToResponse(draft)
	return &resp, nil
}

func (s *bookingService) SetField(ctx context.Context, sessionID, field, value string) (*response.DraftResponse, error) {
	f, err := entity.ParseField(field)
	if err != nil {
		return nil, fmt.Errorf("set field: %w", err)
	}

	apply, err := s.fieldSetter(f, value)
	if err != nil {
		return nil, fmt.Errorf("set field %s: %w", f, err)
	}

	draft, err := s.repo.Draft.Update(ctx, sessionID, apply)
	if err != nil {
		s.log.Debug("Field change rejected",
			zap.String("session_id", sessionID),
			zap.String("field", string(f)),
			zap.Error(err),
		)
		return nil, fmt.Errorf("set field %s: %w", f, err)
	}

	s.publish(ctx, DraftEvent{Kind: EventFieldChanged, SessionID: sessionID, Field: f, Draft: draft})

	resp := response.DraftToResponse(draft)
	return &resp, nil
}

// fieldSetter parses value for f up front so the draft lock is only held
// for the assignment itself.
func (s *bookingService) fieldSetter(f entity.Field, value string) (func(d *entity.BookingDraft) error, error) {
	switch f {
	case entity.FieldDate:
		if strings.TrimSpace(value) == "" {
			return func(d *entity.BookingDraft) error {
				return d.SetStartDate(nil, s.clock.Today())
			}, nil
		}
		date, err := time.ParseInLocation(utils.DateLayout, strings.TrimSpace(value), s.clock.Location)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", entity.ErrInvalidDate, value)
		}
		return func(d *entity.BookingDraft) error {
			return d.SetStartDate(&date, s.clock.Today())
		}, nil

	case entity.FieldParticipants:
		// Non-numeric input is accepted and simply hides the total.
		n, _ := utils.ParseLeadingInt(value)
		return func(d *entity.BookingDraft) error {
			d.SetParticipants(n)
			return nil
		}, nil

	default:
		return func(d *entity.BookingDraft) error {
			return d.SetText(f, value)
		}, nil
	}
}

func (s *bookingService) Submit(ctx context.Context, sessionID string) (*response.BookingConfirmation, error) {
	var (
		booked  entity.BookingDraft
		missing []string
	)

	draft, err := s.repo.Draft.Update(ctx, sessionID, func(d *entity.BookingDraft) error {
		missing = missingFields(d)
		if len(missing) > 0 {
			return ErrIncompleteDraft
		}
		booked = d.Snapshot()
		d.Reset()
		return nil
	})

	if err != nil {
		n := notify.Notification{
			Title:       titleIncomplete,
			Description: descriptionIncomplete,
			Severity:    notify.SeverityDestructive,
		}
		s.notifier.Notify(ctx, n)
		s.publish(ctx, DraftEvent{Kind: EventRejected, SessionID: sessionID, Missing: missing, Draft: draft})

		return nil, &IncompleteDraftError{Rejection: response.SubmitRejection{
			Missing:      missing,
			Draft:        response.DraftToResponse(draft),
			Notification: n,
		}}
	}

	total, _ := booked.Total()
	n := notify.Notification{
		Title: titleBooked,
		Description: fmt.Sprintf("Тур \"%s\" забронирован на %s для %d чел.",
			booked.Tour.Title, utils.FormatDate(*booked.StartDate), booked.Participants),
		Severity: notify.SeverityDefault,
	}
	s.notifier.Notify(ctx, n)

	s.log.Info("Booking submitted",
		zap.String("session_id", sessionID),
		zap.Int("tour_id", booked.Tour.ID),
		zap.Int("participants", booked.Participants),
		zap.Int("total", total),
	)
	s.publish(ctx, DraftEvent{Kind: EventSubmitted, SessionID: sessionID, Draft: booked})

	return &response.BookingConfirmation{
		Tour:               response.TourToResponse(booked.Tour),
		StartDate:          booked.StartDate.Format(utils.DateLayout),
		StartDateFormatted: utils.FormatDate(*booked.StartDate),
		Participants:       booked.Participants,
		Total:              total,
		TotalFormatted:     utils.FormatPrice(total),
		Notification:       n,
	}, nil
}

func (s *bookingService) Abandon(ctx context.Context, sessionID string) error {
	draft, _ := s.repo.Draft.Update(ctx, sessionID, func(d *entity.BookingDraft) error {
		d.Reset()
		return nil
	})

	s.publish(ctx, DraftEvent{Kind: EventAbandoned, SessionID: sessionID, Draft: draft})
	return nil
}

func (s *bookingService) GetDraft(ctx context.Context, sessionID string) *response.DraftResponse {
	resp := response.DraftToResponse(s.repo.Draft.Get(ctx, sessionID))
	return &resp
}

// missingFields lists the required fields d lacks, in form order.
func missingFields(d *entity.BookingDraft) []string {
	sub := submission{
		Date:  d.StartDate,
		Name:  d.Name,
		Email: d.Email,
		Phone: d.Phone,
	}
	if d.Tour != nil {
		sub.Tour = d.Tour.ID
	}

	errs := utils.ValidateStruct(sub)
	if len(errs) == 0 {
		return nil
	}

	missing := make([]string, 0, len(errs))
	for _, name := range submissionOrder {
		if _, ok := errs[name]; ok {
			missing = append(missing, name)
		}
	}
	return missing
}
