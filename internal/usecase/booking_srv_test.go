package usecase_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"tour-booking/internal/data/entity"
	"tour-booking/internal/data/repository"
	"tour-booking/internal/notify"
	"tour-booking/internal/usecase"
	"tour-booking/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var msk = time.FixedZone("MSK", 3*60*60)

type mockNotifier struct {
	mock.Mock
}

func (m *mockNotifier) Notify(ctx context.Context, n notify.Notification) {
	m.Called(ctx, n)
}

func isSuccess(n notify.Notification) bool { return n.Severity == notify.SeverityDefault }
func isWarning(n notify.Notification) bool { return n.Severity == notify.SeverityDestructive }

func fixedClock() usecase.Clock {
	return usecase.Clock{
		Now:      func() time.Time { return time.Date(2026, 10, 17, 12, 0, 0, 0, msk) },
		Location: msk,
	}
}

func newBookingService(t *testing.T) (usecase.BookingService, *mockNotifier) {
	t.Helper()
	repo := repository.NewRepository(time.Hour, zap.NewNop())
	notifier := &mockNotifier{}
	return usecase.NewBookingService(repo, notifier, fixedClock(), zap.NewNop()), notifier
}

func fill(t *testing.T, svc usecase.BookingService, sid string, fields map[string]string) {
	t.Helper()
	ctx := context.Background()
	for _, f := range []string{"name", "email", "phone", "date", "participants"} {
		if v, ok := fields[f]; ok {
			_, err := svc.SetField(ctx, sid, f, v)
			require.NoError(t, err, "field %s", f)
		}
	}
}

func completeFields() map[string]string {
	return map[string]string{
		"name":         "Иван Иванов",
		"email":        "ivan@example.com",
		"phone":        "+7 999 123 45 67",
		"date":         "2026-10-20",
		"participants": "2",
	}
}

func TestSubmit_Success(t *testing.T) {
	svc, notifier := newBookingService(t)
	ctx := context.Background()

	notifier.On("Notify", mock.Anything, mock.MatchedBy(func(n notify.Notification) bool {
		return isSuccess(n) &&
			n.Title == "Бронирование успешно!" &&
			strings.Contains(n.Description, `Тур "Москва - Золотое кольцо"`) &&
			strings.Contains(n.Description, utils.FormatDate(time.Date(2026, 10, 20, 0, 0, 0, 0, msk))) &&
			strings.HasSuffix(n.Description, "для 2 чел.")
	})).Once()

	_, err := svc.SelectTour(ctx, "s1", 1)
	require.NoError(t, err)
	fill(t, svc, "s1", completeFields())

	draft := svc.GetDraft(ctx, "s1")
	require.NotNil(t, draft.Total)
	assert.Equal(t, 90000, *draft.Total)

	confirmation, err := svc.Submit(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, 90000, confirmation.Total)
	assert.Equal(t, 2, confirmation.Participants)
	assert.Equal(t, "2026-10-20", confirmation.StartDate)
	assert.Equal(t, "Москва - Золотое кольцо", confirmation.Tour.Title)

	after := svc.GetDraft(ctx, "s1")
	assert.False(t, after.Open)
	assert.Nil(t, after.Tour)
	assert.Empty(t, after.StartDate)
	assert.Equal(t, 1, after.Participants)
	assert.Empty(t, after.Name)
	assert.Empty(t, after.Email)
	assert.Empty(t, after.Phone)
	assert.Nil(t, after.Total)

	notifier.AssertExpectations(t)
	notifier.AssertNumberOfCalls(t, "Notify", 1)
}

func TestSubmit_MissingFieldLeavesDraftIntact(t *testing.T) {
	for _, missing := range []string{"tour", "date", "name", "email", "phone"} {
		t.Run(missing, func(t *testing.T) {
			svc, notifier := newBookingService(t)
			ctx := context.Background()

			notifier.On("Notify", mock.Anything, mock.MatchedBy(func(n notify.Notification) bool {
				return isWarning(n) && n.Title == "Заполните все поля"
			})).Once()

			if missing != "tour" {
				_, err := svc.SelectTour(ctx, "s1", 2)
				require.NoError(t, err)
			}
			fields := completeFields()
			delete(fields, missing)
			fill(t, svc, "s1", fields)

			before := svc.GetDraft(ctx, "s1")

			confirmation, err := svc.Submit(ctx, "s1")
			assert.Nil(t, confirmation)
			require.ErrorIs(t, err, usecase.ErrIncompleteDraft)

			var incomplete *usecase.IncompleteDraftError
			require.True(t, errors.As(err, &incomplete))
			assert.Equal(t, []string{missing}, incomplete.Rejection.Missing)

			assert.Equal(t, before, svc.GetDraft(ctx, "s1"))
			notifier.AssertExpectations(t)
			notifier.AssertNumberOfCalls(t, "Notify", 1)
		})
	}
}

func TestSubmit_EmptyDraftReportsEveryField(t *testing.T) {
	svc, notifier := newBookingService(t)
	notifier.On("Notify", mock.Anything, mock.MatchedBy(isWarning)).Once()

	_, err := svc.Submit(context.Background(), "s1")

	var incomplete *usecase.IncompleteDraftError
	require.True(t, errors.As(err, &incomplete))
	assert.Equal(t, []string{"tour", "date", "name", "email", "phone"}, incomplete.Rejection.Missing)
	assert.Equal(t, notify.SeverityDestructive, incomplete.Rejection.Notification.Severity)
}

func TestSubmit_RevalidatesEveryAttempt(t *testing.T) {
	svc, notifier := newBookingService(t)
	ctx := context.Background()

	notifier.On("Notify", mock.Anything, mock.MatchedBy(isWarning)).Once()
	notifier.On("Notify", mock.Anything, mock.MatchedBy(isSuccess)).Once()

	_, err := svc.SelectTour(ctx, "s1", 1)
	require.NoError(t, err)
	fields := completeFields()
	delete(fields, "name")
	fill(t, svc, "s1", fields)

	_, err = svc.Submit(ctx, "s1")
	require.ErrorIs(t, err, usecase.ErrIncompleteDraft)

	fill(t, svc, "s1", map[string]string{"name": "Иван Иванов"})
	_, err = svc.Submit(ctx, "s1")
	require.NoError(t, err)

	notifier.AssertExpectations(t)
}

func TestSetField_ParticipantsRecomputeTotal(t *testing.T) {
	svc, _ := newBookingService(t)
	ctx := context.Background()

	_, err := svc.SelectTour(ctx, "s1", 3)
	require.NoError(t, err)
	fill(t, svc, "s1", map[string]string{"date": "2026-10-25"})

	draft := svc.GetDraft(ctx, "s1")
	require.NotNil(t, draft.Total)
	assert.Equal(t, 38000, *draft.Total)

	draft, err = svc.SetField(ctx, "s1", "participants", "10")
	require.NoError(t, err)
	require.NotNil(t, draft.Total)
	assert.Equal(t, 380000, *draft.Total)
	assert.Equal(t, utils.FormatPrice(380000), draft.TotalFormatted)
}

func TestSetField_TotalHiddenWithoutDate(t *testing.T) {
	svc, _ := newBookingService(t)
	ctx := context.Background()

	draft, err := svc.SelectTour(ctx, "s1", 1)
	require.NoError(t, err)
	assert.True(t, draft.Open)
	assert.Nil(t, draft.Total)
}

func TestSetField_NonNumericParticipantsHideTotal(t *testing.T) {
	svc, _ := newBookingService(t)
	ctx := context.Background()

	_, err := svc.SelectTour(ctx, "s1", 1)
	require.NoError(t, err)
	fill(t, svc, "s1", map[string]string{"date": "2026-10-20"})

	draft, err := svc.SetField(ctx, "s1", "participants", "abc")
	require.NoError(t, err)
	assert.Equal(t, 0, draft.Participants)
	assert.Nil(t, draft.Total)

	draft, err = svc.SetField(ctx, "s1", "participants", "3 чел")
	require.NoError(t, err)
	assert.Equal(t, 3, draft.Participants)
	require.NotNil(t, draft.Total)
	assert.Equal(t, 135000, *draft.Total)
}

func TestSetField_Date(t *testing.T) {
	svc, _ := newBookingService(t)
	ctx := context.Background()

	draft, err := svc.SetField(ctx, "s1", "date", "2026-10-17")
	require.NoError(t, err)
	assert.Equal(t, "2026-10-17", draft.StartDate)

	_, err = svc.SetField(ctx, "s1", "date", "2026-10-16")
	assert.ErrorIs(t, err, entity.ErrDateInPast)
	assert.Equal(t, "2026-10-17", svc.GetDraft(ctx, "s1").StartDate)

	_, err = svc.SetField(ctx, "s1", "date", "17.10.2026")
	assert.ErrorIs(t, err, entity.ErrInvalidDate)

	draft, err = svc.SetField(ctx, "s1", "date", "")
	require.NoError(t, err)
	assert.Empty(t, draft.StartDate)
}

func TestSetField_UnknownField(t *testing.T) {
	svc, _ := newBookingService(t)

	_, err := svc.SetField(context.Background(), "s1", "age", "30")
	assert.ErrorIs(t, err, entity.ErrUnknownField)
}

func TestSetField_TextStoredVerbatim(t *testing.T) {
	svc, _ := newBookingService(t)

	draft, err := svc.SetField(context.Background(), "s1", "email", "not an email")
	require.NoError(t, err)
	assert.Equal(t, "not an email", draft.Email)
}

func TestSelectTour_KeepsEnteredFields(t *testing.T) {
	svc, _ := newBookingService(t)
	ctx := context.Background()

	_, err := svc.SelectTour(ctx, "s1", 1)
	require.NoError(t, err)
	fill(t, svc, "s1", map[string]string{"name": "Иван Иванов"})

	draft, err := svc.SelectTour(ctx, "s1", 2)
	require.NoError(t, err)
	assert.Equal(t, 2, draft.Tour.ID)
	assert.Equal(t, "Иван Иванов", draft.Name)
}

func TestSelectTour_Unknown(t *testing.T) {
	svc, _ := newBookingService(t)

	_, err := svc.SelectTour(context.Background(), "s1", 99)
	assert.ErrorIs(t, err, repository.ErrTourNotFound)
	assert.False(t, svc.GetDraft(context.Background(), "s1").Open)
}

func TestAbandon_ResetsDraft(t *testing.T) {
	svc, notifier := newBookingService(t)
	ctx := context.Background()

	_, err := svc.SelectTour(ctx, "s1", 1)
	require.NoError(t, err)
	fill(t, svc, "s1", completeFields())

	require.NoError(t, svc.Abandon(ctx, "s1"))

	draft := svc.GetDraft(ctx, "s1")
	assert.False(t, draft.Open)
	assert.Empty(t, draft.Name)
	assert.Equal(t, 1, draft.Participants)
	notifier.AssertNotCalled(t, "Notify", mock.Anything, mock.Anything)
}

func TestDraftsAreScopedToSession(t *testing.T) {
	svc, _ := newBookingService(t)
	ctx := context.Background()

	_, err := svc.SelectTour(ctx, "alice", 1)
	require.NoError(t, err)
	_, err = svc.SelectTour(ctx, "bob", 2)
	require.NoError(t, err)

	assert.Equal(t, 1, svc.GetDraft(ctx, "alice").Tour.ID)
	assert.Equal(t, 2, svc.GetDraft(ctx, "bob").Tour.ID)
}

func TestSubscribe_ReceivesEvents(t *testing.T) {
	svc, notifier := newBookingService(t)
	ctx := context.Background()
	notifier.On("Notify", mock.Anything, mock.Anything)

	var kinds []usecase.DraftEventKind
	var bookedTotal int
	unsubscribe := svc.Subscribe(func(ctx context.Context, ev usecase.DraftEvent) {
		kinds = append(kinds, ev.Kind)
		if ev.Kind == usecase.EventSubmitted {
			bookedTotal, _ = ev.Draft.Total()
		}
	})

	_, err := svc.SelectTour(ctx, "s1", 1)
	require.NoError(t, err)
	_, err = svc.Submit(ctx, "s1")
	require.Error(t, err)
	fill(t, svc, "s1", map[string]string{"name": "a", "email": "b", "phone": "c", "date": "2026-10-20"})
	_, err = svc.Submit(ctx, "s1")
	require.NoError(t, err)
	require.NoError(t, svc.Abandon(ctx, "s1"))

	assert.Equal(t, []usecase.DraftEventKind{
		usecase.EventTourSelected,
		usecase.EventRejected,
		usecase.EventFieldChanged,
		usecase.EventFieldChanged,
		usecase.EventFieldChanged,
		usecase.EventFieldChanged,
		usecase.EventSubmitted,
		usecase.EventAbandoned,
	}, kinds)
	assert.Equal(t, 45000, bookedTotal)

	unsubscribe()
	_, err = svc.SelectTour(ctx, "s1", 1)
	require.NoError(t, err)
	assert.Len(t, kinds, 8)
}
