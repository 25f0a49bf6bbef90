package adaptor

import (
	"bytes"
	"embed"
	"errors"
	"html/template"
	"net/http"
	"net/url"
	"strconv"

	"tour-booking/internal/data/entity"
	"tour-booking/internal/data/repository"
	"tour-booking/internal/dto/response"
	"tour-booking/internal/notify"
	"tour-booking/internal/usecase"
	"tour-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templateFS, "templates/*.html"))

const (
	titleBadDate       = "Недоступная дата"
	descriptionBadDate = "Выберите дату начала тура не раньше сегодняшнего дня"
)

// formFields are the dialog inputs, in the order they are applied.
var formFields = []entity.Field{
	entity.FieldName,
	entity.FieldEmail,
	entity.FieldPhone,
	entity.FieldDate,
	entity.FieldParticipants,
}

type PageHandler struct {
	service  *usecase.Service
	flash    *notify.FlashNotifier
	notifier notify.Notifier
	config   *utils.Config
	log      *zap.Logger
}

type pageData struct {
	AppName         string
	Tours           []response.TourResponse
	Draft           *response.DraftResponse
	Calendar        *response.CalendarResponse
	Toasts          []notify.Notification
	Today           string
	MaxParticipants int
}

func NewPageHandler(service *usecase.Service, flash *notify.FlashNotifier, notifier notify.Notifier, config *utils.Config, log *zap.Logger) *PageHandler {
	return &PageHandler{
		service:  service,
		flash:    flash,
		notifier: notifier,
		config:   config,
		log:      log.With(zap.String("handler", "page")),
	}
}

// Index handles GET /
func (h *PageHandler) Index(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sid, _ := utils.GetSessionIDFromContext(ctx)

	tours, err := h.service.Tour.GetTours(ctx)
	if err != nil {
		h.log.Error("Failed to load catalog", zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	draft := h.service.Booking.GetDraft(ctx, sid)
	data := pageData{
		AppName:         h.config.App.Name,
		Tours:           tours,
		Draft:           draft,
		Toasts:          h.flash.Drain(sid),
		Today:           h.service.Calendar.Today().Format(utils.DateLayout),
		MaxParticipants: h.config.Booking.MaxParticipants,
	}

	if draft.Open {
		year, month, err := h.service.Calendar.ParseMonth(r.URL.Query().Get("month"))
		if err != nil {
			year, month = 0, 0
		}
		data.Calendar = h.service.Calendar.Month(ctx, year, month, draft.StartDate)
	}

	var buf bytes.Buffer
	if err := pageTemplate.ExecuteTemplate(&buf, "index.html", data); err != nil {
		h.log.Error("Failed to render page", zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

// OpenDialog handles POST /tours/{id}/book
func (h *PageHandler) OpenDialog(w http.ResponseWriter, r *http.Request) {
	sid, _ := utils.GetSessionIDFromContext(r.Context())

	tourID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || tourID < 1 {
		http.Error(w, "Invalid tour ID", http.StatusBadRequest)
		return
	}

	if _, err := h.service.Booking.SelectTour(r.Context(), sid, tourID); err != nil {
		if errors.Is(err, repository.ErrTourNotFound) {
			http.NotFound(w, r)
			return
		}
		h.log.Error("Failed to open booking dialog", zap.Error(err), zap.Int("tour_id", tourID))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	redirect(w, r, "/#booking")
}

// UpdateDraft handles POST /booking/draft: the dialog's inputs, the calendar
// day buttons and the "recalculate" button all post here.
func (h *PageHandler) UpdateDraft(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form", http.StatusBadRequest)
		return
	}

	h.applyForm(r)

	target := "/#booking"
	if month := r.PostForm.Get("month"); month != "" {
		target = "/?month=" + url.QueryEscape(month) + "#booking"
	}
	redirect(w, r, target)
}

// Submit handles POST /booking/submit
func (h *PageHandler) Submit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form", http.StatusBadRequest)
		return
	}

	h.applyForm(r)

	sid, _ := utils.GetSessionIDFromContext(r.Context())
	if _, err := h.service.Booking.Submit(r.Context(), sid); err != nil {
		if errors.Is(err, usecase.ErrIncompleteDraft) {
			// The warning toast is already queued; keep the dialog open.
			redirect(w, r, "/#booking")
			return
		}
		h.log.Error("Failed to submit booking", zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	redirect(w, r, "/")
}

// Close handles POST /booking/close
func (h *PageHandler) Close(w http.ResponseWriter, r *http.Request) {
	sid, _ := utils.GetSessionIDFromContext(r.Context())
	if err := h.service.Booking.Abandon(r.Context(), sid); err != nil {
		h.log.Error("Failed to close booking dialog", zap.Error(err))
	}
	redirect(w, r, "/")
}

// applyForm writes every dialog field present in the posted form.
func (h *PageHandler) applyForm(r *http.Request) {
	ctx := r.Context()
	sid, _ := utils.GetSessionIDFromContext(ctx)

	// A calendar day button wins over the plain date input in the same form.
	if pick := r.PostForm.Get("pick_date"); pick != "" {
		r.PostForm[string(entity.FieldDate)] = []string{pick}
	}

	for _, f := range formFields {
		values, ok := r.PostForm[string(f)]
		if !ok || len(values) == 0 {
			continue
		}

		_, err := h.service.Booking.SetField(ctx, sid, string(f), values[0])
		switch {
		case err == nil:
		case errors.Is(err, entity.ErrDateInPast), errors.Is(err, entity.ErrInvalidDate):
			h.notifier.Notify(ctx, notify.Notification{
				Title:       titleBadDate,
				Description: descriptionBadDate,
				Severity:    notify.SeverityDestructive,
			})
		default:
			h.log.Warn("Failed to apply form field", zap.String("field", string(f)), zap.Error(err))
		}
	}
}

func redirect(w http.ResponseWriter, r *http.Request, target string) {
	http.Redirect(w, r, target, http.StatusSeeOther)
}
