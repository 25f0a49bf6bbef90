package response

import (
	"tour-booking/internal/data/entity"
	"tour-booking/internal/notify"
	"tour-booking/pkg/utils"
)

type DraftResponse struct {
	Open               bool          `json:"open"`
	Tour               *TourResponse `json:"tour,omitempty"`
	StartDate          string        `json:"start_date,omitempty"`
	StartDateFormatted string        `json:"start_date_formatted,omitempty"`
	Participants       int           `json:"participants"`
	Name               string        `json:"name"`
	Email              string        `json:"email"`
	Phone              string        `json:"phone"`
	Total              *int          `json:"total,omitempty"`
	TotalFormatted     string        `json:"total_formatted,omitempty"`
}

type BookingConfirmation struct {
	Tour               TourResponse        `json:"tour"`
	StartDate          string              `json:"start_date"`
	StartDateFormatted string              `json:"start_date_formatted"`
	Participants       int                 `json:"participants"`
	Total              int                 `json:"total"`
	TotalFormatted     string              `json:"total_formatted"`
	Notification       notify.Notification `json:"notification"`
}

// SubmitRejection is returned alongside ErrIncompleteDraft so the client can
// keep the dialog open with what was already entered.
type SubmitRejection struct {
	Missing      []string            `json:"missing"`
	Draft        DraftResponse       `json:"draft"`
	Notification notify.Notification `json:"notification"`
}

func DraftToResponse(d entity.BookingDraft) DraftResponse {
	resp := DraftResponse{
		Open:         d.Open(),
		Participants: d.Participants,
		Name:         d.Name,
		Email:        d.Email,
		Phone:        d.Phone,
	}
	if d.Tour != nil {
		tour := TourToResponse(d.Tour)
		resp.Tour = &tour
	}
	if d.StartDate != nil {
		resp.StartDate = d.StartDate.Format(utils.DateLayout)
		resp.StartDateFormatted = utils.FormatDate(*d.StartDate)
	}
	if total, ok := d.Total(); ok {
		resp.Total = &total
		resp.TotalFormatted = utils.FormatPrice(total)
	}
	return resp
}
