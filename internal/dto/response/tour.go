package response

import (
	"tour-booking/internal/data/entity"
	"tour-booking/pkg/utils"
)

type TourResponse struct {
	ID             int      `json:"id"`
	Title          string   `json:"title"`
	Description    string   `json:"description"`
	Price          int      `json:"price"`
	PriceFormatted string   `json:"price_formatted"`
	Duration       string   `json:"duration"`
	ImageURL       string   `json:"image_url"`
	Highlights     []string `json:"highlights"`
}

func TourToResponse(t *entity.Tour) TourResponse {
	return TourResponse{
		ID:             t.ID,
		Title:          t.Title,
		Description:    t.Description,
		Price:          t.Price,
		PriceFormatted: utils.FormatPrice(t.Price),
		Duration:       t.Duration,
		ImageURL:       t.ImageURL,
		Highlights:     append([]string(nil), t.Highlights...),
	}
}
