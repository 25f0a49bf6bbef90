package request

import "encoding/json"

type SelectTourRequest struct {
	TourID int `json:"tour_id" validate:"required,min=1"`
}

// SetFieldRequest carries every value as text, the way form inputs emit them.
type SetFieldRequest struct {
	Field string     `json:"field" validate:"required,oneof=date participants name email phone"`
	Value FieldValue `json:"value"`
}

// FieldValue accepts a JSON string or number ({"value": 2} and {"value": "2"}).
type FieldValue string

func (v *FieldValue) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*v = FieldValue(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*v = FieldValue(n.String())
	return nil
}

type CalendarRequest struct {
	Month string `json:"month" validate:"omitempty,datetime=2006-01"`
}
