package response

type CalendarDay struct {
	Date     string `json:"date"`
	Day      int    `json:"day"`
	InMonth  bool   `json:"in_month"`
	Today    bool   `json:"today"`
	Disabled bool   `json:"disabled"`
	Selected bool   `json:"selected"`
}

type CalendarResponse struct {
	Month    string          `json:"month"`
	Title    string          `json:"title"`
	Prev     string          `json:"prev"`
	Next     string          `json:"next"`
	Weekdays []string        `json:"weekdays"`
	Weeks    [][]CalendarDay `json:"weeks"`
}
