package entity

type Tour struct {
	ID          int
	Title       string
	Description string
	Price       int
	Duration    string
	ImageURL    string
	Highlights  []string
}

// Clone returns a copy that shares nothing with t.
func (t *Tour) Clone() *Tour {
	if t == nil {
		return nil
	}
	c := *t
	c.Highlights = append([]string(nil), t.Highlights...)
	return &c
}
