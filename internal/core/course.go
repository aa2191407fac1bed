package core

import "fmt"

// Course is one catalog entry.
type Course struct {
	ID            string  `json:"courseId"`
	Title         string  `json:"title"`
	Prerequisites string  `json:"prerequisites"`
	Amount        float64 `json:"amount"`
}

// String renders the course for the catalog listing.
func (c Course) String() string {
	return fmt.Sprintf("%s: %s | %g | %s", c.Title, c.ID, c.Amount, c.Prerequisites)
}

// Detail renders the course as shown for a single lookup.
func (c Course) Detail() string {
	return fmt.Sprintf("%s: %s | %g | %s", c.ID, c.Title, c.Amount, c.Prerequisites)
}
