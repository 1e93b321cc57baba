package models

import "time"

// DateLayout is the wire format for exercise dates (yyyy-mm-dd).
const DateLayout = "2006-01-02"

// DisplayLayout renders dates for API responses, e.g. "Mon Jan 15 2024".
const DisplayLayout = "Mon Jan 02 2006"

// Exercise is one entry of a user's log. Date is stored in DateLayout form.
type Exercise struct {
	Description string `json:"description"`
	Duration    int    `json:"duration"`
	Date        string `json:"date"`
}

// User carries its whole exercise log inline. Log order is append order,
// not date order.
type User struct {
	ID       string     `json:"id"`
	Username string     `json:"username"`
	Log      []Exercise `json:"log"`
}

// UserRef is the id+username projection returned by the user listing.
type UserRef struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// DateString renders an exercise date for responses. Stored dates always
// parse; anything else falls through unchanged.
func (e Exercise) DateString() string {
	t, err := time.Parse(DateLayout, e.Date)
	if err != nil {
		return e.Date
	}
	return t.Format(DisplayLayout)
}
