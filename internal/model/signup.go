// Package model defines domain entities for the waitlist API.
package model

// Signup is a single waitlist entry. It is created from a request body,
// written once as a spreadsheet row, and never persisted locally.
type Signup struct {
	// Timestamp is taken from the client as-is. It may be empty and is
	// still written to the sheet (USER_ENTERED parses date-like strings).
	Timestamp string `json:"timestamp"`
	Email     string `json:"email"`
	Username  string `json:"username"`
}

// Row returns the spreadsheet cells in the fixed column order:
// A=timestamp, B=email, C=username.
func (s Signup) Row() []interface{} {
	return []interface{}{s.Timestamp, s.Email, s.Username}
}
