package models

// BookingRequest is the commit payload handed to a booking backend.
type BookingRequest struct {
	Date    string  `json:"date"` // YYYY-MM-DD
	Slot    Slot    `json:"slot"`
	Contact Contact `json:"contact"`
	Notes   string  `json:"notes,omitempty"`
}

// BookingResult reports the outcome of a commit attempt.
type BookingResult struct {
	Success   bool   `json:"success"`
	BookingID string `json:"bookingId,omitempty"`
	Backend   string `json:"backend,omitempty"` // which backend carried the commit
	Error     string `json:"error,omitempty"`
}
