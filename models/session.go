package models

import "time"

// Step identifies which piece of controller logic runs on the next inbound message.
type Step string

const (
	StepAwaitRequirements  Step = "AWAIT_REQUIREMENTS"
	StepSlotsFetched       Step = "SLOTS_FETCHED"
	StepAwaitSlotSelection Step = "AWAIT_SLOT_SELECTION"
	StepAwaitContactInfo   Step = "AWAIT_CONTACT_INFO"
	StepAwaitConfirmation  Step = "AWAIT_CONFIRMATION"
	StepBooked             Step = "BOOKED"
)

// Valid reports whether s is one of the defined steps.
func (s Step) Valid() bool {
	switch s {
	case StepAwaitRequirements, StepSlotsFetched, StepAwaitSlotSelection,
		StepAwaitContactInfo, StepAwaitConfirmation, StepBooked:
		return true
	}
	return false
}

// Turn is a single entry in the conversation history.
type Turn struct {
	Role      string    `json:"role"` // "user" or "assistant"
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

// Slot describes one bookable interval returned by the scheduling backend.
// BackendRef carries whatever handle the backend needs to commit the
// reservation (staff ID for the API path, element label for the UI path).
type Slot struct {
	StartTime  string `json:"startTime"` // e.g. "2025-10-13T10:00:00"
	Label      string `json:"label"`     // e.g. "10:00 AM"
	BackendRef string `json:"backendRef,omitempty"`
}

// Contact holds the user's booking details. Fields stay empty until extracted
// and validated; partial values persist across turns.
type Contact struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
}

// Complete reports whether all three contact fields are present.
func (c Contact) Complete() bool {
	return c.Name != "" && c.Email != "" && c.Phone != ""
}

// Session is the full per-conversation booking state. The conversation
// controller exclusively owns and mutates it; everything else receives it by
// value per call.
type Session struct {
	SessionID string `json:"sessionId"`
	NextStep  Step   `json:"nextStep"`
	History   []Turn `json:"history"`

	DatePreference string `json:"datePreference,omitempty"` // raw phrase until normalized
	DateNormalized string `json:"dateNormalized,omitempty"` // YYYY-MM-DD, one-way transition
	TimePreference string `json:"timePreference,omitempty"`
	Purpose        string `json:"purpose,omitempty"`

	AvailableSlots []Slot  `json:"availableSlots,omitempty"`
	SelectedSlot   *Slot   `json:"selectedSlot,omitempty"`
	Contact        Contact `json:"contact"`

	BookingConfirmed bool `json:"bookingConfirmed"`

	// Generation increments on every reset. A turn that started against an
	// older generation must discard its result instead of committing it.
	Generation int64 `json:"generation"`

	CreatedAt    time.Time `json:"createdAt"`
	LastActivity time.Time `json:"lastActivity"`
}

// NewSession returns a fresh session positioned at the first step.
func NewSession(id string) *Session {
	now := time.Now()
	return &Session{
		SessionID:    id,
		NextStep:     StepAwaitRequirements,
		CreatedAt:    now,
		LastActivity: now,
	}
}

// ResetBooking clears all booking-specific fields, preserving the session ID
// and history, and bumps the generation so in-flight turns are discarded.
func (s *Session) ResetBooking() {
	s.NextStep = StepAwaitRequirements
	s.DatePreference = ""
	s.DateNormalized = ""
	s.TimePreference = ""
	s.Purpose = ""
	s.AvailableSlots = nil
	s.SelectedSlot = nil
	s.Contact = Contact{}
	s.BookingConfirmed = false
	s.Generation++
	s.LastActivity = time.Now()
}

// AppendTurn records a conversation turn in the session history.
func (s *Session) AppendTurn(role, text string) {
	s.History = append(s.History, Turn{Role: role, Text: text, Timestamp: time.Now()})
	s.LastActivity = time.Now()
}
