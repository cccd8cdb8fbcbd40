package models

import "time"

// ChatSession is the persisted analytics record for one conversation.
type ChatSession struct {
	ID               string    `bson:"id" json:"id"`
	SessionID        string    `bson:"sessionId" json:"sessionId"`
	BookingCompleted bool      `bson:"bookingCompleted" json:"bookingCompleted"`
	BookingDate      string    `bson:"bookingDate,omitempty" json:"bookingDate,omitempty"`
	BookingTime      string    `bson:"bookingTime,omitempty" json:"bookingTime,omitempty"`
	UserName         string    `bson:"userName,omitempty" json:"userName,omitempty"`
	UserEmail        string    `bson:"userEmail,omitempty" json:"userEmail,omitempty"`
	UserPhone        string    `bson:"userPhone,omitempty" json:"userPhone,omitempty"`
	MessageCount     int       `bson:"messageCount" json:"messageCount"`
	CreatedAt        time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt        time.Time `bson:"updatedAt" json:"updatedAt"`
}

// ChatMessage is one persisted chat turn.
type ChatMessage struct {
	ID        string    `bson:"id" json:"id"`
	SessionID string    `bson:"sessionId" json:"sessionId"`
	Role      string    `bson:"role" json:"role"`
	Content   string    `bson:"content" json:"content"`
	Step      string    `bson:"step,omitempty" json:"step,omitempty"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}

// BookingReport aggregates conversion stats for the admin endpoint.
type BookingReport struct {
	TotalSessions     int64   `json:"totalSessions"`
	CompletedBookings int64   `json:"completedBookings"`
	ConversionRate    float64 `json:"conversionRate"`
	TotalMessages     int64   `json:"totalMessages"`
}
