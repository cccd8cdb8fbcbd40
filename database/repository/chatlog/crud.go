package chatlogRepo

import (
	"context"
	"time"

	"meetbook/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureSession creates the session record if it does not exist yet.
func (r *mongoChatLogRepo) EnsureSession(ctx context.Context, sessionID string) error {
	now := time.Now()
	update := bson.M{
		"$setOnInsert": bson.M{
			"id":               uuid.New().String(),
			"sessionId":        sessionID,
			"bookingCompleted": false,
			"messageCount":     0,
			"createdAt":        now,
		},
		"$set": bson.M{"updatedAt": now},
	}
	opts := options.Update().SetUpsert(true)
	_, err := r.sessions.UpdateOne(ctx, bson.M{"sessionId": sessionID}, update, opts)
	return err
}

// LogMessage appends one chat turn and bumps the session message counter.
func (r *mongoChatLogRepo) LogMessage(ctx context.Context, msg models.ChatMessage) error {
	if msg.ID == "" {
		msg.ID = uuid.New().String()
	}
	msg.CreatedAt = time.Now()

	if _, err := r.messages.InsertOne(ctx, msg); err != nil {
		return err
	}
	_, err := r.sessions.UpdateOne(ctx,
		bson.M{"sessionId": msg.SessionID},
		bson.M{
			"$inc": bson.M{"messageCount": 1},
			"$set": bson.M{"updatedAt": msg.CreatedAt},
		},
	)
	return err
}

// UpdateBookingInfo upserts the booking outcome fields for a session.
func (r *mongoChatLogRepo) UpdateBookingInfo(ctx context.Context, sess models.ChatSession) error {
	update := bson.M{
		"$set": bson.M{
			"bookingCompleted": sess.BookingCompleted,
			"bookingDate":      sess.BookingDate,
			"bookingTime":      sess.BookingTime,
			"userName":         sess.UserName,
			"userEmail":        sess.UserEmail,
			"userPhone":        sess.UserPhone,
			"updatedAt":        time.Now(),
		},
	}
	_, err := r.sessions.UpdateOne(ctx, bson.M{"sessionId": sess.SessionID}, update)
	return err
}

// ListSessions returns sessions ordered by most recent activity.
func (r *mongoChatLogRepo) ListSessions(ctx context.Context, limit, offset int64) ([]models.ChatSession, error) {
	opts := options.Find().
		SetSort(bson.M{"updatedAt": -1}).
		SetLimit(limit).
		SetSkip(offset)
	cursor, err := r.sessions.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var sessions []models.ChatSession
	if err := cursor.All(ctx, &sessions); err != nil {
		return nil, err
	}
	return sessions, nil
}

// GetMessages returns every logged turn for a session in chronological order.
func (r *mongoChatLogRepo) GetMessages(ctx context.Context, sessionID string) ([]models.ChatMessage, error) {
	opts := options.Find().SetSort(bson.M{"createdAt": 1})
	cursor, err := r.messages.Find(ctx, bson.M{"sessionId": sessionID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var msgs []models.ChatMessage
	if err := cursor.All(ctx, &msgs); err != nil {
		return nil, err
	}
	return msgs, nil
}

// GetReport aggregates booking conversion stats across all sessions.
func (r *mongoChatLogRepo) GetReport(ctx context.Context) (*models.BookingReport, error) {
	total, err := r.sessions.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	completed, err := r.sessions.CountDocuments(ctx, bson.M{"bookingCompleted": true})
	if err != nil {
		return nil, err
	}
	messages, err := r.messages.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, err
	}

	report := &models.BookingReport{
		TotalSessions:     total,
		CompletedBookings: completed,
		TotalMessages:     messages,
	}
	if total > 0 {
		report.ConversionRate = float64(completed) / float64(total)
	}
	return report, nil
}
