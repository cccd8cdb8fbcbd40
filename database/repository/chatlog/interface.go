package chatlogRepo

import (
	"context"

	"meetbook/database"
	"meetbook/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// ChatLogRepository persists chat turns and per-session booking outcomes for
// the admin reporting endpoints.
type ChatLogRepository interface {
	EnsureSession(ctx context.Context, sessionID string) error
	LogMessage(ctx context.Context, msg models.ChatMessage) error
	UpdateBookingInfo(ctx context.Context, sess models.ChatSession) error
	ListSessions(ctx context.Context, limit, offset int64) ([]models.ChatSession, error)
	GetMessages(ctx context.Context, sessionID string) ([]models.ChatMessage, error)
	GetReport(ctx context.Context) (*models.BookingReport, error)
}

type mongoChatLogRepo struct {
	sessions *mongo.Collection
	messages *mongo.Collection
}

// NewMongoChatLogRepo returns a ChatLogRepository backed by MongoDB.
func NewMongoChatLogRepo() ChatLogRepository {
	db := database.MongoClient.Database("meetbook")
	return &mongoChatLogRepo{
		sessions: db.Collection("chat_sessions"),
		messages: db.Collection("chat_messages"),
	}
}
