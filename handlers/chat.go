package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	chatlogRepo "meetbook/database/repository/chatlog"
	"meetbook/models"
	"meetbook/services/agent"
	"meetbook/utils"

	"go.uber.org/zap"
)

// Wired from main during startup.
var (
	Agent    agent.AgentService
	ChatLogs chatlogRepo.ChatLogRepository
)

// Chat handles one non-streaming conversation turn.
func Chat(c *gin.Context) {
	var req models.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request", err.Error())
		return
	}

	sessionID := req.SessionID
	if sessionID == "" {
		sessionID = uuid.New().String()
	}

	result, err := Agent.HandleTurn(c.Request.Context(), sessionID, req.Message, nil)
	if err != nil {
		if errors.Is(err, agent.ErrStaleTurn) {
			utils.JSONError(c, http.StatusConflict, "session was reset", "the message was discarded, please resend it")
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "failed to process message", err.Error())
		return
	}

	logTurn(sessionID, req.Message, result)

	c.JSON(http.StatusOK, models.ChatResponse{
		Message:   strings.Join(result.Messages, "\n\n"),
		SessionID: sessionID,
		Timestamp: time.Now().Format(time.RFC3339),
	})
}

// ChatStream handles one conversation turn over SSE, pushing status lines and
// reply chunks as the turn progresses and closing with a done event.
func ChatStream(c *gin.Context) {
	var req models.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request", err.Error())
		return
	}

	sessionID := req.SessionID
	if sessionID == "" {
		sessionID = uuid.New().String()
	}

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")
	c.Writer.Header().Set("X-Accel-Buffering", "no")
	c.Writer.Flush()

	emit := func(event models.StreamEvent) {
		writeSSE(c, event)
	}

	result, err := Agent.HandleTurn(c.Request.Context(), sessionID, req.Message, emit)
	if err != nil {
		msg := "failed to process message"
		if errors.Is(err, agent.ErrStaleTurn) {
			msg = "session was reset, message discarded"
		}
		writeSSE(c, models.StreamEvent{
			Error:     msg,
			SessionID: sessionID,
			Timestamp: time.Now().Format(time.RFC3339),
		})
		return
	}

	logTurn(sessionID, req.Message, result)

	writeSSE(c, models.StreamEvent{
		Done:      true,
		SessionID: sessionID,
		Timestamp: time.Now().Format(time.RFC3339),
	})
}

func writeSSE(c *gin.Context, event models.StreamEvent) {
	payload, err := json.Marshal(event)
	if err != nil {
		return
	}
	c.Writer.WriteString("data: " + string(payload) + "\n\n")
	c.Writer.Flush()
}

// CreateSession starts a fresh conversation.
func CreateSession(c *gin.Context) {
	sess, err := Agent.CreateSession(c.Request.Context())
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to create session", err.Error())
		return
	}
	if ChatLogs != nil {
		if err := ChatLogs.EnsureSession(c.Request.Context(), sess.SessionID); err != nil {
			utils.GetLogger().Warn("Failed to record session", zap.Error(err))
		}
	}
	c.JSON(http.StatusCreated, models.SessionResponse{
		SessionID: sess.SessionID,
		Message:   agent.WelcomeMessage,
	})
}

// GetSession returns the current state of a session.
func GetSession(c *gin.Context) {
	sess, err := Agent.GetSession(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to load session", err.Error())
		return
	}
	if sess == nil {
		utils.JSONError(c, http.StatusNotFound, "session not found", "")
		return
	}
	c.JSON(http.StatusOK, sess)
}

// ResetSession returns a session to the start of the booking flow. The call
// takes effect immediately, even when a turn is in flight.
func ResetSession(c *gin.Context) {
	sess, err := Agent.ResetSession(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.JSONError(c, http.StatusNotFound, "session not found", err.Error())
		return
	}
	c.JSON(http.StatusOK, models.SessionResponse{
		SessionID: sess.SessionID,
		Message:   agent.WelcomeMessage,
	})
}

// DeleteSession removes a session entirely.
func DeleteSession(c *gin.Context) {
	if err := Agent.DeleteSession(c.Request.Context(), c.Param("id")); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to delete session", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

// Health reports liveness.
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "time": time.Now().Format(time.RFC3339)})
}

// Stats reports how many sessions are live.
func Stats(c *gin.Context) {
	count, err := Agent.SessionCount(c.Request.Context())
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to count sessions", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"activeSessions": count})
}

// logTurn records the user message and assistant replies, plus the booking
// outcome once confirmed. Logging is best-effort and never fails the turn.
func logTurn(sessionID, userText string, result *agent.TurnResult) {
	if ChatLogs == nil {
		return
	}
	logger := utils.GetLogger()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := ChatLogs.EnsureSession(ctx, sessionID); err != nil {
		logger.Warn("Failed to record session", zap.Error(err))
		return
	}

	step := ""
	if result.Session != nil {
		step = string(result.Session.NextStep)
	}
	entries := []models.ChatMessage{{
		ID:        uuid.New().String(),
		SessionID: sessionID,
		Role:      "user",
		Content:   userText,
		Step:      step,
		CreatedAt: time.Now(),
	}}
	for _, msg := range result.Messages {
		entries = append(entries, models.ChatMessage{
			ID:        uuid.New().String(),
			SessionID: sessionID,
			Role:      "assistant",
			Content:   msg,
			Step:      step,
			CreatedAt: time.Now(),
		})
	}
	for _, entry := range entries {
		if err := ChatLogs.LogMessage(ctx, entry); err != nil {
			logger.Warn("Failed to log chat message", zap.Error(err))
		}
	}

	if result.Session != nil && result.Session.BookingConfirmed {
		slotLabel := ""
		if result.Session.SelectedSlot != nil {
			slotLabel = result.Session.SelectedSlot.Label
		}
		err := ChatLogs.UpdateBookingInfo(ctx, models.ChatSession{
			SessionID:        sessionID,
			BookingCompleted: true,
			BookingDate:      result.Session.DateNormalized,
			BookingTime:      slotLabel,
			UserName:         result.Session.Contact.Name,
			UserEmail:        result.Session.Contact.Email,
			UserPhone:        result.Session.Contact.Phone,
		})
		if err != nil {
			logger.Warn("Failed to record booking info", zap.Error(err))
		}
	}
}
