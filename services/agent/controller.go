package agent

import (
	"context"
	"errors"
	"time"

	"meetbook/models"
	"meetbook/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrStaleTurn means the session was reset while this turn was in flight; the
// turn's result has been discarded.
var ErrStaleTurn = errors.New("session was reset while the turn was in flight")

// maxAutoSteps bounds the auto-transition loop; no legal path chains more
// steps than this without awaiting user input.
const maxAutoSteps = 6

// turn collects the assistant output of one processed message and streams it
// out as it is produced.
type turn struct {
	sess     *models.Session
	emit     Emitter
	messages []string
}

func (t *turn) say(msg string) {
	t.messages = append(t.messages, msg)
	if t.emit != nil {
		t.emit(models.StreamEvent{
			Chunk:     msg,
			SessionID: t.sess.SessionID,
			Timestamp: time.Now().Format(time.RFC3339),
		})
	}
}

func (t *turn) status(msg string) {
	if t.emit != nil {
		t.emit(models.StreamEvent{
			Status:    msg,
			SessionID: t.sess.SessionID,
			Timestamp: time.Now().Format(time.RFC3339),
		})
	}
}

// CreateSession initializes and persists a fresh session.
func (s *DefaultAgentService) CreateSession(ctx context.Context) (*models.Session, error) {
	sess := models.NewSession(uuid.New().String())
	if err := s.Store.Save(ctx, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

// GetSession returns the current state of a session, or nil when none exists.
func (s *DefaultAgentService) GetSession(ctx context.Context, sessionID string) (*models.Session, error) {
	return s.Store.Get(ctx, sessionID)
}

// HandleTurn processes one inbound user message for a session and returns the
// assistant messages plus the updated state. Turns for the same session are
// strictly serialized; slow collaborator calls never stall other sessions
// because each turn runs on its caller's goroutine.
func (s *DefaultAgentService) HandleTurn(ctx context.Context, sessionID, userText string, emit Emitter) (*TurnResult, error) {
	logger := utils.GetLogger()

	mu := s.lockSession(sessionID)
	mu.Lock()
	defer mu.Unlock()

	sess, err := s.Store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if sess == nil {
		sess = models.NewSession(sessionID)
	}
	loadedGeneration := sess.Generation

	sess.AppendTurn("user", userText)
	t := &turn{sess: sess, emit: emit}

	// Run steps until one awaits user input. The inbound message is consumed
	// by the first step; auto-transitioned steps receive empty input.
	input := userText
	for i := 0; i < maxAutoSteps; i++ {
		await := s.runStep(ctx, t, input)
		input = ""
		if await {
			break
		}
	}

	for _, msg := range t.messages {
		sess.AppendTurn("assistant", msg)
	}

	if err := s.commit(ctx, sess, loadedGeneration); err != nil {
		logger.Warn("Discarding turn result",
			zap.String("sessionId", sessionID), zap.Error(err))
		return nil, err
	}

	return &TurnResult{Messages: t.messages, Session: sess}, nil
}

// runStep dispatches on the session's next step. Every step returns whether
// the conversation now awaits user input; failures become assistant messages,
// never panics past the controller boundary.
func (s *DefaultAgentService) runStep(ctx context.Context, t *turn, input string) bool {
	switch t.sess.NextStep {
	case models.StepAwaitRequirements:
		return s.stepAwaitRequirements(ctx, t, input)
	case models.StepSlotsFetched:
		return s.stepSlotsFetched(ctx, t)
	case models.StepAwaitSlotSelection:
		return s.stepAwaitSlotSelection(t, input)
	case models.StepAwaitContactInfo:
		return s.stepAwaitContactInfo(ctx, t, input)
	case models.StepAwaitConfirmation:
		return s.stepAwaitConfirmation(ctx, t, input)
	case models.StepBooked:
		return s.stepBooked(t)
	default:
		// Unknown step in stored state: recover by restarting the flow.
		utils.GetLogger().Error("Session in unknown step, resetting",
			zap.String("sessionId", t.sess.SessionID), zap.String("step", string(t.sess.NextStep)))
		t.sess.ResetBooking()
		t.say(msgWelcome)
		return true
	}
}

// commit persists the session unless it was reset (generation bumped) while
// the turn was running, in which case the result is discarded.
func (s *DefaultAgentService) commit(ctx context.Context, sess *models.Session, loadedGeneration int64) error {
	stored, err := s.Store.Get(ctx, sess.SessionID)
	if err != nil {
		return err
	}
	if stored != nil && stored.Generation != loadedGeneration {
		return ErrStaleTurn
	}
	return s.Store.Save(ctx, sess)
}

// ResetSession re-initializes a session to the first step, clearing all
// booking-specific fields but preserving the session ID and history. It does
// not wait on an in-flight turn: the generation bump makes that turn's commit
// fail instead. Calling it twice in a row is equivalent to calling it once,
// apart from the generation counter.
func (s *DefaultAgentService) ResetSession(ctx context.Context, sessionID string) (*models.Session, error) {
	sess, err := s.Store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if sess == nil {
		return nil, errors.New("session not found")
	}
	sess.ResetBooking()
	if err := s.Store.Save(ctx, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

// DeleteSession removes the session entirely.
func (s *DefaultAgentService) DeleteSession(ctx context.Context, sessionID string) error {
	s.turnLocks.Delete(sessionID)
	return s.Store.Delete(ctx, sessionID)
}

// SessionCount reports the number of live sessions.
func (s *DefaultAgentService) SessionCount(ctx context.Context) (int64, error) {
	return s.Store.Count(ctx)
}
