package agent

import (
	"context"
	"sync"

	"meetbook/models"
	"meetbook/services/bookingapi"
	"meetbook/services/extract"
	"meetbook/services/slots"
)

// Emitter receives streaming events (status lines, message chunks) in order
// while a turn is being processed. May be nil for non-streaming callers.
type Emitter func(event models.StreamEvent)

// TurnResult is what one processed turn hands back to the transport layer.
type TurnResult struct {
	Messages []string
	Session  *models.Session
}

// AgentService sequences the booking conversation. One state machine instance
// per session; sessions are independent and processed in parallel, but turns
// within one session are strictly sequential.
type AgentService interface {
	CreateSession(ctx context.Context) (*models.Session, error)
	GetSession(ctx context.Context, sessionID string) (*models.Session, error)
	HandleTurn(ctx context.Context, sessionID, userText string, emit Emitter) (*TurnResult, error)
	ResetSession(ctx context.Context, sessionID string) (*models.Session, error)
	DeleteSession(ctx context.Context, sessionID string) error
	SessionCount(ctx context.Context) (int64, error)
}

// DefaultAgentService implements AgentService.
type DefaultAgentService struct {
	Store     SessionStore
	Extractor extract.Extractor
	Catalog   slots.Catalog
	Executor  *bookingapi.Executor

	// turnLocks serializes turns per session. Resets bypass it on purpose:
	// an in-flight turn detects the generation bump at commit time and
	// discards its result instead of overwriting the reset state.
	turnLocks sync.Map // sessionID -> *sync.Mutex
}

func NewAgentService(store SessionStore, ex extract.Extractor, catalog slots.Catalog, executor *bookingapi.Executor) *DefaultAgentService {
	return &DefaultAgentService{
		Store:     store,
		Extractor: ex,
		Catalog:   catalog,
		Executor:  executor,
	}
}

func (s *DefaultAgentService) lockSession(sessionID string) *sync.Mutex {
	mu, _ := s.turnLocks.LoadOrStore(sessionID, &sync.Mutex{})
	return mu.(*sync.Mutex)
}
