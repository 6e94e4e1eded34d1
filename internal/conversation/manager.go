package conversation

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/Rrens/birthday-builder/internal/domain"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	msgPrivate    = "Sorry, this bot is private."
	msgIdle       = "Send /start to build a birthday page."
	msgNothing    = "Nothing to cancel. Send /start to build a birthday page."
	msgSaveFailed = "⚠️ Could not save the page. Send /start to try again."
	msgDoneFormat = "🎉 Done!\n\nLink:\n%s\n\n(Send /start to create another)"
)

// Assembler persists a completed session and returns its shareable link
type Assembler interface {
	Assemble(ctx context.Context, session domain.BirthdaySession) (string, error)
}

// Manager owns the single operator's session and serializes every event through it
type Manager struct {
	operatorID int64
	assembler  Assembler
	now        func() time.Time

	mu      sync.Mutex
	session *Session
}

// NewManager creates a manager that only accepts the given operator
func NewManager(operatorID int64, assembler Assembler) *Manager {
	return &Manager{
		operatorID: operatorID,
		assembler:  assembler,
		now:        time.Now,
	}
}

// WithClock replaces the time source used for age calculation
func (m *Manager) WithClock(now func() time.Time) *Manager {
	m.now = now
	return m
}

// Active returns a copy of the in-progress session, if any
func (m *Manager) Active() (Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.session == nil {
		return Session{}, false
	}
	return *m.session, true
}

// Handle processes one event to completion and returns the replies to send
func (m *Manager) Handle(ctx context.Context, ev Event) []Reply {
	m.mu.Lock()
	defer m.mu.Unlock()

	logger := log.With().Int64("sender_id", ev.SenderID).Str("kind", ev.Kind.String()).Logger()

	if ev.Kind == EventCommand && ev.Text == CommandStart {
		if ev.SenderID != m.operatorID {
			logger.Warn().Err(domain.ErrUnauthorizedSender).Msg("Rejected session start")
			return []Reply{textReply(msgPrivate)}
		}
		if m.session != nil {
			logger.Info().Str("session_id", m.session.ID.String()).Msg("Replacing in-progress session")
		}
		s := NewSession(ev.SenderID)
		m.session = &s
		logger.Info().Str("session_id", s.ID.String()).Msg("Session started")
		return StartReplies()
	}

	if ev.SenderID != m.operatorID {
		return nil
	}

	if m.session == nil {
		if ev.Kind == EventCommand && ev.Text == CommandCancel {
			return []Reply{{Text: msgNothing, RemoveKeyboard: true}}
		}
		return []Reply{textReply(msgIdle)}
	}

	current := *m.session
	next, replies, err := Advance(current, ev, m.now())
	logger = logger.With().Str("session_id", current.ID.String()).Str("step", current.Step.String()).Logger()
	if err != nil {
		logger.Debug().Err(err).Msg("Input rejected")
		return replies
	}

	switch next.Step {
	case StepCancelled:
		m.session = nil
		logger.Info().Msg("Session cancelled")
		return replies
	case StepComplete:
		m.session = nil
		return append(replies, m.complete(ctx, logger, next)...)
	}

	m.session = &next
	logger.Debug().Str("next_step", next.Step.String()).Msg("Step advanced")
	return replies
}

func (m *Manager) complete(ctx context.Context, logger zerolog.Logger, s Session) []Reply {
	link, err := m.assembler.Assemble(ctx, s.Data)
	if err != nil {
		if !errors.Is(err, domain.ErrPersistence) {
			err = errors.Join(domain.ErrPersistence, err)
		}
		logger.Error().Err(err).Msg("Page assembly failed")
		return []Reply{{Text: msgSaveFailed, RemoveKeyboard: true}}
	}
	logger.Info().Str("link", link).Msg("Page created")
	return []Reply{{Text: fmt.Sprintf(msgDoneFormat, link), RemoveKeyboard: true}}
}
