// Package conversation implements the dialogue engine: command
// routing, the manual and scan capture flows and the summary flow.
// The engine is transport-neutral; the telegram package feeds it text,
// callback data and photos and delivers its replies.
package conversation

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/vmkteam/embedlog"

	"duit/pkg/catalog"
	"duit/pkg/ledger"
	"duit/pkg/services"
	"duit/pkg/session"
	"duit/pkg/summary"
)

// Reply is one outgoing message: text plus an optional inline keyboard.
type Reply struct {
	Text     string
	Keyboard *catalog.Keyboard
}

// Engine drives every chat dialogue. One engine serves all chats; the
// per-chat session lock serializes turns within a chat.
type Engine struct {
	embedlog.Logger
	sessions   *session.Store
	ledger     ledger.Ledger
	recognizer services.Recognizer
	extractor  services.Extractor
	aggregator *summary.Aggregator
	now        func() time.Time
}

// NewEngine wires the engine to its collaborators.
func NewEngine(
	sessions *session.Store,
	l ledger.Ledger,
	recognizer services.Recognizer,
	extractor services.Extractor,
	logger embedlog.Logger,
) *Engine {
	return &Engine{
		Logger:     logger,
		sessions:   sessions,
		ledger:     l,
		recognizer: recognizer,
		extractor:  extractor,
		aggregator: summary.NewAggregator(l, logger),
		now:        time.Now,
	}
}

// SetClock overrides the engine clock in tests.
func (e *Engine) SetClock(now func() time.Time) { e.now = now }

// Sessions exposes the session store for eviction and status handlers.
func (e *Engine) Sessions() *session.Store { return e.sessions }

// HandleText processes one text message or callback token for a chat
// and returns the reply to deliver.
func (e *Engine) HandleText(ctx context.Context, chatID int64, userName, text string) Reply {
	s := e.sessions.GetOrCreate(chatID)
	s.Lock()
	defer s.Unlock()

	text = strings.TrimSpace(text)

	switch {
	case strings.HasPrefix(text, "/start"):
		s.Reset()
		return Reply{Text: fmt.Sprintf(startText, userName)}
	case strings.HasPrefix(text, "/menu"):
		s.Reset()
		return Reply{Text: menuText}
	case strings.HasPrefix(text, "/help"):
		return Reply{Text: helpText}
	case strings.HasPrefix(text, "/add"):
		s.Reset()
		s.SetState(session.StateAddMethodSelection)
		return e.prompt(s)
	case strings.HasPrefix(text, "/summary"):
		s.Reset()
		s.SetState(session.StateSummaryAwaitingQuery)
		return e.prompt(s)
	}

	switch s.State {
	case session.StateAddMethodSelection,
		session.StateAddManualName,
		session.StateAddManualType,
		session.StateAddManualSource,
		session.StateAddManualCategory,
		session.StateAddManualCategoryOther,
		session.StateAddManualAmount,
		session.StateAddManualDescription,
		session.StateAddManualConfirm,
		session.StateAddScanEdit:
		return e.handleManual(ctx, s, text)
	case session.StateAddScanAwaitingPhoto, session.StateAddScanConfirm:
		return e.handleScan(ctx, s, text)
	case session.StateAddScanProcessing:
		return Reply{Text: processingText}
	case session.StateSummaryAwaitingQuery:
		return e.handleSummaryQuery(ctx, s, text)
	}

	return Reply{Text: unknownText}
}

// handleSummaryQuery interprets a free-text report request, then
// always returns the session to idle.
func (e *Engine) handleSummaryQuery(ctx context.Context, s *session.Session, text string) Reply {
	year, month := summary.Resolve(text, e.now())
	s.Reset()

	summaryRequests.Inc()
	sum, err := e.aggregator.Monthly(ctx, year, month)
	switch {
	case errors.Is(err, summary.ErrNoSheets):
		return Reply{Text: summary.NoSheetsMessage(year)}
	case err != nil:
		e.Error(ctx, "summary failed", "err", err, "year", year, "month", month)
		return Reply{Text: fmt.Sprintf("❌ Maaf, terjadi kesalahan saat membuat ringkasan: %v", err)}
	}
	return Reply{Text: summary.Render(sum)}
}

// isBack matches both the callback token and the literal button label,
// which users sometimes type.
func isBack(text string) bool {
	return text == catalog.TokenBack || strings.EqualFold(text, "« kembali")
}

// back pops the navigation stack and re-renders the previous step. At
// the bottom of the stack the session leaves the flow entirely.
func (e *Engine) back(s *session.Session) Reply {
	if _, ok := s.Back(); !ok || s.State == session.StateIdle {
		s.Reset()
		return Reply{Text: menuText}
	}
	return e.prompt(s)
}
