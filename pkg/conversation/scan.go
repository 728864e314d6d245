package conversation

import (
	"context"
	"time"

	"duit/pkg/catalog"
	"duit/pkg/duit"
	"duit/pkg/session"
)

// HandlePhoto processes a receipt photo. Outside the scan flow the
// photo is answered with a usage hint.
func (e *Engine) HandlePhoto(ctx context.Context, chatID int64, image []byte) Reply {
	s := e.sessions.GetOrCreate(chatID)
	s.Lock()
	defer s.Unlock()

	if s.State != session.StateAddScanAwaitingPhoto {
		return Reply{Text: photoHintText}
	}

	// Processing is a direct transition: it must not land on the
	// back-navigation stack.
	s.State = session.StateAddScanProcessing

	started := time.Now()
	text, err := e.recognizer.Recognize(ctx, image)
	if err != nil {
		e.Error(ctx, "ocr failed", "err", err)
		receiptScans.WithLabelValues("error").Inc()
		s.State = session.StateAddScanAwaitingPhoto
		return Reply{Text: scanErrorText, Keyboard: catalog.BackOnly()}
	}

	res, err := e.extractor.Extract(ctx, text)
	extractionDuration.Observe(time.Since(started).Seconds())
	if err != nil {
		e.Error(ctx, "extraction failed", "err", err)
		receiptScans.WithLabelValues("error").Inc()
		s.State = session.StateAddScanAwaitingPhoto
		return Reply{Text: scanErrorText, Keyboard: catalog.BackOnly()}
	}
	receiptScans.WithLabelValues("ok").Inc()

	if res.Draft.Date == "" {
		res.Draft.Date = duit.FormatDisplayDate(e.now())
	}
	s.Pending = &res
	s.State = session.StateAddScanConfirm
	return e.prompt(s)
}

// handleScan covers the text-driven states of the scan flow: waiting
// for a photo and confirming the extracted result.
func (e *Engine) handleScan(ctx context.Context, s *session.Session, text string) Reply {
	if s.State == session.StateAddScanAwaitingPhoto {
		if isBack(text) {
			return e.back(s)
		}
		return e.prompt(s)
	}

	if s.Pending == nil {
		s.Reset()
		return Reply{Text: unknownText}
	}

	switch text {
	case catalog.TokenScanYes:
		return e.saveScan(ctx, s)

	case catalog.TokenScanEdit:
		draft := normalizeScanDraft(s.Pending.Draft)
		s.Reset()
		s.Draft = draft
		s.SetState(session.StateAddScanEdit)
		return e.prompt(s)

	case catalog.TokenScanCancel:
		s.Reset()
		return Reply{Text: "❌ Transaksi dibatalkan."}
	}

	return Reply{Text: "Silakan konfirmasi hasil scan:", Keyboard: catalog.ScanConfirmation()}
}

// saveScan persists the pending scan result. On failure the session
// stays in the confirmation step with the result intact.
func (e *Engine) saveScan(ctx context.Context, s *session.Session) Reply {
	draft := normalizeScanDraft(s.Pending.Draft)
	if err := e.ledger.Append(ctx, draft); err != nil {
		e.Error(ctx, "save scanned transaction failed", "err", err, "name", draft.Name)
		return Reply{
			Text:     "❌ Terjadi kesalahan saat menyimpan transaksi: " + err.Error(),
			Keyboard: catalog.ScanConfirmation(),
		}
	}
	transactionsSaved.WithLabelValues("scan").Inc()
	s.Reset()
	return Reply{Text: savedScanText}
}

// normalizeScanDraft cleans extractor output for storage: the amount
// becomes the grouped display form and an ISO date becomes DD/MM/YYYY.
func normalizeScanDraft(d duit.Draft) duit.Draft {
	d.Amount = duit.NormalizeAmount(d.Amount)
	d.Date = normalizeScanDate(d.Date)
	return d
}

func normalizeScanDate(date string) string {
	raw := trimApostrophe(date)
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t.Format("02/01/2006")
	}
	return raw
}

func trimApostrophe(s string) string {
	for len(s) > 0 && s[0] == '\'' {
		s = s[1:]
	}
	return s
}
