package conversation

import (
	"context"
	"fmt"
	"strings"

	"duit/pkg/catalog"
	"duit/pkg/duit"
	"duit/pkg/session"
)

// handleManual advances the step-by-step capture flow. Every state
// first honors back-navigation, then consumes the input for its step.
func (e *Engine) handleManual(ctx context.Context, s *session.Session, text string) Reply {
	if isBack(text) {
		return e.back(s)
	}

	switch s.State {
	case session.StateAddMethodSelection:
		switch text {
		case catalog.TokenAddManual:
			s.Draft.Date = duit.FormatDisplayDate(e.now())
			s.SetState(session.StateAddManualName)
			return e.prompt(s)
		case catalog.TokenAddScan:
			s.SetState(session.StateAddScanAwaitingPhoto)
			return e.prompt(s)
		}
		return Reply{Text: useButtonsText}

	case session.StateAddManualName:
		s.Draft.Name = text
		s.SetState(session.StateAddManualType)
		return e.prompt(s)

	case session.StateAddScanEdit:
		if text != "-" {
			s.Draft.Name = text
		}
		s.SetState(session.StateAddManualType)
		return e.prompt(s)

	case session.StateAddManualType:
		switch text {
		case "pemasukan":
			s.Draft.Type = duit.TypeIncome
		case "pengeluaran":
			s.Draft.Type = duit.TypeExpense
		default:
			return Reply{Text: useTypeButtonsText}
		}
		s.SetState(session.StateAddManualSource)
		return e.prompt(s)

	case session.StateAddManualSource:
		if text == catalog.TokenOtherSrc {
			return Reply{Text: "Ketik sumber dana lainnya:", Keyboard: catalog.BackOnly()}
		}
		s.Draft.Source = catalog.ResolveSource(text)
		s.SetState(session.StateAddManualCategory)
		return e.prompt(s)

	case session.StateAddManualCategory:
		if text == catalog.TokenOtherCat {
			s.SetState(session.StateAddManualCategoryOther)
			return e.prompt(s)
		}
		s.Draft.Category = catalog.ResolveCategory(text)
		s.SetState(session.StateAddManualAmount)
		return e.prompt(s)

	case session.StateAddManualCategoryOther:
		s.Draft.Category = text
		s.SetState(session.StateAddManualAmount)
		return e.prompt(s)

	case session.StateAddManualAmount:
		n, ok := duit.ParseAmount(text)
		if !ok {
			return Reply{Text: "Jumlah harus berupa angka positif. Silahkan masukkan kembali:"}
		}
		s.Draft.Amount = duit.GroupAmount(n)
		s.SetState(session.StateAddManualDescription)
		return e.prompt(s)

	case session.StateAddManualDescription:
		if text == "-" {
			s.Draft.Description = ""
		} else {
			s.Draft.Description = text
		}
		s.SetState(session.StateAddManualConfirm)
		return e.prompt(s)

	case session.StateAddManualConfirm:
		switch text {
		case catalog.TokenSave:
			return e.saveManual(ctx, s)
		case catalog.TokenCancel:
			s.Reset()
			return Reply{Text: cancelledText}
		}
		return Reply{Text: useConfirmButtonsText}
	}

	return Reply{Text: unknownText}
}

// saveManual persists the draft. On failure the session stays in the
// confirmation step so the user can retry or cancel.
func (e *Engine) saveManual(ctx context.Context, s *session.Session) Reply {
	if err := e.ledger.Append(ctx, s.Draft); err != nil {
		e.Error(ctx, "save transaction failed", "err", err, "name", s.Draft.Name)
		return Reply{
			Text:     fmt.Sprintf("❌ Terjadi kesalahan saat menyimpan transaksi: %v", err),
			Keyboard: catalog.Confirmation(),
		}
	}
	transactionsSaved.WithLabelValues("manual").Inc()
	s.Reset()
	return Reply{Text: savedManualText}
}

func confirmationText(d duit.Draft) string {
	var b strings.Builder
	b.WriteString("📝 <b>Detail Transaksi:</b>\n\n")
	fmt.Fprintf(&b, "📅 Tanggal: %s\n", d.Date)
	fmt.Fprintf(&b, "🏷️ Nama: %s\n", d.Name)
	fmt.Fprintf(&b, "📊 Jenis: %s\n", d.Type)
	fmt.Fprintf(&b, "💰 Sumber: %s\n", d.Source)
	fmt.Fprintf(&b, "🏷️ Kategori: %s\n", d.Category)
	fmt.Fprintf(&b, "💵 Jumlah: Rp %s\n", d.Amount)
	if d.Description != "" {
		fmt.Fprintf(&b, "📝 Deskripsi: %s\n", d.Description)
	}
	b.WriteString("\nApakah data di atas sudah benar?")
	return b.String()
}
