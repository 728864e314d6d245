package conversation

import (
	"duit/pkg/catalog"
	"duit/pkg/receipt"
	"duit/pkg/session"
)

const (
	startText = "Hai, %s! 👋 Selamat datang di bot pencatat keuanganmu. Siap bantu keuanganmu terkontrol! Ketik /menu untuk mulai ya"

	menuText = "📚 <b>Menu Utama:</b>\n\n" +
		"✨ /add - Yuk, catat pengeluaran atau pemasukan barumu!\n" +
		"📈 /summary - Intip ringkasan keuanganmu\n" +
		"🆘 /help - Butuh panduan lebih lanjut?\n\n" +
		"Pilih salah satu menu di atas untuk mulai berinteraksi! 👇"

	helpText = "🤔 Bingung? Jangan khawatir! Gunakan /menu untuk melihat semua perintah yang tersedia dan bagaimana cara menggunakannya."

	unknownText = "🤷‍♀️ Maaf, perintah yang kamu masukkan tidak aku kenali. Coba ketik /menu untuk melihat daftar perintah yang bisa kamu gunakan ya! 😉"

	processingText = "⏳ Foto sedang diproses, mohon tunggu sebentar ya."

	useButtonsText        = "Silahkan pilih menggunakan tombol yang tersedia."
	useTypeButtonsText    = "Silahkan pilih jenis transaksi menggunakan tombol yang tersedia."
	useConfirmButtonsText = "Silahkan pilih aksi menggunakan tombol yang tersedia."

	savedManualText = "✅ Transaksi berhasil disimpan! Gunakan /add untuk menambahkan transaksi baru atau /menu untuk kembali ke menu utama."
	savedScanText   = "✅ Transaksi berhasil disimpan!"
	cancelledText   = "❌ Transaksi dibatalkan. Gunakan /menu untuk kembali ke menu utama."

	photoHintText = "📷 Untuk scan nota, gunakan /add lalu pilih Scan Nota."
	scanErrorText = "❌ Terjadi kesalahan saat memproses foto. Silakan coba lagi atau gunakan input manual."
)

// prompt renders the message and keyboard for the session's current
// state, so that back-navigation replays a step exactly.
func (e *Engine) prompt(s *session.Session) Reply {
	switch s.State {
	case session.StateAddMethodSelection:
		return Reply{Text: "Pilih metode untuk menambahkan transaksi:", Keyboard: catalog.MethodSelection()}
	case session.StateAddManualName:
		return Reply{Text: "Silahkan masukkan nama transaksi:", Keyboard: catalog.BackOnly()}
	case session.StateAddManualType:
		return Reply{Text: "Pilih jenis transaksi:", Keyboard: catalog.TypeSelection()}
	case session.StateAddManualSource:
		return Reply{Text: "Pilih sumber dana transaksi:", Keyboard: catalog.SourceSelection()}
	case session.StateAddManualCategory:
		return Reply{Text: "Pilih kategori transaksi:", Keyboard: catalog.CategorySelection(s.Draft.Type)}
	case session.StateAddManualCategoryOther:
		return Reply{Text: "Ketik nama kategori transaksi:", Keyboard: catalog.BackOnly()}
	case session.StateAddManualAmount:
		return Reply{Text: "Masukkan jumlah transaksi (dalam angka, contoh: 50000):", Keyboard: catalog.BackOnly()}
	case session.StateAddManualDescription:
		return Reply{Text: "Masukkan deskripsi transaksi (opsional, ketik '-' jika tidak ada):", Keyboard: catalog.BackOnly()}
	case session.StateAddManualConfirm:
		return Reply{Text: confirmationText(s.Draft), Keyboard: catalog.Confirmation()}
	case session.StateAddScanAwaitingPhoto:
		return Reply{Text: "📷 Silakan kirim foto nota/struk untuk diproses.", Keyboard: catalog.BackOnly()}
	case session.StateAddScanConfirm:
		if s.Pending != nil {
			return Reply{Text: receipt.FormatPreview(*s.Pending), Keyboard: catalog.ScanConfirmation()}
		}
	case session.StateAddScanEdit:
		return Reply{
			Text:     "✏️ Edit transaksi. Masukkan nama transaksi (saat ini: " + s.Draft.Name + ", ketik '-' untuk tetap):",
			Keyboard: catalog.BackOnly(),
		}
	case session.StateSummaryAwaitingQuery:
		return Reply{Text: "📊 Apa ringkasan keuangan yang kamu butuhkan?"}
	}
	return Reply{Text: unknownText}
}
