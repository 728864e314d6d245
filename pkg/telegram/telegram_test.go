package telegram

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"duit/pkg/catalog"
)

func TestCommandOf(t *testing.T) {
	tests := []struct {
		in     string
		want   string
		wantOK bool
	}{
		{"/start", "start", true},
		{"/summary bulan lalu", "summary", true},
		{"/add@duit_bot", "add", true},
		{"halo", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := commandOf(tt.in)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestToInlineKeyboard(t *testing.T) {
	k := catalog.ScanConfirmation()
	markup := toInlineKeyboard(k)

	require.Len(t, markup.InlineKeyboard, 2)
	assert.Equal(t, "✅ Ya, Simpan", markup.InlineKeyboard[0][0].Text)
	assert.Equal(t, catalog.TokenScanYes, markup.InlineKeyboard[0][0].CallbackData)
	assert.Equal(t, catalog.TokenScanCancel, markup.InlineKeyboard[1][0].CallbackData)
}
