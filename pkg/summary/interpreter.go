// Package summary turns free-text report requests into (year, month)
// selections and aggregates ledger rows into a monthly report.
package summary

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"duit/pkg/duit"
)

var yearRe = regexp.MustCompile(`\b(20[2-3][0-9])\b`)

// Resolve interprets a free-text query like "ringkasan agustus 2025"
// or "bulan lalu" into a concrete year and month. Unrecognized text
// resolves to the current month. Relative phrases win over any month
// name or year also present in the query.
func Resolve(query string, now time.Time) (year, month int) {
	q := strings.ToLower(query)

	year = now.Year()
	month = int(now.Month())

	if m := duit.MonthByToken(q); m != 0 {
		month = m
	}
	if m := yearRe.FindStringSubmatch(q); m != nil {
		if y, err := strconv.Atoi(m[1]); err == nil {
			year = y
		}
	}

	switch {
	case strings.Contains(q, "bulan ini") || strings.Contains(q, "bulan sekarang"):
		year = now.Year()
		month = int(now.Month())
	case strings.Contains(q, "bulan lalu") || strings.Contains(q, "bulan kemarin"):
		if now.Month() == time.January {
			year = now.Year() - 1
			month = 12
		} else {
			year = now.Year()
			month = int(now.Month()) - 1
		}
	}
	return year, month
}
