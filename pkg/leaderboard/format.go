// Package leaderboard turns aggregated rows into the text shown in each leaderboard section.
package leaderboard

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Entry is one ranked line, already resolved to a display name.
type Entry struct {
	Rank       int
	PlayerUID  string
	PlayerName string
	Value      int64
}

var printer = message.NewPrinter(language.English)

// FormatInteger groups digits in threes, e.g. 1234567 -> "1,234,567".
func FormatInteger(n int64) string {
	return printer.Sprintf("%d", n)
}

// FormatDuration renders seconds as HH:MM:SS. Hours are not capped at two digits.
func FormatDuration(seconds int64) string {
	if seconds < 0 {
		seconds = 0
	}
	h := seconds / 3600
	m := (seconds % 3600) / 60
	s := seconds % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}

func FormatLine(rank int, label, value, playerName string) string {
	return fmt.Sprintf("**#%d** - %s: %s - %s", rank, label, value, playerName)
}

// FormatSection joins one line per entry. Ranks follow slice order, starting at 1.
// An empty slice yields "", which renderers replace with their "No Data" text.
func FormatSection(entries []Entry, label string, isTime bool) string {
	if len(entries) == 0 {
		return ""
	}
	lines := make([]string, 0, len(entries))
	for i, e := range entries {
		value := FormatInteger(e.Value)
		if isTime {
			value = FormatDuration(e.Value)
		}
		lines = append(lines, FormatLine(i+1, label, value, e.PlayerName))
	}
	return strings.Join(lines, "\n")
}

// FormatKilometers renders a distance in meters as kilometers with two decimals.
func FormatKilometers(meters float64) string {
	return fmt.Sprintf("%.2f", meters/1000)
}
