package ui

import (
	"fmt"
	"strings"
	"time"
)

// formatRelative renders a timestamp the way chatroom previews show it:
// minutes, hours or days ago, then a plain date past a week.
func formatRelative(ts, now time.Time) string {
	diff := now.Sub(ts)
	switch {
	case diff < time.Hour:
		return fmt.Sprintf("%dm ago", int(diff.Minutes()))
	case diff < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(diff.Hours()))
	case diff < 7*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(diff.Hours()/24))
	default:
		return ts.Format("1/2/2006")
	}
}

// formatClock renders the time shown beside a message.
func formatClock(ts time.Time) string {
	return ts.Format("15:04")
}

// formatDay renders the date-group header for a message.
func formatDay(ts, now time.Time) string {
	y1, m1, d1 := ts.Date()
	y2, m2, d2 := now.Date()
	if y1 == y2 && m1 == m2 && d1 == d2 {
		return "Today"
	}
	y3, m3, d3 := now.AddDate(0, 0, -1).Date()
	if y1 == y3 && m1 == m3 && d1 == d3 {
		return "Yesterday"
	}
	return ts.Format("1/2/2006")
}

// initials derives the one- or two-letter avatar shown for a display name.
func initials(name string) string {
	if name == "" {
		return "U"
	}
	var b strings.Builder
	for _, word := range strings.Fields(name) {
		b.WriteString(strings.ToUpper(string([]rune(word)[0])))
		if b.Len() >= 2 {
			break
		}
	}
	if b.Len() == 0 {
		return "U"
	}
	return b.String()
}

// formatSize renders a byte count for image attachments.
func formatSize(n int64) string {
	switch {
	case n >= 1<<20:
		return fmt.Sprintf("%.2f MB", float64(n)/(1<<20))
	case n >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(n)/(1<<10))
	default:
		return fmt.Sprintf("%d B", n)
	}
}

// truncate shortens s to at most n runes, ellipsized.
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	if n <= 1 {
		return "…"
	}
	return string(runes[:n-1]) + "…"
}
