package ui

import (
	"fmt"
	"strings"
)

// truncate shortens a string to max runes with ellipsis. Cutting on
// rune boundaries keeps accented titles valid UTF-8.
func truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	if max <= 3 {
		return string(runes[:max])
	}
	return string(runes[:max-3]) + "..."
}

// stars renders an average note as a five-slot rating bar.
func stars(note float64) string {
	if note < 0 {
		note = 0
	}
	if note > 5 {
		note = 5
	}
	full := int(note + 0.5)
	return strings.Repeat("★", full) + strings.Repeat("☆", 5-full)
}

// formatDuration renders preparation minutes for display.
func formatDuration(minutes int) string {
	if minutes <= 0 {
		return "--"
	}
	if minutes < 60 {
		return fmt.Sprintf("%d min", minutes)
	}
	h := minutes / 60
	m := minutes % 60
	if m == 0 {
		return fmt.Sprintf("%dh", h)
	}
	return fmt.Sprintf("%dh%02d", h, m)
}

// formatCost renders a per-person cost estimate.
func formatCost(cost float64) string {
	if cost <= 0 {
		return "--"
	}
	return fmt.Sprintf("%.2f€", cost)
}

// difficultyLabel maps backend difficulty codes to display labels.
func difficultyLabel(code string) string {
	switch strings.ToUpper(strings.TrimSpace(code)) {
	case "FACILE":
		return "Facile"
	case "MOYEN":
		return "Moyen"
	case "DIFFICILE":
		return "Difficile"
	default:
		return code
	}
}

// clamp keeps an index inside [0, n).
func clamp(i, n int) int {
	if n <= 0 {
		return 0
	}
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}
