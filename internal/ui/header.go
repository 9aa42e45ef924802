package ui

import (
	"strings"
)

// tabLabel maps screens to tab bar labels.
func tabLabel(s Screen) string {
	switch s {
	case ScreenSearch:
		return "Recettes"
	case ScreenBookmarks:
		return "Favoris"
	case ScreenAdd:
		return "Ajouter"
	case ScreenNews:
		return "Actus"
	case ScreenPlaces:
		return "Commerces"
	default:
		return ""
	}
}

// renderHeader renders the top bar: logo, tabs and the signed-in user.
func (m Model) renderHeader() string {
	styles := m.theme.Styles()

	parts := []string{styles.Logo.Render("vegapp")}

	active := m.screen
	if active == ScreenDetail {
		active = m.detailState.returnTo
	}
	for _, s := range tabOrder {
		label := tabLabel(s)
		if s == active {
			parts = append(parts, styles.Selected.Render(" "+label+" "))
		} else {
			parts = append(parts, styles.MutedText.Render(" "+label+" "))
		}
	}

	if username := m.store.Session().Username; username != "" {
		parts = append(parts, styles.FaintText.Render("· "+username))
	}

	return styles.Header.Width(m.width).Render(strings.Join(parts, " "))
}

// renderFooter renders the command hints and the status line.
func (m Model) renderFooter(hints []hint) string {
	styles := m.theme.Styles()

	segments := make([]string, 0, len(hints)+2)
	for _, h := range hints {
		segments = append(segments, styles.AccentText.Render(h.key)+styles.MutedText.Render(":"+h.desc))
	}
	segments = append(segments, styles.AccentText.Render("T")+styles.FaintText.Render(":"+m.theme.Name))

	bar := styles.Header.Width(m.width).Render(strings.Join(segments, "  "))

	if m.status == "" {
		return bar
	}
	line := styles.SuccessText.Render(m.status)
	if m.statusIsErr {
		line = styles.DangerText.Render(m.status)
	}
	return line + "\n" + bar
}

type hint struct{ key, desc string }

// globalHints are appended to every authenticated screen's footer.
var globalHints = []hint{
	{"Tab", "Écran"},
	{"L", "Déconnexion"},
	{"?", "Aide"},
	{"q", "Quitter"},
}

// renderFrame stacks header, content and footer.
func (m Model) renderFrame(content string, hints []hint) string {
	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(content)
	b.WriteString("\n")
	b.WriteString(m.renderFooter(append(hints, globalHints...)))
	return b.String()
}

// contentHeight is the space left for screen content between the bars.
func (m Model) contentHeight() int {
	h := m.height - 3
	if h < 1 {
		h = 1
	}
	return h
}
