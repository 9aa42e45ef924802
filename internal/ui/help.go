package ui

import "strings"

// renderHelp renders the help overlay. Any key closes it.
func (m Model) renderHelp() string {
	styles := m.theme.Styles()

	section := func(title string, rows [][2]string) string {
		var b strings.Builder
		b.WriteString(styles.AccentText.Render(title))
		b.WriteString("\n")
		for _, r := range rows {
			b.WriteString("  ")
			b.WriteString(styles.Text.Render(padRight(r[0], 12)))
			b.WriteString(styles.MutedText.Render(r[1]))
			b.WriteString("\n")
		}
		return b.String()
	}

	var b strings.Builder
	b.WriteString(styles.Logo.Render("vegapp"))
	b.WriteString(styles.MutedText.Render("  raccourcis clavier"))
	b.WriteString("\n\n")

	b.WriteString(section("Navigation", [][2]string{
		{"Tab", "écran suivant"},
		{"s b a n p", "Recettes / Favoris / Ajouter / Actus / Commerces"},
		{"j k", "se déplacer dans une liste"},
		{"Entrée", "ouvrir la sélection"},
		{"Échap", "retour"},
	}))
	b.WriteString("\n")
	b.WriteString(section("Recettes", [][2]string{
		{"/", "rechercher par mot-clé"},
		{"Espace", "activer un filtre régime ou catégorie"},
		{"f", "ajouter ou retirer des favoris"},
		{"1-5", "noter la recette ouverte"},
	}))
	b.WriteString("\n")
	b.WriteString(section("Général", [][2]string{
		{"T", "changer de thème"},
		{"L", "se déconnecter"},
		{"q", "quitter"},
	}))
	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render("appuyez sur une touche pour fermer"))

	return m.theme.Styles().Panel.Render(b.String())
}

func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}
