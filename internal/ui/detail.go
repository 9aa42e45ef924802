package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vegapp/vegapp/internal/api"
	"github.com/vegapp/vegapp/internal/session"
)

// detailState holds the opened recipe.
type detailState struct {
	id       string
	recipe   *api.Recipe
	viewport viewport.Model
	loading  bool
	returnTo Screen
}

func (m *Model) initDetailViewport() {
	m.detailState.viewport = viewport.New(m.width, m.contentHeight())
}

// recipeMsg delivers one recipe detail response.
type recipeMsg struct {
	id     string
	recipe *api.Recipe
	err    error
}

// voteDoneMsg reports the outcome of a rating submission.
type voteDoneMsg struct {
	note int
	err  error
}

// openDetail switches to the detail screen and fetches the recipe.
func (m Model) openDetail(id string, returnTo Screen) (tea.Model, tea.Cmd) {
	m.screen = ScreenDetail
	m.detailState.id = id
	m.detailState.recipe = nil
	m.detailState.loading = true
	m.detailState.returnTo = returnTo
	m.detailState.viewport.GotoTop()

	client := m.api
	ctx := m.ctx
	return m, func() tea.Msg {
		recipe, err := client.FetchRecipe(ctx, id)
		return recipeMsg{id: id, recipe: recipe, err: err}
	}
}

func (m Model) handleRecipe(msg recipeMsg) (tea.Model, tea.Cmd) {
	if msg.id != m.detailState.id {
		// Detail was reopened for another recipe in the meantime.
		return m, nil
	}
	m.detailState.loading = false
	if msg.err != nil {
		m.setStatus("recette: "+msg.err.Error(), true)
		return m, nil
	}
	m.detailState.recipe = msg.recipe
	m.detailState.viewport.SetContent(m.renderRecipeBody(msg.recipe))
	return m, nil
}

func (m Model) handleVoteDone(msg voteDoneMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.setStatus("vote: "+msg.err.Error(), true)
		return m, nil
	}
	m.setStatus(fmt.Sprintf("note %d/5 enregistrée", msg.note), false)
	return m, nil
}

func (m Model) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	st := &m.detailState

	switch msg.String() {
	case "esc", "backspace":
		m.screen = st.returnTo
		return m, nil

	case "f":
		if st.id == "" {
			return m, nil
		}
		return m, m.toggleCmd(session.Mutation{Kind: session.ToggleFavoriteRecipe, RecipeID: st.id})

	case "1", "2", "3", "4", "5":
		note := int(msg.String()[0] - '0')
		client := m.api
		ctx := m.ctx
		id := st.id
		return m, func() tea.Msg {
			return voteDoneMsg{note: note, err: client.VoteRecipe(ctx, id, note)}
		}
	}

	var cmd tea.Cmd
	st.viewport, cmd = st.viewport.Update(msg)
	return m, cmd
}

func (m Model) renderDetail() string {
	styles := m.theme.Styles()
	st := m.detailState

	var b strings.Builder
	if st.loading {
		b.WriteString(m.spinner.View())
		b.WriteString(styles.MutedText.Render(" chargement..."))
	} else if st.recipe == nil {
		b.WriteString(styles.FaintText.Render("recette indisponible"))
	} else {
		b.WriteString(st.viewport.View())
	}

	hints := []hint{
		{"f", "Favori"},
		{"1-5", "Noter"},
		{"j/k", "Défiler"},
		{"Échap", "Retour"},
	}
	return m.renderFrame(b.String(), hints)
}

// renderRecipeBody formats the full recipe for the detail viewport.
func (m Model) renderRecipeBody(r *api.Recipe) string {
	styles := m.theme.Styles()

	var b strings.Builder
	title := r.Title
	if m.store.Session().HasFavoriteRecipe(r.ID) {
		title += " ♥"
	}
	b.WriteString(styles.AccentText.Bold(true).Render(title))
	b.WriteString("\n")
	b.WriteString(styles.MutedText.Render(fmt.Sprintf("%s  %s  %s  %s",
		stars(r.AverageNote),
		difficultyLabel(r.Difficulty),
		formatDuration(r.Duration),
		formatCost(r.Cost),
	)))
	b.WriteString("\n")
	if len(r.Regimes) > 0 {
		b.WriteString(styles.SuccessText.Render(strings.Join(r.Regimes, " · ")))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if r.Description != "" {
		b.WriteString(styles.Text.Render(r.Description))
		b.WriteString("\n\n")
	}

	b.WriteString(styles.AccentText.Render("Ingrédients"))
	b.WriteString("\n")
	for _, ing := range r.Ingredients {
		line := "  - " + ing.Name
		if ing.Quantity > 0 {
			line = fmt.Sprintf("  - %g %s %s", ing.Quantity, ing.Unit, ing.Name)
		}
		b.WriteString(styles.Text.Render(line))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	b.WriteString(styles.AccentText.Render("Préparation"))
	b.WriteString("\n")
	for i, step := range r.Steps {
		b.WriteString(styles.Text.Render(fmt.Sprintf("  %d. %s", i+1, step)))
		b.WriteString("\n")
	}

	return b.String()
}
