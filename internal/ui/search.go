package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vegapp/vegapp/internal/api"
	"github.com/vegapp/vegapp/internal/session"
	"github.com/vegapp/vegapp/internal/syncer"
)

// searchState holds the recipe search screen: keyword input, regime and
// category filter chips, and the result list.
type searchState struct {
	input      textinput.Model
	filterIdx  int
	categories map[string]bool
	results    []api.RecipeSummary
	selected   int
	loading    bool
	tracker    *syncer.Tracker
}

func newSearchState() searchState {
	input := textinput.New()
	input.Placeholder = "mot-clé"
	input.CharLimit = 64

	return searchState{
		input:      input,
		categories: make(map[string]bool),
		tracker:    &syncer.Tracker{},
	}
}

// filterChips lists the regime chips followed by the category chips.
func filterChips() []string {
	chips := make([]string, 0, len(session.Regimes)+len(api.CategoryLabels))
	chips = append(chips, session.Regimes...)
	chips = append(chips, api.CategoryLabels...)
	return chips
}

// searchResultsMsg delivers one search response with its ticket.
type searchResultsMsg struct {
	ticket  uint64
	recipes []api.RecipeSummary
	err     error
}

// runSearch fires a recipe search from the current keyword, the session's
// regimes and the selected categories. Each call supersedes the previous
// one: a response is dropped unless its ticket is still the newest.
func (m *Model) runSearch() tea.Cmd {
	st := &m.searchState
	st.loading = true

	query := api.Query{Keyword: st.input.Value()}
	query.Regimes = m.store.Session().Regimes
	for _, label := range api.CategoryLabels {
		if st.categories[label] {
			if code := api.CategoryCode(label); code != "" {
				query.Categories = append(query.Categories, code)
			}
		}
	}

	ticket := st.tracker.Begin()
	client := m.api
	ctx := m.ctx
	return func() tea.Msg {
		recipes, err := client.SearchRecipes(ctx, query)
		return searchResultsMsg{ticket: ticket, recipes: recipes, err: err}
	}
}

func (m Model) handleSearchResults(msg searchResultsMsg) (tea.Model, tea.Cmd) {
	if !m.searchState.tracker.Current(msg.ticket) {
		// A newer query is in flight; this response no longer matters.
		return m, nil
	}
	m.searchState.loading = false
	if msg.err != nil {
		m.setStatus("recherche: "+msg.err.Error(), true)
		return m, nil
	}
	m.searchState.results = msg.recipes
	if m.searchState.results == nil {
		m.searchState.results = []api.RecipeSummary{}
	}
	m.searchState.selected = clamp(m.searchState.selected, len(m.searchState.results))
	return m, nil
}

func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	st := &m.searchState

	if st.input.Focused() {
		switch msg.String() {
		case "enter":
			st.input.Blur()
			return m, m.runSearch()
		case "esc":
			st.input.Blur()
			return m, nil
		}
		var cmd tea.Cmd
		st.input, cmd = st.input.Update(msg)
		return m, cmd
	}

	switch msg.String() {
	case "/":
		st.input.Focus()
		return m, textinput.Blink

	case "left", "h":
		st.filterIdx = clamp(st.filterIdx-1, len(filterChips()))
		return m, nil

	case "right", "l":
		st.filterIdx = clamp(st.filterIdx+1, len(filterChips()))
		return m, nil

	case " ":
		return m.toggleSearchChip()

	case "down", "j":
		st.selected = clamp(st.selected+1, len(st.results))
		return m, nil

	case "up", "k":
		st.selected = clamp(st.selected-1, len(st.results))
		return m, nil

	case "enter":
		if len(st.results) == 0 {
			return m, nil
		}
		return m.openDetail(st.results[st.selected].ID, ScreenSearch)

	case "f":
		if len(st.results) == 0 {
			return m, nil
		}
		id := st.results[st.selected].ID
		return m, m.toggleCmd(session.Mutation{Kind: session.ToggleFavoriteRecipe, RecipeID: id})
	}

	return m, nil
}

// toggleSearchChip flips the chip under the cursor. Regime chips go
// through the sync engine; category chips are a local filter. Both
// re-run the search.
func (m Model) toggleSearchChip() (tea.Model, tea.Cmd) {
	st := &m.searchState
	chips := filterChips()
	if st.filterIdx >= len(chips) {
		return m, nil
	}

	if st.filterIdx < len(session.Regimes) {
		regime := chips[st.filterIdx]
		toggle := m.toggleCmd(session.Mutation{Kind: session.ToggleRegime, Regime: regime})
		return m, tea.Batch(toggle, m.runSearch())
	}

	label := chips[st.filterIdx]
	st.categories[label] = !st.categories[label]
	return m, m.runSearch()
}

func (m Model) renderSearch() string {
	styles := m.theme.Styles()
	st := m.searchState
	current := m.store.Session()

	var b strings.Builder

	b.WriteString(styles.MutedText.Render("recherche "))
	b.WriteString(st.input.View())
	if st.loading {
		b.WriteString("  ")
		b.WriteString(m.spinner.View())
	}
	b.WriteString("\n")

	// Filter chips: regimes first, then categories.
	chips := filterChips()
	rendered := make([]string, 0, len(chips))
	for i, label := range chips {
		on := false
		if i < len(session.Regimes) {
			on = current.HasRegime(label)
		} else {
			on = st.categories[label]
		}

		style := styles.TagOff
		if on {
			style = styles.TagOn
		}
		chip := style.Render(label)
		if i == st.filterIdx && !st.input.Focused() {
			chip = styles.AccentText.Render("[") + chip + styles.AccentText.Render("]")
		}
		rendered = append(rendered, chip)
	}
	b.WriteString(strings.Join(rendered, " "))
	b.WriteString("\n\n")

	b.WriteString(m.renderRecipeList(st.results, st.selected, current))

	hints := []hint{
		{"/", "Mot-clé"},
		{"Espace", "Filtre"},
		{"f", "Favori"},
		{"Entrée", "Ouvrir"},
	}
	return m.renderFrame(b.String(), hints)
}

// renderRecipeList renders recipe summaries with a favorite marker.
func (m Model) renderRecipeList(items []api.RecipeSummary, selected int, current session.Session) string {
	styles := m.theme.Styles()

	if len(items) == 0 {
		return styles.FaintText.Render("aucune recette")
	}

	rows := m.contentHeight() - 4
	if rows < 1 {
		rows = 1
	}
	start := 0
	if selected >= rows {
		start = selected - rows + 1
	}

	var b strings.Builder
	for i := start; i < len(items) && i < start+rows; i++ {
		r := items[i]

		marker := "  "
		if current.HasFavoriteRecipe(r.ID) {
			marker = styles.DangerText.Render("♥ ")
		}

		line := fmt.Sprintf("%s %s  %s  %s  %s",
			stars(r.AverageNote),
			truncate(r.Title, 40),
			difficultyLabel(r.Difficulty),
			formatDuration(r.Duration),
			formatCost(r.Cost),
		)
		if i == selected {
			b.WriteString(marker + styles.Selected.Render(line))
		} else {
			b.WriteString(marker + styles.Text.Render(line))
		}
		b.WriteString("\n")
	}
	return b.String()
}
