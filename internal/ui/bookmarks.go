package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vegapp/vegapp/internal/api"
	"github.com/vegapp/vegapp/internal/session"
	"github.com/vegapp/vegapp/internal/syncer"
)

// bookmarksState holds the favorites screen.
type bookmarksState struct {
	items    []api.RecipeSummary
	selected int
	loading  bool
	tracker  *syncer.Tracker
}

func newBookmarksState() bookmarksState {
	return bookmarksState{tracker: &syncer.Tracker{}}
}

// bookmarksMsg delivers one bookmark listing with its ticket.
type bookmarksMsg struct {
	ticket  uint64
	recipes []api.RecipeSummary
	err     error
}

// fetchBookmarks reloads the favorites list from the backend.
func (m *Model) fetchBookmarks() tea.Cmd {
	token := m.store.Token()
	if token == "" {
		return nil
	}
	m.bookmarksState.loading = true

	ticket := m.bookmarksState.tracker.Begin()
	client := m.api
	ctx := m.ctx
	return func() tea.Msg {
		recipes, err := client.FetchBookmarks(ctx, token)
		return bookmarksMsg{ticket: ticket, recipes: recipes, err: err}
	}
}

func (m Model) handleBookmarks(msg bookmarksMsg) (tea.Model, tea.Cmd) {
	if !m.bookmarksState.tracker.Current(msg.ticket) {
		return m, nil
	}
	m.bookmarksState.loading = false
	if msg.err != nil {
		m.setStatus("favoris: "+msg.err.Error(), true)
		return m, nil
	}
	m.bookmarksState.items = msg.recipes
	m.bookmarksState.selected = clamp(m.bookmarksState.selected, len(msg.recipes))
	return m, nil
}

func (m Model) handleBookmarksKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	st := &m.bookmarksState

	switch msg.String() {
	case "down", "j":
		st.selected = clamp(st.selected+1, len(st.items))
		return m, nil

	case "up", "k":
		st.selected = clamp(st.selected-1, len(st.items))
		return m, nil

	case "enter":
		if len(st.items) == 0 {
			return m, nil
		}
		return m.openDetail(st.items[st.selected].ID, ScreenBookmarks)

	case "f":
		if len(st.items) == 0 {
			return m, nil
		}
		// Removing from favorites takes the row out of the local list
		// immediately; the engine rolls the membership back on failure
		// and the next reload restores the row.
		id := st.items[st.selected].ID
		st.items = append(st.items[:st.selected], st.items[st.selected+1:]...)
		st.selected = clamp(st.selected, len(st.items))
		return m, m.toggleCmd(session.Mutation{Kind: session.ToggleFavoriteRecipe, RecipeID: id})

	case "r":
		return m, m.fetchBookmarks()
	}

	return m, nil
}

func (m Model) renderBookmarks() string {
	styles := m.theme.Styles()
	st := m.bookmarksState

	var b strings.Builder
	b.WriteString(styles.MutedText.Render("mes favoris"))
	if st.loading {
		b.WriteString("  ")
		b.WriteString(m.spinner.View())
	}
	b.WriteString("\n\n")
	b.WriteString(m.renderRecipeList(st.items, st.selected, m.store.Session()))

	hints := []hint{
		{"f", "Retirer"},
		{"Entrée", "Ouvrir"},
		{"r", "Recharger"},
	}
	return m.renderFrame(b.String(), hints)
}
