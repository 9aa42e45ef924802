package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vegapp/vegapp/internal/agencebio"
	"github.com/vegapp/vegapp/internal/session"
	"github.com/vegapp/vegapp/internal/syncer"
)

// Panes of the shop locator screen.
const (
	paneMatches = iota
	paneSelection
	paneOperators
	paneCount
)

// placesState holds the shop locator: an ingredient search feeding a
// selection list, and the organic businesses found for that selection.
type placesState struct {
	query   textinput.Model
	pane    int
	matches []session.Ingredient
	// Cursor per pane: matches, selection, operators.
	matchIdx  int
	selIdx    int
	opIdx     int
	operators []agencebio.Operator

	loadingMatches   bool
	loadingOperators bool
	searchedOps      bool

	ingredientTracker *syncer.Tracker
	operatorTracker   *syncer.Tracker
}

func newPlacesState() placesState {
	query := textinput.New()
	query.Placeholder = "ingrédient (ex: tomate)"
	query.CharLimit = 48

	return placesState{
		query:             query,
		ingredientTracker: &syncer.Tracker{},
		operatorTracker:   &syncer.Tracker{},
	}
}

// ingredientsMsg delivers a CPF product lookup with its ticket.
type ingredientsMsg struct {
	ticket  uint64
	matches []session.Ingredient
	err     error
}

// operatorsMsg delivers an operator search with its ticket.
type operatorsMsg struct {
	ticket    uint64
	operators []agencebio.Operator
	err       error
}

// searchIngredients resolves the typed name into CPF product entries.
func (m *Model) searchIngredients() tea.Cmd {
	st := &m.placesState
	name := strings.TrimSpace(st.query.Value())
	if name == "" {
		return nil
	}
	st.loadingMatches = true

	ticket := st.ingredientTracker.Begin()
	client := m.api
	ctx := m.ctx
	return func() tea.Msg {
		matches, err := client.SearchIngredients(ctx, name)
		return ingredientsMsg{ticket: ticket, matches: matches, err: err}
	}
}

// searchOperators queries the open-data directory for the current
// ingredient selection around the configured home coordinates.
func (m *Model) searchOperators() tea.Cmd {
	st := &m.placesState

	selection := m.store.Session().Ingredients
	if len(selection) == 0 {
		m.setStatus("sélectionnez au moins un ingrédient", true)
		return nil
	}
	codes := make([]string, 0, len(selection))
	for _, ing := range selection {
		codes = append(codes, ing.ID)
	}

	st.loadingOperators = true
	st.searchedOps = true

	ticket := st.operatorTracker.Begin()
	locator := m.locator
	ctx := m.ctx
	query := agencebio.Query{ProductCodes: codes, Lat: m.cfg.Lat, Lng: m.cfg.Lng}
	return func() tea.Msg {
		operators, err := locator.SearchOperators(ctx, query)
		return operatorsMsg{ticket: ticket, operators: operators, err: err}
	}
}

func (m Model) handleIngredients(msg ingredientsMsg) (tea.Model, tea.Cmd) {
	if !m.placesState.ingredientTracker.Current(msg.ticket) {
		return m, nil
	}
	m.placesState.loadingMatches = false
	if msg.err != nil {
		m.setStatus("ingrédients: "+msg.err.Error(), true)
		return m, nil
	}
	m.placesState.matches = msg.matches
	m.placesState.matchIdx = clamp(m.placesState.matchIdx, len(msg.matches))
	return m, nil
}

func (m Model) handleOperators(msg operatorsMsg) (tea.Model, tea.Cmd) {
	if !m.placesState.operatorTracker.Current(msg.ticket) {
		return m, nil
	}
	m.placesState.loadingOperators = false
	if msg.err != nil {
		m.setStatus("commerces: "+msg.err.Error(), true)
		return m, nil
	}
	m.placesState.operators = msg.operators
	m.placesState.opIdx = clamp(m.placesState.opIdx, len(msg.operators))
	return m, nil
}

func (m Model) handlePlacesKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	st := &m.placesState

	if st.query.Focused() {
		switch msg.String() {
		case "enter":
			st.query.Blur()
			st.pane = paneMatches
			return m, m.searchIngredients()
		case "esc":
			st.query.Blur()
			return m, nil
		}
		var cmd tea.Cmd
		st.query, cmd = st.query.Update(msg)
		return m, cmd
	}

	switch msg.String() {
	case "/":
		st.query.Focus()
		return m, textinput.Blink

	case "left", "h":
		st.pane = (st.pane + paneCount - 1) % paneCount
		return m, nil

	case "right", "l":
		st.pane = (st.pane + 1) % paneCount
		return m, nil

	case "down", "j":
		st.moveCursor(1, len(st.matches), len(m.store.Session().Ingredients), len(st.operators))
		return m, nil

	case "up", "k":
		st.moveCursor(-1, len(st.matches), len(m.store.Session().Ingredients), len(st.operators))
		return m, nil

	case " ", "enter":
		return m.togglePlacesSelection()

	case "o":
		return m, m.searchOperators()

	case "f":
		if st.pane != paneOperators || len(st.operators) == 0 {
			return m, nil
		}
		shop := st.operators[st.opIdx].Shop()
		return m, m.toggleCmd(session.Mutation{Kind: session.ToggleFavoriteShop, Shop: shop})
	}

	return m, nil
}

func (st *placesState) moveCursor(delta, matches, selection, operators int) {
	switch st.pane {
	case paneMatches:
		st.matchIdx = clamp(st.matchIdx+delta, matches)
	case paneSelection:
		st.selIdx = clamp(st.selIdx+delta, selection)
	case paneOperators:
		st.opIdx = clamp(st.opIdx+delta, operators)
	}
}

// togglePlacesSelection adds a matched ingredient to the selection, or
// removes the one under the cursor.
func (m Model) togglePlacesSelection() (tea.Model, tea.Cmd) {
	st := &m.placesState

	switch st.pane {
	case paneMatches:
		if len(st.matches) == 0 {
			return m, nil
		}
		ing := st.matches[st.matchIdx]
		return m, m.toggleCmd(session.Mutation{Kind: session.AppendIngredient, Ingredient: ing})

	case paneSelection:
		selection := m.store.Session().Ingredients
		if len(selection) == 0 {
			return m, nil
		}
		ing := selection[clamp(st.selIdx, len(selection))]
		st.selIdx = clamp(st.selIdx, len(selection)-1)
		return m, m.toggleCmd(session.Mutation{Kind: session.RemoveIngredient, Ingredient: ing})

	case paneOperators:
		if len(st.operators) == 0 {
			return m, nil
		}
		shop := st.operators[st.opIdx].Shop()
		return m, m.toggleCmd(session.Mutation{Kind: session.ToggleFavoriteShop, Shop: shop})
	}
	return m, nil
}

func (m Model) renderPlaces() string {
	styles := m.theme.Styles()
	st := m.placesState
	current := m.store.Session()

	var b strings.Builder
	b.WriteString(styles.MutedText.Render("ingrédient "))
	b.WriteString(st.query.View())
	if st.loadingMatches || st.loadingOperators {
		b.WriteString("  ")
		b.WriteString(m.spinner.View())
	}
	b.WriteString("\n\n")

	paneTitle := func(pane int, title string) string {
		if pane == st.pane && !st.query.Focused() {
			return styles.AccentText.Render("▸ " + title)
		}
		return styles.MutedText.Render("  " + title)
	}

	// Matches pane
	b.WriteString(paneTitle(paneMatches, "Produits"))
	b.WriteString("\n")
	if len(st.matches) == 0 {
		b.WriteString(styles.FaintText.Render("    aucun produit"))
		b.WriteString("\n")
	}
	for i, ing := range st.matches {
		marker := "    "
		if current.HasIngredient(ing.ID) {
			marker = "  " + styles.SuccessText.Render("✓") + " "
		}
		line := fmt.Sprintf("%s (%s)", ing.Title, ing.ID)
		if st.pane == paneMatches && i == st.matchIdx {
			b.WriteString(marker + styles.Selected.Render(line))
		} else {
			b.WriteString(marker + styles.Text.Render(line))
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")

	// Selection pane
	b.WriteString(paneTitle(paneSelection, "Ma sélection"))
	b.WriteString("\n")
	if len(current.Ingredients) == 0 {
		b.WriteString(styles.FaintText.Render("    vide"))
		b.WriteString("\n")
	}
	for i, ing := range current.Ingredients {
		if st.pane == paneSelection && i == st.selIdx {
			b.WriteString("    " + styles.Selected.Render(ing.Title))
		} else {
			b.WriteString("    " + styles.Text.Render(ing.Title))
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")

	// Operators pane
	b.WriteString(paneTitle(paneOperators, "Commerces bio"))
	b.WriteString("\n")
	if len(st.operators) == 0 {
		if st.searchedOps && !st.loadingOperators {
			b.WriteString(styles.FaintText.Render("    aucun commerce trouvé"))
		} else {
			b.WriteString(styles.FaintText.Render("    o: lancer la recherche"))
		}
		b.WriteString("\n")
	}
	for i, op := range st.operators {
		marker := "    "
		if current.HasFavoriteShop(op.Siret) {
			marker = "  " + styles.DangerText.Render("♥") + " "
		}
		line := op.Name
		if op.City != "" {
			line += styles.MutedText.Render(" · " + op.PostalCode + " " + op.City)
		}
		if st.pane == paneOperators && i == st.opIdx {
			b.WriteString(marker + styles.Selected.Render(op.Name) + styles.MutedText.Render(" · "+op.PostalCode+" "+op.City))
		} else {
			b.WriteString(marker + line)
		}
		b.WriteString("\n")
	}

	hints := []hint{
		{"/", "Ingrédient"},
		{"h/l", "Volet"},
		{"Espace", "Sélection"},
		{"o", "Chercher"},
		{"f", "Favori"},
	}
	return m.renderFrame(b.String(), hints)
}
