package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vegapp/vegapp/internal/api"
	"github.com/vegapp/vegapp/internal/session"
)

// Form fields of the add-recipe screen, in navigation order.
const (
	addTitle = iota
	addDescription
	addCategory
	addDifficulty
	addCost
	addDuration
	addRegimes
	addIngredient
	addStep
	addSubmit
	addFieldCount
)

var difficulties = []string{api.DifficultyEasy, api.DifficultyMedium, api.DifficultyHard}

// addState holds the recipe submission form.
type addState struct {
	inputs map[int]textinput.Model
	focus  int

	category   int
	difficulty int
	regimeIdx  int
	regimes    map[string]bool

	ingredients []api.RecipeIngredient
	steps       []string

	submitting bool
	errMsg     string
}

func newAddState() addState {
	mk := func(placeholder string, limit int) textinput.Model {
		in := textinput.New()
		in.Placeholder = placeholder
		in.CharLimit = limit
		return in
	}

	return addState{
		inputs: map[int]textinput.Model{
			addTitle:       mk("titre", 80),
			addDescription: mk("description", 200),
			addCost:        mk("coût par personne (€)", 8),
			addDuration:    mk("durée (minutes)", 4),
			addIngredient:  mk("nom, quantité, unité", 80),
			addStep:        mk("étape de préparation", 200),
		},
		regimes: make(map[string]bool),
	}
}

// typing reports whether a form text input is being edited.
func (st addState) typing() bool {
	in, ok := st.inputs[st.focus]
	return ok && in.Focused()
}

// addDoneMsg reports the outcome of a recipe submission.
type addDoneMsg struct {
	err error
}

func (m Model) handleAddKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	st := &m.addState

	if st.submitting {
		return m, nil
	}

	if st.typing() {
		return m.handleAddEditKey(msg)
	}

	switch msg.String() {
	case "down", "j":
		st.focus = clamp(st.focus+1, addFieldCount)
		return m, nil

	case "up", "k":
		st.focus = clamp(st.focus-1, addFieldCount)
		return m, nil

	case "enter":
		return m.activateAddField()

	case "left", "h":
		m.cycleAddField(-1)
		return m, nil

	case "right", "l":
		m.cycleAddField(1)
		return m, nil

	case " ":
		if st.focus == addRegimes {
			label := session.Regimes[st.regimeIdx]
			st.regimes[label] = !st.regimes[label]
		} else {
			m.cycleAddField(1)
		}
		return m, nil

	case "-":
		switch st.focus {
		case addIngredient:
			if n := len(st.ingredients); n > 0 {
				st.ingredients = st.ingredients[:n-1]
			}
		case addStep:
			if n := len(st.steps); n > 0 {
				st.steps = st.steps[:n-1]
			}
		}
		return m, nil
	}

	return m, nil
}

// activateAddField starts editing a text field or submits the form.
func (m Model) activateAddField() (tea.Model, tea.Cmd) {
	st := &m.addState

	if st.focus == addSubmit {
		return m.submitRecipe()
	}
	if in, ok := st.inputs[st.focus]; ok {
		in.Focus()
		st.inputs[st.focus] = in
		return m, textinput.Blink
	}
	return m, nil
}

// cycleAddField steps the category, difficulty or regime cursor.
func (m *Model) cycleAddField(delta int) {
	st := &m.addState
	switch st.focus {
	case addCategory:
		n := len(api.CategoryLabels)
		st.category = (st.category + delta + n) % n
	case addDifficulty:
		n := len(difficulties)
		st.difficulty = (st.difficulty + delta + n) % n
	case addRegimes:
		n := len(session.Regimes)
		st.regimeIdx = (st.regimeIdx + delta + n) % n
	}
}

func (m Model) handleAddEditKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	st := &m.addState

	switch msg.String() {
	case "esc":
		in := st.inputs[st.focus]
		in.Blur()
		st.inputs[st.focus] = in
		return m, nil

	case "enter":
		in := st.inputs[st.focus]
		switch st.focus {
		case addIngredient:
			if ing, ok := parseIngredient(in.Value()); ok {
				st.ingredients = append(st.ingredients, ing)
				in.SetValue("")
			}
		case addStep:
			if step := strings.TrimSpace(in.Value()); step != "" {
				st.steps = append(st.steps, step)
				in.SetValue("")
			}
		default:
			in.Blur()
		}
		st.inputs[st.focus] = in
		return m, nil
	}

	in, cmd := st.inputs[st.focus].Update(msg)
	st.inputs[st.focus] = in
	return m, cmd
}

// parseIngredient reads "name, quantity, unit"; quantity and unit are
// optional.
func parseIngredient(raw string) (api.RecipeIngredient, bool) {
	parts := strings.Split(raw, ",")
	name := strings.TrimSpace(parts[0])
	if name == "" {
		return api.RecipeIngredient{}, false
	}
	ing := api.RecipeIngredient{Name: name}
	if len(parts) > 1 {
		if qty, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64); err == nil {
			ing.Quantity = qty
		}
	}
	if len(parts) > 2 {
		ing.Unit = strings.TrimSpace(parts[2])
	}
	return ing, true
}

// submitRecipe validates the form and sends it to the backend.
func (m Model) submitRecipe() (tea.Model, tea.Cmd) {
	st := &m.addState
	st.errMsg = ""

	title := strings.TrimSpace(st.inputs[addTitle].Value())
	if title == "" {
		st.errMsg = "le titre est requis"
		return m, nil
	}
	if len(st.ingredients) == 0 {
		st.errMsg = "au moins un ingrédient"
		return m, nil
	}
	if len(st.steps) == 0 {
		st.errMsg = "au moins une étape"
		return m, nil
	}

	recipe := api.NewRecipe{
		Title:       title,
		Description: strings.TrimSpace(st.inputs[addDescription].Value()),
		Category:    api.CategoryCode(api.CategoryLabels[st.category]),
		Difficulty:  difficulties[st.difficulty],
		Ingredients: st.ingredients,
		Steps:       st.steps,
	}
	if raw := strings.TrimSpace(st.inputs[addCost].Value()); raw != "" {
		cost, err := strconv.ParseFloat(strings.ReplaceAll(raw, ",", "."), 64)
		if err != nil || cost < 0 {
			st.errMsg = "coût invalide"
			return m, nil
		}
		recipe.Cost = cost
	}
	if raw := strings.TrimSpace(st.inputs[addDuration].Value()); raw != "" {
		minutes, err := strconv.Atoi(raw)
		if err != nil || minutes < 0 {
			st.errMsg = "durée invalide"
			return m, nil
		}
		recipe.Duration = minutes
	}
	for _, label := range session.Regimes {
		if st.regimes[label] {
			recipe.Regimes = append(recipe.Regimes, label)
		}
	}

	st.submitting = true
	client := m.api
	ctx := m.ctx
	return m, func() tea.Msg {
		return addDoneMsg{err: client.CreateRecipe(ctx, recipe)}
	}
}

func (m Model) handleAddDone(msg addDoneMsg) (tea.Model, tea.Cmd) {
	m.addState.submitting = false
	if msg.err != nil {
		m.setStatus("envoi: "+msg.err.Error(), true)
		return m, nil
	}
	m.addState = newAddState()
	m.setStatus("recette envoyée", false)
	return m, nil
}

func (m Model) renderAdd() string {
	styles := m.theme.Styles()
	st := m.addState

	label := func(field int, name string) string {
		name = padRight(name, 14)
		if field == st.focus {
			return styles.AccentText.Render(name)
		}
		return styles.MutedText.Render(name)
	}

	var b strings.Builder
	b.WriteString(styles.MutedText.Render("proposer une recette"))
	b.WriteString("\n\n")

	b.WriteString(label(addTitle, "titre"))
	b.WriteString(st.inputs[addTitle].View())
	b.WriteString("\n")
	b.WriteString(label(addDescription, "description"))
	b.WriteString(st.inputs[addDescription].View())
	b.WriteString("\n")

	b.WriteString(label(addCategory, "catégorie"))
	b.WriteString(styles.Text.Render("◂ " + api.CategoryLabels[st.category] + " ▸"))
	b.WriteString("\n")
	b.WriteString(label(addDifficulty, "difficulté"))
	b.WriteString(styles.Text.Render("◂ " + difficultyLabel(difficulties[st.difficulty]) + " ▸"))
	b.WriteString("\n")

	b.WriteString(label(addCost, "coût"))
	b.WriteString(st.inputs[addCost].View())
	b.WriteString("\n")
	b.WriteString(label(addDuration, "durée"))
	b.WriteString(st.inputs[addDuration].View())
	b.WriteString("\n")

	b.WriteString(label(addRegimes, "régimes"))
	chips := make([]string, 0, len(session.Regimes))
	for i, r := range session.Regimes {
		style := styles.TagOff
		if st.regimes[r] {
			style = styles.TagOn
		}
		chip := style.Render(r)
		if st.focus == addRegimes && i == st.regimeIdx {
			chip = styles.AccentText.Render("[") + chip + styles.AccentText.Render("]")
		}
		chips = append(chips, chip)
	}
	b.WriteString(strings.Join(chips, " "))
	b.WriteString("\n")

	b.WriteString(label(addIngredient, "ingrédients"))
	b.WriteString(st.inputs[addIngredient].View())
	b.WriteString("\n")
	for _, ing := range st.ingredients {
		line := "  - " + ing.Name
		if ing.Quantity > 0 {
			line = fmt.Sprintf("  - %g %s %s", ing.Quantity, ing.Unit, ing.Name)
		}
		b.WriteString(styles.FaintText.Render(padRight("", 14) + line))
		b.WriteString("\n")
	}

	b.WriteString(label(addStep, "étapes"))
	b.WriteString(st.inputs[addStep].View())
	b.WriteString("\n")
	for i, step := range st.steps {
		b.WriteString(styles.FaintText.Render(fmt.Sprintf("%s  %d. %s", padRight("", 14), i+1, truncate(step, 60))))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	submit := "[ Envoyer ]"
	if st.focus == addSubmit {
		submit = styles.Selected.Render(submit)
	} else {
		submit = styles.MutedText.Render(submit)
	}
	b.WriteString(submit)
	if st.submitting {
		b.WriteString("  ")
		b.WriteString(m.spinner.View())
	}
	if st.errMsg != "" {
		b.WriteString("  ")
		b.WriteString(styles.DangerText.Render(st.errMsg))
	}

	hints := []hint{
		{"j/k", "Champ"},
		{"Entrée", "Éditer/Valider"},
		{"h/l", "Choix"},
		{"-", "Retirer"},
	}
	return m.renderFrame(b.String(), hints)
}
