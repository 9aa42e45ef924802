package ui

import (
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vegapp/vegapp/internal/auth"
)

// authMode selects between the two forms of the auth screen.
type authMode int

const (
	modeSignIn authMode = iota
	modeSignUp
)

// Field indexes into authState.inputs.
const (
	authEmail = iota
	authUsername
	authPassword
	authConfirm
	authFieldCount
)

// authState holds the sign-in / sign-up form.
type authState struct {
	mode       authMode
	inputs     [authFieldCount]textinput.Model
	focus      int
	submitting bool

	errField string
	errMsg   string
}

func newAuthState() authState {
	var st authState

	email := textinput.New()
	email.Placeholder = "email"
	email.CharLimit = 64

	username := textinput.New()
	username.Placeholder = "nom d'utilisateur"
	username.CharLimit = 32

	password := textinput.New()
	password.Placeholder = "mot de passe"
	password.EchoMode = textinput.EchoPassword
	password.CharLimit = 64

	confirm := textinput.New()
	confirm.Placeholder = "confirmation"
	confirm.EchoMode = textinput.EchoPassword
	confirm.CharLimit = 64

	st.inputs[authEmail] = email
	st.inputs[authUsername] = username
	st.inputs[authPassword] = password
	st.inputs[authConfirm] = confirm

	st.mode = modeSignIn
	st.focus = authUsername
	st.inputs[authUsername].Focus()
	return st
}

// fields returns the field order for the current mode.
func (st authState) fields() []int {
	if st.mode == modeSignUp {
		return []int{authEmail, authUsername, authPassword, authConfirm}
	}
	return []int{authUsername, authPassword}
}

func (st *authState) focusField(idx int) {
	for i := range st.inputs {
		st.inputs[i].Blur()
	}
	st.focus = idx
	st.inputs[idx].Focus()
}

func (st *authState) move(delta int) {
	order := st.fields()
	pos := 0
	for i, f := range order {
		if f == st.focus {
			pos = i
			break
		}
	}
	pos = (pos + delta + len(order)) % len(order)
	st.focusField(order[pos])
}

func (st *authState) toggleMode() {
	if st.mode == modeSignIn {
		st.mode = modeSignUp
		st.focusField(authEmail)
	} else {
		st.mode = modeSignIn
		st.focusField(authUsername)
	}
	st.errField = ""
	st.errMsg = ""
}

func (st authState) focusCmd() tea.Cmd {
	return textinput.Blink
}

// authDoneMsg reports the result of a sign-in or sign-up round trip.
type authDoneMsg struct {
	err error
}

func (m Model) submitAuthCmd() tea.Cmd {
	mgr := m.auth
	ctx := m.ctx
	st := m.authState

	if st.mode == modeSignUp {
		email := strings.TrimSpace(st.inputs[authEmail].Value())
		username := strings.TrimSpace(st.inputs[authUsername].Value())
		password := st.inputs[authPassword].Value()
		confirm := st.inputs[authConfirm].Value()
		return func() tea.Msg {
			return authDoneMsg{err: mgr.SignUp(ctx, email, password, confirm, username)}
		}
	}

	username := strings.TrimSpace(st.inputs[authUsername].Value())
	password := st.inputs[authPassword].Value()
	return func() tea.Msg {
		return authDoneMsg{err: mgr.SignIn(ctx, username, password)}
	}
}

func (m Model) handleAuthKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.authState.submitting {
		return m, nil
	}

	switch msg.String() {
	case "tab", "down", "enter":
		if msg.String() == "enter" && m.authState.onLastField() {
			m.authState.submitting = true
			m.authState.errField = ""
			m.authState.errMsg = ""
			return m, m.submitAuthCmd()
		}
		m.authState.move(1)
		return m, nil

	case "shift+tab", "up":
		m.authState.move(-1)
		return m, nil

	case "ctrl+t":
		m.authState.toggleMode()
		return m, nil
	}

	var cmd tea.Cmd
	m.authState.inputs[m.authState.focus], cmd = m.authState.inputs[m.authState.focus].Update(msg)
	return m, cmd
}

func (st authState) onLastField() bool {
	order := st.fields()
	return st.focus == order[len(order)-1]
}

func (m Model) handleAuthDone(msg authDoneMsg) (tea.Model, tea.Cmd) {
	m.authState.submitting = false

	if msg.err == nil {
		m.screen = ScreenSearch
		m.status = ""
		return m, m.runSearch()
	}

	var verr *auth.ValidationError
	if errors.As(msg.err, &verr) {
		m.authState.errField = verr.Field
		m.authState.errMsg = verr.Msg
		return m, nil
	}

	m.authState.errField = ""
	m.authState.errMsg = msg.err.Error()
	return m, nil
}

func (m Model) renderAuth() string {
	styles := m.theme.Styles()
	st := m.authState

	var b strings.Builder
	b.WriteString(styles.Logo.Render("vegapp"))
	b.WriteString("\n")
	if st.mode == modeSignUp {
		b.WriteString(styles.MutedText.Render("créer un compte"))
	} else {
		b.WriteString(styles.MutedText.Render("se connecter"))
	}
	b.WriteString("\n\n")

	label := map[int]string{
		authEmail:    "email",
		authUsername: "utilisateur",
		authPassword: "mot de passe",
		authConfirm:  "confirmation",
	}
	for _, f := range st.fields() {
		name := padRight(label[f], 14)
		if f == st.focus {
			b.WriteString(styles.AccentText.Render(name))
		} else {
			b.WriteString(styles.MutedText.Render(name))
		}
		b.WriteString(st.inputs[f].View())
		if st.errField == fieldName(f) {
			b.WriteString("  ")
			b.WriteString(styles.DangerText.Render(st.errMsg))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if st.submitting {
		b.WriteString(m.spinner.View())
		b.WriteString(styles.MutedText.Render(" connexion..."))
	} else if st.errField == "" && st.errMsg != "" {
		b.WriteString(styles.DangerText.Render(st.errMsg))
	}
	b.WriteString("\n\n")

	if st.mode == modeSignUp {
		b.WriteString(styles.FaintText.Render("Entrée: valider · Ctrl+T: déjà un compte · Ctrl+C: quitter"))
	} else {
		b.WriteString(styles.FaintText.Render("Entrée: valider · Ctrl+T: créer un compte · Ctrl+C: quitter"))
	}

	return styles.Panel.Render(b.String())
}

// fieldName maps input indexes to validation error field names.
func fieldName(f int) string {
	switch f {
	case authEmail:
		return "email"
	case authUsername:
		return "username"
	case authPassword:
		return "password"
	case authConfirm:
		return "confirm"
	default:
		return ""
	}
}
