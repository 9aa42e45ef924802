// Package ui provides the Bubble Tea terminal interface for Vegapp.
package ui

import (
	"context"
	"log/slog"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vegapp/vegapp/internal/agencebio"
	"github.com/vegapp/vegapp/internal/api"
	"github.com/vegapp/vegapp/internal/auth"
	"github.com/vegapp/vegapp/internal/config"
	"github.com/vegapp/vegapp/internal/prefs"
	"github.com/vegapp/vegapp/internal/session"
	"github.com/vegapp/vegapp/internal/syncer"
)

// Screen identifies the active screen.
type Screen int

const (
	ScreenAuth Screen = iota
	ScreenSearch
	ScreenDetail
	ScreenBookmarks
	ScreenAdd
	ScreenNews
	ScreenPlaces
)

// Options configures the UI.
type Options struct {
	Context   context.Context
	Store     *session.Store
	API       *api.Client
	Locator   *agencebio.Client
	Engine    *syncer.Engine
	Auth      *auth.Manager
	Config    config.Config
	Log       *slog.Logger
	ThemeName string
	PrefsPath string
}

// Model is the root application state for Bubble Tea.
type Model struct {
	ctx       context.Context
	store     *session.Store
	api       *api.Client
	locator   *agencebio.Client
	engine    *syncer.Engine
	auth      *auth.Manager
	cfg       config.Config
	log       *slog.Logger
	prefsPath string

	theme  Theme
	width  int
	height int
	ready  bool

	screen   Screen
	showHelp bool

	// Footer status line, replaced by the next action.
	status      string
	statusIsErr bool

	spinner spinner.Model

	authState      authState
	searchState    searchState
	detailState    detailState
	bookmarksState bookmarksState
	addState       addState
	newsState      newsState
	placesState    placesState
}

// New creates the root Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	log := opts.Log
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	themeName := opts.ThemeName
	if themeName == "" {
		themeName = "Verdant"
	}

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	m := Model{
		ctx:       ctx,
		store:     opts.Store,
		api:       opts.API,
		locator:   opts.Locator,
		engine:    opts.Engine,
		auth:      opts.Auth,
		cfg:       opts.Config,
		log:       log,
		prefsPath: prefsPath,
		theme:     GetTheme(themeName),
		spinner:   spinner.New(spinner.WithSpinner(spinner.Dot)),
	}

	m.authState = newAuthState()
	m.searchState = newSearchState()
	m.bookmarksState = newBookmarksState()
	m.addState = newAddState()
	m.placesState = newPlacesState()

	m.screen = ScreenAuth
	if m.auth != nil && m.auth.State() == auth.Authenticated {
		m.screen = ScreenSearch
	}
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		tea.EnterAltScreen,
		m.spinner.Tick,
		textinput.Blink,
	}
	if m.screen == ScreenSearch {
		cmds = append(cmds, m.runSearch())
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if !m.ready {
			m.initDetailViewport()
			m.initNewsViewport()
		}
		m.ready = true
		m.resizeViewports()
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case authDoneMsg:
		return m.handleAuthDone(msg)

	case syncResultMsg:
		return m.handleSyncResult(msg)

	case searchResultsMsg:
		return m.handleSearchResults(msg)

	case recipeMsg:
		return m.handleRecipe(msg)

	case bookmarksMsg:
		return m.handleBookmarks(msg)

	case articlesMsg:
		return m.handleArticles(msg)

	case ingredientsMsg:
		return m.handleIngredients(msg)

	case operatorsMsg:
		return m.handleOperators(msg)

	case addDoneMsg:
		return m.handleAddDone(msg)

	case voteDoneMsg:
		return m.handleVoteDone(msg)
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}

	switch m.screen {
	case ScreenAuth:
		return m.renderAuth()
	case ScreenSearch:
		return m.renderSearch()
	case ScreenDetail:
		return m.renderDetail()
	case ScreenBookmarks:
		return m.renderBookmarks()
	case ScreenAdd:
		return m.renderAdd()
	case ScreenNews:
		return m.renderNews()
	case ScreenPlaces:
		return m.renderPlaces()
	default:
		return ""
	}
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	if m.showHelp {
		// Any key closes help.
		m.showHelp = false
		return m, nil
	}

	if m.screen == ScreenAuth {
		return m.handleAuthKey(msg)
	}

	// Screens with a focused text input consume everything but ctrl+c.
	if m.typing() {
		return m.handleScreenKey(msg)
	}

	// Global keys
	switch msg.String() {
	case "q":
		return m, tea.Quit

	case "?":
		m.showHelp = true
		return m, nil

	case "T":
		m.theme = GetTheme(NextTheme(m.theme.Name))
		if m.prefsPath != "" {
			_ = prefs.Save(m.prefsPath, prefs.Prefs{Theme: m.theme.Name})
		}
		return m, nil

	case "L":
		return m.handleLogout()

	case "tab":
		return m.switchScreen(nextTab(m.screen))

	case "shift+tab":
		return m.switchScreen(prevTab(m.screen))

	case "s":
		return m.switchScreen(ScreenSearch)

	case "b":
		return m.switchScreen(ScreenBookmarks)

	case "a":
		return m.switchScreen(ScreenAdd)

	case "n":
		return m.switchScreen(ScreenNews)

	case "p":
		return m.switchScreen(ScreenPlaces)
	}

	return m.handleScreenKey(msg)
}

// handleScreenKey dispatches to the active screen's key handler.
func (m Model) handleScreenKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.screen {
	case ScreenSearch:
		return m.handleSearchKey(msg)
	case ScreenDetail:
		return m.handleDetailKey(msg)
	case ScreenBookmarks:
		return m.handleBookmarksKey(msg)
	case ScreenAdd:
		return m.handleAddKey(msg)
	case ScreenNews:
		return m.handleNewsKey(msg)
	case ScreenPlaces:
		return m.handlePlacesKey(msg)
	}
	return m, nil
}

// typing reports whether the active screen has a focused text input.
func (m Model) typing() bool {
	switch m.screen {
	case ScreenSearch:
		return m.searchState.input.Focused()
	case ScreenAdd:
		return m.addState.typing()
	case ScreenPlaces:
		return m.placesState.query.Focused()
	}
	return false
}

// tabOrder is the screen cycle for tab navigation.
var tabOrder = []Screen{ScreenSearch, ScreenBookmarks, ScreenAdd, ScreenNews, ScreenPlaces}

func nextTab(current Screen) Screen {
	for i, s := range tabOrder {
		if s == current {
			return tabOrder[(i+1)%len(tabOrder)]
		}
	}
	return tabOrder[0]
}

func prevTab(current Screen) Screen {
	for i, s := range tabOrder {
		if s == current {
			return tabOrder[(i+len(tabOrder)-1)%len(tabOrder)]
		}
	}
	return tabOrder[0]
}

// switchScreen activates a screen and kicks off its data load.
func (m Model) switchScreen(s Screen) (tea.Model, tea.Cmd) {
	m.screen = s
	m.status = ""
	m.statusIsErr = false

	switch s {
	case ScreenSearch:
		if m.searchState.results == nil && !m.searchState.loading {
			return m, m.runSearch()
		}
	case ScreenBookmarks:
		return m, m.fetchBookmarks()
	case ScreenNews:
		if !m.newsState.loaded && !m.newsState.loading {
			return m, m.fetchArticles()
		}
	}
	return m, nil
}

// handleLogout drops the session and returns to the sign-in screen.
func (m Model) handleLogout() (tea.Model, tea.Cmd) {
	if m.auth != nil {
		if err := m.auth.Logout(); err != nil {
			m.log.Warn("logout", slog.String("error", err.Error()))
		}
	}
	m.authState = newAuthState()
	m.searchState = newSearchState()
	m.bookmarksState = newBookmarksState()
	m.addState = newAddState()
	m.placesState = newPlacesState()
	m.newsState = newsState{}
	m.screen = ScreenAuth
	m.status = ""
	return m, m.authState.focusCmd()
}

// setStatus records a footer message.
func (m *Model) setStatus(text string, isErr bool) {
	m.status = text
	m.statusIsErr = isErr
}

// syncResultMsg reports the outcome of an optimistic toggle.
type syncResultMsg struct {
	res syncer.Result
}

// toggleCmd runs an optimistic mutation through the sync engine.
func (m Model) toggleCmd(mut session.Mutation) tea.Cmd {
	engine := m.engine
	ctx := m.ctx
	return func() tea.Msg {
		return syncResultMsg{res: engine.Toggle(ctx, mut)}
	}
}

// handleSyncResult surfaces rollbacks; confirmed syncs stay quiet. The
// store already reflects the final state either way, so views that read
// membership from the store are correct without further work.
func (m Model) handleSyncResult(msg syncResultMsg) (tea.Model, tea.Cmd) {
	switch msg.res.State {
	case syncer.RolledBack:
		m.setStatus("sync failed: "+msg.res.Err.Error(), true)
	case syncer.Abandoned:
		// Logged out while the call was in flight; nothing to show.
	}
	return m, nil
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
