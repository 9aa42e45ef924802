package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vegapp/vegapp/internal/api"
)

// newsState holds the article feed.
type newsState struct {
	articles []api.Article
	viewport viewport.Model
	loading  bool
	loaded   bool
}

func (m *Model) initNewsViewport() {
	m.newsState.viewport = viewport.New(m.width, m.contentHeight()-2)
}

// articlesMsg delivers the news feed.
type articlesMsg struct {
	articles []api.Article
	err      error
}

func (m *Model) fetchArticles() tea.Cmd {
	m.newsState.loading = true
	client := m.api
	ctx := m.ctx
	return func() tea.Msg {
		articles, err := client.FetchArticles(ctx)
		return articlesMsg{articles: articles, err: err}
	}
}

func (m Model) handleArticles(msg articlesMsg) (tea.Model, tea.Cmd) {
	m.newsState.loading = false
	if msg.err != nil {
		m.setStatus("actus: "+msg.err.Error(), true)
		return m, nil
	}
	m.newsState.articles = msg.articles
	m.newsState.loaded = true
	m.newsState.viewport.SetContent(m.renderArticles(msg.articles))
	m.newsState.viewport.GotoTop()
	return m, nil
}

func (m Model) handleNewsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "r" {
		return m, m.fetchArticles()
	}
	var cmd tea.Cmd
	m.newsState.viewport, cmd = m.newsState.viewport.Update(msg)
	return m, cmd
}

func (m Model) renderNews() string {
	styles := m.theme.Styles()
	st := m.newsState

	var b strings.Builder
	b.WriteString(styles.MutedText.Render("actualités"))
	if st.loading {
		b.WriteString("  ")
		b.WriteString(m.spinner.View())
	}
	b.WriteString("\n\n")
	if st.loaded && len(st.articles) == 0 {
		b.WriteString(styles.FaintText.Render("aucun article"))
	} else {
		b.WriteString(st.viewport.View())
	}

	hints := []hint{
		{"j/k", "Défiler"},
		{"r", "Recharger"},
	}
	return m.renderFrame(b.String(), hints)
}

func (m Model) renderArticles(articles []api.Article) string {
	styles := m.theme.Styles()

	var b strings.Builder
	for _, a := range articles {
		b.WriteString(styles.AccentText.Bold(true).Render(a.Title))
		b.WriteString("\n")
		if a.Author != "" {
			b.WriteString(styles.FaintText.Render(a.Author))
			b.WriteString("\n")
		}
		if a.Description != "" {
			b.WriteString(styles.Text.Render(a.Description))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}
	return b.String()
}
