package ui

// resizeViewports propagates the terminal size to every viewport.
func (m *Model) resizeViewports() {
	h := m.contentHeight()

	m.detailState.viewport.Width = m.width
	m.detailState.viewport.Height = h
	if m.detailState.recipe != nil {
		m.detailState.viewport.SetContent(m.renderRecipeBody(m.detailState.recipe))
	}

	m.newsState.viewport.Width = m.width
	m.newsState.viewport.Height = h - 2
	if m.newsState.viewport.Height < 1 {
		m.newsState.viewport.Height = 1
	}
	if m.newsState.loaded {
		m.newsState.viewport.SetContent(m.renderArticles(m.newsState.articles))
	}
}
