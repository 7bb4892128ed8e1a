package bubbletea

// RenderContent exports renderContent for testing.
func RenderContent(m Model) string {
	return m.renderContent()
}

// StatusLine exports statusLine for testing.
func StatusLine(m Model) string {
	return m.statusLine()
}

// RevealGen returns the generation of the block's current reveal.
func RevealGen(b *BotMessageBlock) int {
	return b.gen
}
