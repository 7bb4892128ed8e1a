package bubbletea

import (
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/fwojciec/banter"
)

// Styles maps a Theme to lipgloss styles for TUI rendering.
type Styles struct {
	Header  lipgloss.Style
	UserMsg lipgloss.Style
	BotMsg  lipgloss.Style
	Pending lipgloss.Style
	Error   lipgloss.Style
	Success lipgloss.Style
	Muted   lipgloss.Style
	Link    lipgloss.Style
	CodeBg  lipgloss.Style
	UserBg  lipgloss.Style
}

// NewStyles creates Styles from a Theme.
func NewStyles(t banter.Theme) Styles {
	return Styles{
		Header:  lipgloss.NewStyle().Foreground(ansiColor(t.Accent)).Bold(true),
		UserMsg: lipgloss.NewStyle().Foreground(ansiColor(t.UserMsg)).Bold(true),
		BotMsg:  lipgloss.NewStyle().Foreground(ansiColor(t.BotMsg)),
		Pending: lipgloss.NewStyle().Foreground(ansiColor(t.Pending)),
		Error:   lipgloss.NewStyle().Foreground(ansiColor(t.Error)),
		Success: lipgloss.NewStyle().Foreground(ansiColor(t.Success)),
		Muted:   lipgloss.NewStyle().Foreground(ansiColor(t.Muted)).Faint(true),
		Link:    lipgloss.NewStyle().Foreground(ansiColor(t.Accent)).Underline(true),
		CodeBg:  lipgloss.NewStyle().Background(ansiColor(t.CodeBg)).PaddingLeft(1),
		UserBg:  lipgloss.NewStyle().Background(ansiColor(t.UserBg)).PaddingLeft(1),
	}
}

func ansiColor(index int) lipgloss.TerminalColor {
	if index < 0 {
		return lipgloss.NoColor{}
	}
	return lipgloss.Color(strconv.Itoa(index))
}
