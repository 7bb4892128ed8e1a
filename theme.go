package banter

// Theme defines semantic color mappings using ANSI color indices (0-15).
// The user's terminal theme determines the actual RGB values, so the app
// automatically matches any color scheme.
type Theme struct {
	UserMsg int // User message accent
	BotMsg  int // Bot message accent
	Pending int // Pending indicator dots
	Error   int // Error banner and diagnostics
	Success int // Confirmations
	Muted   int // Status bar, timestamps, placeholders
	CodeBg  int // Code reply background
	Accent  int // Header, headings, links
	UserBg  int // User message background
}

// DefaultTheme returns the default ANSI color mapping.
func DefaultTheme() Theme {
	return Theme{
		UserMsg: 4,
		BotMsg:  6,
		Pending: 4,
		Error:   1,
		Success: 2,
		Muted:   8,
		CodeBg:  0,
		Accent:  5,
		UserBg:  4,
	}
}
