package cli

import "github.com/charmbracelet/lipgloss"

// Styles used by the REPL. Colors follow the same ANSI palette the
// teacher's own (dropped) REPL used.
var (
	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("6")).
			Bold(true)
	continuationStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("5")).
				Bold(true)
	resultStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
)

const (
	evalPrompt         = "expr> "
	continuationPrompt = "....| "
	resultPrefix       = "=> "
)
