package repl

import "github.com/charmbracelet/lipgloss"

func fg(color string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color))
}

var (
	evalPromptStyle = fg("6").Bold(true)
	ctrlPromptStyle = fg("5").Bold(true)
	inputStyle      = fg("15")
	resultStyle     = fg("2")
	errorStyle      = fg("1")
	hintStyle       = fg("8")

	candidateStyle      = fg("4")
	candidateMatchStyle = fg("4").Bold(true).Underline(true)
	selectedStyle       = fg("0").Background(lipgloss.Color("4"))
	selectedMatchStyle  = selectedStyle.Bold(true).Underline(true)

	signatureNameStyle = fg("6").Bold(true)
	currentParamStyle  = fg("11").Bold(true)
)
