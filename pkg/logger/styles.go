package logger

import (
	"github.com/charmbracelet/lipgloss"
	charm "github.com/charmbracelet/log"
)

const (
	colorRed    = "#FF0000"
	colorOrange = "#FFA500"
	colorCyan   = "#00BFFF"
	colorBlue   = "#5F87FF"
	colorGray   = "#808080"
)

// getLogStyles returns the level and key styles used by New.
func getLogStyles() *charm.Styles {
	styles := charm.DefaultStyles()

	level := func(label, color string) lipgloss.Style {
		return lipgloss.NewStyle().
			SetString(label).
			Padding(0, 1).
			Background(lipgloss.Color(color)).
			Foreground(lipgloss.Color("0"))
	}

	styles.Levels[charm.ErrorLevel] = level("ERROR", colorRed)
	styles.Levels[charm.WarnLevel] = level("WARN", colorOrange)
	styles.Levels[charm.InfoLevel] = level("INFO", colorCyan)
	styles.Levels[charm.DebugLevel] = level("DEBUG", colorBlue)
	styles.Levels[TraceLevel] = level("TRACE", colorGray)

	styles.Keys["err"] = lipgloss.NewStyle().Foreground(lipgloss.Color(colorRed))
	styles.Values["err"] = lipgloss.NewStyle().Bold(true)
	for _, key := range []string{"host", "source", "stage", "path"} {
		styles.Keys[key] = lipgloss.NewStyle().Foreground(lipgloss.Color(colorBlue))
	}

	return styles
}
