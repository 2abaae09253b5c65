// Package ui renders task lists and status messages for the terminal.
package ui

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"golang.org/x/term"

	"github.com/cenkalti/yap/internal/config"
)

var (
	accentStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	passStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	warnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	failStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	headerStyle = lipgloss.NewStyle().Bold(true)
)

// Configure selects the colour profile for one of the config.Color
// modes. In auto mode colour is used only
// when out is a terminal and the environment allows it.
func Configure(mode string, out *os.File) {
	lipgloss.SetColorProfile(profile(mode, out))
}

func profile(mode string, out *os.File) termenv.Profile {
	switch mode {
	case config.ColorNever:
		return termenv.Ascii
	case config.ColorAlways:
		if p := termenv.EnvColorProfile(); p != termenv.Ascii {
			return p
		}
		return termenv.ANSI
	}
	if out == nil || !term.IsTerminal(int(out.Fd())) {
		return termenv.Ascii
	}
	return termenv.EnvColorProfile()
}

func RenderAccent(s string) string { return accentStyle.Render(s) }
func RenderPass(s string) string   { return passStyle.Render(s) }
func RenderWarn(s string) string   { return warnStyle.Render(s) }
func RenderFail(s string) string   { return failStyle.Render(s) }
func RenderDim(s string) string    { return dimStyle.Render(s) }
