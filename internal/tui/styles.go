package tui

import (
	"github.com/charmbracelet/lipgloss"
)

var (
	colorWhite     = lipgloss.Color("#FFFFFF")
	colorLightGray = lipgloss.Color("#CCCCCC")
	colorGray      = lipgloss.Color("#888888")
	colorDarkGray  = lipgloss.Color("#444444")
	colorRed       = lipgloss.Color("#FF5F5F")
	colorGreen     = lipgloss.Color("#5FD787")
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorWhite).
			MarginBottom(1)

	labelStyle = lipgloss.NewStyle().
			Foreground(colorLightGray).
			Bold(true)

	buttonStyle = lipgloss.NewStyle().
			Foreground(colorWhite).
			Bold(true).
			Padding(0, 1).
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(colorGray)

	buttonDisabledStyle = buttonStyle.
				Foreground(colorDarkGray).
				BorderForeground(colorDarkGray)

	boxStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(colorGray).
			Padding(0, 1)

	validationStyle = lipgloss.NewStyle().
			Foreground(colorRed)

	alertStyle = lipgloss.NewStyle().
			Foreground(colorWhite).
			Background(colorRed).
			Bold(true).
			Padding(0, 1)

	statusStyle = lipgloss.NewStyle().
			Foreground(colorGreen)

	infoStyle = lipgloss.NewStyle().
			Foreground(colorGray).
			Italic(true)

	helpStyle = lipgloss.NewStyle().
			Foreground(colorDarkGray).
			Italic(true).
			MarginTop(1)
)
