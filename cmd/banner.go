package cmd

import (
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/pb33f/txview/tui"
)

const pb33fASCII = `@@@@@@@   @@@@@@@   @@@@@@   @@@@@@   @@@@@@@@
@@@@@@@@  @@@@@@@@  @@@@@@@  @@@@@@@  @@@@@@@@
@@!  @@@  @@!  @@@      @@@      @@@  @@!
!@!  @!@  !@   @!@      @!@      @!@  !@!
@!@@!@!   @!@!@!@   @!@!!@   @!@!!@   @!!!:!
!!@!!!    !!!@!!!!  !!@!@!   !!@!@!   !!!!!:
!!:       !!:  !!!      !!:      !!:  !!:
:!:       :!:  !:!      :!:      :!:  :!:
 ::        :: ::::  :: ::::  :: ::::   ::
 :        :: : ::    : : :    : : :    :      `

// RenderBanner returns the styled pb33f banner shown by the version command
func RenderBanner() string {
	bannerStyle := lipgloss.NewStyle().
		Foreground(tui.RGBPink).
		Bold(true)

	subtitleStyle := lipgloss.NewStyle().
		Foreground(tui.RGBBlue).
		Italic(true)

	containerStyle := lipgloss.NewStyle().
		Align(lipgloss.Left).
		MarginBottom(1)

	banner := bannerStyle.Render(pb33fASCII)
	subtitle := subtitleStyle.Render("txview: see what your API calls are really doing")

	return containerStyle.Render(banner + "\n" + subtitle)
}
