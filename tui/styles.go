package tui

import (
	"github.com/charmbracelet/bubbles/v2/table"
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/pb33f/txview/inspect"
)

// palette shared with vacuum
var (
	RGBBlue       = lipgloss.Color("45")
	RGBPink       = lipgloss.Color("201")
	RGBRed        = lipgloss.Color("196")
	RGBYellow     = lipgloss.Color("220")
	RGBGreen      = lipgloss.Color("46")
	RGBGrey       = lipgloss.Color("246")
	RGBDimGrey    = lipgloss.Color("240")
	RGBSubtlePink = lipgloss.Color("#2a1a2a")
)

// General styles
var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(RGBPink)

	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(RGBBlue)

	HelpStyle = lipgloss.NewStyle().
			Foreground(RGBGrey)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(RGBRed).
			Bold(true)

	FaintStyle = lipgloss.NewStyle().Faint(true)

	CompliantStyle = lipgloss.NewStyle().
			Foreground(RGBGreen).
			Bold(true)
)

// Inspector panel styles
var (
	TabStyle = lipgloss.NewStyle().
			Foreground(RGBGrey).
			Padding(0, 1)

	ActiveTabStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(RGBPink).
			Background(RGBSubtlePink).
			Padding(0, 1)

	BadgeStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(RGBRed)

	ViolationMessageStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(RGBYellow)

	SeparatorStyle = lipgloss.NewStyle().
			Foreground(RGBDimGrey)
)

// Table colorization styles for methods and status codes
var (
	StyleMethodGreen  = lipgloss.NewStyle().Foreground(RGBGreen)  // GET, QUERY
	StyleMethodYellow = lipgloss.NewStyle().Foreground(RGBYellow) // PATCH
	StyleMethodBlue   = lipgloss.NewStyle().Foreground(RGBBlue)   // PUT, POST
	StyleMethodRed    = lipgloss.NewStyle().Foreground(RGBRed)    // DELETE

	StyleStatus4xx = lipgloss.NewStyle().Foreground(RGBYellow)
	StyleStatus5xx = lipgloss.NewStyle().Foreground(RGBRed)

	StyleDurationFaint = lipgloss.NewStyle().Faint(true)
)

// statusClassStyles colours the response status tab by status class.
var statusClassStyles = map[inspect.StatusClass]lipgloss.Style{
	inspect.StatusInformational: lipgloss.NewStyle().Bold(true).Foreground(RGBGrey),
	inspect.StatusSuccess:       lipgloss.NewStyle().Bold(true).Foreground(RGBGreen),
	inspect.StatusRedirect:      lipgloss.NewStyle().Bold(true).Foreground(RGBBlue),
	inspect.StatusClientError:   lipgloss.NewStyle().Bold(true).Foreground(RGBYellow),
	inspect.StatusServerError:   lipgloss.NewStyle().Bold(true).Foreground(RGBRed),
}

func statusStyle(class inspect.StatusClass) lipgloss.Style {
	if s, ok := statusClassStyles[class]; ok {
		return s
	}
	return lipgloss.NewStyle().Bold(true)
}

// ApplyTableStyles applies the vacuum table theme
func ApplyTableStyles(t table.Model) table.Model {
	s := table.DefaultStyles()

	s.Header = lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(RGBPink).
		BorderBottom(true).
		BorderLeft(false).
		BorderRight(false).
		BorderTop(false).
		Foreground(RGBPink).
		Bold(true).
		Padding(0, 1)

	s.Selected = lipgloss.NewStyle().
		Bold(true).
		Foreground(RGBPink).
		Background(RGBSubtlePink).
		Padding(0, 0)

	s.Cell = lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(RGBPink).
		BorderRight(false).
		Padding(0, 1)

	t.SetStyles(s)
	return t
}
