package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss/v2"
)

func (m *HARViewModel) render() string {
	var builder strings.Builder

	builder.WriteString(m.renderTitle())
	builder.WriteString("\n")

	// post-process table view to add colorization (vacuum pattern)
	builder.WriteString(ColorizeTransactionTable(m.table.View(), m.table.Cursor(), m.rows))
	builder.WriteString("\n")

	if m.viewMode == ViewModeTableWithSplit {
		builder.WriteString(m.renderPanel())
		builder.WriteString("\n")
	}

	builder.WriteString(m.renderStatusBar())

	return builder.String()
}

func (m *HARViewModel) renderTitle() string {
	titleStyle := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		Padding(0, 1).
		Width(m.width).
		BorderForeground(RGBBlue).
		BorderTop(false).
		BorderLeft(false).
		BorderRight(false).
		BorderBottom(true)

	titleText := lipgloss.NewStyle().Bold(true).Render(fmt.Sprintf("txview: %s | ", m.fileName))

	entryCount := fmt.Sprintf("(%d transactions, %d violations", len(m.entries), m.violations)
	if m.loadTime > 0 {
		entryCount += fmt.Sprintf(", loaded in %v", m.loadTime.Round(time.Millisecond))
	}
	entryCount += ")"

	return titleStyle.Render(titleText + FaintStyle.Render(entryCount))
}

func (m *HARViewModel) renderStatusBar() string {
	var parts []string

	if m.viewMode == ViewModeTable {
		parts = append(parts, "↑/↓: Navigate", "Enter: Inspect")
	} else {
		parts = append(parts, "↑/↓: Scroll", "Tab/←/→: Switch Tab", "Esc: Close")
	}

	parts = append(parts, "q: Quit")

	if m.selectedIndex < len(m.entries) {
		parts = append(parts, fmt.Sprintf("Entry %d/%d", m.selectedIndex+1, len(m.entries)))
	}

	if m.viewMode == ViewModeTableWithSplit {
		parts = append(parts, "["+m.inspector.ActiveTab().String()+"]")
	}

	return FaintStyle.Render(strings.Join(parts, " | "))
}

func (m *HARViewModel) renderPanel() string {
	panelStyle := lipgloss.NewStyle().
		Width(m.width - splitPanelPadding).
		Height(m.panelHeight() - splitPanelPadding).
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(RGBBlue)

	return panelStyle.Render(m.panelViewport.View())
}
